// Package optimize defines the contract between the spearmint facade and the
// model-based suggestion engines that back it.
package optimize

import (
	"context"
	"errors"
	"fmt"
	"math"
)

// Problem describes the encoded search space handed to an engine: one entry
// per dimension, in the positional order fixed by the parameter space.
type Problem struct {
	// Bounds holds the inclusive [min, max] range for each dimension.
	Bounds [][2]float64

	// Cardinality marks categorical dimensions. A value n > 0 means the
	// dimension takes one of n discrete option indices 0..n-1; zero means
	// the dimension is continuous.
	Cardinality []int
}

// Dims returns the number of encoded dimensions.
func (p Problem) Dims() int {
	return len(p.Bounds)
}

// Validate checks that the problem is internally consistent.
func (p Problem) Validate() error {
	if len(p.Bounds) == 0 {
		return errors.New("problem has no dimensions")
	}
	if len(p.Cardinality) != len(p.Bounds) {
		return fmt.Errorf("cardinality length %d does not match %d bounds",
			len(p.Cardinality), len(p.Bounds))
	}
	for i, b := range p.Bounds {
		if math.IsNaN(b[0]) || math.IsNaN(b[1]) || b[0] > b[1] {
			return fmt.Errorf("dimension %d has invalid bounds [%v, %v]", i, b[0], b[1])
		}
		if p.Cardinality[i] < 0 {
			return fmt.Errorf("dimension %d has negative cardinality %d", i, p.Cardinality[i])
		}
	}
	return nil
}

// Clamp forces each coordinate of x into the problem bounds, in place.
func (p Problem) Clamp(x []float64) {
	for i := range x {
		if i >= len(p.Bounds) {
			return
		}
		x[i] = math.Max(p.Bounds[i][0], math.Min(x[i], p.Bounds[i][1]))
	}
}

// Snap rounds every categorical coordinate of x to the nearest valid option
// index, in place. Continuous dimensions are left untouched.
func (p Problem) Snap(x []float64) {
	for i := range x {
		if i >= len(p.Cardinality) || p.Cardinality[i] <= 0 {
			continue
		}
		idx := math.Round(x[i])
		if idx < 0 {
			idx = 0
		}
		if max := float64(p.Cardinality[i] - 1); idx > max {
			idx = max
		}
		x[i] = idx
	}
}

// History is the accumulated evidence an engine fits its model to: a design
// matrix of encoded trials and the matching objective vector. Y is always in
// minimization orientation; the facade flips signs when maximizing.
type History struct {
	X [][]float64
	Y []float64
}

// Len returns the number of recorded observations.
func (h History) Len() int {
	return len(h.Y)
}

// Validate checks the history against the expected dimension count.
func (h History) Validate(dims int) error {
	if len(h.X) != len(h.Y) {
		return fmt.Errorf("history has %d inputs but %d objective values", len(h.X), len(h.Y))
	}
	if len(h.Y) == 0 {
		return errors.New("history is empty")
	}
	for i, x := range h.X {
		if len(x) != dims {
			return fmt.Errorf("history row %d has %d dimensions, want %d", i, len(x), dims)
		}
	}
	for i, y := range h.Y {
		if math.IsNaN(y) {
			return fmt.Errorf("history objective %d is NaN", i)
		}
	}
	return nil
}

// BestIndex returns the index of the lowest objective value, ties going to
// the earliest observation. Returns -1 for an empty history.
func (h History) BestIndex() int {
	best := -1
	for i, y := range h.Y {
		if best < 0 || y < h.Y[best] {
			best = i
		}
	}
	return best
}

// Engine models the objective response surface from a history and proposes
// the next point to evaluate. Implementations must treat lower objective
// values as better; they must not retain or mutate the history.
type Engine interface {
	FitAndSuggest(ctx context.Context, p Problem, h History) ([]float64, error)
}
