package spearmint

import (
	"fmt"
	"math"

	"github.com/copyleftdev/spearmint/optimize"
)

// problem builds the engine-facing description of the space: one dimension
// per parameter in name order, enums flagged by their option count.
func (s *Space) problem() optimize.Problem {
	bounds := make([][2]float64, len(s.names))
	card := make([]int, len(s.names))
	for i, name := range s.names {
		sp := s.specs[name]
		switch sp.Type {
		case TypeInt:
			lo, hi := sp.intBounds()
			bounds[i] = [2]float64{float64(lo), float64(hi)}
		case TypeFloat:
			bounds[i] = [2]float64{sp.Min, sp.Max}
		case TypeEnum:
			bounds[i] = [2]float64{0, float64(len(sp.Options) - 1)}
			card[i] = len(sp.Options)
		}
	}
	return optimize.Problem{Bounds: bounds, Cardinality: card}
}

// encode maps a validated trial onto the positional vector representation:
// numeric values pass through, enum values become their option index.
func (s *Space) encode(t Trial) []float64 {
	x := make([]float64, len(s.names))
	for i, name := range s.names {
		sp := s.specs[name]
		v := t[name]
		switch sp.Type {
		case TypeInt:
			x[i] = float64(v.Int())
		case TypeFloat:
			x[i] = v.Float()
		case TypeEnum:
			x[i] = float64(sp.optionIndex(v.Enum()))
		}
	}
	return x
}

// decode maps an engine point back into a trial: coordinates are clamped to
// their bounds, int dimensions round to the nearest in-range integer, and
// enum dimensions snap to the nearest valid option index.
func (s *Space) decode(x []float64) (Trial, error) {
	if len(x) != len(s.names) {
		return nil, fmt.Errorf("point has %d dimensions, want %d", len(x), len(s.names))
	}

	t := make(Trial, len(s.names))
	for i, name := range s.names {
		sp := s.specs[name]
		v := x[i]
		if math.IsNaN(v) {
			return nil, fmt.Errorf("dimension %d (%s) is NaN", i, name)
		}
		switch sp.Type {
		case TypeInt:
			lo, hi := sp.intBounds()
			iv := int64(math.Round(v))
			if iv < lo {
				iv = lo
			}
			if iv > hi {
				iv = hi
			}
			t[name] = IntValue(iv)
		case TypeFloat:
			t[name] = FloatValue(math.Max(sp.Min, math.Min(v, sp.Max)))
		case TypeEnum:
			idx := int(math.Round(v))
			if idx < 0 {
				idx = 0
			}
			if idx > len(sp.Options)-1 {
				idx = len(sp.Options) - 1
			}
			t[name] = EnumValue(sp.Options[idx])
		}
	}
	return t, nil
}
