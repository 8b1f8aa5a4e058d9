// Package acquisition provides acquisition functions for scoring candidate
// points against a fitted surrogate model.
package acquisition

import (
	"gonum.org/v1/gonum/stat/distuv"
)

// ExpectedImprovement scores a candidate by how much it is expected to
// improve on the best value observed so far. Operates in minimization
// orientation by default.
type ExpectedImprovement struct {
	// Best observed objective value so far.
	bestObserved float64
	// Exploration-exploitation trade-off parameter.
	xi float64
	// Whether lower objective values are better.
	minimize bool
}

// NewExpectedImprovement creates an ExpectedImprovement function that treats
// lower values as better.
func NewExpectedImprovement(bestObserved, xi float64) *ExpectedImprovement {
	return &ExpectedImprovement{
		bestObserved: bestObserved,
		xi:           xi,
		minimize:     true,
	}
}

// Compute returns the expected improvement at a point given the surrogate's
// mean and standard deviation there. Always non-negative.
func (ei *ExpectedImprovement) Compute(mu, sigma float64) float64 {
	var improvement float64
	if ei.minimize {
		improvement = ei.bestObserved - mu - ei.xi
	} else {
		improvement = mu - ei.bestObserved - ei.xi
	}

	if improvement <= 0 {
		return 0.0
	}

	// A near-zero sigma means the model is certain; the improvement itself
	// is the expectation.
	if sigma <= 1e-10 {
		return improvement
	}

	// EI = improvement * Phi(z) + sigma * phi(z)
	stdNormal := distuv.UnitNormal
	z := improvement / sigma
	return improvement*stdNormal.CDF(z) + sigma*stdNormal.Prob(z)
}

// UpdateBest updates the best observed value.
func (ei *ExpectedImprovement) UpdateBest(best float64) {
	ei.bestObserved = best
}

// SetXi sets the exploration-exploitation trade-off parameter.
func (ei *ExpectedImprovement) SetXi(xi float64) {
	ei.xi = xi
}

// SetMinimize sets the optimization orientation.
func (ei *ExpectedImprovement) SetMinimize(minimize bool) {
	ei.minimize = minimize
}

// BestObserved returns the best observed value.
func (ei *ExpectedImprovement) BestObserved() float64 {
	return ei.bestObserved
}
