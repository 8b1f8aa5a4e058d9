package acquisition

import (
	"math"
	"testing"
)

func TestExpectedImprovement(t *testing.T) {
	tests := []struct {
		name          string
		bestObserved  float64
		xi            float64
		mu            float64
		sigma         float64
		expectedValue float64
	}{
		{
			name:          "no improvement",
			bestObserved:  1.0,
			xi:            0.01,
			mu:            1.5, // worse than the best observed
			sigma:         0.1,
			expectedValue: 0.0,
		},
		{
			name:          "definite improvement",
			bestObserved:  1.0,
			xi:            0.01,
			mu:            0.5,
			sigma:         0.2,
			expectedValue: 0.4905,
		},
		{
			name:          "zero sigma returns raw improvement",
			bestObserved:  1.0,
			xi:            0.0,
			mu:            0.5,
			sigma:         0.0,
			expectedValue: 0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ei := NewExpectedImprovement(tt.bestObserved, tt.xi)
			result := ei.Compute(tt.mu, tt.sigma)

			tolerance := 1e-4
			if math.Abs(result-tt.expectedValue) > tolerance {
				t.Errorf("expected %v, got %v (tolerance %v)", tt.expectedValue, result, tolerance)
			}
		})
	}
}

func TestExpectedImprovementMaximize(t *testing.T) {
	ei := NewExpectedImprovement(1.0, 0.01)
	ei.SetMinimize(false)

	// In maximization orientation a higher mean is the improving one.
	if got := ei.Compute(0.5, 0.2); got != 0 {
		t.Errorf("lower mean should not improve when maximizing, got %v", got)
	}
	if got := ei.Compute(1.5, 0.2); got <= 0 {
		t.Errorf("higher mean should improve when maximizing, got %v", got)
	}
}

func TestExpectedImprovementUpdate(t *testing.T) {
	ei := NewExpectedImprovement(1.0, 0.01)

	if ei.BestObserved() != 1.0 {
		t.Errorf("initial best observed should be 1.0, got %v", ei.BestObserved())
	}

	ei.UpdateBest(0.5)
	if ei.BestObserved() != 0.5 {
		t.Errorf("updated best observed should be 0.5, got %v", ei.BestObserved())
	}

	ei.SetXi(0.01)
	if result := ei.Compute(0.4, 0.1); result <= 0 {
		t.Error("expected positive EI for a point beating the updated best")
	}
}

func TestExpectedImprovementNonNegative(t *testing.T) {
	ei := NewExpectedImprovement(0.0, 0.01)
	for _, mu := range []float64{-2, -0.5, 0, 0.5, 2} {
		for _, sigma := range []float64{0, 0.01, 0.5, 3} {
			if got := ei.Compute(mu, sigma); got < 0 {
				t.Fatalf("EI(mu=%v, sigma=%v) = %v, want >= 0", mu, sigma, got)
			}
		}
	}
}
