package optimize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProblemValidate(t *testing.T) {
	tests := []struct {
		name    string
		problem Problem
		wantErr bool
	}{
		{
			name: "valid mixed problem",
			problem: Problem{
				Bounds:      [][2]float64{{0, 1}, {0, 2}},
				Cardinality: []int{0, 3},
			},
		},
		{
			name:    "no dimensions",
			problem: Problem{},
			wantErr: true,
		},
		{
			name: "cardinality length mismatch",
			problem: Problem{
				Bounds:      [][2]float64{{0, 1}},
				Cardinality: []int{0, 0},
			},
			wantErr: true,
		},
		{
			name: "inverted bounds",
			problem: Problem{
				Bounds:      [][2]float64{{1, 0}},
				Cardinality: []int{0},
			},
			wantErr: true,
		},
		{
			name: "negative cardinality",
			problem: Problem{
				Bounds:      [][2]float64{{0, 1}},
				Cardinality: []int{-1},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.problem.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestProblemClampAndSnap(t *testing.T) {
	p := Problem{
		Bounds:      [][2]float64{{-2, 2}, {0, 3}, {0, 1}},
		Cardinality: []int{0, 0, 2},
	}

	x := []float64{-3.5, 4.2, 0.8}
	p.Clamp(x)
	assert.Equal(t, []float64{-2, 3, 0.8}, x)

	p.Snap(x)
	// Only the categorical dimension moves.
	assert.Equal(t, []float64{-2, 3, 1}, x)

	// Snap clamps wild categorical values into the index range.
	y := []float64{0, 0, 7.3}
	p.Snap(y)
	assert.Equal(t, 1.0, y[2])
}

func TestHistoryValidate(t *testing.T) {
	h := History{
		X: [][]float64{{0, 1}, {1, 0}},
		Y: []float64{1.5, 0.5},
	}
	require.NoError(t, h.Validate(2))

	assert.Error(t, History{}.Validate(2), "empty history should be invalid")
	assert.Error(t, History{X: [][]float64{{0}}, Y: []float64{1, 2}}.Validate(1),
		"length mismatch should be invalid")
	assert.Error(t, h.Validate(3), "wrong dimension count should be invalid")
}

func TestHistoryBestIndex(t *testing.T) {
	h := History{
		X: [][]float64{{0}, {1}, {2}, {3}},
		Y: []float64{2.0, -1.0, 0.5, -1.0},
	}
	// Ties go to the earliest observation.
	assert.Equal(t, 1, h.BestIndex())

	assert.Equal(t, -1, History{}.BestIndex())
}

func TestErrorContext(t *testing.T) {
	err := NewError("fit failed").WithOperation("FitAndSuggest").WithComponent("engine")
	assert.Equal(t, "engine: FitAndSuggest: fit failed", err.Error())

	wrapped := WrapErrorf(assert.AnError, "while fitting %d points", 3)
	assert.ErrorIs(t, wrapped, assert.AnError)
	assert.Contains(t, wrapped.Error(), "while fitting 3 points")

	assert.Nil(t, WrapError(nil, "no-op"))
}
