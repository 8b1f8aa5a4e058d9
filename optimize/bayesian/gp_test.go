package bayesian

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/copyleftdev/spearmint/optimize/kernels"
)

func TestGPFitAndPredict(t *testing.T) {
	X := mat.NewDense(3, 1, []float64{1, 2, 3})
	y := mat.NewVecDense(3, []float64{1, 2, 1})

	gp := NewGP(kernels.NewRBF(1.0, 1.0), 1e-6, nil)
	require.NoError(t, gp.Fit(X, y))

	mean, variance, err := gp.Predict(mat.NewDense(3, 1, []float64{1, 2, 3}))
	require.NoError(t, err)
	require.NotNil(t, mean)
	require.NotNil(t, variance)

	// With near-zero noise the posterior should interpolate the training
	// targets closely.
	for i := 0; i < 3; i++ {
		assert.InDelta(t, y.AtVec(i), mean.AtVec(i), 0.05)
	}
}

func TestGPWithNoise(t *testing.T) {
	X := mat.NewDense(3, 1, []float64{-1, 0, 1})
	y := mat.NewVecDense(3, []float64{1, 0, 1})

	gp := NewGP(kernels.NewRBF(1.0, 1.0), 0.1, nil)
	require.NoError(t, gp.Fit(X, y))

	means, variances, err := gp.Predict(mat.NewDense(3, 1, []float64{-1, 0, 1}))
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		assert.InDelta(t, y.AtVec(i), means.AtVec(i), 0.5,
			"prediction should be close to training data")
		assert.Greater(t, variances.AtVec(i), 0.0, "variance should be positive")
	}
}

func TestGPErrorHandling(t *testing.T) {
	gp := NewGP(kernels.NewRBF(1.0, 1.0), 1e-6, nil)

	t.Run("nil input", func(t *testing.T) {
		err := gp.Fit(nil, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must not be nil")
	})

	t.Run("empty input", func(t *testing.T) {
		err := gp.Fit(&mat.Dense{}, &mat.VecDense{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must not be empty")
	})

	t.Run("mismatched dimensions", func(t *testing.T) {
		X := mat.NewDense(3, 1, []float64{1, 2, 3})
		y := mat.NewVecDense(2, []float64{1, 2})
		err := gp.Fit(X, y)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "dimension mismatch")
	})

	t.Run("predict without fit", func(t *testing.T) {
		fresh := NewGP(kernels.NewRBF(1.0, 1.0), 1e-6, nil)
		_, _, err := fresh.Predict(mat.NewDense(1, 1, []float64{0}))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not trained")
	})
}

func TestGPSingularMatrix(t *testing.T) {
	// Duplicate points make the kernel matrix singular; the jitter
	// escalation has to absorb that.
	X := mat.NewDense(3, 1, []float64{1.0, 1.0, 1.0})
	y := mat.NewVecDense(3, []float64{1.0, 1.0, 1.1})

	gp := NewGP(kernels.NewRBF(1.0, 1.0), 1e-6, nil)
	require.NoError(t, gp.Fit(X, y))

	_, variances, err := gp.Predict(mat.NewDense(1, 1, []float64{1.0}))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, variances.AtVec(0), 0.0)
}

func TestGPBatchPredict(t *testing.T) {
	X := mat.NewDense(5, 1, []float64{-2, -1, 0, 1, 2})
	y := mat.NewVecDense(5, []float64{4, 1, 0, 1, 4}) // x^2

	gp := NewGP(kernels.NewRBF(1.0, 1.0), 1e-6, nil)
	require.NoError(t, gp.Fit(X, y))

	testX := mat.NewDense(3, 1, []float64{-0.5, 0.5, 1.5})
	means, variances, err := gp.Predict(testX)
	require.NoError(t, err)

	nPoints, _ := testX.Dims()
	assert.Equal(t, nPoints, means.Len())
	assert.Equal(t, nPoints, variances.Len())

	for i := 0; i < nPoints; i++ {
		x := testX.At(i, 0)
		assert.InDelta(t, x*x, means.AtVec(i), 0.5, "prediction should be close to x^2")
		assert.GreaterOrEqual(t, variances.AtVec(i), 0.0)
	}
}

func TestGPRefit(t *testing.T) {
	gp := NewGP(kernels.NewMatern52(1.0, 1.0), 1e-6, nil)

	X1 := mat.NewDense(2, 1, []float64{0, 1})
	y1 := mat.NewVecDense(2, []float64{0, 1})
	require.NoError(t, gp.Fit(X1, y1))

	// Refitting with a different history size must not reuse stale state.
	X2 := mat.NewDense(4, 1, []float64{0, 1, 2, 3})
	y2 := mat.NewVecDense(4, []float64{0, 1, 4, 9})
	require.NoError(t, gp.Fit(X2, y2))

	mean, _, err := gp.Predict(mat.NewDense(1, 1, []float64{2}))
	require.NoError(t, err)
	assert.InDelta(t, 4.0, mean.AtVec(0), 0.5)
}
