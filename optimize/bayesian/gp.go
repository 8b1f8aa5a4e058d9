package bayesian

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"

	"github.com/copyleftdev/spearmint/optimize"
)

// GP is a Gaussian process regression model over the encoded search space.
// Fit must be called before Predict.
type GP struct {
	kernel   covariance
	noiseVar float64

	// Training data, copied on Fit.
	x *mat.Dense
	y *mat.VecDense

	// Precomputed solve of K * alpha = y and the Cholesky factor of K.
	alpha *mat.VecDense
	chol  *mat.Cholesky

	pool   *matrixPool
	logger *zap.Logger
}

// covariance is the minimal kernel contract the GP needs. It matches
// kernels.Kernel without importing the package, so custom covariances can be
// dropped in for tests.
type covariance interface {
	Eval(x1, x2 []float64) float64
}

// NewGP creates a Gaussian process with the given kernel and noise variance.
// A nil logger disables logging.
func NewGP(kernel covariance, noiseVar float64, logger *zap.Logger) *GP {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GP{
		kernel:   kernel,
		noiseVar: noiseVar,
		pool:     newMatrixPool(),
		logger:   logger.Named("gaussian_process"),
	}
}

// Fit conditions the model on the training inputs X and targets y.
func (gp *GP) Fit(X *mat.Dense, y *mat.VecDense) error {
	const op = "GP.Fit"

	if X == nil || y == nil {
		return optimize.WrapError(errors.New("input matrices must not be nil"), op)
	}

	nSamples, nFeatures := X.Dims()
	if nSamples == 0 || nFeatures == 0 {
		return optimize.WrapError(errors.New("input matrix X must not be empty"), op)
	}
	if nSamples != y.Len() {
		return optimize.WrapError(
			fmt.Errorf("dimension mismatch: X has %d samples but y has length %d", nSamples, y.Len()),
			op,
		)
	}

	gp.logger.Debug("fitting GP model",
		zap.Int("samples", nSamples),
		zap.Int("features", nFeatures),
		zap.Float64("noise_var", gp.noiseVar),
	)

	gp.x = mat.DenseCopyOf(X)
	gp.y = mat.VecDenseCopyOf(y)

	K := gp.pool.GetSymDense(nSamples)
	defer gp.pool.PutSymDense(K)

	for i := 0; i < nSamples; i++ {
		xi := gp.x.RawRowView(i)
		K.SetSym(i, i, gp.kernel.Eval(xi, xi)+gp.noiseVar)
		for j := i + 1; j < nSamples; j++ {
			K.SetSym(i, j, gp.kernel.Eval(xi, gp.x.RawRowView(j)))
		}
	}

	chol, err := gp.factorize(K, nSamples)
	if err != nil {
		return optimize.WrapError(err, op)
	}
	gp.chol = chol

	alpha := mat.NewVecDense(nSamples, nil)
	if err := chol.SolveVecTo(alpha, gp.y); err != nil {
		alpha, err = gp.solveWithSVD(K, nSamples)
		if err != nil {
			return optimize.WrapError(err, op)
		}
	}
	gp.alpha = alpha

	return nil
}

// factorize computes a Cholesky decomposition of K, escalating the diagonal
// jitter until the matrix is numerically positive definite.
func (gp *GP) factorize(K *mat.SymDense, n int) (*mat.Cholesky, error) {
	const maxAttempts = 10

	jitter := 0.0
	for attempt := 0; attempt < maxAttempts; attempt++ {
		Kj := mat.NewSymDense(n, nil)
		Kj.CopySym(K)
		if jitter > 0 {
			for i := 0; i < n; i++ {
				Kj.SetSym(i, i, Kj.At(i, i)+jitter)
			}
		}

		var chol mat.Cholesky
		if chol.Factorize(Kj) {
			if jitter > 0 {
				gp.logger.Debug("factorized kernel matrix with jitter",
					zap.Float64("jitter", jitter),
					zap.Int("attempt", attempt+1),
				)
			}
			return &chol, nil
		}

		if jitter == 0 {
			jitter = 1e-10
		} else {
			jitter *= 10
		}
	}

	return nil, fmt.Errorf("kernel matrix not positive definite after %d jitter attempts", maxAttempts)
}

// solveWithSVD solves K * alpha = y via a pseudoinverse. Last resort for
// kernel matrices the jittered Cholesky could not handle.
func (gp *GP) solveWithSVD(K *mat.SymDense, n int) (*mat.VecDense, error) {
	var svd mat.SVD
	if !svd.Factorize(K, mat.SVDFull) {
		return nil, errors.New("SVD factorization failed")
	}

	s := svd.Values(nil)
	if len(s) == 0 {
		return nil, errors.New("SVD returned no singular values")
	}
	threshold := math.Max(float64(n), 1.0) * s[0] * 1e-15

	var U, V mat.Dense
	svd.UTo(&U)
	svd.VTo(&V)

	var UTy mat.VecDense
	UTy.MulVec(U.T(), gp.y)

	rank := 0
	scaled := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		if i < len(s) && s[i] > threshold {
			scaled.SetVec(i, UTy.AtVec(i)/s[i])
			rank++
		}
	}
	if rank == 0 {
		return nil, errors.New("kernel matrix is effectively rank zero")
	}

	gp.logger.Debug("solved GP system with SVD fallback",
		zap.Int("effective_rank", rank),
		zap.Float64("max_singular_value", s[0]),
	)

	alpha := mat.NewVecDense(n, nil)
	alpha.MulVec(&V, scaled)
	return alpha, nil
}

// Predict returns the posterior mean and variance at each row of X.
func (gp *GP) Predict(X *mat.Dense) (*mat.VecDense, *mat.VecDense, error) {
	const op = "GP.Predict"

	if X == nil {
		return nil, nil, optimize.WrapError(errors.New("input matrix X is nil"), op)
	}
	if gp.x == nil || gp.alpha == nil {
		return nil, nil, optimize.WrapError(errors.New("model not trained or no training data"), op)
	}

	nTest, _ := X.Dims()
	nTrain, _ := gp.x.Dims()

	mean := mat.NewVecDense(nTest, nil)
	variance := mat.NewVecDense(nTest, nil)

	Kss := make([]float64, nTest)
	Kstar := mat.NewDense(nTest, nTrain, nil)
	for i := 0; i < nTest; i++ {
		xStar := X.RawRowView(i)
		Kss[i] = gp.kernel.Eval(xStar, xStar) + gp.noiseVar
		for j := 0; j < nTrain; j++ {
			Kstar.Set(i, j, gp.kernel.Eval(xStar, gp.x.RawRowView(j)))
		}
	}

	mean.MulVec(Kstar, gp.alpha)

	// variance_i = Kss_i - Kstar_i K^-1 Kstar_i^T, with v = K^-1 Kstar^T.
	if gp.chol != nil {
		v := mat.NewDense(nTrain, nTest, nil)
		if err := gp.chol.SolveTo(v, Kstar.T()); err != nil {
			return nil, nil, optimize.WrapError(
				fmt.Errorf("failed to solve linear system: %w", err), op)
		}
		for i := 0; i < nTest; i++ {
			var sum float64
			for j := 0; j < nTrain; j++ {
				sum += Kstar.At(i, j) * v.At(j, i)
			}
			variance.SetVec(i, math.Max(0, Kss[i]-sum))
		}
	}

	return mean, variance, nil
}
