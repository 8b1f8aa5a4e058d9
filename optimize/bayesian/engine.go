// Package bayesian implements the default suggestion engine: Gaussian
// process regression with Expected Improvement maximized by multistart
// Nelder-Mead.
package bayesian

import (
	"context"
	"math"
	"math/rand"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
	gonumopt "gonum.org/v1/gonum/optimize"

	"github.com/copyleftdev/spearmint/optimize"
	"github.com/copyleftdev/spearmint/optimize/acquisition"
	"github.com/copyleftdev/spearmint/optimize/kernels"
)

const component = "bayesian_engine"

// Config controls the engine's model and acquisition search.
type Config struct {
	// Kernel is the GP covariance function. Defaults to Matérn 5/2 with
	// unit length scale and unit signal variance.
	Kernel kernels.Kernel

	// NoiseVariance is the observation noise added to the kernel diagonal.
	// Defaults to 1e-6, which also keeps the fit numerically stable for
	// noiseless objectives.
	NoiseVariance float64

	// Xi is the Expected Improvement exploration margin. Defaults to 0.01.
	Xi float64

	// Restarts is the number of Nelder-Mead starting points. Zero picks
	// 5 + 5*sqrt(dims) automatically.
	Restarts int

	// Seed seeds the engine's random start generation.
	Seed int64

	// Logger receives fit diagnostics. Nil disables logging.
	Logger *zap.Logger
}

// Engine proposes the next point to evaluate by fitting a GP to the history
// and maximizing Expected Improvement over the problem bounds.
//
// An Engine is not safe for concurrent use; the facade serializes calls.
type Engine struct {
	kernel   kernels.Kernel
	noiseVar float64
	xi       float64
	restarts int
	rng      *rand.Rand
	logger   *zap.Logger
}

// New creates an Engine from cfg, applying defaults for zero fields.
func New(cfg Config) *Engine {
	if cfg.Kernel == nil {
		cfg.Kernel = kernels.NewMatern52(1.0, 1.0)
	}
	if cfg.NoiseVariance <= 0 {
		cfg.NoiseVariance = 1e-6
	}
	if cfg.Xi <= 0 {
		cfg.Xi = 0.01
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Engine{
		kernel:   cfg.Kernel,
		noiseVar: cfg.NoiseVariance,
		xi:       cfg.Xi,
		restarts: cfg.Restarts,
		rng:      rand.New(rand.NewSource(cfg.Seed)),
		logger:   cfg.Logger.Named(component),
	}
}

// FitAndSuggest fits the GP to the history and returns the in-bounds point
// maximizing Expected Improvement. Categorical dimensions of the returned
// point are snapped to valid option indices.
func (e *Engine) FitAndSuggest(ctx context.Context, p optimize.Problem, h optimize.History) ([]float64, error) {
	const op = "FitAndSuggest"

	if err := p.Validate(); err != nil {
		return nil, optimize.WrapError(err, "invalid problem").WithOperation(op).WithComponent(component)
	}
	if err := h.Validate(p.Dims()); err != nil {
		return nil, optimize.WrapError(err, "invalid history").WithOperation(op).WithComponent(component)
	}

	dims := p.Dims()
	n := h.Len()

	X := mat.NewDense(n, dims, nil)
	y := mat.NewVecDense(n, nil)
	for i, row := range h.X {
		X.SetRow(i, row)
		y.SetVec(i, h.Y[i])
	}

	gp := NewGP(e.kernel, e.noiseVar, e.logger)
	if err := gp.Fit(X, y); err != nil {
		return nil, optimize.WrapError(err, "fitting surrogate model").
			WithOperation(op).WithComponent(component)
	}

	bestIdx := h.BestIndex()
	ei := acquisition.NewExpectedImprovement(h.Y[bestIdx], e.xi)

	e.logger.Debug("searching acquisition surface",
		zap.Int("observations", n),
		zap.Int("dims", dims),
		zap.Float64("incumbent", h.Y[bestIdx]),
	)

	// Negated EI, clamped into bounds: Nelder-Mead is unconstrained, so the
	// objective folds the box constraint in.
	negEI := func(x []float64) float64 {
		clamped := make([]float64, len(x))
		copy(clamped, x)
		p.Clamp(clamped)

		mu, sigmaSq, err := gp.Predict(mat.NewDense(1, dims, clamped))
		if err != nil {
			return math.Inf(1)
		}
		return -ei.Compute(mu.AtVec(0), math.Sqrt(sigmaSq.AtVec(0)))
	}

	starts := e.startPoints(p, h.X[bestIdx])

	best := make([]float64, dims)
	copy(best, h.X[bestIdx])
	bestVal := math.Inf(1)

	problem := gonumopt.Problem{Func: negEI}
	settings := &gonumopt.Settings{
		Converger: &gonumopt.FunctionConverge{
			Absolute:   1e-6,
			Relative:   1e-6,
			Iterations: 100,
		},
	}

	for _, start := range starts {
		select {
		case <-ctx.Done():
			return nil, optimize.WrapError(ctx.Err(), "acquisition search cancelled").
				WithOperation(op).WithComponent(component)
		default:
		}

		method := &gonumopt.NelderMead{SimplexSize: 0.2}
		result, err := gonumopt.Minimize(problem, start, settings, method)
		if err != nil {
			continue
		}
		if result.F < bestVal {
			bestVal = result.F
			copy(best, result.X)
		}
	}

	// Every restart failed outright; score the raw starts so a proposal
	// still comes back instead of an arbitrary point.
	if math.IsInf(bestVal, 1) {
		for _, start := range starts {
			if v := negEI(start); v < bestVal {
				bestVal = v
				copy(best, start)
			}
		}
	}

	p.Clamp(best)
	p.Snap(best)
	return best, nil
}

// startPoints builds the Nelder-Mead starting set: the incumbent best plus
// uniform random points inside the bounds.
func (e *Engine) startPoints(p optimize.Problem, incumbent []float64) [][]float64 {
	dims := p.Dims()
	n := e.restarts
	if n <= 0 {
		n = 5 + int(5*math.Sqrt(float64(dims)))
	}

	starts := make([][]float64, n)
	starts[0] = make([]float64, dims)
	copy(starts[0], incumbent)

	for i := 1; i < n; i++ {
		starts[i] = make([]float64, dims)
		for j := 0; j < dims; j++ {
			lo, hi := p.Bounds[j][0], p.Bounds[j][1]
			starts[i][j] = lo + e.rng.Float64()*(hi-lo)
		}
	}
	return starts
}
