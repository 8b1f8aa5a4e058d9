package spearmint

import (
	"context"
	"math"
	"math/rand"
	"os"
	"sync"
	"time"

	"github.com/copyleftdev/spearmint/logging"
	"github.com/copyleftdev/spearmint/optimize"
	"github.com/copyleftdev/spearmint/optimize/bayesian"
)

// Optimizer owns a parameter space and an append-only observation history,
// and turns suggestion requests into engine calls.
//
// All methods are safe for concurrent use; a single mutex serializes them,
// so a long-running Suggest blocks concurrent Updates until it returns.
type Optimizer struct {
	space    *Space
	engine   optimize.Engine
	logger   *logging.Logger
	metrics  *metricsSet
	maximize bool

	mu      sync.Mutex
	rng     *rand.Rand
	history []Observation
}

// New creates an Optimizer over the given space. The space must come from
// NewSpace or ParseSpace and is therefore already validated; a nil space is
// rejected with ErrSchema.
func New(space *Space, opts ...Option) (*Optimizer, error) {
	const op = "New"

	if space == nil {
		return nil, newError(ErrSchema, op, "", "parameter space must not be nil")
	}

	cfg := config{settings: DefaultSettings()}
	for _, o := range opts {
		o(&cfg)
	}
	if err := cfg.settings.validate(); err != nil {
		return nil, err
	}

	logger := cfg.logger
	if logger == nil {
		logger = logging.New(logging.ParseLevel(cfg.settings.LogLevel), os.Stderr)
	}

	seed := cfg.settings.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := cfg.rng
	if rng == nil {
		rng = rand.New(rand.NewSource(seed))
	}

	engine := cfg.engine
	if engine == nil {
		engine = bayesian.New(bayesian.Config{
			Kernel:        cfg.settings.kernel(),
			NoiseVariance: cfg.settings.effectiveNoise(),
			Xi:            cfg.settings.Xi,
			Restarts:      cfg.settings.Restarts,
			Seed:          seed,
			Logger:        logging.NewZapLogger(logger),
		})
	}

	var metrics *metricsSet
	if cfg.registry != nil {
		metrics = newMetricsSet(cfg.registry)
	}

	logger.Debug("optimizer created", map[string]interface{}{
		"parameters": space.Len(),
		"maximize":   cfg.settings.Maximize,
	})

	return &Optimizer{
		space:    space,
		engine:   engine,
		logger:   logger,
		metrics:  metrics,
		maximize: cfg.settings.Maximize,
		rng:      rng,
	}, nil
}

// Space returns the optimizer's parameter space.
func (o *Optimizer) Space() *Space {
	return o.space
}

// SuggestRandom draws a trial with every parameter sampled independently and
// uniformly from its declared domain. It never consults the engine or the
// observation history.
func (o *Optimizer) SuggestRandom() Trial {
	o.mu.Lock()
	t := o.space.sample(o.rng)
	o.mu.Unlock()

	o.metrics.countSuggestion("random")
	return t
}

// Suggest asks the engine for the most promising next trial given the
// observation history.
//
// Policy: with no observations recorded yet, Suggest fails with ErrNotReady
// rather than silently falling back to random sampling; call SuggestRandom
// explicitly for the cold-start trials. Fitting the model can take a while
// on long histories; ctx is honored between acquisition restarts.
func (o *Optimizer) Suggest(ctx context.Context) (Trial, error) {
	const op = "Suggest"

	o.mu.Lock()
	defer o.mu.Unlock()

	if len(o.history) == 0 {
		return nil, newError(ErrNotReady, op, "", "record an observation or use SuggestRandom first")
	}

	prob := o.space.problem()
	hist := optimize.History{
		X: make([][]float64, len(o.history)),
		Y: make([]float64, len(o.history)),
	}
	for i, obs := range o.history {
		hist.X[i] = o.space.encode(obs.Trial)
		y := obs.Value
		if o.maximize {
			// Engines minimize; flip the objective sign.
			y = -y
		}
		hist.Y[i] = y
	}

	start := time.Now()
	x, err := o.engine.FitAndSuggest(ctx, prob, hist)
	elapsed := time.Since(start)
	o.metrics.observeEngine(elapsed)

	if err != nil {
		o.logger.WithError(err).Error("engine suggestion failed", map[string]interface{}{
			"observations": len(o.history),
		})
		return nil, wrapError(ErrEngine, op, err)
	}

	t, err := o.space.decode(x)
	if err != nil {
		return nil, wrapError(ErrEngine, op, err)
	}

	o.logger.Debug("suggested trial", map[string]interface{}{
		"observations":   len(o.history),
		"engine_seconds": elapsed.Seconds(),
	})
	o.metrics.countSuggestion("model")
	return t, nil
}

// Update records an observed objective value for a trial. The trial's keys
// must exactly match the parameter space and every value must lie in its
// declared domain; otherwise Update fails with ErrDomain and the history is
// left untouched. NaN objective values are rejected the same way.
func (o *Optimizer) Update(trial Trial, value float64) error {
	const op = "Update"

	if err := o.space.checkTrial(op, trial); err != nil {
		return err
	}
	if math.IsNaN(value) {
		return newError(ErrDomain, op, "", "objective value must not be NaN")
	}

	o.mu.Lock()
	o.history = append(o.history, Observation{Trial: trial.Clone(), Value: value})
	n := len(o.history)
	o.mu.Unlock()

	o.metrics.countUpdate()
	o.logger.Debug("recorded observation", map[string]interface{}{
		"objective":    value,
		"observations": n,
	})
	return nil
}

// Best returns the trial and objective value optimal under the configured
// direction (minimal by default). Ties resolve to the earliest-recorded
// observation. Fails with ErrEmptyHistory when nothing has been recorded.
func (o *Optimizer) Best() (Trial, float64, error) {
	const op = "Best"

	o.mu.Lock()
	defer o.mu.Unlock()

	if len(o.history) == 0 {
		return nil, 0, newError(ErrEmptyHistory, op, "", "no observations recorded")
	}

	best := 0
	for i, obs := range o.history {
		if o.better(obs.Value, o.history[best].Value) {
			best = i
		}
	}
	obs := o.history[best]
	return obs.Trial.Clone(), obs.Value, nil
}

// better reports whether a beats b under the configured direction. Strict
// comparison keeps the earliest observation on ties.
func (o *Optimizer) better(a, b float64) bool {
	if o.maximize {
		return a > b
	}
	return a < b
}

// History returns a copy of the recorded observations in insertion order.
func (o *Optimizer) History() []Observation {
	o.mu.Lock()
	defer o.mu.Unlock()

	out := make([]Observation, len(o.history))
	for i, obs := range o.history {
		out[i] = Observation{Trial: obs.Trial.Clone(), Value: obs.Value}
	}
	return out
}

// Observations returns the number of recorded observations.
func (o *Optimizer) Observations() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.history)
}
