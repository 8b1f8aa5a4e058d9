package spearmint

import (
	"math/rand"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/copyleftdev/spearmint/logging"
	"github.com/copyleftdev/spearmint/optimize"
)

type config struct {
	settings Settings
	engine   optimize.Engine
	rng      *rand.Rand
	logger   *logging.Logger
	registry prometheus.Registerer
}

// Option configures an Optimizer at construction.
type Option func(*config)

// WithSettings replaces the default settings wholesale. Later options still
// override individual fields.
func WithSettings(s Settings) Option {
	return func(c *config) {
		c.settings = s
	}
}

// WithSeed fixes the random seed for reproducible runs.
func WithSeed(seed int64) Option {
	return func(c *config) {
		c.settings.Seed = seed
	}
}

// WithMaximize makes higher objective values better. The default direction
// is minimization.
func WithMaximize() Option {
	return func(c *config) {
		c.settings.Maximize = true
	}
}

// WithNoiselessObjective declares the objective free of observation noise.
func WithNoiselessObjective() Option {
	return func(c *config) {
		c.settings.Noiseless = true
	}
}

// WithEngine swaps the model-based suggestion engine. Any implementation of
// optimize.Engine works; the default is the built-in Gaussian process.
func WithEngine(e optimize.Engine) Option {
	return func(c *config) {
		c.engine = e
	}
}

// WithRand injects the random source used by SuggestRandom.
func WithRand(rng *rand.Rand) Option {
	return func(c *config) {
		c.rng = rng
	}
}

// WithLogger sets the logger. The default logs warnings and errors to
// stderr.
func WithLogger(l *logging.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithMetrics registers Prometheus instrumentation with reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(c *config) {
		c.registry = reg
	}
}
