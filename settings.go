package spearmint

import (
	"github.com/caarlos0/env/v10"

	"github.com/copyleftdev/spearmint/optimize/kernels"
)

// Kernel names accepted by Settings.Kernel.
const (
	KernelMatern52 = "matern52"
	KernelRBF      = "rbf"
)

// Settings are the tunables of the optimizer and its default engine. Zero
// configuration works: DefaultSettings matches the envDefault tags.
type Settings struct {
	// Seed seeds both the random-suggestion source and the engine's
	// acquisition restarts. Zero means seed from the clock.
	Seed int64 `env:"SPEARMINT_SEED" envDefault:"0"`

	// Maximize flips the optimization direction; the default is to
	// minimize the objective.
	Maximize bool `env:"SPEARMINT_MAXIMIZE" envDefault:"false"`

	// Noiseless declares the objective free of observation noise; the
	// engine then fits with only a numerical-stability noise floor.
	Noiseless bool `env:"SPEARMINT_NOISELESS" envDefault:"false"`

	// NoiseVariance is the observation noise assumed by the engine when
	// the objective is not noiseless.
	NoiseVariance float64 `env:"SPEARMINT_NOISE_VARIANCE" envDefault:"1e-6"`

	// Xi is the Expected Improvement exploration margin.
	Xi float64 `env:"SPEARMINT_EI_XI" envDefault:"0.01"`

	// Restarts is the number of acquisition-search starting points; zero
	// lets the engine pick from the dimension count.
	Restarts int `env:"SPEARMINT_RESTARTS" envDefault:"0"`

	// Kernel selects the GP covariance: matern52 or rbf.
	Kernel string `env:"SPEARMINT_KERNEL" envDefault:"matern52"`

	// LengthScale and SignalVariance are the kernel hyperparameters.
	LengthScale    float64 `env:"SPEARMINT_LENGTH_SCALE" envDefault:"1"`
	SignalVariance float64 `env:"SPEARMINT_SIGNAL_VARIANCE" envDefault:"1"`

	// LogLevel is the default logger's threshold (debug, info, warn,
	// error). Ignored when a logger is supplied explicitly.
	LogLevel string `env:"SPEARMINT_LOG_LEVEL" envDefault:"warn"`
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		NoiseVariance:  1e-6,
		Xi:             0.01,
		Kernel:         KernelMatern52,
		LengthScale:    1,
		SignalVariance: 1,
		LogLevel:       "warn",
	}
}

// LoadSettings reads settings from SPEARMINT_* environment variables,
// falling back to the defaults for anything unset.
func LoadSettings() (Settings, error) {
	var s Settings
	if err := env.Parse(&s); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// noiseFloor is the residual noise used for noiseless objectives; a strictly
// zero diagonal makes the kernel matrix numerically singular.
const noiseFloor = 1e-10

func (s Settings) effectiveNoise() float64 {
	if s.Noiseless {
		return noiseFloor
	}
	return s.NoiseVariance
}

func (s Settings) validate() error {
	const op = "Settings"
	switch s.Kernel {
	case KernelMatern52, KernelRBF:
	default:
		return newError(ErrSchema, op, "", "unknown kernel %q", s.Kernel)
	}
	if s.NoiseVariance <= 0 {
		return newError(ErrSchema, op, "", "noise variance must be positive, got %v", s.NoiseVariance)
	}
	if s.Xi <= 0 {
		return newError(ErrSchema, op, "", "xi must be positive, got %v", s.Xi)
	}
	if s.Restarts < 0 {
		return newError(ErrSchema, op, "", "restarts must not be negative, got %d", s.Restarts)
	}
	if s.LengthScale <= 0 || s.SignalVariance <= 0 {
		return newError(ErrSchema, op, "", "kernel hyperparameters must be positive")
	}
	return nil
}

func (s Settings) kernel() kernels.Kernel {
	if s.Kernel == KernelRBF {
		return kernels.NewRBF(s.LengthScale, s.SignalVariance)
	}
	return kernels.NewMatern52(s.LengthScale, s.SignalVariance)
}
