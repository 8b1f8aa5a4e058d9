// Package spearmint tunes the parameters of an expensive black-box function
// with Bayesian optimization.
//
// A Space declares the tunable parameters and their domains; the Optimizer
// suggests trials, accepts observed objective values, and tracks the best
// result. Model-based suggestions come from a pluggable engine (see the
// optimize package); the default fits a Gaussian process and maximizes
// Expected Improvement.
//
// Typical loop:
//
//	space, err := spearmint.NewSpace(map[string]spearmint.Spec{
//		"x":        {Type: spearmint.TypeFloat, Min: -2, Max: 2},
//		"y":        {Type: spearmint.TypeInt, Min: 0, Max: 3},
//		"function": {Type: spearmint.TypeEnum, Options: []string{"sin", "cos"}},
//	})
//	if err != nil {
//		return err
//	}
//	opt, err := spearmint.New(space, spearmint.WithSeed(42))
//	if err != nil {
//		return err
//	}
//
//	// Seed the model with a few random trials.
//	for i := 0; i < 5; i++ {
//		trial := opt.SuggestRandom()
//		if err := opt.Update(trial, objective(trial)); err != nil {
//			return err
//		}
//	}
//
//	// Then let the model drive.
//	for i := 0; i < 50; i++ {
//		trial, err := opt.Suggest(ctx)
//		if err != nil {
//			return err
//		}
//		if err := opt.Update(trial, objective(trial)); err != nil {
//			return err
//		}
//	}
//
//	best, value, err := opt.Best()
//
// The objective is minimized by default; pass WithMaximize to flip the
// direction. All Optimizer methods are safe for concurrent use, but Suggest
// holds the optimizer lock for the duration of the engine call.
package spearmint
