package kernels

import (
	"math"
	"testing"
)

func TestRBFEval(t *testing.T) {
	k := NewRBF(1.0, 1.0)

	// At zero distance the kernel equals the signal variance.
	if got := k.Eval([]float64{1, 2}, []float64{1, 2}); math.Abs(got-1.0) > 1e-12 {
		t.Errorf("k(x,x) = %v, want 1.0", got)
	}

	// Symmetry.
	a, b := []float64{0, 0}, []float64{1, 0.5}
	if k.Eval(a, b) != k.Eval(b, a) {
		t.Error("kernel should be symmetric")
	}

	// Monotone decay with distance.
	near := k.Eval([]float64{0}, []float64{0.5})
	far := k.Eval([]float64{0}, []float64{2.0})
	if near <= far {
		t.Errorf("kernel should decay with distance: near=%v far=%v", near, far)
	}

	// Known value: exp(-r^2 / (2 l^2)) at r=1, l=1.
	if got, want := k.Eval([]float64{0}, []float64{1}), math.Exp(-0.5); math.Abs(got-want) > 1e-12 {
		t.Errorf("k(0,1) = %v, want %v", got, want)
	}
}

func TestMatern52Eval(t *testing.T) {
	k := NewMatern52(1.0, 2.0)

	if got := k.Eval([]float64{3}, []float64{3}); math.Abs(got-2.0) > 1e-12 {
		t.Errorf("k(x,x) = %v, want signal variance 2.0", got)
	}

	a, b := []float64{0, 1}, []float64{1, 0}
	if k.Eval(a, b) != k.Eval(b, a) {
		t.Error("kernel should be symmetric")
	}

	near := k.Eval([]float64{0}, []float64{0.1})
	far := k.Eval([]float64{0}, []float64{3.0})
	if near <= far {
		t.Errorf("kernel should decay with distance: near=%v far=%v", near, far)
	}
}

func TestSetHyperparameters(t *testing.T) {
	for _, k := range []Kernel{NewRBF(1, 1), NewMatern52(1, 1)} {
		if err := k.SetHyperparameters([]float64{2.0, 0.5}); err != nil {
			t.Fatalf("valid hyperparameters rejected: %v", err)
		}
		got := k.Hyperparameters()
		if got[0] != 2.0 || got[1] != 0.5 {
			t.Errorf("hyperparameters = %v, want [2 0.5]", got)
		}

		if err := k.SetHyperparameters([]float64{1.0}); err == nil {
			t.Error("expected error for wrong parameter count")
		}
		if err := k.SetHyperparameters([]float64{-1.0, 1.0}); err == nil {
			t.Error("expected error for non-positive parameter")
		}
	}
}

func TestConstructorPanics(t *testing.T) {
	assertPanics := func(name string, f func()) {
		defer func() {
			if recover() == nil {
				t.Errorf("%s: expected panic", name)
			}
		}()
		f()
	}

	assertPanics("RBF zero length scale", func() { NewRBF(0, 1) })
	assertPanics("RBF negative signal variance", func() { NewRBF(1, -1) })
	assertPanics("Matern52 zero length scale", func() { NewMatern52(0, 1) })
}
