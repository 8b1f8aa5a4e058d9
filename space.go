package spearmint

import (
	"math"
	"math/rand"
	"sort"

	"gopkg.in/yaml.v3"
)

// Type identifies the kind of a parameter.
type Type string

const (
	// TypeInt is an integer parameter with inclusive bounds.
	TypeInt Type = "int"
	// TypeFloat is a continuous parameter with inclusive bounds.
	TypeFloat Type = "float"
	// TypeEnum is a discrete choice among named options.
	TypeEnum Type = "enum"
)

// Spec declares the domain of a single parameter.
type Spec struct {
	// Type is one of int, float or enum.
	Type Type `yaml:"type"`

	// Min and Max are the inclusive bounds for numeric parameters.
	// For int parameters they must contain at least one integer.
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`

	// Options is the ordered list of valid values for enum parameters.
	Options []string `yaml:"options,omitempty"`
}

// intBounds returns the inclusive integer bounds of an int spec.
func (sp Spec) intBounds() (int64, int64) {
	return int64(math.Ceil(sp.Min)), int64(math.Floor(sp.Max))
}

// optionIndex returns the index of opt in the spec's options, or -1.
func (sp Spec) optionIndex(opt string) int {
	for i, o := range sp.Options {
		if o == opt {
			return i
		}
	}
	return -1
}

// Space is an immutable, ordered parameter-space schema. The iteration order
// is lexicographic by parameter name and fixed for the lifetime of the
// space; it determines the positional encoding handed to the engine.
type Space struct {
	specs map[string]Spec
	names []string
}

// NewSpace validates the given specs and builds a Space from them. The map
// is copied; later mutation of the argument has no effect.
func NewSpace(specs map[string]Spec) (*Space, error) {
	const op = "NewSpace"

	if len(specs) == 0 {
		return nil, newError(ErrSchema, op, "", "parameter space must not be empty")
	}

	names := make([]string, 0, len(specs))
	copied := make(map[string]Spec, len(specs))
	for name, sp := range specs {
		if name == "" {
			return nil, newError(ErrSchema, op, "", "parameter name must not be empty")
		}
		if err := validateSpec(op, name, sp); err != nil {
			return nil, err
		}
		names = append(names, name)
		copied[name] = Spec{
			Type:    sp.Type,
			Min:     sp.Min,
			Max:     sp.Max,
			Options: append([]string(nil), sp.Options...),
		}
	}
	sort.Strings(names)

	return &Space{specs: copied, names: names}, nil
}

// ParseSpace builds a Space from a YAML document mapping parameter names to
// specs, the same shape the in-code constructor takes:
//
//	x:
//	  type: float
//	  min: -2
//	  max: 2
//	function:
//	  type: enum
//	  options: [sin, cos]
func ParseSpace(data []byte) (*Space, error) {
	var specs map[string]Spec
	if err := yaml.Unmarshal(data, &specs); err != nil {
		return nil, wrapError(ErrSchema, "ParseSpace", err)
	}
	return NewSpace(specs)
}

func validateSpec(op, name string, sp Spec) error {
	switch sp.Type {
	case TypeInt, TypeFloat:
		if len(sp.Options) > 0 {
			return newError(ErrSchema, op, name, "numeric parameter must not declare options")
		}
		if math.IsNaN(sp.Min) || math.IsNaN(sp.Max) || math.IsInf(sp.Min, 0) || math.IsInf(sp.Max, 0) {
			return newError(ErrSchema, op, name, "bounds must be finite")
		}
		if sp.Min >= sp.Max {
			return newError(ErrSchema, op, name, "min %v must be less than max %v", sp.Min, sp.Max)
		}
		if sp.Type == TypeInt {
			if lo, hi := sp.intBounds(); lo > hi {
				return newError(ErrSchema, op, name, "bounds [%v, %v] contain no integer", sp.Min, sp.Max)
			}
		}
	case TypeEnum:
		if len(sp.Options) == 0 {
			return newError(ErrSchema, op, name, "enum parameter must declare options")
		}
		seen := make(map[string]struct{}, len(sp.Options))
		for _, o := range sp.Options {
			if _, dup := seen[o]; dup {
				return newError(ErrSchema, op, name, "duplicate enum option %q", o)
			}
			seen[o] = struct{}{}
		}
	case "":
		return newError(ErrSchema, op, name, "missing parameter type")
	default:
		return newError(ErrSchema, op, name, "unknown parameter type %q", sp.Type)
	}
	return nil
}

// Len returns the number of parameters in the space.
func (s *Space) Len() int {
	return len(s.names)
}

// Names returns the parameter names in encoding order.
func (s *Space) Names() []string {
	return append([]string(nil), s.names...)
}

// Spec returns the spec for the named parameter.
func (s *Space) Spec(name string) (Spec, bool) {
	sp, ok := s.specs[name]
	return sp, ok
}

// checkTrial validates that a trial exactly covers the space and that every
// value lies inside its declared domain.
func (s *Space) checkTrial(op string, t Trial) error {
	if len(t) != len(s.names) {
		for name := range t {
			if _, ok := s.specs[name]; !ok {
				return newError(ErrDomain, op, name, "parameter is not declared in the space")
			}
		}
		for _, name := range s.names {
			if _, ok := t[name]; !ok {
				return newError(ErrDomain, op, name, "trial is missing a declared parameter")
			}
		}
	}

	for _, name := range s.names {
		sp := s.specs[name]
		v, ok := t[name]
		if !ok {
			return newError(ErrDomain, op, name, "trial is missing a declared parameter")
		}
		if v.Type() != sp.Type {
			return newError(ErrDomain, op, name, "value has type %s, want %s", v.Type(), sp.Type)
		}
		switch sp.Type {
		case TypeInt:
			lo, hi := sp.intBounds()
			if iv := v.Int(); iv < lo || iv > hi {
				return newError(ErrDomain, op, name, "value %d outside [%d, %d]", iv, lo, hi)
			}
		case TypeFloat:
			fv := v.Float()
			if math.IsNaN(fv) || fv < sp.Min || fv > sp.Max {
				return newError(ErrDomain, op, name, "value %v outside [%v, %v]", fv, sp.Min, sp.Max)
			}
		case TypeEnum:
			if sp.optionIndex(v.Enum()) < 0 {
				return newError(ErrDomain, op, name, "value %q is not a declared option", v.Enum())
			}
		}
	}
	return nil
}

// sample draws one trial, each parameter independently uniform over its
// declared domain.
func (s *Space) sample(rng *rand.Rand) Trial {
	t := make(Trial, len(s.names))
	for _, name := range s.names {
		sp := s.specs[name]
		switch sp.Type {
		case TypeInt:
			lo, hi := sp.intBounds()
			t[name] = IntValue(lo + rng.Int63n(hi-lo+1))
		case TypeFloat:
			t[name] = FloatValue(sp.Min + rng.Float64()*(sp.Max-sp.Min))
		case TypeEnum:
			t[name] = EnumValue(sp.Options[rng.Intn(len(sp.Options))])
		}
	}
	return t
}
