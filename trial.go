package spearmint

import (
	"fmt"
	"strconv"
)

// Value is a tagged union holding one concrete parameter value: an integer,
// a float, or an enum option.
type Value struct {
	typ Type
	i   int64
	f   float64
	opt string
}

// IntValue creates an int parameter value.
func IntValue(v int64) Value {
	return Value{typ: TypeInt, i: v}
}

// FloatValue creates a float parameter value.
func FloatValue(v float64) Value {
	return Value{typ: TypeFloat, f: v}
}

// EnumValue creates an enum parameter value.
func EnumValue(option string) Value {
	return Value{typ: TypeEnum, opt: option}
}

// Type returns the kind of value held.
func (v Value) Type() Type {
	return v.typ
}

// Int returns the held integer. Zero for non-int values.
func (v Value) Int() int64 {
	return v.i
}

// Float returns the held float, or the integer converted to float64 for int
// values. Zero for enum values.
func (v Value) Float() float64 {
	if v.typ == TypeInt {
		return float64(v.i)
	}
	return v.f
}

// Enum returns the held option. Empty for numeric values.
func (v Value) Enum() string {
	return v.opt
}

// Equal reports whether two values hold the same type and content.
func (v Value) Equal(o Value) bool {
	return v == o
}

// String renders the value for logs and error messages.
func (v Value) String() string {
	switch v.typ {
	case TypeInt:
		return strconv.FormatInt(v.i, 10)
	case TypeFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case TypeEnum:
		return v.opt
	default:
		return fmt.Sprintf("<invalid %q>", string(v.typ))
	}
}

// Trial is one concrete assignment of a value to every parameter in the
// space, keyed by parameter name.
type Trial map[string]Value

// Int returns the named parameter as an integer. Zero if absent or not int.
func (t Trial) Int(name string) int64 {
	return t[name].Int()
}

// Float returns the named parameter as a float. Zero if absent.
func (t Trial) Float(name string) float64 {
	return t[name].Float()
}

// Enum returns the named enum option. Empty if absent or not enum.
func (t Trial) Enum(name string) string {
	return t[name].Enum()
}

// Clone returns an independent copy of the trial.
func (t Trial) Clone() Trial {
	c := make(Trial, len(t))
	for k, v := range t {
		c[k] = v
	}
	return c
}

// Observation pairs a trial with its measured objective value.
type Observation struct {
	Trial Trial
	Value float64
}
