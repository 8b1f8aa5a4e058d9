package spearmint

import (
	"errors"
	"fmt"
)

// Sentinel error kinds. Every error the library returns matches exactly one
// of these under errors.Is.
var (
	// ErrSchema marks a malformed parameter space at construction.
	ErrSchema = errors.New("invalid parameter space")

	// ErrDomain marks a trial whose keys or values fall outside the
	// declared parameter space.
	ErrDomain = errors.New("trial outside declared domain")

	// ErrNotReady marks a model-based suggestion requested before any
	// observation was recorded.
	ErrNotReady = errors.New("no observations recorded")

	// ErrEmptyHistory marks a best-parameters query on an empty history.
	ErrEmptyHistory = errors.New("observation history is empty")

	// ErrEngine wraps a failure inside the suggestion engine.
	ErrEngine = errors.New("suggestion engine failed")
)

// Error is the concrete error type returned by the library. It ties a
// sentinel kind to the operation and parameter involved, and wraps the
// underlying cause, if any.
type Error struct {
	// Kind is one of the sentinel errors above.
	Kind error
	// Op is the operation that failed.
	Op string
	// Param is the parameter the failure concerns, when there is one.
	Param string
	// Message describes the failure.
	Message string
	// Err is the underlying cause, if any.
	Err error
}

// Error returns the string representation of the error.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	s := e.Op
	if e.Param != "" {
		if s != "" {
			s += ": "
		}
		s += fmt.Sprintf("parameter %q", e.Param)
	}
	if e.Message != "" {
		if s != "" {
			s += ": "
		}
		s += e.Message
	}
	if e.Err != nil {
		if s != "" {
			s += ": "
		}
		s += e.Err.Error()
	}
	return s
}

// Is reports whether target is the error's kind, so callers can match with
// errors.Is(err, spearmint.ErrDomain) and friends.
func (e *Error) Is(target error) bool {
	return e != nil && target == e.Kind
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func newError(kind error, op, param, format string, args ...interface{}) *Error {
	return &Error{
		Kind:    kind,
		Op:      op,
		Param:   param,
		Message: fmt.Sprintf(format, args...),
	}
}

func wrapError(kind error, op string, err error) *Error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, Err: err}
}
