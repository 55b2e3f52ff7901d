package stage

import (
	"errors"
	"fmt"
)

// Failure kinds. Match them with errors.Is.
var (
	ErrInputMissing    = errors.New("input missing")
	ErrUnsupportedKind = errors.New("unsupported document kind")
	ErrModelCall       = errors.New("model call failed")
	ErrRender          = errors.New("render failed")
)

// Error is a stage-level failure carrying its kind and cause.
type Error struct {
	// Op is the operation that failed (e.g. "extract", "translate").
	Op string
	// Kind is one of the Err* sentinels above.
	Kind error
	// Err is the underlying error, if any.
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Kind)
}

// Unwrap exposes both the kind and the cause to errors.Is / errors.As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Fail wraps err as a stage failure of the given kind.
func Fail(op string, kind error, err error) *Error {
	return &Error{Op: op, Kind: kind, Err: err}
}

// KindOf returns the failure kind of err, or nil if err is not a stage failure.
func KindOf(err error) error {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return nil
}
