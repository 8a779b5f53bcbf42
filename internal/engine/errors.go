package engine

import (
	"errors"
	"fmt"
)

// Error variables for engine selection and compilation.
var (
	ErrUnknownEngine = errors.New("unrecognized engine")
	ErrCompile       = errors.New("failed to compile pattern")
)

// CompileError is returned when a backend rejects a pattern.
//
// It matches [ErrCompile] with errors.Is and also unwraps to the backend's own
// error, so callers can still reach e.g. a *syntax.Error with errors.As.
type CompileError struct {
	Kind    Kind
	Pattern string
	Err     error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%s with %s: %v", ErrCompile, e.Kind, e.Err)
}

func (e *CompileError) Unwrap() []error {
	return []error{ErrCompile, e.Err}
}
