package tag

import (
	"errors"
	"fmt"
)

var (
	ErrTargetMustBePointer = errors.New("target must be a pointer")
	ErrTargetIsNil         = errors.New("target is nil")
	ErrUnsupportedType     = errors.New("unsupported type")
	ErrMaxDepthExceeded    = errors.New("max recursion depth exceeded")
	ErrOverflow            = errors.New("value overflows field")
)

// FieldError reports a default tag whose value cannot be stored in its field
type FieldError struct {
	Path  string // dotted Go field path, e.g. "Log.File.MaxAge"
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("default for %s (%q): %v", e.Path, e.Value, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
