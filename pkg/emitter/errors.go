package emitter

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is the sentinel wrapped by every ValidationError
var ErrInvalidInput = errors.New("invalid input")

// ValidationError reports a naming field that cannot be emitted
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}
