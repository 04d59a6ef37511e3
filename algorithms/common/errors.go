package common

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is returned when a caller violates a precondition of a
// numeric routine (empty input, non-positive window or duration, ...).
// Callers should test for it with errors.Is.
var ErrInvalidArgument = errors.New("invalid argument")

// InvalidArgument wraps ErrInvalidArgument with a formatted reason.
func InvalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}
