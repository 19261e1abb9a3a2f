package pigen

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidConfig   = errors.New("invalid configuration")
	ErrStageResolution = errors.New("stage resolution failed")
)

// Wraps a sentinel error with a formatted detail message.
func wrapf(sentinel error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(format, args...))
}
