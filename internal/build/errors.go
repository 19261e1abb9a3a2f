package build

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidPiGenDir = errors.New("invalid pi-gen directory")
	ErrBuild           = errors.New("build failed")
)

// Wraps a sentinel error with a formatted detail message.
func wrapf(sentinel error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(format, args...))
}
