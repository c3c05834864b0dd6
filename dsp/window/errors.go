package window

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSize is returned for a window length below one.
	ErrInvalidSize = errors.New("window: size must be > 0")

	// ErrUnknownType is returned for an unrecognised window type.
	ErrUnknownType = errors.New("window: unknown window type")

	errZeroGain = errors.New("window: coefficients have zero power gain")
)

func validateLength(size int) error {
	if size <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}

	return nil
}
