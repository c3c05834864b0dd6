package butter

import "errors"

var (
	// ErrUnsupportedOrder is returned for any order other than 3.
	ErrUnsupportedOrder = errors.New("butter: unsupported filter order")

	// ErrInvalidCutoff is returned when the cutoff is not inside (0, fs/2).
	ErrInvalidCutoff = errors.New("butter: invalid cutoff frequency")
)
