package buffer

import "errors"

// ErrInvalidShape is returned when a buffer is initialized with non-positive
// extents or a non-positive sample rate.
var ErrInvalidShape = errors.New("buffer: invalid shape")
