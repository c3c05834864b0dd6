package frame

import "errors"

// ErrInvalidFraming is returned when the frame or hop size is out of range
// or the input block is longer than the hop.
var ErrInvalidFraming = errors.New("frame: invalid framing")
