package movingsum

import "errors"

// ErrInvalidWindow is returned when the window resolves to fewer than one sample.
var ErrInvalidWindow = errors.New("movingsum: invalid window")
