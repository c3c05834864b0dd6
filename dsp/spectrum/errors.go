package spectrum

import "errors"

var (
	// ErrChannelCount is returned for inputs with more than one channel.
	ErrChannelCount = errors.New("spectrum: input must have exactly one channel")

	// ErrPlan is returned when no FFT plan exists for the frame size.
	ErrPlan = errors.New("spectrum: cannot plan FFT")
)
