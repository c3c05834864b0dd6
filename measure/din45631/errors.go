package din45631

import "errors"

var (
	// ErrChannelCount is returned when the input does not carry exactly
	// NumBands channels.
	ErrChannelCount = errors.New("din45631: input must have 28 third-octave channels")

	// ErrCentreFreqs is returned when the input centre frequencies differ
	// from the nominal third-octave list.
	ErrCentreFreqs = errors.New("din45631: input centre frequencies do not match the third-octave series")

	// ErrUnknownField is returned for an unrecognised sound field.
	ErrUnknownField = errors.New("din45631: unknown sound field")
)
