package bank

import "errors"

var (
	// ErrNoCentreFreqs is returned when no output centre frequency is configured.
	ErrNoCentreFreqs = errors.New("bank: no centre frequencies")

	// ErrInvalidParameter is returned for a non-positive order, bandwidth or
	// centre frequency.
	ErrInvalidParameter = errors.New("bank: invalid parameter")
)
