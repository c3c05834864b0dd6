// Package bank redistributes a power spectrum onto a set of Butterworth-shaped
// band-pass responses.
//
// The input is one power value per channel, each channel tagged with its
// centre frequency (typically FFT bins from [spectrum]). For every output
// band with centre frequency fm the bank sums
//
//	p / (1 + qDesign^(2n) * g^(2n)),   g = f/fm - fm/f
//
// over all input channels whose power exceeds [PowerSkip]. The reference Q
// follows from the fractional-octave bandwidth r,
//
//	qRef = 1 / (2^(r/2) - 2^(-r/2))
//
// so that the response is -3 dB at the nominal band edges, and the design Q
// compensates for summing a discrete spectrum instead of integrating a
// continuous one:
//
//	qDesign = qRef * c / sin(c),   c = pi / (2n)
//
// Centre frequencies can be the IEC 61260 nominal octave or third-octave
// series, exact base-10 series inside a frequency range, bark-spaced centres
// or any custom list. The bank is stateless across calls.
//
// Basic usage:
//
//	thirdOctave := bank.NewModule(bank.WithDecibels(true))
//	if err := thirdOctave.Initialize(powerSpectrum); err != nil {
//	    return err
//	}
//	_ = thirdOctave.Process(powerSpectrum)
//	levels := thirdOctave.Output()
package bank
