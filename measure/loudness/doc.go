// Package loudness assembles the DIN 45631 main-loudness model from the
// stages in this module.
//
// The model cuts the input into overlapping frames, applies a power-normalised
// Hann window, computes a calibrated power spectrum, redistributes it onto the
// 28 third-octave bands from 25 Hz to 12.5 kHz and converts the band levels
// to main loudness per critical band. The main loudness is then smoothed by a
// third-order Butterworth low-pass and averaged over a sliding window.
//
// Every intermediate result is available from the returned chain by tag.
package loudness
