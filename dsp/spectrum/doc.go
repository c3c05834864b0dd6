// Package spectrum turns windowed frames into calibrated one-sided power
// spectra.
//
// Each input channel must carry a single frame. The output holds one channel
// per non-negative frequency bin, tagged with the bin frequency k*fs/N, and
// one sample per frame. Its sample rate is the input frame rate, so stages
// downstream of the spectrum run at frame rate.
package spectrum
