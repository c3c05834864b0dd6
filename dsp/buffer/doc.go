// Package buffer provides the multi-dimensional sample buffer shared by every
// processing stage.
//
// A Buffer is addressed by (source, ear, channel, sample). Sources model
// independent input signals, ears the left/right paths of a binaural model,
// channels the frequency bands or spectral bins, and the sample axis either
// time samples or successive spectral frames.
//
// Storage is one flat []float64; [Buffer.Channel] returns the samples of a
// single (source, ear, channel) triple as a slice aliasing that storage, so
// block kernels can run on it directly:
//
//	buf, _ := buffer.New(1, 2, 28, 1, 500)
//	levels := buf.Channel(0, 0, 10)
//	levels[0] = 60
//
// Extents are fixed between calls to Initialize. Stages own their output
// buffer and only borrow their input for the duration of one Process call.
package buffer
