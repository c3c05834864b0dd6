package testutil

import (
	"testing"

	"github.com/cwbudde/algo-loudness/dsp/buffer"
	"github.com/cwbudde/algo-loudness/dsp/module"
)

// RunBlocks initializes m for a mono, single-channel input of blockSize
// samples at sampleRate, feeds signal through it block by block and returns
// the concatenated output of the first output channel. len(signal) must be a
// multiple of blockSize.
func RunBlocks(t *testing.T, m module.Module, signal []float64, blockSize int, sampleRate float64) []float64 {
	t.Helper()

	if len(signal)%blockSize != 0 {
		t.Fatalf("signal length %d is not a multiple of block size %d", len(signal), blockSize)
	}

	in, err := buffer.New(1, 1, 1, blockSize, sampleRate)
	if err != nil {
		t.Fatalf("buffer.New: %v", err)
	}

	if err := m.Initialize(in); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	return FeedBlocks(t, m, in, signal)
}

// FeedBlocks feeds signal through an initialized m using in as the block
// buffer, copying every block into channel 0 of every source and ear, and
// returns the concatenated output of channel 0 of source 0, ear 0.
func FeedBlocks(t *testing.T, m module.Module, in *buffer.Buffer, signal []float64) []float64 {
	t.Helper()

	blockSize := in.Samples()
	out := make([]float64, 0, len(signal))

	for start := 0; start+blockSize <= len(signal); start += blockSize {
		for src := range in.Sources() {
			for ear := range in.Ears() {
				in.CopyChannel(src, ear, 0, signal[start:start+blockSize])
			}
		}

		if err := m.Process(in); err != nil {
			t.Fatalf("Process: %v", err)
		}

		out = append(out, m.Output().Channel(0, 0, 0)...)
	}

	return out
}
