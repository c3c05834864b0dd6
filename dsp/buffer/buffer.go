package buffer

import (
	"fmt"

	"github.com/cwbudde/algo-loudness/dsp/core"
)

// Buffer is a 4-axis sample container with per-channel metadata.
type Buffer struct {
	sources  int
	ears     int
	channels int
	samples  int

	sampleRate  float64
	frameRate   float64
	centreFreqs []float64
	triggered   bool

	data []float64
}

// New returns an initialized, zero-filled Buffer.
func New(sources, ears, channels, samples int, sampleRate float64) (*Buffer, error) {
	b := &Buffer{}
	if err := b.Initialize(sources, ears, channels, samples, sampleRate); err != nil {
		return nil, err
	}

	return b, nil
}

// NewLike returns a zero-filled Buffer with the shape and metadata of other.
func NewLike(other *Buffer) *Buffer {
	b := &Buffer{}
	b.InitializeLike(other)

	return b
}

// Initialize sets the buffer extents and sample rate and zeroes the contents.
// The frame rate defaults to sampleRate / samples and every centre frequency
// to zero. Storage is reused when the total size does not grow.
func (b *Buffer) Initialize(sources, ears, channels, samples int, sampleRate float64) error {
	if sources < 1 || ears < 1 || channels < 1 || samples < 1 {
		return fmt.Errorf("%w: %d sources, %d ears, %d channels, %d samples",
			ErrInvalidShape, sources, ears, channels, samples)
	}

	if !(sampleRate > 0) {
		return fmt.Errorf("%w: sample rate must be > 0: %v", ErrInvalidShape, sampleRate)
	}

	b.sources = sources
	b.ears = ears
	b.channels = channels
	b.samples = samples
	b.sampleRate = sampleRate
	b.frameRate = sampleRate / float64(samples)
	b.triggered = true

	b.centreFreqs = resize(b.centreFreqs, channels)
	core.Zero(b.centreFreqs)

	b.data = resize(b.data, sources*ears*channels*samples)
	core.Zero(b.data)

	return nil
}

// InitializeLike copies the shape and metadata (sample rate, frame rate,
// centre frequencies) of other and zeroes the contents.
func (b *Buffer) InitializeLike(other *Buffer) {
	b.sources = other.sources
	b.ears = other.ears
	b.channels = other.channels
	b.samples = other.samples
	b.sampleRate = other.sampleRate
	b.frameRate = other.frameRate
	b.triggered = true

	b.centreFreqs = resize(b.centreFreqs, other.channels)
	copy(b.centreFreqs, other.centreFreqs)

	b.data = resize(b.data, len(other.data))
	core.Zero(b.data)
}

func resize(s []float64, n int) []float64 {
	if cap(s) >= n {
		return s[:n]
	}

	return make([]float64, n)
}

// Sources returns the number of sources.
func (b *Buffer) Sources() int { return b.sources }

// Ears returns the number of ears.
func (b *Buffer) Ears() int { return b.ears }

// Channels returns the number of channels.
func (b *Buffer) Channels() int { return b.channels }

// Samples returns the number of samples per channel.
func (b *Buffer) Samples() int { return b.samples }

// SampleRate returns the rate of the sample axis in Hz.
func (b *Buffer) SampleRate() float64 { return b.sampleRate }

// FrameRate returns the number of blocks per second.
func (b *Buffer) FrameRate() float64 { return b.frameRate }

// SetFrameRate sets the number of blocks per second.
func (b *Buffer) SetFrameRate(rate float64) { b.frameRate = rate }

// CentreFreq returns the centre frequency of channel ch in Hz.
func (b *Buffer) CentreFreq(ch int) float64 { return b.centreFreqs[ch] }

// SetCentreFreq sets the centre frequency of channel ch in Hz.
func (b *Buffer) SetCentreFreq(ch int, hz float64) { b.centreFreqs[ch] = hz }

// CentreFreqs returns the per-channel centre frequencies. The slice aliases
// the buffer metadata and must not be modified.
func (b *Buffer) CentreFreqs() []float64 { return b.centreFreqs }

// SetCentreFreqs copies freqs into the per-channel centre frequencies.
// It returns ErrInvalidShape if len(freqs) differs from the channel count.
func (b *Buffer) SetCentreFreqs(freqs []float64) error {
	if len(freqs) != b.channels {
		return fmt.Errorf("%w: %d centre frequencies for %d channels",
			ErrInvalidShape, len(freqs), b.channels)
	}

	copy(b.centreFreqs, freqs)

	return nil
}

// Triggered reports whether the buffer holds new data from the last
// Process call of its producer.
func (b *Buffer) Triggered() bool { return b.triggered }

// SetTriggered marks whether the buffer holds new data.
func (b *Buffer) SetTriggered(triggered bool) { b.triggered = triggered }

func (b *Buffer) offset(src, ear, ch int) int {
	return ((src*b.ears+ear)*b.channels + ch) * b.samples
}

// Channel returns the samples of one (source, ear, channel) triple.
// The slice aliases the buffer storage.
func (b *Buffer) Channel(src, ear, ch int) []float64 {
	start := b.offset(src, ear, ch)
	return b.data[start : start+b.samples : start+b.samples]
}

// Sample returns one sample.
func (b *Buffer) Sample(src, ear, ch, i int) float64 {
	return b.Channel(src, ear, ch)[i]
}

// SetSample sets one sample.
func (b *Buffer) SetSample(src, ear, ch, i int, v float64) {
	b.Channel(src, ear, ch)[i] = v
}

// CopyChannel copies values into the samples of one channel and returns the
// number of copied samples.
func (b *Buffer) CopyChannel(src, ear, ch int, values []float64) int {
	return core.CopyInto(b.Channel(src, ear, ch), values)
}

// Data returns the flat storage in (source, ear, channel, sample) order.
func (b *Buffer) Data() []float64 { return b.data }

// Zero sets all samples to 0.
func (b *Buffer) Zero() {
	core.Zero(b.data)
}

// Fill sets all samples to v.
func (b *Buffer) Fill(v float64) {
	core.Fill(b.data, v)
}

// SameShape reports whether other has identical extents.
func (b *Buffer) SameShape(other *Buffer) bool {
	return b.sources == other.sources &&
		b.ears == other.ears &&
		b.channels == other.channels &&
		b.samples == other.samples
}

// CopyFrom copies the samples of other into b. Both buffers must have the
// same shape; otherwise ErrInvalidShape is returned and b is left unchanged.
func (b *Buffer) CopyFrom(other *Buffer) error {
	if !b.SameShape(other) {
		return fmt.Errorf("%w: copy between differently shaped buffers", ErrInvalidShape)
	}

	copy(b.data, other.data)

	return nil
}

// Copy returns a deep copy of the buffer, including metadata.
func (b *Buffer) Copy() *Buffer {
	c := NewLike(b)
	copy(c.data, b.data)
	c.triggered = b.triggered

	return c
}
