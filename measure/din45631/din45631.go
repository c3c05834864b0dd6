package din45631

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-loudness/dsp/buffer"
	"github.com/cwbudde/algo-loudness/dsp/module"
)

type config struct {
	field Field
}

// Option configures a MainLoudness kernel.
type Option func(*config)

// WithField selects the sound field. Defaults to FieldFree.
func WithField(f Field) Option {
	return func(cfg *config) { cfg.field = f }
}

// MainLoudness is the critical-band loudness kernel. It is stateless.
type MainLoudness struct {
	cfg config

	levels [NumBands]float64
	out    [NumOutputs]float64
}

var _ module.Kernel = (*MainLoudness)(nil)

// New returns an unconfigured MainLoudness kernel.
func New(opts ...Option) *MainLoudness {
	m := &MainLoudness{cfg: config{field: FieldFree}}
	for _, o := range opts {
		if o != nil {
			o(&m.cfg)
		}
	}

	return m
}

// NewModule returns a MainLoudness kernel wrapped in a lifecycle Stage.
func NewModule(opts ...Option) *module.Stage {
	return module.NewStage(New(opts...))
}

// NewModuleFor wraps an existing kernel in a lifecycle Stage.
func NewModuleFor(m *MainLoudness) *module.Stage {
	return module.NewStage(m)
}

// Name implements module.Kernel.
func (m *MainLoudness) Name() string { return "din45631" }

// Field returns the configured sound field.
func (m *MainLoudness) Field() Field { return m.cfg.field }

// SetField changes the sound field. Takes effect on the next Configure.
func (m *MainLoudness) SetField(f Field) { m.cfg.field = f }

// OutputCentreFreqs returns the frequencies attached to the output channels.
// The three merged low critical bands carry the geometric mean of their
// first and last third-octave centres, the reserved slot carries zero.
func OutputCentreFreqs() []float64 {
	freqs := make([]float64, NumOutputs)
	freqs[0] = math.Sqrt(centreFreqs[0] * centreFreqs[5])
	freqs[1] = math.Sqrt(centreFreqs[6] * centreFreqs[8])
	freqs[2] = math.Sqrt(centreFreqs[9] * centreFreqs[10])

	for i := 3; i < NumCriticalBands; i++ {
		freqs[i] = centreFreqs[i+8]
	}

	return freqs
}

// Configure implements module.Kernel.
func (m *MainLoudness) Configure(in *buffer.Buffer) (*buffer.Buffer, error) {
	if in.Channels() != NumBands {
		return nil, fmt.Errorf("%w: got %d", ErrChannelCount, in.Channels())
	}

	for i, f := range in.CentreFreqs() {
		if f != centreFreqs[i] {
			return nil, fmt.Errorf("%w: channel %d is %v Hz, want %v Hz", ErrCentreFreqs, i, f, centreFreqs[i])
		}
	}

	if !m.cfg.field.valid() {
		return nil, fmt.Errorf("%w: %v", ErrUnknownField, m.cfg.field)
	}

	out, err := buffer.New(in.Sources(), in.Ears(), NumOutputs, in.Samples(), in.SampleRate())
	if err != nil {
		return nil, err
	}

	out.SetFrameRate(in.FrameRate())
	if err := out.SetCentreFreqs(OutputCentreFreqs()); err != nil {
		return nil, err
	}

	return out, nil
}

// ProcessBlock implements module.Kernel.
func (m *MainLoudness) ProcessBlock(in, out *buffer.Buffer) {
	for src := range in.Sources() {
		for ear := range in.Ears() {
			for i := range in.Samples() {
				for ch := range m.levels {
					m.levels[ch] = in.Sample(src, ear, ch, i)
				}

				mainLoudness(m.levels[:], m.out[:], m.cfg.field)

				for ch, n := range m.out {
					out.SetSample(src, ear, ch, i, n)
				}
			}
		}
	}
}

// ClearState implements module.Kernel.
func (m *MainLoudness) ClearState() {}
