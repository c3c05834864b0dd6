package movingsum

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-loudness/dsp/buffer"
	"github.com/cwbudde/algo-loudness/dsp/module"
	"github.com/cwbudde/algo-vecmath"
)

type config struct {
	windowSize     int
	windowDuration float64
	average        bool
	squareInput    bool
}

func defaultConfig() config {
	return config{windowSize: 1}
}

// Option configures a Sum.
type Option func(*config)

// WithWindowSize sets the window length in samples.
func WithWindowSize(n int) Option {
	return func(cfg *config) {
		cfg.windowSize = n
		cfg.windowDuration = 0
	}
}

// WithWindowDuration sets the window length in seconds. It is converted to
// samples against the input sample rate at Configure time and overrides
// WithWindowSize.
func WithWindowDuration(seconds float64) Option {
	return func(cfg *config) { cfg.windowDuration = seconds }
}

// WithAverage divides the running sum by the window length.
func WithAverage(enabled bool) Option {
	return func(cfg *config) { cfg.average = enabled }
}

// WithSquareInput squares every input sample before accumulation.
func WithSquareInput(enabled bool) Option {
	return func(cfg *config) { cfg.squareInput = enabled }
}

// channelState is the per-channel accumulator pair and ring buffer.
type channelState struct {
	safe    float64
	running float64
	ring    []float64
	idx     int
}

// Sum is a sliding-window sum / average kernel.
type Sum struct {
	cfg    config
	window int
	scale  float64

	states  []channelState
	scratch []float64
}

var _ module.Kernel = (*Sum)(nil)

// New returns an unconfigured Sum.
func New(opts ...Option) *Sum {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return &Sum{cfg: cfg}
}

// NewModule returns a Sum wrapped in a lifecycle Stage.
func NewModule(opts ...Option) *module.Stage {
	return module.NewStage(New(opts...))
}

// Name implements module.Kernel.
func (s *Sum) Name() string { return "movingsum" }

// SetWindowSize changes the window length in samples. Takes effect on the
// next Configure.
func (s *Sum) SetWindowSize(n int) {
	s.cfg.windowSize = n
	s.cfg.windowDuration = 0
}

// SetAverage toggles averaging. Takes effect on the next Configure.
func (s *Sum) SetAverage(enabled bool) { s.cfg.average = enabled }

// SetSquareInput toggles input squaring. Takes effect on the next Configure.
func (s *Sum) SetSquareInput(enabled bool) { s.cfg.squareInput = enabled }

// WindowSize returns the window length in samples resolved by Configure.
func (s *Sum) WindowSize() int { return s.window }

// Configure implements module.Kernel.
func (s *Sum) Configure(in *buffer.Buffer) (*buffer.Buffer, error) {
	window := s.cfg.windowSize
	if s.cfg.windowDuration > 0 {
		window = int(math.Round(s.cfg.windowDuration * in.SampleRate()))
	} else if s.cfg.windowDuration < 0 {
		return nil, fmt.Errorf("%w: duration %v s", ErrInvalidWindow, s.cfg.windowDuration)
	}

	if window < 1 {
		return nil, fmt.Errorf("%w: %d samples", ErrInvalidWindow, window)
	}

	s.window = window
	s.scale = 1
	if s.cfg.average {
		s.scale = 1 / float64(window)
	}

	s.states = make([]channelState, in.Sources()*in.Ears()*in.Channels())
	for i := range s.states {
		s.states[i].ring = make([]float64, window)
	}

	s.scratch = make([]float64, in.Samples())

	return buffer.NewLike(in), nil
}

// ProcessBlock implements module.Kernel.
func (s *Sum) ProcessBlock(in, out *buffer.Buffer) {
	idx := 0
	for src := range in.Sources() {
		for ear := range in.Ears() {
			for ch := range in.Channels() {
				x := in.Channel(src, ear, ch)
				if s.cfg.squareInput {
					vecmath.MulBlock(s.scratch, x, x)
					x = s.scratch
				}

				y := out.Channel(src, ear, ch)
				s.states[idx].process(x, y)

				if s.scale != 1 {
					vecmath.ScaleBlockInPlace(y, s.scale)
				}

				idx++
			}
		}
	}
}

// process consumes x in sub-runs that end at the next wrap of the ring index.
func (st *channelState) process(x, y []float64) {
	window := len(st.ring)

	for pos := 0; pos < len(x); {
		run := min(window-st.idx, len(x)-pos)
		ring := st.ring[st.idx : st.idx+run]

		for i, v := range x[pos : pos+run] {
			st.safe += v
			st.running += v - ring[i]
			ring[i] = v
			y[pos+i] = st.running
		}

		pos += run
		st.idx += run

		if st.idx == window {
			st.idx = 0
			st.running = st.safe
			st.safe = 0
		}
	}
}

// ClearState implements module.Kernel.
func (s *Sum) ClearState() {
	for i := range s.states {
		st := &s.states[i]
		st.safe = 0
		st.running = 0
		st.idx = 0

		for j := range st.ring {
			st.ring[j] = 0
		}
	}
}

// NewModuleFor wraps an existing Sum in a lifecycle Stage, keeping access to
// its setters for Stage.Reconfigure.
func NewModuleFor(s *Sum) *module.Stage {
	return module.NewStage(s)
}
