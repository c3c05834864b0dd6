package frame

import (
	"fmt"

	"github.com/cwbudde/algo-loudness/dsp/buffer"
	"github.com/cwbudde/algo-loudness/dsp/module"
)

const defaultFrameSize = 1024

type config struct {
	frameSize int
	hopSize   int
}

// Option configures a Generator.
type Option func(*config)

// WithFrameSize sets the number of samples per frame. Defaults to 1024.
func WithFrameSize(n int) Option {
	return func(cfg *config) { cfg.frameSize = n }
}

// WithHopSize sets the number of samples between frame starts. Zero, the
// default, selects the frame size (no overlap).
func WithHopSize(n int) Option {
	return func(cfg *config) { cfg.hopSize = n }
}

// Generator is the framing kernel.
type Generator struct {
	cfg config

	frame int
	hop   int

	// history holds frame samples per (source, ear, channel), written
	// circularly at pos.
	history []float64
	pos     int
	pending int
}

var _ module.Kernel = (*Generator)(nil)

// New returns an unconfigured Generator.
func New(opts ...Option) *Generator {
	g := &Generator{cfg: config{frameSize: defaultFrameSize}}
	for _, o := range opts {
		if o != nil {
			o(&g.cfg)
		}
	}

	return g
}

// NewModule returns a Generator wrapped in a lifecycle Stage.
func NewModule(opts ...Option) *module.Stage {
	return module.NewStage(New(opts...))
}

// NewModuleFor wraps an existing Generator in a lifecycle Stage.
func NewModuleFor(g *Generator) *module.Stage {
	return module.NewStage(g)
}

// Name implements module.Kernel.
func (g *Generator) Name() string { return "frame" }

// FrameSize returns the configured frame size.
func (g *Generator) FrameSize() int { return g.cfg.frameSize }

// HopSize returns the effective hop size.
func (g *Generator) HopSize() int {
	if g.cfg.hopSize == 0 {
		return g.cfg.frameSize
	}

	return g.cfg.hopSize
}

// Configure implements module.Kernel.
func (g *Generator) Configure(in *buffer.Buffer) (*buffer.Buffer, error) {
	frame, hop := g.cfg.frameSize, g.HopSize()

	switch {
	case frame < 1:
		return nil, fmt.Errorf("%w: frame size %d", ErrInvalidFraming, frame)
	case hop < 1 || hop > frame:
		return nil, fmt.Errorf("%w: hop size %d not in [1, %d]", ErrInvalidFraming, hop, frame)
	case in.Samples() > hop:
		return nil, fmt.Errorf("%w: block of %d samples exceeds hop size %d", ErrInvalidFraming, in.Samples(), hop)
	}

	g.frame, g.hop = frame, hop
	g.history = make([]float64, in.Sources()*in.Ears()*in.Channels()*frame)

	out, err := buffer.New(in.Sources(), in.Ears(), in.Channels(), frame, in.SampleRate())
	if err != nil {
		return nil, err
	}

	out.SetFrameRate(in.SampleRate() / float64(hop))
	if err := out.SetCentreFreqs(in.CentreFreqs()); err != nil {
		return nil, err
	}

	return out, nil
}

// ProcessBlock implements module.Kernel.
func (g *Generator) ProcessBlock(in, out *buffer.Buffer) {
	triggered := false

	for i := range in.Samples() {
		k := 0

		for src := range in.Sources() {
			for ear := range in.Ears() {
				for ch := range in.Channels() {
					g.history[k*g.frame+g.pos] = in.Sample(src, ear, ch, i)
					k++
				}
			}
		}

		g.pos++
		if g.pos == g.frame {
			g.pos = 0
		}

		g.pending++
		if g.pending < g.hop {
			continue
		}

		g.pending = 0
		triggered = true
		k = 0

		for src := range out.Sources() {
			for ear := range out.Ears() {
				for ch := range out.Channels() {
					ring := g.history[k*g.frame : (k+1)*g.frame]
					dst := out.Channel(src, ear, ch)
					n := copy(dst, ring[g.pos:])
					copy(dst[n:], ring[:g.pos])
					k++
				}
			}
		}
	}

	out.SetTriggered(triggered)
}

// ClearState implements module.Kernel.
func (g *Generator) ClearState() {
	clear(g.history)
	g.pos = 0
	g.pending = 0
}
