package window

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-loudness/dsp/buffer"
	"github.com/cwbudde/algo-loudness/dsp/module"
	"github.com/cwbudde/algo-vecmath"
)

type stageConfig struct {
	typ       Type
	normalise bool
	genOpts   []Option
}

// StageOption configures a windowing Stage.
type StageOption func(*stageConfig)

// WithNormalise scales the window to unit power gain so that the mean power
// of a stationary signal is preserved.
func WithNormalise(enabled bool) StageOption {
	return func(cfg *stageConfig) { cfg.normalise = enabled }
}

// WithWindowOptions passes generation options to Generate. The stage
// generates periodic windows unless WithSymmetric is given.
func WithWindowOptions(opts ...Option) StageOption {
	return func(cfg *stageConfig) {
		cfg.genOpts = append(cfg.genOpts, opts...)
	}
}

// Windower multiplies every channel of each frame by a window.
type Windower struct {
	cfg    stageConfig
	coeffs []float64
}

var _ module.Kernel = (*Windower)(nil)

// New returns an unconfigured windowing kernel for window type t.
func New(t Type, opts ...StageOption) *Windower {
	cfg := stageConfig{typ: t}
	for _, o := range opts {
		if o != nil {
			o(&cfg)
		}
	}

	return &Windower{cfg: cfg}
}

// NewModule returns a windowing kernel wrapped in a lifecycle Stage.
func NewModule(t Type, opts ...StageOption) *module.Stage {
	return module.NewStage(New(t, opts...))
}

// Name implements module.Kernel.
func (w *Windower) Name() string { return "window" }

// Type returns the configured window type.
func (w *Windower) Type() Type { return w.cfg.typ }

// Coefficients returns the window applied by ProcessBlock. Valid after
// Configure.
func (w *Windower) Coefficients() []float64 {
	return append([]float64(nil), w.coeffs...)
}

// Configure implements module.Kernel.
func (w *Windower) Configure(in *buffer.Buffer) (*buffer.Buffer, error) {
	if _, ok := typeNames[w.cfg.typ]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownType, int(w.cfg.typ))
	}

	opts := append([]Option{WithPeriodic()}, w.cfg.genOpts...)
	w.coeffs = Generate(w.cfg.typ, in.Samples(), opts...)

	if w.cfg.normalise {
		gain, err := PowerGain(w.coeffs)
		if err != nil {
			return nil, err
		}

		vecmath.ScaleBlockInPlace(w.coeffs, 1/math.Sqrt(gain))
	}

	return buffer.NewLike(in), nil
}

// ProcessBlock implements module.Kernel.
func (w *Windower) ProcessBlock(in, out *buffer.Buffer) {
	for src := range in.Sources() {
		for ear := range in.Ears() {
			for ch := range in.Channels() {
				vecmath.MulBlock(out.Channel(src, ear, ch), in.Channel(src, ear, ch), w.coeffs)
			}
		}
	}
}

// ClearState implements module.Kernel.
func (w *Windower) ClearState() {}
