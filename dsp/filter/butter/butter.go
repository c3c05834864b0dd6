package butter

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-loudness/dsp/buffer"
	"github.com/cwbudde/algo-loudness/dsp/module"
	"github.com/cwbudde/algo-vecmath"
)

const (
	// Order is the only supported filter order.
	Order = 3

	defaultCutoffHz = 1000.0
	defaultGain     = 1.0
)

// Type selects the response shape.
type Type int

const (
	// LowPass passes frequencies below the cutoff.
	LowPass Type = iota

	// HighPass passes frequencies above the cutoff.
	HighPass
)

// String returns a human-readable name for the filter type.
func (t Type) String() string {
	switch t {
	case LowPass:
		return "lowpass"
	case HighPass:
		return "highpass"
	default:
		return "unknown"
	}
}

type config struct {
	typ      Type
	order    int
	cutoffHz float64
	gain     float64
}

func defaultConfig() config {
	return config{
		typ:      LowPass,
		order:    Order,
		cutoffHz: defaultCutoffHz,
		gain:     defaultGain,
	}
}

// Option configures a Filter.
type Option func(*config)

// WithType selects low-pass or high-pass. Defaults to LowPass.
func WithType(t Type) Option {
	return func(cfg *config) { cfg.typ = t }
}

// WithOrder sets the requested order. Only 3 is accepted by Configure.
func WithOrder(n int) Option {
	return func(cfg *config) { cfg.order = n }
}

// WithCutoff sets the -3 dB frequency in Hz.
func WithCutoff(hz float64) Option {
	return func(cfg *config) { cfg.cutoffHz = hz }
}

// WithGain sets a linear gain applied to the input before filtering.
func WithGain(g float64) Option {
	return func(cfg *config) { cfg.gain = g }
}

// Filter is a third-order Butterworth filter kernel.
type Filter struct {
	cfg config

	b    [4]float64
	a    [4]float64
	gain float64

	// delay holds x[n-1], x[n-2], x[n-3], y[n-1], y[n-2], y[n-3]
	// for every (source, ear, channel) triple.
	delay   [][6]float64
	scratch []float64
}

var _ module.Kernel = (*Filter)(nil)

// New returns an unconfigured Filter.
func New(opts ...Option) *Filter {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return &Filter{cfg: cfg}
}

// NewModule returns a Filter wrapped in a lifecycle Stage.
func NewModule(opts ...Option) *module.Stage {
	return module.NewStage(New(opts...))
}

// Name implements module.Kernel.
func (f *Filter) Name() string { return "butter" }

// SetCutoff changes the cutoff. Takes effect on the next Configure.
func (f *Filter) SetCutoff(hz float64) { f.cfg.cutoffHz = hz }

// SetGain changes the input gain. Takes effect on the next Configure.
func (f *Filter) SetGain(g float64) { f.cfg.gain = g }

// SetOrder changes the requested order. Takes effect on the next Configure.
func (f *Filter) SetOrder(n int) { f.cfg.order = n }

// Cutoff returns the configured cutoff in Hz.
func (f *Filter) Cutoff() float64 { return f.cfg.cutoffHz }

// Coefficients returns the numerator and normalised denominator.
func (f *Filter) Coefficients() (b, a [4]float64) { return f.b, f.a }

// Gain returns the total input scale: normalisation times user gain.
func (f *Filter) Gain() float64 { return f.gain }

// Configure implements module.Kernel.
func (f *Filter) Configure(in *buffer.Buffer) (*buffer.Buffer, error) {
	if f.cfg.order != Order {
		return nil, fmt.Errorf("%w: %d (only %d is supported)", ErrUnsupportedOrder, f.cfg.order, Order)
	}

	fs := in.SampleRate()
	if !(f.cfg.cutoffHz > 0) || f.cfg.cutoffHz >= fs/2 {
		return nil, fmt.Errorf("%w: %v Hz at sample rate %v Hz", ErrInvalidCutoff, f.cfg.cutoffHz, fs)
	}

	b, a, scale := design(f.cfg.typ, f.cfg.cutoffHz, fs)
	f.b = b
	f.a = a
	f.gain = scale * f.cfg.gain

	f.delay = make([][6]float64, in.Sources()*in.Ears()*in.Channels())
	f.scratch = make([]float64, in.Samples())

	return buffer.NewLike(in), nil
}

// design returns the binomial numerator, the denominator normalised by a[0]
// and the scale factor that restores the analog prototype's passband gain.
func design(t Type, cutoffHz, sampleRate float64) (b, a [4]float64, scale float64) {
	k := math.Tan(math.Pi * cutoffHz / sampleRate)
	k2 := k * k
	k3 := k2 * k

	a0 := 1 + 2*k + 2*k2 + k3
	a = [4]float64{
		1,
		(-3 - 2*k + 2*k2 + 3*k3) / a0,
		(3 - 2*k - 2*k2 + 3*k3) / a0,
		(-1 + 2*k - 2*k2 + k3) / a0,
	}

	if t == HighPass {
		return [4]float64{1, -3, 3, -1}, a, 1 / a0
	}

	return [4]float64{1, 3, 3, 1}, a, k3 / a0
}

// ProcessBlock implements module.Kernel.
func (f *Filter) ProcessBlock(in, out *buffer.Buffer) {
	b0, b1, b2, b3 := f.b[0], f.b[1], f.b[2], f.b[3]
	a1, a2, a3 := f.a[1], f.a[2], f.a[3]
	x := f.scratch

	idx := 0
	for src := range in.Sources() {
		for ear := range in.Ears() {
			for ch := range in.Channels() {
				vecmath.ScaleBlock(x, in.Channel(src, ear, ch), f.gain)
				y := out.Channel(src, ear, ch)
				d := &f.delay[idx]

				for i, xn := range x {
					yn := b0*xn + b1*d[0] + b2*d[1] + b3*d[2] - a1*d[3] - a2*d[4] - a3*d[5]
					d[2], d[1], d[0] = d[1], d[0], xn
					d[5], d[4], d[3] = d[4], d[3], yn
					y[i] = yn
				}

				idx++
			}
		}
	}
}

// ClearState implements module.Kernel.
func (f *Filter) ClearState() {
	for i := range f.delay {
		f.delay[i] = [6]float64{}
	}
}

// NewModuleFor wraps an existing Filter in a lifecycle Stage, keeping access
// to its setters for Stage.Reconfigure.
func NewModuleFor(f *Filter) *module.Stage {
	return module.NewStage(f)
}
