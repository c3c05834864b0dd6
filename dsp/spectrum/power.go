package spectrum

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-loudness/dsp/buffer"
	"github.com/cwbudde/algo-loudness/dsp/module"
	"github.com/cwbudde/algo-vecmath"
)

type config struct {
	referenceDB float64
}

// Option configures a Power kernel.
type Option func(*config)

// WithReferenceLevel sets the level in dB that a full-scale signal of RMS 1
// maps to. Defaults to 0 dB, leaving powers uncalibrated.
func WithReferenceLevel(db float64) Option {
	return func(cfg *config) { cfg.referenceDB = db }
}

// Power is the FFT power-spectrum kernel.
type Power struct {
	cfg config

	size  int
	bins  int
	scale float64
	plan  *algofft.Plan[complex128]

	frame    []complex128
	spectrum []complex128
	re, im   []float64
	power    []float64
}

var _ module.Kernel = (*Power)(nil)

// NewPower returns an unconfigured power-spectrum kernel.
func NewPower(opts ...Option) *Power {
	p := &Power{}
	for _, o := range opts {
		if o != nil {
			o(&p.cfg)
		}
	}

	return p
}

// NewModule returns a power-spectrum kernel wrapped in a lifecycle Stage.
func NewModule(opts ...Option) *module.Stage {
	return module.NewStage(NewPower(opts...))
}

// Name implements module.Kernel.
func (p *Power) Name() string { return "spectrum" }

// ReferenceLevel returns the calibration level in dB.
func (p *Power) ReferenceLevel() float64 { return p.cfg.referenceDB }

// SetReferenceLevel changes the calibration. Takes effect on the next
// Configure.
func (p *Power) SetReferenceLevel(db float64) { p.cfg.referenceDB = db }

// BinFrequencies returns the bin centre frequencies k*sampleRate/size for the
// size/2+1 non-negative bins.
func BinFrequencies(size int, sampleRate float64) []float64 {
	if size < 1 {
		return nil
	}

	freqs := make([]float64, size/2+1)
	for k := range freqs {
		freqs[k] = float64(k) * sampleRate / float64(size)
	}

	return freqs
}

// Configure implements module.Kernel.
func (p *Power) Configure(in *buffer.Buffer) (*buffer.Buffer, error) {
	if in.Channels() != 1 {
		return nil, fmt.Errorf("%w: got %d", ErrChannelCount, in.Channels())
	}

	plan, err := algofft.NewPlan64(in.Samples())
	if err != nil {
		return nil, fmt.Errorf("%w: size %d: %w", ErrPlan, in.Samples(), err)
	}

	p.plan = plan
	p.size = in.Samples()
	p.bins = p.size/2 + 1
	p.frame = make([]complex128, p.size)
	p.spectrum = make([]complex128, p.size)
	p.re = make([]float64, p.bins)
	p.im = make([]float64, p.bins)
	p.power = make([]float64, p.bins)

	// Forward only fails for unsupported kernels or mismatched lengths. Both
	// are fixed by the plan, so a trial transform here moves any failure to
	// Initialize.
	if err := plan.Forward(p.spectrum, p.frame); err != nil {
		return nil, fmt.Errorf("%w: size %d: %w", ErrPlan, p.size, err)
	}

	n := float64(p.size)
	p.scale = 2 * math.Pow(10, p.cfg.referenceDB/10) / (n * n)

	out, err := buffer.New(in.Sources(), in.Ears(), p.bins, 1, in.FrameRate())
	if err != nil {
		return nil, err
	}

	out.SetFrameRate(in.FrameRate())
	if err := out.SetCentreFreqs(BinFrequencies(p.size, in.SampleRate())); err != nil {
		return nil, err
	}

	return out, nil
}

// ProcessBlock implements module.Kernel.
func (p *Power) ProcessBlock(in, out *buffer.Buffer) {
	for src := range in.Sources() {
		for ear := range in.Ears() {
			for i, x := range in.Channel(src, ear, 0) {
				p.frame[i] = complex(x, 0)
			}

			// Cannot fail: Configure ran the same plan on same-length slices.
			_ = p.plan.Forward(p.spectrum, p.frame)
			p.binPower()

			for k, v := range p.power {
				out.SetSample(src, ear, k, 0, v)
			}
		}
	}
}

// binPower converts the first bins of p.spectrum to calibrated one-sided
// power.
func (p *Power) binPower() {
	for k, c := range p.spectrum[:p.bins] {
		p.re[k] = real(c)
		p.im[k] = imag(c)
	}

	vecmath.Power(p.power, p.re, p.im)
	vecmath.ScaleBlockInPlace(p.power, p.scale)

	// DC and Nyquist have no mirrored negative-frequency bin.
	p.power[0] /= 2
	if p.size%2 == 0 && p.bins > 1 {
		p.power[p.bins-1] /= 2
	}
}

// ClearState implements module.Kernel.
func (p *Power) ClearState() {}
