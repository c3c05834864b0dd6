package bank

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-loudness/dsp/buffer"
	"github.com/cwbudde/algo-loudness/dsp/core"
	"github.com/cwbudde/algo-loudness/dsp/module"
)

// PowerSkip is the input power at or below which a channel is ignored.
const PowerSkip = 1e-15

const (
	defaultOrder     = 3
	defaultBandwidth = 1.0 / 3
)

type bankConfig struct {
	order     int
	bandwidth float64
	centres   []float64
	decibels  bool
}

func defaultBankConfig() bankConfig {
	return bankConfig{
		order:     defaultOrder,
		bandwidth: defaultBandwidth,
		centres:   ThirdOctaveCentres(),
	}
}

// Option configures a Bank.
type Option func(*bankConfig)

// WithOrder sets the Butterworth order n of every band. Defaults to 3.
func WithOrder(n int) Option {
	return func(cfg *bankConfig) { cfg.order = n }
}

// WithBandwidth sets the band width in octaves: 1 for octave bands, 1/3 for
// third-octave bands. Defaults to 1/3.
func WithBandwidth(octaves float64) Option {
	return func(cfg *bankConfig) { cfg.bandwidth = octaves }
}

// WithCentreFreqs sets custom output centre frequencies in Hz.
func WithCentreFreqs(centres []float64) Option {
	return func(cfg *bankConfig) {
		cfg.centres = append([]float64(nil), centres...)
	}
}

// WithThirdOctaveCentres selects the 28 nominal third-octave centres and a
// third-octave bandwidth. This is the default.
func WithThirdOctaveCentres() Option {
	return func(cfg *bankConfig) {
		cfg.centres = ThirdOctaveCentres()
		cfg.bandwidth = 1.0 / 3
	}
}

// WithOctaveCentres selects the nominal octave centres and an octave
// bandwidth.
func WithOctaveCentres() Option {
	return func(cfg *bankConfig) {
		cfg.centres = OctaveCentres()
		cfg.bandwidth = 1
	}
}

// WithFrequencyRange selects the exact 1/fraction-octave centres inside
// [lowerHz, upperHz] and the matching bandwidth.
func WithFrequencyRange(fraction int, lowerHz, upperHz float64) Option {
	return func(cfg *bankConfig) {
		cfg.centres = ExactCentres(fraction, lowerHz, upperHz)
		if fraction > 0 {
			cfg.bandwidth = 1 / float64(fraction)
		}
	}
}

// WithBarkCentres selects count centres spaced one bark apart, shifted by
// offset bark (see DefaultBarkOffset).
func WithBarkCentres(count int, offset float64) Option {
	return func(cfg *bankConfig) {
		cfg.centres = BarkCentres(count, offset)
	}
}

// WithDecibels converts every band sum to dB (floored at core.DBFloor).
func WithDecibels(enabled bool) Option {
	return func(cfg *bankConfig) { cfg.decibels = enabled }
}

// Bank is a spectral band filter bank kernel.
type Bank struct {
	cfg bankConfig

	qDesign float64
	q2n     float64

	// den[m][j] = 1 + q2n * g^(2n) for output band m and input channel j.
	den [][]float64
}

var _ module.Kernel = (*Bank)(nil)

// New returns an unconfigured Bank.
func New(opts ...Option) *Bank {
	cfg := defaultBankConfig()
	for _, o := range opts {
		if o != nil {
			o(&cfg)
		}
	}

	return &Bank{cfg: cfg}
}

// NewModule returns a Bank wrapped in a lifecycle Stage.
func NewModule(opts ...Option) *module.Stage {
	return module.NewStage(New(opts...))
}

// NewModuleFor wraps an existing Bank in a lifecycle Stage.
func NewModuleFor(b *Bank) *module.Stage {
	return module.NewStage(b)
}

// Name implements module.Kernel.
func (b *Bank) Name() string { return "bank" }

// SetCentreFreqs replaces the output centre frequencies. Takes effect on the
// next Configure.
func (b *Bank) SetCentreFreqs(centres []float64) {
	b.cfg.centres = append([]float64(nil), centres...)
}

// SetDecibels toggles dB output. Takes effect on the next Configure.
func (b *Bank) SetDecibels(enabled bool) { b.cfg.decibels = enabled }

// CentreFreqs returns the configured output centre frequencies.
func (b *Bank) CentreFreqs() []float64 {
	return append([]float64(nil), b.cfg.centres...)
}

// NumBands returns the number of configured output bands.
func (b *Bank) NumBands() int { return len(b.cfg.centres) }

// Order returns the Butterworth order per band.
func (b *Bank) Order() int { return b.cfg.order }

// DesignQ returns the design Q derived by Configure.
func (b *Bank) DesignQ() float64 { return b.qDesign }

// designQ returns the reference Q for a fractional-octave bandwidth and the
// design Q corrected for discrete summation.
func designQ(order int, bandwidth float64) (qRef, qDesign float64) {
	qRef = 1 / (math.Pow(2, bandwidth/2) - math.Pow(2, -bandwidth/2))
	c := math.Pi / float64(2*order)

	return qRef, qRef * c / math.Sin(c)
}

// Response returns the band's power weight 1 / (1 + q2n * g^(2n)) for an
// input at f Hz in a band centred at fm Hz. Valid after Configure.
func (b *Bank) Response(f, fm float64) float64 {
	return 1 / b.denominator(f, fm)
}

func (b *Bank) denominator(f, fm float64) float64 {
	g := f/fm - fm/f
	return 1 + b.q2n*math.Pow(g, float64(2*b.cfg.order))
}

// Configure implements module.Kernel.
func (b *Bank) Configure(in *buffer.Buffer) (*buffer.Buffer, error) {
	if len(b.cfg.centres) == 0 {
		return nil, ErrNoCentreFreqs
	}

	if b.cfg.order < 1 {
		return nil, fmt.Errorf("%w: order %d", ErrInvalidParameter, b.cfg.order)
	}

	if !(b.cfg.bandwidth > 0) {
		return nil, fmt.Errorf("%w: bandwidth %v octaves", ErrInvalidParameter, b.cfg.bandwidth)
	}

	for i, fm := range b.cfg.centres {
		if !(fm > 0) || math.IsInf(fm, 1) {
			return nil, fmt.Errorf("%w: centre frequency %d is %v Hz", ErrInvalidParameter, i, fm)
		}
	}

	_, b.qDesign = designQ(b.cfg.order, b.cfg.bandwidth)
	b.q2n = math.Pow(b.qDesign, float64(2*b.cfg.order))

	inFreqs := in.CentreFreqs()
	b.den = make([][]float64, len(b.cfg.centres))

	for m, fm := range b.cfg.centres {
		row := make([]float64, len(inFreqs))
		for j, f := range inFreqs {
			row[j] = b.denominator(f, fm)
		}

		b.den[m] = row
	}

	out, err := buffer.New(in.Sources(), in.Ears(), len(b.cfg.centres), in.Samples(), in.SampleRate())
	if err != nil {
		return nil, err
	}

	out.SetFrameRate(in.FrameRate())
	if err := out.SetCentreFreqs(b.cfg.centres); err != nil {
		return nil, err
	}

	return out, nil
}

// ProcessBlock implements module.Kernel.
func (b *Bank) ProcessBlock(in, out *buffer.Buffer) {
	for src := range in.Sources() {
		for ear := range in.Ears() {
			for i := range in.Samples() {
				for m, row := range b.den {
					sum := 0.0

					for j, den := range row {
						p := in.Sample(src, ear, j, i)
						if p <= PowerSkip {
							continue
						}

						sum += p / den
					}

					if b.cfg.decibels {
						sum = core.PowerToDB(sum)
					}

					out.SetSample(src, ear, m, i, sum)
				}
			}
		}
	}
}

// ClearState implements module.Kernel. The bank has no state across calls.
func (b *Bank) ClearState() {}
