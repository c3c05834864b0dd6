package butter

import (
	"errors"
	"math"
	"math/cmplx"
	"strings"
	"testing"

	"github.com/cwbudde/algo-loudness/dsp/buffer"
	"github.com/cwbudde/algo-loudness/internal/testutil"
)

const testRate = 48000.0

func newMono(t *testing.T, samples int) *buffer.Buffer {
	t.Helper()

	in, err := buffer.New(1, 1, 1, samples, testRate)
	if err != nil {
		t.Fatalf("buffer.New: %v", err)
	}

	return in
}

// magnitude evaluates |H(e^jw)| including the input gain.
func magnitude(f *Filter, freqHz, sampleRate float64) float64 {
	z := cmplx.Exp(complex(0, -2*math.Pi*freqHz/sampleRate))
	num, den := complex(0, 0), complex(0, 0)
	zk := complex(1, 0)

	for k := range 4 {
		num += complex(f.b[k], 0) * zk
		den += complex(f.a[k], 0) * zk
		zk *= z
	}

	return f.gain * cmplx.Abs(num/den)
}

func TestCoefficients(t *testing.T) {
	tests := []struct {
		name  string
		typ   Type
		wantB [4]float64
	}{
		{"lowpass", LowPass, [4]float64{1, 3, 3, 1}},
		{"highpass", HighPass, [4]float64{1, -3, 3, -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := New(WithType(tt.typ), WithCutoff(1000))
			if _, err := f.Configure(newMono(t, 8)); err != nil {
				t.Fatalf("Configure: %v", err)
			}

			b, a := f.Coefficients()
			if b != tt.wantB {
				t.Fatalf("b = %v, want %v", b, tt.wantB)
			}

			if a[0] != 1 {
				t.Fatalf("a[0] = %v, want 1 after normalisation", a[0])
			}
		})
	}
}

func TestMagnitudeResponse(t *testing.T) {
	lp := New(WithCutoff(1000))
	if _, err := lp.Configure(newMono(t, 1)); err != nil {
		t.Fatalf("Configure: %v", err)
	}

	if m := magnitude(lp, 1e-3, testRate); math.Abs(m-1) > 1e-9 {
		t.Fatalf("lowpass DC gain = %v, want 1", m)
	}

	if db := 20 * math.Log10(magnitude(lp, 1000, testRate)); math.Abs(db+3.0103) > 0.01 {
		t.Fatalf("lowpass gain at cutoff = %.4f dB, want -3.01 dB", db)
	}

	// Third order: about -18 dB per octave well above the cutoff.
	if db := 20 * math.Log10(magnitude(lp, 8000, testRate)); db > -50 {
		t.Fatalf("lowpass gain three octaves above cutoff = %.1f dB, want < -50 dB", db)
	}

	hp := New(WithType(HighPass), WithCutoff(1000))
	if _, err := hp.Configure(newMono(t, 1)); err != nil {
		t.Fatalf("Configure: %v", err)
	}

	if m := magnitude(hp, testRate/2, testRate); math.Abs(m-1) > 1e-9 {
		t.Fatalf("highpass Nyquist gain = %v, want 1", m)
	}
}

func TestConfigureValidation(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
		want error
	}{
		{"order 2", []Option{WithOrder(2)}, ErrUnsupportedOrder},
		{"order 4", []Option{WithOrder(4)}, ErrUnsupportedOrder},
		{"zero cutoff", []Option{WithCutoff(0)}, ErrInvalidCutoff},
		{"negative cutoff", []Option{WithCutoff(-10)}, ErrInvalidCutoff},
		{"nyquist", []Option{WithCutoff(testRate / 2)}, ErrInvalidCutoff},
		{"nan cutoff", []Option{WithCutoff(math.NaN())}, ErrInvalidCutoff},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewModule(tt.opts...)
			err := m.Initialize(newMono(t, 4))
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}

			if strings.Count(err.Error(), "butter:") != 1 {
				t.Fatalf("package prefix repeated: %q", err)
			}
		})
	}
}

func TestZeroInZeroOut(t *testing.T) {
	out := testutil.RunBlocks(t, NewModule(WithCutoff(500)), make([]float64, 256), 64, testRate)
	for i, v := range out {
		if v != 0 {
			t.Fatalf("out[%d] = %v, want 0", i, v)
		}
	}
}

func TestLowpassDCConvergence(t *testing.T) {
	out := testutil.RunBlocks(t, NewModule(WithCutoff(200)), testutil.DC(1, 4800), 480, testRate)
	if last := out[len(out)-1]; math.Abs(last-1) > 1e-9 {
		t.Fatalf("steady-state output = %v, want 1", last)
	}
}

func TestGainScalesOutput(t *testing.T) {
	out := testutil.RunBlocks(t, NewModule(WithCutoff(200), WithGain(0.5)), testutil.DC(1, 4800), 480, testRate)
	if last := out[len(out)-1]; math.Abs(last-0.5) > 1e-9 {
		t.Fatalf("steady-state output = %v, want 0.5", last)
	}
}

func TestHighpassRejectsDC(t *testing.T) {
	out := testutil.RunBlocks(t, NewModule(WithType(HighPass), WithCutoff(200)), testutil.DC(1, 9600), 960, testRate)
	if last := out[len(out)-1]; math.Abs(last) > 1e-6 {
		t.Fatalf("steady-state output = %v, want 0", last)
	}
}

func TestStreamingEquivalence(t *testing.T) {
	signal := testutil.DeterministicNoise(7, 1, 840)
	want := testutil.RunBlocks(t, NewModule(WithCutoff(2000)), signal, len(signal), testRate)

	for _, block := range []int{1, 3, 7, 40, 105} {
		got := testutil.RunBlocks(t, NewModule(WithCutoff(2000)), signal, block, testRate)
		testutil.RequireSliceNearlyEqual(t, got, want, 1e-12)
	}
}

func TestResetIdempotence(t *testing.T) {
	signal := testutil.DeterministicNoise(3, 1, 256)

	m := NewModule(WithCutoff(3000))
	in := newMono(t, 64)

	if err := m.Initialize(in); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	first := testutil.FeedBlocks(t, m, in, signal)
	m.Reset()
	second := testutil.FeedBlocks(t, m, in, signal)

	testutil.RequireSliceNearlyEqual(t, second, first, 0)
}

func TestMultiChannelIndependence(t *testing.T) {
	in, err := buffer.New(2, 2, 3, 16, testRate)
	if err != nil {
		t.Fatalf("buffer.New: %v", err)
	}

	m := NewModule(WithCutoff(1000))
	if err := m.Initialize(in); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	// Only one channel carries signal; all others must stay silent.
	copy(in.Channel(1, 0, 2), testutil.DC(1, 16))

	if err := m.Process(in); err != nil {
		t.Fatalf("Process: %v", err)
	}

	out := m.Output()
	for src := range 2 {
		for ear := range 2 {
			for ch := range 3 {
				y := out.Channel(src, ear, ch)
				active := src == 1 && ear == 0 && ch == 2

				if active && y[15] == 0 {
					t.Fatalf("active channel produced silence")
				}

				if !active && y[15] != 0 {
					t.Fatalf("channel (%d,%d,%d) leaked: %v", src, ear, ch, y[15])
				}
			}
		}
	}
}

func TestReconfigureCutoff(t *testing.T) {
	f := New(WithCutoff(100))
	m := NewModuleFor(f)
	in := newMono(t, 8)

	if err := m.Initialize(in); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	_, a100 := f.Coefficients()

	if err := m.Reconfigure(func() error { f.SetCutoff(5000); return nil }); err != nil {
		t.Fatalf("Reconfigure: %v", err)
	}

	if err := m.Process(in); err == nil {
		t.Fatal("Process after Reconfigure should fail until re-initialized")
	}

	if err := m.Initialize(in); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	if _, a5000 := f.Coefficients(); a5000 == a100 {
		t.Fatal("coefficients not re-derived after Reconfigure")
	}

	if f.Cutoff() != 5000 {
		t.Fatalf("Cutoff = %v, want 5000", f.Cutoff())
	}
}

func TestTypeString(t *testing.T) {
	if LowPass.String() != "lowpass" || HighPass.String() != "highpass" || Type(9).String() != "unknown" {
		t.Fatal("unexpected Type strings")
	}
}
