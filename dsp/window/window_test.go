package window

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-loudness/dsp/buffer"
	"github.com/cwbudde/algo-loudness/internal/testutil"
)

func TestGenerateAllTypes(t *testing.T) {
	for typ := TypeRectangular; typ <= TypeFlatTop; typ++ {
		t.Run(typ.String(), func(t *testing.T) {
			w := Generate(typ, 64)
			if len(w) != 64 {
				t.Fatalf("len=%d, want 64", len(w))
			}

			testutil.RequireFinite(t, w)

			// Symmetric windows mirror around the centre.
			for i := range w {
				if math.Abs(w[i]-w[len(w)-1-i]) > 1e-12 {
					t.Fatalf("coefficient %d not symmetric: %v vs %v", i, w[i], w[len(w)-1-i])
				}
			}
		})
	}
}

func TestPeriodicDiffersFromSymmetric(t *testing.T) {
	a := Generate(TypeHann, 16)
	b := Generate(TypeHann, 16, WithPeriodic())

	if a[1] == b[1] {
		t.Fatal("periodic and symmetric windows should differ")
	}

	// The periodic form equals the first N samples of the symmetric N+1 form.
	c := Generate(TypeHann, 17)
	testutil.RequireSliceNearlyEqual(t, b, c[:16], 1e-12)

	d := Generate(TypeHann, 16, WithPeriodic(), WithSymmetric())
	testutil.RequireSliceNearlyEqual(t, d, a, 0)
}

func TestGoldenVectors(t *testing.T) {
	hannExpected := []float64{
		0.0, 0.1882550990706332, 0.6112604669781572, 0.9504844339512095,
		0.9504844339512095, 0.6112604669781573, 0.1882550990706333, 0.0,
	}
	hammingExpected := []float64{
		0.08, 0.25319469114498255, 0.6423596296199047, 0.9544456792351128,
		0.9544456792351128, 0.6423596296199048, 0.25319469114498266, 0.08,
	}
	bh4Expected := []float64{
		0.00006, 0.03339172347815117, 0.332833504298565,
		0.8893697722232837, 0.8893697722232838, 0.3328335042985652,
		0.0333917234781512, 0.00006,
	}
	flattopExpected := []float64{
		-0.0004210510000000013, -0.03684077608132298, 0.01070371671636002,
		0.7808739149387524, 0.7808739149387525, 0.010703716716360296,
		-0.03684077608132292, -0.0004210510000000013,
	}

	testutil.RequireSliceNearlyEqual(t, Generate(TypeHann, 8), hannExpected, 1e-10)
	testutil.RequireSliceNearlyEqual(t, Generate(TypeHamming, 8), hammingExpected, 1e-10)
	testutil.RequireSliceNearlyEqual(t, Generate(TypeBlackmanHarris4Term, 8), bh4Expected, 1e-10)
	testutil.RequireSliceNearlyEqual(t, Generate(TypeFlatTop, 8), flattopExpected, 1e-8)
}

func TestPowerGainAndENBW(t *testing.T) {
	hann := Generate(TypeHann, 1024, WithPeriodic())

	gain, err := PowerGain(hann)
	if err != nil {
		t.Fatalf("PowerGain: %v", err)
	}

	if math.Abs(gain-0.375) > 1e-12 {
		t.Fatalf("Hann power gain = %v, want 0.375", gain)
	}

	enbw, err := EquivalentNoiseBandwidth(Generate(TypeRectangular, 32))
	if err != nil || math.Abs(enbw-1) > 1e-12 {
		t.Fatalf("rectangular ENBW = %v, %v; want 1", enbw, err)
	}
}

func TestTypeNames(t *testing.T) {
	for typ := TypeRectangular; typ <= TypeFlatTop; typ++ {
		got, err := ParseType(typ.String())
		if err != nil || got != typ {
			t.Fatalf("ParseType(%q) = %v, %v", typ.String(), got, err)
		}
	}

	if _, err := ParseType("kaiser"); !errors.Is(err, ErrUnknownType) {
		t.Fatalf("err = %v, want ErrUnknownType", err)
	}

	if Type(99).String() != "unknown" {
		t.Fatal("unexpected name for invalid type")
	}
}

func TestValidationAndEdgeCases(t *testing.T) {
	if got := Generate(TypeHann, 0); got != nil {
		t.Fatalf("expected nil for zero length, got %v", got)
	}

	if _, err := Hann(0); !errors.Is(err, ErrInvalidSize) {
		t.Fatalf("err = %v, want ErrInvalidSize", err)
	}

	if _, err := PowerGain(nil); !errors.Is(err, ErrInvalidSize) {
		t.Fatalf("err = %v, want ErrInvalidSize", err)
	}

	if _, err := PowerGain([]float64{0, 0, 0}); err == nil {
		t.Fatal("expected zero gain error")
	}

	if _, err := EquivalentNoiseBandwidth([]float64{1, -1}); err == nil {
		t.Fatal("expected zero coherent gain error")
	}

	buf := []float64{}
	Apply(TypeHann, buf)
}

func TestWindowerStage(t *testing.T) {
	in, _ := buffer.New(1, 2, 3, 8, 48000)
	in.SetFrameRate(100)
	in.Fill(2)

	m := NewModule(TypeHann)
	if err := m.Initialize(in); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	if err := m.Process(in); err != nil {
		t.Fatalf("Process: %v", err)
	}

	out := m.Output()
	if out.FrameRate() != 100 || !out.SameShape(in) {
		t.Fatal("output shape or metadata not copied from input")
	}

	want := Generate(TypeHann, 8, WithPeriodic())
	for i := range want {
		want[i] *= 2
	}

	for ear := range 2 {
		for ch := range 3 {
			testutil.RequireSliceNearlyEqual(t, out.Channel(0, ear, ch), want, 1e-12)
		}
	}
}

func TestWindowerNormalisedKeepsPower(t *testing.T) {
	const n = 1024

	in, _ := buffer.New(1, 1, 1, n, 48000)
	in.CopyChannel(0, 0, 0, testutil.DeterministicSine(1000, 48000, 1, n))

	stage := NewModule(TypeHann, WithNormalise(true))
	if err := stage.Initialize(in); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	_ = stage.Process(in)

	gain, _ := PowerGain(stage.Kernel().(*Windower).Coefficients())
	if math.Abs(gain-1) > 1e-12 {
		t.Fatalf("normalised power gain = %v, want 1", gain)
	}
}

func TestWindowerUnknownType(t *testing.T) {
	in, _ := buffer.New(1, 1, 1, 8, 48000)
	if err := NewModule(Type(42)).Initialize(in); !errors.Is(err, ErrUnknownType) {
		t.Fatalf("err = %v, want ErrUnknownType", err)
	}
}
