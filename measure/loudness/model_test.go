package loudness

import (
	"bytes"
	"errors"
	"log/slog"
	"math"
	"strings"
	"testing"

	"github.com/cwbudde/algo-loudness/dsp/buffer"
	"github.com/cwbudde/algo-loudness/dsp/core"
	"github.com/cwbudde/algo-loudness/measure/din45631"
	"github.com/cwbudde/algo-loudness/internal/testutil"
)

const fs = 48000.0

// sineAt returns a sine whose RMS maps to level dB at the default reference,
// truncated to whole hops.
func sineAt(freq, level float64, seconds float64) []float64 {
	hop := DefaultModelConfig().HopSize
	n := int(seconds*fs) / hop * hop

	return testutil.LevelSine(freq, fs, level, DefaultModelConfig().ReferenceLevel, n)
}

func TestModelStructure(t *testing.T) {
	chain, err := NewModel()
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}

	if chain.Len() != 7 {
		t.Fatalf("Len = %d, want 7", chain.Len())
	}

	in, _ := buffer.New(1, 1, 1, 2048, fs)
	if err := chain.Initialize(in); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	levels, ok := chain.Output(TagThirdOctaveLevels)
	if !ok || levels.Channels() != 28 {
		t.Fatalf("third-octave output missing or misshaped")
	}

	testutil.RequireSliceNearlyEqual(t, levels.CentreFreqs(), din45631.CentreFreqs(), 0)

	for _, tag := range []string{TagMainLoudness, TagSmoothedMainLoudness, TagShortTermMainLoudness} {
		out, ok := chain.Output(tag)
		if !ok {
			t.Fatalf("%s output missing", tag)
		}

		if out.Channels() != din45631.NumOutputs || out.SampleRate() != fs/2048 {
			t.Fatalf("%s: %d channels at %v Hz", tag, out.Channels(), out.SampleRate())
		}
	}
}

func TestSilence(t *testing.T) {
	res, err := Analyze(make([]float64, 4*8192), fs)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if res.Frames == 0 {
		t.Fatal("no frames analysed")
	}

	testutil.RequireSliceNearlyEqual(t, res.MainLoudness, make([]float64, din45631.NumOutputs), 0)
	testutil.RequireSliceNearlyEqual(t, res.ShortTerm, make([]float64, din45631.NumOutputs), 0)
}

func TestSineMatchesStationaryTransform(t *testing.T) {
	res, err := Analyze(sineAt(1000, 40, 2), fs)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	levels := make([]float64, din45631.NumBands)
	for i := range levels {
		levels[i] = din45631.MinLevel
	}

	levels[16] = 40

	want := make([]float64, din45631.NumOutputs)
	if err := din45631.Transform(levels, want, din45631.FieldFree); err != nil {
		t.Fatalf("Transform: %v", err)
	}

	if got := res.MainLoudness[8]; math.Abs(got-want[8]) > 0.01 {
		t.Fatalf("1 kHz critical band: %v sone/bark, want %v", got, want[8])
	}

	if got := res.ShortTerm[8]; math.Abs(got-res.MainLoudness[8]) > 0.02*res.MainLoudness[8] {
		t.Fatalf("short-term %v differs from mean %v", got, res.MainLoudness[8])
	}

	// Bands far from the tone stay silent.
	for _, band := range []int{0, 1, 2, 17, 18, 19, 20} {
		if res.MainLoudness[band] != 0 {
			t.Errorf("band %d: %v, want 0", band, res.MainLoudness[band])
		}
	}
}

func TestLouderToneIsLouder(t *testing.T) {
	quiet, err := Analyze(sineAt(1000, 40, 1), fs)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	loud, err := Analyze(sineAt(1000, 60, 1), fs)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if loud.MainLoudness[8] <= quiet.MainLoudness[8] {
		t.Fatalf("60 dB tone %v not louder than 40 dB tone %v", loud.MainLoudness[8], quiet.MainLoudness[8])
	}
}

func TestFieldChangesHighBands(t *testing.T) {
	signal := sineAt(4000, 60, 1)

	free, err := Analyze(signal, fs, WithField(din45631.FieldFree))
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	none, err := Analyze(signal, fs, WithField(din45631.FieldNone))
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	// The free-field transmission raises 4 kHz by 5.6 dB.
	if free.MainLoudness[14] <= none.MainLoudness[14] {
		t.Fatalf("free %v <= none %v at 4 kHz", free.MainLoudness[14], none.MainLoudness[14])
	}
}

func TestNewModelValidation(t *testing.T) {
	tests := []struct {
		name string
		opt  ModelOption
	}{
		{"frame", WithFrameSize(0)},
		{"hop", WithHopSize(9000)},
		{"cutoff", WithSmoothingCutoff(0)},
		{"duration", WithAverageDuration(-1)},
		{"field", WithField(din45631.Field(5))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewModel(tt.opt); !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("err = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestAnalyzeErrors(t *testing.T) {
	if _, err := Analyze(make([]float64, 100), fs); !errors.Is(err, ErrSignalTooShort) {
		t.Fatalf("err = %v, want ErrSignalTooShort", err)
	}

	stereo := core.ApplyProcessorOptions(core.WithEars(2))
	if _, err := AnalyzeStream([][]float64{make([]float64, 8192)}, stereo); !errors.Is(err, ErrEarSignals) {
		t.Fatalf("err = %v, want ErrEarSignals", err)
	}

	uneven := [][]float64{make([]float64, 8192), make([]float64, 8000)}
	if _, err := AnalyzeStream(uneven, stereo); !errors.Is(err, ErrEarSignals) {
		t.Fatalf("err = %v, want ErrEarSignals", err)
	}

	long := core.ApplyProcessorOptions(core.WithBlockSize(4096))
	if _, err := AnalyzeStream([][]float64{make([]float64, 8192)}, long); err == nil {
		t.Fatal("expected error for a block longer than the hop")
	}
}

func TestSmoothingCutoffLimitedToFrameRate(t *testing.T) {
	// 20 Hz is above the Nyquist of the 23.4 Hz frame rate.
	chain, err := NewModel(WithSmoothingCutoff(20))
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}

	in, _ := buffer.New(1, 1, 1, 2048, fs)
	if err := chain.Initialize(in); err == nil {
		t.Fatal("expected cutoff error from the bare model")
	}

	if _, err := Analyze(sineAt(1000, 60, 1), fs, WithSmoothingCutoff(20)); err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	// 8 kHz gives a 3.9 Hz frame rate, below twice the default cutoff.
	low := testutil.LevelSine(1000, 8000, 60, 100, 16*2048)
	res, err := Analyze(low, 8000)
	if err != nil {
		t.Fatalf("Analyze at 8 kHz: %v", err)
	}

	if res.Frames != 13 || !(res.MainLoudness[8] > 0) {
		t.Fatalf("frames %d, band 8 %v", res.Frames, res.MainLoudness[8])
	}
}

func TestAnalyzeStreamMatchesAnalyze(t *testing.T) {
	left := sineAt(1000, 60, 1)
	right := sineAt(1000, 40, 1)

	mono, err := Analyze(left, fs)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	quiet, err := Analyze(right, fs)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	stream := core.ApplyProcessorOptions(core.WithSampleRate(fs), core.WithEars(2))

	res, err := AnalyzeStream([][]float64{left, right}, stream)
	if err != nil {
		t.Fatalf("AnalyzeStream: %v", err)
	}

	if len(res) != 2 || res[0].Frames != mono.Frames || res[1].Frames != quiet.Frames {
		t.Fatalf("results %d, frames %d/%d, want %d/%d", len(res), res[0].Frames, res[1].Frames, mono.Frames, quiet.Frames)
	}

	testutil.RequireSliceNearlyEqual(t, res[0].MainLoudness, mono.MainLoudness, 1e-9)
	testutil.RequireSliceNearlyEqual(t, res[1].MainLoudness, quiet.MainLoudness, 1e-9)
	testutil.RequireSliceNearlyEqual(t, res[0].ShortTerm, mono.ShortTerm, 1e-9)
}

func TestLoggerReceivesFailures(t *testing.T) {
	var logs bytes.Buffer

	chain, err := NewModel(
		WithLogger(slog.New(slog.NewTextHandler(&logs, nil))),
		WithFrameSize(1000),
		WithHopSize(500),
	)
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}

	in, _ := buffer.New(1, 1, 1, 600, fs)
	if err := chain.Initialize(in); err == nil {
		t.Fatal("expected initialize failure for a block longer than the hop")
	}

	if !strings.Contains(logs.String(), "stage=frame") {
		t.Fatalf("failure not logged with stage name: %q", logs.String())
	}
}
