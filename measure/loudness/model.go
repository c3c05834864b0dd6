package loudness

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-loudness/dsp/filter/bank"
	"github.com/cwbudde/algo-loudness/dsp/filter/butter"
	"github.com/cwbudde/algo-loudness/dsp/frame"
	"github.com/cwbudde/algo-loudness/dsp/module"
	"github.com/cwbudde/algo-loudness/dsp/movingsum"
	"github.com/cwbudde/algo-loudness/dsp/pipeline"
	"github.com/cwbudde/algo-loudness/dsp/spectrum"
	"github.com/cwbudde/algo-loudness/dsp/window"
	"github.com/cwbudde/algo-loudness/measure/din45631"
)

// Output tags of the model chain.
const (
	TagThirdOctaveLevels     = "third-octave-levels"
	TagMainLoudness          = "main-loudness"
	TagSmoothedMainLoudness  = "smoothed-main-loudness"
	TagShortTermMainLoudness = "short-term-main-loudness"
)

// ErrInvalidConfig is returned by NewModel for out-of-range options.
var ErrInvalidConfig = errors.New("loudness: invalid model configuration")

func validate(cfg ModelConfig) error {
	switch {
	case cfg.FrameSize < 1:
		return fmt.Errorf("%w: frame size %d", ErrInvalidConfig, cfg.FrameSize)
	case cfg.HopSize < 1 || cfg.HopSize > cfg.FrameSize:
		return fmt.Errorf("%w: hop size %d not in [1, %d]", ErrInvalidConfig, cfg.HopSize, cfg.FrameSize)
	case !(cfg.SmoothingCutoff > 0):
		return fmt.Errorf("%w: smoothing cutoff %v Hz", ErrInvalidConfig, cfg.SmoothingCutoff)
	case !(cfg.AverageDuration > 0):
		return fmt.Errorf("%w: average duration %v s", ErrInvalidConfig, cfg.AverageDuration)
	}

	if _, err := din45631.ParseField(cfg.Field.String()); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return nil
}

// NewModel builds the main-loudness chain. The chain expects a single-channel
// input of at most HopSize samples per block at the signal sample rate.
func NewModel(opts ...ModelOption) (*pipeline.Chain, error) {
	cfg := ApplyModelOptions(opts...)
	if err := validate(cfg); err != nil {
		return nil, err
	}

	c := pipeline.New(pipeline.WithLogger(cfg.Logger))

	stages := []struct {
		tag string
		m   module.Module
	}{
		{"", frame.NewModule(frame.WithFrameSize(cfg.FrameSize), frame.WithHopSize(cfg.HopSize))},
		{"", window.NewModule(window.TypeHann, window.WithNormalise(true))},
		{"", spectrum.NewModule(spectrum.WithReferenceLevel(cfg.ReferenceLevel))},
		{TagThirdOctaveLevels, bank.NewModule(bank.WithThirdOctaveCentres(), bank.WithDecibels(true))},
		{TagMainLoudness, din45631.NewModule(din45631.WithField(cfg.Field))},
		{TagSmoothedMainLoudness, butter.NewModule(butter.WithCutoff(cfg.SmoothingCutoff))},
		{TagShortTermMainLoudness, movingsum.NewModule(
			movingsum.WithWindowDuration(cfg.AverageDuration), movingsum.WithAverage(true))},
	}

	for _, s := range stages {
		if err := c.Append(s.tag, s.m); err != nil {
			return nil, err
		}
	}

	return c, nil
}
