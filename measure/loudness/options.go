package loudness

import (
	"log/slog"

	"github.com/cwbudde/algo-loudness/measure/din45631"
)

// ModelConfig defines configuration for the main-loudness model.
type ModelConfig struct {
	// FrameSize is the FFT length in samples.
	FrameSize int
	// HopSize is the number of samples between frames. Input blocks must
	// not be longer.
	HopSize int
	// ReferenceLevel is the level in dB of a full-scale signal with RMS 1.
	ReferenceLevel float64
	// Field selects the outer-ear transmission.
	Field din45631.Field
	// SmoothingCutoff is the low-pass cutoff in Hz applied to the main
	// loudness at frame rate.
	SmoothingCutoff float64
	// AverageDuration is the sliding average length in seconds.
	AverageDuration float64

	Logger *slog.Logger
}

// ModelOption mutates a ModelConfig.
type ModelOption func(*ModelConfig)

// DefaultModelConfig returns sensible defaults.
func DefaultModelConfig() ModelConfig {
	return ModelConfig{
		FrameSize:       8192,
		HopSize:         2048,
		ReferenceLevel:  100,
		Field:           din45631.FieldFree,
		SmoothingCutoff: 2,
		AverageDuration: 0.5,
	}
}

// WithFrameSize sets the FFT length in samples.
func WithFrameSize(n int) ModelOption {
	return func(cfg *ModelConfig) { cfg.FrameSize = n }
}

// WithHopSize sets the frame advance in samples.
func WithHopSize(n int) ModelOption {
	return func(cfg *ModelConfig) { cfg.HopSize = n }
}

// WithReferenceLevel sets the level in dB that a full-scale signal of RMS 1
// maps to.
func WithReferenceLevel(db float64) ModelOption {
	return func(cfg *ModelConfig) { cfg.ReferenceLevel = db }
}

// WithField selects the sound field.
func WithField(f din45631.Field) ModelOption {
	return func(cfg *ModelConfig) { cfg.Field = f }
}

// WithSmoothingCutoff sets the main-loudness low-pass cutoff in Hz.
func WithSmoothingCutoff(hz float64) ModelOption {
	return func(cfg *ModelConfig) { cfg.SmoothingCutoff = hz }
}

// WithAverageDuration sets the sliding average length in seconds.
func WithAverageDuration(seconds float64) ModelOption {
	return func(cfg *ModelConfig) { cfg.AverageDuration = seconds }
}

// WithLogger sets the logger passed to the chain.
func WithLogger(l *slog.Logger) ModelOption {
	return func(cfg *ModelConfig) { cfg.Logger = l }
}

// ApplyModelOptions applies zero or more options to the default config.
func ApplyModelOptions(opts ...ModelOption) ModelConfig {
	cfg := DefaultModelConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}
