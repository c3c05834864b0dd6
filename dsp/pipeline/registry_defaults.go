package pipeline

import (
	"fmt"

	"github.com/cwbudde/algo-loudness/dsp/filter/bank"
	"github.com/cwbudde/algo-loudness/dsp/filter/butter"
	"github.com/cwbudde/algo-loudness/dsp/frame"
	"github.com/cwbudde/algo-loudness/dsp/module"
	"github.com/cwbudde/algo-loudness/dsp/movingsum"
	"github.com/cwbudde/algo-loudness/dsp/spectrum"
	"github.com/cwbudde/algo-loudness/dsp/window"
	"github.com/cwbudde/algo-loudness/measure/din45631"
)

// DefaultRegistry returns a Registry pre-populated with every built-in
// module: butter, movingsum, bank, din45631, frame, window and spectrum.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	r.MustRegister("butter", newButter)
	r.MustRegister("movingsum", newMovingSum)
	r.MustRegister("bank", newBank)
	r.MustRegister("din45631", newMainLoudness)
	r.MustRegister("frame", func(p Params) (module.Module, error) {
		return frame.NewModule(
			frame.WithFrameSize(p.GetInt("frame", 1024)),
			frame.WithHopSize(p.GetInt("hop", 0)),
		), nil
	})
	r.MustRegister("window", func(p Params) (module.Module, error) {
		typ, err := window.ParseType(p.GetStr("window", "hann"))
		if err != nil {
			return nil, err
		}

		opts := []window.StageOption{window.WithNormalise(p.GetBool("normalise", false))}
		if p.GetBool("symmetric", false) {
			opts = append(opts, window.WithWindowOptions(window.WithSymmetric()))
		}

		return window.NewModule(typ, opts...), nil
	})
	r.MustRegister("spectrum", func(p Params) (module.Module, error) {
		return spectrum.NewModule(spectrum.WithReferenceLevel(p.GetNum("reference", 0))), nil
	})

	return r
}

func newButter(p Params) (module.Module, error) {
	opts := []butter.Option{
		butter.WithOrder(p.GetInt("order", butter.Order)),
		butter.WithGain(p.GetNum("gain", 1)),
	}

	if p.Has("cutoff") {
		opts = append(opts, butter.WithCutoff(p.GetNum("cutoff", 0)))
	}

	switch kind := p.GetStr("kind", butter.LowPass.String()); kind {
	case butter.LowPass.String():
		opts = append(opts, butter.WithType(butter.LowPass))
	case butter.HighPass.String():
		opts = append(opts, butter.WithType(butter.HighPass))
	default:
		return nil, fmt.Errorf("unknown filter kind %q", kind)
	}

	return butter.NewModule(opts...), nil
}

func newMovingSum(p Params) (module.Module, error) {
	opts := []movingsum.Option{
		movingsum.WithAverage(p.GetBool("average", false)),
		movingsum.WithSquareInput(p.GetBool("square", false)),
	}

	if p.Has("duration") {
		opts = append(opts, movingsum.WithWindowDuration(p.GetNum("duration", 0)))
	} else if p.Has("window") {
		opts = append(opts, movingsum.WithWindowSize(p.GetInt("window", 0)))
	}

	return movingsum.NewModule(opts...), nil
}

func newBank(p Params) (module.Module, error) {
	var opts []bank.Option

	switch centres := p.GetStr("centres", "third"); centres {
	case "third":
		opts = append(opts, bank.WithThirdOctaveCentres())
	case "octave":
		opts = append(opts, bank.WithOctaveCentres())
	case "range":
		opts = append(opts, bank.WithFrequencyRange(
			p.GetInt("fraction", 3), p.GetNum("lower", 20), p.GetNum("upper", 20000)))
	case "bark":
		opts = append(opts, bank.WithBarkCentres(
			p.GetInt("count", 24), p.GetNum("offset", bank.DefaultBarkOffset)))
	default:
		return nil, fmt.Errorf("unknown centre set %q", centres)
	}

	if p.Has("order") {
		opts = append(opts, bank.WithOrder(p.GetInt("order", 0)))
	}

	if p.Has("bandwidth") {
		opts = append(opts, bank.WithBandwidth(p.GetNum("bandwidth", 0)))
	}

	opts = append(opts, bank.WithDecibels(p.GetBool("decibels", false)))

	return bank.NewModule(opts...), nil
}

func newMainLoudness(p Params) (module.Module, error) {
	field, err := din45631.ParseField(p.GetStr("field", din45631.FieldFree.String()))
	if err != nil {
		return nil, err
	}

	return din45631.NewModule(din45631.WithField(field)), nil
}
