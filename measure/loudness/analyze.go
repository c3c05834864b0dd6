package loudness

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-loudness/dsp/buffer"
	"github.com/cwbudde/algo-loudness/dsp/core"
	"github.com/cwbudde/algo-loudness/measure/din45631"
	"gonum.org/v1/gonum/floats"
)

var (
	// ErrSignalTooShort is returned by Analyze when the signal does not fill
	// a single frame.
	ErrSignalTooShort = errors.New("loudness: signal shorter than one frame")
	// ErrEarSignals is returned by AnalyzeStream when the signals do not
	// match the stream's ear count or differ in length.
	ErrEarSignals = errors.New("loudness: signals do not match the ears")
)

// maxSmoothingRatio bounds the smoothing cutoff relative to the frame rate.
const maxSmoothingRatio = 0.45

// Result summarises the main loudness of one ear's signal.
type Result struct {
	// MainLoudness is the mean main loudness per critical band over all
	// frames that lie entirely inside the signal.
	MainLoudness []float64
	// ShortTerm is the averaged main loudness at the last frame.
	ShortTerm []float64
	// Frames is the number of frames averaged into MainLoudness.
	Frames int
}

// Analyze runs a mono signal through the model in hop-sized blocks and
// returns its mean main loudness.
func Analyze(signal []float64, sampleRate float64, opts ...ModelOption) (Result, error) {
	cfg := ApplyModelOptions(opts...)

	stream := core.ApplyProcessorOptions(
		core.WithSampleRate(sampleRate),
		core.WithBlockSize(cfg.HopSize),
		core.WithEars(1),
	)

	res, err := AnalyzeStream([][]float64{signal}, stream, opts...)
	if err != nil {
		return Result{}, err
	}

	return res[0], nil
}

// AnalyzeStream feeds one signal per ear through the model in blocks of
// stream.BlockSize samples at stream.SampleRate and returns one Result per
// ear. The block size must not exceed the hop size. A trailing partial block
// is zero-padded. The smoothing cutoff is limited to 0.45 times the frame
// rate so that low sample rates remain usable.
func AnalyzeStream(signals [][]float64, stream core.ProcessorConfig, opts ...ModelOption) ([]Result, error) {
	cfg := ApplyModelOptions(opts...)

	if len(signals) != stream.Ears {
		return nil, fmt.Errorf("%w: %d signals for %d ears", ErrEarSignals, len(signals), stream.Ears)
	}

	length := len(signals[0])
	for i, s := range signals {
		if len(s) != length {
			return nil, fmt.Errorf("%w: signal %d has %d samples, want %d", ErrEarSignals, i, len(s), length)
		}
	}

	if length < cfg.FrameSize {
		return nil, fmt.Errorf("%w: %d < %d samples", ErrSignalTooShort, length, cfg.FrameSize)
	}

	frameRate := stream.SampleRate / float64(cfg.HopSize)
	if limit := maxSmoothingRatio * frameRate; cfg.SmoothingCutoff > limit {
		opts = append(opts[:len(opts):len(opts)], WithSmoothingCutoff(limit))
	}

	chain, err := NewModel(opts...)
	if err != nil {
		return nil, err
	}

	in, err := buffer.New(1, stream.Ears, 1, stream.BlockSize, stream.SampleRate)
	if err != nil {
		return nil, err
	}

	if err := chain.Initialize(in); err != nil {
		return nil, err
	}

	mainLoudness, _ := chain.Output(TagMainLoudness)
	shortTerm, _ := chain.Output(TagShortTermMainLoudness)

	results := make([]Result, stream.Ears)
	for ear := range results {
		results[ear] = Result{
			MainLoudness: make([]float64, din45631.NumOutputs),
			ShortTerm:    make([]float64, din45631.NumOutputs),
		}
	}

	frameN := make([]float64, din45631.NumOutputs)
	emitted := 0

	for start := 0; start < length; start += stream.BlockSize {
		end := min(start+stream.BlockSize, length)

		in.Zero()
		for ear, s := range signals {
			in.CopyChannel(0, ear, 0, s[start:end])
		}

		if err := chain.Process(in); err != nil {
			return nil, err
		}

		if !mainLoudness.Triggered() {
			continue
		}

		// A block holds at most one hop, so frames end on multiples of it.
		emitted++
		frameEnd := emitted * cfg.HopSize

		for ear := range results {
			res := &results[ear]

			for ch := range res.ShortTerm {
				res.ShortTerm[ch] = shortTerm.Sample(0, ear, ch, 0)
			}

			// Skip frames that overlap the zero history or the zero padding.
			if frameEnd < cfg.FrameSize || frameEnd > length {
				continue
			}

			for ch := range frameN {
				frameN[ch] = mainLoudness.Sample(0, ear, ch, 0)
			}

			floats.Add(res.MainLoudness, frameN)
			res.Frames++
		}
	}

	for ear := range results {
		if n := results[ear].Frames; n > 0 {
			floats.Scale(1/float64(n), results[ear].MainLoudness)
		}
	}

	return results, nil
}
