// Command loudinfo prints DIN 45631 main loudness for a stationary
// third-octave spectrum and the correction tables behind it.
//
// Usage:
//
//	loudinfo [flags]
//
// By default a single third-octave band at -freq carries -level dB and all
// other bands are silent. With -model a sine of that frequency and level is
// synthesised and run through the full frame-based model instead.
//
// Examples:
//
//	loudinfo -freq 1000 -level 40
//	loudinfo -freq 4000 -level 70 -field diffuse
//	loudinfo -model -freq 250 -level 60
//	loudinfo -model -rate 44100 -duration 5
//	loudinfo -model -rate 8000 -block 256
//	loudinfo -tables
//	loudinfo -centres
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"text/tabwriter"

	"github.com/cwbudde/algo-loudness/dsp/core"
	"github.com/cwbudde/algo-loudness/measure/din45631"
	"github.com/cwbudde/algo-loudness/measure/loudness"
)

func main() {
	if err := run(os.Stdout, os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}

		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	tables   bool
	centres  bool
	model    bool
	freq     float64
	level    float64
	field    din45631.Field
	duration float64
	stream   core.ProcessorConfig
}

func parseFlags(args []string) (options, error) {
	var (
		opts  options
		field string
		rate  float64
		block int
	)

	fs := flag.NewFlagSet("loudinfo", flag.ContinueOnError)
	fs.BoolVar(&opts.tables, "tables", false, "print the correction tables")
	fs.BoolVar(&opts.centres, "centres", false, "print the third-octave centre frequencies")
	fs.BoolVar(&opts.model, "model", false, "synthesise a sine and run the frame-based model")
	fs.Float64Var(&opts.freq, "freq", 1000, "tone frequency in Hz, snapped to the nearest third-octave band")
	fs.Float64Var(&opts.level, "level", 40, "band level in dB")
	fs.StringVar(&field, "field", "free", "sound field: free, diffuse or none")
	fs.Float64Var(&opts.duration, "duration", 2, "synthesised signal length in seconds (-model)")
	fs.Float64Var(&rate, "rate", core.DefaultProcessorConfig().SampleRate, "sample rate in Hz (-model)")
	fs.IntVar(&block, "block", core.DefaultProcessorConfig().BlockSize, "samples per processing block, at most the hop size (-model)")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: loudinfo [flags]\n\n")
		fmt.Fprintf(fs.Output(), "Prints DIN 45631 main loudness of a single third-octave band.\n\n")
		fmt.Fprintf(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	f, err := din45631.ParseField(field)
	if err != nil {
		return opts, err
	}

	opts.field = f

	if !(opts.freq > 0) {
		return opts, fmt.Errorf("frequency must be > 0: %v", opts.freq)
	}

	if !(rate > 0) {
		return opts, fmt.Errorf("sample rate must be > 0: %v", rate)
	}

	if block < 1 {
		return opts, fmt.Errorf("block size must be >= 1: %d", block)
	}

	opts.stream = core.ApplyProcessorOptions(core.WithSampleRate(rate), core.WithBlockSize(block))

	return opts, nil
}

func run(w io.Writer, args []string) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	switch {
	case opts.tables:
		err = printTables(tw)
	case opts.centres:
		err = printCentres(tw)
	case opts.model:
		err = printModel(tw, opts)
	default:
		err = printStationary(tw, opts)
	}

	if err != nil {
		return err
	}

	return tw.Flush()
}

// nearestBand returns the index of the third-octave band closest to hz on a
// logarithmic axis.
func nearestBand(hz float64) int {
	best, bestDist := 0, math.Inf(1)

	for i, fc := range din45631.CentreFreqs() {
		if d := math.Abs(math.Log2(hz / fc)); d < bestDist {
			best, bestDist = i, d
		}
	}

	return best
}

func printStationary(w io.Writer, opts options) error {
	band := nearestBand(opts.freq)

	levels := make([]float64, din45631.NumBands)
	for i := range levels {
		levels[i] = din45631.MinLevel
	}

	levels[band] = opts.level

	out := make([]float64, din45631.NumOutputs)
	if err := din45631.Transform(levels, out, opts.field); err != nil {
		return err
	}

	fmt.Fprintf(w, "Band %.0f Hz at %.1f dB, %s field\n\n", din45631.CentreFreqs()[band], opts.level, opts.field)

	return printLoudness(w, out)
}

func printModel(w io.Writer, opts options) error {
	const reference = 100.0

	sampleRate := opts.stream.SampleRate
	n := int(opts.duration * sampleRate)
	amp := math.Sqrt2 * math.Pow(10, (opts.level-reference)/20)
	step := 2 * math.Pi * opts.freq / sampleRate

	sig := make([]float64, n)
	for i := range sig {
		sig[i] = amp * math.Sin(step*float64(i))
	}

	results, err := loudness.AnalyzeStream([][]float64{sig}, opts.stream,
		loudness.WithReferenceLevel(reference),
		loudness.WithField(opts.field),
	)
	if err != nil {
		return err
	}

	res := results[0]

	fmt.Fprintf(w, "Sine %.1f Hz at %.1f dB, %s field, %d frames\n\n", opts.freq, opts.level, opts.field, res.Frames)

	return printLoudness(w, res.MainLoudness)
}

func printLoudness(w io.Writer, n []float64) error {
	freqs := din45631.OutputCentreFreqs()

	if _, err := fmt.Fprintf(w, "Band\tCentre [Hz]\tN' [sone/bark]\n----\t-----------\t--------------\n"); err != nil {
		return err
	}

	for i := range din45631.NumCriticalBands {
		if _, err := fmt.Fprintf(w, "%d\t%.1f\t%.4f\n", i, freqs[i], n[i]); err != nil {
			return err
		}
	}

	return nil
}

func printCentres(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "Index\tCentre [Hz]\n-----\t-----------\n"); err != nil {
		return err
	}

	for i, fc := range din45631.CentreFreqs() {
		if _, err := fmt.Fprintf(w, "%d\t%g\n", i, fc); err != nil {
			return err
		}
	}

	return nil
}

func printTables(w io.Writer) error {
	for _, t := range din45631.Tables() {
		if _, err := fmt.Fprintf(w, "%s\n", t.Name); err != nil {
			return err
		}

		for _, row := range t.Rows {
			for i, v := range row {
				sep := "\t"
				if i == len(row)-1 {
					sep = "\n"
				}

				if _, err := fmt.Fprintf(w, "%g%s", v, sep); err != nil {
					return err
				}
			}
		}

		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}

	return nil
}
