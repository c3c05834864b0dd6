package din45631

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-loudness/dsp/core"
	"gonum.org/v1/gonum/floats"
)

const (
	// NumBands is the number of third-octave input levels.
	NumBands = 28

	// NumCriticalBands is the number of main-loudness values.
	NumCriticalBands = 20

	// NumOutputs is the output width: the main loudness plus one reserved
	// slot.
	NumOutputs = NumCriticalBands + 1

	// MinLevel and MaxLevel bound the accepted input levels in dB.
	MinLevel = -60.0
	MaxLevel = 120.0

	numLowBands = 11
	slope       = 0.25
)

// Field selects the outer-ear transmission applied before the loudness
// conversion.
type Field int

const (
	// FieldFree is a frontal free sound field.
	FieldFree Field = iota
	// FieldDiffuse is a diffuse sound field.
	FieldDiffuse
	// FieldNone applies no transmission correction.
	FieldNone
)

func (f Field) String() string {
	switch f {
	case FieldFree:
		return "free"
	case FieldDiffuse:
		return "diffuse"
	case FieldNone:
		return "none"
	default:
		return fmt.Sprintf("Field(%d)", int(f))
	}
}

func (f Field) valid() bool {
	return f >= FieldFree && f <= FieldNone
}

// ParseField maps "free", "diffuse" or "none" to a Field.
func ParseField(s string) (Field, error) {
	for _, f := range []Field{FieldFree, FieldDiffuse, FieldNone} {
		if s == f.String() {
			return f, nil
		}
	}

	return FieldFree, fmt.Errorf("%w: %q", ErrUnknownField, s)
}

// Transform computes the main loudness of one set of third-octave levels.
// levels must hold NumBands values in dB, out at least NumOutputs values.
func Transform(levels, out []float64, field Field) error {
	if len(levels) != NumBands {
		return fmt.Errorf("%w: got %d levels", ErrChannelCount, len(levels))
	}

	if len(out) < NumOutputs {
		return fmt.Errorf("din45631: output holds %d values, need %d", len(out), NumOutputs)
	}

	if !field.valid() {
		return fmt.Errorf("%w: %v", ErrUnknownField, field)
	}

	mainLoudness(levels, out, field)

	return nil
}

// mainLoudness writes NumOutputs values to out. Arguments are not checked.
func mainLoudness(levels, out []float64, field Field) {
	var (
		power [numLowBands]float64
		le    [NumCriticalBands]float64
	)

	for i := range numLowBands {
		level := core.Clamp(levels[i], MinLevel, MaxLevel)

		j := 0
		for j < len(rap)-1 && level > rap[j]-dll[j][i] {
			j++
		}

		power[i] = math.Pow(10, (level+dll[j][i])/10)
	}

	le[0] = 10 * math.Log10(floats.Sum(power[0:6]))
	le[1] = 10 * math.Log10(floats.Sum(power[6:9]))
	le[2] = 10 * math.Log10(floats.Sum(power[9:11]))

	for i := 3; i < NumCriticalBands; i++ {
		le[i] = core.Clamp(levels[i+8], MinLevel, MaxLevel)
	}

	for i, level := range le {
		switch field {
		case FieldFree:
			level -= a0[i]
		case FieldDiffuse:
			level += ddf[i] - a0[i]
		}

		n := 0.0
		if level > ltq[i] {
			level -= dcb[i]
			n = 0.0635 * math.Pow(10, 0.025*ltq[i]) *
				(math.Pow(1-slope+slope*math.Pow(10, (level-ltq[i])/10), 0.25) - 1)
			n = max(n, 0)
		}

		out[i] = n
	}

	out[NumCriticalBands] = 0

	// Lowest critical band.
	if k := 0.4 + 0.32*math.Pow(out[0], 0.2); k <= 1 {
		out[0] *= k
	}
}
