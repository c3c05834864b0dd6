package bank

import "math"

// octaveRatio is G = 10^(3/10) per IEC 61260.
var octaveRatio = math.Pow(10, 0.3)

// DefaultBarkOffset shifts bark-spaced centres to the middle of each
// one-bark band.
const DefaultBarkOffset = -0.5

var thirdOctaveNominal = []float64{
	25, 31.5, 40, 50, 63, 80, 100, 125, 160, 200,
	250, 315, 400, 500, 630, 800, 1000, 1250, 1600, 2000,
	2500, 3150, 4000, 5000, 6300, 8000, 10000, 12500,
}

var octaveNominal = []float64{31.5, 63, 125, 250, 500, 1000, 2000, 4000, 8000, 16000}

// ThirdOctaveCentres returns the 28 nominal third-octave centre frequencies
// from 25 Hz to 12.5 kHz.
func ThirdOctaveCentres() []float64 {
	return append([]float64(nil), thirdOctaveNominal...)
}

// OctaveCentres returns the nominal octave centre frequencies from 31.5 Hz
// to 16 kHz.
func OctaveCentres() []float64 {
	return append([]float64(nil), octaveNominal...)
}

// ExactCentres returns the IEC 61260 base-10 centre frequencies
// f = 1000 * G^(k/N) of the 1/N-octave series inside [lowerHz, upperHz].
func ExactCentres(fraction int, lowerHz, upperHz float64) []float64 {
	if fraction <= 0 || lowerHz <= 0 || upperHz <= lowerHz {
		return nil
	}

	n := float64(fraction)
	kMin := int(math.Ceil(n * math.Log(lowerHz/1000) / math.Log(octaveRatio)))
	kMax := int(math.Floor(n * math.Log(upperHz/1000) / math.Log(octaveRatio)))

	if kMax < kMin {
		return nil
	}

	centres := make([]float64, 0, kMax-kMin+1)
	for k := kMin; k <= kMax; k++ {
		centres = append(centres, 1000*math.Pow(octaveRatio, float64(k)/n))
	}

	return centres
}

// HzToBark converts a frequency to critical-band rate (Traunmüller 1990).
func HzToBark(hz float64) float64 {
	return 26.81*hz/(1960+hz) - 0.53
}

// BarkToHz converts critical-band rate to frequency (inverse Traunmüller).
func BarkToHz(bark float64) float64 {
	return 1960 * (bark + 0.53) / (26.28 - bark)
}

// BarkCentres returns count centre frequencies spaced one bark apart, the
// k-th at k + 1 + offset bark.
func BarkCentres(count int, offset float64) []float64 {
	if count <= 0 {
		return nil
	}

	centres := make([]float64, count)
	for k := range centres {
		centres[k] = BarkToHz(float64(k+1) + offset)
	}

	return centres
}
