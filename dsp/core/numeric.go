package core

import "math"

const defaultEpsilon = 1e-12

// Global floors used when converting near-silent values between the power
// and decibel domains. Every stage that converts clamps against these so
// that silence maps to the same level everywhere in a pipeline.
const (
	// PowerFloor is the smallest power value converted to decibels.
	PowerFloor = 1e-10

	// DBFloor is the level corresponding to PowerFloor.
	DBFloor = -100.0
)

// Clamp limits value to the inclusive range [min, max].
func Clamp(value, min, max float64) float64 {
	if min > max {
		min, max = max, min
	}

	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// NearlyEqual reports whether a and b are equal within eps.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return diff <= eps
	}

	return diff/largest <= eps
}

// PowerToDB converts linear power to dB (10*log10 convention).
// Values at or below PowerFloor, and NaN, map to DBFloor.
func PowerToDB(power float64) float64 {
	if !(power > PowerFloor) {
		return DBFloor
	}

	return 10 * math.Log10(power)
}

// DBToPower converts a level in dB to linear power (10*log10 convention).
func DBToPower(db float64) float64 {
	return math.Pow(10, db/10)
}

// AmplitudeToDB converts linear amplitude to dB (20*log10 convention),
// floored at DBFloor.
func AmplitudeToDB(amplitude float64) float64 {
	return PowerToDB(amplitude * amplitude)
}

// DBToAmplitude converts dB to linear amplitude (20*log10 convention).
func DBToAmplitude(db float64) float64 {
	return math.Pow(10, db/20)
}
