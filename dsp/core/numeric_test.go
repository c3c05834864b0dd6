package core

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		min      float64
		max      float64
		expected float64
	}{
		{name: "inside", value: 0.5, min: 0, max: 1, expected: 0.5},
		{name: "below", value: -61, min: -60, max: 120, expected: -60},
		{name: "above", value: 130, min: -60, max: 120, expected: 120},
		{name: "swapped", value: 2, min: 1, max: 0, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Clamp(tt.value, tt.min, tt.max)
			if got != tt.expected {
				t.Fatalf("Clamp() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestNearlyEqual(t *testing.T) {
	if !NearlyEqual(1.0, 1.0+1e-13, 1e-12) {
		t.Fatal("expected values to be nearly equal")
	}
	if NearlyEqual(1.0, 1.1, 1e-3) {
		t.Fatal("expected values to differ")
	}
}

func TestPowerToDBFloor(t *testing.T) {
	tests := []struct {
		name  string
		power float64
		want  float64
	}{
		{name: "unity", power: 1, want: 0},
		{name: "hundred", power: 100, want: 20},
		{name: "floor", power: PowerFloor, want: DBFloor},
		{name: "below floor", power: 1e-20, want: DBFloor},
		{name: "zero", power: 0, want: DBFloor},
		{name: "negative", power: -1, want: DBFloor},
		{name: "nan", power: math.NaN(), want: DBFloor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PowerToDB(tt.power)
			if !NearlyEqual(got, tt.want, 1e-12) {
				t.Fatalf("PowerToDB(%v) = %v, want %v", tt.power, got, tt.want)
			}
		})
	}
}

func TestDBPowerRoundTrip(t *testing.T) {
	for _, db := range []float64{-60, -3, 0, 40, 94, 120} {
		got := PowerToDB(DBToPower(db))
		if !NearlyEqual(got, db, 1e-10) {
			t.Fatalf("PowerToDB(DBToPower(%v)) = %v", db, got)
		}
	}
}

func TestAmplitudeConversions(t *testing.T) {
	a := DBToAmplitude(-6)
	if !NearlyEqual(AmplitudeToDB(a), -6, 1e-10) {
		t.Fatalf("AmplitudeToDB(DBToAmplitude(-6)) = %v", AmplitudeToDB(a))
	}
	if AmplitudeToDB(0) != DBFloor {
		t.Fatalf("AmplitudeToDB(0) = %v, want %v", AmplitudeToDB(0), DBFloor)
	}
}
