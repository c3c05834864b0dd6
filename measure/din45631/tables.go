package din45631

// Ranges of third-octave levels for the low-frequency corrections.
var rap = [8]float64{45, 55, 65, 71, 80, 90, 100, 120}

// Level corrections for the eleven lowest third-octave bands (25..250 Hz),
// one row per range in rap.
var dll = [8][11]float64{
	{-32, -24, -16, -10, -5, 0, -7, -3, 0, -2, 0},
	{-29, -22, -15, -10, -4, 0, -7, -2, 0, -2, 0},
	{-27, -19, -14, -9, -4, 0, -6, -2, 0, -2, 0},
	{-25, -17, -12, -9, -3, 0, -5, -2, 0, -2, 0},
	{-23, -16, -11, -7, -3, 0, -4, -1, 0, -1, 0},
	{-20, -14, -10, -6, -3, 0, -4, -1, 0, -1, 0},
	{-18, -12, -9, -6, -2, 0, -3, -1, 0, -1, 0},
	{-15, -10, -8, -4, -2, 0, -3, -1, 0, -1, 0},
}

// Threshold in quiet per critical band.
var ltq = [NumCriticalBands]float64{
	30, 18, 12, 8, 7, 6, 5, 4, 3, 3,
	3, 3, 3, 3, 3, 3, 3, 3, 3, 3,
}

// Free-field outer-ear transmission.
var a0 = [NumCriticalBands]float64{
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	-0.5, -1.6, -3.2, -5.4, -5.6, -4, -1.5, 2, 5, 12,
}

// Level differences between diffuse and free field.
var ddf = [NumCriticalBands]float64{
	0, 0, 0.5, 0.9, 1.2, 1.6, 2.3, 2.8, 3, 2,
	0, -1.4, -2, -1.9, -1, 0.5, 3, 4, 4.3, 4,
}

// Adaptation of third-octave to critical-band levels.
var dcb = [NumCriticalBands]float64{
	-0.25, -0.6, -0.8, -0.8, -0.5, 0, 0.5, 1.1, 1.5, 1.7,
	1.8, 1.8, 1.7, 1.6, 1.4, 1.2, 0.8, 0.5, 0, -0.5,
}

var centreFreqs = [NumBands]float64{
	25, 31.5, 40, 50, 63, 80, 100, 125, 160, 200,
	250, 315, 400, 500, 630, 800, 1000, 1250, 1600, 2000,
	2500, 3150, 4000, 5000, 6300, 8000, 10000, 12500,
}

// Table is a named correction table for display.
type Table struct {
	Name string
	Rows [][]float64
}

// Tables returns copies of the correction tables in the order RAP, DLL, LTQ,
// A0, DDF, DCB.
func Tables() []Table {
	dllRows := make([][]float64, len(dll))
	for j := range dll {
		dllRows[j] = append([]float64(nil), dll[j][:]...)
	}

	return []Table{
		{Name: "RAP", Rows: [][]float64{append([]float64(nil), rap[:]...)}},
		{Name: "DLL", Rows: dllRows},
		{Name: "LTQ", Rows: [][]float64{append([]float64(nil), ltq[:]...)}},
		{Name: "A0", Rows: [][]float64{append([]float64(nil), a0[:]...)}},
		{Name: "DDF", Rows: [][]float64{append([]float64(nil), ddf[:]...)}},
		{Name: "DCB", Rows: [][]float64{append([]float64(nil), dcb[:]...)}},
	}
}

// CentreFreqs returns the 28 nominal third-octave centre frequencies the
// transform expects, 25 Hz to 12.5 kHz.
func CentreFreqs() []float64 {
	return append([]float64(nil), centreFreqs[:]...)
}
