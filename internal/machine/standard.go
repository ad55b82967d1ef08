package machine

import "math"

// Standard size tables in mm. Gear modules and pulley diameters are picked
// by nearest value; shaft diameters by the first size at least as large.
var (
	standardModules = []float64{1, 1.25, 1.5, 2, 2.5, 3, 4, 5, 6, 8, 10, 12, 16, 20, 25, 32, 40, 50}
	standardShafts  = []float64{10, 12, 15, 17, 20, 25, 30, 35, 40, 45, 50, 55, 60, 70, 80, 90, 100}
	standardPulleys = []float64{63, 71, 80, 90, 100, 112, 125, 140, 160, 180, 200, 224, 250, 280, 315}
)

func StandardModules() []float64 { return append([]float64(nil), standardModules...) }
func StandardShafts() []float64  { return append([]float64(nil), standardShafts...) }
func StandardPulleys() []float64 { return append([]float64(nil), standardPulleys...) }

// Nearest returns the table entry closest to v. Ties go to the smaller
// entry. table must be ascending and non-empty.
func Nearest(table []float64, v float64) float64 {
	best := table[0]
	for _, s := range table[1:] {
		if math.Abs(s-v) < math.Abs(best-v) {
			best = s
		}
	}
	return best
}

// AtLeast returns the first entry >= v, or false when v exceeds the table.
func AtLeast(table []float64, v float64) (float64, bool) {
	for _, s := range table {
		if s >= v {
			return s, true
		}
	}
	return 0, false
}
