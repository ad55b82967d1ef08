package kinematics

import (
	"math"

	"github.com/san-kum/mechsolver/internal/calc"
)

func harmonicAt(amp, omega, phase, t float64) (x, v, a float64) {
	arg := omega*t + phase
	return amp * math.Sin(arg), amp * omega * math.Cos(arg), -amp * omega * omega * math.Sin(arg)
}

// HarmonicMotion evaluates x = A·sin(ωt+φ) at one instant. Phase is in radians.
func HarmonicMotion(amp, freq, phase, t float64) (*calc.Result, error) {
	if err := calc.NonZero("harmonic motion", "frequency", freq); err != nil {
		return nil, err
	}
	omega := 2 * math.Pi * freq
	x, v, a := harmonicAt(amp, omega, phase, t)
	return calc.NewResult().
		Set("displacement", x).
		Set("velocity", v).
		Set("acceleration", a).
		Set("period", 1/freq).
		Set("angular_frequency", omega), nil
}

// HarmonicMotionSeries returns displacement, velocity and acceleration as
// sequences parallel to ts.
func HarmonicMotionSeries(amp, freq, phase float64, ts []float64) (*calc.Result, error) {
	if err := calc.NonZero("harmonic motion", "frequency", freq); err != nil {
		return nil, err
	}
	omega := 2 * math.Pi * freq
	xs := make([]float64, len(ts))
	vs := make([]float64, len(ts))
	as := make([]float64, len(ts))
	for i, t := range ts {
		xs[i], vs[i], as[i] = harmonicAt(amp, omega, phase, t)
	}
	return calc.NewResult().
		SetSeries("displacement", xs).
		SetSeries("velocity", vs).
		SetSeries("acceleration", as).
		Set("period", 1/freq).
		Set("angular_frequency", omega), nil
}
