package kinematics

import (
	"math"

	"github.com/san-kum/mechsolver/internal/calc"
)

// MotionByTime applies s = v·t + ½a·t² and v_f = v + a·t.
func MotionByTime(v, a, t float64) (*calc.Result, error) {
	res := calc.NewResult().
		Set("displacement", v*t+0.5*a*t*t).
		Set("final_velocity", v+a*t)
	return res, nil
}

// MotionByDisplacement applies v_f = √(v² + 2a·s) and recovers the elapsed time.
func MotionByDisplacement(v, a, s float64) (*calc.Result, error) {
	const op = "motion"
	radicand := v*v + 2*a*s
	if radicand < 0 {
		return nil, calc.Domainf(op, "v² + 2as is negative (%g), displacement is never reached", radicand)
	}
	vf := math.Sqrt(radicand)

	var t float64
	if a == 0 {
		if err := calc.NonZero(op, "velocity", v); err != nil {
			return nil, err
		}
		t = s / v
	} else {
		t = (-v + vf) / a
	}

	return calc.NewResult().
		Set("final_velocity", vf).
		Set("time", t), nil
}

// MotionKnowns selects a motion solve by which quantities are given.
type MotionKnowns struct {
	Velocity     calc.Known
	Acceleration calc.Known
	Time         calc.Known
	Displacement calc.Known
}

// SolveMotion dispatches to MotionByTime when time is given and to
// MotionByDisplacement when displacement is given instead.
func SolveMotion(k MotionKnowns) (*calc.Result, error) {
	switch {
	case k.Velocity.Set && k.Acceleration.Set && k.Time.Set && !k.Displacement.Set:
		return MotionByTime(k.Velocity.Value, k.Acceleration.Value, k.Time.Value)
	case k.Velocity.Set && k.Acceleration.Set && k.Displacement.Set && !k.Time.Set:
		return MotionByDisplacement(k.Velocity.Value, k.Acceleration.Value, k.Displacement.Value)
	}
	return nil, &calc.CombinationError{
		Op:       "motion",
		Supplied: suppliedNames(k),
		Reason:   "supply velocity and acceleration plus exactly one of time or displacement",
	}
}

func suppliedNames(k MotionKnowns) []string {
	var names []string
	for _, f := range []struct {
		name string
		k    calc.Known
	}{
		{"velocity", k.Velocity},
		{"acceleration", k.Acceleration},
		{"time", k.Time},
		{"displacement", k.Displacement},
	} {
		if f.k.Set {
			names = append(names, f.name)
		}
	}
	return names
}

// AngularMotionByTime is the rotational analogue of MotionByTime.
func AngularMotionByTime(omega0, alpha, t float64) (*calc.Result, error) {
	return calc.NewResult().
		Set("final_angular_velocity", omega0+alpha*t).
		Set("angular_displacement", omega0*t+0.5*alpha*t*t), nil
}

// AngularMotionByDisplacement uses ω² = ω₀² + 2αθ.
func AngularMotionByDisplacement(omega0, alpha, theta float64) (*calc.Result, error) {
	radicand := omega0*omega0 + 2*alpha*theta
	if radicand < 0 {
		return nil, calc.Domainf("angular motion", "ω₀² + 2αθ is negative (%g)", radicand)
	}
	return calc.NewResult().Set("final_angular_velocity", math.Sqrt(radicand)), nil
}
