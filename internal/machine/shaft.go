package machine

import (
	"math"

	"github.com/san-kum/mechsolver/internal/calc"
	"gonum.org/v1/gonum/unit"
)

type ShaftInput struct {
	Torque              float64 `mapstructure:"torque"`              // N·m
	BendingMoment       float64 `mapstructure:"bending_moment"`      // N·m
	YieldStrength       float64 `mapstructure:"yield_strength"`      // MPa
	FatigueStrength     float64 `mapstructure:"fatigue_strength"`    // MPa, zero means half of yield
	SafetyFactor        float64 `mapstructure:"safety_factor"`
	StressConcentration float64 `mapstructure:"stress_concentration"`
}

func DefaultShaftInput() ShaftInput {
	return ShaftInput{SafetyFactor: 2, StressConcentration: 1.5}
}

// ShaftDesign uses the ASME equivalent moment
// Me = √((Kt·M)² + ¾(Kt·T)²) and keeps the larger of the static and fatigue
// diameters, rounded up to a standard size.
func ShaftDesign(in ShaftInput) (*calc.Result, error) {
	const op = "shaft design"
	if err := calc.Positive(op, "yield strength", in.YieldStrength); err != nil {
		return nil, err
	}
	if err := calc.Positive(op, "safety factor", in.SafetyFactor); err != nil {
		return nil, err
	}
	fatigue := in.FatigueStrength
	if fatigue == 0 {
		fatigue = 0.5 * in.YieldStrength
	}
	if err := calc.Positive(op, "fatigue strength", fatigue); err != nil {
		return nil, err
	}

	sy := in.YieldStrength * unit.Mega
	sf := fatigue * unit.Mega
	kt := in.StressConcentration

	me := math.Sqrt(math.Pow(kt*in.BendingMoment, 2) + 0.75*math.Pow(kt*in.Torque, 2))
	if err := calc.Positive(op, "equivalent moment", me); err != nil {
		return nil, err
	}

	dStatic := math.Cbrt(16 * in.SafetyFactor * me / (math.Pi * sy))
	dFatigue := math.Cbrt(16 * in.SafetyFactor * me / (math.Pi * sf))
	d := math.Max(dStatic, dFatigue)

	std, ok := AtLeast(standardShafts, d/unit.Milli)
	if !ok {
		return nil, calc.Domainf(op, "required diameter %.1f mm exceeds the largest standard shaft (%g mm)",
			d/unit.Milli, standardShafts[len(standardShafts)-1])
	}
	actual := std * unit.Milli
	stress := 32 * me / (math.Pi * actual * actual * actual)

	return calc.NewResult().
		Set("required_diameter", d).
		Set("actual_diameter", actual).
		Set("equivalent_moment", me).
		Set("maximum_stress", stress/unit.Mega).
		Set("actual_safety_factor", math.Min(sy, sf)/stress), nil
}
