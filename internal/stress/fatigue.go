package stress

import (
	"math"

	"github.com/san-kum/mechsolver/internal/calc"
)

// BasquinExponent is the fatigue strength exponent used for finite life.
const BasquinExponent = -0.085

const (
	LifeInfinite = "infinite"
	LifeFinite   = "finite"
)

type FatigueInput struct {
	MaxStress         float64 `mapstructure:"stress_max"`
	MinStress         float64 `mapstructure:"stress_min"`
	UltimateStrength  float64 `mapstructure:"ultimate_strength"`
	EnduranceLimit    float64 `mapstructure:"endurance_limit"`
	SurfaceFactor     float64 `mapstructure:"surface_factor"`
	SizeFactor        float64 `mapstructure:"size_factor"`
	ReliabilityFactor float64 `mapstructure:"reliability_factor"`
}

// DefaultFatigueInput carries the usual machined-surface, small-size and
// 90% reliability factors.
func DefaultFatigueInput() FatigueInput {
	return FatigueInput{
		SurfaceFactor:     0.9,
		SizeFactor:        0.95,
		ReliabilityFactor: 0.897,
	}
}

// Fatigue applies the modified Goodman criterion. A safety factor above one
// is reported as infinite life through the infinite_life flag; only finite
// life carries cycles_to_failure.
func Fatigue(in FatigueInput) (*calc.Result, error) {
	const op = "fatigue"
	if err := calc.Positive(op, "ultimate strength", in.UltimateStrength); err != nil {
		return nil, err
	}
	se := in.EnduranceLimit * in.SurfaceFactor * in.SizeFactor * in.ReliabilityFactor
	if err := calc.Positive(op, "modified endurance limit", se); err != nil {
		return nil, err
	}

	amp := (in.MaxStress - in.MinStress) / 2
	mean := (in.MaxStress + in.MinStress) / 2

	damage := amp/se + mean/in.UltimateStrength
	if damage <= 0 {
		return nil, calc.Domainf(op, "cycle never reaches the Goodman line (amplitude %g, mean %g)", amp, mean)
	}
	sf := 1 / damage

	res := calc.NewResult().
		Set("safety_factor", sf).
		Set("modified_endurance_limit", se).
		Set("stress_amplitude", amp).
		Set("mean_stress", mean)

	if sf > 1 {
		return res.SetFlag("infinite_life", true).SetLabel("life", LifeInfinite), nil
	}

	// A static load beyond the ultimate strength fails on the first cycle.
	cycles := 0.0
	if amp > 0 {
		cycles = math.Pow(math.Abs(amp)/se, 1/BasquinExponent)
	}
	return res.
		SetFlag("infinite_life", false).
		SetLabel("life", LifeFinite).
		Set("cycles_to_failure", cycles), nil
}
