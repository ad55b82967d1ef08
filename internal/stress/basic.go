package stress

import (
	"math"

	"github.com/san-kum/mechsolver/internal/calc"
)

// NormalStress is σ = F/A.
func NormalStress(force, area float64) (*calc.Result, error) {
	if err := calc.NonZero("normal stress", "area", area); err != nil {
		return nil, err
	}
	return calc.NewResult().Set("stress", force/area), nil
}

func ShearStress(force, area float64) (*calc.Result, error) {
	if err := calc.NonZero("shear stress", "area", area); err != nil {
		return nil, err
	}
	return calc.NewResult().Set("shear_stress", force/area), nil
}

// Strain is Hooke's law, ε = σ/E.
func Strain(stress, modulus float64) (*calc.Result, error) {
	if err := calc.NonZero("strain", "elastic modulus", modulus); err != nil {
		return nil, err
	}
	return calc.NewResult().Set("strain", stress/modulus), nil
}

// Hooke combines NormalStress and Strain for an axial member.
func Hooke(force, area, modulus float64) (*calc.Result, error) {
	const op = "hooke"
	if err := calc.NonZero(op, "area", area); err != nil {
		return nil, err
	}
	if err := calc.NonZero(op, "elastic modulus", modulus); err != nil {
		return nil, err
	}
	sigma := force / area
	return calc.NewResult().
		Set("stress", sigma).
		Set("strain", sigma/modulus), nil
}

func StrainFromElongation(deltaL, originalLength float64) (*calc.Result, error) {
	if err := calc.NonZero("strain", "original length", originalLength); err != nil {
		return nil, err
	}
	return calc.NewResult().Set("strain", deltaL/originalLength), nil
}

func ElasticModulus(stress, strain float64) (*calc.Result, error) {
	if err := calc.NonZero("elastic modulus", "strain", strain); err != nil {
		return nil, err
	}
	return calc.NewResult().Set("elastic_modulus", stress/strain), nil
}

// BendingStress is σ = M·y/I.
func BendingStress(moment, distance, inertia float64) (*calc.Result, error) {
	if err := calc.NonZero("bending stress", "moment of inertia", inertia); err != nil {
		return nil, err
	}
	return calc.NewResult().Set("bending_stress", moment*distance/inertia), nil
}

// Torsion is τ = T·r/J, which is also the maximum when r is the outer radius.
func Torsion(torque, radius, polarMoment float64) (*calc.Result, error) {
	if err := calc.NonZero("torsion", "polar moment", polarMoment); err != nil {
		return nil, err
	}
	tau := torque * radius / polarMoment
	return calc.NewResult().
		Set("shear_stress", tau).
		Set("max_shear_stress", tau), nil
}

type LoadPattern int

const (
	PointCenter LoadPattern = iota
	PointEnd
	Uniform
)

var loadPatternNames = []string{"point_center", "point_end", "uniform"}

func (p LoadPattern) String() string { return calc.VariantName(p, loadPatternNames) }

func ParseLoadPattern(s string) (LoadPattern, error) {
	return calc.ParseVariant[LoadPattern]("load type", s, loadPatternNames)
}

func LoadPatterns() []string { return append([]string(nil), loadPatternNames...) }

// BeamDeflection gives peak deflection k·P·L³/(E·I) and peak moment.
// The uniform moment is P·L²/8, treating P as a load per unit length there.
func BeamDeflection(pattern LoadPattern, load, length, modulus, inertia float64) (*calc.Result, error) {
	const op = "beam deflection"
	if err := calc.NonZero(op, "flexural rigidity E·I", modulus*inertia); err != nil {
		return nil, err
	}

	var factor, moment float64
	switch pattern {
	case PointCenter:
		factor, moment = 1.0/48, load*length/4
	case PointEnd:
		factor, moment = 1.0/3, load*length
	case Uniform:
		factor, moment = 5.0/384, load*length*length/8
	default:
		return nil, calc.CheckVariant("load type", pattern, loadPatternNames)
	}

	return calc.NewResult().
		Set("max_deflection", factor*load*math.Pow(length, 3)/(modulus*inertia)).
		Set("max_moment", moment), nil
}
