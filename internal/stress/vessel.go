package stress

import (
	"github.com/san-kum/mechsolver/internal/calc"
)

type VesselKind int

const (
	ThinCylinder VesselKind = iota
	ThickCylinder
	Sphere
)

var vesselKindNames = []string{"thin_cylinder", "thick_cylinder", "sphere"}

func (k VesselKind) String() string { return calc.VariantName(k, vesselKindNames) }

func ParseVesselKind(s string) (VesselKind, error) {
	return calc.ParseVariant[VesselKind]("vessel type", s, vesselKindNames)
}

func VesselKinds() []string { return append([]string(nil), vesselKindNames...) }

// PressureVessel computes wall stresses for internal pressure p, inner
// radius r and wall thickness t. Thick cylinders use the Lamé solution.
func PressureVessel(kind VesselKind, p, r, t float64) (*calc.Result, error) {
	const op = "pressure vessel"
	if err := calc.Positive(op, "thickness", t); err != nil {
		return nil, err
	}
	if err := calc.Positive(op, "radius", r); err != nil {
		return nil, err
	}

	switch kind {
	case ThinCylinder:
		hoop := p * r / t
		long := p * r / (2 * t)
		return calc.NewResult().
			Set("hoop_stress", hoop).
			Set("longitudinal_stress", long).
			Set("von_mises_stress", VonMises(hoop, long, 0)), nil

	case ThickCylinder:
		ro := r + t
		c := ro * ro / (r * r)
		return calc.NewResult().
			Set("hoop_stress_inner", p*(c+1)/(c-1)).
			Set("hoop_stress_outer", 2*p/(c-1)).
			Set("radial_stress_inner", -p).
			Set("radial_stress_outer", 0), nil

	case Sphere:
		hoop := p * r / (2 * t)
		return calc.NewResult().
			Set("hoop_stress", hoop).
			Set("von_mises_stress", hoop), nil
	}
	return nil, calc.CheckVariant("vessel type", kind, vesselKindNames)
}

type Constraint int

const (
	FullConstraint Constraint = iota
	PartialConstraint
)

var constraintNames = []string{"full", "partial"}

func (c Constraint) String() string { return calc.VariantName(c, constraintNames) }

func ParseConstraint(s string) (Constraint, error) {
	return calc.ParseVariant[Constraint]("constraint", s, constraintNames)
}

func Constraints() []string { return append([]string(nil), constraintNames...) }

// ThermalStress for a bar heated by dT. A fully restrained bar takes all of
// the free strain as stress, a partially restrained one half of it.
func ThermalStress(constraint Constraint, dT, alpha, modulus float64) (*calc.Result, error) {
	switch constraint {
	case FullConstraint:
		return calc.NewResult().
			Set("thermal_stress", -alpha*modulus*dT).
			Set("thermal_strain", 0), nil
	case PartialConstraint:
		return calc.NewResult().
			Set("thermal_stress", -0.5*alpha*modulus*dT).
			Set("thermal_strain", 0.5*alpha*dT), nil
	}
	return nil, calc.CheckVariant("constraint", constraint, constraintNames)
}
