package machine

import (
	"math"

	"github.com/san-kum/mechsolver/internal/calc"
)

// CriticalSlenderness is the free-length to coil-diameter ratio above which
// a compression spring with fixed ends may buckle.
const CriticalSlenderness = 2.63

type SpringInput struct {
	Load         float64 `mapstructure:"load"`
	Deflection   float64 `mapstructure:"deflection"`
	WireDiameter float64 `mapstructure:"wire_diameter"`
	ShearModulus float64 `mapstructure:"material_modulus"`
	Strength     float64 `mapstructure:"material_strength"`
	SafetyFactor float64 `mapstructure:"safety_factor"`
	SpringIndex  float64 `mapstructure:"spring_index"`
}

// DefaultSpringInput is music-wire steel at spring index 6.
func DefaultSpringInput() SpringInput {
	return SpringInput{
		ShearModulus: 79.3e9,
		Strength:     1200e6,
		SafetyFactor: 1.5,
		SpringIndex:  6,
	}
}

// WahlFactor corrects coil shear stress for curvature at spring index c.
func WahlFactor(c float64) float64 {
	return (4*c-1)/(4*c-4) + 0.615/c
}

// SpringDesign sizes a helical compression spring with squared and ground
// ends.
func SpringDesign(in SpringInput) (*calc.Result, error) {
	const op = "spring design"
	if err := calc.Positive(op, "deflection", in.Deflection); err != nil {
		return nil, err
	}
	if err := calc.Positive(op, "wire diameter", in.WireDiameter); err != nil {
		return nil, err
	}
	if err := calc.Positive(op, "load", in.Load); err != nil {
		return nil, err
	}
	if in.SpringIndex <= 1 {
		return nil, calc.Domainf(op, "spring index must exceed 1, got %g", in.SpringIndex)
	}
	if err := calc.Positive(op, "safety factor", in.SafetyFactor); err != nil {
		return nil, err
	}

	c := in.SpringIndex
	d := in.WireDiameter
	coil := c * d
	rate := in.Load / in.Deflection

	active := in.ShearModulus * math.Pow(d, 4) / (8 * math.Pow(coil, 3) * rate)
	total := active + 2
	solid := total * d
	free := solid + 1.15*in.Deflection

	tau := WahlFactor(c) * 8 * in.Load * coil / (math.Pi * d * d * d)
	slenderness := free / coil

	return calc.NewResult().
		Set("mean_coil_diameter", coil).
		Set("spring_index", c).
		Set("active_coils", active).
		Set("total_coils", total).
		Set("free_length", free).
		Set("solid_length", solid).
		Set("spring_rate", rate).
		Set("max_shear_stress", tau).
		Set("stress_safety_factor", in.Strength/(in.SafetyFactor*tau)).
		Set("buckling_slenderness", slenderness).
		Set("critical_slenderness", CriticalSlenderness).
		SetFlag("buckling_risk", slenderness > CriticalSlenderness), nil
}

// AcmeThreadAngle is the included thread angle in degrees.
const AcmeThreadAngle = 29.0

type ScrewInput struct {
	Load           float64 `mapstructure:"axial_load"`
	MeanDiameter   float64 `mapstructure:"mean_diameter"`
	Pitch          float64 `mapstructure:"pitch"`
	ThreadFriction float64 `mapstructure:"coefficient_friction"`
	CollarFriction float64 `mapstructure:"collar_friction"`
	CollarDiameter float64 `mapstructure:"collar_mean_diameter"` // zero means 1.5 × mean diameter
}

func DefaultScrewInput() ScrewInput {
	return ScrewInput{ThreadFriction: 0.15, CollarFriction: 0.12}
}

// PowerScrew computes Acme screw torques. The screw self-locks when the
// effective friction f' = f/cos(α/2) exceeds tan λ. Lowering torque is
// negative for an overhauling screw.
func PowerScrew(in ScrewInput) (*calc.Result, error) {
	const op = "power screw"
	if err := calc.Positive(op, "mean diameter", in.MeanDiameter); err != nil {
		return nil, err
	}
	if err := calc.Positive(op, "pitch", in.Pitch); err != nil {
		return nil, err
	}
	if err := calc.Positive(op, "axial load", in.Load); err != nil {
		return nil, err
	}
	collarD := in.CollarDiameter
	if collarD == 0 {
		collarD = 1.5 * in.MeanDiameter
	}

	alpha := AcmeThreadAngle * math.Pi / 180
	tanLead := in.Pitch / (math.Pi * in.MeanDiameter)
	fp := in.ThreadFriction / math.Cos(alpha/2)

	if fp*tanLead >= 1 {
		return nil, calc.Domainf(op, "thread friction %g locks the screw against raising", in.ThreadFriction)
	}

	half := in.Load * in.MeanDiameter / 2
	raiseScrew := half * (tanLead + fp) / (1 - fp*tanLead)
	lowerScrew := half * (fp - tanLead) / (1 + fp*tanLead)
	collar := in.Load * in.CollarFriction * collarD / 2

	raise := raiseScrew + collar

	return calc.NewResult().
		Set("raising_torque", raise).
		Set("lowering_torque", lowerScrew+collar).
		Set("efficiency", in.Load*in.Pitch/(2*math.Pi*raise)*100).
		Set("lead_angle_degrees", math.Atan(tanLead)*180/math.Pi).
		SetFlag("self_locking", fp > tanLead).
		Set("screw_torque", raiseScrew).
		Set("collar_torque", collar), nil
}
