package machine

import (
	"math"

	"github.com/san-kum/mechsolver/internal/calc"
	"gonum.org/v1/gonum/unit"
)

type BeltKind int

const (
	VBelt BeltKind = iota
	FlatBelt
)

var beltKindNames = []string{"V", "flat"}

func (k BeltKind) String() string { return calc.VariantName(k, beltKindNames) }

func ParseBeltKind(s string) (BeltKind, error) {
	return calc.ParseVariant[BeltKind]("belt type", s, beltKindNames)
}

func BeltKinds() []string { return append([]string(nil), beltKindNames...) }

// ServiceFactor is applied to transmitted power for normal duty.
const ServiceFactor = 1.2

type BeltInput struct {
	Power          float64  `mapstructure:"power"`        // kW
	DriverSpeed    float64  `mapstructure:"speed_driver"` // rpm
	DrivenSpeed    float64  `mapstructure:"speed_driven"` // rpm
	CenterDistance float64  `mapstructure:"center_distance"`
	Kind           BeltKind `mapstructure:"belt_type"`
}

// BeltDesign picks standard pulleys and derives belt length, wrap angles and
// side tensions with the capstan relation. V belts use μ = 0.35 and a 34°
// groove; flat belts μ = 0.30.
func BeltDesign(in BeltInput) (*calc.Result, error) {
	const op = "belt design"
	if err := calc.CheckVariant("belt type", in.Kind, beltKindNames); err != nil {
		return nil, err
	}
	if err := calc.Positive(op, "power", in.Power); err != nil {
		return nil, err
	}
	if err := calc.Positive(op, "driver speed", in.DriverSpeed); err != nil {
		return nil, err
	}
	if err := calc.Positive(op, "driven speed", in.DrivenSpeed); err != nil {
		return nil, err
	}
	if err := calc.Positive(op, "center distance", in.CenterDistance); err != nil {
		return nil, err
	}

	ratio := in.DriverSpeed / in.DrivenSpeed
	raw := math.Sqrt(in.Power*unit.Kilo/in.DriverSpeed) * 0.03

	d1 := Nearest(standardPulleys, raw/unit.Milli) * unit.Milli
	d2 := Nearest(standardPulleys, raw*ratio/unit.Milli) * unit.Milli

	c := in.CenterDistance
	s := (d2 - d1) / (2 * c)
	if math.Abs(s) > 1 {
		return nil, calc.Domainf(op, "center distance %g m is too short for %g and %g m pulleys", c, d1, d2)
	}
	wrap1 := math.Pi - 2*math.Asin(s)
	wrap2 := math.Pi + 2*math.Asin(s)

	var tensionRatio float64
	switch in.Kind {
	case VBelt:
		groove := 34 * math.Pi / 180
		tensionRatio = math.Exp(0.35 * wrap1 / math.Sin(groove/2))
	case FlatBelt:
		tensionRatio = math.Exp(0.30 * wrap1)
	}

	v := math.Pi * d1 * in.DriverSpeed / 60
	pull, err := tangentialPull(kilowatts(in.Power), unit.Velocity(v))
	if err != nil {
		return nil, err
	}
	tight := float64(pull)
	design := in.Power * ServiceFactor

	return calc.NewResult().
		Set("driver_diameter", d1).
		Set("driven_diameter", d2).
		Set("belt_length", 2*c+math.Pi*(d1+d2)/2+(d2-d1)*(d2-d1)/(4*c)).
		Set("belt_speed", v).
		Set("wrap_angle_driver", wrap1*180/math.Pi).
		Set("wrap_angle_driven", wrap2*180/math.Pi).
		Set("tight_side_tension", tight).
		Set("slack_side_tension", tight/tensionRatio).
		Set("power_per_belt", in.Power).
		Set("design_power", design).
		Set("number_of_belts_required", math.Ceil(design/in.Power)), nil
}
