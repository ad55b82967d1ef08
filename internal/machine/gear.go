package machine

import (
	"math"

	"github.com/san-kum/mechsolver/internal/calc"
	"gonum.org/v1/gonum/unit"
)

// PinionTeeth is the minimum pinion tooth count used for sizing.
const PinionTeeth = 20

// Lewis form factor for a 20-tooth pinion.
const lewisY = 0.484 - 2.87/PinionTeeth

type GearInput struct {
	Power            float64 `mapstructure:"power"` // kW
	Speed            float64 `mapstructure:"speed"` // rpm
	Ratio            float64 `mapstructure:"gear_ratio"`
	PressureAngle    float64 `mapstructure:"pressure_angle"`
	QualityGrade     float64 `mapstructure:"quality_grade"`
	MaterialStrength float64 `mapstructure:"material_strength"` // MPa
}

func DefaultGearInput() GearInput {
	return GearInput{
		PressureAngle:    20,
		QualityGrade:     7,
		MaterialStrength: 300,
	}
}

// GearDesign sizes a spur pair with the Lewis bending equation and a
// Buckingham-style wear check. Lengths are reported in mm.
func GearDesign(in GearInput) (*calc.Result, error) {
	const op = "gear design"
	if err := calc.Positive(op, "speed", in.Speed); err != nil {
		return nil, err
	}
	if err := calc.Positive(op, "power", in.Power); err != nil {
		return nil, err
	}
	if err := calc.Positive(op, "gear ratio", in.Ratio); err != nil {
		return nil, err
	}
	if err := calc.Positive(op, "material strength", in.MaterialStrength); err != nil {
		return nil, err
	}

	watts := kilowatts(in.Power)
	tq, err := driveTorque(watts, rpm(in.Speed))
	if err != nil {
		return nil, err
	}
	torque := float64(tq)

	raw := math.Cbrt(2 * torque * in.QualityGrade / (in.MaterialStrength * lewisY * math.Pi))
	m := Nearest(standardModules, raw)

	z1 := PinionTeeth
	z2 := int(float64(z1) * in.Ratio)
	d1 := m * float64(z1)
	d2 := m * float64(z2)

	v := math.Pi * d1 * in.Speed / 60000
	face := 10 * m
	beam := in.MaterialStrength * face * lewisY
	load := 2 * in.Ratio / (in.Ratio + 1)
	wear := face * load * in.MaterialStrength * d1 / 2000

	ft, err := tangentialPull(watts, unit.Velocity(v))
	if err != nil {
		return nil, err
	}
	rating, err := transmitted(unit.Force(math.Min(beam, wear)), unit.Velocity(v))
	if err != nil {
		return nil, err
	}

	return calc.NewResult().
		Set("module", m).
		Set("pinion_teeth", float64(z1)).
		Set("gear_teeth", float64(z2)).
		Set("pinion_diameter", d1).
		Set("gear_diameter", d2).
		Set("center_distance", (d1+d2)/2).
		Set("face_width", face).
		Set("pitch_line_velocity", v).
		Set("tangential_force", float64(ft)).
		Set("beam_strength", beam).
		Set("wear_strength", wear).
		Set("power_rating", float64(rating)/unit.Kilo), nil
}
