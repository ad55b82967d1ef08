package machine

import (
	"math"

	"gonum.org/v1/gonum/unit"
)

func kilowatts(p float64) unit.Power { return unit.Power(p * unit.Kilo) }

// rpm converts a rotational speed to angular frequency in rad/s.
func rpm(n float64) unit.Frequency { return unit.Frequency(2 * math.Pi * n / 60) }

// driveTorque is the torque carrying power p at angular speed w.
func driveTorque(p unit.Power, w unit.Frequency) (unit.Torque, error) {
	var t unit.Torque
	err := t.From(p.Unit().Div(w))
	return t, err
}

// tangentialPull is the rim force carrying power p at surface speed v.
func tangentialPull(p unit.Power, v unit.Velocity) (unit.Force, error) {
	var f unit.Force
	err := f.From(p.Unit().Div(v))
	return f, err
}

// transmitted is the power a rim force f delivers at surface speed v.
func transmitted(f unit.Force, v unit.Velocity) (unit.Power, error) {
	var p unit.Power
	err := p.From(f.Unit().Mul(v))
	return p, err
}
