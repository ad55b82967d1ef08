package fluids

import (
	"math"

	"github.com/san-kum/mechsolver/internal/calc"
)

const (
	Gravity       = 9.81
	WaterDensity  = 1000.0
	WaterKinVisc  = 1e-6 // m²/s
	LaminarLimit  = 2300.0
	TurbulentFrom = 4000.0
)

const (
	RegimeLaminar      = "laminar"
	RegimeTransitional = "transitional"
	RegimeTurbulent    = "turbulent"
)

func classifyReynolds(re float64) string {
	switch {
	case re < LaminarLimit:
		return RegimeLaminar
	case re < TurbulentFrom:
		return RegimeTransitional
	}
	return RegimeTurbulent
}

// Reynolds is Re = v·L/ν with the usual pipe-flow regime boundaries.
func Reynolds(velocity, length, kinematicViscosity float64) (*calc.Result, error) {
	if err := calc.NonZero("reynolds", "kinematic viscosity", kinematicViscosity); err != nil {
		return nil, err
	}
	re := velocity * length / kinematicViscosity
	return calc.NewResult().
		Set("reynolds_number", re).
		SetLabel("flow_regime", classifyReynolds(math.Abs(re))), nil
}

// PipeHeadLoss is Darcy-Weisbach plus Σ K·v²/2g for each minor loss coefficient.
func PipeHeadLoss(length, diameter, velocity, friction float64, minorK []float64) (*calc.Result, error) {
	if err := calc.Positive("head loss", "diameter", diameter); err != nil {
		return nil, err
	}
	velocityHead := velocity * velocity / (2 * Gravity)
	major := friction * length / diameter * velocityHead

	minor := 0.0
	for _, k := range minorK {
		minor += k * velocityHead
	}

	return calc.NewResult().
		Set("major_loss", major).
		Set("minor_loss", minor).
		Set("total_loss", major+minor), nil
}

func pipeArea(diameter float64) float64 {
	return math.Pi * diameter * diameter / 4
}

func FlowRateToVelocity(flowRate, diameter float64) (*calc.Result, error) {
	if err := calc.Positive("flow rate to velocity", "diameter", diameter); err != nil {
		return nil, err
	}
	area := pipeArea(diameter)
	return calc.NewResult().
		Set("velocity", flowRate/area).
		Set("area", area), nil
}

// PressureDrop picks f = 64/Re below the laminar limit and the Blasius
// correlation above it, then applies Darcy-Weisbach in pressure form.
func PressureDrop(length, diameter, velocity, density, viscosity float64) (*calc.Result, error) {
	const op = "pressure drop"
	if err := calc.Positive(op, "diameter", diameter); err != nil {
		return nil, err
	}
	if err := calc.Positive(op, "density", density); err != nil {
		return nil, err
	}
	if err := calc.Positive(op, "dynamic viscosity", viscosity); err != nil {
		return nil, err
	}
	re := math.Abs(velocity) * diameter * density / viscosity
	if err := calc.Positive(op, "reynolds number", re); err != nil {
		return nil, err
	}

	var f float64
	if re < LaminarLimit {
		f = 64 / re
	} else {
		f = 0.316 * math.Pow(re, -0.25)
	}

	return calc.NewResult().
		Set("pressure_drop", f*(length/diameter)*density*velocity*velocity/2).
		Set("friction_factor", f).
		Set("reynolds_number", re).
		SetLabel("flow_regime", classifyReynolds(re)), nil
}

func PumpPower(flowRate, head, efficiency, density float64) (*calc.Result, error) {
	if err := calc.Positive("pump power", "efficiency", efficiency); err != nil {
		return nil, err
	}
	hydraulic := density * Gravity * flowRate * head
	return calc.NewResult().
		Set("hydraulic_power", hydraulic).
		Set("shaft_power", hydraulic/efficiency).
		Set("efficiency", efficiency), nil
}

// OrificeFlow assumes water viscosity for the reported Reynolds number.
func OrificeFlow(pressureDiff, diameter, dischargeCoeff, density float64) (*calc.Result, error) {
	const op = "orifice flow"
	if err := calc.Positive(op, "density", density); err != nil {
		return nil, err
	}
	if err := calc.NonNegative(op, "pressure difference", pressureDiff); err != nil {
		return nil, err
	}
	v := dischargeCoeff * math.Sqrt(2*pressureDiff/density)
	return calc.NewResult().
		Set("velocity", v).
		Set("flow_rate", v*pipeArea(diameter)).
		Set("reynolds_number", v*diameter/WaterKinVisc), nil
}

func NozzleThrust(massFlow, exitVelocity, exitPressure, ambientPressure, exitArea float64) (*calc.Result, error) {
	momentum := massFlow * exitVelocity
	pressure := (exitPressure - ambientPressure) * exitArea
	return calc.NewResult().
		Set("momentum_thrust", momentum).
		Set("pressure_thrust", pressure).
		Set("total_thrust", momentum+pressure), nil
}

func DragForce(velocity, density, area, cd float64) (*calc.Result, error) {
	q := 0.5 * density * velocity * velocity
	return calc.NewResult().
		Set("drag_force", cd*q*area).
		Set("dynamic_pressure", q), nil
}
