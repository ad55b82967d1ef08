package catalog

import (
	"github.com/san-kum/mechsolver/internal/calc"
	"github.com/san-kum/mechsolver/internal/fluids"
)

// bernoulli picks the unknown at station 2. With neither velocity2 nor
// pressure2 given, station 2 is taken at station 1 pressure.
func bernoulli(v Values) (*calc.Result, error) {
	p1 := fluids.Point{
		Height:   v.Float("height1"),
		Velocity: v.Float("velocity1"),
		Pressure: v.Float("pressure1"),
	}
	h2, rho := v.Float("height2"), v.Float("density")
	v2, p2 := v.Known("velocity2"), v.Known("pressure2")

	switch {
	case v2.Set && p2.Set:
		return nil, &calc.CombinationError{
			Op:       "bernoulli",
			Supplied: []string{"velocity2", "pressure2"},
			Reason:   "give at most one of velocity2 or pressure2",
		}
	case v2.Set:
		return fluids.BernoulliPressure(p1, h2, v2.Value, rho)
	case p2.Set:
		return fluids.BernoulliVelocity(p1, h2, p2.Value, rho)
	}
	return fluids.BernoulliVelocity(p1, h2, p1.Pressure, rho)
}

func fluidsFormulas() []Formula {
	const mod = "fluids"
	return []Formula{
		{
			Module: mod, Name: "reynolds", Title: "Reynolds number",
			Params: []Param{
				num("velocity", "Flow velocity", "m/s", 1),
				num("length", "Characteristic length", "m", 0.1).atLeast(0),
				num("kinematic_viscosity", "Kinematic viscosity", "m²/s", fluids.WaterKinVisc).atLeast(0),
			},
			run: func(v Values) (*calc.Result, error) {
				return fluids.Reynolds(v.Float("velocity"), v.Float("length"), v.Float("kinematic_viscosity"))
			},
		},
		{
			Module: mod, Name: "head_loss", Title: "Pipe head loss (Darcy-Weisbach)",
			Params: []Param{
				num("length", "Pipe length", "m", 100).atLeast(0),
				num("diameter", "Pipe diameter", "m", 0.1),
				num("velocity", "Mean velocity", "m/s", 2),
				num("friction_factor", "Darcy friction factor", "", 0.02).atLeast(0),
				list("minor_losses", "Minor loss coefficients K", "").atLeast(0),
			},
			run: func(v Values) (*calc.Result, error) {
				return fluids.PipeHeadLoss(v.Float("length"), v.Float("diameter"), v.Float("velocity"),
					v.Float("friction_factor"), v.Series("minor_losses"))
			},
		},
		{
			Module: mod, Name: "flow_velocity", Title: "Velocity from flow rate",
			Params: []Param{
				num("flow_rate", "Volumetric flow rate", "m³/s", 0.01),
				num("diameter", "Pipe diameter", "m", 0.1),
			},
			run: func(v Values) (*calc.Result, error) {
				return fluids.FlowRateToVelocity(v.Float("flow_rate"), v.Float("diameter"))
			},
		},
		{
			Module: mod, Name: "pressure_drop", Title: "Pipe pressure drop",
			Params: []Param{
				num("length", "Pipe length", "m", 10).atLeast(0),
				num("diameter", "Pipe diameter", "m", 0.1),
				num("velocity", "Mean velocity", "m/s", 2),
				num("density", "Density", "kg/m³", fluids.WaterDensity),
				num("viscosity", "Dynamic viscosity", "Pa·s", 1e-3),
			},
			run: func(v Values) (*calc.Result, error) {
				return fluids.PressureDrop(v.Float("length"), v.Float("diameter"), v.Float("velocity"),
					v.Float("density"), v.Float("viscosity"))
			},
		},
		{
			Module: mod, Name: "pump_power", Title: "Pump power",
			Params: []Param{
				num("flow_rate", "Volumetric flow rate", "m³/s", 0.05),
				num("head", "Total head", "m", 20),
				num("efficiency", "Pump efficiency", "", 0.8).between(0, 1),
				num("density", "Density", "kg/m³", fluids.WaterDensity),
			},
			run: func(v Values) (*calc.Result, error) {
				return fluids.PumpPower(v.Float("flow_rate"), v.Float("head"), v.Float("efficiency"), v.Float("density"))
			},
		},
		{
			Module: mod, Name: "orifice_flow", Title: "Orifice discharge",
			Params: []Param{
				num("pressure_difference", "Pressure difference", "Pa", 10_000),
				num("diameter", "Orifice diameter", "m", 0.05),
				num("discharge_coefficient", "Discharge coefficient", "", 0.61).between(0, 1),
				num("density", "Density", "kg/m³", fluids.WaterDensity),
			},
			run: func(v Values) (*calc.Result, error) {
				return fluids.OrificeFlow(v.Float("pressure_difference"), v.Float("diameter"),
					v.Float("discharge_coefficient"), v.Float("density"))
			},
		},
		{
			Module: mod, Name: "nozzle_thrust", Title: "Nozzle thrust",
			Params: []Param{
				num("mass_flow", "Mass flow rate", "kg/s", 10),
				num("exit_velocity", "Exit velocity", "m/s", 2000),
				num("exit_pressure", "Exit pressure", "Pa", 120_000),
				num("ambient_pressure", "Ambient pressure", "Pa", 101_325),
				num("exit_area", "Exit area", "m²", 0.1).atLeast(0),
			},
			run: func(v Values) (*calc.Result, error) {
				return fluids.NozzleThrust(v.Float("mass_flow"), v.Float("exit_velocity"),
					v.Float("exit_pressure"), v.Float("ambient_pressure"), v.Float("exit_area"))
			},
		},
		{
			Module: mod, Name: "drag_force", Title: "Aerodynamic drag",
			Params: []Param{
				num("velocity", "Velocity", "m/s", 30),
				num("density", "Fluid density", "kg/m³", 1.225),
				num("area", "Frontal area", "m²", 2).atLeast(0),
				num("drag_coefficient", "Drag coefficient", "", 0.3).atLeast(0),
			},
			run: func(v Values) (*calc.Result, error) {
				return fluids.DragForce(v.Float("velocity"), v.Float("density"), v.Float("area"), v.Float("drag_coefficient"))
			},
		},
		{
			Module: mod, Name: "bernoulli", Title: "Bernoulli's equation",
			Params: []Param{
				num("height1", "Height at point 1", "m", 0),
				num("velocity1", "Velocity at point 1", "m/s", 0),
				num("pressure1", "Pressure at point 1", "Pa", 101_325),
				num("height2", "Height at point 2", "m", 0),
				opt("velocity2", "Velocity at point 2", "m/s"),
				opt("pressure2", "Pressure at point 2", "Pa"),
				num("density", "Density", "kg/m³", fluids.WaterDensity),
			},
			run: bernoulli,
		},
		{
			Module: mod, Name: "open_channel", Title: "Open channel flow (Manning)",
			Params: []Param{
				pick("channel_type", "Section", fluids.ChannelKinds(), "rectangular"),
				num("width", "Bottom width", "m", 2),
				num("depth", "Flow depth", "m", 1),
				num("slope", "Bed slope", "", 0.001).atLeast(0),
				num("manning_n", "Manning roughness n", "", 0.013),
			},
			run: func(v Values) (*calc.Result, error) {
				kind, err := fluids.ParseChannelKind(v.Choice("channel_type"))
				if err != nil {
					return nil, err
				}
				return fluids.OpenChannel(kind, v.Float("width"), v.Float("depth"), v.Float("slope"), v.Float("manning_n"))
			},
		},
		{
			Module: mod, Name: "weir_flow", Title: "Weir discharge",
			Params: []Param{
				pick("weir_type", "Weir", fluids.WeirKinds(), "rectangular"),
				num("height", "Weir height", "m", 1),
				num("width", "Crest width", "m", 1).atLeast(0),
				num("head", "Head over crest", "m", 0.5),
			},
			run: func(v Values) (*calc.Result, error) {
				kind, err := fluids.ParseWeirKind(v.Choice("weir_type"))
				if err != nil {
					return nil, err
				}
				return fluids.WeirFlow(kind, v.Float("height"), v.Float("width"), v.Float("head"))
			},
		},
		{
			Module: mod, Name: "waves", Title: "Linear wave properties",
			Params: []Param{
				num("wavelength", "Wavelength", "m", 100),
				num("depth", "Water depth", "m", 10),
			},
			run: func(v Values) (*calc.Result, error) {
				return fluids.WaveProperties(v.Float("wavelength"), v.Float("depth"))
			},
		},
	}
}
