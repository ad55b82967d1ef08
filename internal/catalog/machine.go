package catalog

import (
	"github.com/san-kum/mechsolver/internal/calc"
	"github.com/san-kum/mechsolver/internal/machine"
)

// decodeInto is the common body of struct-input formulas.
func decodeInto[T any](def T, solve func(T) (*calc.Result, error)) func(Values) (*calc.Result, error) {
	return func(v Values) (*calc.Result, error) {
		in := def
		if err := v.Decode(&in); err != nil {
			return nil, err
		}
		return solve(in)
	}
}

func machineFormulas() []Formula {
	const mod = "machine"
	return []Formula{
		{
			Module: mod, Name: "gear_design", Title: "Spur gear design",
			Params: []Param{
				num("power", "Transmitted power", "kW", 10).atLeast(0),
				num("speed", "Pinion speed", "rpm", 1000).atLeast(0),
				num("gear_ratio", "Gear ratio", "", 3).atLeast(1),
				num("pressure_angle", "Pressure angle", "deg", 20).between(14.5, 25),
				num("quality_grade", "Quality grade", "", 7).between(3, 12).integer(),
				num("material_strength", "Allowable bending stress", "MPa", 300).atLeast(0),
			},
			run: decodeInto(machine.DefaultGearInput(), machine.GearDesign),
		},
		{
			Module: mod, Name: "shaft_design", Title: "Shaft design (ASME)",
			Params: []Param{
				num("torque", "Torque", "N·m", 500),
				num("bending_moment", "Bending moment", "N·m", 800),
				num("yield_strength", "Yield strength", "MPa", 400).atLeast(0),
				num("fatigue_strength", "Fatigue strength (0 = half of yield)", "MPa", 0).atLeast(0),
				num("safety_factor", "Safety factor", "", 2).atLeast(1),
				num("stress_concentration", "Stress concentration factor", "", 1.5).atLeast(1),
			},
			run: decodeInto(machine.DefaultShaftInput(), machine.ShaftDesign),
		},
		{
			Module: mod, Name: "belt_design", Title: "Belt drive",
			Params: []Param{
				num("power", "Transmitted power", "kW", 5).atLeast(0),
				num("speed_driver", "Driver speed", "rpm", 1440).atLeast(0),
				num("speed_driven", "Driven speed", "rpm", 720).atLeast(0),
				num("center_distance", "Center distance", "m", 0.5).atLeast(0),
				pick("belt_type", "Belt", machine.BeltKinds(), "V"),
			},
			run: decodeInto(machine.BeltInput{}, machine.BeltDesign),
		},
		{
			Module: mod, Name: "bearing_life", Title: "Rolling bearing life (L10)",
			Params: []Param{
				num("load", "Equivalent radial load", "N", 3000).atLeast(0),
				num("speed", "Speed", "rpm", 1500).atLeast(0),
				num("dynamic_capacity", "Basic dynamic load rating C", "N", 30_000).atLeast(0),
				num("reliability", "Reliability (0.90, 0.95 or 0.99)", "", 0.90).between(0, 1),
				pick("application", "Bearing", machine.BearingKinds(), "ball"),
			},
			run: decodeInto(machine.DefaultBearingInput(), machine.BearingLife),
		},
		{
			Module: mod, Name: "spring_design", Title: "Helical compression spring",
			Params: []Param{
				num("load", "Maximum load", "N", 500).atLeast(0),
				num("deflection", "Deflection at load", "m", 0.02).atLeast(0),
				num("wire_diameter", "Wire diameter", "m", 0.005).atLeast(0),
				num("material_modulus", "Shear modulus G", "Pa", 79.3e9).atLeast(0),
				num("material_strength", "Ultimate tensile strength", "Pa", 1200e6).atLeast(0),
				num("safety_factor", "Safety factor", "", 1.5).atLeast(1),
				num("spring_index", "Spring index D/d", "", 6).between(4, 12),
			},
			run: decodeInto(machine.DefaultSpringInput(), machine.SpringDesign),
		},
		{
			Module: mod, Name: "power_screw", Title: "Power screw (Acme)",
			Params: []Param{
				num("axial_load", "Axial load", "N", 10_000).atLeast(0),
				num("mean_diameter", "Mean thread diameter", "m", 0.03).atLeast(0),
				num("pitch", "Pitch", "m", 0.006).atLeast(0),
				num("coefficient_friction", "Thread friction coefficient", "", 0.15).between(0, 1),
				num("collar_friction", "Collar friction coefficient", "", 0.12).between(0, 1),
				num("collar_mean_diameter", "Collar mean diameter (0 = 1.5 × mean)", "m", 0).atLeast(0),
			},
			run: decodeInto(machine.DefaultScrewInput(), machine.PowerScrew),
		},
	}
}
