package config

import "sort"

type Preset struct {
	Description string
	Args        map[string]any
}

// Presets are worked examples, keyed by formula id then preset name.
var Presets = map[string]map[string]*Preset{
	"kinematics/projectile": {
		"cannon": {
			Description: "Field gun, flat ground",
			Args:        map[string]any{"velocity": 100.0, "angle": 30.0},
		},
		"cliff": {
			Description: "Stone thrown level off a 50 m cliff",
			Args:        map[string]any{"velocity": 15.0, "angle": 0.0, "height": 50.0},
		},
		"moon": {
			Description: "Golf shot under lunar gravity",
			Args:        map[string]any{"velocity": 40.0, "angle": 35.0, "gravity": 1.62},
		},
	},
	"kinematics/projectile_drag": {
		"baseball": {
			Description: "Fly ball with quadratic drag",
			Args:        map[string]any{"velocity": 45.0, "angle": 35.0, "height": 1.0, "drag_coefficient": 0.005},
		},
	},
	"kinematics/four_bar_sweep": {
		"crank_rocker": {
			Description: "Grashof crank-rocker",
			Args:        map[string]any{"crank": 1.0, "coupler": 3.0, "rocker": 2.0, "ground": 2.0},
		},
	},
	"kinematics/gear_train": {
		"two_stage": {
			Description: "Two-stage reducer, 16:1",
			Args:        map[string]any{"teeth": []any{20, 80, 20, 80}, "input_speed": 1450.0},
		},
	},
	"stress/beam_deflection": {
		"floor_joist": {
			Description: "Timber joist, uniform floor load",
			Args: map[string]any{
				"load_type": "uniform", "load": 4000.0, "length": 4.0,
				"elastic_modulus": 11e9, "moment_of_inertia": 1.1e-4,
			},
		},
		"shelf": {
			Description: "Steel cantilever bracket, end load",
			Args: map[string]any{
				"load_type": "point_end", "load": 200.0, "length": 0.3,
				"elastic_modulus": 200e9, "moment_of_inertia": 2e-8,
			},
		},
	},
	"stress/pressure_vessel": {
		"air_receiver": {
			Description: "Compressed air tank, 10 bar",
			Args:        map[string]any{"vessel_type": "thin_cylinder", "pressure": 1e6, "radius": 0.3, "thickness": 0.006},
		},
	},
	"fluids/head_loss": {
		"garden_hose": {
			Description: "20 m hose with a nozzle",
			Args: map[string]any{
				"length": 20.0, "diameter": 0.016, "velocity": 1.5,
				"friction_factor": 0.03, "minor_losses": []any{0.5, 2.0},
			},
		},
	},
	"fluids/pump_power": {
		"irrigation": {
			Description: "Irrigation lift pump",
			Args:        map[string]any{"flow_rate": 0.02, "head": 35.0, "efficiency": 0.7},
		},
	},
	"thermo/heat_exchanger": {
		"oil_cooler": {
			Description: "Oil cooled by water",
			Args: map[string]any{
				"hot_inlet_temp": 90.0, "hot_outlet_temp": 60.0, "cold_inlet_temp": 20.0,
				"mass_flow_hot": 1.5, "mass_flow_cold": 2.0,
				"cp_hot": 2000.0, "cp_cold": 4180.0, "overall_htc": 300.0,
			},
		},
	},
	"thermo/refrigeration": {
		"freezer": {
			Description: "Domestic freezer",
			Args:        map[string]any{"evaporator_temp": -25.0, "condenser_temp": 45.0, "mass_flow": 0.005},
		},
	},
	"machine/gear_design": {
		"conveyor": {
			Description: "Conveyor reducer pinion",
			Args:        map[string]any{"power": 7.5, "speed": 1450.0, "gear_ratio": 4.0},
		},
	},
	"machine/shaft_design": {
		"line_shaft": {
			Description: "Line shaft with a pulley overhang",
			Args:        map[string]any{"torque": 300.0, "bending_moment": 450.0, "yield_strength": 350.0},
		},
	},
	"machine/bearing_life": {
		"pump_roller": {
			Description: "Roller bearing in a centrifugal pump",
			Args: map[string]any{
				"load": 5000.0, "speed": 2900.0, "dynamic_capacity": 60000.0,
				"reliability": 0.95, "application": "roller",
			},
		},
	},
	"machine/power_screw": {
		"jack": {
			Description: "Screw jack, 2 t",
			Args:        map[string]any{"axial_load": 20000.0, "mean_diameter": 0.036, "pitch": 0.006},
		},
	},
}

func GetPreset(formula, preset string) *Preset {
	formulaPresets, ok := Presets[formula]
	if !ok {
		return nil
	}
	p, ok := formulaPresets[preset]
	if !ok {
		return nil
	}
	return p
}

func ListPresets(formula string) []string {
	formulaPresets, ok := Presets[formula]
	if !ok {
		return nil
	}
	names := make(map[string]bool, len(formulaPresets))
	for name := range formulaPresets {
		names[name] = true
	}
	return sortedKeys(names)
}

// Formulas lists formula ids that have built-in presets.
func Formulas() []string {
	ids := make(map[string]bool, len(Presets))
	for id := range Presets {
		ids[id] = true
	}
	return sortedKeys(ids)
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
