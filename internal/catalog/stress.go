package catalog

import (
	"github.com/san-kum/mechsolver/internal/calc"
	"github.com/san-kum/mechsolver/internal/stress"
)

func stressFormulas() []Formula {
	const mod = "stress"
	return []Formula{
		{
			Module: mod, Name: "normal_stress", Title: "Normal stress",
			Params: []Param{
				num("force", "Axial force", "N", 10_000),
				num("area", "Cross-sectional area", "m²", 1e-4),
			},
			run: func(v Values) (*calc.Result, error) {
				return stress.NormalStress(v.Float("force"), v.Float("area"))
			},
		},
		{
			Module: mod, Name: "shear_stress", Title: "Shear stress",
			Params: []Param{
				num("force", "Shear force", "N", 5_000),
				num("area", "Shear area", "m²", 1e-4),
			},
			run: func(v Values) (*calc.Result, error) {
				return stress.ShearStress(v.Float("force"), v.Float("area"))
			},
		},
		{
			Module: mod, Name: "strain", Title: "Strain from stress",
			Params: []Param{
				num("stress", "Stress", "Pa", 100e6),
				num("elastic_modulus", "Elastic modulus", "Pa", 200e9),
			},
			run: func(v Values) (*calc.Result, error) {
				return stress.Strain(v.Float("stress"), v.Float("elastic_modulus"))
			},
		},
		{
			Module: mod, Name: "hooke", Title: "Hooke's law (axial bar)",
			Params: []Param{
				num("force", "Axial force", "N", 10_000),
				num("area", "Cross-sectional area", "m²", 1e-4),
				num("elastic_modulus", "Elastic modulus", "Pa", 200e9),
			},
			run: func(v Values) (*calc.Result, error) {
				return stress.Hooke(v.Float("force"), v.Float("area"), v.Float("elastic_modulus"))
			},
		},
		{
			Module: mod, Name: "strain_from_elongation", Title: "Strain from elongation",
			Params: []Param{
				num("elongation", "Elongation", "m", 0.001),
				num("original_length", "Original length", "m", 1),
			},
			run: func(v Values) (*calc.Result, error) {
				return stress.StrainFromElongation(v.Float("elongation"), v.Float("original_length"))
			},
		},
		{
			Module: mod, Name: "elastic_modulus", Title: "Elastic modulus from stress and strain",
			Params: []Param{
				num("stress", "Stress", "Pa", 200e6),
				num("strain", "Strain", "", 0.001),
			},
			run: func(v Values) (*calc.Result, error) {
				return stress.ElasticModulus(v.Float("stress"), v.Float("strain"))
			},
		},
		{
			Module: mod, Name: "bending_stress", Title: "Bending stress",
			Params: []Param{
				num("moment", "Bending moment", "N·m", 1_000),
				num("distance", "Distance from neutral axis", "m", 0.05),
				num("moment_of_inertia", "Second moment of area", "m⁴", 8.33e-6),
			},
			run: func(v Values) (*calc.Result, error) {
				return stress.BendingStress(v.Float("moment"), v.Float("distance"), v.Float("moment_of_inertia"))
			},
		},
		{
			Module: mod, Name: "torsion", Title: "Torsional shear stress",
			Params: []Param{
				num("torque", "Torque", "N·m", 500),
				num("radius", "Outer radius", "m", 0.025),
				num("polar_moment", "Polar moment of inertia", "m⁴", 6.14e-7),
			},
			run: func(v Values) (*calc.Result, error) {
				return stress.Torsion(v.Float("torque"), v.Float("radius"), v.Float("polar_moment"))
			},
		},
		{
			Module: mod, Name: "beam_deflection", Title: "Beam deflection",
			Params: []Param{
				pick("load_type", "Load case", stress.LoadPatterns(), "point_center"),
				num("load", "Load (total for uniform)", "N", 1_000),
				num("length", "Span", "m", 2).atLeast(0),
				num("elastic_modulus", "Elastic modulus", "Pa", 200e9),
				num("moment_of_inertia", "Second moment of area", "m⁴", 8.33e-6),
			},
			run: func(v Values) (*calc.Result, error) {
				pattern, err := stress.ParseLoadPattern(v.Choice("load_type"))
				if err != nil {
					return nil, err
				}
				return stress.BeamDeflection(pattern, v.Float("load"), v.Float("length"),
					v.Float("elastic_modulus"), v.Float("moment_of_inertia"))
			},
		},
		{
			Module: mod, Name: "combined_stress", Title: "Combined normal and shear stress",
			Params: []Param{
				num("normal_stress", "Normal stress", "Pa", 100e6),
				num("shear_stress", "Shear stress", "Pa", 50e6),
			},
			run: func(v Values) (*calc.Result, error) {
				return stress.CombinedStress(v.Float("normal_stress"), v.Float("shear_stress"))
			},
		},
		{
			Module: mod, Name: "plane_stress", Title: "Principal stresses (plane stress)",
			Params: []Param{
				num("sigma_x", "σx", "Pa", 80e6),
				num("sigma_y", "σy", "Pa", -40e6),
				num("tau_xy", "τxy", "Pa", 25e6),
			},
			run: func(v Values) (*calc.Result, error) {
				return stress.PlaneStress(v.Float("sigma_x"), v.Float("sigma_y"), v.Float("tau_xy"))
			},
		},
		{
			Module: mod, Name: "composite_lamina", Title: "Composite lamina off-axis properties",
			Params: []Param{
				num("e1", "Longitudinal modulus E1", "Pa", 140e9).atLeast(0),
				num("e2", "Transverse modulus E2", "Pa", 10e9).atLeast(0),
				num("nu12", "Major Poisson ratio ν12", "", 0.3).between(0, 0.5),
				num("g12", "In-plane shear modulus G12", "Pa", 5e9).atLeast(0),
				num("theta", "Fibre angle", "deg", 30).between(-90, 90),
			},
			run: func(v Values) (*calc.Result, error) {
				return stress.CompositeLamina(v.Float("e1"), v.Float("e2"), v.Float("nu12"), v.Float("g12"), v.Float("theta"))
			},
		},
		{
			Module: mod, Name: "fatigue", Title: "Fatigue life (modified Goodman)",
			Params: []Param{
				num("stress_max", "Maximum stress", "Pa", 300e6),
				num("stress_min", "Minimum stress", "Pa", -100e6),
				num("ultimate_strength", "Ultimate strength", "Pa", 600e6).atLeast(0),
				num("endurance_limit", "Endurance limit", "Pa", 250e6).atLeast(0),
				num("surface_factor", "Surface factor", "", 0.9).between(0, 1),
				num("size_factor", "Size factor", "", 0.95).between(0, 1),
				num("reliability_factor", "Reliability factor", "", 0.897).between(0, 1),
			},
			run: func(v Values) (*calc.Result, error) {
				in := stress.DefaultFatigueInput()
				if err := v.Decode(&in); err != nil {
					return nil, err
				}
				return stress.Fatigue(in)
			},
		},
		{
			Module: mod, Name: "pressure_vessel", Title: "Pressure vessel wall stress",
			Params: []Param{
				pick("vessel_type", "Vessel", stress.VesselKinds(), "thin_cylinder"),
				num("pressure", "Internal pressure", "Pa", 2e6),
				num("radius", "Inner radius", "m", 0.5),
				num("thickness", "Wall thickness", "m", 0.01),
			},
			run: func(v Values) (*calc.Result, error) {
				kind, err := stress.ParseVesselKind(v.Choice("vessel_type"))
				if err != nil {
					return nil, err
				}
				return stress.PressureVessel(kind, v.Float("pressure"), v.Float("radius"), v.Float("thickness"))
			},
		},
		{
			Module: mod, Name: "thermal_stress", Title: "Thermal stress in a restrained bar",
			Params: []Param{
				pick("constraint", "Restraint", stress.Constraints(), "full"),
				num("temperature_change", "Temperature change", "K", 50),
				num("expansion_coefficient", "Thermal expansion coefficient", "1/K", 12e-6),
				num("elastic_modulus", "Elastic modulus", "Pa", 200e9),
			},
			run: func(v Values) (*calc.Result, error) {
				c, err := stress.ParseConstraint(v.Choice("constraint"))
				if err != nil {
					return nil, err
				}
				return stress.ThermalStress(c, v.Float("temperature_change"), v.Float("expansion_coefficient"), v.Float("elastic_modulus"))
			},
		},
	}
}
