package catalog

import (
	"github.com/san-kum/mechsolver/internal/calc"
	"github.com/san-kum/mechsolver/internal/materials"
)

func materialParam() Param {
	codes := materials.Codes()
	return pick("material", "Material", codes, codes[len(codes)-1])
}

func materialsFormulas() []Formula {
	const mod = "materials"
	return []Formula{
		{
			Module: mod, Name: "properties", Title: "Material properties",
			Params: []Param{materialParam()},
			run: func(v Values) (*calc.Result, error) {
				return materials.Properties(v.Choice("material"))
			},
		},
		{
			Module: mod, Name: "stress_strain", Title: "Stress and strain for a material",
			Params: []Param{
				materialParam(),
				num("force", "Axial force", "N", 10_000),
				num("area", "Cross-sectional area", "m²", 1e-4).atLeast(0),
			},
			run: func(v Values) (*calc.Result, error) {
				return materials.StressStrain(v.Choice("material"), v.Float("force"), v.Float("area"))
			},
		},
		{
			Module: mod, Name: "thermal_expansion", Title: "Thermal expansion",
			Params: []Param{
				materialParam(),
				num("initial_length", "Initial length", "m", 1).atLeast(0),
				num("temperature_change", "Temperature change", "K", 100),
			},
			run: func(v Values) (*calc.Result, error) {
				return materials.ThermalExpansion(v.Choice("material"), v.Float("initial_length"), v.Float("temperature_change"))
			},
		},
		{
			Module: mod, Name: "heat_conduction", Title: "Heat conduction through a plate",
			Params: []Param{
				materialParam(),
				num("area", "Area", "m²", 1).atLeast(0),
				num("thickness", "Thickness", "m", 0.01).atLeast(0),
				num("temperature_difference", "Temperature difference", "K", 20),
			},
			run: func(v Values) (*calc.Result, error) {
				return materials.HeatConduction(v.Choice("material"), v.Float("area"), v.Float("thickness"), v.Float("temperature_difference"))
			},
		},
		{
			Module: mod, Name: "cost_estimate", Title: "Raw material cost",
			Params: []Param{
				materialParam(),
				num("volume", "Volume", "m³", 0.001).atLeast(0),
				num("processing_factor", "Processing factor", "", 1).atLeast(0),
			},
			run: func(v Values) (*calc.Result, error) {
				return materials.CostEstimate(v.Choice("material"), v.Float("volume"), v.Float("processing_factor"))
			},
		},
	}
}
