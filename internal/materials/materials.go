// Package materials holds a small read-only table of engineering alloys and
// the derivations that key off it.
package materials

import (
	_ "embed"
	"fmt"
	"sort"

	"github.com/san-kum/mechsolver/internal/calc"
	"gonum.org/v1/gonum/unit"
	"gopkg.in/yaml.v3"
)

//go:embed materials.yaml
var tableYAML []byte

// Material is one table row. Units follow the usual handbook
// conventions: GPa for modulus, MPa for strength.
type Material struct {
	Code                string  `yaml:"-" json:"code"`
	Name                string  `yaml:"name" json:"name"`
	Density             float64 `yaml:"density" json:"density"`
	ElasticModulus      float64 `yaml:"elastic_modulus" json:"elastic_modulus"`
	PoissonRatio        float64 `yaml:"poisson_ratio" json:"poisson_ratio"`
	YieldStrength       float64 `yaml:"yield_strength" json:"yield_strength"`
	UltimateStrength    float64 `yaml:"ultimate_strength" json:"ultimate_strength"`
	ThermalConductivity float64 `yaml:"thermal_conductivity" json:"thermal_conductivity"`
	ThermalExpansion    float64 `yaml:"thermal_expansion" json:"thermal_expansion"`
	CostPerKg           float64 `yaml:"cost_per_kg" json:"cost_per_kg"`
}

var table = mustLoad(tableYAML)

func mustLoad(data []byte) map[string]Material {
	t, err := parseTable(data)
	if err != nil {
		panic(fmt.Sprintf("materials: %v", err))
	}
	return t
}

func parseTable(data []byte) (map[string]Material, error) {
	var raw map[string]Material
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse table: %w", err)
	}
	for code, m := range raw {
		if m.Density <= 0 || m.ElasticModulus <= 0 {
			return nil, fmt.Errorf("%s: density and elastic modulus must be positive", code)
		}
		m.Code = code
		raw[code] = m
	}
	return raw, nil
}

// Codes lists table keys in sorted order.
func Codes() []string {
	codes := make([]string, 0, len(table))
	for c := range table {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	return codes
}

// Lookup is an exact, case-sensitive match on code.
func Lookup(code string) (Material, error) {
	m, ok := table[code]
	if !ok {
		return Material{}, &calc.LookupError{Table: "material", Key: code, Known: Codes()}
	}
	return m, nil
}

// All returns every row ordered by code.
func All() []Material {
	out := make([]Material, 0, len(table))
	for _, c := range Codes() {
		out = append(out, table[c])
	}
	return out
}

func Properties(code string) (*calc.Result, error) {
	m, err := Lookup(code)
	if err != nil {
		return nil, err
	}
	return calc.NewResult().
		SetLabel("name", m.Name).
		Set("density", m.Density).
		Set("elastic_modulus", m.ElasticModulus).
		Set("poisson_ratio", m.PoissonRatio).
		Set("yield_strength", m.YieldStrength).
		Set("ultimate_strength", m.UltimateStrength).
		Set("thermal_conductivity", m.ThermalConductivity).
		Set("thermal_expansion", m.ThermalExpansion).
		Set("cost_per_kg", m.CostPerKg), nil
}

// StressStrain loads a bar of the material axially. force in N, area in m².
func StressStrain(code string, force, area float64) (*calc.Result, error) {
	m, err := Lookup(code)
	if err != nil {
		return nil, err
	}
	if err := calc.Positive("stress strain", "area", area); err != nil {
		return nil, err
	}
	stress := force / area
	if err := calc.NonZero("stress strain", "stress", stress); err != nil {
		return nil, err
	}
	return calc.NewResult().
		Set("stress", stress).
		Set("strain", stress/(m.ElasticModulus*unit.Giga)).
		Set("safety_factor", m.YieldStrength*unit.Mega/stress), nil
}

func ThermalExpansion(code string, length, dT float64) (*calc.Result, error) {
	m, err := Lookup(code)
	if err != nil {
		return nil, err
	}
	if err := calc.Positive("thermal expansion", "initial length", length); err != nil {
		return nil, err
	}
	dl := length * m.ThermalExpansion * dT
	return calc.NewResult().
		Set("length_change", dl).
		Set("final_length", length+dl).
		Set("strain", dl/length), nil
}

func HeatConduction(code string, area, thickness, dT float64) (*calc.Result, error) {
	m, err := Lookup(code)
	if err != nil {
		return nil, err
	}
	if err := calc.Positive("heat conduction", "thickness", thickness); err != nil {
		return nil, err
	}
	if err := calc.Positive("heat conduction", "area", area); err != nil {
		return nil, err
	}
	k := m.ThermalConductivity
	return calc.NewResult().
		Set("heat_flux", k*area*dT/thickness).
		Set("thermal_resistance", thickness/(k*area)), nil
}

// CostEstimate prices raw stock. A zero processing factor is treated as 1.
func CostEstimate(code string, volume, processingFactor float64) (*calc.Result, error) {
	m, err := Lookup(code)
	if err != nil {
		return nil, err
	}
	if err := calc.NonNegative("cost estimate", "volume", volume); err != nil {
		return nil, err
	}
	if processingFactor == 0 {
		processingFactor = 1
	}
	mass := m.Density * volume
	base := mass * m.CostPerKg
	return calc.NewResult().
		Set("mass", mass).
		Set("material_cost", base).
		Set("total_cost", base*processingFactor), nil
}
