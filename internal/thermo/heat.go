package thermo

import (
	"math"

	"github.com/san-kum/mechsolver/internal/calc"
)

const StefanBoltzmann = 5.67e-8

type HeatMode int

const (
	Conduction HeatMode = iota
	Convection
	Radiation
)

var heatModeNames = []string{"conduction", "convection", "radiation"}

func (m HeatMode) String() string { return calc.VariantName(m, heatModeNames) }

func ParseHeatMode(s string) (HeatMode, error) {
	return calc.ParseVariant[HeatMode]("heat transfer mode", s, heatModeNames)
}

func HeatModes() []string { return append([]string(nil), heatModeNames...) }

// HeatTransfer reads coeff as conductivity k, film coefficient h or
// emissivity ε depending on mode. thickness only matters for conduction.
func HeatTransfer(mode HeatMode, area, coeff, dT, thickness float64) (*calc.Result, error) {
	const op = "heat transfer"
	switch mode {
	case Conduction:
		if err := calc.Positive(op, "thickness", thickness); err != nil {
			return nil, err
		}
		if err := calc.Positive(op, "k·A", coeff*area); err != nil {
			return nil, err
		}
		return calc.NewResult().
			Set("heat_transfer_rate", coeff*area*dT/thickness).
			Set("thermal_resistance", thickness/(coeff*area)), nil

	case Convection:
		if err := calc.Positive(op, "h·A", coeff*area); err != nil {
			return nil, err
		}
		return calc.NewResult().
			Set("heat_transfer_rate", coeff*area*dT).
			Set("thermal_resistance", 1/(coeff*area)), nil

	case Radiation:
		return calc.NewResult().
			Set("heat_transfer_rate", StefanBoltzmann*area*coeff*math.Pow(dT, 4)), nil
	}
	return nil, calc.CheckVariant("heat transfer mode", mode, heatModeNames)
}

// HeatExchangerInput describes a counter-flow exchanger with both hot
// temperatures known. Temperatures in °C, cp in J/(kg·K), U in W/(m²·K).
type HeatExchangerInput struct {
	HotInlet     float64 `mapstructure:"hot_inlet_temp"`
	HotOutlet    float64 `mapstructure:"hot_outlet_temp"`
	ColdInlet    float64 `mapstructure:"cold_inlet_temp"`
	MassFlowHot  float64 `mapstructure:"mass_flow_hot"`
	MassFlowCold float64 `mapstructure:"mass_flow_cold"`
	CpHot        float64 `mapstructure:"cp_hot"`
	CpCold       float64 `mapstructure:"cp_cold"`
	OverallCoeff float64 `mapstructure:"overall_htc"`
}

// LMTD is the log-mean temperature difference. Equal end differences
// return that difference.
func LMTD(dt1, dt2 float64) (float64, error) {
	if dt1 <= 0 || dt2 <= 0 {
		return 0, calc.Domainf("lmtd", "terminal differences must be positive, got %g and %g", dt1, dt2)
	}
	if math.Abs(dt1-dt2) <= 1e-12*math.Max(dt1, dt2) {
		return dt1, nil
	}
	return (dt1 - dt2) / math.Log(dt1/dt2), nil
}

func HeatExchanger(in HeatExchangerInput) (*calc.Result, error) {
	const op = "heat exchanger"
	cHot := in.MassFlowHot * in.CpHot
	cCold := in.MassFlowCold * in.CpCold
	if err := calc.Positive(op, "hot capacity rate", cHot); err != nil {
		return nil, err
	}
	if err := calc.Positive(op, "cold capacity rate", cCold); err != nil {
		return nil, err
	}
	if err := calc.Positive(op, "overall heat transfer coefficient", in.OverallCoeff); err != nil {
		return nil, err
	}
	if in.HotInlet <= in.ColdInlet {
		return nil, calc.Domainf(op, "hot inlet %g must exceed cold inlet %g", in.HotInlet, in.ColdInlet)
	}

	q := cHot * (in.HotInlet - in.HotOutlet)
	coldOut := in.ColdInlet + q/cCold

	lmtd, err := LMTD(in.HotInlet-coldOut, in.HotOutlet-in.ColdInlet)
	if err != nil {
		return nil, err
	}
	area := q / (in.OverallCoeff * lmtd)
	cMin := math.Min(cHot, cCold)

	return calc.NewResult().
		Set("heat_transfer_rate", q).
		Set("cold_outlet_temp", coldOut).
		Set("lmtd", lmtd).
		Set("required_area", area).
		Set("effectiveness", q/(cMin*(in.HotInlet-in.ColdInlet))).
		Set("ntu", in.OverallCoeff*area/cMin), nil
}
