package catalog

import (
	"github.com/san-kum/mechsolver/internal/calc"
	"github.com/san-kum/mechsolver/internal/thermo"
)

func thermoFormulas() []Formula {
	const mod = "thermo"
	return []Formula{
		{
			Module: mod, Name: "ideal_gas", Title: "Ideal gas law (PV = nRT)",
			Params: []Param{
				opt("pressure", "Pressure", "Pa"),
				opt("volume", "Volume", "m³"),
				opt("moles", "Amount of substance", "mol"),
				opt("temperature", "Temperature", "K"),
				num("gas_constant", "Gas constant", "J/(mol·K)", thermo.GasConstant).atLeast(0),
			},
			run: func(v Values) (*calc.Result, error) {
				return thermo.IdealGas(thermo.GasState{
					Pressure:    v.Known("pressure"),
					Volume:      v.Known("volume"),
					Moles:       v.Known("moles"),
					Temperature: v.Known("temperature"),
				}, v.Float("gas_constant"))
			},
		},
		{
			Module: mod, Name: "carnot", Title: "Carnot efficiency",
			Params: []Param{
				num("t_hot", "Hot reservoir temperature", "K", 600).atLeast(0),
				num("t_cold", "Cold reservoir temperature", "K", 300).atLeast(0),
			},
			run: func(v Values) (*calc.Result, error) {
				return thermo.Carnot(v.Float("t_hot"), v.Float("t_cold"))
			},
		},
		{
			Module: mod, Name: "heat_transfer", Title: "Heat transfer rate",
			Params: []Param{
				pick("mode", "Mode", thermo.HeatModes(), "conduction"),
				num("area", "Area", "m²", 1).atLeast(0),
				num("coefficient", "k (conduction), h (convection) or emissivity (radiation)", "", 50).atLeast(0),
				num("temperature_difference", "Temperature difference", "K", 20),
				num("thickness", "Thickness (conduction only)", "m", 0.1).atLeast(0),
			},
			run: func(v Values) (*calc.Result, error) {
				mode, err := thermo.ParseHeatMode(v.Choice("mode"))
				if err != nil {
					return nil, err
				}
				return thermo.HeatTransfer(mode, v.Float("area"), v.Float("coefficient"),
					v.Float("temperature_difference"), v.Float("thickness"))
			},
		},
		{
			Module: mod, Name: "steam", Title: "Steam properties (approximate)",
			Params: []Param{
				num("temperature", "Temperature", "°C", 200),
				num("pressure", "Pressure", "bar", 5).atLeast(0),
			},
			run: func(v Values) (*calc.Result, error) {
				return thermo.SteamProperties(v.Float("temperature"), v.Float("pressure"))
			},
		},
		{
			Module: mod, Name: "psychrometrics", Title: "Moist air properties",
			Params: []Param{
				num("dry_bulb", "Dry bulb temperature", "°C", 25),
				num("wet_bulb", "Wet bulb temperature", "°C", 20),
				num("pressure", "Atmospheric pressure", "kPa", 101.325).atLeast(0),
			},
			run: func(v Values) (*calc.Result, error) {
				return thermo.Psychrometrics(v.Float("dry_bulb"), v.Float("wet_bulb"), v.Float("pressure"))
			},
		},
		{
			Module: mod, Name: "refrigeration", Title: "Vapour-compression refrigeration cycle",
			Params: []Param{
				pick("refrigerant", "Refrigerant", thermo.Refrigerants(), "R134a"),
				num("evaporator_temp", "Evaporator temperature", "°C", -10),
				num("condenser_temp", "Condenser temperature", "°C", 40),
				num("mass_flow", "Refrigerant mass flow", "kg/s", 0.1).atLeast(0),
			},
			run: func(v Values) (*calc.Result, error) {
				ref, err := thermo.ParseRefrigerant(v.Choice("refrigerant"))
				if err != nil {
					return nil, err
				}
				return thermo.RefrigerationCycle(ref, v.Float("evaporator_temp"), v.Float("condenser_temp"), v.Float("mass_flow"))
			},
		},
		{
			Module: mod, Name: "heat_exchanger", Title: "Counter-flow heat exchanger (LMTD)",
			Params: []Param{
				num("hot_inlet_temp", "Hot inlet", "°C", 150),
				num("hot_outlet_temp", "Hot outlet", "°C", 90),
				num("cold_inlet_temp", "Cold inlet", "°C", 30),
				num("mass_flow_hot", "Hot mass flow", "kg/s", 2).atLeast(0),
				num("mass_flow_cold", "Cold mass flow", "kg/s", 3).atLeast(0),
				num("cp_hot", "Hot specific heat", "J/(kg·K)", 4180).atLeast(0),
				num("cp_cold", "Cold specific heat", "J/(kg·K)", 4180).atLeast(0),
				num("overall_htc", "Overall heat transfer coefficient", "W/(m²·K)", 500).atLeast(0),
			},
			run: func(v Values) (*calc.Result, error) {
				var in thermo.HeatExchangerInput
				if err := v.Decode(&in); err != nil {
					return nil, err
				}
				return thermo.HeatExchanger(in)
			},
		},
	}
}
