package thermo

import (
	"math"

	"github.com/san-kum/mechsolver/internal/calc"
)

// The correlations in this file are coarse engineering approximations and
// are not a substitute for property tables.

const (
	waterCp       = 4.186 // kJ/(kg·K)
	waterLatent   = 2257  // kJ/kg at 1 atm
	waterGasConst = 461.5 // J/(kg·K); vapour volume is ideal gas with water's specific R, not the molar 8.314
	liquidVolume  = 0.001 // m³/kg
)

const (
	StateCompressed  = "compressed liquid"
	StateSaturated   = "saturated"
	StateSuperheated = "superheated vapor"
)

// SteamProperties estimates water/steam properties at tempC (°C) and
// pressureBar (bar). Saturation temperature follows 100·(p/1.013)^0.25.
func SteamProperties(tempC, pressureBar float64) (*calc.Result, error) {
	const op = "steam properties"
	if err := calc.Positive(op, "pressure", pressureBar); err != nil {
		return nil, err
	}
	tk := tempC + 273.15
	if err := calc.Positive(op, "absolute temperature", tk); err != nil {
		return nil, err
	}

	tSat := 100 * math.Pow(pressureBar/1.013, 0.25)

	var (
		state    string
		quality  float64
		enthalpy float64
		volume   float64
	)
	switch {
	case tempC < tSat:
		state, quality = StateCompressed, 0
		enthalpy = waterCp * tempC
		volume = liquidVolume
	case tempC > tSat:
		state, quality = StateSuperheated, 1
		enthalpy = waterLatent + waterCp*tempC
		volume = waterGasConst * tk / (pressureBar * 1e5)
	default:
		state, quality = StateSaturated, 0.5
		enthalpy = quality*waterLatent + waterCp*tempC
		volume = quality*waterGasConst*tk/(pressureBar*1e5) + (1-quality)*liquidVolume
	}

	return calc.NewResult().
		SetLabel("state", state).
		Set("quality", quality).
		Set("enthalpy", enthalpy).
		Set("specific_volume", volume).
		Set("saturation_temperature", tSat).
		Set("entropy", waterCp*math.Log(tk/273.15)), nil
}

// buckSaturation is the Buck saturation vapour pressure over water, kPa.
func buckSaturation(tc float64) float64 {
	return 0.61121 * math.Exp((18.678-tc/234.5)*(tc/(257.14+tc)))
}

const (
	airGasConst = 287.058
	vaporRatio  = 0.62198
)

// Psychrometrics derives moist-air state from dry and wet bulb (°C) at
// pressureKPa. A zero pressure selects standard atmosphere.
func Psychrometrics(dryBulb, wetBulb, pressureKPa float64) (*calc.Result, error) {
	const op = "psychrometrics"
	if pressureKPa == 0 {
		pressureKPa = 101.325
	}
	if wetBulb > dryBulb {
		return nil, calc.Domainf(op, "wet bulb %g °C above dry bulb %g °C", wetBulb, dryBulb)
	}
	pws := buckSaturation(wetBulb)
	pvs := buckSaturation(dryBulb)
	if pressureKPa <= pws {
		return nil, calc.Domainf(op, "pressure %g kPa is below saturation pressure %g kPa", pressureKPa, pws)
	}

	ws := vaporRatio * pws / (pressureKPa - pws)
	w := ((2501-2.326*wetBulb)*ws - 1.006*(dryBulb-wetBulb)) /
		(2501 + 1.86*dryBulb - 4.186*wetBulb)
	if w <= 0 {
		return nil, calc.Domainf(op, "air is drier than the correlation covers (W = %g)", w)
	}

	alpha := math.Log(w * pressureKPa / (vaporRatio * 0.61121))

	return calc.NewResult().
		Set("humidity_ratio", w).
		Set("relative_humidity", w*pressureKPa/(vaporRatio*pvs)*100).
		Set("specific_volume", airGasConst*(dryBulb+273.15)*(1+1.6078*w)/(pressureKPa*1000)).
		Set("enthalpy", 1.006*dryBulb+w*(2501+1.86*dryBulb)).
		Set("dew_point", 243.5*alpha/(17.67-alpha)).
		Set("wet_bulb", wetBulb).
		Set("dry_bulb", dryBulb), nil
}

type Refrigerant int

const (
	R134a Refrigerant = iota
)

var refrigerantNames = []string{"R134a"}

func (r Refrigerant) String() string { return calc.VariantName(r, refrigerantNames) }

func ParseRefrigerant(s string) (Refrigerant, error) {
	return calc.ParseVariant[Refrigerant]("refrigerant", s, refrigerantNames)
}

func Refrigerants() []string { return append([]string(nil), refrigerantNames...) }

type refrigerantProps struct {
	latent float64 // kJ/kg
	cp     float64 // kJ/(kg·K)
}

var refrigerantTable = [...]refrigerantProps{
	R134a: {latent: 200, cp: 1.43},
}

// RefrigerationCycle models an ideal vapour-compression loop with
// isenthalpic expansion. Temperatures in °C, mass flow in kg/s.
func RefrigerationCycle(ref Refrigerant, tEvap, tCond, massFlow float64) (*calc.Result, error) {
	const op = "refrigeration cycle"
	if err := calc.CheckVariant("refrigerant", ref, refrigerantNames); err != nil {
		return nil, err
	}
	if tCond <= tEvap {
		return nil, calc.Domainf(op, "condenser %g °C must be warmer than evaporator %g °C", tCond, tEvap)
	}
	if err := calc.Positive(op, "mass flow", massFlow); err != nil {
		return nil, err
	}
	p := refrigerantTable[ref]

	h1 := p.cp*tEvap + p.latent
	h2 := h1 + p.cp*(tCond-tEvap)
	h4 := p.cp * tCond

	work := massFlow * (h2 - h1)
	cooling := massFlow * (h1 - h4)

	return calc.NewResult().
		Set("compressor_work", work).
		Set("cooling_effect", cooling).
		Set("heat_rejected", massFlow*(h2-h4)).
		Set("cop", cooling/work).
		Set("mass_flow_rate", massFlow), nil
}
