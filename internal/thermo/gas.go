package thermo

import (
	"github.com/san-kum/mechsolver/internal/calc"
)

// GasConstant is the universal gas constant in J/(mol·K).
const GasConstant = 8.314

// GasState holds PV = nRT quantities. Exactly three must be Set.
type GasState struct {
	Pressure    calc.Known
	Volume      calc.Known
	Moles       calc.Known
	Temperature calc.Known
}

func (s GasState) supplied() []string {
	var names []string
	if s.Pressure.Set {
		names = append(names, "pressure")
	}
	if s.Volume.Set {
		names = append(names, "volume")
	}
	if s.Moles.Set {
		names = append(names, "moles")
	}
	if s.Temperature.Set {
		names = append(names, "temperature")
	}
	return names
}

// IdealGas solves the missing quantity of PV = nRT. A zero r selects GasConstant.
func IdealGas(s GasState, r float64) (*calc.Result, error) {
	const op = "ideal gas"
	if r == 0 {
		r = GasConstant
	}
	if err := calc.Positive(op, "gas constant", r); err != nil {
		return nil, err
	}
	if calc.CountKnown(s.Pressure, s.Volume, s.Moles, s.Temperature) != 3 {
		return nil, &calc.CombinationError{
			Op:       op,
			Supplied: s.supplied(),
			Reason:   "exactly three of pressure, volume, moles, temperature are required",
		}
	}

	p, v, n, t := s.Pressure.Value, s.Volume.Value, s.Moles.Value, s.Temperature.Value
	res := calc.NewResult()
	switch {
	case !s.Pressure.Set:
		if err := calc.NonZero(op, "volume", v); err != nil {
			return nil, err
		}
		res.Set("pressure", n*r*t/v)
	case !s.Volume.Set:
		if err := calc.NonZero(op, "pressure", p); err != nil {
			return nil, err
		}
		res.Set("volume", n*r*t/p)
	case !s.Moles.Set:
		if err := calc.NonZero(op, "temperature", t); err != nil {
			return nil, err
		}
		res.Set("moles", p*v/(r*t))
	default:
		if err := calc.NonZero(op, "moles", n); err != nil {
			return nil, err
		}
		res.Set("temperature", p*v/(n*r))
	}
	return res, nil
}

// Carnot is the reversible-engine limit 1 - Tc/Th, temperatures in kelvin.
func Carnot(tHot, tCold float64) (*calc.Result, error) {
	if err := calc.Positive("carnot", "hot temperature", tHot); err != nil {
		return nil, err
	}
	if tHot <= tCold {
		return nil, calc.Domainf("carnot", "hot temperature %g K must exceed cold temperature %g K", tHot, tCold)
	}
	eff := 1 - tCold/tHot
	return calc.NewResult().
		Set("efficiency", eff).
		Set("efficiency_percent", eff*100), nil
}
