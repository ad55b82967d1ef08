package stress

import (
	"math"

	"github.com/san-kum/mechsolver/internal/calc"
)

// CombinedStress is Mohr's circle for one normal and one shear stress.
func CombinedStress(normal, shear float64) (*calc.Result, error) {
	center := normal / 2
	radius := math.Sqrt(center*center + shear*shear)
	return calc.NewResult().
		Set("principal_stress_1", center+radius).
		Set("principal_stress_2", center-radius).
		Set("max_shear_stress", radius).
		Set("angle_principal", math.Atan2(2*shear, normal)*180/math.Pi/2), nil
}

// PlaneStress handles the general 2D state and adds the von Mises equivalent.
func PlaneStress(sx, sy, txy float64) (*calc.Result, error) {
	avg := (sx + sy) / 2
	diff := (sx - sy) / 2
	r := math.Sqrt(diff*diff + txy*txy)
	return calc.NewResult().
		Set("sigma_1", avg+r).
		Set("sigma_2", avg-r).
		Set("theta", math.Atan2(txy, diff)*180/math.Pi/2).
		Set("max_shear_stress", r).
		Set("von_mises_stress", VonMises(sx, sy, txy)), nil
}

func VonMises(sx, sy, txy float64) float64 {
	return math.Sqrt(sx*sx - sx*sy + sy*sy + 3*txy*txy)
}

// CompositeLamina rotates orthotropic ply constants E1, E2, ν12, G12 by
// thetaDeg into the x-y frame using the standard compliance transforms.
func CompositeLamina(e1, e2, nu12, g12, thetaDeg float64) (*calc.Result, error) {
	const op = "composite lamina"
	for _, f := range []struct {
		name string
		v    float64
	}{{"E1", e1}, {"E2", e2}, {"G12", g12}} {
		if err := calc.Positive(op, f.name, f.v); err != nil {
			return nil, err
		}
	}

	th := thetaDeg * math.Pi / 180
	c, s := math.Cos(th), math.Sin(th)
	c2, s2 := c*c, s*s
	c4, s4 := c2*c2, s2*s2
	coupling := 1/g12 - 2*nu12/e1

	ex := 1 / (c4/e1 + coupling*s2*c2 + s4/e2)
	ey := 1 / (s4/e1 + coupling*s2*c2 + c4/e2)
	gxy := 1 / ((4/e1+4/e2+8*nu12/e1-2/g12)*s2*c2 + (s4+c4)/g12)
	nuxy := ex * (nu12/e1*(s4+c4) - (1/e1+1/e2-1/g12)*s2*c2)

	res := calc.NewResult().
		Set("Ex", ex).
		Set("Ey", ey).
		Set("Gxy", gxy).
		Set("nuxy", nuxy).
		Set("angle", thetaDeg)
	if err := calc.Finite(op, res); err != nil {
		return nil, err
	}
	return res, nil
}
