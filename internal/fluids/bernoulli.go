package fluids

import (
	"math"

	"github.com/san-kum/mechsolver/internal/calc"
)

// Point is a fully known station on a streamline.
type Point struct {
	Height   float64 `mapstructure:"height1"`
	Velocity float64 `mapstructure:"velocity1"`
	Pressure float64 `mapstructure:"pressure1"`
}

func (p Point) head(density float64) float64 {
	return p.Pressure/(density*Gravity) + p.Height + p.Velocity*p.Velocity/(2*Gravity)
}

// BernoulliVelocity solves v₂ from p + ρgh + ½ρv² = const with p₂ known.
func BernoulliVelocity(p1 Point, height2, pressure2, density float64) (*calc.Result, error) {
	const op = "bernoulli"
	if err := calc.Positive(op, "density", density); err != nil {
		return nil, err
	}
	surplus := p1.head(density) - (pressure2/(density*Gravity) + height2)
	if surplus < 0 {
		return nil, calc.Domainf(op, "station 2 needs %.4g m more head than station 1 supplies", -surplus)
	}
	return calc.NewResult().
		Set("velocity2", math.Sqrt(2*Gravity*surplus)).
		Set("pressure2", pressure2).
		Set("height2", height2), nil
}

// BernoulliPressure solves p₂ with v₂ known.
func BernoulliPressure(p1 Point, height2, velocity2, density float64) (*calc.Result, error) {
	if err := calc.Positive("bernoulli", "density", density); err != nil {
		return nil, err
	}
	p2 := density * Gravity * (p1.head(density) - height2 - velocity2*velocity2/(2*Gravity))
	return calc.NewResult().
		Set("velocity2", velocity2).
		Set("pressure2", p2).
		Set("height2", height2), nil
}
