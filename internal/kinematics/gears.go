package kinematics

import (
	"math"

	"github.com/san-kum/mechsolver/internal/calc"
)

// GearTrain treats teeth as successive driver/driven pairs (0,1), (2,3), ...
// An unpaired trailing gear does not change the ratio. Speeds are rpm.
func GearTrain(teeth []int, inputSpeed, efficiency float64) (*calc.Result, error) {
	const op = "gear train"
	if len(teeth) < 2 {
		return nil, calc.Domainf(op, "need at least 2 gears, got %d", len(teeth))
	}
	for i, z := range teeth {
		if z <= 0 {
			return nil, calc.Domainf(op, "gear %d has %d teeth", i+1, z)
		}
	}

	ratio := 1.0
	for i := 0; i+1 < len(teeth); i += 2 {
		ratio *= float64(teeth[i+1]) / float64(teeth[i])
	}

	pitch := make([]float64, len(teeth))
	for i, z := range teeth {
		pitch[i] = float64(z) * inputSpeed * math.Pi / 60
	}

	eff := math.Pow(efficiency, float64(len(teeth)-1))
	return calc.NewResult().
		Set("gear_ratio", ratio).
		Set("output_speed", inputSpeed/ratio).
		SetSeries("pitch_velocities", pitch).
		Set("output_power", eff).
		Set("efficiency", eff), nil
}
