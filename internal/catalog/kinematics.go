package catalog

import (
	"github.com/san-kum/mechsolver/internal/calc"
	"github.com/san-kum/mechsolver/internal/kinematics"
	"gonum.org/v1/gonum/floats"
)

func fourBarLinks(v Values) kinematics.FourBarLinks {
	return kinematics.FourBarLinks{
		Crank:   v.Float("crank"),
		Coupler: v.Float("coupler"),
		Rocker:  v.Float("rocker"),
		Ground:  v.Float("ground"),
	}
}

var fourBarParams = []Param{
	num("crank", "Crank length", "m", 1).atLeast(0),
	num("coupler", "Coupler length", "m", 3).atLeast(0),
	num("rocker", "Rocker length", "m", 2).atLeast(0),
	num("ground", "Ground link length", "m", 2).atLeast(0),
}

func projectileInput(v Values) kinematics.ProjectileInput {
	return kinematics.ProjectileInput{
		Velocity: v.Float("velocity"),
		AngleDeg: v.Float("angle"),
		Height:   v.Float("height"),
		Gravity:  v.Float("gravity"),
	}
}

var projectileParams = []Param{
	num("velocity", "Initial velocity", "m/s", 20).atLeast(0),
	num("angle", "Launch angle", "deg", 45).between(0, 90),
	num("height", "Launch height", "m", 0).atLeast(0),
	num("gravity", "Gravitational acceleration", "m/s²", kinematics.StandardGravity).atLeast(0),
}

func kinematicsFormulas() []Formula {
	const mod = "kinematics"
	return []Formula{
		{
			Module: mod, Name: "motion", Title: "Linear motion (SUVAT)",
			Params: []Param{
				opt("velocity", "Initial velocity", "m/s"),
				opt("acceleration", "Acceleration", "m/s²"),
				opt("time", "Time", "s"),
				opt("displacement", "Displacement", "m"),
			},
			run: func(v Values) (*calc.Result, error) {
				return kinematics.SolveMotion(kinematics.MotionKnowns{
					Velocity:     v.Known("velocity"),
					Acceleration: v.Known("acceleration"),
					Time:         v.Known("time"),
					Displacement: v.Known("displacement"),
				})
			},
		},
		{
			Module: mod, Name: "angular_motion", Title: "Angular motion",
			Params: []Param{
				num("initial_angular_velocity", "Initial angular velocity", "rad/s", 0),
				num("angular_acceleration", "Angular acceleration", "rad/s²", 1),
				opt("time", "Time", "s"),
				opt("angular_displacement", "Angular displacement", "rad"),
			},
			run: func(v Values) (*calc.Result, error) {
				t, theta := v.Known("time"), v.Known("angular_displacement")
				w0, alpha := v.Float("initial_angular_velocity"), v.Float("angular_acceleration")
				switch {
				case t.Set && !theta.Set:
					return kinematics.AngularMotionByTime(w0, alpha, t.Value)
				case theta.Set && !t.Set:
					return kinematics.AngularMotionByDisplacement(w0, alpha, theta.Value)
				}
				supplied := []string{"initial_angular_velocity", "angular_acceleration"}
				if t.Set {
					supplied = append(supplied, "time", "angular_displacement")
				}
				return nil, &calc.CombinationError{
					Op:       "angular motion",
					Supplied: supplied,
					Reason:   "supply exactly one of time or angular displacement",
				}
			},
		},
		{
			Module: mod, Name: "projectile", Title: "Projectile motion",
			Params: projectileParams,
			PlotX:  "trajectory_x", PlotY: "trajectory_y",
			run: func(v Values) (*calc.Result, error) {
				return kinematics.Projectile(projectileInput(v))
			},
		},
		{
			Module: mod, Name: "projectile_drag", Title: "Projectile with air resistance",
			Params: append(append([]Param(nil), projectileParams...),
				num("drag_coefficient", "Drag coefficient (per unit mass)", "1/m", kinematics.DefaultDrag).atLeast(0),
				pick("stepper", "Integration scheme", kinematics.Steppers(), "semi_implicit")),
			PlotX: "trajectory_x", PlotY: "trajectory_y",
			run: func(v Values) (*calc.Result, error) {
				stepper, err := kinematics.ParseStepper(v.Choice("stepper"))
				if err != nil {
					return nil, err
				}
				return kinematics.ProjectileWithDragUsing(projectileInput(v), v.Float("drag_coefficient"), stepper)
			},
		},
		{
			Module: mod, Name: "harmonic", Title: "Simple harmonic motion",
			Params: []Param{
				num("amplitude", "Amplitude", "m", 1),
				num("frequency", "Frequency", "Hz", 1),
				num("phase", "Phase", "rad", 0),
				num("time", "Time", "s", 0),
			},
			run: func(v Values) (*calc.Result, error) {
				return kinematics.HarmonicMotion(v.Float("amplitude"), v.Float("frequency"), v.Float("phase"), v.Float("time"))
			},
		},
		{
			Module: mod, Name: "harmonic_series", Title: "Simple harmonic motion over time",
			Params: []Param{
				num("amplitude", "Amplitude", "m", 1),
				num("frequency", "Frequency", "Hz", 1),
				num("phase", "Phase", "rad", 0),
				num("duration", "Duration", "s", 2).atLeast(0),
				num("samples", "Samples", "", 100).between(2, 100_000).integer(),
			},
			PlotY: "displacement",
			run: func(v Values) (*calc.Result, error) {
				ts := make([]float64, int(v.Float("samples")))
				floats.Span(ts, 0, v.Float("duration"))
				res, err := kinematics.HarmonicMotionSeries(v.Float("amplitude"), v.Float("frequency"), v.Float("phase"), ts)
				if err != nil {
					return nil, err
				}
				return res.SetSeries("time", ts), nil
			},
		},
		{
			Module: mod, Name: "four_bar", Title: "Four-bar linkage position",
			Params: append(append([]Param(nil), fourBarParams...),
				num("crank_angle", "Crank angle", "deg", 90)),
			run: func(v Values) (*calc.Result, error) {
				return kinematics.FourBar(fourBarLinks(v), v.Float("crank_angle"))
			},
		},
		{
			Module: mod, Name: "four_bar_sweep", Title: "Four-bar linkage sweep",
			Params: append(append([]Param(nil), fourBarParams...),
				list("crank_angles", "Crank angles", "deg", 0, 30, 60, 90, 120, 150, 180, 210, 240, 270, 300, 330, 360)),
			PlotX: "crank_angles", PlotY: "rocker_angles",
			run: func(v Values) (*calc.Result, error) {
				angles := v.Series("crank_angles")
				res, err := kinematics.FourBarSweep(fourBarLinks(v), angles)
				if err != nil {
					return nil, err
				}
				return res.SetSeries("crank_angles", angles), nil
			},
		},
		{
			Module: mod, Name: "cam", Title: "Cam follower displacement",
			Params: []Param{
				pick("cam_type", "Cam profile", kinematics.CamProfiles(), "simple_harmonic"),
				num("base_radius", "Base circle radius", "m", 0.05).atLeast(0),
				num("lift", "Total lift", "m", 0.02),
				num("angle", "Cam angle", "deg", 90).between(0, 360),
			},
			run: func(v Values) (*calc.Result, error) {
				profile, err := kinematics.ParseCamProfile(v.Choice("cam_type"))
				if err != nil {
					return nil, err
				}
				return kinematics.Cam(profile, v.Float("base_radius"), v.Float("lift"), v.Float("angle"))
			},
		},
		{
			Module: mod, Name: "cam_profile", Title: "Cam follower displacement over a revolution",
			Params: []Param{
				pick("cam_type", "Cam profile", kinematics.CamProfiles(), "simple_harmonic"),
				num("base_radius", "Base circle radius", "m", 0.05).atLeast(0),
				num("lift", "Total lift", "m", 0.02),
				num("samples", "Samples", "", 73).between(2, 100_000).integer(),
			},
			PlotX: "cam_angle", PlotY: "displacement",
			run: func(v Values) (*calc.Result, error) {
				profile, err := kinematics.ParseCamProfile(v.Choice("cam_type"))
				if err != nil {
					return nil, err
				}
				angles := make([]float64, int(v.Float("samples")))
				floats.Span(angles, 0, 360)
				res, err := kinematics.CamSeries(profile, v.Float("base_radius"), v.Float("lift"), angles)
				if err != nil {
					return nil, err
				}
				return res.SetSeries("cam_angle", angles), nil
			},
		},
		{
			Module: mod, Name: "gear_train", Title: "Gear train",
			Params: []Param{
				list("teeth", "Tooth counts (driver, driven, ...)", "", 20, 40).atLeast(1).integer(),
				num("input_speed", "Input speed", "rpm", 1000),
				num("efficiency", "Mesh efficiency", "", 0.98).between(0, 1),
			},
			run: func(v Values) (*calc.Result, error) {
				return kinematics.GearTrain(v.Ints("teeth"), v.Float("input_speed"), v.Float("efficiency"))
			},
		},
	}
}
