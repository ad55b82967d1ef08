package kinematics

import (
	"math"

	"github.com/san-kum/mechsolver/internal/calc"
)

// FourBarLinks are the link lengths of a planar four-bar, any consistent unit.
type FourBarLinks struct {
	Crank   float64
	Coupler float64
	Rocker  float64
	Ground  float64
}

func (l FourBarLinks) validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"crank length", l.Crank},
		{"coupler length", l.Coupler},
		{"rocker length", l.Rocker},
		{"ground length", l.Ground},
	} {
		if err := calc.Positive("four-bar", f.name, f.v); err != nil {
			return err
		}
	}
	return nil
}

// solve returns rocker and coupler angles in radians for crank angle theta.
func (l FourBarLinks) solve(theta float64) (beta, gamma float64, err error) {
	a, b, c, d := l.Crank, l.Coupler, l.Rocker, l.Ground

	A := 2 * a * d * math.Cos(theta)
	B := 2 * a * d * math.Sin(theta)
	C := a*a + d*d - b*b + c*c + 2*a*d*math.Cos(theta)

	disc := A*A + B*B - C*C
	if disc < 0 {
		return 0, 0, calc.Domainf("four-bar", "linkage cannot be assembled at crank angle %.4g° (discriminant %.4g)",
			theta*180/math.Pi, disc)
	}

	beta = 2 * math.Atan2(-B+math.Sqrt(disc), C-A)
	gamma = math.Atan2(c*math.Sin(beta)-a*math.Sin(theta), c*math.Cos(beta)-a*math.Cos(theta))
	return beta, gamma, nil
}

// FourBar solves the position loop at one crank angle. Angles are degrees.
func FourBar(links FourBarLinks, crankDeg float64) (*calc.Result, error) {
	if err := links.validate(); err != nil {
		return nil, err
	}
	beta, gamma, err := links.solve(crankDeg * math.Pi / 180)
	if err != nil {
		return nil, err
	}
	return calc.NewResult().
		Set("rocker_angle", beta*180/math.Pi).
		Set("coupler_angle", gamma*180/math.Pi), nil
}

// FourBarSweep solves every crank angle and fails on the first one that
// cannot be assembled.
func FourBarSweep(links FourBarLinks, crankDeg []float64) (*calc.Result, error) {
	if err := links.validate(); err != nil {
		return nil, err
	}
	rockers := make([]float64, len(crankDeg))
	couplers := make([]float64, len(crankDeg))
	for i, deg := range crankDeg {
		beta, gamma, err := links.solve(deg * math.Pi / 180)
		if err != nil {
			return nil, err
		}
		rockers[i] = beta * 180 / math.Pi
		couplers[i] = gamma * 180 / math.Pi
	}
	return calc.NewResult().
		SetSeries("rocker_angles", rockers).
		SetSeries("coupler_angles", couplers), nil
}

type CamProfile int

const (
	SimpleHarmonic CamProfile = iota
	Cycloidal
	Parabolic
)

var camProfileNames = []string{"simple_harmonic", "cycloidal", "parabolic"}

func (p CamProfile) String() string { return calc.VariantName(p, camProfileNames) }

func ParseCamProfile(s string) (CamProfile, error) {
	return calc.ParseVariant[CamProfile]("cam type", s, camProfileNames)
}

func CamProfiles() []string { return append([]string(nil), camProfileNames...) }

// lift returns follower displacement at cam angle theta (radians) over one revolution.
func (p CamProfile) lift(l, theta float64) float64 {
	switch p {
	case SimpleHarmonic:
		return l * (1 - math.Cos(theta)) / 2
	case Cycloidal:
		return l * (theta/(2*math.Pi) - math.Sin(theta)/(2*math.Pi))
	case Parabolic:
		if theta < math.Pi {
			r := theta / math.Pi
			return 2 * l * r * r
		}
		r := 2 - theta/math.Pi
		return 2 * l * r * r
	}
	return math.NaN()
}

// Cam evaluates the follower displacement at one cam angle in degrees.
func Cam(profile CamProfile, baseRadius, lift, angleDeg float64) (*calc.Result, error) {
	if err := calc.CheckVariant("cam type", profile, camProfileNames); err != nil {
		return nil, err
	}
	d := profile.lift(lift, angleDeg*math.Pi/180)
	return calc.NewResult().
		Set("displacement", d).
		Set("base_circle_radius", baseRadius).
		Set("total_radius", baseRadius+d), nil
}

func CamSeries(profile CamProfile, baseRadius, lift float64, anglesDeg []float64) (*calc.Result, error) {
	if err := calc.CheckVariant("cam type", profile, camProfileNames); err != nil {
		return nil, err
	}
	ds := make([]float64, len(anglesDeg))
	rs := make([]float64, len(anglesDeg))
	for i, deg := range anglesDeg {
		ds[i] = profile.lift(lift, deg*math.Pi/180)
		rs[i] = baseRadius + ds[i]
	}
	return calc.NewResult().
		SetSeries("displacement", ds).
		Set("base_circle_radius", baseRadius).
		SetSeries("total_radius", rs), nil
}
