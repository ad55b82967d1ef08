package kinematics

import (
	"context"
	"errors"
	"math"

	"github.com/san-kum/mechsolver/internal/calc"
	"github.com/san-kum/mechsolver/internal/integrators"
	"github.com/san-kum/mechsolver/internal/sim"
	"gonum.org/v1/gonum/floats"
)

const (
	StandardGravity  = 9.81
	TrajectoryPoints = 100
	DragStep         = 0.01
	DefaultDrag      = 0.1
)

type ProjectileInput struct {
	Velocity float64 // m/s
	AngleDeg float64 // launch angle above horizontal
	Height   float64 // launch height, m
	Gravity  float64 // zero means StandardGravity
}

func (p ProjectileInput) gravity() float64 {
	if p.Gravity == 0 {
		return StandardGravity
	}
	return p.Gravity
}

func (p ProjectileInput) components() (vx, vy float64) {
	theta := p.AngleDeg * math.Pi / 180
	return p.Velocity * math.Cos(theta), p.Velocity * math.Sin(theta)
}

// Projectile is the closed-form drag-free solution with a sampled trajectory.
func Projectile(in ProjectileInput) (*calc.Result, error) {
	const op = "projectile"
	g := in.gravity()
	if err := calc.Positive(op, "gravity", g); err != nil {
		return nil, err
	}
	vx, vy := in.components()

	radicand := vy*vy + 2*g*in.Height
	if radicand < 0 {
		return nil, calc.Domainf(op, "launch height %g is below any reachable landing point", in.Height)
	}
	tf := (vy + math.Sqrt(radicand)) / g
	if tf < 0 {
		return nil, calc.Domainf(op, "negative time of flight %g", tf)
	}

	ts := make([]float64, TrajectoryPoints)
	floats.Span(ts, 0, tf)
	xs := make([]float64, TrajectoryPoints)
	ys := make([]float64, TrajectoryPoints)
	for i, t := range ts {
		xs[i] = vx * t
		ys[i] = in.Height + vy*t - 0.5*g*t*t
	}

	return calc.NewResult().
		Set("max_height", in.Height+vy*vy/(2*g)).
		Set("range", vx*tf).
		Set("time_of_flight", tf).
		SetSeries("trajectory_x", xs).
		SetSeries("trajectory_y", ys), nil
}

// dragFlight is a point mass under gravity and quadratic drag F = -c·|v|·v.
// State: x, y, vx, vy.
type dragFlight struct {
	c float64
	g float64
}

func (d *dragFlight) Derivative(x sim.State, t float64) sim.State {
	vx, vy := x[2], x[3]
	speed := math.Hypot(vx, vy)
	return sim.State{
		vx,
		vy,
		-d.c * speed * vx,
		-d.c*speed*vy - d.g,
	}
}

func (d *dragFlight) StateDim() int { return 4 }

// Stepper selects the integration scheme of the drag trajectory.
type Stepper int

const (
	SemiImplicit Stepper = iota
	ExplicitEuler
)

var stepperNames = []string{"semi_implicit", "euler"}

func (s Stepper) String() string { return calc.VariantName(s, stepperNames) }

func ParseStepper(s string) (Stepper, error) {
	return calc.ParseVariant[Stepper]("stepper", s, stepperNames)
}

func Steppers() []string { return append([]string(nil), stepperNames...) }

func (s Stepper) integrator() sim.Integrator {
	if s == ExplicitEuler {
		return integrators.NewEuler()
	}
	return integrators.NewSemiImplicitEuler()
}

// ProjectileWithDrag is ProjectileWithDragUsing with the semi-implicit scheme.
func ProjectileWithDrag(in ProjectileInput, dragCoefficient float64) (*calc.Result, error) {
	return ProjectileWithDragUsing(in, dragCoefficient, SemiImplicit)
}

// ProjectileWithDragUsing integrates with a fixed DragStep until the height
// first goes negative. The landing sample is not interpolated, so results
// depend on the step size and the scheme.
func ProjectileWithDragUsing(in ProjectileInput, dragCoefficient float64, stepper Stepper) (*calc.Result, error) {
	const op = "projectile with drag"
	if err := calc.CheckVariant("stepper", stepper, stepperNames); err != nil {
		return nil, err
	}
	g := in.gravity()
	if err := calc.Positive(op, "gravity", g); err != nil {
		return nil, err
	}
	if err := calc.NonNegative(op, "drag coefficient", dragCoefficient); err != nil {
		return nil, err
	}
	if err := calc.NonNegative(op, "height", in.Height); err != nil {
		return nil, err
	}

	vx, vy := in.components()
	s := sim.New(&dragFlight{c: dragCoefficient, g: g}, stepper.integrator())
	cfg := sim.DefaultConfig()
	cfg.Dt = DragStep

	run, err := s.RunWhile(context.Background(), sim.State{0, in.Height, vx, vy}, cfg, func(x sim.State, _ float64) bool {
		return x[1] >= 0
	})
	if err != nil {
		if errors.Is(err, sim.ErrStepLimit) {
			return nil, calc.Domainf(op, "projectile did not land within %d steps", cfg.MaxSteps)
		}
		return nil, calc.Domainf(op, "%v", err)
	}

	xs := run.Column(0)
	ys := run.Column(1)
	return calc.NewResult().
		Set("max_height", floats.Max(ys)).
		Set("range", xs[len(xs)-1]).
		Set("time_of_flight", run.Times[len(run.Times)-1]).
		SetSeries("trajectory_x", xs).
		SetSeries("trajectory_y", ys).
		SetSeries("trajectory_t", run.Times), nil
}
