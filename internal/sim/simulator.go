package sim

import (
	"context"
	"errors"
	"fmt"
)

// ErrStepLimit is returned when the stop condition never fired.
var ErrStepLimit = errors.New("sim: step limit reached before stop condition")

type Simulator struct {
	dyn        Dynamics
	integrator Integrator
}

func New(dyn Dynamics, integrator Integrator) *Simulator {
	return &Simulator{
		dyn:        dyn,
		integrator: integrator,
	}
}

// RunWhile steps from x0 for as long as cont accepts the latest sample.
// The sample that fails cont is recorded, so the trace ends on the first
// state past the condition rather than an interpolated crossing.
func (s *Simulator) RunWhile(ctx context.Context, x0 State, cfg Config, cont func(State, float64) bool) (*Result, error) {
	if err := s.validateConfig(x0, cfg); err != nil {
		return nil, err
	}

	result := &Result{
		States: make([]State, 0, 256),
		Times:  make([]float64, 0, 256),
	}

	x := x0.Clone()
	t := 0.0
	result.States = append(result.States, x.Clone())
	result.Times = append(result.Times, t)

	for i := 0; cont(x, t); i++ {
		if i >= cfg.MaxSteps {
			return result, fmt.Errorf("%w (%d steps)", ErrStepLimit, cfg.MaxSteps)
		}

		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		x = s.integrator.Step(s.dyn, x, t, cfg.Dt)
		t += cfg.Dt

		if !x.IsValid() {
			return result, SimError{Time: t, Step: i, Message: "invalid state (NaN/Inf)"}
		}

		result.StepsTaken++
		result.States = append(result.States, x.Clone())
		result.Times = append(result.Times, t)
	}

	return result, nil
}

func (s *Simulator) validateConfig(x0 State, cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if cfg.MaxSteps <= 0 {
		return fmt.Errorf("max steps must be positive, got %d", cfg.MaxSteps)
	}
	if len(x0) != s.dyn.StateDim() {
		return fmt.Errorf("initial state has %d components, system expects %d", len(x0), s.dyn.StateDim())
	}
	return nil
}
