package sim

import (
	"fmt"
	"math"
)

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Dynamics is an ODE dX/dt = f(X, t). Second-order systems keep positions
// in the first half of the state and velocities in the second half.
type Dynamics interface {
	Derivative(x State, t float64) State
	StateDim() int
}

type Integrator interface {
	Step(dyn Dynamics, x State, t float64, dt float64) State
}

type Config struct {
	Dt       float64
	MaxSteps int
}

func DefaultConfig() Config {
	return Config{
		Dt:       0.01,
		MaxSteps: 1_000_000,
	}
}

type Result struct {
	States     []State
	Times      []float64
	StepsTaken int
}

// Column extracts component i of every recorded state.
func (r *Result) Column(i int) []float64 {
	out := make([]float64, len(r.States))
	for k, s := range r.States {
		if i < len(s) {
			out[k] = s[i]
		}
	}
	return out
}

type SimError struct {
	Time    float64
	Step    int
	Message string
}

func (e SimError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %s", e.Step, e.Time, e.Message)
}
