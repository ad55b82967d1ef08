package sim

import (
	"context"
	"errors"
	"math"
	"testing"
)

type testDynamics struct{}

func (t *testDynamics) Derivative(x State, time float64) State {
	return State{-x[0]}
}

func (t *testDynamics) StateDim() int { return 1 }

type testIntegrator struct{}

func (t *testIntegrator) Step(dyn Dynamics, x State, time float64, dt float64) State {
	dx := dyn.Derivative(x, time)
	return State{x[0] + dt*dx[0]}
}

func TestSimulatorRunWhile(t *testing.T) {
	s := New(&testDynamics{}, &testIntegrator{})

	cfg := Config{Dt: 0.1, MaxSteps: 1000}
	result, err := s.RunWhile(context.Background(), State{1.0}, cfg, func(x State, t float64) bool {
		return t < 0.95
	})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(result.States) != 11 {
		t.Errorf("expected 11 states, got %d", len(result.States))
	}
	if len(result.Times) != len(result.States) {
		t.Errorf("times and states differ: %d vs %d", len(result.Times), len(result.States))
	}
	if result.StepsTaken != 10 {
		t.Errorf("expected 10 steps, got %d", result.StepsTaken)
	}

	final := result.States[len(result.States)-1][0]
	expected := math.Exp(-1.0)
	if math.Abs(final-expected) > 0.2 {
		t.Errorf("expected final state ~%.4f, got %.4f", expected, final)
	}
}

func TestSimulatorRecordsCrossingSample(t *testing.T) {
	s := New(&testDynamics{}, &testIntegrator{})
	cfg := Config{Dt: 0.5, MaxSteps: 100}

	result, err := s.RunWhile(context.Background(), State{1.0}, cfg, func(x State, _ float64) bool {
		return x[0] >= 0.3
	})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	last := result.States[len(result.States)-1][0]
	if last >= 0.3 {
		t.Errorf("last sample %.4f should be past the stop condition", last)
	}
}

func TestSimulatorStepLimit(t *testing.T) {
	s := New(&testDynamics{}, &testIntegrator{})
	_, err := s.RunWhile(context.Background(), State{1.0}, Config{Dt: 0.1, MaxSteps: 5}, func(State, float64) bool {
		return true
	})
	if !errors.Is(err, ErrStepLimit) {
		t.Fatalf("expected ErrStepLimit, got %v", err)
	}
}

func TestSimulatorInvalidConfig(t *testing.T) {
	s := New(&testDynamics{}, &testIntegrator{})

	tests := []struct {
		name string
		x0   State
		cfg  Config
	}{
		{"zero dt", State{1}, Config{Dt: 0, MaxSteps: 10}},
		{"negative dt", State{1}, Config{Dt: -0.1, MaxSteps: 10}},
		{"zero max steps", State{1}, Config{Dt: 0.1}},
		{"wrong dimension", State{1, 2}, Config{Dt: 0.1, MaxSteps: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.RunWhile(context.Background(), tt.x0, tt.cfg, func(State, float64) bool { return false })
			if err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestSimulatorCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := New(&testDynamics{}, &testIntegrator{})
	_, err := s.RunWhile(ctx, State{1}, DefaultConfig(), func(State, float64) bool { return true })
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestState_IsValid(t *testing.T) {
	tests := []struct {
		name  string
		state State
		valid bool
	}{
		{"empty", State{}, true},
		{"normal", State{1.0, 2.0, 3.0}, true},
		{"with NaN", State{1.0, math.NaN()}, false},
		{"with +Inf", State{1.0, math.Inf(1)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestSimError(t *testing.T) {
	err := SimError{Time: 1.5, Step: 150, Message: "test error"}
	expected := "step 150 (t=1.5000): test error"
	if err.Error() != expected {
		t.Errorf("SimError.Error() = %q, want %q", err.Error(), expected)
	}
}
