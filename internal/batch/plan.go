package batch

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gonum.org/v1/gonum/floats"
	"gopkg.in/yaml.v3"
)

var ErrEmptyPlan = errors.New("batch: plan has no jobs")

// Job is one formula evaluation. Preset args are applied first and Args
// override them.
type Job struct {
	Name    string         `yaml:"name"`
	Formula string         `yaml:"formula"`
	Preset  string         `yaml:"preset,omitempty"`
	Args    map[string]any `yaml:"args,omitempty"`
	Save    bool           `yaml:"save,omitempty"`
}

// Sweep varies one parameter linearly over Steps values.
type Sweep struct {
	Formula string         `yaml:"formula"`
	Param   string         `yaml:"param"`
	Min     float64        `yaml:"min"`
	Max     float64        `yaml:"max"`
	Steps   int            `yaml:"steps"`
	Args    map[string]any `yaml:"args,omitempty"`
	Save    bool           `yaml:"save,omitempty"`
}

// Plan is a YAML job file.
type Plan struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Jobs        []Job   `yaml:"jobs"`
	Sweeps      []Sweep `yaml:"sweeps"`
}

func LoadPlan(path string) (*Plan, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadPlan(f)
}

func ReadPlan(r io.Reader) (*Plan, error) {
	var plan Plan
	if err := yaml.NewDecoder(r).Decode(&plan); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyPlan
		}
		return nil, fmt.Errorf("batch: %w", err)
	}
	return &plan, nil
}

// Expand flattens jobs and sweeps, in file order, into a job list.
func (p *Plan) Expand() ([]Job, error) {
	jobs := make([]Job, 0, len(p.Jobs))
	for i, j := range p.Jobs {
		if j.Formula == "" {
			return nil, fmt.Errorf("batch: job %d has no formula", i+1)
		}
		if j.Name == "" {
			j.Name = fmt.Sprintf("%s#%d", j.Formula, i+1)
		}
		jobs = append(jobs, j)
	}
	for _, s := range p.Sweeps {
		sj, err := s.Jobs()
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, sj...)
	}
	if len(jobs) == 0 {
		return nil, ErrEmptyPlan
	}
	return jobs, nil
}

func (s Sweep) Jobs() ([]Job, error) {
	if s.Formula == "" || s.Param == "" {
		return nil, fmt.Errorf("batch: sweep needs formula and param")
	}
	if s.Steps < 2 {
		return nil, fmt.Errorf("batch: sweep over %s needs at least 2 steps, got %d", s.Param, s.Steps)
	}

	values := make([]float64, s.Steps)
	floats.Span(values, s.Min, s.Max)

	jobs := make([]Job, len(values))
	for i, v := range values {
		args := make(map[string]any, len(s.Args)+1)
		for k, a := range s.Args {
			args[k] = a
		}
		args[s.Param] = v
		jobs[i] = Job{
			Name:    fmt.Sprintf("%s %s=%g", s.Formula, s.Param, v),
			Formula: s.Formula,
			Args:    args,
			Save:    s.Save,
		}
	}
	return jobs, nil
}
