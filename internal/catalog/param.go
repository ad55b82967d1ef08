package catalog

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/san-kum/mechsolver/internal/calc"
)

var (
	ErrOutOfRange  = errors.New("catalog: parameter out of range")
	ErrBadArgument = errors.New("catalog: invalid argument")
)

// RangeError reports a value outside a parameter's declared bounds.
type RangeError struct {
	Param string
	Value float64
	Min   *float64
	Max   *float64
}

func (e *RangeError) Error() string {
	lo, hi := "-inf", "+inf"
	if e.Min != nil {
		lo = fmt.Sprintf("%g", *e.Min)
	}
	if e.Max != nil {
		hi = fmt.Sprintf("%g", *e.Max)
	}
	return fmt.Sprintf("%s = %g is outside [%s, %s]", e.Param, e.Value, lo, hi)
}

func (e *RangeError) Unwrap() error {
	return ErrOutOfRange
}

type ArgumentError struct {
	Param  string
	Reason string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("%s: %s", e.Param, e.Reason)
}

func (e *ArgumentError) Unwrap() error {
	return ErrBadArgument
}

type ParamKind int

const (
	Scalar ParamKind = iota
	Series
	Choice
)

func (k ParamKind) String() string {
	switch k {
	case Scalar:
		return "scalar"
	case Series:
		return "series"
	case Choice:
		return "choice"
	}
	return "unknown"
}

// Param describes one formula input for prompting, validation and docs.
// Optional scalars have no default; leaving them out marks them unknown.
type Param struct {
	Name     string    `json:"name"`
	Label    string    `json:"label"`
	Unit     string    `json:"unit,omitempty"`
	Kind     ParamKind `json:"-"`
	Default  float64   `json:"default,omitempty"`
	Defaults []float64 `json:"defaults,omitempty"`
	Choices  []string  `json:"choices,omitempty"`
	Selected string    `json:"selected,omitempty"`
	Optional bool      `json:"optional,omitempty"`
	Integer  bool      `json:"integer,omitempty"`
	Min      *float64  `json:"min,omitempty"`
	Max      *float64  `json:"max,omitempty"`
}

func num(name, label, unit string, def float64) Param {
	return Param{Name: name, Label: label, Unit: unit, Kind: Scalar, Default: def}
}

func opt(name, label, unit string) Param {
	return Param{Name: name, Label: label, Unit: unit, Kind: Scalar, Optional: true}
}

func list(name, label, unit string, defs ...float64) Param {
	return Param{Name: name, Label: label, Unit: unit, Kind: Series, Defaults: defs}
}

func pick(name, label string, choices []string, selected string) Param {
	return Param{Name: name, Label: label, Kind: Choice, Choices: choices, Selected: selected}
}

func (p Param) between(lo, hi float64) Param {
	p.Min, p.Max = &lo, &hi
	return p
}

func (p Param) atLeast(lo float64) Param {
	p.Min = &lo
	return p
}

func (p Param) integer() Param {
	p.Integer = true
	return p
}

// DefaultText renders the default the way a user would type it.
func (p Param) DefaultText() string {
	switch p.Kind {
	case Series:
		parts := make([]string, len(p.Defaults))
		for i, d := range p.Defaults {
			parts[i] = fmt.Sprintf("%g", d)
		}
		return strings.Join(parts, ",")
	case Choice:
		return p.Selected
	}
	if p.Optional {
		return ""
	}
	return fmt.Sprintf("%g", p.Default)
}

func (p Param) defaultValue() any {
	switch p.Kind {
	case Series:
		return append([]float64(nil), p.Defaults...)
	case Choice:
		return p.Selected
	}
	return p.Default
}

// Check validates a single number against the parameter bounds.
func (p Param) Check(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &ArgumentError{Param: p.Name, Reason: "must be a finite number"}
	}
	if (p.Min != nil && v < *p.Min) || (p.Max != nil && v > *p.Max) {
		return &RangeError{Param: p.Name, Value: v, Min: p.Min, Max: p.Max}
	}
	if p.Integer && v != math.Trunc(v) {
		return &ArgumentError{Param: p.Name, Reason: fmt.Sprintf("%g is not a whole number", v)}
	}
	return nil
}

// convert coerces raw user input (number, numeric string, list or
// comma-separated string) into the parameter's canonical Go type.
func (p Param) convert(raw any) (any, error) {
	switch p.Kind {
	case Scalar:
		f, err := toFloat(raw)
		if err != nil {
			return nil, &ArgumentError{Param: p.Name, Reason: err.Error()}
		}
		return f, p.Check(f)

	case Series:
		fs, err := toSeries(raw)
		if err != nil {
			return nil, &ArgumentError{Param: p.Name, Reason: err.Error()}
		}
		for _, f := range fs {
			if err := p.Check(f); err != nil {
				return nil, err
			}
		}
		return fs, nil

	case Choice:
		var s string
		if err := mapstructure.WeakDecode(raw, &s); err != nil {
			return nil, &ArgumentError{Param: p.Name, Reason: err.Error()}
		}
		s = strings.TrimSpace(s)
		for _, c := range p.Choices {
			if c == s {
				return s, nil
			}
		}
		return nil, &calc.VariantError{Kind: p.Name, Got: s, Valid: append([]string(nil), p.Choices...)}
	}
	return nil, &ArgumentError{Param: p.Name, Reason: "unsupported parameter kind"}
}

func toFloat(raw any) (float64, error) {
	if s, ok := raw.(string); ok {
		raw = strings.TrimSpace(s)
	}
	var f float64
	if err := mapstructure.WeakDecode(raw, &f); err != nil {
		return 0, fmt.Errorf("not a number: %v", raw)
	}
	return f, nil
}

func toSeries(raw any) ([]float64, error) {
	if s, ok := raw.(string); ok {
		var items []any
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				items = append(items, part)
			}
		}
		raw = items
	}
	var fs []float64
	if err := mapstructure.WeakDecode(raw, &fs); err != nil {
		return nil, fmt.Errorf("not a list of numbers: %v", raw)
	}
	return fs, nil
}

func isBlank(raw any) bool {
	if raw == nil {
		return true
	}
	s, ok := raw.(string)
	return ok && strings.TrimSpace(s) == ""
}
