package calc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

type Kind int

const (
	KindScalar Kind = iota
	KindSeries
	KindFlag
	KindLabel
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindSeries:
		return "series"
	case KindFlag:
		return "flag"
	case KindLabel:
		return "label"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Value is one named output. Only the field matching Kind is meaningful.
type Value struct {
	Kind   Kind
	Scalar float64
	Series []float64
	Flag   bool
	Label  string
}

func (v Value) String() string {
	switch v.Kind {
	case KindSeries:
		return fmt.Sprintf("[%d samples]", len(v.Series))
	case KindFlag:
		return fmt.Sprintf("%t", v.Flag)
	case KindLabel:
		return v.Label
	}
	return fmt.Sprintf("%g", v.Scalar)
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindSeries:
		if v.Series == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.Series)
	case KindFlag:
		return json.Marshal(v.Flag)
	case KindLabel:
		return json.Marshal(v.Label)
	}
	return json.Marshal(v.Scalar)
}

// Result is the named-output mapping returned by every formula.
// Iteration order is insertion order.
type Result struct {
	names  []string
	values map[string]Value
}

func NewResult() *Result {
	return &Result{values: make(map[string]Value)}
}

func (r *Result) put(name string, v Value) *Result {
	if r.values == nil {
		r.values = make(map[string]Value)
	}
	if _, ok := r.values[name]; !ok {
		r.names = append(r.names, name)
	}
	r.values[name] = v
	return r
}

func (r *Result) Set(name string, v float64) *Result {
	return r.put(name, Value{Kind: KindScalar, Scalar: v})
}

func (r *Result) SetSeries(name string, s []float64) *Result {
	c := make([]float64, len(s))
	copy(c, s)
	return r.put(name, Value{Kind: KindSeries, Series: c})
}

func (r *Result) SetFlag(name string, b bool) *Result {
	return r.put(name, Value{Kind: KindFlag, Flag: b})
}

func (r *Result) SetLabel(name, s string) *Result {
	return r.put(name, Value{Kind: KindLabel, Label: s})
}

func (r *Result) Get(name string) (Value, bool) {
	v, ok := r.values[name]
	return v, ok
}

func (r *Result) Has(name string) bool {
	_, ok := r.values[name]
	return ok
}

// Scalar returns the named scalar, or 0 and false when absent or not a scalar.
func (r *Result) Scalar(name string) (float64, bool) {
	v, ok := r.values[name]
	if !ok || v.Kind != KindScalar {
		return 0, false
	}
	return v.Scalar, true
}

func (r *Result) Series(name string) ([]float64, bool) {
	v, ok := r.values[name]
	if !ok || v.Kind != KindSeries {
		return nil, false
	}
	return v.Series, true
}

func (r *Result) Flag(name string) (bool, bool) {
	v, ok := r.values[name]
	if !ok || v.Kind != KindFlag {
		return false, false
	}
	return v.Flag, true
}

func (r *Result) Label(name string) (string, bool) {
	v, ok := r.values[name]
	if !ok || v.Kind != KindLabel {
		return "", false
	}
	return v.Label, true
}

func (r *Result) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

func (r *Result) Len() int { return len(r.names) }

// Scalars returns every scalar output, used for run metadata.
func (r *Result) Scalars() map[string]float64 {
	out := make(map[string]float64)
	for _, n := range r.names {
		if v := r.values[n]; v.Kind == KindScalar {
			out[n] = v.Scalar
		}
	}
	return out
}

// IsValid reports whether every numeric output is finite.
func (r *Result) IsValid() bool {
	for _, v := range r.values {
		switch v.Kind {
		case KindScalar:
			if math.IsNaN(v.Scalar) || math.IsInf(v.Scalar, 0) {
				return false
			}
		case KindSeries:
			for _, x := range v.Series {
				if math.IsNaN(x) || math.IsInf(x, 0) {
					return false
				}
			}
		}
	}
	return true
}

func (r *Result) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, n := range r.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(n)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(r.values[n])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (r *Result) String() string {
	var sb strings.Builder
	for _, n := range r.names {
		fmt.Fprintf(&sb, "%s: %s\n", n, r.values[n])
	}
	return sb.String()
}

// Known is a scalar that is either given by the caller or left to be solved.
type Known struct {
	Value float64
	Set   bool
}

// Unknown marks a quantity the formula must solve for.
var Unknown = Known{}

func Given(v float64) Known {
	return Known{Value: v, Set: true}
}

func CountKnown(ks ...Known) int {
	n := 0
	for _, k := range ks {
		if k.Set {
			n++
		}
	}
	return n
}

// ParseVariant maps name to its index in names. The enum types in the
// formula packages are declared in the same order as their name tables.
func ParseVariant[V ~int](kind, name string, names []string) (V, error) {
	for i, n := range names {
		if n == name {
			return V(i), nil
		}
	}
	valid := make([]string, len(names))
	copy(valid, names)
	return V(-1), &VariantError{Kind: kind, Got: name, Valid: valid}
}

// VariantName is the String counterpart of ParseVariant.
func VariantName[V ~int](v V, names []string) string {
	if int(v) < 0 || int(v) >= len(names) {
		return fmt.Sprintf("variant(%d)", int(v))
	}
	return names[v]
}

// CheckVariant fails for enum values outside names.
func CheckVariant[V ~int](kind string, v V, names []string) error {
	if int(v) < 0 || int(v) >= len(names) {
		valid := make([]string, len(names))
		copy(valid, names)
		return &VariantError{Kind: kind, Got: fmt.Sprintf("%d", int(v)), Valid: valid}
	}
	return nil
}
