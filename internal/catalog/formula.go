package catalog

import (
	"fmt"
	"reflect"

	"github.com/mitchellh/mapstructure"
	"github.com/san-kum/mechsolver/internal/calc"
	"github.com/san-kum/mechsolver/internal/machine"
)

// Args is raw user input keyed by parameter name. Values may be numbers,
// numeric strings, lists or comma-separated strings.
type Args map[string]any

// Values is Args after defaults, coercion and range checks.
type Values map[string]any

func (v Values) Float(name string) float64 {
	f, _ := v[name].(float64)
	return f
}

func (v Values) Series(name string) []float64 {
	s, _ := v[name].([]float64)
	return s
}

func (v Values) Choice(name string) string {
	s, _ := v[name].(string)
	return s
}

// Known reports an optional scalar as given or unknown.
func (v Values) Known(name string) calc.Known {
	if f, ok := v[name].(float64); ok {
		return calc.Given(f)
	}
	return calc.Unknown
}

func (v Values) Ints(name string) []int {
	fs := v.Series(name)
	out := make([]int, len(fs))
	for i, f := range fs {
		out[i] = int(f)
	}
	return out
}

// Decode fills a tagged input struct. Fields already set in out act as
// defaults for names absent from v.
func (v Values) Decode(out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       variantHook,
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(map[string]any(v)); err != nil {
		return &ArgumentError{Param: "input", Reason: err.Error()}
	}
	return nil
}

var variantParsers = map[reflect.Type]func(string) (any, error){
	reflect.TypeOf(machine.BeltKind(0)): func(s string) (any, error) {
		return machine.ParseBeltKind(s)
	},
	reflect.TypeOf(machine.BearingKind(0)): func(s string) (any, error) {
		return machine.ParseBearingKind(s)
	},
}

// variantHook turns variant names into their enum values during Decode.
func variantHook(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String {
		return data, nil
	}
	parse, ok := variantParsers[to]
	if !ok {
		return data, nil
	}
	return parse(data.(string))
}

// Formula is one catalog entry.
type Formula struct {
	Module string
	Name   string
	Title  string
	Params []Param

	// PlotX and PlotY name the series drawn by default. An empty PlotX
	// plots PlotY against its index.
	PlotX string
	PlotY string

	run func(Values) (*calc.Result, error)
}

func (f *Formula) ID() string {
	return f.Module + "/" + f.Name
}

func (f *Formula) Param(name string) (Param, bool) {
	for _, p := range f.Params {
		if p.Name == name {
			return p, true
		}
	}
	return Param{}, false
}

// Resolve applies defaults and validation without evaluating.
func (f *Formula) Resolve(args Args) (Values, error) {
	for name := range args {
		if _, ok := f.Param(name); !ok {
			return nil, &ArgumentError{Param: name, Reason: fmt.Sprintf("not a parameter of %s", f.ID())}
		}
	}

	vals := make(Values, len(f.Params))
	for _, p := range f.Params {
		raw, ok := args[p.Name]
		if !ok || isBlank(raw) {
			if !p.Optional {
				vals[p.Name] = p.defaultValue()
			}
			continue
		}
		v, err := p.convert(raw)
		if err != nil {
			return nil, err
		}
		vals[p.Name] = v
	}
	return vals, nil
}

func (f *Formula) Eval(args Args) (*calc.Result, error) {
	vals, err := f.Resolve(args)
	if err != nil {
		return nil, err
	}
	res, err := f.run(vals)
	if err != nil {
		return nil, err
	}
	if err := calc.Finite(f.ID(), res); err != nil {
		return nil, err
	}
	return res, nil
}
