package catalog

import (
	"fmt"
	"sort"

	"github.com/san-kum/mechsolver/internal/calc"
)

// Module names in menu order.
var moduleOrder = []string{"kinematics", "stress", "fluids", "thermo", "machine", "materials"}

type Registry struct {
	formulas map[string]*Formula
	order    []string
}

// NewRegistry returns a registry holding every built-in formula.
func NewRegistry() *Registry {
	r := &Registry{formulas: make(map[string]*Formula)}
	for _, group := range [][]Formula{
		kinematicsFormulas(),
		stressFormulas(),
		fluidsFormulas(),
		thermoFormulas(),
		machineFormulas(),
		materialsFormulas(),
	} {
		for _, f := range group {
			if err := r.Register(f); err != nil {
				panic(err)
			}
		}
	}
	return r
}

func (r *Registry) Register(f Formula) error {
	if f.Module == "" || f.Name == "" || f.run == nil {
		return fmt.Errorf("catalog: incomplete formula %q", f.ID())
	}
	id := f.ID()
	if _, ok := r.formulas[id]; ok {
		return fmt.Errorf("catalog: duplicate formula %s", id)
	}
	r.formulas[id] = &f
	r.order = append(r.order, id)
	return nil
}

func (r *Registry) Get(id string) (*Formula, error) {
	f, ok := r.formulas[id]
	if !ok {
		return nil, &calc.LookupError{Table: "formula", Key: id}
	}
	return f, nil
}

// Modules lists modules that have at least one formula, in menu order.
func (r *Registry) Modules() []string {
	seen := make(map[string]bool)
	for _, f := range r.formulas {
		seen[f.Module] = true
	}
	var mods []string
	for _, m := range moduleOrder {
		if seen[m] {
			mods = append(mods, m)
			delete(seen, m)
		}
	}
	rest := make([]string, 0, len(seen))
	for m := range seen {
		rest = append(rest, m)
	}
	sort.Strings(rest)
	return append(mods, rest...)
}

// Formulas lists a module's formulas in registration order.
func (r *Registry) Formulas(module string) []*Formula {
	var out []*Formula
	for _, id := range r.order {
		if f := r.formulas[id]; f.Module == module {
			out = append(out, f)
		}
	}
	return out
}

func (r *Registry) All() []*Formula {
	out := make([]*Formula, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.formulas[id])
	}
	return out
}

func (r *Registry) Evaluate(id string, args Args) (*calc.Result, error) {
	f, err := r.Get(id)
	if err != nil {
		return nil, err
	}
	return f.Eval(args)
}
