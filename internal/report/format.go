// Package report renders calculation results as text tables, terminal
// plots, SVG trajectories and PDF sheets.
package report

import (
	"fmt"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/mechsolver/internal/calc"
)

// FormatValue renders one output with the given number of significant
// digits. Series collapse to a count and range.
func FormatValue(v calc.Value, precision int) string {
	switch v.Kind {
	case calc.KindSeries:
		if len(v.Series) == 0 {
			return "[0 samples]"
		}
		return fmt.Sprintf("[%d samples] %s .. %s", len(v.Series),
			FormatFloat(floats.Min(v.Series), precision), FormatFloat(floats.Max(v.Series), precision))
	case calc.KindFlag:
		if v.Flag {
			return "yes"
		}
		return "no"
	case calc.KindLabel:
		return v.Label
	}
	return FormatFloat(v.Scalar, precision)
}

func FormatFloat(f float64, precision int) string {
	if precision <= 0 {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return strconv.FormatFloat(f, 'g', precision, 64)
}

func formatInput(v any, precision int) string {
	switch x := v.(type) {
	case float64:
		return FormatFloat(x, precision)
	case []float64:
		out := ""
		for i, f := range x {
			if i > 0 {
				out += ", "
			}
			out += FormatFloat(f, precision)
		}
		return out
	}
	return fmt.Sprint(v)
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
