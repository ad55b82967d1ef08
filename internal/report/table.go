package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/san-kum/mechsolver/internal/calc"
)

// Table writes one output per line, aligned, in result order.
func Table(w io.Writer, res *calc.Result, precision int) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, name := range res.Names() {
		v, _ := res.Get(name)
		fmt.Fprintf(tw, "%s\t%s\n", name, FormatValue(v, precision))
	}
	return tw.Flush()
}

// InputTable writes resolved inputs sorted by name.
func InputTable(w io.Writer, inputs map[string]any, precision int) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, k := range sortedKeys(inputs) {
		fmt.Fprintf(tw, "%s\t%s\n", k, formatInput(inputs[k], precision))
	}
	return tw.Flush()
}
