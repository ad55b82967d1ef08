package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/san-kum/mechsolver/internal/batch"
	"github.com/san-kum/mechsolver/internal/calc"
	"github.com/san-kum/mechsolver/internal/catalog"
	"github.com/san-kum/mechsolver/internal/config"
	"github.com/san-kum/mechsolver/internal/materials"
	"github.com/san-kum/mechsolver/internal/report"
	"github.com/san-kum/mechsolver/internal/server"
	"github.com/spf13/cobra"
)

func listFormulas(cmd *cobra.Command, args []string) error {
	if len(args) == 1 && strings.Contains(args[0], "/") {
		return describeFormula(args[0])
	}

	modules := reg.Modules()
	if len(args) == 1 {
		if len(reg.Formulas(args[0])) == 0 {
			return &calc.LookupError{Table: "module", Key: args[0], Known: modules}
		}
		modules = args[:1]
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FORMULA\tTITLE")
	for _, m := range modules {
		for _, f := range reg.Formulas(m) {
			fmt.Fprintf(w, "%s\t%s\n", f.ID(), f.Title)
		}
	}
	return w.Flush()
}

func describeFormula(id string) error {
	f, err := reg.Get(id)
	if err != nil {
		return err
	}
	fmt.Printf("%s: %s\n\n", f.ID(), f.Title)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INPUT\tUNIT\tDEFAULT\tRANGE\tDESCRIPTION")
	for _, p := range f.Params {
		def := p.DefaultText()
		switch {
		case p.Kind == catalog.Choice:
			def += " (" + strings.Join(p.Choices, "|") + ")"
		case p.Optional:
			def = "unknown"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", p.Name, p.Unit, def, paramRange(p), p.Label)
	}
	return w.Flush()
}

func paramRange(p catalog.Param) string {
	switch {
	case p.Min != nil && p.Max != nil:
		return fmt.Sprintf("[%g, %g]", *p.Min, *p.Max)
	case p.Min != nil:
		return fmt.Sprintf(">= %g", *p.Min)
	case p.Max != nil:
		return fmt.Sprintf("<= %g", *p.Max)
	}
	return ""
}

func runCalc(cmd *cobra.Command, args []string) error {
	f, err := reg.Get(args[0])
	if err != nil {
		return err
	}
	in, err := buildArgs(cfg, f.ID(), preset, sets)
	if err != nil {
		return err
	}

	log.Debug("evaluating", "formula", f.ID(), "inputs", len(in))
	res, err := f.Eval(in)
	if err != nil {
		return fmt.Errorf("%s: %w", f.ID(), err)
	}

	var runID string
	if saveRun {
		st, err := openStore()
		if err != nil {
			return err
		}
		if runID, err = st.Save(f.ID(), in, res); err != nil {
			return err
		}
		log.Info("run saved", "id", runID)
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Formula string         `json:"formula"`
			RunID   string         `json:"run_id,omitempty"`
			Inputs  map[string]any `json:"inputs"`
			Result  *calc.Result   `json:"result"`
		}{f.ID(), runID, in, res})
	}

	fmt.Printf("%s: %s\n\n", f.ID(), f.Title)
	if err := report.Table(os.Stdout, res, cfg.Precision); err != nil {
		return err
	}
	if runID != "" {
		fmt.Printf("\nsaved: %s\n", runID)
	}

	if showPlot && f.PlotY != "" {
		graph, err := drawPlot(res, f.PlotX, f.PlotY)
		if err != nil {
			return err
		}
		fmt.Println()
		fmt.Println(graph)
	}
	return nil
}

func drawPlot(res *calc.Result, x, y string) (string, error) {
	opts := report.PlotOptions{
		Width:   cfg.Plot.Width,
		Height:  cfg.Plot.Height,
		Caption: y,
	}
	if x == "" {
		return report.Plot(res, y, opts)
	}
	opts.Caption = y + " vs " + x
	return report.PlotXY(res, x, y, opts)
}

func listMaterials(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CODE\tNAME\tDENSITY\tE (GPa)\tYIELD (MPa)\tUTS (MPa)\tk (W/m·K)\tCOST/kg")
	for _, m := range materials.All() {
		fmt.Fprintf(w, "%s\t%s\t%g\t%g\t%g\t%g\t%g\t%g\n",
			m.Code, m.Name, m.Density,
			m.ElasticModulus/1e9, m.YieldStrength/1e6, m.UltimateStrength/1e6,
			m.ThermalConductivity, m.CostPerKg)
	}
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		seen := map[string]bool{}
		for _, f := range config.Formulas() {
			seen[f] = true
		}
		for f := range cfg.Presets {
			seen[f] = true
		}
		for _, f := range reg.All() {
			if seen[f.ID()] {
				fmt.Printf("%s: %s\n", f.ID(), strings.Join(cfg.PresetNames(f.ID()), ", "))
			}
		}
		return nil
	}

	f, err := reg.Get(args[0])
	if err != nil {
		return err
	}
	names := cfg.PresetNames(f.ID())
	if len(names) == 0 {
		fmt.Printf("no presets for %s\n", f.ID())
		return nil
	}
	fmt.Printf("presets for %s:\n", f.ID())
	for _, n := range names {
		desc := "from config"
		if p := config.GetPreset(f.ID(), n); p != nil && cfg.Presets[f.ID()][n] == nil {
			desc = p.Description
		}
		fmt.Printf("  %-16s %s\n", n, desc)
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tFORMULA\tTIME\tOUTPUTS\tSERIES")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\n",
			run.ID,
			run.Formula,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			len(run.Order),
			len(run.Series),
		)
	}
	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	run, res, err := st.Restore(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", run.ID)
	fmt.Printf("formula: %s\n", run.Formula)
	fmt.Printf("time: %s\n\n", run.Timestamp.Format("2006-01-02 15:04:05"))
	if err := report.InputTable(os.Stdout, run.Inputs, cfg.Precision); err != nil {
		return err
	}
	fmt.Println()
	return report.Table(os.Stdout, res, cfg.Precision)
}

func plotRun(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	run, res, err := st.Restore(args[0])
	if err != nil {
		return err
	}

	x, y := xName, seriesName
	if y == "" {
		if f, err := reg.Get(run.Formula); err == nil && f.PlotY != "" {
			y = f.PlotY
			if x == "" {
				x = f.PlotX
			}
		} else if len(run.Series) > 0 {
			y = run.Series[0]
		}
	}
	if y == "" {
		return fmt.Errorf("%s: %w", run.ID, report.ErrNoSeries)
	}

	if svgFile != "" {
		xs, ok := res.Series(x)
		ys, _ := res.Series(y)
		if !ok || len(ys) == 0 {
			return fmt.Errorf("svg needs x and y series: %w", report.ErrNoSeries)
		}
		svg := report.TrajectorySVG(xs, ys, 800, 400, "#00d7af")
		if err := os.WriteFile(svgFile, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", svgFile)
		return nil
	}

	fmt.Printf("run: %s\n", run.ID)
	fmt.Printf("formula: %s\n\n", run.Formula)
	graph, err := drawPlot(res, x, y)
	if err != nil {
		return err
	}
	fmt.Println(graph)
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	runID := args[0]

	if pdfFile != "" {
		run, res, err := st.Restore(runID)
		if err != nil {
			return err
		}
		title := run.Formula
		if f, err := reg.Get(run.Formula); err == nil {
			title = f.Title
		}
		out, err := os.Create(pdfFile)
		if err != nil {
			return err
		}
		defer out.Close()
		err = report.WritePDF(out, report.Sheet{
			Title:     title,
			Formula:   run.Formula,
			Timestamp: run.Timestamp,
			Inputs:    run.Inputs,
			Result:    res,
			Precision: cfg.Precision,
			Notes:     "run " + run.ID,
		})
		if err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", pdfFile)
		return nil
	}

	if outFile != "" {
		return st.ExportFile(outFile, runID)
	}
	return st.ExportJSON(os.Stdout, runID)
}

func runBatch(cmd *cobra.Command, args []string) error {
	jobs, err := loadJobs(args[0])
	if err != nil {
		return err
	}

	runner := batch.NewRunner(reg)
	runner.Presets = cfg.Preset
	runner.Log = log
	if workers > 0 {
		runner.Workers = workers
	}
	if batchSave {
		for i := range jobs {
			jobs[i].Save = true
		}
	}
	for _, j := range jobs {
		if j.Save {
			if runner.Store, err = openStore(); err != nil {
				return err
			}
			break
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	outcomes := runner.Run(ctx, jobs)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "JOB\tFORMULA\tSTATUS\tRUN")
	for _, o := range outcomes {
		status := "ok"
		if o.Err != nil {
			status = o.Err.Error()
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", o.Job.Name, o.Job.Formula, status, o.RunID)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if batchOut != "" {
		out, err := os.Create(batchOut)
		if err != nil {
			return err
		}
		defer out.Close()
		if err := batch.WriteXLSX(out, outcomes); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", batchOut)
	}

	if n := batch.Failed(outcomes); n > 0 {
		return fmt.Errorf("%d of %d jobs failed", n, len(outcomes))
	}
	return nil
}

func loadJobs(path string) ([]batch.Job, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return batch.ReadXLSX(f)
	}
	plan, err := batch.LoadPlan(path)
	if err != nil {
		return nil, err
	}
	return plan.Expand()
}

func runServe(cmd *cobra.Command, args []string) error {
	listen := addr
	if listen == "" {
		listen = cfg.Server.Addr
	}
	srv := server.New(reg, server.Options{
		RateLimit: cfg.Server.RateLimit,
		RateBurst: cfg.Server.RateBurst,
		Log:       log,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.ListenAndServe(ctx, listen)
}
