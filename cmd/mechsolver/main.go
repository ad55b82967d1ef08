package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/san-kum/mechsolver/internal/calc"
	"github.com/san-kum/mechsolver/internal/catalog"
	"github.com/san-kum/mechsolver/internal/config"
	"github.com/san-kum/mechsolver/internal/logging"
	"github.com/san-kum/mechsolver/internal/storage"
	"github.com/san-kum/mechsolver/internal/tui"
)

var (
	dataDir    string
	configFile string
	envFile    string
	logLevel   string

	// calc
	sets     []string
	preset   string
	saveRun  bool
	asJSON   bool
	showPlot bool

	// plot
	seriesName string
	xName      string
	svgFile    string

	// export
	outFile string
	pdfFile string

	// batch
	batchOut  string
	batchSave bool
	workers   int

	// serve
	addr string
)

// set up by the root command before any subcommand runs
var (
	cfg *config.Config
	log *slog.Logger
	reg *catalog.Registry
)

func main() {
	rootCmd := &cobra.Command{
		Use:               "mechsolver",
		Short:             "mechanical engineering formula calculator",
		SilenceUsage:      true,
		PersistentPreRunE: setup,
		RunE:              runMenu,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "", "data directory for saved runs")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env", ".env", "dotenv file with MECHSOLVER_* overrides")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error")

	menuCmd := &cobra.Command{
		Use:   "menu",
		Short: "interactive formula menu",
		RunE:  runMenu,
	}

	listCmd := &cobra.Command{
		Use:   "list [module | module/formula]",
		Short: "list formulas, or the inputs of one formula",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listFormulas,
	}

	calcCmd := &cobra.Command{
		Use:   "calc [module/formula]",
		Short: "evaluate a formula",
		Args:  cobra.ExactArgs(1),
		RunE:  runCalc,
	}
	calcCmd.Flags().StringArrayVarP(&sets, "set", "s", nil, "input as name=value (repeatable)")
	calcCmd.Flags().StringVar(&preset, "preset", "", "start from a named preset")
	calcCmd.Flags().BoolVar(&saveRun, "save", false, "save the run")
	calcCmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	calcCmd.Flags().BoolVar(&showPlot, "plot", false, "plot the series output")

	materialsCmd := &cobra.Command{
		Use:   "materials",
		Short: "list the material table",
		RunE:  listMaterials,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [module/formula]",
		Short: "list available presets",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listPresets,
	}

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "print a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&seriesName, "series", "", "series to plot (default: the formula's plot series)")
	plotCmd.Flags().StringVar(&xName, "x", "", "series for the x axis")
	plotCmd.Flags().StringVar(&svgFile, "svg", "", "write an SVG trajectory instead")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a run as JSON or PDF",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVarP(&outFile, "out", "o", "", "write JSON to file instead of stdout")
	exportCmd.Flags().StringVar(&pdfFile, "pdf", "", "write a PDF calculation sheet")

	batchCmd := &cobra.Command{
		Use:   "batch [plan.yaml | sheet.xlsx]",
		Short: "run many calculations from a plan or spreadsheet",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}
	batchCmd.Flags().StringVarP(&batchOut, "out", "o", "", "write results to an xlsx workbook")
	batchCmd.Flags().BoolVar(&batchSave, "save", false, "save every successful job")
	batchCmd.Flags().IntVar(&workers, "workers", 0, "worker count (default: CPUs)")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "serve the HTTP calculation API",
		RunE:  runServe,
	}
	serveCmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")

	rootCmd.AddCommand(menuCmd, listCmd, calcCmd, materialsCmd, presetsCmd, runsCmd, showCmd, plotCmd, exportCmd, batchCmd, serveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Resolve(configFile, envFile)
	if err != nil {
		return err
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	log = logging.New(level)
	reg = catalog.NewRegistry()
	return nil
}

func openStore() (*storage.Store, error) {
	st := storage.New(cfg.DataDir)
	if err := st.Init(); err != nil {
		return nil, fmt.Errorf("data dir: %w", err)
	}
	return st, nil
}

func runMenu(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	return tui.RunInteractive(tui.Options{
		Registry:  reg,
		Store:     st,
		Precision: cfg.Precision,
	})
}

// parseSets turns repeated name=value flags into catalog arguments.
func parseSets(pairs []string) (catalog.Args, error) {
	args := catalog.Args{}
	for _, p := range pairs {
		name, value, ok := strings.Cut(p, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("bad --set %q: want name=value", p)
		}
		args[name] = strings.TrimSpace(value)
	}
	return args, nil
}

// buildArgs layers --set values over the named preset.
func buildArgs(c *config.Config, formula, presetName string, pairs []string) (catalog.Args, error) {
	args := catalog.Args{}
	if presetName != "" {
		p := c.Preset(formula, presetName)
		if p == nil {
			return nil, &calc.LookupError{Table: "preset", Key: presetName, Known: c.PresetNames(formula)}
		}
		for k, v := range p {
			args[k] = v
		}
	}
	overrides, err := parseSets(pairs)
	if err != nil {
		return nil, err
	}
	for k, v := range overrides {
		args[k] = v
	}
	return args, nil
}
