package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/mechsolver/internal/calc"
)

const (
	metadataFile = "metadata.json"
	seriesFile   = "series.csv"
)

type Store struct {
	baseDir string
	now     func() time.Time
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, now: time.Now}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir() string { return s.baseDir }

// Run is the metadata of one saved calculation. Series outputs live in
// series.csv next to it.
type Run struct {
	ID        string             `json:"id"`
	Formula   string             `json:"formula"`
	Module    string             `json:"module"`
	Name      string             `json:"name"`
	Timestamp time.Time          `json:"timestamp"`
	Inputs    map[string]any     `json:"inputs"`
	Outputs   map[string]float64 `json:"outputs"`
	Flags     map[string]bool    `json:"flags,omitempty"`
	Labels    map[string]string  `json:"labels,omitempty"`
	Series    []string           `json:"series,omitempty"`

	// Order is the result's output order, series included.
	Order []string `json:"order"`
}

// Save writes the result of formula (a module/name id) under a fresh run id.
func (s *Store) Save(formula string, inputs map[string]any, res *calc.Result) (string, error) {
	module, name, ok := strings.Cut(formula, "/")
	if !ok {
		return "", fmt.Errorf("storage: formula id %q is not module/name", formula)
	}

	now := s.now()
	runID, runDir, err := s.mkRunDir(fmt.Sprintf("%s_%s_%d", module, name, now.Unix()))
	if err != nil {
		return "", err
	}

	run := Run{
		ID:        runID,
		Formula:   formula,
		Module:    module,
		Name:      name,
		Timestamp: now,
		Inputs:    inputs,
		Outputs:   make(map[string]float64),
		Order:     res.Names(),
	}
	series := make(map[string][]float64)
	for _, n := range run.Order {
		v, _ := res.Get(n)
		switch v.Kind {
		case calc.KindScalar:
			run.Outputs[n] = v.Scalar
		case calc.KindSeries:
			run.Series = append(run.Series, n)
			series[n] = v.Series
		case calc.KindFlag:
			if run.Flags == nil {
				run.Flags = make(map[string]bool)
			}
			run.Flags[n] = v.Flag
		case calc.KindLabel:
			if run.Labels == nil {
				run.Labels = make(map[string]string)
			}
			run.Labels[n] = v.Label
		}
	}

	if err := writeRun(runDir, run, series); err != nil {
		os.RemoveAll(runDir)
		return "", err
	}
	return runID, nil
}

// writeRun writes series.csv before metadata.json, so a run dir holding
// metadata is always complete.
func writeRun(dir string, run Run, series map[string][]float64) error {
	if len(run.Series) > 0 {
		if err := writeSeries(filepath.Join(dir, seriesFile), run.Series, series); err != nil {
			return err
		}
	}
	return writeJSON(filepath.Join(dir, metadataFile), run)
}

// mkRunDir creates a run directory, suffixing the id when several runs
// land in the same second.
func (s *Store) mkRunDir(base string) (string, string, error) {
	if err := s.Init(); err != nil {
		return "", "", err
	}
	id := base
	for i := 2; ; i++ {
		dir := filepath.Join(s.baseDir, id)
		err := os.Mkdir(dir, 0755)
		if err == nil {
			return id, dir, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", "", err
		}
		id = fmt.Sprintf("%s_%d", base, i)
	}
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeSeries(path string, names []string, series map[string][]float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	if err := w.Write(names); err != nil {
		f.Close()
		return err
	}

	rows := 0
	for _, n := range names {
		rows = max(rows, len(series[n]))
	}
	for i := 0; i < rows; i++ {
		row := make([]string, len(names))
		for j, n := range names {
			if i < len(series[n]) {
				row[j] = strconv.FormatFloat(series[n][i], 'g', -1, 64)
			}
		}
		if err := w.Write(row); err != nil {
			f.Close()
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// List returns saved runs, oldest first.
func (s *Store) List() ([]Run, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Run{}, nil
		}
		return nil, err
	}

	runs := make([]Run, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		run, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *run)
	}

	sort.SliceStable(runs, func(i, j int) bool {
		if runs[i].Timestamp.Equal(runs[j].Timestamp) {
			return runs[i].ID < runs[j].ID
		}
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*Run, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &calc.LookupError{Table: "run", Key: runID}
		}
		return nil, err
	}

	var run Run
	if err := json.Unmarshal(data, &run); err != nil {
		return nil, fmt.Errorf("storage: run %s: %w", runID, err)
	}
	return &run, nil
}

// LoadSeries reads series.csv. Short columns are padded with blanks on
// save and trimmed again here.
func (s *Store) LoadSeries(runID string) (map[string][]float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, seriesFile))
	if err != nil {
		if os.IsNotExist(err) {
			return map[string][]float64{}, nil
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return map[string][]float64{}, nil
	}

	header := records[0]
	out := make(map[string][]float64, len(header))
	for _, rec := range records[1:] {
		for j, cell := range rec {
			if j >= len(header) || cell == "" {
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("storage: run %s: column %s: %w", runID, header[j], err)
			}
			out[header[j]] = append(out[header[j]], v)
		}
	}
	return out, nil
}

// Restore rebuilds the saved result in its original output order.
func (s *Store) Restore(runID string) (*Run, *calc.Result, error) {
	run, err := s.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	series, err := s.LoadSeries(runID)
	if err != nil {
		return nil, nil, err
	}

	isSeries := make(map[string]bool, len(run.Series))
	for _, n := range run.Series {
		isSeries[n] = true
	}

	res := calc.NewResult()
	for _, n := range run.Order {
		if v, ok := run.Outputs[n]; ok {
			res.Set(n, v)
		} else if isSeries[n] {
			// empty columns leave no cells in series.csv
			res.SetSeries(n, series[n])
		} else if v, ok := run.Flags[n]; ok {
			res.SetFlag(n, v)
		} else if v, ok := run.Labels[n]; ok {
			res.SetLabel(n, v)
		}
	}
	return run, res, nil
}

// Export is the single-document form of a run.
type Export struct {
	Run
	Result *calc.Result `json:"result"`
}

// ExportJSON writes a run and its full result as one JSON document.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	run, res, err := s.Restore(runID)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Export{Run: *run, Result: res})
}

// ExportFile is ExportJSON to a file path.
func (s *Store) ExportFile(path, runID string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := s.ExportJSON(f, runID); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
