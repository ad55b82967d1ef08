package batch

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/san-kum/mechsolver/internal/calc"
)

// Reserved column names in job sheets. Every other header is a parameter.
const (
	colFormula = "formula"
	colName    = "name"
	colPreset  = "preset"
	colSave    = "save"
)

// SheetName maps a formula id to a worksheet name ("fluids/reynolds" ->
// "fluids.reynolds"); sheet names may not contain '/'.
func SheetName(formula string) string {
	return strings.ReplaceAll(formula, "/", ".")
}

func formulaFromSheet(sheet string) string {
	module, name, ok := strings.Cut(sheet, ".")
	if !ok {
		return ""
	}
	return module + "/" + name
}

// ReadXLSX reads jobs from every sheet of a workbook. The first row holds
// parameter names; each later row is one job. The formula comes from a
// "formula" column or else the sheet name. Blank cells take defaults.
func ReadXLSX(r io.Reader) ([]Job, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("batch: %w", err)
	}
	defer f.Close()

	var jobs []Job
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("batch: sheet %s: %w", sheet, err)
		}
		if len(rows) < 2 {
			continue
		}
		header := rows[0]
		for i, row := range rows[1:] {
			job, ok, err := rowJob(sheet, header, row)
			if err != nil {
				return nil, fmt.Errorf("batch: sheet %s row %d: %w", sheet, i+2, err)
			}
			if !ok {
				continue
			}
			if job.Name == "" {
				job.Name = fmt.Sprintf("%s!%d", sheet, i+2)
			}
			jobs = append(jobs, job)
		}
	}
	if len(jobs) == 0 {
		return nil, ErrEmptyPlan
	}
	return jobs, nil
}

func rowJob(sheet string, header, row []string) (Job, bool, error) {
	job := Job{Formula: formulaFromSheet(sheet), Args: map[string]any{}}
	blank := true
	for j, cell := range row {
		if j >= len(header) {
			break
		}
		cell = strings.TrimSpace(cell)
		if cell == "" {
			continue
		}
		blank = false
		switch key := strings.TrimSpace(header[j]); key {
		case "":
		case colFormula:
			job.Formula = cell
		case colName:
			job.Name = cell
		case colPreset:
			job.Preset = cell
		case colSave:
			job.Save = strings.EqualFold(cell, "true") || strings.EqualFold(cell, "yes") || cell == "1"
		default:
			job.Args[key] = cell
		}
	}
	if blank {
		return Job{}, false, nil
	}
	if job.Formula == "" {
		return Job{}, false, fmt.Errorf("no formula column and sheet name is not module.name")
	}
	return job, true, nil
}

// WriteXLSX writes outcomes to a workbook, one sheet per formula. Columns
// are the job name, the inputs, every scalar, flag and label output, and
// an error column. Series outputs are left out.
func WriteXLSX(w io.Writer, outcomes []Outcome) error {
	f := excelize.NewFile()
	defer f.Close()

	var order []string
	groups := make(map[string][]Outcome)
	for _, o := range outcomes {
		if _, ok := groups[o.Job.Formula]; !ok {
			order = append(order, o.Job.Formula)
		}
		groups[o.Job.Formula] = append(groups[o.Job.Formula], o)
	}

	for _, formula := range order {
		if err := writeSheet(f, SheetName(formula), groups[formula]); err != nil {
			return err
		}
	}
	if len(order) > 0 {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return err
		}
		f.SetActiveSheet(0)
	}
	_, err := f.WriteTo(w)
	return err
}

func writeSheet(f *excelize.File, sheet string, outcomes []Outcome) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	inputSet := map[string]bool{}
	var outputs []string
	outputSet := map[string]bool{}
	for _, o := range outcomes {
		for k := range o.Args {
			inputSet[k] = true
		}
		if o.Result == nil {
			continue
		}
		for _, n := range o.Result.Names() {
			if v, _ := o.Result.Get(n); v.Kind != calc.KindSeries && !outputSet[n] {
				outputSet[n] = true
				outputs = append(outputs, n)
			}
		}
	}
	inputs := make([]string, 0, len(inputSet))
	for k := range inputSet {
		inputs = append(inputs, k)
	}
	sort.Strings(inputs)

	header := []any{colName}
	for _, k := range inputs {
		header = append(header, k)
	}
	for _, n := range outputs {
		header = append(header, n)
	}
	header = append(header, "error")
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	for i, o := range outcomes {
		row := []any{o.Job.Name}
		for _, k := range inputs {
			row = append(row, cellValue(o.Args[k]))
		}
		for _, n := range outputs {
			row = append(row, resultCell(o.Result, n))
		}
		errText := ""
		if o.Err != nil {
			errText = o.Err.Error()
		}
		row = append(row, errText)

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func cellValue(v any) any {
	switch x := v.(type) {
	case nil:
		return ""
	case []float64, []any:
		return fmt.Sprint(x)
	}
	return v
}

func resultCell(res *calc.Result, name string) any {
	if res == nil {
		return ""
	}
	v, ok := res.Get(name)
	if !ok {
		return ""
	}
	switch v.Kind {
	case calc.KindFlag:
		return v.Flag
	case calc.KindLabel:
		return v.Label
	}
	return v.Scalar
}
