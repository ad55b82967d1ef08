package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/mechsolver/internal/calc"
	"github.com/san-kum/mechsolver/internal/catalog"
	"github.com/san-kum/mechsolver/internal/report"
	"github.com/san-kum/mechsolver/internal/storage"
)

var (
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	green   = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	red     = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
)

var moduleInfo = map[string]string{
	"kinematics": "motion, projectiles, linkages",
	"stress":     "strength of materials",
	"fluids":     "pipes, channels, Bernoulli",
	"thermo":     "gases, heat, cycles",
	"machine":    "gears, shafts, bearings",
	"materials":  "material table lookups",
}

type state int

const (
	stateModules state = iota
	stateFormulas
	stateParams
	stateResult
)

type Options struct {
	Registry  *catalog.Registry
	Store     *storage.Store
	Precision int
}

type model struct {
	opts  Options
	state state

	modules   []string
	modCursor int

	formulas  []*catalog.Formula
	fCursor   int
	formula   *catalog.Formula
	inputs    map[string]string
	pCursor   int
	editing   bool
	editBuf   string
	lastError string

	result  *calc.Result
	savedID string

	width  int
	height int
}

func NewInteractiveApp(opts Options) *model {
	if opts.Registry == nil {
		opts.Registry = catalog.NewRegistry()
	}
	return &model{
		opts:    opts,
		state:   stateModules,
		modules: opts.Registry.Modules(),
		width:   80,
		height:  24,
	}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	switch m.state {
	case stateModules:
		return m.modulesKey(msg)
	case stateFormulas:
		return m.formulasKey(msg)
	case stateParams:
		return m.paramsKey(msg)
	case stateResult:
		return m.resultKey(msg)
	}
	return m, nil
}

func (m model) modulesKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.modCursor > 0 {
			m.modCursor--
		}
	case "down", "j":
		if m.modCursor < len(m.modules)-1 {
			m.modCursor++
		}
	case "enter", " ", "right", "l":
		if len(m.modules) == 0 {
			return m, nil
		}
		m.formulas = m.opts.Registry.Formulas(m.modules[m.modCursor])
		m.fCursor = 0
		m.state = stateFormulas
	}
	return m, nil
}

func (m model) formulasKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "left", "h":
		m.state = stateModules
	case "up", "k":
		if m.fCursor > 0 {
			m.fCursor--
		}
	case "down", "j":
		if m.fCursor < len(m.formulas)-1 {
			m.fCursor++
		}
	case "enter", " ", "right", "l":
		if len(m.formulas) == 0 {
			return m, nil
		}
		m.selectFormula(m.formulas[m.fCursor])
	}
	return m, nil
}

func (m *model) selectFormula(f *catalog.Formula) {
	m.formula = f
	m.inputs = make(map[string]string, len(f.Params))
	for _, p := range f.Params {
		m.inputs[p.Name] = p.DefaultText()
	}
	m.pCursor = 0
	m.editing = false
	m.lastError = ""
	m.state = stateParams
}

func (m model) paramsKey(msg tea.KeyMsg) (model, tea.Cmd) {
	params := m.formula.Params
	if m.editing {
		p := params[m.pCursor]
		switch msg.String() {
		case "enter":
			prev := m.inputs[p.Name]
			m.inputs[p.Name] = strings.TrimSpace(m.editBuf)
			if _, err := m.formula.Resolve(m.args()); err != nil {
				m.inputs[p.Name] = prev
				m.lastError = err.Error()
			} else {
				m.lastError = ""
			}
			m.editing = false
			m.editBuf = ""
		case "esc":
			m.editing = false
			m.editBuf = ""
		case "backspace":
			if len(m.editBuf) > 0 {
				m.editBuf = m.editBuf[:len(m.editBuf)-1]
			}
		default:
			if s := msg.String(); len(s) == 1 && acceptRune(p.Kind, s[0]) {
				m.editBuf += s
			}
		}
		return m, nil
	}

	switch msg.String() {
	case "q", "esc":
		m.state = stateFormulas
	case "up", "k":
		if m.pCursor > 0 {
			m.pCursor--
		}
	case "down", "j":
		if m.pCursor < len(params)-1 {
			m.pCursor++
		}
	case "left", "h", "right", "l":
		if len(params) > 0 && params[m.pCursor].Kind == catalog.Choice {
			step := 1
			if k := msg.String(); k == "left" || k == "h" {
				step = -1
			}
			m.cycleChoice(params[m.pCursor], step)
		}
	case "enter", " ":
		if len(params) == 0 || params[m.pCursor].Kind == catalog.Choice {
			return m, nil
		}
		m.editing = true
		m.editBuf = m.inputs[params[m.pCursor].Name]
	case "x":
		if len(params) > 0 && params[m.pCursor].Optional {
			m.inputs[params[m.pCursor].Name] = ""
		}
	case "r":
		m.selectFormula(m.formula)
	case "c", "s":
		res, err := m.formula.Eval(m.args())
		if err != nil {
			m.lastError = err.Error()
			return m, nil
		}
		m.lastError = ""
		m.result = res
		m.savedID = ""
		m.state = stateResult
	}
	return m, nil
}

func (m *model) cycleChoice(p catalog.Param, step int) {
	cur := 0
	for i, c := range p.Choices {
		if c == m.inputs[p.Name] {
			cur = i
		}
	}
	n := len(p.Choices)
	m.inputs[p.Name] = p.Choices[((cur+step)%n+n)%n]
}

func acceptRune(kind catalog.ParamKind, c byte) bool {
	switch {
	case c >= '0' && c <= '9', c == '.', c == '-', c == '+', c == 'e', c == 'E':
		return true
	case c == ',' || c == ' ':
		return kind == catalog.Series
	}
	return false
}

// args turns the edit fields into catalog arguments. Blank fields are left
// out so that defaults and unknowns apply.
func (m model) args() catalog.Args {
	args := catalog.Args{}
	for k, v := range m.inputs {
		if strings.TrimSpace(v) != "" {
			args[k] = v
		}
	}
	return args
}

func (m model) resultKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc", "left", "h", "e":
		m.state = stateParams
	case "m":
		m.state = stateModules
	case "w":
		if m.opts.Store == nil || m.savedID != "" {
			return m, nil
		}
		id, err := m.opts.Store.Save(m.formula.ID(), m.args(), m.result)
		if err != nil {
			m.lastError = err.Error()
			return m, nil
		}
		m.savedID = id
	}
	return m, nil
}

func (m model) View() string {
	switch m.state {
	case stateModules:
		return m.viewModules()
	case stateFormulas:
		return m.viewFormulas()
	case stateParams:
		return m.viewParams()
	case stateResult:
		return m.viewResult()
	}
	return ""
}

func (m model) viewModules() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("         " + cyan.Render("m e c h s o l v e r") + "\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("\n")

	for i, name := range m.modules {
		desc := moduleInfo[name]
		if i == m.modCursor {
			b.WriteString("      " + cyan.Render("▸ ") + white.Render(fmt.Sprintf("%-14s", name)) + dim.Render(desc) + "\n")
		} else {
			b.WriteString("        " + dim.Render(fmt.Sprintf("%-14s", name)) + dimmer.Render(desc) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(dim.Render("      ↑↓ select   enter open   q quit") + "\n")
	return b.String()
}

func (m model) viewFormulas() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString("      " + cyan.Render(m.modules[m.modCursor]) + "\n")
	b.WriteString(dimmer.Render("      "+strings.Repeat("─", 30)) + "\n\n")

	for i, f := range m.formulas {
		if i == m.fCursor {
			b.WriteString("      " + cyan.Render("▸ ") + white.Render(fmt.Sprintf("%-24s", f.Name)) + dim.Render(f.Title) + "\n")
		} else {
			b.WriteString("        " + dim.Render(fmt.Sprintf("%-24s", f.Name)) + dimmer.Render(f.Title) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(dim.Render("      ↑↓ select   enter open   esc back") + "\n")
	return b.String()
}

func (m model) viewParams() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString("      " + cyan.Render(m.formula.ID()) + "  " + dim.Render(m.formula.Title) + "\n")
	b.WriteString(dimmer.Render("      "+strings.Repeat("─", 40)) + "\n\n")

	for i, p := range m.formula.Params {
		val := m.inputs[p.Name]
		switch {
		case m.editing && i == m.pCursor:
			val = m.editBuf + "▋"
		case p.Kind == catalog.Choice:
			val = "‹ " + val + " ›"
		case val == "" && p.Optional:
			val = "?"
		}
		name := fmt.Sprintf("%-26s", p.Name)
		unit := ""
		if p.Unit != "" {
			unit = " " + p.Unit
		}
		if i == m.pCursor {
			b.WriteString("      " + cyan.Render("▸ ") + white.Render(name) + magenta.Render(val) + dim.Render(unit) + "\n")
		} else {
			b.WriteString("        " + dim.Render(name) + dim.Render(val+unit) + "\n")
		}
	}

	if m.lastError != "" {
		b.WriteString("\n      " + red.Render(m.lastError) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(dim.Render("      ↑↓ select  enter edit  ←→ choice  x clear  c compute  r reset  esc back") + "\n")
	return b.String()
}

func (m model) viewResult() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString("      " + green.Render("●") + " " + cyan.Render(m.formula.ID()) + "\n")
	b.WriteString(dimmer.Render("      "+strings.Repeat("─", 40)) + "\n\n")

	for _, name := range m.result.Names() {
		v, _ := m.result.Get(name)
		b.WriteString("        " + dim.Render(fmt.Sprintf("%-28s", name)) + white.Render(report.FormatValue(v, m.opts.Precision)) + "\n")
		if v.Kind == calc.KindSeries && len(v.Series) > 1 {
			b.WriteString("        " + strings.Repeat(" ", 28) + cyan.Render(sparkline(v.Series, 32)) + "\n")
		}
	}

	if m.savedID != "" {
		b.WriteString("\n      " + green.Render("saved as "+m.savedID) + "\n")
	}
	if m.lastError != "" {
		b.WriteString("\n      " + red.Render(m.lastError) + "\n")
	}

	keys := "      esc edit   m modules   q quit"
	if m.opts.Store != nil {
		keys = "      esc edit   w save   m modules   q quit"
	}
	b.WriteString("\n" + dim.Render(keys) + "\n")
	return b.String()
}

func sparkline(data []float64, width int) string {
	if len(data) == 0 {
		return ""
	}
	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
	minVal, maxVal := data[0], data[0]
	for _, v := range data {
		minVal = min(minVal, v)
		maxVal = max(maxVal, v)
	}
	rang := maxVal - minVal
	if rang == 0 {
		rang = 1
	}
	step := max(len(data)/width, 1)
	var sb strings.Builder
	for i := 0; i < width && i*step < len(data); i++ {
		idx := int((data[i*step] - minVal) / rang * 7)
		sb.WriteRune(chars[max(0, min(idx, 7))])
	}
	return sb.String()
}

func RunInteractive(opts Options) error {
	p := tea.NewProgram(NewInteractiveApp(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
