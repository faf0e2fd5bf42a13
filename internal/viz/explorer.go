package viz

import (
	"context"
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/jamesmaino/DEBtutorial/internal/config"
	"github.com/jamesmaino/DEBtutorial/internal/deb"
	"github.com/jamesmaino/DEBtutorial/internal/engine"
	"github.com/jamesmaino/DEBtutorial/internal/experiment"
)

const (
	plotWidth  = 72
	plotHeight = 16
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(18)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	activeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	curveStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	ghostStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(0, 2).Width(46)
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
)

type paramField struct {
	key   string
	label string
}

var explorerParams = []paramField{
	{"v0", "V0"},
	{"p_am", "p_Am"},
	{"e_g", "E_G"},
	{"v", "v"},
	{"p_m", "p_M"},
	{"f", "f"},
}

// Explorer is a bubbletea model that re-simulates the growth trajectory on
// every parameter adjustment. The previous run stays in the model and is
// drawn dim under the current curve, so a keystroke shows both where the
// curve was and where it moved to.
type Explorer struct {
	cfg  config.Config
	base config.Config

	selected   int
	curr       *engine.Result
	prev       *engine.Result
	lastAdjust string
	runErr     string
}

// NewExplorer runs the starting configuration once and returns a model
// ready to hand to bubbletea.
func NewExplorer(cfg *config.Config) (Explorer, error) {
	e := Explorer{cfg: *cfg, base: *cfg}
	if err := e.simulate(); err != nil {
		return Explorer{}, err
	}
	return e, nil
}

func (e Explorer) Init() tea.Cmd { return nil }

func (e Explorer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return e, nil
	}
	switch key.String() {
	case "q", "ctrl+c":
		return e, tea.Quit
	case "tab":
		e.selected = (e.selected + 1) % len(explorerParams)
	case "shift+tab":
		e.selected = (e.selected + len(explorerParams) - 1) % len(explorerParams)
	case "up", "k":
		e.adjust(0.05)
	case "down", "j":
		e.adjust(-0.05)
	case "shift+up", "K":
		e.adjust(0.01)
	case "shift+down", "J":
		e.adjust(-0.01)
	case "s":
		e.toggleSeasonal()
	case "r":
		e.reset()
	}
	return e, nil
}

// adjust bumps the selected parameter by the given fraction and re-runs the
// scenario on the full grid.
func (e *Explorer) adjust(pct float64) {
	p := explorerParams[e.selected]
	old := e.paramValue(p.key)
	val := clampParam(p.key, old*(1+pct))
	if val == old {
		return
	}
	e.setParam(p.key, val)
	e.lastAdjust = fmt.Sprintf("%s %+.0f%% -> %.4g", p.label, pct*100, val)
	e.resimulate()
}

func (e *Explorer) toggleSeasonal() {
	if e.seasonal() {
		e.cfg.Forcing = config.ForcingConfig{Kind: "constant"}
	} else {
		fc := e.base.Forcing
		if fc.Kind != "seasonal" {
			fc = config.ForcingConfig{
				Kind:      "seasonal",
				Mean:      e.cfg.Params.F,
				Amplitude: 0.1,
				Period:    365,
			}
		}
		e.cfg.Forcing = fc
	}
	e.lastAdjust = "forcing -> " + e.describeForcing()
	e.resimulate()
}

func (e *Explorer) reset() {
	e.cfg = e.base
	e.lastAdjust = ""
	e.resimulate()
	e.prev = nil
}

func (e *Explorer) seasonal() bool { return e.cfg.Forcing.Kind == "seasonal" }

// simulate runs the current configuration. The old curve is kept for the
// overlay only when the new run succeeds.
func (e *Explorer) simulate() error {
	exp, err := experiment.New(&e.cfg)
	if err != nil {
		return err
	}
	res, err := exp.Run(context.Background())
	if err != nil {
		return err
	}
	e.prev = e.curr
	e.curr = res
	return nil
}

func (e *Explorer) resimulate() {
	if err := e.simulate(); err != nil {
		e.runErr = err.Error()
		return
	}
	e.runErr = ""
}

func paramOf(cfg *config.Config, key string) float64 {
	switch key {
	case "v0":
		return cfg.Init.V0
	case "p_am":
		return cfg.Params.PAm
	case "e_g":
		return cfg.Params.EG
	case "v":
		return cfg.Params.V
	case "p_m":
		return cfg.Params.PM
	case "f":
		if cfg.Forcing.Kind == "seasonal" {
			return cfg.Forcing.Mean
		}
		return cfg.Params.F
	}
	return 0
}

func (e *Explorer) paramValue(key string) float64 { return paramOf(&e.cfg, key) }

// setParam writes a parameter back into the configuration. Under seasonal
// forcing the f key drives the seasonal mean, with params.f kept in sync so
// reference quantities follow the food level.
func (e *Explorer) setParam(key string, val float64) {
	switch key {
	case "v0":
		e.cfg.Init.V0 = val
	case "p_am":
		e.cfg.Params.PAm = val
	case "e_g":
		e.cfg.Params.EG = val
	case "v":
		e.cfg.Params.V = val
	case "p_m":
		e.cfg.Params.PM = val
	case "f":
		e.cfg.Params.F = val
		if e.seasonal() {
			e.cfg.Forcing.Mean = val
		}
	}
}

// clampParam keeps multiplicative bumps inside the valid domain: the
// functional response saturates at 1.
func clampParam(key string, v float64) float64 {
	if key == "f" && v > 1 {
		return 1
	}
	return v
}

// gauge renders a bar of val against twice its starting value, so the
// needle sits mid-bar before any adjustment.
func gauge(val, base float64, width int) string {
	ratio := 0.0
	if base > 0 {
		ratio = val / (2 * base)
	}
	if ratio > 1 {
		ratio = 1
	} else if ratio < 0 {
		ratio = 0
	}
	filled := int(ratio * float64(width))
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("=", filled) + strings.Repeat("-", width-filled) + "]"
}

func (e Explorer) View() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("DEB GROWTH EXPLORER") + "\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		canvasStyle.Render(e.renderCurves()),
		statsStyle.Render(e.renderStats()),
	))
	b.WriteString(helpStyle.Render("tab:param  up/k:+5%  down/j:-5%  shift:1%  s:forcing  r:reset  q:quit"))
	return b.String()
}

func (e Explorer) renderCurves() string {
	if e.curr == nil {
		return "no run yet"
	}
	currV := e.curr.Component(deb.StateStructure)
	var prevV []float64
	if e.prev != nil {
		prevV = e.prev.Component(deb.StateStructure)
	}
	_, hi := Bounds(currV, prevV)
	hi *= 1.05
	if hi <= 0 {
		hi = 1
	}

	cc := NewCanvas(plotWidth, plotHeight)
	PlotSeries(cc, currV, 0, hi)
	var pc *Canvas
	if len(prevV) > 0 {
		pc = NewCanvas(plotWidth, plotHeight)
		PlotSeries(pc, prevV, 0, hi)
	}

	var b strings.Builder
	b.WriteString(valueStyle.Render(fmt.Sprintf("V %.3g", hi)) + "\n")
	b.WriteString(OverlayRender(cc, pc, curveStyle, ghostStyle))
	caption := fmt.Sprintf("structure V(t), t = 0..%.0f d", e.cfg.Grid.TEnd)
	if e.prev != nil {
		caption += "   " + ghostStyle.Render("previous run shown dim")
	}
	b.WriteString(caption + "\n")
	if e.curr.Truncated {
		note := "run truncated"
		if len(e.curr.Errors) > 0 {
			note = "truncated: " + e.curr.Errors[0].Error()
		}
		b.WriteString(warnStyle.Render(note) + "\n")
	}
	return b.String()
}

func (e Explorer) renderStats() string {
	var b strings.Builder
	p := e.cfg.Params

	b.WriteString(headerStyle.Render("SCENARIO") + "\n")
	b.WriteString(labelStyle.Render("forcing") + valueStyle.Render(e.describeForcing()) + "\n")
	b.WriteString(labelStyle.Render("grid") + valueStyle.Render(fmt.Sprintf("%.0f d / %d pts", e.cfg.Grid.TEnd, e.cfg.Grid.Points)) + "\n")
	b.WriteString(labelStyle.Render("integrator") + valueStyle.Render(e.cfg.Solver.Integrator) + "\n")
	b.WriteString(labelStyle.Render("V_inf") + valueStyle.Render(fmt.Sprintf("%.4g", p.UltimateStructure())) + "\n")
	b.WriteString(labelStyle.Render("e*") + valueStyle.Render(fmt.Sprintf("%.4g", p.EquilibriumDensity())) + "\n")
	vb := deb.NewVonBertalanffy(p, e.cfg.Init.V0)
	b.WriteString(labelStyle.Render("rB") + valueStyle.Render(fmt.Sprintf("%.3g /d", vb.RB)) + "\n")

	if e.curr != nil {
		tEnd, final := e.curr.Final()
		b.WriteString("\n" + headerStyle.Render("RUN") + "\n")
		b.WriteString(labelStyle.Render("final V") + valueStyle.Render(fmt.Sprintf("%.4g at t=%.0f", final[deb.StateStructure], tEnd)) + "\n")
		if vInf := p.UltimateStructure(); vInf > 0 {
			b.WriteString(labelStyle.Render("V/V_inf") + valueStyle.Render(fmt.Sprintf("%.4f", final[deb.StateStructure]/vInf)) + "\n")
		}
		b.WriteString(labelStyle.Render("steps") + valueStyle.Render(fmt.Sprintf("%d (+%d rejected)", e.curr.StepsTaken, e.curr.Rejected)) + "\n")
		keys := make([]string, 0, len(e.curr.Metrics))
		for k := range e.curr.Metrics {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			b.WriteString(labelStyle.Render(k) + valueStyle.Render(fmt.Sprintf("%.4g", e.curr.Metrics[k])) + "\n")
		}
		if e.curr.Len() > 1 {
			density := make([]float64, e.curr.Len())
			for i, x := range e.curr.States {
				if x[deb.StateStructure] > 0 {
					density[i] = x[deb.StateReserve] / x[deb.StateStructure]
				}
			}
			chart := asciigraph.Plot(density, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("reserve density e(t)"))
			b.WriteString("\n" + graphStyle.Render(chart) + "\n")
		}
	}

	b.WriteString("\n" + headerStyle.Render("PARAMETERS") + "\n")
	for i, pf := range explorerParams {
		val := e.paramValue(pf.key)
		line := fmt.Sprintf("%-5s %s %.4g", pf.label, gauge(val, paramOf(&e.base, pf.key), 10), val)
		if i == e.selected {
			b.WriteString(activeStyle.Render("> "+line) + "\n")
		} else {
			b.WriteString("  " + valueStyle.Render(line) + "\n")
		}
	}
	if e.lastAdjust != "" {
		b.WriteString(labelStyle.Render("last") + activeStyle.Render(e.lastAdjust) + "\n")
	}
	if e.runErr != "" {
		b.WriteString(warnStyle.Render("error: "+e.runErr) + "\n")
	}
	return b.String()
}

func (e Explorer) describeForcing() string {
	fc := e.cfg.Forcing
	if fc.Kind == "seasonal" {
		return fmt.Sprintf("seasonal f=%.2f amp %.2f period %.0f d", fc.Mean, fc.Amplitude, fc.Period)
	}
	return fmt.Sprintf("constant f=%.2f", e.cfg.Params.F)
}

// RunExplorer starts the interactive explorer on the given configuration.
func RunExplorer(cfg *config.Config) error {
	e, err := NewExplorer(cfg)
	if err != nil {
		return err
	}
	p := tea.NewProgram(e, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
