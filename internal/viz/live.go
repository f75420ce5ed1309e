package viz

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/hairsim/internal/config"
	"github.com/san-kum/hairsim/internal/engine"
	"github.com/san-kum/hairsim/internal/hair"
	"github.com/san-kum/hairsim/internal/metrics"
	"github.com/san-kum/hairsim/internal/scene"
)

const (
	width           = 80
	height          = 24
	historyCapacity = 600
)

type TickMsg time.Time

// Model renders a running simulation as a side-projected strand view
// with live metrics and tunable parameters.
type Model struct {
	sim *engine.Sim
	sc  *scene.Scene
	cfg *config.Config

	canvas  *Canvas
	gauge   progress.Model
	running bool
	swayOn  bool
	fps     int

	// camera follows the probe tip horizontally, smoothed so sway and
	// parameter kicks do not jerk the view
	camSpring  harmonica.Spring
	camX, camV float64

	energyHistory []float64
	strainHistory []float64

	paramKeys []string
	selected  int

	diverged bool
}

// NewModel wires a simulation and its authored scene into a live view.
func NewModel(sim *engine.Sim, sc *scene.Scene, cfg *config.Config) Model {
	fps := config.DefaultFPS

	gauge := progress.New(
		progress.WithScaledGradient("#5f87ff", "#00ffcc"),
		progress.WithoutPercentage(),
	)
	gauge.Width = 30

	return Model{
		sim:           sim,
		sc:            sc,
		cfg:           cfg,
		canvas:        NewCanvas(width, height),
		gauge:         gauge,
		running:       true,
		swayOn:        cfg.Sway.Amplitude != 0,
		fps:           fps,
		camSpring:     harmonica.NewSpring(harmonica.FPS(fps), 6.0, 0.8),
		energyHistory: make([]float64, 0, historyCapacity),
		strainHistory: make([]float64, 0, historyCapacity),
		paramKeys:     []string{"stiffness", "damping", "sway"},
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles input events and advances the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			if !m.diverged {
				m.running = !m.running
			}
		case "r":
			m.reset()
		case "s":
			m.swayOn = !m.swayOn
		case "tab":
			m.selected = (m.selected + 1) % len(m.paramKeys)
		case "up", "k":
			m.adjustParam(1.05)
		case "down", "j":
			m.adjustParam(0.95)
		}
	case TickMsg:
		if m.running {
			m.advance()
		}
		m.draw()
		return m, tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m *Model) adjustParam(factor float64) {
	par := m.sim.Params()
	switch m.paramKeys[m.selected] {
	case "stiffness":
		par.Stiffness *= factor
		m.sim.SetParams(par)
	case "damping":
		par.Damping *= factor
		m.sim.SetParams(par)
	case "sway":
		if m.sc.Sway.Amplitude == 0 && factor > 1 {
			m.sc.Sway.Amplitude = 0.05
			return
		}
		m.sc.Sway.Amplitude *= factor
	}
}

// advance steps the physics so that one frame covers 1/fps of
// simulated time, then samples the metric histories.
func (m *Model) advance() {
	par := m.sim.Params()
	steps := 1
	if par.Dt > 0 {
		steps = int(1 / (float64(m.fps) * par.Dt))
		if steps < 1 {
			steps = 1
		}
	}

	for i := 0; i < steps; i++ {
		if m.swayOn {
			m.sim.SetAnchors(m.sc.AnchorsAt(m.sim.Time()))
		}
		m.sim.Step()
	}

	state := m.sim.State()
	strands := m.sim.Strands()
	if !state.Finite(strands) {
		m.diverged = true
		m.running = false
		return
	}

	m.energyHistory = append(m.energyHistory, metrics.TotalEnergy(state, strands, par))
	if len(m.energyHistory) > historyCapacity {
		m.energyHistory = m.energyHistory[1:]
	}
	m.strainHistory = append(m.strainHistory, metrics.MeanStrain(state, strands, par.RestLength))
	if len(m.strainHistory) > historyCapacity {
		m.strainHistory = m.strainHistory[1:]
	}
}

// reset rebuilds the simulation from the authored scene.
func (m *Model) reset() {
	sim, err := engine.New(m.sc.Strands, m.sc.Initial, m.cfg.Params())
	if err != nil {
		return
	}
	m.sim = sim
	m.energyHistory = m.energyHistory[:0]
	m.strainHistory = m.strainHistory[:0]
	m.camX, m.camV = 0, 0
	m.diverged = false
	m.running = true
}

// draw projects every strand onto the XY plane, anchors up, gravity
// down.
func (m *Model) draw() {
	m.canvas.Clear()

	state := m.sim.State()
	strands := m.sim.Strands()
	if len(strands) == 0 {
		return
	}

	par := m.sim.Params()
	extent := par.RestLength * float64(hair.MaxStrandPoints)
	if extent <= 0 {
		extent = 1
	}
	cw, ch := m.canvas.Width*2, m.canvas.Height*4
	scale := float64(ch) * 0.85 / extent

	// camera target: the probe strand's tip
	target := strands[0].Anchor.X
	if n := strands[0].Length; n > 0 {
		target = state.Pos[hair.Index(0, n-1)].X
	}
	m.camX, m.camV = m.camSpring.Update(m.camX, m.camV, target)

	topY := strands[0].Anchor.Y
	for _, s := range strands {
		if s.Anchor.Y > topY {
			topY = s.Anchor.Y
		}
	}

	project := func(p hair.Vec3) (int, int) {
		x := cw/2 + int((p.X-m.camX)*scale)
		y := 4 + int((topY-p.Y)*scale)
		return x, y
	}

	for s, strand := range strands {
		xs := make([]int, 0, strand.Length+1)
		ys := make([]int, 0, strand.Length+1)

		ax, ay := project(strand.Anchor)
		xs, ys = append(xs, ax), append(ys, ay)
		for p := 0; p < strand.Length; p++ {
			px, py := project(state.Pos[hair.Index(s, p)])
			xs, ys = append(xs, px), append(ys, py)
		}

		m.canvas.DrawPolyline(xs, ys)
		m.canvas.DrawDot(ax, ay)
		if n := len(xs); n > 1 {
			m.canvas.DrawDot(xs[n-1], ys[n-1])
		}
	}
}

// View renders the TUI interface.
func (m Model) View() string {
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render("HAIR SIMULATION") + "\n")

	status := "RUNNING"
	if m.diverged {
		status = divergedStyle.Render("DIVERGED (r to reset)")
	} else if !m.running {
		status = "PAUSED"
	}
	s.WriteString(status + "\n\n")

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Energy"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	par := m.sim.Params()
	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2fs", m.sim.Time())) + "\n")
	s.WriteString(labelStyle.Render("Step") + valueStyle.Render(fmt.Sprintf("%d", m.sim.Steps())) + "\n")
	strain := 0.0
	if len(m.strainHistory) > 0 {
		strain = m.strainHistory[len(m.strainHistory)-1]
	}
	s.WriteString(labelStyle.Render("Strain") + valueStyle.Render(fmt.Sprintf("%.4f", strain)) + "\n")
	s.WriteString(labelStyle.Render("Strands") + valueStyle.Render(fmt.Sprintf("%d x %d pts", len(m.sim.Strands()), m.cfg.Points)) + "\n")

	s.WriteString("\nPARAMETERS\n")
	values := map[string]float64{
		"stiffness": par.Stiffness,
		"damping":   par.Damping,
		"sway":      m.sc.Sway.Amplitude,
	}
	for i, k := range m.paramKeys {
		line := fmt.Sprintf("%-10s %.3f", k, values[k])
		if i == m.selected {
			s.WriteString(activeParamStyle.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + labelStyle.Render(line) + "\n")
		}
	}

	if m.cfg.Steps > 0 {
		pct := float64(m.sim.Steps()) / float64(m.cfg.Steps)
		if pct > 1 {
			pct = 1
		}
		s.WriteString("\n" + m.gauge.ViewAs(pct) + "\n")
	}

	s.WriteString(helpStyle.Render("\nSP:Pause R:Reset Q:Quit\nTab:Select ↑↓:Tune S:Sway"))

	statsView := statsStyle.Render(s.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
}
