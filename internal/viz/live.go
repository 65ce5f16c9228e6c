package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/avaldes/fieldsim/internal/laplace"
)

const (
	heatmapWidth  = 48
	graphWidth    = 60
	graphHeight   = 8
	historyWindow = 400
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(0, 2)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("82")).Bold(true)
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

type TickMsg time.Time

// Live is a bubbletea model that advances the relaxation a few sweeps per
// frame and shows the evolving potential alongside the residual history.
type Live struct {
	grid     *laplace.Grid
	solver   *laplace.Solver
	boundary laplace.Boundary

	tolerance     float64
	maxIter       int
	sweepsPerTick int

	iterations int
	residual   float64
	history    []float64

	running   bool
	converged bool
	exhausted bool
}

func NewLive(g *laplace.Grid, s *laplace.Solver, b laplace.Boundary, tolerance float64, maxIter, sweepsPerTick int) Live {
	if sweepsPerTick < 1 {
		sweepsPerTick = 1
	}
	return Live{
		grid:          g,
		solver:        s,
		boundary:      b,
		tolerance:     tolerance,
		maxIter:       maxIter,
		sweepsPerTick: sweepsPerTick,
		residual:      math.NaN(),
		history:       make([]float64, 0, historyWindow),
		running:       true,
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Live) Init() tea.Cmd {
	return tick()
}

func (m Live) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			if !m.done() {
				m.running = !m.running
			}
		case "s":
			if !m.running && !m.done() {
				m.step(1)
			}
		case "r":
			m.grid.Reset()
			m.grid.ApplyBoundary(m.boundary)
			m.iterations = 0
			m.residual = math.NaN()
			m.history = m.history[:0]
			m.converged = false
			m.exhausted = false
			m.running = true
		}
		return m, nil

	case TickMsg:
		if m.running && !m.done() {
			m.step(m.sweepsPerTick)
		}
		return m, tick()
	}

	return m, nil
}

func (m *Live) step(sweeps int) {
	for k := 0; k < sweeps; k++ {
		m.residual = m.solver.Sweep()
		m.iterations++
		m.history = append(m.history, m.residual)
		if len(m.history) > historyWindow {
			m.history = m.history[1:]
		}

		if m.residual < m.tolerance {
			m.converged = true
			m.running = false
			return
		}
		if m.iterations >= m.maxIter {
			m.exhausted = true
			m.running = false
			return
		}
	}
}

func (m Live) done() bool {
	return m.converged || m.exhausted
}

func (m Live) View() string {
	var sb strings.Builder

	sb.WriteString(headerStyle.Render(fmt.Sprintf("laplace relaxation (%s)", m.solver.Method())))
	sb.WriteByte('\n')

	heat := RenderHeatmap(m.grid.Potential(), heatmapWidth)

	min, max := laplace.Range(m.grid.Potential())
	stats := []string{
		row("grid", fmt.Sprintf("%d x %d", m.grid.Size(), m.grid.Size())),
		row("sweep", fmt.Sprintf("%d / %d", m.iterations, m.maxIter)),
		row("residual", formatResidual(m.residual)),
		row("tolerance", fmt.Sprintf("%.1e", m.tolerance)),
		row("potential", fmt.Sprintf("%.2f .. %.2f V", min, max)),
		row("status", m.status()),
	}

	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		heat,
		statsStyle.Render(strings.Join(stats, "\n")),
	))

	if len(m.history) > 1 {
		data := make([]float64, len(m.history))
		for i, r := range m.history {
			data[i] = math.Log10(r + 1e-300)
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(graphHeight),
			asciigraph.Width(graphWidth),
			asciigraph.Caption("log10 max interior change per sweep"),
		)
		sb.WriteString(graphStyle.Render(graph))
		sb.WriteByte('\n')
	}

	sb.WriteString(helpStyle.Render("space pause · s step · r reset · q quit"))
	sb.WriteByte('\n')
	return sb.String()
}

func (m Live) status() string {
	switch {
	case m.converged:
		return doneStyle.Render("converged")
	case m.exhausted:
		return failStyle.Render("budget exhausted")
	case m.running:
		return "relaxing"
	default:
		return "paused"
	}
}

func row(label, value string) string {
	return labelStyle.Render(label) + valueStyle.Render(value)
}

func formatResidual(r float64) string {
	if math.IsNaN(r) {
		return "-"
	}
	return fmt.Sprintf("%.3e", r)
}
