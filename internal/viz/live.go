// Package viz renders simulation output in the terminal: a live
// surface-temperature view driven by bubbletea and static ascii charts of
// recorded runs.
package viz

import (
	"fmt"
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/regolith-sim/regolith/internal/kepler"
	"github.com/regolith-sim/regolith/internal/planet"
	"github.com/regolith-sim/regolith/internal/thermal"
)

const (
	graphWidth      = 80
	graphHeight     = 12
	historyCapacity = 240
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	frostStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("159")).Bold(true)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Live is a bubbletea model that steps a layer stack one simulated hour per
// frame and graphs the rolling surface temperature.
type Live struct {
	body         *planet.Body
	stack        *thermal.Stack
	daysPerYear  float64
	stepsPerHour int

	day     int
	hour    int
	history []float64
	running bool
	err     error
}

func NewLive(body *planet.Body, stack *thermal.Stack, ref planet.Reference, stepsPerHour int) Live {
	return Live{
		body:         body,
		stack:        stack,
		daysPerYear:  body.DaysPerLocalYear(ref),
		stepsPerHour: stepsPerHour,
		history:      make([]float64, 0, historyCapacity),
		running:      true,
	}
}

func (m Live) Init() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Live) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		}
	case TickMsg:
		if m.running && m.err == nil {
			m.stepHour()
		}
		return m, tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

// stepHour advances the stack through one simulated hour's substeps.
func (m *Live) stepHour() {
	stepSeconds := 3600 / float64(m.stepsPerHour)
	for sub := 0; sub < m.stepsPerHour; sub++ {
		localTime := float64(m.hour) + float64(sub)/float64(m.stepsPerHour)
		elapsed := float64(m.day) + localTime/24
		if _, err := m.stack.AdvanceOneStep(m.trueLongitude(elapsed), localTime, stepSeconds, nil); err != nil {
			m.err = err
			return
		}
	}

	m.history = append(m.history, m.stack.Temperature(0))
	if len(m.history) > historyCapacity {
		m.history = m.history[1:]
	}

	m.hour++
	if m.hour == 24 {
		m.hour = 0
		m.day++
	}
}

func (m *Live) trueLongitude(elapsedDays float64) float64 {
	mean := kepler.MeanAnomaly(elapsedDays / m.daysPerYear)
	eccentric := kepler.EccentricAnomaly(mean, m.body.Eccentricity)
	anomaly := kepler.TrueAnomaly(eccentric, m.body.Eccentricity)
	return kepler.TrueLongitude(anomaly, m.body.LongitudeOfPerihelion)
}

func (m Live) View() string {
	header := headerStyle.Render(fmt.Sprintf("%s surface temperature, latitude %.1f deg",
		m.body.Name, m.stack.Latitude()*180/math.Pi))

	if m.err != nil {
		return header + "\n" + valueStyle.Render(fmt.Sprintf("simulation diverged: %v", m.err)) +
			helpStyle.Render("\nq quit")
	}

	elapsed := float64(m.day) + float64(m.hour)/24
	ls := m.trueLongitude(elapsed) * 180 / math.Pi

	var rows string
	rows += labelStyle.Render("sol") + valueStyle.Render(fmt.Sprintf("%d, hour %02d", m.day, m.hour)) + "\n"
	rows += labelStyle.Render("Ls") + valueStyle.Render(fmt.Sprintf("%.1f deg", ls)) + "\n"
	rows += labelStyle.Render("surface") + valueStyle.Render(fmt.Sprintf("%.1f K", m.stack.Temperature(0))) + "\n"
	rows += labelStyle.Render("bottom") + valueStyle.Render(fmt.Sprintf("%.1f K", m.stack.Temperature(m.stack.NumLayers()-1))) + "\n"
	if frost := m.stack.Condensate(); frost > 0 {
		rows += labelStyle.Render("frost") + frostStyle.Render(fmt.Sprintf("%.2f kg/m2", frost)) + "\n"
	}

	graph := ""
	if len(m.history) >= 2 {
		graph = graphStyle.Render(asciigraph.Plot(m.history,
			asciigraph.Height(graphHeight),
			asciigraph.Width(graphWidth),
			asciigraph.Caption("surface temperature (K), last 10 sols")))
	}

	state := "running"
	if !m.running {
		state = "paused"
	}
	help := helpStyle.Render(fmt.Sprintf("space pause/resume (%s), q quit", state))

	return header + "\n" + rows + graph + help + "\n"
}
