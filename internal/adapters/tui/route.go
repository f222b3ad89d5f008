// Package tui implements the interactive route-plan viewer behind
// `route --interactive`: a scrollable list of RouteStep rows with a
// lipgloss heat gauge per row (fuel is shown as a number only), following the teacher's bubbletea
// MVU model (single Model struct, Init/Update/View).
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/Scetrov/evefrontier-routecore/internal/domain/costmodel"
	"github.com/Scetrov/evefrontier-routecore/internal/domain/routing"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	headerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true)
	warnStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	criticalStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	gaugeFillCh   = "█"
	gaugeEmptyCh  = "░"
)

// Model is the bubbletea model for one RoutePlan.
type Model struct {
	plan     *routing.RoutePlan
	cursor   int
	height   int
	width    int
	quitting bool
}

// New builds a Model ready to pass to tea.NewProgram.
func New(plan *routing.RoutePlan) Model {
	return Model{plan: plan, height: 24, width: 80}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.quitting = true
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.plan.Steps)-1 {
				m.cursor++
			}
		}
	}
	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Route Plan — %d steps, objective cost %.2f", len(m.plan.Steps), m.plan.ObjectiveCost)))
	b.WriteString("\n")
	b.WriteString(headerStyle.Render(fmt.Sprintf("%-20s %10s %10s %8s %8s  %s", "System", "Dist(ly)", "Fuel", "Heat", "Cooldown", "Heat gauge")))
	b.WriteString("\n")

	for i, step := range m.plan.Steps {
		line := fmt.Sprintf("%-20s %10s %10.1f %8.0f %8s  %s",
			step.Name,
			humanize.FormatFloat("#,###.##", step.CumDistance),
			step.CumFuel,
			step.CumHeat,
			costmodel.FormatCooldown(step.CooldownSeconds),
			heatGauge(step.CumHeat),
		)
		if len(step.Warnings) > 0 {
			line += " " + warningBadges(step.Warnings)
		}
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	b.WriteString(headerStyle.Render("↑/↓ navigate · q/esc quit"))
	return b.String()
}

func heatGauge(heat float64) string {
	const width = 10
	const scaleMax = 150.0 // heat units; the gauge is full at HeatCritical
	filled := int((heat / scaleMax) * width)
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	return strings.Repeat(gaugeFillCh, filled) + strings.Repeat(gaugeEmptyCh, width-filled)
}

func warningBadges(warnings []routing.Warning) string {
	var parts []string
	for _, w := range warnings {
		switch w {
		case routing.WarnCoolingCritical:
			parts = append(parts, criticalStyle.Render("[CRITICAL]"))
		default:
			parts = append(parts, warnStyle.Render("["+w.String()+"]"))
		}
	}
	return strings.Join(parts, " ")
}

// Run starts the bubbletea program for plan and blocks until the user quits.
func Run(plan *routing.RoutePlan) error {
	_, err := tea.NewProgram(New(plan)).Run()
	return err
}
