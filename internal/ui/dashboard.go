package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-sunpos/internal/astro"
	"github.com/litescript/ls-sunpos/internal/track"
)

// Styles for the dashboard
var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("60")).
			Padding(0, 2)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")).
			Width(12)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	eventTimeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("60"))
)

// stateStyles colors the twilight badge per band, darkest to brightest.
var stateStyles = map[astro.SunState]lipgloss.Style{
	astro.Night:                lipgloss.NewStyle().Foreground(lipgloss.Color("18")).Bold(true),
	astro.AstronomicalTwilight: lipgloss.NewStyle().Foreground(lipgloss.Color("61")).Bold(true),
	astro.NauticalTwilight:     lipgloss.NewStyle().Foreground(lipgloss.Color("67")).Bold(true),
	astro.CivilTwilight:        lipgloss.NewStyle().Foreground(lipgloss.Color("173")).Bold(true),
	astro.Day:                  lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true),
}

// DashboardModel is the main position readout view.
type DashboardModel struct {
	width    int
	height   int
	snapshot track.Snapshot
	trace    *track.SunTrace
}

// NewDashboardModel creates a new dashboard model.
func NewDashboardModel() DashboardModel {
	return DashboardModel{}
}

// SetSize updates the viewport size.
func (m DashboardModel) SetSize(width, height int) DashboardModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData updates the model with new data.
func (m DashboardModel) UpdateData(snapshot track.Snapshot) DashboardModel {
	m.snapshot = snapshot
	return m
}

// UpdateTrace updates the model with a recomputed trace.
func (m DashboardModel) UpdateTrace(trace *track.SunTrace) DashboardModel {
	m.trace = trace
	return m
}

// Update handles messages. The dashboard has no interactive state yet but
// keeps the sub-model shape of the other views.
func (m DashboardModel) Update(msg tea.Msg) (DashboardModel, tea.Cmd) {
	return m, nil
}

// View renders the dashboard.
func (m DashboardModel) View() string {
	if !m.snapshot.HasPosition {
		return "\n  Waiting for first position..."
	}

	left := m.renderPositionPanel()
	right := m.renderUpcomingPanel()

	row := lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)

	var b strings.Builder
	b.WriteString(row)
	b.WriteString("\n")
	b.WriteString(m.renderSparkline())
	b.WriteString("\n")
	b.WriteString(m.renderEvents())
	return b.String()
}

func (m DashboardModel) renderPositionPanel() string {
	pos := m.snapshot.Position
	dir := pos.Direction()
	state := pos.State()

	rows := []string{
		labelStyle.Render("Instant") + valueStyle.Render(pos.Instant.Format("2006-01-02 15:04:05 MST")),
		labelStyle.Render("Elevation") + valueStyle.Render(fmt.Sprintf("%+.2f°", pos.Elevation)),
		labelStyle.Render("Azimuth") + valueStyle.Render(fmt.Sprintf("%.2f°", pos.Azimuth)),
		labelStyle.Render("State") + stateStyles[state].Render(state.String()),
		labelStyle.Render("Direction") + valueStyle.Render(fmt.Sprintf("(%.3f, %.3f, %.3f)", dir.X, dir.Y, dir.Z)),
	}

	return panelStyle.Render(strings.Join(rows, "\n"))
}

func (m DashboardModel) renderUpcomingPanel() string {
	if m.trace == nil {
		return panelStyle.Render(uiDimStyle.Render("computing sun trace..."))
	}

	var rows []string

	if peak := m.trace.MaxElevation(); peak != nil {
		rows = append(rows,
			labelStyle.Render("Peak")+valueStyle.Render(
				fmt.Sprintf("%+.1f° at %s", peak.Elevation, peak.Time.Local().Format("15:04"))))
	}

	now := m.snapshot.Position.Instant
	count := 0
	for _, c := range m.trace.Crossings() {
		if !c.Time.After(now) || count >= 4 {
			continue
		}
		count++
		arrow := "↓"
		if c.Rising {
			arrow = "↑"
		}
		rows = append(rows,
			labelStyle.Render(c.Time.Local().Format("15:04"))+
				valueStyle.Render(fmt.Sprintf("%s %s", arrow, c.To))+
				uiDimStyle.Render(" in "+timeUntil(now, c.Time)))
	}

	if len(rows) == 0 {
		rows = append(rows, uiDimStyle.Render("no transitions in window"))
	}

	return panelStyle.Render(strings.Join(rows, "\n"))
}

// sparkRunes index elevation into eight vertical bar heights.
var sparkRunes = []rune("▁▂▃▄▅▆▇█")

// renderSparkline draws recent elevation history as a one-line sparkline.
func (m DashboardModel) renderSparkline() string {
	hist := m.snapshot.History
	if len(hist) < 2 {
		return ""
	}

	maxCols := m.width - 16
	if maxCols < 8 {
		maxCols = 8
	}
	if len(hist) > maxCols {
		hist = hist[len(hist)-maxCols:]
	}

	lo, hi := hist[0].Elevation, hist[0].Elevation
	for _, s := range hist {
		if s.Elevation < lo {
			lo = s.Elevation
		}
		if s.Elevation > hi {
			hi = s.Elevation
		}
	}

	span := hi - lo
	var b strings.Builder
	for _, s := range hist {
		idx := 0
		if span > 1e-9 {
			idx = int((s.Elevation - lo) / span * float64(len(sparkRunes)-1))
		}
		b.WriteRune(sparkRunes[idx])
	}

	return "  " + labelStyle.Render("Elevation") +
		valueStyle.Render(b.String()) +
		uiDimStyle.Render(fmt.Sprintf(" [%+.1f°..%+.1f°]", lo, hi))
}

// renderEvents lists the most recent twilight transitions, newest first.
func (m DashboardModel) renderEvents() string {
	events := m.snapshot.Events
	if len(events) == 0 {
		return ""
	}

	shown := 5
	if len(events) < shown {
		shown = len(events)
	}

	var b strings.Builder
	b.WriteString("  " + uiDimStyle.Render("Recent transitions") + "\n")
	for i := len(events) - 1; i >= len(events)-shown; i-- {
		e := events[i]
		b.WriteString(fmt.Sprintf("  %s %s %s → %s\n",
			eventTimeStyle.Render(e.Timestamp.Local().Format("15:04:05")),
			badgeForEvent(e.Type),
			e.FromName, e.ToName))
	}
	return b.String()
}

func badgeForEvent(t track.EventType) string {
	switch t {
	case track.EventSunrise:
		return stateStyles[astro.Day].Render("☀ sunrise")
	case track.EventSunset:
		return stateStyles[astro.CivilTwilight].Render("☽ sunset")
	default:
		return uiDimStyle.Render("· shift")
	}
}

// timeUntil formats the gap to a future instant compactly.
func timeUntil(from, to time.Time) string {
	d := to.Sub(from).Round(time.Minute)
	if d < 0 {
		return "past"
	}
	h := int(d.Hours())
	min := int(d.Minutes()) % 60
	if h == 0 {
		return fmt.Sprintf("%dm", min)
	}
	return fmt.Sprintf("%dh%02dm", h, min)
}
