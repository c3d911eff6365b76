// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-sunpos/internal/config"
	"github.com/litescript/ls-sunpos/internal/track"
	"github.com/litescript/ls-sunpos/internal/version"
)

// ViewMode represents the current UI view.
type ViewMode int

const (
	ViewDashboard ViewMode = iota
	ViewSky
)

// Msg types for Bubble Tea
type (
	// TickMsg triggers periodic UI updates.
	TickMsg time.Time

	// DataUpdateMsg signals a freshly computed position is available.
	DataUpdateMsg struct {
		Snapshot track.Snapshot
	}

	// TraceUpdateMsg signals a recomputed sun trace is available.
	TraceUpdateMsg struct {
		Trace *track.SunTrace
	}

	// ErrorMsg signals a computation error.
	ErrorMsg struct {
		Error error
	}
)

// Model is the root Bubble Tea model.
type Model struct {
	state *track.Manager

	viewMode ViewMode
	width    int
	height   int
	ready    bool

	dashboard DashboardModel
	skyView   SkyViewModel

	snapshot track.Snapshot
	lastErr  error
}

// New creates a new root UI model.
func New(stateMgr *track.Manager, sky config.SkyConfig) Model {
	return Model{
		state:     stateMgr,
		viewMode:  ViewDashboard,
		dashboard: NewDashboardModel(),
		skyView:   NewSkyViewModel(sky),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "1", "d":
			m.viewMode = ViewDashboard
		case "2", "s":
			m.viewMode = ViewSky
		case "tab":
			m.viewMode = (m.viewMode + 1) % 2
		default:
			cmds = append(cmds, m.updateActiveView(msg))
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		// Header takes 3 lines, footer 2
		contentHeight := msg.Height - 5
		m.dashboard = m.dashboard.SetSize(msg.Width, contentHeight)
		m.skyView = m.skyView.SetSize(msg.Width, contentHeight)

	case TickMsg:
		cmds = append(cmds, tickCmd())
		m.snapshot = m.state.Snapshot()
		m.dashboard = m.dashboard.UpdateData(m.snapshot)
		m.skyView = m.skyView.UpdateData(m.snapshot)

	case DataUpdateMsg:
		m.snapshot = msg.Snapshot
		m.lastErr = nil
		m.dashboard = m.dashboard.UpdateData(m.snapshot)
		m.skyView = m.skyView.UpdateData(m.snapshot)

	case TraceUpdateMsg:
		m.dashboard = m.dashboard.UpdateTrace(msg.Trace)
		m.skyView = m.skyView.UpdateTrace(msg.Trace)

	case ErrorMsg:
		m.lastErr = msg.Error
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) updateActiveView(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.viewMode {
	case ViewDashboard:
		m.dashboard, cmd = m.dashboard.Update(msg)
	case ViewSky:
		m.skyView, cmd = m.skyView.Update(msg)
	}
	return cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var content string
	switch m.viewMode {
	case ViewDashboard:
		content = m.dashboard.View()
	case ViewSky:
		content = m.skyView.View()
	}

	return m.renderHeader() + "\n" + content + "\n" + m.renderFooter()
}

var (
	uiTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	uiDimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	uiActiveStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220"))
	uiErrorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

func (m Model) renderHeader() string {
	title := uiTitleStyle.Render("ls-sunpos") +
		uiDimStyle.Render(" v"+version.Version+" — solar position tracker")

	site := uiDimStyle.Render(fmt.Sprintf("%s (%.4f°, %.4f°)",
		m.snapshot.Site.Name, m.snapshot.Site.Latitude, m.snapshot.Site.Longitude))

	return "  " + title + "  " + site + "\n" + m.renderTabs() + "\n"
}

func (m Model) renderTabs() string {
	tabs := []string{"[1] Dashboard", "[2] Sky"}

	var parts []string
	for i, tab := range tabs {
		if ViewMode(i) == m.viewMode {
			parts = append(parts, uiActiveStyle.Render("▶ "+tab))
		} else {
			parts = append(parts, uiDimStyle.Render("  "+tab))
		}
	}
	return "  " + strings.Join(parts, "  ")
}

func (m Model) renderFooter() string {
	var status string
	switch {
	case m.lastErr != nil:
		status = uiErrorStyle.Render("ERROR: " + m.lastErr.Error())
	case m.snapshot.LastError != nil:
		status = uiErrorStyle.Render("ERROR: " + m.snapshot.LastError.Error())
	case m.snapshot.HasPosition:
		status = uiDimStyle.Render("updated " + m.snapshot.LastUpdate.Format("15:04:05"))
	default:
		status = uiDimStyle.Render("computing...")
	}

	var help string
	if m.viewMode == ViewSky {
		help = uiDimStyle.Render("h/l: pan | j/k: zoom | tab: switch view | q: quit")
	} else {
		help = uiDimStyle.Render("tab: switch view | q: quit")
	}

	return "  " + status + "  " + uiDimStyle.Render("|") + "  " + help
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// SendDataUpdate builds a command delivering a new snapshot to the UI.
func SendDataUpdate(snapshot track.Snapshot) tea.Cmd {
	return func() tea.Msg {
		return DataUpdateMsg{Snapshot: snapshot}
	}
}

// SendError builds a command delivering an error to the UI.
func SendError(err error) tea.Cmd {
	return func() tea.Msg {
		return ErrorMsg{Error: err}
	}
}
