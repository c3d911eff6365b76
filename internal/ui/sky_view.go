package ui

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-sunpos/internal/astro"
	"github.com/litescript/ls-sunpos/internal/config"
	"github.com/litescript/ls-sunpos/internal/track"
)

const (
	glyphSun       = '☀'
	glyphTraceUp   = '•'
	glyphTraceDown = '·'

	colorSun     = "220"
	colorHorizon = "60"
	colorTrace   = "179"
	colorNight   = "61"
)

// panStep is the azimuth change per pan keypress, degrees.
const panStep = 15.0

// SkyViewModel renders the sun's arc across an az/el sky plot.
type SkyViewModel struct {
	width  int
	height int

	// Camera: center azimuth and top-of-plot elevation. These are
	// configuration-style angles: always clamped, never rejected.
	camAz float64
	topEl float64

	snapshot track.Snapshot
	trace    *track.SunTrace
}

// NewSkyViewModel creates a new sky view model from configured defaults.
func NewSkyViewModel(sky config.SkyConfig) SkyViewModel {
	topEl := config.ClampElevation(sky.CameraElevation)
	if topEl < 30 {
		topEl = 30
	}
	return SkyViewModel{
		camAz: config.ClampAzimuth(sky.CameraAzimuth),
		topEl: topEl,
	}
}

// SetSize updates the viewport size.
func (m SkyViewModel) SetSize(width, height int) SkyViewModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData updates with new data snapshot.
func (m SkyViewModel) UpdateData(snapshot track.Snapshot) SkyViewModel {
	m.snapshot = snapshot
	return m
}

// UpdateTrace updates with a recomputed sun trace.
func (m SkyViewModel) UpdateTrace(trace *track.SunTrace) SkyViewModel {
	m.trace = trace
	return m
}

// Update handles key messages for camera control.
func (m SkyViewModel) Update(msg tea.Msg) (SkyViewModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "h", "left":
		m.camAz = config.ClampAzimuth(m.camAz - panStep)
	case "l", "right":
		m.camAz = config.ClampAzimuth(m.camAz + panStep)
	case "k", "up":
		m.topEl = config.ClampElevation(m.topEl + 10)
		if m.topEl < 30 {
			m.topEl = 30
		}
	case "j", "down":
		m.topEl = config.ClampElevation(m.topEl - 10)
		if m.topEl < 30 {
			m.topEl = 30
		}
	}

	return m, nil
}

// View renders the sky view.
func (m SkyViewModel) View() string {
	if m.width < 20 || m.height < 8 {
		return "Sky view requires a larger terminal"
	}

	viewHeight := m.height - 3
	canvas := m.renderSkyCanvas(m.width, viewHeight)

	var b strings.Builder
	b.WriteString(m.renderViewHeader())
	b.WriteString("\n")
	b.WriteString(canvas)
	b.WriteString("\n")
	b.WriteString(m.renderViewStatus())
	return b.String()
}

func (m SkyViewModel) renderViewHeader() string {
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")).Render("Sky")
	cam := uiDimStyle.Render(fmt.Sprintf("center az %.0f° | top el %.0f°", m.camAz, m.topEl))
	return fmt.Sprintf("  %s | %s", title, cam)
}

func (m SkyViewModel) renderViewStatus() string {
	if !m.snapshot.HasPosition {
		return uiDimStyle.Render("  no position yet")
	}
	pos := m.snapshot.Position
	state := pos.State()
	return fmt.Sprintf("  %s  %s",
		uiActiveStyle.Render(fmt.Sprintf("%c el %+.1f° az %.1f°", stateGlyph(state), pos.Elevation, pos.Azimuth)),
		stateStyles[state].Render(state.String()))
}

// bottomEl is the lowest elevation shown, deep enough to display the full
// twilight ladder below the horizon.
const bottomEl = -30.0

// projectToScreen maps az/el (degrees) to canvas coordinates. The horizontal
// axis wraps the full 360° of azimuth centered on camAz; the vertical axis
// spans topEl down to bottomEl.
func (m SkyViewModel) projectToScreen(az, el float64, width, height int) (x, y int, visible bool) {
	dAz := math.Mod(az-m.camAz+540, 360) - 180 // [-180, 180)
	x = int((dAz/360 + 0.5) * float64(width-1))

	if el > m.topEl || el < bottomEl {
		return 0, 0, false
	}
	y = int((m.topEl - el) / (m.topEl - bottomEl) * float64(height-1))

	return x, y, x >= 0 && x < width && y >= 0 && y < height
}

func (m SkyViewModel) renderSkyCanvas(width, height int) string {
	canvas := make([][]rune, height)
	colors := make([][]lipgloss.Color, height)
	for y := 0; y < height; y++ {
		canvas[y] = make([]rune, width)
		colors[y] = make([]lipgloss.Color, width)
		for x := 0; x < width; x++ {
			canvas[y][x] = ' '
			colors[y][x] = "236"
		}
	}

	// Horizon line
	_, horizonY, _ := m.projectToScreen(m.camAz, 0, width, height)
	for x := 0; x < width; x++ {
		canvas[horizonY][x] = '─'
		colors[horizonY][x] = colorHorizon
	}

	// Cardinal directions on the horizon
	for _, c := range []struct {
		label rune
		az    float64
	}{{'N', 0}, {'E', 90}, {'S', 180}, {'W', 270}} {
		if x, y, ok := m.projectToScreen(c.az, 0, width, height); ok {
			canvas[y][x] = c.label
			colors[y][x] = "250"
		}
	}

	// Sun arc from the trace
	if m.trace != nil {
		for _, s := range m.trace.Samples {
			x, y, ok := m.projectToScreen(s.Azimuth, s.Elevation, width, height)
			if !ok || canvas[y][x] != ' ' {
				continue
			}
			if s.Elevation >= 0 {
				canvas[y][x] = glyphTraceUp
				colors[y][x] = colorTrace
			} else {
				canvas[y][x] = glyphTraceDown
				colors[y][x] = colorNight
			}
		}
	}

	// Current sun on top of everything
	if m.snapshot.HasPosition {
		pos := m.snapshot.Position
		if x, y, ok := m.projectToScreen(pos.Azimuth, pos.Elevation, width, height); ok {
			canvas[y][x] = glyphSun
			colors[y][x] = colorSun
		}
	}

	// Render with per-cell colors, batching runs of the same color.
	var b strings.Builder
	for y := 0; y < height; y++ {
		var run strings.Builder
		runColor := colors[y][0]
		flush := func() {
			if run.Len() > 0 {
				b.WriteString(lipgloss.NewStyle().Foreground(runColor).Render(run.String()))
				run.Reset()
			}
		}
		for x := 0; x < width; x++ {
			if colors[y][x] != runColor {
				flush()
				runColor = colors[y][x]
			}
			run.WriteRune(canvas[y][x])
		}
		flush()
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

// stateGlyph picks a compact glyph for a twilight band.
func stateGlyph(s astro.SunState) rune {
	switch s {
	case astro.Day:
		return glyphSun
	case astro.Night:
		return glyphTraceDown
	default:
		return glyphTraceUp
	}
}
