package track

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
)

// SnapshotExport is the JSON-serializable representation of tool state.
type SnapshotExport struct {
	GeneratedAt time.Time          `json:"generated_at"`
	Site        SiteExport         `json:"site"`
	Position    *PositionExport    `json:"position,omitempty"`
	Transitions []TransitionExport `json:"transitions,omitempty"`
	Events      []Event            `json:"events,omitempty"`
}

// SiteExport is a JSON-friendly site representation.
type SiteExport struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// PositionExport is a JSON-friendly solar position with derived fields.
type PositionExport struct {
	Instant   time.Time `json:"instant"`
	Elevation float64   `json:"elevation"`
	Azimuth   float64   `json:"azimuth"`
	State     string    `json:"state"`
	Direction VecExport `json:"direction"`
}

// VecExport is a JSON-friendly direction vector.
type VecExport struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// TransitionExport is a JSON-friendly twilight crossing.
type TransitionExport struct {
	Time      time.Time `json:"time"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	Rising    bool      `json:"rising"`
	Threshold float64   `json:"threshold"`
}

// ExportSnapshot converts tool state to an exportable format. The trace is
// optional; when present its upcoming crossings are included.
func ExportSnapshot(snap Snapshot, trace *SunTrace) *SnapshotExport {
	export := &SnapshotExport{
		GeneratedAt: snap.LastUpdate,
		Site: SiteExport{
			Name:      snap.Site.Name,
			Latitude:  snap.Site.Latitude,
			Longitude: snap.Site.Longitude,
		},
		Events: snap.Events,
	}

	if snap.HasPosition {
		pos := snap.Position
		dir := pos.Direction()
		export.Position = &PositionExport{
			Instant:   pos.Instant,
			Elevation: pos.Elevation,
			Azimuth:   pos.Azimuth,
			State:     pos.State().String(),
			Direction: VecExport{X: dir.X, Y: dir.Y, Z: dir.Z},
		}
	}

	if trace != nil {
		for _, c := range trace.Crossings() {
			if c.Time.Before(trace.GeneratedAt) {
				continue
			}
			export.Transitions = append(export.Transitions, TransitionExport{
				Time:      c.Time,
				From:      c.From.String(),
				To:        c.To.String(),
				Rising:    c.Rising,
				Threshold: c.Threshold,
			})
		}
	}

	return export
}

// WriteJSON writes the snapshot as JSON to the given writer.
func (s *SnapshotExport) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

// WriteSummary writes a text summary of the current position to the writer.
func WriteSummary(w io.Writer, snap Snapshot, trace *SunTrace) {
	fmt.Fprintf(w, "Sun @ %s (%.4f°, %.4f°)\n",
		snap.Site.Name, snap.Site.Latitude, snap.Site.Longitude)
	fmt.Fprintln(w, strings.Repeat("─", 56))

	if !snap.HasPosition {
		fmt.Fprintln(w, "No position computed")
		return
	}

	pos := snap.Position
	dir := pos.Direction()

	fmt.Fprintf(w, "%-12s %s\n", "Instant", pos.Instant.Format(time.RFC3339))
	fmt.Fprintf(w, "%-12s %.2f°\n", "Elevation", pos.Elevation)
	fmt.Fprintf(w, "%-12s %.2f° (%s)\n", "Azimuth", pos.Azimuth, compassPoint(pos.Azimuth))
	fmt.Fprintf(w, "%-12s %s\n", "State", pos.State())
	fmt.Fprintf(w, "%-12s (%.4f, %.4f, %.4f)\n", "Direction", dir.X, dir.Y, dir.Z)

	if trace != nil {
		if next := trace.NextTransition(pos.Instant.UTC()); next != nil {
			fmt.Fprintf(w, "%-12s %s → %s at %s\n", "Next",
				next.From, next.To, next.Time.Format("15:04:05 MST"))
		}
		if peak := trace.MaxElevation(); peak != nil {
			fmt.Fprintf(w, "%-12s %.2f° at %s\n", "Peak",
				peak.Elevation, peak.Time.Format("15:04 MST"))
		}
	}
}

// WriteNowLine writes a single-line status suitable for prompts and watch
// mode.
func WriteNowLine(w io.Writer, snap Snapshot) {
	if !snap.HasPosition {
		fmt.Fprintln(w, "sun: no position")
		return
	}
	pos := snap.Position
	fmt.Fprintf(w, "%s el %+.1f° az %.1f° %s (%s)\n",
		snap.Site.Name, pos.Elevation, pos.Azimuth, compassPoint(pos.Azimuth), pos.State())
}

const (
	arcPlotWidth  = 64
	arcPlotHeight = 16

	arcTopEl    = 90.0
	arcBottomEl = -30.0
)

// WriteSkyArc writes a boxed ASCII az/el plot of the sun's arc. Azimuth runs
// 0-360 left to right, elevation from the zenith down to 30° below the
// horizon.
func WriteSkyArc(w io.Writer, snap Snapshot, trace *SunTrace) {
	if trace == nil || len(trace.Samples) == 0 {
		fmt.Fprintln(w, "No sun trace computed")
		return
	}

	grid := make([][]rune, arcPlotHeight)
	for y := range grid {
		grid[y] = make([]rune, arcPlotWidth)
		for x := range grid[y] {
			grid[y][x] = ' '
		}
	}

	plot := func(az, el float64) (x, y int, ok bool) {
		if el > arcTopEl || el < arcBottomEl {
			return 0, 0, false
		}
		x = int(az / 360 * float64(arcPlotWidth-1))
		y = int((arcTopEl - el) / (arcTopEl - arcBottomEl) * float64(arcPlotHeight-1))
		return x, y, x >= 0 && x < arcPlotWidth && y >= 0 && y < arcPlotHeight
	}

	// Horizon with cardinal marks
	_, horizonY, _ := plot(0, 0)
	for x := 0; x < arcPlotWidth; x++ {
		grid[horizonY][x] = '─'
	}
	for _, c := range []struct {
		label rune
		az    float64
	}{{'N', 0}, {'E', 90}, {'S', 180}, {'W', 270}} {
		if x, y, ok := plot(c.az, 0); ok {
			grid[y][x] = c.label
		}
	}

	for _, s := range trace.Samples {
		x, y, ok := plot(s.Azimuth, s.Elevation)
		if !ok || grid[y][x] != ' ' {
			continue
		}
		if s.Elevation >= 0 {
			grid[y][x] = '•'
		} else {
			grid[y][x] = '·'
		}
	}

	if snap.HasPosition {
		if x, y, ok := plot(snap.Position.Azimuth, snap.Position.Elevation); ok {
			grid[y][x] = '☀'
		}
	}

	fmt.Fprintf(w, "┌%s┐\n", strings.Repeat("─", arcPlotWidth))
	for _, row := range grid {
		fmt.Fprintf(w, "│%s│\n", string(row))
	}
	fmt.Fprintf(w, "└%s┘\n", strings.Repeat("─", arcPlotWidth))

	// Legend
	if snap.HasPosition {
		pos := snap.Position
		fmt.Fprintf(w, "☀ %s  el %+.1f° az %.1f° (%s)  %s\n",
			snap.Site.Name, pos.Elevation, pos.Azimuth,
			compassPoint(pos.Azimuth), pos.State())
	} else {
		fmt.Fprintf(w, "%s  trace %s to %s\n", snap.Site.Name,
			trace.WindowStart.Format("15:04"), trace.WindowEnd.Format("15:04"))
	}
}

var compassPoints = []string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

// compassPoint names the 16-wind compass point for an azimuth in degrees.
func compassPoint(azDeg float64) string {
	idx := int((azDeg+11.25)/22.5) % 16
	if idx < 0 {
		idx += 16
	}
	return compassPoints[idx]
}
