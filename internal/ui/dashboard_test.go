package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/litescript/ls-sunpos/internal/astro"
	"github.com/litescript/ls-sunpos/internal/config"
	"github.com/litescript/ls-sunpos/internal/track"
)

func testSnapshot(el, az float64) track.Snapshot {
	now := time.Date(2025, 3, 21, 12, 0, 0, 0, time.UTC)
	return track.Snapshot{
		Site: config.Site{Name: "Tokyo", Latitude: 35.6762, Longitude: 139.6503},
		Position: astro.SolarPosition{
			Elevation: el,
			Azimuth:   az,
			Instant:   now,
			Latitude:  35.6762,
			Longitude: 139.6503,
		},
		HasPosition: true,
		LastUpdate:  now,
		History: []track.Sample{
			{Time: now.Add(-2 * time.Minute), Elevation: el - 1},
			{Time: now.Add(-time.Minute), Elevation: el - 0.5},
			{Time: now, Elevation: el},
		},
	}
}

func TestDashboardViewEmpty(t *testing.T) {
	m := NewDashboardModel().SetSize(100, 30)

	out := m.View()
	if !strings.Contains(out, "Waiting for first position") {
		t.Errorf("empty dashboard = %q", out)
	}
}

func TestDashboardViewShowsPosition(t *testing.T) {
	m := NewDashboardModel().SetSize(100, 30)
	m = m.UpdateData(testSnapshot(54.3, 181.2))

	out := m.View()
	for _, want := range []string{"Elevation", "+54.30°", "Azimuth", "181.20°", "day", "Direction"} {
		if !strings.Contains(out, want) {
			t.Errorf("dashboard missing %q:\n%s", want, out)
		}
	}
}

func TestDashboardStateBadgePerBand(t *testing.T) {
	tests := []struct {
		el   float64
		want string
	}{
		{30, "day"},
		{-3, "civil twilight"},
		{-9, "nautical twilight"},
		{-15, "astronomical twilight"},
		{-40, "night"},
	}

	for _, tt := range tests {
		m := NewDashboardModel().SetSize(100, 30).UpdateData(testSnapshot(tt.el, 90))
		if out := m.View(); !strings.Contains(out, tt.want) {
			t.Errorf("el=%v: dashboard missing state %q", tt.el, tt.want)
		}
	}
}

func TestDashboardSparkline(t *testing.T) {
	m := NewDashboardModel().SetSize(100, 30).UpdateData(testSnapshot(10, 90))

	out := m.View()
	hasSpark := false
	for _, r := range sparkRunes {
		if strings.ContainsRune(out, r) {
			hasSpark = true
			break
		}
	}
	if !hasSpark {
		t.Errorf("no sparkline in dashboard:\n%s", out)
	}
}

func TestDashboardEvents(t *testing.T) {
	snap := testSnapshot(1, 90)
	snap.Events = []track.Event{
		{
			Type:      track.EventSunrise,
			Timestamp: snap.LastUpdate,
			From:      astro.CivilTwilight,
			To:        astro.Day,
			FromName:  "civil twilight",
			ToName:    "day",
		},
	}

	m := NewDashboardModel().SetSize(100, 30).UpdateData(snap)
	out := m.View()

	if !strings.Contains(out, "sunrise") {
		t.Errorf("sunrise event not rendered:\n%s", out)
	}
	if !strings.Contains(out, "civil twilight → day") {
		t.Errorf("transition not rendered:\n%s", out)
	}
}

func TestDashboardUpcomingFromTrace(t *testing.T) {
	snap := testSnapshot(54, 180)
	site := snap.Site

	trace, err := track.ComputeSunTrace(site, snap.Position.Instant, 12*time.Hour, 10*time.Minute)
	if err != nil {
		t.Fatal(err)
	}

	m := NewDashboardModel().SetSize(100, 30).UpdateData(snap).UpdateTrace(trace)
	out := m.View()

	if !strings.Contains(out, "Peak") {
		t.Errorf("peak line missing:\n%s", out)
	}
}

func TestTimeUntil(t *testing.T) {
	base := time.Date(2025, 3, 21, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		d    time.Duration
		want string
	}{
		{30 * time.Minute, "30m"},
		{2*time.Hour + 5*time.Minute, "2h05m"},
		{-time.Minute, "past"},
	}

	for _, tt := range tests {
		if got := timeUntil(base, base.Add(tt.d)); got != tt.want {
			t.Errorf("timeUntil(+%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
