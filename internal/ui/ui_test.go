package ui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/litescript/ls-sunpos/internal/config"
	"github.com/litescript/ls-sunpos/internal/track"
)

func testModel() Model {
	site := config.Site{Name: "Tokyo", Latitude: 35.6762, Longitude: 139.6503}
	mgr := track.NewManager(site, track.DefaultConfig())
	return New(mgr, testSkyConfig())
}

func TestModelInitialView(t *testing.T) {
	m := testModel()

	if out := m.View(); !strings.Contains(out, "Initializing") {
		t.Errorf("pre-size view = %q", out)
	}
}

func TestModelViewAfterResize(t *testing.T) {
	m := testModel()

	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = next.(Model)

	out := m.View()
	if !strings.Contains(out, "ls-sunpos") {
		t.Errorf("header missing:\n%s", out)
	}
	if !strings.Contains(out, "Dashboard") || !strings.Contains(out, "Sky") {
		t.Errorf("tabs missing:\n%s", out)
	}
}

func TestModelTabSwitching(t *testing.T) {
	m := testModel()
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = next.(Model)

	if m.viewMode != ViewDashboard {
		t.Fatalf("initial view = %v", m.viewMode)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'2'}})
	m = next.(Model)
	if m.viewMode != ViewSky {
		t.Errorf("after '2' view = %v, want sky", m.viewMode)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(Model)
	if m.viewMode != ViewDashboard {
		t.Errorf("after tab view = %v, want dashboard", m.viewMode)
	}
}

func TestModelQuit(t *testing.T) {
	m := testModel()

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("quit key produced no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("quit key produced %T", cmd())
	}
}

func TestModelDataUpdate(t *testing.T) {
	m := testModel()
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = next.(Model)

	next, _ = m.Update(DataUpdateMsg{Snapshot: testSnapshot(54.3, 181.2)})
	m = next.(Model)

	out := m.View()
	if !strings.Contains(out, "+54.30°") {
		t.Errorf("position not propagated to dashboard:\n%s", out)
	}
	if !strings.Contains(out, "Tokyo") {
		t.Errorf("site missing from header:\n%s", out)
	}
}

func TestModelErrorShownInFooter(t *testing.T) {
	m := testModel()
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = next.(Model)

	next, _ = m.Update(ErrorMsg{Error: errors.New("bad coordinates")})
	m = next.(Model)

	if !strings.Contains(m.View(), "bad coordinates") {
		t.Error("error not shown in footer")
	}
}

func TestModelTraceUpdate(t *testing.T) {
	m := testModel()
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = next.(Model)

	snap := testSnapshot(45, 180)
	trace, err := track.ComputeSunTrace(snap.Site, snap.Position.Instant, 12*time.Hour, 10*time.Minute)
	if err != nil {
		t.Fatal(err)
	}

	next, _ = m.Update(DataUpdateMsg{Snapshot: snap})
	m = next.(Model)
	next, _ = m.Update(TraceUpdateMsg{Trace: trace})
	m = next.(Model)

	if !strings.Contains(m.View(), "Peak") {
		t.Error("trace not propagated to dashboard")
	}
}

func TestSendHelpers(t *testing.T) {
	snap := testSnapshot(10, 90)

	msg := SendDataUpdate(snap)()
	if dm, ok := msg.(DataUpdateMsg); !ok || !dm.Snapshot.HasPosition {
		t.Errorf("SendDataUpdate produced %#v", msg)
	}

	err := errors.New("boom")
	msg = SendError(err)()
	if em, ok := msg.(ErrorMsg); !ok || !errors.Is(em.Error, err) {
		t.Errorf("SendError produced %#v", msg)
	}
}
