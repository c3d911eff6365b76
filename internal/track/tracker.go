// Package track keeps the mutable tool state around the pure solar math:
// the latest computed position, elevation history, and twilight transition
// events. The astro package stays stateless; scheduling and caching live here.
package track

import (
	"sync"
	"time"

	"github.com/litescript/ls-sunpos/internal/astro"
	"github.com/litescript/ls-sunpos/internal/config"
)

// EventType represents the type of twilight transition event.
type EventType string

const (
	EventSunrise       EventType = "SUNRISE"        // crossed into day
	EventSunset        EventType = "SUNSET"         // left day
	EventTwilightShift EventType = "TWILIGHT_SHIFT" // moved between darker bands
)

// Event records a twilight band transition observed between two updates.
type Event struct {
	Type      EventType      `json:"type"`
	Timestamp time.Time      `json:"timestamp"`
	From      astro.SunState `json:"-"`
	To        astro.SunState `json:"-"`
	FromName  string         `json:"from"`
	ToName    string         `json:"to"`
	Elevation float64        `json:"elevation"`
}

// Sample is a single elevation measurement kept in the history buffer.
type Sample struct {
	Time      time.Time
	Elevation float64
}

// Config holds configuration for the state manager.
type Config struct {
	MaxHistory      int
	MaxEvents       int
	RefreshInterval time.Duration
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		MaxHistory:      120, // an hour of samples at 30s refresh
		MaxEvents:       50,
		RefreshInterval: 30 * time.Second,
	}
}

// Manager handles all shared tool state with thread-safe access.
type Manager struct {
	mu sync.RWMutex

	site config.Site

	// Current state
	current    astro.SolarPosition
	hasCurrent bool
	lastUpdate time.Time
	lastError  error

	// History buffer
	history    []Sample
	maxHistory int

	// Event log (ring buffer)
	events       []Event
	maxEvents    int
	eventWriteAt int

	refreshInterval time.Duration
}

// NewManager creates a new state manager for the given observer site.
func NewManager(site config.Site, cfg Config) *Manager {
	maxEvents := cfg.MaxEvents
	if maxEvents <= 0 {
		maxEvents = 50
	}
	maxHistory := cfg.MaxHistory
	if maxHistory <= 0 {
		maxHistory = 120
	}
	refresh := cfg.RefreshInterval
	if refresh <= 0 {
		refresh = DefaultConfig().RefreshInterval
	}
	return &Manager{
		site:            site,
		maxHistory:      maxHistory,
		maxEvents:       maxEvents,
		events:          make([]Event, 0, maxEvents),
		refreshInterval: refresh,
	}
}

// Site returns the observer site the manager tracks.
func (m *Manager) Site() config.Site {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.site
}

// RefreshInterval returns the configured recompute interval.
func (m *Manager) RefreshInterval() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.refreshInterval
}

// Recompute calculates the sun position for the manager's site at the given
// instant and folds it into the state. Returns the calculation error, which
// is also recorded in the state.
func (m *Manager) Recompute(now time.Time) error {
	pos, err := astro.Calculate(now, m.Site().Latitude, m.Site().Longitude)
	if err != nil {
		m.mu.Lock()
		m.lastError = err
		m.lastUpdate = time.Now()
		m.mu.Unlock()
		return err
	}
	m.Update(pos)
	return nil
}

// Update atomically folds a freshly computed position into the state,
// detecting twilight transitions against the previous position.
func (m *Manager) Update(pos astro.SolarPosition) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastUpdate = time.Now()
	m.lastError = nil

	// Detect transition before replacing the current position
	if m.hasCurrent {
		m.detectTransition(m.current, pos)
	}

	m.current = pos
	m.hasCurrent = true

	m.history = append(m.history, Sample{Time: pos.Instant, Elevation: pos.Elevation})
	if len(m.history) > m.maxHistory {
		m.history = m.history[1:]
	}
}

// detectTransition compares the previous and new positions and records an
// event if the twilight band changed.
func (m *Manager) detectTransition(prev, next astro.SolarPosition) {
	from := prev.State()
	to := next.State()
	if from == to {
		return
	}

	typ := EventTwilightShift
	switch {
	case to == astro.Day:
		typ = EventSunrise
	case from == astro.Day:
		typ = EventSunset
	}

	m.addEvent(Event{
		Type:      typ,
		Timestamp: next.Instant,
		From:      from,
		To:        to,
		FromName:  from.String(),
		ToName:    to.String(),
		Elevation: next.Elevation,
	})
}

// addEvent adds an event to the ring buffer.
func (m *Manager) addEvent(e Event) {
	if len(m.events) < m.maxEvents {
		m.events = append(m.events, e)
	} else {
		m.events[m.eventWriteAt] = e
		m.eventWriteAt = (m.eventWriteAt + 1) % m.maxEvents
	}
}

// Snapshot represents an immutable snapshot of current state.
type Snapshot struct {
	Site        config.Site
	Position    astro.SolarPosition
	HasPosition bool
	LastUpdate  time.Time
	LastError   error
	History     []Sample
	Events      []Event
}

// Snapshot returns a copy of the current state safe to use without locks.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	history := make([]Sample, len(m.history))
	copy(history, m.history)

	return Snapshot{
		Site:        m.site,
		Position:    m.current,
		HasPosition: m.hasCurrent,
		LastUpdate:  m.lastUpdate,
		LastError:   m.lastError,
		History:     history,
		Events:      m.eventsInOrder(),
	}
}

// eventsInOrder returns the ring buffer contents oldest-first.
// Caller must hold at least a read lock.
func (m *Manager) eventsInOrder() []Event {
	out := make([]Event, 0, len(m.events))
	if len(m.events) < m.maxEvents {
		out = append(out, m.events...)
		return out
	}
	out = append(out, m.events[m.eventWriteAt:]...)
	out = append(out, m.events[:m.eventWriteAt]...)
	return out
}
