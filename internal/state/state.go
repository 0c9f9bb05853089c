// Package state provides thread-safe state management for the live sky view.
package state

import (
	"sync"
	"time"

	"github.com/litescript/starward/internal/astro"
	"github.com/litescript/starward/internal/ephem"
)

// EventType represents the type of state change event.
type EventType string

const (
	EventRise EventType = "RISE"
	EventSet  EventType = "SET"
	EventDusk EventType = "DUSK"
	EventDawn EventType = "DAWN"
)

// Event represents a body crossing the horizon or the Sun crossing the
// twilight altitude between two snapshots.
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Body      string    `json:"body"`
	Altitude  float64   `json:"altitude"`
}

// BodyState is one body's position and daily events at a snapshot time.
type BodyState struct {
	Name     string
	Kind     ephem.Kind
	Position ephem.Position
	Events   ephem.Events
}

// AltitudeDeg returns the body's altitude in degrees.
func (b BodyState) AltitudeDeg() float64 { return b.Position.Horizontal.Alt.Degrees() }

// Up reports whether the body is above the horizon.
func (b BodyState) Up() bool { return b.AltitudeDeg() > 0 }

// Sky is everything the dashboard shows for one instant.
type Sky struct {
	Time     time.Time
	Observer astro.Observer
	Twilight astro.Twilight
	Sun      astro.SunEvents
	Moon     astro.MoonEvents
	Bodies   []BodyState
	Dark     bool
}

// Body returns the state for name, or nil.
func (s *Sky) Body(name string) *BodyState {
	for i := range s.Bodies {
		if s.Bodies[i].Name == name {
			return &s.Bodies[i]
		}
	}
	return nil
}

// Compute evaluates every body for obs at now.
func Compute(obs astro.Observer, bodies []ephem.Body, tw astro.Twilight, now time.Time) *Sky {
	jd := astro.FromTime(now)
	sky := &Sky{
		Time:     now,
		Observer: obs,
		Twilight: tw,
		Sun:      astro.SunEventsAt(obs, jd, nil),
		Moon:     astro.MoonEventsAt(obs, jd, nil),
		Dark:     astro.IsNight(obs, jd, tw, nil),
		Bodies:   make([]BodyState, 0, len(bodies)),
	}
	for _, b := range bodies {
		sky.Bodies = append(sky.Bodies, BodyState{
			Name:     b.Name(),
			Kind:     b.Kind(),
			Position: ephem.PositionOf(b, obs, now),
			Events:   b.Events(obs, jd, nil),
		})
	}
	return sky
}

// TimeSeries is a single data point with timestamp.
type TimeSeries struct {
	Timestamp time.Time
	Value     float64
}

// Manager handles all shared sky state with thread-safe access.
type Manager struct {
	mu sync.RWMutex

	current         *Sky
	lastCompute     time.Time
	lastError       error
	computeDuration time.Duration

	// Altitude history per body
	history       map[string][]TimeSeries
	maxHistoryLen int

	// Event log (ring buffer)
	events       []Event
	maxEvents    int
	eventWriteAt int

	traces      map[string]*ephem.AltitudeTrace
	traceMaxAge time.Duration

	refreshInterval time.Duration
}

// Config holds configuration for the state manager.
type Config struct {
	MaxHistoryLen   int
	MaxEvents       int
	RefreshInterval time.Duration
	TraceMaxAge     time.Duration
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		MaxHistoryLen:   120, // 10 minutes at one update per 5s
		MaxEvents:       50,
		RefreshInterval: 5 * time.Second,
		TraceMaxAge:     15 * time.Minute,
	}
}

// NewManager creates a new state manager.
func NewManager(cfg Config) *Manager {
	maxEvents := cfg.MaxEvents
	if maxEvents <= 0 {
		maxEvents = 50
	}
	return &Manager{
		maxHistoryLen:   cfg.MaxHistoryLen,
		maxEvents:       maxEvents,
		events:          make([]Event, 0, maxEvents),
		refreshInterval: cfg.RefreshInterval,
		traceMaxAge:     cfg.TraceMaxAge,
		history:         make(map[string][]TimeSeries),
		traces:          make(map[string]*ephem.AltitudeTrace),
	}
}

// Update atomically replaces the current sky. A sky for a different
// observer drops history and traces instead of reporting events.
func (m *Manager) Update(sky *Sky, computeDuration time.Duration, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastCompute = time.Now()
	m.lastError = err
	m.computeDuration = computeDuration

	if sky == nil {
		return
	}

	if m.current != nil && m.current.Observer != sky.Observer {
		m.history = make(map[string][]TimeSeries)
		m.traces = make(map[string]*ephem.AltitudeTrace)
	} else {
		m.detectEvents(sky)
	}

	m.current = sky
	m.updateHistory(sky)
}

// detectEvents compares the new sky with the previous one.
func (m *Manager) detectEvents(next *Sky) {
	prev := m.current
	if prev == nil {
		return
	}

	for _, b := range next.Bodies {
		old := prev.Body(b.Name)
		if old == nil || old.Up() == b.Up() {
			continue
		}
		typ := EventSet
		if b.Up() {
			typ = EventRise
		}
		m.addEvent(Event{Type: typ, Timestamp: next.Time, Body: b.Name, Altitude: b.AltitudeDeg()})
	}

	if prev.Dark != next.Dark {
		typ := EventDawn
		if next.Dark {
			typ = EventDusk
		}
		m.addEvent(Event{Type: typ, Timestamp: next.Time, Body: "Sun", Altitude: next.Sun.Altitude.Degrees()})
	}
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

func (m *Manager) updateHistory(sky *Sky) {
	if m.maxHistoryLen <= 0 {
		return
	}
	for _, b := range sky.Bodies {
		h := append(m.history[b.Name], TimeSeries{Timestamp: sky.Time, Value: b.AltitudeDeg()})
		if len(h) > m.maxHistoryLen {
			h = h[1:]
		}
		m.history[b.Name] = h
	}
}

// Snapshot represents an immutable snapshot of current state.
type Snapshot struct {
	Sky             *Sky
	LastCompute     time.Time
	LastError       error
	ComputeDuration time.Duration
	Traces          map[string]*ephem.AltitudeTrace
	Events          []Event
}

// Snapshot returns a consistent snapshot of current state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	traces := make(map[string]*ephem.AltitudeTrace, len(m.traces))
	for k, v := range m.traces {
		traces[k] = v
	}

	return Snapshot{
		Sky:             m.current,
		LastCompute:     m.lastCompute,
		LastError:       m.lastError,
		ComputeDuration: m.computeDuration,
		Traces:          traces,
		Events:          m.getEventsOrdered(),
	}
}

// getEventsOrdered returns events in chronological order.
func (m *Manager) getEventsOrdered() []Event {
	if len(m.events) == 0 {
		return nil
	}

	if len(m.events) < m.maxEvents {
		result := make([]Event, len(m.events))
		copy(result, m.events)
		return result
	}

	result := make([]Event, m.maxEvents)
	for i := 0; i < m.maxEvents; i++ {
		result[i] = m.events[(m.eventWriteAt+i)%m.maxEvents]
	}
	return result
}

// RecentEvents returns the last n events.
func (m *Manager) RecentEvents(n int) []Event {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := m.getEventsOrdered()
	if len(all) <= n {
		return all
	}
	return all[len(all)-n:]
}

// History returns a copy of the altitude history for a body.
func (m *Manager) History(name string) []TimeSeries {
	m.mu.RLock()
	defer m.mu.RUnlock()

	h := m.history[name]
	out := make([]TimeSeries, len(h))
	copy(out, h)
	return out
}

// AltitudeRate estimates how fast a body's altitude is changing, in
// degrees per minute, from the last two history points.
func (m *Manager) AltitudeRate(name string) float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	h := m.history[name]
	if len(h) < 2 {
		return 0
	}
	p1, p2 := h[len(h)-2], h[len(h)-1]
	dt := p2.Timestamp.Sub(p1.Timestamp).Minutes()
	if dt <= 0 {
		return 0
	}
	return (p2.Value - p1.Value) / dt
}

// NeedsTraceRefresh reports whether the trace for name is missing or stale.
func (m *Manager) NeedsTraceRefresh(name string, now time.Time) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	t, ok := m.traces[name]
	return !ok || t.Stale(now, m.traceMaxAge)
}

// UpdateTrace stores a freshly computed trace. Traces for an observer other
// than the current sky's are ignored.
func (m *Manager) UpdateTrace(t *ephem.AltitudeTrace) {
	if t == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current != nil && m.current.Observer != t.Observer {
		return
	}
	m.traces[t.Body] = t
}

// RefreshInterval returns the configured refresh interval.
func (m *Manager) RefreshInterval() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.refreshInterval
}

// SetRefreshInterval updates the refresh interval.
func (m *Manager) SetRefreshInterval(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refreshInterval = d
}

// HasData returns true once a sky has been computed.
func (m *Manager) HasData() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current != nil
}
