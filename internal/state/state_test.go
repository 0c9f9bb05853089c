package state

import (
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/litescript/starward/internal/astro"
	"github.com/litescript/starward/internal/ephem"
)

var base = time.Date(2024, 3, 20, 22, 0, 0, 0, time.UTC)

func greenwich(t *testing.T) astro.Observer {
	t.Helper()
	obs, err := astro.NewObserver("Greenwich", 51.4769, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	return obs
}

func body(name string, alt float64) BodyState {
	return BodyState{
		Name:     name,
		Kind:     ephem.KindFixed,
		Position: ephem.Position{Horizontal: astro.HorizontalCoord{Alt: astro.Degrees(alt)}},
	}
}

func sky(obs astro.Observer, at time.Time, dark bool, bodies ...BodyState) *Sky {
	return &Sky{Time: at, Observer: obs, Dark: dark, Bodies: bodies}
}

func TestNewManager(t *testing.T) {
	cfg := DefaultConfig()
	m := NewManager(cfg)

	if m.RefreshInterval() != cfg.RefreshInterval {
		t.Errorf("RefreshInterval = %v, want %v", m.RefreshInterval(), cfg.RefreshInterval)
	}
	if m.HasData() {
		t.Error("HasData should be false initially")
	}
}

func TestManager_Update(t *testing.T) {
	m := NewManager(DefaultConfig())
	s := sky(greenwich(t), base, true, body("Vega", 30))

	m.Update(s, 100*time.Millisecond, nil)

	if !m.HasData() {
		t.Error("HasData should be true after Update")
	}
	snap := m.Snapshot()
	if snap.Sky != s {
		t.Error("Snapshot Sky doesn't match")
	}
	if snap.ComputeDuration != 100*time.Millisecond {
		t.Errorf("ComputeDuration = %v, want 100ms", snap.ComputeDuration)
	}
	if snap.LastError != nil {
		t.Errorf("LastError = %v, want nil", snap.LastError)
	}
}

func TestManager_UpdateWithError(t *testing.T) {
	m := NewManager(DefaultConfig())
	m.Update(sky(greenwich(t), base, true), 0, nil)

	boom := errors.New("compute failed")
	m.Update(nil, 0, boom)

	snap := m.Snapshot()
	if snap.Sky == nil {
		t.Error("previous Sky should survive a failed update")
	}
	if !errors.Is(snap.LastError, boom) {
		t.Errorf("LastError = %v, want %v", snap.LastError, boom)
	}
}

func TestManager_EventDetection(t *testing.T) {
	obs := greenwich(t)

	tests := []struct {
		name      string
		before    *Sky
		after     *Sky
		wantType  EventType
		wantBody  string
		wantCount int
	}{
		{
			name:      "rise",
			before:    sky(obs, base, true, body("Vega", -2)),
			after:     sky(obs, base.Add(time.Minute), true, body("Vega", 1)),
			wantType:  EventRise,
			wantBody:  "Vega",
			wantCount: 1,
		},
		{
			name:      "set",
			before:    sky(obs, base, true, body("Moon", 0.5)),
			after:     sky(obs, base.Add(time.Minute), true, body("Moon", -0.5)),
			wantType:  EventSet,
			wantBody:  "Moon",
			wantCount: 1,
		},
		{
			name:      "dusk",
			before:    sky(obs, base, false),
			after:     sky(obs, base.Add(time.Minute), true),
			wantType:  EventDusk,
			wantBody:  "Sun",
			wantCount: 1,
		},
		{
			name:      "dawn",
			before:    sky(obs, base, true),
			after:     sky(obs, base.Add(time.Minute), false),
			wantType:  EventDawn,
			wantBody:  "Sun",
			wantCount: 1,
		},
		{
			name:   "no change",
			before: sky(obs, base, true, body("Vega", 10)),
			after:  sky(obs, base.Add(time.Minute), true, body("Vega", 11)),
		},
		{
			name:   "new body",
			before: sky(obs, base, true),
			after:  sky(obs, base.Add(time.Minute), true, body("Vega", 11)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewManager(DefaultConfig())
			m.Update(tt.before, 0, nil)
			m.Update(tt.after, 0, nil)

			events := m.RecentEvents(10)
			if len(events) != tt.wantCount {
				t.Fatalf("got %d events, want %d: %+v", len(events), tt.wantCount, events)
			}
			if tt.wantCount == 0 {
				return
			}
			if events[0].Type != tt.wantType {
				t.Errorf("type = %q, want %q", events[0].Type, tt.wantType)
			}
			if events[0].Body != tt.wantBody {
				t.Errorf("body = %q, want %q", events[0].Body, tt.wantBody)
			}
			if !events[0].Timestamp.Equal(tt.after.Time) {
				t.Errorf("timestamp = %v, want %v", events[0].Timestamp, tt.after.Time)
			}
		})
	}
}

func TestManager_ObserverChangeResets(t *testing.T) {
	m := NewManager(DefaultConfig())
	gw := greenwich(t)
	sydney, err := astro.NewObserver("Sydney", -33.87, 151.21, 0)
	if err != nil {
		t.Fatal(err)
	}

	m.Update(sky(gw, base, true, body("Vega", 20)), 0, nil)
	m.UpdateTrace(&ephem.AltitudeTrace{Body: "Vega", Observer: gw, GeneratedAt: base})
	m.Update(sky(sydney, base.Add(time.Minute), true, body("Vega", -20)), 0, nil)

	if n := len(m.RecentEvents(10)); n != 0 {
		t.Errorf("observer switch produced %d events, want 0", n)
	}
	if h := m.History("Vega"); len(h) != 1 {
		t.Errorf("history length = %d, want 1 after reset", len(h))
	}
	if _, ok := m.Snapshot().Traces["Vega"]; ok {
		t.Error("trace for previous observer should be dropped")
	}
}

func TestManager_AltitudeRate(t *testing.T) {
	m := NewManager(DefaultConfig())
	obs := greenwich(t)

	if r := m.AltitudeRate("Vega"); r != 0 {
		t.Errorf("rate with no history = %v, want 0", r)
	}

	m.Update(sky(obs, base, true, body("Vega", 10)), 0, nil)
	m.Update(sky(obs, base.Add(2*time.Minute), true, body("Vega", 10.5)), 0, nil)

	if r := m.AltitudeRate("Vega"); math.Abs(r-0.25) > 1e-9 {
		t.Errorf("rate = %v, want 0.25 deg/min", r)
	}
}

func TestManager_HistoryBuffer(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxHistoryLen = 3
	m := NewManager(cfg)
	obs := greenwich(t)

	for i := 0; i < 5; i++ {
		m.Update(sky(obs, base.Add(time.Duration(i)*time.Minute), true, body("Vega", float64(i))), 0, nil)
	}

	h := m.History("Vega")
	if len(h) != 3 {
		t.Fatalf("history length = %d, want 3", len(h))
	}
	if h[0].Value != 2 || h[2].Value != 4 {
		t.Errorf("history = %+v, want values 2..4", h)
	}
}

func TestManager_Traces(t *testing.T) {
	m := NewManager(DefaultConfig())
	obs := greenwich(t)
	m.Update(sky(obs, base, true, body("Vega", 10)), 0, nil)

	if !m.NeedsTraceRefresh("Vega", base) {
		t.Error("missing trace should need refresh")
	}

	m.UpdateTrace(&ephem.AltitudeTrace{Body: "Vega", Observer: obs, GeneratedAt: base})
	if m.NeedsTraceRefresh("Vega", base.Add(time.Minute)) {
		t.Error("fresh trace should not need refresh")
	}
	if !m.NeedsTraceRefresh("Vega", base.Add(time.Hour)) {
		t.Error("hour-old trace should need refresh")
	}

	other, err := astro.NewObserver("Elsewhere", 10, 10, 0)
	if err != nil {
		t.Fatal(err)
	}
	m.UpdateTrace(&ephem.AltitudeTrace{Body: "Deneb", Observer: other, GeneratedAt: base})
	if _, ok := m.Snapshot().Traces["Deneb"]; ok {
		t.Error("trace for another observer should be ignored")
	}
}

func TestManager_EventRingBuffer(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxEvents = 5
	m := NewManager(cfg)
	obs := greenwich(t)

	// Each update flips Vega across the horizon.
	for i := 0; i < 10; i++ {
		alt := -1.0
		if i%2 == 1 {
			alt = 1
		}
		m.Update(sky(obs, base.Add(time.Duration(i)*time.Minute), true, body("Vega", alt)), 0, nil)
	}

	events := m.Snapshot().Events
	if len(events) != 5 {
		t.Fatalf("got %d events, want 5", len(events))
	}
	for i := 1; i < len(events); i++ {
		if events[i].Timestamp.Before(events[i-1].Timestamp) {
			t.Errorf("events out of order at %d", i)
		}
	}
	if last := events[len(events)-1]; last.Type != EventRise {
		t.Errorf("last event = %q, want RISE", last.Type)
	}
}

func TestManager_ConcurrentAccess(t *testing.T) {
	m := NewManager(DefaultConfig())
	obs := greenwich(t)

	var wg sync.WaitGroup
	iterations := 100

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < iterations; i++ {
			m.Update(sky(obs, base.Add(time.Duration(i)*time.Second), i%2 == 0, body("Vega", float64(i%3-1))), 0, nil)
			m.UpdateTrace(&ephem.AltitudeTrace{Body: "Vega", Observer: obs, GeneratedAt: base})
		}
	}()

	for r := 0; r < 5; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < iterations; i++ {
				_ = m.Snapshot()
				_ = m.HasData()
				_ = m.History("Vega")
				_ = m.AltitudeRate("Vega")
				_ = m.NeedsTraceRefresh("Vega", base)
			}
		}()
	}

	wg.Wait()
}

func TestManager_SetRefreshInterval(t *testing.T) {
	m := NewManager(DefaultConfig())
	m.SetRefreshInterval(30 * time.Second)
	if m.RefreshInterval() != 30*time.Second {
		t.Errorf("RefreshInterval = %v, want 30s", m.RefreshInterval())
	}
}

func TestCompute(t *testing.T) {
	obs := greenwich(t)
	coord, err := astro.ICRSFromDegrees(279.2347, 38.7837)
	if err != nil {
		t.Fatal(err)
	}
	bodies := []ephem.Body{ephem.Sun{}, ephem.Moon{}, ephem.Fixed{Label: "Vega", Coord: coord}}

	// Two hours after the March equinox sunset the Sun is well down.
	s := Compute(obs, bodies, astro.TwilightAstronomical, base)

	if len(s.Bodies) != 3 {
		t.Fatalf("got %d bodies, want 3", len(s.Bodies))
	}
	if s.Body("Vega") == nil || s.Body("Vega").Kind != ephem.KindFixed {
		t.Fatal("Vega missing from sky")
	}
	if s.Body("Pluto") != nil {
		t.Error("Body returned a state for an unknown name")
	}
	if sun := s.Body("Sun"); sun.Up() {
		t.Errorf("Sun altitude %.1f, want below horizon", sun.AltitudeDeg())
	}
	if !s.Body("Vega").Up() {
		t.Errorf("Vega altitude %.1f, want above horizon", s.Body("Vega").AltitudeDeg())
	}
	if s.Sun.Sunrise == nil || s.Sun.Sunset == nil {
		t.Error("equinox sunrise and sunset should both occur")
	}
	if !s.Dark {
		t.Error("22:00 UT at Greenwich on the equinox should be astronomically dark")
	}
}
