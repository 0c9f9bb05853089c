// Package ephem puts the Sun, the Moon and fixed catalog targets behind one
// interface so the dashboard and reports can treat them alike.
package ephem

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/litescript/starward/internal/astro"
	"github.com/litescript/starward/internal/catalog"
)

// ErrUnknownBody is returned by Resolve when a name matches nothing.
var ErrUnknownBody = errors.New("unknown body")

// Kind tells the bodies apart.
type Kind int

const (
	KindSun Kind = iota
	KindMoon
	KindFixed
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindSun:
		return "sun"
	case KindMoon:
		return "moon"
	case KindFixed:
		return "fixed"
	default:
		return "unknown"
	}
}

// Events holds a body's daily crossings. Nil fields did not occur in the
// search window.
type Events struct {
	Rise            *astro.JulianDate
	Set             *astro.JulianDate
	Transit         *astro.JulianDate
	TransitAltitude *astro.Angle
}

// Body is anything the dashboard can point at.
type Body interface {
	// Name returns the display name.
	Name() string

	Kind() Kind

	// Equatorial returns the apparent or catalog RA/Dec at jd.
	Equatorial(jd astro.JulianDate) astro.ICRSCoord

	// Altitude returns the altitude used for rise and set, including any
	// parallax correction the body needs.
	Altitude(obs astro.Observer, jd astro.JulianDate) astro.Angle

	// Events finds rise, set and transit starting at local midnight of jd.
	Events(obs astro.Observer, jd astro.JulianDate, tr astro.Tracer) Events
}

// Sun is the Sun.
type Sun struct{}

func (Sun) Name() string { return "Sun" }
func (Sun) Kind() Kind   { return KindSun }

func (Sun) Equatorial(jd astro.JulianDate) astro.ICRSCoord {
	return astro.SunPositionAt(jd, nil).ICRS()
}

func (Sun) Altitude(obs astro.Observer, jd astro.JulianDate) astro.Angle {
	return astro.SolarAltitude(obs, jd, nil)
}

func (Sun) Events(obs astro.Observer, jd astro.JulianDate, tr astro.Tracer) Events {
	var ev Events
	if r, ok := astro.Sunrise(obs, jd, tr); ok {
		ev.Rise = &r
	}
	if s, ok := astro.Sunset(obs, jd, tr); ok {
		ev.Set = &s
	}
	noon := astro.SolarNoon(obs, jd, tr)
	alt := astro.SolarAltitude(obs, noon, nil)
	ev.Transit, ev.TransitAltitude = &noon, &alt
	return ev
}

// Moon is the Moon.
type Moon struct{}

func (Moon) Name() string { return "Moon" }
func (Moon) Kind() Kind   { return KindMoon }

func (Moon) Equatorial(jd astro.JulianDate) astro.ICRSCoord {
	return astro.MoonPositionAt(jd, nil).ICRS()
}

func (Moon) Altitude(obs astro.Observer, jd astro.JulianDate) astro.Angle {
	return astro.MoonAltitude(obs, jd, nil)
}

// Events reports moonrise and moonset. The Moon's transit is taken as the
// peak of its altitude trace between them.
func (m Moon) Events(obs astro.Observer, jd astro.JulianDate, tr astro.Tracer) Events {
	var ev Events
	if r, ok := astro.Moonrise(obs, jd, tr); ok {
		ev.Rise = &r
	}
	if s, ok := astro.Moonset(obs, jd, tr); ok {
		ev.Set = &s
	}
	if ev.Rise != nil && ev.Set != nil && ev.Rise.Before(*ev.Set) {
		samples := SampleAltitude(m, obs, ev.Rise.Time(), ev.Set.Time(), 5*time.Minute)
		if peak, ok := samples.Peak(); ok {
			at := astro.FromTime(peak.Time)
			alt := astro.Degrees(peak.Altitude)
			ev.Transit, ev.TransitAltitude = &at, &alt
		}
	}
	return ev
}

// Fixed is a target with a fixed J2000 position, usually from the catalog.
type Fixed struct {
	Label string
	Coord astro.ICRSCoord
	// Horizon is the altitude, in degrees, that counts as rising.
	Horizon float64
}

// FromObject wraps a catalog object.
func FromObject(o catalog.Object) Fixed {
	return Fixed{Label: o.Label(), Coord: o.Coord()}
}

func (f Fixed) Name() string { return f.Label }
func (Fixed) Kind() Kind     { return KindFixed }

func (f Fixed) Equatorial(astro.JulianDate) astro.ICRSCoord { return f.Coord }

func (f Fixed) Altitude(obs astro.Observer, jd astro.JulianDate) astro.Angle {
	return astro.TargetAltitude(f.Coord, obs, jd, nil)
}

func (f Fixed) Events(obs astro.Observer, jd astro.JulianDate, tr astro.Tracer) Events {
	rs := astro.TargetRiseSet(f.Coord, obs, jd, f.Horizon, tr)
	transit := astro.TransitTime(f.Coord, obs, jd, tr)
	alt := astro.TransitAltitude(f.Coord, obs, tr)
	return Events{Rise: rs.Rise, Set: rs.Set, Transit: &transit, TransitAltitude: &alt}
}

// Position is a body's place in the sky at one instant.
type Position struct {
	Time       time.Time
	JD         astro.JulianDate
	Equatorial astro.ICRSCoord
	Horizontal astro.HorizontalCoord
}

// Airmass returns the Pickering airmass, or false below the horizon.
func (p Position) Airmass() (float64, bool) { return astro.Airmass(p.Horizontal.Alt) }

// PositionOf computes where b is for obs at t.
func PositionOf(b Body, obs astro.Observer, t time.Time) Position {
	jd := astro.FromTime(t)
	eq := b.Equatorial(jd)
	h := eq.HorizontalAt(obs, jd)
	h.Alt = b.Altitude(obs, jd)
	return Position{Time: t, JD: jd, Equatorial: eq, Horizontal: h}
}

// Path samples b from start to end inclusive.
func Path(b Body, obs astro.Observer, start, end time.Time, step time.Duration) ([]Position, error) {
	if step <= 0 {
		return nil, fmt.Errorf("path step must be positive, got %v", step)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("path end %s is before start %s", end.Format(time.RFC3339), start.Format(time.RFC3339))
	}
	var out []Position
	for t := start; !t.After(end); t = t.Add(step) {
		out = append(out, PositionOf(b, obs, t))
	}
	return out, nil
}

// Resolve turns a user-supplied name into a body: "sun", "moon", a catalog
// name, or a coordinate string such as "12h30m00s +45d30m00s".
func Resolve(name string, repo *catalog.Repository) (Body, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "sun":
		return Sun{}, nil
	case "moon":
		return Moon{}, nil
	}
	if repo != nil {
		if o, ok := repo.Lookup(name); ok {
			return FromObject(o), nil
		}
	}
	if c, err := astro.ParseICRS(name); err == nil {
		return Fixed{Label: c.String(), Coord: c}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBody, name)
}
