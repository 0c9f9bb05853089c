package astro

import (
	"math"
	"sort"
)

// TargetAltitude returns the geometric altitude of a fixed target.
func TargetAltitude(target ICRSCoord, obs Observer, jd JulianDate, tr Tracer) Angle {
	return equatorialToHorizontal(target.RA, target.Dec, jd, obs.LatDeg(), obs.LonDeg(), tr).Alt
}

// TargetAzimuth returns the azimuth of a fixed target (N=0°, E=90°).
func TargetAzimuth(target ICRSCoord, obs Observer, jd JulianDate, tr Tracer) Angle {
	return equatorialToHorizontal(target.RA, target.Dec, jd, obs.LatDeg(), obs.LonDeg(), tr).Az
}

func targetAltitudeFunc(target ICRSCoord, obs Observer) func(JulianDate) float64 {
	return func(jd JulianDate) float64 { return TargetAltitude(target, obs, jd, nil).Degrees() }
}

// TransitTime returns the first meridian crossing after local midnight,
// computed from the sidereal rate rather than searched.
func TransitTime(target ICRSCoord, obs Observer, jd JulianDate, tr Tracer) JulianDate {
	midnight := jd.LocalMidnight(obs.LonDeg())
	lst := wrap360(midnight.GMSTDegrees() + obs.LonDeg())
	delta := wrap360(target.RA.Degrees() - lst)
	transit := midnight.Add(delta / siderealDegPerDay)
	trace(tr, "LST at midnight", "θ = %.4f°", lst)
	trace(tr, "Target RA", "α = %.4f°", target.RA.Degrees())
	trace(tr, "Transit", "JD = %.6f", transit.JD)
	return transit
}

// TransitAltitude returns the culmination altitude 90° - |φ - δ|.
func TransitAltitude(target ICRSCoord, obs Observer, tr Tracer) Angle {
	alt := 90 - math.Abs(obs.LatDeg()-target.Dec.Degrees())
	trace(tr, "Transit altitude", "h = 90° - |φ - δ| = %.4f°", alt)
	return Degrees(alt)
}

// RiseSet holds a rise and set time. A nil field means the crossing does
// not occur in the search window.
type RiseSet struct {
	Rise *JulianDate
	Set  *JulianDate
}

// TargetRiseSet finds when a fixed target crosses horizonDeg, scanning from
// local midnight.
func TargetRiseSet(target ICRSCoord, obs Observer, jd JulianDate, horizonDeg float64, tr Tracer) RiseSet {
	start := jd.LocalMidnight(obs.LonDeg())
	f := targetAltitudeFunc(target, obs)
	th := Threshold{Value: horizonDeg}
	trace(tr, "Horizon altitude", "h₀ = %.4f°", horizonDeg)

	var rs RiseSet
	if r, ok := DefaultSearch.Find(f, start, th, Rising); ok {
		rs.Rise = &r
		trace(tr, "Target rise", "JD = %.6f", r.JD)
	}
	if s, ok := DefaultSearch.Find(f, start, th, Setting); ok {
		rs.Set = &s
		trace(tr, "Target set", "JD = %.6f", s.JD)
	}
	return rs
}

// MoonTargetSeparation returns the angular distance from a target to the
// Moon.
func MoonTargetSeparation(target ICRSCoord, jd JulianDate, tr Tracer) Angle {
	moon := MoonPositionAt(jd, tr)
	sep := AngularSeparation(target.RA, target.Dec, moon.RA, moon.Dec)
	trace(tr, "Moon-target separation", "θ = %.2f°", sep.Degrees())
	return sep
}

// IsNight reports whether the Sun is below the twilight altitude.
func IsNight(obs Observer, jd JulianDate, tw Twilight, tr Tracer) bool {
	alt := SolarAltitude(obs, jd, tr)
	dark := alt.Degrees() < tw.Altitude()
	trace(tr, "Twilight threshold", "%s: %.0f°, dark = %t", tw, tw.Altitude(), dark)
	return dark
}

// VisibilityOptions configures ComputeVisibility.
type VisibilityOptions struct {
	MinAltitude float64 // degrees
	Twilight    Twilight
}

// DefaultVisibilityOptions observes above 20° in astronomical darkness.
func DefaultVisibilityOptions() VisibilityOptions {
	return VisibilityOptions{MinAltitude: 20, Twilight: TwilightAstronomical}
}

// VisibilityWindow is a span of darkness during which a target stays above
// the minimum altitude.
type VisibilityWindow struct {
	Start        JulianDate
	End          JulianDate
	PeakAltitude Angle
	PeakTime     JulianDate
}

// DurationHours returns the window length.
func (w VisibilityWindow) DurationHours() float64 { return w.End.Since(w.Start) * 24 }

// TargetVisibility is the full visibility report for one target.
type TargetVisibility struct {
	Target          ICRSCoord
	Observer        Observer
	Date            JulianDate
	CurrentAltitude Angle
	CurrentAzimuth  Angle
	CurrentAirmass  *float64
	IsUp            bool
	Rise            *JulianDate
	Set             *JulianDate
	Transit         JulianDate
	TransitAltitude Angle
	MoonSeparation  Angle
	DarkWindows     []VisibilityWindow
}

// ComputeVisibility gathers altitude, events, Moon separation and dark
// windows for a target.
func ComputeVisibility(target ICRSCoord, obs Observer, jd JulianDate, opts VisibilityOptions, tr Tracer) TargetVisibility {
	trace(tr, "Computing visibility for", "%s", target)
	trace(tr, "Observer", "%s", obs)
	trace(tr, "Minimum altitude", "%.1f°", opts.MinAltitude)

	h := equatorialToHorizontal(target.RA, target.Dec, jd, obs.LatDeg(), obs.LonDeg(), tr)
	v := TargetVisibility{
		Target:          target,
		Observer:        obs,
		Date:            jd,
		CurrentAltitude: h.Alt,
		CurrentAzimuth:  h.Az,
		IsUp:            h.Alt.Degrees() > opts.MinAltitude,
		Transit:         TransitTime(target, obs, jd, tr),
		TransitAltitude: TransitAltitude(target, obs, tr),
		MoonSeparation:  MoonTargetSeparation(target, jd, tr),
	}
	if x, ok := Airmass(h.Alt); ok {
		v.CurrentAirmass = &x
		trace(tr, "Airmass (Pickering)", "X = %.3f", x)
	}
	rs := TargetRiseSet(target, obs, jd, opts.MinAltitude, tr)
	v.Rise, v.Set = rs.Rise, rs.Set
	v.DarkWindows = DarkWindows(target, obs, jd, opts)
	trace(tr, "Dark windows", "%d", len(v.DarkWindows))
	return v
}

// windowStep is the sampling step for dark-window scans, days.
const windowStep = 0.005

// NightBounds returns the dark interval that starts on the evening of jd's
// search day. When there is no dusk but the Sun is down at local midnight,
// the interval runs from midnight to the next dawn, or for a whole day in
// polar night. ok is false when the Sun never gets below the twilight
// altitude.
func NightBounds(obs Observer, jd JulianDate, tw Twilight) (start, end JulianDate, ok bool) {
	midnight := jd.LocalMidnight(obs.LonDeg())
	sunAlt := solarAltitudeFunc(obs)
	th := Threshold{Value: tw.Altitude()}

	dusk, found := DefaultSearch.Find(sunAlt, midnight, th, Setting)
	if !found {
		if sunAlt(midnight) >= tw.Altitude() {
			return JulianDate{}, JulianDate{}, false
		}
		// Onset of the midnight sun: the last dawn, with no dusk after it.
		if dawn, rises := DefaultSearch.Find(sunAlt, midnight, th, Rising); rises {
			return midnight, dawn, true
		}
		// Polar night: dark for the whole day.
		return midnight, midnight.Add(1), true
	}
	dawn, found := DefaultSearch.Find(sunAlt, dusk, th, Rising)
	if !found {
		dawn = dusk.Add(1)
	}
	return dusk, dawn, true
}

// DarkWindows lists the spans of the night when the target is above
// opts.MinAltitude.
func DarkWindows(target ICRSCoord, obs Observer, jd JulianDate, opts VisibilityOptions) []VisibilityWindow {
	start, end, ok := NightBounds(obs, jd, opts.Twilight)
	if !ok {
		return nil
	}
	f := targetAltitudeFunc(target, obs)
	th := Threshold{Value: opts.MinAltitude}

	var (
		windows []VisibilityWindow
		cur     *VisibilityWindow
		samples []altSample
	)
	closeWindow := func(at JulianDate) {
		cur.End = at
		cur.PeakTime, cur.PeakAltitude = refinePeak(samples)
		windows = append(windows, *cur)
		cur, samples = nil, nil
	}

	if first := f(start); first >= opts.MinAltitude {
		cur = &VisibilityWindow{Start: start}
		samples = append(samples, altSample{start, first})
	}
	n := int(math.Ceil(end.Since(start) / windowStep))
	for i := 1; i <= n; i++ {
		at := start.Add(float64(i) * windowStep)
		if at.JD > end.JD {
			at = end
		}
		alt := f(at)
		switch {
		case cur == nil && alt >= opts.MinAltitude:
			cur = &VisibilityWindow{Start: DefaultSearch.Bisect(f, at.Sub(windowStep), at, th, Rising)}
			samples = append(samples, altSample{at, alt})
		case cur != nil && alt < opts.MinAltitude:
			closeWindow(DefaultSearch.Bisect(f, at.Sub(windowStep), at, th, Setting))
		case cur != nil:
			samples = append(samples, altSample{at, alt})
		}
	}
	if cur != nil {
		closeWindow(end)
	}
	return windows
}

type altSample struct {
	jd  JulianDate
	alt float64
}

// refinePeak finds the highest sample and refines it with a parabola
// through its neighbors, which sit windowStep away on either side.
func refinePeak(samples []altSample) (JulianDate, Angle) {
	if len(samples) == 0 {
		return JulianDate{}, Angle{}
	}
	best := 0
	for i, s := range samples {
		if s.alt > samples[best].alt {
			best = i
		}
	}
	at := samples[best].jd
	if best == 0 || best == len(samples)-1 {
		return at, Degrees(samples[best].alt)
	}

	// Parabola through t = -1, 0, +1.
	y0, y1, y2 := samples[best-1].alt, samples[best].alt, samples[best+1].alt
	a := (y0+y2)/2 - y1
	b := (y2 - y0) / 2
	if a >= 0 {
		return at, Degrees(y1)
	}
	t := math.Max(-1, math.Min(1, -b/(2*a)))
	return at.Add(t * windowStep), Degrees(a*t*t + b*t + y1)
}

// Observable is a target that passes the ObservableTonight filters.
type Observable struct {
	Index           int // position in the input slice
	Target          ICRSCoord
	TransitAltitude Angle
	Transit         JulianDate
	MoonSeparation  Angle
}

// ObservableTonight keeps targets that culminate above minAltDeg and sit at
// least minMoonSepDeg from the Moon, sorted by transit time.
func ObservableTonight(targets []ICRSCoord, obs Observer, jd JulianDate, minAltDeg, minMoonSepDeg float64, tr Tracer) []Observable {
	moon := MoonPositionAt(jd, nil)
	var out []Observable
	for i, t := range targets {
		alt := TransitAltitude(t, obs, nil)
		if alt.Degrees() < minAltDeg {
			continue
		}
		sep := AngularSeparation(t.RA, t.Dec, moon.RA, moon.Dec)
		if sep.Degrees() < minMoonSepDeg {
			continue
		}
		out = append(out, Observable{
			Index:           i,
			Target:          t,
			TransitAltitude: alt,
			Transit:         TransitTime(t, obs, jd, nil),
			MoonSeparation:  sep,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Transit.Before(out[j].Transit) })
	trace(tr, "Observable tonight", "%d of %d targets", len(out), len(targets))
	return out
}

// ElevationTier categorizes altitude for display.
type ElevationTier int

const (
	ElevationNone   ElevationTier = iota // Below horizon
	ElevationLow                         // 0-15 degrees
	ElevationMedium                      // 15-45 degrees
	ElevationHigh                        // 45+ degrees
)

// GetElevationTier returns the tier for a given altitude.
func GetElevationTier(altDeg float64) ElevationTier {
	switch {
	case altDeg <= 0:
		return ElevationNone
	case altDeg < 15:
		return ElevationLow
	case altDeg < 45:
		return ElevationMedium
	default:
		return ElevationHigh
	}
}
