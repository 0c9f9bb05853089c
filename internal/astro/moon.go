package astro

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode"
)

// Phase is one of the eight named lunar phases.
type Phase int

const (
	NewMoon Phase = iota
	WaxingCrescent
	FirstQuarter
	WaxingGibbous
	FullMoon
	WaningGibbous
	LastQuarter
	WaningCrescent
)

var phaseNames = [...]string{
	"New Moon", "Waxing Crescent", "First Quarter", "Waxing Gibbous",
	"Full Moon", "Waning Gibbous", "Last Quarter", "Waning Crescent",
}

var phaseEmoji = [...]string{"🌑", "🌒", "🌓", "🌔", "🌕", "🌖", "🌗", "🌘"}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return fmt.Sprintf("Phase(%d)", int(p))
	}
	return phaseNames[p]
}

// Emoji returns the moon glyph for the phase.
func (p Phase) Emoji() string {
	if p < 0 || int(p) >= len(phaseEmoji) {
		return "?"
	}
	return phaseEmoji[p]
}

// Major reports whether p is new, first quarter, full or last quarter.
func (p Phase) Major() bool { return p%2 == 0 && p >= NewMoon && p <= LastQuarter }

// Elongation is the mean elongation at which a major phase occurs.
func (p Phase) Elongation() float64 { return float64(p) * 45 }

// ParsePhase resolves a phase name such as "full", "first-quarter" or
// "New Moon".
func ParsePhase(name string) (Phase, error) {
	switch normalizeKey(name) {
	case "new", "newmoon":
		return NewMoon, nil
	case "waxingcrescent":
		return WaxingCrescent, nil
	case "first", "firstquarter":
		return FirstQuarter, nil
	case "waxinggibbous":
		return WaxingGibbous, nil
	case "full", "fullmoon":
		return FullMoon, nil
	case "waninggibbous":
		return WaningGibbous, nil
	case "last", "lastquarter", "third", "thirdquarter":
		return LastQuarter, nil
	case "waningcrescent":
		return WaningCrescent, nil
	}
	return 0, fmt.Errorf("unknown moon phase %q", name)
}

// PhaseFromElongation buckets an elongation into 45°-wide bins centered on
// 0°, 45°, ... 315°.
func PhaseFromElongation(d float64) Phase {
	return Phase(int(math.Floor(wrap360(d+22.5)/45)) % 8)
}

// MoonPosition is the Moon's geocentric position at one instant.
type MoonPosition struct {
	JD                 JulianDate
	Longitude          Angle // ecliptic
	Latitude           Angle // ecliptic
	RA                 Angle
	Dec                Angle
	DistanceKm         float64
	DistanceEarthRadii float64
	AngularDiameter    Angle
	Parallax           Angle // horizontal parallax
}

// ICRS returns the equatorial position as a coordinate.
func (p MoonPosition) ICRS() ICRSCoord { return ICRSCoord{RA: p.RA, Dec: p.Dec} }

// MoonPhaseInfo describes the Moon's phase from its mean elongation.
type MoonPhaseInfo struct {
	PhaseAngle   float64 // mean elongation D, degrees [0, 360)
	Illumination float64 // illuminated fraction, 0..1
	Phase        Phase
	AgeDays      float64 // days since new moon
}

// PercentIlluminated returns Illumination as a percentage.
func (i MoonPhaseInfo) PercentIlluminated() float64 { return i.Illumination * 100 }

// MoonMeanLongitude returns L'.
func MoonMeanLongitude(jd JulianDate) Angle {
	t := jd.T()
	return Degrees(218.3164477 + 481267.88123421*t - 0.0015786*t*t +
		t*t*t/538841 - t*t*t*t/65194000).Normalize()
}

// MoonMeanElongation returns D.
func MoonMeanElongation(jd JulianDate) Angle {
	t := jd.T()
	return Degrees(297.8501921 + 445267.1114034*t - 0.0018819*t*t +
		t*t*t/545868 - t*t*t*t/113065000).Normalize()
}

// MoonMeanAnomaly returns M'.
func MoonMeanAnomaly(jd JulianDate) Angle {
	t := jd.T()
	return Degrees(134.9633964 + 477198.8675055*t + 0.0087414*t*t +
		t*t*t/69699 - t*t*t*t/14712000).Normalize()
}

// MoonArgumentOfLatitude returns F.
func MoonArgumentOfLatitude(jd JulianDate) Angle {
	t := jd.T()
	return Degrees(93.2720950 + 483202.0175233*t - 0.0036539*t*t -
		t*t*t/3526000 + t*t*t*t/863310000).Normalize()
}

// sunMeanAnomalyLunar is the Sun's mean anomaly in the form Meeus uses
// with the lunar theory, Meeus 47.3.
func sunMeanAnomalyLunar(jd JulianDate) Angle {
	t := jd.T()
	return Degrees(357.5291092 + 35999.0502909*t - 0.0001536*t*t +
		t*t*t/24490000).Normalize()
}

// lunarTerm is one periodic term: coef × trig(d·D + m·M + mp·M' + f·F),
// multiplied by E when e is set.
type lunarTerm struct {
	d, m, mp, f float64
	coef        float64
	e           bool
}

// Longitude terms, sine, units of 1e-6 degree.
var sigmaL = []lunarTerm{
	{0, 0, 1, 0, 6288774, false},
	{2, 0, -1, 0, 1274027, false},
	{2, 0, 0, 0, 658314, false},
	{0, 0, 2, 0, 213618, false},
	{0, 1, 0, 0, -185116, true},
	{0, 0, 0, 2, -114332, false},
	{2, 0, -2, 0, 58793, false},
	{2, -1, -1, 0, 57066, true},
	{2, 0, 1, 0, 53322, false},
	{2, -1, 0, 0, 45758, true},
	{0, 1, -1, 0, -40923, true},
	{1, 0, 0, 0, -34720, false},
	{0, 1, 1, 0, -30383, true},
	{2, 0, 0, -2, 15327, false},
	{0, 0, 1, 2, -12528, false},
	{0, 0, 1, -2, 10980, false},
	{4, 0, -1, 0, 10675, false},
	{0, 0, 3, 0, 10034, false},
	{4, 0, -2, 0, 8548, false},
	{2, 1, -1, 0, -7888, true},
	{2, 1, 0, 0, -6766, true},
	{1, 0, -1, 0, -5163, false},
	{1, 1, 0, 0, 4987, true},
	{2, -1, 1, 0, 4036, true},
}

// Distance terms, cosine, units of 1e-3 km.
var sigmaR = []lunarTerm{
	{0, 0, 1, 0, -20905355, false},
	{2, 0, -1, 0, -3699111, false},
	{2, 0, 0, 0, -2955968, false},
	{0, 0, 2, 0, -569925, false},
	{0, 1, 0, 0, 48888, true},
	{0, 0, 0, 2, -3149, false},
	{2, 0, -2, 0, 246158, false},
	{2, -1, -1, 0, -152138, true},
	{2, 0, 1, 0, -170733, false},
	{2, -1, 0, 0, -204586, true},
	{0, 1, -1, 0, -129620, true},
	{1, 0, 0, 0, 108743, false},
	{0, 1, 1, 0, 104755, true},
	{0, 0, 1, -2, 79661, false},
}

// Latitude terms, sine, units of 1e-6 degree.
var sigmaB = []lunarTerm{
	{0, 0, 0, 1, 5128122, false},
	{0, 0, 1, 1, 280602, false},
	{0, 0, 1, -1, 277693, false},
	{2, 0, 0, -1, 173237, false},
	{2, 0, -1, 1, 55413, false},
	{2, 0, -1, -1, 46271, false},
	{2, 0, 0, 1, 32573, false},
	{0, 0, 2, 1, 17198, false},
	{2, 0, 1, -1, 9266, false},
	{0, 0, 2, -1, 8822, false},
	{2, -1, 0, -1, 8216, true},
	{2, 0, -2, -1, 4324, false},
	{2, 0, 1, 1, 4200, false},
	{2, 0, 0, 1, -2463, false},
	{2, -1, -1, 1, -1870, true},
	{4, 0, -1, -1, 1828, false},
}

type lunarArgs struct {
	d, m, mp, f float64 // radians
	e           float64
}

func (a lunarArgs) sum(terms []lunarTerm, trig func(float64) float64) float64 {
	var s float64
	for _, t := range terms {
		v := t.coef * trig(t.d*a.d+t.m*a.m+t.mp*a.mp+t.f*a.f)
		if t.e {
			v *= a.e
		}
		s += v
	}
	return s
}

// moonObliquity is the obliquity polynomial used for lunar coordinates.
func moonObliquity(t float64) Angle {
	return Degrees(23.439291 - 0.0130042*t - 1.64e-7*t*t + 5.04e-7*t*t*t)
}

// MoonPositionAt computes the Moon's geocentric position with the
// truncated Meeus chapter 47 series.
func MoonPositionAt(jd JulianDate, tr Tracer) MoonPosition {
	t := jd.T()
	trace(tr, "Julian century", "T = %.10f", t)

	lp := MoonMeanLongitude(jd)
	args := lunarArgs{
		d:  MoonMeanElongation(jd).Radians(),
		m:  sunMeanAnomalyLunar(jd).Radians(),
		mp: MoonMeanAnomaly(jd).Radians(),
		f:  MoonArgumentOfLatitude(jd).Radians(),
		e:  1 - 0.002516*t - 0.0000074*t*t,
	}
	trace(tr, "Fundamental arguments", "L' = %.6f°, D = %.6f°, M = %.6f°, M' = %.6f°, F = %.6f°",
		lp.Degrees(), Radians(args.d).Degrees(), Radians(args.m).Degrees(),
		Radians(args.mp).Degrees(), Radians(args.f).Degrees())
	trace(tr, "Earth eccentricity", "E = %.8f", args.e)

	a1 := Degrees(119.75 + 131.849*t).Radians()
	a2 := Degrees(53.09 + 479264.290*t).Radians()
	a3 := Degrees(313.45 + 481266.484*t).Radians()

	sl := args.sum(sigmaL, math.Sin) +
		3958*math.Sin(a1) +
		1962*math.Sin(lp.Radians()-args.f) +
		318*math.Sin(a2)
	sr := args.sum(sigmaR, math.Cos)
	sb := args.sum(sigmaB, math.Sin) -
		3359*math.Sin(a1-args.f) -
		1714*math.Sin(a3)

	lon := Degrees(lp.Degrees() + sl/1e6).Normalize()
	lat := Degrees(sb / 1e6)
	dist := lunarDistanceBaseKm + sr/1000
	trace(tr, "Σl", "%.6f°", sl/1e6)
	trace(tr, "Σb", "%.6f°", sb/1e6)
	trace(tr, "Σr", "%.2f km", sr/1000)
	trace(tr, "Ecliptic position", "λ = %.6f°, β = %.6f°, Δ = %.2f km", lon.Degrees(), lat.Degrees(), dist)

	eps := moonObliquity(t)
	ra, dec := EclipticToEquatorial(lon, lat, eps)
	trace(tr, "Equatorial coordinates", "ε = %.6f°, α = %.6f°, δ = %.6f°", eps.Degrees(), ra.Degrees(), dec.Degrees())

	pos := MoonPosition{
		JD:                 jd,
		Longitude:          lon,
		Latitude:           lat,
		RA:                 ra,
		Dec:                dec,
		DistanceKm:         dist,
		DistanceEarthRadii: dist / EarthEquatorialRadius,
		AngularDiameter:    Degrees(meanLunarDiameterDeg * MeanLunarDistance / dist),
		Parallax:           Radians(math.Asin(EarthEquatorialRadius / dist)),
	}
	trace(tr, "Angular diameter", "θ = %.4f°", pos.AngularDiameter.Degrees())
	trace(tr, "Horizontal parallax", "π = %.4f°", pos.Parallax.Degrees())
	return pos
}

// MoonPhaseAt classifies the phase from the mean elongation D. This is an
// approximation of the true Sun-Moon elongation; LunarDistanceToSun gives
// the accurate separation.
func MoonPhaseAt(jd JulianDate, tr Tracer) MoonPhaseInfo {
	return phaseFromElongation(MoonMeanElongation(jd).Degrees(), tr)
}

func phaseFromElongation(d float64, tr Tracer) MoonPhaseInfo {
	d = wrap360(d)
	info := MoonPhaseInfo{
		PhaseAngle:   d,
		Illumination: (1 - Degrees(d).Cos()) / 2,
		Phase:        PhaseFromElongation(d),
		AgeDays:      d / 360 * SynodicMonth,
	}
	trace(tr, "Phase angle", "i = %.2f°", d)
	trace(tr, "Illumination", "k = %.4f (%.1f%%)", info.Illumination, info.PercentIlluminated())
	trace(tr, "Phase", "%s, %.2f days since new moon", info.Phase, info.AgeDays)
	return info
}

// MoonAltitude returns the Moon's topocentric altitude: the geometric
// altitude reduced by parallax·cos(h).
func MoonAltitude(obs Observer, jd JulianDate, tr Tracer) Angle {
	pos := MoonPositionAt(jd, tr)
	geo := pos.ICRS().HorizontalAt(obs, jd).Alt
	corr := pos.Parallax.Degrees() * geo.Cos()
	alt := geo.Sub(Degrees(corr))
	trace(tr, "Geometric altitude", "h = %.4f°", geo.Degrees())
	trace(tr, "Parallax correction", "Δh = %.4f°", corr)
	trace(tr, "Apparent altitude", "h' = %.4f°", alt.Degrees())
	return alt
}

func moonAltitudeFunc(obs Observer) func(JulianDate) float64 {
	return func(jd JulianDate) float64 { return MoonAltitude(obs, jd, nil).Degrees() }
}

// Moonrise returns the first moonrise after local midnight.
func Moonrise(obs Observer, jd JulianDate, tr Tracer) (JulianDate, bool) {
	return moonEvent(obs, jd, Rising, "Moonrise", tr)
}

// Moonset returns the first moonset after local midnight.
func Moonset(obs Observer, jd JulianDate, tr Tracer) (JulianDate, bool) {
	return moonEvent(obs, jd, Setting, "Moonset", tr)
}

func moonEvent(obs Observer, jd JulianDate, dir Direction, label string, tr Tracer) (JulianDate, bool) {
	start := jd.LocalMidnight(obs.LonDeg())
	trace(tr, "Search start", "JD = %.6f, h₀ = %.3f°", start.JD, MoonRiseSetAltitude)
	ev, ok := DefaultSearch.Find(moonAltitudeFunc(obs), start, Threshold{Value: MoonRiseSetAltitude}, dir)
	if ok {
		trace(tr, label, "JD = %.6f", ev.JD)
	} else {
		trace(tr, label, "does not occur")
	}
	return ev, ok
}

// phaseSearch scans 10 days in 0.1-day steps around the predicted phase.
var phaseSearch = Search{Step: 0.1, Samples: 101, Iterations: 20}

// NextPhase returns the next time the mean elongation reaches the major
// phase p. Minor phases are spans, not instants, and return ErrMinorPhase.
func NextPhase(jd JulianDate, p Phase, tr Tracer) (JulianDate, error) {
	if !p.Major() {
		return JulianDate{}, fmt.Errorf("%w: %s", ErrMinorPhase, p)
	}
	target := p.Elongation()
	current := MoonMeanElongation(jd).Degrees()
	approx := wrap360(target-current) / 360 * SynodicMonth
	if approx < 1 {
		approx += SynodicMonth
	}
	trace(tr, "Target phase", "%s (D = %.0f°), about %.2f days ahead", p, target, approx)

	elong := func(j JulianDate) float64 { return MoonMeanElongation(j).Degrees() }
	start := jd.Add(approx - 2)
	ev, ok := phaseSearch.Find(elong, start, Threshold{Value: target, Period: 360}, Rising)
	if !ok {
		ev = jd.Add(SynodicMonth)
	}
	trace(tr, "Next "+p.String(), "JD = %.6f", ev.JD)
	return ev, nil
}

// LunarDistanceToSun returns the true angular separation of the Moon and
// Sun.
func LunarDistanceToSun(jd JulianDate, tr Tracer) Angle {
	moon := MoonPositionAt(jd, tr)
	sun := SunPositionAt(jd, tr)
	sep := AngularSeparation(moon.RA, moon.Dec, sun.RA, sun.Dec)
	trace(tr, "Moon-Sun separation", "θ = %.2f°", sep.Degrees())
	return sep
}

// PhaseEvent is a dated major phase.
type PhaseEvent struct {
	Phase Phase
	JD    JulianDate
}

// MoonEvents bundles the Moon's position, phase and daily events.
type MoonEvents struct {
	Position   MoonPosition
	Phase      MoonPhaseInfo
	Altitude   Angle
	Moonrise   *JulianDate
	Moonset    *JulianDate
	NextPhases []PhaseEvent // upcoming major phases in time order
}

// MoonEventsAt computes the Moon's position, phase and daily events.
func MoonEventsAt(obs Observer, jd JulianDate, tr Tracer) MoonEvents {
	ev := MoonEvents{
		Position: MoonPositionAt(jd, tr),
		Phase:    MoonPhaseAt(jd, tr),
		Altitude: MoonAltitude(obs, jd, nil),
	}
	if r, ok := Moonrise(obs, jd, tr); ok {
		ev.Moonrise = &r
	}
	if s, ok := Moonset(obs, jd, tr); ok {
		ev.Moonset = &s
	}
	for _, p := range []Phase{NewMoon, FirstQuarter, FullMoon, LastQuarter} {
		when, err := NextPhase(jd, p, nil)
		if err != nil {
			continue
		}
		ev.NextPhases = append(ev.NextPhases, PhaseEvent{Phase: p, JD: when})
	}
	sort.Slice(ev.NextPhases, func(i, j int) bool {
		return ev.NextPhases[i].JD.Before(ev.NextPhases[j].JD)
	})
	return ev
}

// normalizeKey lowercases s and drops spaces, dashes and underscores.
func normalizeKey(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '_':
			return -1
		}
		return unicode.ToLower(r)
	}, strings.TrimSpace(s))
}
