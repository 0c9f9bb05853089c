package astro

import (
	"fmt"
	"math"
	"strings"
)

// SunPosition is the Sun's apparent geocentric position at one instant.
type SunPosition struct {
	JD             JulianDate
	Longitude      Angle   // apparent ecliptic longitude
	Latitude       Angle   // ecliptic latitude, taken as zero
	RA             Angle   // apparent right ascension
	Dec            Angle   // apparent declination
	DistanceAU     float64 // Earth-Sun distance
	EquationOfTime float64 // apparent minus mean solar time, minutes
}

// ICRS returns the equatorial position as a coordinate.
func (p SunPosition) ICRS() ICRSCoord { return ICRSCoord{RA: p.RA, Dec: p.Dec} }

// SunMeanLongitude returns L0, Meeus 25.2.
func SunMeanLongitude(jd JulianDate) Angle {
	t := jd.T()
	return Degrees(280.46646 + 36000.76983*t + 0.0003032*t*t).Normalize()
}

// SunMeanAnomaly returns M, Meeus 25.3.
func SunMeanAnomaly(jd JulianDate) Angle {
	t := jd.T()
	return Degrees(357.52911 + 35999.05029*t - 0.0001537*t*t).Normalize()
}

// EarthEccentricity returns the eccentricity of Earth's orbit, Meeus 25.4.
func EarthEccentricity(jd JulianDate) float64 {
	t := jd.T()
	return 0.016708634 - 0.000042037*t - 0.0000001267*t*t
}

// SunEquationOfCenter returns C.
func SunEquationOfCenter(jd JulianDate) Angle {
	t := jd.T()
	m := SunMeanAnomaly(jd).Radians()
	c := (1.914602-0.004817*t-0.000014*t*t)*math.Sin(m) +
		(0.019993-0.000101*t)*math.Sin(2*m) +
		0.000289*math.Sin(3*m)
	return Degrees(c)
}

// SunTrueLongitude returns L0 + C.
func SunTrueLongitude(jd JulianDate) Angle {
	return SunMeanLongitude(jd).Add(SunEquationOfCenter(jd)).Normalize()
}

// lunarNodeOmega is the longitude of the Moon's ascending node used by the
// low-precision nutation and aberration terms.
func lunarNodeOmega(jd JulianDate) Angle {
	return Degrees(125.04 - 1934.136*jd.T())
}

// SunApparentLongitude corrects the true longitude for nutation and
// aberration.
func SunApparentLongitude(jd JulianDate) Angle {
	omega := lunarNodeOmega(jd)
	return SunTrueLongitude(jd).Add(Degrees(-0.00569 - 0.00478*omega.Sin())).Normalize()
}

// MeanObliquity returns the mean obliquity of the ecliptic, Meeus 22.2.
func MeanObliquity(jd JulianDate) Angle {
	t := jd.T()
	return Arcseconds(84381.448 - 46.8150*t - 0.00059*t*t + 0.001813*t*t*t)
}

// TrueObliquity adds the low-precision nutation in obliquity.
func TrueObliquity(jd JulianDate) Angle {
	return MeanObliquity(jd).Add(Degrees(0.00256 * lunarNodeOmega(jd).Cos()))
}

// SunDistance returns the Earth-Sun distance in AU, Meeus 25.5.
func SunDistance(jd JulianDate) float64 {
	e := EarthEccentricity(jd)
	v := SunMeanAnomaly(jd).Add(SunEquationOfCenter(jd))
	return 1.000001018 * (1 - e*e) / (1 + e*v.Cos())
}

// EquationOfTime returns apparent minus mean solar time in minutes,
// Meeus 28.3.
func EquationOfTime(jd JulianDate) float64 {
	l0 := SunMeanLongitude(jd).Radians()
	m := SunMeanAnomaly(jd).Radians()
	e := EarthEccentricity(jd)
	y := math.Pow(math.Tan(MeanObliquity(jd).Radians()/2), 2)

	eq := y*math.Sin(2*l0) -
		2*e*math.Sin(m) +
		4*e*y*math.Sin(m)*math.Cos(2*l0) -
		0.5*y*y*math.Sin(4*l0) -
		1.25*e*e*math.Sin(2*m)

	return Radians(eq).Degrees() * 4
}

// SunPositionAt computes the Sun's apparent position.
func SunPositionAt(jd JulianDate, tr Tracer) SunPosition {
	trace(tr, "Sun position", "JD = %.6f, T = %.10f", jd.JD, jd.T())

	lon := SunApparentLongitude(jd)
	eps := TrueObliquity(jd)
	trace(tr, "Apparent longitude", "λ = %.6f°", lon.Degrees())
	trace(tr, "True obliquity", "ε = %.6f°", eps.Degrees())

	ra, dec := EclipticToEquatorial(lon, Angle{}, eps)
	trace(tr, "Equatorial coordinates", "α = %s, δ = %s", ra.FormatHMS(2), dec.FormatDMS(1))

	r := SunDistance(jd)
	eot := EquationOfTime(jd)
	trace(tr, "Sun distance", "R = %.9f AU", r)
	trace(tr, "Equation of time", "E = %.2f min", eot)

	return SunPosition{
		JD:             jd,
		Longitude:      lon,
		RA:             ra,
		Dec:            dec,
		DistanceAU:     r,
		EquationOfTime: eot,
	}
}

// SolarAltitude returns the Sun's geometric altitude for an observer.
func SolarAltitude(obs Observer, jd JulianDate, tr Tracer) Angle {
	h := SunPositionAt(jd, tr).ICRS().HorizontalAt(obs, jd)
	trace(tr, "Solar altitude", "h☉ = %.4f°", h.Alt.Degrees())
	return h.Alt
}

func solarAltitudeFunc(obs Observer) func(JulianDate) float64 {
	return func(jd JulianDate) float64 {
		return SunPositionAt(jd, nil).ICRS().HorizontalAt(obs, jd).Alt.Degrees()
	}
}

// Sunrise returns the first time after local midnight that the Sun's upper
// limb clears the refracted horizon.
func Sunrise(obs Observer, jd JulianDate, tr Tracer) (JulianDate, bool) {
	return solarEvent(obs, jd, SunRiseSetAltitude, Rising, "Sunrise", tr)
}

// Sunset returns the first sunset after local midnight.
func Sunset(obs Observer, jd JulianDate, tr Tracer) (JulianDate, bool) {
	return solarEvent(obs, jd, SunRiseSetAltitude, Setting, "Sunset", tr)
}

func solarEvent(obs Observer, jd JulianDate, threshold float64, dir Direction, label string, tr Tracer) (JulianDate, bool) {
	start := jd.LocalMidnight(obs.LonDeg())
	trace(tr, "Search start", "JD = %.6f, h₀ = %.4f°", start.JD, threshold)
	ev, ok := DefaultSearch.Find(solarAltitudeFunc(obs), start, Threshold{Value: threshold}, dir)
	if ok {
		trace(tr, label, "JD = %.6f", ev.JD)
	} else {
		trace(tr, label, "does not occur")
	}
	return ev, ok
}

// SolarNoon returns the analytic solar transit for the UT day containing jd.
func SolarNoon(obs Observer, jd JulianDate, tr Tracer) JulianDate {
	jd0 := JulianDate{JD: math.Floor(jd.JD-0.5) + 0.5}
	eot := EquationOfTime(jd0)
	frac := wrapPeriod(0.5-obs.LonDeg()/360-eot/1440, 1)
	noon := jd0.Add(frac)
	trace(tr, "Solar transit", "JD₀ = %.1f, E = %.2f min, JD = %.6f", jd0.JD, eot, noon.JD)
	return noon
}

// DayLength returns the hours between sunrise and sunset. The bool is false
// during polar day or night.
func DayLength(obs Observer, jd JulianDate, tr Tracer) (float64, bool) {
	rise, ok := Sunrise(obs, jd, tr)
	if !ok {
		return 0, false
	}
	set, ok := Sunset(obs, jd, tr)
	if !ok {
		return 0, false
	}
	hours := set.Since(rise) * 24
	if hours < 0 {
		// Sunset fell before sunrise in the scan window; use the next one.
		if next, ok := DefaultSearch.Find(solarAltitudeFunc(obs), rise, Threshold{Value: SunRiseSetAltitude}, Setting); ok {
			hours = next.Since(rise) * 24
		}
	}
	trace(tr, "Day length", "%.2f hours", hours)
	return hours, true
}

// Twilight selects a twilight definition.
type Twilight int

const (
	TwilightCivil Twilight = iota
	TwilightNautical
	TwilightAstronomical
)

// ParseTwilight resolves "civil", "nautical" or "astronomical".
func ParseTwilight(name string) (Twilight, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "civil":
		return TwilightCivil, nil
	case "nautical":
		return TwilightNautical, nil
	case "astronomical", "astro", "":
		return TwilightAstronomical, nil
	}
	return 0, fmt.Errorf("unknown twilight %q", name)
}

// Altitude returns the Sun altitude that bounds this twilight.
func (t Twilight) Altitude() float64 {
	switch t {
	case TwilightCivil:
		return CivilTwilight
	case TwilightNautical:
		return NauticalTwilight
	default:
		return AstronomicalTwilight
	}
}

func (t Twilight) String() string {
	switch t {
	case TwilightCivil:
		return "civil"
	case TwilightNautical:
		return "nautical"
	default:
		return "astronomical"
	}
}

// TwilightTimes holds the morning start and evening end of a twilight. A
// nil field means the Sun does not cross that altitude in the window.
type TwilightTimes struct {
	Kind    Twilight
	Morning *JulianDate
	Evening *JulianDate
}

// TwilightAt finds morning and evening twilight for the day of jd.
func TwilightAt(obs Observer, jd JulianDate, kind Twilight, tr Tracer) TwilightTimes {
	out := TwilightTimes{Kind: kind}
	label := strings.ToUpper(kind.String()[:1]) + kind.String()[1:]
	if m, ok := solarEvent(obs, jd, kind.Altitude(), Rising, label+" dawn", tr); ok {
		out.Morning = &m
	}
	if e, ok := solarEvent(obs, jd, kind.Altitude(), Setting, label+" dusk", tr); ok {
		out.Evening = &e
	}
	return out
}

// SunEvents bundles the Sun's daily events for one observer and day.
type SunEvents struct {
	Position  SunPosition
	Altitude  Angle
	Sunrise   *JulianDate
	Sunset    *JulianDate
	SolarNoon JulianDate
	DayLength *float64 // hours
	Twilights []TwilightTimes
}

// SunEventsAt computes the Sun's position and daily events.
func SunEventsAt(obs Observer, jd JulianDate, tr Tracer) SunEvents {
	ev := SunEvents{
		Position:  SunPositionAt(jd, tr),
		Altitude:  SolarAltitude(obs, jd, nil),
		SolarNoon: SolarNoon(obs, jd, tr),
	}
	if r, ok := Sunrise(obs, jd, tr); ok {
		ev.Sunrise = &r
	}
	if s, ok := Sunset(obs, jd, tr); ok {
		ev.Sunset = &s
	}
	if h, ok := DayLength(obs, jd, nil); ok {
		ev.DayLength = &h
	}
	for _, k := range []Twilight{TwilightCivil, TwilightNautical, TwilightAstronomical} {
		ev.Twilights = append(ev.Twilights, TwilightAt(obs, jd, k, tr))
	}
	return ev
}
