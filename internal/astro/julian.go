package astro

import (
	"fmt"
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
)

const (
	// J2000 is the Julian Date of the J2000.0 epoch.
	J2000 = 2451545.0
	// MJDOffset converts between JD and Modified Julian Date.
	MJDOffset = 2400000.5
	// DaysPerJulianCentury is exact by definition.
	DaysPerJulianCentury = 36525.0
	// DaysPerJulianYear is exact by definition.
	DaysPerJulianYear = 365.25

	unixEpochJD       = 2440587.5
	siderealDegPerDay = 360.98564736629
)

// JulianDate is a continuous day count. The value is never wrapped or
// clamped.
type JulianDate struct {
	JD float64
}

// NewJulianDate wraps a raw day count.
func NewJulianDate(jd float64) JulianDate { return JulianDate{JD: jd} }

// J2000Epoch returns JD 2451545.0.
func J2000Epoch() JulianDate { return JulianDate{JD: J2000} }

// FromMJD converts a Modified Julian Date.
func FromMJD(mjd float64) JulianDate { return JulianDate{JD: mjd + MJDOffset} }

// FromTime converts an instant in any location. The location only affects
// how t was expressed; the JD is of the UTC instant.
func FromTime(t time.Time) JulianDate {
	t = t.UTC()
	dayFrac := (float64(t.Hour()) +
		float64(t.Minute())/60 +
		float64(t.Second())/3600 +
		float64(t.Nanosecond())/3600e9) / 24.0
	return JulianDate{JD: calendarToJD(t.Year(), int(t.Month()), float64(t.Day())+dayFrac)}
}

// Now returns the current JD.
func Now() JulianDate { return FromTime(time.Now()) }

// FromCalendar builds a JD from explicit proleptic Gregorian UTC components.
// Dates that do not exist (2001-02-29, 2100-02-29, 2024-04-31) are rejected.
func FromCalendar(year, month, day, hour, minute int, second float64) (JulianDate, error) {
	if err := validateCalendar(year, month, day, hour, minute, second); err != nil {
		return JulianDate{}, err
	}
	dayFrac := (float64(hour) + float64(minute)/60 + second/3600) / 24.0
	return JulianDate{JD: calendarToJD(year, month, float64(day)+dayFrac)}, nil
}

var monthDays = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

func validateCalendar(year, month, day, hour, minute int, second float64) error {
	bad := func(reason string) error {
		return &CalendarError{Year: year, Month: month, Day: day, Reason: reason}
	}
	if month < 1 || month > 12 {
		return bad(fmt.Sprintf("month %d outside 1-12", month))
	}
	last := monthDays[month-1]
	if month == 2 && julian.LeapYearGregorian(year) {
		last = 29
	}
	if day < 1 || day > last {
		return bad(fmt.Sprintf("day %d outside 1-%d", day, last))
	}
	if hour < 0 || hour > 23 {
		return bad(fmt.Sprintf("hour %d outside 0-23", hour))
	}
	if minute < 0 || minute > 59 {
		return bad(fmt.Sprintf("minute %d outside 0-59", minute))
	}
	if math.IsNaN(second) || second < 0 || second >= 60 {
		return bad(fmt.Sprintf("second %g outside [0, 60)", second))
	}
	return nil
}

// calendarToJD is the Meeus Gregorian calendar to JD conversion, applied
// proleptically. d carries the fraction of the day.
func calendarToJD(year, month int, d float64) float64 {
	y := float64(year)
	m := float64(month)

	// January and February count as months 13 and 14 of the previous year.
	if m <= 2 {
		y--
		m += 12
	}

	a := math.Floor(y / 100)
	b := 2 - a + math.Floor(a/4)

	return math.Floor(365.25*(y+4716)) +
		math.Floor(30.6001*(m+1)) +
		d + b - 1524.5
}

// Time converts back to a UTC instant, rounded to the millisecond. A
// float64 JD near the present only resolves about 40µs.
func (j JulianDate) Time() time.Time {
	ms := int64(math.Round((j.JD - unixEpochJD) * 86400e3))
	return time.UnixMilli(ms).UTC()
}

// MJD returns the Modified Julian Date.
func (j JulianDate) MJD() float64 { return j.JD - MJDOffset }

// T returns Julian centuries since J2000.0.
func (j JulianDate) T() float64 { return (j.JD - J2000) / DaysPerJulianCentury }

// Add shifts the date by a number of days.
func (j JulianDate) Add(days float64) JulianDate { return JulianDate{JD: j.JD + days} }

// Sub shifts the date back by a number of days.
func (j JulianDate) Sub(days float64) JulianDate { return JulianDate{JD: j.JD - days} }

// Since returns j - other in days.
func (j JulianDate) Since(other JulianDate) float64 { return j.JD - other.JD }

// Before reports whether j is earlier than other.
func (j JulianDate) Before(other JulianDate) bool { return j.JD < other.JD }

// GMSTDegrees returns Greenwich Mean Sidereal Time as an angle in [0, 360),
// IAU 1982.
func (j JulianDate) GMSTDegrees() float64 {
	d := j.JD - J2000
	t := d / DaysPerJulianCentury
	gmst := 280.46061837 +
		siderealDegPerDay*d +
		0.000387933*t*t -
		t*t*t/38710000.0
	return wrap360(gmst)
}

// GMST returns Greenwich Mean Sidereal Time in hours, [0, 24).
func (j JulianDate) GMST() float64 {
	return wrapPeriod(j.GMSTDegrees()/15, 24)
}

// LST returns Local Mean Sidereal Time in hours for an east-positive
// longitude in degrees.
func (j JulianDate) LST(lonDeg float64) float64 {
	return wrapPeriod(j.GMST()+lonDeg/15, 24)
}

// LocalMidnight returns the start of the search day for an observer at
// lonDeg: floor(jd-0.5)+0.5+lon/360.
func (j JulianDate) LocalMidnight(lonDeg float64) JulianDate {
	return JulianDate{JD: math.Floor(j.JD-0.5) + 0.5 + lonDeg/360.0}
}

// String formats the date as "JD 2451545.000000".
func (j JulianDate) String() string {
	return fmt.Sprintf("JD %.6f", j.JD)
}
