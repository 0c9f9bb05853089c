// Package astro provides astronomical coordinate transformations and sky math.
package astro

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/soniakeys/unit"
)

// Angle is an angular measurement stored in degrees.
//
// Construction never clamps: an Angle may hold 720° or -450°. Only the
// Normalize family wraps values into a range.
type Angle struct {
	deg float64
}

// AngleUnits selects the unit an Angle is built from. Exactly one field
// must be set.
type AngleUnits struct {
	Degrees    *float64
	Radians    *float64
	Hours      *float64
	Arcminutes *float64
	Arcseconds *float64
}

// NewAngle builds an Angle from exactly one unit.
func NewAngle(u AngleUnits) (Angle, error) {
	var (
		n int
		a Angle
	)
	if u.Degrees != nil {
		n++
		a = Degrees(*u.Degrees)
	}
	if u.Radians != nil {
		n++
		a = Radians(*u.Radians)
	}
	if u.Hours != nil {
		n++
		a = Hours(*u.Hours)
	}
	if u.Arcminutes != nil {
		n++
		a = Arcminutes(*u.Arcminutes)
	}
	if u.Arcseconds != nil {
		n++
		a = Arcseconds(*u.Arcseconds)
	}
	if n != 1 {
		return Angle{}, fmt.Errorf("angle: got %d units: %w", n, ErrUnitCount)
	}
	return a, nil
}

// Degrees returns an Angle of d degrees.
func Degrees(d float64) Angle { return Angle{deg: d} }

// Radians returns an Angle of r radians.
func Radians(r float64) Angle { return Angle{deg: r * 180 / math.Pi} }

// Hours returns an Angle of h hours of right ascension (15° per hour).
func Hours(h float64) Angle { return Angle{deg: h * 15} }

// Arcminutes returns an Angle of m arcminutes.
func Arcminutes(m float64) Angle { return Angle{deg: m / 60} }

// Arcseconds returns an Angle of s arcseconds.
func Arcseconds(s float64) Angle { return Angle{deg: s / 3600} }

// FromDMS builds an Angle from degrees, minutes and seconds. The sign of the
// first non-zero component applies to the whole value, so FromDMS(0, -30, 0)
// is -0.5°.
func FromDMS(d, m int, s float64) Angle {
	return Degrees(fromSexa(d, m, s))
}

// FromHMS builds an Angle from hours, minutes and seconds with the same sign
// rule as FromDMS.
func FromHMS(h, m int, s float64) Angle {
	return Hours(fromSexa(h, m, s))
}

func fromSexa(a, b int, c float64) float64 {
	var neg byte
	switch {
	case a != 0:
		if a < 0 {
			neg = '-'
		}
	case b != 0:
		if b < 0 {
			neg = '-'
		}
	case c < 0:
		neg = '-'
	}
	return unit.FromSexa(neg, absInt(a), absInt(b), math.Abs(c))
}

func absInt(i int) int {
	if i < 0 {
		return -i
	}
	return i
}

// Degrees returns the angle in degrees.
func (a Angle) Degrees() float64 { return a.deg }

// Radians returns the angle in radians.
func (a Angle) Radians() float64 { return a.deg * math.Pi / 180 }

// Hours returns the angle in hours.
func (a Angle) Hours() float64 { return a.deg / 15 }

// Arcminutes returns the angle in arcminutes.
func (a Angle) Arcminutes() float64 { return a.deg * 60 }

// Arcseconds returns the angle in arcseconds.
func (a Angle) Arcseconds() float64 { return a.deg * 3600 }

// DMS splits the angle into degrees, minutes and seconds. The first non-zero
// component carries the sign, so FromDMS(a.DMS()) gives a back.
func (a Angle) DMS() (d, m int, s float64) {
	return sexagesimal(a.deg)
}

// HMS splits the angle into hours, minutes and seconds with the same sign
// rule as DMS.
func (a Angle) HMS() (h, m int, s float64) {
	return sexagesimal(a.deg / 15)
}

func sexagesimal(v float64) (int, int, float64) {
	neg := v < 0
	v = math.Abs(v)
	whole := math.Floor(v)
	minutes := (v - whole) * 60
	m := math.Floor(minutes)
	s := (minutes - m) * 60

	// Carry rounding noise like 29.999999999 s upwards.
	if s >= 60-1e-9 {
		s = 0
		m++
	}
	if m >= 60 {
		m = 0
		whole++
	}

	d, mi := int(whole), int(m)
	if neg {
		switch {
		case d != 0:
			d = -d
		case mi != 0:
			mi = -mi
		default:
			s = -s
		}
	}
	return d, mi, s
}

// Add returns a + b.
func (a Angle) Add(b Angle) Angle { return Angle{deg: a.deg + b.deg} }

// Sub returns a - b.
func (a Angle) Sub(b Angle) Angle { return Angle{deg: a.deg - b.deg} }

// Mul scales the angle.
func (a Angle) Mul(f float64) Angle { return Angle{deg: a.deg * f} }

// Div divides the angle by a scalar. Dividing by zero is an error rather
// than an infinite angle.
func (a Angle) Div(f float64) (Angle, error) {
	if f == 0 {
		return Angle{}, ErrDivideByZero
	}
	return Angle{deg: a.deg / f}, nil
}

// Neg returns -a.
func (a Angle) Neg() Angle { return Angle{deg: -a.deg} }

// Abs returns |a|.
func (a Angle) Abs() Angle { return Angle{deg: math.Abs(a.deg)} }

// Normalize wraps the angle into [0°, 360°).
func (a Angle) Normalize() Angle {
	return Angle{deg: wrap360(a.deg)}
}

// NormalizeAround wraps the angle into (center-180°, center+180°]. With a
// center of 0 it agrees with NormalizeSigned.
func (a Angle) NormalizeAround(center float64) Angle {
	hi := center + 180
	return Angle{deg: hi - wrap360(hi-a.deg)}
}

// NormalizeSigned wraps the angle into (-180°, 180°].
func (a Angle) NormalizeSigned() Angle {
	d := wrap360(a.deg)
	if d > 180 {
		d -= 360
	}
	return Angle{deg: d}
}

// wrap360 maps any finite value into [0, 360).
func wrap360(d float64) float64 {
	return wrapPeriod(d, 360)
}

func wrapPeriod(x, period float64) float64 {
	r := unit.PMod(x, period)
	if r >= period {
		// -1e-17 + 360 rounds up to exactly 360.
		r = 0
	}
	return r
}

// Sin returns the sine of the angle.
func (a Angle) Sin() float64 { return math.Sin(a.Radians()) }

// Cos returns the cosine of the angle.
func (a Angle) Cos() float64 { return math.Cos(a.Radians()) }

// Tan returns the tangent of the angle.
func (a Angle) Tan() float64 { return math.Tan(a.Radians()) }

// String formats the angle as signed DMS.
func (a Angle) String() string { return a.FormatDMS(1) }

// FormatDMS formats the angle as ±DD°MM′SS.s″ with the given number of
// decimals on the seconds.
func (a Angle) FormatDMS(decimals int) string {
	d, m, s := sexagesimal(math.Abs(a.deg))
	sign := "+"
	if a.deg < 0 {
		sign = "-"
	}
	return fmt.Sprintf("%s%02d°%02d′%0*.*f″", sign, d, m, secWidth(decimals), decimals, s)
}

// FormatHMS formats the angle as HHhMMmSS.ss s with the given number of
// decimals on the seconds.
func (a Angle) FormatHMS(decimals int) string {
	h, m, s := sexagesimal(math.Abs(a.deg / 15))
	sign := ""
	if a.deg < 0 {
		sign = "-"
	}
	return fmt.Sprintf("%s%02dh%02dm%0*.*fs", sign, h, m, secWidth(decimals), decimals, s)
}

func secWidth(decimals int) int {
	if decimals <= 0 {
		return 2
	}
	return decimals + 3
}

var (
	numPart = `(\d+(?:\.\d*)?|\.\d+)`

	reDecimal  = regexp.MustCompile(`^([+-]?)` + numPart + `$`)
	reDegSufx  = regexp.MustCompile(`^([+-]?)` + numPart + `\s*[d°]$`)
	reHMS      = regexp.MustCompile(`^([+-]?)` + numPart + `\s*h(?:\s*` + numPart + `\s*m)?(?:\s*` + numPart + `\s*s)?$`)
	reDMS      = regexp.MustCompile(`^([+-]?)` + numPart + `\s*[d°](?:\s*` + numPart + `\s*[m′'])?(?:\s*` + numPart + `\s*[s″"])?$`)
	reColon    = regexp.MustCompile(`^([+-]?)` + numPart + `:` + numPart + `(?::` + numPart + `)?$`)
	reSpaceDMS = regexp.MustCompile(`^([+-]?)` + numPart + `\s+` + numPart + `(?:\s+` + numPart + `)?$`)
)

// ParseAngle reads an angle from text. Accepted forms:
//
//	45.5  -45.5  45.5d  45d30m00s  45°30′00″  45:30:00  45 30 00  12h30m00s
//
// The 'h' marker selects hours; everything else is degrees.
func ParseAngle(text string) (Angle, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return Angle{}, &ParseError{Kind: "angle", Text: text}
	}

	if m := reDecimal.FindStringSubmatch(s); m != nil {
		return Degrees(sexaValue(m)), nil
	}
	if m := reDegSufx.FindStringSubmatch(s); m != nil {
		return Degrees(sexaValue(m)), nil
	}
	if m := reHMS.FindStringSubmatch(s); m != nil {
		return Hours(sexaValue(m)), nil
	}
	for _, re := range []*regexp.Regexp{reDMS, reColon, reSpaceDMS} {
		if m := re.FindStringSubmatch(s); m != nil {
			return Degrees(sexaValue(m)), nil
		}
	}
	return Angle{}, &ParseError{Kind: "angle", Text: text}
}

// sexaValue combines regexp groups [sign, whole, minutes, seconds]. Missing
// groups count as zero.
func sexaValue(m []string) float64 {
	var v float64
	scale := 1.0
	for _, g := range m[2:] {
		if g != "" {
			f, _ := strconv.ParseFloat(g, 64)
			v += f / scale
		}
		scale *= 60
	}
	if m[1] == "-" {
		v = -v
	}
	return v
}
