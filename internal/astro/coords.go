package astro

import (
	"fmt"
	"math"
	"strings"
)

// North Galactic Pole and the galactic longitude of the North Celestial
// Pole, J2000.
const (
	ngpRADeg  = 192.85948
	ngpDecDeg = 27.12825
	ncpLDeg   = 122.93192
)

// Frame names a celestial reference frame.
type Frame int

const (
	FrameICRS Frame = iota
	FrameGalactic
)

func (f Frame) String() string {
	switch f {
	case FrameICRS:
		return "icrs"
	case FrameGalactic:
		return "galactic"
	default:
		return fmt.Sprintf("frame(%d)", int(f))
	}
}

// ParseFrame resolves a frame name or alias, case-insensitively.
func ParseFrame(name string) (Frame, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "icrs", "j2000", "equatorial", "eq", "fk5":
		return FrameICRS, nil
	case "galactic", "gal":
		return FrameGalactic, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFrame, name)
}

// Coord is a position in an observer-independent frame.
type Coord interface {
	Frame() Frame
	ToICRS() ICRSCoord
	String() string
}

// Transform converts c into the frame named by system.
func Transform(c Coord, system string) (Coord, error) {
	f, err := ParseFrame(system)
	if err != nil {
		return nil, err
	}
	if c.Frame() == f {
		return c, nil
	}
	switch f {
	case FrameGalactic:
		return c.ToICRS().ToGalactic(), nil
	default:
		return c.ToICRS(), nil
	}
}

// ICRSCoord is an equatorial position, J2000-aligned.
type ICRSCoord struct {
	RA  Angle
	Dec Angle
}

// NewICRS validates Dec and builds an ICRSCoord. RA is not constrained.
func NewICRS(ra, dec Angle) (ICRSCoord, error) {
	if err := checkLatitude("declination", dec.Degrees()); err != nil {
		return ICRSCoord{}, err
	}
	return ICRSCoord{RA: ra, Dec: dec}, nil
}

// ICRSFromDegrees builds an ICRSCoord from decimal degrees.
func ICRSFromDegrees(raDeg, decDeg float64) (ICRSCoord, error) {
	return NewICRS(Degrees(raDeg), Degrees(decDeg))
}

// ICRSFromHMSDMS builds an ICRSCoord from sexagesimal RA and Dec.
func ICRSFromHMSDMS(raH, raM int, raS float64, decD, decM int, decS float64) (ICRSCoord, error) {
	return NewICRS(FromHMS(raH, raM, raS), FromDMS(decD, decM, decS))
}

// ParseICRS reads "RA Dec" text such as "12h30m00s +45d30m00s",
// "12:30:00 +45:30:00", "12 30 00 +45 30 00" or "187.5 45.5". A
// colon-delimited RA is read as hours.
func ParseICRS(text string) (ICRSCoord, error) {
	fields := strings.Fields(text)
	var raText, decText string
	switch len(fields) {
	case 2:
		raText, decText = fields[0], fields[1]
	case 6:
		raText = strings.Join(fields[:3], ":")
		decText = strings.Join(fields[3:], ":")
	default:
		return ICRSCoord{}, &ParseError{Kind: "coordinate", Text: text}
	}

	ra, err := ParseAngle(raText)
	if err != nil {
		return ICRSCoord{}, &ParseError{Kind: "coordinate", Text: text}
	}
	if strings.Contains(raText, ":") {
		ra = Hours(ra.Degrees())
	}
	dec, err := ParseAngle(decText)
	if err != nil {
		return ICRSCoord{}, &ParseError{Kind: "coordinate", Text: text}
	}
	return NewICRS(ra, dec)
}

// Frame implements Coord.
func (c ICRSCoord) Frame() Frame { return FrameICRS }

// ToICRS implements Coord.
func (c ICRSCoord) ToICRS() ICRSCoord { return c }

func (c ICRSCoord) String() string {
	return fmt.Sprintf("RA %s  Dec %s", c.RA.Normalize().FormatHMS(2), c.Dec.FormatDMS(1))
}

// ToGalactic applies the IAU equatorial to galactic rotation.
func (c ICRSCoord) ToGalactic() GalacticCoord {
	sinDec, cosDec := math.Sincos(c.Dec.Radians())
	sinDG, cosDG := math.Sincos(ngpDecDeg * math.Pi / 180)
	sinDA, cosDA := math.Sincos(c.RA.Radians() - ngpRADeg*math.Pi/180)

	sinB := sinDec*sinDG + cosDec*cosDG*cosDA
	b := math.Asin(clamp1(sinB))

	y := cosDec * sinDA
	x := sinDec*cosDG - cosDec*sinDG*cosDA
	l := ncpLDeg - math.Atan2(y, x)*180/math.Pi

	return GalacticCoord{L: Degrees(wrap360(l)), B: Radians(b)}
}

// GalacticCoord is a position in galactic longitude and latitude.
type GalacticCoord struct {
	L Angle
	B Angle
}

// NewGalactic validates b and builds a GalacticCoord.
func NewGalactic(l, b Angle) (GalacticCoord, error) {
	if err := checkLatitude("galactic latitude", b.Degrees()); err != nil {
		return GalacticCoord{}, err
	}
	return GalacticCoord{L: l, B: b}, nil
}

// Frame implements Coord.
func (g GalacticCoord) Frame() Frame { return FrameGalactic }

// ToICRS applies the inverse galactic rotation.
func (g GalacticCoord) ToICRS() ICRSCoord {
	sinB, cosB := math.Sincos(g.B.Radians())
	sinDG, cosDG := math.Sincos(ngpDecDeg * math.Pi / 180)
	sinDL, cosDL := math.Sincos(ncpLDeg*math.Pi/180 - g.L.Radians())

	sinDec := sinB*sinDG + cosB*cosDG*cosDL
	dec := math.Asin(clamp1(sinDec))

	y := cosB * sinDL
	x := sinB*cosDG - cosB*sinDG*cosDL
	ra := ngpRADeg + math.Atan2(y, x)*180/math.Pi

	return ICRSCoord{RA: Degrees(wrap360(ra)), Dec: Radians(dec)}
}

func (g GalacticCoord) String() string {
	return fmt.Sprintf("l %.4f°  b %+.4f°", g.L.Normalize().Degrees(), g.B.Degrees())
}

// HorizontalCoord is an observer- and time-dependent altitude/azimuth.
// Azimuth runs N=0°, E=90°, S=180°, W=270°.
type HorizontalCoord struct {
	Alt Angle
	Az  Angle
}

// NewHorizontal validates alt and builds a HorizontalCoord.
func NewHorizontal(alt, az Angle) (HorizontalCoord, error) {
	if err := checkLatitude("altitude", alt.Degrees()); err != nil {
		return HorizontalCoord{}, err
	}
	return HorizontalCoord{Alt: alt, Az: az}, nil
}

// ZenithAngle returns 90° - altitude.
func (h HorizontalCoord) ZenithAngle() Angle { return Degrees(90 - h.Alt.Degrees()) }

// Airmass returns the plane-parallel airmass 1/cos(z), +Inf on or below the
// horizon. Use the package-level Airmass for the horizon-safe formula.
func (h HorizontalCoord) Airmass() float64 {
	if h.Alt.Degrees() <= 0 {
		return math.Inf(1)
	}
	return 1 / h.ZenithAngle().Cos()
}

func (h HorizontalCoord) String() string {
	return fmt.Sprintf("Alt %+.4f°  Az %.4f°", h.Alt.Degrees(), h.Az.Normalize().Degrees())
}

// HorizontalParams carries the observer and time for ToHorizontal. All
// three fields are required.
type HorizontalParams struct {
	JD        *JulianDate
	Latitude  *Angle
	Longitude *Angle
}

// ToHorizontal converts to altitude/azimuth for the given time and place.
func (c ICRSCoord) ToHorizontal(p HorizontalParams, tr Tracer) (HorizontalCoord, error) {
	if p.JD == nil || p.Latitude == nil || p.Longitude == nil {
		return HorizontalCoord{}, ErrMissingHorizontalParams
	}
	if err := checkLatitude("latitude", p.Latitude.Degrees()); err != nil {
		return HorizontalCoord{}, err
	}
	return equatorialToHorizontal(c.RA, c.Dec, *p.JD, p.Latitude.Degrees(), p.Longitude.Degrees(), tr), nil
}

// HorizontalAt converts for an Observer, which carries a validated latitude.
func (c ICRSCoord) HorizontalAt(obs Observer, jd JulianDate) HorizontalCoord {
	return equatorialToHorizontal(c.RA, c.Dec, jd, obs.LatDeg(), obs.LonDeg(), nil)
}

func equatorialToHorizontal(ra, dec Angle, jd JulianDate, latDeg, lonDeg float64, tr Tracer) HorizontalCoord {
	lst := jd.LST(lonDeg) * 15
	ha := lst - ra.Degrees()
	trace(tr, "Local sidereal time", "θ = %.4f°", lst)
	trace(tr, "Hour angle", "H = θ - α = %.4f°", ha)

	sinLat, cosLat := math.Sincos(latDeg * math.Pi / 180)
	sinDec, cosDec := math.Sincos(dec.Radians())
	sinH, cosH := math.Sincos(ha * math.Pi / 180)

	alt := math.Asin(clamp1(sinDec*sinLat + cosDec*cosLat*cosH))
	az := math.Atan2(-cosDec*sinH, sinDec*cosLat-cosDec*sinLat*cosH)

	h := HorizontalCoord{Alt: Radians(alt), Az: Radians(az).Normalize()}
	trace(tr, "Altitude", "h = %.4f°", h.Alt.Degrees())
	trace(tr, "Azimuth", "A = %.4f°", h.Az.Degrees())
	return h
}

// AngularSeparation returns the great-circle distance between two points
// using the Vincenty formula, which stays accurate at 0° and 180°.
func AngularSeparation(ra1, dec1, ra2, dec2 Angle) Angle {
	sinD1, cosD1 := math.Sincos(dec1.Radians())
	sinD2, cosD2 := math.Sincos(dec2.Radians())
	sinDA, cosDA := math.Sincos(ra2.Radians() - ra1.Radians())

	a := cosD2 * sinDA
	b := cosD1*sinD2 - sinD1*cosD2*cosDA
	num := math.Hypot(a, b)
	den := sinD1*sinD2 + cosD1*cosD2*cosDA

	return Radians(math.Atan2(num, den))
}

// Separation returns the great-circle distance to other.
func (c ICRSCoord) Separation(other ICRSCoord) Angle {
	return AngularSeparation(c.RA, c.Dec, other.RA, other.Dec)
}

// PositionAngle returns the bearing from point 1 to point 2, measured from
// north through east, in [0°, 360°).
func PositionAngle(ra1, dec1, ra2, dec2 Angle) Angle {
	sinD1, cosD1 := math.Sincos(dec1.Radians())
	sinD2, cosD2 := math.Sincos(dec2.Radians())
	sinDA, cosDA := math.Sincos(ra2.Radians() - ra1.Radians())

	y := sinDA * cosD2
	x := cosD1*sinD2 - sinD1*cosD2*cosDA
	return Radians(math.Atan2(y, x)).Normalize()
}

// Airmass returns the Pickering (2002) airmass for an altitude. The second
// result is false when the object is at or below the horizon.
func Airmass(alt Angle) (float64, bool) {
	h := alt.Degrees()
	if h <= 0 {
		return 0, false
	}
	s := Degrees(h + 244.46/(165+47*math.Pow(h, 1.1))).Sin()
	if s <= 0 {
		return 0, false
	}
	return 1 / s, true
}

func clamp1(x float64) float64 {
	return math.Max(-1, math.Min(1, x))
}
