package astro

import (
	"fmt"
	"strings"
)

// Altitude thresholds for rise, set and twilight events, in degrees.
const (
	SunRiseSetAltitude     = -0.8333
	CivilTwilight          = -6.0
	NauticalTwilight       = -12.0
	AstronomicalTwilight   = -18.0
	MoonRiseSetAltitude    = 0.125
	SynodicMonth           = 29.530589
	EarthEquatorialRadius  = 6378.14 // km
	MeanLunarDistance      = 384400.0
	meanLunarDiameterDeg   = 0.5181
	lunarDistanceBaseKm    = 385000.56
	arcsecPerRadian        = 206264.80624709636
	astronomicalUnitMeters = 149597870700.0
)

// Constant is a named physical or astronomical constant.
type Constant struct {
	Name        string  `json:"name"`
	Symbol      string  `json:"symbol"`
	Value       float64 `json:"value"`
	Unit        string  `json:"unit"`
	Uncertainty float64 `json:"uncertainty,omitempty"`
	Category    string  `json:"category"`
	Exact       bool    `json:"exact,omitempty"`
}

func (c Constant) String() string {
	if c.Uncertainty > 0 {
		return fmt.Sprintf("%s (%s) = %g ± %g %s", c.Name, c.Symbol, c.Value, c.Uncertainty, c.Unit)
	}
	return fmt.Sprintf("%s (%s) = %g %s", c.Name, c.Symbol, c.Value, c.Unit)
}

var constants = []Constant{
	{Name: "Speed of light", Symbol: "c", Value: 299792458.0, Unit: "m/s", Category: "fundamental", Exact: true},
	{Name: "Gravitational constant", Symbol: "G", Value: 6.67430e-11, Unit: "m^3/(kg s^2)", Uncertainty: 1.5e-15, Category: "fundamental"},
	{Name: "Astronomical unit", Symbol: "AU", Value: astronomicalUnitMeters, Unit: "m", Category: "fundamental", Exact: true},
	{Name: "Parsec", Symbol: "pc", Value: astronomicalUnitMeters * arcsecPerRadian, Unit: "m", Category: "fundamental", Exact: true},
	{Name: "Arcseconds per radian", Symbol: "ARCSEC_PER_RADIAN", Value: arcsecPerRadian, Unit: "arcsec", Category: "angle", Exact: true},

	{Name: "J2000.0 epoch", Symbol: "JD_J2000", Value: J2000, Unit: "JD", Category: "time", Exact: true},
	{Name: "MJD offset", Symbol: "MJD_OFFSET", Value: MJDOffset, Unit: "d", Category: "time", Exact: true},
	{Name: "Julian year", Symbol: "JULIAN_YEAR", Value: DaysPerJulianYear, Unit: "d", Category: "time", Exact: true},
	{Name: "Julian century", Symbol: "JULIAN_CENTURY", Value: DaysPerJulianCentury, Unit: "d", Category: "time", Exact: true},
	{Name: "Sidereal rotation rate", Symbol: "SIDEREAL_RATE", Value: siderealDegPerDay, Unit: "deg/d", Category: "time"},
	{Name: "Synodic month", Symbol: "SYNODIC_MONTH", Value: SynodicMonth, Unit: "d", Category: "lunar"},

	{Name: "Solar mass", Symbol: "M_SUN", Value: 1.98847e30, Unit: "kg", Uncertainty: 7e25, Category: "solar"},
	{Name: "Solar radius", Symbol: "R_SUN", Value: 6.957e8, Unit: "m", Category: "solar"},
	{Name: "Solar luminosity", Symbol: "L_SUN", Value: 3.828e26, Unit: "W", Category: "solar"},
	{Name: "Mean Sun longitude rate", Symbol: "MEAN_SUN_LONGITUDE_RATE", Value: 36000.76983, Unit: "deg/century", Category: "solar"},

	{Name: "Earth equatorial radius", Symbol: "R_EARTH", Value: EarthEquatorialRadius, Unit: "km", Category: "earth"},
	{Name: "Moon mean distance", Symbol: "MOON_DISTANCE", Value: MeanLunarDistance, Unit: "km", Category: "lunar"},
	{Name: "Moon mean angular diameter", Symbol: "MOON_DIAMETER", Value: meanLunarDiameterDeg, Unit: "deg", Category: "lunar"},

	{Name: "Galactic pole right ascension", Symbol: "GALACTIC_POLE_RA", Value: ngpRADeg, Unit: "deg", Category: "galactic"},
	{Name: "Galactic pole declination", Symbol: "GALACTIC_POLE_DEC", Value: ngpDecDeg, Unit: "deg", Category: "galactic"},
	{Name: "Galactic node longitude", Symbol: "GALACTIC_NODE_L", Value: ncpLDeg - 90, Unit: "deg", Category: "galactic"},

	{Name: "Sun rise/set altitude", Symbol: "RISE_SET_ALTITUDE_SUN", Value: SunRiseSetAltitude, Unit: "deg", Category: "horizon"},
	{Name: "Moon rise/set altitude", Symbol: "RISE_SET_ALTITUDE_MOON", Value: MoonRiseSetAltitude, Unit: "deg", Category: "horizon"},
	{Name: "Civil twilight altitude", Symbol: "CIVIL_TWILIGHT_ALTITUDE", Value: CivilTwilight, Unit: "deg", Category: "horizon"},
	{Name: "Nautical twilight altitude", Symbol: "NAUTICAL_TWILIGHT_ALTITUDE", Value: NauticalTwilight, Unit: "deg", Category: "horizon"},
	{Name: "Astronomical twilight altitude", Symbol: "ASTRONOMICAL_TWILIGHT_ALTITUDE", Value: AstronomicalTwilight, Unit: "deg", Category: "horizon"},
}

// Constants returns a copy of the registry.
func Constants() []Constant {
	out := make([]Constant, len(constants))
	copy(out, constants)
	return out
}

// LookupConstant finds a constant by symbol, case-insensitively.
func LookupConstant(symbol string) (Constant, bool) {
	for _, c := range constants {
		if strings.EqualFold(c.Symbol, symbol) {
			return c, true
		}
	}
	return Constant{}, false
}

// SearchConstants matches query against name, symbol and category,
// case-insensitively.
func SearchConstants(query string) []Constant {
	q := strings.ToLower(strings.TrimSpace(query))
	var out []Constant
	for _, c := range constants {
		if strings.Contains(strings.ToLower(c.Name), q) ||
			strings.Contains(strings.ToLower(c.Symbol), q) ||
			strings.Contains(c.Category, q) {
			out = append(out, c)
		}
	}
	return out
}
