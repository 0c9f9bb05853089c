package astro

import (
	"fmt"
	"math"
	"time"
)

// Observer represents a ground-based observer location.
type Observer struct {
	Name      string
	Latitude  Angle   // north positive
	Longitude Angle   // east positive
	Elevation float64 // meters above sea level
	Timezone  string  // IANA zone name, optional
}

// NewObserver builds an Observer from decimal degrees.
func NewObserver(name string, latDeg, lonDeg, elevation float64) (Observer, error) {
	if err := checkLatitude("latitude", latDeg); err != nil {
		return Observer{}, err
	}
	return Observer{
		Name:      name,
		Latitude:  Degrees(latDeg),
		Longitude: Degrees(lonDeg),
		Elevation: elevation,
	}, nil
}

// LatDeg returns the latitude in degrees.
func (o Observer) LatDeg() float64 { return o.Latitude.Degrees() }

// LonDeg returns the longitude in degrees.
func (o Observer) LonDeg() float64 { return o.Longitude.Degrees() }

// Location resolves Timezone, falling back to UTC when it is empty.
func (o Observer) Location() (*time.Location, error) {
	if o.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(o.Timezone)
	if err != nil {
		return nil, fmt.Errorf("observer %s: %w", o.Name, err)
	}
	return loc, nil
}

func (o Observer) String() string {
	latDir, lonDir := "N", "E"
	if o.LatDeg() < 0 {
		latDir = "S"
	}
	if o.LonDeg() < 0 {
		lonDir = "W"
	}
	return fmt.Sprintf("%s: %.4f°%s, %.4f°%s, %.0fm",
		o.Name, math.Abs(o.LatDeg()), latDir, math.Abs(o.LonDeg()), lonDir, o.Elevation)
}
