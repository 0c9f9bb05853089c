package astro

import (
	"math"
)

// Vec3 represents a 3D vector in any reference frame.
type Vec3 struct {
	X, Y, Z float64
}

// Norm returns the magnitude of the vector.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Dot returns the scalar product.
func (v Vec3) Dot(u Vec3) float64 {
	return v.X*u.X + v.Y*u.Y + v.Z*u.Z
}

// UnitVector returns the direction of a spherical position (longitude-like,
// latitude-like) as a unit vector.
func UnitVector(lon, lat Angle) Vec3 {
	sinLon, cosLon := math.Sincos(lon.Radians())
	sinLat, cosLat := math.Sincos(lat.Radians())
	return Vec3{X: cosLat * cosLon, Y: cosLat * sinLon, Z: sinLat}
}

// Spherical returns the longitude in [0°, 360°) and latitude of v.
func (v Vec3) Spherical() (lon, lat Angle) {
	r := v.Norm()
	if r == 0 {
		return Angle{}, Angle{}
	}
	lon = Radians(math.Atan2(v.Y, v.X)).Normalize()
	lat = Radians(math.Asin(clamp1(v.Z / r)))
	return lon, lat
}

// rotateX rotates v about the X axis by eps. A positive angle takes
// ecliptic vectors to equatorial ones.
func rotateX(v Vec3, eps Angle) Vec3 {
	sinE, cosE := math.Sincos(eps.Radians())
	return Vec3{
		X: v.X,
		Y: v.Y*cosE - v.Z*sinE,
		Z: v.Y*sinE + v.Z*cosE,
	}
}

// EclipticToEquatorial converts ecliptic longitude and latitude to RA and
// Dec for obliquity eps.
func EclipticToEquatorial(lon, lat, eps Angle) (ra, dec Angle) {
	return rotateX(UnitVector(lon, lat), eps).Spherical()
}

// EquatorialToEcliptic is the inverse of EclipticToEquatorial.
func EquatorialToEcliptic(ra, dec, eps Angle) (lon, lat Angle) {
	return rotateX(UnitVector(ra, dec), eps.Neg()).Spherical()
}
