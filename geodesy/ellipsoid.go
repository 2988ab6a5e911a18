// Package geodesy converts between geodetic coordinates on the supported datums, UTM
// projections and local vertical coordinate systems (LVCS).
package geodesy

import (
	"math"

	"github.com/golang/geo/r3"

	"go.viam.com/geocam/utils"
)

// Ellipsoid is a reference ellipsoid given by its semi-major axis (meters) and flattening.
type Ellipsoid struct {
	Name string
	A    float64
	F    float64
}

var (
	// WGS84Ellipsoid is the World Geodetic System 1984 ellipsoid.
	WGS84Ellipsoid = Ellipsoid{Name: "WGS84", A: 6378137.0, F: 1 / 298.257223563}
	// WGS72Ellipsoid is the World Geodetic System 1972 ellipsoid.
	WGS72Ellipsoid = Ellipsoid{Name: "WGS72", A: 6378135.0, F: 1 / 298.26}
	// Clarke1866Ellipsoid is the ellipsoid of the North American Datum of 1927.
	Clarke1866Ellipsoid = Ellipsoid{Name: "Clarke1866", A: 6378206.4, F: 1 / 294.9786982}
)

// B returns the semi-minor axis.
func (e Ellipsoid) B() float64 {
	return e.A * (1 - e.F)
}

// E2 returns the first eccentricity squared.
func (e Ellipsoid) E2() float64 {
	return e.F * (2 - e.F)
}

// PrimeVerticalRadius returns the radius of curvature in the prime vertical at latitude lat
// (radians).
func (e Ellipsoid) PrimeVerticalRadius(lat float64) float64 {
	return e.A / math.Sqrt(1-e.E2()*utils.Square(math.Sin(lat)))
}

// MeridionalRadius returns the radius of curvature in the meridian at latitude lat (radians).
func (e Ellipsoid) MeridionalRadius(lat float64) float64 {
	w := 1 - e.E2()*utils.Square(math.Sin(lat))
	return e.A * (1 - e.E2()) / (w * math.Sqrt(w))
}

// ToECEF converts geodetic latitude, longitude (radians) and ellipsoidal height (meters) to
// earth-centred earth-fixed cartesian coordinates.
func (e Ellipsoid) ToECEF(lat, lon, h float64) r3.Vector {
	n := e.PrimeVerticalRadius(lat)
	cosLat := math.Cos(lat)
	return r3.Vector{
		X: (n + h) * cosLat * math.Cos(lon),
		Y: (n + h) * cosLat * math.Sin(lon),
		Z: (n*(1-e.E2()) + h) * math.Sin(lat),
	}
}

// FromECEF converts earth-centred earth-fixed coordinates back to geodetic latitude,
// longitude (radians) and ellipsoidal height (meters).
func (e Ellipsoid) FromECEF(p r3.Vector) (lat, lon, h float64) {
	const (
		maxIterations = 30
		tolerance     = 1e-15
	)
	e2 := e.E2()
	lon = math.Atan2(p.Y, p.X)
	rho := math.Hypot(p.X, p.Y)
	lat = math.Atan2(p.Z, rho*(1-e2))
	for i := 0; i < maxIterations; i++ {
		n := e.PrimeVerticalRadius(lat)
		next := math.Atan2(p.Z+e2*n*math.Sin(lat), rho)
		done := math.Abs(next-lat) < tolerance
		lat = next
		if done {
			break
		}
	}
	sinLat := math.Sin(lat)
	h = rho*math.Cos(lat) + p.Z*sinLat - e.A*math.Sqrt(1-e2*sinLat*sinLat)
	return lat, lon, h
}
