package geodesy

import (
	"math"

	"github.com/golang/geo/r3"
)

// CSName names a geodetic coordinate system.
type CSName int

const (
	// WGS84 is the World Geodetic System 1984.
	WGS84 CSName = iota
	// NAD27N is the North American Datum of 1927.
	NAD27N
	// WGS72 is the World Geodetic System 1972.
	WGS72
	// UTM is the Universal Transverse Mercator projection of WGS84.
	UTM
)

var csNames = [...]string{"wgs84", "nad27n", "wgs72", "utm"}

// String returns the token used in the text form.
func (cs CSName) String() string {
	if cs < 0 || int(cs) >= len(csNames) {
		return "unknown"
	}
	return csNames[cs]
}

// ParseCSName parses a coordinate system token.
func ParseCSName(s string) (CSName, error) {
	for i, name := range csNames {
		if name == s {
			return CSName(i), nil
		}
	}
	return WGS84, NewUnknownCoordinateSystemError("coordinate system", s)
}

// Ellipsoid returns the reference ellipsoid of the coordinate system. UTM coordinates are on
// WGS84.
func (cs CSName) Ellipsoid() Ellipsoid {
	switch cs {
	case NAD27N:
		return Clarke1866Ellipsoid
	case WGS72:
		return WGS72Ellipsoid
	case WGS84, UTM:
	}
	return WGS84Ellipsoid
}

// helmert is a similarity transform from a datum's geocentric frame into WGS84:
// p84 = t + (1+scale) * Rz(rotZ) * p.
type helmert struct {
	t     r3.Vector
	scale float64
	rotZ  float64
}

const arcSecond = math.Pi / (180 * 3600)

var toWGS84Shifts = map[CSName]helmert{
	// mean CONUS shift for NAD27
	NAD27N: {t: r3.Vector{X: -8, Y: 160, Z: 176}},
	WGS72:  {t: r3.Vector{Z: 4.5}, scale: 0.2263e-6, rotZ: 0.554 * arcSecond},
}

func (hm helmert) forward(p r3.Vector) r3.Vector {
	c, s := math.Cos(hm.rotZ), math.Sin(hm.rotZ)
	rotated := r3.Vector{X: c*p.X - s*p.Y, Y: s*p.X + c*p.Y, Z: p.Z}
	return hm.t.Add(rotated.Mul(1 + hm.scale))
}

func (hm helmert) inverse(p r3.Vector) r3.Vector {
	q := p.Sub(hm.t).Mul(1 / (1 + hm.scale))
	c, s := math.Cos(hm.rotZ), math.Sin(hm.rotZ)
	return r3.Vector{X: c*q.X + s*q.Y, Y: -s*q.X + c*q.Y, Z: q.Z}
}

// ConvertDatum converts geodetic latitude, longitude (radians) and height (meters) from one
// coordinate system's datum to another's. UTM is treated as WGS84.
func ConvertDatum(lat, lon, h float64, from, to CSName) (float64, float64, float64) {
	if from == UTM {
		from = WGS84
	}
	if to == UTM {
		to = WGS84
	}
	if from == to {
		return lat, lon, h
	}
	p := from.Ellipsoid().ToECEF(lat, lon, h)
	if shift, ok := toWGS84Shifts[from]; ok {
		p = shift.forward(p)
	}
	if shift, ok := toWGS84Shifts[to]; ok {
		p = shift.inverse(p)
	}
	return to.Ellipsoid().FromECEF(p)
}
