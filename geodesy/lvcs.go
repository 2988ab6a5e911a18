package geodesy

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"

	"go.viam.com/geocam/utils"
)

// LVCS is a local vertical coordinate system: a cartesian east/north/up frame anchored at a
// geodetic origin. Local coordinates are expressed in the LVCS length unit. Geodetic
// coordinates are mapped to the local frame with a linear scale about the origin (radians of
// latitude and longitude per meter), or, for a UTM LVCS, as an offset from the origin's UTM
// easting and northing.
//
// The zero value is unanchored. Every transform fails with ErrUnanchored until an origin is
// set through a constructor or SetOrigin.
type LVCS struct {
	csName  CSName
	angUnit AngUnit
	lenUnit LenUnit

	// origin in angUnit / lenUnit
	originLat, originLon, originElev float64

	// angUnit per lenUnit; zero means derive from the ellipsoid at the origin.
	latScale, lonScale float64
	scaleDerived       bool

	// local frame offset (lenUnit) and rotation (angUnit)
	lox, loy, theta float64

	anchored bool

	utmEasting, utmNorthing float64
	utmZone                 int
	utmSouth                bool
}

// NewLVCS returns an LVCS anchored at the given origin. The origin latitude and longitude are
// in angUnit and the elevation in lenUnit.
func NewLVCS(lat, lon, elev float64, cs CSName, angUnit AngUnit, lenUnit LenUnit) *LVCS {
	return NewLVCSWithScale(lat, lon, elev, cs, 0, 0, angUnit, lenUnit, 0, 0, 0)
}

// NewLVCSWithScale returns an anchored LVCS with explicit latitude/longitude scales (angUnit
// per lenUnit, 0 to derive them) and a local frame transform: the local frame origin (lox, loy)
// in lenUnit and its rotation theta in angUnit, counter-clockwise from east.
func NewLVCSWithScale(
	lat, lon, elev float64,
	cs CSName,
	latScale, lonScale float64,
	angUnit AngUnit, lenUnit LenUnit,
	lox, loy, theta float64,
) *LVCS {
	lvcs := &LVCS{
		csName:   cs,
		angUnit:  angUnit,
		lenUnit:  lenUnit,
		latScale: latScale,
		lonScale: lonScale,
		lox:      lox,
		loy:      loy,
		theta:    theta,
	}
	lvcs.SetOrigin(lat, lon, elev)
	return lvcs
}

// NewLVCSFromBounds returns an LVCS anchored at the centre of a latitude/longitude bounding
// box, at the given elevation.
func NewLVCSFromBounds(
	latLow, lonLow, latHigh, lonHigh, elev float64,
	cs CSName, angUnit AngUnit, lenUnit LenUnit,
) *LVCS {
	return NewLVCS((latLow+latHigh)/2, (lonLow+lonHigh)/2, elev, cs, angUnit, lenUnit)
}

// SetOrigin anchors the LVCS at the given origin (angUnit / lenUnit). Scales that were derived
// from a previous origin are recomputed.
func (l *LVCS) SetOrigin(lat, lon, elev float64) {
	l.originLat, l.originLon, l.originElev = lat, lon, elev
	l.anchored = true
	l.computeScale()
	l.computeUTMOrigin()
}

// IsAnchored returns true once an origin has been set.
func (l *LVCS) IsAnchored() bool {
	return l != nil && l.anchored
}

// Origin returns the origin latitude, longitude (angUnit) and elevation (lenUnit).
func (l *LVCS) Origin() (lat, lon, elev float64) {
	return l.originLat, l.originLon, l.originElev
}

// Scale returns the latitude and longitude scales in angUnit per lenUnit.
func (l *LVCS) Scale() (latScale, lonScale float64) {
	return l.latScale, l.lonScale
}

// Transform returns the local frame origin (lenUnit) and rotation (angUnit).
func (l *LVCS) Transform() (lox, loy, theta float64) {
	return l.lox, l.loy, l.theta
}

// UTMOrigin returns the UTM easting, northing and elevation of the origin in lenUnit, along
// with its zone and hemisphere.
func (l *LVCS) UTMOrigin() (easting, northing, elev float64, zone int, south bool) {
	return l.lenUnit.FromMeters(l.utmEasting), l.lenUnit.FromMeters(l.utmNorthing), l.originElev, l.utmZone, l.utmSouth
}

// CSName returns the coordinate system of the origin.
func (l *LVCS) CSName() CSName {
	return l.csName
}

// AngUnit returns the angular unit of the origin and scales.
func (l *LVCS) AngUnit() AngUnit {
	return l.angUnit
}

// LenUnit returns the unit of local coordinates and the origin elevation.
func (l *LVCS) LenUnit() LenUnit {
	return l.lenUnit
}

// String returns a one line description of the LVCS.
func (l *LVCS) String() string {
	if !l.IsAnchored() {
		return "lvcs(unanchored)"
	}
	return fmt.Sprintf("lvcs(%s origin=(lat %v, lon %v, elev %v) %s %s scale=(%v, %v) transform=(%v, %v, %v))",
		l.csName, l.originLat, l.originLon, l.originElev, l.angUnit, l.lenUnit,
		l.latScale, l.lonScale, l.lox, l.loy, l.theta)
}

func (l *LVCS) originRadians() (lat, lon, elevMeters float64) {
	return l.angUnit.ToRadians(l.originLat), l.angUnit.ToRadians(l.originLon), l.lenUnit.ToMeters(l.originElev)
}

// scaleToRadiansPerMeter converts a stored scale to radians per meter.
func (l *LVCS) scaleToRadiansPerMeter(s float64) float64 {
	return l.angUnit.ToRadians(s) / l.lenUnit.ToMeters(1)
}

func (l *LVCS) computeScale() {
	if l.scaleDerived {
		l.latScale, l.lonScale, l.scaleDerived = 0, 0, false
	}
	if l.csName == UTM || (l.latScale != 0 && l.lonScale != 0) {
		return
	}
	l.scaleDerived = true
	lat, _, h := l.originRadians()
	ellipsoid := l.csName.Ellipsoid()
	latRadPerMeter := 1 / (ellipsoid.MeridionalRadius(lat) + h)
	lonRadPerMeter := 1 / ((ellipsoid.PrimeVerticalRadius(lat) + h) * math.Cos(lat))
	perLenUnit := l.lenUnit.ToMeters(1)
	if l.latScale == 0 {
		l.latScale = l.angUnit.FromRadians(latRadPerMeter * perLenUnit)
	}
	if l.lonScale == 0 {
		l.lonScale = l.angUnit.FromRadians(lonRadPerMeter * perLenUnit)
	}
}

func (l *LVCS) computeUTMOrigin() {
	lat, lon, h := l.originRadians()
	lat, lon, _ = ConvertDatum(lat, lon, h, l.csName, WGS84)
	l.utmEasting, l.utmNorthing, l.utmZone, l.utmSouth = WGS84UTM.LonLatToUTM(utils.RadToDeg(lon), utils.RadToDeg(lat))
}

// toENU applies the local frame transform to local coordinates in meters.
func (l *LVCS) toENU(x, y float64) (float64, float64) {
	if l.lox == 0 && l.loy == 0 && l.theta == 0 {
		return x, y
	}
	s, c := math.Sincos(l.angUnit.ToRadians(l.theta))
	lox, loy := l.lenUnit.ToMeters(l.lox), l.lenUnit.ToMeters(l.loy)
	return lox + c*x - s*y, loy + s*x + c*y
}

// fromENU is the inverse of toENU.
func (l *LVCS) fromENU(e, n float64) (float64, float64) {
	if l.lox == 0 && l.loy == 0 && l.theta == 0 {
		return e, n
	}
	s, c := math.Sincos(l.angUnit.ToRadians(l.theta))
	dx, dy := e-l.lenUnit.ToMeters(l.lox), n-l.lenUnit.ToMeters(l.loy)
	return c*dx + s*dy, -s*dx + c*dy
}

// LocalToGlobal converts a point in the local frame (LVCS length unit) to the target coordinate
// system. For geodetic targets the result is (longitude, latitude, elevation) with angles in
// angUnit; for a UTM target it is (easting, northing, elevation) in the zone of the origin.
// Lengths of the result are in lenUnit.
func (l *LVCS) LocalToGlobal(local r3.Vector, target CSName, angUnit AngUnit, lenUnit LenUnit) (r3.Vector, error) {
	if !l.IsAnchored() {
		return r3.Vector{}, ErrUnanchored
	}
	if target < WGS84 || target > UTM {
		return r3.Vector{}, NewUnknownCoordinateSystemError("coordinate system", int(target))
	}
	east, north := l.toENU(l.lenUnit.ToMeters(local.X), l.lenUnit.ToMeters(local.Y))
	up := l.lenUnit.ToMeters(local.Z)
	originLat, originLon, originElev := l.originRadians()

	var lat, lon float64
	h := originElev + up
	if l.csName == UTM {
		if target == UTM {
			return r3.Vector{
				X: lenUnit.FromMeters(l.utmEasting + east),
				Y: lenUnit.FromMeters(l.utmNorthing + north),
				Z: lenUnit.FromMeters(h),
			}, nil
		}
		lonDeg, latDeg, err := WGS84UTM.UTMToLonLat(l.utmEasting+east, l.utmNorthing+north, l.utmZone, l.utmSouth)
		if err != nil {
			return r3.Vector{}, err
		}
		lat, lon = utils.DegToRad(latDeg), utils.DegToRad(lonDeg)
	} else {
		lat = originLat + north*l.scaleToRadiansPerMeter(l.latScale)
		lon = originLon + east*l.scaleToRadiansPerMeter(l.lonScale)
	}

	lat, lon, h = ConvertDatum(lat, lon, h, l.csName, target)
	if target == UTM {
		easting, northing, err := WGS84UTM.LonLatToUTMZone(utils.RadToDeg(lon), utils.RadToDeg(lat), l.utmZone, l.utmSouth)
		if err != nil {
			return r3.Vector{}, err
		}
		return r3.Vector{X: lenUnit.FromMeters(easting), Y: lenUnit.FromMeters(northing), Z: lenUnit.FromMeters(h)}, nil
	}
	return r3.Vector{X: angUnit.FromRadians(lon), Y: angUnit.FromRadians(lat), Z: lenUnit.FromMeters(h)}, nil
}

// GlobalToLocal is the inverse of LocalToGlobal. For geodetic sources the input is (longitude,
// latitude, elevation); for a UTM source it is (easting, northing, elevation) in the zone of the
// origin. The result is in the LVCS length unit.
func (l *LVCS) GlobalToLocal(global r3.Vector, source CSName, angUnit AngUnit, lenUnit LenUnit) (r3.Vector, error) {
	if !l.IsAnchored() {
		return r3.Vector{}, ErrUnanchored
	}
	if source < WGS84 || source > UTM {
		return r3.Vector{}, NewUnknownCoordinateSystemError("coordinate system", int(source))
	}
	originLat, originLon, originElev := l.originRadians()

	var lat, lon float64
	h := lenUnit.ToMeters(global.Z)
	if source == UTM {
		easting, northing := lenUnit.ToMeters(global.X), lenUnit.ToMeters(global.Y)
		if l.csName == UTM {
			return l.finishLocal(easting-l.utmEasting, northing-l.utmNorthing, h-originElev), nil
		}
		lonDeg, latDeg, err := WGS84UTM.UTMToLonLat(easting, northing, l.utmZone, l.utmSouth)
		if err != nil {
			return r3.Vector{}, err
		}
		lat, lon = utils.DegToRad(latDeg), utils.DegToRad(lonDeg)
	} else {
		lon, lat = angUnit.ToRadians(global.X), angUnit.ToRadians(global.Y)
	}

	lat, lon, h = ConvertDatum(lat, lon, h, source, l.csName)
	if l.csName == UTM {
		easting, northing, err := WGS84UTM.LonLatToUTMZone(utils.RadToDeg(lon), utils.RadToDeg(lat), l.utmZone, l.utmSouth)
		if err != nil {
			return r3.Vector{}, err
		}
		return l.finishLocal(easting-l.utmEasting, northing-l.utmNorthing, h-originElev), nil
	}

	north := (lat - originLat) / l.scaleToRadiansPerMeter(l.latScale)
	east := math.Remainder(lon-originLon, 2*math.Pi) / l.scaleToRadiansPerMeter(l.lonScale)
	return l.finishLocal(east, north, h-originElev), nil
}

// finishLocal undoes the local frame transform and converts meters to the LVCS length unit.
func (l *LVCS) finishLocal(east, north, up float64) r3.Vector {
	x, y := l.fromENU(east, north)
	return r3.Vector{X: l.lenUnit.FromMeters(x), Y: l.lenUnit.FromMeters(y), Z: l.lenUnit.FromMeters(up)}
}
