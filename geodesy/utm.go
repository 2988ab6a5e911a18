package geodesy

import (
	"math"

	"go.viam.com/geocam/utils"
)

const (
	utmScaleFactor   = 0.9996
	utmFalseEasting  = 500000.0
	utmFalseNorthing = 10000000.0
	utmZoneWidthDeg  = 6.0
	utmNumZones      = 60
)

// UTMConverter converts between geodetic longitude/latitude in degrees and Universal Transverse
// Mercator easting/northing in meters. It uses the Krüger n-series to sixth order, which is
// accurate to well under a millimeter inside a zone.
type UTMConverter struct {
	ellipsoid Ellipsoid
	e         float64 // eccentricity
	bigA      float64 // k0 * rectifying radius
	alpha     [6]float64
	beta      [6]float64
}

// NewUTMConverter returns a converter on the given ellipsoid.
func NewUTMConverter(ellipsoid Ellipsoid) *UTMConverter {
	n := ellipsoid.F / (2 - ellipsoid.F)
	n2 := utils.Square(n)
	n3 := n2 * n
	n4 := n3 * n
	n5 := n4 * n
	n6 := n5 * n

	return &UTMConverter{
		ellipsoid: ellipsoid,
		e:         math.Sqrt(ellipsoid.E2()),
		bigA:      utmScaleFactor * ellipsoid.A / (1 + n) * (1 + n2/4 + n4/64 + n6/256),
		alpha: [6]float64{
			n/2 - 2*n2/3 + 5*n3/16 + 41*n4/180 - 127*n5/288 + 7891*n6/37800,
			13*n2/48 - 3*n3/5 + 557*n4/1440 + 281*n5/630 - 1983433*n6/1935360,
			61*n3/240 - 103*n4/140 + 15061*n5/26880 + 167603*n6/181440,
			49561*n4/161280 - 179*n5/168 + 6601661*n6/7257600,
			34729*n5/80640 - 3418889*n6/1995840,
			212378941 * n6 / 319334400,
		},
		beta: [6]float64{
			n/2 - 2*n2/3 + 37*n3/96 - n4/360 - 81*n5/512 + 96199*n6/604800,
			n2/48 + n3/15 - 437*n4/1440 + 46*n5/105 - 1118711*n6/3870720,
			17*n3/480 - 37*n4/840 - 209*n5/4480 + 5569*n6/90720,
			4397*n4/161280 - 11*n5/504 - 830251*n6/7257600,
			4583*n5/161280 - 108847*n6/3991680,
			20648693 * n6 / 638668800,
		},
	}
}

// WGS84UTM is the UTM converter on the WGS84 ellipsoid.
var WGS84UTM = NewUTMConverter(WGS84Ellipsoid)

// UTMZone returns the 6° zone number in [1, 60] containing the longitude (degrees). The
// antimeridian itself belongs to zone 60.
func UTMZone(lon float64) int {
	if lon == 180 {
		return utmNumZones
	}
	return int(math.Floor((utils.WrapLongitudeDeg(lon)+180)/utmZoneWidthDeg)) + 1
}

// CentralMeridian returns the central meridian of a zone in degrees.
func CentralMeridian(zone int) float64 {
	return float64(zone-1)*utmZoneWidthDeg - 180 + utmZoneWidthDeg/2
}

// LonLatToUTM projects a longitude/latitude (degrees) into its own zone. The southern
// hemisphere flag is set for negative latitudes and the northing then carries the 10,000 km
// false northing.
func (c *UTMConverter) LonLatToUTM(lon, lat float64) (easting, northing float64, zone int, south bool) {
	zone = UTMZone(lon)
	south = lat < 0
	easting, northing = c.project(lon, lat, zone, south)
	return easting, northing, zone, south
}

// LonLatToUTMZone projects a longitude/latitude (degrees) into the given zone and hemisphere,
// even if the point lies outside of it.
func (c *UTMConverter) LonLatToUTMZone(lon, lat float64, zone int, south bool) (easting, northing float64, err error) {
	if zone < 1 || zone > utmNumZones {
		return 0, 0, NewInvalidZoneError(zone)
	}
	easting, northing = c.project(lon, lat, zone, south)
	return easting, northing, nil
}

func (c *UTMConverter) project(lon, lat float64, zone int, south bool) (float64, float64) {
	phi := utils.DegToRad(lat)
	lambda := utils.DegToRad(lon - CentralMeridian(zone))
	lambda = math.Remainder(lambda, 2*math.Pi)

	tau := math.Tan(phi)
	sigma := math.Sinh(c.e * math.Atanh(c.e*tau/math.Sqrt(1+utils.Square(tau))))
	tauP := tau*math.Sqrt(1+utils.Square(sigma)) - sigma*math.Sqrt(1+utils.Square(tau))

	cosL := math.Cos(lambda)
	xiP := math.Atan2(tauP, cosL)
	etaP := math.Asinh(math.Sin(lambda) / math.Sqrt(tauP*tauP+cosL*cosL))

	xi, eta := xiP, etaP
	for j := 1; j <= 6; j++ {
		a := c.alpha[j-1]
		xi += a * math.Sin(2*float64(j)*xiP) * math.Cosh(2*float64(j)*etaP)
		eta += a * math.Cos(2*float64(j)*xiP) * math.Sinh(2*float64(j)*etaP)
	}

	easting := c.bigA*eta + utmFalseEasting
	northing := c.bigA * xi
	if south {
		northing += utmFalseNorthing
	}
	return easting, northing
}

// UTMToLonLat inverts the projection of an easting/northing (meters) in the given zone.
func (c *UTMConverter) UTMToLonLat(easting, northing float64, zone int, south bool) (lon, lat float64, err error) {
	if zone < 1 || zone > utmNumZones {
		return 0, 0, NewInvalidZoneError(zone)
	}
	if south {
		northing -= utmFalseNorthing
	}
	xi := northing / c.bigA
	eta := (easting - utmFalseEasting) / c.bigA

	xiP, etaP := xi, eta
	for j := 1; j <= 6; j++ {
		b := c.beta[j-1]
		xiP -= b * math.Sin(2*float64(j)*xi) * math.Cosh(2*float64(j)*eta)
		etaP -= b * math.Cos(2*float64(j)*xi) * math.Sinh(2*float64(j)*eta)
	}

	sinhEtaP := math.Sinh(etaP)
	sinXiP, cosXiP := math.Sincos(xiP)
	tauP := sinXiP / math.Sqrt(sinhEtaP*sinhEtaP+cosXiP*cosXiP)

	// Newton-Raphson on the conformal latitude relation.
	const (
		maxIterations = 20
		tolerance     = 1e-14
	)
	e2 := c.e * c.e
	tau := tauP
	for i := 0; i < maxIterations; i++ {
		sigma := math.Sinh(c.e * math.Atanh(c.e*tau/math.Sqrt(1+utils.Square(tau))))
		tauI := tau*math.Sqrt(1+utils.Square(sigma)) - sigma*math.Sqrt(1+utils.Square(tau))
		delta := (tauP - tauI) / math.Sqrt(1+tauI*tauI) *
			(1 + (1-e2)*tau*tau) / ((1 - e2) * math.Sqrt(1+utils.Square(tau)))
		tau += delta
		if math.Abs(delta) < tolerance {
			break
		}
	}

	lat = utils.RadToDeg(math.Atan(tau))
	lon = utils.RadToDeg(math.Atan2(sinhEtaP, cosXiP)) + CentralMeridian(zone)
	return lon, lat, nil
}
