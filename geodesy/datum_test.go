package geodesy

import (
	"math"
	"testing"

	"go.viam.com/test"

	"go.viam.com/geocam/utils"
)

func TestEllipsoidECEF(t *testing.T) {
	p := WGS84Ellipsoid.ToECEF(0, 0, 0)
	test.That(t, p.X, test.ShouldAlmostEqual, WGS84Ellipsoid.A, 1e-6)
	test.That(t, p.Y, test.ShouldAlmostEqual, 0, 1e-6)
	test.That(t, p.Z, test.ShouldAlmostEqual, 0, 1e-6)

	p = WGS84Ellipsoid.ToECEF(math.Pi/2, 0, 100)
	test.That(t, p.Z, test.ShouldAlmostEqual, WGS84Ellipsoid.B()+100, 1e-6)

	for _, e := range []Ellipsoid{WGS84Ellipsoid, WGS72Ellipsoid, Clarke1866Ellipsoid} {
		lat, lon, h := 0.6, -2.1, 1234.5
		gotLat, gotLon, gotH := e.FromECEF(e.ToECEF(lat, lon, h))
		test.That(t, gotLat, test.ShouldAlmostEqual, lat, 1e-12)
		test.That(t, gotLon, test.ShouldAlmostEqual, lon, 1e-12)
		test.That(t, gotH, test.ShouldAlmostEqual, h, 1e-6)
	}
}

func TestCSNameTokens(t *testing.T) {
	for _, cs := range []CSName{WGS84, NAD27N, WGS72, UTM} {
		parsed, err := ParseCSName(cs.String())
		test.That(t, err, test.ShouldBeNil)
		test.That(t, parsed, test.ShouldEqual, cs)
	}
	_, err := ParseCSName("nad83")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, CSName(9).String(), test.ShouldEqual, "unknown")
	test.That(t, UTM.Ellipsoid(), test.ShouldResemble, WGS84Ellipsoid)
	test.That(t, NAD27N.Ellipsoid(), test.ShouldResemble, Clarke1866Ellipsoid)
}

func TestConvertDatum(t *testing.T) {
	lat, lon, h := utils.DegToRad(38.5), utils.DegToRad(-97.0), 300.0

	gotLat, gotLon, gotH := ConvertDatum(lat, lon, h, WGS84, UTM)
	test.That(t, gotLat, test.ShouldEqual, lat)
	test.That(t, gotLon, test.ShouldEqual, lon)
	test.That(t, gotH, test.ShouldEqual, h)

	for _, cs := range []CSName{NAD27N, WGS72} {
		otherLat, otherLon, otherH := ConvertDatum(lat, lon, h, WGS84, cs)
		// datum shifts move points by tens to hundreds of meters, never kilometers
		shift := WGS84Ellipsoid.ToECEF(lat, lon, h).Sub(cs.Ellipsoid().ToECEF(otherLat, otherLon, otherH)).Norm()
		test.That(t, shift, test.ShouldBeGreaterThan, 1)
		test.That(t, shift, test.ShouldBeLessThan, 1000)

		backLat, backLon, backH := ConvertDatum(otherLat, otherLon, otherH, cs, WGS84)
		test.That(t, backLat, test.ShouldAlmostEqual, lat, 1e-11)
		test.That(t, backLon, test.ShouldAlmostEqual, lon, 1e-11)
		test.That(t, backH, test.ShouldAlmostEqual, h, 1e-5)
	}
}
