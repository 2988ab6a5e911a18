package geodesy

import (
	"errors"
	"testing"

	"go.viam.com/test"
)

func TestUTMZone(t *testing.T) {
	test.That(t, UTMZone(-180), test.ShouldEqual, 1)
	test.That(t, UTMZone(-177.5), test.ShouldEqual, 1)
	test.That(t, UTMZone(-174), test.ShouldEqual, 2)
	test.That(t, UTMZone(3), test.ShouldEqual, 31)
	test.That(t, UTMZone(-71.06), test.ShouldEqual, 19)
	test.That(t, UTMZone(179.9), test.ShouldEqual, 60)
	test.That(t, UTMZone(180), test.ShouldEqual, 60)
	test.That(t, UTMZone(183), test.ShouldEqual, 1)

	test.That(t, CentralMeridian(1), test.ShouldEqual, -177.0)
	test.That(t, CentralMeridian(31), test.ShouldEqual, 3.0)
	test.That(t, CentralMeridian(60), test.ShouldEqual, 177.0)
}

func TestUTMKnownValues(t *testing.T) {
	easting, northing, zone, south := WGS84UTM.LonLatToUTM(3, 0)
	test.That(t, zone, test.ShouldEqual, 31)
	test.That(t, south, test.ShouldBeFalse)
	test.That(t, easting, test.ShouldAlmostEqual, 500000, 1e-6)
	test.That(t, northing, test.ShouldAlmostEqual, 0, 1e-6)

	// on the central meridian the northing is the scaled meridian arc
	easting, northing, _, _ = WGS84UTM.LonLatToUTM(-75, 45)
	test.That(t, easting, test.ShouldAlmostEqual, 500000, 1e-6)
	test.That(t, northing, test.ShouldAlmostEqual, 4982950.40, 0.01)

	easting, northing, zone, south = WGS84UTM.LonLatToUTM(-75, -45)
	test.That(t, zone, test.ShouldEqual, 18)
	test.That(t, south, test.ShouldBeTrue)
	test.That(t, easting, test.ShouldAlmostEqual, 500000, 1e-6)
	test.That(t, northing, test.ShouldAlmostEqual, 10000000-4982950.40, 0.01)

	// symmetric about the central meridian
	eastE, northE, _, _ := WGS84UTM.LonLatToUTM(-72, 42)
	eastW, northW, _ := WGS84UTM.LonLatToUTMZone(-78, 42, 18, false)
	test.That(t, eastE-500000, test.ShouldAlmostEqual, 500000-eastW, 1e-6)
	test.That(t, northE, test.ShouldAlmostEqual, northW, 1e-6)
}

func TestUTMRoundTrip(t *testing.T) {
	for _, tc := range []struct{ lon, lat float64 }{
		{-122.4194, 37.7749},
		{-71.0589, 42.3601},
		{151.2093, -33.8688},
		{0.1, 0.1},
		{-0.1, -0.1},
		{178.5, 70},
		{-179.5, -80},
	} {
		easting, northing, zone, south := WGS84UTM.LonLatToUTM(tc.lon, tc.lat)
		lon, lat, err := WGS84UTM.UTMToLonLat(easting, northing, zone, south)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, lon, test.ShouldAlmostEqual, tc.lon, 1e-7)
		test.That(t, lat, test.ShouldAlmostEqual, tc.lat, 1e-7)
	}
}

func TestUTMInvalidZone(t *testing.T) {
	_, _, err := WGS84UTM.LonLatToUTMZone(0, 0, 0, false)
	test.That(t, errors.Is(err, ErrUnknownCoordinateSystem), test.ShouldBeTrue)
	_, _, err = WGS84UTM.UTMToLonLat(500000, 0, 61, false)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "utm zone 61")
}
