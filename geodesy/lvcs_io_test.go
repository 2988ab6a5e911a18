package geodesy

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func TestLVCSTextRoundTrip(t *testing.T) {
	lvcs := NewLVCSWithScale(38.25, -104.5, 1500.5, NAD27N, 0, 0, Degrees, Feet, 3, -4, 12.5)
	text, err := lvcs.Writes()
	test.That(t, err, test.ShouldBeNil)
	lines := strings.Split(strings.TrimSpace(text), "\n")
	test.That(t, lines, test.ShouldHaveLength, 6)
	test.That(t, lines[0], test.ShouldEqual, "nad27n")
	test.That(t, lines[1], test.ShouldEqual, "degrees")
	test.That(t, lines[2], test.ShouldEqual, "feet")
	test.That(t, lines[3], test.ShouldEqual, "38.25 -104.5 1500.5")
	test.That(t, lines[5], test.ShouldEqual, "3 -4 12.5")

	var read LVCS
	test.That(t, read.Reads(text), test.ShouldBeNil)
	test.That(t, read.IsAnchored(), test.ShouldBeTrue)
	test.That(t, read.CSName(), test.ShouldEqual, NAD27N)
	test.That(t, read.AngUnit(), test.ShouldEqual, Degrees)
	test.That(t, read.LenUnit(), test.ShouldEqual, Feet)
	readLatScale, readLonScale := read.Scale()
	latScale, lonScale := lvcs.Scale()
	test.That(t, readLatScale, test.ShouldEqual, latScale)
	test.That(t, readLonScale, test.ShouldEqual, lonScale)

	local := r3.Vector{X: 50, Y: 60, Z: 7}
	expected, err := lvcs.LocalToGlobal(local, WGS84, Degrees, Meters)
	test.That(t, err, test.ShouldBeNil)
	actual, err := read.LocalToGlobal(local, WGS84, Degrees, Meters)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, actual, test.ShouldResemble, expected)
}

func TestLVCSTextScales(t *testing.T) {
	// derived scales follow a new origin after reading
	derived := NewLVCS(0, 10, 0, WGS84, Degrees, Feet)
	text, err := derived.Writes()
	test.That(t, err, test.ShouldBeNil)
	var read LVCS
	test.That(t, read.Reads(text), test.ShouldBeNil)
	read.SetOrigin(60, 10, 0)
	derived.SetOrigin(60, 10, 0)
	readLatScale, readLonScale := read.Scale()
	latScale, lonScale := derived.Scale()
	test.That(t, readLatScale, test.ShouldAlmostEqual, latScale, 1e-15)
	test.That(t, readLonScale, test.ShouldAlmostEqual, lonScale, 1e-15)

	// explicit scales survive a new origin
	explicit := NewLVCSWithScale(0, 10, 0, WGS84, 1e-5, 2e-5, Degrees, Meters, 0, 0, 0)
	text, err = explicit.Writes()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, read.Reads(text), test.ShouldBeNil)
	read.SetOrigin(60, 10, 0)
	readLatScale, readLonScale = read.Scale()
	test.That(t, readLatScale, test.ShouldEqual, 1e-5)
	test.That(t, readLonScale, test.ShouldEqual, 2e-5)
}

func TestLVCSTextFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.lvcs")
	lvcs := NewLVCS(-33.86, 151.2, 3, UTM, Degrees, Meters)
	test.That(t, lvcs.WriteFile(path), test.ShouldBeNil)

	read, err := ReadLVCSFile(path)
	test.That(t, err, test.ShouldBeNil)
	_, _, _, zone, south := read.UTMOrigin()
	test.That(t, zone, test.ShouldEqual, 56)
	test.That(t, south, test.ShouldBeTrue)

	_, err = ReadLVCSFile(filepath.Join(t.TempDir(), "missing.lvcs"))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "missing.lvcs")
}

func TestLVCSTextErrors(t *testing.T) {
	var unanchored LVCS
	_, err := unanchored.Writes()
	test.That(t, errors.Is(err, ErrUnanchored), test.ShouldBeTrue)

	var lvcs LVCS
	err = lvcs.Reads("wgs84 degrees meters 1 2 3")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "6 tokens")

	err = lvcs.Reads("etrs89 degrees meters 1 2 3 0 0 0 0 0")
	test.That(t, errors.Is(err, ErrUnknownCoordinateSystem), test.ShouldBeTrue)

	err = lvcs.Reads("wgs84 grads meters 1 2 3 0 0 0 0 0")
	test.That(t, errors.Is(err, ErrUnknownCoordinateSystem), test.ShouldBeTrue)

	err = lvcs.Reads("wgs84 degrees meters 1 two 3 0 0 0 0 0")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, `"two"`)
	test.That(t, lvcs.IsAnchored(), test.ShouldBeFalse)
}
