package camera

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"go.viam.com/test"
	"gonum.org/v1/gonum/mat"

	"go.viam.com/geocam/geodesy"
	"go.viam.com/geocam/logging"
)

// testRPC00B returns the polynomials of a mildly non linear camera over a 0.2° square around
// (-105, 40), in RPC00B order.
func testRPC00B() (sampleNum, sampleDen, lineNum, lineDen []float64) {
	sampleNum = make([]float64, NumMonomials)
	sampleDen = make([]float64, NumMonomials)
	lineNum = make([]float64, NumMonomials)
	lineDen = make([]float64, NumMonomials)
	sampleNum[1] = 1     // x
	sampleNum[3] = 0.02  // z
	sampleNum[4] = 0.01  // xy
	sampleDen[0] = 1     // 1
	sampleDen[3] = 0.001 // z
	lineNum[2] = -1      // y
	lineNum[5] = 0.005   // xz
	lineDen[0] = 1       // 1
	lineDen[9] = 0.002   // z²
	return sampleNum, sampleDen, lineNum, lineDen
}

func newTestRationalCamera(t *testing.T) *RationalCamera {
	t.Helper()
	sampleNum, sampleDen, lineNum, lineDen := testRPC00B()
	cam, err := NewRationalCamera(sampleNum, sampleDen, lineNum, lineDen,
		0.1, -105, 0.1, 40, 500, 1500,
		5000, 5000, 5000, 5000,
		OrderRPC00B)
	test.That(t, err, test.ShouldBeNil)
	return cam
}

func toVXL(rpc []float64) []float64 {
	out := make([]float64, NumMonomials)
	for i, c := range rpc {
		out[rpc00bToVXL[i]] = c
	}
	return out
}

func TestConstantRationalCamera(t *testing.T) {
	constant := make([]float64, NumMonomials)
	constant[0] = 1
	cam, err := NewRationalCamera(constant, constant, constant, constant,
		1, 0, 1, 0, 1, 0, 1, 0, 1, 0, OrderRPC00B)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cam.TypeName(), test.ShouldEqual, "rational")

	for _, p := range [][3]float64{{0, 0, 0}, {-105, 40, 1500}, {3, -2, 7}} {
		u, v, err := cam.Project(p[0], p[1], p[2])
		test.That(t, err, test.ShouldBeNil)
		test.That(t, u, test.ShouldEqual, 1.0)
		test.That(t, v, test.ShouldEqual, 1.0)
	}
}

func TestRationalProject(t *testing.T) {
	cam := newTestRationalCamera(t)

	u, v, err := cam.Project(-105, 40, 1500)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, u, test.ShouldAlmostEqual, 5000)
	test.That(t, v, test.ShouldAlmostEqual, 5000)

	// x = 0.5, y = 0.5, z = 1
	u, v, err = cam.Project(-104.95, 40.05, 2000)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, u, test.ShouldAlmostEqual, 5000*(0.5+0.02+0.01*0.25)/1.001+5000, 1e-6)
	test.That(t, v, test.ShouldAlmostEqual, 5000*(-0.5+0.005*0.5)/1.002+5000, 1e-6)

	sampleNum, sampleDen, lineNum, lineDen := testRPC00B()
	vxl, err := NewRationalCamera(toVXL(sampleNum), toVXL(sampleDen), toVXL(lineNum), toVXL(lineDen),
		0.1, -105, 0.1, 40, 500, 1500,
		5000, 5000, 5000, 5000,
		OrderVXL)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, vxl, test.ShouldResemble, cam)

	fromMatrix, err := NewRationalCameraFromMatrix(cam.CoefficientMatrix(), cam.ScaleOffsets(), OrderVXL)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, fromMatrix, test.ShouldResemble, cam)
	test.That(t, cam.Coefficients(OrderRPC00B)[sampleNumerator], test.ShouldResemble, sampleNum)
	test.That(t, cam.Coefficients(OrderVXL)[lineDenominator], test.ShouldResemble, toVXL(lineDen))
	test.That(t, cam.String(), test.ShouldContainSubstring, "scale 0.1 offset -105")
}

func TestRationalDegenerate(t *testing.T) {
	sampleNum, sampleDen, lineNum, _ := testRPC00B()
	zero := make([]float64, NumMonomials)
	cam, err := NewRationalCamera(sampleNum, sampleDen, lineNum, zero,
		1, 0, 1, 0, 1, 0, 1, 0, 1, 0, OrderRPC00B)
	test.That(t, err, test.ShouldBeNil)
	_, _, err = cam.Project(0, 0, 0)
	test.That(t, errors.Is(err, ErrDegenerateProjection), test.ShouldBeTrue)
	test.That(t, err.Error(), test.ShouldContainSubstring, "line denominator")

	_, err = NewRationalCamera(sampleNum, sampleDen, lineNum, zero,
		1, 0, 0, 0, 1, 0, 1, 0, 1, 0, OrderRPC00B)
	test.That(t, errors.Is(err, ErrDegenerateProjection), test.ShouldBeTrue)

	_, err = NewRationalCamera(sampleNum[:19], sampleDen, lineNum, zero,
		1, 0, 1, 0, 1, 0, 1, 0, 1, 0, OrderRPC00B)
	test.That(t, err, test.ShouldNotBeNil)

	_, err = NewRationalCameraFromMatrix(mat.NewDense(4, 19, nil), cam.ScaleOffsets(), OrderVXL)
	test.That(t, err, test.ShouldNotBeNil)
	_, err = NewRationalCameraFromMatrix(cam.CoefficientMatrix(), cam.ScaleOffsets()[:4], OrderVXL)
	test.That(t, err, test.ShouldNotBeNil)
	_, err = NewRationalCameraFromMatrix(cam.CoefficientMatrix(), make([]ScaleOffset, 5), OrderVXL)
	test.That(t, errors.Is(err, ErrDegenerateProjection), test.ShouldBeTrue)
}

func TestRationalScaleOffsets(t *testing.T) {
	cam := newTestRationalCamera(t)

	offset, err := cam.Offset(AxisZ)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, offset, test.ShouldEqual, 1500.0)
	test.That(t, cam.SetOffset(AxisZ, 1600), test.ShouldBeNil)
	offset, err = cam.Offset(AxisZ)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, offset, test.ShouldEqual, 1600.0)

	scale, err := cam.Scale(AxisY)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, scale, test.ShouldEqual, 0.1)
	test.That(t, errors.Is(cam.SetScale(AxisY, 0), ErrDegenerateProjection), test.ShouldBeTrue)
	test.That(t, cam.SetScale(AxisY, 0.2), test.ShouldBeNil)

	for _, axis := range []Axis{-1, 5} {
		_, err = cam.Offset(axis)
		test.That(t, errors.Is(err, ErrInvalidAxis), test.ShouldBeTrue)
		_, err = cam.Scale(axis)
		test.That(t, errors.Is(err, ErrInvalidAxis), test.ShouldBeTrue)
		test.That(t, errors.Is(cam.SetOffset(axis, 1), ErrInvalidAxis), test.ShouldBeTrue)
		test.That(t, errors.Is(cam.SetScale(axis, 1), ErrInvalidAxis), test.ShouldBeTrue)
	}

	cam.SetImageOffset(10, 20)
	u, v := cam.ImageOffset()
	test.That(t, u, test.ShouldEqual, 10.0)
	test.That(t, v, test.ShouldEqual, 20.0)
	test.That(t, cam.SetImageScale(3, 4), test.ShouldBeNil)
	u, v = cam.ImageScale()
	test.That(t, u, test.ShouldEqual, 3.0)
	test.That(t, v, test.ShouldEqual, 4.0)
	test.That(t, cam.SetImageScale(3, 0), test.ShouldNotBeNil)

	so, err := NewScaleOffset(2, 1)
	test.That(t, err, test.ShouldBeNil)
	n, err := so.Normalize(5)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, n, test.ShouldEqual, 2.0)
	test.That(t, so.UnNormalize(n), test.ShouldEqual, 5.0)
	_, err = NewScaleOffset(0, 1)
	test.That(t, err, test.ShouldNotBeNil)
	_, err = ScaleOffset{}.Normalize(1)
	test.That(t, errors.Is(err, ErrDegenerateProjection), test.ShouldBeTrue)
	test.That(t, AxisU.String(), test.ShouldEqual, "u")
	test.That(t, Axis(9).String(), test.ShouldEqual, "axis(9)")
}

func TestRationalCorrect(t *testing.T) {
	cam := newTestRationalCamera(t)
	corrected := cam.Correct(12.5, -3)
	u, v := corrected.ImageOffset()
	test.That(t, u, test.ShouldEqual, 5012.5)
	test.That(t, v, test.ShouldEqual, 4997.0)
	u, v = cam.ImageOffset()
	test.That(t, u, test.ShouldEqual, 5000.0)
	test.That(t, v, test.ShouldEqual, 5000.0)

	test.That(t, corrected.Correct(-12.5, 3), test.ShouldResemble, cam)

	logger, observed := logging.NewObservedTestLogger(t)
	generic, err := CorrectRationalCamera(cam, 1, 2, logger)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, generic, test.ShouldHaveSameTypeAs, cam)
	u, v = generic.(*RationalCamera).ImageOffset()
	test.That(t, u, test.ShouldEqual, 5001.0)
	test.That(t, v, test.ShouldEqual, 5002.0)
	test.That(t, observed.FilterMessage("corrected camera").Len(), test.ShouldEqual, 1)

	local, err := NewLocalRationalCameraAt(-105, 40, 1500, cam)
	test.That(t, err, test.ShouldBeNil)
	generic, err = CorrectRationalCamera(local, -1, -2, logger)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, generic, test.ShouldHaveSameTypeAs, local)
	back, err := CorrectRationalCamera(generic, 1, 2, nil)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, back, test.ShouldResemble, local)

	_, err = CorrectRationalCamera(NewIdentityProjectiveCamera(), 1, 1, logger)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "*camera.ProjectiveCamera")
}

func TestRationalSaveLoad(t *testing.T) {
	cam := newTestRationalCamera(t)
	dir := t.TempDir()
	approx := cmpopts.EquateApprox(0, 1e-9)

	for _, order := range []CoefficientOrder{OrderRPC00B, OrderVXL} {
		path := filepath.Join(dir, order.String()+".rpb")
		test.That(t, cam.Save(path, order), test.ShouldBeNil)

		contents, err := os.ReadFile(path)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, string(contents), test.ShouldContainSubstring, `SpecId = "`+order.String()+`";`)

		read, err := ReadRationalCamera(path)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, cmp.Diff(cam.Coefficients(OrderVXL), read.Coefficients(OrderVXL), approx), test.ShouldBeEmpty)
		test.That(t, cmp.Diff(cam.ScaleOffsets(), read.ScaleOffsets(), approx), test.ShouldBeEmpty)

		loaded, err := LoadRationalCamera(path)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, loaded, test.ShouldHaveSameTypeAs, cam)
		test.That(t, loaded, test.ShouldResemble, read)
	}
}

func TestRationalParseMissingSpecID(t *testing.T) {
	cam := newTestRationalCamera(t)
	var sb strings.Builder
	test.That(t, cam.Write(&sb, OrderRPC00B), test.ShouldBeNil)
	text := strings.Replace(sb.String(), "SpecId = \"RPC00B\";\n", "", 1)
	test.That(t, text, test.ShouldNotContainSubstring, "SpecId")

	read, err := ParseRationalCamera(strings.NewReader(text))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, read, test.ShouldResemble, cam)

	_, err = ParseRationalCamera(strings.NewReader(strings.Replace(text, "  latScale = 0.1;\n", "", 1)))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "missing latScale")

	_, err = ParseRationalCamera(strings.NewReader("this is not a camera\n"))
	test.That(t, err, test.ShouldNotBeNil)

	_, err = ParseRationalCamera(strings.NewReader(strings.Replace(text, `"RGB"`, `"RGB"`+"\nSpecId = \"RPC00A\";", 1)))
	test.That(t, err, test.ShouldNotBeNil)
}

func TestLocalRationalCamera(t *testing.T) {
	cam := newTestRationalCamera(t)
	lvcs := geodesy.NewLVCS(40, -105, 1500, geodesy.WGS84, geodesy.Degrees, geodesy.Meters)
	local, err := NewLocalRationalCamera(lvcs, cam)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, local.TypeName(), test.ShouldEqual, "local_rational")
	test.That(t, local.Coefficients(OrderVXL), test.ShouldResemble, cam.Coefficients(OrderVXL))

	u, v, err := local.Project(0, 0, 0)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, u, test.ShouldAlmostEqual, 5000, 1e-9)
	test.That(t, v, test.ShouldAlmostEqual, 5000, 1e-9)

	global, err := lvcs.LocalToGlobal(r3.Vector{X: 250, Y: -400, Z: 30}, geodesy.WGS84, geodesy.Degrees, geodesy.Meters)
	test.That(t, err, test.ShouldBeNil)
	expectedU, expectedV, err := cam.Project(global.X, global.Y, global.Z)
	test.That(t, err, test.ShouldBeNil)
	u, v, err = local.Project(250, -400, 30)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, u, test.ShouldAlmostEqual, expectedU, 1e-9)
	test.That(t, v, test.ShouldAlmostEqual, expectedV, 1e-9)
	// east increases the sample and south increases the line
	test.That(t, u, test.ShouldBeGreaterThan, 5000)
	test.That(t, v, test.ShouldBeGreaterThan, 5000)

	_, err = NewLocalRationalCamera(&geodesy.LVCS{}, cam)
	test.That(t, errors.Is(err, geodesy.ErrUnanchored), test.ShouldBeTrue)
	var unanchored LocalRationalCamera
	_, _, err = unanchored.Project(0, 0, 0)
	test.That(t, errors.Is(err, geodesy.ErrUnanchored), test.ShouldBeTrue)

	clone := local.Clone().(*LocalRationalCamera)
	clone.SetLVCSOrigin(-104.9, 40.1, 1500)
	lat, lon, _ := local.LVCS().Origin()
	test.That(t, lat, test.ShouldEqual, 40.0)
	test.That(t, lon, test.ShouldEqual, -105.0)
	lat, lon, _ = clone.LVCS().Origin()
	test.That(t, lat, test.ShouldEqual, 40.1)
	test.That(t, lon, test.ShouldEqual, -104.9)

	test.That(t, clone.SetLVCS(lvcs), test.ShouldBeNil)
	test.That(t, clone, test.ShouldResemble, local)
	test.That(t, errors.Is(clone.SetLVCS(&geodesy.LVCS{}), geodesy.ErrUnanchored), test.ShouldBeTrue)
	test.That(t, local.String(), test.ShouldContainSubstring, "local rational camera")
}

func TestLocalRationalSaveLoad(t *testing.T) {
	cam := newTestRationalCamera(t)
	local, err := NewLocalRationalCameraAt(-105.01, 40.02, 1480, cam)
	test.That(t, err, test.ShouldBeNil)
	path := filepath.Join(t.TempDir(), "local.rpb")
	test.That(t, local.Save(path, OrderVXL), test.ShouldBeNil)

	read, err := ReadLocalRationalCamera(path)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, read.Coefficients(OrderVXL), test.ShouldResemble, local.Coefficients(OrderVXL))
	test.That(t, read.ScaleOffsets(), test.ShouldResemble, local.ScaleOffsets())
	lat, lon, elev := read.LVCS().Origin()
	test.That(t, []float64{lat, lon, elev}, test.ShouldResemble, []float64{40.02, -105.01, 1480})

	loaded, err := LoadRationalCamera(path)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, loaded, test.ShouldHaveSameTypeAs, local)
	u, v, err := loaded.Project(10, 20, 0)
	test.That(t, err, test.ShouldBeNil)
	expectedU, expectedV, err := local.Project(10, 20, 0)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, u, test.ShouldAlmostEqual, expectedU, 1e-9)
	test.That(t, v, test.ShouldAlmostEqual, expectedV, 1e-9)

	// the rational part of a local rational file is still readable on its own
	plain, err := ReadRationalCamera(path)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, plain.ScaleOffsets(), test.ShouldResemble, local.ScaleOffsets())
}

func TestLoadRationalCameraErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "garbage.rpb")
	test.That(t, os.WriteFile(path, []byte("satId = \"x\";\nEND;\n"), 0o600), test.ShouldBeNil)

	_, err := LoadRationalCamera(path)
	test.That(t, errors.Is(err, ErrCameraLoad), test.ShouldBeTrue)
	test.That(t, err.Error(), test.ShouldContainSubstring, "garbage.rpb")
	test.That(t, err.Error(), test.ShouldContainSubstring, "local_rational or rational")
	test.That(t, err.Error(), test.ShouldContainSubstring, "missing")

	_, err = LoadRationalCamera(filepath.Join(dir, "missing.rpb"))
	test.That(t, errors.Is(err, ErrCameraLoad), test.ShouldBeTrue)

	_, err = ReadLocalRationalCamera(filepath.Join(dir, "missing.rpb"))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, errors.Is(err, ErrCameraLoad), test.ShouldBeFalse)
}
