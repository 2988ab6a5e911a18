package camera

import (
	"fmt"
	"strings"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Axis indexes the scale/offset pairs of a rational camera.
type Axis int

// X, Y and Z are the world axes (longitude, latitude, elevation); U and V are the image sample and
// line axes.
const (
	AxisX Axis = iota
	AxisY
	AxisZ
	AxisU
	AxisV
	numAxes
)

var axisNames = [...]string{"x", "y", "z", "u", "v"}

func (a Axis) String() string {
	if a < 0 || a >= numAxes {
		return fmt.Sprintf("axis(%d)", int(a))
	}
	return axisNames[a]
}

// CoefficientOrder is the order of the 20 cubic monomials in a coefficient vector.
type CoefficientOrder int

const (
	// OrderRPC00B is the NITF RPC00B order: 1, x, y, z, xy, xz, yz, x², y², z², xyz, x³, xy², xz²,
	// x²y, y³, yz², x²z, y²z, z³ with x the longitude, y the latitude and z the elevation.
	OrderRPC00B CoefficientOrder = iota
	// OrderVXL is the storage order: x³, x²y, x²z, x², xy², xyz, xy, xz², xz, x, y³, y²z, y², yz²,
	// yz, y, z³, z², z, 1.
	OrderVXL
)

func (o CoefficientOrder) String() string {
	if o == OrderVXL {
		return "VXL"
	}
	return "RPC00B"
}

// ParseCoefficientOrder parses "RPC00B" or "VXL".
func ParseCoefficientOrder(s string) (CoefficientOrder, error) {
	switch strings.ToUpper(s) {
	case "RPC00B":
		return OrderRPC00B, nil
	case "VXL":
		return OrderVXL, nil
	}
	return OrderRPC00B, errors.Errorf("unknown rational coefficient order %q", s)
}

// NumMonomials is the number of terms of a cubic polynomial in three variables.
const NumMonomials = 20

// rpc00bToVXL maps an RPC00B monomial index to its storage index.
var rpc00bToVXL = [NumMonomials]int{19, 9, 15, 18, 6, 8, 14, 3, 12, 17, 5, 0, 4, 7, 1, 10, 13, 2, 11, 16}

// Coefficient rows.
const (
	sampleNumerator = iota
	sampleDenominator
	lineNumerator
	lineDenominator
	numPolynomials
)

// RationalCamera is a rational polynomial camera: image sample and line are each the ratio of two
// cubic polynomials in normalized longitude, latitude and elevation.
type RationalCamera struct {
	// stored in OrderVXL
	coeffs       [numPolynomials][NumMonomials]float64
	scaleOffsets [numAxes]ScaleOffset
}

// NewRationalCamera returns a rational camera for the four polynomials in the given order and the
// scale/offset of each axis.
func NewRationalCamera(
	sampleNum, sampleDen, lineNum, lineDen []float64,
	xScale, xOffset, yScale, yOffset, zScale, zOffset float64,
	uScale, uOffset, vScale, vOffset float64,
	order CoefficientOrder,
) (*RationalCamera, error) {
	var cam RationalCamera
	for i, coeffs := range [][]float64{sampleNum, sampleDen, lineNum, lineDen} {
		if len(coeffs) != NumMonomials {
			return nil, errors.Errorf("rational polynomial %d has %d coefficients, need %d", i, len(coeffs), NumMonomials)
		}
		cam.coeffs[i] = toVXLOrder(coeffs, order)
	}
	scales := [numAxes][2]float64{
		{xScale, xOffset}, {yScale, yOffset}, {zScale, zOffset}, {uScale, uOffset}, {vScale, vOffset},
	}
	for axis, so := range scales {
		var err error
		if cam.scaleOffsets[axis], err = NewScaleOffset(so[0], so[1]); err != nil {
			return nil, errors.Wrapf(err, "axis %s", Axis(axis))
		}
	}
	return &cam, nil
}

// NewRationalCameraFromMatrix returns a rational camera for a 4x20 coefficient matrix, one row per
// polynomial (sample numerator, sample denominator, line numerator, line denominator), and the
// scale/offsets of the X, Y, Z, U and V axes.
func NewRationalCameraFromMatrix(coeffs mat.Matrix, scaleOffsets []ScaleOffset, order CoefficientOrder) (*RationalCamera, error) {
	if r, c := coeffs.Dims(); r != numPolynomials || c != NumMonomials {
		return nil, errors.Errorf("rational coefficient matrix must be %dx%d, got %dx%d", numPolynomials, NumMonomials, r, c)
	}
	if len(scaleOffsets) != int(numAxes) {
		return nil, errors.Errorf("rational camera needs %d scale/offsets, got %d", numAxes, len(scaleOffsets))
	}
	var cam RationalCamera
	for i := 0; i < numPolynomials; i++ {
		cam.coeffs[i] = toVXLOrder(mat.Row(nil, i, coeffs), order)
	}
	for axis, so := range scaleOffsets {
		if so.Scale == 0 {
			return nil, errors.Wrapf(ErrDegenerateProjection, "axis %s scale must not be zero", Axis(axis))
		}
		cam.scaleOffsets[axis] = so
	}
	return &cam, nil
}

func toVXLOrder(coeffs []float64, order CoefficientOrder) [NumMonomials]float64 {
	var out [NumMonomials]float64
	if order == OrderVXL {
		copy(out[:], coeffs)
		return out
	}
	for i, c := range coeffs {
		out[rpc00bToVXL[i]] = c
	}
	return out
}

func fromVXLOrder(coeffs [NumMonomials]float64, order CoefficientOrder) []float64 {
	out := make([]float64, NumMonomials)
	if order == OrderVXL {
		copy(out, coeffs[:])
		return out
	}
	for i := range out {
		out[i] = coeffs[rpc00bToVXL[i]]
	}
	return out
}

// monomials returns the cubic monomials of (x, y, z) in OrderVXL.
func monomials(x, y, z float64) []float64 {
	return []float64{
		x * x * x, x * x * y, x * x * z, x * x, x * y * y, x * y * z, x * y, x * z * z, x * z, x,
		y * y * y, y * y * z, y * y, y * z * z, y * z, y,
		z * z * z, z * z, z, 1,
	}
}

// Project maps longitude x, latitude y and elevation z to image sample u and line v.
func (c *RationalCamera) Project(x, y, z float64) (float64, float64, error) {
	nx, err := c.scaleOffsets[AxisX].Normalize(x)
	if err != nil {
		return 0, 0, err
	}
	ny, err := c.scaleOffsets[AxisY].Normalize(y)
	if err != nil {
		return 0, 0, err
	}
	nz, err := c.scaleOffsets[AxisZ].Normalize(z)
	if err != nil {
		return 0, 0, err
	}

	terms := monomials(nx, ny, nz)
	var values [numPolynomials]float64
	for i := range values {
		values[i] = floats.Dot(c.coeffs[i][:], terms)
	}
	if values[sampleDenominator] == 0 {
		return 0, 0, NewDegenerateProjectionError("sample denominator", 0)
	}
	if values[lineDenominator] == 0 {
		return 0, 0, NewDegenerateProjectionError("line denominator", 0)
	}

	u := c.scaleOffsets[AxisU].UnNormalize(values[sampleNumerator] / values[sampleDenominator])
	v := c.scaleOffsets[AxisV].UnNormalize(values[lineNumerator] / values[lineDenominator])
	return u, v, nil
}

// Offset returns the offset of an axis.
func (c *RationalCamera) Offset(axis Axis) (float64, error) {
	if axis < 0 || axis >= numAxes {
		return 0, NewInvalidAxisError(axis)
	}
	return c.scaleOffsets[axis].Offset, nil
}

// SetOffset sets the offset of an axis.
func (c *RationalCamera) SetOffset(axis Axis, offset float64) error {
	if axis < 0 || axis >= numAxes {
		return NewInvalidAxisError(axis)
	}
	c.scaleOffsets[axis].Offset = offset
	return nil
}

// Scale returns the scale of an axis.
func (c *RationalCamera) Scale(axis Axis) (float64, error) {
	if axis < 0 || axis >= numAxes {
		return 0, NewInvalidAxisError(axis)
	}
	return c.scaleOffsets[axis].Scale, nil
}

// SetScale sets the scale of an axis. The scale must not be zero.
func (c *RationalCamera) SetScale(axis Axis, scale float64) error {
	if axis < 0 || axis >= numAxes {
		return NewInvalidAxisError(axis)
	}
	so, err := NewScaleOffset(scale, c.scaleOffsets[axis].Offset)
	if err != nil {
		return err
	}
	c.scaleOffsets[axis] = so
	return nil
}

// ImageOffset returns the sample and line offsets.
func (c *RationalCamera) ImageOffset() (u, v float64) {
	return c.scaleOffsets[AxisU].Offset, c.scaleOffsets[AxisV].Offset
}

// SetImageOffset sets the sample and line offsets.
func (c *RationalCamera) SetImageOffset(u, v float64) {
	c.scaleOffsets[AxisU].Offset = u
	c.scaleOffsets[AxisV].Offset = v
}

// GroundOffset returns the X, Y and Z offsets: the longitude, latitude and elevation the
// polynomials are centred on.
func (c *RationalCamera) GroundOffset() r3.Vector {
	return r3.Vector{X: c.scaleOffsets[AxisX].Offset, Y: c.scaleOffsets[AxisY].Offset, Z: c.scaleOffsets[AxisZ].Offset}
}

// SetGroundOffset sets the X, Y and Z offsets.
func (c *RationalCamera) SetGroundOffset(p r3.Vector) {
	c.scaleOffsets[AxisX].Offset = p.X
	c.scaleOffsets[AxisY].Offset = p.Y
	c.scaleOffsets[AxisZ].Offset = p.Z
}

// ImageScale returns the sample and line scales.
func (c *RationalCamera) ImageScale() (u, v float64) {
	return c.scaleOffsets[AxisU].Scale, c.scaleOffsets[AxisV].Scale
}

// SetImageScale sets the sample and line scales, neither of which may be zero.
func (c *RationalCamera) SetImageScale(u, v float64) error {
	if err := c.SetScale(AxisU, u); err != nil {
		return err
	}
	return c.SetScale(AxisV, v)
}

// Correct returns a copy of the camera whose image offset is shifted by (du, dv).
func (c *RationalCamera) Correct(du, dv float64) *RationalCamera {
	corrected := *c
	u, v := corrected.ImageOffset()
	corrected.SetImageOffset(u+du, v+dv)
	return &corrected
}

// Coefficients returns the four polynomials (sample numerator, sample denominator, line numerator,
// line denominator) in the given order.
func (c *RationalCamera) Coefficients(order CoefficientOrder) [][]float64 {
	out := make([][]float64, numPolynomials)
	for i := range out {
		out[i] = fromVXLOrder(c.coeffs[i], order)
	}
	return out
}

// CoefficientMatrix returns the 4x20 coefficient matrix in OrderVXL.
func (c *RationalCamera) CoefficientMatrix() *mat.Dense {
	m := mat.NewDense(numPolynomials, NumMonomials, nil)
	for i := range c.coeffs {
		m.SetRow(i, c.coeffs[i][:])
	}
	return m
}

// ScaleOffsets returns the X, Y, Z, U and V scale/offsets.
func (c *RationalCamera) ScaleOffsets() []ScaleOffset {
	out := make([]ScaleOffset, numAxes)
	copy(out, c.scaleOffsets[:])
	return out
}

// TypeName returns "rational".
func (c *RationalCamera) TypeName() string {
	return RationalTypeName
}

// Clone returns a deep copy of the camera.
func (c *RationalCamera) Clone() Camera {
	cp := *c
	return &cp
}

// String prints the scale/offsets and coefficients.
func (c *RationalCamera) String() string {
	var sb strings.Builder
	sb.WriteString("rational camera\n")
	for axis, so := range c.scaleOffsets {
		fmt.Fprintf(&sb, "  %s: scale %v offset %v\n", Axis(axis), so.Scale, so.Offset)
	}
	for i, name := range []string{"sample numerator", "sample denominator", "line numerator", "line denominator"} {
		fmt.Fprintf(&sb, "  %s: %v\n", name, c.coeffs[i])
	}
	return sb.String()
}
