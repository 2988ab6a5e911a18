package camera

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// CalibrationMatrix is the upper triangular intrinsic matrix K of a perspective camera:
//
//	| f*xScale  skew      ppx |
//	| 0         f*yScale  ppy |
//	| 0         0         1   |
type CalibrationMatrix struct {
	k *mat.Dense
}

// NewCalibrationMatrix returns a calibration matrix for a copy of a 3x3 upper triangular matrix.
// The matrix is scaled so that K[2][2] is 1.
func NewCalibrationMatrix(k mat.Matrix) (*CalibrationMatrix, error) {
	if r, c := k.Dims(); r != 3 || c != 3 {
		return nil, errors.Errorf("calibration matrix must be 3x3, got %dx%d", r, c)
	}
	if k.At(1, 0) != 0 || k.At(2, 0) != 0 || k.At(2, 1) != 0 {
		return nil, errors.New("calibration matrix must be upper triangular")
	}
	k22 := k.At(2, 2)
	if math.Abs(k22) < HomogeneousEpsilon {
		return nil, NewDegenerateProjectionError("calibration K[2][2]", k22)
	}
	dense := mat.DenseCopyOf(k)
	dense.Scale(1/k22, dense)
	return &CalibrationMatrix{k: dense}, nil
}

// NewCalibrationMatrixFromFocal returns the calibration matrix of a camera with square pixels,
// no skew, and the given focal length (pixels) and principal point.
func NewCalibrationMatrixFromFocal(focalLength float64, principalPoint r2.Point) *CalibrationMatrix {
	return &CalibrationMatrix{k: mat.NewDense(3, 3, []float64{
		focalLength, 0, principalPoint.X,
		0, focalLength, principalPoint.Y,
		0, 0, 1,
	})}
}

// Matrix returns a copy of K.
func (k *CalibrationMatrix) Matrix() *mat.Dense {
	return mat.DenseCopyOf(k.k)
}

// FocalLength returns K[0][0].
func (k *CalibrationMatrix) FocalLength() float64 {
	return k.k.At(0, 0)
}

// PrincipalPoint returns (K[0][2], K[1][2]).
func (k *CalibrationMatrix) PrincipalPoint() r2.Point {
	return r2.Point{X: k.k.At(0, 2), Y: k.k.At(1, 2)}
}
