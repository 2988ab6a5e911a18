// Package spatialmath defines the bounding boxes and rotations used by the camera models.
package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/quat"
)

// Rotation is a rotation in 3D Euclidean space backed by a unit quaternion.
type Rotation struct {
	q quat.Number
}

// NewZeroRotation returns a rotation which signifies no rotation.
func NewZeroRotation() Rotation {
	return Rotation{quat.Number{Real: 1}}
}

// NewRotationFromQuaternion returns the rotation of the given quaternion. The quaternion is
// normalized; a zero quaternion yields the zero rotation.
func NewRotationFromQuaternion(q quat.Number) Rotation {
	norm := quat.Abs(q)
	if norm == 0 {
		return NewZeroRotation()
	}
	return Rotation{quat.Scale(1/norm, q)}
}

// NewRotationFromAxisAngle returns the rotation of theta radians about the given axis.
func NewRotationFromAxisAngle(aa *R4AA) (Rotation, error) {
	q, err := aa.ToQuat()
	if err != nil {
		return Rotation{}, err
	}
	return Rotation{q}, nil
}

// NewRotationFromEulerAngles returns the rotation for roll (about x), pitch (about y) and
// yaw (about z) in radians, applied in that order.
func NewRotationFromEulerAngles(roll, pitch, yaw float64) Rotation {
	cr, sr := math.Cos(roll/2), math.Sin(roll/2)
	cp, sp := math.Cos(pitch/2), math.Sin(pitch/2)
	cy, sy := math.Cos(yaw/2), math.Sin(yaw/2)
	return NewRotationFromQuaternion(quat.Number{
		Real: cr*cp*cy + sr*sp*sy,
		Imag: sr*cp*cy - cr*sp*sy,
		Jmag: cr*sp*cy + sr*cp*sy,
		Kmag: cr*cp*sy - sr*sp*cy,
	})
}

// NewRotationFromMatrix converts a 3x3 rotation matrix to a Rotation. The matrix must be
// orthonormal with determinant 1 (to within 1e-6).
func NewRotationFromMatrix(m mat.Matrix) (Rotation, error) {
	if r, c := m.Dims(); r != 3 || c != 3 {
		return Rotation{}, errors.Errorf("rotation matrix must be 3x3, got %dx%d", r, c)
	}
	var rrt mat.Dense
	rrt.Mul(m, m.T())
	if !mat.EqualApprox(&rrt, eye3(), 1e-6) || math.Abs(mat.Det(m)-1) > 1e-6 {
		return Rotation{}, errors.New("matrix is not a proper rotation")
	}

	// Shepperd's method: branch on the largest diagonal term for numerical stability.
	m00, m11, m22 := m.At(0, 0), m.At(1, 1), m.At(2, 2)
	trace := m00 + m11 + m22
	var q quat.Number
	switch {
	case trace > 0:
		s := 2 * math.Sqrt(trace+1)
		q = quat.Number{
			Real: s / 4,
			Imag: (m.At(2, 1) - m.At(1, 2)) / s,
			Jmag: (m.At(0, 2) - m.At(2, 0)) / s,
			Kmag: (m.At(1, 0) - m.At(0, 1)) / s,
		}
	case m00 > m11 && m00 > m22:
		s := 2 * math.Sqrt(1+m00-m11-m22)
		q = quat.Number{
			Real: (m.At(2, 1) - m.At(1, 2)) / s,
			Imag: s / 4,
			Jmag: (m.At(0, 1) + m.At(1, 0)) / s,
			Kmag: (m.At(0, 2) + m.At(2, 0)) / s,
		}
	case m11 > m22:
		s := 2 * math.Sqrt(1+m11-m00-m22)
		q = quat.Number{
			Real: (m.At(0, 2) - m.At(2, 0)) / s,
			Imag: (m.At(0, 1) + m.At(1, 0)) / s,
			Jmag: s / 4,
			Kmag: (m.At(1, 2) + m.At(2, 1)) / s,
		}
	default:
		s := 2 * math.Sqrt(1+m22-m00-m11)
		q = quat.Number{
			Real: (m.At(1, 0) - m.At(0, 1)) / s,
			Imag: (m.At(0, 2) + m.At(2, 0)) / s,
			Jmag: (m.At(1, 2) + m.At(2, 1)) / s,
			Kmag: s / 4,
		}
	}
	return NewRotationFromQuaternion(q), nil
}

// Quaternion returns the unit quaternion of the rotation.
func (r Rotation) Quaternion() quat.Number {
	if r.q == (quat.Number{}) {
		return quat.Number{Real: 1}
	}
	return r.q
}

// Matrix returns the rotation as a 3x3 matrix.
func (r Rotation) Matrix() *mat.Dense {
	q := r.Quaternion()
	w, x, y, z := q.Real, q.Imag, q.Jmag, q.Kmag
	return mat.NewDense(3, 3, []float64{
		1 - 2*(y*y+z*z), 2 * (x*y - w*z), 2 * (x*z + w*y),
		2 * (x*y + w*z), 1 - 2*(x*x+z*z), 2 * (y*z - w*x),
		2 * (x*z - w*y), 2 * (y*z + w*x), 1 - 2*(x*x+y*y),
	})
}

// Rotate applies the rotation to v.
func (r Rotation) Rotate(v r3.Vector) r3.Vector {
	q := r.Quaternion()
	p := quat.Mul(quat.Mul(q, quat.Number{Imag: v.X, Jmag: v.Y, Kmag: v.Z}), quat.Conj(q))
	return r3.Vector{X: p.Imag, Y: p.Jmag, Z: p.Kmag}
}

// Inverse returns the opposite rotation.
func (r Rotation) Inverse() Rotation {
	return Rotation{quat.Conj(r.Quaternion())}
}

// Compose returns the rotation that applies other first and then r.
func (r Rotation) Compose(other Rotation) Rotation {
	return NewRotationFromQuaternion(quat.Mul(r.Quaternion(), other.Quaternion()))
}

// AxisAngles returns the rotation in axis angle representation.
func (r Rotation) AxisAngles() *R4AA {
	q := r.Quaternion()
	if q.Real < 0 {
		q = quat.Scale(-1, q)
	}
	sinHalf := math.Sqrt(q.Imag*q.Imag + q.Jmag*q.Jmag + q.Kmag*q.Kmag)
	if sinHalf < 1e-12 {
		return NewR4AA()
	}
	theta := 2 * math.Atan2(sinHalf, q.Real)
	return &R4AA{Theta: theta, RX: q.Imag / sinHalf, RY: q.Jmag / sinHalf, RZ: q.Kmag / sinHalf}
}

// RotationAlmostEqual returns true if the two rotations differ by less than tol in every
// quaternion component, treating q and -q as the same rotation.
func RotationAlmostEqual(a, b Rotation, tol float64) bool {
	return quaternionAlmostEqual(a.Quaternion(), b.Quaternion(), tol) ||
		quaternionAlmostEqual(a.Quaternion(), quat.Scale(-1, b.Quaternion()), tol)
}

func quaternionAlmostEqual(a, b quat.Number, tol float64) bool {
	return math.Abs(a.Real-b.Real) < tol &&
		math.Abs(a.Imag-b.Imag) < tol &&
		math.Abs(a.Jmag-b.Jmag) < tol &&
		math.Abs(a.Kmag-b.Kmag) < tol
}

func eye3() *mat.Dense {
	return mat.NewDense(3, 3, []float64{1, 0, 0, 0, 1, 0, 0, 0, 1})
}
