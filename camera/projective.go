package camera

import (
	"fmt"
	"math"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// HomogeneousEpsilon is the magnitude under which a homogeneous coordinate is treated as zero.
const HomogeneousEpsilon = 1e-12

// ProjectiveCamera is a general 3x4 camera matrix M: [u v w]^T = M [x y z 1]^T.
type ProjectiveCamera struct {
	m *mat.Dense
}

// NewProjectiveCamera returns a camera for a copy of the given 3x4 matrix.
func NewProjectiveCamera(m mat.Matrix) (*ProjectiveCamera, error) {
	if r, c := m.Dims(); r != 3 || c != 4 {
		return nil, errors.Errorf("projective camera matrix must be 3x4, got %dx%d", r, c)
	}
	return &ProjectiveCamera{m: mat.DenseCopyOf(m)}, nil
}

// NewIdentityProjectiveCamera returns the camera [I | 0], which maps (x, y, z) to (x/z, y/z).
func NewIdentityProjectiveCamera() *ProjectiveCamera {
	return &ProjectiveCamera{m: mat.NewDense(3, 4, []float64{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
	})}
}

// Matrix returns a copy of the camera matrix.
func (c *ProjectiveCamera) Matrix() *mat.Dense {
	return mat.DenseCopyOf(c.m)
}

// ProjectHomogeneous applies the camera matrix to a homogeneous world point.
func (c *ProjectiveCamera) ProjectHomogeneous(p [4]float64) [3]float64 {
	var out [3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 4; j++ {
			out[i] += c.m.At(i, j) * p[j]
		}
	}
	return out
}

// Project maps (x, y, z) to (u/w, v/w).
func (c *ProjectiveCamera) Project(x, y, z float64) (float64, float64, error) {
	return dehomogenize(c.ProjectHomogeneous([4]float64{x, y, z, 1}))
}

// ProjectVector returns the vanishing point of the direction d, i.e. the projection of the point
// at infinity (d, 0).
func (c *ProjectiveCamera) ProjectVector(d r3.Vector) (r2.Point, error) {
	u, v, err := dehomogenize(c.ProjectHomogeneous([4]float64{d.X, d.Y, d.Z, 0}))
	if err != nil {
		return r2.Point{}, err
	}
	return r2.Point{X: u, Y: v}, nil
}

// TypeName returns "projective".
func (c *ProjectiveCamera) TypeName() string {
	return ProjectiveTypeName
}

// Clone returns a deep copy of the camera.
func (c *ProjectiveCamera) Clone() Camera {
	return c.clone()
}

func (c *ProjectiveCamera) clone() *ProjectiveCamera {
	return &ProjectiveCamera{m: mat.DenseCopyOf(c.m)}
}

// String prints the camera matrix.
func (c *ProjectiveCamera) String() string {
	return fmt.Sprintf("%s camera\n%v", c.TypeName(), mat.Formatted(c.m))
}

func dehomogenize(p [3]float64) (float64, float64, error) {
	if math.Abs(p[2]) < HomogeneousEpsilon {
		return 0, 0, NewDegenerateProjectionError("homogeneous w", p[2])
	}
	return p[0] / p[2], p[1] / p[2], nil
}
