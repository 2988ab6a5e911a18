package camera

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// DefaultViewingDistance is the distance from the world origin to the plane holding the origins
// of back-projected rays.
const DefaultViewingDistance = 1000.0

// Ray is a half line in world coordinates.
type Ray struct {
	Origin    r3.Vector
	Direction r3.Vector
}

// AffineCamera is a projective camera whose last row is (0, 0, 0, 1), so every point projects
// along the same ray direction.
type AffineCamera struct {
	ProjectiveCamera
	rayDir          r3.Vector
	viewingDistance float64
}

// NewAffineCamera returns an affine camera for a 3x4 matrix whose last row is (0, 0, 0, 1).
func NewAffineCamera(m mat.Matrix) (*AffineCamera, error) {
	proj, err := NewProjectiveCamera(m)
	if err != nil {
		return nil, err
	}
	last := []float64{0, 0, 0, 1}
	for j, want := range last {
		if math.Abs(proj.m.At(2, j)-want) > HomogeneousEpsilon {
			return nil, errors.Errorf("affine camera matrix last row must be (0, 0, 0, 1), got %v",
				mat.Formatted(proj.m.RowView(2).T()))
		}
	}
	row0 := r3.Vector{X: proj.m.At(0, 0), Y: proj.m.At(0, 1), Z: proj.m.At(0, 2)}
	row1 := r3.Vector{X: proj.m.At(1, 0), Y: proj.m.At(1, 1), Z: proj.m.At(1, 2)}
	dir := row0.Cross(row1)
	if dir.Norm() < HomogeneousEpsilon {
		return nil, NewDegenerateProjectionError("affine ray direction norm", dir.Norm())
	}
	return &AffineCamera{
		ProjectiveCamera: *proj,
		rayDir:           dir.Normalize(),
		viewingDistance:  DefaultViewingDistance,
	}, nil
}

// NewAffineCameraFromRay returns an affine camera looking along ray with the image v axis
// following up. The stare point projects to (u0, v0) and su, sv are pixels per world unit.
func NewAffineCameraFromRay(ray, up, stare r3.Vector, u0, v0, su, sv float64) (*AffineCamera, error) {
	if ray.Norm() == 0 {
		return nil, errors.New("affine camera ray must not be zero")
	}
	r := ray.Normalize()
	x := r.Cross(up)
	if x.Norm() < HomogeneousEpsilon {
		return nil, errors.New("affine camera up vector must not be parallel to the ray")
	}
	x = x.Normalize()
	y := r.Cross(x)

	m := mat.NewDense(3, 4, []float64{
		su * x.X, su * x.Y, su * x.Z, u0 - su*x.Dot(stare),
		sv * y.X, sv * y.Y, sv * y.Z, v0 - sv*y.Dot(stare),
		0, 0, 0, 1,
	})
	return NewAffineCamera(m)
}

// RayDir returns the unit direction shared by every back-projected ray.
func (c *AffineCamera) RayDir() r3.Vector {
	return c.rayDir
}

// ViewingDistance returns the distance of the ray origin plane from the world origin.
func (c *AffineCamera) ViewingDistance() float64 {
	return c.viewingDistance
}

// SetViewingDistance sets the distance of the ray origin plane from the world origin.
func (c *AffineCamera) SetViewingDistance(d float64) {
	c.viewingDistance = d
}

// BackprojectRay returns the ray through image point (u, v). Its origin X satisfies
// P(X) = (u, v) and RayDir()·X = -ViewingDistance().
func (c *AffineCamera) BackprojectRay(u, v float64) (Ray, error) {
	a := mat.NewDense(3, 3, []float64{
		c.m.At(0, 0), c.m.At(0, 1), c.m.At(0, 2),
		c.m.At(1, 0), c.m.At(1, 1), c.m.At(1, 2),
		c.rayDir.X, c.rayDir.Y, c.rayDir.Z,
	})
	b := mat.NewVecDense(3, []float64{
		u - c.m.At(0, 3),
		v - c.m.At(1, 3),
		-c.viewingDistance,
	})
	var x mat.VecDense
	if err := x.SolveVec(a, b); err != nil {
		return Ray{}, errors.Wrap(ErrDegenerateProjection, err.Error())
	}
	return Ray{
		Origin:    r3.Vector{X: x.AtVec(0), Y: x.AtVec(1), Z: x.AtVec(2)},
		Direction: c.rayDir,
	}, nil
}

// TypeName returns "affine".
func (c *AffineCamera) TypeName() string {
	return AffineTypeName
}

// Clone returns a deep copy of the camera.
func (c *AffineCamera) Clone() Camera {
	return &AffineCamera{
		ProjectiveCamera: *c.ProjectiveCamera.clone(),
		rayDir:           c.rayDir,
		viewingDistance:  c.viewingDistance,
	}
}

// String prints the camera matrix and ray direction.
func (c *AffineCamera) String() string {
	return fmt.Sprintf("%s camera ray=%v viewing distance=%v\n%v",
		c.TypeName(), c.rayDir, c.viewingDistance, mat.Formatted(c.m))
}
