package camera

import (
	"fmt"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"

	"go.viam.com/geocam/spatialmath"
)

// PerspectiveCamera is a projective camera decomposed as M = K [R | t].
type PerspectiveCamera struct {
	ProjectiveCamera
	k           *CalibrationMatrix
	rotation    spatialmath.Rotation
	translation r3.Vector
}

// NewPerspectiveCamera composes K [R | t] once.
func NewPerspectiveCamera(k *CalibrationMatrix, rotation spatialmath.Rotation, translation r3.Vector) *PerspectiveCamera {
	var rt mat.Dense
	rt.Augment(rotation.Matrix(), mat.NewDense(3, 1, []float64{translation.X, translation.Y, translation.Z}))
	var m mat.Dense
	m.Mul(k.k, &rt)
	return &PerspectiveCamera{
		ProjectiveCamera: ProjectiveCamera{m: &m},
		k:                &CalibrationMatrix{k: mat.DenseCopyOf(k.k)},
		rotation:         rotation,
		translation:      translation,
	}
}

// NewPerspectiveCameraAt returns a camera with centre c. The translation is -R c.
func NewPerspectiveCameraAt(k *CalibrationMatrix, rotation spatialmath.Rotation, center r3.Vector) *PerspectiveCamera {
	return NewPerspectiveCamera(k, rotation, rotation.Rotate(center).Mul(-1))
}

// Calibration returns the intrinsic matrix.
func (c *PerspectiveCamera) Calibration() *CalibrationMatrix {
	return &CalibrationMatrix{k: mat.DenseCopyOf(c.k.k)}
}

// Rotation returns the world to camera rotation R.
func (c *PerspectiveCamera) Rotation() spatialmath.Rotation {
	return c.rotation
}

// Translation returns t.
func (c *PerspectiveCamera) Translation() r3.Vector {
	return c.translation
}

// CameraCenter returns the world position of the camera, -R^T t.
func (c *PerspectiveCamera) CameraCenter() r3.Vector {
	return c.rotation.Inverse().Rotate(c.translation).Mul(-1)
}

// TypeName returns "perspective".
func (c *PerspectiveCamera) TypeName() string {
	return PerspectiveTypeName
}

// Clone returns a deep copy of the camera.
func (c *PerspectiveCamera) Clone() Camera {
	return &PerspectiveCamera{
		ProjectiveCamera: *c.ProjectiveCamera.clone(),
		k:                c.Calibration(),
		rotation:         c.rotation,
		translation:      c.translation,
	}
}

// String prints the camera centre and matrix.
func (c *PerspectiveCamera) String() string {
	return fmt.Sprintf("%s camera center=%v\n%v", c.TypeName(), c.CameraCenter(), mat.Formatted(c.m))
}
