package camera

import (
	"fmt"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"go.viam.com/geocam/geodesy"
)

// LocalRationalCamera is a rational camera whose world points are given in a local vertical
// coordinate system. Its image offset is usually relative to a crop of the original image.
type LocalRationalCamera struct {
	RationalCamera
	lvcs *geodesy.LVCS
}

// NewLocalRationalCamera pairs a copy of a rational camera with a copy of an LVCS.
func NewLocalRationalCamera(lvcs *geodesy.LVCS, cam *RationalCamera) (*LocalRationalCamera, error) {
	if cam == nil {
		return nil, errors.New("local rational camera needs a rational camera")
	}
	if !lvcs.IsAnchored() {
		return nil, geodesy.ErrUnanchored
	}
	lvcsCopy := *lvcs
	return &LocalRationalCamera{RationalCamera: *cam, lvcs: &lvcsCopy}, nil
}

// NewLocalRationalCameraAt anchors a WGS84 LVCS in degrees and meters at the given origin and
// pairs it with a copy of the rational camera.
func NewLocalRationalCameraAt(lon, lat, elev float64, cam *RationalCamera) (*LocalRationalCamera, error) {
	return NewLocalRationalCamera(geodesy.NewLVCS(lat, lon, elev, geodesy.WGS84, geodesy.Degrees, geodesy.Meters), cam)
}

// Project converts (x, y, z) from the LVCS to WGS84 longitude, latitude (degrees) and elevation
// (meters), then applies the rational polynomials.
func (c *LocalRationalCamera) Project(x, y, z float64) (float64, float64, error) {
	global, err := c.lvcs.LocalToGlobal(r3.Vector{X: x, Y: y, Z: z}, geodesy.WGS84, geodesy.Degrees, geodesy.Meters)
	if err != nil {
		return 0, 0, err
	}
	return c.RationalCamera.Project(global.X, global.Y, global.Z)
}

// LVCS returns a copy of the local coordinate system.
func (c *LocalRationalCamera) LVCS() *geodesy.LVCS {
	if c.lvcs == nil {
		return &geodesy.LVCS{}
	}
	lvcsCopy := *c.lvcs
	return &lvcsCopy
}

// SetLVCS replaces the local coordinate system with a copy of lvcs.
func (c *LocalRationalCamera) SetLVCS(lvcs *geodesy.LVCS) error {
	if !lvcs.IsAnchored() {
		return geodesy.ErrUnanchored
	}
	lvcsCopy := *lvcs
	c.lvcs = &lvcsCopy
	return nil
}

// SetLVCSOrigin moves the origin of the local coordinate system, in its own units.
func (c *LocalRationalCamera) SetLVCSOrigin(lon, lat, elev float64) {
	lvcs := c.LVCS()
	lvcs.SetOrigin(lat, lon, elev)
	c.lvcs = lvcs
}

// Correct returns a copy of the camera whose image offset is shifted by (du, dv).
func (c *LocalRationalCamera) Correct(du, dv float64) *LocalRationalCamera {
	return &LocalRationalCamera{RationalCamera: *c.RationalCamera.Correct(du, dv), lvcs: c.LVCS()}
}

// TypeName returns "local_rational".
func (c *LocalRationalCamera) TypeName() string {
	return LocalRationalTypeName
}

// Clone returns a deep copy of the camera.
func (c *LocalRationalCamera) Clone() Camera {
	return &LocalRationalCamera{RationalCamera: c.RationalCamera, lvcs: c.LVCS()}
}

// String prints the LVCS and the rational camera.
func (c *LocalRationalCamera) String() string {
	return fmt.Sprintf("local %s%s\n", c.RationalCamera.String(), c.lvcs)
}
