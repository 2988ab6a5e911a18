// Package roi finds the image region that contains a 3D scene box and builds the local rational
// camera of the cropped image.
package roi

import (
	"image"
	"math"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"go.viam.com/geocam/camera"
	"go.viam.com/geocam/geodesy"
	"go.viam.com/geocam/logging"
	"go.viam.com/geocam/spatialmath"
	"go.viam.com/geocam/utils"
)

// ProjectBox returns the image bounding box of a scene box given in lvcs local coordinates. The
// ground offset of cam may be wrong by up to uncertainty meters along each local axis: the scene
// is projected through a copy of cam re-pointed at each corner of that uncertainty cube, so the
// result contains the projection of the scene for every such offset.
func ProjectBox(cam *camera.RationalCamera, lvcs *geodesy.LVCS, scene spatialmath.Box3D, uncertainty float64) (spatialmath.Box2D, error) {
	if err := checkProjection(cam, lvcs, scene, uncertainty); err != nil {
		return spatialmath.Box2D{}, err
	}
	sceneGlobal := make([]r3.Vector, 0, 8)
	for _, vertex := range scene.Vertices() {
		global, err := lvcs.LocalToGlobal(vertex, geodesy.WGS84, geodesy.Degrees, geodesy.Meters)
		if err != nil {
			return spatialmath.Box2D{}, NewProjectionError(err)
		}
		sceneGlobal = append(sceneGlobal, global)
	}
	return projectGeodetic(cam, lvcs, sceneGlobal, uncertainty)
}

func checkProjection(cam *camera.RationalCamera, lvcs *geodesy.LVCS, scene spatialmath.Box3D, uncertainty float64) error {
	switch {
	case cam == nil:
		return NewProjectionError(errors.New("no camera"))
	case !lvcs.IsAnchored():
		return NewProjectionError(geodesy.ErrUnanchored)
	case scene.IsEmpty():
		return NewProjectionError(errors.New("scene box is empty"))
	case uncertainty < 0 || math.IsNaN(uncertainty):
		return NewProjectionError(errors.Errorf("uncertainty %v must not be negative", uncertainty))
	}
	return nil
}

// projectGeodetic projects WGS84 (longitude, latitude, elevation) points through cam re-pointed
// at each corner of the uncertainty cube around its ground offset in lvcs.
func projectGeodetic(cam *camera.RationalCamera, lvcs *geodesy.LVCS, points []r3.Vector, uncertainty float64) (spatialmath.Box2D, error) {
	anchor, err := lvcs.GlobalToLocal(cam.GroundOffset(), geodesy.WGS84, geodesy.Degrees, geodesy.Meters)
	if err != nil {
		return spatialmath.Box2D{}, NewProjectionError(err)
	}
	side := 2 * lvcs.LenUnit().FromMeters(uncertainty)
	cube := spatialmath.NewBox3DFromCenter(anchor, side, side, side)

	region := spatialmath.NewEmptyBox2D()
	for _, corner := range cube.Vertices() {
		offset, err := lvcs.LocalToGlobal(corner, geodesy.WGS84, geodesy.Degrees, geodesy.Meters)
		if err != nil {
			return spatialmath.Box2D{}, NewProjectionError(err)
		}
		perturbed := *cam
		perturbed.SetGroundOffset(offset)
		for _, p := range points {
			u, v, err := perturbed.Project(p.X, p.Y, p.Z)
			if err != nil {
				return spatialmath.Box2D{}, NewProjectionError(err)
			}
			region.Add(r2.Point{X: u, Y: v})
		}
	}
	return region, nil
}

// CropImageUsing3DBox is CropImageUsing3DBoxWithLVCS with an LVCS anchored at the lower left
// corner of the scene.
func CropImageUsing3DBox(
	width, height int,
	cam camera.Camera,
	lowerLeft, upperRight r3.Vector,
	uncertainty float64,
	logger logging.Logger,
) (*camera.LocalRationalCamera, image.Rectangle, error) {
	return CropImageUsing3DBoxWithLVCS(width, height, cam, lowerLeft, upperRight, uncertainty, nil, logger)
}

// CropImageUsing3DBoxWithLVCS finds the region of a width x height image that contains the scene
// box spanned by two WGS84 (longitude, latitude, elevation) corners, in degrees and meters, with
// the ground offset of cam uncertain by up to uncertainty meters. It returns the region and the
// local rational camera of the cropped image. The corners of the geodetic box are projected
// directly; lvcs only frames the uncertainty cube and the returned camera. A nil or unanchored
// lvcs is replaced by a WGS84 LVCS in degrees and meters anchored at lowerLeft.
func CropImageUsing3DBoxWithLVCS(
	width, height int,
	cam camera.Camera,
	lowerLeft, upperRight r3.Vector,
	uncertainty float64,
	lvcs *geodesy.LVCS,
	logger logging.Logger,
) (*camera.LocalRationalCamera, image.Rectangle, error) {
	if logger == nil {
		logger = logging.Global()
	}
	var rational *camera.RationalCamera
	switch c := cam.(type) {
	case *camera.RationalCamera:
		rational = c
	case *camera.LocalRationalCamera:
		rational = &c.RationalCamera
	default:
		return nil, image.Rectangle{}, utils.NewUnexpectedTypeError(rational, cam)
	}

	if !lvcs.IsAnchored() {
		lvcs = geodesy.NewLVCS(lowerLeft.Y, lowerLeft.X, lowerLeft.Z, geodesy.WGS84, geodesy.Degrees, geodesy.Meters)
		logger.Debugw("anchored crop lvcs", "lvcs", lvcs.String())
	}
	scene := spatialmath.NewBox3D(lowerLeft, upperRight)
	if err := checkProjection(rational, lvcs, scene, uncertainty); err != nil {
		return nil, image.Rectangle{}, err
	}
	projected, err := projectGeodetic(rational, lvcs, scene.Vertices(), uncertainty)
	if err != nil {
		return nil, image.Rectangle{}, err
	}

	region := clip(projected, width, height)
	logger.Infow("projected scene box",
		"min_u", projected.MinX(), "min_v", projected.MinY(),
		"max_u", projected.MaxX(), "max_v", projected.MaxY(),
		"crop", region.String())
	if region.Dx() <= 0 || region.Dy() <= 0 {
		return nil, image.Rectangle{}, NewEmptyCropError(region, width, height)
	}
	if projected.MinX() < 0 || projected.MinY() < 0 || projected.MaxX() > float64(width) || projected.MaxY() > float64(height) {
		logger.Warnw("scene box extends past the image", "width", width, "height", height, "crop", region.String())
	}

	local, err := CreateLocalRationalCamera(rational, lvcs, float64(region.Min.X), float64(region.Min.Y))
	if err != nil {
		return nil, image.Rectangle{}, err
	}
	return local, region, nil
}

// clip returns the integer region covering box inside [0, width) x [0, height). The result may
// have no area.
func clip(box spatialmath.Box2D, width, height int) image.Rectangle {
	w, h := float64(width), float64(height)
	x0 := math.Floor(utils.Clamp(box.MinX(), 0, w))
	y0 := math.Floor(utils.Clamp(box.MinY(), 0, h))
	x1 := math.Ceil(utils.Clamp(box.MaxX(), 0, w))
	y1 := math.Ceil(utils.Clamp(box.MaxY(), 0, h))
	if math.IsNaN(x0+y0+x1+y1) || x1 <= x0 || y1 <= y0 {
		return image.Rectangle{}
	}
	// image.Rect would swap inverted bounds
	return image.Rectangle{Min: image.Point{X: int(x0), Y: int(y0)}, Max: image.Point{X: int(x1), Y: int(y1)}}
}

// CreateLocalRationalCamera returns a local rational camera in lvcs for the image cropped at
// (minX, minY): its image offset is the offset of cam minus (minX, minY).
func CreateLocalRationalCamera(cam *camera.RationalCamera, lvcs *geodesy.LVCS, minX, minY float64) (*camera.LocalRationalCamera, error) {
	shifted := cam.Correct(-minX, -minY)
	return camera.NewLocalRationalCamera(lvcs, shifted)
}
