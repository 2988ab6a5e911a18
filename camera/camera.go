// Package camera contains the camera models used to map 3D world points to image coordinates:
// projective, affine, perspective, rational polynomial (RPC), local rational and geo-referenced
// raster cameras.
package camera

import (
	"context"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.uber.org/multierr"

	"go.viam.com/geocam/utils"
)

// Camera maps a 3D point to image coordinates (u, v). Implementations are value-like: Project has
// no side effects and Clone returns an independent deep copy.
type Camera interface {
	// Project maps the world point (x, y, z) into the image.
	Project(x, y, z float64) (u, v float64, err error)
	// TypeName is one of "projective", "affine", "perspective", "rational", "local_rational" or "geo".
	TypeName() string
	// Clone returns a deep copy of the camera.
	Clone() Camera
}

// Camera type names.
const (
	ProjectiveTypeName    = "projective"
	AffineTypeName        = "affine"
	PerspectiveTypeName   = "perspective"
	RationalTypeName      = "rational"
	LocalRationalTypeName = "local_rational"
	GeoTypeName           = "geo"
)

// ProjectPoint projects a single point.
func ProjectPoint(cam Camera, p r3.Vector) (r2.Point, error) {
	u, v, err := cam.Project(p.X, p.Y, p.Z)
	if err != nil {
		return r2.Point{}, err
	}
	return r2.Point{X: u, Y: v}, nil
}

// ProjectPoints projects every point. If any point fails, no points are returned and the error
// lists every failing index.
func ProjectPoints(cam Camera, points []r3.Vector) ([]r2.Point, error) {
	var errs error
	projected := lo.Map(points, func(p r3.Vector, i int) r2.Point {
		pt, err := ProjectPoint(cam, p)
		if err != nil {
			errs = multierr.Append(errs, errors.Wrapf(err, "point %d", i))
		}
		return pt
	})
	if errs != nil {
		return nil, errs
	}
	return projected, nil
}

// ProjectPointsParallel is ProjectPoints with the points split into groups that are projected
// concurrently. It is meant for large batches.
func ProjectPointsParallel(ctx context.Context, cam Camera, points []r3.Vector) ([]r2.Point, error) {
	projected := make([]r2.Point, len(points))
	err := utils.GroupWorkParallel(ctx, len(points), func(_, from, to int) error {
		var errs error
		for i := from; i < to; i++ {
			pt, err := ProjectPoint(cam, points[i])
			if err != nil {
				errs = multierr.Append(errs, errors.Wrapf(err, "point %d", i))
				continue
			}
			projected[i] = pt
		}
		return errs
	})
	if err != nil {
		return nil, err
	}
	return projected, nil
}
