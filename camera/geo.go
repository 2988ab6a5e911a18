package camera

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
	geo "github.com/kellydunn/golang-geo"

	"go.viam.com/geocam/geodesy"
)

// GeoCamera maps world points to the pixels of a geo-referenced raster through its affine
// geotransform. The geotransform is in GDAL order:
//
//	x = gt[0] + u*gt[1] + v*gt[2]
//	y = gt[3] + u*gt[4] + v*gt[5]
//
// where (x, y) is (longitude, latitude) in degrees, or a UTM (easting, northing) for projected
// rasters.
type GeoCamera struct {
	geoTransform [6]float64
	inverse      [6]float64

	isUTM    bool
	utmZone  int
	utmSouth bool

	lvcs *geodesy.LVCS
}

// NewGeoCamera returns a camera for an invertible geotransform.
func NewGeoCamera(geoTransform [6]float64) (*GeoCamera, error) {
	det := geoTransform[1]*geoTransform[5] - geoTransform[2]*geoTransform[4]
	if math.Abs(det) < HomogeneousEpsilon*HomogeneousEpsilon {
		return nil, NewDegenerateProjectionError("geotransform determinant", det)
	}
	a, b, c, d := geoTransform[1], geoTransform[2], geoTransform[4], geoTransform[5]
	x0, y0 := geoTransform[0], geoTransform[3]
	// u = inv[0] + x*inv[1] + y*inv[2]; v = inv[3] + x*inv[4] + y*inv[5]
	inverse := [6]float64{
		(b*y0 - d*x0) / det, d / det, -b / det,
		(c*x0 - a*y0) / det, -c / det, a / det,
	}
	return &GeoCamera{geoTransform: geoTransform, inverse: inverse}, nil
}

// SetUTM marks the raster as projected in a WGS84 UTM zone.
func (c *GeoCamera) SetUTM(zone int, south bool) error {
	if zone < 1 || zone > 60 {
		return geodesy.NewInvalidZoneError(zone)
	}
	c.isUTM, c.utmZone, c.utmSouth = true, zone, south
	return nil
}

// UTM returns the zone and hemisphere of a projected raster; ok is false for geographic rasters.
func (c *GeoCamera) UTM() (zone int, south, ok bool) {
	return c.utmZone, c.utmSouth, c.isUTM
}

// SetLVCS makes Project take local coordinates in lvcs. A nil lvcs restores geographic input.
func (c *GeoCamera) SetLVCS(lvcs *geodesy.LVCS) {
	if lvcs == nil {
		c.lvcs = nil
		return
	}
	lvcsCopy := *lvcs
	c.lvcs = &lvcsCopy
}

// LVCS returns the local coordinate system, or nil.
func (c *GeoCamera) LVCS() *geodesy.LVCS {
	if c.lvcs == nil {
		return nil
	}
	lvcsCopy := *c.lvcs
	return &lvcsCopy
}

// GeoTransform returns the geotransform.
func (c *GeoCamera) GeoTransform() [6]float64 {
	return c.geoTransform
}

// ImageToGlobal returns the WGS84 longitude and latitude (degrees) of an image point.
func (c *GeoCamera) ImageToGlobal(u, v float64) (lon, lat float64, err error) {
	gt := c.geoTransform
	x := gt[0] + u*gt[1] + v*gt[2]
	y := gt[3] + u*gt[4] + v*gt[5]
	if !c.isUTM {
		return x, y, nil
	}
	return geodesy.WGS84UTM.UTMToLonLat(x, y, c.utmZone, c.utmSouth)
}

// GlobalToImage returns the image point of a WGS84 longitude and latitude (degrees).
func (c *GeoCamera) GlobalToImage(lon, lat float64) (u, v float64, err error) {
	x, y := lon, lat
	if c.isUTM {
		if x, y, err = geodesy.WGS84UTM.LonLatToUTMZone(lon, lat, c.utmZone, c.utmSouth); err != nil {
			return 0, 0, err
		}
	}
	inv := c.inverse
	return inv[0] + x*inv[1] + y*inv[2], inv[3] + x*inv[4] + y*inv[5], nil
}

// Project maps (x, y, z) to the raster. Without an LVCS (x, y) is WGS84 longitude and latitude in
// degrees; with one, (x, y, z) are local coordinates. The elevation does not affect the result.
func (c *GeoCamera) Project(x, y, z float64) (float64, float64, error) {
	lon, lat := x, y
	if c.lvcs != nil {
		global, err := c.lvcs.LocalToGlobal(r3.Vector{X: x, Y: y, Z: z}, geodesy.WGS84, geodesy.Degrees, geodesy.Meters)
		if err != nil {
			return 0, 0, err
		}
		lon, lat = global.X, global.Y
	}
	return c.GlobalToImage(lon, lat)
}

// GroundSampleDistance returns the great circle distance in meters spanned by the first pixel of
// the first row.
func (c *GeoCamera) GroundSampleDistance() (float64, error) {
	lon0, lat0, err := c.ImageToGlobal(0, 0)
	if err != nil {
		return 0, err
	}
	lon1, lat1, err := c.ImageToGlobal(1, 0)
	if err != nil {
		return 0, err
	}
	const metersPerKilometer = 1000
	return metersPerKilometer * geo.NewPoint(lat0, lon0).GreatCircleDistance(geo.NewPoint(lat1, lon1)), nil
}

// TypeName returns "geo".
func (c *GeoCamera) TypeName() string {
	return GeoTypeName
}

// Clone returns a deep copy of the camera.
func (c *GeoCamera) Clone() Camera {
	cp := *c
	cp.lvcs = c.LVCS()
	return &cp
}

func (c *GeoCamera) projection() string {
	if !c.isUTM {
		return "geographic"
	}
	hemisphere := "N"
	if c.utmSouth {
		hemisphere = "S"
	}
	return fmt.Sprintf("utm %d%s", c.utmZone, hemisphere)
}

// String prints the geotransform and projection.
func (c *GeoCamera) String() string {
	return fmt.Sprintf("%s camera %s geotransform=%v", c.TypeName(), c.projection(), c.geoTransform)
}
