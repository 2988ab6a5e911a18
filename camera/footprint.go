package camera

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"
)

// Footprint returns the WGS84 outline of a width x height raster as a closed ring of (lon, lat)
// through the image corners (0,0), (width,0), (width,height) and (0,height).
func (c *GeoCamera) Footprint(width, height int) (orb.Polygon, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Errorf("raster size must be positive, got %dx%d", width, height)
	}
	w, h := float64(width), float64(height)
	corners := [][2]float64{{0, 0}, {w, 0}, {w, h}, {0, h}}
	ring := make(orb.Ring, 0, len(corners)+1)
	for _, corner := range corners {
		lon, lat, err := c.ImageToGlobal(corner[0], corner[1])
		if err != nil {
			return nil, err
		}
		ring = append(ring, orb.Point{lon, lat})
	}
	ring = append(ring, ring[0])
	if ring.Orientation() == orb.CW {
		ring.Reverse()
	}
	return orb.Polygon{ring}, nil
}

// FootprintFeature returns the footprint of the raster described by header as a GeoJSON feature
// with the raster size and projection as properties.
func (c *GeoCamera) FootprintFeature(header *RasterHeader) (*geojson.Feature, error) {
	polygon, err := c.Footprint(header.Width, header.Height)
	if err != nil {
		return nil, err
	}
	feature := geojson.NewFeature(polygon)
	feature.Properties["width"] = header.Width
	feature.Properties["height"] = header.Height
	feature.Properties["projection"] = c.projection()
	if gsd, err := c.GroundSampleDistance(); err == nil {
		feature.Properties["ground_sample_distance_m"] = gsd
	}
	return feature, nil
}
