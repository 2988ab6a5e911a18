package camera

import (
	"os"

	"github.com/google/tiff"
	"github.com/pkg/errors"
	goutils "go.viam.com/utils"
)

// TIFF and GeoTIFF tags read from the first image file directory.
const (
	tagImageWidth          = 256
	tagImageLength         = 257
	tagModelPixelScale     = 33550
	tagModelTiepoint       = 33922
	tagGeoKeyDirectory     = 34735

	geoKeyRasterType      = 1025
	geoKeyProjectedCSType = 3072

	rasterPixelIsPoint = 2

	geoTIFFFormat = "geotiff"
)

// geoIFD holds the fields of an image file directory that georeference its raster.
type geoIFD struct {
	ImageWidth          uint64    `tiff:"field,tag=256"`
	ImageLength         uint64    `tiff:"field,tag=257"`
	ModelPixelScale     []float64 `tiff:"field,tag=33550"`
	ModelTiepoint       []float64 `tiff:"field,tag=33922"`
	ModelTransformation []float64 `tiff:"field,tag=34264"`
	GeoKeyDirectory     []uint16  `tiff:"field,tag=34735"`
}

// RasterHeader is the georeferencing read from a GeoTIFF header.
type RasterHeader struct {
	Width, Height int
	GeoTransform  [6]float64
	// UTMZone is 0 for geographic rasters.
	UTMZone  int
	UTMSouth bool
	// PixelIsPoint is set when the raster georeferences pixel centers. GeoTransform is already
	// shifted to pixel corners.
	PixelIsPoint bool
}

// ReadGeoCamera reads the header of a GeoTIFF and returns the camera of its raster. Pixels are
// not decoded.
func ReadGeoCamera(path string) (*GeoCamera, error) {
	cam, _, err := ReadGeoTIFF(path)
	return cam, err
}

// ReadGeoTIFF is ReadGeoCamera that also returns the raster header.
func ReadGeoTIFF(path string) (*GeoCamera, *RasterHeader, error) {
	//nolint:gosec
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, NewCameraLoadError(path, []string{geoTIFFFormat}, err)
	}
	defer goutils.UncheckedErrorFunc(f.Close)

	header, err := ReadRasterHeader(f)
	if err != nil {
		return nil, nil, NewCameraLoadError(path, []string{geoTIFFFormat}, err)
	}
	cam, err := NewGeoCamera(header.GeoTransform)
	if err != nil {
		return nil, nil, NewCameraLoadError(path, []string{geoTIFFFormat}, err)
	}
	if header.UTMZone != 0 {
		if err := cam.SetUTM(header.UTMZone, header.UTMSouth); err != nil {
			return nil, nil, NewCameraLoadError(path, []string{geoTIFFFormat}, err)
		}
	}
	return cam, header, nil
}

// ReadRasterHeader reads the size and georeferencing of the first image of a classic TIFF.
func ReadRasterHeader(r tiff.ReadAtReadSeeker) (*RasterHeader, error) {
	tif, err := tiff.Parse(r, nil, nil)
	if err != nil {
		return nil, errors.Wrap(err, "cannot parse tiff")
	}
	ifds := tif.IFDs()
	if len(ifds) == 0 {
		return nil, errors.New("tiff has no image file directory")
	}
	var ifd geoIFD
	if err := tiff.UnmarshalIFD(ifds[0], &ifd); err != nil {
		return nil, errors.Wrap(err, "cannot read tiff directory")
	}
	if ifd.ImageWidth == 0 {
		return nil, errors.Errorf("tiff is missing tag %d", tagImageWidth)
	}
	if ifd.ImageLength == 0 {
		return nil, errors.Errorf("tiff is missing tag %d", tagImageLength)
	}

	header := &RasterHeader{Width: int(ifd.ImageWidth), Height: int(ifd.ImageLength)}
	if header.GeoTransform, err = ifd.geoTransform(); err != nil {
		return nil, err
	}
	keys := parseGeoKeys(ifd.GeoKeyDirectory)
	header.UTMZone, header.UTMSouth = utmFromEPSG(keys[geoKeyProjectedCSType])
	if keys[geoKeyRasterType] == rasterPixelIsPoint {
		header.PixelIsPoint = true
		header.GeoTransform = shiftHalfPixel(header.GeoTransform)
	}
	return header, nil
}

// geoTransform prefers ModelTransformation over a tiepoint and pixel scale.
func (ifd *geoIFD) geoTransform() ([6]float64, error) {
	if matrix := ifd.ModelTransformation; len(matrix) != 0 {
		if len(matrix) != 16 {
			return [6]float64{}, errors.Errorf("model transformation has %d values, need 16", len(matrix))
		}
		return [6]float64{matrix[3], matrix[0], matrix[1], matrix[7], matrix[4], matrix[5]}, nil
	}
	scale, tiepoint := ifd.ModelPixelScale, ifd.ModelTiepoint
	if len(scale) == 0 || len(tiepoint) == 0 {
		return [6]float64{}, errors.New("tiff has no georeference")
	}
	if len(scale) < 2 || len(tiepoint) < 6 {
		return [6]float64{}, errors.New("tiff georeference is truncated")
	}
	i, j, x, y := tiepoint[0], tiepoint[1], tiepoint[3], tiepoint[4]
	return [6]float64{x - i*scale[0], scale[0], 0, y + j*scale[1], 0, -scale[1]}, nil
}

// shiftHalfPixel moves a transform that maps pixel centers to one that maps pixel corners.
func shiftHalfPixel(gt [6]float64) [6]float64 {
	gt[0] -= 0.5*gt[1] + 0.5*gt[2]
	gt[3] -= 0.5*gt[4] + 0.5*gt[5]
	return gt
}

// parseGeoKeys returns the short valued keys of a GeoKeyDirectory. Keys stored in other tags
// are skipped.
func parseGeoKeys(dir []uint16) map[uint16]uint16 {
	keys := map[uint16]uint16{}
	if len(dir) < 4 {
		return keys
	}
	numKeys := int(dir[3])
	for k := 0; k < numKeys && 4+4*k+3 < len(dir); k++ {
		entry := dir[4+4*k : 8+4*k]
		if entry[1] != 0 {
			continue
		}
		keys[entry[0]] = entry[3]
	}
	return keys
}

// utmFromEPSG recognizes WGS84 UTM codes (326zz north, 327zz south).
func utmFromEPSG(code uint16) (int, bool) {
	switch c := int(code); {
	case c > 32600 && c <= 32660:
		return c - 32600, false
	case c > 32700 && c <= 32760:
		return c - 32700, true
	}
	return 0, false
}
