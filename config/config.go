// Package config defines the crop job consumed by the geocam crop command.
package config

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"go.viam.com/geocam/camera"
	"go.viam.com/geocam/logging"
	"go.viam.com/geocam/utils"
)

// Config describes one crop: the image and its camera, the part of the scene to keep, and
// where the cropped image's local rational camera is written.
type Config struct {
	ConfigFilePath string `json:"-"`

	Image       ImageConfig  `json:"image"`
	Camera      string       `json:"camera"`
	Scene       SceneConfig  `json:"scene"`
	Uncertainty float64      `json:"uncertainty_meters,omitempty"`
	LVCS        string       `json:"lvcs,omitempty"`
	Output      OutputConfig `json:"output"`
	LogLevel    string       `json:"log_level,omitempty"`
}

// ImageConfig is the size of the full image the camera describes.
type ImageConfig struct {
	Width  int `json:"width_px"`
	Height int `json:"height_px"`
}

// SceneConfig is the scene box spanned by two WGS84 corners.
type SceneConfig struct {
	LowerLeft  GeoPoint `json:"lower_left"`
	UpperRight GeoPoint `json:"upper_right"`
}

// GeoPoint is a WGS84 position in degrees and meters.
type GeoPoint struct {
	Lon  float64 `json:"lon"`
	Lat  float64 `json:"lat"`
	Elev float64 `json:"elev"`
}

// Vector returns the point as (lon, lat, elev).
func (p GeoPoint) Vector() r3.Vector {
	return r3.Vector{X: p.Lon, Y: p.Lat, Z: p.Elev}
}

// OutputConfig says where to write the cropped camera and in which coefficient order.
type OutputConfig struct {
	Camera string `json:"camera"`
	Order  string `json:"order,omitempty"`
}

// CoefficientOrder returns the output coefficient order, RPC00B when unset.
func (oc OutputConfig) CoefficientOrder() (camera.CoefficientOrder, error) {
	if oc.Order == "" {
		return camera.OrderRPC00B, nil
	}
	return camera.ParseCoefficientOrder(oc.Order)
}

// Validate ensures all parts of the config are valid.
func (c *Config) Validate(path string) error {
	if err := c.Image.Validate(path + ".image"); err != nil {
		return err
	}
	if c.Camera == "" {
		return utils.NewConfigValidationFieldRequiredError(path, "camera")
	}
	if err := c.Scene.Validate(path + ".scene"); err != nil {
		return err
	}
	if c.Uncertainty < 0 || math.IsNaN(c.Uncertainty) {
		return utils.NewConfigValidationError(path,
			errors.Errorf("uncertainty_meters must be non-negative, got %v", c.Uncertainty))
	}
	if err := c.Output.Validate(path + ".output"); err != nil {
		return err
	}
	if c.LogLevel != "" {
		if _, err := logging.LevelFromString(c.LogLevel); err != nil {
			return utils.NewConfigValidationError(path, err)
		}
	}
	return nil
}

// Validate ensures the image has a positive size.
func (ic ImageConfig) Validate(path string) error {
	if ic.Width <= 0 {
		return utils.NewConfigValidationFieldRequiredError(path, "width_px")
	}
	if ic.Height <= 0 {
		return utils.NewConfigValidationFieldRequiredError(path, "height_px")
	}
	return nil
}

// Validate ensures both corners are in range and the lower left corner does not exceed the
// upper right one on any axis.
func (sc SceneConfig) Validate(path string) error {
	for _, corner := range []struct {
		name string
		p    GeoPoint
	}{
		{"lower_left", sc.LowerLeft},
		{"upper_right", sc.UpperRight},
	} {
		if math.Abs(corner.p.Lat) > 90 || math.Abs(corner.p.Lon) > 180 {
			return utils.NewConfigValidationError(path, errors.Errorf("%s is out of range: %+v", corner.name, corner.p))
		}
	}
	ll, ur := sc.LowerLeft, sc.UpperRight
	if ll.Lon > ur.Lon || ll.Lat > ur.Lat || ll.Elev > ur.Elev {
		return utils.NewConfigValidationError(path, errors.New("lower_left must not exceed upper_right"))
	}
	return nil
}

// Validate ensures the output has a path and a known order.
func (oc OutputConfig) Validate(path string) error {
	if oc.Camera == "" {
		return utils.NewConfigValidationFieldRequiredError(path, "camera")
	}
	if _, err := oc.CoefficientOrder(); err != nil {
		return utils.NewConfigValidationError(path, err)
	}
	return nil
}
