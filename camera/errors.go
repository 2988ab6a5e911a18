package camera

import (
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrCameraLoad is returned when a camera file cannot be parsed as any supported format.
	ErrCameraLoad = errors.New("cannot load camera")

	// ErrDegenerateProjection is returned when a projection divides by a (near) zero homogeneous
	// coordinate or rational denominator, or a model cannot be inverted.
	ErrDegenerateProjection = errors.New("degenerate projection")

	// ErrInvalidAxis is returned when a scale/offset is requested for an unknown axis.
	ErrInvalidAxis = errors.New("invalid axis")
)

// NewCameraLoadError is used when a camera file could not be read with any of the given formats.
// cause carries the individual failures.
func NewCameraLoadError(path string, formats []string, cause error) error {
	if cause == nil {
		return errors.Wrapf(ErrCameraLoad, "%q is not a valid %s camera", path, strings.Join(formats, " or "))
	}
	return errors.Wrapf(ErrCameraLoad, "%q is not a valid %s camera (%v)", path, strings.Join(formats, " or "), cause)
}

// NewDegenerateProjectionError is used when a homogeneous or rational denominator vanishes.
func NewDegenerateProjectionError(what string, value float64) error {
	return errors.Wrapf(ErrDegenerateProjection, "%s is %v", what, value)
}

// NewInvalidAxisError is used when an axis index is outside of [X, V].
func NewInvalidAxisError(axis Axis) error {
	return errors.Wrapf(ErrInvalidAxis, "axis %d", int(axis))
}
