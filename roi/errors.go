package roi

import (
	"image"

	"github.com/pkg/errors"
)

var (
	// ErrProjection is returned when a scene box cannot be projected into the image.
	ErrProjection = errors.New("cannot project scene box")

	// ErrEmptyCrop is returned when the projected region does not overlap the image.
	ErrEmptyCrop = errors.New("empty crop")
)

// NewProjectionError is used when a precondition of box projection fails or a corner fails to
// project.
func NewProjectionError(cause error) error {
	return errors.Wrap(ErrProjection, cause.Error())
}

// NewEmptyCropError is used when the clipped region has no area.
func NewEmptyCropError(region image.Rectangle, width, height int) error {
	return errors.Wrapf(ErrEmptyCrop, "region %v clipped to a %dx%d image", region, width, height)
}
