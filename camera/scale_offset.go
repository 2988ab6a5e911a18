package camera

import (
	"github.com/pkg/errors"
)

// ScaleOffset maps a coordinate into the normalized domain of a rational polynomial and back.
// Scale must not be zero.
type ScaleOffset struct {
	Scale  float64
	Offset float64
}

// NewScaleOffset returns a ScaleOffset, failing on a zero scale.
func NewScaleOffset(scale, offset float64) (ScaleOffset, error) {
	if scale == 0 {
		return ScaleOffset{}, errors.Wrap(ErrDegenerateProjection, "scale must not be zero")
	}
	return ScaleOffset{Scale: scale, Offset: offset}, nil
}

// Normalize returns (x - offset) / scale.
func (so ScaleOffset) Normalize(x float64) (float64, error) {
	if so.Scale == 0 {
		return 0, NewDegenerateProjectionError("scale", so.Scale)
	}
	return (x - so.Offset) / so.Scale, nil
}

// UnNormalize returns y * scale + offset.
func (so ScaleOffset) UnNormalize(y float64) float64 {
	return y*so.Scale + so.Offset
}
