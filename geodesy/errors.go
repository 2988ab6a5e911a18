package geodesy

import (
	"github.com/pkg/errors"
)

var (
	// ErrUnanchored is returned when a transform is requested from an LVCS whose origin was
	// never set.
	ErrUnanchored = errors.New("lvcs origin is not set")

	// ErrUnknownCoordinateSystem is returned for a coordinate system, unit or zone name that
	// cannot be interpreted.
	ErrUnknownCoordinateSystem = errors.New("unknown coordinate system")
)

// NewUnknownCoordinateSystemError is used when a coordinate system or unit token is not recognized.
func NewUnknownCoordinateSystemError(what string, value interface{}) error {
	return errors.Wrapf(ErrUnknownCoordinateSystem, "%s %v", what, value)
}

// NewInvalidZoneError is used when a UTM zone is outside of [1, 60].
func NewInvalidZoneError(zone int) error {
	return errors.Wrapf(ErrUnknownCoordinateSystem, "utm zone %d is not in [1, 60]", zone)
}
