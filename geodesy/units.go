package geodesy

import (
	"github.com/golang/geo/s1"
)

// FeetToMeters is the length of one international foot in meters.
const FeetToMeters = 0.3048

// AngUnit is the unit used for geodetic angles.
type AngUnit int

const (
	// Degrees is the default angular unit.
	Degrees AngUnit = iota
	// Radians angular unit.
	Radians
)

// String returns the token used in the text form.
func (u AngUnit) String() string {
	if u == Radians {
		return "radians"
	}
	return "degrees"
}

// ParseAngUnit parses "degrees" or "radians".
func ParseAngUnit(s string) (AngUnit, error) {
	switch s {
	case "degrees", "DEG", "deg":
		return Degrees, nil
	case "radians", "RADIANS", "rad":
		return Radians, nil
	}
	return Degrees, NewUnknownCoordinateSystemError("angular unit", s)
}

// ToAngle interprets v in this unit.
func (u AngUnit) ToAngle(v float64) s1.Angle {
	if u == Radians {
		return s1.Angle(v) * s1.Radian
	}
	return s1.Angle(v) * s1.Degree
}

// FromAngle expresses a in this unit.
func (u AngUnit) FromAngle(a s1.Angle) float64 {
	if u == Radians {
		return a.Radians()
	}
	return a.Degrees()
}

// ToRadians converts v from this unit to radians.
func (u AngUnit) ToRadians(v float64) float64 {
	return u.ToAngle(v).Radians()
}

// FromRadians converts r radians to this unit.
func (u AngUnit) FromRadians(r float64) float64 {
	return u.FromAngle(s1.Angle(r))
}

// LenUnit is the unit used for elevations and local coordinates.
type LenUnit int

const (
	// Meters is the default length unit.
	Meters LenUnit = iota
	// Feet length unit.
	Feet
)

// String returns the token used in the text form.
func (u LenUnit) String() string {
	if u == Feet {
		return "feet"
	}
	return "meters"
}

// ParseLenUnit parses "meters" or "feet".
func ParseLenUnit(s string) (LenUnit, error) {
	switch s {
	case "meters", "METERS", "m":
		return Meters, nil
	case "feet", "FEET", "ft":
		return Feet, nil
	}
	return Meters, NewUnknownCoordinateSystemError("length unit", s)
}

// ToMeters converts v from this unit to meters.
func (u LenUnit) ToMeters(v float64) float64 {
	if u == Feet {
		return v * FeetToMeters
	}
	return v
}

// FromMeters converts m meters to this unit.
func (u LenUnit) FromMeters(m float64) float64 {
	if u == Feet {
		return m / FeetToMeters
	}
	return m
}
