package spatialmath

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
)

// Box3D is an axis-aligned 3D bounding box. The zero value is an empty box which grows to
// include each point handed to Add.
type Box3D struct {
	min, max r3.Vector
	nonEmpty bool
}

// NewBox3D returns the smallest box containing both corners. The corners may be given in any
// order.
func NewBox3D(a, b r3.Vector) Box3D {
	box := Box3D{}
	box.Add(a)
	box.Add(b)
	return box
}

// NewBox3DFromCenter returns a box centred on center with the given full side lengths.
func NewBox3DFromCenter(center r3.Vector, width, depth, height float64) Box3D {
	half := r3.Vector{X: math.Abs(width) / 2, Y: math.Abs(depth) / 2, Z: math.Abs(height) / 2}
	return NewBox3D(center.Sub(half), center.Add(half))
}

// IsEmpty returns true if no point has been added to the box.
func (b Box3D) IsEmpty() bool {
	return !b.nonEmpty
}

// Min returns the minimum corner.
func (b Box3D) Min() r3.Vector {
	return b.min
}

// Max returns the maximum corner.
func (b Box3D) Max() r3.Vector {
	return b.max
}

// Center returns the centre of the box.
func (b Box3D) Center() r3.Vector {
	return b.min.Add(b.max).Mul(0.5)
}

// Dims returns the side lengths of the box.
func (b Box3D) Dims() r3.Vector {
	if b.IsEmpty() {
		return r3.Vector{}
	}
	return b.max.Sub(b.min)
}

// Add expands the box so it includes p.
func (b *Box3D) Add(p r3.Vector) {
	if !b.nonEmpty {
		b.min, b.max, b.nonEmpty = p, p, true
		return
	}
	b.min = r3.Vector{X: math.Min(b.min.X, p.X), Y: math.Min(b.min.Y, p.Y), Z: math.Min(b.min.Z, p.Z)}
	b.max = r3.Vector{X: math.Max(b.max.X, p.X), Y: math.Max(b.max.Y, p.Y), Z: math.Max(b.max.Z, p.Z)}
}

// Contains returns true if p lies inside or on the boundary of the box.
func (b Box3D) Contains(p r3.Vector) bool {
	return b.nonEmpty &&
		p.X >= b.min.X && p.X <= b.max.X &&
		p.Y >= b.min.Y && p.Y <= b.max.Y &&
		p.Z >= b.min.Z && p.Z <= b.max.Z
}

// Vertices returns the 8 corners of the box: the four corners of the bottom face
// counter-clockwise from the minimum corner, then the same four on the top face.
// An empty box has no vertices.
func (b Box3D) Vertices() []r3.Vector {
	if b.IsEmpty() {
		return nil
	}
	lo, hi := b.min, b.max
	return []r3.Vector{
		{X: lo.X, Y: lo.Y, Z: lo.Z},
		{X: hi.X, Y: lo.Y, Z: lo.Z},
		{X: hi.X, Y: hi.Y, Z: lo.Z},
		{X: lo.X, Y: hi.Y, Z: lo.Z},
		{X: lo.X, Y: lo.Y, Z: hi.Z},
		{X: hi.X, Y: lo.Y, Z: hi.Z},
		{X: hi.X, Y: hi.Y, Z: hi.Z},
		{X: lo.X, Y: hi.Y, Z: hi.Z},
	}
}

// Box2D is an axis-aligned 2D bounding box. Use NewEmptyBox2D to get a box that grows with Add;
// the zero value is the degenerate box at the origin.
type Box2D struct {
	r2.Rect
}

// NewEmptyBox2D returns a box containing no points.
func NewEmptyBox2D() Box2D {
	return Box2D{r2.EmptyRect()}
}

// NewBox2D returns the smallest box containing both corners.
func NewBox2D(a, b r2.Point) Box2D {
	return Box2D{r2.RectFromPoints(a, b)}
}

// Add expands the box so it includes p.
func (b *Box2D) Add(p r2.Point) {
	b.Rect = b.Rect.AddPoint(p)
}

// MinX returns the lower x bound.
func (b Box2D) MinX() float64 { return b.X.Lo }

// MaxX returns the upper x bound.
func (b Box2D) MaxX() float64 { return b.X.Hi }

// MinY returns the lower y bound.
func (b Box2D) MinY() float64 { return b.Y.Lo }

// MaxY returns the upper y bound.
func (b Box2D) MaxY() float64 { return b.Y.Hi }

// Width returns the x extent, or 0 for an empty box.
func (b Box2D) Width() float64 {
	if b.IsEmpty() {
		return 0
	}
	return b.X.Length()
}

// Height returns the y extent, or 0 for an empty box.
func (b Box2D) Height() float64 {
	if b.IsEmpty() {
		return 0
	}
	return b.Y.Length()
}
