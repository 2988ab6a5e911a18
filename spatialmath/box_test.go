package spatialmath

import (
	"testing"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func TestBox3DAdd(t *testing.T) {
	var box Box3D
	test.That(t, box.IsEmpty(), test.ShouldBeTrue)
	test.That(t, box.Vertices(), test.ShouldBeNil)
	test.That(t, box.Contains(r3.Vector{}), test.ShouldBeFalse)

	box.Add(r3.Vector{X: 1, Y: 2, Z: 3})
	test.That(t, box.IsEmpty(), test.ShouldBeFalse)
	test.That(t, box.Min(), test.ShouldResemble, box.Max())
	test.That(t, box.Dims(), test.ShouldResemble, r3.Vector{})

	box.Add(r3.Vector{X: -1, Y: 5, Z: 0})
	test.That(t, box.Min(), test.ShouldResemble, r3.Vector{X: -1, Y: 2, Z: 0})
	test.That(t, box.Max(), test.ShouldResemble, r3.Vector{X: 1, Y: 5, Z: 3})
	test.That(t, box.Center(), test.ShouldResemble, r3.Vector{X: 0, Y: 3.5, Z: 1.5})
	test.That(t, box.Contains(r3.Vector{X: 0, Y: 3, Z: 1}), test.ShouldBeTrue)
	test.That(t, box.Contains(r3.Vector{X: 0, Y: 3, Z: 4}), test.ShouldBeFalse)
}

func TestBox3DVertices(t *testing.T) {
	box := NewBox3D(r3.Vector{X: 1, Y: 1, Z: 1}, r3.Vector{X: -1, Y: -1, Z: -1})
	verts := box.Vertices()
	test.That(t, len(verts), test.ShouldEqual, 8)
	test.That(t, verts[0], test.ShouldResemble, r3.Vector{X: -1, Y: -1, Z: -1})
	test.That(t, verts[6], test.ShouldResemble, r3.Vector{X: 1, Y: 1, Z: 1})

	seen := map[r3.Vector]bool{}
	for _, v := range verts {
		test.That(t, box.Contains(v), test.ShouldBeTrue)
		seen[v] = true
	}
	test.That(t, len(seen), test.ShouldEqual, 8)
}

func TestBox3DFromCenter(t *testing.T) {
	box := NewBox3DFromCenter(r3.Vector{X: 10, Y: 20, Z: 30}, 2, 4, 6)
	test.That(t, box.Min(), test.ShouldResemble, r3.Vector{X: 9, Y: 18, Z: 27})
	test.That(t, box.Max(), test.ShouldResemble, r3.Vector{X: 11, Y: 22, Z: 33})
	test.That(t, box.Dims(), test.ShouldResemble, r3.Vector{X: 2, Y: 4, Z: 6})
}

func TestBox2D(t *testing.T) {
	box := NewEmptyBox2D()
	test.That(t, box.IsEmpty(), test.ShouldBeTrue)
	test.That(t, box.Width(), test.ShouldEqual, 0.)

	for _, p := range []r2.Point{{X: 3, Y: 4}, {X: -2, Y: 8}, {X: 1, Y: 1}} {
		box.Add(p)
	}
	test.That(t, box.MinX(), test.ShouldEqual, -2.)
	test.That(t, box.MaxX(), test.ShouldEqual, 3.)
	test.That(t, box.MinY(), test.ShouldEqual, 1.)
	test.That(t, box.MaxY(), test.ShouldEqual, 8.)
	test.That(t, box.Width(), test.ShouldEqual, 5.)
	test.That(t, box.Height(), test.ShouldEqual, 7.)
	test.That(t, box.ContainsPoint(r2.Point{X: 0, Y: 5}), test.ShouldBeTrue)
	test.That(t, len(box.Vertices()), test.ShouldEqual, 4)

	other := NewBox2D(r2.Point{X: 3, Y: 8}, r2.Point{X: -2, Y: 1})
	test.That(t, other.ApproxEqual(box.Rect), test.ShouldBeTrue)
}
