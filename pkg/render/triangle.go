package render

import (
	"math"

	"github.com/taigrr/facet/pkg/math3d"
)

// Triangle3D is a triangle in object, world or camera space.
type Triangle3D struct {
	V0, V1, V2 math3d.Vec3
}

// ApplyTransform returns the triangle with iso applied to every vertex.
func (t Triangle3D) ApplyTransform(iso math3d.Isometry) Triangle3D {
	return Triangle3D{
		V0: iso.TransformPoint(t.V0),
		V1: iso.TransformPoint(t.V1),
		V2: iso.TransformPoint(t.V2),
	}
}

// ApplyMatrix returns the triangle with m applied to every vertex as a point,
// including the divide by w.
func (t Triangle3D) ApplyMatrix(m math3d.Mat4) Triangle3D {
	return Triangle3D{
		V0: m.MulVec3(t.V0),
		V1: m.MulVec3(t.V1),
		V2: m.MulVec3(t.V2),
	}
}

// Triangle2D is a triangle in screen space, in pixels.
type Triangle2D struct {
	V0, V1, V2 math3d.Vec2
}

// Winding is the screen-space orientation of a triangle.
type Winding int

const (
	// WindingNone is a degenerate triangle with no area.
	WindingNone Winding = iota
	// WindingCCW is counter-clockwise with Y up (DoubledArea > 0). On a
	// Y-down screen it appears clockwise.
	WindingCCW
	// WindingCW is clockwise with Y up (DoubledArea < 0).
	WindingCW
)

func (w Winding) String() string {
	switch w {
	case WindingCCW:
		return "ccw"
	case WindingCW:
		return "cw"
	default:
		return "none"
	}
}

// DoubledArea returns twice the signed area of t:
// (v1.y-v2.y)(v0.x-v2.x) + (v2.x-v1.x)(v0.y-v2.y).
func (t Triangle2D) DoubledArea() float64 {
	return (t.V1.Y-t.V2.Y)*(t.V0.X-t.V2.X) + (t.V2.X-t.V1.X)*(t.V0.Y-t.V2.Y)
}

// Winding returns the sign of DoubledArea as a Winding.
func (t Triangle2D) Winding() Winding {
	wd := t.DoubledArea()
	switch {
	case wd > 0:
		return WindingCCW
	case wd < 0:
		return WindingCW
	default:
		return WindingNone
	}
}

// Barycentric returns the weights of p relative to t. ok is false when the
// triangle's doubled area is zero, subnormal, NaN or infinite; no division
// happens in that case.
func (t Triangle2D) Barycentric(p math3d.Vec2) (w0, w1, w2 float64, ok bool) {
	e, ok := newEdges(t)
	if !ok {
		return 0, 0, 0, false
	}
	w0, w1, w2 = e.weights(p.X, p.Y)
	return w0, w1, w2, true
}

// edges holds the per-triangle terms of the barycentric formulas so the
// per-pixel work is two multiply-adds and two divides.
type edges struct {
	a0, b0 float64 // v1.y-v2.y, v2.x-v1.x
	a1, b1 float64 // v2.y-v0.y, v0.x-v2.x
	x2, y2 float64
	wd     float64
}

func newEdges(t Triangle2D) (edges, bool) {
	e := edges{
		a0: t.V1.Y - t.V2.Y,
		b0: t.V2.X - t.V1.X,
		a1: t.V2.Y - t.V0.Y,
		b1: t.V0.X - t.V2.X,
		x2: t.V2.X,
		y2: t.V2.Y,
	}
	e.wd = e.a0*(t.V0.X-t.V2.X) + e.b0*(t.V0.Y-t.V2.Y)
	return e, isNormal(e.wd)
}

func (e edges) weights(px, py float64) (w0, w1, w2 float64) {
	dx, dy := px-e.x2, py-e.y2
	w0 = (e.a0*dx + e.b0*dy) / e.wd
	w1 = (e.a1*dx + e.b1*dy) / e.wd
	return w0, w1, 1 - w0 - w1
}

// isNormal reports whether f is a finite, non-zero, non-subnormal number.
func isNormal(f float64) bool {
	a := math.Abs(f)
	return a >= 0x1p-1022 && a <= math.MaxFloat64
}
