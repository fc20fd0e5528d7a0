package render

import (
	"iter"
	"math"

	"github.com/taigrr/facet/pkg/math3d"
)

// AABB is an axis-aligned box in screen space. A box with MinX > MaxX or
// MinY > MaxY is empty and covers no pixels.
type AABB struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

// AABBFromTriangle returns the smallest box containing t.
func AABBFromTriangle(t Triangle2D) AABB {
	return AABB{
		MinX: min(t.V0.X, t.V1.X, t.V2.X),
		MaxX: max(t.V0.X, t.V1.X, t.V2.X),
		MinY: min(t.V0.Y, t.V1.Y, t.V2.Y),
		MaxY: max(t.V0.Y, t.V1.Y, t.V2.Y),
	}
}

// Intersect returns the overlap of a and b, which may be empty.
func (a AABB) Intersect(b AABB) AABB {
	return AABB{
		MinX: math.Max(a.MinX, b.MinX),
		MaxX: math.Min(a.MaxX, b.MaxX),
		MinY: math.Max(a.MinY, b.MinY),
		MaxY: math.Min(a.MaxY, b.MaxY),
	}
}

// Empty reports whether the box covers nothing. NaN bounds count as empty.
func (a AABB) Empty() bool {
	return !(a.MinX <= a.MaxX && a.MinY <= a.MaxY)
}

// Pixels yields every integer (x, y) with floor(MinX) <= x <= floor(MaxX) and
// floor(MinY) <= y <= floor(MaxY), row by row. Empty or unbounded boxes yield
// nothing.
func (a AABB) Pixels() iter.Seq2[int, int] {
	return func(yield func(int, int) bool) {
		x0, x1, y0, y1, ok := a.pixelRange()
		if !ok {
			return
		}
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				if !yield(x, y) {
					return
				}
			}
		}
	}
}

// PixelCount returns the number of points Pixels yields.
func (a AABB) PixelCount() int {
	x0, x1, y0, y1, ok := a.pixelRange()
	if !ok {
		return 0
	}
	return (x1 - x0 + 1) * (y1 - y0 + 1)
}

func (a AABB) pixelRange() (x0, x1, y0, y1 int, ok bool) {
	if a.Empty() {
		return 0, 0, 0, 0, false
	}
	lo := math3d.V2(a.MinX, a.MinY).Floor()
	hi := math3d.V2(a.MaxX, a.MaxY).Floor()
	if !lo.IsFinite() || !hi.IsFinite() {
		return 0, 0, 0, 0, false
	}
	return int(lo.X), int(hi.X), int(lo.Y), int(hi.Y), true
}

// ContainsPoint reports whether p lies strictly inside the box. Points on
// the boundary are outside.
func (a AABB) ContainsPoint(p math3d.Vec2) bool {
	return p.X > a.MinX && p.X < a.MaxX && p.Y > a.MinY && p.Y < a.MaxY
}

// Area returns the box's area, or 0 when it is empty.
func (a AABB) Area() float64 {
	if a.Empty() {
		return 0
	}
	return (a.MaxX - a.MinX) * (a.MaxY - a.MinY)
}
