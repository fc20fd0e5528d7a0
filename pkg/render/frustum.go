package render

import (
	"github.com/taigrr/facet/pkg/math3d"
)

// Plane is the plane Normal·p + D = 0.
type Plane struct {
	Normal math3d.Vec3
	D      float64
}

func planeFromRow(r math3d.Vec4) Plane {
	return Plane{Normal: math3d.V3(r.X, r.Y, r.Z), D: r.W}
}

// Normalize scales the plane equation so the normal has unit length.
func (p *Plane) Normalize() {
	l := p.Normal.Len()
	if l == 0 {
		return
	}
	p.Normal = p.Normal.Scale(1.0 / l)
	p.D /= l
}

// DistanceToPoint returns the signed distance from the plane to a point.
// Positive is on the side the normal points to.
func (p Plane) DistanceToPoint(point math3d.Vec3) float64 {
	return p.Normal.Dot(point) + p.D
}

// Frustum is the six planes of a view volume with normals pointing inward.
type Frustum struct {
	Planes [6]Plane
}

// Frustum plane indices.
const (
	FrustumLeft = iota
	FrustumRight
	FrustumBottom
	FrustumTop
	FrustumNear
	FrustumFar
)

// NewFrustumFromMatrix extracts frustum planes from a view-projection matrix
// using the Gribb/Hartmann method. The matrix must map depth to [0, 1] as
// PerspectiveZO does, so the near plane is row 2 alone.
func NewFrustumFromMatrix(m math3d.Mat4) Frustum {
	r0, r1, r2, r3 := m.Row(0), m.Row(1), m.Row(2), m.Row(3)
	add := func(a, b math3d.Vec4) math3d.Vec4 { return math3d.V4(a.X+b.X, a.Y+b.Y, a.Z+b.Z, a.W+b.W) }
	sub := func(a, b math3d.Vec4) math3d.Vec4 { return math3d.V4(a.X-b.X, a.Y-b.Y, a.Z-b.Z, a.W-b.W) }

	var f Frustum
	f.Planes[FrustumLeft] = planeFromRow(add(r3, r0))
	f.Planes[FrustumRight] = planeFromRow(sub(r3, r0))
	f.Planes[FrustumBottom] = planeFromRow(add(r3, r1))
	f.Planes[FrustumTop] = planeFromRow(sub(r3, r1))
	f.Planes[FrustumNear] = planeFromRow(r2)
	f.Planes[FrustumFar] = planeFromRow(sub(r3, r2))

	for i := range f.Planes {
		f.Planes[i].Normalize()
	}
	return f
}

// Bounds is an axis-aligned box in 3D, used for whole-mesh culling.
type Bounds struct {
	Min math3d.Vec3
	Max math3d.Vec3
}

// Center returns the center of the box.
func (b Bounds) Center() math3d.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the box dimensions.
func (b Bounds) Size() math3d.Vec3 {
	return b.Max.Sub(b.Min)
}

// Corners returns the eight corners of the box. Corners 0-3 lie on the
// Min.Z face, 4-7 on the Max.Z face, each face wound in the same order.
func (b Bounds) Corners() [8]math3d.Vec3 {
	return [8]math3d.Vec3{
		{X: b.Min.X, Y: b.Min.Y, Z: b.Min.Z},
		{X: b.Max.X, Y: b.Min.Y, Z: b.Min.Z},
		{X: b.Max.X, Y: b.Max.Y, Z: b.Min.Z},
		{X: b.Min.X, Y: b.Max.Y, Z: b.Min.Z},
		{X: b.Min.X, Y: b.Min.Y, Z: b.Max.Z},
		{X: b.Max.X, Y: b.Min.Y, Z: b.Max.Z},
		{X: b.Max.X, Y: b.Max.Y, Z: b.Max.Z},
		{X: b.Min.X, Y: b.Max.Y, Z: b.Max.Z},
	}
}

// TransformIsometry returns the box bounding b after iso is applied.
func (b Bounds) TransformIsometry(iso math3d.Isometry) Bounds {
	corners := b.Corners()
	first := iso.TransformPoint(corners[0])
	out := Bounds{Min: first, Max: first}
	for _, c := range corners[1:] {
		p := iso.TransformPoint(c)
		out.Min = out.Min.Min(p)
		out.Max = out.Max.Max(p)
	}
	return out
}

// IntersectBounds reports whether any part of box may be inside the frustum.
// It tests the corner furthest along each plane normal, so it can report
// true for boxes just outside a frustum corner but never false for a
// visible box.
func (f Frustum) IntersectBounds(box Bounds) bool {
	for _, plane := range f.Planes {
		p := math3d.V3(
			pick(plane.Normal.X >= 0, box.Max.X, box.Min.X),
			pick(plane.Normal.Y >= 0, box.Max.Y, box.Min.Y),
			pick(plane.Normal.Z >= 0, box.Max.Z, box.Min.Z),
		)
		if plane.DistanceToPoint(p) < 0 {
			return false
		}
	}
	return true
}

// IntersectsSphere reports whether a sphere may overlap the frustum. Like
// IntersectBounds it can accept spheres just outside a frustum corner. A
// radius of zero tests a single point.
func (f Frustum) IntersectsSphere(center math3d.Vec3, radius float64) bool {
	for _, plane := range f.Planes {
		if plane.DistanceToPoint(center) < -radius {
			return false
		}
	}
	return true
}

func pick(cond bool, a, b float64) float64 {
	if cond {
		return a
	}
	return b
}
