package models

import "github.com/taigrr/facet/pkg/math3d"

// quad appends a square face centered at c spanning ±u and ±v. The face
// normal is u × v, and both triangles wind counter-clockwise around it.
func (m *Mesh) quad(c, u, v math3d.Vec3) {
	n := u.Cross(v).Normalize()
	base := len(m.Vertices)
	corners := [4]struct {
		p  math3d.Vec3
		uv math3d.Vec2
	}{
		{c.Sub(u).Sub(v), math3d.V2(0, 0)},
		{c.Add(u).Sub(v), math3d.V2(1, 0)},
		{c.Add(u).Add(v), math3d.V2(1, 1)},
		{c.Sub(u).Add(v), math3d.V2(0, 1)},
	}
	for _, k := range corners {
		m.Vertices = append(m.Vertices, MeshVertex{Position: k.p, Normal: n, UV: k.uv})
	}
	m.Faces = append(m.Faces,
		Face{V: [3]int{base, base + 1, base + 2}, Material: -1},
		Face{V: [3]int{base, base + 2, base + 3}, Material: -1},
	)
}

// NewCube creates an axis-aligned cube with edge length size centered on
// the origin. Each side has its own four vertices so normals and UVs stay
// per-face.
func NewCube(size float64) *Mesh {
	h := size / 2
	m := NewMesh("cube")
	sides := []struct{ n, u, v math3d.Vec3 }{
		{math3d.V3(1, 0, 0), math3d.V3(0, 0, -1), math3d.V3(0, 1, 0)},
		{math3d.V3(-1, 0, 0), math3d.V3(0, 0, 1), math3d.V3(0, 1, 0)},
		{math3d.V3(0, 1, 0), math3d.V3(1, 0, 0), math3d.V3(0, 0, -1)},
		{math3d.V3(0, -1, 0), math3d.V3(1, 0, 0), math3d.V3(0, 0, 1)},
		{math3d.V3(0, 0, 1), math3d.V3(1, 0, 0), math3d.V3(0, 1, 0)},
		{math3d.V3(0, 0, -1), math3d.V3(-1, 0, 0), math3d.V3(0, 1, 0)},
	}
	for _, s := range sides {
		m.quad(s.n.Scale(h), s.u.Scale(h), s.v.Scale(h))
	}
	m.CalculateBounds()
	return m
}

// NewPlane creates a size x size square in the XZ plane facing +Y.
func NewPlane(size float64) *Mesh {
	h := size / 2
	m := NewMesh("plane")
	m.quad(math3d.Zero3(), math3d.V3(h, 0, 0), math3d.V3(0, 0, -h))
	m.CalculateBounds()
	return m
}

// NewTriangle creates a single-face mesh. Its front side is the one from
// which a, b, c appear counter-clockwise.
func NewTriangle(a, b, c math3d.Vec3) *Mesh {
	m := NewMesh("triangle")
	m.Vertices = []MeshVertex{
		{Position: a, UV: math3d.V2(0, 0)},
		{Position: b, UV: math3d.V2(1, 0)},
		{Position: c, UV: math3d.V2(0, 1)},
	}
	m.Faces = []Face{{V: [3]int{0, 1, 2}, Material: -1}}
	m.CalculateNormals()
	m.CalculateBounds()
	return m
}
