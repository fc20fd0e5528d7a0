// Package models holds the in-memory triangle mesh the rasterizer draws,
// plus builders for simple primitives and loaders for GLTF, OBJ and STL.
//
// Front faces are wound counter-clockwise when seen from outside the mesh.
// Every loader produces that winding; FlipWinding converts meshes authored
// the other way.
package models

import (
	"fmt"
	"math"

	"github.com/taigrr/facet/pkg/math3d"
	"github.com/taigrr/facet/pkg/render"
)

// Mesh is an indexed triangle mesh.
type Mesh struct {
	Name      string
	Vertices  []MeshVertex
	Faces     []Face
	Materials []Material

	// Local bounding box, kept current by CalculateBounds.
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// MeshVertex holds all vertex attributes.
type MeshVertex struct {
	Position math3d.Vec3
	Normal   math3d.Vec3
	UV       math3d.Vec2
}

// Face is a triangle referencing three vertices.
type Face struct {
	V        [3]int // indices into Mesh.Vertices
	Material int    // index into Mesh.Materials, -1 for none
}

// Material is a named base color read from a model file.
type Material struct {
	Name  string
	Color render.Color
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{Name: name}
}

// Validate checks that every face references existing vertices and
// materials. The error wraps render.ErrIndexOutOfRange.
func (m *Mesh) Validate() error {
	n := len(m.Vertices)
	for i, f := range m.Faces {
		for _, idx := range f.V {
			if idx < 0 || idx >= n {
				return fmt.Errorf("mesh %q: face %d references vertex %d of %d: %w",
					m.Name, i, idx, n, render.ErrIndexOutOfRange)
			}
		}
		if f.Material < -1 || f.Material >= len(m.Materials) {
			return fmt.Errorf("mesh %q: face %d references material %d of %d: %w",
				m.Name, i, f.Material, len(m.Materials), render.ErrIndexOutOfRange)
		}
	}
	return nil
}

// FlipWinding reverses the vertex order of every face, turning front faces
// into back faces and vice versa. Normals are negated to match.
func (m *Mesh) FlipWinding() {
	for i := range m.Faces {
		v := &m.Faces[i].V
		v[1], v[2] = v[2], v[1]
	}
	for i := range m.Vertices {
		m.Vertices[i].Normal = m.Vertices[i].Normal.Negate()
	}
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		m.BoundsMin, m.BoundsMax = math3d.Vec3{}, math3d.Vec3{}
		return
	}

	m.BoundsMin = m.Vertices[0].Position
	m.BoundsMax = m.Vertices[0].Position
	for _, v := range m.Vertices[1:] {
		m.BoundsMin = m.BoundsMin.Min(v.Position)
		m.BoundsMax = m.BoundsMax.Max(v.Position)
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

func (m *Mesh) faceNormal(f Face) math3d.Vec3 {
	v0 := m.Vertices[f.V[0]].Position
	v1 := m.Vertices[f.V[1]].Position
	v2 := m.Vertices[f.V[2]].Position
	return v1.Sub(v0).Cross(v2.Sub(v0))
}

// CalculateNormals assigns each face's normal to its vertices. Vertices
// shared between faces end up with the normal of the last face.
func (m *Mesh) CalculateNormals() {
	for _, f := range m.Faces {
		n := m.faceNormal(f).Normalize()
		for _, idx := range f.V {
			m.Vertices[idx].Normal = n
		}
	}
}

// CalculateSmoothNormals sets each vertex normal to the area-weighted
// average of the faces around it.
func (m *Mesh) CalculateSmoothNormals() {
	for i := range m.Vertices {
		m.Vertices[i].Normal = math3d.Zero3()
	}
	for _, f := range m.Faces {
		n := m.faceNormal(f)
		for _, idx := range f.V {
			m.Vertices[idx].Normal = m.Vertices[idx].Normal.Add(n)
		}
	}
	for i := range m.Vertices {
		m.Vertices[i].Normal = m.Vertices[i].Normal.Normalize()
	}
}

// hasNormals reports whether any vertex carries a usable normal.
func (m *Mesh) hasNormals() bool {
	for _, v := range m.Vertices {
		if v.Normal.Len() > 1e-3 {
			return true
		}
	}
	return false
}

// Transform applies mat to every vertex and recomputes the bounds.
// Normals go through the inverse transpose so non-uniform scales keep them
// perpendicular to the surface.
func (m *Mesh) Transform(mat math3d.Mat4) {
	normalMat := mat.Inverse().Transpose()
	for i := range m.Vertices {
		v := &m.Vertices[i]
		v.Position = mat.MulVec3(v.Position)
		v.Normal = normalMat.MulVec3Dir(v.Normal).Normalize()
	}
	m.CalculateBounds()
}

// Normalize centers the mesh on the origin and scales it uniformly so its
// largest dimension equals size. Empty and flat-to-a-point meshes are only
// centered.
func (m *Mesh) Normalize(size float64) {
	m.CalculateBounds()
	mat := math3d.Translate(m.Center().Negate())

	d := m.Size()
	if longest := math.Max(d.X, math.Max(d.Y, d.Z)); longest > 0 {
		s := size / longest
		mat = math3d.Scale(math3d.V3(s, s, s)).Mul(mat)
	}
	m.Transform(mat)
}

// Clone creates a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	clone := *m
	clone.Vertices = append([]MeshVertex(nil), m.Vertices...)
	clone.Faces = append([]Face(nil), m.Faces...)
	clone.Materials = append([]Material(nil), m.Materials...)
	return &clone
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Faces)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// GetVertex returns the position, normal, and UV for vertex i.
func (m *Mesh) GetVertex(i int) (pos, normal math3d.Vec3, uv math3d.Vec2) {
	v := m.Vertices[i]
	return v.Position, v.Normal, v.UV
}

// GetFace returns the vertex indices for face i.
func (m *Mesh) GetFace(i int) [3]int {
	return m.Faces[i].V
}

// GetBounds returns the axis-aligned bounding box.
func (m *Mesh) GetBounds() (min, max math3d.Vec3) {
	return m.BoundsMin, m.BoundsMax
}

// GetFaceMaterial returns the material index for face i, -1 if none.
func (m *Mesh) GetFaceMaterial(i int) int {
	return m.Faces[i].Material
}

// GetMaterial returns the material at index i, or nil if there is none.
func (m *Mesh) GetMaterial(i int) *Material {
	if i < 0 || i >= len(m.Materials) {
		return nil
	}
	return &m.Materials[i]
}

// MaterialCount returns the number of materials.
func (m *Mesh) MaterialCount() int {
	return len(m.Materials)
}

var (
	_ render.MeshSource        = (*Mesh)(nil)
	_ render.BoundedMeshSource = (*Mesh)(nil)
)
