package models

import (
	"errors"
	"math"
	"testing"

	"github.com/taigrr/facet/pkg/math3d"
	"github.com/taigrr/facet/pkg/render"
)

const eps = 1e-9

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		face [3]int
		ok   bool
	}{
		{"in range", [3]int{0, 1, 2}, true},
		{"repeated", [3]int{0, 0, 0}, true},
		{"past end", [3]int{0, 1, 3}, false},
		{"negative", [3]int{-1, 1, 2}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mesh := NewTriangle(math3d.V3(0, 0, 0), math3d.V3(1, 0, 0), math3d.V3(0, 1, 0))
			mesh.Faces[0].V = tt.face
			err := mesh.Validate()
			if tt.ok && err != nil {
				t.Errorf("Validate = %v, want nil", err)
			}
			if !tt.ok && !errors.Is(err, render.ErrIndexOutOfRange) {
				t.Errorf("Validate = %v, want ErrIndexOutOfRange", err)
			}
		})
	}
}

func TestFlipWinding(t *testing.T) {
	mesh := NewTriangle(math3d.V3(0, 0, 0), math3d.V3(1, 0, 0), math3d.V3(0, 1, 0))
	before := mesh.faceNormal(mesh.Faces[0])

	mesh.FlipWinding()

	if got := mesh.Faces[0].V; got != [3]int{0, 2, 1} {
		t.Errorf("flipped face = %v, want [0 2 1]", got)
	}
	if after := mesh.faceNormal(mesh.Faces[0]); !after.ApproxEqual(before.Negate(), eps) {
		t.Errorf("face normal after flip = %v, want %v", after, before.Negate())
	}
	if n := mesh.Vertices[0].Normal; !n.ApproxEqual(math3d.V3(0, 0, -1), eps) {
		t.Errorf("vertex normal after flip = %v, want -Z", n)
	}
}

func TestCalculateBounds(t *testing.T) {
	mesh := NewMesh("bounds")
	mesh.CalculateBounds()
	if mesh.BoundsMin != (math3d.Vec3{}) || mesh.BoundsMax != (math3d.Vec3{}) {
		t.Errorf("empty mesh bounds = %v..%v", mesh.BoundsMin, mesh.BoundsMax)
	}

	mesh.Vertices = []MeshVertex{
		{Position: math3d.V3(-1, 2, 3)},
		{Position: math3d.V3(4, -5, 0)},
		{Position: math3d.V3(0, 0, -6)},
	}
	mesh.CalculateBounds()
	if want := math3d.V3(-1, -5, -6); mesh.BoundsMin != want {
		t.Errorf("BoundsMin = %v, want %v", mesh.BoundsMin, want)
	}
	if want := math3d.V3(4, 2, 3); mesh.BoundsMax != want {
		t.Errorf("BoundsMax = %v, want %v", mesh.BoundsMax, want)
	}
	if want := math3d.V3(1.5, -1.5, -1.5); mesh.Center() != want {
		t.Errorf("Center = %v, want %v", mesh.Center(), want)
	}
	if want := math3d.V3(5, 7, 9); mesh.Size() != want {
		t.Errorf("Size = %v, want %v", mesh.Size(), want)
	}
}

func TestNormalize(t *testing.T) {
	mesh := NewCube(4)
	mesh.Transform(math3d.Translate(math3d.V3(10, 0, 0)))
	mesh.Normalize(2)

	if c := mesh.Center(); !c.ApproxEqual(math3d.Zero3(), eps) {
		t.Errorf("center = %v, want origin", c)
	}
	if s := mesh.Size(); !s.ApproxEqual(math3d.V3(2, 2, 2), eps) {
		t.Errorf("size = %v, want 2x2x2", s)
	}

	point := NewMesh("point")
	point.Vertices = []MeshVertex{{Position: math3d.V3(3, 3, 3)}}
	point.Normalize(1)
	if p := point.Vertices[0].Position; !p.ApproxEqual(math3d.Zero3(), eps) {
		t.Errorf("single point = %v, want origin", p)
	}
}

func TestTransformNormals(t *testing.T) {
	mesh := NewPlane(2)
	mesh.Transform(math3d.Scale(math3d.V3(1, 5, 1)).Mul(math3d.QuatAxisAngle(math3d.Up(), math.Pi/2).Mat4()))

	for i, v := range mesh.Vertices {
		if !v.Normal.ApproxEqual(math3d.Up(), eps) {
			t.Errorf("vertex %d normal = %v, want +Y", i, v.Normal)
		}
	}
	if s := mesh.Size(); !s.ApproxEqual(math3d.V3(2, 0, 2), eps) {
		t.Errorf("size = %v, want 2x0x2", s)
	}
}

func TestSmoothNormals(t *testing.T) {
	// Two triangles folded along the shared X axis edge.
	mesh := NewMesh("fold")
	mesh.Vertices = []MeshVertex{
		{Position: math3d.V3(0, 0, 0)},
		{Position: math3d.V3(1, 0, 0)},
		{Position: math3d.V3(0, 1, 0)},
		{Position: math3d.V3(0, 0, 1)},
	}
	mesh.Faces = []Face{
		{V: [3]int{0, 1, 2}, Material: -1}, // normal +Z
		{V: [3]int{0, 3, 1}, Material: -1}, // normal +Y
	}
	mesh.CalculateSmoothNormals()

	shared := math3d.V3(0, 1, 1).Normalize()
	for _, i := range []int{0, 1} {
		if n := mesh.Vertices[i].Normal; !n.ApproxEqual(shared, eps) {
			t.Errorf("shared vertex %d normal = %v, want %v", i, n, shared)
		}
	}
	if n := mesh.Vertices[2].Normal; !n.ApproxEqual(math3d.V3(0, 0, 1), eps) {
		t.Errorf("vertex 2 normal = %v, want +Z", n)
	}
	if n := mesh.Vertices[3].Normal; !n.ApproxEqual(math3d.V3(0, 1, 0), eps) {
		t.Errorf("vertex 3 normal = %v, want +Y", n)
	}
}

func TestMeshSource(t *testing.T) {
	mesh := NewCube(1)
	var src render.BoundedMeshSource = mesh

	if src.VertexCount() != 24 || src.TriangleCount() != 12 {
		t.Fatalf("counts = %d vertices, %d triangles", src.VertexCount(), src.TriangleCount())
	}
	pos, normal, uv := src.GetVertex(2)
	v := mesh.Vertices[2]
	if pos != v.Position || normal != v.Normal || uv != v.UV {
		t.Errorf("GetVertex(2) = %v %v %v, want %+v", pos, normal, uv, v)
	}
	if src.GetFace(3) != mesh.Faces[3].V {
		t.Errorf("GetFace(3) = %v", src.GetFace(3))
	}
	lo, hi := src.GetBounds()
	if lo != math3d.V3(-0.5, -0.5, -0.5) || hi != math3d.V3(0.5, 0.5, 0.5) {
		t.Errorf("bounds = %v..%v", lo, hi)
	}
}
