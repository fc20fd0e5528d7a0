package models

import (
	"fmt"
	"path/filepath"

	"github.com/hschendel/stl"
)

// LoadSTL loads an ASCII or binary STL file. STL stores every triangle
// with its own copy of each corner, so identical positions are merged into
// shared vertices and the stored facet normals are replaced by smooth ones.
func LoadSTL(path string) (*Mesh, error) {
	solid, err := stl.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read stl: %w", err)
	}

	mesh := NewMesh(filepath.Base(path))
	if solid.Name != "" {
		mesh.Name = solid.Name
	}

	index := make(map[stl.Vec3]int)
	for _, t := range solid.Triangles {
		var f Face
		f.Material = -1
		for i, p := range t.Vertices {
			idx, ok := index[p]
			if !ok {
				idx = len(mesh.Vertices)
				mesh.Vertices = append(mesh.Vertices, MeshVertex{Position: vec3f(p)})
				index[p] = idx
			}
			f.V[i] = idx
		}
		if f.V[0] == f.V[1] || f.V[1] == f.V[2] || f.V[0] == f.V[2] {
			continue
		}
		mesh.Faces = append(mesh.Faces, f)
	}

	mesh.CalculateSmoothNormals()
	mesh.CalculateBounds()
	if err := mesh.Validate(); err != nil {
		return nil, err
	}
	return mesh, nil
}
