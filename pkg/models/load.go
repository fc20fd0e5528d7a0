package models

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/taigrr/facet/pkg/render"
)

var errIndex = render.ErrIndexOutOfRange

var defaultMaterialColor = render.ColorWhite

// Load reads a model file, picking the loader by extension: .gltf and .glb,
// .obj, or .stl. Other extensions fail with render.ErrUnsupportedFormat.
func Load(path string) (*Mesh, error) {
	var (
		mesh *Mesh
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".gltf", ".glb":
		mesh, err = LoadGLTF(path)
	case ".obj":
		mesh, err = LoadOBJ(path)
	case ".stl":
		mesh, err = LoadSTL(path)
	default:
		return nil, fmt.Errorf("model %q: %w", ext, render.ErrUnsupportedFormat)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	render.Logger().Debug("model loaded",
		"path", path,
		"vertices", mesh.VertexCount(),
		"triangles", mesh.TriangleCount(),
		"materials", mesh.MaterialCount())
	return mesh, nil
}
