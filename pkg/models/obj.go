package models

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/taigrr/facet/pkg/math3d"
)

// LoadOBJ loads a Wavefront OBJ file.
func LoadOBJ(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj: %w", err)
	}
	defer f.Close()

	return ParseOBJ(f, filepath.Base(path))
}

// objKey identifies a unique position/uv/normal combination. Missing
// attributes are -1.
type objKey struct{ v, vt, vn int }

type objParser struct {
	mesh      *Mesh
	positions []math3d.Vec3
	uvs       []math3d.Vec2
	normals   []math3d.Vec3
	verts     map[objKey]int
	materials map[string]int
	material  int
}

// ParseOBJ reads OBJ geometry from r. Polygons are triangulated as fans
// around their first vertex; negative indices count back from the most
// recent element. Material libraries are not read: each usemtl name
// becomes a white Material.
func ParseOBJ(r io.Reader, name string) (*Mesh, error) {
	p := &objParser{
		mesh:      NewMesh(name),
		verts:     make(map[objKey]int),
		materials: make(map[string]int),
		material:  -1,
	}

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		if err := p.parseLine(scanner.Text()); err != nil {
			return nil, fmt.Errorf("obj line %d: %w", line, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read obj: %w", err)
	}

	mesh := p.mesh
	if !mesh.hasNormals() {
		mesh.CalculateSmoothNormals()
	}
	mesh.CalculateBounds()
	if err := mesh.Validate(); err != nil {
		return nil, err
	}
	return mesh, nil
}

func (p *objParser) parseLine(text string) error {
	if i := strings.IndexByte(text, '#'); i >= 0 {
		text = text[:i]
	}
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil
	}

	switch fields[0] {
	case "v":
		v, err := parseFloats(fields[1:], 3)
		if err != nil {
			return fmt.Errorf("vertex: %w", err)
		}
		p.positions = append(p.positions, math3d.V3(v[0], v[1], v[2]))
	case "vt":
		v, err := parseFloats(fields[1:], 2)
		if err != nil {
			return fmt.Errorf("texture coordinate: %w", err)
		}
		p.uvs = append(p.uvs, math3d.V2(v[0], v[1]))
	case "vn":
		v, err := parseFloats(fields[1:], 3)
		if err != nil {
			return fmt.Errorf("normal: %w", err)
		}
		p.normals = append(p.normals, math3d.V3(v[0], v[1], v[2]).Normalize())
	case "f":
		return p.parseFace(fields[1:])
	case "o":
		if len(fields) > 1 && p.mesh.Name == "" {
			p.mesh.Name = fields[1]
		}
	case "usemtl":
		if len(fields) < 2 {
			return fmt.Errorf("usemtl without a name")
		}
		p.useMaterial(fields[1])
	}
	// g, s, mtllib and unknown statements are ignored.
	return nil
}

func (p *objParser) useMaterial(name string) {
	idx, ok := p.materials[name]
	if !ok {
		idx = len(p.mesh.Materials)
		p.mesh.Materials = append(p.mesh.Materials, Material{Name: name, Color: defaultMaterialColor})
		p.materials[name] = idx
	}
	p.material = idx
}

func (p *objParser) parseFace(refs []string) error {
	if len(refs) < 3 {
		return fmt.Errorf("face with %d vertices", len(refs))
	}
	idx := make([]int, len(refs))
	for i, ref := range refs {
		key, err := p.parseRef(ref)
		if err != nil {
			return err
		}
		idx[i] = p.vertex(key)
	}
	for i := 1; i+1 < len(idx); i++ {
		p.mesh.Faces = append(p.mesh.Faces, Face{
			V:        [3]int{idx[0], idx[i], idx[i+1]},
			Material: p.material,
		})
	}
	return nil
}

// parseRef parses "v", "v/vt", "v//vn" or "v/vt/vn".
func (p *objParser) parseRef(ref string) (objKey, error) {
	parts := strings.Split(ref, "/")
	if len(parts) > 3 {
		return objKey{}, fmt.Errorf("bad vertex reference %q", ref)
	}

	key := objKey{v: -1, vt: -1, vn: -1}
	counts := [3]int{len(p.positions), len(p.uvs), len(p.normals)}
	dst := [3]*int{&key.v, &key.vt, &key.vn}
	for i, s := range parts {
		if s == "" {
			if i == 0 {
				return objKey{}, fmt.Errorf("bad vertex reference %q", ref)
			}
			continue
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return objKey{}, fmt.Errorf("bad vertex reference %q: %w", ref, err)
		}
		idx, err := resolveIndex(n, counts[i])
		if err != nil {
			return objKey{}, fmt.Errorf("vertex reference %q: %w", ref, err)
		}
		*dst[i] = idx
	}
	return key, nil
}

// resolveIndex converts a 1-based or negative OBJ index into a 0-based one.
func resolveIndex(n, count int) (int, error) {
	idx := n - 1
	if n < 0 {
		idx = count + n
	}
	if n == 0 || idx < 0 || idx >= count {
		return 0, fmt.Errorf("index %d of %d: %w", n, count, errIndex)
	}
	return idx, nil
}

func (p *objParser) vertex(key objKey) int {
	if idx, ok := p.verts[key]; ok {
		return idx
	}
	v := MeshVertex{Position: p.positions[key.v]}
	if key.vt >= 0 {
		v.UV = p.uvs[key.vt]
	}
	if key.vn >= 0 {
		v.Normal = p.normals[key.vn]
	}
	idx := len(p.mesh.Vertices)
	p.mesh.Vertices = append(p.mesh.Vertices, v)
	p.verts[key] = idx
	return idx
}

func parseFloats(fields []string, n int) ([]float64, error) {
	if len(fields) < n {
		return nil, fmt.Errorf("want %d values, got %d", n, len(fields))
	}
	out := make([]float64, n)
	for i := range n {
		f, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}
