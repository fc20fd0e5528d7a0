package render

import (
	"fmt"
	"strings"
)

// ShadeMode selects how a triangle's pixels are colored.
type ShadeMode int

const (
	// ShadeFlat fills with the material color.
	ShadeFlat ShadeMode = iota
	// ShadeBarycentric maps the weights (w0, w1, w2) to (R, G, B).
	ShadeBarycentric
	// ShadeUV maps perspective-correct texture coordinates to (R, G).
	ShadeUV
	// ShadeDepth draws depth as grayscale, white at the near plane.
	ShadeDepth
)

var shadeNames = [...]string{"flat", "barycentric", "uv", "depth"}

func (m ShadeMode) String() string {
	if m >= 0 && int(m) < len(shadeNames) {
		return shadeNames[m]
	}
	return fmt.Sprintf("ShadeMode(%d)", int(m))
}

// ParseShadeMode parses a name as printed by ShadeMode.String.
func ParseShadeMode(s string) (ShadeMode, error) {
	for i, name := range shadeNames {
		if strings.EqualFold(s, name) {
			return ShadeMode(i), nil
		}
	}
	return 0, fmt.Errorf("unknown shade mode %q", s)
}

// CullMode selects which triangles are discarded by screen-space winding.
// Front faces are counter-clockwise when viewed from outside the mesh, the
// glTF, OBJ and STL convention.
type CullMode int

const (
	// CullNone draws triangles of either winding.
	CullNone CullMode = iota
	// CullBack discards triangles facing away from the camera.
	CullBack
	// CullFront discards triangles facing the camera.
	CullFront
)

var cullNames = [...]string{"none", "back", "front"}

func (m CullMode) String() string {
	if m >= 0 && int(m) < len(cullNames) {
		return cullNames[m]
	}
	return fmt.Sprintf("CullMode(%d)", int(m))
}

// ParseCullMode parses a name as printed by CullMode.String.
func ParseCullMode(s string) (CullMode, error) {
	for i, name := range cullNames {
		if strings.EqualFold(s, name) {
			return CullMode(i), nil
		}
	}
	return 0, fmt.Errorf("unknown cull mode %q", s)
}

// Material describes how a mesh is colored.
type Material struct {
	Color Color
	Shade ShadeMode
}

// Option configures a Rasterizer.
type Option func(*Rasterizer)

// WithWorkers sets the number of goroutines used to fill pixels. Values
// below 2 rasterize on the calling goroutine.
func WithWorkers(n int) Option {
	return func(r *Rasterizer) { r.workers = max(n, 1) }
}

// WithCullMode sets the winding cull mode. The default is CullNone.
func WithCullMode(m CullMode) Option {
	return func(r *Rasterizer) { r.cull = m }
}

// WithWireframe overlays triangle edges in the given color.
func WithWireframe(c Color) Option {
	return func(r *Rasterizer) {
		r.wireframe = true
		r.wireColor = c
	}
}

// WithWireThreshold sets how close to an edge, in barycentric weight, a
// pixel must be to be drawn as wireframe. The default is 0.01.
func WithWireThreshold(t float64) Option {
	return func(r *Rasterizer) { r.wireThreshold = t }
}

// WithBoundsOverlay outlines the bounding box of every drawn mesh.
func WithBoundsOverlay(c Color) Option {
	return func(r *Rasterizer) {
		r.showBounds = true
		r.boundsColor = c
	}
}
