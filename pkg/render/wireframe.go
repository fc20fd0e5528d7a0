package render

import (
	"math"

	"github.com/taigrr/facet/pkg/math3d"
)

// boxEdges indexes the 12 edges of the corners returned by Bounds.Corners.
var boxEdges = [12][2]int{
	// Min.Z face
	{0, 1}, {1, 2}, {2, 3}, {3, 0},
	// Max.Z face
	{4, 5}, {5, 6}, {6, 7}, {7, 4},
	// Connecting edges
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

// drawOutlines draws the bounds of every mesh drawn this frame on top of
// the filled image, without depth testing.
func (r *Rasterizer) drawOutlines() {
	for _, corners := range r.outline {
		for _, e := range boxEdges {
			r.drawLine3D(corners[e[0]], corners[e[1]], r.boundsColor)
		}
	}
}

// drawLine3D draws a camera-space segment. Segments with an endpoint outside
// the depth range are skipped rather than clipped.
func (r *Rasterizer) drawLine3D(a, b math3d.Vec3, c Color) {
	sa, za, _ := r.camera.projectPoint(a)
	sb, zb, _ := r.camera.projectPoint(b)
	if !(za > 0 && za < 1) || !(zb > 0 && zb < 1) {
		return
	}

	// Keep coordinates within int range before converting; SetPixel drops
	// anything off the buffer.
	limit := float64(4 * max(r.fb.Width, r.fb.Height, 1))
	clamp := func(v float64) int {
		return int(math.Floor(max(-limit, min(limit, v))))
	}
	r.fb.DrawLine(clamp(sa.X), clamp(sa.Y), clamp(sb.X), clamp(sb.Y), c)
}
