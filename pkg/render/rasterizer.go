// Package render projects triangles through a camera and fills them into a
// packed-RGB framebuffer with a depth buffer.
//
// A frame is Begin, any number of DrawMesh/DrawTriangle/FillTriangle calls,
// then End. Draw calls project and cull triangles and queue the survivors;
// End fills them in submission order, so for the same inputs the output is
// bit-identical whether filling runs on one goroutine or many.
package render

import (
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/taigrr/facet/pkg/math3d"
)

// MeshSource is the view of a mesh the rasterizer needs. It is declared here
// so render does not depend on the models package.
type MeshSource interface {
	VertexCount() int
	TriangleCount() int
	GetVertex(i int) (pos, normal math3d.Vec3, uv math3d.Vec2)
	GetFace(i int) [3]int
}

// BoundedMeshSource is a MeshSource that knows its local bounds, which lets
// the rasterizer skip meshes entirely outside the view frustum.
type BoundedMeshSource interface {
	MeshSource
	GetBounds() (min, max math3d.Vec3)
}

// FrameStats counts what happened to the geometry of one frame.
type FrameStats struct {
	Triangles        int // submitted
	DepthCulled      int // a vertex outside the (0, 1) depth range
	BackfaceCulled   int
	Offscreen        int // bounding box misses the screen
	Queued           int
	DegeneratePixels int // candidate pixels of zero-area triangles
	PixelsWritten    int
	MeshesTested     int
	MeshesCulled     int
}

func (s *FrameStats) addFill(o FrameStats) {
	s.DegeneratePixels += o.DegeneratePixels
	s.PixelsWritten += o.PixelsWritten
}

// primitive is a projected triangle waiting to be filled.
type primitive struct {
	screen Triangle2D
	depth  [3]float64
	invW   [3]float64
	uv     [3]math3d.Vec2
	box    AABB // screen bounds clipped to the screen
	mat    Material
}

// Rasterizer fills triangles into a framebuffer with depth testing. The
// depth buffer is owned by the rasterizer and reused across frames.
//
// A Rasterizer is not safe for concurrent use; the camera must not change
// between Begin and End.
type Rasterizer struct {
	camera  *Camera
	fb      *Framebuffer
	depth   []float64
	queue   []primitive
	outline [][8]math3d.Vec3 // camera-space bounds of drawn meshes
	frustum Frustum
	stats   FrameStats
	inFrame bool

	workers       int
	cull          CullMode
	wireframe     bool
	wireColor     Color
	wireThreshold float64
	showBounds    bool
	boundsColor   Color
}

// NewRasterizer creates a rasterizer drawing through camera.
func NewRasterizer(camera *Camera, opts ...Option) *Rasterizer {
	r := &Rasterizer{
		camera:        camera,
		workers:       1,
		wireThreshold: 0.01,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Camera returns the camera the rasterizer draws through.
func (r *Rasterizer) Camera() *Camera {
	return r.camera
}

// Begin starts a frame drawing into fb. It sizes the camera to fb and
// resets the depth buffer and statistics. fb must hold exactly
// Width*Height pixels.
func (r *Rasterizer) Begin(fb *Framebuffer) error {
	if fb == nil {
		return fmt.Errorf("nil framebuffer: %w", ErrBufferSize)
	}
	if fb.Width < 0 || fb.Height < 0 || len(fb.Pixels) != fb.Width*fb.Height {
		return fmt.Errorf("%d pixels for %dx%d: %w", len(fb.Pixels), fb.Width, fb.Height, ErrBufferSize)
	}

	r.fb = fb
	r.camera.SetScreenDimensions(fb.Width, fb.Height)

	n := fb.Width * fb.Height
	if cap(r.depth) >= n {
		r.depth = r.depth[:n]
	} else {
		r.depth = make([]float64, n)
	}
	fill(r.depth, math.Inf(1))

	r.queue = r.queue[:0]
	r.outline = r.outline[:0]
	r.stats = FrameStats{}
	r.frustum = r.camera.Frustum()
	r.inFrame = true
	return nil
}

// DrawMesh queues every face of mesh, placed in the world by world. Faces
// referencing missing vertices fail with ErrIndexOutOfRange before anything
// is queued.
func (r *Rasterizer) DrawMesh(mesh MeshSource, world math3d.Isometry, mat Material) error {
	if !r.inFrame {
		return ErrNoFrame
	}

	n := mesh.VertexCount()
	for i := range mesh.TriangleCount() {
		for _, idx := range mesh.GetFace(i) {
			if idx < 0 || idx >= n {
				return fmt.Errorf("face %d references vertex %d of %d: %w", i, idx, n, ErrIndexOutOfRange)
			}
		}
	}

	modelView := r.camera.ViewTransform().Mul(world)
	if r.frustumCull(mesh, world, modelView) {
		return nil
	}

	for i := range mesh.TriangleCount() {
		f := mesh.GetFace(i)
		p0, _, uv0 := mesh.GetVertex(f[0])
		p1, _, uv1 := mesh.GetVertex(f[1])
		p2, _, uv2 := mesh.GetVertex(f[2])

		tri := Triangle3D{V0: p0, V1: p1, V2: p2}.ApplyTransform(modelView)
		r.submit(tri, [3]math3d.Vec2{uv0, uv1, uv2}, mat)
	}
	return nil
}

// frustumCull reports whether a bounded mesh lies entirely outside the
// view frustum. Meshes without bounds are never culled.
func (r *Rasterizer) frustumCull(mesh MeshSource, world, modelView math3d.Isometry) bool {
	bounded, ok := mesh.(BoundedMeshSource)
	if !ok {
		return false
	}
	r.stats.MeshesTested++

	lo, hi := bounded.GetBounds()
	local := Bounds{Min: lo, Max: hi}
	// The bounding sphere survives the isometry unchanged, so it rejects
	// most off-screen meshes before the box is transformed.
	center := world.TransformPoint(local.Center())
	if !r.frustum.IntersectsSphere(center, local.Size().Len()/2) ||
		!r.frustum.IntersectBounds(local.TransformIsometry(world)) {
		r.stats.MeshesCulled++
		return true
	}

	if r.showBounds {
		var corners [8]math3d.Vec3
		for i, c := range local.Corners() {
			corners[i] = modelView.TransformPoint(c)
		}
		r.outline = append(r.outline, corners)
	}
	return false
}

// DrawTriangle queues a camera-space triangle.
func (r *Rasterizer) DrawTriangle(t Triangle3D, mat Material) error {
	if !r.inFrame {
		return ErrNoFrame
	}
	r.submit(t, [3]math3d.Vec2{}, mat)
	return nil
}

func (r *Rasterizer) submit(t Triangle3D, uv [3]math3d.Vec2, mat Material) {
	p := primitive{uv: uv, mat: mat}
	p.screen.V0, p.depth[0], p.invW[0] = r.camera.projectPoint(t.V0)
	p.screen.V1, p.depth[1], p.invW[1] = r.camera.projectPoint(t.V1)
	p.screen.V2, p.depth[2], p.invW[2] = r.camera.projectPoint(t.V2)
	r.enqueue(p)
}

// FillTriangle queues a triangle already in pixel coordinates with the
// given per-vertex depths.
func (r *Rasterizer) FillTriangle(screen Triangle2D, depth [3]float64, mat Material) error {
	if !r.inFrame {
		return ErrNoFrame
	}
	r.enqueue(primitive{
		screen: screen,
		depth:  depth,
		invW:   [3]float64{1, 1, 1},
		mat:    mat,
	})
	return nil
}

// enqueue applies the whole-triangle rejections: any vertex outside the
// depth range, winding culling, then an empty screen box.
func (r *Rasterizer) enqueue(p primitive) {
	r.stats.Triangles++

	for _, z := range p.depth {
		if !(z > 0 && z < 1) {
			r.stats.DepthCulled++
			return
		}
	}

	if r.cull != CullNone {
		// Front faces are counter-clockwise in world space, which the
		// Y-down screen mapping turns into a negative doubled area.
		wd := p.screen.DoubledArea()
		if (r.cull == CullBack && wd > 0) || (r.cull == CullFront && wd < 0) {
			r.stats.BackfaceCulled++
			return
		}
	}

	p.box = AABBFromTriangle(p.screen).Intersect(r.camera.ScreenAABB())
	if p.box.Empty() {
		r.stats.Offscreen++
		return
	}

	r.stats.Queued++
	r.queue = append(r.queue, p)
}

// bandsPerWorker splits the screen finer than the worker count so uneven
// bands balance out.
const bandsPerWorker = 4

// End fills every queued triangle and finishes the frame.
func (r *Rasterizer) End() error {
	if !r.inFrame {
		return ErrNoFrame
	}
	r.inFrame = false

	if err := r.fillQueue(); err != nil {
		return err
	}
	if r.showBounds {
		r.drawOutlines()
	}
	return nil
}

// Abort discards everything queued since Begin and closes the frame without
// touching the framebuffer.
func (r *Rasterizer) Abort() {
	r.queue = r.queue[:0]
	r.outline = r.outline[:0]
	r.inFrame = false
}

func (r *Rasterizer) fillQueue() error {
	h := r.fb.Height
	bands := 1
	if r.workers > 1 {
		bands = min(r.workers*bandsPerWorker, h)
	}
	if bands <= 1 {
		r.stats.addFill(r.fillBand(0, h))
		return nil
	}

	rows := (h + bands - 1) / bands
	results := make([]FrameStats, bands)

	var g errgroup.Group
	g.SetLimit(r.workers)
	for b := range bands {
		y0 := b * rows
		y1 := min(y0+rows, h)
		if y0 >= y1 {
			break
		}
		g.Go(func() error {
			results[b] = r.fillBand(y0, y1)
			return nil
		})
	}
	err := g.Wait()

	for _, s := range results {
		r.stats.addFill(s)
	}
	return err
}

// bandAABB returns a box whose pixels are exactly the rows [y0, y1) of any
// box it is intersected with.
func bandAABB(y0, y1 int) AABB {
	return AABB{
		MinX: math.Inf(-1),
		MaxX: math.Inf(1),
		MinY: float64(y0),
		MaxY: math.Nextafter(float64(y1), math.Inf(-1)),
	}
}

// fillBand fills the queue into rows [y0, y1). Bands never share pixels, so
// concurrent calls on disjoint bands need no locking.
func (r *Rasterizer) fillBand(y0, y1 int) FrameStats {
	var s FrameStats
	width, height := r.fb.Width, r.fb.Height
	band := bandAABB(y0, y1)

	for i := range r.queue {
		p := &r.queue[i]
		box := p.box.Intersect(band)
		if box.Empty() {
			continue
		}

		e, ok := newEdges(p.screen)
		if !ok {
			s.DegeneratePixels += box.PixelCount()
			continue
		}

		for x, y := range box.Pixels() {
			// The screen box is [0,width] x [0,height]; pixels on its far
			// edges are outside the buffer.
			if x >= width || y >= height {
				continue
			}

			w0, w1, w2 := e.weights(float64(x), float64(y))
			if !(w0 > 0 && w1 > 0 && w2 > 0) {
				continue
			}

			pz := w0*p.depth[0] + w1*p.depth[1] + w2*p.depth[2]
			idx := y*width + x
			if !(pz > 0 && pz < 1) || !(pz < r.depth[idx]) {
				continue
			}

			r.depth[idx] = pz
			r.fb.Pixels[idx] = Pack(r.shade(p, w0, w1, w2, pz))
			s.PixelsWritten++
		}
	}
	return s
}

func (r *Rasterizer) shade(p *primitive, w0, w1, w2, pz float64) Color {
	if r.wireframe && min(w0, w1, w2) < r.wireThreshold {
		return r.wireColor
	}

	switch p.mat.Shade {
	case ShadeBarycentric:
		return RGB(unitToByte(w0), unitToByte(w1), unitToByte(w2))
	case ShadeUV:
		// Interpolate uv/w and 1/w linearly in screen space, then divide.
		q0, q1, q2 := w0*p.invW[0], w1*p.invW[1], w2*p.invW[2]
		iw := q0 + q1 + q2
		u := (q0*p.uv[0].X + q1*p.uv[1].X + q2*p.uv[2].X) / iw
		v := (q0*p.uv[0].Y + q1*p.uv[1].Y + q2*p.uv[2].Y) / iw
		return RGB(unitToByte(u), unitToByte(v), 0)
	case ShadeDepth:
		g := unitToByte(1 - pz)
		return RGB(g, g, g)
	default:
		return p.mat.Color
	}
}

// Stats returns the statistics of the current or most recent frame.
func (r *Rasterizer) Stats() FrameStats {
	return r.stats
}

// Depth returns the depth buffer value at (x, y): +Inf where nothing was
// drawn or when out of bounds.
func (r *Rasterizer) Depth(x, y int) float64 {
	if r.fb == nil || x < 0 || x >= r.fb.Width || y < 0 || y >= r.fb.Height {
		return math.Inf(1)
	}
	return r.depth[y*r.fb.Width+x]
}
