package render

import (
	"fmt"
	"math"

	"github.com/taigrr/facet/pkg/math3d"
)

// Camera holds the view position and orientation plus the projection
// parameters. The projection matrix and screen box are derived whenever the
// screen size, field of view or clip planes change, so they are never stale.
//
// The projection is right-handed and looks down -Z. Depth runs from 0 at the
// near plane to 1 at the far plane.
type Camera struct {
	// Position and Orientation are the camera's pose in world space. They
	// may be mutated freely between frames.
	Position    math3d.Vec3
	Orientation math3d.Quat

	fov       float64 // vertical, radians
	near, far float64

	width, height int
	aspect        float64
	proj          math3d.Mat4
	screen        AABB
}

// NewCamera creates a camera at the origin looking down -Z with a 60 degree
// vertical field of view.
func NewCamera(width, height int) *Camera {
	c := &Camera{
		Orientation: math3d.QuatIdent(),
		fov:         math.Pi / 3,
		near:        0.1,
		far:         1000,
	}
	c.SetScreenDimensions(width, height)
	return c
}

// SetScreenDimensions sets the output resolution and recomputes the aspect
// ratio, projection matrix and screen box.
func (c *Camera) SetScreenDimensions(width, height int) {
	c.width, c.height = width, height
	c.aspect = 1
	if width > 0 && height > 0 {
		c.aspect = float64(width) / float64(height)
	}
	c.screen = AABB{MinX: 0, MaxX: float64(width), MinY: 0, MaxY: float64(height)}
	c.updateProjection()
}

// SetFOV sets the vertical field of view in radians.
func (c *Camera) SetFOV(fov float64) {
	c.fov = fov
	c.updateProjection()
}

// SetClipPlanes sets the near and far planes. It requires 0 < near < far.
func (c *Camera) SetClipPlanes(near, far float64) error {
	if !(near > 0 && near < far) || math.IsInf(far, 0) {
		return fmt.Errorf("near %v, far %v: %w", near, far, ErrInvalidClipPlanes)
	}
	c.near, c.far = near, far
	c.updateProjection()
	return nil
}

func (c *Camera) updateProjection() {
	c.proj = math3d.PerspectiveZO(c.fov, c.aspect, c.near, c.far)
}

func (c *Camera) Width() int           { return c.width }
func (c *Camera) Height() int          { return c.height }
func (c *Camera) AspectRatio() float64 { return c.aspect }
func (c *Camera) FOV() float64         { return c.fov }
func (c *Camera) Near() float64        { return c.near }
func (c *Camera) Far() float64         { return c.far }

// ScreenAABB returns [0,width] x [0,height].
func (c *Camera) ScreenAABB() AABB {
	return c.screen
}

// ProjectionMatrix returns the camera-space to clip-space matrix.
func (c *Camera) ProjectionMatrix() math3d.Mat4 {
	return c.proj
}

// WorldTransform maps camera-local points into world space.
func (c *Camera) WorldTransform() math3d.Isometry {
	return math3d.NewIsometry(c.Position, c.Orientation)
}

// ViewTransform maps world points into camera-local space. It is the inverse
// of WorldTransform.
func (c *Camera) ViewTransform() math3d.Isometry {
	return c.WorldTransform().Inversed()
}

// ViewProjectionMatrix returns the world-space to clip-space matrix.
func (c *Camera) ViewProjectionMatrix() math3d.Mat4 {
	return c.proj.Mul(c.ViewTransform().Mat4())
}

// Project projects a camera-space triangle to pixel coordinates. The depths
// are the normalized device depths of each vertex: inside (0, 1) for points
// between the near and far planes, and NaN for a vertex with clip w == 0.
func (c *Camera) Project(t Triangle3D) (Triangle2D, [3]float64) {
	var (
		out   Triangle2D
		depth [3]float64
	)
	out.V0, depth[0], _ = c.projectPoint(t.V0)
	out.V1, depth[1], _ = c.projectPoint(t.V1)
	out.V2, depth[2], _ = c.projectPoint(t.V2)
	return out, depth
}

// projectPoint returns the pixel position, depth and 1/w of a camera-space
// point.
func (c *Camera) projectPoint(p math3d.Vec3) (screen math3d.Vec2, depth, invW float64) {
	clip := c.proj.MulVec4(math3d.Point(p))
	ndc, ok := clip.PerspectiveDivide()
	if !ok {
		return ndc.XY(), math.NaN(), 0
	}
	return c.ClipToScreen(ndc.XY()), ndc.Z, 1 / clip.W
}

// ClipToScreen maps normalized x/y in [-1, 1] to pixels.
func (c *Camera) ClipToScreen(v math3d.Vec2) math3d.Vec2 {
	return math3d.V2(
		float64(c.width)/2*(v.X+1),
		float64(c.height)/2*(v.Y+1),
	)
}

// ScreenToClip is the inverse of ClipToScreen.
func (c *Camera) ScreenToClip(v math3d.Vec2) math3d.Vec2 {
	return math3d.V2(
		2*v.X/float64(c.width)-1,
		2*v.Y/float64(c.height)-1,
	)
}

// Unproject returns the camera-space point that projects to the given pixel
// position and depth.
func (c *Camera) Unproject(screen math3d.Vec2, depth float64) math3d.Vec3 {
	ndc := c.ScreenToClip(screen)
	p, _ := c.proj.Inverse().MulVec4(math3d.V4(ndc.X, ndc.Y, depth, 1)).PerspectiveDivide()
	return p
}

// Frustum returns the world-space view frustum.
func (c *Camera) Frustum() Frustum {
	return NewFrustumFromMatrix(c.ViewProjectionMatrix())
}

// Forward returns the direction the camera is looking.
func (c *Camera) Forward() math3d.Vec3 {
	return c.Orientation.Rotate(math3d.Forward())
}

// Right returns the camera's right direction.
func (c *Camera) Right() math3d.Vec3 {
	return c.Orientation.Rotate(math3d.Right())
}

// Up returns the camera's up direction.
func (c *Camera) Up() math3d.Vec3 {
	return c.Orientation.Rotate(math3d.Up())
}

// MoveLocal moves the camera by delta expressed in its own axes
// (X right, Y up, Z back).
func (c *Camera) MoveLocal(delta math3d.Vec3) {
	c.Position = c.Position.Add(c.Orientation.Rotate(delta))
}

// Turn rotates the camera by the given angles in radians. Yaw turns around
// world up so the horizon stays level; pitch and roll turn around the
// camera's own axes.
func (c *Camera) Turn(yaw, pitch, roll float64) {
	local := math3d.QuatEuler(0, pitch, roll)
	c.Orientation = math3d.QuatAxisAngle(math3d.Up(), yaw).Mul(c.Orientation).Mul(local)
}

// LookAt points the camera at target with world up as up. It does nothing
// when target is the camera position.
func (c *Camera) LookAt(target math3d.Vec3) {
	dir := target.Sub(c.Position).Normalize()
	if dir == (math3d.Vec3{}) {
		return
	}
	pitch := math.Asin(max(-1, min(1, dir.Y)))
	yaw := math.Atan2(-dir.X, -dir.Z)
	c.Orientation = math3d.QuatEuler(yaw, pitch, 0)
}
