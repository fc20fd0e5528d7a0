// Package scene ties a camera, a set of objects and a rasterizer together
// into a render loop: Update advances motion and animations, Render draws
// one frame.
package scene

import (
	"fmt"
	"log/slog"

	"github.com/taigrr/facet/pkg/math3d"
	"github.com/taigrr/facet/pkg/models"
	"github.com/taigrr/facet/pkg/render"
)

// Object is a mesh placed in the world.
type Object struct {
	Name        string
	Mesh        *models.Mesh
	Position    math3d.Vec3
	Orientation math3d.Quat
	Material    render.Material
	Animations  []Animation
}

// NewObject creates an object at the origin with the identity orientation.
// The material color defaults to the mesh's first material, or white.
func NewObject(name string, mesh *models.Mesh) *Object {
	mat := render.Material{Color: render.ColorWhite}
	if mesh != nil {
		if m := mesh.GetMaterial(0); m != nil {
			mat.Color = m.Color
		}
	}
	return &Object{
		Name:        name,
		Mesh:        mesh,
		Orientation: math3d.QuatIdent(),
		Material:    mat,
	}
}

// Transform returns the object-to-world transform.
func (o *Object) Transform() math3d.Isometry {
	return math3d.NewIsometry(o.Position, o.Orientation)
}

// Scene owns a camera and draws its objects in insertion order.
type Scene struct {
	camera  *render.Camera
	raster  *render.Rasterizer
	objects []*Object
	motion  *Motion
}

// New creates an empty scene viewed through cam. opts configure the
// underlying rasterizer.
func New(cam *render.Camera, opts ...render.Option) *Scene {
	return &Scene{
		camera: cam,
		raster: render.NewRasterizer(cam, opts...),
		motion: NewMotion(),
	}
}

// Camera returns the scene camera.
func (s *Scene) Camera() *render.Camera { return s.camera }

// Motion returns the camera motion controller.
func (s *Scene) Motion() *Motion { return s.motion }

// Objects returns the scene objects in draw order.
func (s *Scene) Objects() []*Object { return s.objects }

// Add appends objects to the draw order.
func (s *Scene) Add(objs ...*Object) {
	s.objects = append(s.objects, objs...)
}

// Object returns the first object named name, or nil.
func (s *Scene) Object(name string) *Object {
	for _, o := range s.objects {
		if o.Name == name {
			return o
		}
	}
	return nil
}

// Render draws one frame into fb. The camera is resized to fb, depth is
// reset, and objects are drawn in insertion order with their faces in mesh
// order, so a static scene renders identically every time. fb is not
// cleared; the caller owns its background.
//
// Only structural problems are errors: a framebuffer of the wrong size or
// a mesh face referencing a missing vertex. A failed render leaves fb
// untouched.
func (s *Scene) Render(fb *render.Framebuffer) error {
	if err := s.raster.Begin(fb); err != nil {
		return fmt.Errorf("begin frame: %w", err)
	}
	for _, o := range s.objects {
		if o.Mesh == nil {
			continue
		}
		if err := s.raster.DrawMesh(o.Mesh, o.Transform(), o.Material); err != nil {
			s.raster.Abort()
			return fmt.Errorf("draw %q: %w", o.Name, err)
		}
	}
	if err := s.raster.End(); err != nil {
		return fmt.Errorf("end frame: %w", err)
	}

	st := s.raster.Stats()
	render.Logger().Debug("frame rendered",
		slog.Int("objects", len(s.objects)),
		slog.Int("triangles", st.Triangles),
		slog.Int("queued", st.Queued),
		slog.Int("depth_culled", st.DepthCulled),
		slog.Int("backface_culled", st.BackfaceCulled),
		slog.Int("offscreen", st.Offscreen),
		slog.Int("meshes_culled", st.MeshesCulled),
		slog.Int("pixels", st.PixelsWritten),
	)
	return nil
}

// Stats returns the statistics of the last rendered frame.
func (s *Scene) Stats() render.FrameStats {
	return s.raster.Stats()
}

// Input is one tick's resolved controls. Move is a direction in camera
// axes (X right, Y up, Z back) and Turn holds yaw, pitch and roll
// directions; components are normally in [-1, 1].
type Input struct {
	Move math3d.Vec3
	Turn math3d.Vec3
}

// Update advances the scene by dt seconds: the camera follows in, then
// every object's animations step in order.
func (s *Scene) Update(dt float64, in Input) {
	if dt <= 0 {
		return
	}
	s.motion.Update(s.camera, dt, in)
	for _, o := range s.objects {
		for _, a := range o.Animations {
			a.Step(o, dt)
		}
	}
}
