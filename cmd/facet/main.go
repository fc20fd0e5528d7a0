// facet - software-rasterized 3D viewer for the terminal
//
// Renders a model file (.obj, .stl, .gltf, .glb) or a built-in cube with a
// CPU rasterizer and shows it with half-block characters, or writes a
// single frame to an image file with --out.
//
// Controls:
//
//	W/S         - Move forward/back
//	A/D         - Strafe left/right
//	R/F         - Move up/down
//	Arrows      - Turn (yaw/pitch)
//	Q/E         - Roll left/right
//	Space       - Stop
//	P           - Save a screenshot
//	Esc         - Quit
package main

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
	"github.com/taigrr/facet/pkg/math3d"
	"github.com/taigrr/facet/pkg/models"
	"github.com/taigrr/facet/pkg/render"
	"github.com/taigrr/facet/pkg/scene"
)

type options struct {
	fps       int
	bg        string
	workers   int
	shade     string
	cull      string
	wireframe bool
	bounds    bool
	flip      bool
	spin      float64
	floor     bool
	out       string
	size      string
	scale     int
	logLevel  string
}

func newRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "facet [model.obj|model.stl|model.glb]",
		Short: "Software-rasterized 3D viewer for the terminal",
		Long: `facet draws a model with a CPU rasterizer. Without a model it shows a cube.

Controls:
  W/S/A/D     Move
  R/F         Move up/down
  Arrows      Turn
  Q/E         Roll
  Space       Stop
  P           Save screenshot
  Esc         Quit`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) > 0 {
				path = args[0]
			}
			return run(cmd.Context(), opts, path)
		},
	}

	f := cmd.Flags()
	f.IntVar(&opts.fps, "fps", 30, "target FPS")
	f.StringVar(&opts.bg, "bg", "30,30,40", "background color (R,G,B)")
	f.IntVar(&opts.workers, "workers", runtime.GOMAXPROCS(0), "rasterizer worker goroutines")
	f.StringVar(&opts.shade, "shade", "flat", "shading: flat, barycentric, uv or depth")
	f.StringVar(&opts.cull, "cull", "none", "face culling: none, back or front")
	f.BoolVar(&opts.wireframe, "wireframe", false, "outline triangle edges")
	f.BoolVar(&opts.bounds, "bounds", false, "draw mesh bounding boxes")
	f.BoolVar(&opts.flip, "flip", false, "reverse the model's triangle winding")
	f.Float64Var(&opts.spin, "spin", 0.6, "model spin rate in radians per second")
	f.BoolVar(&opts.floor, "floor", true, "draw a ground plane")
	f.StringVarP(&opts.out, "out", "o", "", "render one frame to this image file (.png, .bmp, .tiff) and exit")
	f.StringVar(&opts.size, "size", "320x240", "frame size for --out (WxH)")
	f.IntVar(&opts.scale, "scale", 1, "upscale factor for --out and screenshots")
	f.StringVar(&opts.logLevel, "log-level", "warn", "log level: debug, info, warn or error")
	return cmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := fang.Execute(ctx, newRootCmd()); err != nil {
		os.Exit(1)
	}
}

func setupLogger(level string) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	render.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
	return nil
}

func parseColor(s string) (render.Color, error) {
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "%d,%d,%d", &r, &g, &b); err != nil {
		return render.Color{}, fmt.Errorf("color %q: %w", s, err)
	}
	return render.RGB(r, g, b), nil
}

func parseSize(s string) (w, h int, err error) {
	if _, err := fmt.Sscanf(strings.ToLower(s), "%dx%d", &w, &h); err != nil {
		return 0, 0, fmt.Errorf("size %q: %w", s, err)
	}
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("size %q: dimensions must be positive", s)
	}
	return w, h, nil
}

// buildScene loads the model (or a cube when path is empty), fits it to a
// 2-unit box at the origin and frames it with the camera.
func buildScene(opts options, path string) (*scene.Scene, error) {
	shade, err := render.ParseShadeMode(opts.shade)
	if err != nil {
		return nil, err
	}
	cull, err := render.ParseCullMode(opts.cull)
	if err != nil {
		return nil, err
	}

	var mesh *models.Mesh
	if path == "" {
		mesh = models.NewCube(2)
	} else {
		mesh, err = models.Load(path)
		if err != nil {
			return nil, err
		}
	}
	if opts.flip {
		mesh.FlipWinding()
	}
	mesh.Normalize(2)

	ropts := []render.Option{
		render.WithWorkers(opts.workers),
		render.WithCullMode(cull),
	}
	if opts.wireframe {
		ropts = append(ropts, render.WithWireframe(render.ColorWhite))
	}
	if opts.bounds {
		ropts = append(ropts, render.WithBoundsOverlay(render.ColorYellow))
	}

	cam := render.NewCamera(1, 1)
	cam.Position = math3d.V3(0, 1, 4.5)
	cam.LookAt(math3d.Zero3())
	s := scene.New(cam, ropts...)

	model := scene.NewObject(mesh.Name, mesh)
	model.Material.Shade = shade
	model.Orientation = math3d.QuatEuler(math.Pi/6, 0, 0)
	if opts.spin != 0 {
		model.Animations = append(model.Animations, scene.Spin{Axis: math3d.Up(), Rate: opts.spin})
	}
	s.Add(model)

	if opts.floor {
		ground := scene.NewObject("floor", models.NewPlane(6))
		ground.Position = math3d.V3(0, -1.01, 0)
		ground.Material = render.Material{Color: render.ColorGray, Shade: shade}
		s.Add(ground)
	}
	return s, nil
}

func run(ctx context.Context, opts options, modelPath string) error {
	if err := setupLogger(opts.logLevel); err != nil {
		return err
	}
	bg, err := parseColor(opts.bg)
	if err != nil {
		return err
	}
	s, err := buildScene(opts, modelPath)
	if err != nil {
		return err
	}
	if opts.out != "" {
		return renderToFile(s, bg, opts)
	}
	return runTerminal(ctx, s, bg, opts)
}

func renderToFile(s *scene.Scene, bg render.Color, opts options) error {
	w, h, err := parseSize(opts.size)
	if err != nil {
		return err
	}
	fb := render.NewFramebuffer(w, h)
	fb.Clear(bg)
	if err := s.Render(fb); err != nil {
		return err
	}
	if err := fb.SaveImage(opts.out, opts.scale); err != nil {
		return fmt.Errorf("save frame: %w", err)
	}
	return nil
}
