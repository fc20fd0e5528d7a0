package render

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/tiff"
)

// Framebuffer is the color buffer the rasterizer writes into. Pixels are
// row-major and packed as r<<16 | g<<8 | b.
//
// For terminal output the height is twice the number of rows, since each
// cell shows two pixels with a half-block character.
type Framebuffer struct {
	Width  int
	Height int
	Pixels []uint32
}

// NewFramebuffer creates a framebuffer with the given dimensions.
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]uint32, width*height),
	}
}

// Resize changes the dimensions, reusing the pixel slice when it is large
// enough. Pixel contents are undefined afterwards.
func (fb *Framebuffer) Resize(width, height int) {
	n := width * height
	if cap(fb.Pixels) >= n {
		fb.Pixels = fb.Pixels[:n]
	} else {
		fb.Pixels = make([]uint32, n)
	}
	fb.Width, fb.Height = width, height
}

// Clear fills the framebuffer with a solid color.
func (fb *Framebuffer) Clear(c Color) {
	fill(fb.Pixels, Pack(c))
}

// fill sets every element of s to v by doubling copies.
func fill[T any](s []T, v T) {
	if len(s) == 0 {
		return
	}
	s[0] = v
	for i := 1; i < len(s); i *= 2 {
		copy(s[i:], s[:i])
	}
}

// SetPixel sets a pixel at (x, y). Out-of-bounds writes are ignored.
func (fb *Framebuffer) SetPixel(x, y int, c Color) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return
	}
	fb.Pixels[y*fb.Width+x] = Pack(c)
}

// GetPixel returns the color at (x, y), or black when out of bounds.
func (fb *Framebuffer) GetPixel(x, y int) Color {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return ColorBlack
	}
	return Unpack(fb.Pixels[y*fb.Width+x])
}

// DrawLine draws a line from (x0, y0) to (x1, y1) using Bresenham's algorithm.
func (fb *Framebuffer) DrawLine(x0, y0, x1, y1 int, c Color) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		fb.SetPixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// ToImage converts the framebuffer to a standard Go image.RGBA.
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := range fb.Height {
		for x := range fb.Width {
			img.SetRGBA(x, y, Unpack(fb.Pixels[y*fb.Width+x]))
		}
	}
	return img
}

// Image returns the framebuffer as an image, upscaled by an integer factor
// with nearest-neighbour sampling so pixels stay sharp.
func (fb *Framebuffer) Image(scale int) *image.RGBA {
	src := fb.ToImage()
	if scale <= 1 {
		return src
	}
	dst := image.NewRGBA(image.Rect(0, 0, fb.Width*scale, fb.Height*scale))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}

// Encode writes the framebuffer to w as png, bmp or tiff.
func (fb *Framebuffer) Encode(w io.Writer, format string) error {
	return EncodeImage(w, fb.ToImage(), format)
}

// EncodeImage writes img to w as png, bmp or tiff.
func EncodeImage(w io.Writer, img image.Image, format string) error {
	f, err := imageFormat(format)
	if err != nil {
		return err
	}
	switch f {
	case "bmp":
		return bmp.Encode(w, img)
	case "tiff":
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return png.Encode(w, img)
	}
}

// imageFormat normalizes a format name or file extension.
func imageFormat(name string) (string, error) {
	switch f := strings.ToLower(strings.TrimPrefix(name, ".")); f {
	case "png", "bmp":
		return f, nil
	case "tif", "tiff":
		return "tiff", nil
	default:
		return "", fmt.Errorf("image format %q: %w", name, ErrUnsupportedFormat)
	}
}

// SaveImage writes the framebuffer to path, choosing the format from the
// file extension and upscaling by scale.
func (fb *Framebuffer) SaveImage(path string, scale int) (err error) {
	format, err := imageFormat(filepath.Ext(path))
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return EncodeImage(f, fb.Image(scale), format)
}
