package render

import "image/color"

// Color is an alias for color.RGBA for convenience. The framebuffer stores
// colors packed as r<<16 | g<<8 | b, so alpha is dropped on write.
type Color = color.RGBA

// Colors for convenience
var (
	ColorBlack   = RGB(0, 0, 0)
	ColorWhite   = RGB(255, 255, 255)
	ColorRed     = RGB(255, 0, 0)
	ColorGreen   = RGB(0, 255, 0)
	ColorBlue    = RGB(0, 0, 255)
	ColorYellow  = RGB(255, 255, 0)
	ColorCyan    = RGB(0, 255, 255)
	ColorMagenta = RGB(255, 0, 255)
	ColorGray    = RGB(128, 128, 128)
	ColorSky     = RGB(135, 206, 235)
)

// RGB creates an opaque color from RGB values.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 255}
}

// Pack packs c as r<<16 | g<<8 | b.
func Pack(c Color) uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// Unpack is the inverse of Pack. The result is opaque.
func Unpack(p uint32) Color {
	return RGB(uint8(p>>16), uint8(p>>8), uint8(p))
}

// unitToByte maps [0, 1] to [0, 255], clamping out-of-range values.
func unitToByte(f float64) uint8 {
	switch {
	case !(f > 0):
		return 0
	case f >= 1:
		return 255
	default:
		return uint8(f*255 + 0.5)
	}
}
