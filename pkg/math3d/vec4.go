package math3d

import "math"

// Vec4 is a homogeneous point, typically a clip-space coordinate.
type Vec4 struct {
	X, Y, Z, W float64
}

// V4 creates a new Vec4.
func V4(x, y, z, w float64) Vec4 {
	return Vec4{x, y, z, w}
}

// Point returns v as a homogeneous point (w=1).
func Point(v Vec3) Vec4 {
	return Vec4{v.X, v.Y, v.Z, 1}
}

// Vec3 returns the XYZ portion, ignoring W.
func (v Vec4) Vec3() Vec3 {
	return Vec3{v.X, v.Y, v.Z}
}

// PerspectiveDivide returns XYZ/W. The second result is false when W is zero,
// in which case the returned vector holds NaN components.
func (v Vec4) PerspectiveDivide() (Vec3, bool) {
	if v.W == 0 {
		nan := math.NaN()
		return Vec3{nan, nan, nan}, false
	}
	inv := 1 / v.W
	return Vec3{v.X * inv, v.Y * inv, v.Z * inv}, true
}
