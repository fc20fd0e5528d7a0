package render

import (
	"math"
	"testing"

	"github.com/taigrr/facet/pkg/math3d"
)

func testFrustum(near, far float64) Frustum {
	cam := NewCamera(160, 90)
	if err := cam.SetClipPlanes(near, far); err != nil {
		panic(err)
	}
	return cam.Frustum()
}

func TestPlaneDistanceToPoint(t *testing.T) {
	// Plane at Z=0, normal pointing +Z
	plane := Plane{Normal: math3d.V3(0, 0, 1), D: 0}

	tests := []struct {
		name     string
		point    math3d.Vec3
		expected float64
	}{
		{"origin", math3d.V3(0, 0, 0), 0},
		{"in front", math3d.V3(0, 0, 5), 5},
		{"behind", math3d.V3(0, 0, -3), -3},
		{"offset XY", math3d.V3(10, -5, 2), 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dist := plane.DistanceToPoint(tc.point)
			if math.Abs(dist-tc.expected) > 1e-9 {
				t.Errorf("got %v, want %v", dist, tc.expected)
			}
		})
	}
}

func TestPlaneNormalize(t *testing.T) {
	plane := Plane{Normal: math3d.V3(0, 3, 4), D: 10}
	plane.Normalize()

	if l := plane.Normal.Len(); math.Abs(l-1.0) > 1e-9 {
		t.Errorf("normalized normal length = %v, want 1.0", l)
	}
	if math.Abs(plane.D-2.0) > 1e-9 {
		t.Errorf("D = %v, want 2.0", plane.D)
	}
}

func TestBoundsTransformIsometry(t *testing.T) {
	box := Bounds{Min: math3d.V3(-1, -1, -1), Max: math3d.V3(1, 1, 1)}

	t.Run("translation", func(t *testing.T) {
		got := box.TransformIsometry(math3d.NewIsometry(math3d.V3(10, 20, 30), math3d.QuatIdent()))
		if !got.Min.ApproxEqual(math3d.V3(9, 19, 29), 1e-12) || !got.Max.ApproxEqual(math3d.V3(11, 21, 31), 1e-12) {
			t.Errorf("translated = %v", got)
		}
	})

	t.Run("rotation grows box", func(t *testing.T) {
		iso := math3d.NewIsometry(math3d.Zero3(), math3d.QuatAxisAngle(math3d.Up(), math.Pi/4))
		got := box.TransformIsometry(iso)
		want := math.Sqrt2
		if math.Abs(got.Max.X-want) > 1e-9 || math.Abs(got.Max.Z-want) > 1e-9 {
			t.Errorf("rotated max = %v, want x,z = %v", got.Max, want)
		}
		if math.Abs(got.Max.Y-1) > 1e-9 {
			t.Errorf("rotated max.Y = %v, want 1", got.Max.Y)
		}
	})
}

func TestFrustumPlanesNormalized(t *testing.T) {
	for i, plane := range testFrustum(0.1, 100).Planes {
		if l := plane.Normal.Len(); math.Abs(l-1.0) > 1e-6 {
			t.Errorf("plane %d normal length = %v, want 1.0", i, l)
		}
	}
}

func TestFrustumPointVisibility(t *testing.T) {
	frustum := testFrustum(0.1, 100)

	tests := []struct {
		name     string
		point    math3d.Vec3
		expected bool
	}{
		{"center near", math3d.V3(0, 0, -1), true},
		{"center mid", math3d.V3(0, 0, -50), true},
		{"center far", math3d.V3(0, 0, -99), true},
		{"behind camera", math3d.V3(0, 0, 1), false},
		{"too far", math3d.V3(0, 0, -200), false},
		{"too close", math3d.V3(0, 0, -0.01), false},
		{"off to the left", math3d.V3(-100, 0, -10), false},
		{"above", math3d.V3(0, 100, -10), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := frustum.IntersectsSphere(tc.point, 0); got != tc.expected {
				t.Errorf("IntersectsSphere(%v, 0) = %v, want %v", tc.point, got, tc.expected)
			}
		})
	}
}

func TestFrustumIntersectBounds(t *testing.T) {
	frustum := testFrustum(1, 100)

	tests := []struct {
		name     string
		box      Bounds
		expected bool
	}{
		{"fully inside", Bounds{math3d.V3(-1, -1, -10), math3d.V3(1, 1, -5)}, true},
		{"crosses near plane", Bounds{math3d.V3(-1, -1, -2), math3d.V3(1, 1, 2)}, true},
		{"behind camera", Bounds{math3d.V3(-1, -1, 5), math3d.V3(1, 1, 10)}, false},
		{"beyond far plane", Bounds{math3d.V3(-1, -1, -150), math3d.V3(1, 1, -120)}, false},
		{"far to the right", Bounds{math3d.V3(100, -1, -10), math3d.V3(110, 1, -5)}, false},
		{"contains frustum", Bounds{math3d.V3(-200, -200, -200), math3d.V3(200, 200, 200)}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := frustum.IntersectBounds(tc.box); got != tc.expected {
				t.Errorf("IntersectBounds(%v) = %v, want %v", tc.box, got, tc.expected)
			}
		})
	}
}

func TestFrustumIntersectsSphere(t *testing.T) {
	frustum := testFrustum(1, 100)

	tests := []struct {
		name     string
		center   math3d.Vec3
		radius   float64
		expected bool
	}{
		{"inside", math3d.V3(0, 0, -10), 1.0, true},
		{"straddles near plane", math3d.V3(0, 0, -0.5), 1.0, true},
		{"behind", math3d.V3(0, 0, 5), 1.0, false},
		{"far behind", math3d.V3(0, 0, 20), 1.0, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := frustum.IntersectsSphere(tc.center, tc.radius); got != tc.expected {
				t.Errorf("IntersectsSphere(%v, %v) = %v, want %v", tc.center, tc.radius, got, tc.expected)
			}
		})
	}
}

func TestFrustumWithRotatedCamera(t *testing.T) {
	cam := NewCamera(100, 100)
	cam.LookAt(math3d.V3(10, 0, 0))
	frustum := cam.Frustum()

	if !frustum.IntersectsSphere(math3d.V3(10, 0, 0), 0) {
		t.Error("point in front of rotated camera should be visible")
	}
	if frustum.IntersectsSphere(math3d.V3(-10, 0, 0), 0) {
		t.Error("point behind rotated camera should not be visible")
	}
}

func TestFrustumWithMovedCamera(t *testing.T) {
	cam := NewCamera(100, 100)
	cam.Position = math3d.V3(0, 0, 50)
	frustum := cam.Frustum()

	if !frustum.IntersectsSphere(math3d.V3(0, 0, 0), 0) {
		t.Error("origin should be visible from +Z")
	}
	if frustum.IntersectsSphere(math3d.V3(0, 0, 60), 0) {
		t.Error("point behind moved camera should not be visible")
	}
}

func BenchmarkFrustumIntersectBounds(b *testing.B) {
	frustum := testFrustum(0.1, 1000)
	box := Bounds{math3d.V3(-1, -1, -10), math3d.V3(1, 1, -5)}

	for b.Loop() {
		_ = frustum.IntersectBounds(box)
	}
}

func BenchmarkFrustumExtraction(b *testing.B) {
	cam := NewCamera(160, 90)
	cam.Position = math3d.V3(0, 10, 20)
	cam.LookAt(math3d.Zero3())
	viewProj := cam.ViewProjectionMatrix()

	for b.Loop() {
		_ = NewFrustumFromMatrix(viewProj)
	}
}

func BenchmarkBoundsTransformIsometry(b *testing.B) {
	box := Bounds{math3d.V3(-1, -1, -1), math3d.V3(1, 1, 1)}
	iso := math3d.NewIsometry(math3d.V3(10, 0, 0), math3d.QuatAxisAngle(math3d.Up(), 0.5))

	for b.Loop() {
		_ = box.TransformIsometry(iso)
	}
}
