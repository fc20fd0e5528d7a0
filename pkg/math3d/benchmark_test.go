package math3d

import (
	"testing"
)

func BenchmarkMat4Mul(b *testing.B) {
	m1 := Translate(V3(1, 2, 3))
	m2 := QuatAxisAngle(Up(), 0.5).Mat4()

	for b.Loop() {
		_ = m1.Mul(m2)
	}
}

func BenchmarkMat4MulVec4(b *testing.B) {
	m := Translate(V3(1, 2, 3)).Mul(QuatAxisAngle(Up(), 0.5).Mat4())
	v := V4(1, 2, 3, 1)

	for b.Loop() {
		_ = m.MulVec4(v)
	}
}

func BenchmarkMat4Inverse(b *testing.B) {
	m := Translate(V3(1, 2, 3)).Mul(QuatAxisAngle(Up(), 0.5).Mat4()).Mul(Scale(V3(2, 2, 2)))

	for b.Loop() {
		_ = m.Inverse()
	}
}

func BenchmarkQuatRotate(b *testing.B) {
	q := QuatEuler(0.3, 0.2, 0.1)
	v := V3(1, 2, 3)

	for b.Loop() {
		_ = q.Rotate(v)
	}
}

func BenchmarkIsometryTransformPoint(b *testing.B) {
	iso := NewIsometry(V3(1, 2, 3), QuatEuler(0.3, 0.2, 0.1))
	v := V3(1, 2, 3)

	for b.Loop() {
		_ = iso.TransformPoint(v)
	}
}

func BenchmarkIsometryMat4(b *testing.B) {
	iso := NewIsometry(V3(1, 2, 3), QuatEuler(0.3, 0.2, 0.1))

	for b.Loop() {
		_ = iso.Mat4()
	}
}

func BenchmarkPerspectiveZO(b *testing.B) {
	for b.Loop() {
		_ = PerspectiveZO(1.047, 1.333, 0.1, 100.0)
	}
}

func BenchmarkViewProjection(b *testing.B) {
	// Build the per-object matrix the rasterizer uses: proj * view * model.
	view := NewIsometry(V3(0, 0, 10), QuatIdent()).Inversed().Mat4()
	model := NewIsometry(V3(1, 0, 0), QuatEuler(0.5, 0, 0)).Mat4()
	proj := PerspectiveZO(1.047, 1.333, 0.1, 100.0)

	for b.Loop() {
		_ = proj.Mul(view).Mul(model)
	}
}
