package math3d

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Quat is a rotation. It wraps mgl64's quaternion so the rest of the engine
// can stay on Vec3/Mat4.
//
// The zero Quat is treated as the identity rotation, so a zero-valued
// orientation field is usable without initialization.
type Quat mgl64.Quat

// QuatIdent returns the identity rotation.
func QuatIdent() Quat {
	return Quat(mgl64.QuatIdent())
}

// QuatAxisAngle returns a rotation of angle radians around axis.
func QuatAxisAngle(axis Vec3, angle float64) Quat {
	return Quat(mgl64.QuatRotate(angle, toMgl(axis.Normalize())))
}

// QuatEuler builds a rotation from yaw (around +Y), pitch (around +X) and
// roll (around +Z), applied roll first and yaw last.
func QuatEuler(yaw, pitch, roll float64) Quat {
	y := QuatAxisAngle(Up(), yaw)
	p := QuatAxisAngle(Right(), pitch)
	r := QuatAxisAngle(V3(0, 0, 1), roll)
	return y.Mul(p).Mul(r)
}

func (q Quat) mgl() mgl64.Quat {
	m := mgl64.Quat(q)
	if m.W == 0 && m.V == (mgl64.Vec3{}) {
		return mgl64.QuatIdent()
	}
	return m
}

// Mul returns the composition q * r: r is applied first, then q.
func (q Quat) Mul(r Quat) Quat {
	return Quat(q.mgl().Mul(r.mgl()).Normalize())
}

// Rotate rotates v by q.
func (q Quat) Rotate(v Vec3) Vec3 {
	return fromMgl(q.mgl().Normalize().Rotate(toMgl(v)))
}

// Inverse returns the inverse rotation.
func (q Quat) Inverse() Quat {
	return Quat(q.mgl().Normalize().Conjugate())
}

// Normalize returns q scaled to unit length.
func (q Quat) Normalize() Quat {
	return Quat(q.mgl().Normalize())
}

// Mat4 returns the rotation as a column-major matrix.
func (q Quat) Mat4() Mat4 {
	return Mat4(q.mgl().Normalize().Mat4())
}

// ApproxEqual reports whether q and r describe the same rotation within eps.
// q and -q are the same rotation.
func (q Quat) ApproxEqual(r Quat, eps float64) bool {
	a, b := q.mgl().Normalize(), r.mgl().Normalize()
	dot := a.W*b.W + a.V[0]*b.V[0] + a.V[1]*b.V[1] + a.V[2]*b.V[2]
	return math.Abs(math.Abs(dot)-1) <= eps
}

func toMgl(v Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

func fromMgl(v mgl64.Vec3) Vec3 {
	return Vec3{v[0], v[1], v[2]}
}
