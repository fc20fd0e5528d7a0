package math3d

// Isometry is a rigid transform: a rotation followed by a translation.
type Isometry struct {
	Translation Vec3
	Rotation    Quat
}

// NewIsometry creates an isometry from a translation and a rotation.
func NewIsometry(translation Vec3, rotation Quat) Isometry {
	return Isometry{Translation: translation, Rotation: rotation}
}

// TransformPoint rotates p, then translates it.
func (iso Isometry) TransformPoint(p Vec3) Vec3 {
	return iso.Rotation.Rotate(p).Add(iso.Translation)
}

// TransformDir rotates v without translating it.
func (iso Isometry) TransformDir(v Vec3) Vec3 {
	return iso.Rotation.Rotate(v)
}

// Inversed returns the transform that undoes iso:
// iso.Inversed().TransformPoint(iso.TransformPoint(p)) == p.
func (iso Isometry) Inversed() Isometry {
	inv := iso.Rotation.Inverse()
	return Isometry{
		Translation: inv.Rotate(iso.Translation).Negate(),
		Rotation:    inv,
	}
}

// Mul returns the composition iso * other: other is applied first.
func (iso Isometry) Mul(other Isometry) Isometry {
	return Isometry{
		Translation: iso.TransformPoint(other.Translation),
		Rotation:    iso.Rotation.Mul(other.Rotation),
	}
}

// Mat4 returns the transform as a column-major matrix.
func (iso Isometry) Mat4() Mat4 {
	m := iso.Rotation.Mat4()
	m.SetTranslation(iso.Translation)
	return m
}
