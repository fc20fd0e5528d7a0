package scene

import (
	"github.com/taigrr/facet/pkg/math3d"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Animation changes an object's transform over time.
type Animation interface {
	Step(o *Object, dt float64)
}

// Spin rotates an object around Axis at Rate radians per second. The axis
// is in world space.
type Spin struct {
	Axis math3d.Vec3
	Rate float64
}

// Step implements Animation.
func (s Spin) Step(o *Object, dt float64) {
	if s.Rate == 0 {
		return
	}
	turn := math3d.QuatAxisAngle(s.Axis, s.Rate*dt)
	o.Orientation = turn.Mul(o.Orientation)
}

// Bob moves an object back and forth along Axis, easing in and out at
// each end. The object starts at the middle of the swing.
type Bob struct {
	Axis      math3d.Vec3
	Amplitude float64
	Period    float64 // seconds per full cycle

	tween   *gween.Tween
	offset  float64 // current displacement along Axis
	target  float64 // end of the current leg
	leg     float64 // duration of the current leg
	elapsed float64 // time spent in the current leg
}

// NewBob creates a Bob animation.
func NewBob(axis math3d.Vec3, amplitude, period float64) *Bob {
	return &Bob{Axis: axis, Amplitude: amplitude, Period: period}
}

// Offset returns the current displacement along the axis.
func (b *Bob) Offset() float64 {
	return b.offset
}

// Step implements Animation.
func (b *Bob) Step(o *Object, dt float64) {
	if b.Period <= 0 || b.Amplitude == 0 {
		return
	}
	if b.tween == nil {
		// The first leg runs from the middle to one end: a quarter cycle.
		b.target = b.Amplitude
		b.startLeg(0, b.Period/4)
	}

	v, done := b.tween.Update(float32(dt))
	b.elapsed += dt
	// Time left over from a finished leg carries into the next one, so
	// long frames do not stretch the period.
	for done {
		spill := max(0, b.elapsed-b.leg)
		from := b.target
		b.target = -b.target
		b.startLeg(from, b.Period/2)
		b.elapsed = spill
		v, done = b.tween.Update(float32(spill))
	}
	next := float64(v)

	dir := b.Axis.Normalize()
	o.Position = o.Position.Add(dir.Scale(next - b.offset))
	b.offset = next
}

func (b *Bob) startLeg(from, duration float64) {
	b.leg = duration
	b.elapsed = 0
	b.tween = gween.New(float32(from), float32(b.target), float32(duration), ease.InOutQuad)
}
