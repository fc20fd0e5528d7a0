package scene

import (
	"github.com/charmbracelet/harmonica"
	"github.com/taigrr/facet/pkg/math3d"
	"github.com/taigrr/facet/pkg/render"
)

// axis eases one velocity component toward a target with a critically
// damped spring.
type axis struct {
	Velocity float64
	accel    float64
}

func (a *axis) update(spring harmonica.Spring, target float64) {
	a.Velocity, a.accel = spring.Update(a.Velocity, a.accel, target)
}

// Motion smooths camera controls. Input sets a target velocity, and the
// actual velocity springs toward it, so motion ramps up when a key is
// pressed and coasts to a stop when it is released.
type Motion struct {
	// MoveSpeed is the top speed in world units per second.
	MoveSpeed float64
	// TurnSpeed is the top turn rate in radians per second.
	TurnSpeed float64
	// Frequency and Damping configure the springs; see harmonica.NewSpring.
	Frequency float64
	Damping   float64

	move [3]axis
	turn [3]axis

	spring   harmonica.Spring
	springDT float64
	springF  float64
	springD  float64
}

// NewMotion returns a controller with moderate speeds and critically
// damped springs.
func NewMotion() *Motion {
	return &Motion{
		MoveSpeed: 3,
		TurnSpeed: 1.5,
		Frequency: 6,
		Damping:   1,
	}
}

// Velocity returns the current movement velocity in camera axes.
func (m *Motion) Velocity() math3d.Vec3 {
	return math3d.V3(m.move[0].Velocity, m.move[1].Velocity, m.move[2].Velocity)
}

// TurnRate returns the current yaw, pitch and roll rates.
func (m *Motion) TurnRate() math3d.Vec3 {
	return math3d.V3(m.turn[0].Velocity, m.turn[1].Velocity, m.turn[2].Velocity)
}

// Stop zeroes all velocities.
func (m *Motion) Stop() {
	m.move = [3]axis{}
	m.turn = [3]axis{}
}

// springFor returns a spring for time step dt, rebuilding it only when dt
// or the spring parameters change.
func (m *Motion) springFor(dt float64) harmonica.Spring {
	if dt != m.springDT || m.Frequency != m.springF || m.Damping != m.springD {
		m.spring = harmonica.NewSpring(dt, m.Frequency, m.Damping)
		m.springDT, m.springF, m.springD = dt, m.Frequency, m.Damping
	}
	return m.spring
}

// Update eases velocities toward in and moves cam by dt seconds of the
// result.
func (m *Motion) Update(cam *render.Camera, dt float64, in Input) {
	spring := m.springFor(dt)

	move := [3]float64{in.Move.X, in.Move.Y, in.Move.Z}
	turn := [3]float64{in.Turn.X, in.Turn.Y, in.Turn.Z}
	for i := range 3 {
		m.move[i].update(spring, clampUnit(move[i])*m.MoveSpeed)
		m.turn[i].update(spring, clampUnit(turn[i])*m.TurnSpeed)
	}

	v := m.Velocity().Scale(dt)
	if v != (math3d.Vec3{}) {
		cam.MoveLocal(v)
	}
	r := m.TurnRate().Scale(dt)
	if r != (math3d.Vec3{}) {
		cam.Turn(r.X, r.Y, r.Z)
	}
}

func clampUnit(f float64) float64 {
	return max(-1, min(1, f))
}
