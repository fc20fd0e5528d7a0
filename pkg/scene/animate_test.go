package scene

import (
	"math"
	"testing"

	"github.com/taigrr/facet/pkg/math3d"
)

func TestSpinZeroRate(t *testing.T) {
	obj := &Object{Orientation: math3d.QuatEuler(0.3, 0, 0)}
	before := obj.Orientation
	Spin{Axis: math3d.Up()}.Step(obj, 1)
	if obj.Orientation != before {
		t.Error("zero-rate spin changed the orientation")
	}
}

func TestBob(t *testing.T) {
	const (
		amplitude = 2.0
		period    = 1.0
		dt        = 1.0 / 120
	)
	obj := &Object{Position: math3d.V3(5, 0, 0)}
	bob := NewBob(math3d.V3(0, 3, 0), amplitude, period)

	lo, hi := 0.0, 0.0
	for range 3 * 120 {
		bob.Step(obj, dt)
		off := bob.Offset()
		lo, hi = min(lo, off), max(hi, off)

		if off < -amplitude-1e-6 || off > amplitude+1e-6 {
			t.Fatalf("offset %v exceeds amplitude", off)
		}
		want := math3d.V3(5, off, 0)
		if !obj.Position.ApproxEqual(want, 1e-9) {
			t.Fatalf("position = %v, want %v", obj.Position, want)
		}
	}
	if hi < 0.99*amplitude || lo > -0.99*amplitude {
		t.Errorf("swing covered [%v, %v], want about ±%v", lo, hi, amplitude)
	}
}

func TestBobCarriesLeftoverTime(t *testing.T) {
	const amplitude, period = 2.0, 1.0

	// One long step crosses the end of the first leg.
	long := NewBob(math3d.Up(), amplitude, period)
	long.Step(&Object{}, 0.75*period)
	if got := long.Offset(); math.Abs(got+amplitude) > 1e-4 {
		t.Errorf("offset after 3/4 period = %v, want %v", got, -amplitude)
	}

	coarse := NewBob(math3d.Up(), amplitude, period)
	fine := NewBob(math3d.Up(), amplitude, period)
	for range 5 {
		coarse.Step(&Object{}, 0.375)
	}
	for range 240 {
		fine.Step(&Object{}, 1.0/128)
	}
	if c, f := coarse.Offset(), fine.Offset(); math.Abs(c-f) > 1e-4 {
		t.Errorf("coarse steps offset %v, fine steps %v", c, f)
	}
}

func TestBobDisabled(t *testing.T) {
	obj := &Object{}
	for _, b := range []*Bob{NewBob(math3d.Up(), 0, 1), NewBob(math3d.Up(), 1, 0)} {
		b.Step(obj, 0.5)
		if obj.Position != (math3d.Vec3{}) || b.Offset() != 0 {
			t.Errorf("disabled bob %+v moved the object", b)
		}
	}
}
