package render

import (
	"math"
	"slices"
	"testing"

	"github.com/taigrr/facet/pkg/math3d"
)

type pixel struct{ x, y int }

func collect(a AABB) []pixel {
	var out []pixel
	for x, y := range a.Pixels() {
		out = append(out, pixel{x, y})
	}
	return out
}

func TestAABBPixels(t *testing.T) {
	box := AABB{MinX: 0, MaxX: 2, MinY: 0, MaxY: 1}
	want := []pixel{{0, 0}, {1, 0}, {2, 0}, {0, 1}, {1, 1}, {2, 1}}

	got := collect(box)
	if !slices.Equal(got, want) {
		t.Fatalf("Pixels() = %v, want %v", got, want)
	}
	if again := collect(box); !slices.Equal(again, want) {
		t.Errorf("second range = %v, want %v", again, want)
	}
	if n := box.PixelCount(); n != len(want) {
		t.Errorf("PixelCount() = %d, want %d", n, len(want))
	}
}

func TestAABBPixelsFloorsBounds(t *testing.T) {
	box := AABB{MinX: 1.7, MaxX: 3.2, MinY: -0.5, MaxY: 0.9}
	want := []pixel{{1, -1}, {2, -1}, {3, -1}, {1, 0}, {2, 0}, {3, 0}}
	if got := collect(box); !slices.Equal(got, want) {
		t.Errorf("Pixels() = %v, want %v", got, want)
	}
}

func TestAABBPixelsStopsEarly(t *testing.T) {
	box := AABB{MinX: 0, MaxX: 9, MinY: 0, MaxY: 9}
	n := 0
	for range box.Pixels() {
		n++
		if n == 3 {
			break
		}
	}
	if n != 3 {
		t.Errorf("visited %d pixels, want 3", n)
	}
}

func TestAABBEmpty(t *testing.T) {
	nan := math.NaN()
	tests := []struct {
		name string
		box  AABB
		want bool
	}{
		{"point", AABB{1, 1, 1, 1}, false},
		{"regular", AABB{0, 4, 0, 3}, false},
		{"inverted x", AABB{5, 4, 0, 3}, true},
		{"inverted y", AABB{0, 4, 3, 0}, true},
		{"nan", AABB{nan, 4, 0, 3}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.box.Empty(); got != tt.want {
				t.Errorf("Empty() = %v, want %v", got, tt.want)
			}
			if tt.want {
				if n := len(collect(tt.box)); n != 0 {
					t.Errorf("empty box yielded %d pixels", n)
				}
				if tt.box.Area() != 0 || tt.box.PixelCount() != 0 {
					t.Error("empty box should have zero area and pixel count")
				}
			}
		})
	}
}

func TestAABBUnboundedYieldsNothing(t *testing.T) {
	box := AABB{MinX: math.Inf(-1), MaxX: 3, MinY: 0, MaxY: 1}
	if box.Empty() {
		t.Fatal("unbounded box is not empty")
	}
	if n := box.PixelCount(); n != 0 {
		t.Errorf("PixelCount() = %d, want 0", n)
	}
}

func TestAABBIntersect(t *testing.T) {
	a := AABB{MinX: 0, MaxX: 10, MinY: 0, MaxY: 5}

	if got := a.Intersect(a); got != a {
		t.Errorf("a ∩ a = %v, want %v", got, a)
	}

	b := AABB{MinX: 5, MaxX: 20, MinY: -5, MaxY: 2}
	want := AABB{MinX: 5, MaxX: 10, MinY: 0, MaxY: 2}
	if got := a.Intersect(b); got != want {
		t.Errorf("a ∩ b = %v, want %v", got, want)
	}

	disjoint := AABB{MinX: 11, MaxX: 12, MinY: 0, MaxY: 5}
	if got := a.Intersect(disjoint); !got.Empty() {
		t.Errorf("a ∩ disjoint = %v, want empty", got)
	}
}

func TestAABBFromTriangle(t *testing.T) {
	tri := Triangle2D{math3d.V2(10, 10), math3d.V2(50, 10), math3d.V2(30, 50)}
	want := AABB{MinX: 10, MaxX: 50, MinY: 10, MaxY: 50}
	if got := AABBFromTriangle(tri); got != want {
		t.Errorf("AABBFromTriangle = %v, want %v", got, want)
	}
}

func TestAABBContainsPointIsStrict(t *testing.T) {
	box := AABB{MinX: 0, MaxX: 10, MinY: 0, MaxY: 10}
	tests := []struct {
		p    math3d.Vec2
		want bool
	}{
		{math3d.V2(5, 5), true},
		{math3d.V2(0, 5), false},
		{math3d.V2(10, 5), false},
		{math3d.V2(5, 10), false},
		{math3d.V2(0.001, 9.999), true},
	}
	for _, tt := range tests {
		if got := box.ContainsPoint(tt.p); got != tt.want {
			t.Errorf("ContainsPoint(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestAABBArea(t *testing.T) {
	if got := (AABB{MinX: 1, MaxX: 4, MinY: 2, MaxY: 4}).Area(); got != 6 {
		t.Errorf("Area() = %v, want 6", got)
	}
}

func TestBandsPartitionPixels(t *testing.T) {
	box := AABB{MinX: 2.3, MaxX: 6.8, MinY: 20.7, MaxY: 27.2}
	want := collect(box)

	var got []pixel
	for y0 := 0; y0 < 40; y0 += 3 {
		got = append(got, collect(box.Intersect(bandAABB(y0, y0+3)))...)
	}
	if !slices.Equal(got, want) {
		t.Errorf("banded pixels = %v, want %v", got, want)
	}
}
