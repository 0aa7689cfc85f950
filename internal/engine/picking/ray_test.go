package picking

import (
	"testing"

	"github.com/Faultbox/meadow/pkg/math"
)

func near(a, b float32) bool {
	d := a - b
	return d < 1e-3 && d > -1e-3
}

func TestIntersectPlaneY(t *testing.T) {
	tests := []struct {
		name   string
		ray    Ray
		planeY float32
		want   math.Vec3
		ok     bool
	}{
		{
			name: "straight down",
			ray:  Ray{Origin: math.Vec3{X: 2, Y: 5, Z: -1}, Direction: math.Vec3{Y: -1}},
			want: math.Vec3{X: 2, Y: 0, Z: -1},
			ok:   true,
		},
		{
			name:   "diagonal to raised plane",
			ray:    Ray{Origin: math.Vec3{Y: 4}, Direction: math.Vec3{X: 1, Y: -1}.Normalize()},
			planeY: 1,
			want:   math.Vec3{X: 3, Y: 1},
			ok:     true,
		},
		{
			name: "parallel",
			ray:  Ray{Origin: math.Vec3{Y: 1}, Direction: math.Vec3{X: 1}},
		},
		{
			name: "pointing away",
			ray:  Ray{Origin: math.Vec3{Y: 1}, Direction: math.Vec3{Y: 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.ray.IntersectPlaneY(tt.planeY)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && (!near(got.X, tt.want.X) || !near(got.Y, tt.want.Y) || !near(got.Z, tt.want.Z)) {
				t.Errorf("hit = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestIntersectBox(t *testing.T) {
	lo, hi := [3]float32{-1, -1, -1}, [3]float32{1, 1, 1}

	tests := []struct {
		name  string
		ray   Ray
		wantT float32
		hit   bool
	}{
		{"hit front", Ray{Origin: math.Vec3{Z: 5}, Direction: math.Vec3{Z: -1}}, 4, true},
		{"inside", Ray{Origin: math.Vec3{}, Direction: math.Vec3{X: 1}}, 1, true},
		{"miss", Ray{Origin: math.Vec3{X: 3, Z: 5}, Direction: math.Vec3{Z: -1}}, 0, false},
		{"behind", Ray{Origin: math.Vec3{Z: 5}, Direction: math.Vec3{Z: 1}}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, hit := tt.ray.IntersectBox(lo, hi)
			if hit != tt.hit {
				t.Fatalf("hit = %v, want %v", hit, tt.hit)
			}
			if hit && !near(got, tt.wantT) {
				t.Errorf("t = %v, want %v", got, tt.wantT)
			}
		})
	}
}

func TestScreenToRayCenter(t *testing.T) {
	eye := math.Vec3{X: 0, Y: 5, Z: 10}
	view := math.LookAt(eye, math.Vec3{}, math.Up)
	proj := math.Perspective(1.0, 1.5, 0.1, 100)
	inv := proj.Mul(view).Inverse()

	r := ScreenToRay(300, 200, 600, 400, inv)

	want := math.Vec3{}.Sub(eye).Normalize()
	if !near(r.Direction.X, want.X) || !near(r.Direction.Y, want.Y) || !near(r.Direction.Z, want.Z) {
		t.Errorf("direction = %+v, want %+v", r.Direction, want)
	}

	p, ok := r.IntersectPlaneY(0)
	if !ok || !near(p.X, 0) || !near(p.Z, 0) {
		t.Errorf("center ray hits ground at %+v (ok=%v), want origin", p, ok)
	}
}

func TestPickGround(t *testing.T) {
	lo, hi := [3]float32{-15, 0, -15}, [3]float32{15, 1.4, 15}

	down := Ray{Origin: math.Vec3{X: 3, Y: 10, Z: 4}, Direction: math.Vec3{Y: -1}}
	if p, ok := PickGround(down, lo, hi); !ok || !near(p.X, 3) || !near(p.Z, 4) {
		t.Errorf("PickGround = %+v, %v", p, ok)
	}

	outside := Ray{Origin: math.Vec3{X: 40, Y: 10}, Direction: math.Vec3{Y: -1}}
	if _, ok := PickGround(outside, lo, hi); ok {
		t.Error("expected miss outside the field")
	}
}
