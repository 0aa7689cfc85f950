package lighting

import "testing"

func TestSunDirection(t *testing.T) {
	tests := []struct {
		name    string
		az, el  float32
		x, y, z float32
	}{
		{"zenith", 0, 90, 0, 1, 0},
		{"horizon south", 0, 0, 0, 0, 1},
		{"horizon east", 90, 0, 1, 0, 0},
		{"forty five up", 180, 45, 0, 0.7071068, -0.7071068},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := SunDirection(tt.az, tt.el)
			if !near(d.X, tt.x) || !near(d.Y, tt.y) || !near(d.Z, tt.z) {
				t.Errorf("SunDirection(%v, %v) = %+v, want (%v, %v, %v)", tt.az, tt.el, d, tt.x, tt.y, tt.z)
			}
			if l := d.Length(); !near(l, 1) {
				t.Errorf("length = %v, want 1", l)
			}
		})
	}
}

func near(a, b float32) bool {
	d := a - b
	return d < 1e-5 && d > -1e-5
}
