package grass

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/Faultbox/meadow/pkg/math"
)

func TestGenerateBladeDeterministic(t *testing.T) {
	base := math.Vec3{X: 1.5, Z: -2}
	uv := math.Vec2{X: 0.55, Y: 0.43}

	for _, seed := range []uint32{0, 1, 5, 12345, 1999995} {
		a := GenerateBlade(base, seed, uv, DefaultHeightScale)
		b := GenerateBlade(base, seed, uv, DefaultHeightScale)
		if a != b {
			t.Errorf("seed %d: blades differ between calls", seed)
		}
	}
}

func TestGenerateBladeVariesWithSeed(t *testing.T) {
	first := GenerateBlade(math.Vec3{}, 0, math.Vec2{}, DefaultHeightScale)
	distinct := 0
	for seed := uint32(5); seed < 500; seed += 5 {
		if GenerateBlade(math.Vec3{}, seed, math.Vec2{}, DefaultHeightScale) != first {
			distinct++
		}
	}
	if distinct == 0 {
		t.Error("every seed produced the same blade")
	}
}

func TestGenerateBladeTopology(t *testing.T) {
	for seed := uint32(0); seed < 2000; seed++ {
		b := GenerateBlade(math.Vec3{X: float32(seed) * 0.01}, seed, math.Vec2{X: 0.5, Y: 0.5}, DefaultHeightScale)
		if len(b.Vertices) != BladeVertexCount || len(b.Indices) != BladeIndexCount {
			t.Fatalf("seed %d: topology %d/%d", seed, len(b.Vertices), len(b.Indices))
		}
		for i, idx := range b.Indices {
			if idx >= BladeVertexCount {
				t.Fatalf("seed %d: index %d at %d out of range", seed, idx, i)
			}
		}
	}
	if BladeIndexCount%3 != 0 {
		t.Errorf("BladeIndexCount %d is not a whole number of triangles", BladeIndexCount)
	}
}

func TestGenerateBladeHeightEncoding(t *testing.T) {
	for seed := uint32(0); seed < 1000; seed += 7 {
		b := GenerateBlade(math.Vec3{Y: 0.25}, seed, math.Vec2{}, DefaultHeightScale)

		minH, maxH := float32(2), float32(-1)
		var rootY, tipY float32
		for i, v := range b.Vertices {
			h := v.Color[0]
			if v.Color[1] != h || v.Color[2] != h {
				t.Fatalf("seed %d: vertex %d color channels differ: %v", seed, i, v.Color)
			}
			minH = min(minH, h)
			maxH = max(maxH, h)
			if h == RootHeight {
				rootY = v.Position[1]
			}
			if h == TipHeight {
				tipY = v.Position[1]
			}
		}
		if minH != 0 || maxH != 1 {
			t.Errorf("seed %d: height range [%v, %v], want [0, 1]", seed, minH, maxH)
		}
		if b.Vertices[rootLeft].Color[0] != 0 || b.Vertices[rootRight].Color[0] != 0 {
			t.Errorf("seed %d: root vertices not encoded as 0", seed)
		}
		if b.Vertices[tip].Color[0] != 1 {
			t.Errorf("seed %d: tip vertex not encoded as 1", seed)
		}
		if rootY != 0.25 {
			t.Errorf("seed %d: root y = %v, want base y 0.25", seed, rootY)
		}
		if tipY <= rootY {
			t.Errorf("seed %d: tip y %v not above root y %v", seed, tipY, rootY)
		}
	}
}

func TestGenerateBladeHeightRange(t *testing.T) {
	const scale = 0.8
	for seed := uint32(0); seed < 5000; seed += 5 {
		b := GenerateBlade(math.Vec3{}, seed, math.Vec2{}, scale)
		h := b.Vertices[tip].Position[1]
		if h < scale || h >= scale*(1+HeightVariation)+1e-6 {
			t.Errorf("seed %d: tip height %v outside [%v, %v)", seed, h, scale, scale*(1+HeightVariation))
		}
		mid := b.Vertices[midLeft].Position[1]
		if math32.Abs(mid-h/2) > 1e-6 {
			t.Errorf("seed %d: mid height %v, want half of %v", seed, mid, h)
		}
	}
}

func TestGenerateBladeShape(t *testing.T) {
	base := math.Vec3{X: 3, Z: 4}
	b := GenerateBlade(base, 40, math.Vec2{}, DefaultHeightScale)

	pos := func(i int) math.Vec3 {
		p := b.Vertices[i].Position
		return math.Vec3{X: p[0], Y: p[1], Z: p[2]}
	}

	if w := pos(rootLeft).Distance(pos(rootRight)); math32.Abs(w-BladeWidth) > 1e-5 {
		t.Errorf("root width = %v, want %v", w, BladeWidth)
	}
	if w := pos(midLeft).Distance(pos(midRight)); math32.Abs(w-BladeMidWidth) > 1e-5 {
		t.Errorf("mid width = %v, want %v", w, BladeMidWidth)
	}
	if d := pos(tip).XZ().Distance(base.XZ()); math32.Abs(d-BladeTipOffset) > 1e-5 {
		t.Errorf("tip offset = %v, want %v", d, BladeTipOffset)
	}
}

func TestGenerateBladeUV(t *testing.T) {
	uv := math.Vec2{X: 0.2, Y: 0.9}
	b := GenerateBlade(math.Vec3{}, 10, uv, DefaultHeightScale)
	for i, v := range b.Vertices {
		if v.UV != uv.Array() {
			t.Errorf("vertex %d uv = %v, want %v", i, v.UV, uv)
		}
	}
}

func TestGenerateBladeZeroHeight(t *testing.T) {
	b := GenerateBlade(math.Vec3{}, 3, math.Vec2{}, 0)
	for i, v := range b.Vertices {
		if v.Position[1] != 0 {
			t.Errorf("vertex %d y = %v, want 0 for zero height scale", i, v.Position[1])
		}
	}
	if b.Vertices[tip].Color[0] != 1 {
		t.Error("tip encoding must not depend on height scale")
	}
}

func TestGenerateBladePanicsOnBadInput(t *testing.T) {
	tests := []struct {
		name   string
		base   math.Vec3
		uv     math.Vec2
		height float32
	}{
		{"negative height", math.Vec3{}, math.Vec2{}, -1},
		{"NaN height", math.Vec3{}, math.Vec2{}, math32.NaN()},
		{"infinite height", math.Vec3{}, math.Vec2{}, math32.Inf(1)},
		{"NaN base", math.Vec3{X: math32.NaN()}, math.Vec2{}, 1},
		{"infinite uv", math.Vec3{}, math.Vec2{Y: math32.Inf(-1)}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			GenerateBlade(tt.base, 0, tt.uv, tt.height)
		})
	}
}
