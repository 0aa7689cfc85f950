package grass

import (
	"fmt"
	"math/rand/v2"

	"github.com/chewxy/math32"

	"github.com/Faultbox/meadow/pkg/math"
)

// Fixed blade topology: a tapered quad with a bent tip triangle on top.
const (
	BladeVertexCount = 5
	BladeIndexCount  = 9
)

// Blade shape in world units, before height scaling.
const (
	BladeWidth      = 0.1
	BladeMidWidth   = BladeWidth * 0.5
	BladeTipOffset  = 0.1
	HeightVariation = 0.75 // height = scale * (1 + variation*jitter)
)

// Local vertex order inside a blade.
const (
	rootLeft = iota
	rootRight
	midRight
	midLeft
	tip
)

// Height along the blade per local vertex, written to the color channels.
const (
	RootHeight float32 = 0
	MidHeight  float32 = 0.5
	TipHeight  float32 = 1
)

var bladeIndices = [BladeIndexCount]uint32{
	rootLeft, rootRight, midRight,
	midRight, tip, midLeft,
	midLeft, rootLeft, midRight,
}

var bladeHeights = [BladeVertexCount]float32{
	rootLeft:  RootHeight,
	rootRight: RootHeight,
	midRight:  MidHeight,
	midLeft:   MidHeight,
	tip:       TipHeight,
}

// jitterStream separates blade jitter from any other PCG user of the same seed.
const jitterStream = 0x9e3779b97f4a7c15

// GenerateBlade builds one grass blade rooted at base.
//
// The result depends only on its arguments: seed drives the height jitter,
// the facing (yaw) and the tip bend, so equal seeds give identical blades.
// Every vertex carries uvAnchor so the blade samples one spot of the shared
// ground texture.
//
// base and uvAnchor must be finite and heightScale finite and non-negative;
// anything else panics.
func GenerateBlade(base math.Vec3, seed uint32, uvAnchor math.Vec2, heightScale float32) Blade {
	if !base.IsFinite() || !uvAnchor.IsFinite() || !(heightScale >= 0) || math32.IsInf(heightScale, 1) {
		panic(fmt.Sprintf("grass: invalid blade input base=%v uv=%v heightScale=%v", base, uvAnchor, heightScale))
	}

	j := newJitter(seed)
	height := heightScale * (1 + HeightVariation*j.next())
	facing := math.FromYaw(j.next() * 2 * math32.Pi)
	bend := math.FromYaw(j.next() * 2 * math32.Pi)

	mid := math.Vec3{Y: height / 2}
	top := math.Vec3{Y: height}

	var positions [BladeVertexCount]math.Vec3
	positions[rootLeft] = base.Add(facing.Scale(BladeWidth / 2))
	positions[rootRight] = base.Add(facing.Scale(-BladeWidth / 2))
	positions[midRight] = base.Add(facing.Scale(-BladeMidWidth / 2)).Add(mid)
	positions[midLeft] = base.Add(facing.Scale(BladeMidWidth / 2)).Add(mid)
	positions[tip] = base.Add(bend.Scale(BladeTipOffset)).Add(top)

	var b Blade
	uv := uvAnchor.Array()
	for i, p := range positions {
		h := bladeHeights[i]
		b.Vertices[i] = Vertex{
			Position: p.Array(),
			UV:       uv,
			Color:    [3]float32{h, h, h},
		}
	}
	b.Indices = bladeIndices
	return b
}

// jitter is a per-blade PCG stream; it lives on the stack so generating a
// blade allocates nothing.
type jitter struct {
	src rand.PCG
}

func newJitter(seed uint32) jitter {
	var j jitter
	j.src.Seed(uint64(seed), jitterStream)
	return j
}

// next returns a uniform value in [0, 1).
func (j *jitter) next() float32 {
	return float32(j.src.Uint64()>>40) / (1 << 24)
}
