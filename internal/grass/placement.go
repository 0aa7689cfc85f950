package grass

import (
	"math/rand/v2"

	"github.com/chewxy/math32"

	"github.com/Faultbox/meadow/pkg/math"
)

// Placer supplies the ground position (x, z) of the i-th blade.
type Placer interface {
	Place(i int) math.Vec2
}

// PlacerFunc adapts a plain function to Placer.
type PlacerFunc func(i int) math.Vec2

// Place calls f(i).
func (f PlacerFunc) Place(i int) math.Vec2 {
	return f(i)
}

// DiskPlacer scatters points uniformly over the area of a disk centred on the origin.
type DiskPlacer struct {
	Radius float32
	rng    *rand.Rand
}

// NewDiskPlacer returns a placer whose sequence is fixed by seed.
func NewDiskPlacer(radius float32, seed uint64) *DiskPlacer {
	return &DiskPlacer{
		Radius: radius,
		rng:    rand.New(rand.NewPCG(seed, seed^0xda3e39cb94b95bdb)),
	}
}

// Place draws the next point. The index is ignored; points come from the
// placer's own stream in call order.
func (p *DiskPlacer) Place(int) math.Vec2 {
	return SampleDisk(p.Radius, p.rng.Float32(), p.rng.Float32())
}

// SampleDisk maps two uniform numbers in [0, 1) to a point in the disk.
// The radius is taken as radius*sqrt(u) so density is uniform per unit area
// rather than bunched at the centre.
func SampleDisk(radius, u, v float32) math.Vec2 {
	r := radius * math32.Sqrt(u)
	s, c := math32.Sincos(v * 2 * math32.Pi)
	return math.Vec2{X: r * c, Y: r * s}
}
