package grass

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/meadow/pkg/math"
)

// Field defaults, matching the reference scene.
const (
	DefaultBladeCount  = 400000
	DefaultFieldSize   = 30
	DefaultHeightScale = 0.8
)

// SeedStride spaces the per-blade seeds: blade i gets seed i*SeedStride.
const SeedStride = 5

// MaxBladeCount keeps every global vertex index (and seed) inside uint32.
const MaxBladeCount = (1<<32 - 1) / (BladeVertexCount * SeedStride)

// Options tune field assembly beyond the (count, size) pair.
type Options struct {
	HeightScale float32
	Seed        uint64 // placement stream seed, used when Placer is nil
	Placer      Placer // overrides the default disk placement
}

// DefaultOptions returns the reference height scale and a fixed placement seed.
func DefaultOptions() Options {
	return Options{
		HeightScale: DefaultHeightScale,
		Seed:        1,
	}
}

// BuildField assembles bladeCount blades scattered over a disk of diameter
// fieldSize using DefaultOptions.
func BuildField(bladeCount int, fieldSize float32) *Field {
	return BuildFieldWith(bladeCount, fieldSize, DefaultOptions())
}

// BuildFieldWith assembles the merged field geometry.
//
// Buffers are sized once up front; blade i occupies vertices
// [i*BladeVertexCount, (i+1)*BladeVertexCount) and its local indices are
// shifted by the first of those. Normals are computed over the finished buffer.
//
// bladeCount must be in (0, MaxBladeCount] and fieldSize finite and positive;
// anything else panics.
func BuildFieldWith(bladeCount int, fieldSize float32, opts Options) *Field {
	if bladeCount <= 0 || bladeCount > MaxBladeCount {
		panic(fmt.Sprintf("grass: blade count %d out of range (1..%d)", bladeCount, MaxBladeCount))
	}
	if !(fieldSize > 0) || math32.IsInf(fieldSize, 1) {
		panic(fmt.Sprintf("grass: field size %v must be finite and positive", fieldSize))
	}

	placer := opts.Placer
	if placer == nil {
		placer = NewDiskPlacer(fieldSize/2, opts.Seed)
	}

	vertexCount := bladeCount * BladeVertexCount
	f := &Field{
		Positions:  make([]float32, vertexCount*3),
		UVs:        make([]float32, vertexCount*2),
		Colors:     make([]float32, vertexCount*3),
		Normals:    make([]float32, vertexCount*3),
		Indices:    make([]uint32, bladeCount*BladeIndexCount),
		BladeCount: bladeCount,
		FieldSize:  fieldSize,
		Bounds:     emptyBounds(),
	}

	for i := range bladeCount {
		p := placer.Place(i)
		anchor := math.Vec2{X: p.X/fieldSize + 0.5, Y: p.Y/fieldSize + 0.5}
		blade := GenerateBlade(math.Vec3{X: p.X, Z: p.Y}, uint32(i*SeedStride), anchor, opts.HeightScale)
		f.putBlade(i, &blade)
	}

	ComputeNormals(f.Positions, f.Indices, f.Normals)
	return f
}

func (f *Field) putBlade(i int, b *Blade) {
	first := i * BladeVertexCount
	for k := range b.Vertices {
		v := &b.Vertices[k]
		n := first + k
		copy(f.Positions[n*3:n*3+3], v.Position[:])
		copy(f.UVs[n*2:n*2+2], v.UV[:])
		copy(f.Colors[n*3:n*3+3], v.Color[:])
		f.Bounds.extend(v.Position)
	}

	dst := f.Indices[i*BladeIndexCount : (i+1)*BladeIndexCount]
	for k, idx := range b.Indices {
		dst[k] = idx + uint32(first)
	}
}

// Blade returns a copy of blade i's vertices and local indices, read back
// from the merged buffers. i must be in [0, BladeCount).
func (f *Field) Blade(i int) Blade {
	if i < 0 || i >= f.BladeCount {
		panic(fmt.Sprintf("grass: blade %d out of range (0..%d)", i, f.BladeCount-1))
	}
	var b Blade
	first := i * BladeVertexCount
	for k := range b.Vertices {
		n := first + k
		copy(b.Vertices[k].Position[:], f.Positions[n*3:n*3+3])
		copy(b.Vertices[k].UV[:], f.UVs[n*2:n*2+2])
		copy(b.Vertices[k].Color[:], f.Colors[n*3:n*3+3])
	}
	for k := range b.Indices {
		b.Indices[k] = f.Indices[i*BladeIndexCount+k] - uint32(first)
	}
	return b
}

// Validate checks the buffer invariants: attribute arrays agree on the vertex
// count, indices form whole triangles, and no index points past the last vertex.
func (f *Field) Validate() error {
	n := f.VertexCount()
	if len(f.Positions)%3 != 0 {
		return fmt.Errorf("positions length %d is not a multiple of 3", len(f.Positions))
	}
	if len(f.UVs) != n*2 {
		return fmt.Errorf("uv count %d does not match vertex count %d", len(f.UVs)/2, n)
	}
	if len(f.Colors) != n*3 {
		return fmt.Errorf("color count %d does not match vertex count %d", len(f.Colors)/3, n)
	}
	if len(f.Normals) != n*3 {
		return fmt.Errorf("normal count %d does not match vertex count %d", len(f.Normals)/3, n)
	}
	if len(f.Indices) == 0 {
		return errors.New("field has no triangles")
	}
	if len(f.Indices)%3 != 0 {
		return fmt.Errorf("index count %d is not a multiple of 3", len(f.Indices))
	}
	for i, idx := range f.Indices {
		if int(idx) >= n {
			return fmt.Errorf("index %d at %d out of range (vertex count %d)", idx, i, n)
		}
	}
	return nil
}
