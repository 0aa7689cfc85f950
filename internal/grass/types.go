// Package grass builds the merged grass-field geometry and holds the shading
// contract the GPU program consumes.
package grass

// Vertex is a single blade vertex as emitted by GenerateBlade.
// Color carries the normalised height along the blade in every channel:
// 0 at the root, 1 at the tip. The vertex shader scales wind sway by it.
type Vertex struct {
	Position [3]float32
	UV       [2]float32
	Color    [3]float32
}

// Blade is one grass blade with local (0-based) triangle indices.
type Blade struct {
	Vertices [BladeVertexCount]Vertex
	Indices  [BladeIndexCount]uint32
}

// Field is the merged geometry of every blade, laid out as flat attribute
// arrays ready for GPU upload.
type Field struct {
	Positions []float32 // x,y,z per vertex
	UVs       []float32 // u,v per vertex
	Colors    []float32 // r,g,b per vertex
	Normals   []float32 // x,y,z per vertex, smooth
	Indices   []uint32  // triangle list, global indices

	BladeCount int
	FieldSize  float32
	Bounds     Bounds
}

// Bounds is the axis-aligned bounding box of the field.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// VertexCount returns the number of vertices in the field.
func (f *Field) VertexCount() int {
	return len(f.Positions) / 3
}

// TriangleCount returns the number of triangles in the field.
func (f *Field) TriangleCount() int {
	return len(f.Indices) / 3
}

// ByteSize returns the GPU memory the field's attribute and index buffers occupy.
func (f *Field) ByteSize() int {
	floats := len(f.Positions) + len(f.UVs) + len(f.Colors) + len(f.Normals)
	return floats*4 + len(f.Indices)*4
}

// Center returns the midpoint of the bounding box.
func (b Bounds) Center() [3]float32 {
	return [3]float32{
		(b.Min[0] + b.Max[0]) / 2,
		(b.Min[1] + b.Max[1]) / 2,
		(b.Min[2] + b.Max[2]) / 2,
	}
}

func (b *Bounds) extend(p [3]float32) {
	for i := range 3 {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
}

func emptyBounds() Bounds {
	return Bounds{
		Min: [3]float32{1e30, 1e30, 1e30},
		Max: [3]float32{-1e30, -1e30, -1e30},
	}
}
