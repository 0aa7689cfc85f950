package grass

import "github.com/Faultbox/meadow/pkg/math"

// ComputeNormals writes smooth per-vertex normals for an indexed triangle list
// into normals (3 floats per vertex, same length as positions).
//
// Face normals are accumulated unnormalised, so each triangle weighs in by its
// area, and every vertex sum is then normalised. Vertices touched only by
// degenerate triangles, or by none, get +Y.
func ComputeNormals(positions []float32, indices []uint32, normals []float32) {
	clear(normals)

	for t := 0; t+2 < len(indices); t += 3 {
		a, b, c := indices[t], indices[t+1], indices[t+2]
		pa := vec3At(positions, a)
		face := vec3At(positions, b).Sub(pa).Cross(vec3At(positions, c).Sub(pa))
		addVec3At(normals, a, face)
		addVec3At(normals, b, face)
		addVec3At(normals, c, face)
	}

	for v := range uint32(len(normals) / 3) {
		n := vec3At(normals, v).Normalize()
		if n == (math.Vec3{}) {
			n = math.Up
		}
		normals[v*3], normals[v*3+1], normals[v*3+2] = n.X, n.Y, n.Z
	}
}

func vec3At(buf []float32, i uint32) math.Vec3 {
	return math.Vec3{X: buf[i*3], Y: buf[i*3+1], Z: buf[i*3+2]}
}

func addVec3At(buf []float32, i uint32, v math.Vec3) {
	buf[i*3] += v.X
	buf[i*3+1] += v.Y
	buf[i*3+2] += v.Z
}
