package grass

import (
	"testing"

	"github.com/chewxy/math32"
)

func TestComputeNormalsFlatTriangle(t *testing.T) {
	// Counter-clockwise seen from +Y.
	positions := []float32{
		0, 0, 0,
		0, 0, 1,
		1, 0, 0,
	}
	normals := make([]float32, len(positions))
	ComputeNormals(positions, []uint32{0, 1, 2}, normals)

	for v := 0; v < 3; v++ {
		got := [3]float32{normals[v*3], normals[v*3+1], normals[v*3+2]}
		if got != [3]float32{0, 1, 0} {
			t.Errorf("vertex %d normal = %v, want +Y", v, got)
		}
	}
}

func TestComputeNormalsSharedVertexIsAveraged(t *testing.T) {
	// Two equal-area faces meeting at a right angle along the X axis:
	// one facing +Y, one facing +Z.
	positions := []float32{
		0, 0, 0, // 0 shared
		1, 0, 0, // 1 shared
		0, 0, -1, // 2 floor
		0, 1, 0, // 3 wall
	}
	indices := []uint32{
		0, 1, 2, // +Y
		0, 1, 3, // +Z
	}
	normals := make([]float32, len(positions))
	ComputeNormals(positions, indices, normals)

	s := 1 / math32.Sqrt(2)
	want := [3]float32{0, s, s}
	for _, v := range []int{0, 1} {
		for k := 0; k < 3; k++ {
			if math32.Abs(normals[v*3+k]-want[k]) > 1e-5 {
				t.Errorf("shared vertex %d normal = %v, want %v", v, normals[v*3:v*3+3], want)
				break
			}
		}
	}
}

func TestComputeNormalsDegenerate(t *testing.T) {
	positions := []float32{
		0, 0, 0,
		0, 0, 0,
		0, 0, 0,
		5, 5, 5, // unreferenced
	}
	normals := []float32{9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9}
	ComputeNormals(positions, []uint32{0, 1, 2}, normals)

	for v := 0; v < 4; v++ {
		got := [3]float32{normals[v*3], normals[v*3+1], normals[v*3+2]}
		if got != [3]float32{0, 1, 0} {
			t.Errorf("vertex %d normal = %v, want +Y fallback", v, got)
		}
	}
}
