package debug

// boxEdges lists the 12 box edges as corner index pairs. Corner i has
// x from bit 0, y from bit 1 and z from bit 2 (0 = lo, 1 = hi).
var boxEdges = [12][2]int{
	{0, 1}, {1, 5}, {5, 4}, {4, 0}, // bottom
	{2, 3}, {3, 7}, {7, 6}, {6, 2}, // top
	{0, 2}, {1, 3}, {5, 7}, {4, 6}, // verticals
}

// BoxCorner returns corner i (0..7) of the box spanned by lo and hi.
func BoxCorner(lo, hi [3]float32, i int) [3]float32 {
	var c [3]float32
	for axis := range 3 {
		if i&(1<<axis) != 0 {
			c[axis] = hi[axis]
		} else {
			c[axis] = lo[axis]
		}
	}
	return c
}

// BoxLineVertices returns the edges of an axis-aligned box as GL_LINES
// endpoints, three floats per vertex.
func BoxLineVertices(lo, hi [3]float32) []float32 {
	out := make([]float32, 0, len(boxEdges)*2*3)
	for _, e := range boxEdges {
		a := BoxCorner(lo, hi, e[0])
		b := BoxCorner(lo, hi, e[1])
		out = append(out, a[:]...)
		out = append(out, b[:]...)
	}
	return out
}

// CrossLineVertices returns three axis-aligned segments of length size
// crossing at p, used to mark a point in the world.
func CrossLineVertices(p [3]float32, size float32) []float32 {
	h := size / 2
	out := make([]float32, 0, 3*2*3)
	for axis := range 3 {
		a, b := p, p
		a[axis] -= h
		b[axis] += h
		out = append(out, a[:]...)
		out = append(out, b[:]...)
	}
	return out
}
