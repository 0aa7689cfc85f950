package texture

import (
	"image"
	"image/color"
	"math/rand/v2"

	"github.com/chewxy/math32"
)

// GroundFallback generates a speckled green ground texture, used when the
// configured grass texture cannot be loaded.
func GroundFallback(size int, seed uint64) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	noise := newValueNoise(8, seed)
	rng := rand.New(rand.NewPCG(seed, 0x67726f756e64))

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			n := noise.fbm(float32(x)/float32(size), float32(y)/float32(size), 3)
			speck := rng.Float32() * 0.15
			g := 0.35 + 0.35*n + speck
			img.SetRGBA(x, y, color.RGBA{
				R: unit8(g * 0.45),
				G: unit8(g),
				B: unit8(g * 0.25),
				A: 255,
			})
		}
	}
	return img
}

// CloudFallback generates soft grayscale clouds that tile seamlessly, so the
// result can be sampled with repeat wrapping.
func CloudFallback(size int, seed uint64) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	noise := newValueNoise(4, seed)

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			n := noise.fbm(float32(x)/float32(size), float32(y)/float32(size), 4)
			v := unit8(n)
			img.SetRGBA(x, y, color.RGBA{R: v, G: v, B: v, A: 255})
		}
	}
	return img
}

// valueNoise is periodic 2D value noise over the unit square.
type valueNoise struct {
	cells   int
	lattice []float32
}

func newValueNoise(cells int, seed uint64) *valueNoise {
	// Lattice for the finest octave; coarser octaves sample a subset.
	const maxOctaves = 6
	n := cells << maxOctaves
	rng := rand.New(rand.NewPCG(seed, 0x636c6f7564))
	lattice := make([]float32, n*n)
	for i := range lattice {
		lattice[i] = rng.Float32()
	}
	return &valueNoise{cells: cells, lattice: lattice}
}

// at samples one octave with the given number of cells per unit.
func (v *valueNoise) at(u, w float32, cells int) float32 {
	side := v.cells << 6
	stride := side / cells

	fx, fy := u*float32(cells), w*float32(cells)
	x0, y0 := math32.Floor(fx), math32.Floor(fy)
	tx, ty := smoothstep(fx-x0), smoothstep(fy-y0)

	ix, iy := wrap(int(x0), cells), wrap(int(y0), cells)
	ix1, iy1 := wrap(ix+1, cells), wrap(iy+1, cells)

	// Octaves use distinct rows so they are uncorrelated.
	row := func(y int) int { return (y*stride + cells) % side * side }
	col := func(x int) int { return x * stride }

	a := v.lattice[row(iy)+col(ix)]
	b := v.lattice[row(iy)+col(ix1)]
	c := v.lattice[row(iy1)+col(ix)]
	d := v.lattice[row(iy1)+col(ix1)]

	top := a + (b-a)*tx
	bottom := c + (d-c)*tx
	return top + (bottom-top)*ty
}

// fbm sums octaves of halving amplitude and returns a value in [0, 1].
func (v *valueNoise) fbm(u, w float32, octaves int) float32 {
	var sum, norm float32
	amp := float32(1)
	cells := v.cells
	for o := 0; o < octaves && cells <= v.cells<<6; o++ {
		sum += v.at(u, w, cells) * amp
		norm += amp
		amp *= 0.5
		cells *= 2
	}
	return sum / norm
}

func smoothstep(t float32) float32 {
	return t * t * (3 - 2*t)
}

func wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

func unit8(f float32) uint8 {
	if f <= 0 {
		return 0
	}
	if f >= 1 {
		return 255
	}
	return uint8(f*255 + 0.5)
}
