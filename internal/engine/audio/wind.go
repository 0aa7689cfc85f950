package audio

import (
	"math"
	"math/rand/v2"

	"github.com/gopxl/beep/v2"
)

// Wind is an endless stereo wind noise generator: brown noise shaped by two
// slow gust oscillators.
type Wind struct {
	rng        *rand.Rand
	sampleRate beep.SampleRate

	brown [2]float64
	phase [2]float64 // gust oscillators, radians
	step  [2]float64
}

// Gust periods in seconds.
const (
	gustPeriod  = 7.3
	swellPeriod = 23.0
)

// NewWind creates a generator; the same seed gives the same samples.
func NewWind(sampleRate beep.SampleRate, seed uint64) *Wind {
	w := &Wind{
		rng:        rand.New(rand.NewPCG(seed, 0x77696e64)),
		sampleRate: sampleRate,
	}
	sr := float64(sampleRate)
	w.step[0] = 2 * math.Pi / (gustPeriod * sr)
	w.step[1] = 2 * math.Pi / (swellPeriod * sr)
	w.phase[1] = w.rng.Float64() * 2 * math.Pi
	return w
}

// Stream fills samples and never ends.
func (w *Wind) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		gust := 0.45 + 0.3*math.Sin(w.phase[0]) + 0.25*math.Sin(w.phase[1])
		for c := 0; c < 2; c++ {
			white := w.rng.Float64()*2 - 1
			w.brown[c] = (w.brown[c] + 0.02*white) / 1.02
			samples[i][c] = clamp(w.brown[c]*3.5*gust, -1, 1)
		}
		w.phase[0] += w.step[0]
		w.phase[1] += w.step[1]
	}
	return len(samples), true
}

// Err always returns nil.
func (w *Wind) Err() error {
	return nil
}
