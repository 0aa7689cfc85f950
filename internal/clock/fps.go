package clock

import "time"

// FPSCounter averages frame rate over fixed windows.
type FPSCounter struct {
	window time.Duration
	start  time.Time
	frames int
}

// NewFPSCounter reports once per window.
func NewFPSCounter(window time.Duration) *FPSCounter {
	return &FPSCounter{window: window}
}

// Tick records a frame at now. When a window has passed it returns the
// average frames per second over that window and true.
func (f *FPSCounter) Tick(now time.Time) (float64, bool) {
	if f.start.IsZero() {
		f.start = now
		return 0, false
	}
	f.frames++
	span := now.Sub(f.start)
	if span < f.window {
		return 0, false
	}
	fps := float64(f.frames) / span.Seconds()
	f.frames = 0
	f.start = now
	return fps, true
}
