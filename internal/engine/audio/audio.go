// Package audio plays the ambient wind loop.
package audio

import (
	"fmt"
	"math"
	"os"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
)

// DefaultSampleRate is the playback sample rate.
const DefaultSampleRate = beep.SampleRate(44100)

// minExponent is the quietest audible gain, 2^-10.
const minExponent = -10

// Manager owns the speaker and the single ambient stream.
type Manager struct {
	mu sync.RWMutex

	initialized bool
	sampleRate  beep.SampleRate

	ctrl    *beep.Ctrl
	volume  *effects.Volume
	source  beep.StreamSeekCloser // decoded file, nil for generated wind
	level   float64               // 0..1
	playing bool
}

// New creates a manager with the given volume in [0, 1].
func New(volume float64) *Manager {
	return &Manager{
		sampleRate: DefaultSampleRate,
		level:      clamp(volume, 0, 1),
	}
}

// Init opens the audio device.
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	if err := speaker.Init(m.sampleRate, m.sampleRate.N(time.Second/30)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}

	m.initialized = true
	return nil
}

// Close stops playback and shuts down the audio system.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}
	m.stopInternal()
	speaker.Close()
	m.initialized = false
}

// PlayAmbient loads the loop at path, or generates wind when path is empty,
// and starts it. A previous ambient stream is stopped.
func (m *Manager) PlayAmbient(path string, seed uint64) error {
	stream, source, err := m.openAmbient(path, seed)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		if source != nil {
			source.Close()
		}
		return fmt.Errorf("audio not initialized")
	}

	m.stopInternal()

	m.source = source
	m.ctrl = &beep.Ctrl{Streamer: stream}
	m.volume = &effects.Volume{Streamer: m.ctrl, Base: 2}
	m.applyVolume()
	m.playing = true

	speaker.Play(m.volume)
	return nil
}

// openAmbient returns an endless stream at the manager's sample rate.
func (m *Manager) openAmbient(path string, seed uint64) (beep.Streamer, beep.StreamSeekCloser, error) {
	if path == "" {
		return NewWind(m.sampleRate, seed), nil, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	streamer, format, err := wav.Decode(f)
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("decode wav %s: %w", path, err)
	}

	looped := &loopStreamer{streamer: streamer}
	if format.SampleRate == m.sampleRate {
		return looped, streamer, nil
	}
	return beep.Resample(4, format.SampleRate, m.sampleRate, looped), streamer, nil
}

func (m *Manager) stopInternal() {
	if m.ctrl != nil {
		speaker.Lock()
		m.ctrl.Paused = true
		m.ctrl.Streamer = nil
		speaker.Unlock()
	}
	speaker.Clear()
	if m.source != nil {
		m.source.Close()
		m.source = nil
	}
	m.ctrl = nil
	m.volume = nil
	m.playing = false
}

// SetPaused pauses or resumes the ambient stream.
func (m *Manager) SetPaused(paused bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ctrl == nil {
		return
	}
	speaker.Lock()
	m.ctrl.Paused = paused
	speaker.Unlock()
	m.playing = !paused
}

// Playing reports whether the ambient stream is audible.
func (m *Manager) Playing() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.playing
}

// SetVolume sets the volume (0.0 to 1.0).
func (m *Manager) SetVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.level = clamp(vol, 0, 1)
	if m.volume != nil {
		speaker.Lock()
		m.applyVolume()
		speaker.Unlock()
	}
}

// Volume returns the current volume.
func (m *Manager) Volume() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.level
}

func (m *Manager) applyVolume() {
	if m.volume == nil {
		return
	}
	exp, silent := volumeToExponent(m.level)
	m.volume.Volume = exp
	m.volume.Silent = silent
}

// volumeToExponent maps a linear 0-1 volume to a base-2 gain exponent.
func volumeToExponent(vol float64) (float64, bool) {
	if vol <= 0 {
		return minExponent, true
	}
	return max(math.Log2(vol), minExponent), false
}

func clamp(v, lo, hi float64) float64 {
	return min(max(v, lo), hi)
}

// loopStreamer restarts a seekable stream when it ends.
type loopStreamer struct {
	streamer beep.StreamSeeker
}

func (l *loopStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	filled := 0
	for filled < len(samples) {
		n, ok := l.streamer.Stream(samples[filled:])
		filled += n
		if ok {
			continue
		}
		if err := l.streamer.Err(); err != nil {
			return filled, false
		}
		if l.streamer.Len() == 0 {
			return filled, false
		}
		if err := l.streamer.Seek(0); err != nil {
			return filled, false
		}
	}
	return filled, true
}

func (l *loopStreamer) Err() error {
	return l.streamer.Err()
}
