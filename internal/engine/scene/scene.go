// Package scene renders the meadow: sky, grass field and debug overlays.
package scene

import (
	"fmt"
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/meadow/internal/engine/camera"
	"github.com/Faultbox/meadow/internal/engine/framebuffer"
	"github.com/Faultbox/meadow/internal/grass"
	"github.com/Faultbox/meadow/internal/logger"
	"github.com/Faultbox/meadow/pkg/math"
)

// Config contains scene configuration options.
type Config struct {
	FOV        float32 // vertical, degrees
	ShowBounds bool
	Samples    int32 // offscreen capture samples, 1 disables multisampling
}

// DefaultConfig returns a default scene configuration.
func DefaultConfig() Config {
	return Config{FOV: 75, Samples: 4}
}

// Scene owns the renderers and the field cache.
type Scene struct {
	config Config

	sky    *SkyRenderer
	grass  *GrassRenderer
	bounds *BoundsRenderer

	cache *grass.FieldCache
	log   *zap.Logger

	// ShowBounds toggles the field bounding box overlay.
	ShowBounds bool
}

// New creates the scene's renderers. A GL context must be current.
func New(cfg Config, opts grass.Options) (*Scene, error) {
	s := &Scene{
		config:     cfg,
		cache:      grass.NewFieldCache(opts),
		log:        logger.Named("scene"),
		ShowBounds: cfg.ShowBounds,
	}

	var err error
	s.sky, err = NewSkyRenderer()
	if err != nil {
		s.Destroy()
		return nil, fmt.Errorf("creating sky renderer: %w", err)
	}

	s.grass, err = NewGrassRenderer()
	if err != nil {
		s.Destroy()
		return nil, fmt.Errorf("creating grass renderer: %w", err)
	}

	s.bounds, err = NewBoundsRenderer()
	if err != nil {
		s.Destroy()
		return nil, fmt.Errorf("creating bounds renderer: %w", err)
	}

	return s, nil
}

// SetField makes the field for (bladeCount, fieldSize) current, generating
// it only when those parameters changed since the last call.
func (s *Scene) SetField(bladeCount int, fieldSize float32) (*grass.Field, error) {
	f := s.cache.Get(bladeCount, fieldSize)
	if f == s.grass.Field() {
		return f, nil
	}
	if err := s.grass.LoadField(f); err != nil {
		return nil, err
	}
	s.bounds.SetBox(f.Bounds.Min, f.Bounds.Max)
	return f, nil
}

// SetFocus marks the orbit focus in the bounds overlay.
func (s *Scene) SetFocus(p math.Vec3) {
	s.bounds.SetMarker([3]float32{p.X, p.Y, p.Z})
}

// SetTextures uploads the grass material textures.
func (s *Scene) SetTextures(ground, clouds *image.RGBA) {
	s.grass.SetTextures(ground, clouds)
}

// Update feeds elapsed seconds since start to the grass material.
// Call it before Render in the same frame.
func (s *Scene) Update(elapsed float64) {
	s.grass.Update(elapsed)
}

// Render draws the scene into the current framebuffer.
func (s *Scene) Render(cam *camera.OrbitCamera, aspect float32) {
	viewProj := cam.ViewProjection(s.config.FOV, aspect)
	s.RenderWithViewProj(viewProj, cam.Position())
}

// RenderWithViewProj draws the scene with a precomputed view-projection.
func (s *Scene) RenderWithViewProj(viewProj math.Mat4, eye math.Vec3) {
	s.sky.Render(viewProj, eye)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	s.grass.Render(viewProj)

	if s.ShowBounds {
		s.bounds.Render(viewProj)
	}
}

// Capture renders one frame offscreen at width x height and returns the
// pixels as bottom-up RGBA rows.
func (s *Scene) Capture(cam *camera.OrbitCamera, width, height int) ([]byte, error) {
	fb, err := framebuffer.New(int32(width), int32(height), s.config.Samples)
	if err != nil {
		return nil, err
	}
	defer fb.Destroy()

	restore := fb.BindWithViewport()
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	s.Render(cam, float32(width)/float32(height))
	pixels := fb.ReadPixels()
	restore()

	return pixels, nil
}

// Destroy releases all resources.
func (s *Scene) Destroy() {
	if s.sky != nil {
		s.sky.Destroy()
	}
	if s.grass != nil {
		s.grass.Destroy()
	}
	if s.bounds != nil {
		s.bounds.Destroy()
	}
}
