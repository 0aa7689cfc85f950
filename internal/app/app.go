// Package app runs the meadow viewer: window, input, camera and render loop.
package app

import (
	"fmt"
	"time"

	"github.com/sqweek/dialog"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/meadow/internal/clock"
	"github.com/Faultbox/meadow/internal/config"
	"github.com/Faultbox/meadow/internal/engine/audio"
	"github.com/Faultbox/meadow/internal/engine/camera"
	"github.com/Faultbox/meadow/internal/engine/debug"
	"github.com/Faultbox/meadow/internal/engine/input"
	"github.com/Faultbox/meadow/internal/engine/picking"
	"github.com/Faultbox/meadow/internal/engine/renderer"
	"github.com/Faultbox/meadow/internal/engine/scene"
	"github.com/Faultbox/meadow/internal/engine/texture"
	"github.com/Faultbox/meadow/internal/engine/window"
	"github.com/Faultbox/meadow/internal/grass"
	"github.com/Faultbox/meadow/internal/logger"
	"github.com/Faultbox/meadow/pkg/math"
)

// Title is the window title prefix.
const Title = "Meadow"

// App is the viewer instance.
type App struct {
	cfg     *config.Config
	running bool

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	scene    *scene.Scene
	camera   *camera.OrbitCamera
	clock    *clock.Clock
	fps      *clock.FPSCounter
	shots    *debug.ScreenshotCapture
	audio    *audio.Manager // nil when disabled or unavailable
	field    *grass.Field
	textures texture.Textures
	images   *texture.Cache

	// Ground texture paths chosen in the file dialog, consumed on the main thread.
	pendingGround chan string

	log *zap.Logger
}

// New creates the window and GL resources and generates the field.
func New(cfg *config.Config) (*App, error) {
	a := &App{
		cfg:           cfg,
		log:           logger.Named("app"),
		pendingGround: make(chan string, 1),
		images:        texture.NewCache(),
	}

	a.log.Info("initializing",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.Int("blades", cfg.Field.BladeCount),
		zap.Float32("fieldSize", cfg.Field.Size),
	)

	var err error
	a.window, err = window.New(window.Config{
		Title:      Title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
		MSAA:       cfg.Graphics.MSAA,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// The renderer needs the GL context created by the window.
	w, h := a.window.DrawableSize()
	a.renderer, err = renderer.New(renderer.Config{
		Width:  w,
		Height: h,
		MSAA:   a.window.MSAA() > 0,
	})
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	opts := grass.DefaultOptions()
	opts.HeightScale = cfg.Field.HeightScale
	opts.Seed = cfg.Field.Seed

	sceneCfg := scene.DefaultConfig()
	sceneCfg.FOV = cfg.Graphics.FOV
	sceneCfg.ShowBounds = cfg.Debug.ShowBounds
	if cfg.Graphics.MSAA > 0 {
		sceneCfg.Samples = int32(cfg.Graphics.MSAA)
	}
	a.scene, err = scene.New(sceneCfg, opts)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create scene: %w", err)
	}

	a.field, err = a.scene.SetField(cfg.Field.BladeCount, cfg.Field.Size)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to load field: %w", err)
	}

	a.textures = texture.LoadTextures(cfg.Assets.GrassTexture, cfg.Assets.CloudTexture, cfg.Field.Seed)
	a.scene.SetTextures(a.textures.Ground, a.textures.Clouds)

	a.camera = a.newCamera()
	a.camera.FitToBounds(a.field.Bounds.Min, a.field.Bounds.Max)

	if cfg.Audio.Enabled {
		a.startAudio()
	}

	a.input = input.New()
	a.shots = debug.NewScreenshotCapture(cfg.Debug.ScreenshotDir, "meadow")
	a.fps = clock.NewFPSCounter(time.Second)

	a.log.Info("initialized")
	return a, nil
}

// startAudio plays the ambient wind. Audio is optional: failures are
// logged and the viewer runs silent.
func (a *App) startAudio() {
	m := audio.New(a.cfg.Audio.Volume)
	if err := m.Init(); err != nil {
		a.log.Warn("audio unavailable", zap.Error(err))
		return
	}
	if err := m.PlayAmbient(a.cfg.Audio.WindSound, a.cfg.Field.Seed); err != nil {
		a.log.Warn("ambient sound failed, generating wind", zap.String("path", a.cfg.Audio.WindSound), zap.Error(err))
		if err := m.PlayAmbient("", a.cfg.Field.Seed); err != nil {
			a.log.Warn("audio disabled", zap.Error(err))
			m.Close()
			return
		}
	}
	a.audio = m
}

func (a *App) newCamera() *camera.OrbitCamera {
	c := a.cfg.Camera
	return camera.NewOrbitCameraAt(
		math.Vec3{X: c.Position[0], Y: c.Position[1], Z: c.Position[2]},
		math.Vec3{X: c.Target[0], Y: c.Target[1], Z: c.Target[2]},
		c.MinDistance, c.MaxDistance,
	)
}

// Run starts the main loop and blocks until the window closes.
func (a *App) Run() error {
	a.running = true
	a.clock = clock.New()

	lastTime := time.Now()
	a.log.Info("starting render loop")

	for a.running {
		now := time.Now()
		dt := float32(now.Sub(lastTime).Seconds())
		lastTime = now

		// 1. Input
		if a.input.Update() {
			a.running = false
			break
		}
		a.handleEvents()

		// 2. Update. The material sees this frame's time before drawing.
		a.update(dt)

		// 3. Render
		a.render()

		// 4. Present
		a.window.SwapBuffers()

		if fps, ok := a.fps.Tick(now); ok && a.cfg.Debug.ShowFPS {
			a.window.SetTitle(windowTitle(fps, a.cfg.Field.BladeCount, a.clock.Paused()))
		}
	}

	return nil
}

func (a *App) handleEvents() {
	for _, event := range a.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			a.renderer.Resize(a.window.DrawableSize())

		case input.EventMouseMove:
			if a.input.IsButtonDown(sdl.BUTTON_LEFT) {
				a.camera.HandleDrag(float32(event.DeltaX), float32(event.DeltaY))
			}

		case input.EventMouseDown:
			if event.Button == sdl.BUTTON_RIGHT {
				a.focusAt(event.MouseX, event.MouseY)
			}

		case input.EventMouseWheel:
			a.camera.HandleZoom(float32(event.DeltaY))

		case input.EventKeyDown:
			a.handleKey(event.Key)
		}
	}
}

func (a *App) handleKey(key sdl.Scancode) {
	switch key {
	case sdl.SCANCODE_ESCAPE:
		a.running = false
	case sdl.SCANCODE_P:
		paused := a.clock.Toggle()
		if a.audio != nil {
			a.audio.SetPaused(paused)
		}
		fields := []zap.Field{zap.Bool("paused", paused), zap.Float64("elapsed", a.clock.Elapsed())}
		if a.audio != nil {
			fields = append(fields, zap.Bool("audio", a.audio.Playing()))
		}
		a.log.Info("animation", fields...)
	case sdl.SCANCODE_M:
		if a.audio != nil {
			if a.audio.Volume() > 0 {
				a.audio.SetVolume(0)
			} else {
				a.audio.SetVolume(a.cfg.Audio.Volume)
			}
		}
	case sdl.SCANCODE_B:
		a.scene.ShowBounds = !a.scene.ShowBounds
	case sdl.SCANCODE_R:
		a.camera = a.newCamera()
		a.camera.FitToBounds(a.field.Bounds.Min, a.field.Bounds.Max)
	case sdl.SCANCODE_L:
		a.log.Info("log level changed", zap.Stringer("level", logger.ToggleDebug()))
	case sdl.SCANCODE_O:
		a.openGroundDialog()
	case sdl.SCANCODE_F11:
		if err := a.window.SetFullscreen(!a.window.Fullscreen()); err != nil {
			a.log.Warn("fullscreen toggle failed", zap.Error(err))
		}
	case sdl.SCANCODE_F12:
		a.screenshot()
	}
}

// focusAt moves the orbit center to the ground point under the cursor.
func (a *App) focusAt(x, y int) {
	w, h := a.window.GetSize()
	viewProj := a.camera.ViewProjection(a.cfg.Graphics.FOV, float32(w)/float32(h))
	ray := picking.ScreenToRay(float32(x), float32(y), float32(w), float32(h), viewProj.Inverse())

	p, ok := picking.PickGround(ray, a.field.Bounds.Min, a.field.Bounds.Max)
	if !ok {
		return
	}
	a.camera.SetCenter(p.X, p.Y, p.Z)
	a.scene.SetFocus(p)
	a.log.Debug("orbit center moved", zap.Float32("x", p.X), zap.Float32("z", p.Z))
}

// openGroundDialog asks for a new ground texture without blocking the loop.
// GL calls must stay on the main thread, so the result is queued.
func (a *App) openGroundDialog() {
	go func() {
		path, err := dialog.File().
			Filter("Images", "jpg", "jpeg", "png", "bmp", "tif", "tiff", "webp").
			Filter("All Files", "*").
			Title("Open ground texture").
			Load()
		if err != nil {
			if err != dialog.ErrCancelled {
				a.log.Warn("file dialog failed", zap.Error(err))
			}
			return
		}
		select {
		case a.pendingGround <- path:
		default:
		}
	}()
}

func (a *App) reloadGround(path string) {
	img, err := a.images.Load(path, texture.DefaultMaxSize)
	if err != nil {
		a.log.Warn("ground texture not loaded", zap.String("path", path), zap.Error(err))
		return
	}
	a.textures.Ground = img
	a.textures.GroundGenerated = false
	a.scene.SetTextures(a.textures.Ground, a.textures.Clouds)
	hits, misses := a.images.Stats()
	a.log.Info("ground texture replaced",
		zap.String("path", path),
		zap.Int("cacheHits", hits),
		zap.Int("cacheMisses", misses),
	)
}

func (a *App) update(dt float32) {
	select {
	case path := <-a.pendingGround:
		a.reloadGround(path)
	default:
	}

	forward := a.input.Axis(sdl.SCANCODE_W, sdl.SCANCODE_S)
	right := a.input.Axis(sdl.SCANCODE_D, sdl.SCANCODE_A)
	up := a.input.Axis(sdl.SCANCODE_E, sdl.SCANCODE_Q)
	if forward != 0 || right != 0 || up != 0 {
		a.camera.HandleMovement(forward, right, up, dt)
	}

	a.scene.Update(a.clock.Elapsed())
}

func (a *App) render() {
	a.renderer.Begin()
	a.scene.Render(a.camera, a.renderer.Aspect())
	a.renderer.End()
}

func (a *App) screenshot() {
	w, h := a.renderer.Size()
	scale := a.cfg.Debug.ScreenshotScale
	w, h = max(1, int(float32(w)*scale)), max(1, int(float32(h)*scale))

	pixels, err := a.scene.Capture(a.camera, w, h)
	if err != nil {
		// Fall back to the back buffer at window resolution.
		a.log.Warn("offscreen capture failed, reading back buffer", zap.Error(err))
		a.render()
		pixels, w, h = a.renderer.ReadPixels()
	}

	path, err := a.shots.CaptureFromPixels(pixels, w, h)
	if err != nil {
		a.log.Error("screenshot failed", zap.Error(err))
		return
	}
	a.log.Info("screenshot saved", zap.String("path", path), zap.Int("width", w), zap.Int("height", h))
}

// Close releases all resources.
func (a *App) Close() {
	a.log.Info("closing")

	if a.audio != nil {
		a.audio.Close()
	}
	if a.scene != nil {
		a.scene.Destroy()
	}
	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}

func windowTitle(fps float64, blades int, paused bool) string {
	title := fmt.Sprintf("%s - %d blades - %.0f fps", Title, blades, fps)
	if paused {
		title += " (paused)"
	}
	return title
}
