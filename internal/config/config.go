// Package config handles meadow configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"math"

	"github.com/Faultbox/meadow/internal/grass"
)

// Config holds all settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Field    FieldConfig    `yaml:"field"`
	Camera   CameraConfig   `yaml:"camera"`
	Assets   AssetsConfig   `yaml:"assets"`
	Audio    AudioConfig    `yaml:"audio"`
	Logging  LoggingConfig  `yaml:"logging"`
	Debug    DebugConfig    `yaml:"debug"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	Fullscreen bool    `yaml:"fullscreen"`
	VSync      bool    `yaml:"vsync"`
	FOV        float32 `yaml:"fov"` // vertical, degrees
	MSAA       int     `yaml:"msaa"`
}

// FieldConfig describes the grass field geometry.
type FieldConfig struct {
	BladeCount  int     `yaml:"blade_count"`
	Size        float32 `yaml:"size"` // disk diameter
	HeightScale float32 `yaml:"height_scale"`
	Seed        uint64  `yaml:"seed"`
}

// CameraConfig holds the initial camera placement and orbit limits.
type CameraConfig struct {
	Position    [3]float32 `yaml:"position"`
	Target      [3]float32 `yaml:"target"`
	MinDistance float32    `yaml:"min_distance"`
	MaxDistance float32    `yaml:"max_distance"`
}

// AssetsConfig holds texture paths. Missing files fall back to generated textures.
type AssetsConfig struct {
	GrassTexture string `yaml:"grass_texture"`
	CloudTexture string `yaml:"cloud_texture"`
}

// AudioConfig holds ambient sound settings.
type AudioConfig struct {
	Enabled   bool    `yaml:"enabled"`
	Volume    float64 `yaml:"volume"`
	WindSound string  `yaml:"wind_sound"` // WAV loop; empty generates wind
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// DebugConfig holds developer settings.
type DebugConfig struct {
	ShowFPS         bool    `yaml:"show_fps"`
	ShowBounds      bool    `yaml:"show_bounds"`
	ScreenshotDir   string  `yaml:"screenshot_dir"`
	ScreenshotScale float32 `yaml:"screenshot_scale"` // relative to the window size
}

// Default returns a Config with the reference scene values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FOV:        75,
			MSAA:       4,
		},
		Field: FieldConfig{
			BladeCount:  400000,
			Size:        30,
			HeightScale: 0.8,
			Seed:        1,
		},
		Camera: CameraConfig{
			Position:    [3]float32{-7, 3, 7},
			Target:      [3]float32{0, 0, 0},
			MinDistance: 1,
			MaxDistance: 60,
		},
		Assets: AssetsConfig{
			GrassTexture: "textures/grass/grass.jpg",
			CloudTexture: "textures/grass/cloud.jpg",
		},
		Audio: AudioConfig{
			Enabled:   true,
			Volume:    0.4,
			WindSound: "",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
		Debug: DebugConfig{
			ShowFPS:         true,
			ShowBounds:      false,
			ScreenshotDir:   "screenshots",
			ScreenshotScale: 1,
		},
	}
}

// Validate reports settings the program cannot run with.
func (c *Config) Validate() error {
	var errs []error

	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		errs = append(errs, fmt.Errorf("graphics: window size %dx%d must be positive", c.Graphics.Width, c.Graphics.Height))
	}
	if c.Graphics.FOV <= 0 || c.Graphics.FOV >= 180 {
		errs = append(errs, fmt.Errorf("graphics: fov %v must be in (0, 180)", c.Graphics.FOV))
	}
	if c.Field.BladeCount <= 0 || c.Field.BladeCount > grass.MaxBladeCount {
		errs = append(errs, fmt.Errorf("field: blade_count %d must be in 1..%d", c.Field.BladeCount, grass.MaxBladeCount))
	}
	if !positiveFinite(c.Field.Size) {
		errs = append(errs, fmt.Errorf("field: size %v must be finite and positive", c.Field.Size))
	}
	if !positiveFinite(c.Field.HeightScale) {
		errs = append(errs, fmt.Errorf("field: height_scale %v must be finite and positive", c.Field.HeightScale))
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		errs = append(errs, fmt.Errorf("audio: volume %v must be in [0, 1]", c.Audio.Volume))
	}
	if c.Debug.ScreenshotScale <= 0 || c.Debug.ScreenshotScale > 8 {
		errs = append(errs, fmt.Errorf("debug: screenshot_scale %v must be in (0, 8]", c.Debug.ScreenshotScale))
	}
	if c.Camera.MinDistance <= 0 || c.Camera.MaxDistance < c.Camera.MinDistance {
		errs = append(errs, fmt.Errorf("camera: distance range [%v, %v] is invalid", c.Camera.MinDistance, c.Camera.MaxDistance))
	}

	return errors.Join(errs...)
}

func positiveFinite(f float32) bool {
	return f > 0 && !math.IsInf(float64(f), 0)
}
