package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Faultbox/meadow/internal/grass"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Graphics.Width != 1280 || cfg.Graphics.Height != 720 {
		t.Errorf("expected 1280x720, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
	}
	if cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if !cfg.Graphics.VSync {
		t.Error("expected vsync to be true by default")
	}

	if cfg.Field.BladeCount != 400000 {
		t.Errorf("expected 400000 blades, got %d", cfg.Field.BladeCount)
	}
	if cfg.Field.Size != 30 {
		t.Errorf("expected field size 30, got %v", cfg.Field.Size)
	}
	if cfg.Field.HeightScale != 0.8 {
		t.Errorf("expected height scale 0.8, got %v", cfg.Field.HeightScale)
	}

	if cfg.Camera.Position != [3]float32{-7, 3, 7} {
		t.Errorf("expected camera at (-7, 3, 7), got %v", cfg.Camera.Position)
	}

	if !cfg.Audio.Enabled || cfg.Audio.Volume != 0.4 {
		t.Errorf("expected audio enabled at 0.4, got %+v", cfg.Audio)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero blades", func(c *Config) { c.Field.BladeCount = 0 }},
		{"too many blades", func(c *Config) { c.Field.BladeCount = grass.MaxBladeCount + 1 }},
		{"negative size", func(c *Config) { c.Field.Size = -1 }},
		{"zero height scale", func(c *Config) { c.Field.HeightScale = 0 }},
		{"zero width", func(c *Config) { c.Graphics.Width = 0 }},
		{"fov too wide", func(c *Config) { c.Graphics.FOV = 180 }},
		{"loud volume", func(c *Config) { c.Audio.Volume = 1.5 }},
		{"huge screenshot scale", func(c *Config) { c.Debug.ScreenshotScale = 16 }},
		{"inverted distances", func(c *Config) { c.Camera.MinDistance, c.Camera.MaxDistance = 10, 5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "meadow.yaml")

	yamlContent := `
graphics:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false

field:
  blade_count: 50000
  size: 12.5
  height_scale: 1.2
  seed: 42

camera:
  position: [1, 2, 3]

assets:
  grass_texture: "assets/ground.png"

audio:
  volume: 0.25

logging:
  level: "debug"
  log_file: "meadow.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 1920 || cfg.Graphics.Height != 1080 {
		t.Errorf("expected 1920x1080, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
	}
	if !cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Graphics.VSync {
		t.Error("expected vsync to be false")
	}

	if cfg.Field.BladeCount != 50000 {
		t.Errorf("expected 50000 blades, got %d", cfg.Field.BladeCount)
	}
	if cfg.Field.Size != 12.5 {
		t.Errorf("expected size 12.5, got %v", cfg.Field.Size)
	}
	if cfg.Field.HeightScale != 1.2 {
		t.Errorf("expected height scale 1.2, got %v", cfg.Field.HeightScale)
	}
	if cfg.Field.Seed != 42 {
		t.Errorf("expected seed 42, got %d", cfg.Field.Seed)
	}

	if cfg.Camera.Position != [3]float32{1, 2, 3} {
		t.Errorf("expected camera (1, 2, 3), got %v", cfg.Camera.Position)
	}
	// Keys absent from the file keep their defaults.
	if cfg.Camera.MaxDistance != 60 {
		t.Errorf("expected default max distance 60, got %v", cfg.Camera.MaxDistance)
	}
	if cfg.Assets.CloudTexture != "textures/grass/cloud.jpg" {
		t.Errorf("expected default cloud texture, got %s", cfg.Assets.CloudTexture)
	}

	if cfg.Audio.Volume != 0.25 || !cfg.Audio.Enabled {
		t.Errorf("expected enabled audio at 0.25, got %+v", cfg.Audio)
	}

	if cfg.Assets.GrassTexture != "assets/ground.png" {
		t.Errorf("expected grass texture assets/ground.png, got %s", cfg.Assets.GrassTexture)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "meadow.log" {
		t.Errorf("expected log file 'meadow.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad syntax", "graphics:\n  width: not a number\n  invalid syntax here\n"},
		{"unknown key", "field:\n  blade_cont: 10\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "invalid.yaml")
			if err := os.WriteFile(configPath, []byte(tt.content), 0644); err != nil {
				t.Fatalf("failed to write test config: %v", err)
			}
			if err := loadFromFile(Default(), configPath); err == nil {
				t.Error("expected error loading invalid YAML, got nil")
			}
		})
	}
}

func TestLoadFromFileEmpty(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "empty.yaml")
	if err := os.WriteFile(configPath, nil, 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("empty file should load: %v", err)
	}
	if cfg.Field.BladeCount != 400000 {
		t.Errorf("empty file changed blade count to %d", cfg.Field.BladeCount)
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/meadow.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Chdir(t.TempDir())

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	if err := os.WriteFile("meadow.yaml", []byte("field:\n  size: 10\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}
	if path := findConfigFile(); path == "" {
		t.Error("expected to find meadow.yaml in current directory")
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "meadow.yaml")

	cfg := Default()
	cfg.Field.BladeCount = 1234
	cfg.Camera.Position = [3]float32{4, 5, 6}
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("loading saved config: %v", err)
	}
	if loaded.Field.BladeCount != 1234 || loaded.Camera.Position != [3]float32{4, 5, 6} {
		t.Errorf("saved values not restored: %+v", loaded.Field)
	}
}

func TestSaveToRejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "meadow.yaml")

	cfg := Default()
	cfg.Field.BladeCount = 0
	if err := cfg.SaveTo(path); err == nil {
		t.Fatal("expected SaveTo to reject an invalid config")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("invalid config was written: %v", err)
	}
}

func TestSaveToLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "meadow.yaml")

	cfg := Default()
	for range 2 {
		if err := cfg.SaveTo(path); err != nil {
			t.Fatalf("SaveTo: %v", err)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "meadow.yaml" {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("directory contents = %v, want only meadow.yaml", names)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "# meadow configuration") {
		t.Errorf("saved file lacks header: %q", string(data[:min(len(data), 40)]))
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name: "field flags",
			setup: func() {
				*flagBlades = 1000
				*flagSize = 8
				*flagHeightScale = 1.5
				*flagSeed = 77
			},
			verify: func(cfg *Config) {
				if cfg.Field.BladeCount != 1000 {
					t.Errorf("expected 1000 blades, got %d", cfg.Field.BladeCount)
				}
				if cfg.Field.Size != 8 {
					t.Errorf("expected size 8, got %v", cfg.Field.Size)
				}
				if cfg.Field.HeightScale != 1.5 {
					t.Errorf("expected height scale 1.5, got %v", cfg.Field.HeightScale)
				}
				if cfg.Field.Seed != 77 {
					t.Errorf("expected seed 77, got %d", cfg.Field.Seed)
				}
			},
			teardown: func() {
				*flagBlades = 0
				*flagSize = 0
				*flagHeightScale = 0
				*flagSeed = 0
			},
		},
		{
			name:  "mute flag",
			setup: func() { *flagMute = true },
			verify: func(cfg *Config) {
				if cfg.Audio.Enabled {
					t.Error("expected audio disabled with mute flag")
				}
			},
			teardown: func() { *flagMute = false },
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(cfg *Config) {
				if !cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(cfg *Config) {
				if cfg.Graphics.Width != 2560 || cfg.Graphics.Height != 1440 {
					t.Errorf("expected 2560x1440, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "meadow.yaml")
	yamlContent := `
field:
  blade_count: 2000
  size: 20
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagBlades = 5000
	defer func() {
		*flagConfig = ""
		*flagBlades = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Field.BladeCount != 5000 {
		t.Errorf("expected 5000 blades from flag, got %d", cfg.Field.BladeCount)
	}
	if cfg.Field.Size != 20 {
		t.Errorf("expected size 20 from file, got %v", cfg.Field.Size)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "meadow.yaml")
	if err := os.WriteFile(configPath, []byte("field:\n  size: -3\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); err == nil {
		t.Error("expected Load to reject negative field size")
	}
}
