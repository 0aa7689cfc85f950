package texture

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 200
	}
	img.SetRGBA(0, 0, color.RGBA{R: 1, G: 2, B: 3, A: 255})

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadTextures(t *testing.T) {
	dir := t.TempDir()
	ground := filepath.Join(dir, "grass.png")
	writePNG(t, ground, 8, 4)

	tests := []struct {
		name                string
		ground, clouds      string
		wantGround, wantSky bool
		wantGroundW         int
	}{
		{"both missing", filepath.Join(dir, "nope.jpg"), filepath.Join(dir, "nope2.jpg"), true, true, FallbackSize},
		{"ground on disk", ground, "", false, true, 8},
		{"empty paths", "", "", true, true, FallbackSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tex := LoadTextures(tt.ground, tt.clouds, 1)
			if tex.GroundGenerated != tt.wantGround {
				t.Errorf("GroundGenerated = %v, want %v", tex.GroundGenerated, tt.wantGround)
			}
			if tex.CloudsGenerated != tt.wantSky {
				t.Errorf("CloudsGenerated = %v, want %v", tex.CloudsGenerated, tt.wantSky)
			}
			if tex.Ground == nil || tex.Clouds == nil {
				t.Fatal("LoadTextures returned nil image")
			}
			if got := tex.Ground.Bounds().Dx(); got != tt.wantGroundW {
				t.Errorf("ground width = %d, want %d", got, tt.wantGroundW)
			}
		})
	}
}

func TestLoadTexturesKeepsPixels(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grass.png")
	writePNG(t, path, 2, 2)

	tex := LoadTextures(path, "", 1)
	if got := tex.Ground.RGBAAt(0, 0); got != (color.RGBA{R: 1, G: 2, B: 3, A: 255}) {
		t.Errorf("pixel = %v", got)
	}
}
