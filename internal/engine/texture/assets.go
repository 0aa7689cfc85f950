package texture

import (
	"image"

	"go.uber.org/zap"

	"github.com/Faultbox/meadow/internal/logger"
)

// FallbackSize is the edge length of generated textures.
const FallbackSize = 256

// Textures are the decoded grass material images.
type Textures struct {
	Ground *image.RGBA
	Clouds *image.RGBA

	// Set when the image was generated because the file could not be loaded.
	GroundGenerated bool
	CloudsGenerated bool
}

// LoadTextures decodes the ground and cloud images. Files that are missing
// or unreadable are replaced by generated textures so the scene always has
// something to draw.
func LoadTextures(groundPath, cloudPath string, seed uint64) Textures {
	var t Textures
	t.Ground, t.GroundGenerated = loadOr(groundPath, func() *image.RGBA {
		return GroundFallback(FallbackSize, seed)
	})
	t.Clouds, t.CloudsGenerated = loadOr(cloudPath, func() *image.RGBA {
		return CloudFallback(FallbackSize, seed)
	})
	return t
}

func loadOr(path string, fallback func() *image.RGBA) (*image.RGBA, bool) {
	log := logger.Named("assets")
	if path != "" {
		img, err := LoadFile(path, DefaultMaxSize)
		if err == nil {
			log.Debug("texture loaded",
				zap.String("path", path),
				zap.Int("width", img.Bounds().Dx()),
				zap.Int("height", img.Bounds().Dy()),
			)
			return img, false
		}
		log.Warn("texture unavailable, generating fallback", zap.String("path", path), zap.Error(err))
	}
	return fallback(), true
}
