package grass

import (
	"go.uber.org/zap"

	"github.com/Faultbox/meadow/internal/logger"
)

// FieldKey identifies a field configuration. Only a change of key triggers a rebuild.
type FieldKey struct {
	BladeCount int
	FieldSize  float32
}

// FieldCache memoises the most recent field. Generation is the only expensive
// step in the program, so callers ask the cache every time they need geometry
// and pay for a rebuild only when the blade count or field size changes.
//
// A FieldCache is not safe for concurrent use.
type FieldCache struct {
	opts   Options
	key    FieldKey
	field  *Field
	builds int
}

// NewFieldCache returns an empty cache that builds with opts.
func NewFieldCache(opts Options) *FieldCache {
	return &FieldCache{opts: opts}
}

// Get returns the field for (bladeCount, fieldSize), building it on a miss.
func (c *FieldCache) Get(bladeCount int, fieldSize float32) *Field {
	key := FieldKey{BladeCount: bladeCount, FieldSize: fieldSize}
	if c.field != nil && c.key == key {
		return c.field
	}

	log := logger.Named("grass")
	log.Debug("building grass field",
		zap.Int("blades", bladeCount),
		zap.Float32("fieldSize", fieldSize),
		zap.Float32("heightScale", c.opts.HeightScale),
	)
	done := logger.Timed("grass field built",
		zap.Int("blades", bladeCount),
		zap.Int("vertices", bladeCount*BladeVertexCount),
		zap.Int("indices", bladeCount*BladeIndexCount),
	)
	c.field = BuildFieldWith(bladeCount, fieldSize, c.opts)
	done()

	c.key = key
	c.builds++
	return c.field
}

// Key returns the key of the cached field and whether one is cached.
func (c *FieldCache) Key() (FieldKey, bool) {
	return c.key, c.field != nil
}

// Builds reports how many times the cache has generated a field.
func (c *FieldCache) Builds() int {
	return c.builds
}
