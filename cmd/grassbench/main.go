// Command grassbench generates a grass field without a window and reports
// its size and build time.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/meadow/internal/config"
	"github.com/Faultbox/meadow/internal/grass"
	"github.com/Faultbox/meadow/internal/logger"
)

var flagRuns = flag.Int("runs", 3, "Number of timed builds")

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, *flagRuns); err != nil {
		logger.Error("benchmark failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, runs int) error {
	if runs < 1 {
		return fmt.Errorf("runs must be at least 1, got %d", runs)
	}

	opts := grass.DefaultOptions()
	opts.HeightScale = cfg.Field.HeightScale
	opts.Seed = cfg.Field.Seed

	var (
		field *grass.Field
		total time.Duration
		best  time.Duration
	)
	for i := 0; i < runs; i++ {
		start := time.Now()
		field = grass.BuildFieldWith(cfg.Field.BladeCount, cfg.Field.Size, opts)
		took := time.Since(start)

		total += took
		if i == 0 || took < best {
			best = took
		}
		logger.Debug("build", zap.Int("run", i+1), zap.Duration("took", took))
	}

	if err := field.Validate(); err != nil {
		return fmt.Errorf("generated field is invalid: %w", err)
	}

	logger.Info("grass field",
		zap.Int("blades", field.BladeCount),
		zap.Float32("fieldSize", field.FieldSize),
		zap.Float32("heightScale", opts.HeightScale),
		zap.Uint64("seed", opts.Seed),
		zap.Int("vertices", field.VertexCount()),
		zap.Int("triangles", field.TriangleCount()),
		zap.String("size", formatBytes(field.ByteSize())),
		zap.Float32s("boundsMin", field.Bounds.Min[:]),
		zap.Float32s("boundsMax", field.Bounds.Max[:]),
	)
	logger.Info("build time",
		zap.Int("runs", runs),
		zap.Duration("mean", total/time.Duration(runs)),
		zap.Duration("best", best),
	)

	// A repeated request with the same key must not rebuild.
	cache := grass.NewFieldCache(opts)
	cache.Get(cfg.Field.BladeCount, cfg.Field.Size)
	cache.Get(cfg.Field.BladeCount, cfg.Field.Size)
	if n := cache.Builds(); n != 1 {
		return fmt.Errorf("field cache rebuilt %d times for one key", n)
	}
	return nil
}

func formatBytes(n int) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := int64(n) / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
