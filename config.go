package fractal

import (
	"go.uber.org/zap"

	"github.com/ygrebnov/errorc"

	"github.com/ygrebnov/fractal/metrics"
)

// config holds Renderer configuration.
type config struct {
	// Palette maps iteration counts to colors.
	// Default: DefaultPalette
	Palette Palette

	// Logger receives per-frame diagnostics.
	// Default: zap.NewNop()
	Logger *zap.Logger

	// Metrics records render instruments.
	// Default: metrics.NewNoopProvider()
	Metrics metrics.Provider

	// BatchedWrites makes a worker write a whole batch of pixels under one lock
	// acquisition instead of locking once per pixel. Output is identical.
	// Default: false
	BatchedWrites bool

	// MaxThreads caps the number of workers a frame may request.
	// Zero means no cap; worker objects are then recycled through sync.Pool.
	// Default: 0
	MaxThreads uint

	// DefaultTileSize is used by frames that leave TileSize at zero.
	// Default: 20
	DefaultTileSize uint
}

// defaultConfig centralizes default values for config.
func defaultConfig() config {
	return config{
		Palette:         DefaultPalette,
		Logger:          zap.NewNop(),
		Metrics:         metrics.NewNoopProvider(),
		BatchedWrites:   false,
		MaxThreads:      0,
		DefaultTileSize: DefaultTileSize,
	}
}

// validateConfig checks the invariants options cannot enforce one at a time.
func validateConfig(cfg *config) error {
	if cfg.Palette == nil {
		return errorc.With(ErrInvalidConfig, errorc.String("palette", "must not be nil"))
	}
	if cfg.Logger == nil {
		return errorc.With(ErrInvalidConfig, errorc.String("logger", "must not be nil"))
	}
	if cfg.Metrics == nil {
		return errorc.With(ErrInvalidConfig, errorc.String("metrics", "must not be nil"))
	}
	if cfg.DefaultTileSize == 0 {
		return errorc.With(ErrInvalidConfig, errorc.String("tile size", "must be > 0"))
	}
	return nil
}

// Option configures a Renderer. Use New(surface, opts...) to construct one.
type Option func(*config) error

// WithPalette sets the iteration-count to color mapping.
func WithPalette(p Palette) Option {
	return func(cfg *config) error {
		if p == nil {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithPalette requires a non-nil palette"))
		}
		cfg.Palette = p
		return nil
	}
}

// WithLogger sets the logger used for frame diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(cfg *config) error {
		if l == nil {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithLogger requires a non-nil logger"))
		}
		cfg.Logger = l
		return nil
	}
}

// WithMetrics sets the metrics provider.
func WithMetrics(p metrics.Provider) Option {
	return func(cfg *config) error {
		if p == nil {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithMetrics requires a non-nil provider"))
		}
		cfg.Metrics = p
		return nil
	}
}

// WithBatchedWrites makes workers hold the surface lock once per batch of pixels.
func WithBatchedWrites() Option {
	return func(cfg *config) error { cfg.BatchedWrites = true; return nil }
}

// WithMaxThreads caps the number of workers per frame (must be > 0).
// Frames requesting more fail with ErrInvalidFrame.
func WithMaxThreads(n uint) Option {
	return func(cfg *config) error {
		if n == 0 {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithMaxThreads requires n > 0"))
		}
		cfg.MaxThreads = n
		return nil
	}
}

// WithDefaultTileSize sets the tile side used when a frame does not specify one (must be > 0).
func WithDefaultTileSize(n uint) Option {
	return func(cfg *config) error {
		if n == 0 {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithDefaultTileSize requires n > 0"))
		}
		cfg.DefaultTileSize = n
		return nil
	}
}
