package fractal

import (
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ygrebnov/errorc"

	"github.com/ygrebnov/fractal/metrics"
	"github.com/ygrebnov/fractal/pool"
)

// Frame is the input of one render pass. It is copied by RenderFrame, so the
// caller may change it freely once RenderFrame returns.
type Frame struct {
	Viewport Viewport
	// MaxIter is the iteration cap (> 0).
	MaxIter int
	// Threads is the number of workers (> 0).
	Threads int
	Strategy Strategy
	// TileSize is the tile side for StrategyDynamic; zero selects the renderer default.
	TileSize int
}

// DefaultFrame returns the default viewport and iteration cap with the given thread count.
func DefaultFrame(threads int) Frame {
	return Frame{Viewport: DefaultViewport, MaxIter: DefaultMaxIter, Threads: threads, Strategy: StrategyStatic}
}

// Renderer draws frames onto one Surface.
// Renderer is a concrete struct; RenderFrame may be called from any goroutine,
// but only one pass runs at a time.
type Renderer struct {
	// noCopy prevents accidental copying of the renderer.
	//go:nocopy
	nc noCopy

	config  *config
	surface Surface
	writer  *frameWriter
	pool    pool.Pool[*worker]

	// running is held for the duration of a pass.
	running sync.Mutex

	frames      metrics.Counter
	units       metrics.Counter
	failures    metrics.Counter
	active      metrics.UpDownCounter
	frameTime   metrics.Histogram
	unitSeconds metrics.Histogram
}

// noCopy is a vet-recognized marker to discourage copying types with this field embedded.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// pass is the immutable state shared by the workers of one render pass.
type pass struct {
	frame         Frame
	width, height int
	palette       Palette
	writer        *frameWriter
	batched       bool

	units       metrics.Counter
	failures    metrics.Counter
	active      metrics.UpDownCounter
	unitSeconds metrics.Histogram
}

// New creates a Renderer drawing onto s, configured by opts.
func New(s Surface, opts ...Option) (*Renderer, error) {
	if s == nil {
		return nil, errorc.With(ErrInvalidConfig, errorc.String("surface", "must not be nil"))
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	r := &Renderer{config: &cfg, surface: s}
	r.initialize()
	return r, nil
}

func (r *Renderer) initialize() {
	p := r.config.Metrics
	r.writer = newFrameWriter(r.surface, p)

	if r.config.MaxThreads > 0 {
		r.pool = pool.NewFixed(r.config.MaxThreads, newWorker)
	} else {
		r.pool = pool.NewDynamic(newWorker)
	}

	frame := metrics.WithComponent(metrics.ComponentRenderer)
	work := metrics.WithComponent(metrics.ComponentWorkers)
	r.frames = p.Counter(metrics.FramesRendered, frame, metrics.WithDescription("completed render passes"))
	r.frameTime = p.Histogram(metrics.FrameSeconds, frame, metrics.WithUnit("seconds"))
	r.units = p.Counter(metrics.UnitsRendered, work, metrics.WithDescription("ranges and tiles rendered"))
	r.failures = p.Counter(metrics.WorkerFailures, work, metrics.WithDescription("workers that aborted a pass"))
	r.active = p.UpDownCounter(metrics.WorkersActive, work)
	r.unitSeconds = p.Histogram(metrics.UnitSeconds, work, metrics.WithUnit("seconds"))
}

// RenderFrame draws one complete frame and returns once every worker has finished.
//
// Semantics:
//   - Exactly f.Threads workers run; every pixel is computed once and written once.
//   - Returns ErrRenderInProgress if another pass is running on this renderer.
//   - Returns ErrInvalidFrame for a non-positive cap, thread count or tile size, an
//     empty viewport, or more threads than WithMaxThreads allows.
//   - If a worker panics, the remaining workers stop at their next unit and the
//     error wraps ErrWorkerPanicked; the surface then holds a partial frame that
//     callers should treat as unusable.
func (r *Renderer) RenderFrame(f Frame) error {
	if !r.running.TryLock() {
		return ErrRenderInProgress
	}
	defer r.running.Unlock()

	if f.TileSize == 0 {
		f.TileSize = int(r.config.DefaultTileSize)
	}
	if err := r.validateFrame(f); err != nil {
		return err
	}

	width, height := r.surface.Size()
	p := &pass{
		frame:       f,
		width:       width,
		height:      height,
		palette:     r.config.Palette,
		writer:      r.writer,
		batched:     r.config.BatchedWrites,
		units:       r.units,
		failures:    r.failures,
		active:      r.active,
		unitSeconds: r.unitSeconds,
	}

	start := time.Now()
	d := newDispatcher(p, r.pool)

	units := Partition(width, height, f.Threads, f.Strategy, f.TileSize)
	var err error
	switch f.Strategy {
	case StrategyStatic:
		err = d.runStatic(units)
	case StrategyDynamic:
		tiles := make([]Tile, len(units))
		for i, u := range units {
			tiles[i] = u.(Tile)
		}
		err = d.runDynamic(f.Threads, NewTileQueue(tiles))
	}
	elapsed := time.Since(start)

	log := r.config.Logger.With(
		zap.Stringer("strategy", f.Strategy),
		zap.Int("threads", f.Threads),
		zap.Int("units", len(units)),
		zap.Int("max_iter", f.MaxIter),
		zap.Stringer("viewport", f.Viewport),
		zap.Duration("elapsed", elapsed),
	)
	if err != nil {
		log.Error("render pass aborted", zap.Error(err))
		return err
	}

	r.frames.Add(1)
	r.frameTime.Record(elapsed.Seconds())
	log.Debug("frame rendered")
	return nil
}

func (r *Renderer) validateFrame(f Frame) error {
	switch {
	case f.MaxIter <= 0:
		return errorc.With(ErrInvalidFrame, errorc.String("max iter", strconv.Itoa(f.MaxIter)))
	case f.Threads <= 0:
		return errorc.With(ErrInvalidFrame, errorc.String("threads", strconv.Itoa(f.Threads)))
	case r.config.MaxThreads > 0 && uint(f.Threads) > r.config.MaxThreads:
		return errorc.With(ErrInvalidFrame, errorc.String("threads",
			strconv.Itoa(f.Threads)+" exceeds max "+strconv.FormatUint(uint64(r.config.MaxThreads), 10)))
	case f.TileSize <= 0:
		return errorc.With(ErrInvalidFrame, errorc.String("tile size", strconv.Itoa(f.TileSize)))
	case f.Strategy != StrategyStatic && f.Strategy != StrategyDynamic:
		return errorc.With(ErrInvalidFrame, errorc.String("strategy", f.Strategy.String()))
	case !f.Viewport.valid():
		return errorc.With(ErrInvalidFrame, errorc.String("viewport", f.Viewport.String()))
	}
	return nil
}
