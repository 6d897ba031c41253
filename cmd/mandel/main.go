// Command mandel explores the Mandelbrot set in a truecolor terminal.
//
// Keys: i/o zoom, w/a/s/d pan, +/- double or halve the iteration cap, x reset,
// 1-8 worker count, t toggle static/dynamic scheduling, b toggle batched writes, q quit.
// A mouse click recenters the view on the clicked point.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/automaxprocs/maxprocs"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"

	"github.com/ygrebnov/fractal"
	"github.com/ygrebnov/fractal/metrics"
)

type options struct {
	width, height int
	threads       int
	maxIter       int
	strategy      string
	tileSize      int
	batched       bool
	once          bool
	logLevel      string
	logFile       string
}

func parseFlags() options {
	var o options
	flag.IntVar(&o.width, "width", 0, "grid width in pixels (default: terminal width)")
	flag.IntVar(&o.height, "height", 0, "grid height in pixels (default: twice the terminal height)")
	flag.IntVar(&o.threads, "threads", 0, "number of render workers (default: GOMAXPROCS)")
	flag.IntVar(&o.maxIter, "maxiter", fractal.DefaultMaxIter, "iteration cap")
	flag.StringVar(&o.strategy, "strategy", "static", "scheduling strategy: static or dynamic")
	flag.IntVar(&o.tileSize, "tile", fractal.DefaultTileSize, "tile side for the dynamic strategy")
	flag.BoolVar(&o.batched, "batch", false, "write each work unit under one lock acquisition")
	flag.BoolVar(&o.once, "once", false, "render a single frame to stdout and exit")
	flag.StringVar(&o.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	flag.StringVar(&o.logFile, "log-file", "stderr", "log destination path")
	flag.Parse()
	return o
}

func newLogger(o options) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(o.logLevel)
	if err != nil {
		return nil, err
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.OutputPaths = []string{o.logFile}
	cfg.ErrorOutputPaths = []string{o.logFile}
	return cfg.Build()
}

func main() {
	o := parseFlags()

	logger, err := newLogger(o)
	if err != nil {
		fmt.Fprintf(os.Stderr, "mandel: %v\n", err)
		os.Exit(2)
	}
	defer func() { _ = logger.Sync() }()

	undo, err := maxprocs.Set(maxprocs.Logger(logger.Sugar().Debugf))
	defer undo()
	if err != nil {
		logger.Warn("failed to set GOMAXPROCS", zap.Error(err))
	}

	if err := run(o, logger); err != nil {
		logger.Fatal("mandel failed", zap.Error(err))
	}
}

func run(o options, logger *zap.Logger) error {
	strategy, err := fractal.ParseStrategy(o.strategy)
	if err != nil {
		return err
	}
	if o.threads <= 0 {
		o.threads = runtime.GOMAXPROCS(0)
	}

	s := &session{
		frame: fractal.Frame{
			Viewport: fractal.DefaultViewport,
			MaxIter:  o.maxIter,
			Threads:  o.threads,
			Strategy: strategy,
			TileSize: o.tileSize,
		},
		batched: o.batched,
		metrics: metrics.NewBasicProvider(),
		logger:  logger,
		out:     os.Stdout,
	}

	if o.once {
		cols, rows, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil {
			cols, rows = 80, 24
		}
		s.surface = newTerminalSurface(gridSize(o, cols, rows))
		if err := s.rebuild(); err != nil {
			return err
		}
		return s.draw()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse(tcell.MouseButtonEvents)
	screen.HideCursor()

	cols, rows := screen.Size()
	s.screen = screen
	s.surface = newTerminalSurface(gridSize(o, cols, rows))
	if err := s.rebuild(); err != nil {
		return err
	}
	return s.loop()
}

// gridSize returns the pixel grid for a terminal of cols×rows cells unless the
// flags fix it. Each cell holds two pixels; the last line holds the status bar.
func gridSize(o options, cols, rows int) (int, int) {
	width, height := o.width, o.height
	if width <= 0 {
		width = cols
	}
	if height <= 0 {
		height = 2 * max(rows-1, 1)
	}
	return width, height
}
