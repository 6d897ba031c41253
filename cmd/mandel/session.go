package main

import (
	"fmt"
	"io"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/ygrebnov/fractal"
	"github.com/ygrebnov/fractal/metrics"
)

// maxIterLimit bounds the iteration cap reachable with '+'.
const maxIterLimit = 1 << 24

// clearColor fills the surface before every frame.
var clearColor = fractal.Color{B: 255}

// session is the state kept between frames. Only the UI goroutine touches it.
type session struct {
	frame    fractal.Frame
	batched  bool
	surface  *terminalSurface
	renderer *fractal.Renderer
	metrics  *metrics.BasicProvider
	logger   *zap.Logger

	// screen is nil when a single frame is printed to out.
	screen tcell.Screen
	out    io.Writer
}

// rebuild creates a renderer for the current batching mode.
func (s *session) rebuild() error {
	opts := []fractal.Option{
		fractal.WithLogger(s.logger),
		fractal.WithMetrics(s.metrics),
	}
	if s.batched {
		opts = append(opts, fractal.WithBatchedWrites())
	}
	r, err := fractal.New(s.surface, opts...)
	if err != nil {
		return err
	}
	s.renderer = r
	return nil
}

// draw renders the current frame and shows it.
func (s *session) draw() error {
	s.surface.Clear(clearColor)

	start := time.Now()
	if err := s.renderer.RenderFrame(s.frame); err != nil {
		return err
	}
	elapsed := time.Since(start)

	s.logger.Debug("frame",
		zap.Stringer("viewport", s.frame.Viewport),
		zap.Int("max_iter", s.frame.MaxIter),
		zap.Int("threads", s.frame.Threads),
		zap.Stringer("strategy", s.frame.Strategy),
		zap.Bool("batched", s.batched),
		zap.Duration("elapsed", elapsed),
		zap.Int64("lock_acquisitions_total", s.metrics.Counters()[metrics.PlotLockAcquisitions]),
	)

	status := fmt.Sprintf("%s | iter %d | %d x %s | batch %v | %s",
		s.frame.Viewport, s.frame.MaxIter, s.frame.Threads, s.frame.Strategy, s.batched,
		elapsed.Round(time.Millisecond))
	if s.screen == nil {
		return s.surface.writeANSI(s.out, status)
	}
	s.surface.show(s.screen, status)
	return nil
}

// handleEvent applies one terminal event. It reports whether the frame must be
// redrawn and whether the session should end.
func (s *session) handleEvent(ev tcell.Event) (redraw, quit bool, err error) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyRune:
			return s.handleKey(ev.Rune())
		case tcell.KeyCtrlC, tcell.KeyEscape:
			return false, true, nil
		}
	case *tcell.EventMouse:
		if ev.Buttons()&(tcell.Button1|tcell.Button2|tcell.Button3) == 0 {
			return false, false, nil
		}
		col, row := ev.Position()
		return s.handleClick(col, row), false, nil
	case *tcell.EventResize:
		if s.screen != nil {
			s.screen.Sync()
		}
		return true, false, nil
	}
	return false, false, nil
}

// handleKey applies one key press.
func (s *session) handleKey(k rune) (redraw, quit bool, err error) {
	f := &s.frame
	switch k {
	case 'i':
		f.Viewport = f.Viewport.ZoomIn()
	case 'o':
		f.Viewport = f.Viewport.ZoomOut()
	case 'w':
		f.Viewport = f.Viewport.PanUp()
	case 's':
		f.Viewport = f.Viewport.PanDown()
	case 'a':
		f.Viewport = f.Viewport.PanLeft()
	case 'd':
		f.Viewport = f.Viewport.PanRight()
	case '+', '=':
		f.MaxIter = min(f.MaxIter*2, maxIterLimit)
	case '-':
		f.MaxIter = max(1, f.MaxIter/2)
	case 'x':
		f.Viewport = fractal.DefaultViewport
		f.MaxIter = fractal.DefaultMaxIter
	case '1', '2', '3', '4', '5', '6', '7', '8':
		f.Threads = int(k - '0')
	case 't':
		if f.Strategy == fractal.StrategyStatic {
			f.Strategy = fractal.StrategyDynamic
		} else {
			f.Strategy = fractal.StrategyStatic
		}
	case 'b':
		s.batched = !s.batched
		if err := s.rebuild(); err != nil {
			return false, false, err
		}
	case 'q':
		return false, true, nil
	default:
		return false, false, nil
	}
	s.logger.Debug("key", zap.String("key", string(k)), zap.Stringer("viewport", f.Viewport))
	return true, false, nil
}

// handleClick recenters the viewport on the pixel under text cell (col, row).
// Clicks outside the image are ignored.
func (s *session) handleClick(col, row int) bool {
	w, h := s.surface.Size()
	px, py := col, 2*row
	if px < 0 || py < 0 || px >= w || py >= h {
		return false
	}
	s.frame.Viewport = s.frame.Viewport.Recenter(px, py, w, h)
	s.logger.Debug("click", zap.Int("x", px), zap.Int("y", py), zap.Stringer("viewport", s.frame.Viewport))
	return true
}

// loop draws the first frame and then redraws after every event that changes it.
// It returns when the user quits or the screen is finalized.
func (s *session) loop() error {
	if err := s.draw(); err != nil {
		return err
	}
	for {
		ev := s.screen.PollEvent()
		if ev == nil {
			return nil
		}
		redraw, quit, err := s.handleEvent(ev)
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
		if redraw {
			if err := s.draw(); err != nil {
				return err
			}
		}
	}
}
