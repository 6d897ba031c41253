package fractal

import (
	"fmt"
	"time"
)

// batchCap bounds how many pixels a worker buffers before flushing a batch.
const batchCap = 4096

// worker renders work units. Workers are recycled between frames through a
// pool.Pool so their batch buffers are allocated once.
type worker struct {
	batch []pixel
}

func newWorker() *worker {
	return &worker{batch: make([]pixel, 0, batchCap)}
}

// render computes and writes every pixel of unit.
func (w *worker) render(p *pass, unit WorkUnit) {
	start := time.Now()
	x0, y0, x1, y1 := unit.Bounds(p.width)
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			x, y := p.frame.Viewport.PixelToPlane(px, py, p.width, p.height)
			c := p.palette(Evaluate(x, y, p.frame.MaxIter), p.frame.MaxIter)

			if !p.batched {
				p.writer.write(px, py, c)
				continue
			}
			w.batch = append(w.batch, pixel{x: px, y: py, c: c})
			if len(w.batch) == cap(w.batch) {
				w.flush(p)
			}
		}
	}
	w.flush(p)
	p.units.Add(1)
	p.unitSeconds.Record(time.Since(start).Seconds())
}

func (w *worker) flush(p *pass) {
	p.writer.writeBatch(w.batch)
	w.batch = w.batch[:0]
}

// safeRender renders unit and converts a panic into a tagged ErrWorkerPanicked.
func (w *worker) safeRender(p *pass, id int, unit WorkUnit) (err error) {
	defer func() {
		if r := recover(); r != nil {
			w.batch = w.batch[:0]
			err = newWorkerError(fmt.Errorf("%w: %v", ErrWorkerPanicked, r), id, unit)
		}
	}()
	w.render(p, unit)
	return nil
}
