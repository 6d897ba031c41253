package fractal

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/ygrebnov/fractal/pool"
)

// unitSource yields the next unit for a worker; false means the worker is done.
type unitSource func() (WorkUnit, bool)

// dispatcher launches the workers of one pass and joins them.
// If any worker fails, the others stop before taking their next unit and
// the first failure is returned.
type dispatcher struct {
	pass *pass
	pool pool.Pool[*worker]
}

func newDispatcher(p *pass, wp pool.Pool[*worker]) *dispatcher {
	return &dispatcher{pass: p, pool: wp}
}

// runStatic starts one worker per unit; each worker renders only its own unit.
func (d *dispatcher) runStatic(units []WorkUnit) error {
	g, ctx := errgroup.WithContext(context.Background())
	for i, u := range units {
		g.Go(func() error {
			done := false
			return d.runWorker(ctx, i, func() (WorkUnit, bool) {
				if done {
					return nil, false
				}
				done = true
				return u, true
			})
		})
	}
	return g.Wait()
}

// runDynamic starts n workers that claim tiles from q until it is empty.
func (d *dispatcher) runDynamic(n int, q *TileQueue) error {
	g, ctx := errgroup.WithContext(context.Background())
	for i := range n {
		g.Go(func() error {
			return d.runWorker(ctx, i, func() (WorkUnit, bool) {
				t, ok := q.ClaimNext()
				if !ok {
					return nil, false
				}
				return t, true
			})
		})
	}
	return g.Wait()
}

func (d *dispatcher) runWorker(ctx context.Context, id int, next unitSource) error {
	w := d.pool.Get()
	defer d.pool.Put(w)

	d.pass.active.Add(1)
	defer d.pass.active.Add(-1)

	for ctx.Err() == nil {
		unit, ok := next()
		if !ok {
			return nil
		}
		if err := w.safeRender(d.pass, id, unit); err != nil {
			d.pass.failures.Add(1)
			return err
		}
	}
	return nil
}
