package pool

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type scratch struct{ id int }

func TestFixedPool_TableDriven(t *testing.T) {
	tests := []struct {
		name     string
		capacity uint
		setup    func(t *testing.T, p *fixed[*scratch])
		run      func(t *testing.T, p *fixed[*scratch])
		// expected number of newFn calls
		wantMin, wantMax int32
	}{
		{
			name:     "Get creates up to capacity; then blocks until Put",
			capacity: 2,
			run: func(t *testing.T, p *fixed[*scratch]) {
				w1 := p.Get()
				w2 := p.Get()
				require.NotSame(t, w1, w2)

				gotCh := make(chan *scratch, 1)
				go func() { gotCh <- p.Get() }()

				select {
				case <-gotCh:
					t.Fatalf("third Get should block until Put; returned early")
				case <-time.After(100 * time.Millisecond):
				}

				p.Put(w1)

				select {
				case got := <-gotCh:
					require.Same(t, w1, got)
				case <-time.After(time.Second):
					t.Fatalf("blocked Get did not resume after Put")
				}
			},
			wantMin: 2, wantMax: 2,
		},
		{
			name:     "Get reuses an available worker before creating",
			capacity: 3,
			setup: func(_ *testing.T, p *fixed[*scratch]) {
				p.available <- &scratch{id: 42}
			},
			run: func(t *testing.T, p *fixed[*scratch]) {
				require.Equal(t, 42, p.Get().id)
			},
			wantMin: 0, wantMax: 0,
		},
		{
			name:     "Put then Get returns the same instance",
			capacity: 1,
			run: func(t *testing.T, p *fixed[*scratch]) {
				w := p.Get()
				p.Put(w)
				require.Same(t, w, p.Get())
			},
			wantMin: 1, wantMax: 1,
		},
		{
			name:     "concurrent Get/Put never exceeds capacity",
			capacity: 5,
			run: func(t *testing.T, p *fixed[*scratch]) {
				const goroutines = 20
				var wg sync.WaitGroup
				wg.Add(goroutines)
				for range goroutines {
					go func() {
						defer wg.Done()
						w := p.Get()
						time.Sleep(2 * time.Millisecond)
						p.Put(w)
					}()
				}
				wg.Wait()
				require.LessOrEqual(t, p.created(), 5)
			},
			wantMin: 1, wantMax: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var counter int32
			newFn := func() *scratch {
				return &scratch{id: int(atomic.AddInt32(&counter, 1))}
			}
			p := NewFixed(tt.capacity, newFn).(*fixed[*scratch])

			if tt.setup != nil {
				tt.setup(t, p)
			}
			tt.run(t, p)

			got := atomic.LoadInt32(&counter)
			require.GreaterOrEqual(t, got, tt.wantMin)
			require.LessOrEqual(t, got, tt.wantMax)
		})
	}
}

func TestDynamicPool_GetPut(t *testing.T) {
	var created int32
	p := NewDynamic(func() *scratch {
		return &scratch{id: int(atomic.AddInt32(&created, 1))}
	})

	w := p.Get()
	require.NotNil(t, w)
	p.Put(w)
	require.NotNil(t, p.Get())
	require.GreaterOrEqual(t, atomic.LoadInt32(&created), int32(1))
}
