package pool

import "sync"

// fixed never creates more than capacity workers. Once that many exist,
// Get blocks until a worker is Put back.
type fixed[T any] struct {
	mu       sync.Mutex
	n        int
	capacity int

	available chan T
	newFn     func() T
}

// NewFixed returns a pool that creates at most capacity workers.
func NewFixed[T any](capacity uint, newFn func() T) Pool[T] {
	return &fixed[T]{
		capacity:  int(capacity),
		available: make(chan T, capacity),
		newFn:     newFn,
	}
}

func (p *fixed[T]) Get() T {
	select {
	case el := <-p.available:
		return el
	default:
	}

	p.mu.Lock()
	if p.n < p.capacity {
		p.n++
		p.mu.Unlock()
		return p.newFn()
	}
	p.mu.Unlock()

	return <-p.available
}

func (p *fixed[T]) Put(el T) {
	p.available <- el
}

// created returns how many workers the pool has built so far.
func (p *fixed[T]) created() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.n
}
