package pool

import "sync"

type dynamic[T any] struct {
	p sync.Pool
}

// NewDynamic returns an unbounded pool backed by sync.Pool.
// Idle workers may be dropped by the garbage collector and recreated with newFn.
func NewDynamic[T any](newFn func() T) Pool[T] {
	d := &dynamic[T]{}
	d.p.New = func() any { return newFn() }
	return d
}

func (d *dynamic[T]) Get() T { return d.p.Get().(T) }

func (d *dynamic[T]) Put(el T) { d.p.Put(el) }
