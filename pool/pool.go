package pool

// Pool holds reusable render workers between frames.
type Pool[T any] interface {
	// Get returns a worker from the pool, creating one if allowed.
	Get() T

	// Put returns a worker back to the pool.
	Put(T)
}
