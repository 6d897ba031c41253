package metrics

import (
	"slices"
	"sync"
	"sync/atomic"
)

// BasicProvider keeps every instrument in memory so a caller can read the
// renderer's numbers between frames. Instruments are created on first use of a
// name; later calls with the same name return the same instrument and ignore opts.
type BasicProvider struct {
	mu         sync.RWMutex
	counters   map[string]*BasicCounter
	updowns    map[string]*BasicUpDownCounter
	histograms map[string]*BasicHistogram
	meta       map[string]InstrumentConfig
}

// NewBasicProvider constructs an empty BasicProvider.
func NewBasicProvider() *BasicProvider {
	return &BasicProvider{
		counters:   make(map[string]*BasicCounter),
		updowns:    make(map[string]*BasicUpDownCounter),
		histograms: make(map[string]*BasicHistogram),
		meta:       make(map[string]InstrumentConfig),
	}
}

// instrument returns m[name], creating it with newFn under the write lock.
func instrument[T any](p *BasicProvider, m map[string]T, name string, opts []InstrumentOption, newFn func() T) T {
	p.mu.RLock()
	v, ok := m[name]
	p.mu.RUnlock()
	if ok {
		return v
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if v, ok = m[name]; ok {
		return v
	}
	p.meta[name] = newInstrumentConfig(opts)
	v = newFn()
	m[name] = v
	return v
}

func (p *BasicProvider) Counter(name string, opts ...InstrumentOption) Counter {
	return instrument(p, p.counters, name, opts, func() *BasicCounter { return &BasicCounter{} })
}

func (p *BasicProvider) UpDownCounter(name string, opts ...InstrumentOption) UpDownCounter {
	return instrument(p, p.updowns, name, opts, func() *BasicUpDownCounter { return &BasicUpDownCounter{} })
}

func (p *BasicProvider) Histogram(name string, opts ...InstrumentOption) Histogram {
	return instrument(p, p.histograms, name, opts, func() *BasicHistogram { return &BasicHistogram{} })
}

// BasicCounter is an atomic counter.
type BasicCounter struct {
	val atomic.Int64
}

func (c *BasicCounter) Add(n int64) { c.val.Add(n) }

// Snapshot returns the current value.
func (c *BasicCounter) Snapshot() int64 { return c.val.Load() }

// BasicUpDownCounter is an atomic level.
type BasicUpDownCounter struct {
	val atomic.Int64
}

func (u *BasicUpDownCounter) Add(n int64) { u.val.Add(n) }

// Snapshot returns the current value.
func (u *BasicUpDownCounter) Snapshot() int64 { return u.val.Load() }

// HistSnapshot summarizes the values recorded into a BasicHistogram.
type HistSnapshot struct {
	Count int64
	Sum   float64
	Min   float64
	Max   float64
	Mean  float64
}

// BasicHistogram keeps count, sum, min and max. It has no buckets.
type BasicHistogram struct {
	mu sync.Mutex
	s  HistSnapshot
}

func (h *BasicHistogram) Record(v float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.s.Count == 0 || v < h.s.Min {
		h.s.Min = v
	}
	if h.s.Count == 0 || v > h.s.Max {
		h.s.Max = v
	}
	h.s.Count++
	h.s.Sum += v
}

// Snapshot returns the summary so far.
func (h *BasicHistogram) Snapshot() HistSnapshot {
	h.mu.Lock()
	s := h.s
	h.mu.Unlock()
	if s.Count > 0 {
		s.Mean = s.Sum / float64(s.Count)
	}
	return s
}

// Counters returns the current value of every counter and up/down counter, keyed by name.
func (p *BasicProvider) Counters() map[string]int64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make(map[string]int64, len(p.counters)+len(p.updowns))
	for name, c := range p.counters {
		out[name] = c.Snapshot()
	}
	for name, u := range p.updowns {
		out[name] = u.Snapshot()
	}
	return out
}

// Histograms returns a snapshot of every histogram, keyed by name.
func (p *BasicProvider) Histograms() map[string]HistSnapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make(map[string]HistSnapshot, len(p.histograms))
	for name, h := range p.histograms {
		out[name] = h.Snapshot()
	}
	return out
}

// Names returns the sorted names of all instruments created so far.
func (p *BasicProvider) Names() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	names := make([]string, 0, len(p.meta))
	for name := range p.meta {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Describe returns the config an instrument was created with.
func (p *BasicProvider) Describe(name string) (InstrumentConfig, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	cfg, ok := p.meta[name]
	return cfg, ok
}
