// Package metrics defines the instruments a Renderer records into and two
// in-process providers: NoopProvider (the default) and BasicProvider.
package metrics

import "maps"

// Provider hands out named instruments. The renderer asks for every instrument
// once, when it is created, and records into them from all workers.
// Implementations must be safe for concurrent use.
type Provider interface {
	Counter(name string, opts ...InstrumentOption) Counter
	UpDownCounter(name string, opts ...InstrumentOption) UpDownCounter
	Histogram(name string, opts ...InstrumentOption) Histogram
}

// Counter counts events such as pixels written or units rendered.
type Counter interface {
	Add(n int64)
}

// UpDownCounter tracks a level, such as the number of workers inside a pass.
type UpDownCounter interface {
	Add(n int64)
}

// Histogram records durations in seconds.
type Histogram interface {
	Record(v float64)
}

// InstrumentConfig is the metadata an instrument was created with.
type InstrumentConfig struct {
	Description string
	Unit        string
	// Attributes are static labels of the instrument, e.g. the component that owns it.
	Attributes map[string]string
}

// InstrumentOption mutates InstrumentConfig.
type InstrumentOption func(*InstrumentConfig)

func newInstrumentConfig(opts []InstrumentOption) InstrumentConfig {
	var cfg InstrumentConfig
	for _, o := range opts {
		if o != nil {
			o(&cfg)
		}
	}
	return cfg
}

// WithDescription sets the instrument description.
func WithDescription(desc string) InstrumentOption {
	return func(c *InstrumentConfig) { c.Description = desc }
}

// WithUnit sets the instrument unit ("1", "seconds").
func WithUnit(unit string) InstrumentOption {
	return func(c *InstrumentConfig) { c.Unit = unit }
}

// WithAttributes merges attrs into the instrument's static attributes.
// The map is copied.
func WithAttributes(attrs map[string]string) InstrumentOption {
	return func(c *InstrumentConfig) {
		if len(attrs) == 0 {
			return
		}
		if c.Attributes == nil {
			c.Attributes = make(map[string]string, len(attrs))
		}
		maps.Copy(c.Attributes, attrs)
	}
}

// WithComponent labels the instrument with the renderer component that records into it.
func WithComponent(component string) InstrumentOption {
	return WithAttributes(map[string]string{AttrComponent: component})
}
