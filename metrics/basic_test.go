package metrics

import (
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBasicProvider_Counter_ReusedAndAccumulates(t *testing.T) {
	p := NewBasicProvider()

	c1 := p.Counter(PixelsWritten)
	c2 := p.Counter(PixelsWritten)
	require.Same(t, c1.(*BasicCounter), c2.(*BasicCounter))

	c1.Add(3)
	c2.Add(2)
	require.Equal(t, int64(5), c1.(*BasicCounter).Snapshot())

	other := p.Counter(UnitsRendered)
	require.NotSame(t, c1.(*BasicCounter), other.(*BasicCounter))
}

func TestBasicProvider_UpDownCounter_Moves(t *testing.T) {
	p := NewBasicProvider()
	u := p.UpDownCounter(WorkersActive)

	u.Add(+3)
	u.Add(-1)
	p.UpDownCounter(WorkersActive).Add(+10)
	require.Equal(t, int64(12), u.(*BasicUpDownCounter).Snapshot())
}

func TestBasicProvider_Histogram_RecordsStats(t *testing.T) {
	p := NewBasicProvider()
	h := p.Histogram(UnitSeconds)

	h.Record(0.1)
	h.Record(0.3)
	h.Record(0.2)

	s := h.(*BasicHistogram).Snapshot()
	require.Equal(t, int64(3), s.Count)
	require.Equal(t, 0.1, s.Min)
	require.Equal(t, 0.3, s.Max)
	require.InDelta(t, 0.6, s.Sum, 1e-9)
	require.InDelta(t, 0.2, s.Mean, 1e-9)
}

func TestBasicProvider_SnapshotsAndMetadata(t *testing.T) {
	p := NewBasicProvider()
	p.Counter(FramesRendered, WithDescription("frames"), WithUnit("1")).Add(2)
	p.UpDownCounter(WorkersActive).Add(4)
	p.Histogram(FrameSeconds, WithUnit("seconds")).Record(1.5)

	counters := p.Counters()
	require.Equal(t, int64(2), counters[FramesRendered])
	require.Equal(t, int64(4), counters[WorkersActive])

	hists := p.Histograms()
	require.Equal(t, int64(1), hists[FrameSeconds].Count)

	require.Equal(t, []string{FrameSeconds, FramesRendered, WorkersActive}, p.Names())

	cfg, ok := p.Describe(FramesRendered)
	require.True(t, ok)
	require.Equal(t, "frames", cfg.Description)
	require.Equal(t, "1", cfg.Unit)

	_, ok = p.Describe("missing")
	require.False(t, ok)
}

func TestBasicProvider_Attributes(t *testing.T) {
	p := NewBasicProvider()
	attrs := map[string]string{"pass": "static"}
	p.Counter(UnitsRendered, WithComponent(ComponentWorkers), WithAttributes(attrs), WithAttributes(nil))
	attrs["pass"] = "mutated"

	cfg, ok := p.Describe(UnitsRendered)
	require.True(t, ok)
	require.Equal(t, map[string]string{AttrComponent: ComponentWorkers, "pass": "static"}, cfg.Attributes)

	// Options of a later lookup are ignored.
	p.Counter(UnitsRendered, WithComponent(ComponentRenderer))
	cfg, _ = p.Describe(UnitsRendered)
	require.Equal(t, ComponentWorkers, cfg.Attributes[AttrComponent])

	p.Histogram(FrameSeconds)
	cfg, _ = p.Describe(FrameSeconds)
	require.Nil(t, cfg.Attributes)
}

func TestBasicProvider_Concurrent_SameInstrument(t *testing.T) {
	p := NewBasicProvider()
	n := 50
	got := make([]Counter, n)
	var wg sync.WaitGroup
	wg.Add(n)
	for i := range n {
		go func(idx int) {
			defer wg.Done()
			got[idx] = p.Counter(PlotLockAcquisitions)
		}(i)
	}
	wg.Wait()
	for i := 1; i < n; i++ {
		require.Same(t, got[0].(*BasicCounter), got[i].(*BasicCounter))
	}
}

func TestBasicProvider_Concurrent_Record(t *testing.T) {
	p := NewBasicProvider()
	c := p.Counter(PixelsWritten)
	h := p.Histogram(UnitSeconds)

	workers := runtime.NumCPU() * 2
	iters := 500
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := range workers {
		go func(base int) {
			defer wg.Done()
			for i := range iters {
				c.Add(1)
				h.Record(float64((base%10)+i%10) / 100.0)
			}
		}(w)
	}
	wg.Wait()

	require.Equal(t, int64(workers*iters), c.(*BasicCounter).Snapshot())
	s := h.(*BasicHistogram).Snapshot()
	require.Equal(t, int64(workers*iters), s.Count)
	require.GreaterOrEqual(t, s.Min, 0.0)
	require.LessOrEqual(t, s.Max, 0.19)
}

func TestNoopProvider_Discards(t *testing.T) {
	p := NewNoopProvider()
	p.Counter(PixelsWritten).Add(1)
	p.UpDownCounter(WorkersActive).Add(-1)
	p.Histogram(FrameSeconds).Record(1)
}
