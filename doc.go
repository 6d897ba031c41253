// Package fractal renders the Mandelbrot escape-time fractal onto a caller-owned
// drawing surface using a fixed number of concurrently running workers.
//
// Constructors
//   - New(surface, opts ...Option): builds a Renderer bound to one Surface.
//
// Defaults
// Unless overridden, the following defaults apply to a newly created Renderer:
//   - Palette: DefaultPalette (black inside the set, polynomial gradient outside)
//   - Logger: zap.NewNop()
//   - Metrics: metrics.NewNoopProvider()
//   - BatchedWrites: false (one lock acquisition per pixel)
//   - MaxThreads: 0 (no cap, worker objects recycled via sync.Pool)
//   - DefaultTileSize: 20
//
// Frames
// Each call to RenderFrame takes a Frame: the viewport, the iteration cap, the
// number of workers and the scheduling strategy. Nothing survives between frames
// except what the caller passes in again, so the caller may freely change any
// of these values once RenderFrame has returned. Overlapping calls are rejected
// with ErrRenderInProgress.
//
// Strategies
//   - StrategyStatic: rows are split into one contiguous band per worker up front.
//   - StrategyDynamic: the grid is split into square tiles that workers claim from
//     a shared TileQueue until it is empty. Trailing tiles on the right and bottom
//     edges shrink so that every pixel is covered.
//
// Surface writes
// A Surface is not expected to be safe for concurrent use. Every SetColor+Plot pair
// is issued under a single renderer-owned lock; WithBatchedWrites makes a worker
// hold that lock once per batch of pixels instead of once per pixel.
package fractal
