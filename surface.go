package fractal

import (
	"image"
	"image/color"
	"sync"

	"github.com/ygrebnov/fractal/metrics"
)

// Surface is the drawing target of a Renderer. Implementations need not be safe
// for concurrent use: the renderer serializes every SetColor+Plot pair.
type Surface interface {
	// SetColor selects the color used by subsequent Plot calls.
	SetColor(r, g, b uint8)
	// Plot draws pixel (x, y) in the current color.
	Plot(x, y int)
	// Size returns the grid dimensions in pixels.
	Size() (width, height int)
}

// ImageSurface is an in-memory Surface backed by an *image.RGBA.
type ImageSurface struct {
	img     *image.RGBA
	current color.RGBA
}

// NewImageSurface allocates a width×height surface filled with transparent black.
func NewImageSurface(width, height int) *ImageSurface {
	return &ImageSurface{
		img:     image.NewRGBA(image.Rect(0, 0, width, height)),
		current: color.RGBA{A: 255},
	}
}

func (s *ImageSurface) SetColor(r, g, b uint8) { s.current = color.RGBA{R: r, G: g, B: b, A: 255} }

func (s *ImageSurface) Plot(x, y int) { s.img.SetRGBA(x, y, s.current) }

func (s *ImageSurface) Size() (int, int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

// Clear fills the whole surface with c.
func (s *ImageSurface) Clear(c Color) {
	fill := color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
	for i := 0; i < len(s.img.Pix); i += 4 {
		s.img.Pix[i], s.img.Pix[i+1], s.img.Pix[i+2], s.img.Pix[i+3] = fill.R, fill.G, fill.B, fill.A
	}
}

// Image returns the backing image. It must not be read while a render pass is running.
func (s *ImageSurface) Image() *image.RGBA { return s.img }

// pixel is one computed framebuffer write.
type pixel struct {
	x, y int
	c    Color
}

// frameWriter is the single serialization point in front of a Surface.
type frameWriter struct {
	mu      sync.Mutex
	surface Surface

	locks  metrics.Counter
	pixels metrics.Counter
}

func newFrameWriter(s Surface, p metrics.Provider) *frameWriter {
	c := metrics.WithComponent(metrics.ComponentFrameWriter)
	return &frameWriter{
		surface: s,
		locks:   p.Counter(metrics.PlotLockAcquisitions, c, metrics.WithUnit("1")),
		pixels:  p.Counter(metrics.PixelsWritten, c, metrics.WithUnit("1")),
	}
}

// write draws one pixel under the lock.
func (w *frameWriter) write(x, y int, c Color) {
	w.locks.Add(1)
	w.pixels.Add(1)
	w.mu.Lock()
	defer w.mu.Unlock()
	w.surface.SetColor(c.R, c.G, c.B)
	w.surface.Plot(x, y)
}

// writeBatch draws all pixels under one lock acquisition.
func (w *frameWriter) writeBatch(px []pixel) {
	if len(px) == 0 {
		return
	}
	w.locks.Add(1)
	w.pixels.Add(int64(len(px)))
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, p := range px {
		w.surface.SetColor(p.c.R, p.c.G, p.c.B)
		w.surface.Plot(p.x, p.y)
	}
}
