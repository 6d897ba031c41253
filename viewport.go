package fractal

import "fmt"

// Viewport is the rectangle of the complex plane mapped onto the pixel grid.
// It is a plain value: navigation methods return a new Viewport.
type Viewport struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

// DefaultViewport frames the whole set.
var DefaultViewport = Viewport{MinX: -1.5, MaxX: 0.5, MinY: -1.0, MaxY: 1.0}

// DefaultMaxIter is the iteration cap used when nothing else is configured.
const DefaultMaxIter = 500

func (v Viewport) center() (float64, float64) {
	return (v.MinX + v.MaxX) / 2, (v.MinY + v.MaxY) / 2
}

// scale resizes the viewport around its center by factor f.
func (v Viewport) scale(f float64) Viewport {
	cx, cy := v.center()
	return Viewport{
		MinX: (v.MinX-cx)*f + cx,
		MaxX: (v.MaxX-cx)*f + cx,
		MinY: (v.MinY-cy)*f + cy,
		MaxY: (v.MaxY-cy)*f + cy,
	}
}

// ZoomIn halves both ranges around the center.
func (v Viewport) ZoomIn() Viewport { return v.scale(0.5) }

// ZoomOut doubles both ranges around the center.
func (v Viewport) ZoomOut() Viewport { return v.scale(2) }

// PanUp moves the viewport up by a quarter of its height.
func (v Viewport) PanUp() Viewport {
	d := (v.MaxY - v.MinY) / 4
	v.MinY -= d
	v.MaxY -= d
	return v
}

// PanDown moves the viewport down by a quarter of its height.
func (v Viewport) PanDown() Viewport {
	d := (v.MaxY - v.MinY) / 4
	v.MinY += d
	v.MaxY += d
	return v
}

// PanLeft moves the viewport left by a quarter of its width.
func (v Viewport) PanLeft() Viewport {
	d := (v.MaxX - v.MinX) / 4
	v.MinX -= d
	v.MaxX -= d
	return v
}

// PanRight moves the viewport right by a quarter of its width.
func (v Viewport) PanRight() Viewport {
	d := (v.MaxX - v.MinX) / 4
	v.MinX += d
	v.MaxX += d
	return v
}

// Recenter keeps the viewport size and moves its center to the plane point
// under pixel (px, py) of a width×height grid.
func (v Viewport) Recenter(px, py, width, height int) Viewport {
	cx := v.MinX + (v.MaxX-v.MinX)*float64(px)/float64(width)
	cy := v.MinY + (v.MaxY-v.MinY)*float64(py)/float64(height)
	hx := (v.MaxX - v.MinX) / 2
	hy := (v.MaxY - v.MinY) / 2
	return Viewport{MinX: cx - hx, MaxX: cx + hx, MinY: cy - hy, MaxY: cy + hy}
}

// PixelToPlane maps pixel (px, py) of a width×height grid to its plane coordinate.
func (v Viewport) PixelToPlane(px, py, width, height int) (float64, float64) {
	x := v.MinX + float64(px)*(v.MaxX-v.MinX)/float64(width)
	y := v.MinY + float64(py)*(v.MaxY-v.MinY)/float64(height)
	return x, y
}

func (v Viewport) valid() bool {
	return v.MinX < v.MaxX && v.MinY < v.MaxY
}

func (v Viewport) String() string {
	return fmt.Sprintf("%f %f %f %f", v.MinX, v.MaxX, v.MinY, v.MaxY)
}
