package fractal

// Color is an 8-bit RGB triple.
type Color struct {
	R, G, B uint8
}

// Palette maps an iteration count in [0, maxIter] to a color.
// It is called concurrently from every worker and must not keep mutable state.
type Palette func(iter, maxIter int) Color

// DefaultPalette paints points that never escape black and grades the rest
// with a smooth polynomial ramp from dark blue through green to red.
func DefaultPalette(iter, maxIter int) Color {
	if iter >= maxIter {
		return Color{}
	}
	t := float64(iter) / float64(maxIter)
	return Color{
		R: uint8(9 * (1 - t) * t * t * t * 255),
		G: uint8(15 * (1 - t) * (1 - t) * t * t * 255),
		B: uint8(8.5 * (1 - t) * (1 - t) * (1 - t) * t * 255),
	}
}

// GrayscalePalette maps escape speed to a gray level; points inside the set are black.
func GrayscalePalette(iter, maxIter int) Color {
	if iter >= maxIter {
		return Color{}
	}
	v := uint8(255 * iter / maxIter)
	return Color{R: v, G: v, B: v}
}
