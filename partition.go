package fractal

import (
	"fmt"
	"strings"

	"github.com/ygrebnov/errorc"
)

// Strategy selects how the pixel grid is split between workers.
type Strategy int

const (
	// StrategyStatic gives every worker one contiguous band of rows up front.
	StrategyStatic Strategy = iota
	// StrategyDynamic splits the grid into square tiles that workers claim on demand.
	StrategyDynamic
)

// DefaultTileSize is the side of a dynamic-strategy tile in pixels.
const DefaultTileSize = 20

func (s Strategy) String() string {
	switch s {
	case StrategyStatic:
		return "static"
	case StrategyDynamic:
		return "dynamic"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// ParseStrategy parses "static" or "dynamic".
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "static":
		return StrategyStatic, nil
	case "dynamic":
		return StrategyDynamic, nil
	default:
		return 0, errorc.With(ErrInvalidConfig, errorc.String("strategy", s))
	}
}

// WorkUnit is an independently renderable slice of the grid: a Range or a Tile.
type WorkUnit interface {
	// Bounds returns the half-open pixel rectangle [x0,x1)×[y0,y1) covered by the unit
	// in a grid of the given width.
	Bounds(width int) (x0, y0, x1, y1 int)
	// Pixels returns the number of pixels the unit covers in a grid of the given width.
	Pixels(width int) int
}

// Range is a band of full-width rows [StartRow, EndRow).
type Range struct {
	StartRow, EndRow int
}

func (r Range) Bounds(width int) (int, int, int, int) { return 0, r.StartRow, width, r.EndRow }

func (r Range) Pixels(width int) int { return (r.EndRow - r.StartRow) * width }

func (r Range) String() string { return fmt.Sprintf("rows[%d,%d)", r.StartRow, r.EndRow) }

// Tile is a W×H block whose top-left pixel is (X, Y). Edge tiles may be smaller
// than the configured tile size.
type Tile struct {
	X, Y int
	W, H int
}

func (t Tile) Bounds(int) (int, int, int, int) { return t.X, t.Y, t.X + t.W, t.Y + t.H }

func (t Tile) Pixels(int) int { return t.W * t.H }

func (t Tile) String() string { return fmt.Sprintf("tile(%d,%d %dx%d)", t.X, t.Y, t.W, t.H) }

// StaticRanges splits height rows into n bands; band i spans
// [i*height/n, (i+1)*height/n). Bands are empty when n exceeds height.
func StaticRanges(height, n int) []Range {
	ranges := make([]Range, n)
	for i := range n {
		ranges[i] = Range{StartRow: i * height / n, EndRow: (i + 1) * height / n}
	}
	return ranges
}

// Tiles splits a width×height grid into row-major size×size tiles.
// The last column and row of tiles shrink to fit the grid.
func Tiles(width, height, size int) []Tile {
	if width <= 0 || height <= 0 || size <= 0 {
		return nil
	}
	cols := (width + size - 1) / size
	rows := (height + size - 1) / size
	tiles := make([]Tile, 0, cols*rows)
	for y := 0; y < height; y += size {
		h := min(size, height-y)
		for x := 0; x < width; x += size {
			tiles = append(tiles, Tile{X: x, Y: y, W: min(size, width-x), H: h})
		}
	}
	return tiles
}

// Partition builds the work units of one render pass: threads Ranges for
// StrategyStatic, row-major Tiles for StrategyDynamic. tileSize is only used by
// StrategyDynamic. It returns nil for an unknown strategy.
func Partition(width, height, threads int, s Strategy, tileSize int) []WorkUnit {
	var units []WorkUnit
	switch s {
	case StrategyStatic:
		for _, r := range StaticRanges(height, threads) {
			units = append(units, r)
		}
	case StrategyDynamic:
		for _, t := range Tiles(width, height, tileSize) {
			units = append(units, t)
		}
	}
	return units
}
