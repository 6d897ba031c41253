package main

import (
	"bufio"
	"fmt"
	"image/color"
	"io"

	"github.com/gdamore/tcell/v2"

	"github.com/ygrebnov/fractal"
)

// halfBlock paints the top pixel in the foreground and the bottom pixel in the background.
const halfBlock = '▀'

// terminalSurface renders into memory and is shown two pixel rows per text line.
type terminalSurface struct {
	*fractal.ImageSurface
}

func newTerminalSurface(width, height int) *terminalSurface {
	if height%2 == 1 {
		height++
	}
	return &terminalSurface{ImageSurface: fractal.NewImageSurface(width, height)}
}

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// show paints the frame from the top-left cell of screen with status on the line below.
// It must only be called between render passes.
func (t *terminalSurface) show(screen tcell.Screen, status string) {
	img := t.Image()
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		for x := b.Min.X; x < b.Max.X; x++ {
			style := tcell.StyleDefault.
				Foreground(rgb(img.RGBAAt(x, y))).
				Background(rgb(img.RGBAAt(x, y+1)))
			screen.SetContent(x, y/2, halfBlock, nil, style)
		}
	}

	row := b.Dy() / 2
	cols, _ := screen.Size()
	line := []rune(status)
	for x := range cols {
		r := ' '
		if x < len(line) {
			r = line[x]
		}
		screen.SetContent(x, row, r, nil, tcell.StyleDefault)
	}
	screen.Show()
}

// writeANSI prints the frame once to out with truecolor escapes, followed by status.
func (t *terminalSurface) writeANSI(out io.Writer, status string) error {
	img := t.Image()
	b := img.Bounds()

	w := bufio.NewWriterSize(out, 64*1024)
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		for x := b.Min.X; x < b.Max.X; x++ {
			top := img.RGBAAt(x, y)
			bottom := img.RGBAAt(x, y+1)
			_, _ = fmt.Fprintf(w, "\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm%c",
				top.R, top.G, top.B, bottom.R, bottom.G, bottom.B, halfBlock)
		}
		_, _ = w.WriteString("\x1b[0m\n")
	}
	_, _ = w.WriteString(status + "\n")
	return w.Flush()
}
