// Package snapshot renders a console Screen to a PNG image.
package snapshot

import (
	"fmt"
	"io"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/phroun/vramcon"
	"github.com/phroun/vramcon/internal/glyph"
	"github.com/phroun/vramcon/internal/palette"
)

// Cell metrics of basicfont.Face7x13.
const (
	CellWidth  = 7
	CellHeight = 13
	ascent     = 11
)

// Padding around the grid, in pixels.
const Padding = 4

// Width and Height are the image dimensions in pixels.
const (
	Width  = vramcon.Cols*CellWidth + 2*Padding
	Height = vramcon.Rows*CellHeight + 2*Padding
)

// Render draws screen into a new context with an underline at the cursor.
func Render(screen *vramcon.Screen, scheme palette.Scheme) *gg.Context {
	dc := gg.NewContext(Width, Height)
	dc.SetRGB(scheme.Background.Float())
	dc.Clear()

	dc.SetFontFace(basicfont.Face7x13)
	dc.SetRGB(scheme.Foreground.Float())
	for row := 0; row < vramcon.Rows; row++ {
		y := float64(Padding + row*CellHeight + ascent)
		for col, b := range screen.Row(row) {
			if b == vramcon.Blank {
				continue
			}
			x := float64(Padding + col*CellWidth)
			dc.DrawString(string(glyph.Rune(b)), x, y)
		}
	}

	cur := screen.Cursor
	dc.SetRGB(scheme.Cursor.Float())
	dc.DrawRectangle(
		float64(Padding+cur.Col*CellWidth),
		float64(Padding+cur.Row*CellHeight+CellHeight-2),
		CellWidth, 2)
	dc.Fill()
	return dc
}

// Encode writes screen as PNG to w.
func Encode(w io.Writer, screen *vramcon.Screen, scheme palette.Scheme) error {
	if err := Render(screen, scheme).EncodePNG(w); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return nil
}

// Save writes screen as a PNG file at path.
func Save(path string, screen *vramcon.Screen, scheme palette.Scheme) error {
	if err := Render(screen, scheme).SavePNG(path); err != nil {
		return fmt.Errorf("save snapshot %s: %w", path, err)
	}
	return nil
}
