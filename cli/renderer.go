package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/phroun/vramcon"
	"github.com/phroun/vramcon/internal/glyph"
)

// Renderer draws the console grid into the host terminal
type Renderer struct {
	term *Terminal
	mu   sync.Mutex

	// Render state
	renderNeeded bool
	lastCells    []byte // Previous frame for differential rendering; nil forces a full frame
	renderTicker *time.Ticker

	// Output buffer for batching writes
	output strings.Builder

	// Border characters
	borderChars borderCharSet
}

// borderCharSet contains the characters for drawing borders
type borderCharSet struct {
	topLeft     rune
	topRight    rune
	bottomLeft  rune
	bottomRight rune
	horizontal  rune
	vertical    rune
	titleLeft   rune
	titleRight  rune
}

var borderStyles = map[BorderStyle]borderCharSet{
	BorderSingle: {
		topLeft: '┌', topRight: '┐', bottomLeft: '└', bottomRight: '┘',
		horizontal: '─', vertical: '│', titleLeft: '┤', titleRight: '├',
	},
	BorderDouble: {
		topLeft: '╔', topRight: '╗', bottomLeft: '╚', bottomRight: '╝',
		horizontal: '═', vertical: '║', titleLeft: '╡', titleRight: '╞',
	},
	BorderHeavy: {
		topLeft: '┏', topRight: '┓', bottomLeft: '┗', bottomRight: '┛',
		horizontal: '━', vertical: '┃', titleLeft: '┫', titleRight: '┣',
	},
	BorderRounded: {
		topLeft: '╭', topRight: '╮', bottomLeft: '╰', bottomRight: '╯',
		horizontal: '─', vertical: '│', titleLeft: '┤', titleRight: '├',
	},
}

// NewRenderer creates a new renderer for the terminal
func NewRenderer(term *Terminal) *Renderer {
	r := &Renderer{
		term:         term,
		renderNeeded: true,
	}
	if term.options.BorderStyle != BorderNone {
		r.borderChars = borderStyles[term.options.BorderStyle]
	}
	return r
}

// extent is the host area the window covers, including offsets.
func (r *Renderer) extent() (cols, rows int) {
	opts := r.term.options
	cols = opts.OffsetX + vramcon.Cols
	rows = opts.OffsetY + vramcon.Rows
	if opts.BorderStyle != BorderNone {
		cols += 2
		rows += 2
	}
	if opts.ShowStatusBar {
		rows++
	}
	return cols, rows
}

// RequestRender marks that a render is needed
func (r *Renderer) RequestRender() {
	r.mu.Lock()
	r.renderNeeded = true
	r.mu.Unlock()
}

// RenderLoop runs the main render loop
func (r *Renderer) RenderLoop() {
	// Render at ~60fps max, but only when needed
	r.renderTicker = time.NewTicker(16 * time.Millisecond)
	defer r.renderTicker.Stop()

	for {
		select {
		case <-r.renderTicker.C:
			r.mu.Lock()
			needsRender := r.renderNeeded
			r.renderNeeded = false
			r.mu.Unlock()

			if needsRender {
				r.Render()
			}
		case <-r.term.stopRender:
			return
		}
	}
}

// Render draws the changes since the previous frame to the output.
func (r *Renderer) Render() {
	frame := r.Frame()
	r.term.mu.Lock()
	out := r.term.options.Output
	r.term.mu.Unlock()
	io.WriteString(out, frame)
}

// Frame builds the escape sequences for the next frame and records it as the
// new baseline. The first frame after ForceFullRedraw is complete.
func (r *Renderer) Frame() string {
	r.term.mu.Lock()
	opts := r.term.options
	r.term.mu.Unlock()

	snap := r.term.console.Snapshot()

	r.mu.Lock()
	defer r.mu.Unlock()

	contentStartX := opts.OffsetX
	contentStartY := opts.OffsetY
	if opts.BorderStyle != BorderNone {
		contentStartX++
		contentStartY++
	}

	r.output.Reset()

	// Hide cursor during rendering to prevent flicker
	r.output.WriteString("\033[?25l")

	prevCells := r.lastCells
	needsFullRender := prevCells == nil
	if needsFullRender && opts.BorderStyle != BorderNone {
		r.renderBorder(opts.OffsetX, opts.OffsetY, opts.Title)
	}

	for y := 0; y < vramcon.Rows; y++ {
		row := snap.Row(y)
		// inRun is true while consecutive changed cells are being written
		inRun := false
		for x := 0; x < vramcon.Cols; x++ {
			if !needsFullRender && prevCells[y*vramcon.Cols+x] == row[x] {
				inRun = false
				continue
			}
			if !inRun {
				fmt.Fprintf(&r.output, "\033[%d;%dH", contentStartY+y+1, contentStartX+x+1)
				inRun = true
			}
			r.output.WriteRune(glyph.Rune(row[x]))
		}
	}

	if opts.ShowStatusBar {
		statusY := opts.OffsetY + vramcon.Rows
		if opts.BorderStyle != BorderNone {
			statusY += 2
		}
		r.renderStatusBar(opts.OffsetX, statusY, &snap, opts)
	}

	// Show the host cursor at the write position
	fmt.Fprintf(&r.output, "\033[%d;%dH\033[?25h",
		contentStartY+snap.Cursor.Row+1, contentStartX+snap.Cursor.Col+1)

	if r.lastCells == nil {
		r.lastCells = make([]byte, vramcon.Size)
	}
	copy(r.lastCells, snap.Cells[:])

	return r.output.String()
}

// renderBorder draws the window border
func (r *Renderer) renderBorder(x, y int, title string) {
	bc := r.borderChars
	innerCols := vramcon.Cols
	innerRows := vramcon.Rows

	// Top border
	fmt.Fprintf(&r.output, "\033[%d;%dH", y+1, x+1)
	r.output.WriteRune(bc.topLeft)

	titleWidth := runewidth.StringWidth(title)
	if title != "" && titleWidth < innerCols-4 {
		padding := (innerCols - titleWidth - 4) / 2
		r.output.WriteString(strings.Repeat(string(bc.horizontal), padding))
		r.output.WriteRune(bc.titleLeft)
		r.output.WriteString(" ")
		r.output.WriteString(title)
		r.output.WriteString(" ")
		r.output.WriteRune(bc.titleRight)
		remaining := innerCols - padding - titleWidth - 4
		r.output.WriteString(strings.Repeat(string(bc.horizontal), remaining))
	} else {
		r.output.WriteString(strings.Repeat(string(bc.horizontal), innerCols))
	}
	r.output.WriteRune(bc.topRight)

	// Side borders
	for row := 0; row < innerRows; row++ {
		fmt.Fprintf(&r.output, "\033[%d;%dH", y+row+2, x+1)
		r.output.WriteRune(bc.vertical)
		fmt.Fprintf(&r.output, "\033[%d;%dH", y+row+2, x+innerCols+2)
		r.output.WriteRune(bc.vertical)
	}

	// Bottom border
	fmt.Fprintf(&r.output, "\033[%d;%dH", y+innerRows+2, x+1)
	r.output.WriteRune(bc.bottomLeft)
	r.output.WriteString(strings.Repeat(string(bc.horizontal), innerCols))
	r.output.WriteRune(bc.bottomRight)
}

// renderStatusBar draws the status bar on host row y (0-based)
func (r *Renderer) renderStatusBar(x, y int, snap *vramcon.Screen, opts Options) {
	width := vramcon.Cols
	if opts.BorderStyle != BorderNone {
		width += 2
	}

	status := fmt.Sprintf(" Cursor: %d,%d | Scrolls: %d ", snap.Cursor.Row+1, snap.Cursor.Col+1, snap.Scrolls)
	if opts.Status != nil {
		status += "| " + opts.Status() + " "
	}
	status = runewidth.FillRight(runewidth.Truncate(status, width, ""), width)

	fmt.Fprintf(&r.output, "\033[%d;%dH", y+1, x+1)
	r.output.WriteString("\033[7m") // Reverse video
	r.output.WriteString(status)
	r.output.WriteString("\033[27m")
}

// ForceFullRedraw clears the cached state and forces a complete redraw
func (r *Renderer) ForceFullRedraw() {
	r.mu.Lock()
	r.lastCells = nil
	r.renderNeeded = true
	r.mu.Unlock()
}

// NeedsRender returns true if there are pending changes to render
func (r *Renderer) NeedsRender() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.renderNeeded
}
