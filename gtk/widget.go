// Package vramcongtk shows a vramcon console in a GTK3 drawing area.
package vramcongtk

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/gotk3/gotk3/cairo"
	"github.com/gotk3/gotk3/gdk"
	"github.com/gotk3/gotk3/glib"
	"github.com/gotk3/gotk3/gtk"

	"github.com/phroun/vramcon"
	"github.com/phroun/vramcon/internal/glyph"
	"github.com/phroun/vramcon/internal/palette"
)

const padding = 4

// Options configures the widget
type Options struct {
	FontFamily string          // default "Monospace"
	FontSize   int             // points, default 14
	Scheme     *palette.Scheme // default palette.Default()
	Status     func() string   // status line text, may be nil
}

// Widget draws the console grid, the cursor and a status line.
type Widget struct {
	mu sync.Mutex

	console *vramcon.Console
	options Options
	scheme  palette.Scheme
	screen  vramcon.Screen

	// Set while a refresh is queued on the main loop
	refreshPending atomic.Bool
	idleAdd        func(fn func())

	box         *gtk.Box
	drawingArea *gtk.DrawingArea
	statusLabel *gtk.Label
	clipboard   *gtk.Clipboard

	charWidth  float64
	charHeight float64
	charAscent float64
}

// New creates a widget for console and installs the console's dirty
// callback. It must be called on the GTK main thread.
func New(console *vramcon.Console, opts Options) (*Widget, error) {
	if opts.FontFamily == "" {
		opts.FontFamily = "Monospace"
	}
	if opts.FontSize <= 0 {
		opts.FontSize = 14
	}
	w := &Widget{
		console: console,
		options: opts,
		scheme:  palette.Default(),
		screen:  console.Snapshot(),
		idleAdd: func(fn func()) { glib.IdleAdd(fn) },
	}
	if opts.Scheme != nil {
		w.scheme = *opts.Scheme
	}
	w.updateFontMetrics()

	var err error
	w.box, err = gtk.BoxNew(gtk.ORIENTATION_VERTICAL, 0)
	if err != nil {
		return nil, err
	}
	w.drawingArea, err = gtk.DrawingAreaNew()
	if err != nil {
		return nil, err
	}
	w.statusLabel, err = gtk.LabelNew("")
	if err != nil {
		return nil, err
	}
	w.statusLabel.SetXAlign(0)

	w.drawingArea.SetSizeRequest(w.gridSize())
	w.drawingArea.AddEvents(int(gdk.KEY_PRESS_MASK))
	w.drawingArea.SetCanFocus(true)
	w.drawingArea.Connect("draw", w.onDraw)
	w.drawingArea.Connect("key-press-event", w.onKeyPress)

	w.box.PackStart(w.drawingArea, true, true, 0)
	w.box.PackStart(w.statusLabel, false, false, 0)

	w.clipboard, _ = gtk.ClipboardGet(gdk.SELECTION_CLIPBOARD)

	console.SetDirtyCallback(w.markDirty)
	w.refresh()
	return w, nil
}

// Box returns the container to add to a window
func (w *Widget) Box() *gtk.Box {
	return w.box
}

// DrawingArea returns the grid drawing area
func (w *Widget) DrawingArea() *gtk.DrawingArea {
	return w.drawingArea
}

func (w *Widget) updateFontMetrics() {
	size := float64(w.options.FontSize)
	w.charWidth = size * 6 / 10
	w.charHeight = size * 12 / 10
	w.charAscent = size
}

func (w *Widget) gridSize() (int, int) {
	return int(float64(vramcon.Cols)*w.charWidth) + 2*padding,
		int(float64(vramcon.Rows)*w.charHeight) + 2*padding
}

// markDirty queues one refresh on the main loop. Writes happen off the
// main thread and can arrive far faster than frames; further writes before
// the refresh runs are folded into it.
func (w *Widget) markDirty() {
	if w.refreshPending.CompareAndSwap(false, true) {
		w.idleAdd(w.refresh)
	}
}

// refresh takes a new snapshot and queues a redraw. Main thread only.
func (w *Widget) refresh() {
	w.refreshPending.Store(false)
	s := w.console.Snapshot()
	w.mu.Lock()
	w.screen = s
	w.mu.Unlock()

	w.statusLabel.SetText(statusText(&s, w.options.Status))
	w.drawingArea.QueueDraw()
}

func statusText(s *vramcon.Screen, extra func() string) string {
	line := fmt.Sprintf(" Cursor: %d,%d | Scrolls: %d", s.Cursor.Row+1, s.Cursor.Col+1, s.Scrolls)
	if extra != nil {
		line += " | " + extra()
	}
	return line
}

func (w *Widget) onDraw(da *gtk.DrawingArea, cr *cairo.Context) bool {
	w.mu.Lock()
	s := w.screen
	scheme := w.scheme
	w.mu.Unlock()

	alloc := da.GetAllocation()
	cr.SetSourceRGB(scheme.Background.Float())
	cr.Rectangle(0, 0, float64(alloc.GetWidth()), float64(alloc.GetHeight()))
	cr.Fill()

	cr.SelectFontFace(w.options.FontFamily, cairo.FONT_SLANT_NORMAL, cairo.FONT_WEIGHT_NORMAL)
	cr.SetFontSize(float64(w.options.FontSize))
	cr.SetSourceRGB(scheme.Foreground.Float())
	for row := 0; row < vramcon.Rows; row++ {
		y := padding + float64(row)*w.charHeight + w.charAscent
		for col, b := range s.Row(row) {
			if b == vramcon.Blank {
				continue
			}
			cr.MoveTo(padding+float64(col)*w.charWidth, y)
			cr.ShowText(string(glyph.Rune(b)))
		}
	}

	cr.SetSourceRGB(scheme.Cursor.Float())
	cr.Rectangle(
		padding+float64(s.Cursor.Col)*w.charWidth,
		padding+float64(s.Cursor.Row+1)*w.charHeight-2,
		w.charWidth, 2)
	cr.Fill()
	return true
}

// onKeyPress copies the grid text on Ctrl+C.
func (w *Widget) onKeyPress(da *gtk.DrawingArea, ev *gdk.Event) bool {
	key := gdk.EventKeyNewFromEvent(ev)
	hasCtrl := key.State()&uint(gdk.CONTROL_MASK) != 0
	switch key.KeyVal() {
	case gdk.KEY_c, gdk.KEY_C:
		if hasCtrl && w.clipboard != nil {
			w.mu.Lock()
			text := w.screen.Text()
			w.mu.Unlock()
			w.clipboard.SetText(text)
			return true
		}
	}
	return false
}
