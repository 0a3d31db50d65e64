// Package vramconqt shows a vramcon console in a Qt widget.
package vramconqt

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/mappu/miqt/qt"

	"github.com/phroun/vramcon"
	"github.com/phroun/vramcon/internal/glyph"
	"github.com/phroun/vramcon/internal/palette"
)

// Left and top padding of the grid (pixels)
const padding = 4

// Qt interprets font sizes differently than Pango, so we multiply by this factor
const qtFontSizeScale = 1.333

// Options configures the widget
type Options struct {
	FontFamily string          // default "Monospace"
	FontSize   int             // points, default 12
	Scheme     *palette.Scheme // default palette.Default()
	Status     func() string   // status line text, may be nil
}

// Widget paints the console grid, the cursor and a status line.
type Widget struct {
	mu sync.Mutex

	widget      *qt.QWidget
	updateTimer *qt.QTimer

	console       *vramcon.Console
	options       Options
	scheme        palette.Scheme
	screen        vramcon.Screen
	updatePending atomic.Bool

	charWidth  int
	charHeight int
	charAscent int
}

// New creates a widget for console and installs the console's dirty
// callback. A QApplication must exist.
func New(console *vramcon.Console, opts Options) *Widget {
	if opts.FontFamily == "" {
		opts.FontFamily = "Monospace"
	}
	if opts.FontSize <= 0 {
		opts.FontSize = 12
	}
	w := &Widget{
		widget:  qt.NewQWidget2(),
		console: console,
		options: opts,
		scheme:  palette.Default(),
		screen:  console.Snapshot(),
	}
	if opts.Scheme != nil {
		w.scheme = *opts.Scheme
	}

	// Writes come from other goroutines; the timer moves the repaint onto
	// the Qt main thread (16ms, about 60fps).
	w.updateTimer = qt.NewQTimer2(w.widget.QObject)
	w.updateTimer.OnTimeout(func() {
		if w.updatePending.Swap(false) {
			s := w.console.Snapshot()
			w.mu.Lock()
			w.screen = s
			w.mu.Unlock()
			w.widget.Update()
		}
	})
	w.updateTimer.Start(16)
	console.SetDirtyCallback(func() {
		w.updatePending.Store(true)
	})

	w.widget.SetFocusPolicy(qt.StrongFocus)
	w.updateFontMetrics()
	w.widget.SetMinimumSize2(w.size())

	w.widget.OnPaintEvent(func(super func(event *qt.QPaintEvent), event *qt.QPaintEvent) {
		w.paintEvent()
	})
	w.widget.OnKeyPressEvent(func(super func(event *qt.QKeyEvent), event *qt.QKeyEvent) {
		w.keyPressEvent(super, event)
	})
	return w
}

// Widget returns the underlying QWidget
func (w *Widget) Widget() *qt.QWidget {
	return w.widget
}

func (w *Widget) effectiveFontSize() int {
	return int(float64(w.options.FontSize)*qtFontSizeScale + 0.5)
}

func (w *Widget) font() *qt.QFont {
	font := qt.NewQFont6(w.options.FontFamily, w.effectiveFontSize())
	font.SetFixedPitch(true)
	return font
}

func (w *Widget) updateFontMetrics() {
	size := w.effectiveFontSize()
	metrics := qt.NewQFontMetrics(w.font())
	w.charWidth = metrics.AverageCharWidth()
	w.charHeight = metrics.Height()
	w.charAscent = metrics.Ascent()
	if w.charWidth < 1 {
		w.charWidth = size * 6 / 10
	}
	if w.charHeight < 1 {
		w.charHeight = size * 12 / 10
	}
	if w.charAscent < 1 {
		w.charAscent = size
	}
}

// size is the grid area plus one status row.
func (w *Widget) size() (int, int) {
	return vramcon.Cols*w.charWidth + 2*padding,
		(vramcon.Rows+1)*w.charHeight + 2*padding
}

func qcolor(c palette.Color) *qt.QColor {
	return qt.NewQColor3(int(c.R), int(c.G), int(c.B))
}

func (w *Widget) paintEvent() {
	w.mu.Lock()
	s := w.screen
	scheme := w.scheme
	w.mu.Unlock()

	painter := qt.NewQPainter2(w.widget.QPaintDevice)
	defer painter.End()

	painter.FillRect5(0, 0, w.widget.Width(), w.widget.Height(), qcolor(scheme.Background))
	painter.SetFont(w.font())
	painter.SetPen(qcolor(scheme.Foreground))
	for row := 0; row < vramcon.Rows; row++ {
		y := padding + row*w.charHeight + w.charAscent
		for col, b := range s.Row(row) {
			if b == vramcon.Blank {
				continue
			}
			painter.DrawText3(padding+col*w.charWidth, y, string(glyph.Rune(b)))
		}
	}

	cx := padding + s.Cursor.Col*w.charWidth
	cy := padding + (s.Cursor.Row+1)*w.charHeight - 2
	painter.FillRect5(cx, cy, w.charWidth, 2, qcolor(scheme.Cursor))

	sy := padding + vramcon.Rows*w.charHeight
	painter.FillRect5(0, sy, w.widget.Width(), w.charHeight+padding, qcolor(scheme.Status))
	painter.SetPen(qcolor(scheme.Foreground))
	painter.DrawText3(padding, sy+w.charAscent, statusText(&s, w.options.Status))
}

func statusText(s *vramcon.Screen, extra func() string) string {
	line := fmt.Sprintf("Cursor: %d,%d | Scrolls: %d", s.Cursor.Row+1, s.Cursor.Col+1, s.Scrolls)
	if extra != nil {
		line += " | " + extra()
	}
	return line
}

// keyPressEvent copies the grid text on Ctrl+C.
func (w *Widget) keyPressEvent(super func(event *qt.QKeyEvent), event *qt.QKeyEvent) {
	hasCtrl := event.Modifiers()&qt.ControlModifier != 0
	if hasCtrl && qt.Key(event.Key()) == qt.Key_C {
		event.Accept()
		w.mu.Lock()
		text := w.screen.Text()
		w.mu.Unlock()
		qt.QGuiApplication_Clipboard().SetText(text)
		return
	}
	super(event)
}
