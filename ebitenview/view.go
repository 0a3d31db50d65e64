// Package ebitenview shows a vramcon console in an Ebiten window.
package ebitenview

import (
	"fmt"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.design/x/clipboard"
	"golang.org/x/image/font/basicfont"

	"github.com/phroun/vramcon"
	"github.com/phroun/vramcon/internal/glyph"
	"github.com/phroun/vramcon/internal/palette"
	"github.com/phroun/vramcon/snapshot"
)

// Options configures the window
type Options struct {
	Title  string
	Scale  int           // window scale factor (default 2)
	Status func() string // status bar text, may be nil
	Scheme *palette.Scheme
}

const statusHeight = snapshot.CellHeight + 4

// View is an ebiten.Game drawing the console grid.
type View struct {
	console *vramcon.Console
	opts    Options
	scheme  palette.Scheme

	mu     sync.Mutex
	screen vramcon.Screen
	dirty  bool
	closed bool

	clipboardOnce sync.Once
	clipboardOK   bool
}

// New creates a view of console. It installs the console's dirty callback.
func New(console *vramcon.Console, opts Options) *View {
	if opts.Scale <= 0 {
		opts.Scale = 2
	}
	if opts.Title == "" {
		opts.Title = "vramcon"
	}
	v := &View{
		console: console,
		opts:    opts,
		scheme:  palette.Default(),
		screen:  console.Snapshot(),
	}
	if opts.Scheme != nil {
		v.scheme = *opts.Scheme
	}
	console.SetDirtyCallback(v.markDirty)
	return v
}

func (v *View) markDirty() {
	v.mu.Lock()
	v.dirty = true
	v.mu.Unlock()
}

// Close makes the next Update end the game.
func (v *View) Close() {
	v.mu.Lock()
	v.closed = true
	v.mu.Unlock()
}

// Update refreshes the snapshot and handles keys: Q or Escape quits, C
// copies the grid text to the clipboard.
func (v *View) Update() error {
	v.mu.Lock()
	closed := v.closed
	dirty := v.dirty
	v.dirty = false
	v.mu.Unlock()

	if closed || ebiten.IsWindowBeingClosed() {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if dirty {
		s := v.console.Snapshot()
		v.mu.Lock()
		v.screen = s
		v.mu.Unlock()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		v.copyText()
	}
	return nil
}

func (v *View) copyText() {
	v.clipboardOnce.Do(func() {
		v.clipboardOK = clipboard.Init() == nil
	})
	if !v.clipboardOK {
		return
	}
	v.mu.Lock()
	s := v.screen.Text()
	v.mu.Unlock()
	clipboard.Write(clipboard.FmtText, []byte(s))
}

// Draw paints the grid, the cursor and the status bar.
func (v *View) Draw(screen *ebiten.Image) {
	v.mu.Lock()
	s := v.screen
	v.mu.Unlock()

	fg := v.scheme.Foreground.RGBA()
	screen.Fill(v.scheme.Background.RGBA())
	face := basicfont.Face7x13
	for row := 0; row < vramcon.Rows; row++ {
		line := glyph.Line(s.Row(row))
		y := snapshot.Padding + row*snapshot.CellHeight + face.Ascent
		text.Draw(screen, line, face, snapshot.Padding, y, fg)
	}

	cx := snapshot.Padding + s.Cursor.Col*snapshot.CellWidth
	cy := snapshot.Padding + s.Cursor.Row*snapshot.CellHeight + snapshot.CellHeight - 2
	ebitenutil.DrawRect(screen, float64(cx), float64(cy), snapshot.CellWidth, 2, v.scheme.Cursor.RGBA())

	y := snapshot.Height
	ebitenutil.DrawRect(screen, 0, float64(y), snapshot.Width, statusHeight, v.scheme.Status.RGBA())
	text.Draw(screen, v.status(&s), face, snapshot.Padding, y+2+face.Ascent, fg)
}

func (v *View) status(s *vramcon.Screen) string {
	line := fmt.Sprintf("Cursor: %d,%d  Scrolls: %d", s.Cursor.Row+1, s.Cursor.Col+1, s.Scrolls)
	if v.opts.Status != nil {
		line += "  " + v.opts.Status()
	}
	return line
}

// Layout returns the fixed logical size.
func (v *View) Layout(_, _ int) (int, int) {
	return snapshot.Width, snapshot.Height + statusHeight
}

// Run opens the window and blocks until it is closed.
func (v *View) Run() error {
	w, h := v.Layout(0, 0)
	ebiten.SetWindowSize(w*v.opts.Scale, h*v.opts.Scale)
	ebiten.SetWindowTitle(v.opts.Title)
	ebiten.SetWindowResizable(true)
	ebiten.SetRunnableOnUnfocused(true)
	if err := ebiten.RunGame(v); err != nil {
		return fmt.Errorf("ebiten: %w", err)
	}
	return nil
}
