package cli

import (
	"fmt"
	"io"
	"os"
	"sync"

	"golang.org/x/term"

	"github.com/phroun/vramcon"
	"github.com/phroun/vramcon/internal/log"
)

// BorderStyle defines the visual style for the window border
type BorderStyle int

const (
	BorderNone    BorderStyle = iota // No border
	BorderSingle                     // Single-line box drawing characters
	BorderDouble                     // Double-line box drawing characters
	BorderHeavy                      // Heavy/thick box drawing characters
	BorderRounded                    // Rounded corners (single line)
)

// Options configures the host-terminal view
type Options struct {
	BorderStyle BorderStyle // Border style around the grid
	Title       string      // Shown in the top border
	OffsetX     int         // X offset from top-left of the host terminal
	OffsetY     int         // Y offset from top-left of the host terminal

	// If true, render a status bar below the grid
	ShowStatusBar bool

	// Status adds text to the status bar (e.g. counters); may be nil
	Status func() string

	Input  *os.File  // default os.Stdin
	Output io.Writer // default os.Stdout
}

// Terminal displays a console in the host terminal
type Terminal struct {
	mu sync.Mutex

	console *vramcon.Console
	options Options

	renderer *Renderer
	input    *InputHandler

	running    bool
	done       chan struct{}
	stopRender chan struct{}
	stopOnce   sync.Once
	quitOnce   sync.Once

	// Original terminal state for restoration
	oldState *term.State
}

// New creates a view of console. Nothing is drawn until Start.
func New(console *vramcon.Console, opts Options) *Terminal {
	if opts.Input == nil {
		opts.Input = os.Stdin
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	t := &Terminal{
		console:    console,
		options:    opts,
		done:       make(chan struct{}),
		stopRender: make(chan struct{}),
	}
	t.renderer = NewRenderer(t)
	t.input = NewInputHandler(t)

	console.SetDirtyCallback(func() {
		t.renderer.RequestRender()
	})
	return t
}

// HostSize returns the size of the host terminal, or 80x24 when output is
// not a terminal.
func HostSize() (cols, rows int) {
	cols, rows, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 80, 24
	}
	return cols, rows
}

// Fits reports whether the grid plus decorations fits the host terminal.
func (t *Terminal) Fits() bool {
	cols, rows := HostSize()
	w, h := t.renderer.extent()
	return w <= cols && h <= rows
}

// Start enters raw mode, switches to the alternate screen and begins
// rendering and reading keys.
func (t *Terminal) Start() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.running {
		return fmt.Errorf("terminal already started")
	}

	fd := int(t.options.Input.Fd())
	if term.IsTerminal(fd) {
		oldState, err := term.MakeRaw(fd)
		if err != nil {
			return fmt.Errorf("failed to enter raw mode: %w", err)
		}
		t.oldState = oldState
	} else {
		log.Warn("cli: input is not a terminal, keys are ignored")
	}

	if !t.Fits() {
		cols, rows := HostSize()
		log.Warn("cli: host terminal %dx%d is smaller than the grid", cols, rows)
	}

	// Hide host cursor, alternate screen, clear
	io.WriteString(t.options.Output, "\033[?25l\033[?1049h\033[2J\033[H")

	t.running = true
	go t.renderer.RenderLoop()
	if t.oldState != nil {
		go t.input.InputLoop()
	}
	return nil
}

// Wait blocks until the user quits.
func (t *Terminal) Wait() {
	<-t.done
}

// Done is closed when the user quits.
func (t *Terminal) Done() <-chan struct{} {
	return t.done
}

// quit signals Wait; safe to call more than once.
func (t *Terminal) quit() {
	t.quitOnce.Do(func() { close(t.done) })
}

// Stop stops rendering and restores the host terminal.
func (t *Terminal) Stop() error {
	t.stopOnce.Do(func() { close(t.stopRender) })
	t.quit()

	t.mu.Lock()
	oldState := t.oldState
	t.oldState = nil
	wasRunning := t.running
	t.running = false
	t.mu.Unlock()

	if wasRunning {
		// Leave alternate screen, show cursor, reset attributes
		io.WriteString(t.options.Output, "\033[?1049l\033[?25h\033[0m")
	}
	if oldState != nil {
		return term.Restore(int(t.options.Input.Fd()), oldState)
	}
	return nil
}

// Close is an alias for Stop
func (t *Terminal) Close() error {
	return t.Stop()
}

// Console returns the displayed console
func (t *Terminal) Console() *vramcon.Console {
	return t.console
}

// SetTitle sets the window title
func (t *Terminal) SetTitle(title string) {
	t.mu.Lock()
	t.options.Title = title
	t.mu.Unlock()
	t.renderer.ForceFullRedraw()
}
