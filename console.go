package vramcon

import "fmt"

// Printer is anything that accepts console output: a Console, or a Tx inside
// Console.Do.
type Printer interface {
	PutChar(ch byte) error
	PutStr(s string) error
}

// Options configures a Console
type Options struct {
	// Guard is taken around every mutation (default: NewMutexGuard()).
	Guard Guard
}

// Console writes characters onto a Surface at the Cursor, handling newline,
// carriage return, wrap at the last column, and scroll at the last row.
type Console struct {
	mu Guard

	surface *Surface
	cursor  Cursor
	scrolls uint64

	// Called after each mutation, outside the guard
	dirtyCallback func()
}

// NewConsole wraps surface. The surface is not cleared; call Clear once at
// startup.
func NewConsole(surface *Surface, opts Options) *Console {
	if opts.Guard == nil {
		opts.Guard = NewMutexGuard()
	}
	return &Console{
		mu:      opts.Guard,
		surface: surface,
	}
}

// SetDirtyCallback sets the function notified after the grid or cursor
// changes. It runs outside the guard and may call Snapshot.
func (c *Console) SetDirtyCallback(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dirtyCallback = fn
}

// --- Character Writing ---

// PutChar writes one character with newline / carriage return / wrap /
// scroll handling.
func (c *Console) PutChar(ch byte) error {
	return c.Do(func(tx *Tx) error {
		return tx.PutChar(ch)
	})
}

// PutStr writes s one character at a time; each character, including any
// scroll it causes, completes before the next is processed.
func (c *Console) PutStr(s string) error {
	return c.Do(func(tx *Tx) error {
		return tx.PutStr(s)
	})
}

// Write implements io.Writer with PutChar semantics for every byte.
func (c *Console) Write(p []byte) (int, error) {
	n := 0
	err := c.Do(func(tx *Tx) error {
		for _, ch := range p {
			if err := tx.PutChar(ch); err != nil {
				return err
			}
			n++
		}
		return nil
	})
	return n, err
}

// Clear blanks the grid and homes the cursor.
func (c *Console) Clear() {
	c.Do(func(tx *Tx) error {
		c.surface.Clear()
		c.cursor.Set(0, 0)
		return nil
	})
}

// Do runs fn with the guard held for its whole duration, so a multi-part
// line is never interleaved with other output. The guard is released even
// if fn panics.
func (c *Console) Do(fn func(tx *Tx) error) error {
	cb, err := c.locked(fn)
	if cb != nil {
		cb()
	}
	return err
}

// locked runs fn under the guard and returns the dirty callback to notify
// once the guard is released.
func (c *Console) locked(fn func(tx *Tx) error) (func(), error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dirtyCallback, fn(&Tx{c: c})
}

// Tx is a Printer valid only inside Console.Do.
type Tx struct {
	c *Console
}

// PutChar is Console.PutChar without taking the guard
func (tx *Tx) PutChar(ch byte) error {
	return tx.c.putCharLocked(ch)
}

// PutStr is Console.PutStr without taking the guard
func (tx *Tx) PutStr(s string) error {
	for i := 0; i < len(s); i++ {
		if err := tx.c.putCharLocked(s[i]); err != nil {
			return err
		}
	}
	return nil
}

// Must be called with the guard held.
func (c *Console) putCharLocked(ch byte) error {
	switch ch {
	case '\n':
		return c.newLineLocked()
	case '\r':
		c.cursor.ResetCol()
		return nil
	}

	// Wrap before placing so nothing is ever written past the edge.
	if c.cursor.atLastCol() {
		if err := c.newLineLocked(); err != nil {
			return err
		}
	}
	if err := c.surface.WriteCell(c.cursor.row, c.cursor.col, ch); err != nil {
		return fmt.Errorf("put %#02x: %w", ch, err)
	}
	c.cursor.AdvanceCol()
	return nil
}

// newLineLocked resets the column and moves down a row, scrolling instead
// when already on the last row. Must be called with the guard held.
func (c *Console) newLineLocked() error {
	c.cursor.ResetCol()
	if c.cursor.atLastRow() {
		return c.scrollLocked()
	}
	c.cursor.row++
	if !c.cursor.valid() {
		return &BoundsError{Op: "newline", Row: c.cursor.row, Col: c.cursor.col}
	}
	return nil
}

// --- Readers ---

// Cursor returns the current cursor position
func (c *Console) Cursor() Position {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cursor.Position()
}

// Scrolls returns how many times the grid has scrolled since creation
func (c *Console) Scrolls() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.scrolls
}

// Snapshot copies the grid and cursor under the guard.
func (c *Console) Snapshot() Screen {
	c.mu.Lock()
	defer c.mu.Unlock()
	var s Screen
	copy(s.Cells[:], c.surface.cells)
	s.Cursor = c.cursor.Position()
	s.Scrolls = c.scrolls
	return s
}
