package vramcon

import (
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"
)

func newTestConsole(t *testing.T) *Console {
	t.Helper()
	c := NewConsole(NewSurface(), Options{})
	c.Clear()
	return c
}

// moveTo positions the cursor directly; tests only.
func moveTo(c *Console, row, col int) {
	c.mu.Lock()
	c.cursor.Set(row, col)
	c.mu.Unlock()
}

func blankLine() string { return strings.Repeat(" ", Cols) }

func TestPutCharAdvancesColumn(t *testing.T) {
	t.Parallel()
	c := newTestConsole(t)

	for _, start := range []Position{{0, 0}, {5, 10}, {Rows - 1, Cols - 2}} {
		moveTo(c, start.Row, start.Col)
		if err := c.PutChar('k'); err != nil {
			t.Fatal(err)
		}
		got := c.Cursor()
		if got.Row != start.Row || got.Col != start.Col+1 {
			t.Errorf("from %+v cursor = %+v, want col+1", start, got)
		}
		snap := c.Snapshot()
		if ch := snap.Cell(start.Row, start.Col); ch != 'k' {
			t.Errorf("cell %+v = %q, want 'k'", start, ch)
		}
	}
}

func TestNewlineMovesDown(t *testing.T) {
	t.Parallel()
	c := newTestConsole(t)
	moveTo(c, 4, 17)
	if err := c.PutChar('\n'); err != nil {
		t.Fatal(err)
	}
	if got := c.Cursor(); got != (Position{Row: 5, Col: 0}) {
		t.Errorf("cursor = %+v, want {5 0}", got)
	}
	if c.Scrolls() != 0 {
		t.Errorf("unexpected scroll")
	}
}

func TestNewlineOnLastRowScrolls(t *testing.T) {
	t.Parallel()
	c := newTestConsole(t)
	// Fill every row with its own letter
	for r := 0; r < Rows; r++ {
		moveTo(c, r, 0)
		if err := c.PutStr(strings.Repeat(string(rune('A'+r%26)), 3)); err != nil {
			t.Fatal(err)
		}
	}
	before := c.Snapshot()

	moveTo(c, Rows-1, 40)
	if err := c.PutChar('\n'); err != nil {
		t.Fatal(err)
	}

	if got := c.Cursor(); got != (Position{Row: Rows - 1, Col: 0}) {
		t.Errorf("cursor = %+v, want last row col 0", got)
	}
	after := c.Snapshot()
	for r := 0; r < Rows-1; r++ {
		if after.Line(r) != before.Line(r+1) {
			t.Errorf("row %d = %q, want old row %d %q", r, after.Line(r), r+1, before.Line(r+1))
		}
	}
	if after.Line(Rows-1) != blankLine() {
		t.Errorf("last row not blank: %q", after.Line(Rows-1))
	}
	if c.Scrolls() != 1 {
		t.Errorf("Scrolls = %d, want 1", c.Scrolls())
	}
}

func TestCarriageReturn(t *testing.T) {
	t.Parallel()
	c := newTestConsole(t)
	for _, start := range []Position{{0, 0}, {3, 9}, {Rows - 1, Cols - 1}} {
		moveTo(c, start.Row, start.Col)
		if err := c.PutChar('\r'); err != nil {
			t.Fatal(err)
		}
		if got := c.Cursor(); got != (Position{Row: start.Row, Col: 0}) {
			t.Errorf("from %+v cursor = %+v", start, got)
		}
	}
	if c.Scrolls() != 0 {
		t.Error("carriage return scrolled")
	}
}

func TestCarriageReturnOverwrites(t *testing.T) {
	t.Parallel()
	c := newTestConsole(t)
	if err := c.PutStr("hello\rJ"); err != nil {
		t.Fatal(err)
	}
	snap := c.Snapshot()
	if got := strings.TrimRight(snap.Line(0), " "); got != "Jello" {
		t.Errorf("line 0 = %q, want Jello", got)
	}
}

func TestWrapAtLastColumn(t *testing.T) {
	t.Parallel()
	c := newTestConsole(t)
	moveTo(c, 2, Cols-1)
	if err := c.PutChar('w'); err != nil {
		t.Fatal(err)
	}
	if got := c.Cursor(); got != (Position{Row: 3, Col: 1}) {
		t.Errorf("cursor = %+v, want {3 1}", got)
	}
	snap := c.Snapshot()
	if snap.Cell(3, 0) != 'w' {
		t.Errorf("glyph not at start of next row: %q", snap.Line(3))
	}
	if snap.Cell(2, Cols-1) != Blank {
		t.Errorf("glyph written at last column")
	}
}

func TestWrapAtLastColumnOfLastRowScrolls(t *testing.T) {
	t.Parallel()
	c := newTestConsole(t)
	moveTo(c, 0, 0)
	if err := c.PutStr("top"); err != nil {
		t.Fatal(err)
	}
	moveTo(c, Rows-1, 0)
	if err := c.PutStr("bottom"); err != nil {
		t.Fatal(err)
	}
	moveTo(c, Rows-1, Cols-1)
	if err := c.PutChar('z'); err != nil {
		t.Fatal(err)
	}

	if c.Scrolls() != 1 {
		t.Fatalf("Scrolls = %d, want exactly 1", c.Scrolls())
	}
	if got := c.Cursor(); got != (Position{Row: Rows - 1, Col: 1}) {
		t.Errorf("cursor = %+v", got)
	}
	snap := c.Snapshot()
	if got := strings.TrimRight(snap.Line(Rows-2), " "); got != "bottom" {
		t.Errorf("previous last row = %q, want bottom", got)
	}
	if got := strings.TrimRight(snap.Line(Rows-1), " "); got != "z" {
		t.Errorf("last row = %q, want z", got)
	}
	if strings.Contains(snap.Text(), "top") {
		t.Error("top row did not scroll off")
	}
}

func TestLongLineWrapsEvery79Columns(t *testing.T) {
	t.Parallel()
	c := newTestConsole(t)
	line := strings.Repeat("x", 200)
	if err := c.PutStr(line); err != nil {
		t.Fatal(err)
	}
	snap := c.Snapshot()
	// Last column is never written: 79 glyphs per row.
	want := []int{Cols - 1, Cols - 1, 200 - 2*(Cols-1)}
	for r, n := range want {
		got := strings.TrimRight(snap.Line(r), " ")
		if len(got) != n {
			t.Errorf("row %d has %d glyphs, want %d", r, len(got), n)
		}
	}
	if got := c.Cursor(); got != (Position{Row: 2, Col: want[2]}) {
		t.Errorf("cursor = %+v", got)
	}
}

func TestScrollDropsFirstLine(t *testing.T) {
	t.Parallel()
	c := newTestConsole(t)
	label := func(i int) string { return fmt.Sprintf("L%02d", i) }

	// Rows newline-terminated lines: the last newline scrolls once.
	for i := 1; i <= Rows; i++ {
		if err := c.PutStr(label(i) + "\n"); err != nil {
			t.Fatal(err)
		}
	}
	snap := c.Snapshot()
	for r := 0; r < Rows-1; r++ {
		if got := strings.TrimRight(snap.Line(r), " "); got != label(r+2) {
			t.Errorf("row %d = %q, want %q", r, got, label(r+2))
		}
	}
	if snap.Line(Rows-1) != blankLine() {
		t.Errorf("last row = %q, want blank", snap.Line(Rows-1))
	}
	if strings.Contains(snap.Text(), label(1)) {
		t.Error("first line still visible")
	}

	// One more line pushes the next one off as well.
	if err := c.PutStr(label(Rows+1) + "\n"); err != nil {
		t.Fatal(err)
	}
	snap = c.Snapshot()
	for r := 0; r < Rows-1; r++ {
		if got := strings.TrimRight(snap.Line(r), " "); got != label(r+3) {
			t.Errorf("after extra line row %d = %q, want %q", r, got, label(r+3))
		}
	}
	if c.Scrolls() != 2 {
		t.Errorf("Scrolls = %d, want 2", c.Scrolls())
	}
}

func TestCursorAlwaysInBounds(t *testing.T) {
	t.Parallel()
	c := newTestConsole(t)
	input := strings.Repeat("abc\r\ndef\n"+strings.Repeat("y", 97)+"\n\n", 40)
	for i := 0; i < len(input); i++ {
		if err := c.PutChar(input[i]); err != nil {
			t.Fatalf("PutChar #%d: %v", i, err)
		}
		pos := c.Cursor()
		if pos.Row < 0 || pos.Row >= Rows || pos.Col < 0 || pos.Col >= Cols {
			t.Fatalf("cursor %+v out of bounds after byte %d", pos, i)
		}
	}
}

func TestWriteImplementsIOWriter(t *testing.T) {
	t.Parallel()
	c := newTestConsole(t)
	n, err := fmt.Fprintf(c, "n=%d\n", 42)
	if err != nil {
		t.Fatal(err)
	}
	if n != 5 {
		t.Errorf("wrote %d bytes, want 5", n)
	}
	snap := c.Snapshot()
	if got := strings.TrimRight(snap.Line(0), " "); got != "n=42" {
		t.Errorf("line 0 = %q", got)
	}
}

func TestClearHomesCursor(t *testing.T) {
	t.Parallel()
	c := newTestConsole(t)
	if err := c.PutStr("some text\nmore"); err != nil {
		t.Fatal(err)
	}
	c.Clear()
	if got := c.Cursor(); got != (Position{}) {
		t.Errorf("cursor = %+v after Clear", got)
	}
	snap := c.Snapshot()
	for i, b := range snap.Cells {
		if b != Blank {
			t.Fatalf("cell %d = %q after Clear", i, b)
		}
	}
}

func TestDirtyCallback(t *testing.T) {
	t.Parallel()
	c := newTestConsole(t)
	calls := 0
	c.SetDirtyCallback(func() {
		calls++
		// The callback runs outside the guard.
		_ = c.Snapshot()
	})
	if err := c.PutStr("abc"); err != nil {
		t.Fatal(err)
	}
	c.Clear()
	if calls != 2 {
		t.Errorf("callback ran %d times, want 2", calls)
	}
}

func TestDoKeepsBatchTogether(t *testing.T) {
	t.Parallel()
	c := newTestConsole(t)

	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			line := strings.Repeat(string(rune('a'+g)), 20)
			for i := 0; i < 25; i++ {
				err := c.Do(func(tx *Tx) error {
					if err := tx.PutStr(line); err != nil {
						return err
					}
					return tx.PutChar('\n')
				})
				if err != nil {
					t.Error(err)
					return
				}
			}
		}(g)
	}
	wg.Wait()

	snap := c.Snapshot()
	for r := 0; r < Rows-1; r++ {
		got := strings.TrimRight(snap.Line(r), " ")
		if len(got) != 20 || strings.Trim(got, got[:1]) != "" {
			t.Errorf("row %d interleaved: %q", r, got)
		}
	}
}

func TestDoReleasesGuardOnPanic(t *testing.T) {
	t.Parallel()
	c := newTestConsole(t)

	func() {
		defer func() {
			if recover() == nil {
				t.Error("panic inside Do was swallowed")
			}
		}()
		c.Do(func(tx *Tx) error {
			if err := tx.PutStr("ab"); err != nil {
				return err
			}
			panic("write failed")
		})
	}()

	done := make(chan error, 1)
	go func() { done <- c.PutChar('x') }()
	select {
	case err := <-done:
		if err != nil {
			t.Fatal(err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("guard still held after a panic inside Do")
	}
	snap := c.Snapshot()
	if got := snap.Line(0)[:3]; got != "abx" {
		t.Errorf("row 0 = %q, want %q", got, "abx")
	}
}

func TestScreenOutOfRange(t *testing.T) {
	t.Parallel()
	var s Screen
	if s.Cell(-1, 0) != Blank || s.Cell(0, Cols) != Blank {
		t.Error("out-of-range Cell should read Blank")
	}
	if s.Row(Rows) != nil {
		t.Error("out-of-range Row should be nil")
	}
}
