// Package vramcon drives a fixed-size, memory-mapped character grid.
//
// This package contains:
//   - Surface: the raw Rows x Cols byte grid (video memory)
//   - Cursor: the current write position
//   - Console: character and string output with newline, carriage return,
//     wrap and scroll
//   - Hex formatting and the timer trap handler that report through a Console
//   - Program: the idle loop that counts and prints in the foreground
//
// Front ends (cli, tui, gtk, qt, ebitenview, snapshot) only read the grid
// through Console.Snapshot and are notified of changes via a dirty callback.
package vramcon

import "strings"

// Grid geometry. One byte per cell, row-major, stride Cols.
const (
	Rows = 30
	Cols = 80
	Size = Rows * Cols

	// Blank is what Clear and scroll write into emptied cells.
	Blank byte = ' '
)

// Surface is the character grid. The backing slice is either heap memory or a
// window onto the display's physical address (see MapSurface); callers never
// see the address itself.
type Surface struct {
	cells []byte
}

// NewSurface returns a heap-backed surface. Its contents are zero until Clear.
func NewSurface() *Surface {
	return &Surface{cells: make([]byte, Size)}
}

// newSurfaceFrom wraps an existing region. It must be exactly Size bytes.
func newSurfaceFrom(region []byte) *Surface {
	if len(region) != Size {
		panic("vramcon: surface region must be Rows*Cols bytes")
	}
	return &Surface{cells: region}
}

// --- Bounds ---

func inRow(row int) bool { return row >= 0 && row < Rows }
func inCol(col int) bool { return col >= 0 && col < Cols }

// offset computes row*Cols+col. Callers have already checked the bounds.
func offset(row, col int) int {
	return row*Cols + col
}

// --- Cell Access Methods ---

// Clear fills every cell with Blank
func (s *Surface) Clear() {
	for i := range s.cells {
		s.cells[i] = Blank
	}
}

// WriteCell stores ch at (row, col)
func (s *Surface) WriteCell(row, col int, ch byte) error {
	if !inRow(row) || !inCol(col) {
		return &BoundsError{Op: "write", Row: row, Col: col}
	}
	s.cells[offset(row, col)] = ch
	return nil
}

// Cell returns the byte at (row, col)
func (s *Surface) Cell(row, col int) (byte, error) {
	if !inRow(row) || !inCol(col) {
		return 0, &BoundsError{Op: "read", Row: row, Col: col}
	}
	return s.cells[offset(row, col)], nil
}

// --- Row Operations ---

// CopyRow copies all Cols cells of row src over row dst.
func (s *Surface) CopyRow(src, dst int) error {
	if !inRow(src) {
		return &BoundsError{Op: "copy", Row: src, Col: -1}
	}
	if !inRow(dst) {
		return &BoundsError{Op: "copy", Row: dst, Col: -1}
	}
	copy(s.row(dst), s.row(src))
	return nil
}

// FillRow overwrites every cell of row with ch.
func (s *Surface) FillRow(row int, ch byte) error {
	if !inRow(row) {
		return &BoundsError{Op: "fill", Row: row, Col: -1}
	}
	line := s.row(row)
	for i := range line {
		line[i] = ch
	}
	return nil
}

// Row returns the text of one row.
func (s *Surface) Row(row int) (string, error) {
	if !inRow(row) {
		return "", &BoundsError{Op: "read", Row: row, Col: -1}
	}
	return string(s.row(row)), nil
}

// row slices one row out of the backing region; row must be valid.
func (s *Surface) row(row int) []byte {
	start := offset(row, 0)
	return s.cells[start : start+Cols : start+Cols]
}

// Lines returns every row as a string, top to bottom.
func (s *Surface) Lines() []string {
	lines := make([]string, Rows)
	for r := 0; r < Rows; r++ {
		lines[r] = string(s.row(r))
	}
	return lines
}

// String joins the rows with newlines.
func (s *Surface) String() string {
	return strings.Join(s.Lines(), "\n")
}
