package vramcon

import "strings"

// Screen is a point-in-time copy of the grid, taken by Console.Snapshot.
// Front ends render from a Screen so they never hold the console guard while
// drawing.
type Screen struct {
	Cells   [Size]byte
	Cursor  Position
	Scrolls uint64
}

// Cell returns the byte at (row, col), or Blank when out of range.
func (s *Screen) Cell(row, col int) byte {
	if !inRow(row) || !inCol(col) {
		return Blank
	}
	return s.Cells[offset(row, col)]
}

// Row returns the raw bytes of one row, or nil when out of range
func (s *Screen) Row(row int) []byte {
	if !inRow(row) {
		return nil
	}
	start := offset(row, 0)
	return s.Cells[start : start+Cols]
}

// Line returns one row as a string
func (s *Screen) Line(row int) string {
	return string(s.Row(row))
}

// Text joins all rows with newlines, trailing blanks trimmed per row.
func (s *Screen) Text() string {
	var sb strings.Builder
	for r := 0; r < Rows; r++ {
		if r > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(strings.TrimRight(s.Line(r), " "))
	}
	return sb.String()
}
