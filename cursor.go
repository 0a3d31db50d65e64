package vramcon

// Position is a (row, column) cell coordinate.
type Position struct {
	Row int
	Col int
}

// Cursor is the current write position. Only Console mutates it, and Console
// keeps it inside the grid after every operation.
type Cursor struct {
	row int
	col int
}

// --- Cursor Position Methods ---

// Row returns the cursor row
func (c *Cursor) Row() int { return c.row }

// Col returns the cursor column
func (c *Cursor) Col() int { return c.col }

// Position returns the cursor as a Position
func (c *Cursor) Position() Position {
	return Position{Row: c.row, Col: c.col}
}

// Set assigns both coordinates; the caller keeps them in range.
func (c *Cursor) Set(row, col int) {
	c.row = row
	c.col = col
}

// --- Cursor Movement ---

// AdvanceCol moves one column right
func (c *Cursor) AdvanceCol() { c.col++ }

// ResetCol returns to column 0
func (c *Cursor) ResetCol() { c.col = 0 }

// atLastRow reports whether another row advance has to scroll.
func (c *Cursor) atLastRow() bool { return c.row == Rows-1 }

// atLastCol reports whether the next glyph must wrap first.
func (c *Cursor) atLastCol() bool { return c.col == Cols-1 }

// valid reports whether the cursor addresses a cell of the grid.
func (c *Cursor) valid() bool { return inRow(c.row) && inCol(c.col) }
