package vramcon

import (
	"errors"
	"fmt"
)

// ErrOutOfBounds is matched by every error produced for a coordinate that falls
// outside the Rows x Cols grid.
var ErrOutOfBounds = errors.New("vramcon: coordinate out of bounds")

// BoundsError reports the offending coordinate. Col is -1 for whole-row
// operations.
type BoundsError struct {
	Op  string
	Row int
	Col int
}

func (e *BoundsError) Error() string {
	if e.Col < 0 {
		return fmt.Sprintf("vramcon: %s: row %d outside [0,%d)", e.Op, e.Row, Rows)
	}
	return fmt.Sprintf("vramcon: %s: (%d,%d) outside [0,%d)x[0,%d)", e.Op, e.Row, e.Col, Rows, Cols)
}

// Is lets errors.Is(err, ErrOutOfBounds) match any *BoundsError.
func (e *BoundsError) Is(target error) bool {
	return target == ErrOutOfBounds
}
