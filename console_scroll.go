package vramcon

import "github.com/phroun/vramcon/internal/log"

// --- Vertical Scroll ---

// scrollLocked shifts every row up by one and blanks the last row. Rows are
// copied in increasing order so each source row is read before it is
// overwritten. The cursor row is left on the last row.
// Must be called with the guard held.
func (c *Console) scrollLocked() error {
	for i := 0; i < Rows-1; i++ {
		if err := c.surface.CopyRow(i+1, i); err != nil {
			return err
		}
	}
	if err := c.surface.FillRow(Rows-1, Blank); err != nil {
		return err
	}
	c.scrolls++
	log.Debug("console scrolled (total %d)", c.scrolls)
	return nil
}
