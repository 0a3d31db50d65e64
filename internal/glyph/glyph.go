// Package glyph maps raw video-memory bytes to the runes host front ends
// draw. The display hardware uses code page 437, so byte 137 is 'ë'.
package glyph

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/encoding/charmap"

	"github.com/phroun/vramcon"
)

// narrow measures as a non-CJK terminal does, regardless of locale.
var narrow = &runewidth.Condition{EastAsianWidth: false}

// Width returns the host column width of r.
func Width(r rune) int {
	return narrow.RuneWidth(r)
}

// Rune decodes one cell. Control bytes (never printed by the console, but
// present in an uncleared region) show as blanks.
func Rune(b byte) rune {
	if b < 0x20 || b == 0x7F {
		return ' '
	}
	r := charmap.CodePage437.DecodeByte(b)
	// Every cell is one column wide on the real display; anything a host
	// terminal would draw wider or zero-width is replaced.
	if Width(r) != 1 {
		return '?'
	}
	return r
}

// Line decodes a row of cells.
func Line(cells []byte) string {
	var sb strings.Builder
	sb.Grow(len(cells))
	for _, b := range cells {
		sb.WriteRune(Rune(b))
	}
	return sb.String()
}

// Lines decodes every row of a screen.
func Lines(s *vramcon.Screen) []string {
	lines := make([]string, vramcon.Rows)
	for r := range lines {
		lines[r] = Line(s.Row(r))
	}
	return lines
}
