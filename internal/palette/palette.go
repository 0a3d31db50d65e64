// Package palette holds the colors the graphical front ends paint with.
package palette

import (
	"fmt"
	"image/color"
)

// Color is a 24-bit RGB color
type Color struct {
	R, G, B uint8
}

// RGBA converts c to an opaque image/color value.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xFF}
}

// Float returns the components scaled to [0,1] for cairo and gg.
func (c Color) Float() (r, g, b float64) {
	return float64(c.R) / 255.0, float64(c.G) / 255.0, float64(c.B) / 255.0
}

// ToHex returns the color as "#RRGGBB".
func (c Color) ToHex() string {
	return "#" + hexByte(c.R) + hexByte(c.G) + hexByte(c.B)
}

func hexByte(b uint8) string {
	const hex = "0123456789ABCDEF"
	return string([]byte{hex[b>>4], hex[b&0x0F]})
}

// ParseHex parses "#RRGGBB" or "#RGB".
func ParseHex(s string) (Color, error) {
	if len(s) == 0 || s[0] != '#' {
		return Color{}, fmt.Errorf("color %q: missing '#'", s)
	}
	h := s[1:]
	for i := 0; i < len(h); i++ {
		if _, ok := nibble(h[i]); !ok {
			return Color{}, fmt.Errorf("color %q: bad digit %q", s, h[i])
		}
	}
	n := func(i int) uint8 { v, _ := nibble(h[i]); return v }
	switch len(h) {
	case 3:
		return Color{n(0) * 17, n(1) * 17, n(2) * 17}, nil
	case 6:
		return Color{n(0)<<4 | n(1), n(2)<<4 | n(3), n(4)<<4 | n(5)}, nil
	default:
		return Color{}, fmt.Errorf("color %q: want #RGB or #RRGGBB", s)
	}
}

func nibble(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}

// Scheme is the set of colors one viewer uses.
type Scheme struct {
	Foreground Color
	Background Color
	Cursor     Color
	Status     Color // status bar background
}

// Default is light grey on black with a green cursor.
func Default() Scheme {
	return Scheme{
		Foreground: Color{0xC0, 0xC0, 0xC0},
		Background: Color{0x00, 0x00, 0x00},
		Cursor:     Color{0x00, 0xDC, 0x5A},
		Status:     Color{0x28, 0x28, 0x28},
	}
}

// Hex is the config-file form of a Scheme. Empty fields keep the default.
type Hex struct {
	Foreground string `yaml:"foreground,omitempty"`
	Background string `yaml:"background,omitempty"`
	Cursor     string `yaml:"cursor,omitempty"`
	Status     string `yaml:"status,omitempty"`
}

// Scheme resolves h on top of Default.
func (h Hex) Scheme() (Scheme, error) {
	s := Default()
	fields := []struct {
		in  string
		out *Color
	}{
		{h.Foreground, &s.Foreground},
		{h.Background, &s.Background},
		{h.Cursor, &s.Cursor},
		{h.Status, &s.Status},
	}
	for _, f := range fields {
		if f.in == "" {
			continue
		}
		c, err := ParseHex(f.in)
		if err != nil {
			return Scheme{}, err
		}
		*f.out = c
	}
	return s, nil
}
