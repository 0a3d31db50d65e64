package palette

import (
	"image/color"
	"testing"
)

func TestParseHex(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{"#FFFFFF", Color{255, 255, 255}, false},
		{"#00dc5a", Color{0x00, 0xDC, 0x5A}, false},
		{"#fff", Color{255, 255, 255}, false},
		{"#123", Color{0x11, 0x22, 0x33}, false},
		{"FFFFFF", Color{}, true},
		{"#12", Color{}, true},
		{"#GG0000", Color{}, true},
		{"", Color{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := ParseHex(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseHex(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseHex(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestToHexRoundTrip(t *testing.T) {
	t.Parallel()

	c := Color{0x0A, 0xB0, 0xFF}
	if got := c.ToHex(); got != "#0AB0FF" {
		t.Errorf("ToHex() = %q", got)
	}
}

func TestConversions(t *testing.T) {
	t.Parallel()

	c := Color{255, 0, 51}
	if got := c.RGBA(); got != (color.RGBA{255, 0, 51, 255}) {
		t.Errorf("RGBA() = %v", got)
	}
	r, g, b := c.Float()
	if r != 1 || g != 0 || b != 0.2 {
		t.Errorf("Float() = %v %v %v", r, g, b)
	}
}

func TestHexScheme(t *testing.T) {
	t.Parallel()

	s, err := Hex{Background: "#101010"}.Scheme()
	if err != nil {
		t.Fatal(err)
	}
	def := Default()
	if s.Background != (Color{0x10, 0x10, 0x10}) {
		t.Errorf("Background = %+v", s.Background)
	}
	if s.Foreground != def.Foreground || s.Cursor != def.Cursor {
		t.Error("unset fields changed")
	}

	if _, err := (Hex{Cursor: "green"}).Scheme(); err == nil {
		t.Error("bad color accepted")
	}
}
