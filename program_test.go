package vramcon

import (
	"context"
	"strings"
	"testing"
	"time"
)

func newTestProgram(t *testing.T) (*Program, *Console) {
	t.Helper()
	c := NewConsole(NewSurface(), Options{})
	p := NewProgram(c)
	p.Delay = nil
	return p, c
}

func TestBootWritesGlyphAndBanner(t *testing.T) {
	t.Parallel()
	p, c := newTestProgram(t)
	if err := p.Boot(); err != nil {
		t.Fatal(err)
	}
	snap := c.Snapshot()
	if snap.Cell(0, 0) != Glyph {
		t.Errorf("cell (0,0) = %d, want glyph %d", snap.Cell(0, 0), Glyph)
	}
	if got := strings.TrimRight(snap.Line(0), " "); got != "\x892021 Howard Lau" {
		t.Errorf("row 0 = %q", got)
	}
	if got := strings.TrimRight(snap.Line(1), " "); got != "Hello, world!" {
		t.Errorf("row 1 = %q", got)
	}
	if got := c.Cursor(); got != (Position{Row: 2, Col: 0}) {
		t.Errorf("cursor = %+v", got)
	}
}

func TestBootCustomBanner(t *testing.T) {
	t.Parallel()
	p, c := newTestProgram(t)
	p.Banner = []string{"booting\n"}
	if err := p.Boot(); err != nil {
		t.Fatal(err)
	}
	snap := c.Snapshot()
	if got := strings.TrimRight(snap.Line(0), " "); got != "\x89booting" {
		t.Errorf("row 0 = %q", got)
	}
	if got := c.Cursor(); got != (Position{Row: 1, Col: 0}) {
		t.Errorf("cursor = %+v", got)
	}
}

func TestStepReportsPreIncrementedCounter(t *testing.T) {
	t.Parallel()
	p, c := newTestProgram(t)
	if err := p.Boot(); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		if err := p.Step(); err != nil {
			t.Fatal(err)
		}
	}
	snap := c.Snapshot()
	want := []string{
		"$ Software counter = 0x00000001",
		"$ Software counter = 0x00000002",
		"$ Software counter = 0x00000003",
	}
	for i, w := range want {
		if got := strings.TrimRight(snap.Line(i+2), " "); got != w {
			t.Errorf("row %d = %q, want %q", i+2, got, w)
		}
	}
	if p.Software() != 3 {
		t.Errorf("Software = %d", p.Software())
	}
	if p.PC() != PCReport {
		t.Errorf("PC = %#x, want report phase", p.PC())
	}
}

func TestStepRunsDelayBetweenPromptAndReport(t *testing.T) {
	t.Parallel()
	p, c := newTestProgram(t)
	if err := p.Boot(); err != nil {
		t.Fatal(err)
	}
	var during string
	var pc uintptr
	p.Delay = func() {
		snap := c.Snapshot()
		during = strings.TrimRight(snap.Line(2), " ")
		pc = p.PC()
	}
	if err := p.Step(); err != nil {
		t.Fatal(err)
	}
	if during != "$" {
		t.Errorf("row during delay = %q, want prompt only", during)
	}
	if pc != PCSpin {
		t.Errorf("PC during delay = %#x, want %#x", pc, PCSpin)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	t.Parallel()
	p, c := newTestProgram(t)
	ctx, cancel := context.WithCancel(context.Background())
	p.Delay = func() { time.Sleep(time.Millisecond) }

	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()

	deadline := time.After(5 * time.Second)
	for p.Software() < 40 {
		select {
		case <-deadline:
			t.Fatal("program made no progress")
		default:
			time.Sleep(time.Millisecond)
		}
	}
	cancel()
	if err := <-done; err != nil {
		t.Fatalf("Run: %v", err)
	}
	// Enough lines were printed to scroll the banner away.
	if c.Scrolls() == 0 {
		t.Error("expected the screen to have scrolled")
	}
}

func TestSpinCompletes(t *testing.T) {
	t.Parallel()
	spin(1000)
}
