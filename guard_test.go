package vramcon

import "testing"

func TestIRQGuardSavesAndRestores(t *testing.T) {
	t.Parallel()
	enabled := uintptr(1)
	var restored []uintptr
	g := &IRQGuard{
		Disable: func() uintptr {
			prev := enabled
			enabled = 0
			return prev
		},
		Restore: func(state uintptr) {
			restored = append(restored, state)
			enabled = state
		},
	}

	c := NewConsole(NewSurface(), Options{Guard: g})
	c.Clear()
	if err := c.PutStr("masked"); err != nil {
		t.Fatal(err)
	}
	if enabled != 1 {
		t.Errorf("interrupts left masked")
	}
	if len(restored) != 2 {
		t.Errorf("guard taken %d times, want 2 (Clear, PutStr)", len(restored))
	}
}

func TestIRQGuardInsideTrapKeepsMasked(t *testing.T) {
	t.Parallel()
	enabled := uintptr(0) // already masked, as on trap entry
	g := &IRQGuard{
		Disable: func() uintptr { prev := enabled; enabled = 0; return prev },
		Restore: func(state uintptr) { enabled = state },
	}
	c := NewConsole(NewSurface(), Options{Guard: g})
	c.Clear()
	NewTrapHandler(c).Handle(0x40)
	if enabled != 0 {
		t.Error("guard unmasked interrupts inside the trap")
	}
}

func TestIRQGuardRestoredAfterPanic(t *testing.T) {
	t.Parallel()
	enabled := uintptr(1)
	g := &IRQGuard{
		Disable: func() uintptr { prev := enabled; enabled = 0; return prev },
		Restore: func(state uintptr) { enabled = state },
	}
	c := NewConsole(NewSurface(), Options{Guard: g})

	func() {
		defer func() { recover() }()
		c.Do(func(*Tx) error { panic("boom") })
	}()
	if enabled != 1 {
		t.Error("interrupts left masked after a panic inside Do")
	}
}

func TestNoGuard(t *testing.T) {
	t.Parallel()
	c := NewConsole(NewSurface(), Options{Guard: NoGuard()})
	c.Clear()
	if err := c.PutStr("ok"); err != nil {
		t.Fatal(err)
	}
	snap := c.Snapshot()
	if snap.Line(0)[:2] != "ok" {
		t.Errorf("row 0 = %q", snap.Line(0))
	}
}
