package vramcon

import (
	"context"
	"sync/atomic"
)

// SpinIterations is the busy-wait calibration between two software counter
// reports on the target (roughly one visible line per timer period).
const SpinIterations = 1_000_000

// Glyph is the decorative byte written once at boot. It has no meaning
// beyond being drawn (code page 437 shows it as 'ë').
const Glyph byte = 137

// Text written by the foreground loop.
const (
	promptText   = "$ "
	softwareText = "Software counter = "
)

// Synthetic program counters reported while the program is in each phase.
// The hosted timer uses them as the interrupted address.
const (
	PCBoot   uintptr = 0x0000_0040
	PCPrompt uintptr = 0x0000_0120
	PCSpin   uintptr = 0x0000_0134
	PCReport uintptr = 0x0000_0150
)

// DefaultBanner is printed after the glyph at boot.
var DefaultBanner = []string{"2021 Howard Lau\n", "Hello, world!\n"}

// Program is the foreground loop: prompt, wait, count, report.
type Program struct {
	console  *Console
	software *Counter
	pc       atomic.Uintptr

	// Banner lines written at boot (default DefaultBanner).
	Banner []string

	// Delay runs between the prompt and the report (default: spin
	// SpinIterations times). Hosted runs replace it with a sleep.
	Delay func()
}

// NewProgram creates a program writing to console with its software
// counter at 0.
func NewProgram(console *Console) *Program {
	p := &Program{
		console:  console,
		software: NewCounter(0),
		Banner:   DefaultBanner,
		Delay:    func() { spin(SpinIterations) },
	}
	p.pc.Store(PCBoot)
	return p
}

// PC returns the synthetic program counter of the current phase.
func (p *Program) PC() uintptr {
	return p.pc.Load()
}

// Software returns the current software counter value.
func (p *Program) Software() uint32 {
	return p.software.Load()
}

// Boot clears the screen, writes the glyph and the banner.
func (p *Program) Boot() error {
	p.pc.Store(PCBoot)
	p.console.Clear()
	if err := p.console.PutChar(Glyph); err != nil {
		return err
	}
	for _, line := range p.Banner {
		if err := p.console.PutStr(line); err != nil {
			return err
		}
	}
	return nil
}

// Step runs one iteration of the idle loop:
//
//	$ Software counter = 0x........
//
// The counter is incremented before it is printed, so the first report
// shows 0x00000001.
func (p *Program) Step() error {
	p.pc.Store(PCPrompt)
	if err := p.console.PutStr(promptText); err != nil {
		return err
	}

	p.pc.Store(PCSpin)
	if p.Delay != nil {
		p.Delay()
	}

	p.pc.Store(PCReport)
	n := p.software.Inc()
	if err := p.console.PutStr(softwareText); err != nil {
		return err
	}
	if err := PrintHex(p.console, n); err != nil {
		return err
	}
	return p.console.PutChar('\n')
}

// Run boots and then steps until ctx is cancelled.
func (p *Program) Run(ctx context.Context) error {
	if err := p.Boot(); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}
		if err := p.Step(); err != nil {
			return err
		}
	}
}

var spinSink uint32

// spin burns n loop iterations.
func spin(n int) {
	var x uint32
	for i := 0; i < n; i++ {
		x++
	}
	atomic.StoreUint32(&spinSink, x)
}
