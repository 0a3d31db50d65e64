package vramcon

import "github.com/phroun/vramcon/internal/log"

// Diagnostic text written by TrapHandler.Handle.
const (
	trapPrefix  = "Hardware timer ticks! EPC = "
	trapCounter = ", Hardware counter = "
)

// TrapHandler is the timer-interrupt entry point. It owns the hardware-event
// counter and reports through the shared Console.
type TrapHandler struct {
	console *Console
	ticks   *Counter
}

// TrapOption configures a TrapHandler
type TrapOption func(*TrapHandler)

// WithCounterStart sets the first hardware counter value reported (default 0).
func WithCounterStart(start uint32) TrapOption {
	return func(h *TrapHandler) {
		h.ticks = NewCounter(start)
	}
}

// NewTrapHandler creates a handler writing to console.
func NewTrapHandler(console *Console, opts ...TrapOption) *TrapHandler {
	h := &TrapHandler{
		console: console,
		ticks:   NewCounter(0),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Handle reports one timer interrupt taken at epc:
//
//	Hardware timer ticks! EPC = 0x........, Hardware counter = 0x........
//
// The counter is read, printed, then incremented. The whole line is written
// inside one critical section. Only the low 32 bits of epc are shown.
func (h *TrapHandler) Handle(epc uintptr) {
	err := h.console.Do(func(tx *Tx) error {
		if err := tx.PutStr(trapPrefix); err != nil {
			return err
		}
		if err := PrintHex(tx, uint32(epc)); err != nil {
			return err
		}
		if err := tx.PutStr(trapCounter); err != nil {
			return err
		}
		if err := PrintHex(tx, h.ticks.Next()); err != nil {
			return err
		}
		return tx.PutChar('\n')
	})
	if err != nil {
		// Console keeps the cursor in range; reaching this means that
		// invariant is broken and the grid can no longer be trusted.
		log.Error("trap: %v", err)
		panic(err)
	}
}

// Count returns the hardware counter value the next Handle will print.
func (h *TrapHandler) Count() uint32 {
	return h.ticks.Load()
}
