package vramcon

import "sync"

// Guard is the critical section taken around every Console mutation. The
// timer trap and the foreground program share one Console, so each Console
// operation (and each Do batch) runs with the guard held.
type Guard interface {
	Lock()
	Unlock()
}

// NewMutexGuard is the hosted guard: the trap runs on its own goroutine and
// simply waits for the foreground write to finish.
func NewMutexGuard() Guard {
	return &sync.Mutex{}
}

// IRQGuard masks interrupts for the duration of the critical section. On the
// target the trap cannot be delivered while masked, so a lock that the trap
// would block on is never needed. Disable returns the previous interrupt
// state and Restore puts it back, which keeps the guard correct when it is
// taken from inside the trap itself (interrupts are already off there).
type IRQGuard struct {
	Disable func() uintptr
	Restore func(state uintptr)

	saved uintptr
}

// Lock masks interrupts
func (g *IRQGuard) Lock() {
	g.saved = g.Disable()
}

// Unlock restores the interrupt state saved by Lock
func (g *IRQGuard) Unlock() {
	g.Restore(g.saved)
}

// nopGuard is for single-threaded use where nothing can interrupt.
type nopGuard struct{}

func (nopGuard) Lock()   {}
func (nopGuard) Unlock() {}

// NoGuard returns a guard that does nothing.
func NoGuard() Guard { return nopGuard{} }
