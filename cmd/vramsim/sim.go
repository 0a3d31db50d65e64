package main

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/phroun/vramcon"
	"github.com/phroun/vramcon/internal/config"
	"github.com/phroun/vramcon/internal/log"
)

// Sim is the hosted machine: one console shared by the foreground program
// and a periodic timer standing in for the hardware interrupt.
type Sim struct {
	Console *vramcon.Console
	Program *vramcon.Program
	Trap    *vramcon.TrapHandler

	tick      time.Duration
	stepDelay time.Duration
}

// NewSim builds the machine described by cfg.
func NewSim(cfg *config.Settings) *Sim {
	console := vramcon.NewConsole(vramcon.NewSurface(), vramcon.Options{})
	program := vramcon.NewProgram(console)
	if len(cfg.Banner) > 0 {
		program.Banner = cfg.Banner
	}
	return &Sim{
		Console:   console,
		Program:   program,
		Trap:      vramcon.NewTrapHandler(console, vramcon.WithCounterStart(cfg.CounterStart)),
		tick:      cfg.TickInterval,
		stepDelay: cfg.StepDelay,
	}
}

// Run drives the program and the timer until ctx is cancelled.
func (s *Sim) Run(ctx context.Context) error {
	if s.stepDelay > 0 {
		d := s.stepDelay
		s.Program.Delay = func() {
			t := time.NewTimer(d)
			defer t.Stop()
			select {
			case <-ctx.Done():
			case <-t.C:
			}
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.Program.Run(ctx)
	})
	g.Go(func() error {
		return s.timer(ctx)
	})
	err := g.Wait()
	log.Info("sim stopped: %d interrupts, software counter %d", s.Trap.Count(), s.Program.Software())
	return err
}

// timer delivers one trap per tick at the program's current PC.
func (s *Sim) timer(ctx context.Context) error {
	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			pc := s.Program.PC()
			log.Debug("timer interrupt at pc %#x", pc)
			s.Trap.Handle(pc)
		}
	}
}

// Status is the counter summary shown by the viewers.
func (s *Sim) Status() string {
	buf := make([]byte, 0, 48)
	buf = append(buf, "HW "...)
	buf = vramcon.AppendHex(buf, s.Trap.Count())
	buf = append(buf, " SW "...)
	buf = vramcon.AppendHex(buf, s.Program.Software())
	buf = append(buf, " PC "...)
	buf = vramcon.AppendHex(buf, uint32(s.Program.PC()))
	return string(buf)
}
