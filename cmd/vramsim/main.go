// Command vramsim runs the text console on a simulated machine: the
// foreground prompt loop and a periodic timer interrupt write to the same
// 30x80 grid, which one of several viewers displays.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/phroun/vramcon/internal/config"
	"github.com/phroun/vramcon/internal/log"
	"github.com/phroun/vramcon/snapshot"
)

// GTK and Qt must run on the main thread (required on macOS).
func init() {
	runtime.LockOSThread()
}

func main() {
	args := parseFlags()
	if err := run(args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args cliArgs) error {
	cfg, err := config.Load(args.config)
	if err != nil {
		return err
	}
	if err := args.apply(cfg); err != nil {
		return err
	}

	if args.printConfig {
		data, err := cfg.Marshal()
		if err != nil {
			return fmt.Errorf("marshal config: %w", err)
		}
		_, err = os.Stdout.Write(data)
		return err
	}

	closeLog, err := setupLog(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if cfg.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Duration)
		defer cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sim := NewSim(cfg)
	log.Info("vramsim starting: frontend=%s tick=%v", cfg.Frontend, cfg.TickInterval)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return sim.Run(gctx)
	})

	// The viewer owns the main goroutine; closing it stops the machine.
	viewErr := runFrontend(gctx, cfg, sim)
	cancel()
	simErr := g.Wait()

	if cfg.Snapshot != "" {
		screen := sim.Console.Snapshot()
		if err := snapshot.Save(cfg.Snapshot, &screen, cfg.Scheme()); err != nil {
			log.Error("%v", err)
			return errors.Join(viewErr, simErr, err)
		}
		log.Info("snapshot written to %s", cfg.Snapshot)
	}
	return errors.Join(viewErr, simErr)
}

// setupLog applies the level and destination. Full-screen terminal viewers
// without a log file discard log output so it cannot corrupt the display.
func setupLog(cfg *config.Settings) (func(), error) {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	log.SetLevel(level)

	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		log.SetOutput(f)
		return func() {
			log.SetOutput(os.Stderr)
			f.Close()
		}, nil
	}

	switch cfg.Frontend {
	case config.FrontendCLI, config.FrontendTUI:
		log.SetOutput(io.Discard)
		return func() { log.SetOutput(os.Stderr) }, nil
	}
	return func() {}, nil
}
