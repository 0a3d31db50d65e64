package main

import (
	"flag"
	"time"

	"github.com/phroun/vramcon/internal/config"
)

type cliArgs struct {
	config      string
	frontend    string
	logLevel    string
	snapshot    string
	duration    time.Duration
	printConfig bool
}

func parseFlags() cliArgs {
	var args cliArgs

	flag.StringVar(&args.config, "config", "vramsim.yaml", "Settings file (missing file means defaults)")
	flag.StringVar(&args.frontend, "frontend", "", "Viewer: plain, cli, tui, gtk, qt or ebiten")
	flag.StringVar(&args.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	flag.StringVar(&args.snapshot, "snapshot", "", "Write the final screen to this PNG file")
	flag.DurationVar(&args.duration, "duration", 0, "Stop after this long (0 runs until quit)")
	flag.BoolVar(&args.printConfig, "print-config", false, "Print the effective settings and exit")

	flag.Parse()
	return args
}

// apply overrides cfg with the flags that were set.
func (a cliArgs) apply(cfg *config.Settings) error {
	if a.frontend != "" {
		cfg.Frontend = a.frontend
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	if a.snapshot != "" {
		cfg.Snapshot = a.snapshot
	}
	if a.duration != 0 {
		cfg.Duration = a.duration
	}
	return cfg.Validate()
}
