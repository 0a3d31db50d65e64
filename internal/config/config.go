// Package config loads the hosted simulator settings from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/phroun/vramcon/internal/log"
	"github.com/phroun/vramcon/internal/palette"
)

// Frontends understood by cmd/vramsim.
const (
	FrontendPlain  = "plain"
	FrontendCLI    = "cli"
	FrontendTUI    = "tui"
	FrontendGTK    = "gtk"
	FrontendQt     = "qt"
	FrontendEbiten = "ebiten"
)

var frontends = map[string]bool{
	FrontendPlain:  true,
	FrontendCLI:    true,
	FrontendTUI:    true,
	FrontendGTK:    true,
	FrontendQt:     true,
	FrontendEbiten: true,
}

// Settings holds the simulator configuration.
type Settings struct {
	Frontend     string        `yaml:"frontend"`
	TickInterval time.Duration `yaml:"tick_interval"`
	StepDelay    time.Duration `yaml:"step_delay"`
	CounterStart uint32        `yaml:"counter_start"`
	Banner       []string      `yaml:"banner,omitempty"`
	LogLevel     string        `yaml:"log_level"`
	LogFile      string        `yaml:"log_file,omitempty"`
	Snapshot     string        `yaml:"snapshot,omitempty"`
	Duration     time.Duration `yaml:"duration,omitempty"`
	Colors       palette.Hex   `yaml:"colors,omitempty"`
}

// Defaults returns the settings used when no file is given.
func Defaults() *Settings {
	return &Settings{
		Frontend:     FrontendCLI,
		TickInterval: time.Second,
		StepDelay:    250 * time.Millisecond,
		LogLevel:     "info",
	}
}

// Load reads path over the defaults. A missing file is not an error.
// Environment overrides (VRAMSIM_FRONTEND, VRAMSIM_LOG_LEVEL,
// VRAMSIM_SNAPSHOT) are applied last.
func Load(path string) (*Settings, error) {
	s := Defaults()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			log.Debug("config %s not found, using defaults", path)
		case err != nil:
			return nil, fmt.Errorf("loading config: %w", err)
		default:
			if err := yaml.Unmarshal(data, s); err != nil {
				return nil, fmt.Errorf("parsing %s: %w", path, err)
			}
		}
	}
	applyEnv(s)
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func applyEnv(s *Settings) {
	if v := os.Getenv("VRAMSIM_FRONTEND"); v != "" {
		s.Frontend = v
	}
	if v := os.Getenv("VRAMSIM_LOG_LEVEL"); v != "" {
		s.LogLevel = v
	}
	if v := os.Getenv("VRAMSIM_SNAPSHOT"); v != "" {
		s.Snapshot = v
	}
}

// Validate rejects settings the simulator cannot run with.
func (s *Settings) Validate() error {
	if !frontends[s.Frontend] {
		return fmt.Errorf("unknown frontend %q", s.Frontend)
	}
	if s.TickInterval <= 0 {
		return fmt.Errorf("tick_interval must be positive, got %v", s.TickInterval)
	}
	if s.StepDelay < 0 {
		return fmt.Errorf("step_delay must not be negative, got %v", s.StepDelay)
	}
	if s.Duration < 0 {
		return fmt.Errorf("duration must not be negative, got %v", s.Duration)
	}
	if _, err := log.ParseLevel(s.LogLevel); err != nil {
		return err
	}
	if _, err := s.Colors.Scheme(); err != nil {
		return err
	}
	return nil
}

// Scheme returns the configured colors on top of palette.Default.
func (s *Settings) Scheme() palette.Scheme {
	scheme, err := s.Colors.Scheme()
	if err != nil {
		return palette.Default()
	}
	return scheme
}

// Marshal renders the settings as YAML (used by -print-config).
func (s *Settings) Marshal() ([]byte, error) {
	return yaml.Marshal(s)
}
