// Package config layers numa settings: defaults, then the TOML file, then
// the environment. Command-line flags are applied last by cmd.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/abhisek/numa/internal/sequence"
)

// Config holds all drill runner configuration.
type Config struct {
	// Modes are the session modifiers enabled at start.
	Modes []string

	// FuguesSpeed is the default Fugues speed when no preference is stored.
	FuguesSpeed string

	// Debounce is the quiet period before a qualifying input is checked.
	Debounce time.Duration

	// Tick is the live timer refresh interval.
	Tick time.Duration

	// HistoryLimit caps the answer history. Default: 10.
	HistoryLimit int

	// MinOpacity is the fade of the oldest history entry. Default: 0.2.
	MinOpacity float64

	// RestartAttempts bounds the reshuffles tried on restart. Default: 5.
	RestartAttempts int

	// NarrowWidth is the terminal width below which the HUD stacks.
	NarrowWidth int

	// Keypad shows the on-screen keypad at start.
	Keypad bool

	// Countdown, when non-zero, runs a session countdown next to the chrono.
	Countdown time.Duration

	// LogPath receives debug logs while the TUI runs. Empty disables logging.
	LogPath string

	// DBPath overrides the SQLite database location.
	DBPath string
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		FuguesSpeed:     "1H",
		Debounce:        300 * time.Millisecond,
		Tick:            120 * time.Millisecond,
		HistoryLimit:    10,
		MinOpacity:      0.2,
		RestartAttempts: 5,
		NarrowWidth:     64,
	}
}

// Apply overlays the values set in the file.
func (c *Config) Apply(fc FileConfig) {
	d := fc.Drill
	if d.Modes != nil {
		c.Modes = *d.Modes
	}
	if d.FuguesSpeed != nil {
		c.FuguesSpeed = *d.FuguesSpeed
	}
	if d.DebounceMs != nil {
		c.Debounce = time.Duration(*d.DebounceMs) * time.Millisecond
	}
	if d.TickMs != nil {
		c.Tick = time.Duration(*d.TickMs) * time.Millisecond
	}
	if d.History != nil {
		c.HistoryLimit = *d.History
	}
	if d.MinOpacity != nil {
		c.MinOpacity = *d.MinOpacity
	}
	if d.Keypad != nil {
		c.Keypad = *d.Keypad
	}
	if d.Countdown != nil {
		c.Countdown = time.Duration(*d.Countdown) * time.Second
	}
	if d.NarrowWidth != nil {
		c.NarrowWidth = *d.NarrowWidth
	}
}

// ApplyEnv overlays NUMA_* environment variables.
func (c *Config) ApplyEnv() {
	if p := os.Getenv("NUMA_DB"); p != "" {
		c.DBPath = p
	}
	if p := os.Getenv("NUMA_LOG"); p != "" {
		c.LogPath = p
	}
	if m := os.Getenv("NUMA_MODES"); m != "" {
		c.Modes = strings.Split(m, ",")
	}
}

// Load builds the effective Config: defaults, the TOML file at path (a
// missing file is not an error) and the environment.
func Load(path string) (Config, error) {
	cfg := Default()
	fc, err := LoadFile(path)
	if err != nil {
		return cfg, err
	}
	cfg.Apply(fc)
	cfg.ApplyEnv()
	return cfg, cfg.Validate()
}

// Validate rejects out-of-range values.
func (c Config) Validate() error {
	if _, err := sequence.ParseModes(c.Modes); err != nil {
		return fmt.Errorf("modes: %w", err)
	}
	if c.Debounce <= 0 {
		return fmt.Errorf("debounce must be positive, got %v", c.Debounce)
	}
	if c.Tick <= 0 {
		return fmt.Errorf("tick must be positive, got %v", c.Tick)
	}
	if c.HistoryLimit < 1 {
		return fmt.Errorf("history must be at least 1, got %d", c.HistoryLimit)
	}
	if c.MinOpacity <= 0 || c.MinOpacity > 1 {
		return fmt.Errorf("min-opacity must be in (0, 1], got %v", c.MinOpacity)
	}
	if c.Countdown < 0 {
		return fmt.Errorf("countdown must not be negative, got %v", c.Countdown)
	}
	return nil
}
