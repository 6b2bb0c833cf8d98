package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Drill DrillConfig `toml:"drill"`
}

// DrillConfig maps drill-related settings. Unset keys stay nil.
type DrillConfig struct {
	Modes       *[]string `toml:"modes"`
	FuguesSpeed *string   `toml:"fugues-speed"`
	DebounceMs  *int      `toml:"debounce-ms"`
	TickMs      *int      `toml:"tick-ms"`
	History     *int      `toml:"history"`
	MinOpacity  *float64  `toml:"min-opacity"`
	Keypad      *bool     `toml:"keypad"`
	Countdown   *int      `toml:"countdown"`
	NarrowWidth *int      `toml:"narrow-width"`
}

// LoadFile reads a TOML config from the given path. Missing file is not an error.
func LoadFile(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}
