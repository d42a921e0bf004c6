package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the optional printer-profile file. Profiles bundle the settings
// of one physical printer so operators pick "--profile warehouse" instead of
// repeating dpi and address flags.
//
//	default_profile = "warehouse"
//
//	[profiles.warehouse]
//	dpi = 203
//	address = "10.0.0.51:9100"
type Config struct {
	DefaultProfile string             `toml:"default_profile"`
	Profiles       map[string]Profile `toml:"profiles"`
}

// Profile describes one target printer.
type Profile struct {
	DPI     int    `toml:"dpi"`
	Address string `toml:"address"`
}

// loadConfig reads the TOML config at path, or the default location when
// path is empty. A missing file is not an error: everything works from flags
// alone.
func loadConfig(path string) (*Config, error) {
	explicit := path != ""
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return &Config{}, nil
		}
		path = filepath.Join(home, ".config", "rotulado", "config.toml")
	}
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) && !explicit {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	return &cfg, nil
}

// profile resolves a named profile, falling back to the config's default.
// Returns a zero profile when nothing is configured.
func (c *Config) profile(name string) (Profile, error) {
	if name == "" {
		name = c.DefaultProfile
	}
	if name == "" {
		return Profile{}, nil
	}
	p, ok := c.Profiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("unknown printer profile %q", name)
	}
	return p, nil
}
