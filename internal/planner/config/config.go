// Package config loads the planner's TOML configuration file.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds all user-facing configuration for the planner.
type Config struct {
	Data    DataConfig    `toml:"data"`
	Planner PlannerConfig `toml:"planner"`
	Server  ServerConfig  `toml:"server"`
}

type DataConfig struct {
	DBPath string `toml:"db_path"`
}

// PlannerConfig holds defaults applied to settings files that leave them unset.
type PlannerConfig struct {
	ShardsEnergy int `toml:"shards_energy"`
	DailyEnergy  int `toml:"daily_energy"`
}

type ServerConfig struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
}

// Defaults returns a Config populated with built-in default values.
func Defaults() *Config {
	return &Config{
		Data:    DataConfig{DBPath: "tacticus.db"},
		Planner: PlannerConfig{ShardsEnergy: 0, DailyEnergy: 288},
		Server:  ServerConfig{Name: "tacticus-planner", Version: "0.1.0"},
	}
}

// Load reads a TOML config file. If the file does not exist, built-in
// defaults are returned without error.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown config key %q in %s", undecoded[0].String(), path)
	}

	return cfg, nil
}
