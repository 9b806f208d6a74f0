// Package config loads the service configuration.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	defaultKeysDir = "keys"
	defaultListen  = "0.0.0.0:8010"
	defaultGinMode = "release"
)

type Config struct {
	// Directory written by the setup command.
	KeysDir string       `yaml:"keysDir"`
	Server  ServerConfig `yaml:"server"`
	Replay  ReplayConfig `yaml:"replay"`
	Log     LogConfig    `yaml:"log"`
}

type ServerConfig struct {
	Listen  string `yaml:"listen"`
	GinMode string `yaml:"ginMode"`
}

type ReplayConfig struct {
	// Badger directory. Empty keeps nonces in memory only.
	Path string `yaml:"path"`
}

// Load reads a YAML file and applies defaults. An empty path yields the defaults.
func Load(path string) (*Config, error) {
	var cfg Config
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// WithDefaults returns a copy of the Config with any missing fields set to
// their default values.
func (c Config) WithDefaults() Config {
	cpy := c
	if cpy.KeysDir == "" {
		cpy.KeysDir = defaultKeysDir
	}
	if cpy.Server.Listen == "" {
		cpy.Server.Listen = defaultListen
	}
	if cpy.Server.GinMode == "" {
		cpy.Server.GinMode = defaultGinMode
	}
	cpy.Log = cpy.Log.WithDefaults()
	return cpy
}

func (c Config) Validate() error {
	switch c.Server.GinMode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("invalid gin mode %q", c.Server.GinMode)
	}
	if _, err := c.Log.ParseLevel(); err != nil {
		return err
	}
	if c.Log.MaxSize < 0 || c.Log.MaxBackups < 0 || c.Log.MaxAge < 0 {
		return errors.New("log rotation limits must not be negative")
	}
	return nil
}
