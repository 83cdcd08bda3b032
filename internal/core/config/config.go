// Package config holds the engine runner configuration. Files can be JSON or
// YAML; both decode into the same structure.
package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	LogLevel    string        `json:"log_level" yaml:"log_level"`
	TickRate    int           `json:"tick_rate" yaml:"tick_rate"`
	RunDuration time.Duration `json:"run_duration,omitempty" yaml:"run_duration,omitempty"`
	Debug       DebugConfig   `json:"debug" yaml:"debug"`
}

// DebugConfig configures the module-state debug feed.
type DebugConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Addr    string `json:"addr" yaml:"addr"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		LogLevel: "info",
		TickRate: 60,
		Debug: DebugConfig{
			Enabled: true,
			Addr:    "127.0.0.1:8190",
		},
	}
}

// LoadJSON loads config from a JSON reader.
func LoadJSON(r io.Reader) (*Config, error) {
	c := Default()
	dec := json.NewDecoder(r)
	if err := dec.Decode(&c); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// LoadYAML loads config from a YAML reader.
func LoadYAML(r io.Reader) (*Config, error) {
	c := Default()
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&c); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// LoadFile loads a config file, picking the decoder from the extension.
func LoadFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	switch filepath.Ext(path) {
	case ".json":
		return LoadJSON(f)
	case ".yaml", ".yml":
		return LoadYAML(f)
	default:
		return nil, fmt.Errorf("unsupported config extension %q", filepath.Ext(path))
	}
}

// Validate checks the configuration for usable values.
func (c *Config) Validate() error {
	if c.TickRate <= 0 {
		return fmt.Errorf("tick_rate must be positive, got %d", c.TickRate)
	}
	if c.TickRate > 1000 {
		return fmt.Errorf("tick_rate %d exceeds 1000", c.TickRate)
	}
	if c.RunDuration < 0 {
		return fmt.Errorf("run_duration must not be negative")
	}
	if c.Debug.Enabled && c.Debug.Addr == "" {
		return fmt.Errorf("debug feed enabled without an address")
	}
	return nil
}

// TickInterval returns the frame interval derived from the tick rate.
func (c *Config) TickInterval() time.Duration {
	return time.Second / time.Duration(c.TickRate)
}
