// Package config loads application settings from a YAML file with
// sane defaults; CLI flags override file values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/jwulff/onkey/internal/tuning"
)

// Config holds user-adjustable settings.
type Config struct {
	// A4 is the reference frequency in Hz.
	A4 float64 `yaml:"a4"`
	// Tolerance is the confirmation tolerance in cents.
	Tolerance float64 `yaml:"tolerance"`
	// Beep plays a confirmation tone when a note locks in.
	Beep bool `yaml:"beep"`
	// DefaultMode is "concert" or "quick".
	DefaultMode string `yaml:"default_mode"`
}

// Default returns the stock configuration.
func Default() *Config {
	return &Config{
		A4:          440.0,
		Tolerance:   5.0,
		Beep:        false,
		DefaultMode: string(tuning.ModeConcert),
	}
}

// Path returns the config file location.
func Path() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "onkey", "config.yaml")
}

// Load reads the config file at path. A missing file yields defaults;
// an unreadable or invalid file yields defaults plus the error so the
// caller can warn without dying.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return Default(), fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.A4 < 400 || c.A4 > 480 {
		return fmt.Errorf("a4 %.1f outside sensible range 400..480", c.A4)
	}
	if c.Tolerance <= 0 || c.Tolerance > 50 {
		return fmt.Errorf("tolerance %.1f outside sensible range (0, 50]", c.Tolerance)
	}
	switch tuning.Mode(c.DefaultMode) {
	case tuning.ModeConcert, tuning.ModeQuick:
	default:
		return fmt.Errorf("default_mode %q is not concert or quick", c.DefaultMode)
	}
	return nil
}

// Mode returns the default mode as a tuning.Mode.
func (c *Config) Mode() tuning.Mode {
	if tuning.Mode(c.DefaultMode) == tuning.ModeQuick {
		return tuning.ModeQuick
	}
	return tuning.ModeConcert
}
