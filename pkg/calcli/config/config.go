// Package config reads the optional calcli config file.
package config

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const fileName = "config.yaml"

// Config holds the per-user defaults. Every field has a working default, so
// running without a config file is fine.
type Config struct {
	// Credential is the name of the host-managed credential to use.
	Credential string `yaml:"credential"`
	// Calendar is the default calendar ID.
	Calendar string `yaml:"calendar"`
	// TimeZone is the default zone for created events.
	TimeZone string `yaml:"timezone"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Credential: "google-calendar",
		Calendar:   "primary",
		TimeZone:   "Asia/Hong_Kong",
	}
}

// Dir resolves the config directory ("" means ~/.config/calcli).
func Dir(override string) (string, error) {
	if override != "" {
		return override, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "determining home directory")
	}
	return filepath.Join(home, ".config", "calcli"), nil
}

// Load reads config.yaml from dir, filling unset fields with defaults. A
// missing file yields the defaults; a malformed one is an error.
func Load(dir string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filepath.Join(dir, fileName))
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "reading config file")
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "parsing config file")
	}

	def := Default()
	if cfg.Credential == "" {
		cfg.Credential = def.Credential
	}
	if cfg.Calendar == "" {
		cfg.Calendar = def.Calendar
	}
	if cfg.TimeZone == "" {
		cfg.TimeZone = def.TimeZone
	}
	return cfg, nil
}
