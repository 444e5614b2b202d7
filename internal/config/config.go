// Package config provides unified configuration loading for resonance.
// It supports loading from YAML files and environment variables, and is the
// factory for the named engine presets.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/oscillab/resonance/internal/continuous"
	"github.com/oscillab/resonance/internal/discrete"
	"gopkg.in/yaml.v3"
)

// PresetFast and PresetPrecise are the named discrete-engine presets every
// config factory must reproduce.
const (
	PresetFast    = "fast"
	PresetPrecise = "precise"
)

// Config contains all resonance configuration settings.
type Config struct {
	// Logging contains settings for operational and tick logging.
	Logging LoggingConfig `json:"logging" yaml:"logging"`

	// Preset names the discrete engine preset: "fast" (default) or "precise".
	Preset string `json:"preset" yaml:"preset"`

	// DataDir is the directory for run recordings and tick traces.
	// Defaults to ~/.resonance.
	DataDir string `json:"data_dir,omitempty" yaml:"data_dir,omitempty"`

	// Seed, when non-zero, seeds the engines' random source for
	// reproducible runs. Zero means time-seeded.
	Seed int64 `json:"seed,omitempty" yaml:"seed,omitempty"`
}

// LoggingConfig configures resonance's logging behavior.
type LoggingConfig struct {
	// Level sets the log verbosity: "info" (default), "debug", or "trace".
	// "debug" enables tick logging to <data_dir>/ticks.jsonl.
	// "trace" additionally logs every tick's full metric snapshot.
	Level string `json:"level" yaml:"level"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{Level: "info"},
		Preset:  PresetFast,
		DataDir: defaultDataDir(),
	}
}

// defaultDataDir returns ~/.resonance, or ".resonance" relative to the
// working directory when the home directory cannot be resolved.
func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".resonance"
	}
	return filepath.Join(home, ".resonance")
}

// Load loads configuration from the default locations and environment variables.
// Order: defaults -> ~/.resonance/config.yaml -> environment variables
func Load() (*Config, error) {
	config := Default()

	homeDir, err := os.UserHomeDir()
	if err == nil {
		configPath := filepath.Join(homeDir, ".resonance", "config.yaml")
		if _, statErr := os.Stat(configPath); statErr == nil {
			fileConfig, loadErr := LoadFromFile(configPath)
			if loadErr != nil {
				return nil, fmt.Errorf("loading config file: %w", loadErr)
			}
			config = fileConfig
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// LoadFromFile loads configuration from a specific YAML file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return config, nil
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	validLevels := map[string]bool{"": true, "info": true, "debug": true, "trace": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s (valid: info, debug, trace, or empty for default)", c.Logging.Level)
	}

	if _, err := Preset(c.Preset); err != nil {
		return err
	}

	return nil
}

// Preset returns the discrete engine configuration for a preset name.
// An empty name selects the fast preset.
func Preset(name string) (discrete.Config, error) {
	switch name {
	case "", PresetFast:
		return discrete.FastConfig(), nil
	case PresetPrecise:
		return discrete.PreciseConfig(), nil
	default:
		return discrete.Config{}, fmt.Errorf("unknown preset: %s (valid: fast, precise)", name)
	}
}

// PresetNames returns the available preset names in stable order.
func PresetNames() []string {
	return []string{PresetFast, PresetPrecise}
}

// ContinuousDefaults returns the default continuous network configuration.
// The continuous network has one configuration; the preset split applies to
// the discrete engine only.
func ContinuousDefaults() continuous.Config {
	return continuous.DefaultConfig()
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(config *Config) {
	if v := os.Getenv("RESONANCE_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}

	if v := os.Getenv("RESONANCE_PRESET"); v != "" {
		config.Preset = v
	}

	if v := os.Getenv("RESONANCE_DATA_DIR"); v != "" {
		config.DataDir = v
	}

	if v := os.Getenv("RESONANCE_SEED"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			config.Seed = n
		}
	}
}
