package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	c := Default()

	if c.Logging.Level != "info" {
		t.Errorf("default level = %q, want info", c.Logging.Level)
	}
	if c.Preset != PresetFast {
		t.Errorf("default preset = %q, want fast", c.Preset)
	}
	if c.DataDir == "" {
		t.Error("default data dir is empty")
	}
	if err := c.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
logging:
  level: debug
preset: precise
seed: 42
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	c, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}

	if c.Logging.Level != "debug" {
		t.Errorf("level = %q, want debug", c.Logging.Level)
	}
	if c.Preset != PresetPrecise {
		t.Errorf("preset = %q, want precise", c.Preset)
	}
	if c.Seed != 42 {
		t.Errorf("seed = %d, want 42", c.Seed)
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestLoadFromFileInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("logging: [not a map"), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := LoadFromFile(path); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"empty level", func(c *Config) { c.Logging.Level = "" }, false},
		{"trace level", func(c *Config) { c.Logging.Level = "trace" }, false},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }, true},
		{"precise preset", func(c *Config) { c.Preset = PresetPrecise }, false},
		{"bad preset", func(c *Config) { c.Preset = "turbo" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(c)
			err := c.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestPresetFactory(t *testing.T) {
	fast, err := Preset(PresetFast)
	if err != nil {
		t.Fatalf("Preset(fast): %v", err)
	}
	precise, err := Preset(PresetPrecise)
	if err != nil {
		t.Fatalf("Preset(precise): %v", err)
	}

	// Fast is coarser and smaller; precise learns more slowly.
	if fast.NumOscillators >= precise.NumOscillators {
		t.Errorf("fast oscillators %d >= precise %d", fast.NumOscillators, precise.NumOscillators)
	}
	if fast.PhaseResolution >= precise.PhaseResolution {
		t.Errorf("fast resolution %d >= precise %d", fast.PhaseResolution, precise.PhaseResolution)
	}
	if fast.HebbianLearningRate <= precise.HebbianLearningRate {
		t.Errorf("fast learning rate %v <= precise %v", fast.HebbianLearningRate, precise.HebbianLearningRate)
	}

	// The factory is deterministic by name.
	again, _ := Preset(PresetFast)
	if again != fast {
		t.Error("Preset(fast) not reproducible")
	}

	if _, err := Preset("turbo"); err == nil {
		t.Error("expected error for unknown preset")
	}

	// Empty name falls back to fast.
	def, err := Preset("")
	if err != nil || def != fast {
		t.Errorf("Preset(\"\") = %+v, %v, want fast preset", def, err)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("RESONANCE_LOG_LEVEL", "trace")
	t.Setenv("RESONANCE_PRESET", "precise")
	t.Setenv("RESONANCE_DATA_DIR", "/tmp/res-test")
	t.Setenv("RESONANCE_SEED", "1234")

	c := Default()
	applyEnvOverrides(c)

	if c.Logging.Level != "trace" {
		t.Errorf("level = %q, want trace", c.Logging.Level)
	}
	if c.Preset != PresetPrecise {
		t.Errorf("preset = %q, want precise", c.Preset)
	}
	if c.DataDir != "/tmp/res-test" {
		t.Errorf("data dir = %q, want /tmp/res-test", c.DataDir)
	}
	if c.Seed != 1234 {
		t.Errorf("seed = %d, want 1234", c.Seed)
	}
}

func TestEnvOverrideBadSeedIgnored(t *testing.T) {
	t.Setenv("RESONANCE_SEED", "not-a-number")

	c := Default()
	applyEnvOverrides(c)

	if c.Seed != 0 {
		t.Errorf("seed = %d, want 0 for unparseable override", c.Seed)
	}
}
