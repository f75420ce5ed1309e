package config

import (
	"path/filepath"
	"testing"

	"github.com/san-kum/hairsim/internal/hair"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
	if cfg.Dt <= 0 {
		t.Error("dt should be positive")
	}
	if cfg.Rows*cfg.Cols == 0 {
		t.Error("default grid is empty")
	}
	if cfg.Points > hair.MaxStrandPoints {
		t.Errorf("default points %d exceeds capacity", cfg.Points)
	}
}

func TestValidateRejectsBadParams(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"zero mass", func(c *Config) { c.Mass = 0 }, hair.ErrMassNotPositive},
		{"negative dt", func(c *Config) { c.Dt = -0.01 }, hair.ErrTimestepInvalid},
		{"negative rest", func(c *Config) { c.RestLength = -1 }, hair.ErrRestLengthInvalid},
		{"negative stiffness", func(c *Config) { c.Stiffness = -5 }, hair.ErrStiffnessInvalid},
		{"too many points", func(c *Config) { c.Points = hair.MaxStrandPoints + 1 }, hair.ErrStrandTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err != tt.want {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestSaveLoadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hair.yaml")

	cfg := DefaultConfig()
	cfg.Stiffness = 123.5
	cfg.Sway = SwayConfig{Amplitude: 0.2, Frequency: 1.5}

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Stiffness != 123.5 {
		t.Errorf("stiffness lost in roundtrip: %f", loaded.Stiffness)
	}
	if loaded.Sway != cfg.Sway {
		t.Errorf("sway lost in roundtrip: %+v", loaded.Sway)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("ponytail")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Points != hair.MaxStrandPoints {
		t.Errorf("ponytail should use full capacity, got %d", cfg.Points)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("preset invalid: %v", err)
	}

	// Returned preset is a copy, not the shared table entry.
	cfg.Stiffness = 1
	if Presets["ponytail"].Stiffness == 1 {
		t.Error("GetPreset leaked the shared preset")
	}
}

func TestGetPresetNotFound(t *testing.T) {
	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	if len(names) == 0 {
		t.Error("expected presets")
	}
}

func TestAllPresetsValid(t *testing.T) {
	for name := range Presets {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
}
