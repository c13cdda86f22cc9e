package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing file should not error, got %v", err)
	}
	if cfg.A4 != 440 || cfg.Tolerance != 5 || cfg.Beep || cfg.DefaultMode != "concert" {
		t.Errorf("defaults = %+v", cfg)
	}
}

func TestLoadReadsValues(t *testing.T) {
	path := writeConfig(t, "a4: 442.0\ntolerance: 3.0\nbeep: true\ndefault_mode: quick\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.A4 != 442 {
		t.Errorf("a4 = %v", cfg.A4)
	}
	if cfg.Tolerance != 3 {
		t.Errorf("tolerance = %v", cfg.Tolerance)
	}
	if !cfg.Beep {
		t.Error("beep should be true")
	}
	if cfg.DefaultMode != "quick" {
		t.Errorf("default_mode = %q", cfg.DefaultMode)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "a4: 441.0\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.A4 != 441 {
		t.Errorf("a4 = %v", cfg.A4)
	}
	if cfg.Tolerance != 5 || cfg.DefaultMode != "concert" {
		t.Errorf("unset fields should keep defaults: %+v", cfg)
	}
}

func TestLoadInvalidYAMLFallsBack(t *testing.T) {
	path := writeConfig(t, "a4: [not a number\n")
	cfg, err := Load(path)
	if err == nil {
		t.Error("invalid yaml should surface an error")
	}
	if cfg == nil || cfg.A4 != 440 {
		t.Errorf("invalid yaml should fall back to defaults, got %+v", cfg)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	for _, content := range []string{
		"a4: 1000.0\n",
		"tolerance: -1\n",
		"default_mode: baroque\n",
	} {
		path := writeConfig(t, content)
		cfg, err := Load(path)
		if err == nil {
			t.Errorf("config %q should be rejected", content)
		}
		if cfg.A4 != 440 || cfg.Tolerance != 5 {
			t.Errorf("rejected config should fall back to defaults, got %+v", cfg)
		}
	}
}
