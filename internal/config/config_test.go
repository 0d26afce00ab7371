package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadFrom(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `format = "toml"

[ui]
accent = "#a78bfa"
code_theme = "dracula"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom = %v", err)
	}
	if cfg.Format != "toml" {
		t.Fatalf("Format = %q, want %q", cfg.Format, "toml")
	}
	if cfg.UI.Accent != "#a78bfa" || cfg.UI.CodeTheme != "dracula" {
		t.Fatalf("UI = %+v", cfg.UI)
	}
}

func TestLoadFromRejectsBadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("format = [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFrom(path); err == nil {
		t.Fatal("LoadFrom parsed invalid TOML")
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := &Config{Format: "yaml", UI: UIConfig{Accent: "39"}}

	if err := SaveTo(path, cfg); err != nil {
		t.Fatalf("SaveTo = %v", err)
	}
	back, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom = %v", err)
	}
	if back.Format != "yaml" || back.UI.Accent != "39" {
		t.Fatalf("round trip = %+v", back)
	}
}

func TestSaveToOmitsEmptyFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := SaveTo(path, &Config{Format: "json"}); err != nil {
		t.Fatalf("SaveTo = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "[ui]") {
		t.Fatalf("empty UI section persisted:\n%s", data)
	}
	if strings.Contains(string(data), "accent") {
		t.Fatalf("empty accent persisted:\n%s", data)
	}
}

func TestSaveToRequiresPath(t *testing.T) {
	if err := SaveTo("  ", &Config{}); err == nil {
		t.Fatal("SaveTo accepted a blank path")
	}
}
