package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/msalah0e/glossview/internal/layout"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.API.BaseURL != "http://localhost:8000" {
		t.Errorf("unexpected base url %q", cfg.API.BaseURL)
	}
	if cfg.Layout.Direction != "LR" {
		t.Errorf("expected direction LR, got %q", cfg.Layout.Direction)
	}
	if cfg.Layout.NodeSep != 70 || cfg.Layout.RankSep != 110 {
		t.Errorf("unexpected spacing %+v", cfg.Layout)
	}
	if !cfg.UI.Color || !cfg.UI.Mouse {
		t.Error("color and mouse should default to true")
	}
	if cfg.Server.Watch {
		t.Error("watch should default to false")
	}
	if len(cfg.Server.DedupeLabels) != 1 {
		t.Errorf("expected one dedupe label, got %v", cfg.Server.DedupeLabels)
	}
}

func TestConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/test-xdg")
	if dir := ConfigDir(); dir != "/tmp/test-xdg/glossview" {
		t.Errorf("expected /tmp/test-xdg/glossview, got %q", dir)
	}

	t.Setenv("XDG_CONFIG_HOME", "")
	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".config", "glossview")
	if dir := ConfigDir(); dir != expected {
		t.Errorf("expected %q, got %q", expected, dir)
	}
}

func TestSaveAndLoad(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := Default()
	cfg.API.BaseURL = "http://glossary.local:9000"
	cfg.Layout.Direction = "TB"
	cfg.UI.Mouse = false

	if err := Save(cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded := Load()
	if loaded.API.BaseURL != "http://glossary.local:9000" {
		t.Errorf("unexpected base url %q", loaded.API.BaseURL)
	}
	if loaded.Layout.Direction != "TB" {
		t.Errorf("unexpected direction %q", loaded.Layout.Direction)
	}
	if loaded.UI.Mouse {
		t.Error("expected mouse false after load")
	}
}

func TestLoadFromPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	os.WriteFile(path, []byte("[layout]\nrank_sep = 200\n"), 0o644)

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if cfg.Layout.RankSep != 200 {
		t.Errorf("expected rank_sep 200, got %v", cfg.Layout.RankSep)
	}
	if cfg.Layout.NodeSep != 70 {
		t.Errorf("unset keys should keep defaults, got node_sep %v", cfg.Layout.NodeSep)
	}
}

func TestLoadFromMissingAndMalformed(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadFrom(filepath.Join(dir, "nope.toml")); err != nil {
		t.Errorf("missing file should not be an error: %v", err)
	}

	bad := filepath.Join(dir, "bad.toml")
	os.WriteFile(bad, []byte("[layout\n"), 0o644)
	if _, err := LoadFrom(bad); err == nil {
		t.Error("expected error for malformed file")
	}
}

func TestLayoutOptions(t *testing.T) {
	cfg := Default()
	cfg.Layout.Direction = "bt"
	cfg.Layout.NodeSep = 40

	opts, err := cfg.LayoutOptions()
	if err != nil {
		t.Fatalf("LayoutOptions failed: %v", err)
	}
	if opts.Direction != layout.BottomTop || opts.NodeSep != 40 || opts.RankSep != 110 {
		t.Errorf("unexpected options %+v", opts)
	}

	cfg.Layout.Direction = "sideways"
	if _, err := cfg.LayoutOptions(); err == nil {
		t.Error("expected error for bad direction")
	}
}

func TestEnsureExists(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	if err := EnsureExists(); err != nil {
		t.Fatalf("EnsureExists failed: %v", err)
	}

	path := filepath.Join(tmpDir, "glossview", "config.toml")
	if _, err := os.Stat(path); err != nil {
		t.Errorf("config file not created: %v", err)
	}

	// Second call should be no-op
	if err := EnsureExists(); err != nil {
		t.Fatalf("EnsureExists second call failed: %v", err)
	}
}
