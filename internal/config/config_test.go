package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ServerURL != DefaultServerURL {
		t.Fatalf("expected default server url, got %q", cfg.ServerURL)
	}
	if cfg.Theme != "dark" {
		t.Fatalf("expected dark theme default, got %q", cfg.Theme)
	}
}

func TestLoadReadsYAML(t *testing.T) {
	dir := t.TempDir()
	content := "server_url: https://tasks.example.com/api\ntheme: light\n"
	if err := os.WriteFile(filepath.Join(dir, ConfigFile), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ServerURL != "https://tasks.example.com/api" {
		t.Fatalf("unexpected server url: %q", cfg.ServerURL)
	}
	if cfg.Theme != "light" {
		t.Fatalf("unexpected theme: %q", cfg.Theme)
	}
}

func TestEnvOverridesServerURL(t *testing.T) {
	t.Setenv("TASKBOARD_SERVER", "http://127.0.0.1:9999/api")
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ServerURL != "http://127.0.0.1:9999/api" {
		t.Fatalf("env override not applied: %q", cfg.ServerURL)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := &Config{ServerURL: "http://localhost:1234/api", Theme: "notty", Dir: dir}
	if err := cfg.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.ServerURL != cfg.ServerURL || loaded.Theme != cfg.Theme {
		t.Fatalf("round trip mismatch: %+v", loaded)
	}
}
