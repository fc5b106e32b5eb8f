package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileIsNotAnError(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v, want nil", err)
	}
	if cfg != (Config{}) {
		t.Errorf("Load() = %+v, want zero value", cfg)
	}
}

func TestLoadEmptyPathIsNotAnError(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v, want nil", err)
	}
	if cfg != (Config{}) {
		t.Errorf("Load() = %+v, want zero value", cfg)
	}
}

func TestLoadParsesFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tableau.toml")
	data := "verbose = true\nts = \"model.ts\"\nqueries = \"queries.q\"\ncolor = false\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !cfg.Verbose {
		t.Error("expected Verbose = true")
	}
	if cfg.TSPath != "model.ts" {
		t.Errorf("TSPath = %q, want %q", cfg.TSPath, "model.ts")
	}
	if cfg.QueryPath != "queries.q" {
		t.Errorf("QueryPath = %q, want %q", cfg.QueryPath, "queries.q")
	}
	if cfg.Color == nil || *cfg.Color {
		t.Error("expected Color = false")
	}
}

func TestLoadMalformedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(path, []byte("this is not = = toml"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected an error for malformed TOML")
	}
}

func TestFillDefaultsSetsColor(t *testing.T) {
	cfg := Config{}.FillDefaults()
	if cfg.Color == nil || !*cfg.Color {
		t.Error("expected default Color = true")
	}

	disabled := false
	cfg = Config{Color: &disabled}.FillDefaults()
	if cfg.Color == nil || *cfg.Color {
		t.Error("FillDefaults should not override an explicitly set Color")
	}
}
