package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Prompt != "> " {
		t.Fatalf("expected default prompt '> ', got %q", cfg.Prompt)
	}
	if cfg.Color != nil {
		t.Fatalf("expected nil Color (auto-detect), got %v", *cfg.Color)
	}
	if len(cfg.DisabledBuiltins) != 0 {
		t.Fatalf("expected no disabled builtins, got %v", cfg.DisabledBuiltins)
	}
}

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("unexpected error for missing file: %v", err)
	}
	if cfg.Prompt != "> " {
		t.Fatalf("expected default prompt, got %q", cfg.Prompt)
	}
}

func TestLoadPopulatedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".golox.yaml")
	contents := "prompt: \"lox> \"\ncolor: false\ndisabledBuiltins:\n  - Console\n  - Math\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Prompt != "lox> " {
		t.Fatalf("expected prompt 'lox> ', got %q", cfg.Prompt)
	}
	if cfg.Color == nil || *cfg.Color != false {
		t.Fatalf("expected color explicitly false, got %v", cfg.Color)
	}
	if !cfg.Disabled("Console") || !cfg.Disabled("Math") {
		t.Fatalf("expected Console and Math disabled, got %v", cfg.DisabledBuiltins)
	}
	if cfg.Disabled("String") {
		t.Fatalf("did not expect String to be disabled")
	}
}

func TestDisabledOnZeroValueConfig(t *testing.T) {
	var cfg Config
	if cfg.Disabled("Console") {
		t.Fatalf("zero-value config should disable nothing")
	}
}
