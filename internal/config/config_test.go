package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadFromMissingDirReturnsDefaults(t *testing.T) {
	cfg, handle, err := LoadFrom(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Timeout() != 10*time.Second {
		t.Fatalf("unexpected default timeout %s", cfg.Timeout())
	}
	if cfg.UI.Theme != "default" {
		t.Fatalf("unexpected default theme %q", cfg.UI.Theme)
	}
	if handle.Format != FormatYAML {
		t.Fatalf("defaults should target yaml, got %s", handle.Format)
	}
}

func TestLoadFromYAML(t *testing.T) {
	dir := t.TempDir()
	data := "http:\n  timeout: 3\neditor: nano\nui:\n  theme: dark\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, handle, err := LoadFrom(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Timeout() != 3*time.Second || cfg.Editor != "nano" || cfg.UI.Theme != "dark" {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if handle.Format != FormatYAML {
		t.Fatalf("unexpected format %s", handle.Format)
	}
}

func TestLoadFromTOMLWinsOverYAML(t *testing.T) {
	dir := t.TempDir()
	tomlData := "editor = \"hx\"\n[http]\ntimeout = 7\n"
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(tomlData), 0o644); err != nil {
		t.Fatalf("write toml: %v", err)
	}
	yamlData := "editor: nano\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yamlData), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	cfg, handle, err := LoadFrom(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Editor != "hx" || cfg.HTTP.Timeout != 7 {
		t.Fatalf("toml candidate should win, got %+v", cfg)
	}
	if handle.Format != FormatTOML {
		t.Fatalf("unexpected format %s", handle.Format)
	}
}

func TestLoadFromParseErrorFails(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(":\n - ["), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, _, err := LoadFrom(dir); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestNormalizeFallbacks(t *testing.T) {
	t.Setenv("EDITOR", "emacs")
	cfg := normalize(Config{HTTP: HTTPConfig{Timeout: -1}})
	if cfg.HTTP.Timeout != 10 {
		t.Fatalf("non-positive timeout must fall back, got %d", cfg.HTTP.Timeout)
	}
	if cfg.Editor != "emacs" {
		t.Fatalf("editor should come from $EDITOR, got %q", cfg.Editor)
	}

	t.Setenv("EDITOR", "")
	cfg = normalize(Config{})
	if cfg.Editor != "vim" {
		t.Fatalf("editor should fall back to vim, got %q", cfg.Editor)
	}
}

func TestEnsureDefaultWritesOnce(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cfg")
	if err := EnsureDefault(dir); err != nil {
		t.Fatalf("ensure: %v", err)
	}
	cfg, _, err := LoadFrom(dir)
	if err != nil {
		t.Fatalf("load seeded config: %v", err)
	}
	if cfg.HTTP.Timeout != 10 {
		t.Fatalf("unexpected seeded timeout %d", cfg.HTTP.Timeout)
	}

	custom := "http:\n  timeout: 42\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(custom), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := EnsureDefault(dir); err != nil {
		t.Fatalf("ensure again: %v", err)
	}
	cfg, _, err = LoadFrom(dir)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if cfg.HTTP.Timeout != 42 {
		t.Fatalf("ensure must not overwrite an existing config, got %d", cfg.HTTP.Timeout)
	}
}
