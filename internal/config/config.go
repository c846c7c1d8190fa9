// Package config loads the application settings consumed, not owned,
// by the session: request timeout, requests directory, editor command
// and theme name.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

const (
	defaultTimeoutSeconds = 10
	defaultEditor         = "vim"
	defaultTheme          = "default"
)

type HTTPConfig struct {
	// Timeout is in whole seconds, as written by the original tool.
	Timeout int `yaml:"timeout" toml:"timeout"`
}

type UIConfig struct {
	Theme string `yaml:"theme" toml:"theme"`
}

type Config struct {
	HTTP   HTTPConfig `yaml:"http"   toml:"http"`
	Editor string     `yaml:"editor" toml:"editor"`
	UI     UIConfig   `yaml:"ui"     toml:"ui"`
}

// Handle records where the config was loaded from.
type Handle struct {
	Path   string
	Format Format
}

func (c Config) Timeout() time.Duration {
	return time.Duration(c.HTTP.Timeout) * time.Second
}

func Default() Config {
	return Config{
		HTTP:   HTTPConfig{Timeout: defaultTimeoutSeconds},
		Editor: defaultEditor,
		UI:     UIConfig{Theme: defaultTheme},
	}
}

// Dir is the application config directory; the requests directory
// lives underneath it unless overridden on the command line.
func Dir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return filepath.Join(".", ".config", "nattoujam", "tcurl")
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "nattoujam", "tcurl")
}

func RequestsDir() string {
	return filepath.Join(Dir(), "requests")
}

// Load tries config.toml first, then config.yaml, returning defaults
// when neither exists. Parse errors fail immediately but missing files
// just skip to the next candidate.
func Load() (Config, Handle, error) {
	return LoadFrom(Dir())
}

func LoadFrom(dir string) (Config, Handle, error) {
	candidates := []Handle{
		{Path: filepath.Join(dir, "config.toml"), Format: FormatTOML},
		{Path: filepath.Join(dir, "config.yaml"), Format: FormatYAML},
	}

	var accumulated error
	for _, candidate := range candidates {
		data, err := os.ReadFile(candidate.Path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			accumulated = errors.Join(
				accumulated,
				fmt.Errorf("read config %q: %w", candidate.Path, err),
			)
			continue
		}

		cfg, err := decode(data, candidate.Format)
		if err != nil {
			return Config{}, Handle{}, fmt.Errorf("parse config %q: %w", candidate.Path, err)
		}
		return normalize(cfg), candidate, nil
	}

	if accumulated != nil {
		return Config{}, Handle{}, accumulated
	}
	return Default(), Handle{Path: candidates[1].Path, Format: FormatYAML}, nil
}

// EnsureDefault writes the default config.yaml on first run, matching
// the file the original tool seeded. Existing configs are untouched.
func EnsureDefault(dir string) error {
	for _, name := range []string{"config.toml", "config.yaml"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return nil
		}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config directory %q: %w", dir, err)
	}
	data, err := yaml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("serialize default config: %w", err)
	}
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write default config %q: %w", path, err)
	}
	return nil
}

func decode(data []byte, format Format) (Config, error) {
	var cfg Config
	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return Config{}, err
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, err
		}
	default:
		return Config{}, fmt.Errorf("unsupported config format %q", format)
	}
	return cfg, nil
}

// normalize fills gaps so the rest of the program never re-checks:
// non-positive timeouts fall back to the default, the editor falls
// back to $EDITOR then vim.
func normalize(cfg Config) Config {
	if cfg.HTTP.Timeout <= 0 {
		cfg.HTTP.Timeout = defaultTimeoutSeconds
	}
	if strings.TrimSpace(cfg.Editor) == "" {
		if env := strings.TrimSpace(os.Getenv("EDITOR")); env != "" {
			cfg.Editor = env
		} else {
			cfg.Editor = defaultEditor
		}
	}
	if strings.TrimSpace(cfg.UI.Theme) == "" {
		cfg.UI.Theme = defaultTheme
	}
	return cfg
}
