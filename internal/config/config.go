package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	// EnvHome overrides the shx base directory.
	EnvHome = "SHX_HOME"
	// FileName is the config file name inside the base directory.
	FileName = "config.toml"

	DefaultSearchSize = 30
	DefaultMaxSize    = 1024
	DefaultLogLevel   = "warn"
	DefaultTheme      = "colorful"
)

// Config is the resolved, process-wide configuration.
// It is passed explicitly to the store and engine constructors.
type Config struct {
	Base       string // shx base directory ($SHX_HOME or ~/.shx)
	Home       string // user home directory, target of a bare cdx
	SearchSize int    // entries visible to resolution and listing
	MaxSize    int    // history retention ceiling
	LogLevel   string
	Theme      string
}

// file mirrors config.toml. Pointers tell absent fields from zero values.
type file struct {
	Cdx cdxSection `toml:"cdx_config"`
}

type cdxSection struct {
	SearchSize *int    `toml:"search_size,omitempty"`
	MaxSize    *int    `toml:"max_size,omitempty"`
	LogLevel   *string `toml:"log_level,omitempty"`
	Theme      *string `toml:"theme,omitempty"`
}

// Default returns the built-in configuration rooted at base and home.
func Default(base, home string) Config {
	return Config{
		Base:       base,
		Home:       home,
		SearchSize: DefaultSearchSize,
		MaxSize:    DefaultMaxSize,
		LogLevel:   DefaultLogLevel,
		Theme:      DefaultTheme,
	}
}

// Load resolves the base directory from the environment and reads its config file.
func Load() (Config, error) {
	home, err := HomeDir()
	if err != nil {
		return Config{}, err
	}
	base, err := BaseDir(home)
	if err != nil {
		return Config{}, err
	}
	return LoadFrom(base, home)
}

// LoadFrom reads base/config.toml. A missing or empty file is replaced by
// one holding the defaults. A file that does not parse is an error.
func LoadFrom(base, home string) (Config, error) {
	cfg := Default(base, home)
	path := filepath.Join(base, FileName)

	content, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if len(bytes.TrimSpace(content)) == 0 {
		if err := writeDefault(path, cfg); err != nil {
			return Config{}, err
		}
		return cfg, nil
	}

	var f file
	if _, err := toml.Decode(string(content), &f); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	f.Cdx.apply(&cfg)
	return cfg, nil
}

func (s cdxSection) apply(cfg *Config) {
	if s.SearchSize != nil && *s.SearchSize > 0 {
		cfg.SearchSize = *s.SearchSize
	}
	if s.MaxSize != nil && *s.MaxSize > 0 {
		cfg.MaxSize = *s.MaxSize
	}
	if s.LogLevel != nil && *s.LogLevel != "" {
		cfg.LogLevel = strings.ToLower(*s.LogLevel)
	}
	if s.Theme != nil && *s.Theme != "" {
		cfg.Theme = strings.ToLower(*s.Theme)
	}
}

func writeDefault(path string, cfg Config) error {
	f := file{Cdx: cdxSection{
		SearchSize: &cfg.SearchSize,
		MaxSize:    &cfg.MaxSize,
		LogLevel:   &cfg.LogLevel,
		Theme:      &cfg.Theme,
	}}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(f); err != nil {
		return fmt.Errorf("encode default config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write default config %s: %w", path, err)
	}
	return nil
}

// PathFor joins name onto the base directory.
func (c Config) PathFor(name string) string {
	return filepath.Join(c.Base, name)
}

// BaseDir returns $SHX_HOME, or home/.shx created on demand.
func BaseDir(home string) (string, error) {
	if v := os.Getenv(EnvHome); v != "" {
		return v, nil
	}
	base := filepath.Join(home, ".shx")
	if err := os.MkdirAll(base, 0750); err != nil {
		return "", fmt.Errorf("create %s: %w", base, err)
	}
	return base, nil
}

// HomeDir returns the user's home directory.
func HomeDir() (string, error) {
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		return home, nil
	}
	u, err := user.Current()
	if err != nil || u.HomeDir == "" {
		return "", errors.New("cannot find home directory")
	}
	return u.HomeDir, nil
}
