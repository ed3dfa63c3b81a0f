package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/bamsammich/dirmigrate/internal/filter"
)

// Config represents the optional dirmigrate configuration file.
type Config struct {
	Defaults DefaultsConfig `toml:"defaults"`
	Minimal  MinimalConfig  `toml:"minimal"`
	Skip     SkipConfig     `toml:"skip"`
	Xattr    XattrConfig    `toml:"xattr"`
}

// DefaultsConfig holds persistent flag defaults.
type DefaultsConfig struct {
	ChunkSize *string `toml:"chunk_size"`
	Workers   *int    `toml:"workers"`
	Mode      *string `toml:"mode"`
	IOLimit   *string `toml:"io_limit"`
}

// MinimalConfig overrides the whitelist of a minimal migration.
type MinimalConfig struct {
	Paths []string `toml:"paths"`
}

// SkipConfig lists the glob patterns of files that may be dropped when
// they cannot be read.
type SkipConfig struct {
	KnownCorruptions []string `toml:"known_corruptions"`
}

// XattrConfig overrides the names of the timestamp marker attributes.
type XattrConfig struct {
	Mtime *string `toml:"mtime"`
	Atime *string `toml:"atime"`
}

// Path returns the resolved path to the config file.
func Path() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "dirmigrate", "config.toml")
}

// Load reads the config file from the XDG path. Returns a zero Config
// (no error) if the file does not exist. Config is always optional.
func Load() (Config, error) {
	path := Path()
	if path == "" {
		return Config{}, nil
	}
	cfg, err := LoadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Config{}, nil
	}
	return cfg, err
}

// LoadFile reads the config file at path. Unlike Load, a missing file is
// an error.
func LoadFile(path string) (Config, error) {
	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if _, err := c.ChunkSize(); err != nil {
		return err
	}
	if _, err := c.IOLimit(); err != nil {
		return err
	}
	if c.Defaults.Mode != nil && *c.Defaults.Mode != "full" && *c.Defaults.Mode != "minimal" {
		return fmt.Errorf("defaults.mode: must be full or minimal, got %q", *c.Defaults.Mode)
	}
	if c.Defaults.Workers != nil && *c.Defaults.Workers < 0 {
		return fmt.Errorf("defaults.workers: must not be negative, got %d", *c.Defaults.Workers)
	}
	return nil
}

// ChunkSize returns defaults.chunk_size in bytes, or 0 when unset.
func (c Config) ChunkSize() (int64, error) {
	return parseOptionalSize("defaults.chunk_size", c.Defaults.ChunkSize)
}

// IOLimit returns defaults.io_limit in bytes per second, or 0 when unset.
func (c Config) IOLimit() (int64, error) {
	return parseOptionalSize("defaults.io_limit", c.Defaults.IOLimit)
}

func parseOptionalSize(key string, s *string) (int64, error) {
	if s == nil {
		return 0, nil
	}
	n, err := filter.ParseSize(*s)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}
