package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/simonhull/tagsync"
)

// Config is the on-disk CLI configuration.
type Config struct {
	BackupSuffix    string `toml:"backup_suffix"`
	Validate        bool   `toml:"validate"`
	PreserveModTime bool   `toml:"preserve_mod_time"`
	LogLevel        string `toml:"log_level"`
}

// defaultConfig returns the configuration used when no file exists.
func defaultConfig() Config {
	return Config{LogLevel: "warn"}
}

// defaultConfigPath returns $XDG_CONFIG_HOME/tagsync/config.toml, or the
// platform equivalent.
func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "tagsync", "config.toml")
}

// loadConfig reads the configuration at path. A missing file yields the
// defaults; unknown keys are returned so the caller can warn about them.
func loadConfig(path string) (Config, []string, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil, nil
	}

	md, err := toml.DecodeFile(path, &cfg)
	if errors.Is(err, fs.ErrNotExist) {
		return defaultConfig(), nil, nil
	}
	if err != nil {
		return cfg, nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	var unknown []string
	for _, key := range md.Undecoded() {
		unknown = append(unknown, key.String())
	}
	return cfg, unknown, nil
}

// level parses the configured log level.
func (c Config) level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelWarn, fmt.Errorf("log_level %q: %w", c.LogLevel, err)
	}
	return l, nil
}

// options turns the configuration into codec options.
func (c Config) options(logger *slog.Logger) []tagsync.Option {
	opts := []tagsync.Option{tagsync.WithLogger(logger)}
	if c.BackupSuffix != "" {
		opts = append(opts, tagsync.WithBackup(c.BackupSuffix))
	}
	if c.Validate {
		opts = append(opts, tagsync.WithValidation())
	}
	if c.PreserveModTime {
		opts = append(opts, tagsync.WithPreserveModTime())
	}
	return opts
}
