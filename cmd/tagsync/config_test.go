package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		want        Config
		wantUnknown []string
		wantErr     bool
	}{
		{
			name: "full",
			body: "backup_suffix = \".bak\"\nvalidate = true\npreserve_mod_time = true\nlog_level = \"debug\"\n",
			want: Config{BackupSuffix: ".bak", Validate: true, PreserveModTime: true, LogLevel: "debug"},
		},
		{
			name: "partial keeps defaults",
			body: "validate = true\n",
			want: Config{Validate: true, LogLevel: "warn"},
		},
		{
			name:        "unknown keys reported",
			body:        "validate = true\ncolour = \"red\"\n",
			want:        Config{Validate: true, LogLevel: "warn"},
			wantUnknown: []string{"colour"},
		},
		{
			name:    "malformed",
			body:    "validate = \n",
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg, unknown, err := loadConfig(writeConfig(t, tc.body))
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("loadConfig() error = %v", err)
			}
			if cfg != tc.want {
				t.Errorf("loadConfig() = %+v, want %+v", cfg, tc.want)
			}
			if !slices.Equal(unknown, tc.wantUnknown) {
				t.Errorf("unknown = %v, want %v", unknown, tc.wantUnknown)
			}
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	for _, path := range []string{"", filepath.Join(t.TempDir(), "nope.toml")} {
		cfg, unknown, err := loadConfig(path)
		if err != nil {
			t.Fatalf("loadConfig(%q) error = %v", path, err)
		}
		if cfg != defaultConfig() || unknown != nil {
			t.Errorf("loadConfig(%q) = %+v, %v; want defaults", path, cfg, unknown)
		}
	}
}

func TestConfig_Level(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{" warn ", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"loud", slog.LevelWarn, true},
	}

	for _, tc := range tests {
		got, err := Config{LogLevel: tc.in}.level()
		if (err != nil) != tc.wantErr {
			t.Errorf("level(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
		}
		if got != tc.want {
			t.Errorf("level(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestConfig_Options(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)

	if n := len(defaultConfig().options(logger)); n != 1 {
		t.Errorf("default options = %d, want logger only", n)
	}
	full := Config{BackupSuffix: ".bak", Validate: true, PreserveModTime: true}
	if n := len(full.options(logger)); n != 4 {
		t.Errorf("full options = %d, want 4", n)
	}
}
