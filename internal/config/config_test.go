package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antopolskiy/taskboard/internal/clierr"
)

func TestNewDefaultIsValid(t *testing.T) {
	cfg := NewDefault()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, []string{"Normal", "High", "Low"}, cfg.Priorities)
	assert.Equal(t, "Normal", cfg.Defaults.Priority)
	assert.Equal(t, 120*time.Millisecond, cfg.FocusDelay())
	assert.Equal(t, 350*time.Millisecond, cfg.ShakeDuration())
}

func TestNewDefaultSlicesAreCopies(t *testing.T) {
	cfg := NewDefault()
	cfg.Priorities[0] = "changed"
	assert.Equal(t, "Normal", DefaultPriorities[0])
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"version", func(c *Config) { c.Version = 99 }},
		{"board name", func(c *Config) { c.Board.Name = "" }},
		{"no priorities", func(c *Config) { c.Priorities = nil }},
		{"duplicate priorities", func(c *Config) { c.Priorities = []string{"A", "A"} }},
		{"empty priority", func(c *Config) { c.Priorities = append(c.Priorities, "") }},
		{"default not listed", func(c *Config) { c.Defaults.Priority = "Urgent" }},
		{"bad focus delay", func(c *Config) { c.TUI.FocusDelay = "soon" }},
		{"negative shake", func(c *Config) { c.TUI.ShakeDuration = "-1s" }},
		{"log level", func(c *Config) { c.Log.Level = "loud" }},
		{"log format", func(c *Config) { c.Log.Format = "xml" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefault()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalid), "got %v", err)
		})
	}
}

func TestDurationFallbacks(t *testing.T) {
	cfg := NewDefault()
	cfg.TUI.FocusDelay = ""
	cfg.TUI.ShakeDuration = "garbage"
	assert.Equal(t, DefaultFocusDelay, cfg.FocusDelay())
	assert.Equal(t, DefaultShakeDuration, cfg.ShakeDuration())

	cfg.TUI.FocusDelay = "0s"
	assert.Equal(t, time.Duration(0), cfg.FocusDelay())
}

func TestTextFallbacks(t *testing.T) {
	cfg := NewDefault()
	cfg.TUI.EmptyMessage = ""
	cfg.TUI.NoDescription = ""
	assert.Equal(t, DefaultEmptyMessage, cfg.EmptyMessage())
	assert.Equal(t, DefaultNoDescription, cfg.NoDescription())

	cfg.TUI.NoDescription = "(none)"
	assert.Equal(t, "(none)", cfg.NoDescription())
}

func TestPriorityColor(t *testing.T) {
	cfg := NewDefault()
	_, ok := cfg.PriorityColor("high")
	assert.False(t, ok)

	cfg.TUI.PriorityColors = map[string]string{"high": "160", "low": ""}
	color, ok := cfg.PriorityColor("high")
	assert.True(t, ok)
	assert.Equal(t, "160", color)

	_, ok = cfg.PriorityColor("low")
	assert.False(t, ok, "empty color is not an override")
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yml")
	cfg := NewDefault()
	cfg.Board.Name = "Home"
	cfg.Priorities = []string{"Normal", "Urgent"}
	cfg.SetPath(path)
	require.NoError(t, cfg.Save())

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Home", loaded.Board.Name)
	assert.Equal(t, []string{"Normal", "Urgent"}, loaded.Priorities)
	assert.Equal(t, path, loaded.Path())
}

func TestSaveWithoutPath(t *testing.T) {
	assert.Error(t, NewDefault().Save())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	var cliErr *clierr.Error
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, clierr.ConfigNotFound, cliErr.Code)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("priorities: [unclosed"), 0o600))
	_, err := Load(path)
	assert.ErrorContains(t, err, "parsing config")
	assert.True(t, errors.Is(err, ErrInvalid))
}

func TestLoadInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	body := "version: 2\nboard:\n  name: x\npriorities: [A]\ndefaults:\n  priority: B\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	_, err := Load(path)
	assert.True(t, errors.Is(err, ErrInvalid))
}

func TestFindFileWalksUp(t *testing.T) {
	root := t.TempDir()
	deep := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(deep, 0o750))
	want := filepath.Join(root, LocalFileName)
	require.NoError(t, os.WriteFile(want, []byte("version: 2\n"), 0o600))

	got, err := FindFile(deep)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestResolveOrder(t *testing.T) {
	root := t.TempDir()
	local := filepath.Join(root, LocalFileName)
	require.NoError(t, os.WriteFile(local, []byte("version: 2\n"), 0o600))

	got, err := Resolve("explicit.yml", root)
	require.NoError(t, err)
	assert.Equal(t, "explicit.yml", got)

	t.Setenv(EnvConfig, "/from/env.yml")
	got, err = Resolve("", root)
	require.NoError(t, err)
	assert.Equal(t, "/from/env.yml", got)

	t.Setenv(EnvConfig, "")
	got, err = Resolve("", root)
	require.NoError(t, err)
	assert.Equal(t, local, got)
}

func TestLoadOrDefaultWithoutFile(t *testing.T) {
	t.Setenv(EnvConfig, "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadOrDefault("", t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, DefaultBoardName, cfg.Board.Name)
	assert.Empty(t, cfg.Path())
}

func TestLoadOrDefaultExplicitMissing(t *testing.T) {
	_, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.yml"), t.TempDir())
	require.Error(t, err)
}

func TestIndexOf(t *testing.T) {
	assert.Equal(t, 1, IndexOf([]string{"a", "b"}, "b"))
	assert.Equal(t, -1, IndexOf([]string{"a", "b"}, "c"))
	assert.Equal(t, 1, NewDefault().PriorityIndex("High"))
}
