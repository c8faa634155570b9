package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/antopolskiy/taskboard/internal/clierr"
)

const (
	fileMode = 0o600
	dirMode  = 0o750
)

// Sentinel errors.
var (
	ErrNotFound = errors.New("no taskboard config found")
	ErrInvalid  = errors.New("invalid config")
)

// Config represents the taskboard configuration.
type Config struct {
	Version    int            `yaml:"version" json:"version"`
	Board      BoardConfig    `yaml:"board" json:"board"`
	Priorities []string       `yaml:"priorities" json:"priorities"`
	Defaults   DefaultsConfig `yaml:"defaults" json:"defaults"`
	TUI        TUIConfig      `yaml:"tui" json:"tui"`
	Log        LogConfig      `yaml:"log" json:"log"`

	// path is the absolute path of the loaded file (not serialized).
	path string `yaml:"-"`
}

// BoardConfig holds board metadata.
type BoardConfig struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// DefaultsConfig holds default values for new tasks.
type DefaultsConfig struct {
	Priority string `yaml:"priority" json:"priority"`
}

// TUIConfig holds interactive board settings.
type TUIConfig struct {
	FocusDelay        string            `yaml:"focus_delay" json:"focus_delay"`
	ShakeDuration     string            `yaml:"shake_duration" json:"shake_duration"`
	EmptyMessage      string            `yaml:"empty_message,omitempty" json:"empty_message,omitempty"`
	NoDescription     string            `yaml:"no_description,omitempty" json:"no_description,omitempty"`
	ViewIgnoresEscape bool              `yaml:"view_ignores_escape,omitempty" json:"view_ignores_escape,omitempty"`
	DisableMouse      bool              `yaml:"disable_mouse,omitempty" json:"disable_mouse,omitempty"`
	PriorityColors    map[string]string `yaml:"priority_colors,omitempty" json:"priority_colors,omitempty"`
}

// LogConfig controls the diagnostic log. An empty File discards logs.
type LogConfig struct {
	File   string `yaml:"file,omitempty" json:"file,omitempty"`
	Level  string `yaml:"level" json:"level"`
	Format string `yaml:"format" json:"format"`
}

// NewDefault creates a Config with default values.
func NewDefault() *Config {
	return &Config{
		Version:    CurrentVersion,
		Board:      BoardConfig{Name: DefaultBoardName},
		Priorities: append([]string{}, DefaultPriorities...),
		Defaults:   DefaultsConfig{Priority: DefaultPriority},
		TUI: TUIConfig{
			FocusDelay:    DefaultFocusDelay.String(),
			ShakeDuration: DefaultShakeDuration.String(),
			EmptyMessage:  DefaultEmptyMessage,
			NoDescription: DefaultNoDescription,
		},
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// Path returns the absolute path of the loaded config file, or "" for
// built-in defaults.
func (c *Config) Path() string {
	return c.path
}

// SetPath sets the file path used by Save.
func (c *Config) SetPath(path string) {
	c.path = path
}

// Validate checks the config for errors.
func (c *Config) Validate() error {
	if c.Version != CurrentVersion {
		return fmt.Errorf("%w: unsupported version %d (expected %d)", ErrInvalid, c.Version, CurrentVersion)
	}
	if c.Board.Name == "" {
		return fmt.Errorf("%w: board.name is required", ErrInvalid)
	}
	if len(c.Priorities) < 1 {
		return fmt.Errorf("%w: at least 1 priority is required", ErrInvalid)
	}
	if hasDuplicates(c.Priorities) {
		return fmt.Errorf("%w: priorities contain duplicates", ErrInvalid)
	}
	for _, p := range c.Priorities {
		if p == "" {
			return fmt.Errorf("%w: priorities contain an empty label", ErrInvalid)
		}
	}
	if !contains(c.Priorities, c.Defaults.Priority) {
		return fmt.Errorf("%w: default priority %q not in priorities list", ErrInvalid, c.Defaults.Priority)
	}
	if err := validateDuration("tui.focus_delay", c.TUI.FocusDelay); err != nil {
		return err
	}
	if err := validateDuration("tui.shake_duration", c.TUI.ShakeDuration); err != nil {
		return err
	}
	if c.Log.Level != "" && !contains(LogLevels, c.Log.Level) {
		return fmt.Errorf("%w: unknown log.level %q", ErrInvalid, c.Log.Level)
	}
	if c.Log.Format != "" && !contains(LogFormats, c.Log.Format) {
		return fmt.Errorf("%w: unknown log.format %q", ErrInvalid, c.Log.Format)
	}
	return nil
}

func validateDuration(key, value string) error {
	if value == "" {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("%w: invalid %s %q: %w", ErrInvalid, key, value, err)
	}
	if d < 0 {
		return fmt.Errorf("%w: %s must be >= 0", ErrInvalid, key)
	}
	return nil
}

// FocusDelay returns how long the form waits before focusing the name field.
func (c *Config) FocusDelay() time.Duration {
	return parseDurationOr(c.TUI.FocusDelay, DefaultFocusDelay)
}

// ShakeDuration returns how long the invalid-form shake stays visible.
func (c *Config) ShakeDuration() time.Duration {
	return parseDurationOr(c.TUI.ShakeDuration, DefaultShakeDuration)
}

// EmptyMessage returns the text shown when the board has no tasks.
func (c *Config) EmptyMessage() string {
	if c.TUI.EmptyMessage == "" {
		return DefaultEmptyMessage
	}
	return c.TUI.EmptyMessage
}

// NoDescription returns the placeholder for tasks without a description.
func (c *Config) NoDescription() string {
	if c.TUI.NoDescription == "" {
		return DefaultNoDescription
	}
	return c.TUI.NoDescription
}

// PriorityColor returns the configured color for a priority class, if any.
func (c *Config) PriorityColor(class string) (string, bool) {
	color, ok := c.TUI.PriorityColors[class]
	return color, ok && color != ""
}

// PriorityIndex returns the index of a priority in the configured order, or -1.
func (c *Config) PriorityIndex(priority string) int {
	return IndexOf(c.Priorities, priority)
}

func parseDurationOr(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		return fallback
	}
	return d
}

// Save writes the config to its path, creating parent directories.
func (c *Config) Save() error {
	if c.path == "" {
		return errors.New("config has no path")
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(c.path), dirMode); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	return os.WriteFile(c.path, data, fileMode)
}

// Load reads, migrates and validates the config file at path.
func Load(path string) (*Config, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	data, err := os.ReadFile(absPath) //nolint:gosec // config path from trusted source
	if err != nil {
		if os.IsNotExist(err) {
			return nil, clierr.Newf(clierr.ConfigNotFound, "config file %s not found", absPath).
				WithDetails(map[string]any{"path": absPath})
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := checkSchema(data); err != nil {
		return nil, fmt.Errorf("%s: %w", absPath, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w: parsing config: %w", absPath, ErrInvalid, err)
	}

	cfg.path = absPath

	// Migrate old config versions forward before validating.
	if err := migrate(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", absPath, err)
	}

	return &cfg, nil
}

// Resolve picks the config file to use. An explicit path wins, then the
// TASKBOARD_CONFIG environment variable, then .taskboard.yml found walking
// upward from startDir, then the file in the user config directory.
// It returns ErrNotFound when none of the implicit locations exist.
func Resolve(explicit, startDir string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if env := os.Getenv(EnvConfig); env != "" {
		return env, nil
	}
	if path, err := FindFile(startDir); err == nil {
		return path, nil
	}
	if userDir, err := os.UserConfigDir(); err == nil {
		candidate := filepath.Join(userDir, AppDir, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", ErrNotFound
}

// LoadOrDefault resolves and loads the config. When no file exists in any
// implicit location the built-in defaults are returned.
func LoadOrDefault(explicit, startDir string) (*Config, error) {
	path, err := Resolve(explicit, startDir)
	if errors.Is(err, ErrNotFound) {
		return NewDefault(), nil
	}
	if err != nil {
		return nil, err
	}
	return Load(path)
}

// FindFile walks upward from startDir looking for .taskboard.yml.
func FindFile(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	for {
		candidate := filepath.Join(dir, LocalFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotFound
		}
		dir = parent
	}
}

// UserPath returns the default config path in the user config directory.
func UserPath() (string, error) {
	userDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating user config dir: %w", err)
	}
	return filepath.Join(userDir, AppDir, ConfigFileName), nil
}

func contains(slice []string, item string) bool {
	return IndexOf(slice, item) >= 0
}

// IndexOf returns the index of item in slice, or -1 if not found.
func IndexOf(slice []string, item string) int {
	for i, s := range slice {
		if s == item {
			return i
		}
	}
	return -1
}

func hasDuplicates(slice []string) bool {
	seen := make(map[string]bool, len(slice))
	for _, s := range slice {
		if seen[s] {
			return true
		}
		seen[s] = true
	}
	return false
}
