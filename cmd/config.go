package cmd

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/antopolskiy/taskboard/internal/clierr"
	"github.com/antopolskiy/taskboard/internal/config"
	"github.com/antopolskiy/taskboard/internal/output"
	"github.com/antopolskiy/taskboard/internal/task"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or modify board configuration",
	Long:  `View the full configuration, get a specific key, set a writable value, or create a config file.`,
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:   "get KEY",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2), //nolint:mnd // key and value
	RunE:  runConfigSet,
}

var configInitCmd = &cobra.Command{
	Use:   "init [PATH]",
	Short: "Write a default config file",
	Long: `Writes the built-in defaults to PATH, or to the user config directory
when PATH is omitted. An existing file is never overwritten.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigInit,
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

// configAccessor describes how to get and set a config key.
type configAccessor struct {
	get      func(*config.Config) any
	set      func(*config.Config, string) error
	writable bool
}

func configAccessors() map[string]configAccessor {
	return map[string]configAccessor{
		"version": {
			get: func(c *config.Config) any { return c.Version },
		},
		"path": {
			get: func(c *config.Config) any {
				if c.Path() == "" {
					return "--"
				}
				return c.Path()
			},
		},
		"board.name": {
			get:      func(c *config.Config) any { return c.Board.Name },
			set:      func(c *config.Config, v string) error { c.Board.Name = v; return nil },
			writable: true,
		},
		"board.description": {
			get:      func(c *config.Config) any { return c.Board.Description },
			set:      func(c *config.Config, v string) error { c.Board.Description = v; return nil },
			writable: true,
		},
		"priorities": {
			get: func(c *config.Config) any { return c.Priorities },
		},
		"defaults.priority": {
			get: func(c *config.Config) any { return c.Defaults.Priority },
			set: func(c *config.Config, v string) error {
				if err := task.ValidatePriority(v, c.Priorities); err != nil {
					return err
				}
				c.Defaults.Priority = v
				return nil
			},
			writable: true,
		},
		"tui.focus_delay": {
			get:      func(c *config.Config) any { return c.FocusDelay().String() },
			set:      durationSetter(func(c *config.Config) *string { return &c.TUI.FocusDelay }),
			writable: true,
		},
		"tui.shake_duration": {
			get:      func(c *config.Config) any { return c.ShakeDuration().String() },
			set:      durationSetter(func(c *config.Config) *string { return &c.TUI.ShakeDuration }),
			writable: true,
		},
		"tui.empty_message": {
			get:      func(c *config.Config) any { return c.EmptyMessage() },
			set:      func(c *config.Config, v string) error { c.TUI.EmptyMessage = v; return nil },
			writable: true,
		},
		"tui.no_description": {
			get:      func(c *config.Config) any { return c.NoDescription() },
			set:      func(c *config.Config, v string) error { c.TUI.NoDescription = v; return nil },
			writable: true,
		},
		"tui.view_ignores_escape": {
			get:      func(c *config.Config) any { return c.TUI.ViewIgnoresEscape },
			set:      boolSetter(func(c *config.Config) *bool { return &c.TUI.ViewIgnoresEscape }),
			writable: true,
		},
		"tui.disable_mouse": {
			get:      func(c *config.Config) any { return c.TUI.DisableMouse },
			set:      boolSetter(func(c *config.Config) *bool { return &c.TUI.DisableMouse }),
			writable: true,
		},
		"tui.priority_colors": {
			get: func(c *config.Config) any {
				if c.TUI.PriorityColors == nil {
					return map[string]string{}
				}
				return c.TUI.PriorityColors
			},
		},
		"log.file": {
			get:      func(c *config.Config) any { return c.Log.File },
			set:      func(c *config.Config, v string) error { c.Log.File = v; return nil },
			writable: true,
		},
		"log.level": {
			get: func(c *config.Config) any { return c.Log.Level },
			set: func(c *config.Config, v string) error {
				if config.IndexOf(config.LogLevels, v) < 0 {
					return clierr.Newf(clierr.InvalidInput,
						"invalid log level %q; allowed: %s", v, strings.Join(config.LogLevels, ", "))
				}
				c.Log.Level = v
				return nil
			},
			writable: true,
		},
		"log.format": {
			get: func(c *config.Config) any { return c.Log.Format },
			set: func(c *config.Config, v string) error {
				if config.IndexOf(config.LogFormats, v) < 0 {
					return clierr.Newf(clierr.InvalidInput,
						"invalid log format %q; allowed: %s", v, strings.Join(config.LogFormats, ", "))
				}
				c.Log.Format = v
				return nil
			},
			writable: true,
		},
	}
}

func durationSetter(field func(*config.Config) *string) func(*config.Config, string) error {
	return func(c *config.Config, v string) error {
		d, err := time.ParseDuration(v)
		if err != nil || d < 0 {
			return clierr.Newf(clierr.InvalidInput, "invalid duration %q; use e.g. 120ms or 1s", v)
		}
		*field(c) = v
		return nil
	}
}

func boolSetter(field func(*config.Config) *bool) func(*config.Config, string) error {
	return func(c *config.Config, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return clierr.Newf(clierr.InvalidInput, "invalid boolean %q; use true or false", v)
		}
		*field(c) = b
		return nil
	}
}

// allConfigKeys returns config keys in display order.
func allConfigKeys() []string {
	return []string{
		"version",
		"path",
		"board.name",
		"board.description",
		"priorities",
		"defaults.priority",
		"tui.focus_delay",
		"tui.shake_duration",
		"tui.empty_message",
		"tui.no_description",
		"tui.view_ignores_escape",
		"tui.disable_mouse",
		"tui.priority_colors",
		"log.file",
		"log.level",
		"log.format",
	}
}

func runConfigShow(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	accessors := configAccessors()

	if outputFormat() == output.FormatJSON {
		m := make(map[string]any, len(accessors))
		for _, key := range allConfigKeys() {
			m[key] = accessors[key].get(cfg)
		}
		return output.JSON(os.Stdout, m)
	}

	// Table mode: key-value pairs.
	for _, key := range allConfigKeys() {
		val := accessors[key].get(cfg)
		fmt.Fprintf(os.Stdout, "%-24s %v\n", key, formatConfigValue(val))
	}
	return nil
}

func runConfigGet(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	key := args[0]
	acc, ok := configAccessors()[key]
	if !ok {
		return clierr.Newf(clierr.InvalidInput, "unknown config key %q", key)
	}

	val := acc.get(cfg)

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, val)
	}

	fmt.Fprintln(os.Stdout, formatConfigValue(val))
	return nil
}

func runConfigSet(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Path() == "" {
		return clierr.New(clierr.ConfigNotFound,
			"no config file to update; run 'taskboard config init' first")
	}

	key, value := args[0], args[1]
	acc, ok := configAccessors()[key]
	if !ok {
		return clierr.Newf(clierr.InvalidInput, "unknown config key %q", key)
	}
	if !acc.writable {
		return clierr.Newf(clierr.InvalidInput, "config key %q is read-only", key)
	}

	if err := acc.set(cfg, value); err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return clierr.New(clierr.InvalidConfig, err.Error())
	}

	if err := cfg.Save(); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]any{"key": key, "value": acc.get(cfg)})
	}

	output.Messagef(os.Stdout, "Set %s = %v", key, formatConfigValue(acc.get(cfg)))
	return nil
}

func runConfigInit(_ *cobra.Command, args []string) error {
	path := flagConfig
	if len(args) == 1 {
		path = args[0]
	}
	if path == "" {
		var err error
		if path, err = config.UserPath(); err != nil {
			return err
		}
	}

	if _, err := os.Stat(path); err == nil {
		return clierr.Newf(clierr.ConfigExists, "config file %s already exists", path).
			WithDetails(map[string]any{"path": path})
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("checking config path: %w", err)
	}

	cfg := config.NewDefault()
	cfg.SetPath(path)
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]any{"path": path})
	}
	output.Messagef(os.Stdout, "Created config at %s", path)
	return nil
}

func formatConfigValue(val any) string {
	switch v := val.(type) {
	case []string:
		return strings.Join(v, ", ")
	case map[string]string:
		if len(v) == 0 {
			return "--"
		}
		parts := make([]string, 0, len(v))
		for k, s := range v {
			parts = append(parts, k+"="+s)
		}
		sort.Strings(parts)
		return strings.Join(parts, ", ")
	case string:
		if v == "" {
			return "--"
		}
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}
