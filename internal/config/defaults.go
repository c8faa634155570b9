// Package config handles taskboard configuration.
package config

import "time"

// Default values for a new configuration.
var (
	DefaultBoardName = "Tasks"

	DefaultPriorities = []string{
		"Normal",
		"High",
		"Low",
	}

	DefaultPriority = "Normal"

	DefaultFocusDelay    = 120 * time.Millisecond
	DefaultShakeDuration = 350 * time.Millisecond

	DefaultEmptyMessage  = "No tasks yet. Press a to add one."
	DefaultNoDescription = "No description provided."

	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

const (
	// ConfigFileName is the name of the config file in the user config dir.
	ConfigFileName = "config.yml"

	// LocalFileName is the project-local config file looked up from the
	// working directory upward.
	LocalFileName = ".taskboard.yml"

	// AppDir is the directory name under the user config dir.
	AppDir = "taskboard"

	// EnvConfig names the environment variable holding a config path.
	EnvConfig = "TASKBOARD_CONFIG"

	// CurrentVersion is the current config schema version.
	CurrentVersion = 2
)

// LogLevels and LogFormats list the accepted log settings.
var (
	LogLevels  = []string{"debug", "info", "warn", "error"}
	LogFormats = []string{"text", "json", "logfmt"}
)
