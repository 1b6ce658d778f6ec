package config

import (
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"notepad/internal/logger"
)

// Environment variables read by Load
const (
	EnvConfigFile = "NOTEPAD_CONFIG"
	EnvLogLevel   = "NOTEPAD_LOG_LEVEL"
	EnvJSONLogs   = "NOTEPAD_JSON_LOGS"
	EnvLogFile    = "NOTEPAD_LOG_FILE"
	EnvDebug      = "NOTEPAD_DEBUG"
)

type Config struct {
	LogLevel string       `toml:"log_level"`
	JSONLogs bool         `toml:"json_logs"`
	LogFile  string       `toml:"log_file"`
	Window   WindowConfig `toml:"window"`
	Editor   EditorConfig `toml:"editor"`
}

type WindowConfig struct {
	Width  float32 `toml:"width"`
	Height float32 `toml:"height"`
}

type EditorConfig struct {
	Monospace bool `toml:"monospace"`
	Wrap      bool `toml:"wrap"`
	// DefaultExtension is used for the file name suggested by the save dialog.
	DefaultExtension string `toml:"default_extension"`
	// FilterOpen limits the open dialog to DefaultExtension files. The dialog
	// shows every file otherwise.
	FilterOpen bool `toml:"filter_open"`
}

func Default() Config {
	return Config{
		LogLevel: "info",
		Window: WindowConfig{
			Width:  800,
			Height: 600,
		},
		Editor: EditorConfig{
			Monospace:        true,
			DefaultExtension: ".txt",
		},
	}
}

// Load returns the defaults overlaid with the TOML file at path (when path is
// non-empty) and then with environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv(EnvConfigFile)
	}
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, errors.Wrapf(err, "loading config file %s", path)
		}
	}

	cfg.applyEnv(os.Getenv)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) {
	switch {
	case getenv(EnvLogLevel) != "":
		c.LogLevel = getenv(EnvLogLevel)
	case getenv("LOG_LEVEL") != "":
		c.LogLevel = getenv("LOG_LEVEL")
	case getenv(EnvDebug) == "1":
		c.LogLevel = "debug"
	}

	if v := getenv(EnvJSONLogs); v != "" {
		c.JSONLogs = strings.EqualFold(v, "true") || v == "1"
	}
	if v := getenv(EnvLogFile); v != "" {
		c.LogFile = v
	}
}

func (c Config) Validate() error {
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return errors.Errorf("invalid window size %.0fx%.0f", c.Window.Width, c.Window.Height)
	}
	if ext := c.Editor.DefaultExtension; ext != "" && !strings.HasPrefix(ext, ".") {
		return errors.Errorf("default extension %q must start with a dot", ext)
	}
	return nil
}

// LoggerOptions converts the logging settings for logger.New
func (c Config) LoggerOptions() logger.Options {
	return logger.Options{
		Level: c.LogLevel,
		JSON:  c.JSONLogs,
		File:  c.LogFile,
	}
}
