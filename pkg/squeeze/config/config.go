package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
)

// LoggingConfig configures application logging.
type LoggingConfig struct {
	Level        string            `mapstructure:"level"`
	Path         string            `mapstructure:"path"`
	ConsoleLevel string            `mapstructure:"console_level"`
	Components   map[string]string `mapstructure:"components"`
}

// Config represents the application configuration.
type Config struct {
	// Binary is the compressor binary name or path.
	Binary string `mapstructure:"binary"`

	// Root is the working directory containing the directories to
	// compress. Archives are written here.
	Root string `mapstructure:"root"`

	// Exclude lists directory names skipped during discovery.
	Exclude []string `mapstructure:"exclude"`

	// Probe selects the size-probe strategy: "du" or "native".
	Probe string `mapstructure:"probe"`

	// Format selects the report output format.
	Format string `mapstructure:"format"`

	Logging LoggingConfig `mapstructure:"logging"`

	// ConfigFile is the config file the settings were loaded from,
	// empty when only defaults and environment applied.
	ConfigFile string `mapstructure:"-"`
}

// Load loads configuration from file and environment variables.
// Config file locations (in order of precedence):
//   - $XDG_CONFIG_HOME/squeeze/config.yaml
//   - $HOME/.config/squeeze/config.yaml
//
// Environment variables are prefixed with SQUEEZE_ (e.g. SQUEEZE_BINARY).
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		v.AddConfigPath(filepath.Join(xdgConfigHome, "squeeze"))
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user home directory: %w", err)
	}
	v.AddConfigPath(filepath.Join(homeDir, ".config", "squeeze"))

	v.SetEnvPrefix("SQUEEZE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is acceptable; we use defaults.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.ConfigFile = v.ConfigFileUsed()

	return &cfg, nil
}

// SetDefaults registers the default values on a viper instance. Shared
// between Load and the CLI's global viper.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("binary", DefaultBinary)
	v.SetDefault("root", DefaultRoot)
	v.SetDefault("exclude", DefaultExclusions)
	v.SetDefault("probe", DefaultProbe)
	v.SetDefault("format", DefaultFormat)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.path", "") // empty means the XDG state dir default
	v.SetDefault("logging.console_level", "info")
	v.SetDefault("logging.components", map[string]string{
		"tuner":    "info",
		"sweeper":  "info",
		"probe":    "info",
		"archiver": "warn",
	})
}

// ConfigDir returns the configuration directory path.
func ConfigDir() (string, error) {
	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		return filepath.Join(xdgConfigHome, "squeeze"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(homeDir, ".config", "squeeze"), nil
}

// EnsureConfigDir creates the config directory if it doesn't exist.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	return nil
}

// StateDir returns $XDG_STATE_HOME/squeeze/ for log files.
func StateDir() string {
	return filepath.Join(xdg.StateHome, "squeeze")
}

// WriteDefault writes a default config file if none exists.
// Returns nil if a config file already exists.
func WriteDefault() error {
	if err := EnsureConfigDir(); err != nil {
		return err
	}

	configDir, err := ConfigDir()
	if err != nil {
		return err
	}

	configPath := filepath.Join(configDir, "config.yaml")

	if _, err := os.Stat(configPath); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to check config file: %w", err)
	}

	defaultConfig := fmt.Sprintf(`# Squeeze 7z Parameter Tuner Configuration

# Compressor binary name or absolute path
binary: %s

# Working directory containing the directories to compress
root: %s

# Directory names to skip (hidden directories are always skipped)
exclude:
  - venv

# Size probe strategy: du (external du -sm) or native (built-in walker)
probe: %s

# Report output format: pretty, plain, json, yaml
format: %s

# Logging configuration
logging:
  # Log level: debug, info, warn, error
  level: info
  # Log file path (empty means $XDG_STATE_HOME/squeeze/squeeze.log, "-" disables)
  path: ""
  # Console (stderr) level; empty disables console logging
  console_level: info
  # Per-component log levels
  components:
    tuner: info
    sweeper: info
    probe: info
    archiver: warn
`, DefaultBinary, DefaultRoot, DefaultProbe, DefaultFormat)

	if err := os.WriteFile(configPath, []byte(defaultConfig), 0o644); err != nil {
		return fmt.Errorf("failed to write default config: %w", err)
	}

	return nil
}

// ExpandPath expands ~ in a path to the user's home directory.
func ExpandPath(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(homeDir, path[1:]), nil
}
