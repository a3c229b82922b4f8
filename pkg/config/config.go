package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config represents the complete popogen configuration.
//
// Configuration sources (in order of precedence):
//  1. CLI flags that were set explicitly
//  2. Environment variables (POPOGEN_*)
//  3. Configuration file (YAML, TOML or JSON)
//  4. Default values
//
// The output section follows a type-specific pattern: Output.Type selects the
// sink and only the matching section (output.directory) is decoded.
type Config struct {
	// Logging controls log output behavior
	Logging LoggingConfig `mapstructure:"logging"`

	// Input controls how schema documents are fetched and interpreted
	Input InputConfig `mapstructure:"input"`

	// Templates selects the class template
	Templates TemplatesConfig `mapstructure:"templates"`

	// Output selects where generated files go
	Output OutputConfig `mapstructure:"output"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	// Level is the minimum log level to output
	// Valid values: DEBUG, INFO, WARN, ERROR (case-insensitive, normalized to uppercase)
	Level string `mapstructure:"level" validate:"required,oneof=DEBUG INFO WARN ERROR debug info warn error"`

	// Output specifies where logs are written
	// Valid values: stdout, stderr, or a file path
	Output string `mapstructure:"output" validate:"required"`
}

// InputConfig controls document loading.
type InputConfig struct {
	// Format forces a format adapter instead of detecting one
	// Valid values: jsonschema, openapi (empty means detect)
	Format string `mapstructure:"format" validate:"omitempty,oneof=jsonschema openapi"`

	// AllowHTTP enables http(s) schema locations
	AllowHTTP bool `mapstructure:"allow_http"`

	// RequestTimeout caps remote fetches
	RequestTimeout time.Duration `mapstructure:"request_timeout" validate:"gte=0"`

	// ExternalRefs lets OpenAPI validation resolve external references
	ExternalRefs bool `mapstructure:"external_refs"`
}

// TemplatesConfig selects the class template.
type TemplatesConfig struct {
	// Folder is a template directory on disk; empty uses the bundled templates
	Folder string `mapstructure:"folder"`

	// Name is the template rendered for each definition, without extension
	Name string `mapstructure:"name" validate:"required"`
}

// OutputConfig selects the output sink.
type OutputConfig struct {
	// Type specifies which sink to use
	// Valid values: directory, stdout
	Type string `mapstructure:"type" validate:"required,oneof=directory stdout"`

	// Extension is appended to every generated file name
	Extension string `mapstructure:"extension" validate:"required,startswith=."`

	// Directory contains directory sink configuration
	// Only used when Type = "directory"
	Directory map[string]any `mapstructure:"directory"`
}

// flagKeys maps CLI flag names onto configuration keys.
var flagKeys = map[string]string{
	"log-level":         "logging.level",
	"format":            "input.format",
	"allow-http":        "input.allow_http",
	"templates-folder":  "templates.folder",
	"template":          "templates.name",
	"extension":         "output.extension",
	"output-folder":     "output.directory.path",
	"staged":            "output.directory.staged",
	"check-writable":    "output.directory.check_writable",
	"confirm-overwrite": "output.directory.confirm_overwrite",
}

// envKeys lists the keys that can be set through POPOGEN_* variables.
var envKeys = []string{
	"logging.level",
	"logging.output",
	"input.format",
	"input.allow_http",
	"input.request_timeout",
	"input.external_refs",
	"templates.folder",
	"templates.name",
	"output.type",
	"output.extension",
	"output.directory.path",
	"output.directory.staged",
	"output.directory.check_writable",
	"output.directory.confirm_overwrite",
	"output.directory.file_mode",
}

// Load loads configuration from file, environment, flags and defaults.
//
// configPath may be empty to use the default location
// ($XDG_CONFIG_HOME/popogen/config.yaml). A missing file is not an error.
// flags may be nil; only flags known to the configuration are bound.
func Load(configPath string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	if err := setupViper(v, configPath, flags); err != nil {
		return nil, err
	}

	if err := readConfigFile(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// setupViper configures env support, the config file location and flag
// bindings.
func setupViper(v *viper.Viper, configPath string, flags *pflag.FlagSet) error {
	// Example: POPOGEN_OUTPUT_DIRECTORY_PATH=generated/
	v.SetEnvPrefix("POPOGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(getConfigDir())
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if flags == nil {
		return nil
	}
	for name, key := range flagKeys {
		flag := flags.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("failed to bind flag --%s: %w", name, err)
		}
	}
	return nil
}

// readConfigFile reads the configuration file if it exists.
func readConfigFile(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}

// getConfigDir returns the configuration directory path.
func getConfigDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "popogen")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}

	return filepath.Join(home, ".config", "popogen")
}

// GetDefaultConfigPath returns the default configuration file path.
func GetDefaultConfigPath() string {
	return filepath.Join(getConfigDir(), "config.yaml")
}
