// Package config resolves command line settings from defaults, an optional
// schemaflat.yaml file, SCHEMAFLAT_* environment variables and flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. SCHEMAFLAT_LOG_LEVEL.
const EnvPrefix = "SCHEMAFLAT"

// Config represents the schemaflat configuration.
type Config struct {
	Root        string     `mapstructure:"root"`
	DefaultRoot string     `mapstructure:"default_root"`
	Input       string     `mapstructure:"input"`
	Output      string     `mapstructure:"output"`
	Format      string     `mapstructure:"format"`
	Strict      bool       `mapstructure:"strict"`
	Validate    bool       `mapstructure:"validate"`
	TreeOrder   bool       `mapstructure:"tree_order"`
	Log         LogConfig  `mapstructure:"log"`
	HTTP        HTTPConfig `mapstructure:"http"`
}

// LogConfig represents logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// HTTPConfig controls remote document loading.
type HTTPConfig struct {
	Timeout  time.Duration `mapstructure:"timeout"`
	MaxBytes int64         `mapstructure:"max_bytes"`
}

// Options locate the configuration sources.
type Options struct {
	// File is an explicit config file. When empty, schemaflat.yaml is looked
	// up in Dirs.
	File string
	// Dirs are searched for schemaflat.yaml. Defaults to the working directory.
	Dirs []string
	// Flags are bound by name ("root", "input", ...) and win over every other
	// source when set.
	Flags *pflag.FlagSet
}

// flagKeys maps command line flag names to config keys.
var flagKeys = map[string]string{
	"root":       "root",
	"input":      "input",
	"output":     "output",
	"format":     "format",
	"strict":     "strict",
	"validate":   "validate",
	"tree-order": "tree_order",
	"log-level":  "log.level",
	"log-format": "log.format",
	"timeout":    "http.timeout",
}

// Load resolves the configuration.
func Load(opts Options) (*Config, error) {
	v := viper.New()

	v.SetDefault("root", "")
	v.SetDefault("default_root", "")
	v.SetDefault("input", "openapi.json")
	v.SetDefault("output", "")
	v.SetDefault("format", "json")
	v.SetDefault("strict", false)
	v.SetDefault("validate", false)
	v.SetDefault("tree_order", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("http.timeout", 30*time.Second)
	v.SetDefault("http.max_bytes", int64(0))

	if opts.File != "" {
		v.SetConfigFile(opts.File)
	} else {
		v.SetConfigName("schemaflat")
		v.SetConfigType("yaml")
		dirs := opts.Dirs
		if len(dirs) == 0 {
			dirs = []string{"."}
		}
		for _, dir := range dirs {
			v.AddConfigPath(dir)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.Flags != nil {
		for name, key := range flagKeys {
			if flag := opts.Flags.Lookup(name); flag != nil {
				if err := v.BindPFlag(key, flag); err != nil {
					return nil, fmt.Errorf("config: bind flag %s: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.File != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DefaultOutput derives the output file name from the root schema and the
// writer's extension, e.g. Pet_fields.json.
func (c *Config) DefaultOutput(root, ext string) string {
	if c.Output != "" {
		return c.Output
	}
	return root + "_fields" + ext
}

func (c *Config) validate() error {
	if c.Input == "" {
		return errors.New("config: input is required")
	}
	if c.HTTP.Timeout < 0 {
		return fmt.Errorf("config: http.timeout must not be negative, got %s", c.HTTP.Timeout)
	}
	return nil
}
