// Package config loads regform settings from a YAML or JSON file, REGFORM_*
// environment variables and defaults, in increasing order of precedence:
// defaults, file, environment, bound flags.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-regform/pkg/model"
)

// EnvPrefix prefixes environment overrides, e.g. REGFORM_ENDPOINT.
const EnvPrefix = "REGFORM"

// Config holds every runtime setting.
type Config struct {
	Endpoint        string        `mapstructure:"endpoint" yaml:"endpoint"`
	Timeout         time.Duration `mapstructure:"timeout" yaml:"timeout"`
	Listen          string        `mapstructure:"listen" yaml:"listen"`
	RegistrarListen string        `mapstructure:"registrar_listen" yaml:"registrar_listen"`
	Renderer        string        `mapstructure:"renderer" yaml:"renderer"`
	LogLevel        string        `mapstructure:"log_level" yaml:"log_level"`
	Output          string        `mapstructure:"output" yaml:"output"` // json, form or pretty
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Endpoint:        model.DefaultEndpoint,
		Timeout:         10 * time.Second,
		Listen:          "127.0.0.1:8080",
		RegistrarListen: "127.0.0.1:8081",
		Renderer:        "vanilla",
		LogLevel:        "info",
		Output:          "json",
	}
}

// NewViper returns a viper instance seeded with defaults and environment
// bindings. Callers may bind flags before calling Read.
func NewViper() *viper.Viper {
	v := viper.New()
	d := Defaults()
	v.SetDefault("endpoint", d.Endpoint)
	v.SetDefault("timeout", d.Timeout)
	v.SetDefault("listen", d.Listen)
	v.SetDefault("registrar_listen", d.RegistrarListen)
	v.SetDefault("renderer", d.Renderer)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("output", d.Output)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// Read loads path into v (when set), then decodes and validates.
func Read(v *viper.Viper, path string) (Config, error) {
	if path = strings.TrimSpace(path); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load is Read on a fresh NewViper.
func Load(path string) (Config, error) {
	return Read(NewViper(), path)
}

// Validate rejects settings the commands cannot use.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Endpoint) == "" {
		errs = append(errs, errors.New("endpoint is required"))
	}
	if c.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("timeout must be positive, got %s", c.Timeout))
	}
	switch c.Output {
	case "json", "form", "pretty":
	default:
		errs = append(errs, fmt.Errorf("output must be json, form or pretty, got %q", c.Output))
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelInfo, fmt.Errorf("log_level: %w", err)
	}
	return level, nil
}

// YAML renders c as a config file.
func (c Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}

// WriteDefault writes the default configuration to path unless it exists.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config: %s already exists", path)
	}
	data, err := Defaults().YAML()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
