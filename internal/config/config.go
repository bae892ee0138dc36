// Package config loads the todo CLI settings from flags, TODO_* environment
// variables, an optional .env file and an optional todo.yaml.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "TODO"

// Transports selectable with the transport key.
const (
	TransportNetHTTP = "net/http"
	TransportResty   = "resty"
)

// Config holds the CLI configuration.
type Config struct {
	BaseURL       string        `mapstructure:"base_url" validate:"required,url"`
	Timeout       time.Duration `mapstructure:"timeout" validate:"gt=0"`
	UserAgent     string        `mapstructure:"user_agent"`
	ThrottleRPS   int           `mapstructure:"throttle_rps" validate:"gte=0"`
	ThrottleBurst int           `mapstructure:"throttle_burst" validate:"gte=0"`
	LogLevel      string        `mapstructure:"log_level" validate:"oneof=debug info warn error"`
	Transport     string        `mapstructure:"transport" validate:"oneof=net/http resty"`
}

// Option adjusts where [Load] looks for configuration.
type Option func(*options)

type options struct {
	envFile    string
	envFileSet bool
	configFile string
	flags      *pflag.FlagSet
}

// WithEnvFile loads path instead of ./.env. Unlike the default, a missing
// file is an error.
func WithEnvFile(path string) Option {
	return func(o *options) {
		o.envFile = path
		o.envFileSet = true
	}
}

// WithConfigFile reads path instead of searching for todo.yaml in the
// working directory. A missing file is an error.
func WithConfigFile(path string) Option {
	return func(o *options) {
		o.configFile = path
	}
}

// WithFlags lets flags that were set on the command line take precedence.
// Flags are matched by key with dashes, e.g. --base-url for base_url.
func WithFlags(fs *pflag.FlagSet) Option {
	return func(o *options) {
		o.flags = fs
	}
}

// Load resolves the configuration. Precedence, highest first: flags,
// environment (including .env), config file, defaults.
func Load(optFns ...Option) (*Config, error) {
	opts := options{envFile: ".env"}
	for _, opt := range optFns {
		opt(&opts)
	}

	if err := godotenv.Load(opts.envFile); err != nil {
		if opts.envFileSet || !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading env file: %w", err)
		}
	}

	v := viper.New()

	v.SetDefault("base_url", "http://jsonplaceholder.typicode.com")
	v.SetDefault("timeout", 30*time.Second)
	v.SetDefault("user_agent", "todo-cli")
	v.SetDefault("throttle_rps", 0)
	v.SetDefault("throttle_burst", 0)
	v.SetDefault("log_level", "warn")
	v.SetDefault("transport", TransportNetHTTP)

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if opts.configFile != "" {
		v.SetConfigFile(opts.configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	} else {
		v.SetConfigName("todo")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, notFound := errors.AsType[viper.ConfigFileNotFoundError](err); !notFound {
				return nil, fmt.Errorf("reading config file: %w", err)
			}
		}
	}

	if opts.flags != nil {
		for _, key := range v.AllKeys() {
			f := opts.flags.Lookup(strings.ReplaceAll(key, "_", "-"))
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("binding flag %s: %w", f.Name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks field constraints and that throttling is either fully
// configured or off.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if (c.ThrottleRPS == 0) != (c.ThrottleBurst == 0) {
		return fmt.Errorf("invalid config: throttle_rps[%d] and throttle_burst[%d] must both be set", c.ThrottleRPS, c.ThrottleBurst)
	}

	return nil
}

// Throttled reports whether request throttling is configured.
func (c *Config) Throttled() bool {
	return c.ThrottleRPS > 0 && c.ThrottleBurst > 0
}

// Level maps LogLevel onto a slog level.
func (c *Config) Level() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelWarn
	}
	return l
}
