// Package config provides configuration loading and validation for the view
// CLI and LSP demo server.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Sentinel validation errors.
var (
	ErrInvalidPort         = errors.New("invalid server port")
	ErrInvalidBaseNodeSize = errors.New("base node size must be positive")
	ErrInvalidLogLevel     = errors.New("unrecognized log level")
)

// Default configuration values.
const (
	defaultPort         = 7777
	defaultHost         = "127.0.0.1"
	defaultBaseNodeSize = 32
	maxPort             = 65535
)

// Config holds all configuration for the view CLI and cmd/decolsp server.
type Config struct {
	Server        ServerConfig        `mapstructure:"server"`
	Observability ObservabilityConfig `mapstructure:"observability"`
	Tree          TreeConfig          `mapstructure:"tree"`
}

// ServerConfig holds transport settings. They are validated on load;
// cmd/decolsp does not read them and always serves over stdio.
type ServerConfig struct {
	Host  string `mapstructure:"host"`
	Port  int    `mapstructure:"port"`
	Stdio bool   `mapstructure:"stdio"`
}

// ObservabilityConfig holds logging/tracing settings shared by the CLI and
// the server.
type ObservabilityConfig struct {
	LogLevel     string `mapstructure:"log_level"`
	LogFormat    string `mapstructure:"log_format"`
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`
	Environment  string `mapstructure:"environment"`
	MetricsAddr  string `mapstructure:"metrics_addr"`
}

// TreeConfig holds a node-size setting that is loaded and validated but not
// read by the decorset package, which always uses its decorset.BaseNodeSize
// constant.
type TreeConfig struct {
	BaseNodeSize int `mapstructure:"base_node_size"`
}

// Load loads configuration from configPath (or the default search path if
// empty) and environment variables prefixed VIEW_.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/view")
	}

	v.SetEnvPrefix("VIEW")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if !errors.As(err, &notFoundErr) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", defaultHost)
	v.SetDefault("server.port", defaultPort)
	v.SetDefault("server.stdio", true)

	v.SetDefault("observability.log_level", "info")
	v.SetDefault("observability.log_format", "json")
	v.SetDefault("observability.metrics_addr", ":9090")

	v.SetDefault("tree.base_node_size", defaultBaseNodeSize)
}

func validate(cfg *Config) error {
	if !cfg.Server.Stdio && (cfg.Server.Port <= 0 || cfg.Server.Port > maxPort) {
		return fmt.Errorf("%w: %d", ErrInvalidPort, cfg.Server.Port)
	}

	if cfg.Tree.BaseNodeSize <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidBaseNodeSize, cfg.Tree.BaseNodeSize)
	}

	switch cfg.Observability.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, cfg.Observability.LogLevel)
	}

	return nil
}
