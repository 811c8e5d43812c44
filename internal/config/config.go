package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"go.uber.org/multierr"
	"go.uber.org/zap/zapcore"
)

const (
	defaultEnvironment  = "dev"
	defaultConfigEnvVar = "BT_HTTPCLI_YMLCONFIGFILE"
	defaultConfigFile   = "config/http/client-config.yml"
	defaultLogLevel     = "info"
	defaultTimeout      = 30 * time.Second

	envPrefix = "CLIENTCONF_"
)

// Output formats accepted by Config.Format.
const (
	FormatText = "text"
	FormatYAML = "yaml"
)

// Config aggregates runtime configuration of the clientconf tool.
// Precedence: CLI flags > Environment variables > Defaults
type Config struct {
	Environment    string
	ConfigEnvVar   string
	ConfigFile     string
	LogLevel       string
	Format         string
	Timeout        time.Duration
	RateLimitRPS   float64
	RateLimitBurst int
	RequestLogging bool
}

// envConfig mirrors Config for CLIENTCONF_* variables. Negative numbers mean unset.
type envConfig struct {
	Environment    string        `env:"ENVIRONMENT"`
	ConfigEnvVar   string        `env:"CONFIG_ENV_VAR"`
	ConfigFile     string        `env:"CONFIG_FILE"`
	LogLevel       string        `env:"LOG_LEVEL"`
	Format         string        `env:"FORMAT"`
	Timeout        time.Duration `env:"TIMEOUT" envDefault:"-1s"`
	RateLimitRPS   float64       `env:"RATE_LIMIT_RPS" envDefault:"-1"`
	RateLimitBurst int           `env:"RATE_LIMIT_BURST" envDefault:"-1"`
	RequestLogging bool          `env:"REQUEST_LOGGING" envDefault:"true"`
}

// CLIOverrides holds command-line flag overrides. Nil fields were not given.
type CLIOverrides struct {
	Environment    *string
	ConfigEnvVar   *string
	ConfigFile     *string
	LogLevel       *string
	Format         *string
	Timeout        *time.Duration
	RateLimitRPS   *float64
	RateLimitBurst *int
	RequestLogging *bool
}

// Load resolves configuration with precedence:
// CLI flags > Environment variables > Defaults
func Load(overrides *CLIOverrides) (Config, error) {
	cfg := defaultConfig()

	if err := applyEnvConfig(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}

	if overrides != nil {
		applyCLIOverrides(&cfg, overrides)
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func defaultConfig() Config {
	return Config{
		Environment:    defaultEnvironment,
		ConfigEnvVar:   defaultConfigEnvVar,
		ConfigFile:     defaultConfigFile,
		LogLevel:       defaultLogLevel,
		Format:         FormatText,
		Timeout:        defaultTimeout,
		RateLimitRPS:   0,
		RateLimitBurst: 0,
		RequestLogging: true,
	}
}

func applyEnvConfig(cfg *Config) error {
	var envCfg envConfig
	if err := env.ParseWithOptions(&envCfg, env.Options{Prefix: envPrefix}); err != nil {
		return err
	}

	setString(&cfg.Environment, envCfg.Environment)
	setString(&cfg.ConfigEnvVar, envCfg.ConfigEnvVar)
	setString(&cfg.ConfigFile, envCfg.ConfigFile)
	setString(&cfg.LogLevel, envCfg.LogLevel)
	setString(&cfg.Format, envCfg.Format)

	if envCfg.Timeout >= 0 {
		cfg.Timeout = envCfg.Timeout
	}
	if envCfg.RateLimitRPS >= 0 {
		cfg.RateLimitRPS = envCfg.RateLimitRPS
	}
	if envCfg.RateLimitBurst >= 0 {
		cfg.RateLimitBurst = envCfg.RateLimitBurst
	}
	cfg.RequestLogging = envCfg.RequestLogging

	return nil
}

func applyCLIOverrides(cfg *Config, overrides *CLIOverrides) {
	if overrides.Environment != nil {
		setString(&cfg.Environment, *overrides.Environment)
	}
	if overrides.ConfigEnvVar != nil {
		setString(&cfg.ConfigEnvVar, *overrides.ConfigEnvVar)
	}
	if overrides.ConfigFile != nil {
		setString(&cfg.ConfigFile, *overrides.ConfigFile)
	}
	if overrides.LogLevel != nil {
		setString(&cfg.LogLevel, *overrides.LogLevel)
	}
	if overrides.Format != nil {
		setString(&cfg.Format, *overrides.Format)
	}

	if overrides.Timeout != nil && *overrides.Timeout >= 0 {
		cfg.Timeout = *overrides.Timeout
	}
	if overrides.RateLimitRPS != nil && *overrides.RateLimitRPS >= 0 {
		cfg.RateLimitRPS = *overrides.RateLimitRPS
	}
	if overrides.RateLimitBurst != nil && *overrides.RateLimitBurst >= 0 {
		cfg.RateLimitBurst = *overrides.RateLimitBurst
	}
	if overrides.RequestLogging != nil {
		cfg.RequestLogging = *overrides.RequestLogging
	}
}

// validateConfig reports every problem at once.
func validateConfig(cfg Config) error {
	var err error

	if cfg.Environment == "" {
		err = multierr.Append(err, fmt.Errorf("environment must not be empty"))
	}
	if cfg.ConfigEnvVar == "" && cfg.ConfigFile == "" {
		err = multierr.Append(err, fmt.Errorf("either a config environment variable or a config file is required"))
	}
	if _, lvlErr := zapcore.ParseLevel(cfg.LogLevel); lvlErr != nil {
		err = multierr.Append(err, fmt.Errorf("invalid log level %q", cfg.LogLevel))
	}
	if cfg.Format != FormatText && cfg.Format != FormatYAML {
		err = multierr.Append(err, fmt.Errorf("format must be %q or %q, got %q", FormatText, FormatYAML, cfg.Format))
	}
	if cfg.Timeout < 0 {
		err = multierr.Append(err, fmt.Errorf("timeout must be >= 0"))
	}
	if cfg.RateLimitRPS < 0 {
		err = multierr.Append(err, fmt.Errorf("RATE_LIMIT_RPS must be >= 0"))
	}
	if cfg.RateLimitBurst < 0 {
		err = multierr.Append(err, fmt.Errorf("RATE_LIMIT_BURST must be >= 0"))
	}

	return err
}

func setString(dst *string, value string) {
	if value = strings.TrimSpace(value); value != "" {
		*dst = value
	}
}
