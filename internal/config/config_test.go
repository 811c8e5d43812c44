package config

import (
	"strings"
	"testing"
	"time"

	"go.uber.org/multierr"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CLIENTCONF_ENVIRONMENT", "")
	t.Setenv("CLIENTCONF_CONFIG_FILE", "")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Environment != defaultEnvironment {
		t.Fatalf("expected default environment %s, got %s", defaultEnvironment, cfg.Environment)
	}
	if cfg.ConfigEnvVar != defaultConfigEnvVar || cfg.ConfigFile != defaultConfigFile {
		t.Fatalf("unexpected source locator %s / %s", cfg.ConfigEnvVar, cfg.ConfigFile)
	}
	if cfg.Timeout != defaultTimeout {
		t.Fatalf("unexpected timeout: %s", cfg.Timeout)
	}
	if cfg.Format != FormatText || !cfg.RequestLogging {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("CLIENTCONF_ENVIRONMENT", "prod")
	t.Setenv("CLIENTCONF_CONFIG_FILE", " /etc/http/client-config.yml ")
	t.Setenv("CLIENTCONF_TIMEOUT", "5s")
	t.Setenv("CLIENTCONF_RATE_LIMIT_RPS", "2.5")
	t.Setenv("CLIENTCONF_RATE_LIMIT_BURST", "4")
	t.Setenv("CLIENTCONF_REQUEST_LOGGING", "false")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Environment != "prod" {
		t.Fatalf("expected overridden environment, got %s", cfg.Environment)
	}
	if cfg.ConfigFile != "/etc/http/client-config.yml" {
		t.Fatalf("expected trimmed config file, got %q", cfg.ConfigFile)
	}
	if cfg.Timeout != 5*time.Second || cfg.RateLimitRPS != 2.5 || cfg.RateLimitBurst != 4 {
		t.Fatalf("unexpected numeric settings %+v", cfg)
	}
	if cfg.RequestLogging {
		t.Fatalf("expected request logging to be disabled")
	}
}

func TestLoadCLIOverridesWin(t *testing.T) {
	t.Setenv("CLIENTCONF_ENVIRONMENT", "prod")
	t.Setenv("CLIENTCONF_RATE_LIMIT_BURST", "4")

	environment := "staging"
	format := FormatYAML
	burst := 9
	ignored := -1.0
	logging := false

	cfg, err := Load(&CLIOverrides{
		Environment:    &environment,
		Format:         &format,
		RateLimitBurst: &burst,
		RateLimitRPS:   &ignored,
		RequestLogging: &logging,
	})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Environment != "staging" || cfg.Format != FormatYAML || cfg.RateLimitBurst != 9 {
		t.Fatalf("expected CLI values to win, got %+v", cfg)
	}
	if cfg.RateLimitRPS != 0 {
		t.Fatalf("negative CLI value must be ignored, got %v", cfg.RateLimitRPS)
	}
	if cfg.RequestLogging {
		t.Fatalf("expected request logging to be disabled by flag")
	}
}

func TestLoadRejectsMalformedEnvironment(t *testing.T) {
	t.Setenv("CLIENTCONF_RATE_LIMIT_BURST", "many")

	if _, err := Load(nil); err == nil {
		t.Fatalf("expected error for non-numeric burst")
	}
}

func TestValidateConfigAggregatesErrors(t *testing.T) {
	cfg := defaultConfig()
	cfg.Environment = ""
	cfg.LogLevel = "loud"
	cfg.Format = "json"
	cfg.RateLimitRPS = -1

	err := validateConfig(cfg)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if got := len(multierr.Errors(err)); got != 4 {
		t.Fatalf("expected 4 aggregated errors, got %d: %v", got, err)
	}
	if !strings.Contains(err.Error(), "invalid log level") {
		t.Fatalf("expected log level error, got %v", err)
	}
}

func TestSetString(t *testing.T) {
	value := "keep"
	setString(&value, "   ")
	if value != "keep" {
		t.Fatalf("blank value must not override, got %q", value)
	}
	setString(&value, " new ")
	if value != "new" {
		t.Fatalf("expected trimmed override, got %q", value)
	}
}
