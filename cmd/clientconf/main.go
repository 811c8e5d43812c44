package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/eugenenazirov/httpclient-config/clientconfig"
	"github.com/eugenenazirov/httpclient-config/httpclient"
	"github.com/eugenenazirov/httpclient-config/internal/config"
	"github.com/eugenenazirov/httpclient-config/internal/logging"
)

var newLogger = logging.New

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	kingpinApp := kingpin.New("clientconf", "HTTP client switches - resolves the boolean client settings configured for an environment")
	kingpinApp.UsageWriter(stdout)
	kingpinApp.ErrorWriter(stderr)

	environment := kingpinApp.Flag("environment", "Environment section to resolve (e.g. dev, prod)").Short('e').String()
	configEnvVar := kingpinApp.Flag("config-env-var", "Environment variable holding the YAML file path").String()
	configFile := kingpinApp.Flag("config", "YAML file used when the environment variable is not set").String()
	logLevel := kingpinApp.Flag("log-level", "Log level (debug, info, warn, error)").String()
	format := kingpinApp.Flag("format", "Output format (text, yaml)").String()

	showCmd := kingpinApp.Command("show", "Print the resolved switches, or the defaults when none resolve").Default()

	probeCmd := kingpinApp.Command("probe", "Send a GET request with a client built from the resolved switches")
	probeURL := probeCmd.Arg("url", "URL to request").Required().String()
	timeoutFlag := probeCmd.Flag("timeout", "Overall request timeout (0 disables)").Default("-1s").Duration()
	rateLimitRPSFlag := probeCmd.Flag("rate-limit-rps", "Requests per second allowed (set 0 to disable)").Default("-1").Float64()
	rateLimitBurstFlag := probeCmd.Flag("rate-limit-burst", "Burst capacity for rate limiter (set 0 to disable)").Default("-1").Int()
	var requestLoggingSet bool
	requestLogging := probeCmd.Flag("request-logging", "Log each request").IsSetByUser(&requestLoggingSet).Bool()

	command, err := kingpinApp.Parse(args)
	if err != nil {
		fmt.Fprintf(stderr, "clientconf: %v\n", err)
		return 2
	}

	overrides := &config.CLIOverrides{
		Environment:    environment,
		ConfigEnvVar:   configEnvVar,
		ConfigFile:     configFile,
		LogLevel:       logLevel,
		Format:         format,
		Timeout:        timeoutFlag,
		RateLimitRPS:   rateLimitRPSFlag,
		RateLimitBurst: rateLimitBurstFlag,
	}
	if requestLoggingSet {
		overrides.RequestLogging = requestLogging
	}

	cfg, err := config.Load(overrides)
	if err != nil {
		fmt.Fprintf(stderr, "clientconf: failed to load configuration: %v\n", err)
		return 1
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(stderr, "clientconf: failed to initialize logger: %v\n", err)
		return 1
	}
	defer func() {
		_ = logger.Sync()
	}()

	switch command {
	case showCmd.FullCommand():
		err = show(stdout, cfg, logger)
	case probeCmd.FullCommand():
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		err = probe(ctx, stdout, cfg, logger, *probeURL)
	}
	if err != nil {
		logger.Error("command failed", zap.String("command", command), zap.Error(err))
		return 1
	}
	return 0
}

// resolve returns the switches for cfg.Environment, falling back to the
// client defaults when nothing usable is configured.
func resolve(cfg config.Config, logger *zap.Logger) ([]clientconfig.Setting, httpclient.Options) {
	resolver := clientconfig.NewResolver(clientconfig.WithLogger(logger))
	settings, ok := resolver.Resolve(cfg.Environment, cfg.ConfigEnvVar, cfg.ConfigFile)
	if !ok {
		logger.Info("no HTTP client configuration resolved, using defaults",
			zap.String("environment", cfg.Environment))
		opts := httpclient.DefaultOptions()
		return opts.Settings(), opts
	}
	return settings, httpclient.OptionsFromSettings(settings, logger)
}

func show(w io.Writer, cfg config.Config, logger *zap.Logger) error {
	settings, _ := resolve(cfg, logger)
	return writeSettings(w, settings, cfg.Format)
}

func probe(ctx context.Context, w io.Writer, cfg config.Config, logger *zap.Logger, target string) error {
	_, opts := resolve(cfg, logger)
	client := httpclient.New(opts, logger,
		httpclient.WithTimeout(cfg.Timeout),
		httpclient.WithLogging(cfg.RequestLogging),
		httpclient.WithRateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", target, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	_, err = fmt.Fprintf(w, "%s %s (%s)\n", resp.Proto, resp.Status, time.Since(start).Round(time.Millisecond))
	return err
}

func writeSettings(w io.Writer, settings []clientconfig.Setting, format string) error {
	if format == config.FormatYAML {
		return writeYAML(w, settings)
	}
	for _, s := range settings {
		if _, err := fmt.Fprintf(w, "%s=%t\n", s.Key, s.Value); err != nil {
			return err
		}
	}
	return nil
}

// writeYAML emits settings as a mapping in their resolved order.
func writeYAML(w io.Writer, settings []clientconfig.Setting) error {
	doc := &yaml.Node{Kind: yaml.MappingNode}
	for _, s := range settings {
		doc.Content = append(doc.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s.Key},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: fmt.Sprintf("%t", s.Value)},
		)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode YAML: %w", err)
	}
	return enc.Close()
}
