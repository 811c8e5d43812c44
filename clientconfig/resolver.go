package clientconfig

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/eugenenazirov/httpclient-config/yamltree"
)

const operation = "get_http_client_config"

// Setting is a single validated switch.
type Setting struct {
	Key   string
	Value bool
}

// Loader locates and parses the configuration document.
type Loader func(envVarName, fallbackPath string) (yamltree.Value, error)

// Resolver turns an environment's YAML section into settings.
type Resolver struct {
	loader Loader
	logger *zap.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger that receives diagnostics. A nil logger discards them.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithLoader replaces the file based loader, primarily for tests.
func WithLoader(loader Loader) Option {
	return func(r *Resolver) {
		if loader != nil {
			r.loader = loader
		}
	}
}

// NewResolver creates a Resolver reading documents with yamltree.Load.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		loader: yamltree.Load,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// GetHTTPClientBoolConfig resolves the switches of environment from the YAML
// file named by the configEnvVarName environment variable, or by
// fallbackConfigPath when the variable is not set. The second return value is
// false when no usable configuration exists; the slice is then nil.
func GetHTTPClientBoolConfig(logger *zap.Logger, environment, configEnvVarName, fallbackConfigPath string) ([]Setting, bool) {
	return NewResolver(WithLogger(logger)).Resolve(environment, configEnvVarName, fallbackConfigPath)
}

// Resolve returns the non-empty, document ordered settings of environment, or
// false when the source, the section or every entry is unusable.
func (r *Resolver) Resolve(environment, configEnvVarName, fallbackConfigPath string) ([]Setting, bool) {
	settings, err := r.resolve(environment, configEnvVarName, fallbackConfigPath)
	if err != nil {
		return nil, false
	}
	return settings, true
}

func (r *Resolver) resolve(environment, configEnvVarName, fallbackConfigPath string) ([]Setting, error) {
	tree, err := r.loader(configEnvVarName, fallbackConfigPath)
	if err != nil {
		r.logger.Error("error reading HTTP client configuration, default values will be used",
			zap.String("operation", operation),
			zap.String("environment", environment),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %w", errSourceUnavailable, err)
	}

	entries, err := r.section(tree, environment)
	if err != nil {
		return nil, err
	}

	return r.assemble(r.validate(entries))
}

func (r *Resolver) section(tree yamltree.Value, environment string) ([]yamltree.Entry, error) {
	section, found := tree.Get(environment)
	entries, isMapping := section.AsMapping()
	if !found || !isMapping {
		r.logger.Warn("invalid environment, returning no configuration",
			zap.String("operation", operation),
			zap.String("environment", environment),
		)
		return nil, errSectionMissing
	}
	return entries, nil
}

func (r *Resolver) validate(entries []yamltree.Entry) []Setting {
	settings := make([]Setting, 0, len(entries))
	for _, entry := range entries {
		setting, err := toSetting(entry)
		switch {
		case errors.Is(err, errEntryKeyInvalid):
			r.logger.Warn("invalid string key, ignoring entry",
				zap.String("operation", operation),
				zap.Stringer("entry", entry),
			)
		case errors.Is(err, errEntryValueInvalid):
			r.logger.Warn("invalid boolean value, ignoring entry",
				zap.String("operation", operation),
				zap.String("key", setting.Key),
				zap.Stringer("kind", entry.Value.Kind()),
			)
		default:
			settings = append(settings, setting)
		}
	}
	return settings
}

func (r *Resolver) assemble(settings []Setting) ([]Setting, error) {
	if len(settings) == 0 {
		r.logger.Warn("no configurations found, returning no configuration",
			zap.String("operation", operation),
		)
		return nil, errEmptyResult
	}
	return settings, nil
}

// toSetting keeps the key on a value mismatch so it can be reported.
func toSetting(entry yamltree.Entry) (Setting, error) {
	key, ok := entry.Key.AsString()
	if !ok {
		return Setting{}, errEntryKeyInvalid
	}
	value, ok := entry.Value.AsBool()
	if !ok {
		return Setting{Key: key}, errEntryValueInvalid
	}
	return Setting{Key: key, Value: value}, nil
}
