package httpclient

import (
	"go.uber.org/zap"

	"github.com/eugenenazirov/httpclient-config/clientconfig"
)

// Recognised switch names.
const (
	KeyAcceptInvalidCerts     = "danger_accept_invalid_certs"
	KeyAcceptInvalidHostnames = "danger_accept_invalid_hostnames"
	KeyHTTPSOnly              = "https_only"
	KeyDisableKeepAlives      = "disable_keep_alives"
	KeyDisableCompression     = "disable_compression"
	KeyForceHTTP2             = "force_http2"
	KeyFollowRedirects        = "follow_redirects"
)

// Options holds the boolean switches applied to a client.
type Options struct {
	AcceptInvalidCerts     bool
	AcceptInvalidHostnames bool
	HTTPSOnly              bool
	DisableKeepAlives      bool
	DisableCompression     bool
	ForceHTTP2             bool
	FollowRedirects        bool
}

var setters = map[string]func(*Options, bool){
	KeyAcceptInvalidCerts:     func(o *Options, v bool) { o.AcceptInvalidCerts = v },
	KeyAcceptInvalidHostnames: func(o *Options, v bool) { o.AcceptInvalidHostnames = v },
	KeyHTTPSOnly:              func(o *Options, v bool) { o.HTTPSOnly = v },
	KeyDisableKeepAlives:      func(o *Options, v bool) { o.DisableKeepAlives = v },
	KeyDisableCompression:     func(o *Options, v bool) { o.DisableCompression = v },
	KeyForceHTTP2:             func(o *Options, v bool) { o.ForceHTTP2 = v },
	KeyFollowRedirects:        func(o *Options, v bool) { o.FollowRedirects = v },
}

// DefaultOptions returns the switches used when no configuration is available:
// full TLS verification, redirects followed, HTTP/2 attempted.
func DefaultOptions() Options {
	return Options{
		ForceHTTP2:      true,
		FollowRedirects: true,
	}
}

// OptionsFromSettings applies settings over DefaultOptions in order, so a
// repeated key keeps its last value. Unknown keys are logged and ignored.
func OptionsFromSettings(settings []clientconfig.Setting, logger *zap.Logger) Options {
	if logger == nil {
		logger = zap.NewNop()
	}

	opts := DefaultOptions()
	for _, s := range settings {
		set, ok := setters[s.Key]
		if !ok {
			logger.Warn("unknown HTTP client switch, ignoring", zap.String("key", s.Key))
			continue
		}
		set(&opts, s.Value)
	}
	return opts
}

// Settings lists every recognised switch with its value in a fixed order.
func (o Options) Settings() []clientconfig.Setting {
	return []clientconfig.Setting{
		{Key: KeyAcceptInvalidCerts, Value: o.AcceptInvalidCerts},
		{Key: KeyAcceptInvalidHostnames, Value: o.AcceptInvalidHostnames},
		{Key: KeyHTTPSOnly, Value: o.HTTPSOnly},
		{Key: KeyDisableKeepAlives, Value: o.DisableKeepAlives},
		{Key: KeyDisableCompression, Value: o.DisableCompression},
		{Key: KeyForceHTTP2, Value: o.ForceHTTP2},
		{Key: KeyFollowRedirects, Value: o.FollowRedirects},
	}
}

// LoadOptions resolves environment's switches and converts them to Options,
// returning DefaultOptions when no usable configuration exists.
func LoadOptions(logger *zap.Logger, environment, configEnvVarName, fallbackConfigPath string) (Options, bool) {
	settings, ok := clientconfig.GetHTTPClientBoolConfig(logger, environment, configEnvVarName, fallbackConfigPath)
	if !ok {
		return DefaultOptions(), false
	}
	return OptionsFromSettings(settings, logger), true
}
