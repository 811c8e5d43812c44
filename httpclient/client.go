package httpclient

import (
	"crypto/x509"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// ClientOption configures the behaviour of New.
type ClientOption func(*clientConfig)

// WithTimeout sets the overall request timeout. Zero means no timeout.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(cfg *clientConfig) {
		cfg.timeout = timeout
	}
}

// WithLogging controls whether each request is logged.
func WithLogging(enabled bool) ClientOption {
	return func(cfg *clientConfig) {
		cfg.enableLogging = enabled
	}
}

// WithRateLimit paces requests with a token bucket. A non-positive rate or burst disables it.
func WithRateLimit(ratePerSecond float64, burst int) ClientOption {
	return func(cfg *clientConfig) {
		if ratePerSecond <= 0 || burst <= 0 {
			cfg.rateLimiter = nil
			return
		}
		cfg.rateLimiter = newTokenBucketLimiter(ratePerSecond, burst)
	}
}

// WithRateLimiter overrides the request rate limiter (primarily for tests).
func WithRateLimiter(limiter rateLimiter) ClientOption {
	return func(cfg *clientConfig) {
		cfg.rateLimiter = limiter
	}
}

// WithRootCAs sets the roots used for certificate verification instead of the system pool.
func WithRootCAs(pool *x509.CertPool) ClientOption {
	return func(cfg *clientConfig) {
		cfg.rootCAs = pool
	}
}

type clientConfig struct {
	timeout       time.Duration
	enableLogging bool
	rateLimiter   rateLimiter
	rootCAs       *x509.CertPool
}

// New creates an HTTP client honouring opts.
func New(opts Options, logger *zap.Logger, clientOpts ...ClientOption) *http.Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	cfg := clientConfig{
		timeout:       30 * time.Second,
		enableLogging: true,
	}
	for _, opt := range clientOpts {
		opt(&cfg)
	}

	var rt http.RoundTripper = newTransport(opts, cfg.rootCAs)
	if opts.HTTPSOnly {
		rt = httpsOnlyTransport(rt)
	}
	rt = rateLimitTransport(cfg.rateLimiter, rt)
	if cfg.enableLogging {
		rt = loggingTransport(logger, rt)
	}
	rt = requestIDTransport(rt)

	client := &http.Client{
		Transport: rt,
		Timeout:   cfg.timeout,
	}
	if !opts.FollowRedirects {
		client.CheckRedirect = func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}
	return client
}

func newTransport(opts Options, roots *x509.CertPool) *http.Transport {
	dialer := &net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
	}

	return &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		TLSClientConfig:       newTLSConfig(opts, roots),
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: time.Second,
		IdleConnTimeout:       90 * time.Second,
		MaxIdleConns:          100,
		DisableKeepAlives:     opts.DisableKeepAlives,
		DisableCompression:    opts.DisableCompression,
		ForceAttemptHTTP2:     opts.ForceHTTP2,
	}
}
