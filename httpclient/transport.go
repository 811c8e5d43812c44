package httpclient

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// RequestIDHeader carries the per-request correlation ID.
const RequestIDHeader = "X-Request-ID"

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func requestIDTransport(next http.RoundTripper) http.RoundTripper {
	return roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		if strings.TrimSpace(req.Header.Get(RequestIDHeader)) != "" {
			return next.RoundTrip(req)
		}
		req = req.Clone(req.Context())
		req.Header.Set(RequestIDHeader, generateRequestID())
		return next.RoundTrip(req)
	})
}

func loggingTransport(logger *zap.Logger, next http.RoundTripper) http.RoundTripper {
	return roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		start := time.Now()
		resp, err := next.RoundTrip(req)
		duration := time.Since(start)

		fields := []zap.Field{
			zap.String("method", req.Method),
			zap.String("host", req.URL.Host),
			zap.String("path", req.URL.Path),
			zap.Duration("duration", duration),
			zap.String("request_id", req.Header.Get(RequestIDHeader)),
		}
		if err != nil {
			logger.Warn("request failed", append(fields, zap.Error(err))...)
			return nil, err
		}
		logger.Info("request completed", append(fields, zap.Int("status", resp.StatusCode))...)
		return resp, nil
	})
}

func httpsOnlyTransport(next http.RoundTripper) http.RoundTripper {
	return roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		if !strings.EqualFold(req.URL.Scheme, "https") {
			closeBody(req)
			return nil, fmt.Errorf("%w: %q", ErrInsecureScheme, req.URL.Scheme)
		}
		return next.RoundTrip(req)
	})
}

// closeBody releases the request body when a round tripper fails before sending it.
func closeBody(req *http.Request) {
	if req.Body != nil {
		_ = req.Body.Close()
	}
}

func generateRequestID() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return strconv.FormatInt(time.Now().UnixNano(), 10)
	}
	return hex.EncodeToString(buf)
}
