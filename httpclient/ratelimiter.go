package httpclient

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/time/rate"
)

type rateLimiter interface {
	Wait(ctx context.Context) error
}

type limiterAdapter struct {
	limiter *rate.Limiter
}

func newTokenBucketLimiter(ratePerSecond float64, burst int) rateLimiter {
	if ratePerSecond <= 0 {
		ratePerSecond = 1
	}
	if burst <= 0 {
		burst = 1
	}

	return &limiterAdapter{
		limiter: rate.NewLimiter(rate.Limit(ratePerSecond), burst),
	}
}

func (l *limiterAdapter) Wait(ctx context.Context) error {
	if l == nil || l.limiter == nil {
		return nil
	}
	return l.limiter.Wait(ctx)
}

func rateLimitTransport(limiter rateLimiter, next http.RoundTripper) http.RoundTripper {
	if limiter == nil {
		return next
	}
	return roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		if err := limiter.Wait(req.Context()); err != nil {
			closeBody(req)
			return nil, fmt.Errorf("%w: %w", ErrRateLimited, err)
		}
		return next.RoundTrip(req)
	})
}
