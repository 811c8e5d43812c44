package httpclient

import "errors"

var (
	// ErrInsecureScheme is returned for non-https requests when https_only is set.
	ErrInsecureScheme = errors.New("request scheme is not https")
	// ErrRateLimited is returned when a request could not obtain a rate limiter token.
	ErrRateLimited = errors.New("rate limit wait aborted")
	// ErrNoPeerCertificates is returned when the server presented no certificate.
	ErrNoPeerCertificates = errors.New("server presented no certificates")
)
