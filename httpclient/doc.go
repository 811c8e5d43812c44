// Package httpclient builds *http.Client instances from the boolean switches
// resolved by package clientconfig. Requests pass through a round-tripper
// chain that stamps a request ID, optionally logs and rate limits, and
// enforces the https_only switch before reaching the transport.
package httpclient
