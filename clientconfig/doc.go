// Package clientconfig resolves the boolean HTTP client switches configured for
// a named environment. The YAML document is located through an environment
// variable with a fallback path; the section named after the environment must
// be a mapping, and only entries with a string key and a boolean value are
// returned. Every failure is logged and collapses to "no configuration", in
// which case the caller applies its own defaults.
package clientconfig
