// Package config loads the runtime configuration of the clientconf tool from
// environment variables (CLIENTCONF_*) and CLI flags with precedence:
// CLI flags > Environment variables > Defaults. It says where the HTTP client
// switches document lives and which environment to resolve; the switches
// themselves are read by package clientconfig.
package config
