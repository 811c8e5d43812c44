package yamltree

import "errors"

var (
	// ErrEmptyDocument is returned when the source parses but contains no YAML content.
	ErrEmptyDocument = errors.New("YAML document is empty")
	// ErrNoPath is returned when neither the environment variable nor the fallback yield a path.
	ErrNoPath = errors.New("no configuration path provided")
)
