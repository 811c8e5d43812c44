package yamltree

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Locate returns the path held by the envVarName environment variable, or
// fallbackPath when the variable is unset or blank.
func Locate(envVarName, fallbackPath string) string {
	if name := strings.TrimSpace(envVarName); name != "" {
		if path := strings.TrimSpace(os.Getenv(name)); path != "" {
			return path
		}
	}
	return strings.TrimSpace(fallbackPath)
}

// Load locates, reads and parses the YAML document referenced by envVarName or fallbackPath.
func Load(envVarName, fallbackPath string) (Value, error) {
	path := Locate(envVarName, fallbackPath)
	if path == "" {
		return Value{}, ErrNoPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Value{}, fmt.Errorf("read file %s: %w", path, err)
	}

	v, err := Parse(data)
	if err != nil {
		return Value{}, fmt.Errorf("load %s: %w", path, err)
	}
	return v, nil
}

// Parse decodes the first YAML document in data.
func Parse(data []byte) (Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Value{}, fmt.Errorf("parse YAML: %w", err)
	}

	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return Value{}, ErrEmptyDocument
	}
	return Value{node: doc.Content[0]}, nil
}
