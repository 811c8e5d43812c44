// Package yamltree locates and parses YAML configuration documents and exposes
// them as a loosely typed tree. Values are inspected at runtime through
// accessors that report a mismatch instead of panicking, so callers can skip
// entries of the wrong type and carry on.
package yamltree
