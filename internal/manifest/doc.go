// Package manifest provides a unified interface for reading and bumping
// version information across manifest formats: version lines in plain
// source files (setup.py), JSON, YAML, TOML, raw text, and regex
// patterns. It also carries the registry of manifest files the tool
// recognizes without configuration.
package manifest
