// Package config handles configuration management for httpgraph.
// Values are layered from the embedded defaults, a TOML or YAML config
// file, HTTPGRAPH_ environment variables and command-line flags, later
// layers winning.
package config
