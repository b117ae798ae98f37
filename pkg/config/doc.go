// Package config handles configuration management for fqconcat.
// It supports loading configuration from multiple sources including
// the embedded defaults, a TOML or YAML file, environment variables,
// and command-line flags, each layer overriding the previous one.
package config
