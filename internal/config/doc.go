// Package config loads and validates the TOML configuration for splice.
package config
