// Package config loads, normalizes, and validates cuesplit configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The Config type centralizes the knobs the
// CLI and split workflow need: output and scratch directories, the encoder and
// decoder binaries, tagging behaviour, and run history.
//
// Always obtain settings through this package so downstream code receives
// expanded paths, canonical encoder names, and clear validation errors.
package config
