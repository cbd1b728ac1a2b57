// Package config loads, normalizes, and validates the TOML configuration
// that drives the chapter processing pipeline.
//
// Configuration resolution order:
//  1. Explicit --config flag path
//  2. ~/.config/chapsplit/config.toml
//  3. ./chapsplit.toml in the working directory
//
// Missing files fall back to the built-in defaults.
package config
