// Package config loads and validates the TOML configuration file. Missing
// files fall back to defaults plus environment variables; a missing Gemini
// credential is the one hard requirement and fails validation eagerly.
package config
