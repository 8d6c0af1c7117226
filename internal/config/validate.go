package config

import (
	"errors"
	"fmt"

	"sparkpress/internal/services"
)

// Validate ensures the configuration is usable. The Gemini credential is
// checked here, before any per-video work, so batch runs fail fast instead
// of partially.
func (c *Config) Validate() error {
	if c.GeminiAPIKey == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/sparkpress/config.toml"
		}
		return services.Wrap(services.ErrConfiguration, "config", "validate",
			fmt.Sprintf("gemini.api_key is required. Set GEMINI_API_KEY or edit %s (create with 'sparkpress config init')", defaultPath), nil)
	}
	if c.ContentDir == "" {
		return errors.New("paths.content_dir must be set")
	}
	if c.GeminiTimeoutSeconds <= 0 {
		return errors.New("gemini.timeout_seconds must be positive")
	}
	if c.BatchDelaySeconds < 0 {
		return errors.New("batch.delay_seconds must not be negative")
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.LogFormat)
	}
	return nil
}
