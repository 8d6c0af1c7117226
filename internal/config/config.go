package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Config carries every runtime setting the pipeline needs. It is constructed
// once by the CLI and passed explicitly into each component; no package in
// this repository reads configuration from globals.
type Config struct {
	// Paths
	ContentDir    string
	ThumbnailsDir string
	LogDir        string

	// Gemini
	GeminiAPIKey         string
	GeminiModel          string
	GeminiTimeoutSeconds int

	// Content
	Author             string
	Category           string
	PreferredLanguages []string

	// Batch
	BatchDelaySeconds float64

	// Logging
	LogFormat string
	LogLevel  string
}

// fileConfig is the TOML shape of the configuration file.
type fileConfig struct {
	Paths struct {
		ContentDir    string `toml:"content_dir"`
		ThumbnailsDir string `toml:"thumbnails_dir"`
		LogDir        string `toml:"log_dir"`
	} `toml:"paths"`
	Gemini struct {
		APIKey         string `toml:"api_key"`
		Model          string `toml:"model"`
		TimeoutSeconds int    `toml:"timeout_seconds"`
	} `toml:"gemini"`
	Content struct {
		Author             string   `toml:"author"`
		Category           string   `toml:"category"`
		PreferredLanguages []string `toml:"preferred_languages"`
	} `toml:"content"`
	Batch struct {
		DelaySeconds float64 `toml:"delay_seconds"`
	} `toml:"batch"`
	Logging struct {
		Format string `toml:"format"`
		Level  string `toml:"level"`
	} `toml:"logging"`
}

// Load reads, normalizes, and validates configuration. A missing file is not
// an error: defaults plus environment variables apply. The returned path is
// the resolved config location and exists reports whether a file was read.
func Load(path string) (*Config, string, bool, error) {
	cfg, resolvedPath, exists, err := LoadRaw(path)
	if err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}
	return cfg, resolvedPath, exists, nil
}

// LoadRaw is Load without the validation pass. The validate CLI command uses
// it so it can report problems instead of failing on them.
func LoadRaw(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		var fc fileConfig
		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&fc); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
		cfg.apply(fc)
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	return &cfg, resolvedPath, exists, nil
}

func (c *Config) apply(fc fileConfig) {
	setString := func(dst *string, v string) {
		if strings.TrimSpace(v) != "" {
			*dst = v
		}
	}
	setString(&c.ContentDir, fc.Paths.ContentDir)
	setString(&c.ThumbnailsDir, fc.Paths.ThumbnailsDir)
	setString(&c.LogDir, fc.Paths.LogDir)
	setString(&c.GeminiAPIKey, fc.Gemini.APIKey)
	setString(&c.GeminiModel, fc.Gemini.Model)
	if fc.Gemini.TimeoutSeconds > 0 {
		c.GeminiTimeoutSeconds = fc.Gemini.TimeoutSeconds
	}
	setString(&c.Author, fc.Content.Author)
	setString(&c.Category, fc.Content.Category)
	if len(fc.Content.PreferredLanguages) > 0 {
		c.PreferredLanguages = fc.Content.PreferredLanguages
	}
	if fc.Batch.DelaySeconds > 0 {
		c.BatchDelaySeconds = fc.Batch.DelaySeconds
	}
	setString(&c.LogFormat, fc.Logging.Format)
	setString(&c.LogLevel, fc.Logging.Level)
}

func (c *Config) normalize() error {
	if c.GeminiAPIKey == "" {
		c.GeminiAPIKey = strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
	}
	for _, field := range []*string{&c.ContentDir, &c.ThumbnailsDir, &c.LogDir} {
		expanded, err := expandPath(*field)
		if err != nil {
			return err
		}
		*field = expanded
	}
	return nil
}

// EnsureDirectories creates the content, thumbnail, and log directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.ContentDir, c.ThumbnailsDir, c.LogDir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("ensure directory %s: %w", dir, err)
		}
	}
	return nil
}

// DefaultConfigPath returns the conventional config file location.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", "sparkpress", "config.toml"), nil
}

// WriteSample writes the embedded sample config to path, refusing to
// overwrite an existing file.
func WriteSample(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(sampleConfig), 0o644)
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		if _, err := os.Stat(expanded); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, fmt.Errorf("config file not found: %s", expanded)
			}
			return "", false, err
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	if _, err := os.Stat(defaultPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return defaultPath, false, nil
		}
		return "", false, err
	}
	return defaultPath, true, nil
}

func expandPath(path string) (string, error) {
	if path == "" {
		return path, nil
	}
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand %s: %w", path, err)
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
	}
	return path, nil
}
