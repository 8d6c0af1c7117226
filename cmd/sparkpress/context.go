package main

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"sparkpress/internal/config"
	"sparkpress/internal/generate"
	langpkg "sparkpress/internal/language"
	"sparkpress/internal/logging"
	"sparkpress/internal/pipeline"
	"sparkpress/internal/postindex"
	"sparkpress/internal/publish"
	"sparkpress/internal/services/gemini"
	"sparkpress/internal/services/ytdlp"
	"sparkpress/internal/subtitles"
	"sparkpress/internal/thumbnail"
	"sparkpress/internal/transcript"
)

// commandContext lazily loads configuration and wires the processing stack
// once per invocation.
type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	logOnce sync.Once
	logger  *slog.Logger

	index *postindex.Store
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() *slog.Logger {
	c.logOnce.Do(func() {
		cfg := c.config
		if cfg == nil {
			c.logger = logging.NewNop()
			return
		}
		logger, err := logging.New(logging.Options{
			Level:       cfg.LogLevel,
			Format:      cfg.LogFormat,
			OutputPaths: []string{"stderr", filepath.Join(cfg.LogDir, "sparkpress.log")},
		})
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		c.logger = logger
	})
	return c.logger
}

// rawConfig loads configuration without the validation pass. Commands that
// inspect or report on the environment use it so a missing credential is
// something they can print instead of something that stops them.
func (c *commandContext) rawConfig() (*config.Config, error) {
	var path string
	if c.configFlag != nil {
		path = strings.TrimSpace(*c.configFlag)
	}
	cfg, _, _, err := config.LoadRaw(path)
	return cfg, err
}

// geminiClient builds the model client from configuration.
func (c *commandContext) geminiClient() (*gemini.Client, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return gemini.NewClient(gemini.Config{
		APIKey:         cfg.GeminiAPIKey,
		Model:          cfg.GeminiModel,
		TimeoutSeconds: cfg.GeminiTimeoutSeconds,
	}), nil
}

func (c *commandContext) ytdlpService() *ytdlp.Service {
	return ytdlp.NewService("", 5*time.Minute)
}

// buildProcessor wires the full pipeline. The caller must Close the returned
// cleanup when done.
func (c *commandContext) buildProcessor() (*pipeline.Processor, func(), error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, err
	}
	logger := c.ensureLogger()

	model, err := c.geminiClient()
	if err != nil {
		return nil, nil, err
	}
	if err := model.Ready(); err != nil {
		return nil, nil, fmt.Errorf("gemini credential: %w", err)
	}

	index, err := postindex.Open(filepath.Join(cfg.LogDir, "posts.db"))
	if err != nil {
		// The index is an optional cache; publication works without it.
		logger.Warn("post index unavailable, duplicate checks will scan", "error", err)
		index = nil
	}
	c.index = index

	acquirer := transcript.NewAcquirer(
		subtitles.NewClient(),
		c.ytdlpService(),
		model,
		cfg.PreferredLanguages,
		"", // temp audio goes to the system temp dir
		logger,
	)
	processor := pipeline.NewProcessor(
		cfg,
		acquirer,
		langpkg.NewDetector(logger),
		generate.New(model, cfg.Author, cfg.Category, logger),
		publish.New(cfg.ContentDir, index, logger),
		thumbnail.NewClient(),
		logger,
	)
	cleanup := func() {
		if index != nil {
			_ = index.Close()
		}
	}
	return processor, cleanup, nil
}
