package config

const (
	defaultContentDir        = "content/posts"
	defaultThumbnailsDir     = "content/thumbnails"
	defaultLogDir            = "logs"
	defaultGeminiModel       = "gemini-2.0-flash"
	defaultGeminiTimeout     = 180
	defaultAuthor            = "AI Generated"
	defaultCategory          = "General"
	defaultBatchDelaySeconds = 3.0
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
)

// defaultPreferredLanguages is the fixed set the subtitle selector falls
// back to when the requested language has no track.
var defaultPreferredLanguages = []string{"en", "zh-cn", "zh-tw", "ja", "ko", "es", "fr", "de"}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		ContentDir:           defaultContentDir,
		ThumbnailsDir:        defaultThumbnailsDir,
		LogDir:               defaultLogDir,
		GeminiModel:          defaultGeminiModel,
		GeminiTimeoutSeconds: defaultGeminiTimeout,
		Author:               defaultAuthor,
		Category:             defaultCategory,
		PreferredLanguages:   append([]string(nil), defaultPreferredLanguages...),
		BatchDelaySeconds:    defaultBatchDelaySeconds,
		LogFormat:            defaultLogFormat,
		LogLevel:             defaultLogLevel,
	}
}
