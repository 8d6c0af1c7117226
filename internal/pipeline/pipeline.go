package pipeline

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	"sparkpress/internal/config"
	"sparkpress/internal/generate"
	langpkg "sparkpress/internal/language"
	"sparkpress/internal/logging"
	"sparkpress/internal/post"
	"sparkpress/internal/publish"
	"sparkpress/internal/thumbnail"
	"sparkpress/internal/transcript"
	"sparkpress/internal/videoref"
)

// TranscriptAcquirer is the acquisition boundary.
type TranscriptAcquirer interface {
	Acquire(ctx context.Context, ref videoref.Reference, language string) (transcript.Result, error)
}

// PostGenerator is the content generation boundary.
type PostGenerator interface {
	Generate(ctx context.Context, in generate.Input) (post.GeneratedPost, error)
}

// PostPublisher is the publication boundary.
type PostPublisher interface {
	Publish(ctx context.Context, doc post.GeneratedPost) (publish.Result, error)
	FindExisting(ctx context.Context, videoID string) (string, bool, error)
}

// MetadataFetcher is the best-effort video metadata boundary.
type MetadataFetcher interface {
	Fetch(ctx context.Context, videoURL string) (thumbnail.Metadata, error)
	Download(ctx context.Context, thumbnailURL, dir, videoID string) (string, error)
}

// Options adjusts how a single video is processed.
type Options struct {
	Title    string
	Category string
	Tags     []string
	Force    bool
}

// Result describes the outcome for one video.
type Result struct {
	VideoID  string
	Path     string
	Filename string
	Title    string
	Language string
	Source   transcript.Source
	Skipped  bool
}

// Processor drives one video through acquisition, generation, and
// publication.
type Processor struct {
	cfg       *config.Config
	acquirer  TranscriptAcquirer
	detector  *langpkg.Detector
	generator PostGenerator
	publisher PostPublisher
	metadata  MetadataFetcher
	log       *slog.Logger
}

// NewProcessor wires a processor from its collaborators. The metadata
// fetcher may be nil, which disables thumbnail enrichment.
func NewProcessor(cfg *config.Config, acquirer TranscriptAcquirer, detector *langpkg.Detector, generator PostGenerator, publisher PostPublisher, metadata MetadataFetcher, logger *slog.Logger) *Processor {
	return &Processor{
		cfg:       cfg,
		acquirer:  acquirer,
		detector:  detector,
		generator: generator,
		publisher: publisher,
		metadata:  metadata,
		log:       logging.OrNop(logger),
	}
}

// ProcessVideo runs the full chain for one URL. A video that already has a
// published document short-circuits with Skipped set unless Force is given.
func (p *Processor) ProcessVideo(ctx context.Context, rawURL string, opts Options) (Result, error) {
	ref, err := videoref.Parse(rawURL)
	if err != nil {
		return Result{}, err
	}
	log := p.log.With("video_id", ref.ID)

	if !opts.Force {
		if existing, found, err := p.publisher.FindExisting(ctx, ref.ID); err != nil {
			return Result{}, err
		} else if found {
			log.Info("already published, skipping", "path", existing)
			return Result{
				VideoID:  ref.ID,
				Path:     existing,
				Filename: filepath.Base(existing),
				Skipped:  true,
			}, nil
		}
	}

	preferred := "en"
	if len(p.cfg.PreferredLanguages) > 0 {
		preferred = p.cfg.PreferredLanguages[0]
	}
	acquired, err := p.acquirer.Acquire(ctx, ref, preferred)
	if err != nil {
		return Result{}, err
	}
	log.Info("transcript acquired", "source", acquired.Source, "chars", len(acquired.Text))

	language := ""
	if strings.TrimSpace(acquired.Language) != "" {
		language = langpkg.Normalize(acquired.Language)
	} else {
		language = p.detector.Detect(acquired.Text)
	}

	sourceTitle, imagePath := p.enrich(ctx, ref, log)

	generated, err := p.generator.Generate(ctx, generate.Input{
		Transcript:    acquired.Text,
		VideoID:       ref.ID,
		Language:      language,
		CustomTitle:   opts.Title,
		SourceTitle:   sourceTitle,
		Category:      opts.Category,
		Tags:          opts.Tags,
		ThumbnailPath: imagePath,
	})
	if err != nil {
		return Result{}, err
	}

	published, err := p.publisher.Publish(ctx, generated)
	if err != nil {
		return Result{}, err
	}
	return Result{
		VideoID:  ref.ID,
		Path:     published.Path,
		Filename: published.Filename,
		Title:    generated.Title,
		Language: language,
		Source:   acquired.Source,
		Skipped:  published.AlreadyExists,
	}, nil
}

// enrich fetches oEmbed metadata and the thumbnail. Everything here is
// best-effort: failures are logged and processing continues without them.
func (p *Processor) enrich(ctx context.Context, ref videoref.Reference, log *slog.Logger) (sourceTitle, imagePath string) {
	if p.metadata == nil {
		return "", ""
	}
	meta, err := p.metadata.Fetch(ctx, ref.URL)
	if err != nil {
		log.Warn("metadata fetch failed", "error", err)
		return "", ""
	}
	sourceTitle = strings.TrimSpace(meta.Title)

	if meta.ThumbnailURL == "" {
		return sourceTitle, ""
	}
	downloaded, err := p.metadata.Download(ctx, meta.ThumbnailURL, p.cfg.ThumbnailsDir, ref.ID)
	if err != nil {
		log.Warn("thumbnail download failed", "error", err)
		return sourceTitle, ""
	}
	return sourceTitle, p.relativeImagePath(downloaded)
}

// relativeImagePath renders the image reference relative to the content
// root so the site build can resolve it; outside that root the bare file
// name is used.
func (p *Processor) relativeImagePath(downloaded string) string {
	root := filepath.Dir(p.cfg.ContentDir)
	rel, err := filepath.Rel(root, downloaded)
	if err != nil || strings.HasPrefix(rel, "..") {
		return filepath.Base(downloaded)
	}
	return filepath.ToSlash(rel)
}
