package generate

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"sparkpress/internal/logging"
	"sparkpress/internal/post"
	"sparkpress/internal/slug"
)

// TextGenerator is the model boundary the generator depends on.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// Input carries everything field generation needs for one video.
type Input struct {
	Transcript    string
	VideoID       string
	Language      string
	CustomTitle   string
	SourceTitle   string
	Category      string
	Tags          []string
	ThumbnailPath string
}

// Generator produces a complete GeneratedPost from a transcript. Each field
// degrades independently to its heuristic fallback; only a missing
// transcript fails the whole call.
type Generator struct {
	ai       TextGenerator
	author   string
	category string
	log      *slog.Logger
	now      func() time.Time
}

// New wires a generator with the configured author and default category.
func New(ai TextGenerator, author, defaultCategory string, logger *slog.Logger) *Generator {
	return &Generator{
		ai:       ai,
		author:   author,
		category: defaultCategory,
		log:      logging.OrNop(logger),
		now:      time.Now,
	}
}

// WithClock overrides the timestamp source (for testing).
func (g *Generator) WithClock(now func() time.Time) {
	if now != nil {
		g.now = now
	}
}

// Generate runs title, body, summary, and tag generation concurrently, waits
// for all four, and assembles the post. A field's model failure is logged at
// warn and its fallback value used; the join itself never aborts.
func (g *Generator) Generate(ctx context.Context, in Input) (post.GeneratedPost, error) {
	if strings.TrimSpace(in.Transcript) == "" {
		return post.GeneratedPost{}, errors.New("generate: transcript required")
	}
	if g.ai == nil {
		return post.GeneratedPost{}, errors.New("generate: text generator required")
	}

	var (
		wg      sync.WaitGroup
		title   string
		body    string
		summary string
		tags    []string
	)
	wg.Add(4)
	go func() {
		defer wg.Done()
		var err error
		if title, err = g.generateTitle(ctx, in); err != nil {
			g.log.Warn("title generation degraded", "video_id", in.VideoID, "error", err)
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		if body, err = g.generateBody(ctx, in); err != nil {
			g.log.Warn("body generation degraded", "video_id", in.VideoID, "error", err)
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		if summary, err = g.generateSummary(ctx, in); err != nil {
			g.log.Warn("summary generation degraded", "video_id", in.VideoID, "error", err)
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		if tags, err = g.generateTags(ctx, in); err != nil {
			g.log.Warn("tag generation degraded", "video_id", in.VideoID, "error", err)
		}
	}()
	wg.Wait()

	category := strings.TrimSpace(in.Category)
	if category == "" {
		category = g.category
	}
	now := g.now()
	derived := slug.WithID(slug.Derive(title), in.VideoID)

	generated := post.GeneratedPost{
		Title:      title,
		Slug:       derived,
		Summary:    summary,
		Body:       body,
		Tags:       tags,
		Category:   category,
		Language:   in.Language,
		ExternalID: in.VideoID,
		Author:     g.author,
		Image:      in.ThumbnailPath,
		Date:       now,
		Filename:   slug.Filename(now, derived),
	}
	g.log.Info("post generated",
		"video_id", in.VideoID,
		"title", generated.Title,
		"slug", generated.Slug,
		"tags", len(generated.Tags),
		"body_words", wordCount(generated.Body))
	return generated, nil
}
