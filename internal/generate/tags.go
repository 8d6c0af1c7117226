package generate

import (
	"context"
	"strings"

	"sparkpress/internal/services"
)

const (
	tagsExcerpt = 1500
	tagsMax     = 8
)

var fallbackTags = []string{"tutorial", "guide", "learning"}

// generateTags lowercases explicit tags verbatim, otherwise comma-parses the
// model's suggestions. Failure degrades to a fixed generic set.
func (g *Generator) generateTags(ctx context.Context, in Input) ([]string, error) {
	if len(in.Tags) > 0 {
		tags := make([]string, 0, len(in.Tags))
		for _, tag := range in.Tags {
			if tag = strings.ToLower(strings.TrimSpace(tag)); tag != "" {
				tags = append(tags, tag)
			}
		}
		return tags, nil
	}

	response, err := g.ai.GenerateText(ctx, tagsPrompt(excerptRunes(in.Transcript, tagsExcerpt)))
	if err != nil {
		return cloneFallbackTags(), services.Wrap(services.ErrGeneration, "generate", "tags", in.VideoID, err)
	}
	var tags []string
	for _, tag := range strings.Split(response, ",") {
		if tag = strings.ToLower(strings.TrimSpace(tag)); tag != "" {
			tags = append(tags, tag)
		}
		if len(tags) == tagsMax {
			break
		}
	}
	if len(tags) == 0 {
		return cloneFallbackTags(), nil
	}
	return tags, nil
}

func cloneFallbackTags() []string {
	tags := make([]string, len(fallbackTags))
	copy(tags, fallbackTags)
	return tags
}
