package generate

import (
	"context"
	"strings"

	"sparkpress/internal/services"
)

const (
	summaryExcerpt     = 2000
	summaryMinChars    = 20
	fallbackSummary    = "Discover valuable insights and practical knowledge from this comprehensive video content."
	fallbackWordBudget = 40
)

// generateSummary asks for a short hook. Responses that are too short or
// read like an apology are rejected in favor of the fallback.
func (g *Generator) generateSummary(ctx context.Context, in Input) (string, error) {
	response, err := g.ai.GenerateText(ctx, summaryPrompt(excerptRunes(in.Transcript, summaryExcerpt), in.Language))
	if err != nil {
		return deriveFallbackSummary(in.Transcript), services.Wrap(services.ErrGeneration, "generate", "summary", in.VideoID, err)
	}
	summary := strings.TrimSpace(response)
	if acceptableSummary(summary) {
		return summary, nil
	}
	return deriveFallbackSummary(in.Transcript), nil
}

func acceptableSummary(summary string) bool {
	if len(summary) <= summaryMinChars {
		return false
	}
	lower := strings.ToLower(summary)
	for _, marker := range []string{"error", "failed", "unable"} {
		if strings.Contains(lower, marker) {
			return false
		}
	}
	return true
}

// deriveFallbackSummary joins the first two substantial non-greeting
// sentences; failing that, the transcript's first words; failing that, a
// fixed sentence.
func deriveFallbackSummary(transcript string) string {
	var meaningful []string
	sentences := strings.Split(transcript, ".")
	considered := 0
	for _, sentence := range sentences {
		sentence = strings.TrimSpace(sentence)
		if len(sentence) <= 30 {
			continue
		}
		considered++
		if considered > 15 {
			break
		}
		if startsWithGreeting(sentence) {
			continue
		}
		meaningful = append(meaningful, sentence)
		if len(meaningful) >= 2 {
			break
		}
	}
	if len(meaningful) > 0 {
		summary := strings.Join(meaningful, ". ")
		if !strings.HasSuffix(summary, ".") {
			summary += "."
		}
		return summary
	}

	words := strings.Fields(transcript)
	if len(words) > 0 {
		if len(words) > fallbackWordBudget {
			words = words[:fallbackWordBudget]
		}
		return strings.Join(words, " ") + "..."
	}
	return fallbackSummary
}
