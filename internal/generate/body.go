package generate

import (
	"context"
	"regexp"
	"strings"

	"sparkpress/internal/services"
)

const fallbackBodyWordCap = 500

var (
	fillerWordRe    = regexp.MustCompile(`(?i)\b(um|uh|like|you know|basically|actually)\b`)
	speakerRefRe    = regexp.MustCompile(`(?i)\b(in this video|the speaker says|as mentioned)\b`)
	bracketNoteRe   = regexp.MustCompile(`\[[^\]]*\]`)
	blankRunRe      = regexp.MustCompile(`\n{3,}`)
	spaceRunRe      = regexp.MustCompile(` +`)
	fallbackBodyTop = "## Introduction\n\nThis content is based on a YouTube video exploring important concepts and insights.\n\n## Key Points\n\n"
	fallbackBodyEnd = "\n\n## Conclusion\n\nFor the complete discussion, watch the original video."
)

// generateBody asks for a structured Markdown article at roughly half the
// transcript's word count, then scrubs filler from the response. Failure
// degrades to a fixed skeleton around the transcript's first half.
func (g *Generator) generateBody(ctx context.Context, in Input) (string, error) {
	targetWords := wordCount(in.Transcript) / 2
	response, err := g.ai.GenerateText(ctx, bodyPrompt(in.Transcript, in.Language, targetWords))
	if err != nil {
		return deriveFallbackBody(in.Transcript), services.Wrap(services.ErrGeneration, "generate", "body", in.VideoID, err)
	}
	return postProcessBody(response), nil
}

// postProcessBody removes filler phrases the prompt forbids but models still
// emit, and collapses whitespace runs.
func postProcessBody(body string) string {
	body = fillerWordRe.ReplaceAllString(body, "")
	body = speakerRefRe.ReplaceAllString(body, "")
	body = bracketNoteRe.ReplaceAllString(body, "")
	body = blankRunRe.ReplaceAllString(body, "\n\n")
	body = spaceRunRe.ReplaceAllString(body, " ")
	return strings.TrimSpace(body)
}

// deriveFallbackBody wraps the first half of the transcript, capped at 500
// words, in a fixed article skeleton.
func deriveFallbackBody(transcript string) string {
	words := strings.Fields(transcript)
	keep := len(words) / 2
	if keep > fallbackBodyWordCap {
		keep = fallbackBodyWordCap
	}
	return fallbackBodyTop + strings.Join(words[:keep], " ") + fallbackBodyEnd
}
