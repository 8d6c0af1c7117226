package generate

import (
	"context"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"sparkpress/internal/services"
)

const (
	titleMaxChars   = 60
	titleMinCutAt   = 40
	fallbackTitle   = "Essential Video Content Guide"
	defaultAITitle  = "Generated Blog Post"
	topicExcerpt    = 2000
	titleExcerpt    = 1500
	keyTopicsMaxLen = 100
)

var (
	optionPrefixRe  = regexp.MustCompile(`(?i)^(Title|Option)\s*\d+:\s*`)
	bestTitleRe     = regexp.MustCompile(`(?i)^BEST\s*TITLE:\s*`)
	videoTermRe     = regexp.MustCompile(`(?i)watch this|in this video|episode|part|#|\|`)
	trailingDotsRe  = regexp.MustCompile(`\s*\.\.\.$`)
	trailingForRe   = regexp.MustCompile(`\s+for\.\.\.$`)
	titleCaser      = cases.Title(language.English)
	titleSmallWords = map[string]bool{
		"a": true, "an": true, "and": true, "as": true, "at": true,
		"but": true, "by": true, "for": true, "in": true, "of": true,
		"on": true, "or": true, "the": true, "to": true, "with": true,
	}
)

// generateTitle produces the post title. A custom or source title wins
// outright; otherwise the model proposes options and the marked best one is
// cleaned, cased, and length-capped. Any model failure degrades to a
// transcript-derived fallback.
func (g *Generator) generateTitle(ctx context.Context, in Input) (string, error) {
	if custom := strings.TrimSpace(in.CustomTitle); custom != "" {
		return custom, nil
	}
	if source := strings.TrimSpace(in.SourceTitle); source != "" {
		return source, nil
	}

	keyTopics := g.extractKeyTopics(ctx, excerptRunes(in.Transcript, topicExcerpt))

	response, err := g.ai.GenerateText(ctx, titlePrompt(keyTopics, excerptRunes(in.Transcript, titleExcerpt)))
	if err != nil {
		return deriveFallbackTitle(in.Transcript, keyTopics), services.Wrap(services.ErrGeneration, "generate", "title", in.VideoID, err)
	}
	title := optimizeTitleLength(cleanTitle(extractBestTitle(response)))
	return title, nil
}

// extractKeyTopics asks the model for the main topics; on failure the first
// words of the excerpt stand in.
func (g *Generator) extractKeyTopics(ctx context.Context, excerpt string) string {
	response, err := g.ai.GenerateText(ctx, keyTopicsPrompt(excerpt))
	if err != nil {
		words := strings.Fields(excerpt)
		if len(words) > 10 {
			words = words[:10]
		}
		return strings.Join(words, " ")
	}
	return excerptRunes(strings.TrimSpace(response), keyTopicsMaxLen)
}

// extractBestTitle pulls the chosen title out of a multi-option response.
func extractBestTitle(response string) string {
	var lines []string
	for _, line := range strings.Split(response, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}

	for i, line := range lines {
		if !strings.Contains(strings.ToUpper(line), "BEST TITLE") {
			continue
		}
		// Title may trail the marker on the same line.
		if candidate := stripTitlePrefixes(bestTitleRe.ReplaceAllString(line, "")); isTitleCandidate(candidate) {
			return candidate
		}
		for _, next := range lines[i+1:] {
			if candidate := stripTitlePrefixes(next); isTitleCandidate(candidate) {
				return candidate
			}
		}
	}

	var options []string
	for i, line := range lines {
		if !optionPrefixRe.MatchString(line) {
			continue
		}
		if candidate := stripTitlePrefixes(line); len(candidate) > 10 {
			options = append(options, candidate)
		} else if i+1 < len(lines) && len(lines[i+1]) > 10 && !optionPrefixRe.MatchString(lines[i+1]) {
			options = append(options, lines[i+1])
		}
	}
	if len(options) > 0 {
		return options[len(options)-1]
	}

	for i := len(lines) - 1; i >= 0; i-- {
		if candidate := stripTitlePrefixes(lines[i]); isTitleCandidate(candidate) {
			return candidate
		}
	}
	return defaultAITitle
}

func stripTitlePrefixes(line string) string {
	line = optionPrefixRe.ReplaceAllString(line, "")
	line = bestTitleRe.ReplaceAllString(line, "")
	return strings.TrimSpace(line)
}

func isTitleCandidate(line string) bool {
	if len(line) <= 10 {
		return false
	}
	for _, prefix := range []string{"---", "*", "Generate", "Create", "Now select", "Option"} {
		if strings.HasPrefix(line, prefix) {
			return false
		}
	}
	return true
}

// cleanTitle strips quotes, prefixes, video-specific terms, and artifacts,
// then applies title case.
func cleanTitle(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return defaultAITitle
	}
	title = strings.Trim(title, "\"'`")
	title = stripTitlePrefixes(title)
	title = videoTermRe.ReplaceAllString(title, "")
	title = strings.Join(strings.Fields(title), " ")
	title = trailingDotsRe.ReplaceAllString(title, "")
	title = trailingForRe.ReplaceAllString(title, "")
	if title == "" {
		return defaultAITitle
	}
	return titleCase(title)
}

// titleCase capitalizes every word except interior small words. First and
// last words are always capitalized.
func titleCase(title string) string {
	words := strings.Fields(title)
	if len(words) == 0 {
		return title
	}
	for i, word := range words {
		lower := strings.ToLower(word)
		interior := i > 0 && i < len(words)-1
		if interior && titleSmallWords[lower] {
			words[i] = lower
			continue
		}
		words[i] = titleCaser.String(lower)
	}
	return strings.Join(words, " ")
}

// optimizeTitleLength caps the title at 60 characters, cutting at a word
// boundary when one falls late enough. No ellipsis is appended. Lengths and
// cut positions are in runes: multi-byte titles must never be split inside
// a character.
func optimizeTitleLength(title string) string {
	runes := []rune(title)
	if len(runes) <= titleMaxChars {
		return title
	}
	runes = runes[:titleMaxChars-3]
	lastSpace := -1
	for i, r := range runes {
		if r == ' ' {
			lastSpace = i
		}
	}
	if lastSpace > titleMinCutAt {
		runes = runes[:lastSpace]
	}
	return strings.TrimSpace(string(runes))
}

// deriveFallbackTitle builds a title without the model: the first sentence
// of usable length, then the key topics, then a fixed string.
func deriveFallbackTitle(transcript, keyTopics string) string {
	sentences := strings.Split(transcript, ".")
	if len(sentences) > 5 {
		sentences = sentences[:5]
	}
	for _, sentence := range sentences {
		sentence = strings.TrimSpace(sentence)
		if len(sentence) > 20 && len(sentence) < 100 && !startsWithGreeting(sentence) {
			return cleanTitle(optimizeTitleLength(sentence))
		}
	}
	if keyTopics != "" {
		return cleanTitle("Guide to " + excerptRunes(keyTopics, 40))
	}
	return fallbackTitle
}

func startsWithGreeting(sentence string) bool {
	lower := strings.ToLower(sentence)
	for _, greeting := range []string{"hey", "hi ", "hello", "so ", "okay", "um ", "uh "} {
		if strings.HasPrefix(lower, greeting) {
			return true
		}
	}
	return false
}
