package generate

import (
	"fmt"
	"strings"

	langpkg "sparkpress/internal/language"
)

// languageInstructions renders the language block embedded in every prompt
// that produces reader-facing prose.
func languageInstructions(code string) string {
	name := langpkg.DisplayName(langpkg.Normalize(code))
	if name == "" {
		name = "English"
	}
	return fmt.Sprintf(`LANGUAGE REQUIREMENTS:
- Write the entire blog post in %s
- Use professional, clear %s suitable for readers
- Maintain formal tone appropriate for blog content
- Use proper %s grammar and punctuation`, name, name, name)
}

func keyTopicsPrompt(excerpt string) string {
	return fmt.Sprintf(`Extract the 2-3 main topics from this transcript in 5 words or less.

Transcript:
%s

Main topics (comma-separated, 5 words max):`, excerpt)
}

func titlePrompt(keyTopics, excerpt string) string {
	return fmt.Sprintf(`Generate a compelling blog post title based on this video transcript.

REQUIREMENTS:
- Length: 50-60 characters (strict limit)
- Format: Choose the most appropriate format:
  * "How to [Action] [Benefit]"
  * "[Number] Ways to [Achieve Result]"
  * "Complete Guide to [Topic]"
  * "Why [Topic] Matters for [Audience]"
  * "[Action]: A [Adjective] Guide"
- Include power words: Complete, Essential, Proven, Ultimate, Simple, Effective
- Focus on value proposition and benefits
- Remove video-specific words: "Watch", "Episode", "Part", "#"
- Must be clear, specific, and actionable
- Do NOT use quotes around the title

Key Topics Identified: %s

Transcript excerpt:
%s

Generate 3 title options:

Option 1:
Option 2:
Option 3:

Now select the BEST title and write it below with NO prefix, NO label, JUST the title text:

BEST TITLE:`, keyTopics, excerpt)
}

func bodyPrompt(transcript, language string, targetWords int) string {
	return fmt.Sprintf(`Transform this YouTube video transcript into a professional blog post.

%s

CRITICAL REQUIREMENTS:
- Length: Approximately %d words (50%% of original)
- Remove ALL filler words: "um", "uh", "like", "you know", "basically", "actually"
- Remove repetitions and redundant explanations
- Focus ONLY on key insights and actionable information
- Write in clear, professional paragraphs (not spoken style)

STRUCTURE (must follow exactly):
## Introduction
[2-3 sentences: Hook reader + What they'll learn + Why it matters]

## Key Takeaways
[Bullet list: 3-5 main points - be specific and actionable]

## [Section 1 - Descriptive Heading]
[2-3 concise paragraphs covering first major topic]

## [Section 2 - Descriptive Heading]
[2-3 concise paragraphs covering second major topic]

## [Section 3 - Descriptive Heading]
[2-3 concise paragraphs covering third major topic]

## Practical Applications
[Bullet list: 3-4 specific action steps readers can take]

## Conclusion
[2-3 sentences: Summarize value + Call to action]

WRITING STYLE:
- Short paragraphs (2-4 sentences max)
- Active voice only
- Specific examples instead of vague statements
- One idea per paragraph
- Use subheadings for clarity
- Bold important terms sparingly

EXCLUDE:
- Any reference to "in this video", "the speaker says", timestamps
- Tangents and off-topic content
- Overly detailed explanations
- Marketing fluff

Transcript:
%s

Blog Post (markdown format):`, languageInstructions(language), targetWords, transcript)
}

func summaryPrompt(excerpt, language string) string {
	return fmt.Sprintf(`Create a compelling 2-3 sentence summary that makes someone want to read this blog post.

REQUIREMENTS:
- Length: 2-3 sentences (150 words max)
- First sentence: Hook with the main benefit or insight
- Second sentence: Key takeaway or learning
- Third sentence (optional): Who should read this or call to action
- Write in active voice, be specific
- Do NOT start with "This post/article/video discusses..."

%s

Transcript excerpt:
%s

Summary:`, languageInstructions(language), excerpt)
}

func tagsPrompt(excerpt string) string {
	return fmt.Sprintf(`Generate 5-7 specific, relevant tags for this blog post.

REQUIREMENTS:
- Use lowercase, no spaces (use-hyphens-for-phrases)
- Be specific (not generic like "video" or "content")
- Include: topic keywords, technologies, concepts, target audience
- Avoid: overly broad terms, duplicates

Transcript:
%s

Tags (comma-separated):`, excerpt)
}

// excerptRunes truncates text to at most limit runes for prompt excerpts.
func excerptRunes(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}

func wordCount(text string) int {
	return len(strings.Fields(text))
}
