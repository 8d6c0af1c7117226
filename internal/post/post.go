// Package post models a generated blog post and its Pelican front matter.
//
// Front matter here is deliberately not YAML: Pelican reads plain
// "key: value" lines and quoting scalar values (titles especially) breaks
// the site templates downstream. The builder never quotes, and the
// validator treats a quoted title as a formatting defect.
package post

import (
	"strings"
	"time"
)

// Markers delimiting the front-matter block.
const (
	FenceMarker = "---"
)

// GeneratedPost is the atomic result of content generation: every field is
// populated (possibly by fallback) before the struct is constructed, and it
// is never exposed partially built.
type GeneratedPost struct {
	Title      string
	Slug       string
	Summary    string
	Body       string
	Tags       []string
	Category   string
	Language   string
	ExternalID string
	Author     string
	Image      string
	Date       time.Time
	Filename   string
}

// FrontMatter renders the metadata block including both fence markers.
func (p GeneratedPost) FrontMatter() string {
	var b strings.Builder
	b.WriteString(FenceMarker)
	b.WriteByte('\n')
	writeField := func(key, value string) {
		if value == "" {
			return
		}
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(sanitizeValue(value))
		b.WriteByte('\n')
	}
	writeField("title", p.Title)
	writeField("date", p.Date.Format(time.RFC3339))
	writeField("author", p.Author)
	writeField("category", p.Category)
	writeField("tags", strings.Join(p.Tags, ", "))
	writeField("slug", p.Slug)
	writeField("youtube_id", p.ExternalID)
	writeField("summary", p.Summary)
	writeField("image", p.Image)
	writeField("language", p.Language)
	b.WriteString(FenceMarker)
	b.WriteByte('\n')
	return b.String()
}

// Document renders the complete publishable Markdown: front matter, one
// blank line, summary, blank line, body, and a trailing newline.
func (p GeneratedPost) Document() string {
	var b strings.Builder
	b.WriteString(p.FrontMatter())
	b.WriteByte('\n')
	if summary := strings.TrimSpace(p.Summary); summary != "" {
		b.WriteString(summary)
		b.WriteString("\n\n")
	}
	b.WriteString(strings.TrimRight(p.Body, "\n"))
	b.WriteByte('\n')
	return b.String()
}

// sanitizeValue flattens newlines so a multi-line summary cannot break the
// one-field-per-line contract.
func sanitizeValue(value string) string {
	value = strings.ReplaceAll(value, "\r", " ")
	value = strings.ReplaceAll(value, "\n", " ")
	return strings.Join(strings.Fields(value), " ")
}
