// Package slug derives URL-safe document identifiers and dated Markdown
// filenames from post titles.
package slug

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

const (
	// maxBodyRunes bounds the slug before the ID suffix is appended. Long
	// non-Latin titles otherwise overflow filesystem name limits once
	// percent-encoded or multi-byte encoded.
	maxBodyRunes = 100
	// idSuffixLen is how much of the video ID distinguishes same-title posts.
	idSuffixLen = 8

	fallbackSlug = "untitled"
)

var (
	stripPattern    = regexp.MustCompile(`[^\p{L}\p{N}\s_-]+`)
	hyphenTrimRuns  = regexp.MustCompile(`-{2,}`)
	whitespaceParts = regexp.MustCompile(`[\s_]+`)
)

// Derive converts a title into a lowercase hyphen-separated slug. Empty or
// fully stripped titles yield "untitled". The result is truncated to 100
// runes; truncation happens before any ID suffix so the suffix is never cut.
func Derive(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = stripPattern.ReplaceAllString(s, "")
	s = whitespaceParts.ReplaceAllString(s, "-")
	s = hyphenTrimRuns.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return fallbackSlug
	}
	if runes := []rune(s); len(runes) > maxBodyRunes {
		s = strings.Trim(string(runes[:maxBodyRunes]), "-")
	}
	return s
}

// WithID appends a short video-ID suffix to an already derived slug so that
// independently processed videos sharing a title never collide.
func WithID(derived, videoID string) string {
	suffix := videoID
	if len(suffix) > idSuffixLen {
		suffix = suffix[:idSuffixLen]
	}
	if suffix == "" {
		return derived
	}
	return derived + "-" + strings.ToLower(suffix)
}

// Filename builds the Pelican-convention file name for a slug at the given
// generation date.
func Filename(t time.Time, derived string) string {
	return fmt.Sprintf("%s-%s.md", t.Format("2006-01-02"), derived)
}

// ResolveCollision probes dir for a free variant of name, appending -1, -2,
// and so on before the extension until no file exists. Directories here stay
// small, so linear probing is fine.
func ResolveCollision(dir, name string) string {
	candidate := name
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	for n := 1; ; n++ {
		if _, err := os.Stat(filepath.Join(dir, candidate)); os.IsNotExist(err) {
			return candidate
		}
		candidate = fmt.Sprintf("%s-%d%s", base, n, ext)
	}
}
