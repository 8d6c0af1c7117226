package testsupport

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"sparkpress/internal/post"
	"sparkpress/internal/postindex"
)

// SamplePost returns a fully populated post for the given video, suitable for
// rendering or publishing in tests.
func SamplePost(videoID string) post.GeneratedPost {
	return post.GeneratedPost{
		Title:      "Sample Generated Post",
		Slug:       "sample-generated-post-" + videoID,
		Summary:    "A short summary used by tests.",
		Body:       "## Overview\n\nBody text.",
		Tags:       []string{"tutorial", "guide"},
		Category:   "Tutorial",
		Language:   "en",
		ExternalID: videoID,
		Author:     "Test Author",
		Date:       time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC),
		Filename:   "2025-03-01-sample-generated-post-" + videoID + ".md",
	}
}

// WritePost renders the post and writes it into dir under the post's
// filename, creating dir if needed. Returns the written path.
func WritePost(t testing.TB, dir string, p post.GeneratedPost) string {
	t.Helper()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	path := filepath.Join(dir, p.Filename)
	if err := os.WriteFile(path, []byte(p.Document()), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// MustOpenIndex opens a published-post index in a temp location and registers
// cleanup.
func MustOpenIndex(t testing.TB) *postindex.Store {
	t.Helper()

	store, err := postindex.Open(filepath.Join(t.TempDir(), "posts.db"))
	if err != nil {
		t.Fatalf("postindex.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}
