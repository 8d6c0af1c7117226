package generate

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestExtractBestTitleMarker(t *testing.T) {
	response := `Option 1: How to Cache Docker Builds
Option 2: Docker Caching Explained
Option 3: Build Faster with Caches

Now select the BEST title and write it below with NO prefix, NO label, JUST the title text:

BEST TITLE:
How to Cache Docker Builds for Speed`
	got := extractBestTitle(response)
	if got != "How to Cache Docker Builds for Speed" {
		t.Fatalf("got %q", got)
	}
}

func TestExtractBestTitleInlineMarker(t *testing.T) {
	got := extractBestTitle("BEST TITLE: Proven Ways to Ship Smaller Images")
	if got != "Proven Ways to Ship Smaller Images" {
		t.Fatalf("got %q", got)
	}
}

func TestExtractBestTitleFallsBackToLastOption(t *testing.T) {
	response := `Option 1: Short One Here Okay
Option 2: A Better Second Option Title`
	got := extractBestTitle(response)
	if got != "A Better Second Option Title" {
		t.Fatalf("got %q", got)
	}
}

func TestExtractBestTitleLastSubstantialLine(t *testing.T) {
	response := "some preamble text\nThe Actual Title of the Post"
	got := extractBestTitle(response)
	if got != "The Actual Title of the Post" {
		t.Fatalf("got %q", got)
	}
}

func TestExtractBestTitleEmptyResponse(t *testing.T) {
	if got := extractBestTitle(""); got != defaultAITitle {
		t.Fatalf("got %q", got)
	}
}

func TestCleanTitle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`"Quoted Title Here"`, "Quoted Title Here"},
		{"Option 2: Stripped Prefix Title", "Stripped Prefix Title"},
		{"BEST TITLE: Marker Gone", "Marker Gone"},
		{"Watch This episode of Cooking", "Of Cooking"},
		{"too   many    spaces", "Too Many Spaces"},
		{"Trailing Artifact for...", "Trailing Artifact For"},
		{"", defaultAITitle},
	}
	for _, tc := range tests {
		if got := cleanTitle(tc.in); got != tc.want {
			t.Errorf("cleanTitle(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestTitleCaseSmallWords(t *testing.T) {
	got := titleCase("a guide to the art of caching")
	if got != "A Guide to the Art of Caching" {
		t.Fatalf("got %q", got)
	}
}

func TestTitleCaseLastWordAlwaysCapitalized(t *testing.T) {
	got := titleCase("what this is for")
	if !strings.HasSuffix(got, "For") {
		t.Fatalf("got %q", got)
	}
}

func TestOptimizeTitleLength(t *testing.T) {
	short := "Fits Fine"
	if got := optimizeTitleLength(short); got != short {
		t.Fatalf("got %q", got)
	}

	long := "This Title Is Definitely Much Too Long To Survive The Sixty Character Cap"
	got := optimizeTitleLength(long)
	if len(got) > titleMaxChars {
		t.Fatalf("length %d: %q", len(got), got)
	}
	if strings.HasSuffix(got, "...") {
		t.Fatalf("ellipsis appended: %q", got)
	}
	// Cut lands on a word boundary, not mid-word.
	if !strings.HasPrefix(long, got) {
		t.Fatalf("not a prefix cut: %q", got)
	}
	if next := long[len(got)]; next != ' ' {
		t.Fatalf("cut mid-word at %q in %q", next, got)
	}
}

func TestOptimizeTitleLengthCountsRunes(t *testing.T) {
	// 33 runes but 97 bytes: within the cap, must pass through untouched.
	cjk := "A" + strings.Repeat("深度学习模型训练", 4)
	if got := optimizeTitleLength(cjk); got != cjk {
		t.Fatalf("short multi-byte title modified: %q", got)
	}

	// 65 runes: over the cap, and the cut must not split a character.
	long := strings.Repeat("深度学习模型训练", 8) + "完"
	got := optimizeTitleLength(long)
	if !utf8.ValidString(got) {
		t.Fatalf("cut produced invalid UTF-8: %q", got)
	}
	if n := utf8.RuneCountInString(got); n > titleMaxChars {
		t.Fatalf("rune length %d: %q", n, got)
	}
	if !strings.HasPrefix(long, got) {
		t.Fatalf("not a prefix cut: %q", got)
	}
}

func TestDeriveFallbackTitleFromSentence(t *testing.T) {
	transcript := "Hey everyone. Kubernetes operators automate day-two operations for stateful workloads. More text follows."
	got := deriveFallbackTitle(transcript, "")
	if !strings.Contains(got, "Kubernetes Operators") {
		t.Fatalf("got %q", got)
	}
}

func TestDeriveFallbackTitleFromTopics(t *testing.T) {
	got := deriveFallbackTitle("hi. so. ok.", "docker, caching")
	if !strings.HasPrefix(got, "Guide to") {
		t.Fatalf("got %q", got)
	}
}

func TestDeriveFallbackTitleFixed(t *testing.T) {
	if got := deriveFallbackTitle("hi. so. ok.", ""); got != fallbackTitle {
		t.Fatalf("got %q", got)
	}
}
