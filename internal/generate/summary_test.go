package generate

import (
	"strings"
	"testing"
)

func TestAcceptableSummary(t *testing.T) {
	tests := []struct {
		summary string
		want    bool
	}{
		{"Build caches cut image build times dramatically for busy teams.", true},
		{"short", false},
		{"I was unable to process the transcript you provided here.", false},
		{"An error occurred while summarizing the given content today.", false},
		{"The generation failed for this particular transcript excerpt.", false},
	}
	for _, tc := range tests {
		if got := acceptableSummary(tc.summary); got != tc.want {
			t.Errorf("acceptableSummary(%q) = %v", tc.summary, got)
		}
	}
}

func TestDeriveFallbackSummaryUsesSentences(t *testing.T) {
	transcript := "Hey folks welcome back to the channel once again today. " +
		"Container build caches are the single biggest lever for CI speed. " +
		"Ordering your layers from stable to volatile keeps the cache warm. " +
		"More detail follows in later sections of the talk."
	got := deriveFallbackSummary(transcript)
	if strings.HasPrefix(strings.ToLower(got), "hey") {
		t.Fatalf("greeting sentence not skipped: %q", got)
	}
	if !strings.Contains(got, "biggest lever") || !strings.Contains(got, "cache warm") {
		t.Fatalf("got %q", got)
	}
	if !strings.HasSuffix(got, ".") {
		t.Fatalf("missing terminal period: %q", got)
	}
}

func TestDeriveFallbackSummaryWordBudget(t *testing.T) {
	// Every sentence is too short to qualify, forcing the word-budget branch.
	parts := make([]string, 100)
	for i := range parts {
		parts[i] = "aa bb"
	}
	got := deriveFallbackSummary(strings.Join(parts, ". "))
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("got %q", got)
	}
	if n := len(strings.Fields(got)); n != fallbackWordBudget {
		t.Fatalf("kept %d words", n)
	}
}

func TestDeriveFallbackSummaryEmptyTranscript(t *testing.T) {
	if got := deriveFallbackSummary(""); got != fallbackSummary {
		t.Fatalf("got %q", got)
	}
}
