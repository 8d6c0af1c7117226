package generate

import (
	"strings"
	"testing"
)

func TestPostProcessBodyStripsFiller(t *testing.T) {
	body := "So basically the cache, um, works like this.\n\n\n\nIn this video we see [applause] more detail."
	got := postProcessBody(body)
	for _, banned := range []string{"basically", "um,", "[applause]", "In this video", "\n\n\n"} {
		if strings.Contains(got, banned) {
			t.Errorf("banned fragment %q survived: %q", banned, got)
		}
	}
}

func TestPostProcessBodyCollapsesBlankRuns(t *testing.T) {
	got := postProcessBody("one\n\n\n\n\ntwo")
	if got != "one\n\ntwo" {
		t.Fatalf("got %q", got)
	}
}

func TestDeriveFallbackBody(t *testing.T) {
	words := make([]string, 2000)
	for i := range words {
		words[i] = "word"
	}
	got := deriveFallbackBody(strings.Join(words, " "))
	if !strings.HasPrefix(got, "## Introduction") {
		t.Fatalf("missing skeleton head: %q", got[:40])
	}
	if !strings.Contains(got, "watch the original video") {
		t.Fatal("missing source pointer")
	}
	// Half of 2000 exceeds the cap, so exactly 500 words are kept.
	kept := strings.Count(got, "word")
	if kept != fallbackBodyWordCap {
		t.Fatalf("kept %d transcript words", kept)
	}
}

func TestDeriveFallbackBodyShortTranscript(t *testing.T) {
	got := deriveFallbackBody("only four words here now")
	if !strings.Contains(got, "only four") {
		t.Fatalf("got %q", got)
	}
}
