package language

import (
	"strings"
	"testing"

	"sparkpress/internal/logging"
)

func newOfflineDetector(t *testing.T) *Detector {
	t.Helper()
	d := NewDetector(logging.NewNop())
	d.detect = func(string) (string, bool) { return "", false }
	return d
}

func TestDetectFallbackChinese(t *testing.T) {
	d := newOfflineDetector(t)
	text := strings.Repeat("这是一个测试 ", 10)
	if got := d.Detect(text); got != Chinese {
		t.Fatalf("Detect = %q, want %q", got, Chinese)
	}
}

func TestDetectFallbackKorean(t *testing.T) {
	d := newOfflineDetector(t)
	text := strings.Repeat("안녕하세요 여러분 ", 10)
	if got := d.Detect(text); got != Korean {
		t.Fatalf("Detect = %q, want %q", got, Korean)
	}
}

func TestDetectFallbackJapaneseKana(t *testing.T) {
	d := newOfflineDetector(t)
	text := strings.Repeat("これはテストです ", 10)
	if got := d.Detect(text); got != Japanese {
		t.Fatalf("Detect = %q, want %q", got, Japanese)
	}
}

func TestDetectFallbackEnglish(t *testing.T) {
	d := newOfflineDetector(t)
	if got := d.Detect("Hello world test content here, plain ASCII prose."); got != DefaultCode {
		t.Fatalf("Detect = %q, want %q", got, DefaultCode)
	}
}

func TestDetectEmptyAndShortInput(t *testing.T) {
	d := newOfflineDetector(t)
	if got := d.Detect(""); got != DefaultCode {
		t.Fatalf("Detect(empty) = %q", got)
	}
	if got := d.Detect("hi"); got != DefaultCode {
		t.Fatalf("Detect(short) = %q", got)
	}
}

func TestDetectNormalizesStatisticalOutput(t *testing.T) {
	d := NewDetector(logging.NewNop())
	d.detect = func(string) (string, bool) { return "cmn", true }
	if got := d.Detect("enough text for the detector to consider"); got != Chinese {
		t.Fatalf("Detect = %q, want %q", got, Chinese)
	}
}

func TestCleanForDetection(t *testing.T) {
	in := "12:34 intro https://example.com/x [Music] actual words 1:02:03"
	got := cleanForDetection(in)
	for _, banned := range []string{"12:34", "https://", "[Music]", "1:02:03"} {
		if strings.Contains(got, banned) {
			t.Errorf("cleaned text still contains %q: %q", banned, got)
		}
	}
	if !strings.Contains(got, "actual words") {
		t.Errorf("cleaned text lost content: %q", got)
	}
}
