package language

import (
	"log/slog"
	"regexp"
	"strings"
	"unicode"

	"github.com/RadhiFadlillah/whatlanggo"
)

// Canonical codes the detector can return.
const (
	DefaultCode        = "en"
	Chinese            = "zh-cn"
	ChineseTraditional = "zh-tw"
	Korean             = "ko"
	Japanese           = "ja"
)

// scriptThreshold is the share of non-whitespace characters a single script
// must exceed before the heuristic fallback picks its language.
const scriptThreshold = 0.10

var (
	timestampPattern = regexp.MustCompile(`\d{1,2}:\d{2}(?::\d{2})?`)
	urlPattern       = regexp.MustCompile(`https?://\S+`)
	bracketPattern   = regexp.MustCompile(`\[[^\]]*\]`)
)

// Detector identifies the primary language of transcript text. It never
// returns an error: statistical detection degrades to character-class
// ratios, and total failure defaults to English.
type Detector struct {
	log *slog.Logger

	// detect is swapped in tests to simulate a missing or failing
	// statistical backend.
	detect func(text string) (code string, reliable bool)
}

// NewDetector constructs a Detector logging degradations to log.
func NewDetector(log *slog.Logger) *Detector {
	if log == nil {
		log = slog.Default()
	}
	return &Detector{log: log, detect: statisticalDetect}
}

// Detect returns the canonical language code for text.
func (d *Detector) Detect(text string) string {
	cleaned := cleanForDetection(text)
	if len(strings.TrimSpace(cleaned)) < 10 {
		return DefaultCode
	}

	detect := d.detect
	if detect == nil {
		detect = statisticalDetect
	}
	if code, reliable := detect(cleaned); reliable {
		return Normalize(code)
	}

	d.log.Warn("statistical language detection unavailable, using script ratios")
	return scriptFallback(cleaned)
}

func statisticalDetect(text string) (string, bool) {
	info := whatlanggo.Detect(text)
	if !info.IsReliable() {
		return "", false
	}
	code := whatlanggo.LangToString(info.Lang)
	if code == "" {
		return "", false
	}
	return code, true
}

// cleanForDetection strips timestamps, URLs, and bracketed annotations that
// skew statistical detection of caption text.
func cleanForDetection(text string) string {
	text = timestampPattern.ReplaceAllString(text, "")
	text = urlPattern.ReplaceAllString(text, "")
	text = bracketPattern.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// scriptFallback counts CJK, Hangul, and Kana code points against all
// non-whitespace characters. Kana is checked before Hangul and Han so that
// Japanese text, which mixes kana with Han characters, is not misread as
// Chinese; anything below threshold falls back to the English default.
func scriptFallback(text string) string {
	var han, hangul, kana, total int
	for _, r := range text {
		if unicode.IsSpace(r) {
			continue
		}
		total++
		switch {
		case r >= 0x4E00 && r <= 0x9FFF:
			han++
		case r >= 0xAC00 && r <= 0xD7AF:
			hangul++
		case (r >= 0x3040 && r <= 0x309F) || (r >= 0x30A0 && r <= 0x30FF):
			kana++
		}
	}
	if total == 0 {
		return DefaultCode
	}
	ratio := func(n int) float64 { return float64(n) / float64(total) }
	switch {
	case ratio(kana) > scriptThreshold:
		return Japanese
	case ratio(hangul) > scriptThreshold:
		return Korean
	case ratio(han) > scriptThreshold:
		return Chinese
	}
	return DefaultCode
}
