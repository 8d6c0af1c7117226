// Package language maps between language code forms and detects the primary
// language of transcript text.
//
// Detection is statistical (whatlanggo) on a cleaned copy of the text, with
// raw output normalized onto the canonical blog codes (Chinese variants
// collapse to zh-cn). When the statistical pass is unreliable or
// unavailable, a character-class fallback counts CJK, Hangul, and Kana code
// points; any script over 10% of non-whitespace characters wins, and
// English is the final default. Detect never fails.
package language
