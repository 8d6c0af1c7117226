package subtitles

import (
	"context"
	"errors"
	"strings"
)

// Sentinel outcomes the caption path can report. Callers treat both as a
// signal to fall back to audio transcription rather than as hard failures.
var (
	// ErrDisabled means the video owner turned captions off.
	ErrDisabled = errors.New("subtitles: captions disabled for video")
	// ErrNoTranscript means captions are on but no track exists.
	ErrNoTranscript = errors.New("subtitles: no caption track available")
)

// Track describes one caption track advertised for a video.
type Track struct {
	Language string
	Name     string
	Auto     bool
}

// Segment is one timed caption cue.
type Segment struct {
	Start    float64
	Duration float64
	Text     string
}

// Service is the caption boundary the transcript acquirer depends on.
type Service interface {
	ListTracks(ctx context.Context, videoID string) ([]Track, error)
	FetchTrack(ctx context.Context, videoID string, track Track) ([]Segment, error)
}

// SelectTrack picks the caption track to fetch. Preference order: exact
// language match, then a manually-authored track in the preferred set, then
// a two-letter prefix match on the requested language, then the first track
// listed.
func SelectTrack(tracks []Track, language string, preferred []string) (Track, bool) {
	if len(tracks) == 0 {
		return Track{}, false
	}
	language = strings.ToLower(strings.TrimSpace(language))

	for _, track := range tracks {
		if strings.EqualFold(track.Language, language) {
			return track, true
		}
	}
	for _, want := range preferred {
		for _, track := range tracks {
			if !track.Auto && strings.EqualFold(track.Language, want) {
				return track, true
			}
		}
	}
	if prefix := languagePrefix(language); prefix != "" {
		for _, track := range tracks {
			if languagePrefix(track.Language) == prefix {
				return track, true
			}
		}
	}
	return tracks[0], true
}

func languagePrefix(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if idx := strings.IndexByte(code, '-'); idx > 0 {
		code = code[:idx]
	}
	if len(code) > 2 {
		code = code[:2]
	}
	return code
}

// JoinSegments flattens caption cues into one transcript string. Cue text is
// joined with single spaces and interior whitespace runs are collapsed.
func JoinSegments(segments []Segment) string {
	parts := make([]string, 0, len(segments))
	for _, seg := range segments {
		if text := strings.Join(strings.Fields(seg.Text), " "); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}
