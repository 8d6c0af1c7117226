// Package videoref extracts the 11-character video identifier from the URL
// shapes YouTube publishes: long-form watch URLs, youtu.be short links,
// embed URLs, shorts URLs, and legacy /v/ paths.
package videoref

import (
	"fmt"
	"net/url"
	"strings"

	"sparkpress/internal/services"
)

// IDLength is the fixed length of a YouTube video identifier.
const IDLength = 11

// Reference names a source video: the opaque platform identifier plus the
// canonical watch URL. Immutable once parsed.
type Reference struct {
	ID  string
	URL string
}

// WatchURL returns the canonical long-form URL for the video.
func WatchURL(id string) string {
	return "https://www.youtube.com/watch?v=" + id
}

// Parse extracts a Reference from a raw URL string. It recognizes watch,
// short, embed, shorts, and /v/ forms and fails with
// services.ErrInvalidReference for anything else.
func Parse(rawURL string) (Reference, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return Reference{}, services.Wrap(services.ErrInvalidReference, "videoref", "parse", "empty URL", nil)
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return Reference{}, services.Wrap(services.ErrInvalidReference, "videoref", "parse", rawURL, err)
	}

	id := extractID(parsed)
	if !ValidID(id) {
		return Reference{}, services.Wrap(
			services.ErrInvalidReference, "videoref", "parse",
			fmt.Sprintf("no video ID in %q", rawURL), nil)
	}

	return Reference{ID: id, URL: WatchURL(id)}, nil
}

// ValidID reports whether id is an 11-character token from the YouTube ID
// alphabet.
func ValidID(id string) bool {
	if len(id) != IDLength {
		return false
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '-' || r == '_':
		default:
			return false
		}
	}
	return true
}

func extractID(u *url.URL) string {
	host := strings.ToLower(u.Hostname())
	host = strings.TrimPrefix(host, "www.")

	switch {
	case host == "youtu.be":
		return firstSegment(u.Path)
	case host == "youtube.com" || host == "m.youtube.com" || host == "youtube-nocookie.com":
		path := u.EscapedPath()
		for _, prefix := range []string{"/embed/", "/shorts/", "/v/", "/live/"} {
			if strings.HasPrefix(path, prefix) {
				return firstSegment(strings.TrimPrefix(path, prefix))
			}
		}
		if v := u.Query().Get("v"); v != "" {
			return trimExtraParams(v)
		}
	}
	return ""
}

// firstSegment returns the leading path segment with any trailing slash,
// query remnant, or fragment stripped.
func firstSegment(path string) string {
	path = strings.TrimPrefix(path, "/")
	if idx := strings.IndexAny(path, "/?&#"); idx >= 0 {
		path = path[:idx]
	}
	return path
}

// trimExtraParams drops parameters glued onto the v value by malformed URLs.
func trimExtraParams(v string) string {
	if idx := strings.IndexAny(v, "&?"); idx >= 0 {
		v = v[:idx]
	}
	return v
}
