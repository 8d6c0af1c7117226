package subtitles

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultBaseURL     = "https://www.youtube.com/api/timedtext"
	defaultHTTPTimeout = 30 * time.Second
	userAgent          = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
)

// Client talks to YouTube's timedtext API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the default API base (useful for tests/mocks).
func WithBaseURL(base string) Option {
	return func(c *Client) {
		base = strings.TrimSpace(base)
		if base != "" {
			c.baseURL = strings.TrimRight(base, "/")
		}
	}
}

// NewClient constructs a timedtext client.
func NewClient(opts ...Option) *Client {
	client := &Client{
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return client
}

// trackList is the XML payload from the type=list endpoint.
type trackList struct {
	Tracks []struct {
		LangCode string `xml:"lang_code,attr"`
		Name     string `xml:"name,attr"`
		Kind     string `xml:"kind,attr"`
	} `xml:"track"`
}

// ListTracks returns the caption tracks advertised for a video. An empty
// list with a 200 response means captions are disabled.
func (c *Client) ListTracks(ctx context.Context, videoID string) ([]Track, error) {
	if strings.TrimSpace(videoID) == "" {
		return nil, fmt.Errorf("subtitles list: video id required")
	}
	params := url.Values{}
	params.Set("type", "list")
	params.Set("v", videoID)

	body, err := c.get(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("subtitles list: %w", err)
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return nil, ErrDisabled
	}
	var parsed trackList
	if err := xml.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("subtitles list: parse track list: %w", err)
	}
	if len(parsed.Tracks) == 0 {
		return nil, ErrNoTranscript
	}
	tracks := make([]Track, 0, len(parsed.Tracks))
	for _, t := range parsed.Tracks {
		tracks = append(tracks, Track{
			Language: t.LangCode,
			Name:     t.Name,
			Auto:     t.Kind == "asr",
		})
	}
	return tracks, nil
}

// timedtextResponse is the json3 cue payload.
type timedtextResponse struct {
	Events []struct {
		TStartMs    int64 `json:"tStartMs"`
		DDurationMs int64 `json:"dDurationMs"`
		Segs        []struct {
			UTF8 string `json:"utf8"`
		} `json:"segs"`
	} `json:"events"`
}

// FetchTrack downloads and parses the cues of a single caption track.
func (c *Client) FetchTrack(ctx context.Context, videoID string, track Track) ([]Segment, error) {
	if strings.TrimSpace(videoID) == "" {
		return nil, fmt.Errorf("subtitles fetch: video id required")
	}
	params := url.Values{}
	params.Set("v", videoID)
	params.Set("lang", track.Language)
	params.Set("fmt", "json3")
	if track.Auto {
		params.Set("kind", "asr")
	}
	if track.Name != "" {
		params.Set("name", track.Name)
	}

	body, err := c.get(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("subtitles fetch: %w", err)
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return nil, ErrNoTranscript
	}
	var parsed timedtextResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("subtitles fetch: parse cues: %w", err)
	}
	segments := make([]Segment, 0, len(parsed.Events))
	for _, event := range parsed.Events {
		if len(event.Segs) == 0 {
			continue
		}
		var text strings.Builder
		for _, seg := range event.Segs {
			text.WriteString(seg.UTF8)
		}
		segments = append(segments, Segment{
			Start:    float64(event.TStartMs) / 1000.0,
			Duration: float64(event.DDurationMs) / 1000.0,
			Text:     text.String(),
		})
	}
	if len(segments) == 0 {
		return nil, ErrNoTranscript
	}
	return segments, nil
}

func (c *Client) get(ctx context.Context, params url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	switch resp.StatusCode {
	case http.StatusOK:
		return body, nil
	case http.StatusNotFound:
		return nil, ErrNoTranscript
	case http.StatusForbidden:
		return nil, ErrDisabled
	default:
		return nil, fmt.Errorf("http %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
}
