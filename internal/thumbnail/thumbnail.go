package thumbnail

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	defaultOEmbedURL   = "https://www.youtube.com/oembed"
	defaultHTTPTimeout = 15 * time.Second
)

// Metadata is what oEmbed reveals about a video without an API key.
type Metadata struct {
	Title        string `json:"title"`
	AuthorName   string `json:"author_name"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// Client fetches video metadata and thumbnails via YouTube's oEmbed
// endpoint. Everything here is best-effort enrichment; callers log failures
// and continue.
type Client struct {
	oembedURL  string
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

// WithOEmbedURL overrides the oEmbed endpoint (useful for tests/mocks).
func WithOEmbedURL(base string) Option {
	return func(c *Client) {
		base = strings.TrimSpace(base)
		if base != "" {
			c.oembedURL = base
		}
	}
}

// NewClient constructs an oEmbed client.
func NewClient(opts ...Option) *Client {
	client := &Client{
		oembedURL:  defaultOEmbedURL,
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

// Fetch returns the oEmbed metadata for a video URL.
func (c *Client) Fetch(ctx context.Context, videoURL string) (Metadata, error) {
	var meta Metadata
	if strings.TrimSpace(videoURL) == "" {
		return meta, fmt.Errorf("thumbnail fetch: video url required")
	}
	params := url.Values{}
	params.Set("url", videoURL)
	params.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.oembedURL+"?"+params.Encode(), nil)
	if err != nil {
		return meta, fmt.Errorf("thumbnail fetch: request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return meta, fmt.Errorf("thumbnail fetch: request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return meta, fmt.Errorf("thumbnail fetch: http %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(&meta); err != nil {
		return meta, fmt.Errorf("thumbnail fetch: decode: %w", err)
	}
	return meta, nil
}

// Download stores the thumbnail image as {videoID}.jpg under dir and returns
// the written path.
func (c *Client) Download(ctx context.Context, thumbnailURL, dir, videoID string) (string, error) {
	if strings.TrimSpace(thumbnailURL) == "" {
		return "", fmt.Errorf("thumbnail download: url required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("thumbnail download: ensure dir: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, thumbnailURL, nil)
	if err != nil {
		return "", fmt.Errorf("thumbnail download: request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("thumbnail download: request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("thumbnail download: http %d", resp.StatusCode)
	}

	target := filepath.Join(dir, videoID+".jpg")
	f, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("thumbnail download: create file: %w", err)
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		os.Remove(target)
		return "", fmt.Errorf("thumbnail download: write: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("thumbnail download: close: %w", err)
	}
	return target, nil
}
