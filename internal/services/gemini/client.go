package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultBaseURL     = "https://generativelanguage.googleapis.com"
	defaultModel       = "gemini-2.0-flash"
	defaultHTTPTimeout = 180 * time.Second
)

// Config captures the runtime settings required to talk to the Gemini API.
type Config struct {
	APIKey         string
	BaseURL        string
	Model          string
	TimeoutSeconds int
}

// Client wraps the Gemini generateContent API.
type Client struct {
	cfg        Config
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
			c.cfg.BaseURL = strings.TrimRight(base, "/")
		}
	}
}

// NewClient constructs a Gemini API client.
func NewClient(cfg Config, opts ...Option) *Client {
	timeout := defaultHTTPTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	client := &Client{
		cfg: Config{
			APIKey:         strings.TrimSpace(cfg.APIKey),
			BaseURL:        strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
			Model:          strings.TrimSpace(cfg.Model),
			TimeoutSeconds: cfg.TimeoutSeconds,
		},
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.cfg.BaseURL == "" {
		client.cfg.BaseURL = defaultBaseURL
	}
	if client.cfg.Model == "" {
		client.cfg.Model = defaultModel
	}
	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: timeout}
	}
	return client
}

// Model reports the model name requests are issued against.
func (c *Client) Model() string {
	return c.cfg.Model
}

// Ready reports whether the client holds a credential. Callers check this
// before starting any work so a missing key fails up front, not mid-batch.
func (c *Client) Ready() error {
	if c == nil || c.cfg.APIKey == "" {
		return errors.New("gemini: api key required")
	}
	return nil
}

// GenerateText sends a plain text prompt and returns the model's text reply.
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errors.New("gemini generate: prompt required")
	}
	payload := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	}
	return c.generate(ctx, payload, "gemini generate")
}

// TranscribeAudio uploads raw audio bytes inline alongside an instruction
// prompt and returns the transcription text.
func (c *Client) TranscribeAudio(ctx context.Context, prompt string, audio []byte, mimeType string) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errors.New("gemini transcribe: prompt required")
	}
	if len(audio) == 0 {
		return "", errors.New("gemini transcribe: empty audio payload")
	}
	if strings.TrimSpace(mimeType) == "" {
		mimeType = "audio/mp3"
	}
	payload := generateRequest{
		Contents: []content{{
			Parts: []part{
				{Text: prompt},
				{InlineData: &inlineData{
					MimeType: mimeType,
					Data:     base64.StdEncoding.EncodeToString(audio),
				}},
			},
		}},
	}
	return c.generate(ctx, payload, "gemini transcribe")
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) generate(ctx context.Context, payload generateRequest, op string) (string, error) {
	if err := c.Ready(); err != nil {
		return "", err
	}
	endpoint, err := url.JoinPath(c.cfg.BaseURL, "v1beta", "models", c.cfg.Model+":generateContent")
	if err != nil {
		return "", fmt.Errorf("%s: build url: %w", op, err)
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("%s: encode request: %w", op, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(encoded))
	if err != nil {
		return "", fmt.Errorf("%s: request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.cfg.APIKey)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%s: request failed: %w", op, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%s: read body: %w", op, err)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return "", fmt.Errorf("%s: http %d: %s", op, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	var decoded generateResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return "", fmt.Errorf("%s: decode response: %w", op, err)
	}
	if decoded.Error != nil {
		return "", fmt.Errorf("%s: api error %d: %s", op, decoded.Error.Code, strings.TrimSpace(decoded.Error.Message))
	}
	text := extractText(decoded)
	if text == "" {
		return "", fmt.Errorf("%s: empty candidates", op)
	}
	return text, nil
}

func extractText(decoded generateResponse) string {
	for _, candidate := range decoded.Candidates {
		var b strings.Builder
		for _, p := range candidate.Content.Parts {
			b.WriteString(p.Text)
		}
		if text := strings.TrimSpace(b.String()); text != "" {
			return text
		}
	}
	return ""
}
