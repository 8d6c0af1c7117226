package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := NewClient(Config{APIKey: "test-key", Model: "gemini-2.0-flash"}, WithBaseURL(server.URL))
	return server, client
}

func candidateResponse(text string) string {
	encoded, _ := json.Marshal(text)
	return `{"candidates":[{"content":{"parts":[{"text":` + string(encoded) + `}]}}]}`
}

func TestGenerateText(t *testing.T) {
	var gotPath, gotKey string
	var gotBody map[string]any
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(candidateResponse("A Great Title")))
	})

	text, err := client.GenerateText(context.Background(), "write a title")
	if err != nil {
		t.Fatal(err)
	}
	if text != "A Great Title" {
		t.Fatalf("text = %q", text)
	}
	if gotPath != "/v1beta/models/gemini-2.0-flash:generateContent" {
		t.Fatalf("path = %q", gotPath)
	}
	if gotKey != "test-key" {
		t.Fatalf("api key header = %q", gotKey)
	}
	if gotBody["contents"] == nil {
		t.Fatalf("missing contents in request: %v", gotBody)
	}
}

func TestGenerateTextRequiresPrompt(t *testing.T) {
	client := NewClient(Config{APIKey: "k"})
	if _, err := client.GenerateText(context.Background(), "   "); err == nil {
		t.Fatal("expected error for blank prompt")
	}
}

func TestGenerateTextRequiresAPIKey(t *testing.T) {
	client := NewClient(Config{})
	if err := client.Ready(); err == nil {
		t.Fatal("expected Ready to fail without key")
	}
	if _, err := client.GenerateText(context.Background(), "prompt"); err == nil {
		t.Fatal("expected error without key")
	}
}

func TestGenerateTextHTTPError(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	})
	_, err := client.GenerateText(context.Background(), "prompt")
	if err == nil || !strings.Contains(err.Error(), "http 429") {
		t.Fatalf("expected http 429 error, got %v", err)
	}
}

func TestGenerateTextAPIError(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":{"code":400,"message":"invalid model"}}`))
	})
	_, err := client.GenerateText(context.Background(), "prompt")
	if err == nil || !strings.Contains(err.Error(), "invalid model") {
		t.Fatalf("expected api error, got %v", err)
	}
}

func TestGenerateTextEmptyCandidates(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	})
	_, err := client.GenerateText(context.Background(), "prompt")
	if err == nil || !strings.Contains(err.Error(), "empty candidates") {
		t.Fatalf("expected empty candidates error, got %v", err)
	}
}

func TestTranscribeAudioSendsInlineData(t *testing.T) {
	var gotBody struct {
		Contents []struct {
			Parts []struct {
				Text       string `json:"text"`
				InlineData *struct {
					MimeType string `json:"mime_type"`
					Data     string `json:"data"`
				} `json:"inline_data"`
			} `json:"parts"`
		} `json:"contents"`
	}
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(candidateResponse("transcribed words")))
	})

	text, err := client.TranscribeAudio(context.Background(), "transcribe this", []byte("fake-audio"), "audio/mp3")
	if err != nil {
		t.Fatal(err)
	}
	if text != "transcribed words" {
		t.Fatalf("text = %q", text)
	}
	parts := gotBody.Contents[0].Parts
	if len(parts) != 2 || parts[0].Text != "transcribe this" {
		t.Fatalf("unexpected parts: %+v", parts)
	}
	if parts[1].InlineData == nil || parts[1].InlineData.MimeType != "audio/mp3" || parts[1].InlineData.Data == "" {
		t.Fatalf("inline data missing: %+v", parts[1])
	}
}

func TestTranscribeAudioRejectsEmptyPayload(t *testing.T) {
	client := NewClient(Config{APIKey: "k"})
	if _, err := client.TranscribeAudio(context.Background(), "p", nil, ""); err == nil {
		t.Fatal("expected error for empty audio")
	}
}

func TestExtractTextJoinsParts(t *testing.T) {
	var decoded generateResponse
	raw := `{"candidates":[{"content":{"parts":[{"text":"one "},{"text":"two"}]}}]}`
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		t.Fatal(err)
	}
	if got := extractText(decoded); got != "one two" {
		t.Fatalf("extractText = %q", got)
	}
}
