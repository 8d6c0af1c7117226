package videoref

import (
	"errors"
	"testing"

	"sparkpress/internal/services"
)

func TestParseRecognizedShapes(t *testing.T) {
	const id = "dQw4w9WgXcQ"
	cases := []struct {
		name string
		url  string
	}{
		{"watch", "https://www.youtube.com/watch?v=dQw4w9WgXcQ"},
		{"watch extra params", "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s&list=PL1"},
		{"watch no scheme host prefix", "https://youtube.com/watch?v=dQw4w9WgXcQ"},
		{"short", "https://youtu.be/dQw4w9WgXcQ"},
		{"short with query", "https://youtu.be/dQw4w9WgXcQ?t=10"},
		{"embed", "https://www.youtube.com/embed/dQw4w9WgXcQ"},
		{"embed nocookie", "https://www.youtube-nocookie.com/embed/dQw4w9WgXcQ"},
		{"shorts", "https://www.youtube.com/shorts/dQw4w9WgXcQ"},
		{"legacy v path", "https://www.youtube.com/v/dQw4w9WgXcQ"},
		{"mobile", "https://m.youtube.com/watch?v=dQw4w9WgXcQ"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ref, err := Parse(tc.url)
			if err != nil {
				t.Fatalf("Parse(%q): %v", tc.url, err)
			}
			if ref.ID != id {
				t.Fatalf("Parse(%q) ID = %q, want %q", tc.url, ref.ID, id)
			}
			if ref.URL != "https://www.youtube.com/watch?v="+id {
				t.Fatalf("canonical URL = %q", ref.URL)
			}
		})
	}
}

func TestParseRejectsUnrecognized(t *testing.T) {
	cases := []string{
		"",
		"not a url",
		"https://example.com/watch?v=dQw4w9WgXcQ",
		"https://www.youtube.com/watch",
		"https://www.youtube.com/watch?v=tooshort",
		"https://www.youtube.com/watch?v=waytoolongid01",
		"https://youtu.be/",
		"https://www.youtube.com/watch?v=bad!chars@@@",
	}
	for _, raw := range cases {
		if _, err := Parse(raw); !errors.Is(err, services.ErrInvalidReference) {
			t.Errorf("Parse(%q) = %v, want ErrInvalidReference", raw, err)
		}
	}
}

func TestValidID(t *testing.T) {
	if !ValidID("AbCdEfGhIjK") {
		t.Fatal("expected valid")
	}
	if ValidID("AbCdEfGhIj") || ValidID("AbCdEfGhIjKL") || ValidID("AbCdEfGhIj!") {
		t.Fatal("expected invalid")
	}
}
