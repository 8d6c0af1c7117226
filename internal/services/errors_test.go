package services

import (
	"errors"
	"testing"
)

func TestWrapTagsMarker(t *testing.T) {
	base := errors.New("boom")
	err := Wrap(ErrAcquisition, "transcript", "fetch subtitles", "no tracks", base)
	if !errors.Is(err, ErrAcquisition) {
		t.Fatalf("expected acquisition marker, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped cause, got %v", err)
	}
	want := "transcript acquisition error: transcript: fetch subtitles: no tracks: boom"
	if err.Error() != want {
		t.Fatalf("unexpected message:\n got %q\nwant %q", err.Error(), want)
	}
}

func TestWrapNilMarkerDefaultsTransient(t *testing.T) {
	err := Wrap(nil, "publish", "", "", nil)
	if !errors.Is(err, ErrTransient) {
		t.Fatalf("expected transient marker, got %v", err)
	}
}

func TestWrapEmptyDetail(t *testing.T) {
	err := Wrap(ErrPublication, "", "", "", nil)
	if err.Error() != "publication error: service failure" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestWrapMarkersDistinguishable(t *testing.T) {
	degraded := Wrap(ErrGeneration, "generate", "title", "fallback used", nil)
	if !errors.Is(degraded, ErrGeneration) {
		t.Fatalf("expected generation marker, got %v", degraded)
	}
	if errors.Is(degraded, ErrAcquisition) {
		t.Fatalf("markers must not overlap: %v", degraded)
	}
}
