package transcript

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sparkpress/internal/services"
	"sparkpress/internal/subtitles"
	"sparkpress/internal/videoref"
)

type fakeCaptions struct {
	tracks    []subtitles.Track
	listErr   error
	segments  []subtitles.Segment
	fetchErr  error
	fetchedID string
}

func (f *fakeCaptions) ListTracks(ctx context.Context, videoID string) ([]subtitles.Track, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.tracks, nil
}

func (f *fakeCaptions) FetchTrack(ctx context.Context, videoID string, track subtitles.Track) ([]subtitles.Segment, error) {
	f.fetchedID = videoID
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.segments, nil
}

type fakeDownloader struct {
	payload []byte
	err     error
	dest    string
}

func (f *fakeDownloader) DownloadAudio(ctx context.Context, videoURL, dest string) error {
	f.dest = dest
	if f.err != nil {
		return f.err
	}
	return os.WriteFile(dest, f.payload, 0o644)
}

type fakeTranscriber struct {
	text string
	err  error
	got  []byte
}

func (f *fakeTranscriber) TranscribeAudio(ctx context.Context, prompt string, audio []byte, mimeType string) (string, error) {
	f.got = audio
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

func testRef() videoref.Reference {
	return videoref.Reference{ID: "AbCdEfGhIjK", URL: "https://www.youtube.com/watch?v=AbCdEfGhIjK"}
}

func TestAcquireFromSubtitles(t *testing.T) {
	captions := &fakeCaptions{
		tracks:   []subtitles.Track{{Language: "en", Auto: true}},
		segments: []subtitles.Segment{{Text: "hello"}, {Text: "world"}},
	}
	acq := NewAcquirer(captions, nil, nil, []string{"en"}, t.TempDir(), nil)

	result, err := acq.Acquire(context.Background(), testRef(), "en")
	if err != nil {
		t.Fatal(err)
	}
	if result.Source != SourceSubtitle || result.Text != "hello world" || result.Language != "en" {
		t.Fatalf("result = %+v", result)
	}
}

func TestAcquireFallsBackToAudio(t *testing.T) {
	captions := &fakeCaptions{listErr: subtitles.ErrDisabled}
	downloader := &fakeDownloader{payload: []byte("audio-bytes")}
	transcriber := &fakeTranscriber{text: "spoken words from audio"}
	workDir := t.TempDir()
	acq := NewAcquirer(captions, downloader, transcriber, nil, workDir, nil)

	result, err := acq.Acquire(context.Background(), testRef(), "en")
	if err != nil {
		t.Fatal(err)
	}
	if result.Source != SourceAudio || result.Text != "spoken words from audio" {
		t.Fatalf("result = %+v", result)
	}
	if string(transcriber.got) != "audio-bytes" {
		t.Fatalf("transcriber received %q", transcriber.got)
	}
	// Temp audio file is removed after the attempt.
	if _, err := os.Stat(downloader.dest); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("temp audio not cleaned up: %v", err)
	}
	if filepath.Dir(downloader.dest) != workDir {
		t.Fatalf("audio written outside work dir: %s", downloader.dest)
	}
}

func TestAcquireCleansTempFileOnTranscribeFailure(t *testing.T) {
	captions := &fakeCaptions{listErr: subtitles.ErrNoTranscript}
	downloader := &fakeDownloader{payload: []byte("audio-bytes")}
	transcriber := &fakeTranscriber{err: errors.New("api unavailable")}
	acq := NewAcquirer(captions, downloader, transcriber, nil, t.TempDir(), nil)

	_, err := acq.Acquire(context.Background(), testRef(), "en")
	if !errors.Is(err, services.ErrAcquisition) {
		t.Fatalf("expected acquisition error, got %v", err)
	}
	if _, statErr := os.Stat(downloader.dest); !errors.Is(statErr, os.ErrNotExist) {
		t.Fatal("temp audio not cleaned up after failure")
	}
}

func TestAcquireBothPathsFailNamesBothStages(t *testing.T) {
	captions := &fakeCaptions{listErr: subtitles.ErrDisabled}
	downloader := &fakeDownloader{err: errors.New("download refused")}
	acq := NewAcquirer(captions, downloader, &fakeTranscriber{}, nil, t.TempDir(), nil)

	_, err := acq.Acquire(context.Background(), testRef(), "en")
	if !errors.Is(err, services.ErrAcquisition) {
		t.Fatalf("expected acquisition error, got %v", err)
	}
	msg := err.Error()
	if !strings.Contains(msg, "subtitles:") || !strings.Contains(msg, "audio:") {
		t.Fatalf("error must name both stages: %s", msg)
	}
}

func TestAcquireEmptyTranscriptionIsError(t *testing.T) {
	captions := &fakeCaptions{listErr: subtitles.ErrDisabled}
	downloader := &fakeDownloader{payload: []byte("audio")}
	transcriber := &fakeTranscriber{text: "   "}
	acq := NewAcquirer(captions, downloader, transcriber, nil, t.TempDir(), nil)

	_, err := acq.Acquire(context.Background(), testRef(), "en")
	if err == nil || !strings.Contains(err.Error(), "no text") {
		t.Fatalf("expected empty transcription error, got %v", err)
	}
}

func TestAcquireEmptyJoinedCaptionsFallsThrough(t *testing.T) {
	captions := &fakeCaptions{
		tracks:   []subtitles.Track{{Language: "en"}},
		segments: []subtitles.Segment{{Text: "   "}},
	}
	downloader := &fakeDownloader{payload: []byte("audio")}
	transcriber := &fakeTranscriber{text: "recovered"}
	acq := NewAcquirer(captions, downloader, transcriber, nil, t.TempDir(), nil)

	result, err := acq.Acquire(context.Background(), testRef(), "en")
	if err != nil {
		t.Fatal(err)
	}
	if result.Source != SourceAudio || result.Text != "recovered" {
		t.Fatalf("result = %+v", result)
	}
}

func TestAcquireAudioPathUnconfigured(t *testing.T) {
	captions := &fakeCaptions{listErr: subtitles.ErrDisabled}
	acq := NewAcquirer(captions, nil, nil, nil, t.TempDir(), nil)
	_, err := acq.Acquire(context.Background(), testRef(), "en")
	if !errors.Is(err, services.ErrAcquisition) {
		t.Fatalf("expected acquisition error, got %v", err)
	}
}
