package transcript

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"sparkpress/internal/logging"
	"sparkpress/internal/services"
	"sparkpress/internal/subtitles"
	"sparkpress/internal/videoref"
)

// Source identifies which path produced a transcript.
type Source string

const (
	SourceSubtitle Source = "subtitle"
	SourceAudio    Source = "audio"
)

// Timeboxes for the two acquisition paths. The caption path is cheap; the
// audio path covers a download plus an AI transcription call.
const (
	subtitleTimeout = 30 * time.Second
	audioTimeout    = 5 * time.Minute
)

const transcribePrompt = "Transcribe this audio accurately. Output only the spoken words as plain text with no timestamps, speaker labels, or commentary."

// Result is the outcome of a successful acquisition.
type Result struct {
	Text     string
	Language string
	Source   Source
}

// AudioDownloader fetches a video's audio stream to a local file.
type AudioDownloader interface {
	DownloadAudio(ctx context.Context, videoURL, dest string) error
}

// AudioTranscriber converts downloaded audio bytes into text.
type AudioTranscriber interface {
	TranscribeAudio(ctx context.Context, prompt string, audio []byte, mimeType string) (string, error)
}

// Acquirer obtains a transcript, preferring captions and falling back to
// audio transcription.
type Acquirer struct {
	captions    subtitles.Service
	downloader  AudioDownloader
	transcriber AudioTranscriber
	preferred   []string
	workDir     string
	log         *slog.Logger
}

// NewAcquirer wires the acquisition chain. workDir holds temporary audio
// files; preferred is the ordered caption language preference list.
func NewAcquirer(captions subtitles.Service, downloader AudioDownloader, transcriber AudioTranscriber, preferred []string, workDir string, logger *slog.Logger) *Acquirer {
	if workDir == "" {
		workDir = os.TempDir()
	}
	return &Acquirer{
		captions:    captions,
		downloader:  downloader,
		transcriber: transcriber,
		preferred:   preferred,
		workDir:     workDir,
		log:         logging.OrNop(logger),
	}
}

// Acquire runs the fallback chain: caption tracks first, audio second. Both
// paths failing yields a single acquisition error naming each stage's cause.
func (a *Acquirer) Acquire(ctx context.Context, ref videoref.Reference, language string) (Result, error) {
	result, subErr := a.fromSubtitles(ctx, ref, language)
	if subErr == nil {
		return result, nil
	}
	if ctx.Err() != nil {
		return Result{}, services.Wrap(services.ErrAcquisition, "transcript", "acquire", ref.ID, ctx.Err())
	}
	a.log.Warn("caption path failed, falling back to audio",
		"video_id", ref.ID, "error", subErr)

	result, audioErr := a.fromAudio(ctx, ref)
	if audioErr == nil {
		return result, nil
	}
	return Result{}, services.Wrap(services.ErrAcquisition, "transcript", "acquire", ref.ID,
		fmt.Errorf("subtitles: %w; audio: %w", subErr, audioErr))
}

func (a *Acquirer) fromSubtitles(ctx context.Context, ref videoref.Reference, language string) (Result, error) {
	ctx, cancel := context.WithTimeout(ctx, subtitleTimeout)
	defer cancel()

	tracks, err := a.captions.ListTracks(ctx, ref.ID)
	if err != nil {
		return Result{}, err
	}
	track, ok := subtitles.SelectTrack(tracks, language, a.preferred)
	if !ok {
		return Result{}, subtitles.ErrNoTranscript
	}
	segments, err := a.captions.FetchTrack(ctx, ref.ID, track)
	if err != nil {
		return Result{}, err
	}
	text := subtitles.JoinSegments(segments)
	if text == "" {
		return Result{}, subtitles.ErrNoTranscript
	}
	a.log.Info("transcript acquired from captions",
		"video_id", ref.ID, "track", track.Language, "auto", track.Auto, "chars", len(text))
	return Result{Text: text, Language: track.Language, Source: SourceSubtitle}, nil
}

func (a *Acquirer) fromAudio(ctx context.Context, ref videoref.Reference) (Result, error) {
	if a.downloader == nil || a.transcriber == nil {
		return Result{}, errors.New("audio path not configured")
	}
	ctx, cancel := context.WithTimeout(ctx, audioTimeout)
	defer cancel()

	audioPath := filepath.Join(a.workDir, uuid.NewString()+".mp3")
	defer os.Remove(audioPath)

	if err := a.downloader.DownloadAudio(ctx, ref.URL, audioPath); err != nil {
		return Result{}, services.Wrap(services.ErrExternalTool, "transcript", "download audio", ref.ID, err)
	}
	audio, err := os.ReadFile(audioPath)
	if err != nil {
		return Result{}, fmt.Errorf("read downloaded audio: %w", err)
	}
	if len(audio) == 0 {
		return Result{}, fmt.Errorf("downloaded audio is empty: %s", audioPath)
	}

	text, err := a.transcriber.TranscribeAudio(ctx, transcribePrompt, audio, "audio/mp3")
	if err != nil {
		return Result{}, fmt.Errorf("transcribe audio: %w", err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return Result{}, errors.New("transcription returned no text")
	}
	a.log.Info("transcript acquired from audio",
		"video_id", ref.ID, "audio_bytes", len(audio), "chars", len(text))
	return Result{Text: text, Source: SourceAudio}, nil
}
