package ytdlp

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

const (
	// Command is the yt-dlp executable name resolved from PATH.
	Command = "yt-dlp"

	// AudioFormat is the container yt-dlp transcodes downloaded audio into.
	AudioFormat = "mp3"

	defaultTimeout = 5 * time.Minute
)

// Service wraps the yt-dlp executable for audio-only downloads.
type Service struct {
	binary        string
	timeout       time.Duration
	commandRunner func(ctx context.Context, name string, args ...string) error
}

// NewService creates a yt-dlp service. An empty binary falls back to the
// PATH lookup of "yt-dlp".
func NewService(binary string, timeout time.Duration) *Service {
	if binary == "" {
		binary = Command
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Service{binary: binary, timeout: timeout}
}

// WithCommandRunner sets a custom command runner (for testing).
func (s *Service) WithCommandRunner(runner func(ctx context.Context, name string, args ...string) error) {
	s.commandRunner = runner
}

// CheckInstalled verifies the yt-dlp executable is reachable.
func (s *Service) CheckInstalled(ctx context.Context) error {
	if err := s.run(ctx, s.binary, "--version"); err != nil {
		return fmt.Errorf("yt-dlp not installed or not on PATH: %w", err)
	}
	return nil
}

// DownloadAudio fetches the best audio stream for videoURL and writes it to
// dest as MP3. The parent directory must already exist; yt-dlp appends the
// format extension itself, so dest should end in ".mp3".
func (s *Service) DownloadAudio(ctx context.Context, videoURL, dest string) error {
	if strings.TrimSpace(videoURL) == "" {
		return fmt.Errorf("ytdlp download: video url required")
	}
	if strings.TrimSpace(dest) == "" {
		return fmt.Errorf("ytdlp download: destination path required")
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("ytdlp download: ensure destination dir: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	args := buildAudioArgs(videoURL, dest)
	if err := s.run(ctx, s.binary, args...); err != nil {
		return fmt.Errorf("ytdlp download: %w", err)
	}
	info, err := os.Stat(dest)
	if err != nil {
		return fmt.Errorf("ytdlp download: output missing: %w", err)
	}
	if info.Size() == 0 {
		return fmt.Errorf("ytdlp download: output empty: %s", dest)
	}
	return nil
}

// buildAudioArgs constructs the yt-dlp invocation for an audio-only grab.
func buildAudioArgs(videoURL, dest string) []string {
	// --output takes the path without extension; yt-dlp adds ".mp3".
	template := strings.TrimSuffix(dest, filepath.Ext(dest))
	return []string{
		"--format", "bestaudio/best",
		"--extract-audio",
		"--audio-format", AudioFormat,
		"--audio-quality", "0",
		"--no-playlist",
		"--no-warnings",
		"--quiet",
		"--output", template + ".%(ext)s",
		videoURL,
	}
}

// run executes a command, using the custom runner if set.
func (s *Service) run(ctx context.Context, name string, args ...string) error {
	if s.commandRunner != nil {
		return s.commandRunner(ctx, name, args...)
	}
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return fmt.Errorf("%s: timed out: %w", name, ctx.Err())
		}
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return fmt.Errorf("%s: %w", name, err)
		}
		return fmt.Errorf("%s: %w: %s", name, err, msg)
	}
	return nil
}
