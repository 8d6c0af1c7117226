package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidReference marks URLs that do not resolve to a video ID.
	ErrInvalidReference = errors.New("invalid video reference")
	// ErrAcquisition marks transcript acquisition failures after every path
	// has been exhausted.
	ErrAcquisition = errors.New("transcript acquisition error")
	// ErrGeneration marks content-field degradation. It is logged, never
	// fatal: every generator carries its own fallback.
	ErrGeneration = errors.New("generation degraded")
	// ErrPublication marks filename resolution or write failures.
	ErrPublication = errors.New("publication error")
	// ErrConfiguration marks missing credentials or unusable settings,
	// raised at construction rather than per video.
	ErrConfiguration = errors.New("configuration error")
	// ErrExternalTool marks failures of external binaries such as yt-dlp.
	ErrExternalTool = errors.New("external tool error")
	ErrNotFound     = errors.New("not found")
	ErrTimeout      = errors.New("timeout")
	ErrTransient    = errors.New("transient failure")
)

// Wrap builds an error message that includes pipeline context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrTransient
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
