package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// ToolChecker verifies an external dependency is usable.
type ToolChecker interface {
	CheckInstalled(ctx context.Context) error
}

// CredentialChecker verifies an API credential is present.
type CredentialChecker interface {
	Ready() error
}

// EnvironmentReport splits blocking problems from degradations the pipeline
// can work around.
type EnvironmentReport struct {
	Issues   []string
	Warnings []string
}

// OK reports whether processing can start at all.
func (r EnvironmentReport) OK() bool {
	return len(r.Issues) == 0
}

// ValidateEnvironment checks credentials, directories, and external tools
// before any video is touched. A missing yt-dlp is a warning, not an issue:
// videos with captions still process without it.
func ValidateEnvironment(ctx context.Context, credential CredentialChecker, tool ToolChecker, dirs ...string) EnvironmentReport {
	var report EnvironmentReport

	if credential == nil {
		report.Issues = append(report.Issues, "gemini client not configured")
	} else if err := credential.Ready(); err != nil {
		report.Issues = append(report.Issues, fmt.Sprintf("gemini credential: %v", err))
	}

	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		if err := probeWritable(dir); err != nil {
			report.Issues = append(report.Issues, fmt.Sprintf("directory %s not writable: %v", dir, err))
		}
	}

	if tool == nil {
		report.Warnings = append(report.Warnings, "yt-dlp not configured; audio fallback disabled")
	} else if err := tool.CheckInstalled(ctx); err != nil {
		report.Warnings = append(report.Warnings, fmt.Sprintf("yt-dlp unavailable, audio fallback disabled: %v", err))
	}

	return report
}

func probeWritable(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	probe := filepath.Join(dir, ".write-probe")
	if err := os.WriteFile(probe, nil, 0o644); err != nil {
		return err
	}
	return os.Remove(probe)
}
