package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"sparkpress/internal/pipeline"
	"sparkpress/internal/post"
	"sparkpress/internal/postindex"
	"sparkpress/internal/services/gemini"
)

func newValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the environment and the front matter of published posts",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.rawConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			model := gemini.NewClient(gemini.Config{
				APIKey:         cfg.GeminiAPIKey,
				Model:          cfg.GeminiModel,
				TimeoutSeconds: cfg.GeminiTimeoutSeconds,
			})
			report := pipeline.ValidateEnvironment(cmd.Context(), model, ctx.ytdlpService(),
				cfg.ContentDir, cfg.ThumbnailsDir, cfg.LogDir)

			issues := len(report.Issues)
			for _, issue := range report.Issues {
				fmt.Fprintf(out, "ISSUE    %s\n", issue)
			}
			for _, warning := range report.Warnings {
				fmt.Fprintf(out, "WARNING  %s\n", warning)
			}

			postIssues, err := validatePosts(out, cfg.ContentDir)
			if err != nil {
				return err
			}
			issues += postIssues

			validateIndex(cmd.Context(), out, cfg.LogDir, cfg.ContentDir)

			if issues > 0 {
				return fmt.Errorf("validation found %d issue(s)", issues)
			}
			fmt.Fprintln(out, "Everything checks out")
			return nil
		},
	}
}

// validatePosts re-parses every published document and reports front-matter
// defects. Returns the number of issues found.
func validatePosts(out io.Writer, contentDir string) (int, error) {
	entries, err := os.ReadDir(contentDir)
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("scan content dir: %w", err)
	}

	issues := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		path := filepath.Join(contentDir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(out, "ISSUE    %s: %v\n", entry.Name(), err)
			issues++
			continue
		}
		fields, err := post.ParseFrontMatter(string(data))
		if err != nil {
			fmt.Fprintf(out, "ISSUE    %s: %v\n", entry.Name(), err)
			issues++
			continue
		}
		for _, issue := range post.ValidateFrontMatter(fields) {
			fmt.Fprintf(out, "ISSUE    %s: %s\n", entry.Name(), issue)
			issues++
		}
	}
	return issues, nil
}

// validateIndex cross-checks the published-post index against the content
// directory. Stale entries are warnings only: the publisher evicts them
// lazily on the next duplicate check, and the directory remains the source
// of truth either way.
func validateIndex(ctx context.Context, out io.Writer, logDir, contentDir string) {
	dbPath := filepath.Join(logDir, "posts.db")
	if _, err := os.Stat(dbPath); err != nil {
		return
	}
	index, err := postindex.Open(dbPath)
	if err != nil {
		fmt.Fprintf(out, "WARNING  post index unreadable: %v\n", err)
		return
	}
	defer index.Close()

	records, err := index.All(ctx)
	if err != nil {
		fmt.Fprintf(out, "WARNING  post index scan failed: %v\n", err)
		return
	}
	for _, rec := range records {
		if _, err := os.Stat(filepath.Join(contentDir, rec.Filename)); err != nil {
			fmt.Fprintf(out, "WARNING  index entry %s points to missing file %s\n", rec.VideoID, rec.Filename)
		}
	}
}
