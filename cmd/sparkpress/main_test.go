package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sparkpress/internal/config"
	"sparkpress/internal/postindex"
	"sparkpress/internal/testsupport"
)

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	if configPath != "" {
		args = append([]string{"--config", configPath}, args...)
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, cfg *config.Config) string {
	t.Helper()
	content := fmt.Sprintf(`[paths]
content_dir = %q
thumbnails_dir = %q
log_dir = %q

[gemini]
api_key = %q
`,
		cfg.ContentDir,
		cfg.ThumbnailsDir,
		cfg.LogDir,
		cfg.GeminiAPIKey,
	)
	path := filepath.Join(testsupport.BaseDir(cfg), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q, got:\n%s", needle, haystack)
	}
}

func TestSingleCommandShape(t *testing.T) {
	root := newRootCommand()
	cmd, _, err := root.Find([]string{"single"})
	if err != nil || cmd.Name() != "single" {
		t.Fatalf("single command not registered: %v", err)
	}
	alias, _, err := root.Find([]string{"process"})
	if err != nil || alias != cmd {
		t.Fatalf("process alias does not resolve to the single command: %v", err)
	}
}

func TestConfigInitCommand(t *testing.T) {
	target := filepath.Join(t.TempDir(), "nested", "config.toml")

	out, _, err := runCLI(t, []string{"config", "init", "--path", target}, "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	// A second init without --overwrite must refuse.
	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, ""); err == nil {
		t.Fatal("expected error when config already exists")
	}
	if _, _, err := runCLI(t, []string{"config", "init", "--path", target, "--overwrite"}, ""); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}
}

func TestConfigShowCommand(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithGeminiKey("sk-secret-xyz"))
	configPath := writeTestConfig(t, cfg)

	out, _, err := runCLI(t, []string{"config", "show"}, configPath)
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, out, "Config path: "+configPath)
	requireContains(t, out, "gemini.model")
	requireContains(t, out, "(set)")
	if strings.Contains(out, cfg.GeminiAPIKey) {
		t.Fatal("config show must not print the API key")
	}
}

func TestStatsCommand(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	configPath := writeTestConfig(t, cfg)
	testsupport.WritePost(t, cfg.ContentDir, testsupport.SamplePost("AbCdEfGhIjK"))

	out, _, err := runCLI(t, []string{"stats"}, configPath)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	requireContains(t, out, "Published posts: 1")
	requireContains(t, out, "Tutorial")
}

func TestValidateCommandReportsMissingCredential(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	cfg := testsupport.NewConfig(t, testsupport.WithGeminiKey(""), testsupport.WithStubbedBinaries())
	configPath := writeTestConfig(t, cfg)

	out, _, err := runCLI(t, []string{"validate"}, configPath)
	if err == nil {
		t.Fatal("expected validate to fail without a Gemini key")
	}
	requireContains(t, out, "ISSUE")
}

func TestValidateCommandCleanEnvironment(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedBinaries())
	configPath := writeTestConfig(t, cfg)
	testsupport.WritePost(t, cfg.ContentDir, testsupport.SamplePost("AbCdEfGhIjK"))

	out, _, err := runCLI(t, []string{"validate"}, configPath)
	if err != nil {
		t.Fatalf("validate: %v\n%s", err, out)
	}
	requireContains(t, out, "Everything checks out")
}

func TestValidateCommandWarnsOnStaleIndexEntry(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedBinaries())
	configPath := writeTestConfig(t, cfg)

	index, err := postindex.Open(filepath.Join(cfg.LogDir, "posts.db"))
	if err != nil {
		t.Fatalf("postindex.Open: %v", err)
	}
	rec := postindex.Record{VideoID: "AbCdEfGhIjK", Filename: "2025-01-01-gone.md"}
	if err := index.Record(context.Background(), rec); err != nil {
		t.Fatalf("record: %v", err)
	}
	index.Close()

	out, _, err := runCLI(t, []string{"validate"}, configPath)
	if err != nil {
		t.Fatalf("stale index entries must warn, not fail: %v\n%s", err, out)
	}
	requireContains(t, out, "WARNING")
	requireContains(t, out, "2025-01-01-gone.md")
}

func TestValidateCommandFlagsBadFrontMatter(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedBinaries())
	configPath := writeTestConfig(t, cfg)

	broken := filepath.Join(cfg.ContentDir, "2025-03-01-broken.md")
	if err := os.WriteFile(broken, []byte("no front matter here\n"), 0o644); err != nil {
		t.Fatalf("write broken post: %v", err)
	}

	out, _, err := runCLI(t, []string{"validate"}, configPath)
	if err == nil {
		t.Fatal("expected validate to fail on a broken post")
	}
	requireContains(t, out, "2025-03-01-broken.md")
}
