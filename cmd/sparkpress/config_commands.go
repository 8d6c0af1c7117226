package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"sparkpress/internal/config"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}
	configCmd.AddCommand(newConfigInitCommand())
	configCmd.AddCommand(newConfigShowCommand(ctx))
	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a sample configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(targetPath)
			if target == "" {
				defaultPath, err := config.DefaultConfigPath()
				if err != nil {
					return fmt.Errorf("determine default config path: %w", err)
				}
				target = defaultPath
			}

			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return fmt.Errorf("create config directory: %w", err)
			}
			if overwrite {
				if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
					return fmt.Errorf("remove existing config: %w", err)
				}
			}
			if err := config.WriteSample(target); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
			fmt.Fprintln(out, "Set gemini api_key (or export GEMINI_API_KEY) before processing videos.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing configuration if present")
	return cmd
}

func newConfigShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if ctx.configFlag != nil {
				path = strings.TrimSpace(*ctx.configFlag)
			}
			cfg, resolved, exists, err := config.LoadRaw(path)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config path: %s", resolved)
			if !exists {
				fmt.Fprint(out, " (not found, defaults in effect)")
			}
			fmt.Fprintln(out)

			key := "(unset)"
			if cfg.GeminiAPIKey != "" {
				key = "(set)"
			}
			rows := [][]string{
				{"content_dir", cfg.ContentDir},
				{"thumbnails_dir", cfg.ThumbnailsDir},
				{"log_dir", cfg.LogDir},
				{"gemini.api_key", key},
				{"gemini.model", cfg.GeminiModel},
				{"gemini.timeout_seconds", fmt.Sprintf("%d", cfg.GeminiTimeoutSeconds)},
				{"content.author", cfg.Author},
				{"content.category", cfg.Category},
				{"content.preferred_languages", strings.Join(cfg.PreferredLanguages, ", ")},
				{"batch.delay_seconds", fmt.Sprintf("%g", cfg.BatchDelaySeconds)},
				{"logging.format", cfg.LogFormat},
				{"logging.level", cfg.LogLevel},
			}
			fmt.Fprintln(out, renderTable([]string{"Setting", "Value"}, rows, []columnAlignment{alignLeft, alignLeft}))
			return nil
		},
	}
}
