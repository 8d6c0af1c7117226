package main

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"sparkpress/internal/pipeline"
)

func newStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Summarize published posts",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.rawConfig()
			if err != nil {
				return err
			}
			stats, err := pipeline.CollectStats(cfg.ContentDir)
			if err != nil {
				return fmt.Errorf("collect stats: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Published posts: %d\n", stats.Total)
			if stats.Total == 0 {
				return nil
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, renderCountTable("Category", stats.ByCategory))
			fmt.Fprintln(out)
			fmt.Fprintln(out, renderCountTable("Language", stats.ByLanguage))
			return nil
		},
	}
}

func renderCountTable(label string, counts map[string]int) string {
	keys := make([]string, 0, len(counts))
	for key := range counts {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	rows := make([][]string, 0, len(keys))
	for _, key := range keys {
		rows = append(rows, []string{key, strconv.Itoa(counts[key])})
	}
	return renderTable([]string{label, "Posts"}, rows, []columnAlignment{alignLeft, alignRight})
}
