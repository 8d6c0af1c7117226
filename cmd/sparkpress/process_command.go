package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sparkpress/internal/pipeline"
)

func newProcessCommand(ctx *commandContext) *cobra.Command {
	var opts pipeline.Options

	cmd := &cobra.Command{
		Use:     "single URL",
		Aliases: []string{"process"},
		Short:   "Process a single video into a blog post",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			processor, cleanup, err := ctx.buildProcessor()
			if err != nil {
				return err
			}
			defer cleanup()

			result, err := processor.ProcessVideo(cmd.Context(), args[0], opts)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if result.Skipped {
				fmt.Fprintf(out, "Already published: %s\n", result.Path)
				return nil
			}
			fmt.Fprintf(out, "Published %s\n", result.Path)
			fmt.Fprintf(out, "  title:    %s\n", result.Title)
			fmt.Fprintf(out, "  language: %s\n", result.Language)
			fmt.Fprintf(out, "  source:   %s\n", result.Source)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Title, "title", "t", "", "Use this title instead of generating one")
	cmd.Flags().StringVar(&opts.Category, "category", "", "Category for the post")
	cmd.Flags().StringSliceVar(&opts.Tags, "tags", nil, "Tags for the post (comma-separated)")
	cmd.Flags().BoolVarP(&opts.Force, "force", "f", false, "Process even if the video was already published")
	return cmd
}

func newBatchCommand(ctx *commandContext) *cobra.Command {
	var opts pipeline.Options

	cmd := &cobra.Command{
		Use:   "batch FILE",
		Short: "Process every URL listed in a file",
		Long:  "Process every URL listed in FILE, one per line. Blank lines and lines starting with '#' are skipped.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open url list: %w", err)
			}
			urls, err := pipeline.ReadURLList(f)
			f.Close()
			if err != nil {
				return fmt.Errorf("read url list: %w", err)
			}
			if len(urls) == 0 {
				return fmt.Errorf("no URLs found in %s", args[0])
			}

			processor, cleanup, err := ctx.buildProcessor()
			if err != nil {
				return err
			}
			defer cleanup()

			batch, err := processor.ProcessBatch(cmd.Context(), urls, opts)
			out := cmd.OutOrStdout()
			for _, item := range batch.Items {
				switch {
				case item.Err != nil:
					fmt.Fprintf(out, "FAIL  %s: %v\n", item.URL, item.Err)
				case item.Result.Skipped:
					fmt.Fprintf(out, "SKIP  %s -> %s\n", item.URL, item.Result.Path)
				default:
					fmt.Fprintf(out, "OK    %s -> %s\n", item.URL, item.Result.Path)
				}
			}
			fmt.Fprintf(out, "\nProcessed %d, skipped %d, failed %d\n",
				batch.Processed, batch.Skipped, batch.Failed)
			if err != nil {
				return err
			}
			if batch.Failed > 0 {
				return fmt.Errorf("%d of %d videos failed", batch.Failed, len(urls))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Category, "category", "", "Category for all posts in the batch")
	cmd.Flags().StringSliceVar(&opts.Tags, "tags", nil, "Tags for all posts in the batch")
	cmd.Flags().BoolVarP(&opts.Force, "force", "f", false, "Process even already-published videos")
	return cmd
}
