package pipeline

import (
	"bufio"
	"context"
	"io"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// ItemResult pairs one batch entry with its outcome.
type ItemResult struct {
	URL    string
	Result Result
	Err    error
}

// BatchResult aggregates a batch run.
type BatchResult struct {
	Processed int
	Skipped   int
	Failed    int
	Items     []ItemResult
}

// ProcessBatch handles URLs sequentially, pacing successive videos by the
// configured delay so the upstream APIs are not hammered. One video's
// failure is recorded and the batch moves on; only context cancellation
// stops the run early.
func (p *Processor) ProcessBatch(ctx context.Context, urls []string, opts Options) (BatchResult, error) {
	delay := time.Duration(p.cfg.BatchDelaySeconds * float64(time.Second))
	limiter := rate.NewLimiter(rate.Inf, 1)
	if delay > 0 {
		limiter = rate.NewLimiter(rate.Every(delay), 1)
	}

	var batch BatchResult
	for _, url := range urls {
		if err := limiter.Wait(ctx); err != nil {
			return batch, err
		}
		result, err := p.ProcessVideo(ctx, url, opts)
		batch.Items = append(batch.Items, ItemResult{URL: url, Result: result, Err: err})
		switch {
		case err != nil:
			batch.Failed++
			p.log.Error("batch item failed", "url", url, "error", err)
			if ctx.Err() != nil {
				return batch, ctx.Err()
			}
		case result.Skipped:
			batch.Skipped++
		default:
			batch.Processed++
		}
	}
	p.log.Info("batch complete",
		"processed", batch.Processed, "skipped", batch.Skipped, "failed", batch.Failed)
	return batch, nil
}

// ReadURLList parses a batch input file: one URL per line, blank lines and
// '#' comments ignored.
func ReadURLList(r io.Reader) ([]string, error) {
	var urls []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	return urls, scanner.Err()
}
