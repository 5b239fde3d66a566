// Package slog provides log/slog decorators for the scout fetch and scrape
// interfaces.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/scout"
)

var (
	_ scout.Fetcher     = (*LoggingFetcher)(nil)
	_ scout.PageFetcher = (*LoggingPageFetcher)(nil)
)

// LoggingFetcher wraps a Fetcher with logging.
type LoggingFetcher struct {
	next   scout.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next scout.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch logs the URL, response size and duration.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		f.logger.Debug("fetch",
			"url", url,
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}

// LoggingPageFetcher wraps a PageFetcher with logging.
type LoggingPageFetcher struct {
	next   scout.PageFetcher
	logger *slog.Logger
}

// NewLoggingPageFetcher creates a new LoggingPageFetcher.
func NewLoggingPageFetcher(next scout.PageFetcher, logger *slog.Logger) *LoggingPageFetcher {
	return &LoggingPageFetcher{next: next, logger: logger}
}

// Scrape logs the URL, HTML and markdown sizes, and duration.
func (f *LoggingPageFetcher) Scrape(ctx context.Context, url string, opts scout.ScrapeOptions) (result *scout.ScrapeResult, err error) {
	defer func(begin time.Time) {
		var htmlBytes, mdBytes int
		if result != nil {
			htmlBytes, mdBytes = len(result.HTML), len(result.Markdown)
		}
		f.logger.Info("scrape",
			"url", url,
			"bytes", htmlBytes,
			"markdown_bytes", mdBytes,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Scrape(ctx, url, opts)
}
