package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/scout"
	"github.com/fwojciec/scout/mock"
	scoutslog "github.com/fwojciec/scout/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestLoggingFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("logs fetch with bytes and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				return "<h1>Go Developer</h1>", nil
			},
		}

		fetcher := scoutslog.NewLoggingFetcher(inner, newLogger(&buf))
		html, err := fetcher.Fetch(context.Background(), "https://www.indeed.com/jobs?q=go")

		require.NoError(t, err)
		assert.Equal(t, "<h1>Go Developer</h1>", html)
		output := buf.String()
		assert.Contains(t, output, "level=DEBUG")
		assert.Contains(t, output, "url=\"https://www.indeed.com/jobs?q=go\"")
		assert.Contains(t, output, "bytes=21")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				return "", errors.New("network error")
			},
		}

		fetcher := scoutslog.NewLoggingFetcher(inner, newLogger(&buf))
		_, err := fetcher.Fetch(context.Background(), "https://example.com")

		require.Error(t, err)
		assert.Contains(t, buf.String(), "err=\"network error\"")
	})
}

func TestLoggingFetcher_Close(t *testing.T) {
	t.Parallel()

	closeCalled := false
	inner := &mock.Fetcher{
		CloseFn: func() error {
			closeCalled = true
			return nil
		},
	}

	var buf bytes.Buffer
	err := scoutslog.NewLoggingFetcher(inner, newLogger(&buf)).Close()

	require.NoError(t, err)
	assert.True(t, closeCalled)
}

func TestLoggingPageFetcher_Scrape(t *testing.T) {
	t.Parallel()

	t.Run("logs html and markdown sizes", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.PageFetcher{
			ScrapeFn: func(_ context.Context, _ string, _ scout.ScrapeOptions) (*scout.ScrapeResult, error) {
				return &scout.ScrapeResult{HTML: "<h1>Go</h1>", Markdown: "# Go"}, nil
			},
		}

		f := scoutslog.NewLoggingPageFetcher(inner, newLogger(&buf))
		result, err := f.Scrape(context.Background(), "https://example.com", scout.ScrapeOptions{})

		require.NoError(t, err)
		assert.Equal(t, "# Go", result.Markdown)
		output := buf.String()
		assert.Contains(t, output, "msg=scrape")
		assert.Contains(t, output, "bytes=11")
		assert.Contains(t, output, "markdown_bytes=4")
	})

	t.Run("logs zero sizes on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.PageFetcher{
			ScrapeFn: func(_ context.Context, _ string, _ scout.ScrapeOptions) (*scout.ScrapeResult, error) {
				return nil, errors.New("blocked")
			},
		}

		f := scoutslog.NewLoggingPageFetcher(inner, newLogger(&buf))
		_, err := f.Scrape(context.Background(), "https://example.com", scout.ScrapeOptions{})

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "bytes=0")
		assert.Contains(t, output, "err=blocked")
	})
}
