package main_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fwojciec/scout"
	main "github.com/fwojciec/scout/cmd/scout"
	"github.com/fwojciec/scout/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pageFetcher(got *scout.ScrapeOptions) *mock.PageFetcher {
	return &mock.PageFetcher{
		ScrapeFn: func(_ context.Context, _ string, opts scout.ScrapeOptions) (*scout.ScrapeResult, error) {
			if got != nil {
				*got = opts
			}
			return &scout.ScrapeResult{
				HTML:     "<h1>Senior Go Developer</h1>",
				Markdown: "# Senior Go Developer",
			}, nil
		},
	}
}

func TestFetchCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints markdown", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:         context.Background(),
			Stdout:      stdout,
			Stderr:      &bytes.Buffer{},
			PageFetcher: pageFetcher(nil),
		}

		err := (&main.FetchCmd{URL: "https://example.com/jobs"}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "# Senior Go Developer\n", stdout.String())
	})

	t.Run("prints HTML when asked", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:         context.Background(),
			Stdout:      stdout,
			Stderr:      &bytes.Buffer{},
			PageFetcher: pageFetcher(nil),
		}

		err := (&main.FetchCmd{URL: "https://example.com/jobs", HTML: true}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "<h1>Senior Go Developer</h1>\n", stdout.String())
	})

	t.Run("reports fetch errors", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			PageFetcher: &mock.PageFetcher{
				ScrapeFn: func(_ context.Context, _ string, _ scout.ScrapeOptions) (*scout.ScrapeResult, error) {
					return nil, errors.New("connection refused")
				},
			},
		}

		err := (&main.FetchCmd{URL: "https://example.com/jobs"}).Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error:")
	})
}

func TestMain_Run_ScrapeOptions(t *testing.T) {
	t.Parallel()

	t.Run("main-content flag reaches the page fetcher", func(t *testing.T) {
		t.Parallel()

		var got scout.ScrapeOptions
		m := main.NewMain()
		m.PageFetcher = pageFetcher(&got)
		stdout := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"--main-content", "--wait", "1s", "fetch", "https://example.com/jobs"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.True(t, got.OnlyMainContent)
		assert.Equal(t, time.Second, got.WaitFor)
		assert.Contains(t, stdout.String(), "# Senior Go Developer")
	})

	t.Run("main content is off by default", func(t *testing.T) {
		t.Parallel()

		got := scout.ScrapeOptions{OnlyMainContent: true}
		m := main.NewMain()
		m.PageFetcher = pageFetcher(&got)

		err := m.Run(context.Background(), []string{"fetch", "https://example.com/jobs"}, &bytes.Buffer{}, &bytes.Buffer{})

		require.NoError(t, err)
		assert.False(t, got.OnlyMainContent)
	})

	t.Run("zero rps scrapes without a rate limit", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		m.PageFetcher = pageFetcher(nil)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		stdout := &bytes.Buffer{}

		err := m.Run(ctx, []string{"--rps", "0", "jobs", "go", "rust", "--json"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		require.NoError(t, ctx.Err())
		assert.Contains(t, stdout.String(), "Senior Go Developer")
		assert.NotContains(t, stdout.String(), "rust Engineer", "second query should scrape live sites, not fall back")
	})
}
