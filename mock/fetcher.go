package mock

import (
	"context"

	"github.com/fwojciec/scout"
)

var (
	_ scout.Fetcher     = (*Fetcher)(nil)
	_ scout.PageFetcher = (*PageFetcher)(nil)
)

// Fetcher is a mock implementation of scout.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

// PageFetcher is a mock implementation of scout.PageFetcher.
type PageFetcher struct {
	ScrapeFn func(ctx context.Context, url string, opts scout.ScrapeOptions) (*scout.ScrapeResult, error)
}

func (f *PageFetcher) Scrape(ctx context.Context, url string, opts scout.ScrapeOptions) (*scout.ScrapeResult, error) {
	return f.ScrapeFn(ctx, url, opts)
}
