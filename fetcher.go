package scout

import (
	"context"
	"time"
)

// Fetcher retrieves raw HTML from URLs.
// Implementations may use browser automation to handle JavaScript-rendered content.
type Fetcher interface {
	// Fetch navigates to the URL and returns the HTML.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources held by the fetcher.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}

// ScrapeOptions controls how a page is fetched and trimmed before extraction.
type ScrapeOptions struct {
	// IncludeTags keeps only elements with these tag names, if set.
	IncludeTags []string

	// ExcludeTags removes elements with these tag names.
	// Exclude is applied before Include, so an excluded element never
	// survives inside an included one.
	ExcludeTags []string

	// WaitFor is how long to let the page settle after load.
	WaitFor time.Duration

	// OnlyMainContent strips navigation, footers and other boilerplate.
	OnlyMainContent bool
}

// ScrapeResult holds the content of a scraped page.
type ScrapeResult struct {
	HTML     string `json:"html"`
	Markdown string `json:"markdown"`
}

// PageFetcher scrapes a page into HTML and markdown.
// Implementations hide whether the page is rendered remotely (Firecrawl)
// or locally (HTTP or browser fetch plus conversion).
type PageFetcher interface {
	// Scrape returns an error if the page could not be retrieved,
	// including when a remote service reports an unsuccessful scrape.
	Scrape(ctx context.Context, url string, opts ScrapeOptions) (*ScrapeResult, error)
}
