// Package firecrawl provides a scout.PageFetcher backed by the Firecrawl
// scrape API, which renders pages remotely and returns HTML and markdown.
package firecrawl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/scout"
)

// DefaultBaseURL is the Firecrawl API endpoint.
const DefaultBaseURL = "https://api.firecrawl.dev"

// DefaultTimeout bounds a single scrape request, including remote rendering.
const DefaultTimeout = 60 * time.Second

// maxErrorBody caps how much of an error response is kept in the error message.
const maxErrorBody = 512

var _ scout.PageFetcher = (*Client)(nil)

// Client calls the Firecrawl scrape endpoint.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
	timeout time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides DefaultBaseURL.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithTimeout sets the request timeout. Defaults to DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithHTTPClient replaces the underlying HTTP client. Its Timeout is left as is.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.client = hc
	}
}

// NewClient creates a Client authenticating with apiKey.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.client == nil {
		c.client = &http.Client{Timeout: c.timeout}
	}
	return c
}

type scrapeRequest struct {
	URL             string   `json:"url"`
	Formats         []string `json:"formats"`
	IncludeTags     []string `json:"includeTags,omitempty"`
	ExcludeTags     []string `json:"excludeTags,omitempty"`
	WaitFor         int64    `json:"waitFor,omitempty"`
	OnlyMainContent bool     `json:"onlyMainContent"`
}

type scrapeResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Data    struct {
		HTML     string `json:"html"`
		Markdown string `json:"markdown"`
	} `json:"data"`
}

// Scrape asks Firecrawl to render url and returns its HTML and markdown.
// A non-200 status or an unsuccessful scrape is returned as an error.
func (c *Client) Scrape(ctx context.Context, url string, opts scout.ScrapeOptions) (*scout.ScrapeResult, error) {
	body, err := json.Marshal(scrapeRequest{
		URL:             url,
		Formats:         []string{"html", "markdown"},
		IncludeTags:     opts.IncludeTags,
		ExcludeTags:     opts.ExcludeTags,
		WaitFor:         opts.WaitFor.Milliseconds(),
		OnlyMainContent: opts.OnlyMainContent,
	})
	if err != nil {
		return nil, fmt.Errorf("encode scrape request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/scrape", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("firecrawl: HTTP %d for %s: %s", resp.StatusCode, url, strings.TrimSpace(string(msg)))
	}

	var out scrapeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode scrape response: %w", err)
	}
	if !out.Success {
		if out.Error == "" {
			out.Error = "unsuccessful scrape"
		}
		return nil, fmt.Errorf("firecrawl: %s for %s", out.Error, url)
	}

	return &scout.ScrapeResult{HTML: out.Data.HTML, Markdown: out.Data.Markdown}, nil
}
