package crawl

import (
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/scout"
)

// QueryPlaceholder marks where the search term goes in a Site's SearchURL.
const QueryPlaceholder = "{query}"

// Site is a listing site searched by the scraper.
type Site struct {
	Name      string
	SearchURL string
}

// URL returns the search URL for query.
func (s Site) URL(query string) string {
	return strings.ReplaceAll(s.SearchURL, QueryPlaceholder, url.QueryEscape(query))
}

// DefaultJobSites returns the job sites searched when none are configured.
func DefaultJobSites() []Site {
	return []Site{
		{Name: "Indeed", SearchURL: "https://www.indeed.com/jobs?q={query}"},
		{Name: "LinkedIn", SearchURL: "https://www.linkedin.com/jobs/search/?keywords={query}"},
		{Name: "Glassdoor", SearchURL: "https://www.glassdoor.com/Job/jobs.htm?sc.keyword={query}"},
	}
}

// DefaultCourseSites returns the course sites searched when none are configured.
func DefaultCourseSites() []Site {
	return []Site{
		{Name: "Coursera", SearchURL: "https://www.coursera.org/search?query={query}"},
		{Name: "Udemy", SearchURL: "https://www.udemy.com/courses/search/?q={query}"},
		{Name: "edX", SearchURL: "https://www.edx.org/search?q={query}"},
	}
}

// DefaultSettleDelay is how long a page is given to render before capture.
const DefaultSettleDelay = 2 * time.Second

// DefaultScrapeOptions returns the fetch options used for listing pages.
func DefaultScrapeOptions() scout.ScrapeOptions {
	return scout.ScrapeOptions{
		IncludeTags: []string{"h1", "h2", "h3", "p", "div", "span"},
		ExcludeTags: []string{"script", "style", "nav", "footer"},
		WaitFor:     DefaultSettleDelay,
	}
}
