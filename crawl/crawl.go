// Package crawl provides listing scrape orchestration. It walks a fixed list
// of sites for a search query, extracts records from each fetched page, and
// backfills with synthetic records when live extraction comes up short.
package crawl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/fwojciec/scout"
	"golang.org/x/sync/errgroup"
)

// DefaultMinResults is the live result count below which fallback records
// are added.
const DefaultMinResults = 3

// Ensure Scraper implements the scout scraper interfaces at compile time.
var (
	_ scout.JobScraper    = (*Scraper)(nil)
	_ scout.CourseScraper = (*Scraper)(nil)
)

// Scraper scrapes job and course listings from a fixed set of sites.
// Its fields are configuration and must not be changed once scraping starts.
type Scraper struct {
	Fetcher     scout.PageFetcher
	Jobs        scout.JobExtractor
	Courses     scout.CourseExtractor
	RateLimiter scout.DomainLimiter
	Logger      *slog.Logger

	// JobSites and CourseSites default to DefaultJobSites and DefaultCourseSites.
	JobSites    []Site
	CourseSites []Site

	// Options is passed to every fetch. Nil means DefaultScrapeOptions.
	Options *scout.ScrapeOptions

	// MinResults defaults to DefaultMinResults.
	MinResults int

	// Concurrency > 1 fetches sites in parallel, never more than limit still
	// needs. Results are taken in site order, so the output matches a
	// sequential scrape.
	Concurrency int
}

// ScrapeJobs returns up to limit jobs for query. Site failures are logged
// and skipped; the result is never empty unless limit is zero.
func (s *Scraper) ScrapeJobs(ctx context.Context, query string, limit int) (jobs []*scout.ScrapedJob, err error) {
	query, err = validateInput(query, limit)
	if err != nil {
		return nil, err
	}

	defer func() {
		if r := recover(); r != nil {
			s.logger().Error("job scrape aborted, using fallback", "query", query, "panic", fmt.Sprint(r))
			jobs, err = truncate(FallbackJobs(query), limit), nil
		}
	}()

	if s.Fetcher == nil || s.Jobs == nil {
		s.logger().Error("job scrape unavailable, using fallback", "query", query)
		return truncate(FallbackJobs(query), limit), nil
	}

	found := collect(ctx, s, "job", s.jobSites(), query, limit, s.Jobs.ExtractJob)
	return backfill(found, FallbackJobs(query), limit, s.minResults()), nil
}

// ScrapeCourses returns up to limit courses for query, with the same
// failure and fallback policy as ScrapeJobs.
func (s *Scraper) ScrapeCourses(ctx context.Context, query string, limit int) (courses []*scout.ScrapedCourse, err error) {
	query, err = validateInput(query, limit)
	if err != nil {
		return nil, err
	}

	defer func() {
		if r := recover(); r != nil {
			s.logger().Error("course scrape aborted, using fallback", "query", query, "panic", fmt.Sprint(r))
			courses, err = truncate(FallbackCourses(query), limit), nil
		}
	}()

	if s.Fetcher == nil || s.Courses == nil {
		s.logger().Error("course scrape unavailable, using fallback", "query", query)
		return truncate(FallbackCourses(query), limit), nil
	}

	found := collect(ctx, s, "course", s.courseSites(), query, limit, s.Courses.ExtractCourse)
	return backfill(found, FallbackCourses(query), limit, s.minResults()), nil
}

// BatchScrapeJobs runs ScrapeJobs for each query in order and returns the
// combined jobs, keeping the first job seen for each URL.
func (s *Scraper) BatchScrapeJobs(ctx context.Context, queries []string, limitPerQuery int) ([]*scout.ScrapedJob, error) {
	if limitPerQuery < 0 {
		return nil, scout.Errorf(scout.EINVALID, "limit must not be negative")
	}

	var all []*scout.ScrapedJob
	for _, query := range queries {
		if ctx.Err() != nil {
			break
		}
		jobs, err := s.ScrapeJobs(ctx, query, limitPerQuery)
		if err != nil {
			s.logger().Warn("batch job query failed", "query", query, "err", err)
			continue
		}
		all = append(all, jobs...)
	}
	return dedupeByURL(all, func(j *scout.ScrapedJob) string { return j.URL }), nil
}

// BatchScrapeCourses runs ScrapeCourses for each query in order and returns
// the combined courses, keeping the first course seen for each URL.
func (s *Scraper) BatchScrapeCourses(ctx context.Context, queries []string, limitPerQuery int) ([]*scout.ScrapedCourse, error) {
	if limitPerQuery < 0 {
		return nil, scout.Errorf(scout.EINVALID, "limit must not be negative")
	}

	var all []*scout.ScrapedCourse
	for _, query := range queries {
		if ctx.Err() != nil {
			break
		}
		courses, err := s.ScrapeCourses(ctx, query, limitPerQuery)
		if err != nil {
			s.logger().Warn("batch course query failed", "query", query, "err", err)
			continue
		}
		all = append(all, courses...)
	}
	return dedupeByURL(all, func(c *scout.ScrapedCourse) string { return c.URL }), nil
}

// extractFunc parses page content fetched from a site into a record.
type extractFunc[T any] func(content, sourceURL, siteName string) (T, bool)

// siteResult holds the outcome of scraping one site.
type siteResult[T any] struct {
	site   Site
	url    string
	record T
	ok     bool
	err    error
}

// collect scrapes sites for query and returns up to limit extracted records
// in site order. A failing site never stops the loop.
func collect[T any](ctx context.Context, s *Scraper, kind string, sites []Site, query string, limit int, extract extractFunc[T]) []T {
	var records []T
	accept := func(r siteResult[T]) {
		switch {
		case r.err != nil:
			s.logger().Warn("site scrape failed", "kind", kind, "site", r.site.Name, "url", r.url, "err", r.err)
		case !r.ok:
			s.logger().Info("no listing found", "kind", kind, "site", r.site.Name, "url", r.url)
		default:
			records = append(records, r.record)
		}
	}

	if s.Concurrency <= 1 {
		for _, site := range sites {
			if len(records) >= limit || ctx.Err() != nil {
				break
			}
			accept(scrapeSite(ctx, s, site, query, extract))
		}
		return records
	}

	if limit == 0 {
		return nil
	}

	// Sites are launched only while in-flight fetches could still be needed
	// to reach limit, and results are consumed in site order.
	gctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(gctx)
	g.SetLimit(s.Concurrency)

	results := make([]chan siteResult[T], len(sites))
	next := 0
	for i := range sites {
		for next < len(sites) && next-i < min(s.Concurrency, limit-len(records)) && ctx.Err() == nil {
			ch := make(chan siteResult[T], 1)
			results[next] = ch
			site := sites[next]
			g.Go(func() error {
				ch <- scrapeSite(gctx, s, site, query, extract)
				return nil
			})
			next++
		}
		if next <= i {
			break
		}
		accept(<-results[i])
		if len(records) >= limit {
			break
		}
	}
	cancel()
	_ = g.Wait()
	return records
}

// scrapeSite fetches one site's search page and extracts a record from it.
// A panic inside the fetcher or extractor is reported as an error.
func scrapeSite[T any](ctx context.Context, s *Scraper, site Site, query string, extract extractFunc[T]) (result siteResult[T]) {
	result.site = site
	result.url = site.URL(query)

	defer func() {
		if r := recover(); r != nil {
			result.ok = false
			result.err = fmt.Errorf("panic: %v", r)
		}
	}()

	if s.RateLimiter != nil {
		u, err := url.Parse(result.url)
		if err != nil {
			result.err = fmt.Errorf("invalid site URL: %w", err)
			return result
		}
		if err := s.RateLimiter.Wait(ctx, u.Host); err != nil {
			result.err = err
			return result
		}
	}

	page, err := s.Fetcher.Scrape(ctx, result.url, s.options())
	if err != nil {
		result.err = err
		return result
	}
	if page == nil {
		result.err = errors.New("empty scrape result")
		return result
	}

	content := page.HTML
	if content == "" {
		content = page.Markdown
	}
	result.record, result.ok = extract(content, result.url, site.Name)
	return result
}

// backfill appends fallback records when fewer than threshold live records
// were found, then truncates to limit. Live records always come first.
func backfill[T any](found, fallback []T, limit, threshold int) []T {
	out := found
	if len(found) < threshold {
		for _, f := range fallback {
			if len(out) >= limit {
				break
			}
			out = append(out, f)
		}
	}
	return truncate(out, limit)
}

func truncate[T any](items []T, limit int) []T {
	if len(items) > limit {
		return items[:limit]
	}
	return items
}

// dedupeByURL removes records whose key was already seen, keeping the first.
func dedupeByURL[T any](items []T, key func(T) string) []T {
	seen := make(map[string]bool, len(items))
	out := make([]T, 0, len(items))
	for _, item := range items {
		k := key(item)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, item)
	}
	return out
}

func validateInput(query string, limit int) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", scout.Errorf(scout.EINVALID, "query required")
	}
	if limit < 0 {
		return "", scout.Errorf(scout.EINVALID, "limit must not be negative")
	}
	return query, nil
}

func (s *Scraper) jobSites() []Site {
	if len(s.JobSites) == 0 {
		return DefaultJobSites()
	}
	return s.JobSites
}

func (s *Scraper) courseSites() []Site {
	if len(s.CourseSites) == 0 {
		return DefaultCourseSites()
	}
	return s.CourseSites
}

func (s *Scraper) options() scout.ScrapeOptions {
	if s.Options == nil {
		return DefaultScrapeOptions()
	}
	return *s.Options
}

func (s *Scraper) minResults() int {
	if s.MinResults <= 0 {
		return DefaultMinResults
	}
	return s.MinResults
}

func (s *Scraper) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return s.Logger
}
