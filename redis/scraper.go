package redis

import (
	"context"
	"encoding/json"
	"slices"

	"github.com/fwojciec/scout"
	"github.com/fwojciec/scout/crawl"
)

var (
	_ scout.JobScraper    = (*JobScraper)(nil)
	_ scout.CourseScraper = (*CourseScraper)(nil)
)

// JobScraper caches single-query job results. Any cache failure falls
// through to the wrapped scraper. Batch scrapes are not cached.
type JobScraper struct {
	next scout.JobScraper
	cache
}

// NewJobScraper wraps next with a Redis cache.
func NewJobScraper(next scout.JobScraper, client Cmdable, opts ...Option) *JobScraper {
	return &JobScraper{next: next, cache: newCache(client, opts)}
}

func (s *JobScraper) ScrapeJobs(ctx context.Context, query string, limit int) ([]*scout.ScrapedJob, error) {
	key := cacheKey("jobs", query, limit)
	var jobs []*scout.ScrapedJob
	if s.load(ctx, key, &jobs) {
		return jobs, nil
	}

	jobs, err := s.next.ScrapeJobs(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	s.store(ctx, key, jobs, slices.ContainsFunc(jobs, func(j *scout.ScrapedJob) bool {
		return j.Source == crawl.FallbackSource
	}))
	return jobs, nil
}

func (s *JobScraper) BatchScrapeJobs(ctx context.Context, queries []string, limitPerQuery int) ([]*scout.ScrapedJob, error) {
	return s.next.BatchScrapeJobs(ctx, queries, limitPerQuery)
}

// CourseScraper caches single-query course results.
type CourseScraper struct {
	next scout.CourseScraper
	cache
}

// NewCourseScraper wraps next with a Redis cache.
func NewCourseScraper(next scout.CourseScraper, client Cmdable, opts ...Option) *CourseScraper {
	return &CourseScraper{next: next, cache: newCache(client, opts)}
}

func (s *CourseScraper) ScrapeCourses(ctx context.Context, query string, limit int) ([]*scout.ScrapedCourse, error) {
	key := cacheKey("courses", query, limit)
	var courses []*scout.ScrapedCourse
	if s.load(ctx, key, &courses) {
		return courses, nil
	}

	courses, err := s.next.ScrapeCourses(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	s.store(ctx, key, courses, slices.ContainsFunc(courses, func(c *scout.ScrapedCourse) bool {
		return c.Source == crawl.FallbackSource
	}))
	return courses, nil
}

func (s *CourseScraper) BatchScrapeCourses(ctx context.Context, queries []string, limitPerQuery int) ([]*scout.ScrapedCourse, error) {
	return s.next.BatchScrapeCourses(ctx, queries, limitPerQuery)
}

// load reports whether key held a decodable value.
func (c cache) load(ctx context.Context, key string, v any) bool {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(data, v) == nil
}

// store caches v under key. Results with fallback records use the
// fallback TTL.
func (c cache) store(ctx context.Context, key string, v any, fallback bool) {
	ttl := c.ttl
	if fallback {
		ttl = c.fallbackTTL
	}
	if ttl <= 0 {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, key, data, ttl).Err()
}
