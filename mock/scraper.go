package mock

import (
	"context"

	"github.com/fwojciec/scout"
)

var (
	_ scout.JobScraper    = (*JobScraper)(nil)
	_ scout.CourseScraper = (*CourseScraper)(nil)
)

// JobScraper is a mock implementation of scout.JobScraper.
type JobScraper struct {
	ScrapeJobsFn      func(ctx context.Context, query string, limit int) ([]*scout.ScrapedJob, error)
	BatchScrapeJobsFn func(ctx context.Context, queries []string, limitPerQuery int) ([]*scout.ScrapedJob, error)
}

func (s *JobScraper) ScrapeJobs(ctx context.Context, query string, limit int) ([]*scout.ScrapedJob, error) {
	return s.ScrapeJobsFn(ctx, query, limit)
}

func (s *JobScraper) BatchScrapeJobs(ctx context.Context, queries []string, limitPerQuery int) ([]*scout.ScrapedJob, error) {
	return s.BatchScrapeJobsFn(ctx, queries, limitPerQuery)
}

// CourseScraper is a mock implementation of scout.CourseScraper.
type CourseScraper struct {
	ScrapeCoursesFn      func(ctx context.Context, query string, limit int) ([]*scout.ScrapedCourse, error)
	BatchScrapeCoursesFn func(ctx context.Context, queries []string, limitPerQuery int) ([]*scout.ScrapedCourse, error)
}

func (s *CourseScraper) ScrapeCourses(ctx context.Context, query string, limit int) ([]*scout.ScrapedCourse, error) {
	return s.ScrapeCoursesFn(ctx, query, limit)
}

func (s *CourseScraper) BatchScrapeCourses(ctx context.Context, queries []string, limitPerQuery int) ([]*scout.ScrapedCourse, error) {
	return s.BatchScrapeCoursesFn(ctx, queries, limitPerQuery)
}
