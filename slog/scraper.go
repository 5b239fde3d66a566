package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/scout"
)

var (
	_ scout.JobScraper    = (*LoggingJobScraper)(nil)
	_ scout.CourseScraper = (*LoggingCourseScraper)(nil)
)

// LoggingJobScraper wraps a JobScraper with logging.
type LoggingJobScraper struct {
	next   scout.JobScraper
	logger *slog.Logger
}

// NewLoggingJobScraper creates a new LoggingJobScraper.
func NewLoggingJobScraper(next scout.JobScraper, logger *slog.Logger) *LoggingJobScraper {
	return &LoggingJobScraper{next: next, logger: logger}
}

func (s *LoggingJobScraper) ScrapeJobs(ctx context.Context, query string, limit int) (jobs []*scout.ScrapedJob, err error) {
	defer func(begin time.Time) {
		s.logger.Info("scrape jobs",
			"query", query,
			"limit", limit,
			"count", len(jobs),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.ScrapeJobs(ctx, query, limit)
}

func (s *LoggingJobScraper) BatchScrapeJobs(ctx context.Context, queries []string, limitPerQuery int) (jobs []*scout.ScrapedJob, err error) {
	defer func(begin time.Time) {
		s.logger.Info("batch scrape jobs",
			"queries", len(queries),
			"limit", limitPerQuery,
			"count", len(jobs),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.BatchScrapeJobs(ctx, queries, limitPerQuery)
}

// LoggingCourseScraper wraps a CourseScraper with logging.
type LoggingCourseScraper struct {
	next   scout.CourseScraper
	logger *slog.Logger
}

// NewLoggingCourseScraper creates a new LoggingCourseScraper.
func NewLoggingCourseScraper(next scout.CourseScraper, logger *slog.Logger) *LoggingCourseScraper {
	return &LoggingCourseScraper{next: next, logger: logger}
}

func (s *LoggingCourseScraper) ScrapeCourses(ctx context.Context, query string, limit int) (courses []*scout.ScrapedCourse, err error) {
	defer func(begin time.Time) {
		s.logger.Info("scrape courses",
			"query", query,
			"limit", limit,
			"count", len(courses),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.ScrapeCourses(ctx, query, limit)
}

func (s *LoggingCourseScraper) BatchScrapeCourses(ctx context.Context, queries []string, limitPerQuery int) (courses []*scout.ScrapedCourse, err error) {
	defer func(begin time.Time) {
		s.logger.Info("batch scrape courses",
			"queries", len(queries),
			"limit", limitPerQuery,
			"count", len(courses),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.BatchScrapeCourses(ctx, queries, limitPerQuery)
}
