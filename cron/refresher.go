// Package cron keeps stored listings fresh by re-running batch scrapes on a
// robfig/cron schedule.
package cron

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/fwojciec/scout"
	"github.com/robfig/cron/v3"
)

// DefaultLimit is the per-query limit used for scheduled scrapes.
const DefaultLimit = 10

// Refresher scrapes a fixed set of queries on a schedule and saves the
// results. Jobs and courses are each optional; a side runs only when both
// its scraper and its store are set.
type Refresher struct {
	Jobs        scout.JobScraper
	JobStore    scout.JobService
	Courses     scout.CourseScraper
	CourseStore scout.CourseService

	Queries []string

	// Limit defaults to DefaultLimit.
	Limit int

	Logger *slog.Logger

	cron    *cron.Cron
	startup sync.WaitGroup
}

// Refresh runs one batch scrape per configured side and saves the results.
// A failure on one side does not stop the other.
func (r *Refresher) Refresh(ctx context.Context) error {
	if len(r.Queries) == 0 {
		return nil
	}

	var errs []error
	if r.Jobs != nil && r.JobStore != nil {
		jobs, err := r.Jobs.BatchScrapeJobs(ctx, r.Queries, r.limit())
		if err == nil {
			err = r.JobStore.CreateJobs(ctx, jobs)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("refresh jobs: %w", err))
		} else {
			r.logger().Info("refreshed jobs", "queries", len(r.Queries), "count", len(jobs))
		}
	}
	if r.Courses != nil && r.CourseStore != nil {
		courses, err := r.Courses.BatchScrapeCourses(ctx, r.Queries, r.limit())
		if err == nil {
			err = r.CourseStore.CreateCourses(ctx, courses)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("refresh courses: %w", err))
		} else {
			r.logger().Info("refreshed courses", "queries", len(r.Queries), "count", len(courses))
		}
	}
	return errors.Join(errs...)
}

// Start schedules Refresh with a standard cron spec (or a descriptor such
// as "@every 6h") and also runs it once immediately. A tick that fires
// while a refresh is still running is skipped. ctx is passed to every run.
func (r *Refresher) Start(ctx context.Context, spec string) error {
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return scout.Errorf(scout.EINVALID, "invalid refresh schedule %q: %v", spec, err)
	}

	logger := cronLogger{r.logger()}
	job := cron.NewChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)).Then(cron.FuncJob(func() {
		if err := r.Refresh(ctx); err != nil {
			r.logger().Error("scheduled refresh failed", "err", err)
		}
	}))

	r.cron = cron.New(cron.WithLogger(logger))
	r.cron.Schedule(schedule, job)
	r.cron.Start()
	r.logger().Info("refresh scheduled", "spec", spec, "queries", len(r.Queries))

	r.startup.Go(job.Run)
	return nil
}

// Stop stops the schedule. The returned context is done once any running
// refresh, including the one started by Start, has finished.
func (r *Refresher) Stop() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	if r.cron == nil {
		cancel()
		return ctx
	}
	scheduled := r.cron.Stop()
	go func() {
		defer cancel()
		r.startup.Wait()
		<-scheduled.Done()
	}()
	return ctx
}

func (r *Refresher) limit() int {
	if r.Limit <= 0 {
		return DefaultLimit
	}
	return r.Limit
}

func (r *Refresher) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return r.Logger
}

// cronLogger adapts slog to cron.Logger.
type cronLogger struct {
	l *slog.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...any) {
	c.l.Debug(msg, keysAndValues...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...any) {
	c.l.Error(msg, append(keysAndValues, "err", err)...)
}
