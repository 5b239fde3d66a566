package main

import (
	"fmt"

	"github.com/fwojciec/scout/cron"
	scouthttp "github.com/fwojciec/scout/http"
	"github.com/fwojciec/scout/redis"
)

// Run executes the serve command. It blocks until the context is canceled.
func (c *ServeCmd) Run(deps *Dependencies) error {
	jobs, courses := deps.JobScraper, deps.CourseScraper

	if c.RedisURL != "" {
		client, err := redis.NewClient(deps.Ctx, c.RedisURL)
		if err != nil {
			fmt.Fprintln(deps.Stderr, "Hint: Check SCOUT_REDIS_URL, e.g. redis://localhost:6379/0")
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		defer client.Close()
		jobs = redis.NewJobScraper(jobs, client, redis.WithTTL(c.CacheTTL))
		courses = redis.NewCourseScraper(courses, client, redis.WithTTL(c.CacheTTL))
	}

	if c.Refresh != "" {
		if len(c.RefreshQuery) == 0 {
			return fmt.Errorf("--refresh requires at least one --refresh-query")
		}
		refresher := &cron.Refresher{
			Jobs:        deps.JobScraper,
			JobStore:    deps.JobStore,
			Courses:     deps.CourseScraper,
			CourseStore: deps.CourseStore,
			Queries:     c.RefreshQuery,
			Logger:      deps.Logger,
		}
		if err := refresher.Start(deps.Ctx, c.Refresh); err != nil {
			return err
		}
		defer func() { <-refresher.Stop().Done() }()
	}

	srv := scouthttp.NewServer(jobs, courses,
		scouthttp.WithJobStore(deps.JobStore),
		scouthttp.WithCourseStore(deps.CourseStore),
		scouthttp.WithLogger(deps.Logger),
	)
	return srv.ListenAndServe(deps.Ctx, c.Addr)
}
