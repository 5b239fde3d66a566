package cron_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fwojciec/scout"
	"github.com/fwojciec/scout/cron"
	"github.com/fwojciec/scout/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefresher_Refresh(t *testing.T) {
	t.Parallel()

	t.Run("scrapes queries and saves both kinds", func(t *testing.T) {
		t.Parallel()

		var gotQueries []string
		var gotLimit int
		var savedJobs []*scout.ScrapedJob
		var savedCourses []*scout.ScrapedCourse
		r := &cron.Refresher{
			Jobs: &mock.JobScraper{
				BatchScrapeJobsFn: func(_ context.Context, queries []string, limit int) ([]*scout.ScrapedJob, error) {
					gotQueries, gotLimit = queries, limit
					return []*scout.ScrapedJob{{Title: "Go Developer", URL: "https://example.com/1"}}, nil
				},
			},
			JobStore: &mock.JobService{
				CreateJobsFn: func(_ context.Context, jobs []*scout.ScrapedJob) error {
					savedJobs = jobs
					return nil
				},
			},
			Courses: &mock.CourseScraper{
				BatchScrapeCoursesFn: func(_ context.Context, _ []string, _ int) ([]*scout.ScrapedCourse, error) {
					return []*scout.ScrapedCourse{{Title: "Go Bootcamp", URL: "https://example.com/c"}}, nil
				},
			},
			CourseStore: &mock.CourseService{
				CreateCoursesFn: func(_ context.Context, courses []*scout.ScrapedCourse) error {
					savedCourses = courses
					return nil
				},
			},
			Queries: []string{"go", "rust"},
		}

		require.NoError(t, r.Refresh(context.Background()))

		assert.Equal(t, []string{"go", "rust"}, gotQueries)
		assert.Equal(t, cron.DefaultLimit, gotLimit)
		assert.Len(t, savedJobs, 1)
		assert.Len(t, savedCourses, 1)
	})

	t.Run("continues with courses when jobs fail", func(t *testing.T) {
		t.Parallel()

		coursesSaved := false
		r := &cron.Refresher{
			Jobs: &mock.JobScraper{
				BatchScrapeJobsFn: func(_ context.Context, _ []string, _ int) ([]*scout.ScrapedJob, error) {
					return nil, errors.New("scrape failed")
				},
			},
			JobStore: &mock.JobService{},
			Courses: &mock.CourseScraper{
				BatchScrapeCoursesFn: func(_ context.Context, _ []string, _ int) ([]*scout.ScrapedCourse, error) {
					return nil, nil
				},
			},
			CourseStore: &mock.CourseService{
				CreateCoursesFn: func(_ context.Context, _ []*scout.ScrapedCourse) error {
					coursesSaved = true
					return nil
				},
			},
			Queries: []string{"go"},
			Limit:   3,
		}

		err := r.Refresh(context.Background())

		require.ErrorContains(t, err, "refresh jobs: scrape failed")
		assert.True(t, coursesSaved)
	})

	t.Run("skips a side without a store", func(t *testing.T) {
		t.Parallel()

		r := &cron.Refresher{
			Jobs:    &mock.JobScraper{},
			Queries: []string{"go"},
		}

		assert.NoError(t, r.Refresh(context.Background()))
	})

	t.Run("does nothing without queries", func(t *testing.T) {
		t.Parallel()

		r := &cron.Refresher{Jobs: &mock.JobScraper{}, JobStore: &mock.JobService{}}

		assert.NoError(t, r.Refresh(context.Background()))
	})
}

func TestRefresher_Start(t *testing.T) {
	t.Parallel()

	t.Run("runs once immediately", func(t *testing.T) {
		t.Parallel()

		ran := make(chan struct{}, 1)
		r := &cron.Refresher{
			Jobs: &mock.JobScraper{
				BatchScrapeJobsFn: func(_ context.Context, _ []string, _ int) ([]*scout.ScrapedJob, error) {
					return nil, nil
				},
			},
			JobStore: &mock.JobService{
				CreateJobsFn: func(_ context.Context, _ []*scout.ScrapedJob) error {
					select {
					case ran <- struct{}{}:
					default:
					}
					return nil
				},
			},
			Queries: []string{"go"},
		}

		require.NoError(t, r.Start(context.Background(), "@every 1h"))
		defer r.Stop()

		select {
		case <-ran:
		case <-time.After(2 * time.Second):
			t.Fatal("refresh did not run on start")
		}
	})

	t.Run("stop waits for the startup refresh", func(t *testing.T) {
		t.Parallel()

		started := make(chan struct{})
		release := make(chan struct{})
		r := &cron.Refresher{
			Jobs: &mock.JobScraper{
				BatchScrapeJobsFn: func(_ context.Context, _ []string, _ int) ([]*scout.ScrapedJob, error) {
					close(started)
					<-release
					return nil, nil
				},
			},
			JobStore: &mock.JobService{
				CreateJobsFn: func(_ context.Context, _ []*scout.ScrapedJob) error {
					return nil
				},
			},
			Queries: []string{"go"},
		}

		require.NoError(t, r.Start(context.Background(), "@every 1h"))
		<-started

		done := r.Stop()
		select {
		case <-done.Done():
			t.Fatal("stop finished while the startup refresh was running")
		case <-time.After(50 * time.Millisecond):
		}

		close(release)
		select {
		case <-done.Done():
		case <-time.After(2 * time.Second):
			t.Fatal("stop did not finish after the startup refresh")
		}
	})

	t.Run("rejects invalid schedule", func(t *testing.T) {
		t.Parallel()

		r := &cron.Refresher{}

		err := r.Start(context.Background(), "every tuesday")

		assert.Equal(t, scout.EINVALID, scout.ErrorCode(err))
	})

	t.Run("stop without start is done", func(t *testing.T) {
		t.Parallel()

		r := &cron.Refresher{}

		select {
		case <-r.Stop().Done():
		default:
			t.Fatal("expected done context")
		}
	})
}
