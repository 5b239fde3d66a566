package mock

import (
	"context"

	"github.com/fwojciec/scout"
)

var (
	_ scout.JobService    = (*JobService)(nil)
	_ scout.CourseService = (*CourseService)(nil)
)

// JobService is a mock implementation of scout.JobService.
type JobService struct {
	CreateJobsFn  func(ctx context.Context, jobs []*scout.ScrapedJob) error
	FindJobByIDFn func(ctx context.Context, id string) (*scout.ScrapedJob, error)
	FindJobsFn    func(ctx context.Context, filter scout.JobFilter) ([]*scout.ScrapedJob, error)
	DeleteJobFn   func(ctx context.Context, id string) error
}

func (s *JobService) CreateJobs(ctx context.Context, jobs []*scout.ScrapedJob) error {
	return s.CreateJobsFn(ctx, jobs)
}

func (s *JobService) FindJobByID(ctx context.Context, id string) (*scout.ScrapedJob, error) {
	return s.FindJobByIDFn(ctx, id)
}

func (s *JobService) FindJobs(ctx context.Context, filter scout.JobFilter) ([]*scout.ScrapedJob, error) {
	return s.FindJobsFn(ctx, filter)
}

func (s *JobService) DeleteJob(ctx context.Context, id string) error {
	return s.DeleteJobFn(ctx, id)
}

// CourseService is a mock implementation of scout.CourseService.
type CourseService struct {
	CreateCoursesFn  func(ctx context.Context, courses []*scout.ScrapedCourse) error
	FindCourseByIDFn func(ctx context.Context, id string) (*scout.ScrapedCourse, error)
	FindCoursesFn    func(ctx context.Context, filter scout.CourseFilter) ([]*scout.ScrapedCourse, error)
	DeleteCourseFn   func(ctx context.Context, id string) error
}

func (s *CourseService) CreateCourses(ctx context.Context, courses []*scout.ScrapedCourse) error {
	return s.CreateCoursesFn(ctx, courses)
}

func (s *CourseService) FindCourseByID(ctx context.Context, id string) (*scout.ScrapedCourse, error) {
	return s.FindCourseByIDFn(ctx, id)
}

func (s *CourseService) FindCourses(ctx context.Context, filter scout.CourseFilter) ([]*scout.ScrapedCourse, error) {
	return s.FindCoursesFn(ctx, filter)
}

func (s *CourseService) DeleteCourse(ctx context.Context, id string) error {
	return s.DeleteCourseFn(ctx, id)
}
