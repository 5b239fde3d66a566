package main

import (
	"fmt"

	"github.com/fwojciec/scout"
)

// Run executes the list jobs command.
func (c *ListJobsCmd) Run(deps *Dependencies) error {
	filter := scout.JobFilter{Limit: c.Limit}
	if c.Source != "" {
		filter.Source = &c.Source
	}

	jobs, err := deps.JobStore.FindJobs(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", scout.ErrorMessage(err))
		return err
	}

	if c.JSON {
		if jobs == nil {
			jobs = []*scout.ScrapedJob{}
		}
		return writeJSON(deps.Stdout, jobs)
	}
	if len(jobs) == 0 {
		fmt.Fprintln(deps.Stdout, "No saved jobs. Use 'scout jobs QUERY --save' to add some.")
		return nil
	}

	for _, j := range jobs {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %s\n", j.ID, j.Title, j.Company, j.URL)
	}
	return nil
}

// Run executes the list courses command.
func (c *ListCoursesCmd) Run(deps *Dependencies) error {
	filter := scout.CourseFilter{Limit: c.Limit}
	if c.Source != "" {
		filter.Source = &c.Source
	}

	courses, err := deps.CourseStore.FindCourses(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", scout.ErrorMessage(err))
		return err
	}

	if c.JSON {
		if courses == nil {
			courses = []*scout.ScrapedCourse{}
		}
		return writeJSON(deps.Stdout, courses)
	}
	if len(courses) == 0 {
		fmt.Fprintln(deps.Stdout, "No saved courses. Use 'scout courses QUERY --save' to add some.")
		return nil
	}

	for _, course := range courses {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %s\n", course.ID, course.Title, course.Provider, course.URL)
	}
	return nil
}
