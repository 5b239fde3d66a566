package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fwojciec/scout"
)

// Run executes the jobs command.
func (c *JobsCmd) Run(deps *Dependencies) error {
	var jobs []*scout.ScrapedJob
	var err error
	if len(c.Queries) == 1 {
		jobs, err = deps.JobScraper.ScrapeJobs(deps.Ctx, c.Queries[0], c.Limit)
	} else {
		jobs, err = deps.JobScraper.BatchScrapeJobs(deps.Ctx, c.Queries, c.Limit)
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", scout.ErrorMessage(err))
		return err
	}

	if c.Save {
		if err := deps.JobStore.CreateJobs(deps.Ctx, jobs); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", scout.ErrorMessage(err))
			return err
		}
	}

	if c.JSON {
		return writeJSON(deps.Stdout, jobs)
	}
	if len(jobs) == 0 {
		fmt.Fprintln(deps.Stdout, "No jobs found.")
		return nil
	}
	fmt.Fprintln(deps.Stdout, scout.FormatJobs(jobs))
	if c.Save {
		fmt.Fprintf(deps.Stdout, "\nSaved %d jobs.\n", len(jobs))
	}
	return nil
}

// Run executes the courses command.
func (c *CoursesCmd) Run(deps *Dependencies) error {
	var courses []*scout.ScrapedCourse
	var err error
	if len(c.Queries) == 1 {
		courses, err = deps.CourseScraper.ScrapeCourses(deps.Ctx, c.Queries[0], c.Limit)
	} else {
		courses, err = deps.CourseScraper.BatchScrapeCourses(deps.Ctx, c.Queries, c.Limit)
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", scout.ErrorMessage(err))
		return err
	}

	if c.Save {
		if err := deps.CourseStore.CreateCourses(deps.Ctx, courses); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", scout.ErrorMessage(err))
			return err
		}
	}

	if c.JSON {
		return writeJSON(deps.Stdout, courses)
	}
	if len(courses) == 0 {
		fmt.Fprintln(deps.Stdout, "No courses found.")
		return nil
	}
	fmt.Fprintln(deps.Stdout, scout.FormatCourses(courses))
	if c.Save {
		fmt.Fprintf(deps.Stdout, "\nSaved %d courses.\n", len(courses))
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
