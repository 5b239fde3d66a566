package mock

import "github.com/fwojciec/scout"

var (
	_ scout.Extractor       = (*Extractor)(nil)
	_ scout.JobExtractor    = (*JobExtractor)(nil)
	_ scout.CourseExtractor = (*CourseExtractor)(nil)
)

// Extractor is a mock implementation of scout.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*scout.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*scout.ExtractResult, error) {
	return e.ExtractFn(html)
}

// JobExtractor is a mock implementation of scout.JobExtractor.
type JobExtractor struct {
	ExtractJobFn func(content, sourceURL, siteName string) (*scout.ScrapedJob, bool)
}

func (e *JobExtractor) ExtractJob(content, sourceURL, siteName string) (*scout.ScrapedJob, bool) {
	return e.ExtractJobFn(content, sourceURL, siteName)
}

// CourseExtractor is a mock implementation of scout.CourseExtractor.
type CourseExtractor struct {
	ExtractCourseFn func(content, sourceURL, siteName string) (*scout.ScrapedCourse, bool)
}

func (e *CourseExtractor) ExtractCourse(content, sourceURL, siteName string) (*scout.ScrapedCourse, bool) {
	return e.ExtractCourseFn(content, sourceURL, siteName)
}
