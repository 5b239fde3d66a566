package scout

import (
	"context"
	"time"
)

// SalaryRange is a salary band parsed from a listing.
type SalaryRange struct {
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Currency string  `json:"currency"`
}

// ScrapedJob represents a job listing extracted from a fetched page.
// ID and ScrapedAt are assigned by the store on insert.
type ScrapedJob struct {
	ID           string       `json:"id,omitempty"`
	Title        string       `json:"title"`
	Company      string       `json:"company"`
	Location     string       `json:"location"`
	Description  string       `json:"description"`
	Requirements []string     `json:"requirements"`
	Skills       []string     `json:"skills"`
	Salary       *SalaryRange `json:"salaryRange,omitempty"`
	URL          string       `json:"url"`
	Source       string       `json:"source"`
	ScrapedAt    time.Time    `json:"scrapedAt,omitzero"`
}

// Validate returns an error if the job contains invalid fields.
func (j *ScrapedJob) Validate() error {
	if j.Title == "" {
		return Errorf(EINVALID, "job title required")
	}
	if j.URL == "" {
		return Errorf(EINVALID, "job URL required")
	}
	return nil
}

// JobExtractor parses raw page content into a job record.
type JobExtractor interface {
	// ExtractJob returns false when the content has no recognizable job title.
	// All other fields degrade to defaults rather than failing.
	ExtractJob(content, sourceURL, siteName string) (*ScrapedJob, bool)
}

// JobScraper scrapes job listings for search queries.
type JobScraper interface {
	// ScrapeJobs returns at most limit jobs for the query.
	ScrapeJobs(ctx context.Context, query string, limit int) ([]*ScrapedJob, error)

	// BatchScrapeJobs scrapes each query in turn and returns the combined
	// results with duplicate URLs removed.
	BatchScrapeJobs(ctx context.Context, queries []string, limitPerQuery int) ([]*ScrapedJob, error)
}

// JobService represents a service for managing stored jobs.
type JobService interface {
	// CreateJobs saves jobs, replacing any stored job with the same URL.
	// ID and ScrapedAt are set on each job.
	CreateJobs(ctx context.Context, jobs []*ScrapedJob) error

	// FindJobByID retrieves a job by ID.
	// Returns ENOTFOUND if job does not exist.
	FindJobByID(ctx context.Context, id string) (*ScrapedJob, error)

	// FindJobs retrieves jobs matching the filter, newest first.
	FindJobs(ctx context.Context, filter JobFilter) ([]*ScrapedJob, error)

	// DeleteJob permanently removes a job.
	// Returns ENOTFOUND if job does not exist.
	DeleteJob(ctx context.Context, id string) error
}

// JobFilter represents a filter for FindJobs.
type JobFilter struct {
	ID     *string `json:"id"`
	URL    *string `json:"url"`
	Source *string `json:"source"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
