package scout

import (
	"context"
	"strings"
	"time"
)

// Level is the difficulty of a course.
type Level string

// Course levels.
const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
	LevelExpert       Level = "expert"
)

// ParseLevel maps a keyword to a Level, case-insensitively.
// Unknown keywords map to LevelBeginner.
func ParseLevel(s string) Level {
	switch l := Level(strings.ToLower(strings.TrimSpace(s))); l {
	case LevelIntermediate, LevelAdvanced, LevelExpert:
		return l
	default:
		return LevelBeginner
	}
}

// DefaultDuration is used when a course page states no duration.
const DefaultDuration = "Self-paced"

// ScrapedCourse represents a course listing extracted from a fetched page.
// ID and ScrapedAt are assigned by the store on insert.
type ScrapedCourse struct {
	ID          string    `json:"id,omitempty"`
	Title       string    `json:"title"`
	Provider    string    `json:"provider"`
	Description string    `json:"description"`
	Skills      []string  `json:"skills"`
	Level       Level     `json:"level"`
	Duration    string    `json:"duration"`
	Price       *float64  `json:"price,omitempty"`
	Rating      *float64  `json:"rating,omitempty"`
	URL         string    `json:"url"`
	Source      string    `json:"source"`
	ScrapedAt   time.Time `json:"scrapedAt,omitzero"`
}

// Validate returns an error if the course contains invalid fields.
func (c *ScrapedCourse) Validate() error {
	if c.Title == "" {
		return Errorf(EINVALID, "course title required")
	}
	if c.URL == "" {
		return Errorf(EINVALID, "course URL required")
	}
	return nil
}

// CourseExtractor parses raw page content into a course record.
type CourseExtractor interface {
	// ExtractCourse returns false when the content has no recognizable course title.
	ExtractCourse(content, sourceURL, siteName string) (*ScrapedCourse, bool)
}

// CourseScraper scrapes course listings for search queries.
type CourseScraper interface {
	ScrapeCourses(ctx context.Context, query string, limit int) ([]*ScrapedCourse, error)
	BatchScrapeCourses(ctx context.Context, queries []string, limitPerQuery int) ([]*ScrapedCourse, error)
}

// CourseService represents a service for managing stored courses.
type CourseService interface {
	// CreateCourses saves courses, replacing any stored course with the same URL.
	CreateCourses(ctx context.Context, courses []*ScrapedCourse) error

	// FindCourseByID retrieves a course by ID.
	// Returns ENOTFOUND if course does not exist.
	FindCourseByID(ctx context.Context, id string) (*ScrapedCourse, error)

	// FindCourses retrieves courses matching the filter, newest first.
	FindCourses(ctx context.Context, filter CourseFilter) ([]*ScrapedCourse, error)

	// DeleteCourse permanently removes a course.
	// Returns ENOTFOUND if course does not exist.
	DeleteCourse(ctx context.Context, id string) error
}

// CourseFilter represents a filter for FindCourses.
type CourseFilter struct {
	ID     *string `json:"id"`
	URL    *string `json:"url"`
	Source *string `json:"source"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
