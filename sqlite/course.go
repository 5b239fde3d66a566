package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/scout"
	"github.com/google/uuid"
)

var _ scout.CourseService = (*CourseService)(nil)

// CourseService implements scout.CourseService using SQLite.
type CourseService struct {
	db  *DB
	now func() time.Time
}

// NewCourseService creates a new CourseService.
func NewCourseService(db *DB) *CourseService {
	return &CourseService{db: db, now: time.Now}
}

const courseColumns = `id, url, title, provider, description, skills, level, duration,
	price, rating, source, scraped_at`

// CreateCourses upserts courses by URL with the same rules as JobService.CreateJobs.
func (s *CourseService) CreateCourses(ctx context.Context, courses []*scout.ScrapedCourse) error {
	for _, course := range courses {
		if err := course.Validate(); err != nil {
			return err
		}
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := s.now().UTC()
	for _, course := range courses {
		skills, err := encodeList(course.Skills)
		if err != nil {
			return err
		}

		hash := hashContent(course.Title, course.Provider, course.Description, skills,
			string(course.Level), course.Duration, floatText(course.Price), floatText(course.Rating), course.Source)

		var id string
		err = tx.QueryRowContext(ctx,
			"UPDATE courses SET scraped_at = ? WHERE url = ? AND content_hash = ? RETURNING id",
			now.Format(timeFormat), course.URL, hash,
		).Scan(&id)
		if err == nil {
			course.ID = id
			course.ScrapedAt = now
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("failed to touch course %s: %w", course.URL, err)
		}

		err = tx.QueryRowContext(ctx, `
			INSERT INTO courses (`+courseColumns+`, content_hash)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(url) DO UPDATE SET
				title = excluded.title,
				provider = excluded.provider,
				description = excluded.description,
				skills = excluded.skills,
				level = excluded.level,
				duration = excluded.duration,
				price = excluded.price,
				rating = excluded.rating,
				source = excluded.source,
				content_hash = excluded.content_hash,
				scraped_at = excluded.scraped_at
			RETURNING id
		`, uuid.New().String(), course.URL, course.Title, course.Provider, course.Description,
			skills, string(course.Level), course.Duration, nullFloat(course.Price), nullFloat(course.Rating),
			course.Source, now.Format(timeFormat),
			hash,
		).Scan(&id)
		if err != nil {
			return fmt.Errorf("failed to save course %s: %w", course.URL, err)
		}

		course.ID = id
		course.ScrapedAt = now
	}

	return tx.Commit()
}

// FindCourseByID retrieves a course by ID.
func (s *CourseService) FindCourseByID(ctx context.Context, id string) (*scout.ScrapedCourse, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+courseColumns+" FROM courses WHERE id = ?", id)
	course, err := scanCourse(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, scout.Errorf(scout.ENOTFOUND, "course not found")
	}
	if err != nil {
		return nil, err
	}
	return course, nil
}

// FindCourses retrieves courses matching the filter, most recently scraped first.
func (s *CourseService) FindCourses(ctx context.Context, filter scout.CourseFilter) ([]*scout.ScrapedCourse, error) {
	var where whereClause
	where.add("id = ?", filter.ID)
	where.add("url = ?", filter.URL)
	where.add("source = ?", filter.Source)

	var query strings.Builder
	query.WriteString("SELECT " + courseColumns + " FROM courses" + where.String())
	query.WriteString(" ORDER BY scraped_at DESC, rowid ASC")
	args := where.args
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []*scout.ScrapedCourse
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, course)
	}
	return courses, rows.Err()
}

// DeleteCourse permanently removes a course.
func (s *CourseService) DeleteCourse(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM courses WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return scout.Errorf(scout.ENOTFOUND, "course not found")
	}
	return nil
}

func scanCourse(row scanner) (*scout.ScrapedCourse, error) {
	var course scout.ScrapedCourse
	var skills, level, scrapedAt string
	var price, rating sql.NullFloat64

	if err := row.Scan(&course.ID, &course.URL, &course.Title, &course.Provider, &course.Description,
		&skills, &level, &course.Duration, &price, &rating, &course.Source, &scrapedAt); err != nil {
		return nil, err
	}

	var err error
	if course.Skills, err = decodeList(skills, "skills"); err != nil {
		return nil, err
	}
	if course.ScrapedAt, err = parseTime(scrapedAt, "scraped_at"); err != nil {
		return nil, err
	}
	course.Level = scout.ParseLevel(level)
	course.Price = floatPtr(price)
	course.Rating = floatPtr(rating)
	return &course, nil
}
