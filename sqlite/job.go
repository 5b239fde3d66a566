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

var _ scout.JobService = (*JobService)(nil)

// JobService implements scout.JobService using SQLite.
type JobService struct {
	db  *DB
	now func() time.Time
}

// NewJobService creates a new JobService.
func NewJobService(db *DB) *JobService {
	return &JobService{db: db, now: time.Now}
}

const jobColumns = `id, url, title, company, location, description, requirements, skills,
	salary_min, salary_max, salary_currency, source, scraped_at`

// CreateJobs upserts jobs by URL in one transaction. A job whose URL is
// already stored keeps its original ID; every saved job gets a fresh ScrapedAt.
// A job whose content hash matches the stored row only has its scrape time
// touched. If any job is invalid nothing is saved.
func (s *JobService) CreateJobs(ctx context.Context, jobs []*scout.ScrapedJob) error {
	for _, job := range jobs {
		if err := job.Validate(); err != nil {
			return err
		}
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := s.now().UTC()
	for _, job := range jobs {
		requirements, err := encodeList(job.Requirements)
		if err != nil {
			return err
		}
		skills, err := encodeList(job.Skills)
		if err != nil {
			return err
		}

		var salaryMin, salaryMax sql.NullFloat64
		var currency sql.NullString
		if job.Salary != nil {
			salaryMin = sql.NullFloat64{Float64: job.Salary.Min, Valid: true}
			salaryMax = sql.NullFloat64{Float64: job.Salary.Max, Valid: true}
			currency = sql.NullString{String: job.Salary.Currency, Valid: true}
		}

		hash := hashContent(job.Title, job.Company, job.Location, job.Description,
			requirements, skills, salaryText(job.Salary), job.Source)

		var id string
		err = tx.QueryRowContext(ctx,
			"UPDATE jobs SET scraped_at = ? WHERE url = ? AND content_hash = ? RETURNING id",
			now.Format(timeFormat), job.URL, hash,
		).Scan(&id)
		if err == nil {
			job.ID = id
			job.ScrapedAt = now
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("failed to touch job %s: %w", job.URL, err)
		}

		err = tx.QueryRowContext(ctx, `
			INSERT INTO jobs (`+jobColumns+`, content_hash)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(url) DO UPDATE SET
				title = excluded.title,
				company = excluded.company,
				location = excluded.location,
				description = excluded.description,
				requirements = excluded.requirements,
				skills = excluded.skills,
				salary_min = excluded.salary_min,
				salary_max = excluded.salary_max,
				salary_currency = excluded.salary_currency,
				source = excluded.source,
				content_hash = excluded.content_hash,
				scraped_at = excluded.scraped_at
			RETURNING id
		`, uuid.New().String(), job.URL, job.Title, job.Company, job.Location, job.Description,
			requirements, skills, salaryMin, salaryMax, currency, job.Source, now.Format(timeFormat),
			hash,
		).Scan(&id)
		if err != nil {
			return fmt.Errorf("failed to save job %s: %w", job.URL, err)
		}

		job.ID = id
		job.ScrapedAt = now
	}

	return tx.Commit()
}

// FindJobByID retrieves a job by ID.
func (s *JobService) FindJobByID(ctx context.Context, id string) (*scout.ScrapedJob, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+jobColumns+" FROM jobs WHERE id = ?", id)
	job, err := scanJob(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, scout.Errorf(scout.ENOTFOUND, "job not found")
	}
	if err != nil {
		return nil, err
	}
	return job, nil
}

// FindJobs retrieves jobs matching the filter, most recently scraped first.
func (s *JobService) FindJobs(ctx context.Context, filter scout.JobFilter) ([]*scout.ScrapedJob, error) {
	var where whereClause
	where.add("id = ?", filter.ID)
	where.add("url = ?", filter.URL)
	where.add("source = ?", filter.Source)

	var query strings.Builder
	query.WriteString("SELECT " + jobColumns + " FROM jobs" + where.String())
	query.WriteString(" ORDER BY scraped_at DESC, rowid ASC")
	args := where.args
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []*scout.ScrapedJob
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

// DeleteJob permanently removes a job.
func (s *JobService) DeleteJob(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM jobs WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return scout.Errorf(scout.ENOTFOUND, "job not found")
	}
	return nil
}

func scanJob(row scanner) (*scout.ScrapedJob, error) {
	var job scout.ScrapedJob
	var requirements, skills, scrapedAt string
	var salaryMin, salaryMax sql.NullFloat64
	var currency sql.NullString

	if err := row.Scan(&job.ID, &job.URL, &job.Title, &job.Company, &job.Location, &job.Description,
		&requirements, &skills, &salaryMin, &salaryMax, &currency, &job.Source, &scrapedAt); err != nil {
		return nil, err
	}

	var err error
	if job.Requirements, err = decodeList(requirements, "requirements"); err != nil {
		return nil, err
	}
	if job.Skills, err = decodeList(skills, "skills"); err != nil {
		return nil, err
	}
	if job.ScrapedAt, err = parseTime(scrapedAt, "scraped_at"); err != nil {
		return nil, err
	}
	if salaryMin.Valid && salaryMax.Valid {
		job.Salary = &scout.SalaryRange{Min: salaryMin.Float64, Max: salaryMax.Float64, Currency: currency.String}
	}
	return &job, nil
}
