package db

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const jobColumns = `id, slug, title, company, description, requirements, location,
	job_type, work_mode, experience_level, salary_min, salary_max,
	required_skills, nice_to_have_skills, posted_by, source_url, status,
	views_count, applications_count, created_at, updated_at`

var slugInvalidChars = regexp.MustCompile(`[^a-z0-9]+`)

// prefixedJobColumns qualifies the job column list with a table alias for
// join queries.
func prefixedJobColumns(prefix string) string {
	cols := strings.Split(jobColumns, ",")
	for i, col := range cols {
		cols[i] = prefix + strings.TrimSpace(col)
	}
	return strings.Join(cols, ", ")
}

// Slugify converts text to a URL-safe slug
func Slugify(text string) string {
	slug := strings.ToLower(strings.TrimSpace(text))
	slug = slugInvalidChars.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// CreateJob inserts a job posting, deriving a unique slug from title and
// company (numeric suffix on collision), and returns the slug.
func (db *DB) CreateJob(ctx context.Context, job *Job) (string, error) {
	base := Slugify(job.Title + " " + job.Company)
	slug := base
	for counter := 1; ; counter++ {
		exists, err := db.slugExists(ctx, slug)
		if err != nil {
			return "", err
		}
		if !exists {
			break
		}
		slug = fmt.Sprintf("%s-%d", base, counter)
	}

	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO jobs (slug, title, company, description, requirements, location,
		                   job_type, work_mode, experience_level, salary_min, salary_max,
		                   required_skills, nice_to_have_skills, posted_by, source_url, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		 RETURNING id`,
		slug, job.Title, job.Company, job.Description, job.Requirements, job.Location,
		job.JobType, job.WorkMode, job.ExperienceLevel, job.SalaryMin, job.SalaryMax,
		job.RequiredSkills, job.NiceToHaveSkills, job.PostedBy, job.SourceURL, job.Status,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("failed to create job: %w", err)
	}
	job.ID = id
	job.Slug = slug
	return slug, nil
}

func (db *DB) slugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := db.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM jobs WHERE slug = $1)`, slug,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check slug: %w", err)
	}
	return exists, nil
}

// GetJobBySlug retrieves a job by slug. Returns nil when not found.
func (db *DB) GetJobBySlug(ctx context.Context, slug string) (*Job, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE slug = $1`, slug)
	return scanJob(row)
}

// GetJob retrieves a job by ID. Returns nil when not found.
func (db *DB) GetJob(ctx context.Context, id uuid.UUID) (*Job, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)
	return scanJob(row)
}

// JobFilter narrows and orders job listings.
type JobFilter struct {
	Search          string
	JobType         string
	WorkMode        string
	ExperienceLevel string
	Location        string
	Sort            string // created_at_desc (default), created_at_asc, title, salary_desc
	Limit           int
	Offset          int
}

// ListActiveJobs retrieves active jobs matching the filter
func (db *DB) ListActiveJobs(ctx context.Context, filter JobFilter) ([]*Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE status = 'active'`
	args := []any{}

	appendCond := func(cond string, value any) {
		args = append(args, value)
		query += fmt.Sprintf(" AND "+cond, len(args))
	}

	if filter.Search != "" {
		appendCond(`(title ILIKE '%%' || $%d || '%%' OR company ILIKE '%%' || $%[1]d || '%%'
			OR description ILIKE '%%' || $%[1]d || '%%' OR location ILIKE '%%' || $%[1]d || '%%')`, filter.Search)
	}
	if filter.JobType != "" {
		appendCond(`job_type = $%d`, filter.JobType)
	}
	if filter.WorkMode != "" {
		appendCond(`work_mode = $%d`, filter.WorkMode)
	}
	if filter.ExperienceLevel != "" {
		appendCond(`experience_level = $%d`, filter.ExperienceLevel)
	}
	if filter.Location != "" {
		appendCond(`location ILIKE '%%' || $%d || '%%'`, filter.Location)
	}

	switch filter.Sort {
	case "created_at_asc":
		query += ` ORDER BY created_at ASC`
	case "title":
		query += ` ORDER BY title ASC`
	case "salary_desc":
		query += ` ORDER BY salary_max DESC NULLS LAST`
	default:
		query += ` ORDER BY created_at DESC`
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 12
	}
	args = append(args, limit)
	query += fmt.Sprintf(` LIMIT $%d`, len(args))
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(` OFFSET $%d`, len(args))
	}

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()
	return collectJobs(rows)
}

// IncrementJobViews bumps the view counter
func (db *DB) IncrementJobViews(ctx context.Context, id uuid.UUID) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE jobs SET views_count = views_count + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to increment views: %w", err)
	}
	return nil
}

// IncrementJobApplications bumps the applications counter
func (db *DB) IncrementJobApplications(ctx context.Context, id uuid.UUID) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE jobs SET applications_count = applications_count + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to increment applications: %w", err)
	}
	return nil
}

// DecrementJobApplications lowers the applications counter, floored at zero
func (db *DB) DecrementJobApplications(ctx context.Context, id uuid.UUID) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE jobs SET applications_count = GREATEST(applications_count - 1, 0) WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to decrement applications: %w", err)
	}
	return nil
}

func scanJob(row pgx.Row) (*Job, error) {
	var j Job
	err := row.Scan(&j.ID, &j.Slug, &j.Title, &j.Company, &j.Description, &j.Requirements,
		&j.Location, &j.JobType, &j.WorkMode, &j.ExperienceLevel, &j.SalaryMin, &j.SalaryMax,
		&j.RequiredSkills, &j.NiceToHaveSkills, &j.PostedBy, &j.SourceURL, &j.Status,
		&j.ViewsCount, &j.ApplicationsCount, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan job: %w", err)
	}
	return &j, nil
}

func collectJobs(rows pgx.Rows) ([]*Job, error) {
	jobs := make([]*Job, 0)
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read job rows: %w", err)
	}
	return jobs, nil
}
