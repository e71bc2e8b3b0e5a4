package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const applicationColumns = `id, job_id, applicant_id, resume_id, cover_letter, status,
	match_score, matching_skills, missing_skills, applied_at, updated_at`

// CreateApplication inserts a job application and returns its ID
func (db *DB) CreateApplication(ctx context.Context, app *JobApplication) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO job_applications (job_id, applicant_id, resume_id, cover_letter, status,
		                               match_score, matching_skills, missing_skills)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id`,
		app.JobID, app.ApplicantID, app.ResumeID, app.CoverLetter, app.Status,
		app.MatchScore, app.MatchingSkills, app.MissingSkills,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create application: %w", err)
	}
	app.ID = id
	return id, nil
}

// GetApplication retrieves an application by ID. Returns nil when not found.
func (db *DB) GetApplication(ctx context.Context, id uuid.UUID) (*JobApplication, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+applicationColumns+` FROM job_applications WHERE id = $1`, id)
	return scanApplication(row)
}

// GetApplicationByJobAndApplicant retrieves the application a user made to a
// job, if any.
func (db *DB) GetApplicationByJobAndApplicant(ctx context.Context, jobID, applicantID uuid.UUID) (*JobApplication, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+applicationColumns+` FROM job_applications
		 WHERE job_id = $1 AND applicant_id = $2`,
		jobID, applicantID)
	return scanApplication(row)
}

// ListApplicationsByApplicant retrieves a user's applications, newest first
func (db *DB) ListApplicationsByApplicant(ctx context.Context, applicantID uuid.UUID) ([]*JobApplication, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+applicationColumns+` FROM job_applications
		 WHERE applicant_id = $1 ORDER BY applied_at DESC`,
		applicantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	apps := make([]*JobApplication, 0)
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read application rows: %w", err)
	}
	return apps, nil
}

// ReviveApplication replaces a withdrawn application's content in place,
// keeping its ID. The cover letter, resume reference, and match fields are
// overwritten with the new application's values and applied_at restarts.
func (db *DB) ReviveApplication(ctx context.Context, app *JobApplication) error {
	tag, err := db.pool.Exec(ctx,
		`UPDATE job_applications
		 SET resume_id = $1, cover_letter = $2, status = $3,
		     match_score = $4, matching_skills = $5, missing_skills = $6,
		     applied_at = NOW(), updated_at = NOW()
		 WHERE id = $7`,
		app.ResumeID, app.CoverLetter, app.Status,
		app.MatchScore, app.MatchingSkills, app.MissingSkills, app.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to revive application: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("application not found: %s", app.ID)
	}
	return nil
}

// UpdateApplicationStatus sets the application status
func (db *DB) UpdateApplicationStatus(ctx context.Context, id uuid.UUID, status string) error {
	tag, err := db.pool.Exec(ctx,
		`UPDATE job_applications SET status = $1, updated_at = NOW() WHERE id = $2`,
		status, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update application status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("application not found: %s", id)
	}
	return nil
}

func scanApplication(row pgx.Row) (*JobApplication, error) {
	var a JobApplication
	err := row.Scan(&a.ID, &a.JobID, &a.ApplicantID, &a.ResumeID, &a.CoverLetter, &a.Status,
		&a.MatchScore, &a.MatchingSkills, &a.MissingSkills, &a.AppliedAt, &a.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan application: %w", err)
	}
	return &a, nil
}
