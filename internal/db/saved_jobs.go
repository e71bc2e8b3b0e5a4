package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// GetSavedJob retrieves a bookmark. Returns nil when the job is not saved.
func (db *DB) GetSavedJob(ctx context.Context, userID, jobID uuid.UUID) (*SavedJob, error) {
	var s SavedJob
	err := db.pool.QueryRow(ctx,
		`SELECT id, user_id, job_id, saved_at FROM saved_jobs
		 WHERE user_id = $1 AND job_id = $2`,
		userID, jobID,
	).Scan(&s.ID, &s.UserID, &s.JobID, &s.SavedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get saved job: %w", err)
	}
	return &s, nil
}

// CreateSavedJob bookmarks a job for a user
func (db *DB) CreateSavedJob(ctx context.Context, userID, jobID uuid.UUID) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO saved_jobs (user_id, job_id) VALUES ($1, $2)
		 ON CONFLICT (user_id, job_id) DO NOTHING`,
		userID, jobID,
	)
	if err != nil {
		return fmt.Errorf("failed to save job: %w", err)
	}
	return nil
}

// DeleteSavedJob removes a bookmark
func (db *DB) DeleteSavedJob(ctx context.Context, userID, jobID uuid.UUID) error {
	_, err := db.pool.Exec(ctx,
		`DELETE FROM saved_jobs WHERE user_id = $1 AND job_id = $2`,
		userID, jobID,
	)
	if err != nil {
		return fmt.Errorf("failed to unsave job: %w", err)
	}
	return nil
}

// ListSavedJobs retrieves the jobs a user has bookmarked, newest first
func (db *DB) ListSavedJobs(ctx context.Context, userID uuid.UUID) ([]*Job, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+prefixedJobColumns("j.")+`
		 FROM saved_jobs s JOIN jobs j ON j.id = s.job_id
		 WHERE s.user_id = $1 ORDER BY s.saved_at DESC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list saved jobs: %w", err)
	}
	defer rows.Close()
	return collectJobs(rows)
}
