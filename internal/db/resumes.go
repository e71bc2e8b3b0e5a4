package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const resumeColumns = `id, user_id, file_path, original_filename, parsed_data, skills,
	experience_years, education_level, status, error_message, created_at, updated_at`

// CreateResume creates a resume record with status pending and returns its ID
func (db *DB) CreateResume(ctx context.Context, userID uuid.UUID, filePath, originalFilename string) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO resumes (user_id, file_path, original_filename, status, parsed_data, skills)
		 VALUES ($1, $2, $3, $4, '{}', '[]')
		 RETURNING id`,
		userID, filePath, originalFilename, ResumeStatusPending,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create resume: %w", err)
	}
	return id, nil
}

// GetResume retrieves a resume by ID. Returns nil when not found.
func (db *DB) GetResume(ctx context.Context, id uuid.UUID) (*Resume, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+resumeColumns+` FROM resumes WHERE id = $1`, id)
	return scanResume(row)
}

// ListResumesByUser retrieves all of a user's resumes, newest first
func (db *DB) ListResumesByUser(ctx context.Context, userID uuid.UUID) ([]*Resume, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+resumeColumns+` FROM resumes WHERE user_id = $1 ORDER BY created_at DESC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	defer rows.Close()
	return collectResumes(rows)
}

// ListResumesByUserAndStatus retrieves a user's resumes in the given status,
// newest first
func (db *DB) ListResumesByUserAndStatus(ctx context.Context, userID uuid.UUID, status string) ([]*Resume, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+resumeColumns+` FROM resumes
		 WHERE user_id = $1 AND status = $2 ORDER BY created_at DESC`,
		userID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes by status: %w", err)
	}
	defer rows.Close()
	return collectResumes(rows)
}

// UpdateResumeStatus sets only the parsing status
func (db *DB) UpdateResumeStatus(ctx context.Context, id uuid.UUID, status string) error {
	tag, err := db.pool.Exec(ctx,
		`UPDATE resumes SET status = $1, updated_at = NOW() WHERE id = $2`,
		status, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update resume status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("resume not found: %s", id)
	}
	return nil
}

// CompleteResume stores the parse result and marks the resume completed
func (db *DB) CompleteResume(ctx context.Context, id uuid.UUID, parsedData []byte, skills []string, experienceYears int, educationLevel *string) error {
	tag, err := db.pool.Exec(ctx,
		`UPDATE resumes
		 SET parsed_data = $1, skills = $2, experience_years = $3, education_level = $4,
		     status = $5, updated_at = NOW()
		 WHERE id = $6`,
		parsedData, StringArray(skills), experienceYears, educationLevel,
		ResumeStatusCompleted, id,
	)
	if err != nil {
		return fmt.Errorf("failed to complete resume: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("resume not found: %s", id)
	}
	return nil
}

// FailResume records the error detail and marks the resume failed
func (db *DB) FailResume(ctx context.Context, id uuid.UUID, errorMessage string) error {
	tag, err := db.pool.Exec(ctx,
		`UPDATE resumes SET status = $1, error_message = $2, updated_at = NOW() WHERE id = $3`,
		ResumeStatusFailed, errorMessage, id,
	)
	if err != nil {
		return fmt.Errorf("failed to mark resume failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("resume not found: %s", id)
	}
	return nil
}

// DeleteResume removes a resume row
func (db *DB) DeleteResume(ctx context.Context, id uuid.UUID) error {
	tag, err := db.pool.Exec(ctx, `DELETE FROM resumes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete resume: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("resume not found: %s", id)
	}
	return nil
}

func scanResume(row pgx.Row) (*Resume, error) {
	var r Resume
	err := row.Scan(&r.ID, &r.UserID, &r.FilePath, &r.OriginalFilename, &r.ParsedData,
		&r.Skills, &r.ExperienceYears, &r.EducationLevel, &r.Status, &r.ErrorMessage,
		&r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan resume: %w", err)
	}
	return &r, nil
}

func collectResumes(rows pgx.Rows) ([]*Resume, error) {
	resumes := make([]*Resume, 0)
	for rows.Next() {
		r, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		resumes = append(resumes, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read resume rows: %w", err)
	}
	return resumes, nil
}
