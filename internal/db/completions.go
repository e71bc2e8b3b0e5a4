package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// UpsertProfileCompletion replaces the completion record for a user wholesale
func (db *DB) UpsertProfileCompletion(ctx context.Context, userID uuid.UUID, score int, missingFields, suggestions []string) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO profile_completions (user_id, completion_score, missing_fields, suggestions, last_calculated)
		 VALUES ($1, $2, $3, $4, NOW())
		 ON CONFLICT (user_id) DO UPDATE
		 SET completion_score = $2, missing_fields = $3, suggestions = $4, last_calculated = NOW()`,
		userID, score, StringArray(missingFields), StringArray(suggestions),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert profile completion: %w", err)
	}
	return nil
}

// GetProfileCompletion retrieves the completion record for a user.
// Returns nil when none has been calculated yet.
func (db *DB) GetProfileCompletion(ctx context.Context, userID uuid.UUID) (*ProfileCompletion, error) {
	var c ProfileCompletion
	err := db.pool.QueryRow(ctx,
		`SELECT id, user_id, completion_score, missing_fields, suggestions, last_calculated
		 FROM profile_completions WHERE user_id = $1`,
		userID,
	).Scan(&c.ID, &c.UserID, &c.CompletionScore, &c.MissingFields, &c.Suggestions, &c.LastCalculated)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile completion: %w", err)
	}
	return &c, nil
}
