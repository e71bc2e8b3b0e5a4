package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreateUser creates a new user and returns its ID
func (db *DB) CreateUser(ctx context.Context, firstName, lastName, email, role string) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO users (first_name, last_name, email, role)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		firstName, lastName, email, role,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create user: %w", err)
	}
	return id, nil
}

// GetUser retrieves a user by ID. Returns nil when not found.
func (db *DB) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	var u User
	err := db.pool.QueryRow(ctx,
		`SELECT id, first_name, last_name, email, role, COALESCE(password_hash, ''),
		        is_active, created_at, updated_at
		 FROM users WHERE id = $1`,
		id,
	).Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Role, &u.PasswordHash,
		&u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}

// GetUserByEmail retrieves a user by email. Returns nil when not found.
func (db *DB) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := db.pool.QueryRow(ctx,
		`SELECT id, first_name, last_name, email, role, COALESCE(password_hash, ''),
		        is_active, created_at, updated_at
		 FROM users WHERE email = $1`,
		email,
	).Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Role, &u.PasswordHash,
		&u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &u, nil
}

// CheckEmailExists reports whether a user with the email is registered
func (db *DB) CheckEmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := db.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`,
		email,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}
	return exists, nil
}

// UpdatePassword sets the password hash for a user
func (db *DB) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	tag, err := db.pool.Exec(ctx,
		`UPDATE users SET password_hash = $1, updated_at = NOW() WHERE id = $2`,
		passwordHash, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user not found: %s", id)
	}
	return nil
}

// UpdateUserName sets the user's first and last name
func (db *DB) UpdateUserName(ctx context.Context, id uuid.UUID, firstName, lastName string) error {
	tag, err := db.pool.Exec(ctx,
		`UPDATE users SET first_name = $1, last_name = $2, updated_at = NOW() WHERE id = $3`,
		firstName, lastName, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update user name: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user not found: %s", id)
	}
	return nil
}
