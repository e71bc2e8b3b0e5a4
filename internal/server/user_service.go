package server

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/job-board/internal/config"
	"github.com/jonathan/job-board/internal/db"
)

// AuthStore is the persistence surface the user service needs.
type AuthStore interface {
	CreateUser(ctx context.Context, firstName, lastName, email, role string) (uuid.UUID, error)
	GetUser(ctx context.Context, id uuid.UUID) (*db.User, error)
	GetUserByEmail(ctx context.Context, email string) (*db.User, error)
	CheckEmailExists(ctx context.Context, email string) (bool, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
}

// UserService provides business logic for user authentication operations
type UserService struct {
	db             AuthStore
	passwordConfig *config.PasswordConfig
}

// NewUserService creates a new UserService with the given dependencies
func NewUserService(db AuthStore, passwordConfig *config.PasswordConfig) *UserService {
	return &UserService{
		db:             db,
		passwordConfig: passwordConfig,
	}
}

// Register creates a new user with password authentication
func (s *UserService) Register(ctx context.Context, req *RegisterRequest) (*db.User, error) {
	exists, err := s.db.CheckEmailExists(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		return nil, &ErrEmailAlreadyExists{Email: req.Email}
	}

	passwordHash, err := s.passwordConfig.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := req.Role
	if role == "" {
		role = db.RoleCandidate
	}

	// Two-step: create user, then set password.
	userID, err := s.db.CreateUser(ctx, req.FirstName, req.LastName, req.Email, role)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if err := s.db.UpdatePassword(ctx, userID, passwordHash); err != nil {
		return nil, fmt.Errorf("failed to set password: %w", err)
	}

	user, err := s.db.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve created user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("created user not found: %s", userID)
	}

	return user, nil
}

// Login authenticates a user and returns the account. A missing account and
// a wrong password produce the same error.
func (s *UserService) Login(ctx context.Context, req *LoginRequest) (*db.User, error) {
	user, err := s.db.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	if user == nil {
		return nil, &ErrInvalidCredentials{}
	}

	if !s.passwordConfig.VerifyPassword(req.Password, user.PasswordHash) {
		return nil, &ErrInvalidCredentials{}
	}

	if !user.IsActive {
		return nil, &ErrInvalidCredentials{}
	}

	return user, nil
}

// UpdatePassword updates a user's password after verifying the current one.
func (s *UserService) UpdatePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error {
	user, err := s.db.GetUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return &ErrUserNotFound{UserID: userID}
	}

	if !s.passwordConfig.VerifyPassword(currentPassword, user.PasswordHash) {
		return &ErrPasswordMismatch{}
	}

	newPasswordHash, err := s.passwordConfig.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}

	if err := s.db.UpdatePassword(ctx, userID, newPasswordHash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}
