// Package profile derives a 0-100 completion score and actionable
// suggestions from a user's account and resume state.
package profile

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/job-board/internal/db"
)

// Signal weights. They sum to 100 when every signal holds.
const (
	weightName   = 20
	weightEmail  = 20
	weightResume = 30
	weightSkills = 15
	weightRole   = 15
)

// Store is the persistence surface the scorer needs.
type Store interface {
	ListResumesByUserAndStatus(ctx context.Context, userID uuid.UUID, status string) ([]*db.Resume, error)
	UpsertProfileCompletion(ctx context.Context, userID uuid.UUID, score int, missingFields, suggestions []string) error
}

// Scorer recomputes profile completion records.
type Scorer struct {
	db Store
}

// NewScorer creates a Scorer backed by the given store.
func NewScorer(store Store) *Scorer {
	return &Scorer{db: store}
}

// Recalculate recomputes the user's completion score wholesale and upserts
// the record, replacing any prior score, missing fields, and suggestions.
func (s *Scorer) Recalculate(ctx context.Context, user *db.User) (*db.ProfileCompletion, error) {
	score := 0
	missing := make([]string, 0)
	suggestions := make([]string, 0)

	if user.HasFullName() {
		score += weightName
	} else {
		missing = append(missing, "name")
		suggestions = append(suggestions, "Complete your name")
	}

	if user.Email != "" {
		score += weightEmail
	} else {
		missing = append(missing, "email")
		suggestions = append(suggestions, "Add your email address")
	}

	completed, err := s.db.ListResumesByUserAndStatus(ctx, user.ID, db.ResumeStatusCompleted)
	if err != nil {
		return nil, fmt.Errorf("failed to load completed resumes: %w", err)
	}

	if len(completed) > 0 {
		score += weightResume

		// The skills signal is only evaluated against the most recent
		// completed resume.
		if completed[0].SkillCount() > 0 {
			score += weightSkills
		} else {
			suggestions = append(suggestions, "Add more skills to your resume")
		}
	} else {
		missing = append(missing, "resume")
		suggestions = append(suggestions, "Upload your resume to boost your profile")
	}

	if user.Role != "" {
		score += weightRole
	} else {
		missing = append(missing, "role")
		suggestions = append(suggestions, "Select your role (Candidate/Recruiter)")
	}

	if err := s.db.UpsertProfileCompletion(ctx, user.ID, score, missing, suggestions); err != nil {
		return nil, err
	}

	return &db.ProfileCompletion{
		UserID:          user.ID,
		CompletionScore: score,
		MissingFields:   missing,
		Suggestions:     suggestions,
		LastCalculated:  time.Now(),
	}, nil
}
