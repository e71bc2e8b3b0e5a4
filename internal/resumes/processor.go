// Package resumes drives the lifecycle of an uploaded resume record:
// pending -> processing -> completed or failed, with derived fields and
// profile bookkeeping on success.
package resumes

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jonathan/job-board/internal/db"
	"github.com/jonathan/job-board/internal/profile"
	"github.com/jonathan/job-board/internal/schema"
)

// Store is the persistence surface the processor needs.
type Store interface {
	UpdateResumeStatus(ctx context.Context, id uuid.UUID, status string) error
	CompleteResume(ctx context.Context, id uuid.UUID, parsedData []byte, skills []string, experienceYears int, educationLevel *string) error
	FailResume(ctx context.Context, id uuid.UUID, errorMessage string) error
	GetUser(ctx context.Context, id uuid.UUID) (*db.User, error)
	UpdateUserName(ctx context.Context, id uuid.UUID, firstName, lastName string) error
}

// ResumeParser is the orchestrator surface the processor invokes.
type ResumeParser interface {
	ParseResume(ctx context.Context, path, fileType string, variant schema.Variant) (*schema.ParsedResume, error)
}

// Processor runs one synchronous, single-attempt parse per resume record.
type Processor struct {
	db     Store
	parser ResumeParser
	scorer *profile.Scorer
}

// NewProcessor wires a processor from its collaborators.
func NewProcessor(store Store, parser ResumeParser, scorer *profile.Scorer) *Processor {
	return &Processor{db: store, parser: parser, scorer: scorer}
}

// Process parses the record's file and advances its status. On failure the
// record is marked failed with the error detail preserved and a
// *ProcessingError is returned; a fresh upload is required to retry. The
// record struct is mutated to reflect the persisted state.
func (p *Processor) Process(ctx context.Context, resume *db.Resume) error {
	if err := p.db.UpdateResumeStatus(ctx, resume.ID, db.ResumeStatusProcessing); err != nil {
		return fmt.Errorf("failed to begin processing: %w", err)
	}
	resume.Status = db.ResumeStatusProcessing

	// Uploads always use the simple schema variant (cheaper, faster).
	parsed, err := p.parser.ParseResume(ctx, resume.FilePath, resume.FileExtension(), schema.VariantSimple)
	if err != nil {
		procErr := &ProcessingError{Stage: "parsing", Cause: err}
		if failErr := p.db.FailResume(ctx, resume.ID, err.Error()); failErr != nil {
			return &ProcessingError{Stage: "persistence", Cause: failErr}
		}
		resume.Status = db.ResumeStatusFailed
		detail := err.Error()
		resume.ErrorMessage = &detail
		return procErr
	}

	payload, err := json.Marshal(parsed.Payload())
	if err != nil {
		procErr := &ProcessingError{Stage: "parsing", Cause: err}
		if failErr := p.db.FailResume(ctx, resume.ID, err.Error()); failErr != nil {
			return &ProcessingError{Stage: "persistence", Cause: failErr}
		}
		resume.Status = db.ResumeStatusFailed
		return procErr
	}

	skills := parsed.Skills()
	years := parsed.TotalExperienceYears()
	var educationLevel *string
	if level := parsed.EducationLevel(); level != "" {
		educationLevel = &level
	}

	if err := p.db.CompleteResume(ctx, resume.ID, payload, skills, years, educationLevel); err != nil {
		return &ProcessingError{Stage: "persistence", Cause: err}
	}
	resume.Status = db.ResumeStatusCompleted
	resume.ParsedData = payload
	resume.Skills = db.StringArray(skills)
	resume.ExperienceYears = &years
	resume.EducationLevel = educationLevel

	// Post-completion bookkeeping. The record stays completed even if these
	// fail: status transitions run forward only.
	user, err := p.db.GetUser(ctx, resume.UserID)
	if err != nil {
		return &ProcessingError{Stage: "profile update", Cause: err}
	}
	if user == nil {
		return &ProcessingError{Stage: "profile update", Cause: fmt.Errorf("user not found: %s", resume.UserID)}
	}

	if err := p.autofillName(ctx, user, parsed.Name()); err != nil {
		return &ProcessingError{Stage: "profile update", Cause: err}
	}

	if _, err := p.scorer.Recalculate(ctx, user); err != nil {
		return &ProcessingError{Stage: "profile update", Cause: err}
	}

	return nil
}

// autofillName fills the user's name from the extracted candidate name when
// both name parts are currently unset.
func (p *Processor) autofillName(ctx context.Context, user *db.User, extractedName string) error {
	if extractedName == "" || user.FirstName != "" || user.LastName != "" {
		return nil
	}

	parts := strings.Fields(extractedName)
	if len(parts) == 0 {
		return nil
	}

	firstName := parts[0]
	lastName := strings.Join(parts[1:], " ")
	if err := p.db.UpdateUserName(ctx, user.ID, firstName, lastName); err != nil {
		return err
	}
	user.FirstName = firstName
	user.LastName = lastName
	return nil
}
