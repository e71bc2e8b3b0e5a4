package db

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// User roles.
const (
	RoleCandidate = "candidate"
	RoleRecruiter = "recruiter"
	RoleAdmin     = "admin"
)

// User represents a registered account.
type User struct {
	ID           uuid.UUID `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	PasswordHash string    `json:"-" db:"password_hash"` // Never serialize to JSON
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// HasFullName reports whether both name parts are set.
func (u *User) HasFullName() bool {
	return u.FirstName != "" && u.LastName != ""
}

// Resume parsing statuses. Transitions run forward only:
// pending -> processing -> completed | failed.
const (
	ResumeStatusPending    = "pending"
	ResumeStatusProcessing = "processing"
	ResumeStatusCompleted  = "completed"
	ResumeStatusFailed     = "failed"
)

// Resume represents one uploaded resume and its parsing state.
type Resume struct {
	ID               uuid.UUID       `json:"id"`
	UserID           uuid.UUID       `json:"user_id"`
	FilePath         string          `json:"file_path"`
	OriginalFilename string          `json:"original_filename"`
	ParsedData       json.RawMessage `json:"parsed_data"`
	Skills           StringArray     `json:"skills"` // JSONB array
	ExperienceYears  *int            `json:"experience_years,omitempty"`
	EducationLevel   *string         `json:"education_level,omitempty"`
	Status           string          `json:"status"`
	ErrorMessage     *string         `json:"error_message,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// FileExtension returns the lowercased suffix of the original filename.
func (r *Resume) FileExtension() string {
	idx := strings.LastIndex(r.OriginalFilename, ".")
	if idx < 0 || idx == len(r.OriginalFilename)-1 {
		return ""
	}
	return strings.ToLower(r.OriginalFilename[idx+1:])
}

// IsCompleted reports whether parsing finished successfully.
func (r *Resume) IsCompleted() bool {
	return r.Status == ResumeStatusCompleted
}

// SkillCount returns the number of extracted skills.
func (r *Resume) SkillCount() int {
	return len(r.Skills)
}

// ProfileCompletion tracks a user's profile completeness. One row per user.
type ProfileCompletion struct {
	ID              uuid.UUID   `json:"id"`
	UserID          uuid.UUID   `json:"user_id"`
	CompletionScore int         `json:"completion_score"` // 0-100
	MissingFields   StringArray `json:"missing_fields"`
	Suggestions     StringArray `json:"suggestions"`
	LastCalculated  time.Time   `json:"last_calculated"`
}

// Job statuses.
const (
	JobStatusDraft  = "draft"
	JobStatusActive = "active"
	JobStatusClosed = "closed"
	JobStatusFilled = "filled"
)

// Job represents a job posting.
type Job struct {
	ID                uuid.UUID   `json:"id"`
	Slug              string      `json:"slug"`
	Title             string      `json:"title"`
	Company           string      `json:"company"`
	Description       string      `json:"description"`
	Requirements      string      `json:"requirements"`
	Location          string      `json:"location"`
	JobType           string      `json:"job_type"`  // full-time, part-time, contract, internship, freelance
	WorkMode          string      `json:"work_mode"` // remote, onsite, hybrid
	ExperienceLevel   string      `json:"experience_level"`
	SalaryMin         *float64    `json:"salary_min,omitempty"`
	SalaryMax         *float64    `json:"salary_max,omitempty"`
	RequiredSkills    StringArray `json:"required_skills"`
	NiceToHaveSkills  StringArray `json:"nice_to_have_skills"`
	PostedBy          uuid.UUID   `json:"posted_by"`
	SourceURL         *string     `json:"source_url,omitempty"`
	Status            string      `json:"status"`
	ViewsCount        int         `json:"views_count"`
	ApplicationsCount int         `json:"applications_count"`
	CreatedAt         time.Time   `json:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at"`
}

// IsActive reports whether the job accepts applications.
func (j *Job) IsActive() bool {
	return j.Status == JobStatusActive
}

// Application statuses.
const (
	ApplicationStatusPending   = "pending"
	ApplicationStatusReviewed  = "reviewed"
	ApplicationStatusWithdrawn = "withdrawn"
)

// JobApplication represents one candidate's application to a job.
type JobApplication struct {
	ID             uuid.UUID   `json:"id"`
	JobID          uuid.UUID   `json:"job_id"`
	ApplicantID    uuid.UUID   `json:"applicant_id"`
	ResumeID       *uuid.UUID  `json:"resume_id,omitempty"`
	CoverLetter    string      `json:"cover_letter"`
	Status         string      `json:"status"`
	MatchScore     *float64    `json:"match_score,omitempty"` // 0-100
	MatchingSkills StringArray `json:"matching_skills"`
	MissingSkills  StringArray `json:"missing_skills"`
	AppliedAt      time.Time   `json:"applied_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

// SavedJob is a bookmark of a job by a user.
type SavedJob struct {
	ID      uuid.UUID `json:"id"`
	UserID  uuid.UUID `json:"user_id"`
	JobID   uuid.UUID `json:"job_id"`
	SavedAt time.Time `json:"saved_at"`
}

// StringArray handles JSONB string arrays
type StringArray []string

// Scan implements the Scanner interface for StringArray
func (a *StringArray) Scan(src interface{}) error {
	if src == nil {
		*a = []string{}
		return nil
	}
	source, ok := src.([]byte)
	if !ok {
		return errors.New("type assertion .([]byte) failed")
	}
	return json.Unmarshal(source, a)
}

// Value implements the Valuer interface for StringArray
func (a StringArray) Value() (driver.Value, error) {
	if a == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(a)
}
