package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/job-board/internal/db"
	"github.com/jonathan/job-board/internal/match"
	"github.com/jonathan/job-board/internal/server/middleware"
)

// ApplyRequest is the body of POST /jobs/{slug}/apply.
type ApplyRequest struct {
	ResumeID    *uuid.UUID `json:"resume_id,omitempty"`
	CoverLetter string     `json:"cover_letter"`
}

// handleApply creates an application with a skill match score against the
// job's required skills.
func (s *Server) handleApply(w http.ResponseWriter, r *http.Request) {
	user, ok := s.authenticatedUser(w, r)
	if !ok {
		return
	}

	job, ok := s.jobBySlug(w, r)
	if !ok {
		return
	}
	if !job.IsActive() {
		s.errorResponse(w, http.StatusConflict, "Job is not accepting applications")
		return
	}

	var req ApplyRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
			return
		}
	}

	existing, err := s.db.GetApplicationByJobAndApplicant(r.Context(), job.ID, user.ID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if existing != nil && existing.Status != db.ApplicationStatusWithdrawn {
		appErr := &ErrAlreadyApplied{}
		s.errorResponse(w, HTTPStatus(appErr), appErr.Error())
		return
	}

	resume, err := s.resumeForApplication(r, user.ID, req.ResumeID)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	app := &db.JobApplication{
		JobID:       job.ID,
		ApplicantID: user.ID,
		CoverLetter: req.CoverLetter,
		Status:      db.ApplicationStatusPending,
	}
	if resume != nil {
		app.ResumeID = &resume.ID
		result := match.Score(resume.Skills, job.RequiredSkills)
		app.MatchScore = &result.Score
		app.MatchingSkills = db.StringArray(result.MatchingSkills)
		app.MissingSkills = db.StringArray(result.MissingSkills)
	}

	if existing != nil {
		// Re-applying after a withdrawal revives the old application row,
		// replacing its content rather than just flipping the status.
		app.ID = existing.ID
		if err := s.db.ReviveApplication(r.Context(), app); err != nil {
			s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
			return
		}
	} else {
		id, err := s.db.CreateApplication(r.Context(), app)
		if err != nil {
			s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
			return
		}
		app.ID = id
	}

	if err := s.db.IncrementJobApplications(r.Context(), job.ID); err == nil {
		job.ApplicationsCount++
	}

	s.jsonResponse(w, http.StatusCreated, app)
}

// handleWithdraw marks the caller's application withdrawn.
func (s *Server) handleWithdraw(w http.ResponseWriter, r *http.Request) {
	user, ok := s.authenticatedUser(w, r)
	if !ok {
		return
	}

	job, ok := s.jobBySlug(w, r)
	if !ok {
		return
	}

	app, err := s.db.GetApplicationByJobAndApplicant(r.Context(), job.ID, user.ID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if app == nil || app.Status == db.ApplicationStatusWithdrawn {
		s.errorResponse(w, http.StatusNotFound, "Application not found")
		return
	}

	if err := s.db.UpdateApplicationStatus(r.Context(), app.ID, db.ApplicationStatusWithdrawn); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	_ = s.db.DecrementJobApplications(r.Context(), job.ID)

	w.WriteHeader(http.StatusNoContent)
}

// handleListMyApplications returns the caller's applications, newest first.
func (s *Server) handleListMyApplications(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	apps, err := s.db.ListApplicationsByApplicant(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"applications": apps})
}

// handleSaveJob bookmarks a job for the caller. Saving twice is a no-op.
func (s *Server) handleSaveJob(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	job, ok := s.jobBySlug(w, r)
	if !ok {
		return
	}

	if err := s.db.CreateSavedJob(r.Context(), userID, job.ID); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, map[string]string{"message": "Job saved"})
}

func (s *Server) handleUnsaveJob(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	job, ok := s.jobBySlug(w, r)
	if !ok {
		return
	}

	saved, err := s.db.GetSavedJob(r.Context(), userID, job.ID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if saved == nil {
		s.errorResponse(w, http.StatusNotFound, "Saved job not found")
		return
	}

	if err := s.db.DeleteSavedJob(r.Context(), userID, job.ID); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListSavedJobs(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	jobs, err := s.db.ListSavedJobs(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"jobs": jobs})
}

// resumeForApplication resolves which resume backs an application: the one
// named in the request (which must belong to the caller and be completed),
// or the caller's most recent completed resume, or none.
func (s *Server) resumeForApplication(r *http.Request, userID uuid.UUID, resumeID *uuid.UUID) (*db.Resume, error) {
	if resumeID != nil {
		resume, err := s.db.GetResume(r.Context(), *resumeID)
		if err != nil {
			return nil, err
		}
		if resume == nil || resume.UserID != userID {
			return nil, &ErrValidation{Field: "resume_id", Message: "resume not found"}
		}
		if !resume.IsCompleted() {
			return nil, &ErrValidation{Field: "resume_id", Message: "resume has not finished processing"}
		}
		return resume, nil
	}

	completed, err := s.db.ListResumesByUserAndStatus(r.Context(), userID, db.ResumeStatusCompleted)
	if err != nil {
		return nil, err
	}
	if len(completed) == 0 {
		return nil, nil
	}
	return completed[0], nil
}
