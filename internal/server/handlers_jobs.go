package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/job-board/internal/db"
	"github.com/jonathan/job-board/internal/server/middleware"
)

var jobValidator = validator.New()

// CreateJobRequest is the body of POST /jobs.
type CreateJobRequest struct {
	Title            string   `json:"title" validate:"required,min=3,max=200"`
	Company          string   `json:"company" validate:"required,min=1,max=200"`
	Description      string   `json:"description" validate:"required"`
	Requirements     string   `json:"requirements"`
	Location         string   `json:"location"`
	JobType          string   `json:"job_type" validate:"omitempty,oneof=full-time part-time contract internship freelance"`
	WorkMode         string   `json:"work_mode" validate:"omitempty,oneof=remote onsite hybrid"`
	ExperienceLevel  string   `json:"experience_level" validate:"omitempty,oneof=entry junior mid senior lead executive"`
	SalaryMin        *float64 `json:"salary_min" validate:"omitempty,gte=0"`
	SalaryMax        *float64 `json:"salary_max" validate:"omitempty,gte=0"`
	RequiredSkills   []string `json:"required_skills"`
	NiceToHaveSkills []string `json:"nice_to_have_skills"`
	Status           string   `json:"status" validate:"omitempty,oneof=draft active"`
}

// ImportJobRequest is the body of POST /jobs/import.
type ImportJobRequest struct {
	URL string `json:"url" validate:"required,url"`
}

// handleListJobs returns active jobs matching the query string filters.
func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := db.JobFilter{
		Search:          q.Get("search"),
		JobType:         q.Get("job_type"),
		WorkMode:        q.Get("work_mode"),
		ExperienceLevel: q.Get("experience_level"),
		Location:        q.Get("location"),
		Sort:            q.Get("sort"),
	}
	if limit, err := strconv.Atoi(q.Get("limit")); err == nil {
		filter.Limit = limit
	}
	if offset, err := strconv.Atoi(q.Get("offset")); err == nil {
		filter.Offset = offset
	}

	jobs, err := s.db.ListActiveJobs(r.Context(), filter)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"jobs": jobs})
}

// handleGetJob returns one job by slug and bumps its view counter.
func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	job, ok := s.jobBySlug(w, r)
	if !ok {
		return
	}

	if err := s.db.IncrementJobViews(r.Context(), job.ID); err == nil {
		job.ViewsCount++
	}

	s.jsonResponse(w, http.StatusOK, job)
}

// handleCreateJob creates a posting. Recruiter accounts only.
func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	user, ok := s.requireRecruiter(w, r)
	if !ok {
		return
	}

	var req CreateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := jobValidator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	status := req.Status
	if status == "" {
		status = db.JobStatusActive
	}

	job := &db.Job{
		Title:            req.Title,
		Company:          req.Company,
		Description:      req.Description,
		Requirements:     req.Requirements,
		Location:         req.Location,
		JobType:          req.JobType,
		WorkMode:         req.WorkMode,
		ExperienceLevel:  req.ExperienceLevel,
		SalaryMin:        req.SalaryMin,
		SalaryMax:        req.SalaryMax,
		RequiredSkills:   db.StringArray(req.RequiredSkills),
		NiceToHaveSkills: db.StringArray(req.NiceToHaveSkills),
		PostedBy:         user.ID,
		Status:           status,
	}

	slug, err := s.db.CreateJob(r.Context(), job)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	created, err := s.db.GetJobBySlug(r.Context(), slug)
	if err != nil || created == nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to load created job")
		return
	}

	s.jsonResponse(w, http.StatusCreated, created)
}

// handleImportJob fetches a posting URL, extracts its fields, and stores the
// result as a draft for the recruiter to review.
func (s *Server) handleImportJob(w http.ResponseWriter, r *http.Request) {
	user, ok := s.requireRecruiter(w, r)
	if !ok {
		return
	}

	var req ImportJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := jobValidator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	draft, err := s.importer.Import(r.Context(), req.URL)
	if err != nil {
		s.errorResponse(w, http.StatusBadGateway, err.Error())
		return
	}

	sourceURL := draft.SourceURL
	job := &db.Job{
		Title:            draft.Title,
		Company:          draft.Company,
		Description:      draft.Description,
		Requirements:     draft.Requirements,
		Location:         draft.Location,
		JobType:          draft.JobType,
		WorkMode:         draft.WorkMode,
		ExperienceLevel:  draft.ExperienceLevel,
		SalaryMin:        draft.SalaryMin,
		SalaryMax:        draft.SalaryMax,
		RequiredSkills:   db.StringArray(draft.RequiredSkills),
		NiceToHaveSkills: db.StringArray(draft.NiceToHaveSkills),
		PostedBy:         user.ID,
		SourceURL:        &sourceURL,
		Status:           db.JobStatusDraft,
	}

	slug, err := s.db.CreateJob(r.Context(), job)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	created, err := s.db.GetJobBySlug(r.Context(), slug)
	if err != nil || created == nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to load imported job")
		return
	}

	s.jsonResponse(w, http.StatusCreated, created)
}

// jobBySlug loads the job named by the path, or writes 404.
func (s *Server) jobBySlug(w http.ResponseWriter, r *http.Request) (*db.Job, bool) {
	slug := r.PathValue("slug")
	job, err := s.db.GetJobBySlug(r.Context(), slug)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return nil, false
	}
	if job == nil {
		s.errorResponse(w, http.StatusNotFound, "Job not found")
		return nil, false
	}
	return job, true
}

// requireRecruiter loads the authenticated user and checks their role.
func (s *Server) requireRecruiter(w http.ResponseWriter, r *http.Request) (*db.User, bool) {
	user, ok := s.authenticatedUser(w, r)
	if !ok {
		return nil, false
	}

	if user.Role != db.RoleRecruiter && user.Role != db.RoleAdmin {
		err := &ErrForbidden{Role: user.Role}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return nil, false
	}
	return user, true
}

// authenticatedUser loads the account behind the request's token.
func (s *Server) authenticatedUser(w http.ResponseWriter, r *http.Request) (*db.User, bool) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return nil, false
	}

	user, err := s.db.GetUser(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return nil, false
	}
	if user == nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return nil, false
	}
	return user, true
}
