package server

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/jonathan/job-board/internal/db"
	"github.com/jonathan/job-board/internal/resumes"
	"github.com/jonathan/job-board/internal/server/middleware"
)

// handleUploadResume accepts a multipart resume upload and runs the parse
// pipeline synchronously. The response carries the record in its final
// state, completed or failed.
func (s *Server) handleUploadResume(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes())
	if err := r.ParseMultipartForm(s.cfg.MaxUploadBytes()); err != nil {
		s.errorResponse(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("Upload exceeds the %d MB limit", s.cfg.MaxUploadMB))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Missing file field")
		return
	}
	defer func() { _ = file.Close() }()

	ext := fileExtension(header.Filename)
	if !s.cfg.IsAllowedType(ext) {
		s.errorResponse(w, http.StatusBadRequest,
			fmt.Sprintf("Unsupported file type: %s (allowed: %s)", ext, strings.Join(s.cfg.AllowedTypes, ", ")))
		return
	}

	path, err := s.saveUpload(file, ext)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to store upload: "+err.Error())
		return
	}

	resumeID, err := s.db.CreateResume(r.Context(), userID, path, header.Filename)
	if err != nil {
		_ = os.Remove(path)
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	resume, err := s.db.GetResume(r.Context(), resumeID)
	if err != nil || resume == nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to load created resume")
		return
	}

	// Synchronous, single attempt. A parse failure is recorded on the
	// resume itself; a fresh upload is the retry path.
	if err := s.processor.Process(r.Context(), resume); err != nil {
		var procErr *resumes.ProcessingError
		if !errors.As(err, &procErr) || procErr.Stage != "parsing" {
			s.errorResponse(w, http.StatusInternalServerError, err.Error())
			return
		}
	}

	s.jsonResponse(w, http.StatusCreated, resume)
}

// handleListResumes returns the authenticated user's resumes, newest first.
func (s *Server) handleListResumes(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	list, err := s.db.ListResumesByUser(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"resumes": list})
}

func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	resume, ok := s.ownedResume(w, r)
	if !ok {
		return
	}
	s.jsonResponse(w, http.StatusOK, resume)
}

// handleGetResumeStatus returns the lifecycle state of one resume.
func (s *Server) handleGetResumeStatus(w http.ResponseWriter, r *http.Request) {
	resume, ok := s.ownedResume(w, r)
	if !ok {
		return
	}

	response := map[string]any{
		"id":     resume.ID,
		"status": resume.Status,
	}
	if resume.ErrorMessage != nil {
		response["error_message"] = *resume.ErrorMessage
	}
	s.jsonResponse(w, http.StatusOK, response)
}

func (s *Server) handleDeleteResume(w http.ResponseWriter, r *http.Request) {
	resume, ok := s.ownedResume(w, r)
	if !ok {
		return
	}

	// File first, then record. A crash in between leaves a row pointing at
	// a missing file rather than an unowned file on disk.
	if err := os.Remove(resume.FilePath); err != nil && !os.IsNotExist(err) {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to remove stored file: "+err.Error())
		return
	}
	if err := s.db.DeleteResume(r.Context(), resume.ID); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	// The deleted resume may have carried the resume and skills signals.
	if user, err := s.db.GetUser(r.Context(), resume.UserID); err == nil && user != nil {
		if _, err := s.scorer.Recalculate(r.Context(), user); err != nil {
			log.Printf("Failed to recalculate completion after resume delete: %v", err)
		}
	}

	w.WriteHeader(http.StatusNoContent)
}

// ownedResume loads the resume named by the path and verifies it belongs to
// the authenticated user. Foreign records read as not found.
func (s *Server) ownedResume(w http.ResponseWriter, r *http.Request) (*db.Resume, bool) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return nil, false
	}

	resumeID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid resume ID")
		return nil, false
	}

	resume, err := s.db.GetResume(r.Context(), resumeID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return nil, false
	}
	if resume == nil || resume.UserID != userID {
		s.errorResponse(w, http.StatusNotFound, "Resume not found")
		return nil, false
	}

	return resume, true
}

// saveUpload streams the uploaded file into the upload directory under a
// fresh name.
func (s *Server) saveUpload(file io.Reader, ext string) (string, error) {
	if err := os.MkdirAll(s.cfg.UploadDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	path := filepath.Join(s.cfg.UploadDir, uuid.New().String()+"."+ext)
	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer func() { _ = out.Close() }()

	if _, err := io.Copy(out, file); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return path, nil
}

func fileExtension(filename string) string {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 || idx == len(filename)-1 {
		return ""
	}
	return strings.ToLower(filename[idx+1:])
}
