package server

import (
	"encoding/json"
	"net/http"

	"github.com/jonathan/job-board/internal/db"
	"github.com/jonathan/job-board/internal/server/middleware"
)

// UpdateMeRequest is the body of PUT /me.
type UpdateMeRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func (s *Server) handleGetMe(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := s.db.GetUser(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if user == nil {
		s.errorResponse(w, http.StatusNotFound, "User not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, user)
}

// handleUpdateMe updates the account's name and recomputes the profile
// completion.
func (s *Server) handleUpdateMe(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req UpdateMeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.FirstName == "" || req.LastName == "" {
		s.errorResponse(w, http.StatusBadRequest, "first_name and last_name are required")
		return
	}

	if err := s.db.UpdateUserName(r.Context(), userID, req.FirstName, req.LastName); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	user, err := s.db.GetUser(r.Context(), userID)
	if err != nil || user == nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to load updated user")
		return
	}

	if _, err := s.scorer.Recalculate(r.Context(), user); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to recalculate completion: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, user)
}

// handleGetCompletion returns the stored completion record, computing it
// first when the user has none yet or when ?refresh=1 is passed.
func (s *Server) handleGetCompletion(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var completion *db.ProfileCompletion
	if r.URL.Query().Get("refresh") != "1" {
		completion, err = s.db.GetProfileCompletion(r.Context(), userID)
		if err != nil {
			s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
			return
		}
	}

	if completion == nil {
		user, err := s.db.GetUser(r.Context(), userID)
		if err != nil {
			s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
			return
		}
		if user == nil {
			s.errorResponse(w, http.StatusNotFound, "User not found")
			return
		}

		completion, err = s.scorer.Recalculate(r.Context(), user)
		if err != nil {
			s.errorResponse(w, http.StatusInternalServerError, "Failed to calculate completion: "+err.Error())
			return
		}
	}

	s.jsonResponse(w, http.StatusOK, completion)
}
