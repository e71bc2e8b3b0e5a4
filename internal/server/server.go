// Package server provides the HTTP REST API for the job board.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/job-board/internal/config"
	"github.com/jonathan/job-board/internal/db"
	"github.com/jonathan/job-board/internal/jobimport"
	"github.com/jonathan/job-board/internal/parsing"
	"github.com/jonathan/job-board/internal/profile"
	"github.com/jonathan/job-board/internal/resumes"
	"github.com/jonathan/job-board/internal/server/middleware"
	"github.com/jonathan/job-board/internal/server/ratelimit"
)

// Store is the persistence surface the handlers need. *db.DB satisfies it.
type Store interface {
	CreateUser(ctx context.Context, firstName, lastName, email, role string) (uuid.UUID, error)
	GetUser(ctx context.Context, id uuid.UUID) (*db.User, error)
	GetUserByEmail(ctx context.Context, email string) (*db.User, error)
	CheckEmailExists(ctx context.Context, email string) (bool, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	UpdateUserName(ctx context.Context, id uuid.UUID, firstName, lastName string) error

	CreateResume(ctx context.Context, userID uuid.UUID, filePath, originalFilename string) (uuid.UUID, error)
	GetResume(ctx context.Context, id uuid.UUID) (*db.Resume, error)
	ListResumesByUser(ctx context.Context, userID uuid.UUID) ([]*db.Resume, error)
	ListResumesByUserAndStatus(ctx context.Context, userID uuid.UUID, status string) ([]*db.Resume, error)
	DeleteResume(ctx context.Context, id uuid.UUID) error

	GetProfileCompletion(ctx context.Context, userID uuid.UUID) (*db.ProfileCompletion, error)
	UpsertProfileCompletion(ctx context.Context, userID uuid.UUID, score int, missingFields, suggestions []string) error

	CreateJob(ctx context.Context, job *db.Job) (string, error)
	GetJobBySlug(ctx context.Context, slug string) (*db.Job, error)
	ListActiveJobs(ctx context.Context, filter db.JobFilter) ([]*db.Job, error)
	IncrementJobViews(ctx context.Context, id uuid.UUID) error
	IncrementJobApplications(ctx context.Context, id uuid.UUID) error
	DecrementJobApplications(ctx context.Context, id uuid.UUID) error

	CreateApplication(ctx context.Context, app *db.JobApplication) (uuid.UUID, error)
	GetApplicationByJobAndApplicant(ctx context.Context, jobID, applicantID uuid.UUID) (*db.JobApplication, error)
	ListApplicationsByApplicant(ctx context.Context, applicantID uuid.UUID) ([]*db.JobApplication, error)
	UpdateApplicationStatus(ctx context.Context, id uuid.UUID, status string) error
	ReviveApplication(ctx context.Context, app *db.JobApplication) error

	GetSavedJob(ctx context.Context, userID, jobID uuid.UUID) (*db.SavedJob, error)
	CreateSavedJob(ctx context.Context, userID, jobID uuid.UUID) error
	DeleteSavedJob(ctx context.Context, userID, jobID uuid.UUID) error
	ListSavedJobs(ctx context.Context, userID uuid.UUID) ([]*db.Job, error)
}

// ResumeProcessor runs the parse lifecycle for one uploaded resume.
type ResumeProcessor interface {
	Process(ctx context.Context, resume *db.Resume) error
}

// PostingImporter extracts a draft posting from a URL.
type PostingImporter interface {
	Import(ctx context.Context, urlStr string) (*jobimport.Draft, error)
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	db          Store
	pool        *db.DB
	cfg         *config.AppConfig
	rateLimiter *ratelimit.Limiter
	jwtService  *JWTService
	userService *UserService
	authHandler *AuthHandler
	scorer      *profile.Scorer
	processor   ResumeProcessor
	importer    PostingImporter
}

// New creates a new server instance
func New(cfg *config.AppConfig) (*Server, error) {
	database, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s := &Server{
		db:   database,
		pool: database,
		cfg:  cfg,
	}

	s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())

	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}
	s.userService = NewUserService(database, passwordConfig)

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}
	s.jwtService = NewJWTService(jwtConfig)
	s.authHandler = NewAuthHandler(s.userService, s.jwtService)

	parser, err := parsing.NewParser(context.Background(), cfg.GeminiKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create resume parser: %w", err)
	}

	s.scorer = profile.NewScorer(database)
	s.processor = resumes.NewProcessor(database, parser, s.scorer)
	s.importer = jobimport.NewImporter(parser.Client(), false)

	s.httpServer = &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(s.routes()))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // Long timeout for synchronous parsing
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// routes builds the request mux. Split out so tests can exercise the full
// routing table without a listener.
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	authed := middleware.AuthMiddleware(s.jwtService.AsTokenValidator())
	protect := func(h http.HandlerFunc) http.Handler {
		return authed(h)
	}

	mux.HandleFunc("GET /health", s.handleHealth)

	// Authentication
	mux.HandleFunc("POST /auth/register", s.authHandler.Register)
	mux.HandleFunc("POST /auth/login", s.authHandler.Login)
	mux.Handle("PUT /auth/password", protect(s.handleUpdatePassword))

	// Account and profile
	mux.Handle("GET /me", protect(s.handleGetMe))
	mux.Handle("PUT /me", protect(s.handleUpdateMe))
	mux.Handle("GET /me/completion", protect(s.handleGetCompletion))
	mux.Handle("GET /me/applications", protect(s.handleListMyApplications))
	mux.Handle("GET /me/saved-jobs", protect(s.handleListSavedJobs))

	// Resumes
	mux.Handle("POST /resumes", protect(s.handleUploadResume))
	mux.Handle("GET /resumes", protect(s.handleListResumes))
	mux.Handle("GET /resumes/{id}", protect(s.handleGetResume))
	mux.Handle("GET /resumes/{id}/status", protect(s.handleGetResumeStatus))
	mux.Handle("DELETE /resumes/{id}", protect(s.handleDeleteResume))

	// Jobs
	mux.HandleFunc("GET /jobs", s.handleListJobs)
	mux.Handle("POST /jobs", protect(s.handleCreateJob))
	mux.Handle("POST /jobs/import", protect(s.handleImportJob))
	mux.HandleFunc("GET /jobs/{slug}", s.handleGetJob)
	mux.Handle("POST /jobs/{slug}/apply", protect(s.handleApply))
	mux.Handle("DELETE /jobs/{slug}/apply", protect(s.handleWithdraw))
	mux.Handle("POST /jobs/{slug}/save", protect(s.handleSaveJob))
	mux.Handle("DELETE /jobs/{slug}/save", protect(s.handleUnsaveJob))

	return mux
}

// Start begins listening for requests
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}

	if s.pool != nil {
		s.pool.Close()
	}
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		if !allowed {
			s.setRateLimitHeaders(w, info)
			s.rateLimitResponse(w, info)
			return
		}

		s.setRateLimitHeaders(w, info)
		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleUpdatePassword handles password update requests for the
// authenticated user.
func (s *Server) handleUpdatePassword(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	s.authHandler.UpdatePasswordWithUserID(w, r, userID)
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// extractClientID extracts the client identifier from the request.
// For MVP, this uses the IP address from RemoteAddr.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit
// information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]interface{}{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		response["retry_after"] = int(info.RetryAfter.Seconds())
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}

	log.Printf("[rate-limit] Rate limit exceeded: Limit=%d Remaining=%d Reset=%s",
		info.Limit, info.Remaining, info.ResetTime.Format(time.RFC3339))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
