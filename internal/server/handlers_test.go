package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/jonathan/job-board/internal/config"
	"github.com/jonathan/job-board/internal/db"
	"github.com/jonathan/job-board/internal/jobimport"
	"github.com/jonathan/job-board/internal/profile"
	"github.com/jonathan/job-board/internal/server/middleware"
	"github.com/jonathan/job-board/internal/server/ratelimit"
)

// fakeStore is an in-memory Store for handler tests.
type fakeStore struct {
	users        map[uuid.UUID]*db.User
	resumes      map[uuid.UUID]*db.Resume
	jobs         map[uuid.UUID]*db.Job
	applications map[uuid.UUID]*db.JobApplication
	saved        map[uuid.UUID]map[uuid.UUID]bool
	completions  map[uuid.UUID]*db.ProfileCompletion
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:        make(map[uuid.UUID]*db.User),
		resumes:      make(map[uuid.UUID]*db.Resume),
		jobs:         make(map[uuid.UUID]*db.Job),
		applications: make(map[uuid.UUID]*db.JobApplication),
		saved:        make(map[uuid.UUID]map[uuid.UUID]bool),
		completions:  make(map[uuid.UUID]*db.ProfileCompletion),
	}
}

func (f *fakeStore) CreateUser(ctx context.Context, firstName, lastName, email, role string) (uuid.UUID, error) {
	id := uuid.New()
	f.users[id] = &db.User{ID: id, FirstName: firstName, LastName: lastName, Email: email, Role: role, IsActive: true}
	return id, nil
}

func (f *fakeStore) GetUser(ctx context.Context, id uuid.UUID) (*db.User, error) {
	return f.users[id], nil
}

func (f *fakeStore) GetUserByEmail(ctx context.Context, email string) (*db.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) CheckEmailExists(ctx context.Context, email string) (bool, error) {
	u, _ := f.GetUserByEmail(ctx, email)
	return u != nil, nil
}

func (f *fakeStore) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	if u := f.users[id]; u != nil {
		u.PasswordHash = passwordHash
	}
	return nil
}

func (f *fakeStore) UpdateUserName(ctx context.Context, id uuid.UUID, firstName, lastName string) error {
	if u := f.users[id]; u != nil {
		u.FirstName = firstName
		u.LastName = lastName
	}
	return nil
}

func (f *fakeStore) CreateResume(ctx context.Context, userID uuid.UUID, filePath, originalFilename string) (uuid.UUID, error) {
	id := uuid.New()
	f.resumes[id] = &db.Resume{
		ID:               id,
		UserID:           userID,
		FilePath:         filePath,
		OriginalFilename: originalFilename,
		ParsedData:       []byte(`{}`),
		Skills:           db.StringArray{},
		Status:           db.ResumeStatusPending,
	}
	return id, nil
}

func (f *fakeStore) GetResume(ctx context.Context, id uuid.UUID) (*db.Resume, error) {
	return f.resumes[id], nil
}

func (f *fakeStore) ListResumesByUser(ctx context.Context, userID uuid.UUID) ([]*db.Resume, error) {
	var out []*db.Resume
	for _, r := range f.resumes {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeStore) ListResumesByUserAndStatus(ctx context.Context, userID uuid.UUID, status string) ([]*db.Resume, error) {
	var out []*db.Resume
	for _, r := range f.resumes {
		if r.UserID == userID && r.Status == status {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeStore) DeleteResume(ctx context.Context, id uuid.UUID) error {
	delete(f.resumes, id)
	return nil
}

func (f *fakeStore) GetProfileCompletion(ctx context.Context, userID uuid.UUID) (*db.ProfileCompletion, error) {
	return f.completions[userID], nil
}

func (f *fakeStore) UpsertProfileCompletion(ctx context.Context, userID uuid.UUID, score int, missingFields, suggestions []string) error {
	f.completions[userID] = &db.ProfileCompletion{
		UserID:          userID,
		CompletionScore: score,
		MissingFields:   db.StringArray(missingFields),
		Suggestions:     db.StringArray(suggestions),
	}
	return nil
}

func (f *fakeStore) CreateJob(ctx context.Context, job *db.Job) (string, error) {
	job.ID = uuid.New()
	if job.Slug == "" {
		job.Slug = db.Slugify(job.Title + " " + job.Company)
	}
	f.jobs[job.ID] = job
	return job.Slug, nil
}

func (f *fakeStore) GetJobBySlug(ctx context.Context, slug string) (*db.Job, error) {
	for _, j := range f.jobs {
		if j.Slug == slug {
			// Return a copy, like the real store scanning a row, so handler
			// mutations of the returned job don't alias the stored one.
			copied := *j
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) ListActiveJobs(ctx context.Context, filter db.JobFilter) ([]*db.Job, error) {
	var out []*db.Job
	for _, j := range f.jobs {
		if !j.IsActive() {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(j.Title), strings.ToLower(filter.Search)) {
			continue
		}
		out = append(out, j)
	}
	return out, nil
}

func (f *fakeStore) IncrementJobViews(ctx context.Context, id uuid.UUID) error {
	if j := f.jobs[id]; j != nil {
		j.ViewsCount++
	}
	return nil
}

func (f *fakeStore) IncrementJobApplications(ctx context.Context, id uuid.UUID) error {
	if j := f.jobs[id]; j != nil {
		j.ApplicationsCount++
	}
	return nil
}

func (f *fakeStore) DecrementJobApplications(ctx context.Context, id uuid.UUID) error {
	if j := f.jobs[id]; j != nil && j.ApplicationsCount > 0 {
		j.ApplicationsCount--
	}
	return nil
}

func (f *fakeStore) CreateApplication(ctx context.Context, app *db.JobApplication) (uuid.UUID, error) {
	app.ID = uuid.New()
	app.Status = db.ApplicationStatusPending
	f.applications[app.ID] = app
	return app.ID, nil
}

func (f *fakeStore) GetApplicationByJobAndApplicant(ctx context.Context, jobID, applicantID uuid.UUID) (*db.JobApplication, error) {
	for _, a := range f.applications {
		if a.JobID == jobID && a.ApplicantID == applicantID {
			return a, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) ListApplicationsByApplicant(ctx context.Context, applicantID uuid.UUID) ([]*db.JobApplication, error) {
	var out []*db.JobApplication
	for _, a := range f.applications {
		if a.ApplicantID == applicantID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeStore) ReviveApplication(ctx context.Context, app *db.JobApplication) error {
	stored := f.applications[app.ID]
	if stored == nil {
		return fmt.Errorf("application not found: %s", app.ID)
	}
	stored.ResumeID = app.ResumeID
	stored.CoverLetter = app.CoverLetter
	stored.Status = app.Status
	stored.MatchScore = app.MatchScore
	stored.MatchingSkills = app.MatchingSkills
	stored.MissingSkills = app.MissingSkills
	return nil
}

func (f *fakeStore) UpdateApplicationStatus(ctx context.Context, id uuid.UUID, status string) error {
	if a := f.applications[id]; a != nil {
		a.Status = status
	}
	return nil
}

func (f *fakeStore) GetSavedJob(ctx context.Context, userID, jobID uuid.UUID) (*db.SavedJob, error) {
	if f.saved[userID][jobID] {
		return &db.SavedJob{UserID: userID, JobID: jobID}, nil
	}
	return nil, nil
}

func (f *fakeStore) CreateSavedJob(ctx context.Context, userID, jobID uuid.UUID) error {
	if f.saved[userID] == nil {
		f.saved[userID] = make(map[uuid.UUID]bool)
	}
	f.saved[userID][jobID] = true
	return nil
}

func (f *fakeStore) DeleteSavedJob(ctx context.Context, userID, jobID uuid.UUID) error {
	delete(f.saved[userID], jobID)
	return nil
}

func (f *fakeStore) ListSavedJobs(ctx context.Context, userID uuid.UUID) ([]*db.Job, error) {
	var out []*db.Job
	for jobID := range f.saved[userID] {
		if j := f.jobs[jobID]; j != nil {
			out = append(out, j)
		}
	}
	return out, nil
}

// fakeProcessor marks every processed resume completed with fixed skills.
type fakeProcessor struct {
	store  *fakeStore
	skills []string
	fail   bool
}

func (p *fakeProcessor) Process(ctx context.Context, resume *db.Resume) error {
	stored := p.store.resumes[resume.ID]
	if p.fail {
		stored.Status = db.ResumeStatusFailed
		resume.Status = db.ResumeStatusFailed
		detail := "model returned garbage"
		stored.ErrorMessage = &detail
		resume.ErrorMessage = &detail
		return nil
	}
	stored.Status = db.ResumeStatusCompleted
	stored.Skills = db.StringArray(p.skills)
	resume.Status = db.ResumeStatusCompleted
	resume.Skills = db.StringArray(p.skills)
	return nil
}

// fakeImporter returns a fixed draft.
type fakeImporter struct {
	draft *jobimport.Draft
	err   error
}

func (f *fakeImporter) Import(ctx context.Context, urlStr string) (*jobimport.Draft, error) {
	if f.err != nil {
		return nil, f.err
	}
	d := *f.draft
	d.SourceURL = urlStr
	return &d, nil
}

// newTestServer builds a Server over the fake store with rate limiting
// disabled.
func newTestServer(t *testing.T, store *fakeStore) *Server {
	t.Helper()

	passwordConfig := &config.PasswordConfig{BcryptCost: 10}
	jwtConfig := &config.JWTConfig{
		Secret:          "test-secret-key-for-jwt-signing-minimum-32-bytes",
		ExpirationHours: 24,
	}

	userService := NewUserService(store, passwordConfig)
	jwtService := NewJWTService(jwtConfig)

	s := &Server{
		db:          store,
		cfg:         &config.AppConfig{UploadDir: t.TempDir(), MaxUploadMB: 5, AllowedTypes: []string{"pdf", "docx"}},
		rateLimiter: ratelimit.NewLimiter(&ratelimit.Config{Enabled: false}),
		jwtService:  jwtService,
		userService: userService,
		scorer:      profile.NewScorer(store),
		processor:   &fakeProcessor{store: store, skills: []string{"Go", "SQL"}},
		importer:    &fakeImporter{},
	}
	s.authHandler = NewAuthHandler(userService, jwtService)
	return s
}

// setUserIDInContext attaches an authenticated user ID the way the auth
// middleware does.
func setUserIDInContext(r *http.Request, userID uuid.UUID) *http.Request {
	ctx := context.WithValue(r.Context(), middleware.UserIDKey(), userID)
	return r.WithContext(ctx)
}

func addUser(store *fakeStore, role string) *db.User {
	id := uuid.New()
	u := &db.User{ID: id, FirstName: "Jane", LastName: "Doe", Email: "jane-" + id.String()[:8] + "@example.com", Role: role, IsActive: true}
	store.users[id] = u
	return u
}

func addActiveJob(store *fakeStore, title string, requiredSkills []string) *db.Job {
	id := uuid.New()
	j := &db.Job{
		ID:             id,
		Slug:           db.Slugify(title),
		Title:          title,
		Company:        "Acme",
		Description:    "Build things",
		RequiredSkills: db.StringArray(requiredSkills),
		Status:         db.JobStatusActive,
	}
	store.jobs[id] = j
	return j
}
