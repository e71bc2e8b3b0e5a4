package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/job-board/internal/db"
)

func multipartUpload(t *testing.T, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return &body, writer.FormDataContentType()
}

func TestHandleUploadResume_Success(t *testing.T) {
	store := newFakeStore()
	server := newTestServer(t, store)
	user := addUser(store, db.RoleCandidate)

	body, contentType := multipartUpload(t, "resume.pdf", []byte("%PDF-1.4 fake"))
	req := httptest.NewRequest(http.MethodPost, "/resumes", body)
	req.Header.Set("Content-Type", contentType)
	req = setUserIDInContext(req, user.ID)
	w := httptest.NewRecorder()

	server.handleUploadResume(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	var resume db.Resume
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resume))
	assert.Equal(t, db.ResumeStatusCompleted, resume.Status)
	assert.Equal(t, "resume.pdf", resume.OriginalFilename)
	assert.Equal(t, db.StringArray{"Go", "SQL"}, resume.Skills)
	assert.Equal(t, user.ID, resume.UserID)
}

func TestHandleUploadResume_ParseFailureStillCreatesRecord(t *testing.T) {
	store := newFakeStore()
	server := newTestServer(t, store)
	server.processor = &fakeProcessor{store: store, fail: true}
	user := addUser(store, db.RoleCandidate)

	body, contentType := multipartUpload(t, "resume.pdf", []byte("%PDF-1.4 fake"))
	req := httptest.NewRequest(http.MethodPost, "/resumes", body)
	req.Header.Set("Content-Type", contentType)
	req = setUserIDInContext(req, user.ID)
	w := httptest.NewRecorder()

	server.handleUploadResume(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	var resume db.Resume
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resume))
	assert.Equal(t, db.ResumeStatusFailed, resume.Status)
	require.NotNil(t, resume.ErrorMessage)
	assert.Equal(t, "model returned garbage", *resume.ErrorMessage)
}

func TestHandleUploadResume_UnsupportedType(t *testing.T) {
	store := newFakeStore()
	server := newTestServer(t, store)
	user := addUser(store, db.RoleCandidate)

	body, contentType := multipartUpload(t, "resume.txt", []byte("plain text"))
	req := httptest.NewRequest(http.MethodPost, "/resumes", body)
	req.Header.Set("Content-Type", contentType)
	req = setUserIDInContext(req, user.ID)
	w := httptest.NewRecorder()

	server.handleUploadResume(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Unsupported file type")
	assert.Empty(t, store.resumes)
}

func TestHandleUploadResume_MissingFile(t *testing.T) {
	store := newFakeStore()
	server := newTestServer(t, store)
	user := addUser(store, db.RoleCandidate)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/resumes", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req = setUserIDInContext(req, user.ID)
	w := httptest.NewRecorder()

	server.handleUploadResume(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Missing file field")
}

func TestHandleGetResume_OtherUsersResumeIsHidden(t *testing.T) {
	store := newFakeStore()
	server := newTestServer(t, store)
	owner := addUser(store, db.RoleCandidate)
	intruder := addUser(store, db.RoleCandidate)

	resumeID, err := store.CreateResume(t.Context(), owner.ID, "/uploads/a.pdf", "a.pdf")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/resumes/"+resumeID.String(), nil)
	req.SetPathValue("id", resumeID.String())
	req = setUserIDInContext(req, intruder.ID)
	w := httptest.NewRecorder()

	server.handleGetResume(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleGetResumeStatus(t *testing.T) {
	store := newFakeStore()
	server := newTestServer(t, store)
	user := addUser(store, db.RoleCandidate)

	resumeID, err := store.CreateResume(t.Context(), user.ID, "/uploads/a.pdf", "a.pdf")
	require.NoError(t, err)
	detail := "LLM API call failed: quota exhausted"
	store.resumes[resumeID].Status = db.ResumeStatusFailed
	store.resumes[resumeID].ErrorMessage = &detail

	req := httptest.NewRequest(http.MethodGet, "/resumes/"+resumeID.String()+"/status", nil)
	req.SetPathValue("id", resumeID.String())
	req = setUserIDInContext(req, user.ID)
	w := httptest.NewRecorder()

	server.handleGetResumeStatus(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var status map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.Equal(t, db.ResumeStatusFailed, status["status"])
	assert.Equal(t, detail, status["error_message"])
}

func TestHandleDeleteResume(t *testing.T) {
	store := newFakeStore()
	server := newTestServer(t, store)
	user := addUser(store, db.RoleCandidate)

	resumeID, err := store.CreateResume(t.Context(), user.ID, "/uploads/a.pdf", "a.pdf")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodDelete, "/resumes/"+resumeID.String(), nil)
	req.SetPathValue("id", resumeID.String())
	req = setUserIDInContext(req, user.ID)
	w := httptest.NewRecorder()

	server.handleDeleteResume(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, store.resumes)

	// Deleting the resume refreshes the completion record.
	completion := store.completions[user.ID]
	require.NotNil(t, completion)
	assert.Contains(t, []string(completion.MissingFields), "resume")
}

func TestHandleGetResume_InvalidID(t *testing.T) {
	store := newFakeStore()
	server := newTestServer(t, store)
	user := addUser(store, db.RoleCandidate)

	req := httptest.NewRequest(http.MethodGet, "/resumes/not-a-uuid", nil)
	req.SetPathValue("id", "not-a-uuid")
	req = setUserIDInContext(req, user.ID)
	w := httptest.NewRecorder()

	server.handleGetResume(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFileExtension(t *testing.T) {
	assert.Equal(t, "pdf", fileExtension("resume.PDF"))
	assert.Equal(t, "docx", fileExtension("my.resume.docx"))
	assert.Equal(t, "", fileExtension("noextension"))
	assert.Equal(t, "", fileExtension("trailing."))
}

func TestHandleUploadResume_Unauthenticated(t *testing.T) {
	store := newFakeStore()
	server := newTestServer(t, store)
	body, contentType := multipartUpload(t, "resume.pdf", []byte("%PDF"))
	req := httptest.NewRequest(http.MethodPost, "/resumes", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()

	server.handleUploadResume(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
