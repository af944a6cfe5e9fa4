package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"job-aggregator/internal/models"
	"job-aggregator/internal/resume"
)

type mockSearcher struct {
	jobs    []models.Job
	err     error
	query   string
	filters models.SearchFilters
}

func (m *mockSearcher) SearchAll(ctx context.Context, query string, filters models.SearchFilters) ([]models.Job, error) {
	m.query = query
	m.filters = filters
	return m.jobs, m.err
}

type mockSender struct {
	sent []models.ApplicationNotification
	err  error
}

func (m *mockSender) SendApplicationNotification(ctx context.Context, n models.ApplicationNotification) error {
	m.sent = append(m.sent, n)
	return m.err
}

var fixedNow = time.Date(2026, 3, 20, 9, 30, 0, 0, time.UTC)

func newTestRouter(searcher JobSearcher, sender NotificationSender, store ResumeStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewHandler(searcher, sender, store)
	handler.now = func() time.Time { return fixedNow }

	r := gin.New()
	handler.Register(r)
	r.GET("/health", HealthCheck)
	return r
}

func do(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSearchJobsDefaults(t *testing.T) {
	searcher := &mockSearcher{jobs: []models.Job{{ID: "1", Title: "Product Analyst", Source: "LinkedIn"}}}
	r := newTestRouter(searcher, &mockSender{}, resume.NewStore())

	w := do(r, httptest.NewRequest(http.MethodGet, "/jobs", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	want := models.SearchFilters{ContractType: "B2B", Country: "Portugal", RemoteOnly: false}
	if searcher.filters != want || searcher.query != "" {
		t.Errorf("Expected defaults %+v with empty query, got %+v %q", want, searcher.filters, searcher.query)
	}

	var response struct {
		Jobs []models.Job `json:"jobs"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if len(response.Jobs) != 1 || response.Jobs[0].Title != "Product Analyst" {
		t.Errorf("Unexpected jobs: %+v", response.Jobs)
	}
}

func TestSearchJobsParams(t *testing.T) {
	tests := []struct {
		name  string
		url   string
		query string
		want  models.SearchFilters
	}{
		{
			name:  "all params",
			url:   "/jobs?q=Product+Analyst&contractType=Contract&country=Spain&isRemote=true",
			query: "Product Analyst",
			want:  models.SearchFilters{ContractType: "Contract", Country: "Spain", RemoteOnly: true},
		},
		{
			name: "remote only for the literal true",
			url:  "/jobs?isRemote=TRUE",
			want: models.SearchFilters{ContractType: "B2B", Country: "Portugal", RemoteOnly: false},
		},
		{
			name: "empty values use defaults",
			url:  "/jobs?contractType=&country=&isRemote=1",
			want: models.SearchFilters{ContractType: "B2B", Country: "Portugal", RemoteOnly: false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			searcher := &mockSearcher{}
			r := newTestRouter(searcher, &mockSender{}, resume.NewStore())

			w := do(r, httptest.NewRequest(http.MethodGet, tt.url, nil))
			if w.Code != http.StatusOK {
				t.Fatalf("Expected status 200, got %d", w.Code)
			}
			if searcher.filters != tt.want || searcher.query != tt.query {
				t.Errorf("Expected %+v %q, got %+v %q", tt.want, tt.query, searcher.filters, searcher.query)
			}
			if !strings.Contains(w.Body.String(), `"jobs":[]`) {
				t.Errorf("Expected an empty jobs array, got %s", w.Body.String())
			}
		})
	}
}

func TestSearchJobsError(t *testing.T) {
	searcher := &mockSearcher{err: errors.New("dial tcp 10.0.0.1:443: secret detail")}
	r := newTestRouter(searcher, &mockSender{}, resume.NewStore())

	w := do(r, httptest.NewRequest(http.MethodGet, "/jobs", nil))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("Expected status 500, got %d", w.Code)
	}
	if strings.Contains(w.Body.String(), "secret detail") {
		t.Errorf("Internal error leaked to client: %s", w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"error"`) {
		t.Errorf("Expected an error message, got %s", w.Body.String())
	}
}

func TestApply(t *testing.T) {
	sender := &mockSender{}
	r := newTestRouter(&mockSearcher{}, sender, resume.NewStore())

	body := `{"jobId":"2","jobTitle":"Product Analyst","company":"StartupX","location":"Remote"}`
	req := httptest.NewRequest(http.MethodPost, "/jobs", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := do(r, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	var response struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if !response.Success || response.Message == "" {
		t.Errorf("Unexpected response: %+v", response)
	}

	if len(sender.sent) != 1 {
		t.Fatalf("Expected exactly one notification, got %d", len(sender.sent))
	}
	want := models.ApplicationNotification{
		JobTitle:        "Product Analyst",
		Company:         "StartupX",
		Location:        "Remote",
		ApplicationDate: fixedNow,
		Status:          models.StatusApplied,
	}
	if sender.sent[0] != want {
		t.Errorf("Expected %+v, got %+v", want, sender.sent[0])
	}
}

func TestApplyFailures(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		sendErr   error
		wantSends int
	}{
		{"malformed json", `{"jobTitle":`, nil, 0},
		{"empty object", `{}`, nil, 0},
		{"missing title", `{"jobId":"1","company":"X"}`, nil, 0},
		{"notification failure", `{"jobId":"1","jobTitle":"PM","company":"X"}`, errors.New("smtp down"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := &mockSender{err: tt.sendErr}
			r := newTestRouter(&mockSearcher{}, sender, resume.NewStore())

			req := httptest.NewRequest(http.MethodPost, "/jobs", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := do(r, req)

			if w.Code != http.StatusInternalServerError {
				t.Errorf("Expected status 500, got %d", w.Code)
			}
			if len(sender.sent) != tt.wantSends {
				t.Errorf("Expected %d sends, got %d", tt.wantSends, len(sender.sent))
			}
			if strings.Contains(w.Body.String(), "smtp down") {
				t.Errorf("Internal error leaked to client: %s", w.Body.String())
			}
		})
	}
}

func uploadRequest(t *testing.T, field, fileName string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if fileName != "" {
		fw, err := mw.CreateFormFile(field, fileName)
		if err != nil {
			t.Fatalf("Failed to create form file: %v", err)
		}
		fw.Write([]byte("%PDF-1.4 resume"))
	} else {
		mw.WriteField("note", "no file")
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/resume", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

type resumeResponse struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Resume  models.ResumeRecord `json:"resume"`
}

func TestResumeLifecycle(t *testing.T) {
	r := newTestRouter(&mockSearcher{}, &mockSender{}, resume.NewStore())

	w := do(r, httptest.NewRequest(http.MethodGet, "/resume", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected status 404 before any upload, got %d", w.Code)
	}

	w = do(r, uploadRequest(t, "resume", "cv-v1.pdf"))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	var uploaded resumeResponse
	if err := json.Unmarshal(w.Body.Bytes(), &uploaded); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if !uploaded.Success || uploaded.Resume.FileName != "cv-v1.pdf" || !uploaded.Resume.UploadDate.Equal(fixedNow) {
		t.Errorf("Unexpected upload response: %+v", uploaded)
	}

	w = do(r, uploadRequest(t, "resume", "cv-v2.pdf"))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	w = do(r, httptest.NewRequest(http.MethodGet, "/resume", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	var current resumeResponse
	if err := json.Unmarshal(w.Body.Bytes(), &current); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if current.Resume.FileName != "cv-v2.pdf" {
		t.Errorf("Expected latest upload cv-v2.pdf, got %q", current.Resume.FileName)
	}
	if current.Resume.ID == "" || current.Resume.Content != resume.PlaceholderContent {
		t.Errorf("Unexpected resume record: %+v", current.Resume)
	}
}

func TestUploadResumeMissingFile(t *testing.T) {
	store := resume.NewStore()
	r := newTestRouter(&mockSearcher{}, &mockSender{}, store)

	for _, req := range []*http.Request{
		uploadRequest(t, "resume", ""),
		uploadRequest(t, "attachment", "cv.pdf"),
	} {
		w := do(r, req)
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	}
	if _, err := store.Get(); !errors.Is(err, resume.ErrNotFound) {
		t.Errorf("Expected store to stay empty, got %v", err)
	}
}

func TestHealthCheck(t *testing.T) {
	r := newTestRouter(&mockSearcher{}, &mockSender{}, resume.NewStore())
	w := do(r, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"ok"`) {
		t.Errorf("Unexpected health response %d %s", w.Code, w.Body.String())
	}
}
