package web

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dunamismax/go-cli/models"
	"github.com/dunamismax/go-cli/store"
)

// setupTestServer creates a server backed by a real database in a
// temp dir.
func setupTestServer(t *testing.T) (http.Handler, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "web_test_*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}

	st, err := store.Open(filepath.Join(tmpDir, "test.db"))
	if err != nil {
		os.RemoveAll(tmpDir)
		t.Fatalf("failed to open store: %v", err)
	}

	cfg := &models.AppConfig{AppName: "api-test", SessionTTL: 30}
	srv := NewServer(cfg, st)

	cleanup := func() {
		st.Close()
		os.RemoveAll(tmpDir)
	}

	return srv.Router(), cleanup
}

func doJSON(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(buf)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func registerUser(t *testing.T, h http.Handler, username, email string) {
	t.Helper()

	rec := doJSON(t, h, http.MethodPost, "/api/v1/users", "", map[string]string{
		"username": username,
		"email":    email,
		"password": "s3cret-pass",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("failed to register %s: status %d, body %s", username, rec.Code, rec.Body.String())
	}
}

func loginUser(t *testing.T, h http.Handler, username string) string {
	t.Helper()

	rec := doJSON(t, h, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": username,
		"password": "s3cret-pass",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("failed to log in %s: status %d, body %s", username, rec.Code, rec.Body.String())
	}

	var resp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode login response: %v", err)
	}
	if resp.Data.Token == "" {
		t.Fatal("login response has no token")
	}
	return resp.Data.Token
}

func authToken(t *testing.T, h http.Handler) string {
	t.Helper()
	registerUser(t, h, "alice", "alice@example.com")
	return loginUser(t, h, "alice")
}

func TestCreateUser(t *testing.T) {
	h, cleanup := setupTestServer(t)
	defer cleanup()

	registerUser(t, h, "alice", "alice@example.com")

	tests := []struct {
		name           string
		body           map[string]string
		expectedStatus int
		shouldContain  string
	}{
		{
			name: "valid user",
			body: map[string]string{
				"username": "bob", "email": "bob@example.com", "password": "s3cret-pass",
			},
			expectedStatus: http.StatusCreated,
			shouldContain:  `"username":"bob"`,
		},
		{
			name: "duplicate username",
			body: map[string]string{
				"username": "alice", "email": "other@example.com", "password": "s3cret-pass",
			},
			expectedStatus: http.StatusBadRequest,
			shouldContain:  "Username already registered",
		},
		{
			name: "duplicate email",
			body: map[string]string{
				"username": "alice2", "email": "alice@example.com", "password": "s3cret-pass",
			},
			expectedStatus: http.StatusBadRequest,
			shouldContain:  "Email already registered",
		},
		{
			name: "missing username",
			body: map[string]string{
				"email": "x@example.com", "password": "s3cret-pass",
			},
			expectedStatus: http.StatusBadRequest,
			shouldContain:  "username is required",
		},
		{
			name: "bad email",
			body: map[string]string{
				"username": "carol", "email": "not-an-email", "password": "s3cret-pass",
			},
			expectedStatus: http.StatusBadRequest,
			shouldContain:  "email address is not valid",
		},
		{
			name: "short password",
			body: map[string]string{
				"username": "carol", "email": "carol@example.com", "password": "short",
			},
			expectedStatus: http.StatusBadRequest,
			shouldContain:  "at least 8 characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, h, http.MethodPost, "/api/v1/users", "", tt.body)

			if rec.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d (body %s)", tt.expectedStatus, rec.Code, rec.Body.String())
			}
			if !strings.Contains(rec.Body.String(), tt.shouldContain) {
				t.Errorf("response should contain %q, got %s", tt.shouldContain, rec.Body.String())
			}
		})
	}

	// Password hashes never leave the server.
	rec := doJSON(t, h, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": "alice", "password": "s3cret-pass",
	})
	if strings.Contains(rec.Body.String(), "password_hash") {
		t.Error("response leaks the password hash")
	}
}

func TestLogin(t *testing.T) {
	h, cleanup := setupTestServer(t)
	defer cleanup()

	registerUser(t, h, "alice", "alice@example.com")

	tests := []struct {
		name           string
		body           map[string]string
		expectedStatus int
	}{
		{
			name:           "valid credentials",
			body:           map[string]string{"username": "alice", "password": "s3cret-pass"},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "wrong password",
			body:           map[string]string{"username": "alice", "password": "wrong-pass"},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "unknown user",
			body:           map[string]string{"username": "nobody", "password": "s3cret-pass"},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, h, http.MethodPost, "/api/v1/auth/login", "", tt.body)
			if rec.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, rec.Code)
			}
			if tt.expectedStatus != http.StatusOK && !strings.Contains(rec.Body.String(), "Incorrect username or password") {
				t.Errorf("unexpected failure message: %s", rec.Body.String())
			}
		})
	}
}

func TestAuthRequired(t *testing.T) {
	h, cleanup := setupTestServer(t)
	defer cleanup()

	tests := []struct {
		name  string
		token string
	}{
		{name: "no token", token: ""},
		{name: "unknown token", token: "not-a-real-token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, h, http.MethodGet, "/api/v1/tasks", tt.token, nil)
			if rec.Code != http.StatusUnauthorized {
				t.Errorf("expected status 401, got %d", rec.Code)
			}
		})
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	h, cleanup := setupTestServer(t)
	defer cleanup()

	token := authToken(t, h)

	rec := doJSON(t, h, http.MethodGet, "/api/v1/auth/me", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200 before logout, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"username":"alice"`) {
		t.Errorf("me response should name the user, got %s", rec.Body.String())
	}

	rec = doJSON(t, h, http.MethodPost, "/api/v1/auth/logout", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200 on logout, got %d", rec.Code)
	}

	rec = doJSON(t, h, http.MethodGet, "/api/v1/auth/me", token, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401 after logout, got %d", rec.Code)
	}
}

func TestUserCRUD(t *testing.T) {
	h, cleanup := setupTestServer(t)
	defer cleanup()

	token := authToken(t, h)
	registerUser(t, h, "bob", "bob@example.com")

	rec := doJSON(t, h, http.MethodGet, "/api/v1/users/2", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"username":"bob"`) {
		t.Errorf("response should contain bob, got %s", rec.Body.String())
	}

	rec = doJSON(t, h, http.MethodPut, "/api/v1/users/2", token, map[string]any{
		"full_name": "Bob Builder",
		"is_active": false,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200 on update, got %d (body %s)", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Bob Builder") || !strings.Contains(body, `"is_active":false`) {
		t.Errorf("update response missing changes: %s", body)
	}

	// A disabled account cannot log in.
	rec = doJSON(t, h, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": "bob", "password": "s3cret-pass",
	})
	if rec.Code != http.StatusForbidden {
		t.Errorf("expected status 403 for disabled account, got %d", rec.Code)
	}

	rec = doJSON(t, h, http.MethodDelete, "/api/v1/users/2", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200 on delete, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "User deleted successfully") {
		t.Errorf("unexpected delete message: %s", rec.Body.String())
	}

	rec = doJSON(t, h, http.MethodGet, "/api/v1/users/2", token, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status 404 after delete, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "User not found") {
		t.Errorf("unexpected not-found message: %s", rec.Body.String())
	}
}

func TestListUsersPagination(t *testing.T) {
	h, cleanup := setupTestServer(t)
	defer cleanup()

	token := authToken(t, h)
	registerUser(t, h, "bob", "bob@example.com")
	registerUser(t, h, "carol", "carol@example.com")

	rec := doJSON(t, h, http.MethodGet, "/api/v1/users?page=1&per_page=2", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp struct {
		Data []models.User `json:"data"`
		Meta meta          `json:"meta"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode list response: %v", err)
	}
	if len(resp.Data) != 2 {
		t.Errorf("expected 2 users on page 1, got %d", len(resp.Data))
	}
	want := meta{Total: 3, Page: 1, PerPage: 2, Pages: 2}
	if resp.Meta != want {
		t.Errorf("meta = %+v, expected %+v", resp.Meta, want)
	}

	rec = doJSON(t, h, http.MethodGet, "/api/v1/users?page=2&per_page=2", token, nil)
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode page 2: %v", err)
	}
	if len(resp.Data) != 1 {
		t.Errorf("expected 1 user on page 2, got %d", len(resp.Data))
	}
}

func TestTaskCRUD(t *testing.T) {
	h, cleanup := setupTestServer(t)
	defer cleanup()

	token := authToken(t, h)

	rec := doJSON(t, h, http.MethodPost, "/api/v1/tasks", token, map[string]string{
		"title": "write report", "priority": "high",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d (body %s)", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"title":"write report"`) {
		t.Errorf("create response missing title: %s", rec.Body.String())
	}

	rec = doJSON(t, h, http.MethodGet, "/api/v1/tasks/1", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	rec = doJSON(t, h, http.MethodPut, "/api/v1/tasks/1", token, map[string]string{
		"description": "quarterly numbers",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200 on update, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "quarterly numbers") || !strings.Contains(body, "write report") {
		t.Errorf("partial update should keep the title: %s", body)
	}

	rec = doJSON(t, h, http.MethodPost, "/api/v1/tasks/1/complete", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200 on complete, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"completed":true`) {
		t.Errorf("complete should set completed: %s", rec.Body.String())
	}

	rec = doJSON(t, h, http.MethodPost, "/api/v1/tasks/1/uncomplete", token, nil)
	if !strings.Contains(rec.Body.String(), `"completed":false`) {
		t.Errorf("uncomplete should clear completed: %s", rec.Body.String())
	}

	rec = doJSON(t, h, http.MethodDelete, "/api/v1/tasks/1", token, nil)
	if !strings.Contains(rec.Body.String(), "Task deleted successfully") {
		t.Errorf("unexpected delete message: %s", rec.Body.String())
	}

	rec = doJSON(t, h, http.MethodGet, "/api/v1/tasks/1", token, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status 404 after delete, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Task not found") {
		t.Errorf("unexpected not-found message: %s", rec.Body.String())
	}
}

func TestCreateTaskValidation(t *testing.T) {
	h, cleanup := setupTestServer(t)
	defer cleanup()

	token := authToken(t, h)

	tests := []struct {
		name          string
		body          map[string]string
		shouldContain string
	}{
		{
			name:          "empty title",
			body:          map[string]string{"title": "   "},
			shouldContain: "title is required",
		},
		{
			name:          "bad priority",
			body:          map[string]string{"title": "x", "priority": "urgent"},
			shouldContain: "priority must be one of",
		},
		{
			name:          "title too long",
			body:          map[string]string{"title": strings.Repeat("a", 201)},
			shouldContain: "at most 200 characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, h, http.MethodPost, "/api/v1/tasks", token, tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected status 400, got %d", rec.Code)
			}
			if !strings.Contains(rec.Body.String(), tt.shouldContain) {
				t.Errorf("response should contain %q, got %s", tt.shouldContain, rec.Body.String())
			}
		})
	}
}

func TestListTasksFilters(t *testing.T) {
	h, cleanup := setupTestServer(t)
	defer cleanup()

	token := authToken(t, h)

	seed := []map[string]any{
		{"title": "groceries", "priority": "low"},
		{"title": "taxes", "priority": "high"},
		{"title": "deploy", "priority": "high", "completed": true},
	}
	for _, body := range seed {
		rec := doJSON(t, h, http.MethodPost, "/api/v1/tasks", token, body)
		if rec.Code != http.StatusCreated {
			t.Fatalf("failed to seed task: %d", rec.Code)
		}
	}

	tests := []struct {
		name          string
		query         string
		expectedTotal int
		shouldContain []string
		shouldNotFind []string
	}{
		{
			name:          "all tasks",
			query:         "",
			expectedTotal: 3,
			shouldContain: []string{"groceries", "taxes", "deploy"},
		},
		{
			name:          "completed only",
			query:         "?completed=true",
			expectedTotal: 1,
			shouldContain: []string{"deploy"},
			shouldNotFind: []string{"groceries", "taxes"},
		},
		{
			name:          "high priority pending",
			query:         "?priority=high&completed=false",
			expectedTotal: 1,
			shouldContain: []string{"taxes"},
			shouldNotFind: []string{"deploy", "groceries"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, h, http.MethodGet, "/api/v1/tasks"+tt.query, token, nil)
			if rec.Code != http.StatusOK {
				t.Fatalf("expected status 200, got %d", rec.Code)
			}

			var resp struct {
				Meta meta `json:"meta"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if resp.Meta.Total != tt.expectedTotal {
				t.Errorf("expected total %d, got %d", tt.expectedTotal, resp.Meta.Total)
			}

			body := rec.Body.String()
			for _, s := range tt.shouldContain {
				if !strings.Contains(body, s) {
					t.Errorf("response should contain %q", s)
				}
			}
			for _, s := range tt.shouldNotFind {
				if strings.Contains(body, s) {
					t.Errorf("response should not contain %q", s)
				}
			}
		})
	}
}

func TestJobEndpoints(t *testing.T) {
	h, cleanup := setupTestServer(t)
	defer cleanup()

	token := authToken(t, h)

	rec := doJSON(t, h, http.MethodPost, "/api/v1/jobs", token, map[string]any{
		"name":    "send_email",
		"payload": map[string]string{"to": "bob@example.com"},
	})
	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected status 202, got %d (body %s)", rec.Code, rec.Body.String())
	}

	var resp struct {
		Data models.Job `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode enqueue response: %v", err)
	}
	if resp.Data.ID == "" {
		t.Fatal("enqueued job has no id")
	}
	if resp.Data.Status != models.JobQueued {
		t.Errorf("expected status queued, got %s", resp.Data.Status)
	}

	rec = doJSON(t, h, http.MethodGet, "/api/v1/jobs/"+resp.Data.ID, token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "bob@example.com") {
		t.Errorf("job should carry its payload: %s", rec.Body.String())
	}

	rec = doJSON(t, h, http.MethodGet, "/api/v1/jobs/missing-id", token, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rec.Code)
	}

	rec = doJSON(t, h, http.MethodPost, "/api/v1/jobs", token, map[string]string{"name": "  "})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400 for empty name, got %d", rec.Code)
	}

	rec = doJSON(t, h, http.MethodGet, "/api/v1/jobs", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200 listing jobs, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"total":1`) {
		t.Errorf("list should count one job: %s", rec.Body.String())
	}
}

func TestHealthAndHome(t *testing.T) {
	h, cleanup := setupTestServer(t)
	defer cleanup()

	rec := doJSON(t, h, http.MethodGet, "/health", "", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Errorf("health should report ok: %s", rec.Body.String())
	}

	rec = doJSON(t, h, http.MethodGet, "/", "", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "api-test") {
		t.Errorf("home should name the app: %s", rec.Body.String())
	}
}

func TestNotFoundRoute(t *testing.T) {
	h, cleanup := setupTestServer(t)
	defer cleanup()

	rec := doJSON(t, h, http.MethodGet, "/nonexistent/route", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"success":false`) {
		t.Errorf("404 should use the JSON envelope: %s", rec.Body.String())
	}
}
