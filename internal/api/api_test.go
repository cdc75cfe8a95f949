package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/student-records-api/internal/api"
	"github.com/student-records-api/internal/auth"
	"github.com/student-records-api/internal/config"
	"github.com/student-records-api/internal/mocks"
	"github.com/student-records-api/internal/models"
	"github.com/student-records-api/internal/repository"
	"github.com/student-records-api/internal/service"
	"github.com/student-records-api/internal/tabular"
)

type testEnv struct {
	router   *gin.Engine
	issuer   *auth.TokenIssuer
	authSvc  *mocks.MockAuthService
	imports  *mocks.MockImportService
	students *mocks.MockStudentRepository
	users    *mocks.MockUserRepository
}

func setupTestRouter(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	env := &testEnv{
		authSvc:  mocks.NewMockAuthService(),
		imports:  mocks.NewMockImportService(),
		students: mocks.NewMockStudentRepository(),
		users:    mocks.NewMockUserRepository(),
	}

	services := &service.Services{
		Auth:   env.authSvc,
		Import: env.imports,
	}
	repos := &repository.Repositories{
		User:     env.users,
		Student:  env.students,
		Settings: mocks.NewMockSettingsRepository(),
		Import:   mocks.NewMockImportRepository(),
	}

	env.issuer = auth.NewTokenIssuer("test-secret", time.Hour)
	cfg := &config.Config{
		Server: config.ServerConfig{Port: "5000"},
		Upload: config.UploadConfig{
			MaxUploadSize: 50 * 1024 * 1024,
			UploadDir:     t.TempDir(),
		},
	}

	env.router = api.NewRouter(services, repos, env.issuer, cfg, zerolog.Nop())
	return env
}

func (e *testEnv) tokenFor(t *testing.T, role models.Role) string {
	t.Helper()
	token, err := e.issuer.Issue(&models.User{
		ID: 7, Email: "staff@example.com", Username: "staff", Role: role,
	})
	if err != nil {
		t.Fatalf("issuing token: %v", err)
	}
	return token
}

func multipartUpload(t *testing.T, field, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("creating form file: %v", err)
	}
	fmt.Fprint(part, content)
	writer.Close()
	return body, writer.FormDataContentType()
}

func TestHealthEndpoint(t *testing.T) {
	env := setupTestRouter(t)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	if response["status"] != "healthy" {
		t.Errorf("Expected status 'healthy', got %v", response["status"])
	}
}

func TestRegisterEndpoint(t *testing.T) {
	env := setupTestRouter(t)

	body := bytes.NewBufferString(`{"email":"a@b.com","username":"a","password":"pw"}`)
	req := httptest.NewRequest("POST", "/register", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("Expected status 201, got %d", w.Code)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := setupTestRouter(t)
	env.authSvc.RegisterFunc = func(ctx context.Context, email, username, password string) (int64, error) {
		return 0, service.ErrDuplicateEmail
	}

	body := bytes.NewBufferString(`{"email":"a@b.com","username":"a","password":"pw"}`)
	req := httptest.NewRequest("POST", "/register", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}

func TestLoginEndpoint(t *testing.T) {
	env := setupTestRouter(t)
	env.authSvc.LoginFunc = func(ctx context.Context, email, password string) (*service.LoginResult, error) {
		return &service.LoginResult{
			Token: "issued-token", Email: email, Username: "a",
			Role: models.RoleTeacher, FirstName: "A", LastName: "B",
		}, nil
	}

	body := bytes.NewBufferString(`{"email":"a@b.com","password":"pw"}`)
	req := httptest.NewRequest("POST", "/login", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	if response["token"] != "issued-token" {
		t.Errorf("Expected token in response, got %v", response["token"])
	}
	if response["role"] != "teacher" {
		t.Errorf("Expected role teacher, got %v", response["role"])
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	env := setupTestRouter(t)
	env.authSvc.LoginFunc = func(ctx context.Context, email, password string) (*service.LoginResult, error) {
		return nil, service.ErrInvalidCredentials
	}

	// Wrong password and unknown email go through the same service error,
	// so the endpoint cannot distinguish them.
	for _, payload := range []string{
		`{"email":"known@b.com","password":"wrong"}`,
		`{"email":"ghost@b.com","password":"pw"}`,
	} {
		req := httptest.NewRequest("POST", "/login", bytes.NewBufferString(payload))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		env.router.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("Expected status 401, got %d", w.Code)
		}
	}
}

func TestLoginMissingFields(t *testing.T) {
	env := setupTestRouter(t)
	env.authSvc.LoginFunc = func(ctx context.Context, email, password string) (*service.LoginResult, error) {
		return nil, service.ErrValidation
	}

	req := httptest.NewRequest("POST", "/login", bytes.NewBufferString(`{"email":"a@b.com"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}

func TestGuardRejectsMissingToken(t *testing.T) {
	env := setupTestRouter(t)

	req := httptest.NewRequest("GET", "/students", nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", w.Code)
	}
}

func TestGuardRejectsBadTokens(t *testing.T) {
	env := setupTestRouter(t)

	expiredIssuer := auth.NewTokenIssuer("test-secret", -time.Minute)
	expired, _ := expiredIssuer.Issue(&models.User{ID: 7, Role: models.RoleTeacher})
	foreignIssuer := auth.NewTokenIssuer("other-secret", time.Hour)
	foreign, _ := foreignIssuer.Issue(&models.User{ID: 7, Role: models.RoleTeacher})

	for name, token := range map[string]string{
		"garbage": "not-a-token",
		"expired": expired,
		"foreign": foreign,
	} {
		req := httptest.NewRequest("GET", "/students", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		env.router.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s token: expected status 401, got %d", name, w.Code)
		}
	}
}

func TestGuardAllowsValidToken(t *testing.T) {
	env := setupTestRouter(t)

	req := httptest.NewRequest("GET", "/students", nil)
	req.Header.Set("Authorization", "Bearer "+env.tokenFor(t, models.RoleTeacher))
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
}

func TestGuardRoleSet(t *testing.T) {
	env := setupTestRouter(t)

	// The import endpoint admits administrators and faculty, not teachers.
	cases := []struct {
		role models.Role
		want int
	}{
		{models.RoleTeacher, http.StatusForbidden},
		{models.RoleFaculty, http.StatusOK},
		{models.RoleAdministrator, http.StatusOK},
	}
	for _, tc := range cases {
		body, contentType := multipartUpload(t, "file", "data.csv", "a,b\n1,2\n")
		req := httptest.NewRequest("POST", "/upload-xls/users", body)
		req.Header.Set("Content-Type", contentType)
		req.Header.Set("Authorization", "Bearer "+env.tokenFor(t, tc.role))
		w := httptest.NewRecorder()
		env.router.ServeHTTP(w, req)

		if w.Code != tc.want {
			t.Errorf("role %s: expected status %d, got %d", tc.role, tc.want, w.Code)
		}
	}
	// The forbidden request must never reach the import service.
	if env.imports.ImportCalls != 2 {
		t.Errorf("Expected 2 import calls, got %d", env.imports.ImportCalls)
	}
}

func TestAdminOnlyEndpoints(t *testing.T) {
	env := setupTestRouter(t)

	for _, tc := range []struct {
		role models.Role
		want int
	}{
		{models.RoleTeacher, http.StatusForbidden},
		{models.RoleFaculty, http.StatusForbidden},
		{models.RoleAdministrator, http.StatusOK},
	} {
		req := httptest.NewRequest("GET", "/users", nil)
		req.Header.Set("Authorization", "Bearer "+env.tokenFor(t, tc.role))
		w := httptest.NewRecorder()
		env.router.ServeHTTP(w, req)

		if w.Code != tc.want {
			t.Errorf("role %s: expected status %d, got %d", tc.role, tc.want, w.Code)
		}
	}
}

func TestImportEndpointNoFile(t *testing.T) {
	env := setupTestRouter(t)

	req := httptest.NewRequest("POST", "/upload-xls/users", nil)
	req.Header.Set("Authorization", "Bearer "+env.tokenFor(t, models.RoleAdministrator))
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
	if env.imports.ImportCalls != 0 {
		t.Error("Import service must not run without a file")
	}
}

func TestImportEndpointSuccess(t *testing.T) {
	env := setupTestRouter(t)
	env.imports.ImportFunc = func(ctx context.Context, filePath, table string) (*service.ImportSummary, error) {
		return &service.ImportSummary{Table: table, Inserted: 2}, nil
	}

	body, contentType := multipartUpload(t, "file", "data.csv", "a,b\n1,2\n3,4\n")
	req := httptest.NewRequest("POST", "/upload-xls/stud_profile", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+env.tokenFor(t, models.RoleAdministrator))
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	if response["inserted"].(float64) != 2 {
		t.Errorf("Expected 2 inserted, got %v", response["inserted"])
	}
	if env.imports.LastTable != "stud_profile" {
		t.Errorf("Expected table stud_profile, got %s", env.imports.LastTable)
	}
}

func TestImportEndpointUnknownTable(t *testing.T) {
	env := setupTestRouter(t)
	env.imports.ImportFunc = func(ctx context.Context, filePath, table string) (*service.ImportSummary, error) {
		return nil, fmt.Errorf("%w: %q", tabular.ErrUnknownTable, table)
	}

	body, contentType := multipartUpload(t, "file", "data.csv", "a,b\n1,2\n")
	req := httptest.NewRequest("POST", "/upload-xls/secrets", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+env.tokenFor(t, models.RoleAdministrator))
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}

func TestImportEndpointRowFailure(t *testing.T) {
	env := setupTestRouter(t)
	env.imports.ImportFunc = func(ctx context.Context, filePath, table string) (*service.ImportSummary, error) {
		return nil, &service.ImportError{Row: 3, Err: errors.New("constraint violation")}
	}

	body, contentType := multipartUpload(t, "file", "data.csv", "a,b\n1,2\n")
	req := httptest.NewRequest("POST", "/upload-xls/users", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+env.tokenFor(t, models.RoleAdministrator))
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got %d", w.Code)
	}
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	if response["error"] != "import failed at row 3" {
		t.Errorf("Expected row index in error, got %v", response["error"])
	}
}

func TestSettingsGetIsPublic(t *testing.T) {
	env := setupTestRouter(t)

	req := httptest.NewRequest("GET", "/api/settings", nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
}

func TestStudentCreateValidation(t *testing.T) {
	env := setupTestRouter(t)

	req := httptest.NewRequest("POST", "/students", bytes.NewBufferString(`{"email":"only@x.com"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+env.tokenFor(t, models.RoleTeacher))
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}
