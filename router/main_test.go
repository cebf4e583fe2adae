package router

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"net/mail"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sahilchouksey/studyflow/api"
	"github.com/sahilchouksey/studyflow/config"
	"github.com/sahilchouksey/studyflow/database"
	"github.com/sahilchouksey/studyflow/model"
	"github.com/sahilchouksey/studyflow/repository"
	"github.com/sahilchouksey/studyflow/services"
	"github.com/sahilchouksey/studyflow/services/mailer"
	"github.com/sahilchouksey/studyflow/utils/auth"
	"github.com/sahilchouksey/studyflow/utils/middleware"
)

const (
	testJWTSecret      = "router-test-secret"
	testReminderSecret = "scheduler-secret"
)

type testServer struct {
	app   *fiber.App
	store database.Storage
	repos repository.Repositories
	jwt   *auth.JWTManager
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	store, err := database.OpenInMemory(t.Name())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	cfg := &config.EnvironmentVariable{
		JWT_SECRET:      testJWTSecret,
		JWT_ISSUER:      "studyflow",
		REMINDER_SECRET: testReminderSecret,
		ALLOWED_ORIGINS: "http://localhost:3000",
		Location:        time.UTC,
	}

	m := mailer.NewConsoleMailer(mail.Address{Address: "noreply@studyflow.local"}, true)
	reminders := services.NewReminderService(store.Repositories(), m, 0, time.UTC)

	app := api.NewApp()
	require.NoError(t, SetupRoutes(app, store, cfg, Options{Reminders: reminders, DisableRequestLog: true}))

	return &testServer{
		app:   app,
		store: store,
		repos: store.Repositories(),
		jwt: auth.NewJWTManager(auth.JWTConfig{
			Secret: testJWTSecret,
			Expiry: time.Hour,
			Issuer: "studyflow",
		}),
	}
}

func (s *testServer) login(t *testing.T, email, role string) string {
	t.Helper()
	user := &model.User{Name: email, Email: email, Role: role, Settings: model.DefaultUserSettings()}
	require.NoError(t, s.repos.Users.Create(context.Background(), user))
	token, _, err := s.jwt.GenerateAccessToken(user.ID, user.Email, user.Role)
	require.NoError(t, err)
	return token
}

func (s *testServer) do(t *testing.T, method, path, token, body string, headers ...string) (int, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	payload := map[string]interface{}{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &payload), string(raw))
	}
	return resp.StatusCode, payload
}

func TestSetupRoutesRequiresSecrets(t *testing.T) {
	store, err := database.OpenInMemory(t.Name())
	require.NoError(t, err)
	defer store.Close()

	err = SetupRoutes(api.NewApp(), store, &config.EnvironmentVariable{Location: time.UTC}, Options{})
	assert.Error(t, err)
}

func TestHealthEndpoints(t *testing.T) {
	s := newTestServer(t)

	status, body := s.do(t, fiber.MethodGet, "/ping", "", "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "ok", body["status"])

	status, body = s.do(t, fiber.MethodGet, "/api/v1/health/db", "", "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, body["success"])
}

func TestDatabaseHealthReportsOutage(t *testing.T) {
	s := newTestServer(t)
	require.NoError(t, s.store.Close())

	status, body := s.do(t, fiber.MethodGet, "/api/v1/health/db", "", "")
	assert.Equal(t, fiber.StatusServiceUnavailable, status)
	assert.Equal(t, false, body["success"])

	apiErr := body["error"].(map[string]interface{})
	assert.Equal(t, "SERVICE_UNAVAILABLE", apiErr["code"])
	details := apiErr["details"].(map[string]interface{})
	assert.Equal(t, "sqlite", details["driver"])
	assert.Equal(t, false, details["connected"])
}

func TestTaskRoutes(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, "student@example.com", model.RoleUser)

	status, _ := s.do(t, fiber.MethodGet, "/api/v1/tasks", "", "")
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, body := s.do(t, fiber.MethodPost, "/api/v1/tasks", token, `{"title":"Essay","priority":"High","type":"Assignment"}`)
	require.Equal(t, fiber.StatusCreated, status, body)
	created := body["data"].(map[string]interface{})
	assert.Equal(t, "Essay", created["title"])

	status, body = s.do(t, fiber.MethodPost, "/api/v1/tasks", token, `{"priority":"Urgent"}`)
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Equal(t, "VALIDATION_ERROR", body["error"].(map[string]interface{})["code"])

	status, body = s.do(t, fiber.MethodGet, "/api/v1/tasks", token, "")
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, body["data"], 1)

	// Another user cannot see it
	other := s.login(t, "other@example.com", model.RoleUser)
	status, _ = s.do(t, fiber.MethodGet, "/api/v1/tasks/"+created["id"].(string), other, "")
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestReminderRouteAcceptsInternalSecret(t *testing.T) {
	s := newTestServer(t)

	status, body := s.do(t, fiber.MethodGet, "/api/v1/tasks/reminders", "", "",
		middleware.InternalSecretHeader, testReminderSecret)
	require.Equal(t, fiber.StatusOK, status, body)
	assert.Equal(t, "No new reminders", body["message"])

	status, _ = s.do(t, fiber.MethodGet, "/api/v1/tasks/reminders", "", "",
		middleware.InternalSecretHeader, "guess")
	assert.Equal(t, fiber.StatusUnauthorized, status)

	// A signed-in user triggers their own scan
	token := s.login(t, "student@example.com", model.RoleUser)
	status, _ = s.do(t, fiber.MethodGet, "/api/v1/tasks/reminders", token, "")
	assert.Equal(t, fiber.StatusOK, status)
}

func TestAdminRoutes(t *testing.T) {
	s := newTestServer(t)
	userToken := s.login(t, "student@example.com", model.RoleUser)
	adminToken := s.login(t, "admin@example.com", model.RoleAdmin)

	status, _ := s.do(t, fiber.MethodGet, "/api/v1/admin/stats", userToken, "")
	assert.Equal(t, fiber.StatusForbidden, status)

	status, body := s.do(t, fiber.MethodGet, "/api/v1/admin/stats", adminToken, "")
	require.Equal(t, fiber.StatusOK, status, body)

	status, body = s.do(t, fiber.MethodPost, "/api/v1/admin/users", adminToken, `{"name":"New Student","email":"New@Example.com"}`)
	require.Equal(t, fiber.StatusCreated, status, body)
	assert.Equal(t, "new@example.com", body["data"].(map[string]interface{})["email"])

	// Rejected mutations are not audited
	status, _ = s.do(t, fiber.MethodPost, "/api/v1/admin/users", adminToken, `{"name":"Dup","email":"new@example.com"}`)
	assert.Equal(t, fiber.StatusConflict, status)

	entries, err := s.repos.AuditLogs.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "user_create", entries[0].Action)

	status, body = s.do(t, fiber.MethodGet, "/api/v1/admin/audit-logs", adminToken, "")
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, body["data"], 1)
}

func TestUnknownRouteUsesErrorEnvelope(t *testing.T) {
	s := newTestServer(t)

	status, body := s.do(t, fiber.MethodGet, "/api/v1/nowhere", "", "")
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, false, body["success"])
}
