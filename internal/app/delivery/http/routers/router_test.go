package routers

import (
	"bytes"
	"context"
	"hms-portal-service/internal/app/config"
	"hms-portal-service/internal/app/delivery/http/controllers"
	"hms-portal-service/internal/app/delivery/http/middlewares"
	"hms-portal-service/internal/app/models"
	"hms-portal-service/internal/app/services/core/directory"
	"hms-portal-service/internal/app/services/core/portal"
	"hms-portal-service/internal/app/services/core/preferences"
	"hms-portal-service/internal/app/services/core/views"
	"hms-portal-service/internal/app/services/shared/identity"
	"hms-portal-service/internal/app/services/shared/locker"
	"hms-portal-service/internal/app/services/shared/store"
	"hms-portal-service/internal/pkg/utils"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	testSecret = "router-test-secret"
	testAPIKey = "router-test-admin-key"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type testServer struct {
	handler http.Handler
	backend *identity.MemoryBackend
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	logger := zap.NewNop()

	hash, err := utils.HashAPIKey(testAPIKey)
	require.NoError(t, err)

	internalConfig := &config.InternalConfig{
		App: config.App{
			EndpointPrefix:             "api",
			Version:                    "v1",
			Timezone:                   "UTC",
			RequestTimeoutInSeconds:    5,
			RoleSelectionRatePerMinute: 600,
			RoleSelectionBurst:         10,
			AdminAPIKeyHash:            hash,
		},
		Identity: config.AppIdentity{
			Provider:                     "local",
			LocalJWTSecret:               testSecret,
			RoleAssignmentLockTTLSeconds: 30,
		},
	}

	backing := store.NewMemoryStore()
	dir, err := directory.NewDirectoryService(backing, nil, nil, "", logger)
	require.NoError(t, err)
	require.NoError(t, dir.Seed(context.Background()))

	viewRouter, err := views.NewViewRouter()
	require.NoError(t, err)

	backend := identity.NewMemoryBackend(true)
	portalUsecase := portal.NewPortalUsecase(
		backend,
		dir,
		locker.NewMemoryLocker(),
		nil,
		viewRouter,
		preferences.NewPreferenceStore(backing, logger),
		internalConfig,
		logger,
	)

	router := chi.NewRouter()
	SetupRoutes(
		router,
		internalConfig,
		nil,
		middlewares.NewMiddlewares(logger, identity.NewJWTVerifier(testSecret), nil, internalConfig),
		controllers.NewSessionController(logger, portalUsecase, internalConfig),
		controllers.NewUserController(logger, portalUsecase, internalConfig),
		controllers.NewPreferenceController(logger, portalUsecase, internalConfig),
		controllers.NewHealthController(),
	)
	return &testServer{handler: router, backend: backend}
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}, headers map[string]string) (int, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rr := httptest.NewRecorder()
	s.handler.ServeHTTP(rr, req)

	var env envelope
	_ = json.Unmarshal(rr.Body.Bytes(), &env)
	return rr.Code, env
}

func tokenFor(t *testing.T, userID, email, name string) string {
	t.Helper()
	token, err := utils.GenerateSessionJWT(models.Principal{UserID: userID, Email: email, DisplayName: name}, testSecret, 1)
	require.NoError(t, err)
	return token
}

func decodeScreen(t *testing.T, env envelope) models.Screen {
	t.Helper()
	var screen models.Screen
	require.NoError(t, json.Unmarshal(env.Data, &screen))
	return screen
}

func TestRouter_Healthz(t *testing.T) {
	srv := newTestServer(t)
	code, env := srv.do(t, "GET", "/api/v1/healthz", "", nil, nil)
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, env.Success)
}

func TestRouter_SessionLifecycle(t *testing.T) {
	srv := newTestServer(t)
	token := tokenFor(t, "u100", "nia@x.io", "Nia")

	code, env := srv.do(t, "GET", "/api/v1/session", "", nil, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "signed_out", decodeScreen(t, env).Kind)

	code, env = srv.do(t, "GET", "/api/v1/session", token, nil, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "role_selection", decodeScreen(t, env).Kind)

	code, _ = srv.do(t, "POST", "/api/v1/session/role", token, map[string]string{"role": "NURSE"}, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, env = srv.do(t, "POST", "/api/v1/session/role", token, map[string]string{"role": "PATIENT"}, nil)
	require.Equal(t, http.StatusOK, code)
	screen := decodeScreen(t, env)
	assert.Equal(t, "dashboard", screen.Kind)
	assert.Equal(t, "patient-dashboard", screen.View.Root)
	assert.Equal(t, "appointments", screen.View.Page)
	assert.Equal(t, "Nia", screen.User.Name)
	assert.NotEmpty(t, screen.AllUsers)

	code, _ = srv.do(t, "POST", "/api/v1/session/role", token, map[string]string{"role": "ADMIN"}, nil)
	assert.Equal(t, http.StatusConflict, code)

	code, env = srv.do(t, "GET", "/api/v1/session?page=records", token, nil, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "records", decodeScreen(t, env).View.Page)

	code, env = srv.do(t, "POST", "/api/v1/session/logout", token, nil, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "signed_out", decodeScreen(t, env).Kind)

	code, env = srv.do(t, "GET", "/api/v1/session", token, nil, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "signed_out", decodeScreen(t, env).Kind)
}

func TestRouter_InvalidToken(t *testing.T) {
	srv := newTestServer(t)
	code, env := srv.do(t, "GET", "/api/v1/session", "not-a-token", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.False(t, env.Success)
}

func TestRouter_Users(t *testing.T) {
	srv := newTestServer(t)
	patient := tokenFor(t, "u200", "pat@x.io", "Pat")
	doctor := tokenFor(t, "u201", "doc@x.io", "Doc")

	code, _ := srv.do(t, "POST", "/api/v1/session/role", patient, map[string]string{"role": "PATIENT"}, nil)
	require.Equal(t, http.StatusOK, code)
	code, _ = srv.do(t, "POST", "/api/v1/session/role", doctor, map[string]string{"role": "DOCTOR"}, nil)
	require.Equal(t, http.StatusOK, code)

	t.Run("Update Own Profile", func(t *testing.T) {
		code, env := srv.do(t, "PATCH", "/api/v1/users/me", doctor, map[string]string{"specialization": "  Neurology "}, nil)
		require.Equal(t, http.StatusOK, code)
		var user models.User
		require.NoError(t, json.Unmarshal(env.Data, &user))
		assert.Equal(t, "Neurology", user.Specialization)
		assert.Equal(t, "Doc", user.Name)
	})

	t.Run("Invalid Profile Input", func(t *testing.T) {
		code, _ := srv.do(t, "PATCH", "/api/v1/users/me", doctor, map[string]string{"bloodGroup": "Q+"}, nil)
		assert.Equal(t, http.StatusBadRequest, code)
	})

	t.Run("List Users By Role", func(t *testing.T) {
		code, _ := srv.do(t, "GET", "/api/v1/users", patient, nil, nil)
		assert.Equal(t, http.StatusOK, code)

		code, _ = srv.do(t, "GET", "/api/v1/users", doctor, nil, nil)
		assert.Equal(t, http.StatusForbidden, code)
	})

	replacement := map[string]interface{}{
		"users": []models.User{{ID: "z1", Name: "Zed", Role: models.RoleAdmin}},
	}

	t.Run("Replace Directory Forbidden For Patient", func(t *testing.T) {
		code, _ := srv.do(t, "PUT", "/api/v1/users", patient, replacement, nil)
		assert.Equal(t, http.StatusForbidden, code)
	})

	t.Run("Replace Directory With Wrong API Key", func(t *testing.T) {
		code, _ := srv.do(t, "PUT", "/api/v1/users", "", replacement, map[string]string{"x-api-key": "wrong"})
		assert.Equal(t, http.StatusUnauthorized, code)
	})

	t.Run("Replace Directory With API Key", func(t *testing.T) {
		code, env := srv.do(t, "PUT", "/api/v1/users", "", replacement, map[string]string{"x-api-key": testAPIKey})
		require.Equal(t, http.StatusOK, code)
		var users struct {
			Total int `json:"total"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &users))
		assert.Equal(t, 1, users.Total)
	})
}

func TestRouter_ReplaceDirectoryRoundTrip(t *testing.T) {
	srv := newTestServer(t)
	srv.backend.Register(models.Identity{
		ID:          "n1",
		DisplayName: "Nell",
		Email:       "nell@x.io",
		Metadata:    models.IdentityMetadata{Role: "NURSE"},
	})
	nurse := tokenFor(t, "n1", "nell@x.io", "Nell")
	patient := tokenFor(t, "u300", "pat@x.io", "Pat")

	code, env := srv.do(t, "GET", "/api/v1/session", nurse, nil, nil)
	require.Equal(t, http.StatusOK, code)
	screen := decodeScreen(t, env)
	require.Equal(t, "dashboard", screen.Kind)
	assert.False(t, screen.View.Recognized)

	code, _ = srv.do(t, "POST", "/api/v1/session/role", patient, map[string]string{"role": "PATIENT"}, nil)
	require.Equal(t, http.StatusOK, code)

	code, env = srv.do(t, "GET", "/api/v1/users", patient, nil, nil)
	require.Equal(t, http.StatusOK, code)
	var listed struct {
		Users []models.User `json:"users"`
		Total int           `json:"total"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &listed))

	var nurseEntry *models.User
	for i := range listed.Users {
		if listed.Users[i].ID == "n1" {
			nurseEntry = &listed.Users[i]
		}
	}
	require.NotNil(t, nurseEntry)
	assert.Equal(t, models.Role("NURSE"), nurseEntry.Role)

	code, env = srv.do(t, "PUT", "/api/v1/users", "", map[string]interface{}{"users": listed.Users}, map[string]string{"x-api-key": testAPIKey})
	require.Equal(t, http.StatusOK, code, env.Message)

	var replaced struct {
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &replaced))
	assert.Equal(t, listed.Total, replaced.Total)

	code, _ = srv.do(t, "POST", "/api/v1/session/role", patient, map[string]string{"role": "NURSE"}, nil)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestRouter_Theme(t *testing.T) {
	srv := newTestServer(t)

	code, env := srv.do(t, "GET", "/api/v1/preferences/theme", "", nil, nil)
	require.Equal(t, http.StatusOK, code)
	var pref models.ThemePreference
	require.NoError(t, json.Unmarshal(env.Data, &pref))
	assert.True(t, pref.Dark)
	assert.Equal(t, "dark", pref.RootClass)

	code, env = srv.do(t, "POST", "/api/v1/preferences/theme/toggle", "", nil, nil)
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(env.Data, &pref))
	assert.False(t, pref.Dark)
	assert.Equal(t, "light", pref.Theme)
}
