package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/22DP3HEisu/JustFitness-Mobile/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testEnvelope struct {
	Success bool           `json:"success"`
	Data    map[string]any `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

// newTestRouter mounts public routes as in production. Protected routes get
// a stub identity middleware, the real bearer check is covered by the
// middleware and e2e tests.
func newTestRouter(h *Handler, authedUserID int64) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	v1 := r.Group("/api/v1")
	h.RegisterPublicRoutes(v1)

	protected := v1.Group("")
	protected.Use(func(c *gin.Context) {
		c.Set("user_id", authedUserID)
		c.Next()
	})
	h.RegisterProtectedRoutes(protected)

	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func parseEnvelope(t *testing.T, w *httptest.ResponseRecorder) testEnvelope {
	t.Helper()
	var env testEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), "body: %s", w.Body.String())
	return env
}

func digObject(t *testing.T, m map[string]any, key string) map[string]any {
	t.Helper()
	v, ok := m[key].(map[string]any)
	require.True(t, ok, "expected %q to be an object, got %T", key, m[key])
	return v
}

func TestHandler_Register_CreatedWithTokens(t *testing.T) {
	userRepo := new(mockUserRepo)
	userRepo.On("ExistsByEmail", mock.Anything, "anna@example.lv").Return(false, nil)
	userRepo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.User).ID = 1
	}).Return(nil)

	service, _, _ := newTestService(userRepo, 7*24*time.Hour)
	r := newTestRouter(NewHandler(service), 0)

	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/register", gin.H{
		"name":     "Anna Bērziņa",
		"email":    "anna@example.lv",
		"password": "securepass123",
		"phone":    "+37120000001",
	})

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	env := parseEnvelope(t, w)
	assert.True(t, env.Success)

	user := digObject(t, env.Data, "user")
	assert.Equal(t, "anna@example.lv", user["email"])

	tokens := digObject(t, env.Data, "tokens")
	assert.NotEmpty(t, tokens["access_token"])
	assert.NotEmpty(t, tokens["refresh_token"])
	assert.Equal(t, "15m", tokens["expires_in"])
	assert.Equal(t, "7d", tokens["refresh_expires_in"])

	assert.NotContains(t, w.Body.String(), "password_hash")
	assert.NotContains(t, w.Body.String(), "securepass123")
}

func TestHandler_Register_ValidationDetails(t *testing.T) {
	userRepo := new(mockUserRepo)
	service, _, _ := newTestService(userRepo, 7*24*time.Hour)
	r := newTestRouter(NewHandler(service), 0)

	// Well-formed but empty body: the service reports every violated rule.
	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/register", gin.H{})
	require.Equal(t, http.StatusBadRequest, w.Code)
	env := parseEnvelope(t, w)
	assert.False(t, env.Success)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	assert.Len(t, env.Error.Details, 3)
	assert.Contains(t, env.Error.Details, "email")
	assert.Contains(t, env.Error.Details, "password")
	assert.Contains(t, env.Error.Details, "name")
}

func TestHandler_Register_MalformedJSON(t *testing.T) {
	userRepo := new(mockUserRepo)
	service, _, _ := newTestService(userRepo, 7*24*time.Hour)
	r := newTestRouter(NewHandler(service), 0)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	env := parseEnvelope(t, w)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
}

func TestHandler_Register_DuplicateEmail(t *testing.T) {
	userRepo := new(mockUserRepo)
	userRepo.On("ExistsByEmail", mock.Anything, "taken@example.lv").Return(true, nil)

	service, _, _ := newTestService(userRepo, 7*24*time.Hour)
	r := newTestRouter(NewHandler(service), 0)

	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/register", gin.H{
		"name":     "Anna",
		"email":    "taken@example.lv",
		"password": "securepass123",
	})

	require.Equal(t, http.StatusConflict, w.Code)
	env := parseEnvelope(t, w)
	require.NotNil(t, env.Error)
	assert.Equal(t, "EMAIL_EXISTS", env.Error.Code)
}

// The two credential failure modes must be indistinguishable on the wire,
// status and body byte for byte.
func TestHandler_Login_IdenticalBodiesForBothFailures(t *testing.T) {
	existing := &domain.User{
		ID:           10,
		Email:        "known@example.lv",
		PasswordHash: mustHash(t, "correct-password"),
	}

	userRepo := new(mockUserRepo)
	userRepo.On("GetByEmail", mock.Anything, "ghost@example.lv").Return(nil, gorm.ErrRecordNotFound)
	userRepo.On("GetByEmail", mock.Anything, "known@example.lv").Return(existing, nil)

	service, _, _ := newTestService(userRepo, 7*24*time.Hour)
	r := newTestRouter(NewHandler(service), 0)

	wUnknown := doJSON(t, r, http.MethodPost, "/api/v1/auth/login", gin.H{
		"email":    "ghost@example.lv",
		"password": "whatever",
	})
	wWrongPass := doJSON(t, r, http.MethodPost, "/api/v1/auth/login", gin.H{
		"email":    "known@example.lv",
		"password": "incorrect",
	})

	assert.Equal(t, http.StatusUnauthorized, wUnknown.Code)
	assert.Equal(t, http.StatusUnauthorized, wWrongPass.Code)
	assert.Equal(t, wUnknown.Body.String(), wWrongPass.Body.String())

	env := parseEnvelope(t, wUnknown)
	require.NotNil(t, env.Error)
	assert.Equal(t, "INVALID_CREDENTIALS", env.Error.Code)
}

func TestHandler_Refresh_FlowAndRejections(t *testing.T) {
	existing := &domain.User{
		ID:           20,
		Email:        "user@example.lv",
		PasswordHash: mustHash(t, "password123"),
	}

	userRepo := new(mockUserRepo)
	userRepo.On("GetByEmail", mock.Anything, "user@example.lv").Return(existing, nil)
	userRepo.On("UpdateLastLogin", mock.Anything, int64(20), mock.Anything).Return(nil)

	service, _, _ := newTestService(userRepo, 7*24*time.Hour)
	r := newTestRouter(NewHandler(service), 0)

	wLogin := doJSON(t, r, http.MethodPost, "/api/v1/auth/login", gin.H{
		"email":    "user@example.lv",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, wLogin.Code)
	loginEnv := parseEnvelope(t, wLogin)
	refreshToken := digObject(t, loginEnv.Data, "tokens")["refresh_token"].(string)

	wRefresh := doJSON(t, r, http.MethodPost, "/api/v1/auth/refresh", gin.H{
		"refresh_token": refreshToken,
	})
	require.Equal(t, http.StatusOK, wRefresh.Code)
	refreshEnv := parseEnvelope(t, wRefresh)
	assert.NotEmpty(t, refreshEnv.Data["access_token"])
	assert.Equal(t, "15m", refreshEnv.Data["expires_in"])

	wGarbage := doJSON(t, r, http.MethodPost, "/api/v1/auth/refresh", gin.H{
		"refresh_token": "definitely.not.a-jwt",
	})
	require.Equal(t, http.StatusUnauthorized, wGarbage.Code)
	env := parseEnvelope(t, wGarbage)
	require.NotNil(t, env.Error)
	assert.Equal(t, "INVALID_REFRESH_TOKEN", env.Error.Code)

	wMissing := doJSON(t, r, http.MethodPost, "/api/v1/auth/refresh", gin.H{})
	assert.Equal(t, http.StatusBadRequest, wMissing.Code)
}

func TestHandler_Logout_AlwaysOK(t *testing.T) {
	userRepo := new(mockUserRepo)
	service, _, _ := newTestService(userRepo, 7*24*time.Hour)
	r := newTestRouter(NewHandler(service), 0)

	for i := 0; i < 2; i++ {
		w := doJSON(t, r, http.MethodPost, "/api/v1/auth/logout", gin.H{
			"refresh_token": "never-issued-token",
		})
		require.Equal(t, http.StatusOK, w.Code)
		env := parseEnvelope(t, w)
		assert.True(t, env.Success)
		assert.Equal(t, "Logged out", env.Data["message"])
	}
}

func TestHandler_LogoutAll_ReportsCount(t *testing.T) {
	existing := &domain.User{
		ID:           30,
		Email:        "user@example.lv",
		PasswordHash: mustHash(t, "password123"),
	}

	userRepo := new(mockUserRepo)
	userRepo.On("GetByEmail", mock.Anything, "user@example.lv").Return(existing, nil)
	userRepo.On("UpdateLastLogin", mock.Anything, int64(30), mock.Anything).Return(nil)

	service, _, _ := newTestService(userRepo, 7*24*time.Hour)
	r := newTestRouter(NewHandler(service), 30)

	for i := 0; i < 2; i++ {
		w := doJSON(t, r, http.MethodPost, "/api/v1/auth/login", gin.H{
			"email":    "user@example.lv",
			"password": "password123",
		})
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/logout-all", nil)
	require.Equal(t, http.StatusOK, w.Code)
	env := parseEnvelope(t, w)
	assert.Equal(t, float64(2), env.Data["sessions_revoked"])

	w = doJSON(t, r, http.MethodPost, "/api/v1/auth/logout-all", nil)
	require.Equal(t, http.StatusOK, w.Code)
	env = parseEnvelope(t, w)
	assert.Equal(t, float64(0), env.Data["sessions_revoked"])
}

func TestHandler_GetMe(t *testing.T) {
	existing := &domain.User{
		ID:           51,
		Email:        "user@example.lv",
		Name:         "Jānis Ozols",
		PasswordHash: mustHash(t, "password123"),
	}

	userRepo := new(mockUserRepo)
	userRepo.On("GetByID", mock.Anything, int64(51)).Return(existing, nil)

	service, _, _ := newTestService(userRepo, 7*24*time.Hour)
	r := newTestRouter(NewHandler(service), 51)

	w := doJSON(t, r, http.MethodGet, "/api/v1/users/me", nil)
	require.Equal(t, http.StatusOK, w.Code)
	env := parseEnvelope(t, w)
	user := digObject(t, env.Data, "user")
	assert.Equal(t, "Jānis Ozols", user["name"])
	assert.NotContains(t, w.Body.String(), "password_hash")
}

func TestHandler_GetMe_Vanished(t *testing.T) {
	userRepo := new(mockUserRepo)
	userRepo.On("GetByID", mock.Anything, int64(404)).Return(nil, gorm.ErrRecordNotFound)

	service, _, _ := newTestService(userRepo, 7*24*time.Hour)
	r := newTestRouter(NewHandler(service), 404)

	w := doJSON(t, r, http.MethodGet, "/api/v1/users/me", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	env := parseEnvelope(t, w)
	require.NotNil(t, env.Error)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}

func TestHandler_UpdateProfile(t *testing.T) {
	existing := &domain.User{
		ID:           61,
		Email:        "user@example.lv",
		Name:         "Old Name",
		PasswordHash: mustHash(t, "password123"),
	}

	userRepo := new(mockUserRepo)
	userRepo.On("GetByID", mock.Anything, int64(61)).Return(existing, nil)
	userRepo.On("Update", mock.Anything, mock.Anything).Return(nil)

	service, _, _ := newTestService(userRepo, 7*24*time.Hour)
	r := newTestRouter(NewHandler(service), 61)

	w := doJSON(t, r, http.MethodPut, "/api/v1/users/me", gin.H{"name": "Jauns Vārds"})
	require.Equal(t, http.StatusOK, w.Code)
	env := parseEnvelope(t, w)
	user := digObject(t, env.Data, "user")
	assert.Equal(t, "Jauns Vārds", user["name"])

	wBad := doJSON(t, r, http.MethodPut, "/api/v1/users/me", gin.H{"name": "A"})
	require.Equal(t, http.StatusBadRequest, wBad.Code)
	badEnv := parseEnvelope(t, wBad)
	require.NotNil(t, badEnv.Error)
	assert.Equal(t, "VALIDATION_ERROR", badEnv.Error.Code)
	assert.Equal(t, "min", badEnv.Error.Details["name"])
}
