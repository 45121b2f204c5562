package api

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/arthurcerqueirm/gym-app/internal/repository"
	"github.com/arthurcerqueirm/gym-app/internal/service"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPing(t *testing.T) {
	env := newTestEnv(t, testEnvOptions{})

	rr := env.do(t, http.MethodGet, "/ping", "", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"message":"pong"}`, rr.Body.String())
	assert.NotEmpty(t, rr.Header().Get(requestIDHeader))
}

func TestNewRouter_MissingDependencies(t *testing.T) {
	_, err := NewRouter(Dependencies{})
	assert.ErrorIs(t, err, errMissingAuthService)
}

func TestRegisterLoginMe(t *testing.T) {
	env := newTestEnv(t, testEnvOptions{})

	rr := env.do(t, http.MethodPost, "/api/v1/auth/register", "", RegisterRequest{Email: "Ana@Example.com", Password: testPassword})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var user UserResponse
	decode(t, rr, &user)
	assert.Equal(t, "ana@example.com", user.Email)
	assert.Equal(t, "ana", user.Name)
	assert.False(t, user.IsAdmin)
	assert.NotContains(t, rr.Body.String(), "password")

	rr = env.do(t, http.MethodPost, "/api/v1/auth/login", "", LoginRequest{Email: "ana@example.com", Password: testPassword})
	require.Equal(t, http.StatusOK, rr.Code)
	var login LoginResponse
	decode(t, rr, &login)

	rr = env.do(t, http.MethodGet, "/api/v1/me", login.Token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var me MeResponse
	decode(t, rr, &me)
	assert.Equal(t, user.ID, me.Session.UserID)
	assert.Equal(t, "ana", me.Session.DisplayName)
	assert.Equal(t, "ana@example.com", me.Profile.Email)
}

func TestRegister_Errors(t *testing.T) {
	env := newTestEnv(t, testEnvOptions{})
	env.signup(t, "taken@example.com")

	for name, tc := range map[string]struct {
		body       any
		wantStatus int
		wantKind   service.ErrorKind
	}{
		"missing-email": {
			body:       map[string]string{"password": testPassword},
			wantStatus: http.StatusBadRequest,
		},
		"short-password": {
			body:       RegisterRequest{Email: "new@example.com", Password: "123"},
			wantStatus: http.StatusBadRequest,
			wantKind:   service.KindValidation,
		},
		"duplicate": {
			body:       RegisterRequest{Email: "TAKEN@example.com", Password: testPassword},
			wantStatus: http.StatusConflict,
			wantKind:   service.KindConflict,
		},
	} {
		t.Run(name, func(t *testing.T) {
			rr := env.do(t, http.MethodPost, "/api/v1/auth/register", "", tc.body)
			assert.Equal(t, tc.wantStatus, rr.Code)
			var resp ErrorResponse
			decode(t, rr, &resp)
			assert.NotEmpty(t, resp.Error)
			assert.Equal(t, tc.wantKind, resp.Kind)
		})
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	env := newTestEnv(t, testEnvOptions{})
	env.signup(t, "ana@example.com")

	rr := env.do(t, http.MethodPost, "/api/v1/auth/login", "", LoginRequest{Email: "ana@example.com", Password: "wrong-pass"})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestProtectedRoutes_RequireToken(t *testing.T) {
	env := newTestEnv(t, testEnvOptions{})

	for name, header := range map[string]string{
		"missing":   "",
		"no-bearer": "Token abc",
		"garbage":   "Bearer not-a-jwt",
	} {
		t.Run(name, func(t *testing.T) {
			rr := env.doWithAuthHeader(t, http.MethodGet, "/api/v1/workouts/today", header)
			assert.Equal(t, http.StatusUnauthorized, rr.Code)
		})
	}
}

func TestSchemaGuard_MissingSchema(t *testing.T) {
	env := newTestEnv(t, testEnvOptions{
		schema: stubSchemaChecker{err: fmt.Errorf("collection workouts: %w", repository.ErrMissingSchema)},
	})

	rr := env.do(t, http.MethodPost, "/api/v1/auth/login", "", LoginRequest{Email: "ana@example.com", Password: testPassword})
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)

	var resp ErrorResponse
	decode(t, rr, &resp)
	assert.Equal(t, service.KindMissingSchema, resp.Kind)
	assert.Contains(t, resp.Error, "gym-app migrate")

	// /ping stays reachable so health checks pass before migrating.
	assert.Equal(t, http.StatusOK, env.do(t, http.MethodGet, "/ping", "", nil).Code)
}

func TestAuthRateLimit(t *testing.T) {
	limiter := &testRequestRateLimiter{Limits: map[string]int{}}
	env := newTestEnv(t, testEnvOptions{limiter: limiter})

	limiter.Limits["ratelimit:auth:192.0.2.1"] = 1

	body := LoginRequest{Email: "nobody@example.com", Password: testPassword}
	rr := env.do(t, http.MethodPost, "/api/v1/auth/login", "", body)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	// next time is rejected before reaching the handler
	rr = env.do(t, http.MethodPost, "/api/v1/auth/login", "", body)
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Equal(t, "30", rr.Header().Get("Retry-After"))
	assert.True(t, strings.HasPrefix(rr.Body.String(), `{"error":"retry after`))
	assert.Equal(t, float64(1), testutil.ToFloat64(env.metrics.CounterRateLimited))
}

func TestMetricsEndpoint(t *testing.T) {
	env := newTestEnv(t, testEnvOptions{})
	env.do(t, http.MethodGet, "/ping", "", nil)

	rr := env.do(t, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "gym_app_api_request")
	// ping and the scrape itself
	assert.Equal(t, float64(2), testutil.ToFloat64(env.metrics.CounterRequests.WithLabelValues(http.MethodGet, "200")))
}
