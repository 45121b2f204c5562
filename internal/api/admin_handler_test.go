package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdmin_RequiresAdmin(t *testing.T) {
	env := newTestEnv(t, testEnvOptions{})
	token := env.signup(t, "ana@example.com")

	for name, req := range map[string]struct {
		method string
		path   string
		body   any
	}{
		"list":   {http.MethodGet, "/api/v1/admin/users", nil},
		"count":  {http.MethodGet, "/api/v1/admin/users/count", nil},
		"create": {http.MethodPost, "/api/v1/admin/users", CreateUserRequest{Email: "x@example.com", Password: testPassword}},
	} {
		t.Run(name, func(t *testing.T) {
			rr := env.do(t, req.method, req.path, token, req.body)
			assert.Equal(t, http.StatusForbidden, rr.Code)
		})
	}
}

func TestAdmin_ManageUsers(t *testing.T) {
	env := newTestEnv(t, testEnvOptions{})
	adminToken := env.signup(t, testOwnerEmail)
	env.signup(t, "ana@example.com")

	rr := env.do(t, http.MethodGet, "/api/v1/admin/users/count", adminToken, nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.JSONEq(t, `{"count":2}`, rr.Body.String())

	rr = env.do(t, http.MethodPost, "/api/v1/admin/users", adminToken, CreateUserRequest{
		Name: "Bruno", Email: "bruno@example.com", Password: testPassword,
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var bruno UserResponse
	decode(t, rr, &bruno)
	assert.Equal(t, "Bruno", bruno.Name)
	assert.False(t, bruno.IsAdmin)

	rr = env.do(t, http.MethodGet, "/api/v1/admin/users", adminToken, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var users []UserResponse
	decode(t, rr, &users)
	require.Len(t, users, 3)
	var owner UserResponse
	for _, u := range users {
		if u.Email == testOwnerEmail {
			owner = u
		}
	}
	require.NotEmpty(t, owner.ID)
	assert.True(t, owner.IsAdmin)

	rr = env.do(t, http.MethodPost, "/api/v1/admin/users/"+bruno.ID+"/toggle-admin", adminToken, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"isAdmin":true}`, rr.Body.String())

	rr = env.do(t, http.MethodPut, "/api/v1/admin/users/"+bruno.ID+"/password", adminToken, ChangePasswordRequest{Password: "another-pass"})
	require.Equal(t, http.StatusNoContent, rr.Code, rr.Body.String())
	rr = env.do(t, http.MethodPost, "/api/v1/auth/login", "", LoginRequest{Email: "bruno@example.com", Password: "another-pass"})
	assert.Equal(t, http.StatusOK, rr.Code)

	// The owner can be neither demoted nor deleted.
	rr = env.do(t, http.MethodPost, "/api/v1/admin/users/"+owner.ID+"/toggle-admin", adminToken, nil)
	assert.Equal(t, http.StatusForbidden, rr.Code)
	rr = env.do(t, http.MethodDelete, "/api/v1/admin/users/"+owner.ID, adminToken, nil)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = env.do(t, http.MethodDelete, "/api/v1/admin/users/"+bruno.ID, adminToken, nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)
	rr = env.do(t, http.MethodDelete, "/api/v1/admin/users/"+bruno.ID, adminToken, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = env.do(t, http.MethodDelete, "/api/v1/admin/users/not-an-id", adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
