package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wejdenmesaoud/cashback/pkg/enums"
)

func TestRequireAnyRoleRejectsAnonymous(t *testing.T) {
	handler := RequireAnyRole(nil, enums.RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestRequireAnyRoleForbidsMissingRole(t *testing.T) {
	handler := RequireAnyRole(nil, enums.RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	principal := &Principal{ID: 1, Username: "jdoe", Roles: []string{"USER"}}
	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req = req.WithContext(WithPrincipal(req.Context(), principal))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusForbidden, resp.Code)
}

func TestRequireAnyRoleAdmitsAnyListedRole(t *testing.T) {
	handler := RequireAnyRole(nil, enums.RoleModerator, enums.RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	principal := &Principal{ID: 1, Username: "jdoe", Roles: []string{"MODERATOR"}}
	req := httptest.NewRequest(http.MethodGet, "/api/reports", nil)
	req = req.WithContext(WithPrincipal(req.Context(), principal))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestRequireAnyRoleMembershipIsFlat(t *testing.T) {
	handler := RequireAnyRole(nil, enums.RoleModerator)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	principal := &Principal{ID: 1, Username: "root", Roles: []string{"ADMIN"}}
	req := httptest.NewRequest(http.MethodGet, "/api/reports", nil)
	req = req.WithContext(WithPrincipal(req.Context(), principal))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusForbidden, resp.Code)
}
