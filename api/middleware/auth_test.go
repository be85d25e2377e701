package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	pkgAuth "github.com/wejdenmesaoud/cashback/pkg/auth"
	"github.com/wejdenmesaoud/cashback/pkg/config"
	"github.com/wejdenmesaoud/cashback/pkg/db/models"
)

type fakeUserLoader struct {
	users map[string]*models.User
}

func (f *fakeUserLoader) FindByUsername(_ context.Context, username string) (*models.User, error) {
	if user, ok := f.users[username]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeSessionRecorder struct {
	recorded []string
}

func (f *fakeSessionRecorder) Record(subject string) {
	f.recorded = append(f.recorded, subject)
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{Secret: "test-secret", Issuer: "cashback", ExpirationMinutes: 60}
}

func seededLoader() *fakeUserLoader {
	return &fakeUserLoader{users: map[string]*models.User{
		"jdoe": {
			ID:       7,
			Username: "jdoe",
			Email:    "jdoe@example.com",
			Roles:    []models.Role{{ID: 2, Name: "MODERATOR"}},
		},
	}}
}

func TestAuthenticateAnonymousWithoutToken(t *testing.T) {
	sessions := &fakeSessionRecorder{}
	var principal *Principal
	handler := Authenticate(testJWTConfig(), seededLoader(), sessions, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal = PrincipalFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/cases", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Nil(t, principal)
	assert.Empty(t, sessions.recorded)
}

func TestAuthenticateAnonymousOnInvalidToken(t *testing.T) {
	var principal *Principal
	handler := Authenticate(testJWTConfig(), seededLoader(), nil, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal = PrincipalFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/cases", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Nil(t, principal)
}

func TestAuthenticateAnonymousOnExpiredToken(t *testing.T) {
	cfg := testJWTConfig()
	token, err := pkgAuth.Mint(cfg, time.Now().Add(-2*time.Hour), "jdoe")
	require.NoError(t, err)

	var principal *Principal
	handler := Authenticate(cfg, seededLoader(), nil, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal = PrincipalFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/cases", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Nil(t, principal)
}

func TestAuthenticateSeedsPrincipalAndRecordsSession(t *testing.T) {
	cfg := testJWTConfig()
	token, err := pkgAuth.Mint(cfg, time.Now(), "jdoe")
	require.NoError(t, err)

	sessions := &fakeSessionRecorder{}
	var principal *Principal
	handler := Authenticate(cfg, seededLoader(), sessions, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal = PrincipalFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/cases", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)
	require.NotNil(t, principal)
	assert.Equal(t, int64(7), principal.ID)
	assert.Equal(t, "jdoe", principal.Username)
	assert.Equal(t, "jdoe@example.com", principal.Email)
	assert.Equal(t, []string{"MODERATOR"}, principal.Roles)
	assert.Equal(t, []string{"jdoe"}, sessions.recorded)
}

func TestAuthenticateAnonymousWhenUserDeleted(t *testing.T) {
	cfg := testJWTConfig()
	token, err := pkgAuth.Mint(cfg, time.Now(), "ghost")
	require.NoError(t, err)

	var principal *Principal
	handler := Authenticate(cfg, seededLoader(), nil, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal = PrincipalFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/cases", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Nil(t, principal)
}
