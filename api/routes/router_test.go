package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/wejdenmesaoud/cashback/pkg/activesessions"
	"github.com/wejdenmesaoud/cashback/pkg/config"
)

func testDeps() Deps {
	return Deps{
		Config: &config.Config{
			App: config.AppConfig{Env: "dev", Port: "8080"},
			JWT: config.JWTConfig{Secret: "test-secret", Issuer: "cashback", ExpirationMinutes: 60},
		},
		Registry:  prometheus.NewRegistry(),
		Sessions:  activesessions.New(30*time.Minute, nil),
		StartedAt: time.Now(),
	}
}

func TestRouterOpenEndpoints(t *testing.T) {
	router := NewRouter(testDeps())

	for _, path := range []string{"/health/live", "/api/monitoring/health", "/metrics", "/api/monitoring/metrics/summary"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200 for %s, got %d", path, rec.Code)
		}
	}
}

func TestRouterProtectedRoutesRejectAnonymous(t *testing.T) {
	router := NewRouter(testDeps())

	paths := []string{"/api/cases", "/api/engineers", "/api/teams", "/api/reports", "/api/settings", "/api/bonuses", "/api/users/managers"}
	for _, path := range paths {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401 for %s, got %d", path, rec.Code)
		}
	}
}
