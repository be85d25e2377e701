package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/wejdenmesaoud/cashback/pkg/metrics"
)

func TestMonitoringHealth(t *testing.T) {
	handler := MonitoringHealth(time.Now().Add(-42 * time.Second))

	req := httptest.NewRequest(http.MethodGet, "/api/monitoring/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body["status"] != "UP" {
		t.Fatalf("unexpected status: %v", body["status"])
	}
	if body["application"] != "Cashback Management System" {
		t.Fatalf("unexpected application: %v", body["application"])
	}
	if body["uptime_seconds"].(float64) < 42 {
		t.Fatalf("unexpected uptime: %v", body["uptime_seconds"])
	}
}

func TestMonitoringMetricsSummary(t *testing.T) {
	registry := prometheus.NewRegistry()
	authMetrics := metrics.NewAuthMetrics(registry)
	authMetrics.IncLoginSuccess()
	authMetrics.IncLoginSuccess()
	authMetrics.IncLoginFailure("bad_credentials")
	authMetrics.IncRegistration()

	active := 3
	metrics.RegisterActiveUsersGauge(registry, func() int { return active })

	handler := MonitoringMetricsSummary(registry, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/monitoring/metrics/summary", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	var body map[string]float64
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body["login_success_total"] != 2 {
		t.Fatalf("unexpected login successes: %v", body["login_success_total"])
	}
	if body["login_failure_total"] != 1 {
		t.Fatalf("unexpected login failures: %v", body["login_failure_total"])
	}
	if body["user_registration_total"] != 1 {
		t.Fatalf("unexpected registrations: %v", body["user_registration_total"])
	}
	if body["active_users"] != 3 {
		t.Fatalf("unexpected active users: %v", body["active_users"])
	}
}

func TestMonitoringMetricsSummaryEmptyRegistry(t *testing.T) {
	handler := MonitoringMetricsSummary(prometheus.NewRegistry(), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/monitoring/metrics/summary", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	var body map[string]float64
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body["login_success_total"] != 0 {
		t.Fatalf("expected zero default, got %v", body["login_success_total"])
	}
}
