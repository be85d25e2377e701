package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"

	"github.com/wejdenmesaoud/cashback/internal/cases"
	"github.com/wejdenmesaoud/cashback/pkg/db/models"
)

type stubCaseStore struct {
	caseStore
	byID    map[int64]*models.Case
	created *models.Case
	saved   *models.Case
}

func (s *stubCaseStore) FindByID(_ context.Context, id int64) (*models.Case, error) {
	if record, ok := s.byID[id]; ok {
		return record, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubCaseStore) Create(_ context.Context, record *models.Case) (*models.Case, error) {
	record.ID = 101
	s.created = record
	return record, nil
}

func (s *stubCaseStore) Save(_ context.Context, record *models.Case) (*models.Case, error) {
	s.saved = record
	return record, nil
}

type stubEngineerFinder struct {
	byID map[int64]*models.Engineer
}

func (s *stubEngineerFinder) FindByID(_ context.Context, id int64) (*models.Engineer, error) {
	if engineer, ok := s.byID[id]; ok {
		return engineer, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type stubStatistics struct {
	stats *cases.Statistics
	err   error
}

func (s stubStatistics) EngineerStatistics(context.Context, int64, time.Time, time.Time) (*cases.Statistics, error) {
	return s.stats, s.err
}

func TestCaseGetSuccess(t *testing.T) {
	store := &stubCaseStore{byID: map[int64]*models.Case{
		5: {ID: 5, CaseDescription: "printer down", EngineerID: 1},
	}}

	router := chi.NewRouter()
	router.Get("/api/cases/{id}", CaseGet(store, nil))

	req := httptest.NewRequest(http.MethodGet, "/api/cases/5", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	var body models.Case
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.ID != 5 || body.CaseDescription != "printer down" {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestCaseGetNotFound(t *testing.T) {
	store := &stubCaseStore{byID: map[int64]*models.Case{}}

	router := chi.NewRouter()
	router.Get("/api/cases/{id}", CaseGet(store, nil))

	req := httptest.NewRequest(http.MethodGet, "/api/cases/999", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rec.Code)
	}
}

func TestCaseGetRejectsBadID(t *testing.T) {
	router := chi.NewRouter()
	router.Get("/api/cases/{id}", CaseGet(&stubCaseStore{}, nil))

	req := httptest.NewRequest(http.MethodGet, "/api/cases/abc", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestCaseCreateSuccess(t *testing.T) {
	store := &stubCaseStore{}
	router := chi.NewRouter()
	router.Post("/api/cases", CaseCreate(store, nil))

	payload := map[string]any{
		"caseDescription": "vpn failure",
		"date":            "2026-03-01T09:00:00Z",
		"cesRating":       4,
		"surveySource":    "Case",
		"engineerId":      7,
	}
	raw, _ := json.Marshal(payload)

	req := httptest.NewRequest(http.MethodPost, "/api/cases", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", rec.Code, rec.Body.String())
	}
	if store.created == nil || store.created.EngineerID != 7 {
		t.Fatalf("case not persisted: %+v", store.created)
	}
	if store.created.CESRating == nil || *store.created.CESRating != 4 {
		t.Fatalf("ces rating not carried: %+v", store.created.CESRating)
	}
}

func TestCaseCreateRejectsMissingDescription(t *testing.T) {
	router := chi.NewRouter()
	router.Post("/api/cases", CaseCreate(&stubCaseStore{}, nil))

	raw, _ := json.Marshal(map[string]any{
		"date":       "2026-03-01T09:00:00Z",
		"engineerId": 7,
	})
	req := httptest.NewRequest(http.MethodPost, "/api/cases", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestCaseCreateRejectsOutOfRangeRating(t *testing.T) {
	router := chi.NewRouter()
	router.Post("/api/cases", CaseCreate(&stubCaseStore{}, nil))

	raw, _ := json.Marshal(map[string]any{
		"caseDescription": "bad rating",
		"date":            "2026-03-01T09:00:00Z",
		"cesRating":       9,
		"engineerId":      7,
	})
	req := httptest.NewRequest(http.MethodPost, "/api/cases", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestCaseAssignEngineerSuccess(t *testing.T) {
	store := &stubCaseStore{byID: map[int64]*models.Case{
		5: {ID: 5, CaseDescription: "printer down", EngineerID: 1},
	}}
	engineers := &stubEngineerFinder{byID: map[int64]*models.Engineer{
		9: {ID: 9, FullName: "Jane Doe"},
	}}

	router := chi.NewRouter()
	router.Put("/api/cases/{id}/engineer/{engineerId}", CaseAssignEngineer(store, engineers, nil))

	req := httptest.NewRequest(http.MethodPut, "/api/cases/5/engineer/9", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if store.saved == nil || store.saved.EngineerID != 9 {
		t.Fatalf("engineer not reassigned: %+v", store.saved)
	}
}

func TestCaseAssignEngineerUnknownEngineer(t *testing.T) {
	store := &stubCaseStore{byID: map[int64]*models.Case{
		5: {ID: 5, CaseDescription: "printer down", EngineerID: 1},
	}}

	router := chi.NewRouter()
	router.Put("/api/cases/{id}/engineer/{engineerId}", CaseAssignEngineer(store, &stubEngineerFinder{}, nil))

	req := httptest.NewRequest(http.MethodPut, "/api/cases/5/engineer/404", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rec.Code)
	}
}

func TestCaseStatisticsSuccess(t *testing.T) {
	stats := &cases.Statistics{
		EngineerID:       7,
		EngineerName:     "Jane Doe",
		CaseCount:        12,
		AverageCESRating: 4.25,
	}

	router := chi.NewRouter()
	router.Get("/api/cases/statistics/engineer/{engineerId}", CaseStatistics(stubStatistics{stats: stats}, nil))

	req := httptest.NewRequest(http.MethodGet, "/api/cases/statistics/engineer/7?start=2026-01-01T00:00:00Z&end=2026-02-01T00:00:00Z", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body["engineerName"] != "Jane Doe" {
		t.Fatalf("unexpected body: %v", body)
	}
	if body["averageCesRating"] != 4.25 {
		t.Fatalf("unexpected average: %v", body["averageCesRating"])
	}
}

func TestCaseStatisticsRequiresRange(t *testing.T) {
	router := chi.NewRouter()
	router.Get("/api/cases/statistics/engineer/{engineerId}", CaseStatistics(stubStatistics{}, nil))

	req := httptest.NewRequest(http.MethodGet, "/api/cases/statistics/engineer/7", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}
