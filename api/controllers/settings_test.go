package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"

	"github.com/wejdenmesaoud/cashback/pkg/db/models"
)

type stubSettingStore struct {
	settingStore
	rows    []models.Setting
	created *models.Setting
}

func (s *stubSettingStore) Global(context.Context) (*models.Setting, error) {
	if len(s.rows) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &s.rows[0], nil
}

func (s *stubSettingStore) Create(_ context.Context, setting *models.Setting) (*models.Setting, error) {
	setting.ID = 1
	s.created = setting
	return setting, nil
}

func TestSettingGlobalEmptyTable(t *testing.T) {
	handler := SettingGlobal(&stubSettingStore{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/settings/global", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rec.Code)
	}
	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Message != "No global setting found" {
		t.Fatalf("unexpected message: %q", body.Message)
	}
}

func TestSettingGlobalReturnsFirstRow(t *testing.T) {
	store := &stubSettingStore{rows: []models.Setting{
		{ID: 1, SettingKey: "bonus", CaseCoefficient: 1.5, ChatCoefficient: 0.5},
		{ID: 2, SettingKey: "other", CaseCoefficient: 9, ChatCoefficient: 9},
	}}
	handler := SettingGlobal(store, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/settings/global", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	var body models.Setting
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.ID != 1 || body.SettingKey != "bonus" {
		t.Fatalf("unexpected setting: %+v", body)
	}
}

func TestSettingCreateRejectedWhenRowExists(t *testing.T) {
	store := &stubSettingStore{rows: []models.Setting{{ID: 1, SettingKey: "bonus"}}}
	router := chi.NewRouter()
	router.Post("/api/settings", SettingCreate(store, nil))

	raw, _ := json.Marshal(map[string]any{"settingKey": "bonus", "caseCoefficient": 1.0, "chatCoefficient": 0.5})
	req := httptest.NewRequest(http.MethodPost, "/api/settings", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
	if store.created != nil {
		t.Fatalf("create should not run: %+v", store.created)
	}
}

func TestSettingCreateSuccessOnEmptyTable(t *testing.T) {
	store := &stubSettingStore{}
	router := chi.NewRouter()
	router.Post("/api/settings", SettingCreate(store, nil))

	raw, _ := json.Marshal(map[string]any{"settingKey": "bonus", "caseCoefficient": 1.0, "chatCoefficient": 0.5})
	req := httptest.NewRequest(http.MethodPost, "/api/settings", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", rec.Code, rec.Body.String())
	}
	if store.created == nil || store.created.SettingKey != "bonus" {
		t.Fatalf("setting not persisted: %+v", store.created)
	}
}
