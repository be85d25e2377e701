package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"

	"github.com/wejdenmesaoud/cashback/pkg/db/models"
	"github.com/wejdenmesaoud/cashback/pkg/enums"
)

type stubUserStore struct {
	userStore
	byID       map[int64]*models.User
	byUsername map[string]*models.User
	granted    []string
	revoked    []string
}

func (s *stubUserStore) FindByID(_ context.Context, id int64) (*models.User, error) {
	if user, ok := s.byID[id]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserStore) FindByUsername(_ context.Context, username string) (*models.User, error) {
	if user, ok := s.byUsername[username]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserStore) ListByRole(context.Context, enums.RoleName) ([]models.User, error) {
	var out []models.User
	for _, user := range s.byID {
		out = append(out, *user)
	}
	return out, nil
}

func (s *stubUserStore) FindRoleByName(_ context.Context, name enums.RoleName) (*models.Role, error) {
	return &models.Role{ID: 2, Name: string(name)}, nil
}

func (s *stubUserStore) GrantRole(_ context.Context, user *models.User, role *models.Role) error {
	s.granted = append(s.granted, user.Username)
	return nil
}

func (s *stubUserStore) RevokeRole(_ context.Context, user *models.User, role *models.Role) error {
	s.revoked = append(s.revoked, user.Username)
	return nil
}

func moderatorUser(id int64, username string) *models.User {
	return &models.User{
		ID:       id,
		Username: username,
		Email:    username + "@example.com",
		Roles:    []models.Role{{ID: 2, Name: "MODERATOR"}},
	}
}

func plainUser(id int64, username string) *models.User {
	return &models.User{
		ID:       id,
		Username: username,
		Email:    username + "@example.com",
		Roles:    []models.Role{{ID: 1, Name: "USER"}},
	}
}

func TestManagerGetRejectsNonManager(t *testing.T) {
	store := &stubUserStore{byID: map[int64]*models.User{4: plainUser(4, "pleb")}}

	router := chi.NewRouter()
	router.Get("/api/users/managers/{id}", ManagerGet(store, nil))

	req := httptest.NewRequest(http.MethodGet, "/api/users/managers/4", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Message != "Error: User is not a manager!" {
		t.Fatalf("unexpected message: %q", body.Message)
	}
}

func TestManagerGetSuccess(t *testing.T) {
	store := &stubUserStore{byID: map[int64]*models.User{2: moderatorUser(2, "boss")}}

	router := chi.NewRouter()
	router.Get("/api/users/managers/{id}", ManagerGet(store, nil))

	req := httptest.NewRequest(http.MethodGet, "/api/users/managers/2", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	var body struct {
		Username string   `json:"username"`
		Roles    []string `json:"roles"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Username != "boss" {
		t.Fatalf("unexpected username: %q", body.Username)
	}
}

func TestManagerGrantByIDSuccess(t *testing.T) {
	store := &stubUserStore{byID: map[int64]*models.User{4: plainUser(4, "pleb")}}

	router := chi.NewRouter()
	router.Put("/api/users/{id}/role/manager", ManagerGrantByID(store, nil))

	req := httptest.NewRequest(http.MethodPut, "/api/users/4/role/manager", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if len(store.granted) != 1 || store.granted[0] != "pleb" {
		t.Fatalf("role not granted: %v", store.granted)
	}
	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Message != "Manager role added successfully!" {
		t.Fatalf("unexpected message: %q", body.Message)
	}
}

func TestManagerGrantRejectsExistingManager(t *testing.T) {
	store := &stubUserStore{byID: map[int64]*models.User{2: moderatorUser(2, "boss")}}

	router := chi.NewRouter()
	router.Put("/api/users/{id}/role/manager", ManagerGrantByID(store, nil))

	req := httptest.NewRequest(http.MethodPut, "/api/users/2/role/manager", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
	if len(store.granted) != 0 {
		t.Fatalf("grant should not run: %v", store.granted)
	}
}

func TestManagerRevokeByUsernameSuccess(t *testing.T) {
	store := &stubUserStore{byUsername: map[string]*models.User{"boss": moderatorUser(2, "boss")}}

	router := chi.NewRouter()
	router.Delete("/api/users/username/{username}/role/manager", ManagerRevokeByUsername(store, nil))

	req := httptest.NewRequest(http.MethodDelete, "/api/users/username/boss/role/manager", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if len(store.revoked) != 1 || store.revoked[0] != "boss" {
		t.Fatalf("role not revoked: %v", store.revoked)
	}
}

func TestManagerRevokeRejectsNonManager(t *testing.T) {
	store := &stubUserStore{byUsername: map[string]*models.User{"pleb": plainUser(4, "pleb")}}

	router := chi.NewRouter()
	router.Delete("/api/users/username/{username}/role/manager", ManagerRevokeByUsername(store, nil))

	req := httptest.NewRequest(http.MethodDelete, "/api/users/username/pleb/role/manager", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestManagerRevokeUnknownUser(t *testing.T) {
	router := chi.NewRouter()
	router.Delete("/api/users/username/{username}/role/manager", ManagerRevokeByUsername(&stubUserStore{}, nil))

	req := httptest.NewRequest(http.MethodDelete, "/api/users/username/ghost/role/manager", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rec.Code)
	}
}
