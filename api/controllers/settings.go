package controllers

import (
	"context"
	"net/http"

	"github.com/wejdenmesaoud/cashback/api/responses"
	"github.com/wejdenmesaoud/cashback/api/validators"
	"github.com/wejdenmesaoud/cashback/pkg/db"
	"github.com/wejdenmesaoud/cashback/pkg/db/models"
	pkgerrors "github.com/wejdenmesaoud/cashback/pkg/errors"
	"github.com/wejdenmesaoud/cashback/pkg/logger"
)

type settingStore interface {
	List(ctx context.Context) ([]models.Setting, error)
	Global(ctx context.Context) (*models.Setting, error)
	FindByID(ctx context.Context, id int64) (*models.Setting, error)
	FindByUser(ctx context.Context, userID int64) ([]models.Setting, error)
	Create(ctx context.Context, setting *models.Setting) (*models.Setting, error)
	Save(ctx context.Context, setting *models.Setting) (*models.Setting, error)
	Delete(ctx context.Context, id int64) error
}

type settingRequest struct {
	SettingKey      string  `json:"settingKey" validate:"required,max=100"`
	CaseCoefficient float64 `json:"caseCoefficient"`
	ChatCoefficient float64 `json:"chatCoefficient"`
	UserID          *int64  `json:"userId"`
}

func (req settingRequest) apply(setting *models.Setting) {
	setting.SettingKey = req.SettingKey
	setting.CaseCoefficient = req.CaseCoefficient
	setting.ChatCoefficient = req.ChatCoefficient
	setting.UserID = req.UserID
}

// SettingList returns every setting row.
func SettingList(store settingStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		settingsList, err := store.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}
		responses.WriteSuccess(w, settingsList)
	}
}

// SettingGlobal returns the first setting row as the global configuration.
func SettingGlobal(store settingStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		setting, err := store.Global(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, notFoundOr(err, "No global setting found"))
			return
		}
		responses.WriteSuccess(w, setting)
	}
}

// SettingGet returns one setting by id.
func SettingGet(store settingStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}

		setting, err := store.FindByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, notFoundOr(err, "Setting not found"))
			return
		}
		responses.WriteSuccess(w, setting)
	}
}

// SettingsByUser lists a user's settings; unknown user is 404.
func SettingsByUser(store settingStore, users userFinder, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := validators.ParsePathID(r, "userId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}

		if _, err := users.FindByID(r.Context(), userID); err != nil {
			responses.WriteError(r.Context(), logg, w, r, notFoundOr(err, "User not found"))
			return
		}

		settingsList, err := store.FindByUser(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}
		responses.WriteSuccess(w, settingsList)
	}
}

// SettingCreate records the global setting. Only one configuration is
// allowed: creation is rejected once any row exists.
func SettingCreate(store settingStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload settingRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}

		if err := rejectWhenSettingExists(r.Context(), store); err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}

		setting := &models.Setting{}
		payload.apply(setting)

		created, err := store.Create(r.Context(), setting)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// SettingCreateForUser records the global setting bound to a user.
func SettingCreateForUser(store settingStore, users userFinder, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := validators.ParsePathID(r, "userId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}

		var payload settingRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}

		if err := rejectWhenSettingExists(r.Context(), store); err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}

		user, err := users.FindByID(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, notFoundOr(err, "User not found"))
			return
		}

		setting := &models.Setting{}
		payload.apply(setting)
		setting.UserID = &user.ID

		created, err := store.Create(r.Context(), setting)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// SettingUpdate replaces a setting's fields.
func SettingUpdate(store settingStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}

		var payload settingRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}

		setting, err := store.FindByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, notFoundOr(err, "Setting not found"))
			return
		}

		payload.apply(setting)
		setting.User = nil
		updated, err := store.Save(r.Context(), setting)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

// SettingDelete removes a setting row.
func SettingDelete(store settingStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}

		if err := store.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"message": "Setting deleted successfully"})
	}
}

func rejectWhenSettingExists(ctx context.Context, store settingStore) error {
	_, err := store.Global(ctx)
	if err == nil {
		return pkgerrors.New(pkgerrors.CodeDuplicate, "a setting already exists")
	}
	if db.IsNotFound(err) {
		return nil
	}
	return err
}
