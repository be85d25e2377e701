package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wejdenmesaoud/cashback/api/responses"
	"github.com/wejdenmesaoud/cashback/api/validators"
	"github.com/wejdenmesaoud/cashback/pkg/db/models"
	"github.com/wejdenmesaoud/cashback/pkg/logger"
)

type bonusStore interface {
	List(ctx context.Context) ([]models.Bonus, error)
	FindByID(ctx context.Context, id int64) (*models.Bonus, error)
	FindByEngineer(ctx context.Context, engineerID int64) ([]models.Bonus, error)
	Create(ctx context.Context, bonus *models.Bonus) (*models.Bonus, error)
	Delete(ctx context.Context, id int64) error
}

type bonusRequest struct {
	Amount          decimal.Decimal `json:"amount" validate:"required"`
	CalculationDate *time.Time      `json:"calculationDate" validate:"required"`
	StartPeriod     *time.Time      `json:"startPeriod" validate:"required"`
	EndPeriod       *time.Time      `json:"endPeriod" validate:"required"`
	EngineerID      int64           `json:"engineerId" validate:"required,gt=0"`
}

// BonusList returns every bonus.
func BonusList(store bonusStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bonusesList, err := store.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}
		responses.WriteSuccess(w, bonusesList)
	}
}

// BonusGet returns one bonus by id.
func BonusGet(store bonusStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}

		bonus, err := store.FindByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, notFoundOr(err, "bonus not found"))
			return
		}
		responses.WriteSuccess(w, bonus)
	}
}

// BonusesByEngineer lists an engineer's bonuses; unknown engineer is 404.
func BonusesByEngineer(store bonusStore, engineers engineerFinder, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		engineerID, err := validators.ParsePathID(r, "engineerId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}

		if _, err := engineers.FindByID(r.Context(), engineerID); err != nil {
			responses.WriteError(r.Context(), logg, w, r, notFoundOr(err, "engineer not found"))
			return
		}

		bonusesList, err := store.FindByEngineer(r.Context(), engineerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}
		responses.WriteSuccess(w, bonusesList)
	}
}

// BonusCreate records a calculated bonus for an engineer.
func BonusCreate(store bonusStore, engineers engineerFinder, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload bonusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}

		if _, err := engineers.FindByID(r.Context(), payload.EngineerID); err != nil {
			responses.WriteError(r.Context(), logg, w, r, notFoundOr(err, "engineer not found"))
			return
		}

		bonus := &models.Bonus{
			Amount:          payload.Amount,
			CalculationDate: *payload.CalculationDate,
			StartPeriod:     *payload.StartPeriod,
			EndPeriod:       *payload.EndPeriod,
			EngineerID:      payload.EngineerID,
		}

		created, err := store.Create(r.Context(), bonus)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// BonusDelete removes a bonus.
func BonusDelete(store bonusStore, logg *logger.Logger) http.HandlerFunc {
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
		responses.WriteNoContent(w)
	}
}
