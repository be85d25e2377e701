package controllers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wejdenmesaoud/cashback/api/responses"
	"github.com/wejdenmesaoud/cashback/api/validators"
	"github.com/wejdenmesaoud/cashback/pkg/db/models"
	"github.com/wejdenmesaoud/cashback/pkg/logger"
)

type engineerStore interface {
	List(ctx context.Context) ([]models.Engineer, error)
	FindByID(ctx context.Context, id int64) (*models.Engineer, error)
	FindByTeam(ctx context.Context, teamID int64) ([]models.Engineer, error)
	FindByManager(ctx context.Context, manager string) ([]models.Engineer, error)
	Create(ctx context.Context, engineer *models.Engineer) (*models.Engineer, error)
	Save(ctx context.Context, engineer *models.Engineer) (*models.Engineer, error)
	Delete(ctx context.Context, id int64) error
}

type teamFinder interface {
	FindByID(ctx context.Context, id int64) (*models.Team, error)
}

type engineerRequest struct {
	FullName    string  `json:"fullName" validate:"required,max=100"`
	PhoneNumber *string `json:"phoneNumber"`
	Email       *string `json:"email" validate:"omitempty,email"`
	Gender      *string `json:"gender"`
	Manager     string  `json:"manager" validate:"max=100"`
	TeamID      *int64  `json:"teamId"`
}

func (req engineerRequest) apply(engineer *models.Engineer) {
	engineer.FullName = req.FullName
	engineer.PhoneNumber = req.PhoneNumber
	engineer.Email = req.Email
	engineer.Gender = req.Gender
	engineer.Manager = req.Manager
	engineer.TeamID = req.TeamID
}

// EngineerList returns every engineer.
func EngineerList(store engineerStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		engineersList, err := store.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}
		responses.WriteSuccess(w, engineersList)
	}
}

// EngineerGet returns one engineer by id.
func EngineerGet(store engineerStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}

		engineer, err := store.FindByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, notFoundOr(err, "engineer not found"))
			return
		}
		responses.WriteSuccess(w, engineer)
	}
}

// EngineersByTeam lists a team's engineers; unknown team is 404.
func EngineersByTeam(store engineerStore, teams teamFinder, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		teamID, err := validators.ParsePathID(r, "teamId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}

		if _, err := teams.FindByID(r.Context(), teamID); err != nil {
			responses.WriteError(r.Context(), logg, w, r, notFoundOr(err, "team not found"))
			return
		}

		engineersList, err := store.FindByTeam(r.Context(), teamID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}
		responses.WriteSuccess(w, engineersList)
	}
}

// EngineersByManager lists the engineers reporting to a manager name.
func EngineersByManager(store engineerStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		manager := chi.URLParam(r, "username")
		engineersList, err := store.FindByManager(r.Context(), manager)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}
		responses.WriteSuccess(w, engineersList)
	}
}

// EngineerCreate registers a new engineer.
func EngineerCreate(store engineerStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload engineerRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}

		engineer := &models.Engineer{}
		payload.apply(engineer)

		created, err := store.Create(r.Context(), engineer)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// EngineerUpdate replaces an engineer's fields.
func EngineerUpdate(store engineerStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}

		var payload engineerRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}

		engineer, err := store.FindByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, notFoundOr(err, "engineer not found"))
			return
		}

		payload.apply(engineer)
		updated, err := store.Save(r.Context(), engineer)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

// EngineerAssignTeam moves an engineer to a team.
func EngineerAssignTeam(store engineerStore, teams teamFinder, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}
		teamID, err := validators.ParsePathID(r, "teamId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}

		engineer, err := store.FindByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, notFoundOr(err, "engineer not found"))
			return
		}
		team, err := teams.FindByID(r.Context(), teamID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, notFoundOr(err, "team not found"))
			return
		}

		engineer.TeamID = &team.ID
		engineer.Team = nil
		updated, err := store.Save(r.Context(), engineer)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

// EngineerDelete removes an engineer.
func EngineerDelete(store engineerStore, logg *logger.Logger) http.HandlerFunc {
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
