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

type teamStore interface {
	List(ctx context.Context) ([]models.Team, error)
	FindByID(ctx context.Context, id int64) (*models.Team, error)
	FindByName(ctx context.Context, name string) (*models.Team, error)
	FindByUser(ctx context.Context, userID int64) ([]models.Team, error)
	Create(ctx context.Context, team *models.Team) (*models.Team, error)
	Save(ctx context.Context, team *models.Team) (*models.Team, error)
	Delete(ctx context.Context, id int64) error
}

type userFinder interface {
	FindByID(ctx context.Context, id int64) (*models.User, error)
}

type teamRequest struct {
	Name   string `json:"name" validate:"required,max=100"`
	UserID *int64 `json:"userId"`
}

// TeamList returns every team.
func TeamList(store teamStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		teamsList, err := store.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}
		responses.WriteSuccess(w, teamsList)
	}
}

// TeamGet returns one team by id.
func TeamGet(store teamStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}

		team, err := store.FindByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, notFoundOr(err, "team not found"))
			return
		}
		responses.WriteSuccess(w, team)
	}
}

// TeamByName looks a team up by its exact name.
func TeamByName(store teamStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")
		team, err := store.FindByName(r.Context(), name)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, notFoundOr(err, "team not found"))
			return
		}
		responses.WriteSuccess(w, team)
	}
}

// TeamsByUser lists the teams managed by a user; unknown user is 404.
func TeamsByUser(store teamStore, users userFinder, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := validators.ParsePathID(r, "userId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}

		if _, err := users.FindByID(r.Context(), userID); err != nil {
			responses.WriteError(r.Context(), logg, w, r, notFoundOr(err, "user not found"))
			return
		}

		teamsList, err := store.FindByUser(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}
		responses.WriteSuccess(w, teamsList)
	}
}

// TeamCreate registers a new team.
func TeamCreate(store teamStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload teamRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}

		created, err := store.Create(r.Context(), &models.Team{Name: payload.Name, UserID: payload.UserID})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// TeamCreateWithManager registers a new team already bound to a manager user.
func TeamCreateWithManager(store teamStore, users userFinder, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := validators.ParsePathID(r, "userId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}

		var payload teamRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}

		user, err := users.FindByID(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, notFoundOr(err, "user not found"))
			return
		}

		created, err := store.Create(r.Context(), &models.Team{Name: payload.Name, UserID: &user.ID})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// TeamUpdate replaces a team's fields.
func TeamUpdate(store teamStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}

		var payload teamRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}

		team, err := store.FindByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, notFoundOr(err, "team not found"))
			return
		}

		team.Name = payload.Name
		team.UserID = payload.UserID
		team.User = nil
		updated, err := store.Save(r.Context(), team)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

// TeamAssignManager binds a team to a manager user.
func TeamAssignManager(store teamStore, users userFinder, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}
		userID, err := validators.ParsePathID(r, "userId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}

		team, err := store.FindByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, notFoundOr(err, "team not found"))
			return
		}
		user, err := users.FindByID(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, notFoundOr(err, "user not found"))
			return
		}

		team.UserID = &user.ID
		team.User = nil
		updated, err := store.Save(r.Context(), team)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

// TeamDelete removes a team.
func TeamDelete(store teamStore, logg *logger.Logger) http.HandlerFunc {
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
