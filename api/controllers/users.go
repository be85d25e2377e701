package controllers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wejdenmesaoud/cashback/api/responses"
	"github.com/wejdenmesaoud/cashback/api/validators"
	"github.com/wejdenmesaoud/cashback/internal/users"
	"github.com/wejdenmesaoud/cashback/pkg/config"
	"github.com/wejdenmesaoud/cashback/pkg/db/models"
	"github.com/wejdenmesaoud/cashback/pkg/enums"
	pkgerrors "github.com/wejdenmesaoud/cashback/pkg/errors"
	"github.com/wejdenmesaoud/cashback/pkg/logger"
	"github.com/wejdenmesaoud/cashback/pkg/security"
)

const (
	usernameTakenMessage  = "Error: Username is already taken!"
	emailInUseMessage     = "Error: Email is already in use!"
	notAManagerMessage    = "Error: User is not a manager!"
	alreadyManagerMessage = "Error: User already has manager role!"
	notManagerRoleMessage = "Error: User does not have manager role!"
	managerAddedMessage   = "Manager role added successfully!"
	managerRemovedMessage = "Manager role removed successfully!"
)

type userStore interface {
	ListByRole(ctx context.Context, name enums.RoleName) ([]models.User, error)
	FindByID(ctx context.Context, id int64) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Save(ctx context.Context, user *models.User) (*models.User, error)
	FindRoleByName(ctx context.Context, name enums.RoleName) (*models.Role, error)
	GrantRole(ctx context.Context, user *models.User, role *models.Role) error
	RevokeRole(ctx context.Context, user *models.User, role *models.Role) error
}

type userUpdateRequest struct {
	Username  *string `json:"username" validate:"omitempty,min=3,max=20"`
	Email     *string `json:"email" validate:"omitempty,email,max=50"`
	Password  *string `json:"password" validate:"omitempty,min=6,max=40"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
}

// ManagerList returns the users holding the MODERATOR role.
func ManagerList(store userStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		managers, err := store.ListByRole(r.Context(), enums.RoleModerator)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}

		out := make([]*users.UserDTO, 0, len(managers))
		for i := range managers {
			out = append(out, users.FromModel(&managers[i]))
		}
		responses.WriteSuccess(w, out)
	}
}

// ManagerGet returns one manager by user id. A user without the MODERATOR
// role is rejected even when the row exists.
func ManagerGet(store userStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}

		user, err := store.FindByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, notFoundOr(err, "user not found"))
			return
		}

		if !hasRole(user, enums.RoleModerator) {
			responses.WriteError(r.Context(), logg, w, r, pkgerrors.New(pkgerrors.CodeInvalidData, notAManagerMessage))
			return
		}
		responses.WriteSuccess(w, users.FromModel(user))
	}
}

// UserUpdate applies the supplied fields to an existing user. Username and
// email changes re-run the uniqueness checks.
func UserUpdate(store userStore, passwordCfg config.PasswordConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}

		var payload userUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}

		user, err := store.FindByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, notFoundOr(err, "user not found"))
			return
		}

		if payload.Username != nil && *payload.Username != user.Username {
			taken, err := store.ExistsByUsername(r.Context(), *payload.Username)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, r, err)
				return
			}
			if taken {
				responses.WriteError(r.Context(), logg, w, r, pkgerrors.New(pkgerrors.CodeDuplicate, usernameTakenMessage))
				return
			}
			user.Username = *payload.Username
		}

		if payload.Email != nil && *payload.Email != user.Email {
			inUse, err := store.ExistsByEmail(r.Context(), *payload.Email)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, r, err)
				return
			}
			if inUse {
				responses.WriteError(r.Context(), logg, w, r, pkgerrors.New(pkgerrors.CodeDuplicate, emailInUseMessage))
				return
			}
			user.Email = *payload.Email
		}

		if payload.Password != nil && *payload.Password != "" {
			hash, err := security.HashPassword(*payload.Password, passwordCfg)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, r, err)
				return
			}
			user.PasswordHash = hash
		}

		if payload.FirstName != nil {
			user.FirstName = payload.FirstName
		}
		if payload.LastName != nil {
			user.LastName = payload.LastName
		}

		updated, err := store.Save(r.Context(), user)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}
		responses.WriteSuccess(w, users.FromModel(updated))
	}
}

// ManagerGrantByID adds the MODERATOR role to a user.
func ManagerGrantByID(store userStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}

		user, err := store.FindByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, notFoundOr(err, "user not found"))
			return
		}

		grantManager(store, logg, w, r, user)
	}
}

// ManagerGrantByUsername adds the MODERATOR role to a user looked up by name.
func ManagerGrantByUsername(store userStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := chi.URLParam(r, "username")
		user, err := store.FindByUsername(r.Context(), username)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, notFoundOr(err, "user not found"))
			return
		}

		grantManager(store, logg, w, r, user)
	}
}

// ManagerRevokeByID removes the MODERATOR role from a user.
func ManagerRevokeByID(store userStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}

		user, err := store.FindByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, notFoundOr(err, "user not found"))
			return
		}

		revokeManager(store, logg, w, r, user)
	}
}

// ManagerRevokeByUsername removes the MODERATOR role from a user looked up
// by name.
func ManagerRevokeByUsername(store userStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := chi.URLParam(r, "username")
		user, err := store.FindByUsername(r.Context(), username)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, notFoundOr(err, "user not found"))
			return
		}

		revokeManager(store, logg, w, r, user)
	}
}

func grantManager(store userStore, logg *logger.Logger, w http.ResponseWriter, r *http.Request, user *models.User) {
	if hasRole(user, enums.RoleModerator) {
		responses.WriteError(r.Context(), logg, w, r, pkgerrors.New(pkgerrors.CodeInvalidData, alreadyManagerMessage))
		return
	}

	role, err := store.FindRoleByName(r.Context(), enums.RoleModerator)
	if err != nil {
		responses.WriteError(r.Context(), logg, w, r, err)
		return
	}
	if err := store.GrantRole(r.Context(), user, role); err != nil {
		responses.WriteError(r.Context(), logg, w, r, err)
		return
	}
	responses.WriteSuccess(w, map[string]string{"message": managerAddedMessage})
}

func revokeManager(store userStore, logg *logger.Logger, w http.ResponseWriter, r *http.Request, user *models.User) {
	if !hasRole(user, enums.RoleModerator) {
		responses.WriteError(r.Context(), logg, w, r, pkgerrors.New(pkgerrors.CodeInvalidData, notManagerRoleMessage))
		return
	}

	role, err := store.FindRoleByName(r.Context(), enums.RoleModerator)
	if err != nil {
		responses.WriteError(r.Context(), logg, w, r, err)
		return
	}
	if err := store.RevokeRole(r.Context(), user, role); err != nil {
		responses.WriteError(r.Context(), logg, w, r, err)
		return
	}
	responses.WriteSuccess(w, map[string]string{"message": managerRemovedMessage})
}

func hasRole(user *models.User, name enums.RoleName) bool {
	for _, role := range user.Roles {
		if role.Name == string(name) {
			return true
		}
	}
	return false
}
