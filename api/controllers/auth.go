package controllers

import (
	"net/http"

	"github.com/wejdenmesaoud/cashback/api/middleware"
	"github.com/wejdenmesaoud/cashback/api/responses"
	"github.com/wejdenmesaoud/cashback/api/validators"
	"github.com/wejdenmesaoud/cashback/internal/auth"
	pkgerrors "github.com/wejdenmesaoud/cashback/pkg/errors"
	"github.com/wejdenmesaoud/cashback/pkg/logger"
)

// Signin exchanges credentials for a bearer token.
func Signin(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, r, pkgerrors.New(pkgerrors.CodeServerError, "auth service unavailable"))
			return
		}

		var payload auth.SigninRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}

		resp, err := svc.Signin(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}

		responses.WriteSuccess(w, resp)
	}
}

// Signup registers a new account. Unknown role aliases fall back to USER.
func Signup(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, r, pkgerrors.New(pkgerrors.CodeServerError, "auth service unavailable"))
			return
		}

		var payload auth.SignupRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}

		resp, err := svc.Signup(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}

		responses.WriteSuccess(w, resp)
	}
}

// Signout drops the caller from the active-session tracker. Works for
// anonymous callers too: the token may already be expired client-side.
func Signout(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, r, pkgerrors.New(pkgerrors.CodeServerError, "auth service unavailable"))
			return
		}

		username := ""
		if principal := middleware.PrincipalFromContext(r.Context()); principal != nil {
			username = principal.Username
		}

		responses.WriteSuccess(w, svc.Signout(r.Context(), username))
	}
}
