package middleware

import (
	"net/http"

	"github.com/wejdenmesaoud/cashback/api/responses"
	pkgerrors "github.com/wejdenmesaoud/cashback/pkg/errors"
	"github.com/wejdenmesaoud/cashback/pkg/enums"
	"github.com/wejdenmesaoud/cashback/pkg/logger"
)

// RequireAnyRole admits requests whose principal holds at least one of the
// listed roles. Anonymous requests get 401; authenticated requests without a
// matching role get 403. Membership is flat: ADMIN does not imply MODERATOR.
func RequireAnyRole(logg *logger.Logger, roles ...enums.RoleName) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal := PrincipalFromContext(r.Context())
			if principal == nil {
				responses.WriteError(r.Context(), logg, w, r, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required"))
				return
			}
			for _, role := range roles {
				if principal.HasRole(string(role)) {
					next.ServeHTTP(w, r)
					return
				}
			}
			responses.WriteError(r.Context(), logg, w, r, pkgerrors.New(pkgerrors.CodeForbidden, "insufficient role"))
		})
	}
}
