package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	pkgAuth "github.com/wejdenmesaoud/cashback/pkg/auth"
	"github.com/wejdenmesaoud/cashback/pkg/config"
	"github.com/wejdenmesaoud/cashback/pkg/db"
	"github.com/wejdenmesaoud/cashback/pkg/db/models"
	"github.com/wejdenmesaoud/cashback/pkg/logger"
)

type userLoader interface {
	FindByUsername(ctx context.Context, username string) (*models.User, error)
}

type sessionRecorder interface {
	Record(subject string)
}

// Authenticate resolves the bearer token, if any, into a Principal. It never
// rejects a request: requests without a usable identity continue anonymously
// and role gates decide access downstream. Roles come from storage on every
// request rather than from token claims.
func Authenticate(cfg config.JWTConfig, users userLoader, sessions sessionRecorder, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			username, err := pkgAuth.Verify(cfg, token)
			if err != nil {
				if logg != nil {
					ctx := logg.WithFields(r.Context(), map[string]any{
						"token_error": verifyKind(err),
					})
					logg.Warn(ctx, "auth.token_rejected")
				}
				next.ServeHTTP(w, r)
				return
			}

			user, err := users.FindByUsername(r.Context(), username)
			if err != nil {
				if logg != nil && !db.IsNotFound(err) {
					logg.Error(r.Context(), "auth.user_lookup_failed", err)
				}
				next.ServeHTTP(w, r)
				return
			}

			principal := &Principal{
				ID:       user.ID,
				Username: user.Username,
				Email:    user.Email,
				Roles:    user.RoleNames(),
			}
			ctx := WithPrincipal(r.Context(), principal)
			if logg != nil {
				ctx = logg.WithUsername(ctx, principal.Username)
			}
			if sessions != nil {
				sessions.Record(principal.Username)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	if raw == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(raw), "bearer ") {
		return strings.TrimSpace(raw[7:])
	}
	return raw
}

func verifyKind(err error) string {
	var verifyErr *pkgAuth.VerifyError
	if errors.As(err, &verifyErr) {
		return string(verifyErr.Kind)
	}
	return "unknown"
}
