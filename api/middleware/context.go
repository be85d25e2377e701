package middleware

import "context"

type contextKey string

const ctxPrincipal contextKey = "principal"

// Principal is the authenticated identity seeded by the Authenticate
// middleware. Roles are loaded fresh from storage on every request, so a
// revoked grant takes effect without waiting for the token to expire.
type Principal struct {
	ID       int64
	Username string
	Email    string
	Roles    []string
}

// HasRole reports whether the principal carries the named role.
func (p *Principal) HasRole(role string) bool {
	if p == nil {
		return false
	}
	for _, candidate := range p.Roles {
		if candidate == role {
			return true
		}
	}
	return false
}

// WithPrincipal injects the authenticated identity into the context.
func WithPrincipal(ctx context.Context, principal *Principal) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxPrincipal, principal)
}

// PrincipalFromContext returns the authenticated identity, or nil for
// anonymous requests.
func PrincipalFromContext(ctx context.Context) *Principal {
	if ctx == nil {
		return nil
	}
	if v, ok := ctx.Value(ctxPrincipal).(*Principal); ok {
		return v
	}
	return nil
}
