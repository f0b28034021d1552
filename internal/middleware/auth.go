package middleware

import (
	"context"
	"net/http"

	"github.com/novaxiii/agency-backend/internal/apperrors"
	"github.com/novaxiii/agency-backend/internal/auth"
	"github.com/novaxiii/agency-backend/internal/utils"
)

type contextKey string

const claimsContextKey = contextKey("claims")

// Identity is the authenticated caller as carried by the token.
type Identity = auth.Claims

// Verifier checks a bearer token.
type Verifier interface {
	Verify(token string) (*auth.Claims, error)
}

// Authenticate valide le bearer token et injecte l'identité dans le contexte.
func Authenticate(tokens Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := auth.BearerToken(r.Header.Get("Authorization"))
			if !ok {
				utils.Error(w, r, apperrors.Unauthorized("Missing token"))
				return
			}

			claims, err := tokens.Verify(token)
			if err != nil {
				utils.Error(w, r, err)
				return
			}

			ctx := context.WithValue(r.Context(), claimsContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireCapability rejects callers whose role does not grant c.
// It must run after Authenticate.
func RequireCapability(c auth.Capability) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := IdentityFromContext(r.Context())
			if !ok {
				utils.Error(w, r, apperrors.Unauthorized("Missing token"))
				return
			}
			if !auth.Can(id.Role, c) {
				utils.Error(w, r, apperrors.Forbidden("Access denied"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// IdentityFromContext récupère l'appelant authentifié.
func IdentityFromContext(ctx context.Context) (*Identity, bool) {
	claims, ok := ctx.Value(claimsContextKey).(*auth.Claims)
	return claims, ok && claims != nil
}

// WithIdentity returns a context carrying id, as Authenticate does.
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, claimsContextKey, id)
}
