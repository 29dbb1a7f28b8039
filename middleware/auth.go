package middleware

import (
	"context"
	"net/http"
	"strings"

	"note-taking-api/apperr"
	"note-taking-api/models"
)

type contextKey struct{}

type TokenVerifier interface {
	VerifyToken(token string) (models.Identity, error)
}

// ErrorWriter renders an error response. The handlers package supplies the
// envelope writer so every failure has the same shape.
type ErrorWriter func(w http.ResponseWriter, r *http.Request, err error)

// RequireAuth rejects requests without a valid bearer token and stores the
// verified identity on the request context for the handlers.
func RequireAuth(verifier TokenVerifier, writeError ErrorWriter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeError(w, r, apperr.Unauthorized("Authorization header missing"))
				return
			}

			scheme, tokenStr, ok := strings.Cut(authHeader, " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(tokenStr) == "" {
				writeError(w, r, apperr.Unauthorized("Authorization header format must be Bearer {token}"))
				return
			}

			identity, err := verifier.VerifyToken(strings.TrimSpace(tokenStr))
			if err != nil {
				writeError(w, r, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
		})
	}
}

func WithIdentity(ctx context.Context, identity models.Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, identity)
}

// IdentityFrom returns the identity stored by RequireAuth. The zero Identity
// is returned when the request was not authenticated.
func IdentityFrom(ctx context.Context) models.Identity {
	identity, _ := ctx.Value(contextKey{}).(models.Identity)
	return identity
}
