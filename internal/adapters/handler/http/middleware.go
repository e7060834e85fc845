package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/taskman/api/internal/core/domain"
	"github.com/taskman/api/internal/core/ports"
)

type contextKey int

const userContextKey contextKey = iota

// UserFromContext returns the identity attached by the Authenticator
// middleware.
func UserFromContext(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(userContextKey).(*domain.User)
	return user, ok
}

// Authenticator gates a route group behind a bearer token. It extracts
// the token from the Authorization header, verifies it, loads the user
// and rejects tokens issued before the user's last password change.
// Any failure ends the request with a 401 before the handler runs.
func Authenticator(authService ports.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				respondError(w, http.StatusUnauthorized, "you are not logged in, please log in to get access")
				return
			}

			user, err := authService.Authenticate(r.Context(), token)
			if err != nil {
				switch {
				case errors.Is(err, domain.ErrPasswordChanged):
					respondError(w, http.StatusUnauthorized, domain.ErrPasswordChanged.Error())
				case errors.Is(err, domain.ErrInvalidToken):
					respondError(w, http.StatusUnauthorized, domain.ErrInvalidToken.Error())
				default:
					respondError(w, http.StatusInternalServerError, domain.ErrInternal.Error())
				}
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRoles allows the request through only when the authenticated
// identity's role is in the allow-list. Must run after Authenticator.
func RequireRoles(roles ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok {
				respondError(w, http.StatusUnauthorized, "you are not logged in, please log in to get access")
				return
			}
			for _, role := range roles {
				if user.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			respondError(w, http.StatusForbidden, domain.ErrForbidden.Error())
		})
	}
}
