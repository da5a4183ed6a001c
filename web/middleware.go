package web

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dunamismax/go-cli/models"
	"github.com/dunamismax/go-cli/store"
)

type contextKey string

const userContextKey contextKey = "user"

// requireAuth resolves the bearer token to a session and loads the
// owning user into the request context.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		session, err := s.Store.GetSession(token)
		switch {
		case errors.Is(err, store.ErrSessionExpired):
			writeError(w, http.StatusUnauthorized, "session expired, please log in again")
			return
		case errors.Is(err, store.ErrSessionNotFound):
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		case err != nil:
			serverError(w, err)
			return
		}
		user, err := s.Store.GetUser(session.UserID)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}
		if !user.IsActive {
			writeError(w, http.StatusForbidden, "account is disabled")
			return
		}
		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

// currentUser returns the user requireAuth stored in the context, or
// nil on routes outside the authenticated group.
func currentUser(r *http.Request) *models.User {
	user, _ := r.Context().Value(userContextKey).(*models.User)
	return user
}
