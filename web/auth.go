package web

import (
	"errors"
	"log"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/dunamismax/go-cli/models"
	"github.com/dunamismax/go-cli/store"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string       `json:"token"`
	TokenType string       `json:"token_type"`
	ExpiresAt string       `json:"expires_at"`
	User      *models.User `json:"user"`
}

// login checks the credentials and opens a new session.
func (s *Server) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := decodeBody(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		user, err := s.Store.GetUserByUsername(req.Username)
		if errors.Is(err, store.ErrUserNotFound) {
			writeError(w, http.StatusUnauthorized, "Incorrect username or password")
			return
		}
		if err != nil {
			serverError(w, err)
			return
		}
		if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
			writeError(w, http.StatusUnauthorized, "Incorrect username or password")
			return
		}
		if !user.IsActive {
			writeError(w, http.StatusForbidden, "account is disabled")
			return
		}
		session, err := s.Store.CreateSession(user.ID, s.sessionTTL())
		if err != nil {
			serverError(w, err)
			return
		}
		log.Printf("user %s logged in", user.Username)
		writeData(w, http.StatusOK, loginResponse{
			Token:     session.Token,
			TokenType: "bearer",
			ExpiresAt: session.ExpiresAt.Format(timeLayout),
			User:      user,
		})
	}
}

// logout drops the session behind the presented token.
func (s *Server) logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.Store.DeleteSession(bearerToken(r)); err != nil {
			serverError(w, err)
			return
		}
		writeMessage(w, http.StatusOK, "Logged out successfully")
	}
}

// me returns the authenticated user.
func (s *Server) me() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeData(w, http.StatusOK, currentUser(r))
	}
}
