package web

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/dunamismax/go-cli/models"
	"github.com/dunamismax/go-cli/store"
)

const (
	maxUsernameLength = 50
	maxEmailLength    = 100
	minPasswordLength = 8
	maxPasswordLength = 72 // bcrypt input limit
)

type createUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

type updateUserRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	FullName *string `json:"full_name"`
	IsActive *bool   `json:"is_active"`
}

// createUser registers a new account. This is the only user endpoint
// reachable without a token.
func (s *Server) createUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createUserRequest
		if err := decodeBody(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		req.Username = strings.TrimSpace(req.Username)
		req.Email = strings.TrimSpace(req.Email)
		if err := validateUsername(req.Username); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := validateEmail(req.Email); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := validatePassword(req.Password); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			serverError(w, err)
			return
		}
		user := &models.User{
			Username:     req.Username,
			Email:        req.Email,
			FullName:     strings.TrimSpace(req.FullName),
			IsActive:     true,
			PasswordHash: string(hash),
		}
		switch err := s.Store.CreateUser(user); {
		case errors.Is(err, store.ErrUsernameTaken):
			writeError(w, http.StatusBadRequest, "Username already registered")
			return
		case errors.Is(err, store.ErrEmailTaken):
			writeError(w, http.StatusBadRequest, "Email already registered")
			return
		case err != nil:
			serverError(w, err)
			return
		}
		writeData(w, http.StatusCreated, user)
	}
}

func (s *Server) listUsers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, perPage := pageParams(r)
		users, err := s.Store.ListUsers(perPage, (page-1)*perPage)
		if err != nil {
			serverError(w, err)
			return
		}
		total, err := s.Store.CountUsers()
		if err != nil {
			serverError(w, err)
			return
		}
		writePage(w, users, pageMeta(total, page, perPage))
	}
}

func (s *Server) getUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		user, err := s.Store.GetUser(id)
		if errors.Is(err, store.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		if err != nil {
			serverError(w, err)
			return
		}
		writeData(w, http.StatusOK, user)
	}
}

func (s *Server) updateUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		var req updateUserRequest
		if err := decodeBody(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if req.Username != nil {
			trimmed := strings.TrimSpace(*req.Username)
			if err := validateUsername(trimmed); err != nil {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			req.Username = &trimmed
		}
		if req.Email != nil {
			trimmed := strings.TrimSpace(*req.Email)
			if err := validateEmail(trimmed); err != nil {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			req.Email = &trimmed
		}
		user, err := s.Store.UpdateUser(id, store.UserUpdate{
			Username: req.Username,
			Email:    req.Email,
			FullName: req.FullName,
			IsActive: req.IsActive,
		})
		switch {
		case errors.Is(err, store.ErrUserNotFound):
			writeError(w, http.StatusNotFound, "User not found")
			return
		case errors.Is(err, store.ErrUsernameTaken):
			writeError(w, http.StatusBadRequest, "Username already registered")
			return
		case errors.Is(err, store.ErrEmailTaken):
			writeError(w, http.StatusBadRequest, "Email already registered")
			return
		case err != nil:
			serverError(w, err)
			return
		}
		writeData(w, http.StatusOK, user)
	}
}

func (s *Server) deleteUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		err := s.Store.DeleteUser(id)
		if errors.Is(err, store.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		if err != nil {
			serverError(w, err)
			return
		}
		writeMessage(w, http.StatusOK, "User deleted successfully")
	}
}

func validateUsername(username string) error {
	if username == "" {
		return errors.New("username is required")
	}
	if len(username) > maxUsernameLength {
		return fmt.Errorf("username must be at most %d characters", maxUsernameLength)
	}
	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return errors.New("email is required")
	}
	if len(email) > maxEmailLength {
		return fmt.Errorf("email must be at most %d characters", maxEmailLength)
	}
	at := strings.Index(email, "@")
	if at < 1 || at == len(email)-1 {
		return errors.New("email address is not valid")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters", minPasswordLength)
	}
	if len(password) > maxPasswordLength {
		return fmt.Errorf("password must be at most %d characters", maxPasswordLength)
	}
	return nil
}

// pathID parses the {id} route parameter, answering 400 itself when
// the value is not a number.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

// pageParams reads page and per_page query values, clamping them to
// sane bounds.
func pageParams(r *http.Request) (page, perPage int) {
	page = intQuery(r, "page", 1)
	if page < 1 {
		page = 1
	}
	perPage = intQuery(r, "per_page", 20)
	if perPage < 1 {
		perPage = 20
	}
	if perPage > 100 {
		perPage = 100
	}
	return page, perPage
}

func intQuery(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
