package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dunamismax/go-cli/models"
)

// CreateSession issues a fresh bearer token for a user, valid for ttl.
func (s *Store) CreateSession(userID int64, ttl time.Duration) (*models.Session, error) {
	session := &models.Session{
		Token:     uuid.NewString(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(ttl).Truncate(time.Second),
	}
	_, err := s.db.Exec(
		`INSERT INTO sessions (token, user_id, expires_at) VALUES (?, ?, ?)`,
		session.Token, session.UserID, session.ExpiresAt.Unix(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return session, nil
}

// GetSession returns the session for a token. Expired sessions are
// deleted on sight and reported as ErrSessionExpired.
func (s *Store) GetSession(token string) (*models.Session, error) {
	var session models.Session
	var expires int64
	err := s.db.QueryRow(
		`SELECT token, user_id, expires_at FROM sessions WHERE token = ?`, token,
	).Scan(&session.Token, &session.UserID, &expires)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	session.ExpiresAt = time.Unix(expires, 0)
	if time.Now().After(session.ExpiresAt) {
		s.DeleteSession(token)
		return nil, ErrSessionExpired
	}
	return &session, nil
}

// DeleteSession revokes a token. Deleting an unknown token is not an
// error.
func (s *Store) DeleteSession(token string) error {
	if _, err := s.db.Exec(`DELETE FROM sessions WHERE token = ?`, token); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// PruneExpiredSessions deletes sessions that expired before now and
// reports how many went away.
func (s *Store) PruneExpiredSessions() (int64, error) {
	res, err := s.db.Exec(`DELETE FROM sessions WHERE expires_at < ?`, time.Now().Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to prune sessions: %w", err)
	}
	return res.RowsAffected()
}
