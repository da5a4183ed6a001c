package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dunamismax/go-cli/models"
)

const userColumns = "id, username, email, full_name, is_active, password_hash, created_at, updated_at"

// CreateUser inserts a user and fills in its ID and timestamps.
// Username and email must be unused.
func (s *Store) CreateUser(user *models.User) error {
	taken, err := s.userExists("username", user.Username, 0)
	if err != nil {
		return err
	}
	if taken {
		return ErrUsernameTaken
	}
	taken, err = s.userExists("email", user.Email, 0)
	if err != nil {
		return err
	}
	if taken {
		return ErrEmailTaken
	}

	now := time.Now().Truncate(time.Second)
	res, err := s.db.Exec(
		`INSERT INTO users (username, email, full_name, is_active, password_hash, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		user.Username, user.Email, user.FullName, boolToInt(user.IsActive), user.PasswordHash, now.Unix(), now.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read user id: %w", err)
	}
	user.ID = id
	user.CreatedAt = now
	user.UpdatedAt = now
	return nil
}

// GetUser returns the user with the given ID.
func (s *Store) GetUser(id int64) (*models.User, error) {
	row := s.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

// GetUserByUsername returns the user with the given username.
func (s *Store) GetUserByUsername(username string) (*models.User, error) {
	row := s.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE username = ?`, username)
	return scanUser(row)
}

// ListUsers returns users ordered by ID with the given page bounds.
func (s *Store) ListUsers(limit, offset int) ([]models.User, error) {
	rows, err := s.db.Query(`SELECT `+userColumns+` FROM users ORDER BY id LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}

// CountUsers returns the total number of users.
func (s *Store) CountUsers() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return n, nil
}

// UserUpdate describes a partial change to a user. Nil fields stay
// untouched.
type UserUpdate struct {
	Username *string
	Email    *string
	FullName *string
	IsActive *bool
}

// UpdateUser applies a partial update and returns the updated user.
func (s *Store) UpdateUser(id int64, upd UserUpdate) (*models.User, error) {
	user, err := s.GetUser(id)
	if err != nil {
		return nil, err
	}

	if upd.Username != nil && *upd.Username != user.Username {
		taken, err := s.userExists("username", *upd.Username, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrUsernameTaken
		}
		user.Username = *upd.Username
	}
	if upd.Email != nil && *upd.Email != user.Email {
		taken, err := s.userExists("email", *upd.Email, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrEmailTaken
		}
		user.Email = *upd.Email
	}
	if upd.FullName != nil {
		user.FullName = *upd.FullName
	}
	if upd.IsActive != nil {
		user.IsActive = *upd.IsActive
	}

	user.UpdatedAt = time.Now().Truncate(time.Second)
	_, err = s.db.Exec(
		`UPDATE users SET username = ?, email = ?, full_name = ?, is_active = ?, updated_at = ? WHERE id = ?`,
		user.Username, user.Email, user.FullName, boolToInt(user.IsActive), user.UpdatedAt.Unix(), id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update user %d: %w", id, err)
	}
	return user, nil
}

// UpdateUserPassword stores a new password hash.
func (s *Store) UpdateUserPassword(id int64, passwordHash string) error {
	res, err := s.db.Exec(
		`UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?`,
		passwordHash, time.Now().Unix(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to update password for user %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrUserNotFound
	}
	return nil
}

// DeleteUser removes a user. Sessions go with it through the foreign
// key cascade.
func (s *Store) DeleteUser(id int64) error {
	res, err := s.db.Exec(`DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrUserNotFound
	}
	return nil
}

// userExists checks a unique column, ignoring the row with excludeID.
func (s *Store) userExists(column, value string, excludeID int64) (bool, error) {
	var n int
	query := fmt.Sprintf(`SELECT COUNT(*) FROM users WHERE %s = ? AND id != ?`, column)
	if err := s.db.QueryRow(query, value, excludeID).Scan(&n); err != nil {
		return false, fmt.Errorf("failed to check %s: %w", column, err)
	}
	return n > 0, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(row scanner) (*models.User, error) {
	var user models.User
	var isActive int
	var created, updated int64
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.FullName, &isActive, &user.PasswordHash, &created, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	user.IsActive = isActive != 0
	user.CreatedAt = time.Unix(created, 0)
	user.UpdatedAt = time.Unix(updated, 0)
	return &user, nil
}
