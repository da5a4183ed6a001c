package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dunamismax/go-cli/models"
)

// setupTestStore opens a store backed by a throwaway database file.
func setupTestStore(t *testing.T) (*Store, func()) {
	t.Helper()

	dir, err := os.MkdirTemp("", "store_test_*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}

	s, err := Open(filepath.Join(dir, "test.db"))
	if err != nil {
		os.RemoveAll(dir)
		t.Fatalf("failed to open store: %v", err)
	}
	return s, func() {
		s.Close()
		os.RemoveAll(dir)
	}
}

// insertTestUser creates a user with defaults good enough for most
// tests.
func insertTestUser(t *testing.T, s *Store, username string) *models.User {
	t.Helper()

	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		FullName:     "Test User",
		IsActive:     true,
		PasswordHash: "not-a-real-hash",
	}
	if err := s.CreateUser(user); err != nil {
		t.Fatalf("failed to insert user %s: %v", username, err)
	}
	return user
}

// insertTestTask creates a task with the given title.
func insertTestTask(t *testing.T, s *Store, title string) *models.Task {
	t.Helper()

	task := &models.Task{Title: title, Priority: "medium"}
	if err := s.CreateTask(task); err != nil {
		t.Fatalf("failed to insert task %s: %v", title, err)
	}
	return task
}
