package todo

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// backupTimeLayout stamps backup file names.
const backupTimeLayout = "20060102_150405"

// Storage persists a todo list as a JSON file.
type Storage struct {
	Path string
}

// NewStorage returns a Storage writing to path.
func NewStorage(path string) *Storage {
	return &Storage{Path: path}
}

// Load reads the list from disk. A missing file yields a fresh empty
// list instead of an error.
func (s *Storage) Load() (*List, error) {
	data, err := os.ReadFile(s.Path)
	if os.IsNotExist(err) {
		return NewList(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.Path, err)
	}

	var list List
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", s.Path, err)
	}
	if list.NextID < 1 {
		list.NextID = 1
	}
	return &list, nil
}

// Save writes the list to disk through a temp file rename, so a crash
// mid-write never leaves a truncated list behind.
func (s *Storage) Save(list *List) error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(s.Path), err)
	}

	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode todo list: %w", err)
	}

	tmp := s.Path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.Path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", s.Path, err)
	}
	return nil
}

// Backup copies the current file to a timestamped sibling and returns
// its path. When there is nothing to back up yet, it returns an empty
// path and no error.
func (s *Storage) Backup() (string, error) {
	data, err := os.ReadFile(s.Path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", s.Path, err)
	}

	timestamp := time.Now().Format(backupTimeLayout)
	backupPath := strings.TrimSuffix(s.Path, ".json") + "." + timestamp + ".backup.json"
	if err := os.WriteFile(backupPath, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", backupPath, err)
	}
	return backupPath, nil
}

// Restore replaces the list with a backup's contents. The backup must
// parse as a todo list before anything is overwritten.
func (s *Storage) Restore(backupPath string) error {
	data, err := os.ReadFile(backupPath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", backupPath, err)
	}

	var list List
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("%s is not a todo list backup: %w", backupPath, err)
	}

	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(s.Path), err)
	}
	if err := os.WriteFile(s.Path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.Path, err)
	}
	return nil
}
