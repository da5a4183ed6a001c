package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dunamismax/go-cli/models"
)

const taskColumns = "id, title, description, completed, priority, created_at, updated_at"

// CreateTask inserts a task and fills in its ID and timestamps. An
// empty priority defaults to medium.
func (s *Store) CreateTask(task *models.Task) error {
	if task.Priority == "" {
		task.Priority = "medium"
	}
	if !models.ValidTaskPriority(task.Priority) {
		return fmt.Errorf("invalid priority %q", task.Priority)
	}

	now := time.Now().Truncate(time.Second)
	res, err := s.db.Exec(
		`INSERT INTO tasks (title, description, completed, priority, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		task.Title, task.Description, boolToInt(task.Completed), task.Priority, now.Unix(), now.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert task: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read task id: %w", err)
	}
	task.ID = id
	task.CreatedAt = now
	task.UpdatedAt = now
	return nil
}

// GetTask returns the task with the given ID.
func (s *Store) GetTask(id int64) (*models.Task, error) {
	row := s.db.QueryRow(`SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	return scanTask(row)
}

// TaskFilter narrows ListTasks. Nil or zero fields mean no filtering.
type TaskFilter struct {
	Completed *bool
	Priority  string
	Limit     int
	Offset    int
}

// ListTasks returns tasks newest first together with the total count
// matching the filter, ignoring the page bounds.
func (s *Store) ListTasks(filter TaskFilter) ([]models.Task, int, error) {
	where := ""
	var args []any
	if filter.Completed != nil {
		where = ` WHERE completed = ?`
		args = append(args, boolToInt(*filter.Completed))
	}
	if filter.Priority != "" {
		if where == "" {
			where = ` WHERE priority = ?`
		} else {
			where += ` AND priority = ?`
		}
		args = append(args, filter.Priority)
	}

	var total int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM tasks`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count tasks: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query := `SELECT ` + taskColumns + ` FROM tasks` + where + ` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`
	rows, err := s.db.Query(query, append(args, limit, filter.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, 0, err
		}
		tasks = append(tasks, *task)
	}
	return tasks, total, rows.Err()
}

// TaskUpdate describes a partial change to a task. Nil fields stay
// untouched.
type TaskUpdate struct {
	Title       *string
	Description *string
	Completed   *bool
	Priority    *string
}

// UpdateTask applies a partial update and returns the updated task.
func (s *Store) UpdateTask(id int64, upd TaskUpdate) (*models.Task, error) {
	task, err := s.GetTask(id)
	if err != nil {
		return nil, err
	}

	if upd.Title != nil {
		task.Title = *upd.Title
	}
	if upd.Description != nil {
		task.Description = *upd.Description
	}
	if upd.Completed != nil {
		task.Completed = *upd.Completed
	}
	if upd.Priority != nil {
		if !models.ValidTaskPriority(*upd.Priority) {
			return nil, fmt.Errorf("invalid priority %q", *upd.Priority)
		}
		task.Priority = *upd.Priority
	}

	task.UpdatedAt = time.Now().Truncate(time.Second)
	_, err = s.db.Exec(
		`UPDATE tasks SET title = ?, description = ?, completed = ?, priority = ?, updated_at = ? WHERE id = ?`,
		task.Title, task.Description, boolToInt(task.Completed), task.Priority, task.UpdatedAt.Unix(), id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update task %d: %w", id, err)
	}
	return task, nil
}

// DeleteTask removes a task.
func (s *Store) DeleteTask(id int64) error {
	res, err := s.db.Exec(`DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrTaskNotFound
	}
	return nil
}

func scanTask(row scanner) (*models.Task, error) {
	var task models.Task
	var completed int
	var created, updated int64
	err := row.Scan(&task.ID, &task.Title, &task.Description, &completed, &task.Priority, &created, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTaskNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan task: %w", err)
	}
	task.Completed = completed != 0
	task.CreatedAt = time.Unix(created, 0)
	task.UpdatedAt = time.Unix(updated, 0)
	return &task, nil
}
