package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dunamismax/go-cli/models"
)

const jobColumns = "id, name, payload, status, progress, total, result, error, created_at, started_at, finished_at"

// EnqueueJob inserts a queued job and returns it. The payload is an
// opaque string, usually JSON, interpreted by the job's handler.
func (s *Store) EnqueueJob(name, payload string) (*models.Job, error) {
	job := &models.Job{
		ID:        uuid.NewString(),
		Name:      name,
		Payload:   payload,
		Status:    models.JobQueued,
		CreatedAt: time.Now().Truncate(time.Second),
	}
	_, err := s.db.Exec(
		`INSERT INTO jobs (id, name, payload, status, created_at) VALUES (?, ?, ?, ?, ?)`,
		job.ID, job.Name, job.Payload, job.Status, job.CreatedAt.Unix(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to enqueue job: %w", err)
	}
	return job, nil
}

// GetJob returns the job with the given ID.
func (s *Store) GetJob(id string) (*models.Job, error) {
	row := s.db.QueryRow(`SELECT `+jobColumns+` FROM jobs WHERE id = ?`, id)
	return scanJob(row)
}

// ClaimJob atomically moves the oldest queued job to running and
// returns it. ErrNoQueuedJobs means the queue is empty.
func (s *Store) ClaimJob() (*models.Job, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin claim: %w", err)
	}
	defer tx.Rollback()

	// rowid breaks created_at ties in insertion order.
	var id string
	err = tx.QueryRow(
		`SELECT id FROM jobs WHERE status = ? ORDER BY created_at, rowid LIMIT 1`,
		models.JobQueued,
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoQueuedJobs
	}
	if err != nil {
		return nil, fmt.Errorf("failed to pick queued job: %w", err)
	}

	_, err = tx.Exec(
		`UPDATE jobs SET status = ?, started_at = ? WHERE id = ?`,
		models.JobRunning, time.Now().Unix(), id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to claim job %s: %w", id, err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit claim: %w", err)
	}
	return s.GetJob(id)
}

// UpdateJobProgress records how far along a running job is.
func (s *Store) UpdateJobProgress(id string, progress, total int) error {
	res, err := s.db.Exec(`UPDATE jobs SET progress = ?, total = ? WHERE id = ?`, progress, total, id)
	if err != nil {
		return fmt.Errorf("failed to update progress for job %s: %w", id, err)
	}
	return requireJobRow(res, id)
}

// CompleteJob marks a job as succeeded with its result.
func (s *Store) CompleteJob(id, result string) error {
	res, err := s.db.Exec(
		`UPDATE jobs SET status = ?, result = ?, finished_at = ? WHERE id = ?`,
		models.JobSucceeded, result, time.Now().Unix(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to complete job %s: %w", id, err)
	}
	return requireJobRow(res, id)
}

// FailJob marks a job as failed with its error message.
func (s *Store) FailJob(id, message string) error {
	res, err := s.db.Exec(
		`UPDATE jobs SET status = ?, error = ?, finished_at = ? WHERE id = ?`,
		models.JobFailed, message, time.Now().Unix(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to fail job %s: %w", id, err)
	}
	return requireJobRow(res, id)
}

// ListJobs returns jobs newest first together with the total count.
func (s *Store) ListJobs(limit, offset int) ([]models.Job, int, error) {
	var total int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM jobs`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count jobs: %w", err)
	}

	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.Query(
		`SELECT `+jobColumns+` FROM jobs ORDER BY created_at DESC, rowid DESC LIMIT ? OFFSET ?`,
		limit, offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []models.Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, 0, err
		}
		jobs = append(jobs, *job)
	}
	return jobs, total, rows.Err()
}

// PruneFinishedJobs deletes succeeded and failed jobs that finished
// before the cutoff and reports how many went away.
func (s *Store) PruneFinishedJobs(cutoff time.Time) (int64, error) {
	res, err := s.db.Exec(
		`DELETE FROM jobs WHERE status IN (?, ?) AND finished_at < ?`,
		models.JobSucceeded, models.JobFailed, cutoff.Unix(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to prune jobs: %w", err)
	}
	return res.RowsAffected()
}

func requireJobRow(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrJobNotFound, id)
	}
	return nil
}

func scanJob(row scanner) (*models.Job, error) {
	var job models.Job
	var created int64
	var started, finished sql.NullInt64
	err := row.Scan(&job.ID, &job.Name, &job.Payload, &job.Status, &job.Progress, &job.Total, &job.Result, &job.Error, &created, &started, &finished)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrJobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan job: %w", err)
	}
	job.CreatedAt = time.Unix(created, 0)
	if started.Valid {
		t := time.Unix(started.Int64, 0)
		job.StartedAt = &t
	}
	if finished.Valid {
		t := time.Unix(finished.Int64, 0)
		job.FinishedAt = &t
	}
	return &job, nil
}
