package models

import "time"

type JobStatus string

const (
	JobQueued    JobStatus = "queued"
	JobRunning   JobStatus = "running"
	JobSucceeded JobStatus = "succeeded"
	JobFailed    JobStatus = "failed"
)

// Job is one unit of background work. Progress and Total are advisory
// counters a handler may update while it runs; Result and Error are
// filled in when the job reaches a terminal status.
type Job struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Payload    string     `json:"payload,omitempty"`
	Status     JobStatus  `json:"status"`
	Progress   int        `json:"progress"`
	Total      int        `json:"total"`
	Result     string     `json:"result,omitempty"`
	Error      string     `json:"error,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	StartedAt  *time.Time `json:"started_at,omitempty"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}

func (j *Job) Finished() bool {
	return j.Status == JobSucceeded || j.Status == JobFailed
}
