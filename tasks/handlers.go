package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dunamismax/go-cli/models"
	"github.com/dunamismax/go-cli/store"
)

// Job names understood by the built-in handlers.
const (
	JobSample      = "sample"
	JobSendEmail   = "send_email"
	JobLongRunning = "long_running"
	JobCleanup     = "cleanup_old_data"
)

// Options tunes the built-in handlers. The zero value selects
// production pacing: one second per simulated work step and a seven
// day retention window for finished jobs.
type Options struct {
	StepDelay time.Duration
	Retain    time.Duration
}

func (o Options) withDefaults() Options {
	if o.StepDelay == 0 {
		o.StepDelay = time.Second
	}
	if o.Retain == 0 {
		o.Retain = 7 * 24 * time.Hour
	}
	return o
}

// RegisterBuiltins wires the standard job handlers into a dispatcher.
func RegisterBuiltins(d *Dispatcher, s *store.Store, opts Options) {
	opts = opts.withDefaults()
	d.Register(JobSample, sampleHandler(opts))
	d.Register(JobSendEmail, sendEmailHandler(opts))
	d.Register(JobLongRunning, longRunningHandler(opts))
	d.Register(JobCleanup, cleanupHandler(s, opts))
}

// sampleHandler works through ten fixed steps, reporting progress
// after each one.
func sampleHandler(opts Options) Handler {
	return func(ctx context.Context, job *models.Job, progress func(int, int)) (string, error) {
		var payload struct {
			Name string `json:"name"`
		}
		if err := parsePayload(job.Payload, &payload); err != nil {
			return "", err
		}

		const steps = 10
		for i := 0; i < steps; i++ {
			if err := sleep(ctx, opts.StepDelay); err != nil {
				return "", err
			}
			progress(i+1, steps)
		}

		return marshalResult(map[string]any{
			"name":    payload.Name,
			"status":  "completed",
			"message": fmt.Sprintf("Task for %s completed successfully", payload.Name),
		})
	}
}

// sendEmailHandler pretends to send an email. There is no SMTP
// delivery behind it, only the delay and the receipt.
func sendEmailHandler(opts Options) Handler {
	return func(ctx context.Context, job *models.Job, _ func(int, int)) (string, error) {
		var payload struct {
			To      string `json:"to"`
			Subject string `json:"subject"`
			Body    string `json:"body"`
		}
		if err := parsePayload(job.Payload, &payload); err != nil {
			return "", err
		}
		if payload.To == "" {
			return "", fmt.Errorf("send_email payload has no recipient")
		}

		if err := sleep(ctx, 2*opts.StepDelay); err != nil {
			return "", err
		}

		return marshalResult(map[string]any{
			"to":      payload.To,
			"subject": payload.Subject,
			"status":  "sent",
			"message": "Email sent successfully",
		})
	}
}

// longRunningHandler burns one step per requested second, reporting
// progress as it goes.
func longRunningHandler(opts Options) Handler {
	return func(ctx context.Context, job *models.Job, progress func(int, int)) (string, error) {
		payload := struct {
			Duration int `json:"duration"`
		}{Duration: 60}
		if err := parsePayload(job.Payload, &payload); err != nil {
			return "", err
		}
		if payload.Duration <= 0 {
			return "", fmt.Errorf("long_running duration must be positive, got %d", payload.Duration)
		}

		for i := 0; i < payload.Duration; i++ {
			if err := sleep(ctx, opts.StepDelay); err != nil {
				return "", err
			}
			progress(i+1, payload.Duration)
		}

		return marshalResult(map[string]any{
			"duration": payload.Duration,
			"status":   "completed",
			"message":  fmt.Sprintf("Long running task completed after %d seconds", payload.Duration),
		})
	}
}

// cleanupHandler prunes finished jobs past the retention window and
// expired sessions.
func cleanupHandler(s *store.Store, opts Options) Handler {
	return func(ctx context.Context, job *models.Job, _ func(int, int)) (string, error) {
		cutoff := time.Now().Add(-opts.Retain)

		jobs, err := s.PruneFinishedJobs(cutoff)
		if err != nil {
			return "", err
		}
		sessions, err := s.PruneExpiredSessions()
		if err != nil {
			return "", err
		}

		return marshalResult(map[string]any{
			"status":           "completed",
			"cleaned_jobs":     jobs,
			"cleaned_sessions": sessions,
			"message":          "Old data cleaned up successfully",
		})
	}
}

// parsePayload decodes a job payload. An empty payload leaves the
// destination's defaults in place.
func parsePayload(payload string, dst any) error {
	if payload == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(payload), dst); err != nil {
		return fmt.Errorf("bad payload: %w", err)
	}
	return nil
}

func marshalResult(result map[string]any) (string, error) {
	data, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("failed to encode result: %w", err)
	}
	return string(data), nil
}

// sleep waits for d unless ctx ends first.
func sleep(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
