package tasks

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dunamismax/go-cli/models"
	"github.com/dunamismax/go-cli/store"
)

func setupDispatcher(t *testing.T) (*store.Store, *Dispatcher, func()) {
	t.Helper()

	dir, err := os.MkdirTemp("", "tasks_test_*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	s, err := store.Open(filepath.Join(dir, "test.db"))
	if err != nil {
		os.RemoveAll(dir)
		t.Fatalf("failed to open store: %v", err)
	}

	d := NewDispatcher(s, 2, 10*time.Millisecond)
	return s, d, func() {
		s.Close()
		os.RemoveAll(dir)
	}
}

// runDispatcher runs d until stop is called, then waits for it to
// wind down.
func runDispatcher(d *Dispatcher) (stop func()) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		d.Run(ctx)
		close(done)
	}()
	return func() {
		cancel()
		<-done
	}
}

// waitForJob polls until the job reaches a terminal status.
func waitForJob(t *testing.T, s *store.Store, id string, timeout time.Duration) *models.Job {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		job, err := s.GetJob(id)
		if err != nil {
			t.Fatalf("GetJob failed: %v", err)
		}
		if job.Finished() {
			return job
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("job %s did not finish within %s", id, timeout)
	return nil
}

func TestDispatcherRunsSampleJob(t *testing.T) {
	s, d, cleanup := setupDispatcher(t)
	defer cleanup()
	RegisterBuiltins(d, s, Options{StepDelay: time.Millisecond})

	job, err := s.EnqueueJob(JobSample, `{"name":"alice"}`)
	if err != nil {
		t.Fatalf("EnqueueJob failed: %v", err)
	}

	stop := runDispatcher(d)
	defer stop()

	done := waitForJob(t, s, job.ID, 5*time.Second)
	if done.Status != models.JobSucceeded {
		t.Fatalf("status = %s, error = %q", done.Status, done.Error)
	}
	if done.Progress != 10 || done.Total != 10 {
		t.Errorf("progress = %d/%d, want 10/10", done.Progress, done.Total)
	}
	if !strings.Contains(done.Result, "alice") {
		t.Errorf("result %q does not mention the name", done.Result)
	}
	if done.StartedAt == nil || done.FinishedAt == nil {
		t.Error("start or finish time missing")
	}
}

func TestDispatcherUnknownJobFails(t *testing.T) {
	s, d, cleanup := setupDispatcher(t)
	defer cleanup()

	job, _ := s.EnqueueJob("mystery", "")

	stop := runDispatcher(d)
	defer stop()

	done := waitForJob(t, s, job.ID, 5*time.Second)
	if done.Status != models.JobFailed {
		t.Fatalf("status = %s, want failed", done.Status)
	}
	if !strings.Contains(done.Error, "no handler") {
		t.Errorf("error = %q", done.Error)
	}
}

func TestDispatcherHandlerErrorFails(t *testing.T) {
	s, d, cleanup := setupDispatcher(t)
	defer cleanup()

	d.Register("boom", func(context.Context, *models.Job, func(int, int)) (string, error) {
		return "", errors.New("handler exploded")
	})
	job, _ := s.EnqueueJob("boom", "")

	stop := runDispatcher(d)
	defer stop()

	done := waitForJob(t, s, job.ID, 5*time.Second)
	if done.Status != models.JobFailed || done.Error != "handler exploded" {
		t.Errorf("job = %+v", done)
	}
}

func TestSendEmailHandler(t *testing.T) {
	s, d, cleanup := setupDispatcher(t)
	defer cleanup()
	RegisterBuiltins(d, s, Options{StepDelay: time.Millisecond})

	job, _ := s.EnqueueJob(JobSendEmail, `{"to":"bob@example.com","subject":"hi"}`)
	noRecipient, _ := s.EnqueueJob(JobSendEmail, `{"subject":"lost"}`)

	stop := runDispatcher(d)
	defer stop()

	done := waitForJob(t, s, job.ID, 5*time.Second)
	if done.Status != models.JobSucceeded || !strings.Contains(done.Result, `"sent"`) {
		t.Errorf("email job = %+v", done)
	}

	failed := waitForJob(t, s, noRecipient.ID, 5*time.Second)
	if failed.Status != models.JobFailed || !strings.Contains(failed.Error, "recipient") {
		t.Errorf("recipientless job = %+v", failed)
	}
}

func TestLongRunningHandler(t *testing.T) {
	s, d, cleanup := setupDispatcher(t)
	defer cleanup()
	RegisterBuiltins(d, s, Options{StepDelay: time.Millisecond})

	job, _ := s.EnqueueJob(JobLongRunning, `{"duration":3}`)

	stop := runDispatcher(d)
	defer stop()

	done := waitForJob(t, s, job.ID, 5*time.Second)
	if done.Status != models.JobSucceeded {
		t.Fatalf("status = %s, error = %q", done.Status, done.Error)
	}
	if done.Progress != 3 || done.Total != 3 {
		t.Errorf("progress = %d/%d, want 3/3", done.Progress, done.Total)
	}
}

func TestCleanupHandler(t *testing.T) {
	s, d, cleanup := setupDispatcher(t)
	defer cleanup()
	// A negative retention makes everything finished count as old.
	RegisterBuiltins(d, s, Options{StepDelay: time.Millisecond, Retain: -time.Hour})

	old, _ := s.EnqueueJob(JobSample, "")
	if _, err := s.ClaimJob(); err != nil {
		t.Fatalf("ClaimJob failed: %v", err)
	}
	if err := s.CompleteJob(old.ID, "done"); err != nil {
		t.Fatalf("CompleteJob failed: %v", err)
	}

	user := &models.User{Username: "alice", Email: "alice@example.com", PasswordHash: "x", IsActive: true}
	if err := s.CreateUser(user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	expired, err := s.CreateSession(user.ID, -time.Minute)
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	job, _ := s.EnqueueJob(JobCleanup, "")

	stop := runDispatcher(d)
	defer stop()

	done := waitForJob(t, s, job.ID, 5*time.Second)
	if done.Status != models.JobSucceeded {
		t.Fatalf("status = %s, error = %q", done.Status, done.Error)
	}
	if !strings.Contains(done.Result, `"cleaned_jobs":1`) || !strings.Contains(done.Result, `"cleaned_sessions":1`) {
		t.Errorf("result = %q", done.Result)
	}

	if _, err := s.GetJob(old.ID); !errors.Is(err, store.ErrJobNotFound) {
		t.Error("old finished job survived cleanup")
	}
	if _, err := s.GetSession(expired.Token); !errors.Is(err, store.ErrSessionNotFound) {
		t.Error("expired session survived cleanup")
	}
}
