package worker

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bookbazaar/bookbazaar/config"
	"github.com/bookbazaar/bookbazaar/log"
	"github.com/bookbazaar/bookbazaar/model"
	"github.com/bookbazaar/bookbazaar/store"
	_ "modernc.org/sqlite"
)

func init() {
	config.Opts = config.GetDefaultOptions()
	log.Logger = log.NewLogger()
}

func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	dir, err := os.MkdirTemp("", "bookbazaar-worker-test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })

	db, err := sql.Open("sqlite", filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	schema, err := os.ReadFile(filepath.Join("..", "store", "db", "migration", "LATEST_SCHEMA.sql"))
	if err != nil {
		t.Fatalf("Failed to read schema: %v", err)
	}
	if _, err := db.Exec(string(schema)); err != nil {
		t.Fatalf("Failed to apply schema: %v", err)
	}

	return store.NewStore(db)
}

// capturePool records pushed jobs instead of converting anything.
type capturePool struct {
	jobs chan model.Job
}

func (p *capturePool) Push(job model.Job) {
	p.jobs <- job
}

func (p *capturePool) GetQueue() chan model.Job {
	return p.jobs
}

func TestResumeCoverJobs(t *testing.T) {
	s := newTestStore(t)

	pending, err := s.AddJob(model.Job{BookUID: "b1", Type: model.JobTypeCover, Status: model.JobStatusPending})
	if err != nil {
		t.Fatalf("Failed to add job: %v", err)
	}
	interrupted, err := s.AddJob(model.Job{BookUID: "b2", Type: model.JobTypeCover, Status: model.JobStatusPending})
	if err != nil {
		t.Fatalf("Failed to add job: %v", err)
	}
	if err := s.SetJobStatus(interrupted.ID, model.JobStatusRunning); err != nil {
		t.Fatalf("Failed to mark job running: %v", err)
	}
	finished, err := s.AddJob(model.Job{BookUID: "b3", Type: model.JobTypeCover, Status: model.JobStatusPending})
	if err != nil {
		t.Fatalf("Failed to add job: %v", err)
	}
	if err := s.SetJobStatus(finished.ID, model.JobStatusDone); err != nil {
		t.Fatalf("Failed to mark job done: %v", err)
	}

	pool := &capturePool{jobs: make(chan model.Job)}
	if err := ResumeCoverJobs(s, pool); err != nil {
		t.Fatalf("Failed to resume jobs: %v", err)
	}

	resumed := map[int]bool{}
	for i := 0; i < 2; i++ {
		select {
		case job := <-pool.jobs:
			resumed[job.ID] = true
		case <-time.After(5 * time.Second):
			t.Fatalf("Expected 2 resumed jobs, got %d", len(resumed))
		}
	}

	if !resumed[pending.ID] {
		t.Error("Expected the pending job to be re-enqueued")
	}
	if !resumed[interrupted.ID] {
		t.Error("Expected the interrupted job to be re-enqueued")
	}
	if resumed[finished.ID] {
		t.Error("Expected the finished job to stay out of the queue")
	}

	select {
	case job := <-pool.jobs:
		t.Errorf("Expected no more jobs, got %d", job.ID)
	case <-time.After(100 * time.Millisecond):
	}
}
