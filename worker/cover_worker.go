package worker // import "github.com/bookbazaar/bookbazaar/worker"

import (
	"github.com/bookbazaar/bookbazaar/config"
	"github.com/bookbazaar/bookbazaar/log"
	"github.com/bookbazaar/bookbazaar/model"
	"github.com/bookbazaar/bookbazaar/store"
	"github.com/bookbazaar/bookbazaar/util"
	"go.uber.org/zap"
)

// CoverPool converts uploaded cover images to webp in the background.
// Uploads stay responsive; until a job runs, the original blob is served.
type CoverPool struct {
	queue chan model.Job
}

func NewCoverPool(store *store.Store, size int) *CoverPool {
	pool := &CoverPool{
		queue: make(chan model.Job),
	}

	for i := 0; i < size; i++ {
		worker := &CoverWorker{id: i, store: store}
		go worker.Run(pool.queue)
	}

	return pool
}

func (p *CoverPool) GetQueue() chan model.Job {
	return p.queue
}

// Implement WorkPool interface
func (p *CoverPool) Push(job model.Job) {
	p.queue <- job
}

// ResumeCoverJobs re-enqueues jobs a previous run left unfinished. Jobs
// marked running were interrupted mid-conversion and start over.
func ResumeCoverJobs(s *store.Store, pool WorkPool) error {
	for _, status := range []string{model.JobStatusPending, model.JobStatusRunning} {
		jobs, err := s.ListJobs(status)
		if err != nil {
			return err
		}
		for _, job := range jobs {
			log.Debug("Resuming cover job",
				zap.Int("job_id", job.ID),
				zap.String("book_uid", job.BookUID),
				zap.String("status", job.Status))
			go pool.Push(*job)
		}
	}
	return nil
}

type CoverWorker struct {
	id    int
	store *store.Store
}

func (w *CoverWorker) Run(c <-chan model.Job) {
	log.Debug("CoverWorker is running", zap.Int("worker_id", w.id))

	for {
		job := <-c

		log.Debug("Job received by worker",
			zap.Int("worker_id", w.id),
			zap.String("book_uid", job.BookUID))

		if err := w.store.SetJobStatus(job.ID, model.JobStatusRunning); err != nil {
			log.Error("Failed to mark job running", zap.Error(err))
		}

		cover, coverType, err := w.store.GetCover(job.BookUID)
		if err != nil || cover == nil {
			log.Error("Failed to load cover for conversion",
				zap.String("book_uid", job.BookUID),
				zap.Error(err))
			w.finish(job, model.JobStatusFailed)
			continue
		}
		if coverType == "image/webp" {
			// Already converted, nothing to do.
			w.finish(job, model.JobStatusDone)
			continue
		}

		quality := float32(config.Opts.CoverQuality)
		converted, err := util.ImageToWebp(cover, quality)
		if err != nil {
			log.Warn("Failed to convert cover, keeping original",
				zap.String("book_uid", job.BookUID),
				zap.Error(err))
			w.finish(job, model.JobStatusFailed)
			continue
		}

		if err := w.store.SetCover(job.BookUID, converted, "image/webp"); err != nil {
			log.Error("Failed to store converted cover",
				zap.String("book_uid", job.BookUID),
				zap.Error(err))
			w.finish(job, model.JobStatusFailed)
			continue
		}

		log.Debug("Cover converted",
			zap.String("book_uid", job.BookUID),
			zap.Int("original_bytes", len(cover)),
			zap.Int("webp_bytes", len(converted)))
		w.finish(job, model.JobStatusDone)
	}
}

func (w *CoverWorker) finish(job model.Job, status string) {
	if err := w.store.SetJobStatus(job.ID, status); err != nil {
		log.Error("Failed to update job status", zap.Int("job_id", job.ID), zap.Error(err))
	}
}
