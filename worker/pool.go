package worker // import "github.com/bookbazaar/bookbazaar/worker"

import (
	"github.com/bookbazaar/bookbazaar/model"
)

// WorkPool is implemented by background pools that accept jobs.
type WorkPool interface {
	Push(job model.Job)
	GetQueue() chan model.Job
}
