package model //import "github.com/bookbazaar/bookbazaar/model"

const (
	JobStatusPending = "pending"
	JobStatusRunning = "running"
	JobStatusDone    = "done"
	JobStatusFailed  = "failed"
)

const (
	JobTypeCover = "COVER"
)

// Job is a unit of background work, currently only cover conversion.
type Job struct {
	ID      int
	BookUID string
	Type    string
	Status  string
}
