package events

import "github.com/jobtrackr/jobtrackr/internal/models"

const (
	JobCreatedTopic       = "job:created"
	JobStatusChangedTopic = "job:status_changed"
	JobDeletedTopic       = "job:deleted"
)

type JobCreated struct {
	JobID    string
	Position string
	Company  string
}

type JobStatusChanged struct {
	JobID string
	From  models.Status
	To    models.Status
}

type JobDeleted struct {
	JobID    string
	Position string
	Company  string
}
