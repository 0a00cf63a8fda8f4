package models

import "time"

const (
	ActivityCreated       = "created"
	ActivityStatusChanged = "status_changed"
	ActivityDeleted       = "deleted"
)

// JobActivity is one entry of a job's audit trail. Entries survive the
// job itself so the trail of a deleted application stays readable.
type JobActivity struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	JobID     string    `gorm:"index;size:36" json:"jobId"`
	Kind      string    `gorm:"size:20" json:"kind"`
	Details   string    `gorm:"type:text" json:"details"`
}
