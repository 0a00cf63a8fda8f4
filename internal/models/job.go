package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

type Status string

const (
	StatusApplied      Status = "applied"
	StatusInterviewing Status = "interviewing"
	StatusOffered      Status = "offered"
	StatusRejected     Status = "rejected"
	StatusWithdrawn    Status = "withdrawn"
	StatusAccepted     Status = "accepted"
)

var Statuses = []Status{
	StatusApplied, StatusInterviewing, StatusOffered,
	StatusRejected, StatusWithdrawn, StatusAccepted,
}

func (s Status) Valid() bool {
	return lo.Contains(Statuses, s)
}

// IsTerminal reports whether the application needs no further action
// from the candidate.
func (s Status) IsTerminal() bool {
	return s == StatusRejected || s == StatusWithdrawn || s == StatusAccepted
}

type JobType string

const (
	TypeFullTime JobType = "full_time"
	TypePartTime JobType = "part_time"
	TypeContract JobType = "contract"
	TypeIntern   JobType = "intern"
	TypeOther    JobType = "other"
)

var JobTypes = []JobType{TypeFullTime, TypePartTime, TypeContract, TypeIntern, TypeOther}

func (t JobType) Valid() bool {
	return lo.Contains(JobTypes, t)
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

func (p Priority) Valid() bool {
	return lo.Contains(Priorities, p)
}

type InterviewType string

const (
	InterviewPhone  InterviewType = "phone"
	InterviewTech   InterviewType = "tech"
	InterviewOnsite InterviewType = "onsite"
	InterviewHR     InterviewType = "hr"
	InterviewOther  InterviewType = "other"
)

var InterviewTypes = []InterviewType{
	InterviewPhone, InterviewTech, InterviewOnsite, InterviewHR, InterviewOther,
}

func (t InterviewType) Valid() bool {
	return lo.Contains(InterviewTypes, t)
}

// Salary is stored in dedicated columns so aggregates can run on
// salary_amount directly.
type Salary struct {
	Amount   float64 `gorm:"column:salary_amount" json:"amount"`
	Currency string  `gorm:"column:salary_currency;size:3" json:"currency"`
}

type Interview struct {
	Type  InterviewType `json:"type"`
	Date  time.Time     `json:"date"`
	Notes string        `json:"notes,omitempty"`
}

type Offer struct {
	Base      string     `json:"base,omitempty"`
	Currency  string     `json:"currency,omitempty"`
	Bonus     string     `json:"bonus,omitempty"`
	Equity    string     `json:"equity,omitempty"`
	Benefits  string     `json:"benefits,omitempty"`
	StartDate *time.Time `json:"startDate,omitempty"`
}

type Attachments struct {
	ResumeURL      string `json:"resumeUrl,omitempty"`
	CoverLetterURL string `json:"coverLetterUrl,omitempty"`
}

// Job is one tracked application. Deletes are hard deletes; no
// history is kept beyond the activity trail.
type Job struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Position string `gorm:"not null" json:"position"`
	Company  string `gorm:"not null;index" json:"company"`
	Salary   Salary `gorm:"embedded" json:"salary"`
	Link     string `gorm:"not null" json:"link"`
	Status   Status `gorm:"index;size:20" json:"status"`

	Type     JobType  `gorm:"size:20" json:"type,omitempty"`
	Priority Priority `gorm:"size:10" json:"priority,omitempty"`
	Location string   `json:"location,omitempty"`
	Source   string   `json:"source,omitempty"`

	DateApplied time.Time  `gorm:"index" json:"dateApplied"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	FollowUpOn  *time.Time `json:"followUpOn,omitempty"`

	ContactName  string `json:"contactName,omitempty"`
	ContactEmail string `json:"contactEmail,omitempty"`
	NextAction   string `json:"nextAction,omitempty"`
	Notes        string `gorm:"type:text" json:"notes,omitempty"`

	Tags        []string     `gorm:"serializer:json" json:"tags,omitempty"`
	Interviews  []Interview  `gorm:"serializer:json" json:"interviews,omitempty"`
	Offer       *Offer       `gorm:"serializer:json" json:"offer,omitempty"`
	Attachments *Attachments `gorm:"serializer:json" json:"attachments,omitempty"`
}

func (j *Job) BeforeCreate(tx *gorm.DB) error {
	if j.ID == "" {
		j.ID = uuid.NewString()
	}
	if j.Status == "" {
		j.Status = StatusApplied
	}
	if j.Priority == "" {
		j.Priority = PriorityMedium
	}
	if j.DateApplied.IsZero() {
		j.DateApplied = time.Now().UTC()
	}
	return nil
}
