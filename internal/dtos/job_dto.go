package dtos

import "time"

type SalaryPayload struct {
	Amount   *float64 `json:"amount" validate:"required,gte=0"`
	Currency string   `json:"currency" validate:"required,len=3"`
}

type InterviewPayload struct {
	Type  string     `json:"type" validate:"required,oneof=phone tech onsite hr other"`
	Date  *time.Time `json:"date" validate:"required"`
	Notes string     `json:"notes"`
}

type OfferPayload struct {
	Base      string     `json:"base" validate:"max=50"`
	Currency  string     `json:"currency" validate:"omitempty,len=3"`
	Bonus     string     `json:"bonus" validate:"max=50"`
	Equity    string     `json:"equity" validate:"max=50"`
	Benefits  string     `json:"benefits" validate:"max=200"`
	StartDate *time.Time `json:"startDate"`
}

type AttachmentsPayload struct {
	ResumeURL      string `json:"resumeUrl" validate:"omitempty,http_url"`
	CoverLetterURL string `json:"coverLetterUrl" validate:"omitempty,http_url"`
}

type CreateJobRequest struct {
	Position string         `json:"position" validate:"required,min=1,max=100"`
	Company  string         `json:"company" validate:"required,min=1,max=100"`
	Salary   *SalaryPayload `json:"salary" validate:"required"`
	Link     string         `json:"link" validate:"required,http_url"`
	Status   string         `json:"status" validate:"omitempty,oneof=applied interviewing offered rejected withdrawn accepted"`

	Type     string `json:"type" validate:"omitempty,oneof=full_time part_time contract intern other"`
	Priority string `json:"priority" validate:"omitempty,oneof=low medium high"`
	Location string `json:"location" validate:"max=100"`
	Source   string `json:"source" validate:"max=100"`

	DateApplied *time.Time `json:"dateApplied"`
	Deadline    *time.Time `json:"deadline"`
	FollowUpOn  *time.Time `json:"followUpOn"`

	ContactName  string `json:"contactName" validate:"max=100"`
	ContactEmail string `json:"contactEmail" validate:"omitempty,email"`
	NextAction   string `json:"nextAction" validate:"max=200"`
	Notes        string `json:"notes" validate:"max=1000"`

	Tags        []string            `json:"tags" validate:"omitempty,dive,max=50"`
	Interviews  []InterviewPayload  `json:"interviews" validate:"omitempty,dive"`
	Offer       *OfferPayload       `json:"offer"`
	Attachments *AttachmentsPayload `json:"attachments"`
}

// UpdateJobRequest carries a partial update: nil means "leave alone",
// a present value replaces the stored one entirely. Group fields
// (salary, tags, interviews, offer, attachments) are replaced as a
// whole, never merged element-wise.
type UpdateJobRequest struct {
	Position *string        `json:"position" validate:"omitnil,min=1,max=100"`
	Company  *string        `json:"company" validate:"omitnil,min=1,max=100"`
	Salary   *SalaryPayload `json:"salary"`
	Link     *string        `json:"link" validate:"omitnil,http_url"`
	Status   *string        `json:"status" validate:"omitnil,oneof=applied interviewing offered rejected withdrawn accepted"`

	Type     *string `json:"type" validate:"omitnil,oneof=full_time part_time contract intern other"`
	Priority *string `json:"priority" validate:"omitnil,oneof=low medium high"`
	Location *string `json:"location" validate:"omitnil,max=100"`
	Source   *string `json:"source" validate:"omitnil,max=100"`

	DateApplied *time.Time `json:"dateApplied"`
	Deadline    *time.Time `json:"deadline"`
	FollowUpOn  *time.Time `json:"followUpOn"`

	ContactName  *string `json:"contactName" validate:"omitnil,max=100"`
	ContactEmail *string `json:"contactEmail" validate:"omitnil,omitempty,email"`
	NextAction   *string `json:"nextAction" validate:"omitnil,max=200"`
	Notes        *string `json:"notes" validate:"omitnil,max=1000"`

	Tags        *[]string           `json:"tags" validate:"omitnil,dive,max=50"`
	Interviews  *[]InterviewPayload `json:"interviews" validate:"omitnil,dive"`
	Offer       *OfferPayload       `json:"offer"`
	Attachments *AttachmentsPayload `json:"attachments"`
}

// ListJobsQuery is bound from GET /api/jobs query parameters.
type ListJobsQuery struct {
	Page      int    `form:"page,default=1"`
	Limit     int    `form:"limit,default=10"`
	Status    string `form:"status"`
	Priority  string `form:"priority"`
	Type      string `form:"type"`
	Company   string `form:"company"`
	SortBy    string `form:"sortBy,default=dateApplied"`
	SortOrder string `form:"sortOrder,default=desc"`
}
