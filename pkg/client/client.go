// Package client is a thin typed wrapper over the jobs REST API, one
// method per server operation. It performs no retries or caching;
// callers branch on the returned error. The package is self-contained:
// request and response types mirror the server's wire format so
// external modules can use it directly.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// FieldError is one violation reported by a rejected write request.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// APIError is any non-success response from the server. Fields is
// populated for validation failures.
type APIError struct {
	StatusCode int
	Message    string
	Fields     []FieldError
}

func (e *APIError) Error() string {
	if len(e.Fields) > 0 {
		return fmt.Sprintf("api error %d: %s (%d field error(s))", e.StatusCode, e.Message, len(e.Fields))
	}
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

type Salary struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

type Interview struct {
	Type  string    `json:"type"`
	Date  time.Time `json:"date"`
	Notes string    `json:"notes,omitempty"`
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

// Job is one tracked application as the server returns it.
type Job struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Position string `json:"position"`
	Company  string `json:"company"`
	Salary   Salary `json:"salary"`
	Link     string `json:"link"`
	Status   string `json:"status"`

	Type     string `json:"type,omitempty"`
	Priority string `json:"priority,omitempty"`
	Location string `json:"location,omitempty"`
	Source   string `json:"source,omitempty"`

	DateApplied time.Time  `json:"dateApplied"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	FollowUpOn  *time.Time `json:"followUpOn,omitempty"`

	ContactName  string `json:"contactName,omitempty"`
	ContactEmail string `json:"contactEmail,omitempty"`
	NextAction   string `json:"nextAction,omitempty"`
	Notes        string `json:"notes,omitempty"`

	Tags        []string     `json:"tags,omitempty"`
	Interviews  []Interview  `json:"interviews,omitempty"`
	Offer       *Offer       `json:"offer,omitempty"`
	Attachments *Attachments `json:"attachments,omitempty"`
}

// Activity is one entry of a job's audit trail.
type Activity struct {
	ID        uint      `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	JobID     string    `json:"jobId"`
	Kind      string    `json:"kind"`
	Details   string    `json:"details"`
}

type Pagination struct {
	Current int   `json:"current"`
	Pages   int   `json:"pages"`
	Total   int64 `json:"total"`
}

type Stats struct {
	TotalJobs     int64            `json:"totalJobs"`
	RecentJobs    int64            `json:"recentJobs"`
	StatusCounts  map[string]int64 `json:"statusCounts"`
	AverageSalary float64          `json:"averageSalary"`
}

// SalaryRequest carries a salary in a write request. Amount is a
// pointer so zero survives the trip; the server requires it.
type SalaryRequest struct {
	Amount   *float64 `json:"amount"`
	Currency string   `json:"currency"`
}

type InterviewRequest struct {
	Type  string     `json:"type"`
	Date  *time.Time `json:"date"`
	Notes string     `json:"notes,omitempty"`
}

// CreateJobRequest is the payload for CreateJob. Position, Company,
// Salary and Link are required by the server; the rest is optional.
type CreateJobRequest struct {
	Position string         `json:"position"`
	Company  string         `json:"company"`
	Salary   *SalaryRequest `json:"salary"`
	Link     string         `json:"link"`
	Status   string         `json:"status,omitempty"`

	Type     string `json:"type,omitempty"`
	Priority string `json:"priority,omitempty"`
	Location string `json:"location,omitempty"`
	Source   string `json:"source,omitempty"`

	DateApplied *time.Time `json:"dateApplied,omitempty"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	FollowUpOn  *time.Time `json:"followUpOn,omitempty"`

	ContactName  string `json:"contactName,omitempty"`
	ContactEmail string `json:"contactEmail,omitempty"`
	NextAction   string `json:"nextAction,omitempty"`
	Notes        string `json:"notes,omitempty"`

	Tags        []string           `json:"tags,omitempty"`
	Interviews  []InterviewRequest `json:"interviews,omitempty"`
	Offer       *Offer             `json:"offer,omitempty"`
	Attachments *Attachments       `json:"attachments,omitempty"`
}

// UpdateJobRequest is a partial update: nil fields are omitted from
// the payload and left untouched by the server; a present value
// replaces the stored one entirely.
type UpdateJobRequest struct {
	Position *string        `json:"position,omitempty"`
	Company  *string        `json:"company,omitempty"`
	Salary   *SalaryRequest `json:"salary,omitempty"`
	Link     *string        `json:"link,omitempty"`
	Status   *string        `json:"status,omitempty"`

	Type     *string `json:"type,omitempty"`
	Priority *string `json:"priority,omitempty"`
	Location *string `json:"location,omitempty"`
	Source   *string `json:"source,omitempty"`

	DateApplied *time.Time `json:"dateApplied,omitempty"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	FollowUpOn  *time.Time `json:"followUpOn,omitempty"`

	ContactName  *string `json:"contactName,omitempty"`
	ContactEmail *string `json:"contactEmail,omitempty"`
	NextAction   *string `json:"nextAction,omitempty"`
	Notes        *string `json:"notes,omitempty"`

	Tags        *[]string           `json:"tags,omitempty"`
	Interviews  *[]InterviewRequest `json:"interviews,omitempty"`
	Offer       *Offer              `json:"offer,omitempty"`
	Attachments *Attachments        `json:"attachments,omitempty"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// New creates a client for a server reachable at baseURL, e.g.
// "http://localhost:8080".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListJobsParams mirrors the list endpoint's query parameters. Zero
// values are omitted so server defaults apply.
type ListJobsParams struct {
	Page      int
	Limit     int
	Status    string
	Priority  string
	Type      string
	Company   string
	SortBy    string
	SortOrder string
}

type JobPage struct {
	Jobs       []Job
	Pagination Pagination
}

type envelope struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
	Errors     []FieldError    `json:"errors"`
	Pagination *Pagination     `json:"pagination"`
	Timestamp  string          `json:"timestamp"`
}

func (c *Client) ListJobs(ctx context.Context, params ListJobsParams) (*JobPage, error) {
	query := url.Values{}
	if params.Page > 0 {
		query.Set("page", strconv.Itoa(params.Page))
	}
	if params.Limit > 0 {
		query.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.Status != "" {
		query.Set("status", params.Status)
	}
	if params.Priority != "" {
		query.Set("priority", params.Priority)
	}
	if params.Type != "" {
		query.Set("type", params.Type)
	}
	if params.Company != "" {
		query.Set("company", params.Company)
	}
	if params.SortBy != "" {
		query.Set("sortBy", params.SortBy)
	}
	if params.SortOrder != "" {
		query.Set("sortOrder", params.SortOrder)
	}

	path := "/api/jobs"
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}

	env, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	page := &JobPage{}
	if err := json.Unmarshal(env.Data, &page.Jobs); err != nil {
		return nil, fmt.Errorf("decode jobs: %w", err)
	}
	if env.Pagination != nil {
		page.Pagination = *env.Pagination
	}
	return page, nil
}

func (c *Client) GetJob(ctx context.Context, id string) (*Job, error) {
	env, err := c.do(ctx, http.MethodGet, "/api/jobs/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	return decodeJob(env)
}

func (c *Client) CreateJob(ctx context.Context, req *CreateJobRequest) (*Job, error) {
	env, err := c.do(ctx, http.MethodPost, "/api/jobs", req)
	if err != nil {
		return nil, err
	}
	return decodeJob(env)
}

func (c *Client) UpdateJob(ctx context.Context, id string, req *UpdateJobRequest) (*Job, error) {
	env, err := c.do(ctx, http.MethodPut, "/api/jobs/"+url.PathEscape(id), req)
	if err != nil {
		return nil, err
	}
	return decodeJob(env)
}

func (c *Client) DeleteJob(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/jobs/"+url.PathEscape(id), nil)
	return err
}

func (c *Client) GetStats(ctx context.Context) (*Stats, error) {
	env, err := c.do(ctx, http.MethodGet, "/api/jobs/stats/summary", nil)
	if err != nil {
		return nil, err
	}

	var stats Stats
	if err := json.Unmarshal(env.Data, &stats); err != nil {
		return nil, fmt.Errorf("decode stats: %w", err)
	}
	return &stats, nil
}

func (c *Client) GetActivity(ctx context.Context, id string) ([]Activity, error) {
	env, err := c.do(ctx, http.MethodGet, "/api/jobs/"+url.PathEscape(id)+"/activity", nil)
	if err != nil {
		return nil, err
	}

	var activities []Activity
	if err := json.Unmarshal(env.Data, &activities); err != nil {
		return nil, fmt.Errorf("decode activities: %w", err)
	}
	return activities, nil
}

func (c *Client) Health(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodGet, "/api/health", nil)
	return err
}

func (c *Client) do(ctx context.Context, method, path string, body any) (*envelope, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	var env envelope
	if err := json.NewDecoder(res.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if !env.Success {
		return nil, &APIError{
			StatusCode: res.StatusCode,
			Message:    env.Message,
			Fields:     env.Errors,
		}
	}
	return &env, nil
}

func decodeJob(env *envelope) (*Job, error) {
	var job Job
	if err := json.Unmarshal(env.Data, &job); err != nil {
		return nil, fmt.Errorf("decode job: %w", err)
	}
	return &job, nil
}
