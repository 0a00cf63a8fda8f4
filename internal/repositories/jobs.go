package repositories

import (
	"context"
	"database/sql"
	"math"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"gorm.io/gorm"

	"github.com/jobtrackr/jobtrackr/internal/models"
)

// ErrJobNotFound is returned for a well-formed id that matches no
// stored job. Handlers map it to 404.
var ErrJobNotFound = errors.New("job not found")

// ListOptions describes one page of the jobs collection. Filters are
// equality matches except Company, which is a case-insensitive
// substring match.
type ListOptions struct {
	Page      int
	Limit     int
	Status    string
	Priority  string
	Type      string
	Company   string
	SortBy    string
	SortOrder string
}

type Pagination struct {
	Current int   `json:"current"`
	Pages   int   `json:"pages"`
	Total   int64 `json:"total"`
}

type Stats struct {
	TotalJobs     int64                   `json:"totalJobs"`
	RecentJobs    int64                   `json:"recentJobs"`
	StatusCounts  map[models.Status]int64 `json:"statusCounts"`
	AverageSalary float64                 `json:"averageSalary"`
}

// sortColumns whitelists the JSON sort keys the list endpoint accepts
// and maps them to their columns.
var sortColumns = map[string]string{
	"dateApplied": "date_applied",
	"company":     "company",
	"position":    "position",
	"status":      "status",
	"priority":    "priority",
	"salary":      "salary_amount",
	"createdAt":   "created_at",
}

// SortableBy reports whether key is an accepted sortBy value.
func SortableBy(key string) bool {
	_, ok := sortColumns[key]
	return ok
}

type Jobs struct {
	db *gorm.DB
}

func NewJobsRepository(db *gorm.DB) *Jobs {
	return &Jobs{db: db}
}

func (r *Jobs) Create(ctx context.Context, job *models.Job) error {
	if err := r.db.WithContext(ctx).Create(job).Error; err != nil {
		return errors.Wrap(err, "create job")
	}
	return nil
}

func (r *Jobs) GetByID(ctx context.Context, id string) (*models.Job, error) {
	var job models.Job
	err := r.db.WithContext(ctx).First(&job, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, errors.Wrap(err, "get job")
	}
	return &job, nil
}

// Save persists every field of an already-loaded job. Partial-update
// merging happens in the service layer; last write wins.
func (r *Jobs) Save(ctx context.Context, job *models.Job) error {
	if err := r.db.WithContext(ctx).Save(job).Error; err != nil {
		return errors.Wrap(err, "save job")
	}
	return nil
}

func (r *Jobs) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Job{}, "id = ?", id)
	if res.Error != nil {
		return errors.Wrap(res.Error, "delete job")
	}
	if res.RowsAffected == 0 {
		return ErrJobNotFound
	}
	return nil
}

// List returns one page of jobs plus pagination metadata computed
// over the filtered total. A filter matching nothing yields an empty
// page, not an error.
func (r *Jobs) List(ctx context.Context, opts ListOptions) ([]models.Job, Pagination, error) {
	query := r.filtered(ctx, opts)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, Pagination{}, errors.Wrap(err, "count jobs")
	}

	column, ok := sortColumns[opts.SortBy]
	if !ok {
		column = "date_applied"
	}
	direction := "ASC"
	if opts.SortOrder == "desc" {
		direction = "DESC"
	}

	jobs := []models.Job{}
	err := query.
		Order(column + " " + direction).
		Limit(opts.Limit).
		Offset((opts.Page - 1) * opts.Limit).
		Find(&jobs).Error
	if err != nil {
		return nil, Pagination{}, errors.Wrap(err, "list jobs")
	}

	pagination := Pagination{
		Current: opts.Page,
		Pages:   int(math.Ceil(float64(total) / float64(opts.Limit))),
		Total:   total,
	}
	return jobs, pagination, nil
}

func (r *Jobs) filtered(ctx context.Context, opts ListOptions) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&models.Job{})
	if opts.Status != "" {
		query = query.Where("status = ?", opts.Status)
	}
	if opts.Priority != "" {
		query = query.Where("priority = ?", opts.Priority)
	}
	if opts.Type != "" {
		query = query.Where("type = ?", opts.Type)
	}
	if opts.Company != "" {
		query = query.Where("LOWER(company) LIKE ?", "%"+strings.ToLower(opts.Company)+"%")
	}
	return query
}

// Stats aggregates over the full collection, independent of any list
// filter or page.
func (r *Jobs) Stats(ctx context.Context) (*Stats, error) {
	db := r.db.WithContext(ctx).Model(&models.Job{})

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, errors.Wrap(err, "count jobs")
	}

	cutoff := time.Now().AddDate(0, 0, -30)
	var recent int64
	err := r.db.WithContext(ctx).Model(&models.Job{}).
		Where("date_applied >= ?", cutoff).
		Count(&recent).Error
	if err != nil {
		return nil, errors.Wrap(err, "count recent jobs")
	}

	type statusCount struct {
		Status models.Status
		Count  int64
	}
	var rows []statusCount
	err = r.db.WithContext(ctx).Model(&models.Job{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "count jobs by status")
	}

	var avg sql.NullFloat64
	err = r.db.WithContext(ctx).Model(&models.Job{}).
		Select("AVG(salary_amount)").
		Row().Scan(&avg)
	if err != nil {
		return nil, errors.Wrap(err, "average salary")
	}

	return &Stats{
		TotalJobs:  total,
		RecentJobs: recent,
		StatusCounts: lo.Associate(rows, func(row statusCount) (models.Status, int64) {
			return row.Status, row.Count
		}),
		AverageSalary: avg.Float64,
	}, nil
}

// DueFollowUps returns non-terminal jobs whose follow-up date has
// arrived, for the daily reminder sweep.
func (r *Jobs) DueFollowUps(ctx context.Context, now time.Time) ([]models.Job, error) {
	terminal := []models.Status{
		models.StatusRejected, models.StatusWithdrawn, models.StatusAccepted,
	}

	var jobs []models.Job
	err := r.db.WithContext(ctx).
		Where("follow_up_on IS NOT NULL AND follow_up_on <= ?", now).
		Where("status NOT IN ?", terminal).
		Find(&jobs).Error
	if err != nil {
		return nil, errors.Wrap(err, "due follow-ups")
	}
	return jobs, nil
}
