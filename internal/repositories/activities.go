package repositories

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/jobtrackr/jobtrackr/internal/models"
)

type Activities struct {
	db *gorm.DB
}

func NewActivitiesRepository(db *gorm.DB) *Activities {
	return &Activities{db: db}
}

func (r *Activities) Record(ctx context.Context, activity *models.JobActivity) error {
	if err := r.db.WithContext(ctx).Create(activity).Error; err != nil {
		return errors.Wrap(err, "record activity")
	}
	return nil
}

// ListByJob returns a job's trail newest-first. The trail of a
// deleted job remains readable.
func (r *Activities) ListByJob(ctx context.Context, jobID string) ([]models.JobActivity, error) {
	activities := []models.JobActivity{}
	err := r.db.WithContext(ctx).
		Where("job_id = ?", jobID).
		Order("created_at DESC, id DESC").
		Find(&activities).Error
	if err != nil {
		return nil, errors.Wrap(err, "list activities")
	}
	return activities, nil
}
