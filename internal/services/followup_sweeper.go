package services

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"github.com/jobtrackr/jobtrackr/internal/logger"
	"github.com/jobtrackr/jobtrackr/internal/models"
)

type FollowUpRepository interface {
	DueFollowUps(ctx context.Context, now time.Time) ([]models.Job, error)
}

// FollowUpSweeper runs a daily pass over jobs whose follow-up date
// has arrived and logs a reminder for each. It sends nothing
// outbound; the log line is the reminder.
type FollowUpSweeper struct {
	jobs FollowUpRepository
	cron *cron.Cron
}

func NewFollowUpSweeper(jobs FollowUpRepository, schedule string) (*FollowUpSweeper, error) {
	sweeper := &FollowUpSweeper{
		jobs: jobs,
		cron: cron.New(),
	}

	if _, err := sweeper.cron.AddFunc(schedule, sweeper.sweep); err != nil {
		return nil, err
	}

	sweeper.cron.Start()
	log.Infof("follow-up sweeper started, schedule: %s", schedule)
	return sweeper, nil
}

func (s *FollowUpSweeper) Stop() {
	s.cron.Stop()
}

func (s *FollowUpSweeper) sweep() {
	due, err := s.jobs.DueFollowUps(context.Background(), time.Now())
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("follow-up sweep failed: %v", err)
		return
	}

	for _, job := range due {
		log.Infof("follow-up due: %s at %s (applied %s, status %s)",
			job.Position, job.Company, job.DateApplied.Format("2006-01-02"), job.Status)
	}

	if len(due) > 0 {
		log.Infof("follow-up sweep finished, %d job(s) due", len(due))
	}
}
