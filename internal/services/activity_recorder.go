package services

import (
	"context"
	"fmt"

	"github.com/asaskevich/EventBus"
	log "github.com/sirupsen/logrus"

	"github.com/jobtrackr/jobtrackr/internal/events"
	"github.com/jobtrackr/jobtrackr/internal/logger"
	"github.com/jobtrackr/jobtrackr/internal/models"
	"github.com/jobtrackr/jobtrackr/internal/repositories"
)

// ActivityRecorder subscribes to job events and appends the audit
// trail. Recording failures are logged and never surface to the
// request that triggered the event.
type ActivityRecorder struct {
	activities *repositories.Activities
	bus        EventBus.Bus
}

func NewActivityRecorder(activities *repositories.Activities, bus EventBus.Bus) (*ActivityRecorder, error) {
	recorder := &ActivityRecorder{activities: activities, bus: bus}

	if err := bus.Subscribe(events.JobCreatedTopic, recorder.onCreated); err != nil {
		return nil, err
	}
	if err := bus.Subscribe(events.JobStatusChangedTopic, recorder.onStatusChanged); err != nil {
		return nil, err
	}
	if err := bus.Subscribe(events.JobDeletedTopic, recorder.onDeleted); err != nil {
		return nil, err
	}
	return recorder, nil
}

func (r *ActivityRecorder) Stop() {
	_ = r.bus.Unsubscribe(events.JobCreatedTopic, r.onCreated)
	_ = r.bus.Unsubscribe(events.JobStatusChangedTopic, r.onStatusChanged)
	_ = r.bus.Unsubscribe(events.JobDeletedTopic, r.onDeleted)
}

func (r *ActivityRecorder) onCreated(event events.JobCreated) {
	r.record(&models.JobActivity{
		JobID:   event.JobID,
		Kind:    models.ActivityCreated,
		Details: fmt.Sprintf("Application created for %s at %s", event.Position, event.Company),
	})
}

func (r *ActivityRecorder) onStatusChanged(event events.JobStatusChanged) {
	r.record(&models.JobActivity{
		JobID:   event.JobID,
		Kind:    models.ActivityStatusChanged,
		Details: fmt.Sprintf("Status changed from %s to %s", event.From, event.To),
	})
}

func (r *ActivityRecorder) onDeleted(event events.JobDeleted) {
	r.record(&models.JobActivity{
		JobID:   event.JobID,
		Kind:    models.ActivityDeleted,
		Details: fmt.Sprintf("Application for %s at %s deleted", event.Position, event.Company),
	})
}

func (r *ActivityRecorder) record(activity *models.JobActivity) {
	if err := r.activities.Record(context.Background(), activity); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("failed to record %s activity for job %s: %v", activity.Kind, activity.JobID, err)
	}
}
