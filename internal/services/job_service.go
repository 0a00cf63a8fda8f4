package services

import (
	"context"
	"time"

	"github.com/asaskevich/EventBus"

	"github.com/jobtrackr/jobtrackr/internal/dtos"
	"github.com/jobtrackr/jobtrackr/internal/events"
	"github.com/jobtrackr/jobtrackr/internal/models"
	"github.com/jobtrackr/jobtrackr/internal/repositories"
)

type JobService struct {
	jobs *repositories.Jobs
	bus  EventBus.Bus
}

func NewJobService(jobs *repositories.Jobs, bus EventBus.Bus) *JobService {
	return &JobService{jobs: jobs, bus: bus}
}

func (s *JobService) Create(ctx context.Context, req *dtos.CreateJobRequest) (*models.Job, error) {
	job := &models.Job{
		Position: req.Position,
		Company:  req.Company,
		Salary: models.Salary{
			Amount:   *req.Salary.Amount,
			Currency: req.Salary.Currency,
		},
		Link:         req.Link,
		Status:       models.Status(req.Status),
		Type:         models.JobType(req.Type),
		Priority:     models.Priority(req.Priority),
		Location:     req.Location,
		Source:       req.Source,
		Deadline:     req.Deadline,
		FollowUpOn:   req.FollowUpOn,
		ContactName:  req.ContactName,
		ContactEmail: req.ContactEmail,
		NextAction:   req.NextAction,
		Notes:        req.Notes,
		Tags:         req.Tags,
		Interviews:   toInterviews(req.Interviews),
		Offer:        toOffer(req.Offer),
		Attachments:  toAttachments(req.Attachments),
	}
	if req.DateApplied != nil {
		job.DateApplied = *req.DateApplied
	}

	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, err
	}

	s.bus.Publish(events.JobCreatedTopic, events.JobCreated{
		JobID:    job.ID,
		Position: job.Position,
		Company:  job.Company,
	})
	return job, nil
}

func (s *JobService) Get(ctx context.Context, id string) (*models.Job, error) {
	return s.jobs.GetByID(ctx, id)
}

func (s *JobService) List(ctx context.Context, opts repositories.ListOptions) ([]models.Job, repositories.Pagination, error) {
	return s.jobs.List(ctx, opts)
}

func (s *JobService) Stats(ctx context.Context) (*repositories.Stats, error) {
	return s.jobs.Stats(ctx)
}

// Update applies only the fields the request supplies and persists
// the merged record. Last write wins; there is no optimistic
// concurrency check.
func (s *JobService) Update(ctx context.Context, id string, req *dtos.UpdateJobRequest) (*models.Job, error) {
	job, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	previousStatus := job.Status
	applyUpdate(job, req)

	if err := s.jobs.Save(ctx, job); err != nil {
		return nil, err
	}

	if job.Status != previousStatus {
		s.bus.Publish(events.JobStatusChangedTopic, events.JobStatusChanged{
			JobID: job.ID,
			From:  previousStatus,
			To:    job.Status,
		})
	}
	return job, nil
}

func (s *JobService) Delete(ctx context.Context, id string) error {
	job, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.jobs.Delete(ctx, id); err != nil {
		return err
	}

	s.bus.Publish(events.JobDeletedTopic, events.JobDeleted{
		JobID:    job.ID,
		Position: job.Position,
		Company:  job.Company,
	})
	return nil
}

func applyUpdate(job *models.Job, req *dtos.UpdateJobRequest) {
	if req.Position != nil {
		job.Position = *req.Position
	}
	if req.Company != nil {
		job.Company = *req.Company
	}
	if req.Salary != nil {
		job.Salary = models.Salary{
			Amount:   *req.Salary.Amount,
			Currency: req.Salary.Currency,
		}
	}
	if req.Link != nil {
		job.Link = *req.Link
	}
	if req.Status != nil {
		job.Status = models.Status(*req.Status)
	}
	if req.Type != nil {
		job.Type = models.JobType(*req.Type)
	}
	if req.Priority != nil {
		job.Priority = models.Priority(*req.Priority)
	}
	if req.Location != nil {
		job.Location = *req.Location
	}
	if req.Source != nil {
		job.Source = *req.Source
	}
	if req.DateApplied != nil {
		job.DateApplied = *req.DateApplied
	}
	if req.Deadline != nil {
		job.Deadline = req.Deadline
	}
	if req.FollowUpOn != nil {
		job.FollowUpOn = req.FollowUpOn
	}
	if req.ContactName != nil {
		job.ContactName = *req.ContactName
	}
	if req.ContactEmail != nil {
		job.ContactEmail = *req.ContactEmail
	}
	if req.NextAction != nil {
		job.NextAction = *req.NextAction
	}
	if req.Notes != nil {
		job.Notes = *req.Notes
	}
	if req.Tags != nil {
		job.Tags = *req.Tags
	}
	if req.Interviews != nil {
		job.Interviews = toInterviews(*req.Interviews)
	}
	if req.Offer != nil {
		job.Offer = toOffer(req.Offer)
	}
	if req.Attachments != nil {
		job.Attachments = toAttachments(req.Attachments)
	}
}

func toInterviews(payloads []dtos.InterviewPayload) []models.Interview {
	if payloads == nil {
		return nil
	}
	interviews := make([]models.Interview, 0, len(payloads))
	for _, p := range payloads {
		var date time.Time
		if p.Date != nil {
			date = *p.Date
		}
		interviews = append(interviews, models.Interview{
			Type:  models.InterviewType(p.Type),
			Date:  date,
			Notes: p.Notes,
		})
	}
	return interviews
}

func toOffer(p *dtos.OfferPayload) *models.Offer {
	if p == nil {
		return nil
	}
	return &models.Offer{
		Base:      p.Base,
		Currency:  p.Currency,
		Bonus:     p.Bonus,
		Equity:    p.Equity,
		Benefits:  p.Benefits,
		StartDate: p.StartDate,
	}
}

func toAttachments(p *dtos.AttachmentsPayload) *models.Attachments {
	if p == nil {
		return nil
	}
	return &models.Attachments{
		ResumeURL:      p.ResumeURL,
		CoverLetterURL: p.CoverLetterURL,
	}
}
