package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/appogelardexa/ticket-triage/internal/domain"
	"github.com/appogelardexa/ticket-triage/internal/events"
	"github.com/appogelardexa/ticket-triage/internal/repository"
	"github.com/appogelardexa/ticket-triage/pkg/util"
)

// IntakeService manages the lifecycle of asynchronous intake jobs. A job is
// registered as pending before any processing starts, so callers can poll
// it immediately; it later settles into exactly one terminal state.
type IntakeService struct {
	jobs       repository.IntakeJobRepository
	tickets    *TicketService
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewIntakeService constructs the service.
func NewIntakeService(jobs repository.IntakeJobRepository, tickets *TicketService, dispatcher events.Dispatcher, logger *zap.Logger) *IntakeService {
	return &IntakeService{
		jobs:       jobs,
		tickets:    tickets,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Submit registers a new pending job. An empty jobID gets a generated one;
// reusing an existing id is a conflict.
func (s *IntakeService) Submit(ctx context.Context, jobID string) (*domain.IntakeJob, error) {
	jobID = strings.TrimSpace(jobID)
	if jobID == "" {
		jobID = uuid.NewString()
	}
	job := &domain.IntakeJob{
		JobID:     jobID,
		Status:    domain.JobPending,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

// Process runs the intake pipeline for a pending job: it creates the ticket
// and finalizes the job with either the formatted result or a caller-safe
// error. Process never returns a ticket creation failure to its caller;
// that outcome lives on the job record.
func (s *IntakeService) Process(ctx context.Context, jobID string, input TicketCreateInput, attachments []domain.AttachmentReference) error {
	ticket, err := s.tickets.CreateTicket(ctx, input)
	if err != nil {
		s.logger.Warn("intake processing failed",
			zap.String("job_id", jobID),
			zap.Error(err))
		return s.Fail(ctx, jobID, intakeErrorFrom(err))
	}
	return s.Complete(ctx, jobID, &domain.IntakeResult{
		Ticket:      *ticket,
		Attachments: attachments,
	})
}

// Complete finalizes a pending job with its result. Jobs already terminal
// are refused and their stored outcome stays untouched.
func (s *IntakeService) Complete(ctx context.Context, jobID string, result *domain.IntakeResult) error {
	if err := s.jobs.Complete(ctx, jobID, result); err != nil {
		return err
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventIntakeJobCompleted,
		JobID:    jobID,
		TicketID: result.Ticket.TicketID,
	})
	return nil
}

// Fail finalizes a pending job with an error outcome.
func (s *IntakeService) Fail(ctx context.Context, jobID string, detail *domain.IntakeError) error {
	if err := s.jobs.Fail(ctx, jobID, detail); err != nil {
		return err
	}
	s.publishEvent(ctx, events.Event{
		Type:  events.EventIntakeJobFailed,
		JobID: jobID,
		Payload: events.IntakeJobFailedPayload{
			Message: detail.Message,
			Code:    detail.Code,
		},
	})
	return nil
}

// Get returns the current job record without mutating it.
func (s *IntakeService) Get(ctx context.Context, jobID string) (*domain.IntakeJob, error) {
	return s.jobs.Get(ctx, jobID)
}

func (s *IntakeService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

// intakeErrorFrom converts a processing failure into the payload stored on
// the job. Domain errors keep their message and code; anything else is
// reduced to a generic message so internals never leak to pollers.
func intakeErrorFrom(err error) *domain.IntakeError {
	domainErr := util.ToDomainError(err)
	switch domainErr.Code {
	case util.CodeValidation, util.CodeNotFound, util.CodeConflict:
		return &domain.IntakeError{Message: domainErr.Message, Code: domainErr.Code}
	default:
		return &domain.IntakeError{Message: "ticket intake failed", Code: util.CodeInternal}
	}
}
