package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/appogelardexa/ticket-triage/internal/domain"
	"github.com/appogelardexa/ticket-triage/internal/events"
	"github.com/appogelardexa/ticket-triage/internal/repository"
	"github.com/appogelardexa/ticket-triage/pkg/util"
)

func newIntakeFixture(t *testing.T) (*IntakeService, *repository.MemoryStore, *capturingDispatcher) {
	t.Helper()
	store := repository.NewMemoryStore()
	dispatcher := &capturingDispatcher{}
	tickets := NewTicketService(TicketDependencies{
		TicketRepo:     store,
		ViewRepo:       store,
		TransitionRepo: store,
		ClientRepo:     store.Clients(),
		StaffRepo:      store.Staff(),
		DepartmentRepo: store.Departments(),
		CategoryRepo:   store.Categories(),
		Dispatcher:     dispatcher,
	})
	intake := NewIntakeService(store.Jobs(), tickets, dispatcher, zap.NewNop())
	return intake, store, dispatcher
}

func TestSubmitGeneratesJobID(t *testing.T) {
	intake, _, _ := newIntakeFixture(t)
	ctx := context.Background()

	job, err := intake.Submit(ctx, "")
	require.NoError(t, err)
	assert.NotEmpty(t, job.JobID)
	assert.Equal(t, domain.JobPending, job.Status)
	assert.False(t, job.CreatedAt.IsZero())

	// pollable immediately
	fetched, err := intake.Get(ctx, job.JobID)
	require.NoError(t, err)
	assert.Equal(t, domain.JobPending, fetched.Status)
}

func TestSubmitDuplicateJobID(t *testing.T) {
	intake, _, _ := newIntakeFixture(t)
	ctx := context.Background()

	_, err := intake.Submit(ctx, "dup-1")
	require.NoError(t, err)
	_, err = intake.Submit(ctx, "dup-1")
	assert.True(t, util.IsConflict(err))
}

func TestProcessCompletesJobWithFormattedTicket(t *testing.T) {
	intake, _, dispatcher := newIntakeFixture(t)
	ctx := context.Background()

	job, err := intake.Submit(ctx, "")
	require.NoError(t, err)

	attachments := []domain.AttachmentReference{{ID: "att-1", FileName: "log.txt", URL: "https://files.test/log.txt"}}
	err = intake.Process(ctx, job.JobID, TicketCreateInput{
		Summary:     "mail loop detected",
		ClientEmail: sp("ops@customer.test"),
	}, attachments)
	require.NoError(t, err)

	done, err := intake.Get(ctx, job.JobID)
	require.NoError(t, err)
	assert.Equal(t, domain.JobCompleted, done.Status)
	require.NotNil(t, done.Result)
	assert.Regexp(t, `^TCK-\d{6}$`, done.Result.Ticket.TicketID)
	require.NotNil(t, done.Result.Ticket.ClientEmail)
	assert.Equal(t, "ops@customer.test", *done.Result.Ticket.ClientEmail)
	require.Len(t, done.Result.Attachments, 1)
	assert.Equal(t, "att-1", done.Result.Attachments[0].ID)

	completedEvents := dispatcher.ofType(events.EventIntakeJobCompleted)
	require.Len(t, completedEvents, 1)
	assert.Equal(t, job.JobID, completedEvents[0].JobID)
}

func TestProcessFailureLandsOnJob(t *testing.T) {
	intake, _, dispatcher := newIntakeFixture(t)
	ctx := context.Background()

	job, err := intake.Submit(ctx, "")
	require.NoError(t, err)

	// unknown assignee: ticket creation fails, the job absorbs the error
	err = intake.Process(ctx, job.JobID, TicketCreateInput{
		Summary:       "needs owner",
		AssigneeEmail: sp("ghost@helpdesk.test"),
	}, nil)
	require.NoError(t, err)

	failed, err := intake.Get(ctx, job.JobID)
	require.NoError(t, err)
	assert.Equal(t, domain.JobError, failed.Status)
	assert.Nil(t, failed.Result)
	require.NotNil(t, failed.Error)
	assert.Equal(t, util.CodeNotFound, failed.Error.Code)
	assert.Contains(t, failed.Error.Message, "not found")

	failedEvents := dispatcher.ofType(events.EventIntakeJobFailed)
	require.Len(t, failedEvents, 1)
}

func TestProcessValidationFailureKeepsMessage(t *testing.T) {
	intake, _, _ := newIntakeFixture(t)
	ctx := context.Background()

	job, err := intake.Submit(ctx, "")
	require.NoError(t, err)

	require.NoError(t, intake.Process(ctx, job.JobID, TicketCreateInput{Summary: "  "}, nil))

	failed, err := intake.Get(ctx, job.JobID)
	require.NoError(t, err)
	assert.Equal(t, domain.JobError, failed.Status)
	assert.Equal(t, util.CodeValidation, failed.Error.Code)
	assert.Equal(t, "summary is required", failed.Error.Message)
}

func TestFinalizedJobIsImmutable(t *testing.T) {
	intake, _, _ := newIntakeFixture(t)
	ctx := context.Background()

	job, err := intake.Submit(ctx, "")
	require.NoError(t, err)
	require.NoError(t, intake.Fail(ctx, job.JobID, &domain.IntakeError{Message: "parser crashed", Code: util.CodeInternal}))

	err = intake.Complete(ctx, job.JobID, &domain.IntakeResult{})
	assert.True(t, util.IsConflict(err))
	err = intake.Fail(ctx, job.JobID, &domain.IntakeError{Message: "again"})
	assert.True(t, util.IsConflict(err))

	unchanged, err := intake.Get(ctx, job.JobID)
	require.NoError(t, err)
	assert.Equal(t, domain.JobError, unchanged.Status)
	assert.Equal(t, "parser crashed", unchanged.Error.Message)
}

func TestGetUnknownJob(t *testing.T) {
	intake, _, _ := newIntakeFixture(t)
	_, err := intake.Get(context.Background(), "missing")
	assert.True(t, util.IsNotFound(err))
}
