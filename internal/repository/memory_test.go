package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appogelardexa/ticket-triage/internal/domain"
	"github.com/appogelardexa/ticket-triage/pkg/util"
)

func newTicket(summary string) *domain.Ticket {
	return &domain.Ticket{
		Summary:  summary,
		Status:   domain.TicketStatusNew,
		Priority: domain.TicketPriorityNormal,
		Channel:  domain.ChannelEmail,
	}
}

func strPtr(s string) *string { return &s }

func statusPtr(s domain.TicketStatus) *domain.TicketStatus { return &s }

func priorityPtr(p domain.TicketPriority) *domain.TicketPriority { return &p }

func TestCreateWritesInitialTransitions(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	ticket := newTicket("printer on fire")
	require.NoError(t, store.Create(ctx, ticket))
	assert.Regexp(t, `^TCK-\d{6}$`, ticket.TicketID)

	statusHistory, err := store.ListStatus(ctx, ticket.TicketID, false)
	require.NoError(t, err)
	require.Len(t, statusHistory, 1)
	assert.Nil(t, statusHistory[0].FromStatus)
	assert.Equal(t, domain.TicketStatusNew, statusHistory[0].ToStatus)

	priorityHistory, err := store.ListPriority(ctx, ticket.TicketID, false)
	require.NoError(t, err)
	require.Len(t, priorityHistory, 1)
	assert.Nil(t, priorityHistory[0].FromPriority)
	assert.Equal(t, domain.TicketPriorityNormal, priorityHistory[0].ToPriority)
}

func TestNoopUpdateAppendsNothing(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	ticket := newTicket("slow laptop")
	require.NoError(t, store.Create(ctx, ticket))

	// same status and priority, plus an unrelated field change
	_, err := store.Update(ctx, ticket.TicketID, TicketPatch{
		Status:   statusPtr(domain.TicketStatusNew),
		Priority: priorityPtr(domain.TicketPriorityNormal),
		Summary:  strPtr("slow laptop again"),
	})
	require.NoError(t, err)

	statusHistory, err := store.ListStatus(ctx, ticket.TicketID, false)
	require.NoError(t, err)
	assert.Len(t, statusHistory, 1)

	priorityHistory, err := store.ListPriority(ctx, ticket.TicketID, false)
	require.NoError(t, err)
	assert.Len(t, priorityHistory, 1)
}

func TestTransitionChainHasNoGaps(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	ticket := newTicket("vpn down")
	require.NoError(t, store.Create(ctx, ticket))

	steps := []domain.TicketStatus{
		domain.TicketStatusOpen,
		domain.TicketStatusInProgress,
		domain.TicketStatusResolved,
		domain.TicketStatusClosed,
		domain.TicketStatusReopened,
	}
	for _, next := range steps {
		_, err := store.Update(ctx, ticket.TicketID, TicketPatch{Status: statusPtr(next)})
		require.NoError(t, err)
	}

	chain, err := store.ListStatus(ctx, ticket.TicketID, false)
	require.NoError(t, err)
	require.Len(t, chain, len(steps)+1)
	assert.Nil(t, chain[0].FromStatus)
	for i := 1; i < len(chain); i++ {
		require.NotNil(t, chain[i].FromStatus)
		assert.Equal(t, chain[i-1].ToStatus, *chain[i].FromStatus)
	}
	assert.Equal(t, domain.TicketStatusReopened, chain[len(chain)-1].ToStatus)
}

func TestConcurrentUpdatesSerialize(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	ticket := newTicket("flaky wifi")
	require.NoError(t, store.Create(ctx, ticket))

	statuses := []domain.TicketStatus{
		domain.TicketStatusOpen,
		domain.TicketStatusInProgress,
		domain.TicketStatusOnHold,
		domain.TicketStatusResolved,
	}

	var wg sync.WaitGroup
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := store.Update(ctx, ticket.TicketID, TicketPatch{
				Status: statusPtr(statuses[i%len(statuses)]),
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	chain, err := store.ListStatus(ctx, ticket.TicketID, false)
	require.NoError(t, err)
	// every row observes exactly the previous row's target: no interleaving
	// produced a torn or duplicated link
	for i := 1; i < len(chain); i++ {
		require.NotNil(t, chain[i].FromStatus)
		assert.Equal(t, chain[i-1].ToStatus, *chain[i].FromStatus)
		assert.NotEqual(t, chain[i].ToStatus, *chain[i].FromStatus)
	}

	final, err := store.GetByTicketID(ctx, ticket.TicketID)
	require.NoError(t, err)
	assert.Equal(t, chain[len(chain)-1].ToStatus, final.Status)
}

func TestDeleteCascadesHistory(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	ticket := newTicket("to be removed")
	require.NoError(t, store.Create(ctx, ticket))
	_, err := store.Update(ctx, ticket.TicketID, TicketPatch{Status: statusPtr(domain.TicketStatusOpen)})
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, ticket.TicketID))

	_, err = store.GetByTicketID(ctx, ticket.TicketID)
	assert.True(t, util.IsNotFound(err))

	chain, err := store.ListStatus(ctx, ticket.TicketID, false)
	require.NoError(t, err)
	assert.Empty(t, chain)

	priorities, err := store.ListPriority(ctx, ticket.TicketID, false)
	require.NoError(t, err)
	assert.Empty(t, priorities)

	assert.True(t, util.IsNotFound(store.Delete(ctx, ticket.TicketID)))
}

func TestUpdateUnknownTicket(t *testing.T) {
	store := NewMemoryStore()
	_, err := store.Update(context.Background(), "TCK-999999", TicketPatch{
		Status: statusPtr(domain.TicketStatusOpen),
	})
	assert.True(t, util.IsNotFound(err))
}

func TestFormattedViewDerivesCompanyFromClient(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	company := &domain.Company{Name: "Acme"}
	require.NoError(t, store.CreateCompany(ctx, company))

	email := "jane@acme.test"
	client := &domain.Client{Name: "Jane", Email: &email, CompanyID: &company.ID}
	require.NoError(t, store.CreateClient(ctx, client))

	ticket := newTicket("invoice question")
	ticket.ClientID = &client.ID
	require.NoError(t, store.Create(ctx, ticket))

	view, err := store.GetFormatted(ctx, ticket.TicketID)
	require.NoError(t, err)
	require.NotNil(t, view.CompanyID)
	assert.Equal(t, company.ID, *view.CompanyID)
	require.NotNil(t, view.CompanyName)
	assert.Equal(t, "Acme", *view.CompanyName)
	require.NotNil(t, view.ClientEmail)
	assert.Equal(t, email, *view.ClientEmail)
}

func TestFormattedViewWithoutClient(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	ticket := newTicket("anonymous report")
	require.NoError(t, store.Create(ctx, ticket))

	view, err := store.GetFormatted(ctx, ticket.TicketID)
	require.NoError(t, err)
	assert.Nil(t, view.ClientName)
	assert.Nil(t, view.CompanyID)
	assert.Nil(t, view.CompanyName)
}

func TestListFormattedByEmailScopes(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	clientEmail := "bob@example.test"
	client := &domain.Client{Name: "Bob", Email: &clientEmail}
	require.NoError(t, store.CreateClient(ctx, client))

	staff := &domain.Staff{Name: "Dana", Email: "dana@helpdesk.test"}
	require.NoError(t, store.CreateStaff(ctx, staff))

	clientTicket := newTicket("from bob")
	clientTicket.ClientID = &client.ID
	require.NoError(t, store.Create(ctx, clientTicket))

	assignedTicket := newTicket("for dana")
	assignedTicket.AssigneeID = &staff.ID
	require.NoError(t, store.Create(ctx, assignedTicket))

	byClient, total, err := store.ListFormatted(ctx, FormattedFilter{ClientEmail: &clientEmail})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, byClient, 1)
	assert.Equal(t, clientTicket.TicketID, byClient[0].TicketID)

	assigneeEmail := staff.Email
	byAssignee, _, err := store.ListFormatted(ctx, FormattedFilter{AssigneeEmail: &assigneeEmail})
	require.NoError(t, err)
	require.Len(t, byAssignee, 1)
	assert.Equal(t, assignedTicket.TicketID, byAssignee[0].TicketID)

	byAny, total, err := store.ListFormatted(ctx, FormattedFilter{AnyEmail: &clientEmail})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, byAny, 1)
}

func TestListFormattedByClientName(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	client := &domain.Client{Name: "Global Industries"}
	require.NoError(t, store.CreateClient(ctx, client))

	ticket := newTicket("quota increase")
	ticket.ClientID = &client.ID
	require.NoError(t, store.Create(ctx, ticket))

	exactName := "Global Industries"
	exact, _, err := store.ListFormatted(ctx, FormattedFilter{ClientName: &exactName, ClientNameExact: true})
	require.NoError(t, err)
	assert.Len(t, exact, 1)

	partial := "global"
	contains, _, err := store.ListFormatted(ctx, FormattedFilter{ClientName: &partial})
	require.NoError(t, err)
	assert.Len(t, contains, 1)

	miss := "globex"
	none, total, err := store.ListFormatted(ctx, FormattedFilter{ClientName: &miss})
	require.NoError(t, err)
	assert.Empty(t, none)
	assert.Zero(t, total)
}

func TestListFormattedPagination(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, store.Create(ctx, newTicket("bulk")))
	}

	page, total, err := store.ListFormatted(ctx, FormattedFilter{Limit: 2, Offset: 0})
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	assert.Len(t, page, 2)

	tail, _, err := store.ListFormatted(ctx, FormattedFilter{Limit: 2, Offset: 4})
	require.NoError(t, err)
	assert.Len(t, tail, 1)
}

func TestListDetailedFilters(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	company := &domain.Company{Name: "Initech"}
	require.NoError(t, store.CreateCompany(ctx, company))
	client := &domain.Client{Name: "Peter", CompanyID: &company.ID}
	require.NoError(t, store.CreateClient(ctx, client))
	dept := &domain.Department{Name: "Support"}
	require.NoError(t, store.CreateDepartment(ctx, dept))

	ticket := newTicket("stapler missing")
	ticket.ClientID = &client.ID
	ticket.DepartmentID = &dept.ID
	require.NoError(t, store.Create(ctx, ticket))

	require.NoError(t, store.Create(ctx, newTicket("unrelated")))

	byCompany, total, err := store.ListDetailed(ctx, DetailedFilter{CompanyID: &company.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, byCompany, 1)
	assert.Equal(t, ticket.TicketID, byCompany[0].TicketID)
	require.NotNil(t, byCompany[0].DepartmentName)
	assert.Equal(t, "Support", *byCompany[0].DepartmentName)

	byDept, _, err := store.ListDetailed(ctx, DetailedFilter{DepartmentID: &dept.ID})
	require.NoError(t, err)
	assert.Len(t, byDept, 1)
}

func TestJobLifecycle(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	jobs := store.Jobs()

	job := &domain.IntakeJob{JobID: "job-1"}
	require.NoError(t, jobs.Create(ctx, job))
	assert.Equal(t, domain.JobPending, job.Status)

	assert.True(t, util.IsConflict(jobs.Create(ctx, &domain.IntakeJob{JobID: "job-1"})))

	fetched, err := jobs.Get(ctx, "job-1")
	require.NoError(t, err)
	assert.Equal(t, domain.JobPending, fetched.Status)
	assert.Nil(t, fetched.Result)
	assert.Nil(t, fetched.Error)

	result := &domain.IntakeResult{Ticket: domain.FormattedTicket{TicketID: "TCK-001001"}}
	require.NoError(t, jobs.Complete(ctx, "job-1", result))

	done, err := jobs.Get(ctx, "job-1")
	require.NoError(t, err)
	assert.Equal(t, domain.JobCompleted, done.Status)
	require.NotNil(t, done.Result)
	assert.Equal(t, "TCK-001001", done.Result.Ticket.TicketID)

	// double finalization is refused and the stored result stays intact
	other := &domain.IntakeResult{Ticket: domain.FormattedTicket{TicketID: "TCK-009999"}}
	assert.True(t, util.IsConflict(jobs.Complete(ctx, "job-1", other)))
	assert.True(t, util.IsConflict(jobs.Fail(ctx, "job-1", &domain.IntakeError{Message: "late"})))

	unchanged, err := jobs.Get(ctx, "job-1")
	require.NoError(t, err)
	assert.Equal(t, domain.JobCompleted, unchanged.Status)
	assert.Equal(t, "TCK-001001", unchanged.Result.Ticket.TicketID)
	assert.Nil(t, unchanged.Error)
}

func TestJobFailAndMissing(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	jobs := store.Jobs()

	_, err := jobs.Get(ctx, "nope")
	assert.True(t, util.IsNotFound(err))
	assert.True(t, util.IsNotFound(jobs.Complete(ctx, "nope", &domain.IntakeResult{})))

	require.NoError(t, jobs.Create(ctx, &domain.IntakeJob{JobID: "job-2"}))
	require.NoError(t, jobs.Fail(ctx, "job-2", &domain.IntakeError{Message: "bad reference", Code: "NOT_FOUND"}))

	failed, err := jobs.Get(ctx, "job-2")
	require.NoError(t, err)
	assert.Equal(t, domain.JobError, failed.Status)
	require.NotNil(t, failed.Error)
	assert.Equal(t, "bad reference", failed.Error.Message)
	assert.Nil(t, failed.Result)
}

func TestClientNameLookupAmbiguity(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	clients := store.Clients()

	require.NoError(t, clients.Create(ctx, &domain.Client{Name: "Sam"}))
	require.NoError(t, clients.Create(ctx, &domain.Client{Name: "Sam"}))

	_, err := clients.GetByName(ctx, "Sam")
	assert.ErrorIs(t, err, ErrAmbiguousMatch)

	_, err = clients.GetByName(ctx, "Samantha")
	assert.True(t, util.IsNotFound(err))
}
