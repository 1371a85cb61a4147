package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/appogelardexa/ticket-triage/internal/domain"
	"github.com/appogelardexa/ticket-triage/internal/events"
	"github.com/appogelardexa/ticket-triage/internal/repository"
	"github.com/appogelardexa/ticket-triage/pkg/util"
)

// EmailScope selects which side of a ticket an email filter applies to.
type EmailScope string

const (
	ScopeClient   EmailScope = "client"
	ScopeAssignee EmailScope = "assignee"
	ScopeAny      EmailScope = "any"
)

// TicketService coordinates ticket workflows.
type TicketService struct {
	tickets     repository.TicketRepository
	views       repository.TicketViewRepository
	transitions repository.TransitionRepository
	clients     repository.ClientRepository
	staff       repository.StaffRepository
	departments repository.DepartmentRepository
	categories  repository.CategoryRepository
	dispatcher  events.Dispatcher
}

// TicketDependencies bundles repositories for the ticket service.
type TicketDependencies struct {
	TicketRepo     repository.TicketRepository
	ViewRepo       repository.TicketViewRepository
	TransitionRepo repository.TransitionRepository
	ClientRepo     repository.ClientRepository
	StaffRepo      repository.StaffRepository
	DepartmentRepo repository.DepartmentRepository
	CategoryRepo   repository.CategoryRepository
	Dispatcher     events.Dispatcher
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:     deps.TicketRepo,
		views:       deps.ViewRepo,
		transitions: deps.TransitionRepo,
		clients:     deps.ClientRepo,
		staff:       deps.StaffRepo,
		departments: deps.DepartmentRepo,
		categories:  deps.CategoryRepo,
		dispatcher:  deps.Dispatcher,
	}
}

// TicketCreateInput describes the ticket creation payload. References to
// client, assignee, department and category may arrive as ids, emails or
// display names; resolution happens before the insert.
type TicketCreateInput struct {
	Summary   string
	Subject   *string
	EmailBody *string
	MessageID *string
	ThreadID  *string

	Status   *domain.TicketStatus
	Priority *domain.TicketPriority
	Channel  *domain.TicketChannel

	ClientID    *int64
	ClientEmail *string
	ClientName  *string

	AssigneeID    *int64
	AssigneeEmail *string
	AssigneeName  *string

	DepartmentID   *int64
	DepartmentName *string

	CategoryID   *int64
	CategoryName *string
}

// TicketUpdateInput carries the mutable ticket fields. Nil means "leave
// unchanged"; reference fields are id-only on update.
type TicketUpdateInput struct {
	Summary      *string
	Status       *domain.TicketStatus
	Priority     *domain.TicketPriority
	Channel      *domain.TicketChannel
	Subject      *string
	EmailBody    *string
	MessageID    *string
	ThreadID     *string
	ClientID     *int64
	AssigneeID   *int64
	DepartmentID *int64
	CategoryID   *int64
}

// TicketListFilter controls plain paginated listing.
type TicketListFilter struct {
	NewestFirst bool
	Limit       int
	Offset      int
}

// CreateTicket resolves references, persists the ticket with its initial
// audit rows and returns the formatted view.
func (s *TicketService) CreateTicket(ctx context.Context, input TicketCreateInput) (*domain.FormattedTicket, error) {
	if strings.TrimSpace(input.Summary) == "" {
		return nil, util.NewValidationError("summary is required", nil)
	}

	ticket := &domain.Ticket{
		Summary:   strings.TrimSpace(input.Summary),
		Subject:   input.Subject,
		EmailBody: input.EmailBody,
		MessageID: input.MessageID,
		ThreadID:  input.ThreadID,
		Status:    domain.TicketStatusNew,
		Priority:  domain.TicketPriorityNormal,
		Channel:   domain.ChannelEmail,
	}
	if input.Status != nil {
		ticket.Status = *input.Status
	}
	if input.Priority != nil {
		ticket.Priority = *input.Priority
	}
	if input.Channel != nil {
		ticket.Channel = *input.Channel
	}
	if err := validateEnums(&ticket.Status, &ticket.Priority, &ticket.Channel); err != nil {
		return nil, err
	}

	clientID, err := s.resolveClient(ctx, input)
	if err != nil {
		return nil, err
	}
	ticket.ClientID = clientID

	assigneeID, err := s.resolveAssignee(ctx, input)
	if err != nil {
		return nil, err
	}
	ticket.AssigneeID = assigneeID

	departmentID, err := s.resolveDepartment(ctx, input)
	if err != nil {
		return nil, err
	}
	ticket.DepartmentID = departmentID

	categoryID, err := s.resolveCategory(ctx, input, departmentID)
	if err != nil {
		return nil, err
	}
	ticket.CategoryID = categoryID

	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.TicketID,
		Payload: events.TicketCreatedPayload{
			Status:   ticket.Status,
			Priority: ticket.Priority,
			Channel:  ticket.Channel,
			Summary:  ticket.Summary,
		},
	})
	return s.views.GetFormatted(ctx, ticket.TicketID)
}

// UpdateTicket applies a partial update and returns the refreshed formatted
// view. Status and priority changes land in the audit log inside the same
// transaction as the row update.
func (s *TicketService) UpdateTicket(ctx context.Context, ticketID string, input TicketUpdateInput) (*domain.FormattedTicket, error) {
	patch := repository.TicketPatch{
		Summary:      input.Summary,
		Status:       input.Status,
		Priority:     input.Priority,
		Channel:      input.Channel,
		Subject:      input.Subject,
		EmailBody:    input.EmailBody,
		MessageID:    input.MessageID,
		ThreadID:     input.ThreadID,
		ClientID:     input.ClientID,
		AssigneeID:   input.AssigneeID,
		DepartmentID: input.DepartmentID,
		CategoryID:   input.CategoryID,
	}
	if patch.Empty() {
		return nil, util.NewValidationError("no fields to update", nil)
	}
	if err := validateEnums(input.Status, input.Priority, input.Channel); err != nil {
		return nil, err
	}
	if input.Summary != nil && strings.TrimSpace(*input.Summary) == "" {
		return nil, util.NewValidationError("summary cannot be empty", nil)
	}

	// The old values come back from the repository's locked transaction,
	// so concurrent updates cannot make the event payloads stale.
	updated, err := s.tickets.Update(ctx, ticketID, patch)
	if err != nil {
		return nil, err
	}
	ticket := updated.Ticket

	if ticket.Status != updated.OldStatus {
		s.publishEvent(ctx, events.Event{
			Type:     events.EventTicketStatusChanged,
			TicketID: ticket.TicketID,
			Payload: events.TicketStatusChangedPayload{
				OldStatus: updated.OldStatus,
				NewStatus: ticket.Status,
			},
		})
	}
	if ticket.Priority != updated.OldPriority {
		s.publishEvent(ctx, events.Event{
			Type:     events.EventTicketPriorityChanged,
			TicketID: ticket.TicketID,
			Payload: events.TicketPriorityChangedPayload{
				OldPriority: updated.OldPriority,
				NewPriority: ticket.Priority,
			},
		})
	}
	return s.views.GetFormatted(ctx, ticket.TicketID)
}

// DeleteTicket removes a ticket; its transition history goes with it.
func (s *TicketService) DeleteTicket(ctx context.Context, ticketID string) error {
	if err := s.tickets.Delete(ctx, ticketID); err != nil {
		return err
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketDeleted,
		TicketID: ticketID,
	})
	return nil
}

// GetTicket returns the formatted view of one ticket.
func (s *TicketService) GetTicket(ctx context.Context, ticketID string) (*domain.FormattedTicket, error) {
	return s.views.GetFormatted(ctx, ticketID)
}

// ListTickets returns a page of formatted tickets with the total match count.
func (s *TicketService) ListTickets(ctx context.Context, filter TicketListFilter) ([]domain.FormattedTicket, int64, error) {
	return s.views.ListFormatted(ctx, repository.FormattedFilter{
		NewestFirst: filter.NewestFirst,
		Limit:       filter.Limit,
		Offset:      filter.Offset,
	})
}

// ListByEmail returns tickets whose client, assignee or either side matches
// the given email address.
func (s *TicketService) ListByEmail(ctx context.Context, email string, scope EmailScope, filter TicketListFilter) ([]domain.FormattedTicket, int64, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, 0, util.NewValidationError("email is required", nil)
	}
	repoFilter := repository.FormattedFilter{
		NewestFirst: filter.NewestFirst,
		Limit:       filter.Limit,
		Offset:      filter.Offset,
	}
	switch scope {
	case ScopeClient, "":
		repoFilter.ClientEmail = &email
	case ScopeAssignee:
		repoFilter.AssigneeEmail = &email
	case ScopeAny:
		repoFilter.AnyEmail = &email
	default:
		return nil, 0, util.NewValidationError("invalid scope", map[string]any{"scope": string(scope)})
	}
	return s.views.ListFormatted(ctx, repoFilter)
}

// ListByClientName returns tickets for clients matching a name, either
// exactly or by case-insensitive substring.
func (s *TicketService) ListByClientName(ctx context.Context, name string, exact bool, filter TicketListFilter) ([]domain.FormattedTicket, int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, 0, util.NewValidationError("client name is required", nil)
	}
	return s.views.ListFormatted(ctx, repository.FormattedFilter{
		ClientName:      &name,
		ClientNameExact: exact,
		NewestFirst:     filter.NewestFirst,
		Limit:           filter.Limit,
		Offset:          filter.Offset,
	})
}

// FilterDetailed returns detailed views matching the given id filters. At
// least one filter must be set.
func (s *TicketService) FilterDetailed(ctx context.Context, filter repository.DetailedFilter) ([]domain.DetailedTicket, int64, error) {
	if filter.Empty() {
		return nil, 0, util.NewValidationError("at least one filter is required", nil)
	}
	return s.views.ListDetailed(ctx, filter)
}

// StatusHistory returns the status transition chain for a ticket.
func (s *TicketService) StatusHistory(ctx context.Context, ticketID string, newestFirst bool) ([]domain.StatusTransition, error) {
	return s.transitions.ListStatus(ctx, ticketID, newestFirst)
}

// PriorityHistory returns the priority transition chain for a ticket.
func (s *TicketService) PriorityHistory(ctx context.Context, ticketID string, newestFirst bool) ([]domain.PriorityTransition, error) {
	return s.transitions.ListPriority(ctx, ticketID, newestFirst)
}

// resolveClient turns a client reference into an id. Unknown emails create
// the client on the fly; a missing email falls back to name resolution,
// creating the client when the name is unknown.
func (s *TicketService) resolveClient(ctx context.Context, input TicketCreateInput) (*int64, error) {
	if input.ClientID != nil {
		client, err := s.clients.GetByID(ctx, *input.ClientID)
		if err != nil {
			return nil, err
		}
		return &client.ID, nil
	}
	if input.ClientEmail != nil && strings.TrimSpace(*input.ClientEmail) != "" {
		email := strings.TrimSpace(strings.ToLower(*input.ClientEmail))
		client, err := s.clients.GetByEmail(ctx, email)
		if err == nil {
			return &client.ID, nil
		}
		if !util.IsNotFound(err) {
			return nil, err
		}
		name := displayNameFor(input.ClientName, email)
		created := &domain.Client{Name: name, Email: &email, Domain: domainOf(email)}
		if err := s.clients.Create(ctx, created); err != nil {
			return nil, err
		}
		return &created.ID, nil
	}
	if input.ClientName != nil && strings.TrimSpace(*input.ClientName) != "" {
		name := strings.TrimSpace(*input.ClientName)
		client, err := s.clients.GetByName(ctx, name)
		if err == nil {
			return &client.ID, nil
		}
		if errors.Is(err, repository.ErrAmbiguousMatch) {
			return nil, util.NewValidationError("client name matches multiple clients", map[string]any{"name": name})
		}
		if !util.IsNotFound(err) {
			return nil, err
		}
		created := &domain.Client{Name: name}
		if err := s.clients.Create(ctx, created); err != nil {
			return nil, err
		}
		return &created.ID, nil
	}
	return nil, nil
}

// resolveAssignee turns an assignee reference into a staff id. Assignees
// must already exist.
func (s *TicketService) resolveAssignee(ctx context.Context, input TicketCreateInput) (*int64, error) {
	if input.AssigneeID != nil {
		staff, err := s.staff.GetByID(ctx, *input.AssigneeID)
		if err != nil {
			return nil, err
		}
		return &staff.ID, nil
	}
	if input.AssigneeEmail != nil && strings.TrimSpace(*input.AssigneeEmail) != "" {
		staff, err := s.staff.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(*input.AssigneeEmail)))
		if err != nil {
			return nil, err
		}
		return &staff.ID, nil
	}
	if input.AssigneeName != nil && strings.TrimSpace(*input.AssigneeName) != "" {
		name := strings.TrimSpace(*input.AssigneeName)
		staff, err := s.staff.GetByName(ctx, name)
		if err != nil {
			if errors.Is(err, repository.ErrAmbiguousMatch) {
				return nil, util.NewValidationError("assignee name matches multiple staff", map[string]any{"name": name})
			}
			return nil, err
		}
		return &staff.ID, nil
	}
	return nil, nil
}

func (s *TicketService) resolveDepartment(ctx context.Context, input TicketCreateInput) (*int64, error) {
	if input.DepartmentID != nil {
		dept, err := s.departments.GetByID(ctx, *input.DepartmentID)
		if err != nil {
			return nil, err
		}
		return &dept.ID, nil
	}
	if input.DepartmentName != nil && strings.TrimSpace(*input.DepartmentName) != "" {
		dept, err := s.departments.GetByName(ctx, strings.TrimSpace(*input.DepartmentName))
		if err != nil {
			return nil, err
		}
		return &dept.ID, nil
	}
	return nil, nil
}

// resolveCategory requires a resolved department when the category arrives
// by name, since category names are only unique per department.
func (s *TicketService) resolveCategory(ctx context.Context, input TicketCreateInput, departmentID *int64) (*int64, error) {
	if input.CategoryID != nil {
		category, err := s.categories.GetByID(ctx, *input.CategoryID)
		if err != nil {
			return nil, err
		}
		return &category.ID, nil
	}
	if input.CategoryName != nil && strings.TrimSpace(*input.CategoryName) != "" {
		if departmentID == nil {
			return nil, util.NewValidationError("category by name requires a department", nil)
		}
		category, err := s.categories.GetByDepartmentAndName(ctx, *departmentID, strings.TrimSpace(*input.CategoryName))
		if err != nil {
			return nil, err
		}
		return &category.ID, nil
	}
	return nil, nil
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
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

func validateEnums(status *domain.TicketStatus, priority *domain.TicketPriority, channel *domain.TicketChannel) error {
	if status != nil && !status.Valid() {
		return util.NewValidationError("invalid status", map[string]any{"status": string(*status)})
	}
	if priority != nil && !priority.Valid() {
		return util.NewValidationError("invalid priority", map[string]any{"priority": string(*priority)})
	}
	if channel != nil && !channel.Valid() {
		return util.NewValidationError("invalid channel", map[string]any{"channel": string(*channel)})
	}
	return nil
}

// displayNameFor prefers the provided name and otherwise derives one from
// the local part of the email address.
func displayNameFor(name *string, email string) string {
	if name != nil && strings.TrimSpace(*name) != "" {
		return strings.TrimSpace(*name)
	}
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}

func domainOf(email string) *string {
	at := strings.Index(email, "@")
	if at < 0 || at == len(email)-1 {
		return nil
	}
	d := email[at+1:]
	return &d
}
