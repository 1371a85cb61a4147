package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/appogelardexa/ticket-triage/internal/domain"
	"github.com/appogelardexa/ticket-triage/pkg/util"
)

// MemoryStore implements every repository interface against in-process
// maps. It backs tests and DSN-less development runs with the same
// semantics as the SQL store: one mutex serializes all writers (a stricter
// discipline than the per-ticket row locks, but observationally identical),
// reads run under the shared lock, and a ticket mutation plus its audit
// appends commit together or not at all.
type MemoryStore struct {
	mu          sync.RWMutex
	tickets     map[int64]domain.Ticket
	byCode      map[string]int64
	statusLog   map[int64][]domain.StatusTransition
	priorityLog map[int64][]domain.PriorityTransition
	clients     map[int64]domain.Client
	staff       map[int64]domain.Staff
	departments map[int64]domain.Department
	categories  map[int64]domain.Category
	companies   map[int64]domain.Company
	jobs        map[string]domain.IntakeJob
	seq         map[string]int64
	nextCode    int64
}

// NewMemoryStore initializes an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tickets:     make(map[int64]domain.Ticket),
		byCode:      make(map[string]int64),
		statusLog:   make(map[int64][]domain.StatusTransition),
		priorityLog: make(map[int64][]domain.PriorityTransition),
		clients:     make(map[int64]domain.Client),
		staff:       make(map[int64]domain.Staff),
		departments: make(map[int64]domain.Department),
		categories:  make(map[int64]domain.Category),
		companies:   make(map[int64]domain.Company),
		jobs:        make(map[string]domain.IntakeJob),
		seq:         make(map[string]int64),
		nextCode:    1000,
	}
}

func (s *MemoryStore) nextID(table string) int64 {
	s.seq[table]++
	return s.seq[table]
}

// --- TicketRepository ---

func (s *MemoryStore) Create(ctx context.Context, ticket *domain.Ticket) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	s.nextCode++
	ticket.ID = s.nextID("tickets")
	ticket.TicketID = fmt.Sprintf("TCK-%06d", s.nextCode)
	ticket.CreatedAt = now
	ticket.UpdatedAt = now

	s.tickets[ticket.ID] = *ticket
	s.byCode[ticket.TicketID] = ticket.ID

	s.statusLog[ticket.ID] = append(s.statusLog[ticket.ID], domain.StatusTransition{
		ID:        s.nextID("status_history"),
		TicketID:  ticket.TicketID,
		ToStatus:  ticket.Status,
		ChangedAt: now,
	})
	s.priorityLog[ticket.ID] = append(s.priorityLog[ticket.ID], domain.PriorityTransition{
		ID:         s.nextID("priority_history"),
		TicketID:   ticket.TicketID,
		ToPriority: ticket.Priority,
		ChangedAt:  now,
	})
	return nil
}

func (s *MemoryStore) Update(ctx context.Context, ticketID string, patch TicketPatch) (*TicketUpdate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.byCode[ticketID]
	if !ok {
		return nil, util.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
	}
	ticket := s.tickets[id]
	oldStatus := ticket.Status
	oldPriority := ticket.Priority

	if patch.Summary != nil {
		ticket.Summary = *patch.Summary
	}
	if patch.Status != nil {
		ticket.Status = *patch.Status
	}
	if patch.Priority != nil {
		ticket.Priority = *patch.Priority
	}
	if patch.Channel != nil {
		ticket.Channel = *patch.Channel
	}
	if patch.Subject != nil {
		ticket.Subject = patch.Subject
	}
	if patch.EmailBody != nil {
		ticket.EmailBody = patch.EmailBody
	}
	if patch.MessageID != nil {
		ticket.MessageID = patch.MessageID
	}
	if patch.ThreadID != nil {
		ticket.ThreadID = patch.ThreadID
	}
	if patch.ClientID != nil {
		ticket.ClientID = patch.ClientID
	}
	if patch.AssigneeID != nil {
		ticket.AssigneeID = patch.AssigneeID
	}
	if patch.DepartmentID != nil {
		ticket.DepartmentID = patch.DepartmentID
	}
	if patch.CategoryID != nil {
		ticket.CategoryID = patch.CategoryID
	}
	ticket.UpdatedAt = time.Now().UTC()

	if ticket.Status != oldStatus {
		from := oldStatus
		s.statusLog[id] = append(s.statusLog[id], domain.StatusTransition{
			ID:         s.nextID("status_history"),
			TicketID:   ticket.TicketID,
			FromStatus: &from,
			ToStatus:   ticket.Status,
			ChangedAt:  ticket.UpdatedAt,
		})
	}
	if ticket.Priority != oldPriority {
		from := oldPriority
		s.priorityLog[id] = append(s.priorityLog[id], domain.PriorityTransition{
			ID:           s.nextID("priority_history"),
			TicketID:     ticket.TicketID,
			FromPriority: &from,
			ToPriority:   ticket.Priority,
			ChangedAt:    ticket.UpdatedAt,
		})
	}

	s.tickets[id] = ticket
	result := ticket
	return &TicketUpdate{Ticket: &result, OldStatus: oldStatus, OldPriority: oldPriority}, nil
}

func (s *MemoryStore) GetByTicketID(ctx context.Context, ticketID string) (*domain.Ticket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byCode[ticketID]
	if !ok {
		return nil, util.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
	}
	ticket := s.tickets[id]
	return &ticket, nil
}

func (s *MemoryStore) Delete(ctx context.Context, ticketID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.byCode[ticketID]
	if !ok {
		return util.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
	}
	delete(s.tickets, id)
	delete(s.byCode, ticketID)
	// cascade
	delete(s.statusLog, id)
	delete(s.priorityLog, id)
	return nil
}

// --- TransitionRepository ---

func (s *MemoryStore) ListStatus(ctx context.Context, ticketID string, newestFirst bool) ([]domain.StatusTransition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byCode[ticketID]
	if !ok {
		return []domain.StatusTransition{}, nil
	}
	result := append([]domain.StatusTransition{}, s.statusLog[id]...)
	sort.Slice(result, func(i, j int) bool {
		if newestFirst {
			i, j = j, i
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (s *MemoryStore) ListPriority(ctx context.Context, ticketID string, newestFirst bool) ([]domain.PriorityTransition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byCode[ticketID]
	if !ok {
		return []domain.PriorityTransition{}, nil
	}
	result := append([]domain.PriorityTransition{}, s.priorityLog[id]...)
	sort.Slice(result, func(i, j int) bool {
		if newestFirst {
			i, j = j, i
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

// --- TicketViewRepository ---

func (s *MemoryStore) GetFormatted(ctx context.Context, ticketID string) (*domain.FormattedTicket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byCode[ticketID]
	if !ok {
		return nil, util.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
	}
	view := s.project(s.tickets[id])
	return &view.FormattedTicket, nil
}

func (s *MemoryStore) ListFormatted(ctx context.Context, filter FormattedFilter) ([]domain.FormattedTicket, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := []domain.DetailedTicket{}
	for _, ticket := range s.tickets {
		view := s.project(ticket)
		if filter.ClientEmail != nil && !strEq(view.ClientEmail, *filter.ClientEmail) {
			continue
		}
		if filter.AssigneeEmail != nil && !strEq(view.AssigneeEmail, *filter.AssigneeEmail) {
			continue
		}
		if filter.AnyEmail != nil && !strEq(view.ClientEmail, *filter.AnyEmail) && !strEq(view.AssigneeEmail, *filter.AnyEmail) {
			continue
		}
		if filter.ClientName != nil {
			if view.ClientName == nil {
				continue
			}
			if filter.ClientNameExact {
				if *view.ClientName != *filter.ClientName {
					continue
				}
			} else if !strings.Contains(strings.ToLower(*view.ClientName), strings.ToLower(*filter.ClientName)) {
				continue
			}
		}
		matched = append(matched, view)
	}
	sortViews(matched, filter.NewestFirst)

	total := int64(len(matched))
	matched = pageOf(matched, filter.Limit, filter.Offset)
	result := make([]domain.FormattedTicket, 0, len(matched))
	for _, view := range matched {
		result = append(result, view.FormattedTicket)
	}
	return result, total, nil
}

func (s *MemoryStore) ListDetailed(ctx context.Context, filter DetailedFilter) ([]domain.DetailedTicket, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := []domain.DetailedTicket{}
	for _, ticket := range s.tickets {
		view := s.project(ticket)
		if filter.ClientID != nil && !idEq(view.ClientID, *filter.ClientID) {
			continue
		}
		if filter.AssigneeID != nil && !idEq(view.AssigneeID, *filter.AssigneeID) {
			continue
		}
		if filter.DepartmentID != nil && !idEq(view.DepartmentID, *filter.DepartmentID) {
			continue
		}
		if filter.CategoryID != nil && !idEq(view.CategoryID, *filter.CategoryID) {
			continue
		}
		if filter.CompanyID != nil && !idEq(view.CompanyID, *filter.CompanyID) {
			continue
		}
		matched = append(matched, view)
	}
	sortViews(matched, filter.NewestFirst)

	total := int64(len(matched))
	matched = pageOf(matched, filter.Limit, 0)
	return matched, total, nil
}

// project computes the detailed view for one ticket. The company fields are
// always derived through the resolved client.
func (s *MemoryStore) project(ticket domain.Ticket) domain.DetailedTicket {
	view := domain.DetailedTicket{
		FormattedTicket: domain.FormattedTicket{
			ID:        ticket.ID,
			TicketID:  ticket.TicketID,
			Status:    ticket.Status,
			Priority:  ticket.Priority,
			Channel:   ticket.Channel,
			Summary:   ticket.Summary,
			Subject:   ticket.Subject,
			Body:      ticket.EmailBody,
			MessageID: ticket.MessageID,
			ThreadID:  ticket.ThreadID,
			CreatedAt: ticket.CreatedAt,
			UpdatedAt: ticket.UpdatedAt,
		},
		ClientID:     ticket.ClientID,
		AssigneeID:   ticket.AssigneeID,
		DepartmentID: ticket.DepartmentID,
		CategoryID:   ticket.CategoryID,
	}
	if ticket.ClientID != nil {
		if client, ok := s.clients[*ticket.ClientID]; ok {
			view.ClientName = &client.Name
			view.ClientEmail = client.Email
			view.CompanyID = client.CompanyID
			if client.CompanyID != nil {
				if company, ok := s.companies[*client.CompanyID]; ok {
					view.CompanyName = &company.Name
				}
			}
		}
	}
	if ticket.AssigneeID != nil {
		if staff, ok := s.staff[*ticket.AssigneeID]; ok {
			view.AssigneeName = &staff.Name
			view.AssigneeEmail = &staff.Email
		}
	}
	if ticket.DepartmentID != nil {
		if dept, ok := s.departments[*ticket.DepartmentID]; ok {
			view.DepartmentName = &dept.Name
		}
	}
	if ticket.CategoryID != nil {
		if category, ok := s.categories[*ticket.CategoryID]; ok {
			view.CategoryName = &category.Name
		}
	}
	return view
}

func sortViews(views []domain.DetailedTicket, newestFirst bool) {
	sort.Slice(views, func(i, j int) bool {
		if newestFirst {
			i, j = j, i
		}
		if views[i].CreatedAt.Equal(views[j].CreatedAt) {
			return views[i].ID < views[j].ID
		}
		return views[i].CreatedAt.Before(views[j].CreatedAt)
	})
}

func pageOf[T any](items []T, limit, offset int) []T {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []T{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

func strEq(val *string, want string) bool {
	return val != nil && *val == want
}

func idEq(val *int64, want int64) bool {
	return val != nil && *val == want
}

// --- ClientRepository ---

func (s *MemoryStore) CreateClient(ctx context.Context, client *domain.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	client.ID = s.nextID("clients")
	client.CreatedAt = time.Now().UTC()
	s.clients[client.ID] = *client
	return nil
}

func (s *MemoryStore) GetClientByID(ctx context.Context, id int64) (*domain.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	client, ok := s.clients[id]
	if !ok {
		return nil, util.NewNotFound("client", map[string]any{"id": id})
	}
	return &client, nil
}

func (s *MemoryStore) GetClientByEmail(ctx context.Context, email string) (*domain.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, client := range s.clients {
		if client.Email != nil && *client.Email == email {
			match := client
			return &match, nil
		}
	}
	return nil, util.NewNotFound("client", map[string]any{"email": email})
}

func (s *MemoryStore) GetClientByName(ctx context.Context, name string) (*domain.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var found *domain.Client
	for _, client := range s.clients {
		if client.Name == name {
			if found != nil {
				return nil, ErrAmbiguousMatch
			}
			match := client
			found = &match
		}
	}
	if found == nil {
		return nil, util.NewNotFound("client", map[string]any{"name": name})
	}
	return found, nil
}

func (s *MemoryStore) ListClients(ctx context.Context, limit, offset int) ([]domain.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Client, 0, len(s.clients))
	for _, client := range s.clients {
		result = append(result, client)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return pageOf(result, limit, offset), nil
}

func (s *MemoryStore) DeleteClient(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clients[id]; !ok {
		return util.NewNotFound("client", map[string]any{"id": id})
	}
	delete(s.clients, id)
	return nil
}

// --- StaffRepository ---

func (s *MemoryStore) CreateStaff(ctx context.Context, staff *domain.Staff) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if staff.Status == "" {
		staff.Status = domain.StaffActive
	}
	staff.ID = s.nextID("internal_staff")
	staff.CreatedAt = time.Now().UTC()
	s.staff[staff.ID] = *staff
	return nil
}

func (s *MemoryStore) GetStaffByID(ctx context.Context, id int64) (*domain.Staff, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	staff, ok := s.staff[id]
	if !ok {
		return nil, util.NewNotFound("staff", map[string]any{"id": id})
	}
	return &staff, nil
}

func (s *MemoryStore) GetStaffByEmail(ctx context.Context, email string) (*domain.Staff, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, staff := range s.staff {
		if staff.Email == email {
			match := staff
			return &match, nil
		}
	}
	return nil, util.NewNotFound("staff", map[string]any{"email": email})
}

func (s *MemoryStore) GetStaffByName(ctx context.Context, name string) (*domain.Staff, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var found *domain.Staff
	for _, staff := range s.staff {
		if staff.Name == name {
			if found != nil {
				return nil, ErrAmbiguousMatch
			}
			match := staff
			found = &match
		}
	}
	if found == nil {
		return nil, util.NewNotFound("staff", map[string]any{"name": name})
	}
	return found, nil
}

func (s *MemoryStore) ListStaff(ctx context.Context, limit, offset int) ([]domain.Staff, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Staff, 0, len(s.staff))
	for _, staff := range s.staff {
		result = append(result, staff)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return pageOf(result, limit, offset), nil
}

func (s *MemoryStore) SetStaffStatus(ctx context.Context, id int64, status domain.StaffStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	staff, ok := s.staff[id]
	if !ok {
		return util.NewNotFound("staff", map[string]any{"id": id})
	}
	staff.Status = status
	s.staff[id] = staff
	return nil
}

// --- DepartmentRepository / CategoryRepository / CompanyRepository ---

func (s *MemoryStore) CreateDepartment(ctx context.Context, dept *domain.Department) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	dept.ID = s.nextID("departments")
	dept.CreatedAt = time.Now().UTC()
	s.departments[dept.ID] = *dept
	return nil
}

func (s *MemoryStore) GetDepartmentByID(ctx context.Context, id int64) (*domain.Department, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	dept, ok := s.departments[id]
	if !ok {
		return nil, util.NewNotFound("department", map[string]any{"id": id})
	}
	return &dept, nil
}

func (s *MemoryStore) GetDepartmentByName(ctx context.Context, name string) (*domain.Department, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, dept := range s.departments {
		if dept.Name == name {
			match := dept
			return &match, nil
		}
	}
	return nil, util.NewNotFound("department", map[string]any{"name": name})
}

func (s *MemoryStore) ListDepartments(ctx context.Context) ([]domain.Department, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Department, 0, len(s.departments))
	for _, dept := range s.departments {
		result = append(result, dept)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (s *MemoryStore) CreateCategory(ctx context.Context, category *domain.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	category.ID = s.nextID("categories")
	category.CreatedAt = time.Now().UTC()
	s.categories[category.ID] = *category
	return nil
}

func (s *MemoryStore) GetCategoryByID(ctx context.Context, id int64) (*domain.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	category, ok := s.categories[id]
	if !ok {
		return nil, util.NewNotFound("category", map[string]any{"id": id})
	}
	return &category, nil
}

func (s *MemoryStore) GetCategoryByDepartmentAndName(ctx context.Context, departmentID int64, name string) (*domain.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, category := range s.categories {
		if category.DepartmentID == departmentID && category.Name == name {
			match := category
			return &match, nil
		}
	}
	return nil, util.NewNotFound("category", map[string]any{"department_id": departmentID, "name": name})
}

func (s *MemoryStore) ListCategoriesByDepartment(ctx context.Context, departmentID int64) ([]domain.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := []domain.Category{}
	for _, category := range s.categories {
		if category.DepartmentID == departmentID {
			result = append(result, category)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (s *MemoryStore) CreateCompany(ctx context.Context, company *domain.Company) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	company.ID = s.nextID("companies")
	company.CreatedAt = time.Now().UTC()
	s.companies[company.ID] = *company
	return nil
}

func (s *MemoryStore) GetCompanyByID(ctx context.Context, id int64) (*domain.Company, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	company, ok := s.companies[id]
	if !ok {
		return nil, util.NewNotFound("company", map[string]any{"id": id})
	}
	return &company, nil
}

func (s *MemoryStore) ListCompanies(ctx context.Context) ([]domain.Company, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Company, 0, len(s.companies))
	for _, company := range s.companies {
		result = append(result, company)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// --- IntakeJobRepository ---

func (s *MemoryStore) CreateJob(ctx context.Context, job *domain.IntakeJob) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.jobs[job.JobID]; exists {
		return util.NewConflict("intake job already exists", map[string]any{"job_id": job.JobID})
	}
	if job.Status == "" {
		job.Status = domain.JobPending
	}
	if job.CreatedAt.IsZero() {
		job.CreatedAt = time.Now().UTC()
	}
	s.jobs[job.JobID] = *job
	return nil
}

func (s *MemoryStore) GetJob(ctx context.Context, jobID string) (*domain.IntakeJob, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	job, ok := s.jobs[jobID]
	if !ok {
		return nil, util.NewNotFound("intake job", map[string]any{"job_id": jobID})
	}
	return &job, nil
}

func (s *MemoryStore) CompleteJob(ctx context.Context, jobID string, result *domain.IntakeResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[jobID]
	if !ok {
		return util.NewNotFound("intake job", map[string]any{"job_id": jobID})
	}
	if job.Status.Terminal() {
		return util.NewConflict("intake job already finalized", map[string]any{"job_id": jobID})
	}
	job.Status = domain.JobCompleted
	job.Result = result
	s.jobs[jobID] = job
	return nil
}

func (s *MemoryStore) FailJob(ctx context.Context, jobID string, detail *domain.IntakeError) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[jobID]
	if !ok {
		return util.NewNotFound("intake job", map[string]any{"job_id": jobID})
	}
	if job.Status.Terminal() {
		return util.NewConflict("intake job already finalized", map[string]any{"job_id": jobID})
	}
	job.Status = domain.JobError
	job.Error = detail
	s.jobs[jobID] = job
	return nil
}

// --- interface views ---
//
// The store exposes one method set per entity, so the per-entity repository
// interfaces (whose method names overlap) are satisfied through thin views.

// Clients returns the ClientRepository view of the store.
func (s *MemoryStore) Clients() ClientRepository { return memoryClients{s} }

// Staff returns the StaffRepository view of the store.
func (s *MemoryStore) Staff() StaffRepository { return memoryStaff{s} }

// Departments returns the DepartmentRepository view of the store.
func (s *MemoryStore) Departments() DepartmentRepository { return memoryDepartments{s} }

// Categories returns the CategoryRepository view of the store.
func (s *MemoryStore) Categories() CategoryRepository { return memoryCategories{s} }

// Companies returns the CompanyRepository view of the store.
func (s *MemoryStore) Companies() CompanyRepository { return memoryCompanies{s} }

// Jobs returns the IntakeJobRepository view of the store.
func (s *MemoryStore) Jobs() IntakeJobRepository { return memoryJobs{s} }

type memoryClients struct{ store *MemoryStore }

func (v memoryClients) Create(ctx context.Context, client *domain.Client) error {
	return v.store.CreateClient(ctx, client)
}

func (v memoryClients) GetByID(ctx context.Context, id int64) (*domain.Client, error) {
	return v.store.GetClientByID(ctx, id)
}

func (v memoryClients) GetByEmail(ctx context.Context, email string) (*domain.Client, error) {
	return v.store.GetClientByEmail(ctx, email)
}

func (v memoryClients) GetByName(ctx context.Context, name string) (*domain.Client, error) {
	return v.store.GetClientByName(ctx, name)
}

func (v memoryClients) List(ctx context.Context, limit, offset int) ([]domain.Client, error) {
	return v.store.ListClients(ctx, limit, offset)
}

func (v memoryClients) Delete(ctx context.Context, id int64) error {
	return v.store.DeleteClient(ctx, id)
}

type memoryStaff struct{ store *MemoryStore }

func (v memoryStaff) Create(ctx context.Context, staff *domain.Staff) error {
	return v.store.CreateStaff(ctx, staff)
}

func (v memoryStaff) GetByID(ctx context.Context, id int64) (*domain.Staff, error) {
	return v.store.GetStaffByID(ctx, id)
}

func (v memoryStaff) GetByEmail(ctx context.Context, email string) (*domain.Staff, error) {
	return v.store.GetStaffByEmail(ctx, email)
}

func (v memoryStaff) GetByName(ctx context.Context, name string) (*domain.Staff, error) {
	return v.store.GetStaffByName(ctx, name)
}

func (v memoryStaff) List(ctx context.Context, limit, offset int) ([]domain.Staff, error) {
	return v.store.ListStaff(ctx, limit, offset)
}

func (v memoryStaff) SetStatus(ctx context.Context, id int64, status domain.StaffStatus) error {
	return v.store.SetStaffStatus(ctx, id, status)
}

type memoryDepartments struct{ store *MemoryStore }

func (v memoryDepartments) Create(ctx context.Context, dept *domain.Department) error {
	return v.store.CreateDepartment(ctx, dept)
}

func (v memoryDepartments) GetByID(ctx context.Context, id int64) (*domain.Department, error) {
	return v.store.GetDepartmentByID(ctx, id)
}

func (v memoryDepartments) GetByName(ctx context.Context, name string) (*domain.Department, error) {
	return v.store.GetDepartmentByName(ctx, name)
}

func (v memoryDepartments) List(ctx context.Context) ([]domain.Department, error) {
	return v.store.ListDepartments(ctx)
}

type memoryCategories struct{ store *MemoryStore }

func (v memoryCategories) Create(ctx context.Context, category *domain.Category) error {
	return v.store.CreateCategory(ctx, category)
}

func (v memoryCategories) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	return v.store.GetCategoryByID(ctx, id)
}

func (v memoryCategories) GetByDepartmentAndName(ctx context.Context, departmentID int64, name string) (*domain.Category, error) {
	return v.store.GetCategoryByDepartmentAndName(ctx, departmentID, name)
}

func (v memoryCategories) ListByDepartment(ctx context.Context, departmentID int64) ([]domain.Category, error) {
	return v.store.ListCategoriesByDepartment(ctx, departmentID)
}

type memoryCompanies struct{ store *MemoryStore }

func (v memoryCompanies) Create(ctx context.Context, company *domain.Company) error {
	return v.store.CreateCompany(ctx, company)
}

func (v memoryCompanies) GetByID(ctx context.Context, id int64) (*domain.Company, error) {
	return v.store.GetCompanyByID(ctx, id)
}

func (v memoryCompanies) List(ctx context.Context) ([]domain.Company, error) {
	return v.store.ListCompanies(ctx)
}

type memoryJobs struct{ store *MemoryStore }

func (v memoryJobs) Create(ctx context.Context, job *domain.IntakeJob) error {
	return v.store.CreateJob(ctx, job)
}

func (v memoryJobs) Get(ctx context.Context, jobID string) (*domain.IntakeJob, error) {
	return v.store.GetJob(ctx, jobID)
}

func (v memoryJobs) Complete(ctx context.Context, jobID string, result *domain.IntakeResult) error {
	return v.store.CompleteJob(ctx, jobID, result)
}

func (v memoryJobs) Fail(ctx context.Context, jobID string, detail *domain.IntakeError) error {
	return v.store.FailJob(ctx, jobID, detail)
}
