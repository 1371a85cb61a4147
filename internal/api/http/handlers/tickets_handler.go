package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/appogelardexa/ticket-triage/internal/api/dto"
	"github.com/appogelardexa/ticket-triage/internal/repository"
	"github.com/appogelardexa/ticket-triage/internal/service"
	"github.com/appogelardexa/ticket-triage/pkg/util"
)

// TicketsHandler manages ticket endpoints.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// CreateTicket POST /tickets.
func (h *TicketsHandler) CreateTicket(c *fiber.Ctx) error {
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Summary) == "" {
		return util.NewValidationError("summary required", nil)
	}

	ticket, err := h.service.CreateTicket(c.UserContext(), createInputFrom(req))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": ticket})
}

// GetTicket GET /tickets/:ticket_id.
func (h *TicketsHandler) GetTicket(c *fiber.Ctx) error {
	ticket, err := h.service.GetTicket(c.UserContext(), c.Params("ticket_id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticket})
}

// UpdateTicket PATCH /tickets/:ticket_id.
func (h *TicketsHandler) UpdateTicket(c *fiber.Ctx) error {
	var req dto.UpdateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	input := service.TicketUpdateInput{
		Summary:      req.Summary,
		Status:       req.Status,
		Priority:     req.Priority,
		Channel:      req.Channel,
		Subject:      req.Subject,
		EmailBody:    req.EmailBody,
		MessageID:    req.MessageID,
		ThreadID:     req.ThreadID,
		ClientID:     req.ClientID,
		AssigneeID:   req.AssigneeID,
		DepartmentID: req.DepartmentID,
		CategoryID:   req.CategoryID,
	}
	ticket, err := h.service.UpdateTicket(c.UserContext(), c.Params("ticket_id"), input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticket})
}

// DeleteTicket DELETE /tickets/:ticket_id.
func (h *TicketsHandler) DeleteTicket(c *fiber.Ctx) error {
	if err := h.service.DeleteTicket(c.UserContext(), c.Params("ticket_id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListTickets GET /tickets.
func (h *TicketsHandler) ListTickets(c *fiber.Ctx) error {
	filter := parseListFilter(c)
	tickets, total, err := h.service.ListTickets(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return c.JSON(dto.TicketPage{
		Data:       tickets,
		Total:      total,
		NextOffset: dto.NextOffset(filter.Offset, len(tickets), total),
	})
}

// ListByEmail GET /tickets/by-email?email=...&scope=client|assignee|any.
func (h *TicketsHandler) ListByEmail(c *fiber.Ctx) error {
	filter := parseListFilter(c)
	scope := service.EmailScope(c.Query("scope", string(service.ScopeClient)))
	tickets, total, err := h.service.ListByEmail(c.UserContext(), c.Query("email"), scope, filter)
	if err != nil {
		return err
	}
	return c.JSON(dto.TicketPage{
		Data:       tickets,
		Total:      total,
		NextOffset: dto.NextOffset(filter.Offset, len(tickets), total),
	})
}

// ListByClientName GET /tickets/by-client-name?name=...&match=exact|contains.
func (h *TicketsHandler) ListByClientName(c *fiber.Ctx) error {
	filter := parseListFilter(c)
	match := c.Query("match", "contains")
	if match != "exact" && match != "contains" {
		return util.NewValidationError("invalid match mode", map[string]any{"match": match})
	}
	tickets, total, err := h.service.ListByClientName(c.UserContext(), c.Query("name"), match == "exact", filter)
	if err != nil {
		return err
	}
	return c.JSON(dto.TicketPage{
		Data:       tickets,
		Total:      total,
		NextOffset: dto.NextOffset(filter.Offset, len(tickets), total),
	})
}

// FilterDetailed GET /tickets/filter.
func (h *TicketsHandler) FilterDetailed(c *fiber.Ctx) error {
	filter := repository.DetailedFilter{
		NewestFirst: c.Query("order", "desc") != "asc",
		Limit:       c.QueryInt("limit", 50),
	}
	var err error
	if filter.ClientID, err = queryInt64(c, "client_id"); err != nil {
		return err
	}
	if filter.AssigneeID, err = queryInt64(c, "assignee_id"); err != nil {
		return err
	}
	if filter.DepartmentID, err = queryInt64(c, "department_id"); err != nil {
		return err
	}
	if filter.CategoryID, err = queryInt64(c, "category_id"); err != nil {
		return err
	}
	if filter.CompanyID, err = queryInt64(c, "company_id"); err != nil {
		return err
	}
	tickets, total, err := h.service.FilterDetailed(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return c.JSON(dto.DetailedPage{Data: tickets, Total: total})
}

func parseListFilter(c *fiber.Ctx) service.TicketListFilter {
	return service.TicketListFilter{
		NewestFirst: c.Query("order", "desc") != "asc",
		Limit:       c.QueryInt("limit", 50),
		Offset:      c.QueryInt("offset", 0),
	}
}

// queryInt64 reads an optional integer query parameter. A value that does
// not parse is a caller error, never a silently dropped filter.
func queryInt64(c *fiber.Ctx, key string) (*int64, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	val, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, util.NewValidationError("invalid "+key, map[string]any{key: raw})
	}
	return &val, nil
}

func createInputFrom(req dto.CreateTicketRequest) service.TicketCreateInput {
	return service.TicketCreateInput{
		Summary:        req.Summary,
		Subject:        req.Subject,
		EmailBody:      req.EmailBody,
		MessageID:      req.MessageID,
		ThreadID:       req.ThreadID,
		Status:         req.Status,
		Priority:       req.Priority,
		Channel:        req.Channel,
		ClientID:       req.ClientID,
		ClientEmail:    req.ClientEmail,
		ClientName:     req.ClientName,
		AssigneeID:     req.AssigneeID,
		AssigneeEmail:  req.AssigneeEmail,
		AssigneeName:   req.AssigneeName,
		DepartmentID:   req.DepartmentID,
		DepartmentName: req.DepartmentName,
		CategoryID:     req.CategoryID,
		CategoryName:   req.CategoryName,
	}
}
