package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/appogelardexa/ticket-triage/internal/api/dto"
	"github.com/appogelardexa/ticket-triage/internal/service"
)

// HistoryHandler exposes audit transition chains.
type HistoryHandler struct {
	service *service.TicketService
}

// NewHistoryHandler constructs handler.
func NewHistoryHandler(ticketService *service.TicketService) *HistoryHandler {
	return &HistoryHandler{service: ticketService}
}

// StatusHistory GET /history/status/:ticket_id.
func (h *HistoryHandler) StatusHistory(c *fiber.Ctx) error {
	ticketID := c.Params("ticket_id")
	transitions, err := h.service.StatusHistory(c.UserContext(), ticketID, c.Query("order", "asc") == "desc")
	if err != nil {
		return err
	}
	return c.JSON(dto.StatusHistoryResponse{TicketID: ticketID, Data: transitions})
}

// PriorityHistory GET /history/priority/:ticket_id.
func (h *HistoryHandler) PriorityHistory(c *fiber.Ctx) error {
	ticketID := c.Params("ticket_id")
	transitions, err := h.service.PriorityHistory(c.UserContext(), ticketID, c.Query("order", "asc") == "desc")
	if err != nil {
		return err
	}
	return c.JSON(dto.PriorityHistoryResponse{TicketID: ticketID, Data: transitions})
}
