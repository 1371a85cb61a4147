package handlers

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/appogelardexa/ticket-triage/internal/api/dto"
	"github.com/appogelardexa/ticket-triage/internal/domain"
	"github.com/appogelardexa/ticket-triage/internal/service"
	"github.com/appogelardexa/ticket-triage/pkg/util"
)

const intakeProcessTimeout = 30 * time.Second

// IntakeHandler manages asynchronous intake jobs.
type IntakeHandler struct {
	intake  *service.IntakeService
	tickets *service.TicketService
	logger  *zap.Logger
}

// NewIntakeHandler constructs handler.
func NewIntakeHandler(intake *service.IntakeService, tickets *service.TicketService, logger *zap.Logger) *IntakeHandler {
	return &IntakeHandler{intake: intake, tickets: tickets, logger: logger}
}

// Submit POST /intake. The job record is pending before the response is
// sent; processing continues in the background, detached from the request
// context.
func (h *IntakeHandler) Submit(c *fiber.Ctx) error {
	var req dto.IntakeSubmitRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Ticket.Summary) == "" {
		return util.NewValidationError("ticket.summary required", nil)
	}

	job, err := h.intake.Submit(c.UserContext(), req.JobID)
	if err != nil {
		return err
	}

	input := createInputFrom(req.Ticket)
	attachments := req.Attachments
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), intakeProcessTimeout)
		defer cancel()
		if err := h.intake.Process(ctx, job.JobID, input, attachments); err != nil {
			h.logger.Error("intake finalize failed", zap.String("job_id", job.JobID), zap.Error(err))
		}
	}()

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"data": job})
}

// Get GET /intake/:job_id. Polling never mutates the job.
func (h *IntakeHandler) Get(c *fiber.Ctx) error {
	job, err := h.intake.Get(c.UserContext(), c.Params("job_id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": job})
}

// Complete POST /intake/:job_id/complete. Finalizes a job whose ticket was
// created out of band; already-terminal jobs are refused.
func (h *IntakeHandler) Complete(c *fiber.Ctx) error {
	var req dto.IntakeCompleteRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.TicketID) == "" {
		return util.NewValidationError("ticket_id required", nil)
	}
	ticket, err := h.tickets.GetTicket(c.UserContext(), req.TicketID)
	if err != nil {
		return err
	}
	result := &domain.IntakeResult{Ticket: *ticket, Attachments: req.Attachments}
	if err := h.intake.Complete(c.UserContext(), c.Params("job_id"), result); err != nil {
		return err
	}
	job, err := h.intake.Get(c.UserContext(), c.Params("job_id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": job})
}

// Fail POST /intake/:job_id/fail.
func (h *IntakeHandler) Fail(c *fiber.Ctx) error {
	var req dto.IntakeFailRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Message) == "" {
		return util.NewValidationError("message required", nil)
	}
	detail := &domain.IntakeError{Message: req.Message, Code: req.Code}
	if err := h.intake.Fail(c.UserContext(), c.Params("job_id"), detail); err != nil {
		return err
	}
	job, err := h.intake.Get(c.UserContext(), c.Params("job_id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": job})
}
