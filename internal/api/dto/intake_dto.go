package dto

import (
	"github.com/appogelardexa/ticket-triage/internal/domain"
)

// IntakeSubmitRequest registers an intake job and carries the ticket
// payload to process. JobID is optional; the service generates one when
// absent.
type IntakeSubmitRequest struct {
	JobID       string                       `json:"job_id"`
	Ticket      CreateTicketRequest          `json:"ticket"`
	Attachments []domain.AttachmentReference `json:"attachments"`
}

// IntakeCompleteRequest finalizes a job with a successful outcome produced
// out of band. TicketID references the ticket created by the worker.
type IntakeCompleteRequest struct {
	TicketID    string                       `json:"ticket_id"`
	Attachments []domain.AttachmentReference `json:"attachments"`
}

// IntakeFailRequest finalizes a job with an error outcome.
type IntakeFailRequest struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}
