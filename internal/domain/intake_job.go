package domain

import "time"

// IntakeJobStatus tracks an asynchronous ticket intake job. Status moves
// pending -> completed|error exactly once; terminal jobs are immutable.
type IntakeJobStatus string

const (
	JobPending   IntakeJobStatus = "pending"
	JobCompleted IntakeJobStatus = "completed"
	JobError     IntakeJobStatus = "error"
)

// Terminal reports whether the status admits no further transitions.
func (s IntakeJobStatus) Terminal() bool {
	return s == JobCompleted || s == JobError
}

// AttachmentReference points at a stored attachment. File bytes live in
// external storage; only the reference is recorded here.
type AttachmentReference struct {
	ID       string `json:"id"`
	FileName string `json:"filename"`
	URL      string `json:"url"`
}

// IntakeResult is the payload attached to a completed job.
type IntakeResult struct {
	Ticket      FormattedTicket       `json:"ticket"`
	Attachments []AttachmentReference `json:"attachments"`
}

// IntakeError is the caller-safe failure detail attached to an errored job.
// Raw internal errors are never stored here.
type IntakeError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// IntakeJob is the pollable record for one asynchronous ticket creation.
// Result and Error are mutually exclusive; both are nil while pending.
type IntakeJob struct {
	JobID     string          `json:"job_id"`
	Status    IntakeJobStatus `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
	Result    *IntakeResult   `json:"result"`
	Error     *IntakeError    `json:"error"`
}
