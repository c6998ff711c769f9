package request

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Request represents a social-assistance application moving through the workflow
type Request struct {
	ID              string    `json:"id"`
	ApplicantID     string    `json:"applicant_id"`
	Status          Status    `json:"status"`
	Category        Category  `json:"category"`
	Urgency         Urgency   `json:"urgency"`
	Priority        Priority  `json:"priority,omitempty"`
	RequestedAmount float64   `json:"requested_amount"`
	ApprovedAmount  *float64  `json:"approved_amount,omitempty"`
	AssignedTo      string    `json:"assigned_to,omitempty"`
	SubmittedAt     time.Time `json:"submitted_at,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// New creates a draft request owned by the applicant
func New(applicantID string, category Category, urgency Urgency, amount float64) *Request {
	now := time.Now()
	return &Request{
		ID:              uuid.NewString(),
		ApplicantID:     applicantID,
		Status:          StatusDraft,
		Category:        category,
		Urgency:         urgency,
		RequestedAmount: amount,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// approvedAmountStatuses are the only statuses in which an approved amount may be set
var approvedAmountStatuses = map[Status]bool{
	StatusApproved:      true,
	StatusPartiallyPaid: true,
	StatusPaid:          true,
}

// Validate checks the structural invariants of the request
func (r *Request) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("request id is required")
	}
	if r.ApplicantID == "" {
		return fmt.Errorf("applicant reference is required")
	}
	if !r.Status.IsValid() {
		return fmt.Errorf("unknown status: %q", r.Status)
	}
	if !r.Category.IsValid() {
		return fmt.Errorf("unknown category: %q", r.Category)
	}
	if !r.Urgency.IsValid() {
		return fmt.Errorf("unknown urgency: %q", r.Urgency)
	}
	if r.Priority != "" && !r.Priority.IsValid() {
		return fmt.Errorf("unknown priority: %q", r.Priority)
	}
	if r.RequestedAmount <= 0 {
		return fmt.Errorf("requested amount must be positive: %.2f", r.RequestedAmount)
	}
	if r.ApprovedAmount != nil {
		if !approvedAmountStatuses[r.Status] {
			return fmt.Errorf("approved amount is not allowed in status %s", r.Status)
		}
		if *r.ApprovedAmount <= 0 {
			return fmt.Errorf("approved amount must be positive: %.2f", *r.ApprovedAmount)
		}
		if *r.ApprovedAmount > r.RequestedAmount {
			return fmt.Errorf("approved amount %.2f exceeds requested amount %.2f", *r.ApprovedAmount, r.RequestedAmount)
		}
	}
	return nil
}

// TransitionRecord represents one audit-trail entry for a status change
type TransitionRecord struct {
	RequestID      string    `json:"request_id"`
	ActorID        string    `json:"actor_id"`
	Role           Role      `json:"role"`
	Action         Action    `json:"action"`
	PreviousStatus Status    `json:"previous_status"`
	NewStatus      Status    `json:"new_status"`
	Reason         string    `json:"reason,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}
