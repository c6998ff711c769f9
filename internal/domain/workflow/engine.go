package workflow

import (
	"errors"
	"time"

	"github.com/aidcase/workflow/internal/domain/request"
)

// TransitionData carries the supporting values a transition may require
type TransitionData struct {
	ApprovedAmount     *float64
	AssignedTo         string
	RejectionCategory  string
	RejectionReason    string
	CancellationReason string
}

// Outcome describes the request state the caller should persist after a valid transition.
// The engine never persists anything itself.
type Outcome struct {
	Status         request.Status
	ApprovedAmount *float64
	AssignedTo     string
	SubmittedAt    time.Time
	UpdatedAt      time.Time
	Deadline       time.Time
	Overdue        bool
}

// Engine validates status transitions against the transition table, the
// permission policy and the data-completeness rules, in that order, and
// computes the derived fields of the resulting state
type Engine struct {
	catalog *StatusCatalog
	table   *TransitionTable
	policy  *PermissionPolicy
	sla     *SLACalculator
	now     func() time.Time
}

// EngineOption configures the engine
type EngineOption func(*Engine)

// WithEngineNow overrides the engine clock, primarily for tests
func WithEngineNow(now func() time.Time) EngineOption {
	return func(e *Engine) {
		e.now = now
	}
}

// NewEngine wires the lifecycle components into a single decision point
func NewEngine(catalog *StatusCatalog, table *TransitionTable, policy *PermissionPolicy, sla *SLACalculator, opts ...EngineOption) *Engine {
	e := &Engine{
		catalog: catalog,
		table:   table,
		policy:  policy,
		sla:     sla,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// AttemptTransition checks legality first, then permission, then data completeness,
// so the caller always learns the most fundamental objection. On success it returns
// the outcome to persist; it performs no I/O of its own.
func (e *Engine) AttemptTransition(req *request.Request, target request.Status, role request.Role, action request.Action, data TransitionData) (*Outcome, error) {
	if req == nil {
		return nil, errors.New("request cannot be nil")
	}
	if _, err := e.catalog.Describe(req.Status); err != nil {
		return nil, err
	}
	if _, err := e.catalog.Describe(target); err != nil {
		return nil, err
	}

	if !e.table.IsValidTransition(req.Status, target) {
		return nil, &Error{Kind: ErrInvalidTransition, From: req.Status, To: target}
	}

	allowed, err := e.policy.CanPerform(role, action, req.Status)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, &Error{Kind: ErrForbidden, From: req.Status, Role: role, Action: action}
	}

	outcome := &Outcome{
		Status:     target,
		AssignedTo: req.AssignedTo,
		UpdatedAt:  e.now(),
	}
	if err := e.complete(req, target, data, outcome); err != nil {
		return nil, err
	}

	submittedAt := req.SubmittedAt
	if target == request.StatusSubmitted || submittedAt.IsZero() {
		submittedAt = outcome.UpdatedAt
	}
	outcome.SubmittedAt = submittedAt

	deadline, err := e.sla.Deadline(submittedAt, req.Urgency, req.Priority)
	if err != nil {
		return nil, err
	}
	outcome.Deadline = deadline

	overdue, err := e.sla.IsOverdue(submittedAt, req.Urgency, target, req.Priority)
	if err != nil {
		return nil, err
	}
	outcome.Overdue = overdue

	return outcome, nil
}

// complete enforces the per-target data requirements and fills the outcome fields they govern
func (e *Engine) complete(req *request.Request, target request.Status, data TransitionData, outcome *Outcome) error {
	switch target {
	case request.StatusApproved, request.StatusPartiallyPaid, request.StatusPaid:
		amount := data.ApprovedAmount
		if amount == nil {
			amount = req.ApprovedAmount
		}
		if amount == nil {
			return &Error{Kind: ErrIncompleteData, To: target, Field: "approvedAmount", Reason: "approved amount is required"}
		}
		if *amount <= 0 {
			return &Error{Kind: ErrIncompleteData, To: target, Field: "approvedAmount", Reason: "approved amount must be positive"}
		}
		if *amount > req.RequestedAmount {
			return &Error{Kind: ErrIncompleteData, To: target, Field: "approvedAmount", Reason: "approved amount exceeds the requested amount"}
		}
		value := *amount
		outcome.ApprovedAmount = &value
	case request.StatusUnderReview:
		assignee := data.AssignedTo
		if assignee == "" {
			assignee = req.AssignedTo
		}
		if assignee == "" {
			return &Error{Kind: ErrIncompleteData, To: target, Field: "assignedTo", Reason: "a case worker must be assigned before review"}
		}
		outcome.AssignedTo = assignee
	case request.StatusRejected:
		if data.RejectionCategory == "" {
			return &Error{Kind: ErrIncompleteData, To: target, Field: "rejectionCategory", Reason: "a rejection category is required"}
		}
		if data.RejectionReason == "" {
			return &Error{Kind: ErrIncompleteData, To: target, Field: "rejectionReason", Reason: "a rejection reason is required"}
		}
	case request.StatusCancelled:
		if data.CancellationReason == "" {
			return &Error{Kind: ErrIncompleteData, To: target, Field: "cancellationReason", Reason: "a cancellation reason is required"}
		}
	}
	return nil
}
