package workflow

import (
	"context"
	"fmt"
	"io"

	"github.com/aidcase/workflow/internal/application/dispatcher"
	"github.com/aidcase/workflow/internal/application/port"
	"github.com/aidcase/workflow/internal/domain/event"
	"github.com/aidcase/workflow/internal/domain/request"
	domainwf "github.com/aidcase/workflow/internal/domain/workflow"
	"github.com/aidcase/workflow/pkg/utils"
)

// serviceImpl is the concrete implementation of Service
type serviceImpl struct {
	repo      port.RequestRepository
	recorder  port.TransitionRecorder
	txManager port.TransactionManager

	catalog     *domainwf.StatusCatalog
	permissions *domainwf.PermissionPolicy
	scorer      *domainwf.EligibilityScorer
	sla         *domainwf.SLACalculator
	engine      *domainwf.Engine
	categories  map[request.Category]domainwf.CategoryProfile

	dispatcher dispatcher.Dispatcher
	exporter   Exporter
	logger     Logger
}

// ServiceOption configures the service
type ServiceOption func(*serviceImpl)

// WithDispatcher sets the event dispatcher for emitting lifecycle events
func WithDispatcher(d dispatcher.Dispatcher) ServiceOption {
	return func(s *serviceImpl) {
		s.dispatcher = d
	}
}

// WithExporter sets the exporter backing ExportRequests
func WithExporter(e Exporter) ServiceOption {
	return func(s *serviceImpl) {
		s.exporter = e
	}
}

// NewService creates a new request lifecycle service
func NewService(
	comps *Components,
	repo port.RequestRepository,
	recorder port.TransitionRecorder,
	txManager port.TransactionManager,
	logger Logger,
	opts ...ServiceOption,
) Service {
	s := &serviceImpl{
		repo:        repo,
		recorder:    recorder,
		txManager:   txManager,
		catalog:     comps.Catalog,
		permissions: comps.Permissions,
		scorer:      comps.Scorer,
		sla:         comps.SLA,
		engine:      comps.Engine,
		categories:  comps.Categories,
		logger:      logger,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// CreateRequest opens a new draft request for the applicant
func (s *serviceImpl) CreateRequest(ctx context.Context, actor Actor, input CreateInput) (*request.Request, error) {
	allowed, err := s.permissions.CanPerform(actor.Role, request.ActionCreateRequest, request.StatusDraft)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, &domainwf.Error{Kind: domainwf.ErrForbidden, Role: actor.Role, Action: request.ActionCreateRequest}
	}

	if err := utils.ValidateReference(input.ApplicantID); err != nil {
		return nil, fmt.Errorf("applicant reference: %w", err)
	}
	profile, ok := s.categories[input.Category]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domainwf.ErrUnknownCategory, string(input.Category))
	}
	if !input.Urgency.IsValid() {
		return nil, fmt.Errorf("%w: %q", domainwf.ErrUnknownUrgency, string(input.Urgency))
	}
	if input.Priority != "" && !input.Priority.IsValid() {
		return nil, fmt.Errorf("%w: %q", domainwf.ErrUnknownPriority, string(input.Priority))
	}
	if input.RequestedAmount <= 0 {
		return nil, fmt.Errorf("requested amount must be positive")
	}
	if profile.MaxAmount > 0 && input.RequestedAmount > profile.MaxAmount {
		return nil, fmt.Errorf("requested amount %.2f exceeds the %s limit of %.2f",
			input.RequestedAmount, profile.Label, profile.MaxAmount)
	}

	req := request.New(input.ApplicantID, input.Category, input.Urgency, input.RequestedAmount)
	req.Priority = input.Priority

	// Advisory only: the score informs triage, it never gates creation
	score, err := s.scorer.Score(input.BaseScore, input.Category, input.Urgency, input.RequestedAmount)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, req); err != nil {
		s.logger.Error("Failed to create request", "error", err, "applicant_id", input.ApplicantID)
		return nil, fmt.Errorf("create request: %w", err)
	}

	s.emit(ctx, event.TypeRequestCreated, req.ID, map[string]interface{}{
		"applicant_id":      req.ApplicantID,
		"category":          string(req.Category),
		"urgency":           string(req.Urgency),
		"requested_amount":  req.RequestedAmount,
		"eligibility_score": score,
	})

	s.logger.Info("Request created",
		"request_id", req.ID,
		"applicant_id", req.ApplicantID,
		"category", req.Category,
		"eligibility_score", score,
	)
	return req, nil
}

// GetRequest retrieves a request by ID
func (s *serviceImpl) GetRequest(ctx context.Context, id string) (*request.Request, error) {
	req, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("Failed to get request", "error", err, "request_id", id)
		return nil, err
	}
	return req, nil
}

// Transition moves a request to the target status on behalf of the actor
func (s *serviceImpl) Transition(ctx context.Context, actor Actor, requestID string, target request.Status, action request.Action, data domainwf.TransitionData) (*request.Request, error) {
	req, err := s.repo.GetByID(ctx, requestID)
	if err != nil {
		s.logger.Error("Failed to load request", "error", err, "request_id", requestID)
		return nil, err
	}

	from := req.Status
	outcome, err := s.engine.AttemptTransition(req, target, actor.Role, action, data)
	if err != nil {
		s.logger.Error("Transition rejected",
			"error", err,
			"request_id", requestID,
			"from", from,
			"to", target,
			"role", actor.Role,
			"action", action,
		)
		return nil, err
	}

	req.Status = outcome.Status
	req.ApprovedAmount = outcome.ApprovedAmount
	req.AssignedTo = outcome.AssignedTo
	req.SubmittedAt = outcome.SubmittedAt
	req.UpdatedAt = outcome.UpdatedAt

	record := &request.TransitionRecord{
		RequestID:      req.ID,
		ActorID:        actor.ID,
		Role:           actor.Role,
		Action:         action,
		PreviousStatus: from,
		NewStatus:      outcome.Status,
		Reason:         transitionReason(data),
		Timestamp:      outcome.UpdatedAt,
	}

	// Snapshot CAS and audit append must land together
	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.repo.Update(txCtx, req, from); err != nil {
			return fmt.Errorf("update request: %w", err)
		}
		if err := s.recorder.Record(txCtx, record); err != nil {
			return fmt.Errorf("record transition: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Failed to persist transition", "error", err, "request_id", requestID, "from", from, "to", target)
		return nil, err
	}

	if eventType, ok := event.TypeForStatus(outcome.Status); ok {
		payload := map[string]interface{}{
			"previous_status": string(from),
			"new_status":      string(outcome.Status),
			"action":          string(action),
			"actor_id":        actor.ID,
			"overdue":         outcome.Overdue,
		}
		if outcome.ApprovedAmount != nil {
			payload["approved_amount"] = *outcome.ApprovedAmount
		}
		s.emit(ctx, eventType, req.ID, payload)
	}

	s.logger.Info("Request transitioned",
		"request_id", req.ID,
		"from", from,
		"to", outcome.Status,
		"action", action,
		"actor_id", actor.ID,
	)
	return req, nil
}

// History retrieves a request's transition audit trail, oldest first
func (s *serviceImpl) History(ctx context.Context, requestID string) ([]*request.TransitionRecord, error) {
	records, err := s.recorder.ListByRequestID(ctx, requestID)
	if err != nil {
		s.logger.Error("Failed to list transitions", "error", err, "request_id", requestID)
		return nil, err
	}
	return records, nil
}

// ListOverdue retrieves every open request whose SLA deadline has passed
func (s *serviceImpl) ListOverdue(ctx context.Context) ([]*request.Request, error) {
	open := make([]request.Status, 0, len(request.Statuses()))
	for _, status := range request.Statuses() {
		info, err := s.catalog.Describe(status)
		if err != nil {
			return nil, err
		}
		if !info.Terminal {
			open = append(open, status)
		}
	}

	requests, err := s.repo.List(ctx, port.RequestFilter{Statuses: open})
	if err != nil {
		s.logger.Error("Failed to list open requests", "error", err)
		return nil, err
	}

	overdue := make([]*request.Request, 0, len(requests))
	for _, req := range requests {
		// Drafts have no SLA clock until submission
		if req.SubmittedAt.IsZero() {
			continue
		}
		breached, err := s.sla.IsOverdue(req.SubmittedAt, req.Urgency, req.Status, req.Priority)
		if err != nil {
			return nil, err
		}
		if breached {
			overdue = append(overdue, req)
		}
	}

	return overdue, nil
}

// ExportRequests writes the matching requests as a spreadsheet report
func (s *serviceImpl) ExportRequests(ctx context.Context, actor Actor, filter port.RequestFilter, w io.Writer) error {
	allowed, err := s.permissions.CanPerform(actor.Role, request.ActionExportRequests, "")
	if err != nil {
		return err
	}
	if !allowed {
		return &domainwf.Error{Kind: domainwf.ErrForbidden, Role: actor.Role, Action: request.ActionExportRequests}
	}

	if s.exporter == nil {
		return fmt.Errorf("no exporter configured")
	}

	requests, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list requests for export", "error", err, "actor_id", actor.ID)
		return err
	}

	if err := s.exporter.Write(w, requests); err != nil {
		s.logger.Error("Failed to write export", "error", err, "actor_id", actor.ID)
		return fmt.Errorf("write export: %w", err)
	}

	s.logger.Info("Requests exported", "count", len(requests), "actor_id", actor.ID)
	return nil
}

// emit publishes a lifecycle event when a dispatcher is configured
func (s *serviceImpl) emit(ctx context.Context, eventType event.Type, requestID string, payload map[string]interface{}) {
	if s.dispatcher == nil {
		return
	}
	s.dispatcher.DispatchAsync(ctx, event.NewEvent(eventType, requestID, payload))
}

// transitionReason extracts the human-supplied reason, if any, for the audit trail
func transitionReason(data domainwf.TransitionData) string {
	if data.RejectionReason != "" {
		return utils.SanitizeReason(data.RejectionReason)
	}
	return utils.SanitizeReason(data.CancellationReason)
}
