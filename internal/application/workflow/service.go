package workflow

import (
	"context"
	"io"

	"github.com/aidcase/workflow/internal/application/port"
	"github.com/aidcase/workflow/internal/domain/request"
	domainwf "github.com/aidcase/workflow/internal/domain/workflow"
)

// Logger interface for minimal logging dependency
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// Actor identifies who performs an operation
type Actor struct {
	ID   string
	Role request.Role
}

// CreateInput carries the fields needed to open a new assistance request.
// BaseScore is the applicant's profile score used to seed the advisory
// eligibility score; it is not validated here beyond the scorer's clamping.
type CreateInput struct {
	ApplicantID     string
	Category        request.Category
	Urgency         request.Urgency
	Priority        request.Priority
	RequestedAmount float64
	BaseScore       int
}

// Exporter writes a report of requests to a stream
type Exporter interface {
	Write(w io.Writer, requests []*request.Request) error
}

// Service coordinates the request lifecycle: it loads snapshots, consults the
// domain engine, persists accepted outcomes and publishes lifecycle events.
// All domain decisions live in the engine; the service owns I/O and ordering.
type Service interface {
	// CreateRequest opens a new draft request for the applicant
	CreateRequest(ctx context.Context, actor Actor, input CreateInput) (*request.Request, error)

	// GetRequest retrieves a request by ID
	GetRequest(ctx context.Context, id string) (*request.Request, error)

	// Transition moves a request to the target status on behalf of the actor.
	// The stored request is updated only if its status still matches the
	// loaded snapshot; concurrent writers surface as port.ErrStaleSnapshot.
	Transition(ctx context.Context, actor Actor, requestID string, target request.Status, action request.Action, data domainwf.TransitionData) (*request.Request, error)

	// History retrieves a request's transition audit trail, oldest first
	History(ctx context.Context, requestID string) ([]*request.TransitionRecord, error)

	// ListOverdue retrieves every open request whose SLA deadline has passed
	ListOverdue(ctx context.Context) ([]*request.Request, error)

	// ExportRequests writes the matching requests as a spreadsheet report
	ExportRequests(ctx context.Context, actor Actor, filter port.RequestFilter, w io.Writer) error
}
