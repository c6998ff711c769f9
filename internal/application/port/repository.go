package port

import (
	"context"
	"errors"

	"github.com/aidcase/workflow/internal/domain/request"
)

var (
	// ErrNotFound is returned when the requested record does not exist
	ErrNotFound = errors.New("record not found")

	// ErrStaleSnapshot is returned when an update loses an optimistic concurrency check
	ErrStaleSnapshot = errors.New("request was modified concurrently")
)

// RequestFilter narrows List results. Zero values mean "no constraint".
type RequestFilter struct {
	Statuses    []request.Status
	ApplicantID string
	AssignedTo  string
	Limit       int
	Offset      int
}

// RequestRepository defines persistence operations for assistance requests
type RequestRepository interface {
	// Create stores a new request
	Create(ctx context.Context, req *request.Request) error

	// GetByID retrieves a request by its ID, or ErrNotFound
	GetByID(ctx context.Context, id string) (*request.Request, error)

	// Update persists the request only if its stored status still equals
	// expectedStatus, returning ErrStaleSnapshot otherwise. This is the
	// engine's compare-and-swap: transitions are decided against a snapshot
	// and must not clobber a concurrent writer.
	Update(ctx context.Context, req *request.Request, expectedStatus request.Status) error

	// List retrieves requests matching the filter, newest first
	List(ctx context.Context, filter RequestFilter) ([]*request.Request, error)
}

// TransitionRecorder appends to the immutable transition audit trail
type TransitionRecorder interface {
	// Record appends one transition record
	Record(ctx context.Context, rec *request.TransitionRecord) error

	// ListByRequestID retrieves a request's transitions oldest first
	ListByRequestID(ctx context.Context, requestID string) ([]*request.TransitionRecord, error)
}

// TransactionManager handles database transactions
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
