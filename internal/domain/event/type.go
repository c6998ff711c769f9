package event

import "github.com/aidcase/workflow/internal/domain/request"

// Type identifies the type of domain event
type Type string

const (
	TypeRequestCreated       Type = "request.created"
	TypeRequestSubmitted     Type = "request.submitted"
	TypeRequestUnderReview   Type = "request.under_review"
	TypeRequestPendingDocs   Type = "request.pending_docs"
	TypeRequestApproved      Type = "request.approved"
	TypeRequestPartiallyPaid Type = "request.partially_paid"
	TypeRequestPaid          Type = "request.paid"
	TypeRequestRejected      Type = "request.rejected"
	TypeRequestCancelled     Type = "request.cancelled"
	TypeRequestExpired       Type = "request.expired"
)

// statusTypes maps each status a request can move into onto the event
// announcing that move. Draft has no entry: entering draft is creation,
// announced as TypeRequestCreated.
var statusTypes = map[request.Status]Type{
	request.StatusSubmitted:     TypeRequestSubmitted,
	request.StatusUnderReview:   TypeRequestUnderReview,
	request.StatusPendingDocs:   TypeRequestPendingDocs,
	request.StatusApproved:      TypeRequestApproved,
	request.StatusPartiallyPaid: TypeRequestPartiallyPaid,
	request.StatusPaid:          TypeRequestPaid,
	request.StatusRejected:      TypeRequestRejected,
	request.StatusCancelled:     TypeRequestCancelled,
	request.StatusExpired:       TypeRequestExpired,
}

// TypeForStatus returns the event type announcing entry into the given status
func TypeForStatus(status request.Status) (Type, bool) {
	t, ok := statusTypes[status]
	return t, ok
}

// Types returns all defined event types
func Types() []Type {
	return []Type{
		TypeRequestCreated,
		TypeRequestSubmitted,
		TypeRequestUnderReview,
		TypeRequestPendingDocs,
		TypeRequestApproved,
		TypeRequestPartiallyPaid,
		TypeRequestPaid,
		TypeRequestRejected,
		TypeRequestCancelled,
		TypeRequestExpired,
	}
}

// String returns the string representation of the event type
func (t Type) String() string {
	return string(t)
}

// IsValid checks if the event type is one of the defined constants
func (t Type) IsValid() bool {
	if t == TypeRequestCreated {
		return true
	}
	for _, known := range statusTypes {
		if t == known {
			return true
		}
	}
	return false
}
