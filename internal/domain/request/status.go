package request

import "fmt"

// Status represents a request status in the assistance lifecycle
type Status string

const (
	StatusDraft         Status = "draft"
	StatusSubmitted     Status = "submitted"
	StatusUnderReview   Status = "under_review"
	StatusPendingDocs   Status = "pending_docs"
	StatusApproved      Status = "approved"
	StatusPartiallyPaid Status = "partially_paid"
	StatusPaid          Status = "paid"
	StatusRejected      Status = "rejected"
	StatusCancelled     Status = "cancelled"
	StatusExpired       Status = "expired"
)

var validStatuses = map[Status]bool{
	StatusDraft:         true,
	StatusSubmitted:     true,
	StatusUnderReview:   true,
	StatusPendingDocs:   true,
	StatusApproved:      true,
	StatusPartiallyPaid: true,
	StatusPaid:          true,
	StatusRejected:      true,
	StatusCancelled:     true,
	StatusExpired:       true,
}

// Statuses returns every status in declaration order
func Statuses() []Status {
	return []Status{
		StatusDraft,
		StatusSubmitted,
		StatusUnderReview,
		StatusPendingDocs,
		StatusApproved,
		StatusPartiallyPaid,
		StatusPaid,
		StatusRejected,
		StatusCancelled,
		StatusExpired,
	}
}

// ParseStatus converts a raw string into a Status
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", fmt.Errorf("unknown status: %q", s)
	}
	return status, nil
}

// String returns the string representation of the status
func (s Status) String() string {
	return string(s)
}

// IsValid returns true if the status is a member of the catalog
func (s Status) IsValid() bool {
	return validStatuses[s]
}
