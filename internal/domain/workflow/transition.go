package workflow

import (
	"github.com/aidcase/workflow/internal/domain/request"
)

// TransitionTable is the single authority on which status moves are legal
type TransitionTable struct {
	next map[request.Status][]request.Status
}

// NewTransitionTable builds the authoritative transition graph
func NewTransitionTable() *TransitionTable {
	t := &TransitionTable{next: make(map[request.Status][]request.Status)}
	t.permit(request.StatusDraft,
		request.StatusSubmitted, request.StatusCancelled)
	t.permit(request.StatusSubmitted,
		request.StatusUnderReview, request.StatusPendingDocs, request.StatusCancelled, request.StatusExpired)
	t.permit(request.StatusUnderReview,
		request.StatusApproved, request.StatusRejected, request.StatusPendingDocs, request.StatusExpired)
	t.permit(request.StatusPendingDocs,
		request.StatusUnderReview, request.StatusRejected, request.StatusCancelled, request.StatusExpired)
	// approved requests can still be rejected or expire before any money moves
	t.permit(request.StatusApproved,
		request.StatusPartiallyPaid, request.StatusPaid, request.StatusRejected, request.StatusExpired)
	t.permit(request.StatusPartiallyPaid,
		request.StatusPaid)
	// paid, rejected, cancelled and expired are terminal - no outgoing transitions
	return t
}

// permit registers the legal moves out of a status
func (t *TransitionTable) permit(from request.Status, to ...request.Status) {
	t.next[from] = append(t.next[from], to...)
}

// AllowedNext returns the statuses reachable from the given one; terminal statuses yield an empty slice
func (t *TransitionTable) AllowedNext(from request.Status) []request.Status {
	return append([]request.Status(nil), t.next[from]...)
}

// IsValidTransition reports whether moving between the two statuses is legal
func (t *TransitionTable) IsValidTransition(from, to request.Status) bool {
	for _, next := range t.next[from] {
		if next == to {
			return true
		}
	}
	return false
}
