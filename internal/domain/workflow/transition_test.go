package workflow

import (
	"testing"

	"github.com/aidcase/workflow/internal/domain/request"
)

func TestTransitionTable_IsValidTransition(t *testing.T) {
	table := NewTransitionTable()

	tests := []struct {
		name     string
		from     request.Status
		to       request.Status
		expected bool
	}{
		{"draft to submitted", request.StatusDraft, request.StatusSubmitted, true},
		{"draft to cancelled", request.StatusDraft, request.StatusCancelled, true},
		{"draft to approved skips review", request.StatusDraft, request.StatusApproved, false},
		{"submitted to under review", request.StatusSubmitted, request.StatusUnderReview, true},
		{"submitted to expired", request.StatusSubmitted, request.StatusExpired, true},
		{"under review to approved", request.StatusUnderReview, request.StatusApproved, true},
		{"under review to rejected", request.StatusUnderReview, request.StatusRejected, true},
		{"under review to cancelled", request.StatusUnderReview, request.StatusCancelled, false},
		{"pending docs back to review", request.StatusPendingDocs, request.StatusUnderReview, true},
		{"approved to partially paid", request.StatusApproved, request.StatusPartiallyPaid, true},
		{"approved rejected before payout", request.StatusApproved, request.StatusRejected, true},
		{"partially paid to paid", request.StatusPartiallyPaid, request.StatusPaid, true},
		{"partially paid back to approved", request.StatusPartiallyPaid, request.StatusApproved, false},
		{"paid is terminal", request.StatusPaid, request.StatusUnderReview, false},
		{"rejected is terminal", request.StatusRejected, request.StatusSubmitted, false},
		{"cancelled is terminal", request.StatusCancelled, request.StatusDraft, false},
		{"expired is terminal", request.StatusExpired, request.StatusUnderReview, false},
		{"no self transition", request.StatusSubmitted, request.StatusSubmitted, false},
		{"unknown source", request.Status("archived"), request.StatusSubmitted, false},
		{"unknown target", request.StatusDraft, request.Status("archived"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := table.IsValidTransition(tt.from, tt.to); got != tt.expected {
				t.Errorf("IsValidTransition(%v, %v) = %v, want %v", tt.from, tt.to, got, tt.expected)
			}
		})
	}
}

func TestTransitionTable_AllowedNext(t *testing.T) {
	table := NewTransitionTable()

	next := table.AllowedNext(request.StatusSubmitted)
	want := map[request.Status]bool{
		request.StatusUnderReview: true,
		request.StatusPendingDocs: true,
		request.StatusCancelled:   true,
		request.StatusExpired:     true,
	}
	if len(next) != len(want) {
		t.Fatalf("AllowedNext(submitted) returned %d statuses, want %d", len(next), len(want))
	}
	for _, s := range next {
		if !want[s] {
			t.Errorf("AllowedNext(submitted) contains unexpected status %v", s)
		}
	}
}

func TestTransitionTable_TerminalStatusesHaveNoMoves(t *testing.T) {
	table := NewTransitionTable()
	catalog := NewStatusCatalog()

	for _, s := range request.Statuses() {
		info, err := catalog.Describe(s)
		if err != nil {
			t.Fatalf("Describe(%v) failed: %v", s, err)
		}
		next := table.AllowedNext(s)
		if info.Terminal && len(next) != 0 {
			t.Errorf("terminal status %v has %d outgoing transitions, want 0", s, len(next))
		}
		if !info.Terminal && len(next) == 0 {
			t.Errorf("non-terminal status %v has no outgoing transitions", s)
		}
	}
}

func TestTransitionTable_TargetsAreCataloged(t *testing.T) {
	table := NewTransitionTable()
	catalog := NewStatusCatalog()

	for _, from := range request.Statuses() {
		for _, to := range table.AllowedNext(from) {
			if _, err := catalog.Describe(to); err != nil {
				t.Errorf("transition %v -> %v targets an uncataloged status: %v", from, to, err)
			}
		}
	}
}

func TestTransitionTable_AllowedNextIsACopy(t *testing.T) {
	table := NewTransitionTable()

	next := table.AllowedNext(request.StatusDraft)
	if len(next) == 0 {
		t.Fatal("AllowedNext(draft) should not be empty")
	}
	next[0] = request.StatusPaid

	if table.IsValidTransition(request.StatusDraft, request.StatusPaid) {
		t.Error("mutating the returned slice should not alter the table")
	}
}
