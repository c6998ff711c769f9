package workflow

import (
	"fmt"
	"maps"
	"sort"

	"github.com/aidcase/workflow/internal/domain/request"
)

// EligibilityScorer computes a bounded eligibility score from a base score,
// the assistance category, the urgency level and the requested amount.
// The score ranks requests for case workers; it never gates transitions.
type EligibilityScorer struct {
	categories map[request.Category]CategoryProfile
	urgencies  map[request.Urgency]UrgencyProfile
	tiers      []AmountTier
}

// NewEligibilityScorer builds a scorer over the given bonus tables.
// The tables are copied, and tiers are ordered smallest threshold first.
func NewEligibilityScorer(categories map[request.Category]CategoryProfile, urgencies map[request.Urgency]UrgencyProfile, tiers []AmountTier) *EligibilityScorer {
	ordered := append([]AmountTier(nil), tiers...)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Below < ordered[j].Below
	})
	return &EligibilityScorer{
		categories: maps.Clone(categories),
		urgencies:  maps.Clone(urgencies),
		tiers:      ordered,
	}
}

// Score returns the eligibility score clamped to [0, 100]
func (s *EligibilityScorer) Score(base int, category request.Category, urgency request.Urgency, amount float64) (int, error) {
	cat, ok := s.categories[category]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, string(category))
	}
	urg, ok := s.urgencies[urgency]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownUrgency, string(urgency))
	}
	score := base + cat.Bonus + urg.Bonus + s.amountBonus(amount)
	return clamp(score, 0, 100), nil
}

// amountBonus returns the bonus of the first tier whose threshold exceeds the amount
func (s *EligibilityScorer) amountBonus(amount float64) int {
	for _, tier := range s.tiers {
		if amount < tier.Below {
			return tier.Bonus
		}
	}
	return 0
}

// clamp bounds a value to the inclusive range [lo, hi]
func clamp(value, lo, hi int) int {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}
