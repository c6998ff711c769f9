package request

import "fmt"

// Urgency represents how quickly a request needs attention, ordered by severity
type Urgency string

const (
	UrgencyRoutine   Urgency = "routine"
	UrgencyImportant Urgency = "important"
	UrgencyUrgent    Urgency = "urgent"
	UrgencyCritical  Urgency = "critical"
)

var urgencyRank = map[Urgency]int{
	UrgencyRoutine:   0,
	UrgencyImportant: 1,
	UrgencyUrgent:    2,
	UrgencyCritical:  3,
}

// Urgencies returns every urgency level ordered by severity
func Urgencies() []Urgency {
	return []Urgency{UrgencyRoutine, UrgencyImportant, UrgencyUrgent, UrgencyCritical}
}

// ParseUrgency converts a raw string into an Urgency
func ParseUrgency(s string) (Urgency, error) {
	urgency := Urgency(s)
	if !urgency.IsValid() {
		return "", fmt.Errorf("unknown urgency: %q", s)
	}
	return urgency, nil
}

// String returns the string representation of the urgency level
func (u Urgency) String() string {
	return string(u)
}

// IsValid returns true if the urgency is a member of the catalog
func (u Urgency) IsValid() bool {
	_, ok := urgencyRank[u]
	return ok
}

// MoreSevereThan reports whether u outranks other in severity
func (u Urgency) MoreSevereThan(other Urgency) bool {
	return urgencyRank[u] > urgencyRank[other]
}
