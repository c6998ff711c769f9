package request

import "fmt"

// Priority represents the staff queue-ordering axis, independent of urgency
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

var validPriorities = map[Priority]bool{
	PriorityLow:    true,
	PriorityNormal: true,
	PriorityHigh:   true,
	PriorityUrgent: true,
}

// Priorities returns every priority level in declaration order
func Priorities() []Priority {
	return []Priority{PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent}
}

// ParsePriority converts a raw string into a Priority
func ParsePriority(s string) (Priority, error) {
	priority := Priority(s)
	if !priority.IsValid() {
		return "", fmt.Errorf("unknown priority: %q", s)
	}
	return priority, nil
}

// String returns the string representation of the priority level
func (p Priority) String() string {
	return string(p)
}

// IsValid returns true if the priority is a member of the catalog
func (p Priority) IsValid() bool {
	return validPriorities[p]
}
