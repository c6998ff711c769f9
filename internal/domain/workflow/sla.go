package workflow

import (
	"fmt"
	"maps"
	"time"

	"github.com/aidcase/workflow/internal/domain/request"
)

// SLACalculator derives deadlines, overdue flags and completion estimates
// from the submission time, the urgency level and the priority level
type SLACalculator struct {
	urgencies      map[request.Urgency]UrgencyProfile
	priorities     map[request.Priority]PriorityProfile
	catalog        *StatusCatalog
	criticalBuffer float64
	defaultBuffer  float64
	now            func() time.Time
}

// SLAOption configures the calculator
type SLAOption func(*SLACalculator)

// WithNow overrides the calculator clock, primarily for tests
func WithNow(now func() time.Time) SLAOption {
	return func(c *SLACalculator) {
		c.now = now
	}
}

// WithCompletionBuffers overrides the estimate multipliers for critical and non-critical urgencies
func WithCompletionBuffers(critical, others float64) SLAOption {
	return func(c *SLACalculator) {
		c.criticalBuffer = critical
		c.defaultBuffer = others
	}
}

// NewSLACalculator builds a calculator over the given SLA tables
func NewSLACalculator(urgencies map[request.Urgency]UrgencyProfile, priorities map[request.Priority]PriorityProfile, catalog *StatusCatalog, opts ...SLAOption) *SLACalculator {
	c := &SLACalculator{
		urgencies:      maps.Clone(urgencies),
		priorities:     maps.Clone(priorities),
		catalog:        catalog,
		criticalBuffer: DefaultCriticalBuffer,
		defaultBuffer:  DefaultCompletionBuffer,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Deadline returns the instant the request breaches its SLA.
// The stricter of the urgency window and the priority window governs.
func (c *SLACalculator) Deadline(submittedAt time.Time, urgency request.Urgency, priority request.Priority) (time.Time, error) {
	urgencyHours, priorityHours, err := c.windows(urgency, priority)
	if err != nil {
		return time.Time{}, err
	}
	hours := min(urgencyHours, priorityHours)
	return submittedAt.Add(time.Duration(hours) * time.Hour), nil
}

// IsOverdue reports whether the request has breached its deadline.
// Requests in a terminal status are never overdue, regardless of the clock.
func (c *SLACalculator) IsOverdue(submittedAt time.Time, urgency request.Urgency, currentStatus request.Status, priority request.Priority) (bool, error) {
	info, err := c.catalog.Describe(currentStatus)
	if err != nil {
		return false, err
	}
	if info.Terminal {
		return false, nil
	}
	deadline, err := c.Deadline(submittedAt, urgency, priority)
	if err != nil {
		return false, err
	}
	return c.now().After(deadline), nil
}

// EstimatedCompletion returns a buffered forecast of when the request should complete.
// The estimate is display-only and never feeds the overdue decision.
func (c *SLACalculator) EstimatedCompletion(submittedAt time.Time, urgency request.Urgency, priority request.Priority) (time.Time, error) {
	urgencyHours, priorityHours, err := c.windows(urgency, priority)
	if err != nil {
		return time.Time{}, err
	}
	buffer := c.defaultBuffer
	if urgency == request.UrgencyCritical {
		buffer = c.criticalBuffer
	}
	estimated := float64(urgencyHours+priorityHours) / 2 * buffer
	return submittedAt.Add(time.Duration(estimated * float64(time.Hour))), nil
}

// windows resolves the urgency and priority hours; an absent priority defaults to normal
func (c *SLACalculator) windows(urgency request.Urgency, priority request.Priority) (int, int, error) {
	u, ok := c.urgencies[urgency]
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q", ErrUnknownUrgency, string(urgency))
	}
	if priority == "" {
		priority = request.PriorityNormal
	}
	p, ok := c.priorities[priority]
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q", ErrUnknownPriority, string(priority))
	}
	return u.SLAHours, p.SLAHours, nil
}
