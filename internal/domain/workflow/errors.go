package workflow

import (
	"errors"
	"fmt"

	"github.com/aidcase/workflow/internal/domain/request"
)

var (
	// ErrUnknownStatus is returned when a status is outside the closed catalog
	ErrUnknownStatus = errors.New("unknown status")

	// ErrUnknownAction is returned when an action is outside the closed catalog
	ErrUnknownAction = errors.New("unknown action")

	// ErrUnknownCategory is returned when a category is outside the closed catalog
	ErrUnknownCategory = errors.New("unknown category")

	// ErrUnknownUrgency is returned when an urgency level is outside the closed catalog
	ErrUnknownUrgency = errors.New("unknown urgency")

	// ErrUnknownPriority is returned when a priority level is outside the closed catalog
	ErrUnknownPriority = errors.New("unknown priority")

	// ErrInvalidTransition is returned when a status transition is not allowed
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrForbidden is returned when a role is not authorized for an action
	ErrForbidden = errors.New("forbidden")

	// ErrIncompleteData is returned when a transition lacks required supporting data
	ErrIncompleteData = errors.New("incomplete data")
)

// Error describes a rejected workflow operation. Kind carries the sentinel so
// callers branch with errors.Is; the remaining fields identify the rejected move.
type Error struct {
	Kind   error
	From   request.Status
	To     request.Status
	Role   request.Role
	Action request.Action
	Field  string
	Reason string
}

// Error returns a human-readable description of the rejection
func (e *Error) Error() string {
	msg := e.Kind.Error()
	switch {
	case errors.Is(e.Kind, ErrInvalidTransition):
		msg = fmt.Sprintf("%s: %s -> %s", msg, e.From, e.To)
	case errors.Is(e.Kind, ErrForbidden):
		msg = fmt.Sprintf("%s: role %s cannot perform %s", msg, e.Role, e.Action)
		if e.From != "" {
			msg = fmt.Sprintf("%s in status %s", msg, e.From)
		}
	case errors.Is(e.Kind, ErrIncompleteData):
		msg = fmt.Sprintf("%s: field %s", msg, e.Field)
	}
	if e.Reason != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Reason)
	}
	return msg
}

// Unwrap exposes the sentinel for errors.Is
func (e *Error) Unwrap() error {
	return e.Kind
}
