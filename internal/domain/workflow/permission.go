package workflow

import (
	"fmt"

	"github.com/aidcase/workflow/internal/domain/request"
)

// actionRule declares who may perform an action and in which statuses it applies.
// An empty status set means the action is status-independent.
type actionRule struct {
	roles    map[request.Role]bool
	statuses map[request.Status]bool
}

// PermissionPolicy decides whether a role may perform an action on a request in a given status
type PermissionPolicy struct {
	rules map[request.Action]actionRule
}

// NewPermissionPolicy builds the closed action catalog with its role and status constraints
func NewPermissionPolicy() *PermissionPolicy {
	p := &PermissionPolicy{rules: make(map[request.Action]actionRule)}

	everyone := []request.Role{request.RoleUser, request.RoleCaseWorker, request.RoleFinanceManager, request.RoleAdmin}

	p.declare(request.ActionCreateRequest,
		[]request.Role{request.RoleUser, request.RoleAdmin})
	p.declare(request.ActionSubmitRequest,
		[]request.Role{request.RoleUser, request.RoleAdmin},
		request.StatusDraft)
	p.declare(request.ActionAssignRequest,
		[]request.Role{request.RoleCaseWorker, request.RoleAdmin},
		request.StatusSubmitted, request.StatusUnderReview, request.StatusPendingDocs)
	p.declare(request.ActionReviewRequest,
		[]request.Role{request.RoleCaseWorker, request.RoleAdmin},
		request.StatusUnderReview, request.StatusPendingDocs, request.StatusApproved)
	p.declare(request.ActionRequestDocuments,
		[]request.Role{request.RoleCaseWorker, request.RoleAdmin},
		request.StatusSubmitted, request.StatusUnderReview)
	p.declare(request.ActionVerifyDocuments,
		[]request.Role{request.RoleCaseWorker, request.RoleAdmin},
		request.StatusPendingDocs)
	p.declare(request.ActionProcessPayment,
		[]request.Role{request.RoleFinanceManager, request.RoleAdmin},
		request.StatusApproved, request.StatusPartiallyPaid)
	p.declare(request.ActionCancelRequest,
		[]request.Role{request.RoleUser, request.RoleCaseWorker, request.RoleAdmin},
		request.StatusDraft, request.StatusSubmitted, request.StatusPendingDocs)
	p.declare(request.ActionAddComment, everyone)
	p.declare(request.ActionUploadDocuments,
		[]request.Role{request.RoleUser, request.RoleAdmin},
		request.StatusDraft, request.StatusPendingDocs)
	p.declare(request.ActionExportRequests,
		[]request.Role{request.RoleCaseWorker, request.RoleFinanceManager, request.RoleAdmin})
	p.declare(request.ActionExpireRequest,
		[]request.Role{request.RoleAdmin},
		request.StatusSubmitted, request.StatusUnderReview, request.StatusPendingDocs, request.StatusApproved)

	return p
}

// declare registers an action with its allowed roles and, optionally, the statuses it is limited to
func (p *PermissionPolicy) declare(action request.Action, roles []request.Role, statuses ...request.Status) {
	rule := actionRule{
		roles:    make(map[request.Role]bool, len(roles)),
		statuses: make(map[request.Status]bool, len(statuses)),
	}
	for _, r := range roles {
		rule.roles[r] = true
	}
	for _, s := range statuses {
		rule.statuses[s] = true
	}
	p.rules[action] = rule
}

// CanPerform reports whether the role may perform the action on a request in the given status.
// Both the role check and the status check must pass. Unknown actions are rejected with
// ErrUnknownAction rather than silently denied, so misconfigurations surface loudly.
func (p *PermissionPolicy) CanPerform(role request.Role, action request.Action, status request.Status) (bool, error) {
	rule, ok := p.rules[action]
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownAction, string(action))
	}
	if !rule.roles[role] {
		return false, nil
	}
	if len(rule.statuses) == 0 {
		return true, nil
	}
	return rule.statuses[status], nil
}
