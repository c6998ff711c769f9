package request

import "fmt"

// Action represents an operation an actor can perform on a request
type Action string

const (
	ActionCreateRequest    Action = "create_request"
	ActionSubmitRequest    Action = "submit_request"
	ActionAssignRequest    Action = "assign_request"
	ActionReviewRequest    Action = "review_request"
	ActionRequestDocuments Action = "request_documents"
	ActionVerifyDocuments  Action = "verify_documents"
	ActionProcessPayment   Action = "process_payment"
	ActionCancelRequest    Action = "cancel_request"
	ActionAddComment       Action = "add_comment"
	ActionUploadDocuments  Action = "upload_documents"
	ActionExportRequests   Action = "export_requests"
	ActionExpireRequest    Action = "expire_request"
)

var validActions = map[Action]bool{
	ActionCreateRequest:    true,
	ActionSubmitRequest:    true,
	ActionAssignRequest:    true,
	ActionReviewRequest:    true,
	ActionRequestDocuments: true,
	ActionVerifyDocuments:  true,
	ActionProcessPayment:   true,
	ActionCancelRequest:    true,
	ActionAddComment:       true,
	ActionUploadDocuments:  true,
	ActionExportRequests:   true,
	ActionExpireRequest:    true,
}

// Actions returns every action in declaration order
func Actions() []Action {
	return []Action{
		ActionCreateRequest,
		ActionSubmitRequest,
		ActionAssignRequest,
		ActionReviewRequest,
		ActionRequestDocuments,
		ActionVerifyDocuments,
		ActionProcessPayment,
		ActionCancelRequest,
		ActionAddComment,
		ActionUploadDocuments,
		ActionExportRequests,
		ActionExpireRequest,
	}
}

// ParseAction converts a raw string into an Action
func ParseAction(s string) (Action, error) {
	action := Action(s)
	if !action.IsValid() {
		return "", fmt.Errorf("unknown action: %q", s)
	}
	return action, nil
}

// String returns the string representation of the action
func (a Action) String() string {
	return string(a)
}

// IsValid returns true if the action is a member of the catalog
func (a Action) IsValid() bool {
	return validActions[a]
}
