package workflow

import (
	"fmt"

	"github.com/aidcase/workflow/internal/domain/request"
)

// StatusInfo carries the display and lifecycle metadata for a status
type StatusInfo struct {
	Label    string
	Terminal bool
	Editable bool
}

// StatusCatalog is the single authority on status metadata, including terminality
type StatusCatalog struct {
	infos map[request.Status]StatusInfo
}

// NewStatusCatalog builds the catalog covering every known status
func NewStatusCatalog() *StatusCatalog {
	return &StatusCatalog{
		infos: map[request.Status]StatusInfo{
			request.StatusDraft:         {Label: "Draft", Editable: true},
			request.StatusSubmitted:     {Label: "Submitted"},
			request.StatusUnderReview:   {Label: "Under Review"},
			request.StatusPendingDocs:   {Label: "Pending Documents", Editable: true},
			request.StatusApproved:      {Label: "Approved"},
			request.StatusPartiallyPaid: {Label: "Partially Paid"},
			request.StatusPaid:          {Label: "Paid", Terminal: true},
			request.StatusRejected:      {Label: "Rejected", Terminal: true},
			request.StatusCancelled:     {Label: "Cancelled", Terminal: true},
			request.StatusExpired:       {Label: "Expired", Terminal: true},
		},
	}
}

// Describe returns the metadata for a status, or ErrUnknownStatus if it is not cataloged
func (c *StatusCatalog) Describe(s request.Status) (StatusInfo, error) {
	info, ok := c.infos[s]
	if !ok {
		return StatusInfo{}, fmt.Errorf("%w: %q", ErrUnknownStatus, string(s))
	}
	return info, nil
}
