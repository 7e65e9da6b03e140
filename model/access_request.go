package model

import "time"

type AccessRequestStatus string

const (
	AccessRequestPending  AccessRequestStatus = "PENDING"
	AccessRequestApproved AccessRequestStatus = "APPROVED"
	AccessRequestRejected AccessRequestStatus = "REJECTED"
)

// AccessRequest is a user-initiated request for an exception to a denial.
// At most one PENDING request exists per (user, document).
type AccessRequest struct {
	ID                     int64               `json:"id"`
	DocumentID             int64               `json:"document_id"`
	UserID                 int64               `json:"user_id"`
	Reason                 string              `json:"reason,omitempty"`
	Status                 AccessRequestStatus `json:"status"`
	CreatedAt              time.Time           `json:"created_at"`
	ResolvedAt             *time.Time          `json:"resolved_at,omitempty"`
	ResolvedBy             *int64              `json:"resolved_by,omitempty"`
	ResolutionNote         string              `json:"resolution_note,omitempty"`
	DocumentName           string              `json:"document_name,omitempty"`
	DocumentClassification SecurityLevel       `json:"document_classification,omitempty"`
}

// AllowsResubmission reports whether a new request may follow this one.
func (r *AccessRequest) AllowsResubmission() bool {
	return r == nil || r.Status == AccessRequestRejected
}

type ResolveAccessRequestInput struct {
	Status     AccessRequestStatus `json:"status" validate:"required,oneof=APPROVED REJECTED"`
	Note       string              `json:"note"`
	Permission string              `json:"permission" validate:"omitempty,oneof=read edit *"`
}
