package model

import "time"

// SecurityLevelRequest asks an administrator to raise the requester's clearance.
// At most one PENDING request exists per user.
type SecurityLevelRequest struct {
	ID             int64               `json:"id"`
	UserID         int64               `json:"user_id"`
	Username       string              `json:"username,omitempty"`
	CurrentLevel   SecurityLevel       `json:"current_level"`
	RequestedLevel SecurityLevel       `json:"requested_level"`
	Justification  string              `json:"justification"`
	Status         AccessRequestStatus `json:"status"`
	CreatedAt      time.Time           `json:"created_at"`
	ResolvedAt     *time.Time          `json:"resolved_at,omitempty"`
	ResolvedBy     *int64              `json:"resolved_by,omitempty"`
	ResolutionNote string              `json:"resolution_note,omitempty"`
}

type SecurityLevelRequestInput struct {
	Level         SecurityLevel `json:"level" validate:"required,securitylevel"`
	Justification string        `json:"justification" validate:"required,max=1000"`
}

type ResolveSecurityLevelRequestInput struct {
	Status AccessRequestStatus `json:"status" validate:"required,oneof=APPROVED REJECTED"`
	Note   string              `json:"note"`
}
