// model/document.go
package model

import (
	"time"
)

// Permission types of a discretionary grant.
const (
	PermissionRead = "read"
	PermissionEdit = "edit"
	PermissionAll  = "*"
)

// Document visibility choices at creation time.
const (
	VisibilityAll      = "all"
	VisibilitySpecific = "specific"
)

type Document struct {
	ID             int64         `json:"id"`
	Name           string        `json:"name"`
	OwnerID        int64         `json:"owner_id"`
	Classification SecurityLevel `json:"classification"`
	// Department holds ALL_DEPARTMENTS, a JSON array of department names, or a
	// legacy bare department name. Empty means no department restriction.
	Department string    `json:"department,omitempty"`
	Location   string    `json:"location,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// DocumentInput is the payload for creating a document.
type DocumentInput struct {
	Name           string        `json:"name" validate:"required,max=255"`
	Classification SecurityLevel `json:"classification" validate:"required,securitylevel"`
	Visibility     string        `json:"visibility" validate:"omitempty,oneof=all specific"`
	Departments    []string      `json:"departments" validate:"dive,required"`
	Location       string        `json:"location,omitempty"`
}

// PermissionGrant is a discretionary access record. (DocumentID, UserID,
// PermissionType) is unique; granting again refreshes GrantedBy and GrantedAt.
type PermissionGrant struct {
	ID             int64     `json:"id"`
	DocumentID     int64     `json:"document_id"`
	UserID         int64     `json:"user_id"`
	PermissionType string    `json:"permission_type"`
	GrantedBy      int64     `json:"granted_by,omitempty"`
	GrantedAt      time.Time `json:"granted_at"`
}

// ShareInput is the payload for delegating access to another user.
type ShareInput struct {
	UserID     int64  `json:"userId" validate:"required,gt=0"`
	Permission string `json:"permission" validate:"omitempty,oneof=read edit *"`
}

// DeniedDocument describes a document the subject may not read.
type DeniedDocument struct {
	ID               int64          `json:"id"`
	Name             string         `json:"name"`
	Reasons          []string       `json:"reasons"`
	Severity         string         `json:"severity"`
	AccessRequest    *AccessRequest `json:"accessRequest"`
	CanRequestAccess bool           `json:"canRequestAccess"`
}

// AllowedDocument is a readable document with the subject's latest access request, if any.
type AllowedDocument struct {
	Document
	AccessRequest *AccessRequest `json:"accessRequest"`
}

// DocumentListing is the per-subject view over all documents.
type DocumentListing struct {
	Documents []AllowedDocument `json:"documents"`
	Denied    []DeniedDocument  `json:"denied"`
}
