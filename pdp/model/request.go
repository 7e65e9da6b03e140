package model

import (
	"time"

	"github.com/MichaelGetu-git/Security-Project/model"
)

// DecisionRequest carries everything the decision engine needs. The caller
// loads Grants and Policies fresh for each decision.
type DecisionRequest struct {
	User     model.User
	Document model.Document
	// Grants are the discretionary grants recorded on Document.
	Grants []model.PermissionGrant
	// Policies is the active rule snapshot.
	Policies []model.Policy
	// HasApprovedRequest is true when the user has an APPROVED access request
	// for Document.
	HasApprovedRequest bool
}

// RequestContext is what a single rule record is evaluated against.
type RequestContext struct {
	User       model.User
	Resource   model.Document
	Action     string
	Time       time.Time
	Department string
	// IsOwner is true when User owns Resource.
	IsOwner bool
	// IsOwnerOrHasDAC is true when User owns Resource or holds a direct
	// read, edit or full grant on it.
	IsOwnerOrHasDAC bool
}
