// audit/model.go
package audit

import (
	"encoding/json"
	"time"
)

// Actions recorded by the document services.
const (
	ActionAccessDecision     = "DOCUMENT_ACCESS_DECISION"
	ActionDocumentList       = "DOCUMENT_LIST"
	ActionDocumentAccess     = "DOCUMENT_ACCESS"
	ActionDocumentCreate     = "DOCUMENT_CREATE"
	ActionPermissionGranted  = "DOCUMENT_PERMISSION_GRANTED"
	ActionPermissionRevoked  = "DOCUMENT_PERMISSION_REVOKED"
	ActionAccessRequested    = "DOCUMENT_ACCESS_REQUESTED"
	ActionAccessApproved     = "DOCUMENT_ACCESS_REQUEST_APPROVED"
	ActionAccessRejected     = "DOCUMENT_ACCESS_REQUEST_REJECTED"
	ActionPolicyCreated      = "POLICY_CREATED"
	ActionPolicyUpdated      = "POLICY_UPDATED"
	ActionPolicyDeleted      = "POLICY_DELETED"
	ActionRoleAssigned       = "ROLE_ASSIGNED"
	ActionRoleRemoved        = "ROLE_REMOVED"
	ActionDepartmentAssigned = "DEPARTMENT_ASSIGNED"

	ActionSecurityLevelRequested = "SECURITY_LEVEL_REQUEST_CREATED"
	ActionSecurityLevelApproved  = "SECURITY_LEVEL_REQUEST_APPROVED"
	ActionSecurityLevelRejected  = "SECURITY_LEVEL_REQUEST_REJECTED"
	ActionSecurityLevelChanged   = "SECURITY_LEVEL_CHANGED"
)

const (
	StatusSuccess = "SUCCESS"
	StatusFailure = "FAILURE"
)

type AuditLog struct {
	ID        string          `json:"id"`
	Timestamp time.Time       `json:"timestamp"`
	UserID    int64           `json:"user_id"`
	Username  string          `json:"username,omitempty"`
	Action    string          `json:"action"`
	Resource  string          `json:"resource,omitempty"`
	IPAddress string          `json:"ip_address,omitempty"`
	Status    string          `json:"status"`
	Severity  string          `json:"severity"`
	Reasons   []string        `json:"reasons,omitempty"`
	Details   json.RawMessage `json:"details,omitempty"`
}

// AuditQuery filters QueryLogs. Zero values do not filter.
type AuditQuery struct {
	From     time.Time
	To       time.Time
	UserID   int64
	Resource string
	Action   string
	Size     int
}

// Details marshals v for AuditLog.Details, returning nil when it cannot.
func Details(v interface{}) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return data
}
