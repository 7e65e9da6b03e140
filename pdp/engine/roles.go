package engine

import (
	"strings"

	"github.com/MichaelGetu-git/Security-Project/model"
)

const (
	// AdminRole bypasses every rule record.
	AdminRole = "Admin"

	// WildcardPermission grants every permission.
	WildcardPermission = "*"
)

// Permissions checked outside the decision engine.
const (
	PermissionDocumentsCreate      = "documents:create"
	PermissionDocumentsShare       = "documents:share"
	PermissionRulesRead            = "rules:read"
	PermissionRulesManage          = "rules:manage"
	PermissionAccessRequestsManage = "access_requests:manage"
	PermissionAuditRead            = "audit:read"
	PermissionUsersManage          = "users:manage"
)

// HasPermission reports whether any role grants permission, directly or through the wildcard.
func HasPermission(roles []model.Role, permission string) bool {
	for _, role := range roles {
		for _, p := range role.Permissions {
			if p == WildcardPermission || p == permission {
				return true
			}
		}
	}
	return false
}

// HasRole reports whether a role named name is assigned. Names compare
// case-insensitively with surrounding and repeated whitespace ignored.
func HasRole(roles []model.Role, name string) bool {
	target := normalizeRoleName(name)
	if target == "" {
		return false
	}
	for _, role := range roles {
		if normalizeRoleName(role.Name) == target {
			return true
		}
	}
	return false
}

// IsAdmin reports whether roles include AdminRole.
func IsAdmin(roles []model.Role) bool {
	return HasRole(roles, AdminRole)
}

func normalizeRoleName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}
