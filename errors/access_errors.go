// errors/access_errors.go
package errors

import "errors"

var (
	ErrRoleNotFound    = errors.New("role not found")
	ErrRoleConflict    = errors.New("role conflict")
	ErrInvalidRoleData = errors.New("invalid role data")

	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidUserData = errors.New("invalid user data")

	ErrPermissionNotFound    = errors.New("permission not found")
	ErrInvalidPermissionData = errors.New("invalid permission data")

	ErrAccessRequestNotFound    = errors.New("access request not found")
	ErrAccessRequestPending     = errors.New("access request already pending")
	ErrAccessRequestResolved    = errors.New("access request already resolved")
	ErrInvalidAccessRequestData = errors.New("invalid access request data")
	ErrAccessRequestBusy        = errors.New("access request is being submitted")

	ErrSecurityLevelRequestNotFound = errors.New("security level request not found")
	ErrSecurityLevelRequestPending  = errors.New("security level request already pending")
	ErrSecurityLevelRequestResolved = errors.New("security level request already resolved")
	ErrInvalidSecurityLevelRequest  = errors.New("invalid security level request")
)
