// service/user_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/MichaelGetu-git/Security-Project/audit"
	"github.com/MichaelGetu-git/Security-Project/dao"
	sec_errors "github.com/MichaelGetu-git/Security-Project/errors"
	logger "github.com/MichaelGetu-git/Security-Project/logging"
	"github.com/MichaelGetu-git/Security-Project/model"
	"github.com/MichaelGetu-git/Security-Project/pdp/engine"
	pdp_model "github.com/MichaelGetu-git/Security-Project/pdp/model"
	"github.com/MichaelGetu-git/Security-Project/util"
)

// IUserService defines the interface for subject, role, department and clearance operations
type IUserService interface {
	ResolveSubject(ctx context.Context, identity model.User) (*model.User, error)
	GetSubject(ctx context.Context, userID int64) (*model.User, error)
	AssignRole(ctx context.Context, actor model.User, userID int64, roleName string) error
	RemoveRole(ctx context.Context, actor model.User, userID int64, roleName string) error
	SetDepartment(ctx context.Context, actor model.User, userID int64, department string) error
	SetSecurityLevel(ctx context.Context, actor model.User, userID int64, level string) error
	RequestSecurityLevel(ctx context.Context, subject model.User, input model.SecurityLevelRequestInput) (*model.SecurityLevelRequest, error)
	ListSecurityLevelRequests(ctx context.Context, status model.AccessRequestStatus) ([]model.SecurityLevelRequest, error)
	ListMySecurityLevelRequests(ctx context.Context, userID int64) ([]model.SecurityLevelRequest, error)
	ResolveSecurityLevelRequest(ctx context.Context, actor model.User, requestID int64, input model.ResolveSecurityLevelRequestInput) (*model.SecurityLevelRequest, error)
	CreateRole(ctx context.Context, actor model.User, role model.Role) (*model.Role, error)
	ListRoles(ctx context.Context) ([]model.Role, error)
}

// SubjectChange is the payload of util.EventSubjectChanged.
type SubjectChange struct {
	UserID int64
	Change string
	Value  string
}

// UserService handles business logic for user operations
type UserService struct {
	userDAO         dao.IUserDAO
	roleDAO         dao.IRoleDAO
	levelRequestDAO dao.ISecurityLevelRequestDAO
	auditService    audit.Service
	validationUtil  *util.ValidationUtil
	cache           util.Cache
	notificationSvc *util.NotificationService
	eventBus        *util.EventBus
}

var _ IUserService = &UserService{}

// NewUserService creates a new instance of UserService
func NewUserService(userDAO dao.IUserDAO, roleDAO dao.IRoleDAO, levelRequestDAO dao.ISecurityLevelRequestDAO, auditService audit.Service, validationUtil *util.ValidationUtil, cache util.Cache, notificationSvc *util.NotificationService, eventBus *util.EventBus) *UserService {
	service := &UserService{
		userDAO:         userDAO,
		roleDAO:         roleDAO,
		levelRequestDAO: levelRequestDAO,
		auditService:    auditService,
		validationUtil:  validationUtil,
		cache:           cache,
		notificationSvc: notificationSvc,
		eventBus:        eventBus,
	}

	eventBus.Subscribe(util.EventSubjectChanged, service.handleSubjectChanged)

	return service
}

func (s *UserService) handleSubjectChanged(ctx context.Context, event util.Event) error {
	change, ok := event.Payload.(SubjectChange)
	if !ok {
		return fmt.Errorf("invalid event payload type: %T", event.Payload)
	}
	return s.notificationSvc.NotifySubjectChange(ctx, change.Change, change.UserID, change.Value)
}

// ResolveSubject turns a token identity into the decision subject. Username and
// email come from the token; clearance, roles and department come from the
// graph. A user seen for the first time is provisioned with the token's roles
// and security level.
func (s *UserService) ResolveSubject(ctx context.Context, identity model.User) (*model.User, error) {
	cached, err := s.cache.GetUser(ctx, identity.ID)
	if err != nil {
		logger.Warn("Failed to read cached user", zap.Error(err), zap.Int64("userID", identity.ID))
	}
	if cached != nil && cached.Username == identity.Username {
		return cached, nil
	}

	if err := s.userDAO.EnsureUser(ctx, identity); err != nil {
		return nil, err
	}
	user, err := s.userDAO.GetUser(ctx, identity.ID)
	if err != nil {
		return nil, err
	}

	if len(user.Roles) == 0 && len(identity.Roles) > 0 {
		for _, role := range identity.Roles {
			err := s.userDAO.AssignRole(ctx, identity.ID, role.Name)
			if errors.Is(err, sec_errors.ErrRoleNotFound) {
				logger.Warn("Token names an unknown role", zap.String("role", role.Name), zap.Int64("userID", identity.ID))
				continue
			}
			if err != nil {
				return nil, err
			}
		}
		if user, err = s.userDAO.GetUser(ctx, identity.ID); err != nil {
			return nil, err
		}
	}

	if err := s.cache.SetUser(ctx, *user); err != nil {
		logger.Warn("Failed to cache user", zap.Error(err), zap.Int64("userID", user.ID))
	}
	return user, nil
}

// GetSubject loads a user with roles and department, through the cache.
func (s *UserService) GetSubject(ctx context.Context, userID int64) (*model.User, error) {
	start := time.Now()

	cached, err := s.cache.GetUser(ctx, userID)
	if err == nil && cached != nil {
		return cached, nil
	}

	user, err := s.userDAO.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.cache.SetUser(ctx, *user); err != nil {
		logger.Warn("Failed to cache user", zap.Error(err), zap.Int64("userID", userID))
	}

	logger.Debug("Subject loaded", zap.Int64("userID", userID), zap.Duration("duration", time.Since(start)))
	return user, nil
}

func (s *UserService) AssignRole(ctx context.Context, actor model.User, userID int64, roleName string) error {
	roleName = strings.TrimSpace(roleName)
	if roleName == "" {
		return fmt.Errorf("%w: role name is required", sec_errors.ErrInvalidRoleData)
	}
	if err := s.userDAO.AssignRole(ctx, userID, roleName); err != nil {
		return err
	}
	s.subjectChanged(ctx, actor, audit.ActionRoleAssigned, pdp_model.SeverityWarn, SubjectChange{UserID: userID, Change: "assigned", Value: roleName}, nil)
	return nil
}

func (s *UserService) RemoveRole(ctx context.Context, actor model.User, userID int64, roleName string) error {
	if err := s.userDAO.RemoveRole(ctx, userID, roleName); err != nil {
		return err
	}
	s.subjectChanged(ctx, actor, audit.ActionRoleRemoved, pdp_model.SeverityWarn, SubjectChange{UserID: userID, Change: "removed", Value: roleName}, nil)
	return nil
}

// SetDepartment moves the user to department; "" clears it.
func (s *UserService) SetDepartment(ctx context.Context, actor model.User, userID int64, department string) error {
	department = strings.TrimSpace(department)
	if err := s.userDAO.SetDepartment(ctx, userID, department); err != nil {
		return err
	}
	s.subjectChanged(ctx, actor, audit.ActionDepartmentAssigned, pdp_model.SeverityWarn, SubjectChange{UserID: userID, Change: "department", Value: department}, nil)
	return nil
}

// subjectChanged drops the cached profile, audits the change and notifies the user.
func (s *UserService) subjectChanged(ctx context.Context, actor model.User, action string, severity pdp_model.Severity, change SubjectChange, details map[string]interface{}) {
	if err := s.cache.DeleteUser(ctx, change.UserID); err != nil {
		logger.Warn("Failed to invalidate cached user", zap.Error(err), zap.Int64("userID", change.UserID))
	}
	fields := map[string]interface{}{"value": change.Value}
	for k, v := range details {
		fields[k] = v
	}
	recordAudit(ctx, s.auditService, audit.AuditLog{
		UserID:   actor.ID,
		Username: actor.Username,
		Action:   action,
		Resource: userResource(change.UserID),
		Severity: string(severity),
		Details:  audit.Details(fields),
	})
	s.eventBus.Publish(ctx, util.EventSubjectChanged, change)
}

// SetSecurityLevel overwrites the user's clearance.
func (s *UserService) SetSecurityLevel(ctx context.Context, actor model.User, userID int64, level string) error {
	parsed, ok := model.ParseSecurityLevel(level)
	if !ok {
		return fmt.Errorf("%w: unknown security level %q", sec_errors.ErrInvalidUserData, level)
	}
	user, err := s.userDAO.GetUser(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.userDAO.SetSecurityLevel(ctx, userID, parsed); err != nil {
		return err
	}
	s.subjectChanged(ctx, actor, audit.ActionSecurityLevelChanged, clearanceChangeSeverity(parsed),
		SubjectChange{UserID: userID, Change: "security_level", Value: string(parsed)},
		map[string]interface{}{"previousLevel": user.SecurityLevel, "newLevel": parsed})
	return nil
}

// RequestSecurityLevel files a clearance upgrade for subject. Only levels above
// the current clearance can be requested.
func (s *UserService) RequestSecurityLevel(ctx context.Context, subject model.User, input model.SecurityLevelRequestInput) (*model.SecurityLevelRequest, error) {
	input.Level = model.SecurityLevel(strings.ToUpper(strings.TrimSpace(string(input.Level))))
	input.Justification = strings.TrimSpace(input.Justification)
	if err := s.validationUtil.ValidateSecurityLevelRequest(input); err != nil {
		return nil, err
	}
	if engine.SatisfiesClearance(subject.SecurityLevel, input.Level) {
		return nil, fmt.Errorf("%w: %s is not above the current level %s",
			sec_errors.ErrInvalidSecurityLevelRequest, input.Level, subject.SecurityLevel)
	}

	created, err := s.levelRequestDAO.CreateSecurityLevelRequest(ctx, model.SecurityLevelRequest{
		UserID:         subject.ID,
		Username:       subject.Username,
		CurrentLevel:   subject.SecurityLevel,
		RequestedLevel: input.Level,
		Justification:  input.Justification,
	})
	if err != nil {
		return nil, err
	}

	severity := pdp_model.SeverityInfo
	if input.Level == model.SecurityLevelConfidential {
		severity = pdp_model.SeverityWarn
	}
	recordAudit(ctx, s.auditService, audit.AuditLog{
		UserID:   subject.ID,
		Username: subject.Username,
		Action:   audit.ActionSecurityLevelRequested,
		Resource: userResource(subject.ID),
		Severity: string(severity),
		Details: audit.Details(map[string]interface{}{
			"requestId":      created.ID,
			"currentLevel":   created.CurrentLevel,
			"requestedLevel": created.RequestedLevel,
			"justification":  created.Justification,
		}),
	})

	adminIDs, err := s.userDAO.ListUserIDsWithRole(ctx, engine.AdminRole)
	if err != nil {
		logger.Warn("Failed to look up administrators", zap.Error(err))
	} else if err := s.notificationSvc.NotifySecurityLevelRequested(ctx, adminIDs, *created); err != nil {
		logger.Warn("Failed to notify administrators", zap.Error(err), zap.Int64("requestID", created.ID))
	}
	return created, nil
}

// ListSecurityLevelRequests lists clearance requests, optionally by status.
func (s *UserService) ListSecurityLevelRequests(ctx context.Context, status model.AccessRequestStatus) ([]model.SecurityLevelRequest, error) {
	switch status {
	case "", model.AccessRequestPending, model.AccessRequestApproved, model.AccessRequestRejected:
	default:
		return nil, fmt.Errorf("%w: unknown status %q", sec_errors.ErrInvalidSecurityLevelRequest, status)
	}
	return s.levelRequestDAO.ListSecurityLevelRequests(ctx, status)
}

func (s *UserService) ListMySecurityLevelRequests(ctx context.Context, userID int64) ([]model.SecurityLevelRequest, error) {
	return s.levelRequestDAO.ListUserSecurityLevelRequests(ctx, userID)
}

// ResolveSecurityLevelRequest approves or rejects a PENDING clearance request.
// Approval writes the requested level before the resolution commits.
func (s *UserService) ResolveSecurityLevelRequest(ctx context.Context, actor model.User, requestID int64, input model.ResolveSecurityLevelRequestInput) (*model.SecurityLevelRequest, error) {
	if err := s.validationUtil.ValidateSecurityLevelResolution(input); err != nil {
		return nil, err
	}

	resolved, err := s.levelRequestDAO.ResolveSecurityLevelRequest(ctx, requestID, input.Status, actor.ID, strings.TrimSpace(input.Note),
		func(req model.SecurityLevelRequest) error {
			if req.Status != model.AccessRequestApproved {
				return nil
			}
			return s.userDAO.SetSecurityLevel(ctx, req.UserID, req.RequestedLevel)
		})
	if err != nil {
		return nil, err
	}

	details := map[string]interface{}{
		"requestId":      resolved.ID,
		"previousLevel":  resolved.CurrentLevel,
		"requestedLevel": resolved.RequestedLevel,
		"justification":  resolved.Justification,
	}
	if resolved.Status == model.AccessRequestApproved {
		s.subjectChanged(ctx, actor, audit.ActionSecurityLevelApproved, clearanceChangeSeverity(resolved.RequestedLevel),
			SubjectChange{UserID: resolved.UserID, Change: "security_level", Value: string(resolved.RequestedLevel)},
			details)
	} else {
		recordAudit(ctx, s.auditService, audit.AuditLog{
			UserID:   actor.ID,
			Username: actor.Username,
			Action:   audit.ActionSecurityLevelRejected,
			Resource: userResource(resolved.UserID),
			Severity: string(pdp_model.SeverityInfo),
			Details:  audit.Details(details),
		})
	}

	if err := s.notificationSvc.NotifySecurityLevelResolved(ctx, *resolved); err != nil {
		logger.Warn("Failed to notify requester", zap.Error(err), zap.Int64("requestID", resolved.ID))
	}
	return resolved, nil
}

// clearanceChangeSeverity is CRITICAL when a user is raised to CONFIDENTIAL.
func clearanceChangeSeverity(level model.SecurityLevel) pdp_model.Severity {
	if level == model.SecurityLevelConfidential {
		return pdp_model.SeverityCritical
	}
	return pdp_model.SeverityWarn
}

func userResource(userID int64) string {
	return fmt.Sprintf("user:%d", userID)
}

func (s *UserService) CreateRole(ctx context.Context, actor model.User, role model.Role) (*model.Role, error) {
	role.Name = strings.TrimSpace(role.Name)
	if err := s.validationUtil.ValidateRole(role); err != nil {
		return nil, err
	}
	created, err := s.roleDAO.CreateRole(ctx, role)
	if err != nil {
		return nil, err
	}
	logger.Info("Role created", zap.String("role", created.Name), zap.Int64("userID", actor.ID))
	return created, nil
}

func (s *UserService) ListRoles(ctx context.Context) ([]model.Role, error) {
	return s.roleDAO.ListRoles(ctx)
}
