// service/access_request_service.go
package service

import (
	"context"
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

const defaultLockTTL = 5 * time.Second

// IAccessRequestService manages requests for exceptions to a denial.
type IAccessRequestService interface {
	RequestAccess(ctx context.Context, subject model.User, documentID int64, reason string) (*model.AccessRequest, error)
	ListAccessRequests(ctx context.Context, status model.AccessRequestStatus) ([]model.AccessRequest, error)
	ListMyAccessRequests(ctx context.Context, userID int64) ([]model.AccessRequest, error)
	ResolveAccessRequest(ctx context.Context, subject model.User, requestID int64, input model.ResolveAccessRequestInput) (*model.AccessRequest, error)
}

type AccessRequestService struct {
	accessRequestDAO dao.IAccessRequestDAO
	documentDAO      dao.IDocumentDAO
	userDAO          dao.IUserDAO
	auditService     audit.Service
	validationUtil   *util.ValidationUtil
	cache            util.Cache
	notificationSvc  *util.NotificationService
	eventBus         *util.EventBus
	lockTTL          time.Duration
}

var _ IAccessRequestService = &AccessRequestService{}

func NewAccessRequestService(accessRequestDAO dao.IAccessRequestDAO, documentDAO dao.IDocumentDAO, userDAO dao.IUserDAO, auditService audit.Service, validationUtil *util.ValidationUtil, cache util.Cache, notificationSvc *util.NotificationService, eventBus *util.EventBus, lockTTL time.Duration) *AccessRequestService {
	if lockTTL <= 0 {
		lockTTL = defaultLockTTL
	}
	service := &AccessRequestService{
		accessRequestDAO: accessRequestDAO,
		documentDAO:      documentDAO,
		userDAO:          userDAO,
		auditService:     auditService,
		validationUtil:   validationUtil,
		cache:            cache,
		notificationSvc:  notificationSvc,
		eventBus:         eventBus,
		lockTTL:          lockTTL,
	}

	eventBus.Subscribe(util.EventAccessRequested, service.handleAccessRequested)
	eventBus.Subscribe(util.EventAccessResolved, service.handleAccessResolved)
	eventBus.Subscribe(util.EventDocumentShared, service.handleDocumentShared)

	return service
}

func (s *AccessRequestService) handleAccessRequested(ctx context.Context, event util.Event) error {
	req, ok := event.Payload.(model.AccessRequest)
	if !ok {
		return fmt.Errorf("invalid event payload type: %T", event.Payload)
	}
	adminIDs, err := s.userDAO.ListUserIDsWithRole(ctx, engine.AdminRole)
	if err != nil {
		return err
	}
	return s.notificationSvc.NotifyAccessRequested(ctx, adminIDs, req)
}

func (s *AccessRequestService) handleAccessResolved(ctx context.Context, event util.Event) error {
	req, ok := event.Payload.(model.AccessRequest)
	if !ok {
		return fmt.Errorf("invalid event payload type: %T", event.Payload)
	}
	return s.notificationSvc.NotifyAccessResolved(ctx, req)
}

func (s *AccessRequestService) handleDocumentShared(ctx context.Context, event util.Event) error {
	payload, ok := event.Payload.(SharePayload)
	if !ok {
		return fmt.Errorf("invalid event payload type: %T", event.Payload)
	}
	return s.notificationSvc.NotifyDocumentShared(ctx, payload.Grant, payload.Document)
}

func requestLockName(userID, documentID int64) string {
	return fmt.Sprintf("access_request:%d:%d", userID, documentID)
}

// RequestAccess files a PENDING request. Only one may be pending per user
// and document; a Redis lock serializes concurrent submissions.
func (s *AccessRequestService) RequestAccess(ctx context.Context, subject model.User, documentID int64, reason string) (*model.AccessRequest, error) {
	doc, err := s.documentDAO.GetDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}

	lock := requestLockName(subject.ID, documentID)
	acquired, err := s.cache.Lock(ctx, lock, s.lockTTL)
	if err != nil {
		logger.Error("Failed to acquire access request lock", zap.Error(err), zap.String("lock", lock))
		return nil, fmt.Errorf("%w: %v", sec_errors.ErrInternalServer, err)
	}
	if !acquired {
		return nil, sec_errors.ErrAccessRequestBusy
	}
	defer func() {
		if err := s.cache.Unlock(context.WithoutCancel(ctx), lock); err != nil {
			logger.Warn("Failed to release access request lock", zap.Error(err), zap.String("lock", lock))
		}
	}()

	latest, err := s.accessRequestDAO.LatestAccessRequest(ctx, subject.ID, documentID)
	if err != nil {
		return nil, err
	}
	if latest != nil && latest.Status == model.AccessRequestPending {
		return nil, sec_errors.ErrAccessRequestPending
	}

	created, err := s.accessRequestDAO.CreateAccessRequest(ctx, model.AccessRequest{
		DocumentID: documentID,
		UserID:     subject.ID,
		Reason:     strings.TrimSpace(reason),
		Status:     model.AccessRequestPending,
	})
	if err != nil {
		return nil, err
	}
	created.DocumentName = doc.Name
	created.DocumentClassification = doc.Classification

	recordAudit(ctx, s.auditService, audit.AuditLog{
		UserID:   subject.ID,
		Username: subject.Username,
		Action:   audit.ActionAccessRequested,
		Resource: documentResource(documentID),
		Severity: string(pdp_model.SeverityWarn),
		Details: audit.Details(map[string]interface{}{
			"request_id": created.ID,
			"reason":     created.Reason,
		}),
	})
	s.eventBus.Publish(ctx, util.EventAccessRequested, *created)

	logger.Info("Access requested",
		zap.Int64("requestID", created.ID),
		zap.Int64("userID", subject.ID),
		zap.Int64("documentID", documentID))
	return created, nil
}

func (s *AccessRequestService) ListAccessRequests(ctx context.Context, status model.AccessRequestStatus) ([]model.AccessRequest, error) {
	switch status {
	case "", model.AccessRequestPending, model.AccessRequestApproved, model.AccessRequestRejected:
	default:
		return nil, fmt.Errorf("%w: unknown status %q", sec_errors.ErrInvalidAccessRequestData, status)
	}
	return s.accessRequestDAO.ListAccessRequests(ctx, status)
}

func (s *AccessRequestService) ListMyAccessRequests(ctx context.Context, userID int64) ([]model.AccessRequest, error) {
	return s.accessRequestDAO.ListUserAccessRequests(ctx, userID)
}

// ResolveAccessRequest approves or rejects a PENDING request. Approval
// grants the requested permission, read by default, in the same write.
func (s *AccessRequestService) ResolveAccessRequest(ctx context.Context, subject model.User, requestID int64, input model.ResolveAccessRequestInput) (*model.AccessRequest, error) {
	if !engine.HasPermission(subject.Roles, engine.PermissionDocumentsShare) {
		return nil, sec_errors.ErrForbidden
	}
	if err := s.validationUtil.ValidateResolution(input); err != nil {
		return nil, err
	}

	pending, err := s.accessRequestDAO.GetAccessRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if pending.Status != model.AccessRequestPending {
		return nil, sec_errors.ErrAccessRequestResolved
	}

	var grant *model.PermissionGrant
	if input.Status == model.AccessRequestApproved {
		permission := input.Permission
		if permission == "" {
			permission = model.PermissionRead
		}
		grant = &model.PermissionGrant{
			DocumentID:     pending.DocumentID,
			UserID:         pending.UserID,
			PermissionType: permission,
			GrantedBy:      subject.ID,
		}
	}

	resolved, err := s.accessRequestDAO.ResolveAccessRequest(ctx, requestID, input.Status, subject.ID, strings.TrimSpace(input.Note), grant)
	if err != nil {
		return nil, err
	}

	action := audit.ActionAccessRejected
	severity := pdp_model.SeverityInfo
	if input.Status == model.AccessRequestApproved {
		action = audit.ActionAccessApproved
		severity = pdp_model.SeverityWarn
		if resolved.DocumentClassification == model.SecurityLevelConfidential {
			severity = pdp_model.SeverityCritical
		}
	}
	details := map[string]interface{}{
		"request_id":     resolved.ID,
		"requester_id":   resolved.UserID,
		"status":         resolved.Status,
		"classification": resolved.DocumentClassification,
	}
	if grant != nil {
		details["permission"] = grant.PermissionType
	}
	recordAudit(ctx, s.auditService, audit.AuditLog{
		UserID:   subject.ID,
		Username: subject.Username,
		Action:   action,
		Resource: documentResource(resolved.DocumentID),
		Severity: string(severity),
		Details:  audit.Details(details),
	})
	s.eventBus.Publish(ctx, util.EventAccessResolved, *resolved)

	logger.Info("Access request resolved",
		zap.Int64("requestID", requestID),
		zap.String("status", string(resolved.Status)),
		zap.Int64("resolvedBy", subject.ID))
	return resolved, nil
}
