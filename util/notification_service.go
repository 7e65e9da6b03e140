// util/notification_service.go

package util

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	logger "github.com/MichaelGetu-git/Security-Project/logging"
	"github.com/MichaelGetu-git/Security-Project/model"
)

// NotificationService delivers user-facing notices. Delivery is a structured
// log line; there is no outbound channel yet.
type NotificationService struct{}

func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

func (n *NotificationService) NotifyPolicyChange(ctx context.Context, changeType string, policy model.Policy) error {
	switch changeType {
	case "created", "updated":
		logger.Info("NOTIFICATION: Policy "+changeType,
			zap.String("policyID", policy.ID),
			zap.String("policyName", policy.Name),
			zap.Bool("active", policy.IsActive))
	case "deleted":
		logger.Info("NOTIFICATION: Policy deleted",
			zap.String("policyID", policy.ID))
	default:
		return fmt.Errorf("unknown change type: %s", changeType)
	}
	return nil
}

// NotifyAccessRequested tells administrators a request is waiting.
func (n *NotificationService) NotifyAccessRequested(ctx context.Context, adminIDs []int64, req model.AccessRequest) error {
	logger.Info("NOTIFICATION: Access request pending review",
		zap.Int64s("recipients", adminIDs),
		zap.Int64("requestID", req.ID),
		zap.Int64("userID", req.UserID),
		zap.Int64("documentID", req.DocumentID))
	return nil
}

// NotifyAccessResolved tells the requester how their request was resolved.
func (n *NotificationService) NotifyAccessResolved(ctx context.Context, req model.AccessRequest) error {
	logger.Info("NOTIFICATION: Access request resolved",
		zap.Int64("recipient", req.UserID),
		zap.Int64("requestID", req.ID),
		zap.String("status", string(req.Status)),
		zap.String("document", req.DocumentName))
	return nil
}

func (n *NotificationService) NotifyDocumentShared(ctx context.Context, grant model.PermissionGrant, doc model.Document) error {
	logger.Info("NOTIFICATION: Document shared",
		zap.Int64("recipient", grant.UserID),
		zap.Int64("documentID", doc.ID),
		zap.String("document", doc.Name),
		zap.String("permission", grant.PermissionType))
	return nil
}

// NotifySubjectChange tells a user their roles, department or clearance changed.
func (n *NotificationService) NotifySubjectChange(ctx context.Context, changeType string, userID int64, value string) error {
	logger.Info("NOTIFICATION: Profile "+changeType,
		zap.Int64("recipient", userID),
		zap.String("value", value))
	return nil
}

// NotifySecurityLevelRequested tells administrators a clearance request is waiting.
func (n *NotificationService) NotifySecurityLevelRequested(ctx context.Context, adminIDs []int64, req model.SecurityLevelRequest) error {
	logger.Info("NOTIFICATION: Security level request pending review",
		zap.Int64s("recipients", adminIDs),
		zap.Int64("requestID", req.ID),
		zap.Int64("userID", req.UserID),
		zap.String("requestedLevel", string(req.RequestedLevel)))
	return nil
}

func (n *NotificationService) NotifySecurityLevelResolved(ctx context.Context, req model.SecurityLevelRequest) error {
	logger.Info("NOTIFICATION: Security level request resolved",
		zap.Int64("recipient", req.UserID),
		zap.Int64("requestID", req.ID),
		zap.String("status", string(req.Status)),
		zap.String("requestedLevel", string(req.RequestedLevel)))
	return nil
}
