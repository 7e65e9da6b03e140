package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"go.uber.org/zap"

	"github.com/MichaelGetu-git/Security-Project/audit"
	"github.com/MichaelGetu-git/Security-Project/dao"
	sec_errors "github.com/MichaelGetu-git/Security-Project/errors"
	logger "github.com/MichaelGetu-git/Security-Project/logging"
	"github.com/MichaelGetu-git/Security-Project/model"
	pdp_model "github.com/MichaelGetu-git/Security-Project/pdp/model"
	"github.com/MichaelGetu-git/Security-Project/util"
)

// IPolicyService administers rule records. Decisions read the store directly,
// so a change applies from the next decision on.
type IPolicyService interface {
	CreatePolicy(ctx context.Context, policy model.Policy, actor model.User) (*model.Policy, error)
	UpdatePolicy(ctx context.Context, policy model.Policy, actor model.User) (*model.Policy, error)
	DeletePolicy(ctx context.Context, policyID string, actor model.User) error
	GetPolicy(ctx context.Context, policyID string) (*model.Policy, error)
	ListPolicies(ctx context.Context, limit int, offset int) ([]model.Policy, error)
	ListActivePolicies(ctx context.Context) ([]model.Policy, error)
}

// PolicyEvent is the payload of the policy.* events. Previous is set on
// updates only.
type PolicyEvent struct {
	Policy   model.Policy
	Previous *model.Policy
	Actor    model.User
}

// PolicyService handles business logic for policy operations
type PolicyService struct {
	policyDAO       dao.IPolicyDAO
	auditService    audit.Service
	validationUtil  *util.ValidationUtil
	notificationSvc *util.NotificationService
	eventBus        *util.EventBus
}

var _ IPolicyService = &PolicyService{}

// NewPolicyService creates a new instance of PolicyService
func NewPolicyService(policyDAO dao.IPolicyDAO, auditService audit.Service, validationUtil *util.ValidationUtil, notificationSvc *util.NotificationService, eventBus *util.EventBus) *PolicyService {
	service := &PolicyService{
		policyDAO:       policyDAO,
		auditService:    auditService,
		validationUtil:  validationUtil,
		notificationSvc: notificationSvc,
		eventBus:        eventBus,
	}

	eventBus.Subscribe(util.EventPolicyCreated, service.handlePolicyChanged)
	eventBus.Subscribe(util.EventPolicyUpdated, service.handlePolicyChanged)
	eventBus.Subscribe(util.EventPolicyDeleted, service.handlePolicyChanged)

	return service
}

var policyChanges = map[string]struct {
	change string
	action string
}{
	util.EventPolicyCreated: {"created", audit.ActionPolicyCreated},
	util.EventPolicyUpdated: {"updated", audit.ActionPolicyUpdated},
	util.EventPolicyDeleted: {"deleted", audit.ActionPolicyDeleted},
}

func (s *PolicyService) handlePolicyChanged(ctx context.Context, event util.Event) error {
	payload, ok := event.Payload.(PolicyEvent)
	if !ok {
		logger.Error("Invalid event payload type", zap.Any("payload", event.Payload))
		return fmt.Errorf("invalid event payload type: %T", event.Payload)
	}
	change, ok := policyChanges[event.Type]
	if !ok {
		return fmt.Errorf("unexpected event type: %s", event.Type)
	}

	logger.Info("Policy event received",
		zap.String("event", event.Type),
		zap.String("policyID", payload.Policy.ID))

	details := map[string]interface{}{
		"policy_id": payload.Policy.ID,
		"name":      payload.Policy.Name,
		"type":      payload.Policy.Type,
		"is_active": payload.Policy.IsActive,
		"version":   payload.Policy.Version,
		"rules":     payload.Policy.Rules,
	}
	if payload.Previous != nil {
		details["previous_version"] = payload.Previous.Version
		details["previous_rules"] = payload.Previous.Rules
	}
	recordAudit(ctx, s.auditService, audit.AuditLog{
		UserID:   payload.Actor.ID,
		Username: payload.Actor.Username,
		Action:   change.action,
		Resource: "policy:" + payload.Policy.ID,
		Severity: string(pdp_model.SeverityWarn),
		Details:  audit.Details(details),
	})

	if err := s.notificationSvc.NotifyPolicyChange(ctx, change.change, payload.Policy); err != nil {
		logger.Warn("Failed to send policy notification", zap.Error(err), zap.String("policyID", payload.Policy.ID))
	}
	return nil
}

func normalizePolicy(policy *model.Policy) {
	policy.Name = strings.TrimSpace(policy.Name)
	policy.Rules.Department = strings.TrimSpace(policy.Rules.Department)
	policy.Rules.Role = strings.TrimSpace(policy.Rules.Role)
	policy.Rules.Location = strings.TrimSpace(policy.Rules.Location)
	policy.Rules.ApprovalRole = strings.TrimSpace(policy.Rules.ApprovalRole)
}

// CreatePolicy handles the creation of a new policy
func (s *PolicyService) CreatePolicy(ctx context.Context, policy model.Policy, actor model.User) (*model.Policy, error) {
	normalizePolicy(&policy)
	if err := s.validationUtil.ValidatePolicy(policy); err != nil {
		return nil, err
	}

	created, err := s.policyDAO.CreatePolicy(ctx, policy)
	if err != nil {
		logger.Error("Error creating policy", zap.Error(err), zap.Int64("userID", actor.ID))
		return nil, err
	}

	s.eventBus.Publish(ctx, util.EventPolicyCreated, PolicyEvent{Policy: *created, Actor: actor})

	logger.Info("Policy created successfully", zap.String("policyID", created.ID), zap.Int64("userID", actor.ID))
	return created, nil
}

// UpdatePolicy handles updates to an existing policy
func (s *PolicyService) UpdatePolicy(ctx context.Context, policy model.Policy, actor model.User) (*model.Policy, error) {
	normalizePolicy(&policy)
	if err := s.validationUtil.ValidatePolicy(policy); err != nil {
		return nil, err
	}

	oldPolicy, err := s.policyDAO.GetPolicy(ctx, policy.ID)
	if err != nil {
		logger.Error("Error retrieving existing policy", zap.Error(err), zap.String("policyID", policy.ID))
		return nil, err
	}

	if !hasPolicyChanged(oldPolicy, &policy) {
		logger.Info("No changes detected in the policy, skipping update", zap.String("policyID", policy.ID))
		return oldPolicy, nil
	}

	updatedPolicy, err := s.policyDAO.UpdatePolicy(ctx, policy)
	if err != nil {
		logger.Error("Error updating policy", zap.Error(err), zap.String("policyID", policy.ID), zap.Int64("userID", actor.ID))
		return nil, err
	}

	s.eventBus.Publish(ctx, util.EventPolicyUpdated, PolicyEvent{Policy: *updatedPolicy, Previous: oldPolicy, Actor: actor})

	logger.Info("Policy updated successfully", zap.String("policyID", policy.ID), zap.Int64("userID", actor.ID))
	return updatedPolicy, nil
}

// DeletePolicy handles the deletion of a policy
func (s *PolicyService) DeletePolicy(ctx context.Context, policyID string, actor model.User) error {
	if err := s.policyDAO.DeletePolicy(ctx, policyID); err != nil {
		logger.Error("Error deleting policy", zap.Error(err), zap.String("policyID", policyID), zap.Int64("userID", actor.ID))
		return err
	}

	s.eventBus.Publish(ctx, util.EventPolicyDeleted, PolicyEvent{Policy: model.Policy{ID: policyID}, Actor: actor})

	logger.Info("Policy deleted successfully", zap.String("policyID", policyID), zap.Int64("userID", actor.ID))
	return nil
}

// GetPolicy retrieves a policy by its ID
func (s *PolicyService) GetPolicy(ctx context.Context, policyID string) (*model.Policy, error) {
	policy, err := s.policyDAO.GetPolicy(ctx, policyID)
	if err != nil {
		if errors.Is(err, sec_errors.ErrPolicyNotFound) {
			return nil, sec_errors.ErrPolicyNotFound
		}
		logger.Error("Error retrieving policy", zap.Error(err), zap.String("policyID", policyID))
		return nil, sec_errors.ErrInternalServer
	}
	return policy, nil
}

// ListPolicies retrieves all policies, possibly with pagination
func (s *PolicyService) ListPolicies(ctx context.Context, limit int, offset int) ([]model.Policy, error) {
	policies, err := s.policyDAO.ListPolicies(ctx, limit, offset)
	if err != nil {
		logger.Error("Error listing policies", zap.Error(err), zap.Int("limit", limit), zap.Int("offset", offset))
		return nil, fmt.Errorf("failed to list policies: %w", err)
	}
	return policies, nil
}

func (s *PolicyService) ListActivePolicies(ctx context.Context) ([]model.Policy, error) {
	return s.policyDAO.ListActivePolicies(ctx)
}

// hasPolicyChanged checks if there are any differences between the old and new policies
func hasPolicyChanged(oldPolicy, newPolicy *model.Policy) bool {
	return oldPolicy.Name != newPolicy.Name ||
		oldPolicy.Type != newPolicy.Type ||
		oldPolicy.IsActive != newPolicy.IsActive ||
		!reflect.DeepEqual(oldPolicy.Rules, newPolicy.Rules)
}
