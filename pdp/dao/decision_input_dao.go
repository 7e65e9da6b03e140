// pdp/dao/decision_input_dao.go
package dao

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	logger "github.com/MichaelGetu-git/Security-Project/logging"
	"github.com/MichaelGetu-git/Security-Project/model"
	pdp_model "github.com/MichaelGetu-git/Security-Project/pdp/model"
)

type PolicySource interface {
	ListActivePolicies(ctx context.Context) ([]model.Policy, error)
}

type GrantSource interface {
	ListDocumentPermissions(ctx context.Context, documentID int64) ([]model.PermissionGrant, error)
}

type AccessRequestSource interface {
	HasApprovedAccessRequest(ctx context.Context, userID, documentID int64) (bool, error)
}

type DepartmentSource interface {
	// GetEmployeeDepartment returns "" when none is on file.
	GetEmployeeDepartment(ctx context.Context, userID int64) (string, error)
}

// DecisionInputDAO assembles a DecisionRequest from the stores. Nothing is
// cached: every call reads policies and grants as they are now.
type DecisionInputDAO struct {
	Policies    PolicySource
	Grants      GrantSource
	Requests    AccessRequestSource
	Departments DepartmentSource
}

func NewDecisionInputDAO(policies PolicySource, grants GrantSource, requests AccessRequestSource, departments DepartmentSource) *DecisionInputDAO {
	return &DecisionInputDAO{
		Policies:    policies,
		Grants:      grants,
		Requests:    requests,
		Departments: departments,
	}
}

// LoadPolicySnapshot returns the active policies.
func (dao *DecisionInputDAO) LoadPolicySnapshot(ctx context.Context) ([]model.Policy, error) {
	policies, err := dao.Policies.ListActivePolicies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load policy snapshot: %w", err)
	}
	return policies, nil
}

// LoadDecisionRequest reads everything a decision for user on doc needs.
func (dao *DecisionInputDAO) LoadDecisionRequest(ctx context.Context, user model.User, doc model.Document) (*pdp_model.DecisionRequest, error) {
	return dao.load(ctx, user, doc, nil)
}

// LoadDecisionRequestWithSnapshot is LoadDecisionRequest against an already
// loaded policy snapshot, for deciding many documents in one pass.
func (dao *DecisionInputDAO) LoadDecisionRequestWithSnapshot(ctx context.Context, user model.User, doc model.Document, policies []model.Policy) (*pdp_model.DecisionRequest, error) {
	if policies == nil {
		policies = []model.Policy{}
	}
	return dao.load(ctx, user, doc, policies)
}

func (dao *DecisionInputDAO) load(ctx context.Context, user model.User, doc model.Document, policies []model.Policy) (*pdp_model.DecisionRequest, error) {
	start := time.Now()
	req := &pdp_model.DecisionRequest{User: user, Document: doc, Policies: policies}

	g, gctx := errgroup.WithContext(ctx)

	if policies == nil {
		g.Go(func() error {
			snapshot, err := dao.LoadPolicySnapshot(gctx)
			if err != nil {
				return err
			}
			req.Policies = snapshot
			return nil
		})
	}

	g.Go(func() error {
		grants, err := dao.Grants.ListDocumentPermissions(gctx, doc.ID)
		if err != nil {
			return fmt.Errorf("failed to load grants: %w", err)
		}
		req.Grants = grants
		return nil
	})

	g.Go(func() error {
		approved, err := dao.Requests.HasApprovedAccessRequest(gctx, user.ID, doc.ID)
		if err != nil {
			return fmt.Errorf("failed to load access requests: %w", err)
		}
		req.HasApprovedRequest = approved
		return nil
	})

	if user.Department == "" && dao.Departments != nil {
		g.Go(func() error {
			department, err := dao.Departments.GetEmployeeDepartment(gctx, user.ID)
			if err != nil {
				return fmt.Errorf("failed to load department: %w", err)
			}
			req.User.Department = department
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		logger.Error("Failed to load decision inputs",
			zap.Error(err),
			zap.Int64("userID", user.ID),
			zap.Int64("documentID", doc.ID),
			zap.Duration("duration", time.Since(start)))
		return nil, err
	}

	logger.Debug("Decision inputs loaded",
		zap.Int64("userID", user.ID),
		zap.Int64("documentID", doc.ID),
		zap.Int("policies", len(req.Policies)),
		zap.Int("grants", len(req.Grants)),
		zap.Duration("duration", time.Since(start)))
	return req, nil
}
