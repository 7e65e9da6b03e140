// dao/policy_dao.go
package dao

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	sec_errors "github.com/MichaelGetu-git/Security-Project/errors"
	logger "github.com/MichaelGetu-git/Security-Project/logging"
	"github.com/MichaelGetu-git/Security-Project/model"
	sec_neo4j "github.com/MichaelGetu-git/Security-Project/model/neo4j"
)

type IPolicyDAO interface {
	CreatePolicy(ctx context.Context, policy model.Policy) (*model.Policy, error)
	UpdatePolicy(ctx context.Context, policy model.Policy) (*model.Policy, error)
	DeletePolicy(ctx context.Context, policyID string) error
	GetPolicy(ctx context.Context, policyID string) (*model.Policy, error)
	ListPolicies(ctx context.Context, limit, offset int) ([]model.Policy, error)
	ListActivePolicies(ctx context.Context) ([]model.Policy, error)
}

// PolicyDAO stores rule records as Policy nodes; rules are kept as a JSON string property.
type PolicyDAO struct {
	Driver neo4j.DriverWithContext
}

func NewPolicyDAO(driver neo4j.DriverWithContext) *PolicyDAO {
	return &PolicyDAO{Driver: driver}
}

// CreatePolicy creates a new policy node in Neo4j
func (dao *PolicyDAO) CreatePolicy(ctx context.Context, policy model.Policy) (*model.Policy, error) {
	start := time.Now()
	logger.Info("Creating new policy", zap.String("policyName", policy.Name))

	if policy.ID == "" {
		policy.ID = uuid.New().String()
	}
	rulesJSON, err := json.Marshal(policy.Rules)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal policy rules: %w", err)
	}

	session := dao.Driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	result, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		check, err := tx.Run(ctx, `MATCH (p:`+sec_neo4j.LabelPolicy+` {id: $id}) RETURN p.id`, map[string]any{"id": policy.ID})
		if err != nil {
			return nil, sec_errors.ErrDatabaseOperation
		}
		if check.Next(ctx) {
			return nil, sec_errors.ErrPolicyConflict
		}

		now := time.Now().UTC().Format(time.RFC3339)
		res, err := tx.Run(ctx, `
			CREATE (p:`+sec_neo4j.LabelPolicy+` {id: $id})
			SET p += $props
			RETURN p`,
			map[string]any{
				"id": policy.ID,
				"props": map[string]any{
					"name":      policy.Name,
					"type":      string(policy.Type),
					"rules":     string(rulesJSON),
					"isActive":  policy.IsActive,
					"version":   1,
					"createdAt": now,
					"updatedAt": now,
				},
			})
		if err != nil {
			return nil, sec_errors.ErrDatabaseOperation
		}
		return singlePolicy(ctx, res)
	})

	duration := time.Since(start)
	if err != nil {
		logger.Error("Failed to create policy",
			zap.Error(err),
			zap.String("policyName", policy.Name),
			zap.Duration("duration", duration))
		return nil, err
	}

	created := result.(*model.Policy)
	logger.Info("Policy created successfully",
		zap.String("policyID", created.ID),
		zap.Duration("duration", duration))
	return created, nil
}

// UpdatePolicy replaces name, type, rules and the active flag, bumping the version.
func (dao *PolicyDAO) UpdatePolicy(ctx context.Context, policy model.Policy) (*model.Policy, error) {
	start := time.Now()
	logger.Info("Updating policy", zap.String("policyID", policy.ID))

	rulesJSON, err := json.Marshal(policy.Rules)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal policy rules: %w", err)
	}

	session := dao.Driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	result, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, `
			MATCH (p:`+sec_neo4j.LabelPolicy+` {id: $id})
			SET p.name = $name, p.type = $type, p.rules = $rules, p.isActive = $isActive,
				p.version = coalesce(p.version, 0) + 1, p.updatedAt = $updatedAt
			RETURN p`,
			map[string]any{
				"id":        policy.ID,
				"name":      policy.Name,
				"type":      string(policy.Type),
				"rules":     string(rulesJSON),
				"isActive":  policy.IsActive,
				"updatedAt": time.Now().UTC().Format(time.RFC3339),
			})
		if err != nil {
			return nil, fmt.Errorf("failed to execute update query: %w", err)
		}
		return singlePolicy(ctx, res)
	})

	duration := time.Since(start)
	if err != nil {
		logger.Error("Failed to update policy",
			zap.Error(err),
			zap.String("policyID", policy.ID),
			zap.Duration("duration", duration))
		return nil, err
	}

	logger.Info("Policy updated successfully",
		zap.String("policyID", policy.ID),
		zap.Duration("duration", duration))
	return result.(*model.Policy), nil
}

// DeletePolicy deletes a policy from Neo4j
func (dao *PolicyDAO) DeletePolicy(ctx context.Context, policyID string) error {
	start := time.Now()
	logger.Info("Deleting policy", zap.String("policyID", policyID))

	session := dao.Driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, `MATCH (p:`+sec_neo4j.LabelPolicy+` {id: $id}) DETACH DELETE p`, map[string]any{"id": policyID})
		if err != nil {
			return nil, fmt.Errorf("failed to execute delete query: %w", err)
		}
		summary, err := res.Consume(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to consume delete result: %w", err)
		}
		if summary.Counters().NodesDeleted() == 0 {
			return nil, sec_errors.ErrPolicyNotFound
		}
		return nil, nil
	})

	duration := time.Since(start)
	if err != nil {
		logger.Error("Failed to delete policy",
			zap.Error(err),
			zap.String("policyID", policyID),
			zap.Duration("duration", duration))
		return err
	}

	logger.Info("Policy deleted successfully",
		zap.String("policyID", policyID),
		zap.Duration("duration", duration))
	return nil
}

// GetPolicy retrieves a policy from Neo4j by its ID
func (dao *PolicyDAO) GetPolicy(ctx context.Context, policyID string) (*model.Policy, error) {
	start := time.Now()

	session := dao.Driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, `MATCH (p:`+sec_neo4j.LabelPolicy+` {id: $id}) RETURN p`, map[string]any{"id": policyID})
		if err != nil {
			return nil, fmt.Errorf("failed to execute get policy query: %w", err)
		}
		return singlePolicy(ctx, res)
	})
	if err != nil {
		logger.Warn("Policy not retrieved",
			zap.Error(err),
			zap.String("policyID", policyID),
			zap.Duration("duration", time.Since(start)))
		return nil, err
	}
	return result.(*model.Policy), nil
}

// ListPolicies retrieves all policies from Neo4j with pagination
func (dao *PolicyDAO) ListPolicies(ctx context.Context, limit int, offset int) ([]model.Policy, error) {
	start := time.Now()
	logger.Info("Listing policies", zap.Int("limit", limit), zap.Int("offset", offset))

	policies, err := dao.readPolicies(ctx, `
		MATCH (p:`+sec_neo4j.LabelPolicy+`)
		RETURN p
		ORDER BY p.createdAt DESC
		SKIP $offset
		LIMIT $limit`,
		map[string]any{"limit": limit, "offset": offset})
	if err != nil {
		logger.Error("Failed to list policies", zap.Error(err), zap.Duration("duration", time.Since(start)))
		return nil, err
	}

	logger.Info("Policies listed successfully",
		zap.Int("count", len(policies)),
		zap.Duration("duration", time.Since(start)))
	return policies, nil
}

// ListActivePolicies returns the current active snapshot, oldest first, so the
// evaluator reports denials in creation order.
func (dao *PolicyDAO) ListActivePolicies(ctx context.Context) ([]model.Policy, error) {
	start := time.Now()
	policies, err := dao.readPolicies(ctx, `
		MATCH (p:`+sec_neo4j.LabelPolicy+`)
		WHERE p.isActive = true
		RETURN p
		ORDER BY p.createdAt ASC`, nil)
	if err != nil {
		logger.Error("Failed to list active policies", zap.Error(err), zap.Duration("duration", time.Since(start)))
		return nil, err
	}
	logger.Debug("Active policies loaded",
		zap.Int("count", len(policies)),
		zap.Duration("duration", time.Since(start)))
	return policies, nil
}

func (dao *PolicyDAO) readPolicies(ctx context.Context, query string, params map[string]any) ([]model.Policy, error) {
	session := dao.Driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, query, params)
		if err != nil {
			return nil, fmt.Errorf("failed to execute policy query: %w", err)
		}
		policies := make([]model.Policy, 0)
		for res.Next(ctx) {
			node, ok := res.Record().Values[0].(neo4j.Node)
			if !ok {
				return nil, sec_errors.ErrInternalServer
			}
			policy, err := mapNodeToPolicy(node)
			if err != nil {
				return nil, err
			}
			policies = append(policies, *policy)
		}
		return policies, res.Err()
	})
	if err != nil {
		return nil, err
	}
	return result.([]model.Policy), nil
}

func singlePolicy(ctx context.Context, res neo4j.ResultWithContext) (*model.Policy, error) {
	if !res.Next(ctx) {
		if err := res.Err(); err != nil {
			return nil, err
		}
		return nil, sec_errors.ErrPolicyNotFound
	}
	node, ok := res.Record().Values[0].(neo4j.Node)
	if !ok {
		return nil, sec_errors.ErrInternalServer
	}
	return mapNodeToPolicy(node)
}

// mapNodeToPolicy converts a Policy node. A rules property that fails to
// decode is an error rather than an empty rule set, which would silently allow.
func mapNodeToPolicy(node neo4j.Node) (*model.Policy, error) {
	props := node.Props
	policy := &model.Policy{}

	id, ok := props["id"].(string)
	if !ok {
		return nil, fmt.Errorf("failed to assert type for policy ID: %v", props["id"])
	}
	policy.ID = id
	policy.Name, _ = props["name"].(string)
	if t, ok := props["type"].(string); ok {
		policy.Type = model.PolicyType(t)
	}
	policy.IsActive, _ = props["isActive"].(bool)
	if version, ok := props["version"].(int64); ok {
		policy.Version = int(version)
	}
	if createdAt, ok := props["createdAt"].(string); ok {
		policy.CreatedAt = parseTime(createdAt)
	}
	if updatedAt, ok := props["updatedAt"].(string); ok {
		policy.UpdatedAt = parseTime(updatedAt)
	}

	if rulesJSON, ok := props["rules"].(string); ok && rulesJSON != "" {
		if err := json.Unmarshal([]byte(rulesJSON), &policy.Rules); err != nil {
			return nil, fmt.Errorf("failed to unmarshal rules of policy %s: %w", id, err)
		}
	}
	return policy, nil
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339, s)
	return t
}
