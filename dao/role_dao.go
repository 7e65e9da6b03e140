// dao/role_dao.go
package dao

import (
	"context"
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

type IRoleDAO interface {
	CreateRole(ctx context.Context, role model.Role) (*model.Role, error)
	GetRoleByName(ctx context.Context, name string) (*model.Role, error)
	ListRoles(ctx context.Context) ([]model.Role, error)
}

type RoleDAO struct {
	Driver neo4j.DriverWithContext
}

func NewRoleDAO(driver neo4j.DriverWithContext) *RoleDAO {
	return &RoleDAO{Driver: driver}
}

// CreateRole creates a role; names are unique.
func (dao *RoleDAO) CreateRole(ctx context.Context, role model.Role) (*model.Role, error) {
	start := time.Now()
	logger.Info("Creating new role", zap.String("roleName", role.Name))

	if role.ID == "" {
		role.ID = uuid.New().String()
	}
	if role.Permissions == nil {
		role.Permissions = []string{}
	}

	session := dao.Driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	result, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		check, err := tx.Run(ctx, `MATCH (r:`+sec_neo4j.LabelRole+` {name: $name}) RETURN r.id`, map[string]any{"name": role.Name})
		if err != nil {
			return nil, sec_errors.ErrDatabaseOperation
		}
		if check.Next(ctx) {
			return nil, sec_errors.ErrRoleConflict
		}

		now := time.Now().UTC().Format(time.RFC3339)
		res, err := tx.Run(ctx, `
			CREATE (r:`+sec_neo4j.LabelRole+` {id: $id, name: $name, permissions: $permissions,
				description: $description, createdAt: $now, updatedAt: $now})
			RETURN r`,
			map[string]any{
				"id":          role.ID,
				"name":        role.Name,
				"permissions": role.Permissions,
				"description": role.Description,
				"now":         now,
			})
		if err != nil {
			return nil, sec_errors.ErrDatabaseOperation
		}
		if !res.Next(ctx) {
			return nil, sec_errors.ErrInternalServer
		}
		node, ok := res.Record().Values[0].(neo4j.Node)
		if !ok {
			return nil, sec_errors.ErrInternalServer
		}
		created := mapNodeToRole(node)
		return &created, nil
	})

	duration := time.Since(start)
	if err != nil {
		logger.Error("Failed to create role",
			zap.Error(err),
			zap.String("roleName", role.Name),
			zap.Duration("duration", duration))
		return nil, err
	}
	logger.Info("Role created successfully",
		zap.String("roleName", role.Name),
		zap.Duration("duration", duration))
	return result.(*model.Role), nil
}

func (dao *RoleDAO) GetRoleByName(ctx context.Context, name string) (*model.Role, error) {
	session := dao.Driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, `MATCH (r:`+sec_neo4j.LabelRole+` {name: $name}) RETURN r`, map[string]any{"name": name})
		if err != nil {
			return nil, err
		}
		if !res.Next(ctx) {
			return nil, sec_errors.ErrRoleNotFound
		}
		node, ok := res.Record().Values[0].(neo4j.Node)
		if !ok {
			return nil, sec_errors.ErrInternalServer
		}
		role := mapNodeToRole(node)
		return &role, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*model.Role), nil
}

func (dao *RoleDAO) ListRoles(ctx context.Context) ([]model.Role, error) {
	start := time.Now()
	session := dao.Driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, `MATCH (r:`+sec_neo4j.LabelRole+`) RETURN r ORDER BY r.name`, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to execute list roles query: %w", err)
		}
		roles := make([]model.Role, 0)
		for res.Next(ctx) {
			if node, ok := res.Record().Values[0].(neo4j.Node); ok {
				roles = append(roles, mapNodeToRole(node))
			}
		}
		return roles, res.Err()
	})
	if err != nil {
		logger.Error("Failed to list roles", zap.Error(err), zap.Duration("duration", time.Since(start)))
		return nil, err
	}
	roles := result.([]model.Role)
	logger.Info("Roles listed successfully", zap.Int("count", len(roles)), zap.Duration("duration", time.Since(start)))
	return roles, nil
}

func mapNodeToRole(node neo4j.Node) model.Role {
	props := node.Props
	role := model.Role{Permissions: []string{}}
	role.ID, _ = props["id"].(string)
	role.Name, _ = props["name"].(string)
	role.Description, _ = props["description"].(string)
	if perms, ok := props["permissions"].([]any); ok {
		for _, p := range perms {
			if s, ok := p.(string); ok {
				role.Permissions = append(role.Permissions, s)
			}
		}
	}
	if createdAt, ok := props["createdAt"].(string); ok {
		role.CreatedAt = parseTime(createdAt)
	}
	if updatedAt, ok := props["updatedAt"].(string); ok {
		role.UpdatedAt = parseTime(updatedAt)
	}
	return role
}
