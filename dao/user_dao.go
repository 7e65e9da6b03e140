// dao/user_dao.go
package dao

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	sec_errors "github.com/MichaelGetu-git/Security-Project/errors"
	logger "github.com/MichaelGetu-git/Security-Project/logging"
	"github.com/MichaelGetu-git/Security-Project/model"
	sec_neo4j "github.com/MichaelGetu-git/Security-Project/model/neo4j"
)

type IUserDAO interface {
	EnsureUser(ctx context.Context, user model.User) error
	GetUser(ctx context.Context, userID int64) (*model.User, error)
	GetEmployeeDepartment(ctx context.Context, userID int64) (string, error)
	SetDepartment(ctx context.Context, userID int64, department string) error
	SetSecurityLevel(ctx context.Context, userID int64, level model.SecurityLevel) error
	AssignRole(ctx context.Context, userID int64, roleName string) error
	RemoveRole(ctx context.Context, userID int64, roleName string) error
	ListUserIDsWithRole(ctx context.Context, roleName string) ([]int64, error)
}

// UserDAO reads the identity graph: users, their roles and their department.
type UserDAO struct {
	Driver neo4j.DriverWithContext
}

func NewUserDAO(driver neo4j.DriverWithContext) *UserDAO {
	return &UserDAO{Driver: driver}
}

// EnsureUser creates or refreshes the identity attributes of a user node.
// The token's security level only seeds a node that has none; afterwards the
// stored level wins. Roles and department are left untouched.
func (dao *UserDAO) EnsureUser(ctx context.Context, user model.User) error {
	session := dao.Driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		_, err := tx.Run(ctx, `
			MERGE (u:`+sec_neo4j.LabelUser+` {id: $id})
			SET u.username = $username, u.email = $email,
				u.securityLevel = coalesce(u.securityLevel, $securityLevel)`,
			map[string]any{
				"id":            user.ID,
				"username":      user.Username,
				"email":         user.Email,
				"securityLevel": string(user.SecurityLevel),
			})
		return nil, err
	})
	if err != nil {
		logger.Error("Failed to ensure user", zap.Error(err), zap.Int64("userID", user.ID))
		return fmt.Errorf("failed to ensure user: %w", err)
	}
	return nil
}

// GetUser loads a user with roles and department.
func (dao *UserDAO) GetUser(ctx context.Context, userID int64) (*model.User, error) {
	start := time.Now()

	session := dao.Driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, `
			MATCH (u:`+sec_neo4j.LabelUser+` {id: $id})
			OPTIONAL MATCH (u)-[:`+sec_neo4j.RelHasRole+`]->(r:`+sec_neo4j.LabelRole+`)
			OPTIONAL MATCH (u)-[:`+sec_neo4j.RelMemberOf+`]->(d:`+sec_neo4j.LabelDepartment+`)
			RETURN u, collect(DISTINCT r) AS roles, head(collect(DISTINCT d.name)) AS department`,
			map[string]any{"id": userID})
		if err != nil {
			return nil, fmt.Errorf("failed to execute get user query: %w", err)
		}
		if !res.Next(ctx) {
			if err := res.Err(); err != nil {
				return nil, err
			}
			return nil, sec_errors.ErrUserNotFound
		}
		return mapRecordToUser(res.Record())
	})

	if err != nil {
		logger.Warn("User not retrieved",
			zap.Error(err),
			zap.Int64("userID", userID),
			zap.Duration("duration", time.Since(start)))
		return nil, err
	}

	user := result.(*model.User)
	logger.Debug("User retrieved",
		zap.Int64("userID", userID),
		zap.Strings("roles", user.RoleNames()),
		zap.Duration("duration", time.Since(start)))
	return user, nil
}

// GetEmployeeDepartment returns "" when the user has no department on file.
func (dao *UserDAO) GetEmployeeDepartment(ctx context.Context, userID int64) (string, error) {
	session := dao.Driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, `
			MATCH (:`+sec_neo4j.LabelUser+` {id: $id})-[:`+sec_neo4j.RelMemberOf+`]->(d:`+sec_neo4j.LabelDepartment+`)
			RETURN d.name LIMIT 1`,
			map[string]any{"id": userID})
		if err != nil {
			return nil, err
		}
		if res.Next(ctx) {
			name, _ := res.Record().Values[0].(string)
			return name, nil
		}
		return "", res.Err()
	})
	if err != nil {
		logger.Error("Failed to get employee department", zap.Error(err), zap.Int64("userID", userID))
		return "", fmt.Errorf("failed to get employee department: %w", err)
	}
	return result.(string), nil
}

// SetDepartment moves the user to department, creating it if needed. An empty
// department clears the membership.
func (dao *UserDAO) SetDepartment(ctx context.Context, userID int64, department string) error {
	start := time.Now()
	session := dao.Driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, `
			MATCH (u:`+sec_neo4j.LabelUser+` {id: $id})
			OPTIONAL MATCH (u)-[m:`+sec_neo4j.RelMemberOf+`]->(:`+sec_neo4j.LabelDepartment+`)
			DELETE m
			RETURN u.id`,
			map[string]any{"id": userID})
		if err != nil {
			return nil, err
		}
		if !res.Next(ctx) {
			return nil, sec_errors.ErrUserNotFound
		}
		if department == "" {
			return nil, nil
		}
		_, err = tx.Run(ctx, `
			MATCH (u:`+sec_neo4j.LabelUser+` {id: $id})
			MERGE (d:`+sec_neo4j.LabelDepartment+` {name: $department})
			ON CREATE SET d.id = randomUUID(), d.createdAt = $now
			SET d.updatedAt = $now
			MERGE (u)-[:`+sec_neo4j.RelMemberOf+`]->(d)`,
			map[string]any{"id": userID, "department": department, "now": time.Now().UTC().Format(time.RFC3339)})
		return nil, err
	})
	if err != nil {
		logger.Error("Failed to set department",
			zap.Error(err),
			zap.Int64("userID", userID),
			zap.String("department", department),
			zap.Duration("duration", time.Since(start)))
		return err
	}
	logger.Info("Department set",
		zap.Int64("userID", userID),
		zap.String("department", department),
		zap.Duration("duration", time.Since(start)))
	return nil
}

// SetSecurityLevel overwrites the stored clearance of the user.
func (dao *UserDAO) SetSecurityLevel(ctx context.Context, userID int64, level model.SecurityLevel) error {
	start := time.Now()
	session := dao.Driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, `
			MATCH (u:`+sec_neo4j.LabelUser+` {id: $id})
			SET u.securityLevel = $securityLevel
			RETURN u.id`,
			map[string]any{"id": userID, "securityLevel": string(level)})
		if err != nil {
			return nil, err
		}
		if !res.Next(ctx) {
			if err := res.Err(); err != nil {
				return nil, err
			}
			return nil, sec_errors.ErrUserNotFound
		}
		return nil, nil
	})
	if err != nil {
		logger.Error("Failed to set security level",
			zap.Error(err),
			zap.Int64("userID", userID),
			zap.String("securityLevel", string(level)))
		return err
	}
	logger.Info("Security level set",
		zap.Int64("userID", userID),
		zap.String("securityLevel", string(level)),
		zap.Duration("duration", time.Since(start)))
	return nil
}

func (dao *UserDAO) AssignRole(ctx context.Context, userID int64, roleName string) error {
	start := time.Now()
	session := dao.Driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, `
			OPTIONAL MATCH (u:`+sec_neo4j.LabelUser+` {id: $id})
			OPTIONAL MATCH (r:`+sec_neo4j.LabelRole+` {name: $role})
			RETURN u IS NOT NULL AS userFound, r IS NOT NULL AS roleFound`,
			map[string]any{"id": userID, "role": roleName})
		if err != nil {
			return nil, err
		}
		if !res.Next(ctx) {
			return nil, sec_errors.ErrUserNotFound
		}
		record := res.Record()
		if found, _ := record.Values[0].(bool); !found {
			return nil, sec_errors.ErrUserNotFound
		}
		if found, _ := record.Values[1].(bool); !found {
			return nil, sec_errors.ErrRoleNotFound
		}

		_, err = tx.Run(ctx, `
			MATCH (u:`+sec_neo4j.LabelUser+` {id: $id}), (r:`+sec_neo4j.LabelRole+` {name: $role})
			MERGE (u)-[:`+sec_neo4j.RelHasRole+`]->(r)`,
			map[string]any{"id": userID, "role": roleName})
		return nil, err
	})
	if err != nil {
		logger.Error("Failed to assign role",
			zap.Error(err),
			zap.Int64("userID", userID),
			zap.String("role", roleName),
			zap.Duration("duration", time.Since(start)))
		return err
	}
	logger.Info("Role assigned",
		zap.Int64("userID", userID),
		zap.String("role", roleName),
		zap.Duration("duration", time.Since(start)))
	return nil
}

func (dao *UserDAO) RemoveRole(ctx context.Context, userID int64, roleName string) error {
	session := dao.Driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, `
			MATCH (:`+sec_neo4j.LabelUser+` {id: $id})-[h:`+sec_neo4j.RelHasRole+`]->(:`+sec_neo4j.LabelRole+` {name: $role})
			DELETE h`,
			map[string]any{"id": userID, "role": roleName})
		if err != nil {
			return nil, err
		}
		summary, err := res.Consume(ctx)
		if err != nil {
			return nil, err
		}
		if summary.Counters().RelationshipsDeleted() == 0 {
			return nil, sec_errors.ErrRoleNotFound
		}
		return nil, nil
	})
	if err != nil {
		logger.Error("Failed to remove role", zap.Error(err), zap.Int64("userID", userID), zap.String("role", roleName))
		return err
	}
	logger.Info("Role removed", zap.Int64("userID", userID), zap.String("role", roleName))
	return nil
}

// ListUserIDsWithRole is used to address notifications to administrators.
func (dao *UserDAO) ListUserIDsWithRole(ctx context.Context, roleName string) ([]int64, error) {
	session := dao.Driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, `
			MATCH (u:`+sec_neo4j.LabelUser+`)-[:`+sec_neo4j.RelHasRole+`]->(:`+sec_neo4j.LabelRole+` {name: $role})
			RETURN u.id ORDER BY u.id`,
			map[string]any{"role": roleName})
		if err != nil {
			return nil, err
		}
		ids := make([]int64, 0)
		for res.Next(ctx) {
			if id, ok := res.Record().Values[0].(int64); ok {
				ids = append(ids, id)
			}
		}
		return ids, res.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list users with role %s: %w", roleName, err)
	}
	return result.([]int64), nil
}

func mapRecordToUser(record *neo4j.Record) (*model.User, error) {
	node, ok := record.Values[0].(neo4j.Node)
	if !ok {
		return nil, fmt.Errorf("unexpected user value: %T", record.Values[0])
	}
	user, err := mapNodeToUser(node)
	if err != nil {
		return nil, err
	}

	if roles, ok := record.Values[1].([]any); ok {
		for _, r := range roles {
			if roleNode, ok := r.(neo4j.Node); ok {
				user.Roles = append(user.Roles, mapNodeToRole(roleNode))
			}
		}
	}
	if department, ok := record.Values[2].(string); ok {
		user.Department = department
	}
	return user, nil
}

func mapNodeToUser(node neo4j.Node) (*model.User, error) {
	props := node.Props
	id, ok := props["id"].(int64)
	if !ok {
		return nil, fmt.Errorf("failed to assert type for user ID: %v", props["id"])
	}
	user := &model.User{ID: id, Roles: []model.Role{}}
	user.Username, _ = props["username"].(string)
	user.Email, _ = props["email"].(string)
	if level, ok := props["securityLevel"].(string); ok {
		user.SecurityLevel = model.SecurityLevel(level)
	}
	return user, nil
}
