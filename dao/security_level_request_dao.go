// dao/security_level_request_dao.go
package dao

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	sec_errors "github.com/MichaelGetu-git/Security-Project/errors"
	logger "github.com/MichaelGetu-git/Security-Project/logging"
	"github.com/MichaelGetu-git/Security-Project/model"
)

type ISecurityLevelRequestDAO interface {
	CreateSecurityLevelRequest(ctx context.Context, req model.SecurityLevelRequest) (*model.SecurityLevelRequest, error)
	GetSecurityLevelRequest(ctx context.Context, requestID int64) (*model.SecurityLevelRequest, error)
	ListSecurityLevelRequests(ctx context.Context, status model.AccessRequestStatus) ([]model.SecurityLevelRequest, error)
	ListUserSecurityLevelRequests(ctx context.Context, userID int64) ([]model.SecurityLevelRequest, error)
	ResolveSecurityLevelRequest(ctx context.Context, requestID int64, status model.AccessRequestStatus, resolvedBy int64, note string, apply func(model.SecurityLevelRequest) error) (*model.SecurityLevelRequest, error)
}

// SecurityLevelRequestDAO stores clearance upgrade requests in Postgres.
type SecurityLevelRequestDAO struct {
	DB PgxIface
}

func NewSecurityLevelRequestDAO(db PgxIface) *SecurityLevelRequestDAO {
	return &SecurityLevelRequestDAO{DB: db}
}

const securityLevelRequestColumns = `id, user_id, COALESCE(username, ''), current_level, requested_level, justification,
	status, created_at, resolved_at, resolved_by, COALESCE(resolution_note, '')`

func scanSecurityLevelRequest(row pgx.Row) (*model.SecurityLevelRequest, error) {
	var (
		req                    model.SecurityLevelRequest
		current, requested, st string
	)
	err := row.Scan(&req.ID, &req.UserID, &req.Username, &current, &requested, &req.Justification,
		&st, &req.CreatedAt, &req.ResolvedAt, &req.ResolvedBy, &req.ResolutionNote)
	if err != nil {
		return nil, err
	}
	req.CurrentLevel = model.SecurityLevel(current)
	req.RequestedLevel = model.SecurityLevel(requested)
	req.Status = model.AccessRequestStatus(st)
	return &req, nil
}

func (dao *SecurityLevelRequestDAO) queryRequests(ctx context.Context, query string, args ...any) ([]model.SecurityLevelRequest, error) {
	rows, err := dao.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", sec_errors.ErrDatabaseOperation, err)
	}
	defer rows.Close()

	out := make([]model.SecurityLevelRequest, 0)
	for rows.Next() {
		req, err := scanSecurityLevelRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", sec_errors.ErrDatabaseOperation, err)
		}
		out = append(out, *req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", sec_errors.ErrDatabaseOperation, err)
	}
	return out, nil
}

// CreateSecurityLevelRequest inserts a PENDING request. A user with a pending
// request gets ErrSecurityLevelRequestPending.
func (dao *SecurityLevelRequestDAO) CreateSecurityLevelRequest(ctx context.Context, req model.SecurityLevelRequest) (*model.SecurityLevelRequest, error) {
	start := time.Now()
	err := dao.DB.QueryRow(ctx, `
		INSERT INTO security_level_requests (user_id, username, current_level, requested_level, justification, status)
		VALUES ($1, NULLIF($2, ''), $3, $4, $5, 'PENDING')
		RETURNING id, created_at`,
		req.UserID, req.Username, string(req.CurrentLevel), string(req.RequestedLevel), req.Justification).
		Scan(&req.ID, &req.CreatedAt)
	if isUniqueViolation(err) {
		return nil, sec_errors.ErrSecurityLevelRequestPending
	}
	if err != nil {
		logger.Error("Failed to create security level request", zap.Error(err), zap.Int64("userID", req.UserID))
		return nil, fmt.Errorf("%w: %v", sec_errors.ErrDatabaseOperation, err)
	}
	req.Status = model.AccessRequestPending

	logger.Info("Security level request created",
		zap.Int64("requestID", req.ID),
		zap.Int64("userID", req.UserID),
		zap.String("requestedLevel", string(req.RequestedLevel)),
		zap.Duration("duration", time.Since(start)))
	return &req, nil
}

func (dao *SecurityLevelRequestDAO) GetSecurityLevelRequest(ctx context.Context, requestID int64) (*model.SecurityLevelRequest, error) {
	req, err := scanSecurityLevelRequest(dao.DB.QueryRow(ctx,
		`SELECT `+securityLevelRequestColumns+` FROM security_level_requests WHERE id = $1`, requestID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, sec_errors.ErrSecurityLevelRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", sec_errors.ErrDatabaseOperation, err)
	}
	return req, nil
}

// ListSecurityLevelRequests lists requests, newest first. An empty status lists all.
func (dao *SecurityLevelRequestDAO) ListSecurityLevelRequests(ctx context.Context, status model.AccessRequestStatus) ([]model.SecurityLevelRequest, error) {
	if status == "" {
		return dao.queryRequests(ctx, `SELECT `+securityLevelRequestColumns+` FROM security_level_requests
			ORDER BY created_at DESC, id DESC`)
	}
	return dao.queryRequests(ctx, `SELECT `+securityLevelRequestColumns+` FROM security_level_requests
		WHERE status = $1 ORDER BY created_at DESC, id DESC`, string(status))
}

func (dao *SecurityLevelRequestDAO) ListUserSecurityLevelRequests(ctx context.Context, userID int64) ([]model.SecurityLevelRequest, error) {
	return dao.queryRequests(ctx, `SELECT `+securityLevelRequestColumns+` FROM security_level_requests
		WHERE user_id = $1 ORDER BY created_at DESC, id DESC`, userID)
}

// ResolveSecurityLevelRequest moves a PENDING request to status and runs apply
// on the resolved row before committing. An apply error rolls the resolution back.
func (dao *SecurityLevelRequestDAO) ResolveSecurityLevelRequest(ctx context.Context, requestID int64, status model.AccessRequestStatus, resolvedBy int64, note string, apply func(model.SecurityLevelRequest) error) (*model.SecurityLevelRequest, error) {
	start := time.Now()

	tx, err := dao.DB.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", sec_errors.ErrDatabaseOperation, err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			logger.Error("Failed to roll back security level resolution", zap.Error(err))
		}
	}()

	resolved, err := scanSecurityLevelRequest(tx.QueryRow(ctx, `
		UPDATE security_level_requests
		SET status = $2, resolved_by = $3, resolution_note = NULLIF($4, ''), resolved_at = NOW()
		WHERE id = $1 AND status = 'PENDING'
		RETURNING `+securityLevelRequestColumns,
		requestID, string(status), resolvedBy, note))
	if errors.Is(err, pgx.ErrNoRows) {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM security_level_requests WHERE id = $1)`, requestID).Scan(&exists); err != nil {
			return nil, fmt.Errorf("%w: %v", sec_errors.ErrDatabaseOperation, err)
		}
		if !exists {
			return nil, sec_errors.ErrSecurityLevelRequestNotFound
		}
		return nil, sec_errors.ErrSecurityLevelRequestResolved
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", sec_errors.ErrDatabaseOperation, err)
	}

	if apply != nil {
		if err := apply(*resolved); err != nil {
			return nil, err
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", sec_errors.ErrDatabaseOperation, err)
	}

	logger.Info("Security level request resolved",
		zap.Int64("requestID", requestID),
		zap.String("status", string(status)),
		zap.Int64("resolvedBy", resolvedBy),
		zap.Duration("duration", time.Since(start)))
	return resolved, nil
}
