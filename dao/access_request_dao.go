// dao/access_request_dao.go
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

type IAccessRequestDAO interface {
	CreateAccessRequest(ctx context.Context, req model.AccessRequest) (*model.AccessRequest, error)
	GetAccessRequest(ctx context.Context, requestID int64) (*model.AccessRequest, error)
	LatestAccessRequest(ctx context.Context, userID, documentID int64) (*model.AccessRequest, error)
	LatestAccessRequestsByUser(ctx context.Context, userID int64) (map[int64]*model.AccessRequest, error)
	ListAccessRequests(ctx context.Context, status model.AccessRequestStatus) ([]model.AccessRequest, error)
	ListUserAccessRequests(ctx context.Context, userID int64) ([]model.AccessRequest, error)
	ResolveAccessRequest(ctx context.Context, requestID int64, status model.AccessRequestStatus, resolvedBy int64, note string, grant *model.PermissionGrant) (*model.AccessRequest, error)
	HasApprovedAccessRequest(ctx context.Context, userID, documentID int64) (bool, error)
}

// AccessRequestDAO stores exception requests in Postgres.
type AccessRequestDAO struct {
	DB PgxIface
}

func NewAccessRequestDAO(db PgxIface) *AccessRequestDAO {
	return &AccessRequestDAO{DB: db}
}

const accessRequestSelect = `
	SELECT r.id, r.document_id, r.user_id, COALESCE(r.reason, ''), r.status, r.created_at,
		r.resolved_at, r.resolved_by, COALESCE(r.resolution_note, ''),
		COALESCE(d.name, ''), COALESCE(d.classification, '')
	FROM document_access_requests r
	LEFT JOIN documents d ON d.id = r.document_id`

func scanAccessRequest(row pgx.Row) (*model.AccessRequest, error) {
	var (
		req            model.AccessRequest
		status         string
		classification string
	)
	err := row.Scan(&req.ID, &req.DocumentID, &req.UserID, &req.Reason, &status, &req.CreatedAt,
		&req.ResolvedAt, &req.ResolvedBy, &req.ResolutionNote, &req.DocumentName, &classification)
	if err != nil {
		return nil, err
	}
	req.Status = model.AccessRequestStatus(status)
	req.DocumentClassification = model.SecurityLevel(classification)
	return &req, nil
}

func collectAccessRequests(rows pgx.Rows) ([]model.AccessRequest, error) {
	defer rows.Close()
	out := make([]model.AccessRequest, 0)
	for rows.Next() {
		req, err := scanAccessRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *req)
	}
	return out, rows.Err()
}

// CreateAccessRequest inserts a PENDING request. A second pending request for
// the same (user, document) fails with ErrAccessRequestPending.
func (dao *AccessRequestDAO) CreateAccessRequest(ctx context.Context, req model.AccessRequest) (*model.AccessRequest, error) {
	start := time.Now()
	err := dao.DB.QueryRow(ctx, `
		INSERT INTO document_access_requests (document_id, user_id, reason, status)
		VALUES ($1, $2, NULLIF($3, ''), 'PENDING')
		RETURNING id, created_at`,
		req.DocumentID, req.UserID, req.Reason).Scan(&req.ID, &req.CreatedAt)
	if isUniqueViolation(err) {
		return nil, sec_errors.ErrAccessRequestPending
	}
	if err != nil {
		logger.Error("Failed to create access request",
			zap.Error(err),
			zap.Int64("userID", req.UserID),
			zap.Int64("documentID", req.DocumentID))
		return nil, fmt.Errorf("%w: %v", sec_errors.ErrDatabaseOperation, err)
	}
	req.Status = model.AccessRequestPending

	logger.Info("Access request created",
		zap.Int64("requestID", req.ID),
		zap.Int64("userID", req.UserID),
		zap.Int64("documentID", req.DocumentID),
		zap.Duration("duration", time.Since(start)))
	return &req, nil
}

func (dao *AccessRequestDAO) GetAccessRequest(ctx context.Context, requestID int64) (*model.AccessRequest, error) {
	req, err := scanAccessRequest(dao.DB.QueryRow(ctx, accessRequestSelect+` WHERE r.id = $1`, requestID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, sec_errors.ErrAccessRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", sec_errors.ErrDatabaseOperation, err)
	}
	return req, nil
}

// LatestAccessRequest returns nil, nil when the user never asked for the document.
func (dao *AccessRequestDAO) LatestAccessRequest(ctx context.Context, userID, documentID int64) (*model.AccessRequest, error) {
	req, err := scanAccessRequest(dao.DB.QueryRow(ctx, accessRequestSelect+`
		WHERE r.user_id = $1 AND r.document_id = $2
		ORDER BY r.created_at DESC, r.id DESC
		LIMIT 1`, userID, documentID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", sec_errors.ErrDatabaseOperation, err)
	}
	return req, nil
}

// LatestAccessRequestsByUser maps document id to the user's most recent request for it.
func (dao *AccessRequestDAO) LatestAccessRequestsByUser(ctx context.Context, userID int64) (map[int64]*model.AccessRequest, error) {
	rows, err := dao.DB.Query(ctx, `
		SELECT DISTINCT ON (r.document_id) r.id, r.document_id, r.user_id, COALESCE(r.reason, ''), r.status, r.created_at,
			r.resolved_at, r.resolved_by, COALESCE(r.resolution_note, ''),
			COALESCE(d.name, ''), COALESCE(d.classification, '')
		FROM document_access_requests r
		LEFT JOIN documents d ON d.id = r.document_id
		WHERE r.user_id = $1
		ORDER BY r.document_id, r.created_at DESC, r.id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", sec_errors.ErrDatabaseOperation, err)
	}
	reqs, err := collectAccessRequests(rows)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", sec_errors.ErrDatabaseOperation, err)
	}

	latest := make(map[int64]*model.AccessRequest, len(reqs))
	for i := range reqs {
		latest[reqs[i].DocumentID] = &reqs[i]
	}
	return latest, nil
}

// ListAccessRequests lists requests, newest first. An empty status lists all.
func (dao *AccessRequestDAO) ListAccessRequests(ctx context.Context, status model.AccessRequestStatus) ([]model.AccessRequest, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if status == "" {
		rows, err = dao.DB.Query(ctx, accessRequestSelect+` ORDER BY r.created_at DESC, r.id DESC`)
	} else {
		rows, err = dao.DB.Query(ctx, accessRequestSelect+` WHERE r.status = $1 ORDER BY r.created_at DESC, r.id DESC`, string(status))
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", sec_errors.ErrDatabaseOperation, err)
	}
	reqs, err := collectAccessRequests(rows)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", sec_errors.ErrDatabaseOperation, err)
	}
	return reqs, nil
}

func (dao *AccessRequestDAO) ListUserAccessRequests(ctx context.Context, userID int64) ([]model.AccessRequest, error) {
	rows, err := dao.DB.Query(ctx, accessRequestSelect+` WHERE r.user_id = $1 ORDER BY r.created_at DESC, r.id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", sec_errors.ErrDatabaseOperation, err)
	}
	reqs, err := collectAccessRequests(rows)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", sec_errors.ErrDatabaseOperation, err)
	}
	return reqs, nil
}

// ResolveAccessRequest moves a PENDING request to status. When grant is
// non-nil it is upserted in the same transaction.
func (dao *AccessRequestDAO) ResolveAccessRequest(ctx context.Context, requestID int64, status model.AccessRequestStatus, resolvedBy int64, note string, grant *model.PermissionGrant) (*model.AccessRequest, error) {
	start := time.Now()

	tx, err := dao.DB.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", sec_errors.ErrDatabaseOperation, err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			logger.Error("Failed to roll back access request resolution", zap.Error(err))
		}
	}()

	tag, err := tx.Exec(ctx, `
		UPDATE document_access_requests
		SET status = $2, resolved_by = $3, resolution_note = NULLIF($4, ''), resolved_at = NOW()
		WHERE id = $1 AND status = 'PENDING'`,
		requestID, string(status), resolvedBy, note)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", sec_errors.ErrDatabaseOperation, err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM document_access_requests WHERE id = $1)`, requestID).Scan(&exists); err != nil {
			return nil, fmt.Errorf("%w: %v", sec_errors.ErrDatabaseOperation, err)
		}
		if !exists {
			return nil, sec_errors.ErrAccessRequestNotFound
		}
		return nil, sec_errors.ErrAccessRequestResolved
	}

	if grant != nil {
		if err := upsertGrant(ctx, tx, grant); err != nil {
			return nil, fmt.Errorf("%w: %v", sec_errors.ErrDatabaseOperation, err)
		}
	}

	resolved, err := scanAccessRequest(tx.QueryRow(ctx, accessRequestSelect+` WHERE r.id = $1`, requestID))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", sec_errors.ErrDatabaseOperation, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", sec_errors.ErrDatabaseOperation, err)
	}

	logger.Info("Access request resolved",
		zap.Int64("requestID", requestID),
		zap.String("status", string(status)),
		zap.Int64("resolvedBy", resolvedBy),
		zap.Bool("granted", grant != nil),
		zap.Duration("duration", time.Since(start)))
	return resolved, nil
}

func (dao *AccessRequestDAO) HasApprovedAccessRequest(ctx context.Context, userID, documentID int64) (bool, error) {
	var approved bool
	err := dao.DB.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM document_access_requests
			WHERE user_id = $1 AND document_id = $2 AND status = 'APPROVED'
		)`, userID, documentID).Scan(&approved)
	if err != nil {
		return false, fmt.Errorf("%w: %v", sec_errors.ErrDatabaseOperation, err)
	}
	return approved, nil
}
