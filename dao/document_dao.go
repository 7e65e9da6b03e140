// dao/document_dao.go
package dao

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	sec_errors "github.com/MichaelGetu-git/Security-Project/errors"
	logger "github.com/MichaelGetu-git/Security-Project/logging"
	"github.com/MichaelGetu-git/Security-Project/model"
)

type IDocumentDAO interface {
	CreateDocument(ctx context.Context, doc model.Document) (*model.Document, error)
	GetDocument(ctx context.Context, documentID int64) (*model.Document, error)
	ListDocuments(ctx context.Context) ([]model.Document, error)
	GrantPermission(ctx context.Context, grant model.PermissionGrant) (*model.PermissionGrant, error)
	RevokePermission(ctx context.Context, documentID, userID int64, permissionType string) (int64, error)
	ListDocumentPermissions(ctx context.Context, documentID int64) ([]model.PermissionGrant, error)
	ListUserPermissions(ctx context.Context, userID int64) ([]model.PermissionGrant, error)
}

// DocumentDAO stores documents and discretionary grants in Postgres.
type DocumentDAO struct {
	DB PgxIface
}

func NewDocumentDAO(db PgxIface) *DocumentDAO {
	return &DocumentDAO{DB: db}
}

const documentColumns = `id, name, owner_id, classification, COALESCE(department, ''), COALESCE(location, ''), created_at`

func scanDocument(row pgx.Row) (*model.Document, error) {
	var doc model.Document
	var classification string
	if err := row.Scan(&doc.ID, &doc.Name, &doc.OwnerID, &classification, &doc.Department, &doc.Location, &doc.CreatedAt); err != nil {
		return nil, err
	}
	doc.Classification = model.SecurityLevel(classification)
	return &doc, nil
}

func (dao *DocumentDAO) CreateDocument(ctx context.Context, doc model.Document) (*model.Document, error) {
	start := time.Now()
	logger.Info("Creating document", zap.String("name", doc.Name), zap.Int64("ownerID", doc.OwnerID))

	row := dao.DB.QueryRow(ctx, `
		INSERT INTO documents (name, owner_id, classification, department, location)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''))
		RETURNING `+documentColumns,
		doc.Name, doc.OwnerID, string(doc.Classification), doc.Department, doc.Location)
	created, err := scanDocument(row)
	if err != nil {
		logger.Error("Failed to create document", zap.Error(err), zap.Duration("duration", time.Since(start)))
		return nil, fmt.Errorf("%w: %v", sec_errors.ErrDatabaseOperation, err)
	}

	logger.Info("Document created successfully",
		zap.Int64("documentID", created.ID),
		zap.Duration("duration", time.Since(start)))
	return created, nil
}

func (dao *DocumentDAO) GetDocument(ctx context.Context, documentID int64) (*model.Document, error) {
	doc, err := scanDocument(dao.DB.QueryRow(ctx, `SELECT `+documentColumns+` FROM documents WHERE id = $1`, documentID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, sec_errors.ErrDocumentNotFound
	}
	if err != nil {
		logger.Error("Failed to get document", zap.Error(err), zap.Int64("documentID", documentID))
		return nil, fmt.Errorf("%w: %v", sec_errors.ErrDatabaseOperation, err)
	}
	return doc, nil
}

func (dao *DocumentDAO) ListDocuments(ctx context.Context) ([]model.Document, error) {
	start := time.Now()
	rows, err := dao.DB.Query(ctx, `SELECT `+documentColumns+` FROM documents ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", sec_errors.ErrDatabaseOperation, err)
	}
	defer rows.Close()

	docs := make([]model.Document, 0)
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", sec_errors.ErrDatabaseOperation, err)
		}
		docs = append(docs, *doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", sec_errors.ErrDatabaseOperation, err)
	}

	logger.Debug("Documents listed", zap.Int("count", len(docs)), zap.Duration("duration", time.Since(start)))
	return docs, nil
}

// GrantPermission upserts on (document, user, permission type).
func (dao *DocumentDAO) GrantPermission(ctx context.Context, grant model.PermissionGrant) (*model.PermissionGrant, error) {
	if err := upsertGrant(ctx, dao.DB, &grant); err != nil {
		logger.Error("Failed to grant permission",
			zap.Error(err),
			zap.Int64("documentID", grant.DocumentID),
			zap.Int64("userID", grant.UserID),
			zap.String("permission", grant.PermissionType))
		return nil, fmt.Errorf("%w: %v", sec_errors.ErrDatabaseOperation, err)
	}
	logger.Info("Permission granted",
		zap.Int64("documentID", grant.DocumentID),
		zap.Int64("userID", grant.UserID),
		zap.String("permission", grant.PermissionType))
	return &grant, nil
}

// RevokePermission deletes the user's grants on the document, or only the
// given type when permissionType is set. It returns the number removed.
func (dao *DocumentDAO) RevokePermission(ctx context.Context, documentID, userID int64, permissionType string) (int64, error) {
	var (
		tag pgconn.CommandTag
		err error
	)
	if permissionType == "" {
		tag, err = dao.DB.Exec(ctx, `DELETE FROM document_permissions WHERE document_id = $1 AND user_id = $2`, documentID, userID)
	} else {
		tag, err = dao.DB.Exec(ctx, `DELETE FROM document_permissions WHERE document_id = $1 AND user_id = $2 AND permission_type = $3`,
			documentID, userID, permissionType)
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %v", sec_errors.ErrDatabaseOperation, err)
	}
	logger.Info("Permission revoked",
		zap.Int64("documentID", documentID),
		zap.Int64("userID", userID),
		zap.String("permission", permissionType),
		zap.Int64("removed", tag.RowsAffected()))
	return tag.RowsAffected(), nil
}

func (dao *DocumentDAO) ListDocumentPermissions(ctx context.Context, documentID int64) ([]model.PermissionGrant, error) {
	return dao.queryGrants(ctx, `
		SELECT id, document_id, user_id, permission_type, COALESCE(granted_by, 0), granted_at
		FROM document_permissions WHERE document_id = $1 ORDER BY granted_at DESC`, documentID)
}

func (dao *DocumentDAO) ListUserPermissions(ctx context.Context, userID int64) ([]model.PermissionGrant, error) {
	return dao.queryGrants(ctx, `
		SELECT id, document_id, user_id, permission_type, COALESCE(granted_by, 0), granted_at
		FROM document_permissions WHERE user_id = $1`, userID)
}

func (dao *DocumentDAO) queryGrants(ctx context.Context, query string, arg int64) ([]model.PermissionGrant, error) {
	rows, err := dao.DB.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", sec_errors.ErrDatabaseOperation, err)
	}
	grants, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.PermissionGrant, error) {
		var g model.PermissionGrant
		err := row.Scan(&g.ID, &g.DocumentID, &g.UserID, &g.PermissionType, &g.GrantedBy, &g.GrantedAt)
		return g, err
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", sec_errors.ErrDatabaseOperation, err)
	}
	return grants, nil
}
