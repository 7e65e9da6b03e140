// dao/pgx.go
package dao

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/MichaelGetu-git/Security-Project/model"
)

// PgxIface is the subset of *pgxpool.Pool the document store uses.
type PgxIface interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

const pgUniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// upsertGrantSQL refreshes granted_by and granted_at on a repeated grant.
const upsertGrantSQL = `
	INSERT INTO document_permissions (document_id, user_id, permission_type, granted_by, granted_at)
	VALUES ($1, $2, $3, $4, NOW())
	ON CONFLICT (document_id, user_id, permission_type)
	DO UPDATE SET granted_by = EXCLUDED.granted_by, granted_at = NOW()
	RETURNING id, granted_at`

type queryRower interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func upsertGrant(ctx context.Context, q queryRower, grant *model.PermissionGrant) error {
	return q.QueryRow(ctx, upsertGrantSQL,
		grant.DocumentID, grant.UserID, grant.PermissionType, grant.GrantedBy).
		Scan(&grant.ID, &grant.GrantedAt)
}
