// db/postgres.go
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/MichaelGetu-git/Security-Project/config"
	logger "github.com/MichaelGetu-git/Security-Project/logging"
)

var PostgresPool *pgxpool.Pool

// schema is applied on startup. The partial indexes keep at most one PENDING
// access request per (user, document) and one PENDING clearance request per user.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS documents (
		id             BIGSERIAL PRIMARY KEY,
		name           TEXT NOT NULL,
		owner_id       BIGINT NOT NULL,
		classification TEXT NOT NULL,
		department     TEXT,
		location       TEXT,
		created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS document_permissions (
		id              BIGSERIAL PRIMARY KEY,
		document_id     BIGINT NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
		user_id         BIGINT NOT NULL,
		permission_type TEXT NOT NULL,
		granted_by      BIGINT,
		granted_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (document_id, user_id, permission_type)
	)`,
	`CREATE TABLE IF NOT EXISTS document_access_requests (
		id              BIGSERIAL PRIMARY KEY,
		document_id     BIGINT NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
		user_id         BIGINT NOT NULL,
		reason          TEXT,
		status          TEXT NOT NULL DEFAULT 'PENDING',
		created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		resolved_at     TIMESTAMPTZ,
		resolved_by     BIGINT,
		resolution_note TEXT
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS document_access_requests_one_pending
		ON document_access_requests (document_id, user_id) WHERE status = 'PENDING'`,
	`CREATE INDEX IF NOT EXISTS document_permissions_user ON document_permissions (user_id)`,
	`CREATE TABLE IF NOT EXISTS security_level_requests (
		id              BIGSERIAL PRIMARY KEY,
		user_id         BIGINT NOT NULL,
		username        TEXT,
		current_level   TEXT NOT NULL,
		requested_level TEXT NOT NULL,
		justification   TEXT NOT NULL,
		status          TEXT NOT NULL DEFAULT 'PENDING',
		created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		resolved_at     TIMESTAMPTZ,
		resolved_by     BIGINT,
		resolution_note TEXT
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS security_level_requests_one_pending
		ON security_level_requests (user_id) WHERE status = 'PENDING'`,
}

func InitPostgres(ctx context.Context) error {
	poolConfig, err := pgxpool.ParseConfig(config.GetString("postgres.url"))
	if err != nil {
		return fmt.Errorf("invalid postgres url: %w", err)
	}
	if maxConns := config.GetInt("postgres.maxConns"); maxConns > 0 {
		poolConfig.MaxConns = int32(maxConns)
	}

	PostgresPool, err = pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return fmt.Errorf("unable to create connection pool: %w", err)
	}
	if err = PostgresPool.Ping(ctx); err != nil {
		return fmt.Errorf("failed to connect to Postgres: %w", err)
	}

	logger.Info("Successfully connected to Postgres", zap.Int32("maxConns", poolConfig.MaxConns))
	return nil
}

// Migrate creates the document store tables if they do not exist.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to migrate document store: %w", err)
		}
	}
	logger.Info("Document store schema is up to date", zap.Int("statements", len(schema)))
	return nil
}

func ClosePostgres() {
	if PostgresPool != nil {
		PostgresPool.Close()
		logger.Info("Postgres pool closed")
	}
}
