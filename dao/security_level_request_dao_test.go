package dao

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sec_errors "github.com/MichaelGetu-git/Security-Project/errors"
	"github.com/MichaelGetu-git/Security-Project/model"
)

var (
	insertLevelRequestPattern = regexp.QuoteMeta(`INSERT INTO security_level_requests`)
	resolveLevelPattern       = regexp.QuoteMeta(`UPDATE security_level_requests SET status = $2`) + `.*` +
		regexp.QuoteMeta(`WHERE id = $1 AND status = 'PENDING' RETURNING`)
	levelRequestExistsPattern = regexp.QuoteMeta(`SELECT EXISTS (SELECT 1 FROM security_level_requests WHERE id = $1)`)
)

var levelRequestColumns = []string{
	"id", "user_id", "username", "current_level", "requested_level", "justification",
	"status", "created_at", "resolved_at", "resolved_by", "resolution_note",
}

func TestSecurityLevelRequestDAO_Create(t *testing.T) {
	req := model.SecurityLevelRequest{
		UserID:         7,
		Username:       "alice",
		CurrentLevel:   model.SecurityLevelPublic,
		RequestedLevel: model.SecurityLevelInternal,
		Justification:  "team lead",
	}

	t.Run("Created", func(t *testing.T) {
		mock := newMockDB(t)
		store := NewSecurityLevelRequestDAO(mock)

		mock.ExpectQuery(insertLevelRequestPattern).
			WithArgs(int64(7), "alice", "PUBLIC", "INTERNAL", "team lead").
			WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(3), time.Now()))

		created, err := store.CreateSecurityLevelRequest(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, int64(3), created.ID)
		assert.Equal(t, model.AccessRequestPending, created.Status)
	})

	t.Run("SecondPendingRequest", func(t *testing.T) {
		mock := newMockDB(t)
		store := NewSecurityLevelRequestDAO(mock)

		mock.ExpectQuery(insertLevelRequestPattern).
			WithArgs(int64(7), "alice", "PUBLIC", "INTERNAL", "team lead").
			WillReturnError(&pgconn.PgError{Code: "23505"})

		_, err := store.CreateSecurityLevelRequest(context.Background(), req)
		assert.ErrorIs(t, err, sec_errors.ErrSecurityLevelRequestPending)
	})
}

func TestSecurityLevelRequestDAO_Resolve(t *testing.T) {
	created := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	resolvedAt := created.Add(time.Hour)
	resolver := int64(1)
	approvedRow := func() *pgxmock.Rows {
		return pgxmock.NewRows(levelRequestColumns).AddRow(
			int64(3), int64(7), "alice", "PUBLIC", "CONFIDENTIAL", "board reporting",
			"APPROVED", created, &resolvedAt, &resolver, "")
	}

	t.Run("ApplyThenCommit", func(t *testing.T) {
		mock := newMockDB(t)
		store := NewSecurityLevelRequestDAO(mock)

		mock.ExpectBegin()
		mock.ExpectQuery(resolveLevelPattern).
			WithArgs(int64(3), "APPROVED", int64(1), "").
			WillReturnRows(approvedRow())
		mock.ExpectCommit()

		var applied model.SecurityLevelRequest
		req, err := store.ResolveSecurityLevelRequest(context.Background(), 3, model.AccessRequestApproved, 1, "",
			func(r model.SecurityLevelRequest) error {
				applied = r
				return nil
			})
		require.NoError(t, err)
		assert.Equal(t, model.SecurityLevelConfidential, req.RequestedLevel)
		assert.Equal(t, int64(7), applied.UserID)
		assert.Equal(t, model.AccessRequestApproved, applied.Status)
	})

	t.Run("ApplyFailureRollsBack", func(t *testing.T) {
		mock := newMockDB(t)
		store := NewSecurityLevelRequestDAO(mock)

		mock.ExpectBegin()
		mock.ExpectQuery(resolveLevelPattern).
			WithArgs(int64(3), "APPROVED", int64(1), "").
			WillReturnRows(approvedRow())
		mock.ExpectRollback()

		graphDown := errors.New("neo4j unavailable")
		_, err := store.ResolveSecurityLevelRequest(context.Background(), 3, model.AccessRequestApproved, 1, "",
			func(model.SecurityLevelRequest) error { return graphDown })
		assert.ErrorIs(t, err, graphDown)
	})

	t.Run("AlreadyResolvedRollsBack", func(t *testing.T) {
		mock := newMockDB(t)
		store := NewSecurityLevelRequestDAO(mock)

		mock.ExpectBegin()
		mock.ExpectQuery(resolveLevelPattern).
			WithArgs(int64(3), "REJECTED", int64(1), "").
			WillReturnRows(pgxmock.NewRows(levelRequestColumns))
		mock.ExpectQuery(levelRequestExistsPattern).
			WithArgs(int64(3)).
			WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
		mock.ExpectRollback()

		called := false
		_, err := store.ResolveSecurityLevelRequest(context.Background(), 3, model.AccessRequestRejected, 1, "",
			func(model.SecurityLevelRequest) error {
				called = true
				return nil
			})
		assert.ErrorIs(t, err, sec_errors.ErrSecurityLevelRequestResolved)
		assert.False(t, called)
	})

	t.Run("UnknownRequest", func(t *testing.T) {
		mock := newMockDB(t)
		store := NewSecurityLevelRequestDAO(mock)

		mock.ExpectBegin()
		mock.ExpectQuery(resolveLevelPattern).
			WithArgs(int64(404), "APPROVED", int64(1), "").
			WillReturnRows(pgxmock.NewRows(levelRequestColumns))
		mock.ExpectQuery(levelRequestExistsPattern).
			WithArgs(int64(404)).
			WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectRollback()

		_, err := store.ResolveSecurityLevelRequest(context.Background(), 404, model.AccessRequestApproved, 1, "", nil)
		assert.ErrorIs(t, err, sec_errors.ErrSecurityLevelRequestNotFound)
	})
}
