package audit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) LogAccess(ctx context.Context, log AuditLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *mockRepository) QueryLogs(ctx context.Context, q AuditQuery) ([]AuditLog, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]AuditLog), args.Error(1)
}

func TestService_LogAccessFillsDefaults(t *testing.T) {
	repo := new(mockRepository)
	fixed := time.Date(2024, 7, 8, 9, 30, 0, 0, time.UTC)
	svc := &service{repo: repo, now: func() time.Time { return fixed }}

	repo.On("LogAccess", mock.Anything, mock.MatchedBy(func(l AuditLog) bool {
		return l.ID != "" && l.Timestamp.Equal(fixed) && l.Status == StatusSuccess && l.Severity == "INFO"
	})).Return(nil)

	require.NoError(t, svc.LogAccess(context.Background(), AuditLog{UserID: 1, Action: ActionDocumentCreate}))
	repo.AssertExpectations(t)
}

func TestService_LogAccessKeepsExplicitValues(t *testing.T) {
	repo := new(mockRepository)
	svc := NewService(repo)

	entry := AuditLog{ID: "given", Timestamp: time.Unix(100, 0), Status: StatusFailure, Severity: "CRITICAL"}
	repo.On("LogAccess", mock.Anything, entry).Return(nil)

	require.NoError(t, svc.LogAccess(context.Background(), entry))
	repo.AssertExpectations(t)
}

func TestService_QueryLogsSwapsInvertedRange(t *testing.T) {
	repo := new(mockRepository)
	svc := NewService(repo)
	early := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	late := time.Date(2024, 7, 9, 0, 0, 0, 0, time.UTC)

	repo.On("QueryLogs", mock.Anything, AuditQuery{From: early, To: late}).Return([]AuditLog{{ID: "a"}}, nil)

	logs, err := svc.QueryLogs(context.Background(), AuditQuery{From: late, To: early})
	require.NoError(t, err)
	assert.Len(t, logs, 1)
}

func TestService_LogAccessTakesClientIPFromContext(t *testing.T) {
	repo := new(mockRepository)
	svc := NewService(repo)

	repo.On("LogAccess", mock.Anything, mock.MatchedBy(func(l AuditLog) bool {
		return l.IPAddress == "10.0.0.9"
	})).Return(nil)

	ctx := WithClientIP(context.Background(), "10.0.0.9")
	require.NoError(t, svc.LogAccess(ctx, AuditLog{Action: ActionDocumentList}))
	repo.AssertExpectations(t)
}
