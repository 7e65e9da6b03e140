// test/mock/audit.go
package mock

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/MichaelGetu-git/Security-Project/audit"
)

// MockAuditService is a mock implementation of audit.Service
type MockAuditService struct {
	mock.Mock
}

func (m *MockAuditService) LogAccess(ctx context.Context, log audit.AuditLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *MockAuditService) QueryLogs(ctx context.Context, q audit.AuditQuery) ([]audit.AuditLog, error) {
	args := m.Called(ctx, q)
	logs, _ := args.Get(0).([]audit.AuditLog)
	return logs, args.Error(1)
}
