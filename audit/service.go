// audit/service.go
package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Service interface {
	LogAccess(ctx context.Context, log AuditLog) error
	QueryLogs(ctx context.Context, q AuditQuery) ([]AuditLog, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

// LogAccess fills in the id, timestamp, default status and client address
// before storing.
func (s *service) LogAccess(ctx context.Context, log AuditLog) error {
	if log.ID == "" {
		log.ID = uuid.New().String()
	}
	if log.Timestamp.IsZero() {
		log.Timestamp = s.now().UTC()
	}
	if log.Status == "" {
		log.Status = StatusSuccess
	}
	if log.Severity == "" {
		log.Severity = "INFO"
	}
	if log.IPAddress == "" {
		log.IPAddress = ClientIP(ctx)
	}
	return s.repo.LogAccess(ctx, log)
}

func (s *service) QueryLogs(ctx context.Context, q AuditQuery) ([]AuditLog, error) {
	if !q.From.IsZero() && !q.To.IsZero() && q.To.Before(q.From) {
		q.From, q.To = q.To, q.From
	}
	return s.repo.QueryLogs(ctx, q)
}
