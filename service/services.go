// service/services.go
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"github.com/MichaelGetu-git/Security-Project/audit"
	"github.com/MichaelGetu-git/Security-Project/dao"
	logger "github.com/MichaelGetu-git/Security-Project/logging"
	pdp_dao "github.com/MichaelGetu-git/Security-Project/pdp/dao"
	"github.com/MichaelGetu-git/Security-Project/pdp/engine"
	"github.com/MichaelGetu-git/Security-Project/util"
)

type Services struct {
	Access        IAccessService
	Document      IDocumentService
	AccessRequest IAccessRequestService
	Policy        IPolicyService
	User          IUserService
	Audit         audit.Service
}

// Options tunes the services. Zero values fall back to defaults.
type Options struct {
	MaxParallel int
	LockTTL     time.Duration
	Location    *time.Location
}

func InitializeServices(
	driver neo4j.DriverWithContext,
	pool *pgxpool.Pool,
	auditService audit.Service,
	validationUtil *util.ValidationUtil,
	cacheService util.Cache,
	notificationSvc *util.NotificationService,
	eventBus *util.EventBus,
	opts Options,
) (*Services, error) {
	policyDAO := dao.NewPolicyDAO(driver)
	userDAO := dao.NewUserDAO(driver)
	roleDAO := dao.NewRoleDAO(driver)
	documentDAO := dao.NewDocumentDAO(pool)
	accessRequestDAO := dao.NewAccessRequestDAO(pool)
	levelRequestDAO := dao.NewSecurityLevelRequestDAO(pool)

	inputs := pdp_dao.NewDecisionInputDAO(policyDAO, documentDAO, accessRequestDAO, userDAO)

	var engineOpts []engine.Option
	if opts.Location != nil {
		engineOpts = append(engineOpts, engine.WithLocation(opts.Location))
	}
	decisionEngine := engine.NewDecisionEngine(engineOpts...)

	accessService := NewAccessService(documentDAO, inputs, decisionEngine, auditService, opts.MaxParallel)

	services := &Services{
		Access:        accessService,
		Document:      NewDocumentService(documentDAO, accessRequestDAO, userDAO, accessService, auditService, validationUtil, eventBus),
		AccessRequest: NewAccessRequestService(accessRequestDAO, documentDAO, userDAO, auditService, validationUtil, cacheService, notificationSvc, eventBus, opts.LockTTL),
		Policy:        NewPolicyService(policyDAO, auditService, validationUtil, notificationSvc, eventBus),
		User:          NewUserService(userDAO, roleDAO, levelRequestDAO, auditService, validationUtil, cacheService, notificationSvc, eventBus),
		Audit:         auditService,
	}

	return services, nil
}

// recordAudit writes an audit entry. A failed write is logged and does not
// fail the operation being audited.
func recordAudit(ctx context.Context, auditService audit.Service, entry audit.AuditLog) {
	if err := auditService.LogAccess(ctx, entry); err != nil {
		logger.Warn("Failed to write audit log",
			zap.Error(err),
			zap.String("action", entry.Action),
			zap.Int64("userID", entry.UserID),
			zap.String("resource", entry.Resource))
	}
}

func documentResource(documentID int64) string {
	return fmt.Sprintf("document:%d", documentID)
}
