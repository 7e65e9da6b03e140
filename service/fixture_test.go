package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/MichaelGetu-git/Security-Project/audit"
	"github.com/MichaelGetu-git/Security-Project/model"
	pdp_dao "github.com/MichaelGetu-git/Security-Project/pdp/dao"
	"github.com/MichaelGetu-git/Security-Project/pdp/engine"
	"github.com/MichaelGetu-git/Security-Project/service"
	sec_mock "github.com/MichaelGetu-git/Security-Project/test/mock"
	"github.com/MichaelGetu-git/Security-Project/util"
)

// Monday, inside office hours.
var decisionTime = time.Date(2024, time.July, 8, 10, 0, 0, 0, time.UTC)

var (
	readerRole  = model.Role{Name: "Employee", Permissions: []string{"documents:read"}}
	creatorRole = model.Role{Name: "Manager", Permissions: []string{"documents:read", "documents:create"}}
	sharerRole  = model.Role{Name: "Owner", Permissions: []string{"documents:read", "documents:share"}}
	adminRole   = model.Role{Name: "Admin", Permissions: []string{"*"}}
)

type fixture struct {
	docs     *sec_mock.MockDocumentDAO
	requests *sec_mock.MockAccessRequestDAO
	levels   *sec_mock.MockSecurityLevelRequestDAO
	users    *sec_mock.MockUserDAO
	roles    *sec_mock.MockRoleDAO
	policies *sec_mock.MockPolicyDAO
	cache    *sec_mock.MockCache
	audit    *sec_mock.MockAuditService
	bus      *util.EventBus
	validate *util.ValidationUtil
	notify   *util.NotificationService
	access   *service.AccessService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		docs:     new(sec_mock.MockDocumentDAO),
		requests: new(sec_mock.MockAccessRequestDAO),
		levels:   new(sec_mock.MockSecurityLevelRequestDAO),
		users:    new(sec_mock.MockUserDAO),
		roles:    new(sec_mock.MockRoleDAO),
		policies: new(sec_mock.MockPolicyDAO),
		cache:    new(sec_mock.MockCache),
		audit:    new(sec_mock.MockAuditService),
		bus:      util.NewEventBus(),
		validate: util.NewValidationUtil(),
		notify:   util.NewNotificationService(),
	}
	f.audit.On("LogAccess", mock.Anything, mock.Anything).Return(nil)

	inputs := pdp_dao.NewDecisionInputDAO(f.policies, f.docs, f.requests, f.users)
	decisionEngine := engine.NewDecisionEngine(
		engine.WithClock(func() time.Time { return decisionTime }),
		engine.WithLocation(time.UTC),
	)
	f.access = service.NewAccessService(f.docs, inputs, decisionEngine, f.audit, 2)
	return f
}

func (f *fixture) documentService() *service.DocumentService {
	return service.NewDocumentService(f.docs, f.requests, f.users, f.access, f.audit, f.validate, f.bus)
}

func (f *fixture) accessRequestService() *service.AccessRequestService {
	return service.NewAccessRequestService(f.requests, f.docs, f.users, f.audit, f.validate, f.cache, f.notify, f.bus, time.Second)
}

func (f *fixture) policyService() *service.PolicyService {
	return service.NewPolicyService(f.policies, f.audit, f.validate, f.notify, f.bus)
}

func (f *fixture) userService() *service.UserService {
	return service.NewUserService(f.users, f.roles, f.levels, f.audit, f.validate, f.cache, f.notify, f.bus)
}

// noStoredInputs makes every decision see no policies, grants or approvals.
func (f *fixture) noStoredInputs() {
	f.policies.On("ListActivePolicies", mock.Anything).Return([]model.Policy{}, nil)
	f.docs.On("ListDocumentPermissions", mock.Anything, mock.Anything).Return([]model.PermissionGrant{}, nil)
	f.requests.On("HasApprovedAccessRequest", mock.Anything, mock.Anything, mock.Anything).Return(false, nil)
}

// audited returns the entries written so far, after pending events settle.
func (f *fixture) audited() []audit.AuditLog {
	f.bus.Wait()
	var logs []audit.AuditLog
	for _, call := range f.audit.Calls {
		if call.Method == "LogAccess" {
			logs = append(logs, call.Arguments.Get(1).(audit.AuditLog))
		}
	}
	return logs
}

func (f *fixture) auditedAction(action string) []audit.AuditLog {
	var out []audit.AuditLog
	for _, l := range f.audited() {
		if l.Action == action {
			out = append(out, l)
		}
	}
	return out
}

func subject(id int64, level model.SecurityLevel, dept string, roles ...model.Role) model.User {
	if len(roles) == 0 {
		roles = []model.Role{readerRole}
	}
	return model.User{ID: id, Username: "user", SecurityLevel: level, Department: dept, Roles: roles}
}
