package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/MichaelGetu-git/Security-Project/audit"
	sec_errors "github.com/MichaelGetu-git/Security-Project/errors"
	"github.com/MichaelGetu-git/Security-Project/model"
	pdp_model "github.com/MichaelGetu-git/Security-Project/pdp/model"
)

func tokenIdentity() model.User {
	return model.User{
		ID:            7,
		Username:      "alice",
		SecurityLevel: model.SecurityLevelInternal,
		Roles:         []model.Role{{Name: "Employee"}, {Name: "Ghost"}},
	}
}

func TestUserService_ResolveSubjectFromCache(t *testing.T) {
	f := newFixture(t)
	cached := &model.User{ID: 7, Username: "alice", SecurityLevel: model.SecurityLevelInternal, Roles: []model.Role{readerRole}}
	f.cache.On("GetUser", mock.Anything, int64(7)).Return(cached, nil)

	user, err := f.userService().ResolveSubject(context.Background(), tokenIdentity())
	require.NoError(t, err)
	assert.Equal(t, cached, user)
	f.users.AssertNotCalled(t, "GetUser", mock.Anything, mock.Anything)
}

func TestUserService_ResolveSubjectProvisionsRoles(t *testing.T) {
	f := newFixture(t)
	identity := tokenIdentity()
	f.cache.On("GetUser", mock.Anything, int64(7)).Return(nil, nil)
	f.users.On("EnsureUser", mock.Anything, identity).Return(nil)
	f.users.On("GetUser", mock.Anything, int64(7)).Return(&model.User{ID: 7, Roles: []model.Role{}}, nil).Once()
	f.users.On("AssignRole", mock.Anything, int64(7), "Employee").Return(nil)
	f.users.On("AssignRole", mock.Anything, int64(7), "Ghost").Return(sec_errors.ErrRoleNotFound)
	provisioned := &model.User{ID: 7, Username: "alice", SecurityLevel: model.SecurityLevelInternal, Roles: []model.Role{readerRole}}
	f.users.On("GetUser", mock.Anything, int64(7)).Return(provisioned, nil).Once()
	f.cache.On("SetUser", mock.Anything, *provisioned).Return(nil)

	user, err := f.userService().ResolveSubject(context.Background(), identity)
	require.NoError(t, err)
	assert.Equal(t, provisioned, user)
	f.users.AssertExpectations(t)
	f.cache.AssertExpectations(t)
}

func TestUserService_ResolveSubjectStaleCache(t *testing.T) {
	f := newFixture(t)
	identity := tokenIdentity()
	stale := &model.User{ID: 7, Username: "alice.old", SecurityLevel: model.SecurityLevelInternal, Roles: []model.Role{readerRole}}
	fresh := &model.User{ID: 7, Username: "alice", SecurityLevel: model.SecurityLevelInternal, Roles: []model.Role{readerRole}}
	f.cache.On("GetUser", mock.Anything, int64(7)).Return(stale, nil)
	f.users.On("EnsureUser", mock.Anything, identity).Return(nil)
	f.users.On("GetUser", mock.Anything, int64(7)).Return(fresh, nil)
	f.cache.On("SetUser", mock.Anything, *fresh).Return(nil)

	user, err := f.userService().ResolveSubject(context.Background(), identity)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	f.users.AssertNotCalled(t, "AssignRole", mock.Anything, mock.Anything, mock.Anything)
}

func TestUserService_ResolveSubjectStoredLevelWins(t *testing.T) {
	t.Run("Cached", func(t *testing.T) {
		f := newFixture(t)
		raised := &model.User{ID: 7, Username: "alice", SecurityLevel: model.SecurityLevelConfidential, Roles: []model.Role{readerRole}}
		f.cache.On("GetUser", mock.Anything, int64(7)).Return(raised, nil)

		user, err := f.userService().ResolveSubject(context.Background(), tokenIdentity())
		require.NoError(t, err)
		assert.Equal(t, model.SecurityLevelConfidential, user.SecurityLevel)
		f.users.AssertNotCalled(t, "EnsureUser", mock.Anything, mock.Anything)
	})

	t.Run("FromGraph", func(t *testing.T) {
		f := newFixture(t)
		identity := tokenIdentity()
		stored := &model.User{ID: 7, Username: "alice", SecurityLevel: model.SecurityLevelPublic, Roles: []model.Role{readerRole}}
		f.cache.On("GetUser", mock.Anything, int64(7)).Return(nil, nil)
		f.users.On("EnsureUser", mock.Anything, identity).Return(nil)
		f.users.On("GetUser", mock.Anything, int64(7)).Return(stored, nil)
		f.cache.On("SetUser", mock.Anything, *stored).Return(nil)

		user, err := f.userService().ResolveSubject(context.Background(), identity)
		require.NoError(t, err)
		assert.Equal(t, model.SecurityLevelPublic, user.SecurityLevel)
	})
}

func TestUserService_AssignRoleInvalidatesCache(t *testing.T) {
	f := newFixture(t)
	admin := subject(1, model.SecurityLevelConfidential, "", adminRole)
	f.users.On("AssignRole", mock.Anything, int64(7), "Manager").Return(nil)
	f.cache.On("DeleteUser", mock.Anything, int64(7)).Return(nil)

	require.NoError(t, f.userService().AssignRole(context.Background(), admin, 7, " Manager "))
	f.cache.AssertExpectations(t)

	logs := f.auditedAction(audit.ActionRoleAssigned)
	require.Len(t, logs, 1)
	assert.Equal(t, "user:7", logs[0].Resource)
}

func TestUserService_AssignRoleErrors(t *testing.T) {
	f := newFixture(t)
	admin := subject(1, model.SecurityLevelConfidential, "", adminRole)
	f.users.On("AssignRole", mock.Anything, int64(7), "Nobody").Return(sec_errors.ErrRoleNotFound)

	assert.ErrorIs(t, f.userService().AssignRole(context.Background(), admin, 7, "Nobody"), sec_errors.ErrRoleNotFound)
	assert.ErrorIs(t, f.userService().AssignRole(context.Background(), admin, 7, " "), sec_errors.ErrInvalidRoleData)
	f.cache.AssertNotCalled(t, "DeleteUser", mock.Anything, mock.Anything)
}

func TestUserService_SetDepartment(t *testing.T) {
	f := newFixture(t)
	admin := subject(1, model.SecurityLevelConfidential, "", adminRole)
	f.users.On("SetDepartment", mock.Anything, int64(7), "Finance").Return(nil)
	f.cache.On("DeleteUser", mock.Anything, int64(7)).Return(nil)

	require.NoError(t, f.userService().SetDepartment(context.Background(), admin, 7, "Finance"))
	assert.Len(t, f.auditedAction(audit.ActionDepartmentAssigned), 1)
}

func TestUserService_CreateRole(t *testing.T) {
	f := newFixture(t)
	admin := subject(1, model.SecurityLevelConfidential, "", adminRole)
	role := model.Role{Name: "Auditor", Permissions: []string{"audit:read"}}
	f.roles.On("CreateRole", mock.Anything, role).Return(&role, nil)

	created, err := f.userService().CreateRole(context.Background(), admin, role)
	require.NoError(t, err)
	assert.Equal(t, "Auditor", created.Name)

	_, err = f.userService().CreateRole(context.Background(), admin, model.Role{Name: ""})
	assert.ErrorIs(t, err, sec_errors.ErrInvalidRoleData)
}

func TestUserService_SetSecurityLevel(t *testing.T) {
	admin := subject(1, model.SecurityLevelConfidential, "", adminRole)

	t.Run("RaiseToConfidential", func(t *testing.T) {
		f := newFixture(t)
		f.users.On("GetUser", mock.Anything, int64(7)).
			Return(&model.User{ID: 7, SecurityLevel: model.SecurityLevelInternal}, nil)
		f.users.On("SetSecurityLevel", mock.Anything, int64(7), model.SecurityLevelConfidential).Return(nil)
		f.cache.On("DeleteUser", mock.Anything, int64(7)).Return(nil)

		require.NoError(t, f.userService().SetSecurityLevel(context.Background(), admin, 7, "confidential"))
		f.cache.AssertExpectations(t)

		logs := f.auditedAction(audit.ActionSecurityLevelChanged)
		require.Len(t, logs, 1)
		assert.Equal(t, "user:7", logs[0].Resource)
		assert.Equal(t, string(pdp_model.SeverityCritical), logs[0].Severity)
		assert.Contains(t, string(logs[0].Details), `"previousLevel":"INTERNAL"`)
	})

	t.Run("Lowering", func(t *testing.T) {
		f := newFixture(t)
		f.users.On("GetUser", mock.Anything, int64(7)).
			Return(&model.User{ID: 7, SecurityLevel: model.SecurityLevelInternal}, nil)
		f.users.On("SetSecurityLevel", mock.Anything, int64(7), model.SecurityLevelPublic).Return(nil)
		f.cache.On("DeleteUser", mock.Anything, int64(7)).Return(nil)

		require.NoError(t, f.userService().SetSecurityLevel(context.Background(), admin, 7, "PUBLIC"))
		logs := f.auditedAction(audit.ActionSecurityLevelChanged)
		require.Len(t, logs, 1)
		assert.Equal(t, string(pdp_model.SeverityWarn), logs[0].Severity)
	})

	t.Run("UnknownLevel", func(t *testing.T) {
		f := newFixture(t)

		err := f.userService().SetSecurityLevel(context.Background(), admin, 7, "TOP_SECRET")
		assert.ErrorIs(t, err, sec_errors.ErrInvalidUserData)
		f.users.AssertNotCalled(t, "SetSecurityLevel", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("UnknownUser", func(t *testing.T) {
		f := newFixture(t)
		f.users.On("GetUser", mock.Anything, int64(99)).Return(nil, sec_errors.ErrUserNotFound)

		err := f.userService().SetSecurityLevel(context.Background(), admin, 99, "INTERNAL")
		assert.ErrorIs(t, err, sec_errors.ErrUserNotFound)
		f.cache.AssertNotCalled(t, "DeleteUser", mock.Anything, mock.Anything)
	})
}

func TestUserService_RequestSecurityLevel(t *testing.T) {
	t.Run("Upgrade", func(t *testing.T) {
		f := newFixture(t)
		requester := subject(7, model.SecurityLevelPublic, "Finance")
		expected := model.SecurityLevelRequest{
			UserID:         7,
			Username:       "user",
			CurrentLevel:   model.SecurityLevelPublic,
			RequestedLevel: model.SecurityLevelConfidential,
			Justification:  "board reporting",
		}
		created := expected
		created.ID = 3
		created.Status = model.AccessRequestPending
		f.levels.On("CreateSecurityLevelRequest", mock.Anything, expected).Return(&created, nil)
		f.users.On("ListUserIDsWithRole", mock.Anything, "Admin").Return([]int64{1}, nil)

		req, err := f.userService().RequestSecurityLevel(context.Background(), requester,
			model.SecurityLevelRequestInput{Level: " confidential ", Justification: " board reporting "})
		require.NoError(t, err)
		assert.Equal(t, int64(3), req.ID)

		logs := f.auditedAction(audit.ActionSecurityLevelRequested)
		require.Len(t, logs, 1)
		assert.Equal(t, string(pdp_model.SeverityWarn), logs[0].Severity)
		assert.Equal(t, "user:7", logs[0].Resource)
	})

	t.Run("InternalUpgradeIsInfo", func(t *testing.T) {
		f := newFixture(t)
		requester := subject(7, model.SecurityLevelPublic, "")
		f.levels.On("CreateSecurityLevelRequest", mock.Anything, mock.Anything).
			Return(&model.SecurityLevelRequest{ID: 4, UserID: 7, RequestedLevel: model.SecurityLevelInternal}, nil)
		f.users.On("ListUserIDsWithRole", mock.Anything, "Admin").Return([]int64{}, nil)

		_, err := f.userService().RequestSecurityLevel(context.Background(), requester,
			model.SecurityLevelRequestInput{Level: model.SecurityLevelInternal, Justification: "team lead"})
		require.NoError(t, err)

		logs := f.auditedAction(audit.ActionSecurityLevelRequested)
		require.Len(t, logs, 1)
		assert.Equal(t, string(pdp_model.SeverityInfo), logs[0].Severity)
	})

	rejected := []struct {
		name    string
		current model.SecurityLevel
		input   model.SecurityLevelRequestInput
	}{
		{"SameLevel", model.SecurityLevelInternal, model.SecurityLevelRequestInput{Level: model.SecurityLevelInternal, Justification: "x"}},
		{"Downgrade", model.SecurityLevelConfidential, model.SecurityLevelRequestInput{Level: model.SecurityLevelPublic, Justification: "x"}},
		{"UnknownLevel", model.SecurityLevelPublic, model.SecurityLevelRequestInput{Level: "SECRET", Justification: "x"}},
		{"MissingJustification", model.SecurityLevelPublic, model.SecurityLevelRequestInput{Level: model.SecurityLevelInternal, Justification: "  "}},
	}
	for _, tt := range rejected {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			_, err := f.userService().RequestSecurityLevel(context.Background(), subject(7, tt.current, ""), tt.input)
			assert.ErrorIs(t, err, sec_errors.ErrInvalidSecurityLevelRequest)
			f.levels.AssertNotCalled(t, "CreateSecurityLevelRequest", mock.Anything, mock.Anything)
			assert.Empty(t, f.audited())
		})
	}

	t.Run("AlreadyPending", func(t *testing.T) {
		f := newFixture(t)
		f.levels.On("CreateSecurityLevelRequest", mock.Anything, mock.Anything).
			Return(nil, sec_errors.ErrSecurityLevelRequestPending)

		_, err := f.userService().RequestSecurityLevel(context.Background(), subject(7, model.SecurityLevelPublic, ""),
			model.SecurityLevelRequestInput{Level: model.SecurityLevelInternal, Justification: "again"})
		assert.ErrorIs(t, err, sec_errors.ErrSecurityLevelRequestPending)
	})
}

func TestUserService_ListSecurityLevelRequests(t *testing.T) {
	f := newFixture(t)
	pending := []model.SecurityLevelRequest{{ID: 3, UserID: 7, Status: model.AccessRequestPending}}
	f.levels.On("ListSecurityLevelRequests", mock.Anything, model.AccessRequestPending).Return(pending, nil)
	f.levels.On("ListUserSecurityLevelRequests", mock.Anything, int64(7)).Return(pending, nil)

	reqs, err := f.userService().ListSecurityLevelRequests(context.Background(), model.AccessRequestPending)
	require.NoError(t, err)
	assert.Equal(t, pending, reqs)

	mine, err := f.userService().ListMySecurityLevelRequests(context.Background(), 7)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	_, err = f.userService().ListSecurityLevelRequests(context.Background(), "LOST")
	assert.ErrorIs(t, err, sec_errors.ErrInvalidSecurityLevelRequest)
}

func TestUserService_ResolveSecurityLevelRequest(t *testing.T) {
	admin := subject(1, model.SecurityLevelConfidential, "", adminRole)
	resolvedAs := func(status model.AccessRequestStatus, level model.SecurityLevel) *model.SecurityLevelRequest {
		return &model.SecurityLevelRequest{
			ID: 3, UserID: 7, Status: status,
			CurrentLevel: model.SecurityLevelPublic, RequestedLevel: level,
		}
	}

	t.Run("ApproveWritesLevelAndInvalidatesCache", func(t *testing.T) {
		f := newFixture(t)
		f.levels.On("ResolveSecurityLevelRequest", mock.Anything, int64(3), model.AccessRequestApproved, int64(1), "ok").
			Return(resolvedAs(model.AccessRequestApproved, model.SecurityLevelConfidential), nil)
		f.users.On("SetSecurityLevel", mock.Anything, int64(7), model.SecurityLevelConfidential).Return(nil)
		f.cache.On("DeleteUser", mock.Anything, int64(7)).Return(nil)

		req, err := f.userService().ResolveSecurityLevelRequest(context.Background(), admin, 3,
			model.ResolveSecurityLevelRequestInput{Status: model.AccessRequestApproved, Note: " ok "})
		require.NoError(t, err)
		assert.Equal(t, model.AccessRequestApproved, req.Status)
		f.users.AssertExpectations(t)
		f.cache.AssertExpectations(t)

		logs := f.auditedAction(audit.ActionSecurityLevelApproved)
		require.Len(t, logs, 1)
		assert.Equal(t, string(pdp_model.SeverityCritical), logs[0].Severity)
		assert.Equal(t, "user:7", logs[0].Resource)
	})

	t.Run("RejectLeavesLevel", func(t *testing.T) {
		f := newFixture(t)
		f.levels.On("ResolveSecurityLevelRequest", mock.Anything, int64(3), model.AccessRequestRejected, int64(1), "").
			Return(resolvedAs(model.AccessRequestRejected, model.SecurityLevelInternal), nil)

		_, err := f.userService().ResolveSecurityLevelRequest(context.Background(), admin, 3,
			model.ResolveSecurityLevelRequestInput{Status: model.AccessRequestRejected})
		require.NoError(t, err)
		f.users.AssertNotCalled(t, "SetSecurityLevel", mock.Anything, mock.Anything, mock.Anything)
		f.cache.AssertNotCalled(t, "DeleteUser", mock.Anything, mock.Anything)

		logs := f.auditedAction(audit.ActionSecurityLevelRejected)
		require.Len(t, logs, 1)
		assert.Equal(t, string(pdp_model.SeverityInfo), logs[0].Severity)
	})

	t.Run("LevelWriteFails", func(t *testing.T) {
		f := newFixture(t)
		f.levels.On("ResolveSecurityLevelRequest", mock.Anything, int64(3), model.AccessRequestApproved, int64(1), "").
			Return(resolvedAs(model.AccessRequestApproved, model.SecurityLevelInternal), nil)
		f.users.On("SetSecurityLevel", mock.Anything, int64(7), model.SecurityLevelInternal).Return(sec_errors.ErrUserNotFound)

		_, err := f.userService().ResolveSecurityLevelRequest(context.Background(), admin, 3,
			model.ResolveSecurityLevelRequestInput{Status: model.AccessRequestApproved})
		assert.ErrorIs(t, err, sec_errors.ErrUserNotFound)
		assert.Empty(t, f.audited())
	})

	t.Run("AlreadyResolved", func(t *testing.T) {
		f := newFixture(t)
		f.levels.On("ResolveSecurityLevelRequest", mock.Anything, int64(3), model.AccessRequestApproved, int64(1), "").
			Return(nil, sec_errors.ErrSecurityLevelRequestResolved)

		_, err := f.userService().ResolveSecurityLevelRequest(context.Background(), admin, 3,
			model.ResolveSecurityLevelRequestInput{Status: model.AccessRequestApproved})
		assert.ErrorIs(t, err, sec_errors.ErrSecurityLevelRequestResolved)
	})

	t.Run("InvalidStatus", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.userService().ResolveSecurityLevelRequest(context.Background(), admin, 3,
			model.ResolveSecurityLevelRequestInput{Status: model.AccessRequestPending})
		assert.ErrorIs(t, err, sec_errors.ErrInvalidSecurityLevelRequest)
	})
}
