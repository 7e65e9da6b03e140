// test/mock/dao.go
package mock

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/MichaelGetu-git/Security-Project/dao"
	"github.com/MichaelGetu-git/Security-Project/model"
)

var (
	_ dao.IDocumentDAO      = &MockDocumentDAO{}
	_ dao.IAccessRequestDAO = &MockAccessRequestDAO{}
	_ dao.IUserDAO          = &MockUserDAO{}
	_ dao.IRoleDAO          = &MockRoleDAO{}
	_ dao.IPolicyDAO        = &MockPolicyDAO{}

	_ dao.ISecurityLevelRequestDAO = &MockSecurityLevelRequestDAO{}
)

type MockDocumentDAO struct {
	mock.Mock
}

func (m *MockDocumentDAO) CreateDocument(ctx context.Context, doc model.Document) (*model.Document, error) {
	args := m.Called(ctx, doc)
	created, _ := args.Get(0).(*model.Document)
	return created, args.Error(1)
}

func (m *MockDocumentDAO) GetDocument(ctx context.Context, documentID int64) (*model.Document, error) {
	args := m.Called(ctx, documentID)
	doc, _ := args.Get(0).(*model.Document)
	return doc, args.Error(1)
}

func (m *MockDocumentDAO) ListDocuments(ctx context.Context) ([]model.Document, error) {
	args := m.Called(ctx)
	docs, _ := args.Get(0).([]model.Document)
	return docs, args.Error(1)
}

func (m *MockDocumentDAO) GrantPermission(ctx context.Context, grant model.PermissionGrant) (*model.PermissionGrant, error) {
	args := m.Called(ctx, grant)
	g, _ := args.Get(0).(*model.PermissionGrant)
	return g, args.Error(1)
}

func (m *MockDocumentDAO) RevokePermission(ctx context.Context, documentID, userID int64, permissionType string) (int64, error) {
	args := m.Called(ctx, documentID, userID, permissionType)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDocumentDAO) ListDocumentPermissions(ctx context.Context, documentID int64) ([]model.PermissionGrant, error) {
	args := m.Called(ctx, documentID)
	grants, _ := args.Get(0).([]model.PermissionGrant)
	return grants, args.Error(1)
}

func (m *MockDocumentDAO) ListUserPermissions(ctx context.Context, userID int64) ([]model.PermissionGrant, error) {
	args := m.Called(ctx, userID)
	grants, _ := args.Get(0).([]model.PermissionGrant)
	return grants, args.Error(1)
}

type MockAccessRequestDAO struct {
	mock.Mock
}

func (m *MockAccessRequestDAO) CreateAccessRequest(ctx context.Context, req model.AccessRequest) (*model.AccessRequest, error) {
	args := m.Called(ctx, req)
	created, _ := args.Get(0).(*model.AccessRequest)
	return created, args.Error(1)
}

func (m *MockAccessRequestDAO) GetAccessRequest(ctx context.Context, requestID int64) (*model.AccessRequest, error) {
	args := m.Called(ctx, requestID)
	req, _ := args.Get(0).(*model.AccessRequest)
	return req, args.Error(1)
}

func (m *MockAccessRequestDAO) LatestAccessRequest(ctx context.Context, userID, documentID int64) (*model.AccessRequest, error) {
	args := m.Called(ctx, userID, documentID)
	req, _ := args.Get(0).(*model.AccessRequest)
	return req, args.Error(1)
}

func (m *MockAccessRequestDAO) LatestAccessRequestsByUser(ctx context.Context, userID int64) (map[int64]*model.AccessRequest, error) {
	args := m.Called(ctx, userID)
	latest, _ := args.Get(0).(map[int64]*model.AccessRequest)
	return latest, args.Error(1)
}

func (m *MockAccessRequestDAO) ListAccessRequests(ctx context.Context, status model.AccessRequestStatus) ([]model.AccessRequest, error) {
	args := m.Called(ctx, status)
	reqs, _ := args.Get(0).([]model.AccessRequest)
	return reqs, args.Error(1)
}

func (m *MockAccessRequestDAO) ListUserAccessRequests(ctx context.Context, userID int64) ([]model.AccessRequest, error) {
	args := m.Called(ctx, userID)
	reqs, _ := args.Get(0).([]model.AccessRequest)
	return reqs, args.Error(1)
}

func (m *MockAccessRequestDAO) ResolveAccessRequest(ctx context.Context, requestID int64, status model.AccessRequestStatus, resolvedBy int64, note string, grant *model.PermissionGrant) (*model.AccessRequest, error) {
	args := m.Called(ctx, requestID, status, resolvedBy, note, grant)
	req, _ := args.Get(0).(*model.AccessRequest)
	return req, args.Error(1)
}

func (m *MockAccessRequestDAO) HasApprovedAccessRequest(ctx context.Context, userID, documentID int64) (bool, error) {
	args := m.Called(ctx, userID, documentID)
	return args.Bool(0), args.Error(1)
}

type MockUserDAO struct {
	mock.Mock
}

func (m *MockUserDAO) EnsureUser(ctx context.Context, user model.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserDAO) GetUser(ctx context.Context, userID int64) (*model.User, error) {
	args := m.Called(ctx, userID)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}

func (m *MockUserDAO) GetEmployeeDepartment(ctx context.Context, userID int64) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func (m *MockUserDAO) SetDepartment(ctx context.Context, userID int64, department string) error {
	return m.Called(ctx, userID, department).Error(0)
}

func (m *MockUserDAO) SetSecurityLevel(ctx context.Context, userID int64, level model.SecurityLevel) error {
	return m.Called(ctx, userID, level).Error(0)
}

func (m *MockUserDAO) AssignRole(ctx context.Context, userID int64, roleName string) error {
	return m.Called(ctx, userID, roleName).Error(0)
}

func (m *MockUserDAO) RemoveRole(ctx context.Context, userID int64, roleName string) error {
	return m.Called(ctx, userID, roleName).Error(0)
}

func (m *MockUserDAO) ListUserIDsWithRole(ctx context.Context, roleName string) ([]int64, error) {
	args := m.Called(ctx, roleName)
	ids, _ := args.Get(0).([]int64)
	return ids, args.Error(1)
}

type MockRoleDAO struct {
	mock.Mock
}

func (m *MockRoleDAO) CreateRole(ctx context.Context, role model.Role) (*model.Role, error) {
	args := m.Called(ctx, role)
	created, _ := args.Get(0).(*model.Role)
	return created, args.Error(1)
}

func (m *MockRoleDAO) GetRoleByName(ctx context.Context, name string) (*model.Role, error) {
	args := m.Called(ctx, name)
	role, _ := args.Get(0).(*model.Role)
	return role, args.Error(1)
}

func (m *MockRoleDAO) ListRoles(ctx context.Context) ([]model.Role, error) {
	args := m.Called(ctx)
	roles, _ := args.Get(0).([]model.Role)
	return roles, args.Error(1)
}

type MockPolicyDAO struct {
	mock.Mock
}

func (m *MockPolicyDAO) CreatePolicy(ctx context.Context, policy model.Policy) (*model.Policy, error) {
	args := m.Called(ctx, policy)
	created, _ := args.Get(0).(*model.Policy)
	return created, args.Error(1)
}

func (m *MockPolicyDAO) UpdatePolicy(ctx context.Context, policy model.Policy) (*model.Policy, error) {
	args := m.Called(ctx, policy)
	updated, _ := args.Get(0).(*model.Policy)
	return updated, args.Error(1)
}

func (m *MockPolicyDAO) DeletePolicy(ctx context.Context, policyID string) error {
	return m.Called(ctx, policyID).Error(0)
}

func (m *MockPolicyDAO) GetPolicy(ctx context.Context, policyID string) (*model.Policy, error) {
	args := m.Called(ctx, policyID)
	policy, _ := args.Get(0).(*model.Policy)
	return policy, args.Error(1)
}

func (m *MockPolicyDAO) ListPolicies(ctx context.Context, limit, offset int) ([]model.Policy, error) {
	args := m.Called(ctx, limit, offset)
	policies, _ := args.Get(0).([]model.Policy)
	return policies, args.Error(1)
}

func (m *MockPolicyDAO) ListActivePolicies(ctx context.Context) ([]model.Policy, error) {
	args := m.Called(ctx)
	policies, _ := args.Get(0).([]model.Policy)
	return policies, args.Error(1)
}

type MockSecurityLevelRequestDAO struct {
	mock.Mock
}

func (m *MockSecurityLevelRequestDAO) CreateSecurityLevelRequest(ctx context.Context, req model.SecurityLevelRequest) (*model.SecurityLevelRequest, error) {
	args := m.Called(ctx, req)
	created, _ := args.Get(0).(*model.SecurityLevelRequest)
	return created, args.Error(1)
}

func (m *MockSecurityLevelRequestDAO) GetSecurityLevelRequest(ctx context.Context, requestID int64) (*model.SecurityLevelRequest, error) {
	args := m.Called(ctx, requestID)
	req, _ := args.Get(0).(*model.SecurityLevelRequest)
	return req, args.Error(1)
}

func (m *MockSecurityLevelRequestDAO) ListSecurityLevelRequests(ctx context.Context, status model.AccessRequestStatus) ([]model.SecurityLevelRequest, error) {
	args := m.Called(ctx, status)
	reqs, _ := args.Get(0).([]model.SecurityLevelRequest)
	return reqs, args.Error(1)
}

func (m *MockSecurityLevelRequestDAO) ListUserSecurityLevelRequests(ctx context.Context, userID int64) ([]model.SecurityLevelRequest, error) {
	args := m.Called(ctx, userID)
	reqs, _ := args.Get(0).([]model.SecurityLevelRequest)
	return reqs, args.Error(1)
}

// ResolveSecurityLevelRequest hands the returned request to apply, like the
// store does before committing, and fails with apply's error.
func (m *MockSecurityLevelRequestDAO) ResolveSecurityLevelRequest(ctx context.Context, requestID int64, status model.AccessRequestStatus, resolvedBy int64, note string, apply func(model.SecurityLevelRequest) error) (*model.SecurityLevelRequest, error) {
	args := m.Called(ctx, requestID, status, resolvedBy, note)
	req, _ := args.Get(0).(*model.SecurityLevelRequest)
	if err := args.Error(1); err != nil {
		return nil, err
	}
	if req != nil && apply != nil {
		if err := apply(*req); err != nil {
			return nil, err
		}
	}
	return req, nil
}
