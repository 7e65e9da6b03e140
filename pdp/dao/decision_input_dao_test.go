package dao

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/MichaelGetu-git/Security-Project/model"
)

type fakeSources struct {
	mock.Mock
}

func (f *fakeSources) ListActivePolicies(ctx context.Context) ([]model.Policy, error) {
	args := f.Called(ctx)
	policies, _ := args.Get(0).([]model.Policy)
	return policies, args.Error(1)
}

func (f *fakeSources) ListDocumentPermissions(ctx context.Context, documentID int64) ([]model.PermissionGrant, error) {
	args := f.Called(ctx, documentID)
	grants, _ := args.Get(0).([]model.PermissionGrant)
	return grants, args.Error(1)
}

func (f *fakeSources) HasApprovedAccessRequest(ctx context.Context, userID, documentID int64) (bool, error) {
	args := f.Called(ctx, userID, documentID)
	return args.Bool(0), args.Error(1)
}

func (f *fakeSources) GetEmployeeDepartment(ctx context.Context, userID int64) (string, error) {
	args := f.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func newLoader(f *fakeSources) *DecisionInputDAO {
	return NewDecisionInputDAO(f, f, f, f)
}

func TestLoadDecisionRequest(t *testing.T) {
	f := new(fakeSources)
	policies := []model.Policy{{ID: "p1", IsActive: true}}
	grants := []model.PermissionGrant{{DocumentID: 9, UserID: 2, PermissionType: model.PermissionRead}}

	f.On("ListActivePolicies", mock.Anything).Return(policies, nil)
	f.On("ListDocumentPermissions", mock.Anything, int64(9)).Return(grants, nil)
	f.On("HasApprovedAccessRequest", mock.Anything, int64(2), int64(9)).Return(true, nil)
	f.On("GetEmployeeDepartment", mock.Anything, int64(2)).Return("Finance", nil)

	req, err := newLoader(f).LoadDecisionRequest(context.Background(), model.User{ID: 2}, model.Document{ID: 9})
	require.NoError(t, err)

	assert.Equal(t, policies, req.Policies)
	assert.Equal(t, grants, req.Grants)
	assert.True(t, req.HasApprovedRequest)
	assert.Equal(t, "Finance", req.User.Department)
	f.AssertExpectations(t)
}

func TestLoadDecisionRequest_KeepsKnownDepartment(t *testing.T) {
	f := new(fakeSources)
	f.On("ListActivePolicies", mock.Anything).Return([]model.Policy{}, nil)
	f.On("ListDocumentPermissions", mock.Anything, int64(9)).Return([]model.PermissionGrant{}, nil)
	f.On("HasApprovedAccessRequest", mock.Anything, int64(2), int64(9)).Return(false, nil)

	req, err := newLoader(f).LoadDecisionRequest(context.Background(), model.User{ID: 2, Department: "HR"}, model.Document{ID: 9})
	require.NoError(t, err)

	assert.Equal(t, "HR", req.User.Department)
	f.AssertNotCalled(t, "GetEmployeeDepartment", mock.Anything, mock.Anything)
}

func TestLoadDecisionRequestWithSnapshot_SkipsPolicyRead(t *testing.T) {
	f := new(fakeSources)
	f.On("ListDocumentPermissions", mock.Anything, int64(9)).Return([]model.PermissionGrant{}, nil)
	f.On("HasApprovedAccessRequest", mock.Anything, int64(2), int64(9)).Return(false, nil)

	snapshot := []model.Policy{{ID: "p1"}}
	req, err := newLoader(f).LoadDecisionRequestWithSnapshot(context.Background(), model.User{ID: 2, Department: "HR"}, model.Document{ID: 9}, snapshot)
	require.NoError(t, err)

	assert.Equal(t, snapshot, req.Policies)
	f.AssertNotCalled(t, "ListActivePolicies", mock.Anything)
}

func TestLoadDecisionRequest_PropagatesStoreError(t *testing.T) {
	f := new(fakeSources)
	storeErr := errors.New("connection reset")
	f.On("ListActivePolicies", mock.Anything).Return(nil, storeErr)
	f.On("ListDocumentPermissions", mock.Anything, mock.Anything).Return([]model.PermissionGrant{}, nil).Maybe()
	f.On("HasApprovedAccessRequest", mock.Anything, mock.Anything, mock.Anything).Return(false, nil).Maybe()

	_, err := newLoader(f).LoadDecisionRequest(context.Background(), model.User{ID: 2, Department: "HR"}, model.Document{ID: 9})
	assert.ErrorIs(t, err, storeErr)
}
