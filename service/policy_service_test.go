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
)

func officeHours() model.Policy {
	return model.Policy{
		Name:     "Office hours",
		Type:     model.PolicyTypeRuBAC,
		IsActive: true,
		Rules:    model.PolicyRules{WorkingHours: &model.HourWindow{Start: 9, End: 17}},
	}
}

func TestPolicyService_CreatePolicy(t *testing.T) {
	f := newFixture(t)
	admin := subject(1, model.SecurityLevelConfidential, "", adminRole)

	input := officeHours()
	input.Name = "  Office hours "
	f.policies.On("CreatePolicy", mock.Anything, officeHours()).
		Return(&model.Policy{ID: "p-1", Name: "Office hours", Type: model.PolicyTypeRuBAC, IsActive: true, Version: 1}, nil)

	created, err := f.policyService().CreatePolicy(context.Background(), input, admin)
	require.NoError(t, err)
	assert.Equal(t, "p-1", created.ID)

	logs := f.auditedAction(audit.ActionPolicyCreated)
	require.Len(t, logs, 1)
	assert.Equal(t, "policy:p-1", logs[0].Resource)
	assert.Equal(t, int64(1), logs[0].UserID)
}

func TestPolicyService_CreatePolicyValidation(t *testing.T) {
	ctx := context.Background()
	admin := subject(1, model.SecurityLevelConfidential, "", adminRole)

	tests := []struct {
		name   string
		mutate func(*model.Policy)
	}{
		{"MissingName", func(p *model.Policy) { p.Name = "   " }},
		{"UnknownType", func(p *model.Policy) { p.Type = "XACML" }},
		{"HourOutOfRange", func(p *model.Policy) { p.Rules.WorkingHours.End = 24 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			p := officeHours()
			tt.mutate(&p)
			_, err := f.policyService().CreatePolicy(ctx, p, admin)
			assert.ErrorIs(t, err, sec_errors.ErrInvalidPolicyData)
			f.policies.AssertNotCalled(t, "CreatePolicy", mock.Anything, mock.Anything)
		})
	}
}

func TestPolicyService_UpdatePolicy(t *testing.T) {
	ctx := context.Background()
	admin := subject(1, model.SecurityLevelConfidential, "", adminRole)

	stored := officeHours()
	stored.ID = "p-1"
	stored.Version = 1

	t.Run("Unchanged", func(t *testing.T) {
		f := newFixture(t)
		f.policies.On("GetPolicy", mock.Anything, "p-1").Return(&stored, nil)

		got, err := f.policyService().UpdatePolicy(ctx, stored, admin)
		require.NoError(t, err)
		assert.Equal(t, 1, got.Version)
		f.policies.AssertNotCalled(t, "UpdatePolicy", mock.Anything, mock.Anything)
		assert.Empty(t, f.auditedAction(audit.ActionPolicyUpdated))
	})

	t.Run("Changed", func(t *testing.T) {
		f := newFixture(t)
		f.policies.On("GetPolicy", mock.Anything, "p-1").Return(&stored, nil)
		changed := stored
		changed.IsActive = false
		updated := changed
		updated.Version = 2
		f.policies.On("UpdatePolicy", mock.Anything, changed).Return(&updated, nil)

		got, err := f.policyService().UpdatePolicy(ctx, changed, admin)
		require.NoError(t, err)
		assert.Equal(t, 2, got.Version)
		assert.Len(t, f.auditedAction(audit.ActionPolicyUpdated), 1)
	})

	t.Run("Missing", func(t *testing.T) {
		f := newFixture(t)
		f.policies.On("GetPolicy", mock.Anything, "p-1").Return(nil, sec_errors.ErrPolicyNotFound)
		_, err := f.policyService().UpdatePolicy(ctx, stored, admin)
		assert.ErrorIs(t, err, sec_errors.ErrPolicyNotFound)
	})
}

func TestPolicyService_DeletePolicy(t *testing.T) {
	f := newFixture(t)
	admin := subject(1, model.SecurityLevelConfidential, "", adminRole)
	f.policies.On("DeletePolicy", mock.Anything, "p-1").Return(nil).Once()
	f.policies.On("DeletePolicy", mock.Anything, "p-2").Return(sec_errors.ErrPolicyNotFound).Once()

	require.NoError(t, f.policyService().DeletePolicy(context.Background(), "p-1", admin))
	assert.ErrorIs(t, f.policyService().DeletePolicy(context.Background(), "p-2", admin), sec_errors.ErrPolicyNotFound)
	assert.Len(t, f.auditedAction(audit.ActionPolicyDeleted), 1)
}

func TestPolicyService_GetPolicyHidesStoreErrors(t *testing.T) {
	f := newFixture(t)
	f.policies.On("GetPolicy", mock.Anything, "p-1").Return(nil, sec_errors.ErrDatabaseOperation)
	f.policies.On("GetPolicy", mock.Anything, "p-2").Return(nil, sec_errors.ErrPolicyNotFound)

	_, err := f.policyService().GetPolicy(context.Background(), "p-1")
	assert.ErrorIs(t, err, sec_errors.ErrInternalServer)
	_, err = f.policyService().GetPolicy(context.Background(), "p-2")
	assert.ErrorIs(t, err, sec_errors.ErrPolicyNotFound)
}
