package engine

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MichaelGetu-git/Security-Project/model"
	pdp_model "github.com/MichaelGetu-git/Security-Project/pdp/model"
)

var (
	employeeRole = model.Role{Name: "Employee", Permissions: []string{PermissionDocumentsRead}}
	managerRole  = model.Role{Name: "Manager", Permissions: []string{PermissionDocumentsRead}}
	adminRole    = model.Role{Name: "Admin", Permissions: []string{WildcardPermission}}
)

// July 8, 2024 is a Monday.
func weekday(hour int) time.Time {
	return time.Date(2024, time.July, 8, hour, 15, 0, 0, time.UTC)
}

func saturday(hour int) time.Time {
	return time.Date(2024, time.July, 13, hour, 0, 0, 0, time.UTC)
}

func resourceIDs(ids ...int64) *model.ResourceIDs {
	r := model.ResourceIDs(ids)
	return &r
}

func policy(id string, typ model.PolicyType, rules model.PolicyRules) model.Policy {
	return model.Policy{ID: id, Name: id, Type: typ, Rules: rules, IsActive: true}
}

func requestContext(dept string, at time.Time, roles ...model.Role) *pdp_model.RequestContext {
	return &pdp_model.RequestContext{
		User:       model.User{ID: 7, SecurityLevel: model.SecurityLevelInternal, Roles: roles, Department: dept},
		Resource:   model.Document{ID: 42, OwnerID: 1, Classification: model.SecurityLevelPublic},
		Action:     ActionRead,
		Time:       at,
		Department: dept,
	}
}

func TestPolicyEvaluator_AdminOverride(t *testing.T) {
	pe := NewPolicyEvaluator()
	policies := []model.Policy{
		policy("hours", model.PolicyTypeRuBAC, model.PolicyRules{WorkingHours: &model.HourWindow{Start: 9, End: 17}}),
		policy("weekend", model.PolicyTypeRuBAC, model.PolicyRules{BlockWeekend: true}),
		policy("dept", model.PolicyTypeABAC, model.PolicyRules{Department: "Finance", AllowedResources: resourceIDs(42)}),
		policy("role", model.PolicyTypeABAC, model.PolicyRules{Role: "Auditor"}),
		policy("location", model.PolicyTypeRuBAC, model.PolicyRules{Location: "HQ"}),
	}

	rc := requestContext("HR", saturday(23), model.Role{Name: "  ADMIN "})
	rc.Resource.Location = "Branch"

	assert.True(t, pe.Evaluate(policies, rc))
	assert.False(t, pe.Evaluate(policies, requestContext("HR", saturday(23), employeeRole)))
}

func TestPolicyEvaluator_DepartmentWithAllowedResources(t *testing.T) {
	pe := NewPolicyEvaluator()
	policies := []model.Policy{
		policy("payroll", model.PolicyTypeABAC, model.PolicyRules{Department: "Finance", AllowedResources: resourceIDs(42)}),
	}

	t.Run("OtherDepartmentDenied", func(t *testing.T) {
		denial := pe.FirstDenial(policies, requestContext("HR", weekday(10), employeeRole))
		require.NotNil(t, denial)
		assert.Equal(t, "payroll", denial.PolicyID)
	})

	t.Run("NoDepartmentDenied", func(t *testing.T) {
		assert.False(t, pe.Evaluate(policies, requestContext("", weekday(10), employeeRole)))
	})

	t.Run("MatchingDepartmentAllowed", func(t *testing.T) {
		assert.True(t, pe.Evaluate(policies, requestContext("Finance", weekday(10), employeeRole)))
	})

	t.Run("OwnerExempt", func(t *testing.T) {
		rc := requestContext("HR", weekday(10), employeeRole)
		rc.IsOwner = true
		rc.IsOwnerOrHasDAC = true
		assert.True(t, pe.Evaluate(policies, rc))
	})

	t.Run("GrantHolderNotExempt", func(t *testing.T) {
		rc := requestContext("HR", weekday(10), employeeRole)
		rc.IsOwnerOrHasDAC = true
		assert.False(t, pe.Evaluate(policies, rc))
	})

	t.Run("UnlistedDocumentUnrestricted", func(t *testing.T) {
		rc := requestContext("HR", weekday(10), employeeRole)
		rc.Resource.ID = 43
		assert.True(t, pe.Evaluate(policies, rc))
	})
}

func TestPolicyEvaluator_GenericDepartment(t *testing.T) {
	pe := NewPolicyEvaluator()
	policies := []model.Policy{
		policy("finance-only", model.PolicyTypeABAC, model.PolicyRules{Department: "Finance"}),
	}

	assert.False(t, pe.Evaluate(policies, requestContext("HR", weekday(10), employeeRole)))
	assert.True(t, pe.Evaluate(policies, requestContext("Finance", weekday(10), employeeRole)))
	assert.True(t, pe.Evaluate(policies, requestContext("", weekday(10), employeeRole)), "no department on file is not blocked")

	rc := requestContext("HR", weekday(10), employeeRole)
	rc.IsOwnerOrHasDAC = true
	assert.True(t, pe.Evaluate(policies, rc))
}

func TestPolicyEvaluator_LegacyAllowedResources(t *testing.T) {
	var rules model.PolicyRules
	require.NoError(t, json.Unmarshal([]byte(`{"department":"Finance","allowedResources":"salary data"}`), &rules))
	require.NotNil(t, rules.AllowedResources)
	assert.Empty(t, *rules.AllowedResources)

	pe := NewPolicyEvaluator()
	policies := []model.Policy{policy("legacy", model.PolicyTypeABAC, rules)}
	assert.True(t, pe.Evaluate(policies, requestContext("HR", weekday(10), employeeRole)))
}

func TestPolicyEvaluator_RequiredRole(t *testing.T) {
	pe := NewPolicyEvaluator()
	policies := []model.Policy{policy("managers", model.PolicyTypeABAC, model.PolicyRules{Role: "manager"})}

	assert.False(t, pe.Evaluate(policies, requestContext("", weekday(10), employeeRole)))
	assert.True(t, pe.Evaluate(policies, requestContext("", weekday(10), employeeRole, managerRole)))
}

func TestPolicyEvaluator_WorkingHours(t *testing.T) {
	pe := NewPolicyEvaluator()
	office := []model.Policy{policy("office", model.PolicyTypeRuBAC, model.PolicyRules{WorkingHours: &model.HourWindow{Start: 9, End: 17}})}
	night := []model.Policy{policy("night", model.PolicyTypeRuBAC, model.PolicyRules{
		WorkingHours: &model.HourWindow{Start: 22, End: 6},
		ApprovalRole: "Manager",
	})}

	tests := []struct {
		name     string
		policies []model.Policy
		hour     int
		roles    []model.Role
		want     bool
	}{
		{"OfficeInside", office, 9, []model.Role{employeeRole}, true},
		{"OfficeLastHour", office, 16, []model.Role{employeeRole}, true},
		{"OfficeAtEnd", office, 17, []model.Role{employeeRole}, false},
		{"OfficeEvening", office, 20, []model.Role{employeeRole}, false},
		{"OfficeNoApprovalRoleConfigured", office, 20, []model.Role{managerRole}, false},
		{"NightRestrictedLate", night, 23, []model.Role{employeeRole}, false},
		{"NightRestrictedEarly", night, 3, []model.Role{employeeRole}, false},
		{"NightApproved", night, 23, []model.Role{employeeRole, managerRole}, true},
		{"NightDaytime", night, 12, []model.Role{employeeRole}, true},
		{"NightAtEnd", night, 6, []model.Role{employeeRole}, true},
		{"NightAtStart", night, 22, []model.Role{employeeRole}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pe.Evaluate(tt.policies, requestContext("", weekday(tt.hour), tt.roles...)))
		})
	}
}

func TestPolicyEvaluator_BlockWeekend(t *testing.T) {
	pe := NewPolicyEvaluator()
	policies := []model.Policy{policy("weekdays", model.PolicyTypeRuBAC, model.PolicyRules{BlockWeekend: true, ApprovalRole: "Manager"})}

	assert.False(t, pe.Evaluate(policies, requestContext("", saturday(10), employeeRole)))
	assert.False(t, pe.Evaluate(policies, requestContext("", saturday(10).AddDate(0, 0, 1), employeeRole)))
	assert.True(t, pe.Evaluate(policies, requestContext("", saturday(10), employeeRole, managerRole)))
	assert.True(t, pe.Evaluate(policies, requestContext("", weekday(10), employeeRole)))
}

func TestPolicyEvaluator_Location(t *testing.T) {
	pe := NewPolicyEvaluator()
	policies := []model.Policy{policy("hq", model.PolicyTypeRuBAC, model.PolicyRules{Location: "HQ"})}

	rc := requestContext("", weekday(10), employeeRole)
	assert.True(t, pe.Evaluate(policies, rc), "resource without location is unrestricted")

	rc.Resource.Location = "HQ"
	assert.True(t, pe.Evaluate(policies, rc))

	rc.Resource.Location = "Branch"
	assert.False(t, pe.Evaluate(policies, rc))
}

func TestPolicyEvaluator_InactivePoliciesIgnored(t *testing.T) {
	pe := NewPolicyEvaluator()
	p := policy("off", model.PolicyTypeABAC, model.PolicyRules{Role: "Nobody"})
	p.IsActive = false

	assert.True(t, pe.Evaluate([]model.Policy{p}, requestContext("", weekday(10), employeeRole)))
	assert.True(t, pe.Evaluate(nil, requestContext("", weekday(10), employeeRole)))
}
