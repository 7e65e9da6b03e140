package engine

import (
	"time"

	"go.uber.org/zap"

	logger "github.com/MichaelGetu-git/Security-Project/logging"
	"github.com/MichaelGetu-git/Security-Project/model"
	pdp_model "github.com/MichaelGetu-git/Security-Project/pdp/model"
)

// PolicyEvaluator applies ABAC and RuBAC rule records to a request context.
// It holds no state and is safe for concurrent use.
type PolicyEvaluator struct{}

func NewPolicyEvaluator() *PolicyEvaluator {
	return &PolicyEvaluator{}
}

// Evaluate reports whether every active policy passes.
func (pe *PolicyEvaluator) Evaluate(policies []model.Policy, rc *pdp_model.RequestContext) bool {
	return pe.FirstDenial(policies, rc) == nil
}

// FirstDenial returns the result of the first active policy that fails, or nil.
func (pe *PolicyEvaluator) FirstDenial(policies []model.Policy, rc *pdp_model.RequestContext) *pdp_model.PolicyEvaluationResult {
	for i := range policies {
		policy := &policies[i]
		if !policy.IsActive {
			continue
		}

		result := pe.evaluatePolicy(policy, rc)
		if !result.Matched {
			logger.Debug("Policy denied request",
				zap.String("policyID", policy.ID),
				zap.String("policyName", policy.Name),
				zap.String("reason", result.Reason),
				zap.Int64("userID", rc.User.ID),
				zap.Int64("documentID", rc.Resource.ID))
			return &result
		}
	}
	return nil
}

func (pe *PolicyEvaluator) evaluatePolicy(policy *model.Policy, rc *pdp_model.RequestContext) pdp_model.PolicyEvaluationResult {
	result := pdp_model.PolicyEvaluationResult{
		PolicyID:   policy.ID,
		PolicyName: policy.Name,
		Matched:    true,
	}
	deny := func(reason string) pdp_model.PolicyEvaluationResult {
		result.Matched = false
		result.Reason = reason
		return result
	}

	roles := rc.User.Roles
	rules := policy.Rules

	if IsAdmin(roles) {
		result.Reason = "admin override"
		return result
	}

	// Department rule scoped to listed documents. DecisionEngine repeats a
	// department check against the document's own visibility field; the two
	// trigger under different conditions and both apply.
	if rules.Department != "" && rules.AllowedResources != nil && len(*rules.AllowedResources) > 0 {
		if rules.AllowedResources.Contains(rc.Resource.ID) && !rc.IsOwner {
			if rc.Department == "" || rc.Department != rules.Department {
				return deny("department not permitted for resource")
			}
		}
	}

	// A requester with no department on file is not blocked here.
	if rules.Department != "" && rules.AllowedResources == nil && !rc.IsOwnerOrHasDAC {
		if rc.Department != "" && rc.Department != rules.Department {
			return deny("department mismatch")
		}
	}

	if rules.Role != "" && !HasRole(roles, rules.Role) {
		return deny("required role missing")
	}

	if rules.WorkingHours != nil && !withinWorkingHours(*rules.WorkingHours, rc.Time.Hour()) {
		if !hasApproval(rules, roles) {
			return deny("outside working hours")
		}
	}

	if rules.BlockWeekend && isWeekend(rc.Time) {
		if !hasApproval(rules, roles) {
			return deny("weekend access blocked")
		}
	}

	if rules.Location != "" && rc.Resource.Location != "" && rc.Resource.Location != rules.Location {
		return deny("location mismatch")
	}

	return result
}

// withinWorkingHours reports whether hour is inside the allowed window.
// A window with Start > End wraps midnight: [Start,24) and [0,End) are the
// restricted hours.
func withinWorkingHours(w model.HourWindow, hour int) bool {
	if w.Start <= w.End {
		return hour >= w.Start && hour < w.End
	}
	return hour >= w.End && hour < w.Start
}

func isWeekend(t time.Time) bool {
	day := t.Weekday()
	return day == time.Saturday || day == time.Sunday
}

func hasApproval(rules model.PolicyRules, roles []model.Role) bool {
	return rules.ApprovalRole != "" && HasRole(roles, rules.ApprovalRole)
}
