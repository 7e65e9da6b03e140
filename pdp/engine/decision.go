package engine

import (
	"strings"
	"time"

	"go.uber.org/zap"

	logger "github.com/MichaelGetu-git/Security-Project/logging"
	"github.com/MichaelGetu-git/Security-Project/model"
	pdp_model "github.com/MichaelGetu-git/Security-Project/pdp/model"
)

// PermissionDocumentsRead is the RBAC permission every reader needs.
const PermissionDocumentsRead = "documents:read"

// ActionRead is the only action the engine decides on.
const ActionRead = "read"

// Denial reasons, in the order they are reported.
const (
	ReasonRBAC   = "RBAC: missing documents:read"
	ReasonMAC    = "MAC: insufficient clearance"
	ReasonDAC    = "DAC: no discretionary grant"
	ReasonPolicy = "Policy engine denied (ABAC/RuBAC)"
	ReasonABAC   = "ABAC: attribute mismatch"
)

// Clock returns the current time.
type Clock func() time.Time

type Option func(*DecisionEngine)

// WithClock replaces the wall clock, for tests.
func WithClock(clock Clock) Option {
	return func(e *DecisionEngine) {
		e.clock = clock
	}
}

// WithLocation sets the zone working hours and weekends are evaluated in.
func WithLocation(loc *time.Location) Option {
	return func(e *DecisionEngine) {
		e.location = loc
	}
}

// DecisionEngine combines MAC, RBAC, DAC, the rule records and the document
// department check into one verdict. It has no mutable state.
type DecisionEngine struct {
	evaluator *PolicyEvaluator
	clock     Clock
	location  *time.Location
}

func NewDecisionEngine(opts ...Option) *DecisionEngine {
	e := &DecisionEngine{
		evaluator: NewPolicyEvaluator(),
		clock:     time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Decide returns the verdict for req.User reading req.Document.
func (e *DecisionEngine) Decide(req *pdp_model.DecisionRequest) *pdp_model.AccessDecision {
	user := req.User
	doc := req.Document
	reasons := make([]string, 0, 5)

	rbacAllowed := HasPermission(user.Roles, PermissionDocumentsRead)
	if !rbacAllowed {
		reasons = append(reasons, ReasonRBAC)
	}

	isOwner := doc.OwnerID == user.ID
	hasReadGrant := hasGrant(req.Grants, user.ID, model.PermissionRead, model.PermissionAll)
	hasAnyGrant := hasGrant(req.Grants, user.ID, model.PermissionRead, model.PermissionEdit, model.PermissionAll)

	// An approved request only matters through the grant it produced.
	hasException := hasReadGrant
	if req.HasApprovedRequest && !hasException {
		logger.Warn("Approved access request has no live grant",
			zap.Int64("userID", user.ID),
			zap.Int64("documentID", doc.ID))
	}

	macAllowed := SatisfiesClearance(user.SecurityLevel, doc.Classification)
	if !macAllowed {
		if hasException {
			macAllowed = true
		} else {
			reasons = append(reasons, ReasonMAC)
		}
	}

	// Clearance that dominates a non-public classification stands in for an
	// explicit grant.
	dacAllowed := false
	switch {
	case isOwner:
		dacAllowed = true
	case hasReadGrant:
		dacAllowed = true
	case doc.Classification == model.SecurityLevelPublic:
		dacAllowed = true
	case (doc.Classification == model.SecurityLevelInternal || doc.Classification == model.SecurityLevelConfidential) && macAllowed:
		dacAllowed = true
	}
	if !dacAllowed {
		reasons = append(reasons, ReasonDAC)
	}

	isOwnerOrHasDAC := isOwner || hasAnyGrant

	rulesAllowed := true
	var denial *pdp_model.PolicyEvaluationResult
	if !hasException {
		rc := &pdp_model.RequestContext{
			User:            user,
			Resource:        doc,
			Action:          ActionRead,
			Time:            e.now(),
			Department:      user.Department,
			IsOwner:         isOwner,
			IsOwnerOrHasDAC: isOwnerOrHasDAC,
		}
		denial = e.evaluator.FirstDenial(req.Policies, rc)
		rulesAllowed = denial == nil
		if !rulesAllowed {
			reasons = append(reasons, ReasonPolicy)
		}
	}

	// Second department check, against the document's own visibility field.
	// It overlaps with the allowedResources rule in PolicyEvaluator and is kept
	// separate since it triggers on different conditions.
	abacAllowed := true
	if hasDepartmentPolicy(req.Policies) && doc.Department != "" && !isOwnerOrHasDAC && !hasException {
		visibility := DecodeDepartments(doc.Department)
		if !visibility.All {
			abacAllowed = user.Department == "" || visibility.Includes(user.Department)
		}
	}
	if !abacAllowed {
		reasons = append(reasons, ReasonABAC)
	}

	decision := &pdp_model.AccessDecision{
		Allowed:  macAllowed && rbacAllowed && dacAllowed && rulesAllowed && abacAllowed,
		Reasons:  reasons,
		Severity: severityFor(reasons),
	}
	if denial != nil {
		decision.DeniedByPolicy = denial.PolicyID
	}
	return decision
}

// Evaluator exposes the rule evaluator the engine uses.
func (e *DecisionEngine) Evaluator() *PolicyEvaluator {
	return e.evaluator
}

func (e *DecisionEngine) now() time.Time {
	t := e.clock()
	if e.location != nil {
		t = t.In(e.location)
	}
	return t
}

func hasGrant(grants []model.PermissionGrant, userID int64, types ...string) bool {
	for _, g := range grants {
		if g.UserID != userID {
			continue
		}
		for _, t := range types {
			if g.PermissionType == t {
				return true
			}
		}
	}
	return false
}

func hasDepartmentPolicy(policies []model.Policy) bool {
	for _, p := range policies {
		if p.IsActive && p.Type == model.PolicyTypeABAC && p.Rules.Department != "" {
			return true
		}
	}
	return false
}

func severityFor(reasons []string) pdp_model.Severity {
	if len(reasons) == 0 {
		return pdp_model.SeverityInfo
	}
	for _, r := range reasons {
		if strings.Contains(r, "Policy") {
			return pdp_model.SeverityCritical
		}
	}
	return pdp_model.SeverityWarn
}
