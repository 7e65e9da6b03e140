// model/policy.go
package model

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

type PolicyType string

const (
	PolicyTypeABAC  PolicyType = "ABAC"
	PolicyTypeRuBAC PolicyType = "RuBAC"
)

// Policy is an administrator-managed rule record. Type is informational;
// the evaluator interprets whichever rule fields are present.
type Policy struct {
	ID        string      `json:"id"`
	Name      string      `json:"name" validate:"required,max=255"`
	Type      PolicyType  `json:"type" validate:"required,oneof=ABAC RuBAC"`
	Rules     PolicyRules `json:"rules"`
	IsActive  bool        `json:"is_active"`
	Version   int         `json:"version"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// PolicyRules holds independently optional clauses. A clause that is absent
// imposes nothing.
type PolicyRules struct {
	Department       string       `json:"department,omitempty"`
	Role             string       `json:"role,omitempty"`
	WorkingHours     *HourWindow  `json:"workingHours,omitempty" validate:"omitempty"`
	BlockWeekend     bool         `json:"blockWeekend,omitempty"`
	Location         string       `json:"location,omitempty"`
	AllowedResources *ResourceIDs `json:"allowedResources,omitempty" validate:"omitempty,dive,gt=0"`
	ApprovalRole     string       `json:"approvalRole,omitempty"`
	// ApprovalLimitDays is stored for administrators and not evaluated.
	ApprovalLimitDays int `json:"approvalLimitDays,omitempty" validate:"min=0"`
}

// HourWindow is an hour-of-day range. Start > End wraps midnight.
type HourWindow struct {
	Start int `json:"start" validate:"min=0,max=23"`
	End   int `json:"end" validate:"min=0,max=23"`
}

// ResourceIDs lists document ids a department rule is scoped to. The legacy
// string encoding decodes to an empty, but present, list.
type ResourceIDs []int64

func (r *ResourceIDs) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		*r = ResourceIDs{}
		return nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return err
	}

	ids := make(ResourceIDs, 0, len(items))
	for _, item := range items {
		var n int64
		if err := json.Unmarshal(item, &n); err == nil {
			ids = append(ids, n)
			continue
		}
		var s string
		if err := json.Unmarshal(item, &s); err == nil {
			if n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64); err == nil {
				ids = append(ids, n)
			}
		}
	}
	*r = ids
	return nil
}

// Contains reports whether id is listed.
func (r ResourceIDs) Contains(id int64) bool {
	for _, v := range r {
		if v == id {
			return true
		}
	}
	return false
}
