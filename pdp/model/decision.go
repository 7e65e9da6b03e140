package model

// Severity classifies how urgently a denial should be looked at by auditors.
type Severity string

const (
	SeverityInfo     Severity = "INFO"
	SeverityWarn     Severity = "WARN"
	SeverityCritical Severity = "CRITICAL"
)

// AccessDecision is the verdict for a single (user, document, action) triple.
// Reasons lists each distinct denial cause and is empty iff Allowed.
type AccessDecision struct {
	Allowed  bool     `json:"allowed"`
	Reasons  []string `json:"reasons"`
	Severity Severity `json:"severity"`
	// DeniedByPolicy is the id of the first rule record that failed, if any.
	DeniedByPolicy string `json:"denied_by_policy,omitempty"`
}
