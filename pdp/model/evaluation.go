package model

// PolicyEvaluationResult is the outcome of evaluating one rule record.
type PolicyEvaluationResult struct {
	PolicyID   string
	PolicyName string
	Matched    bool
	Reason     string
}
