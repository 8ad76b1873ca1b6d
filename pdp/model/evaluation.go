package model

// RuleEvaluationResult captures one rule's outcome during an ABAC pass.
// A rule is either skipped (scope not covered), passed, or failed with a
// reason; an evaluation fault counts as a failure.
type RuleEvaluationResult struct {
	Rule    string
	Skipped bool
	Passed  bool
	Reason  string
}

// ScopeDecision is the combined outcome of an ABAC evaluation: the
// fail-safe conjunction of every applicable rule, with the per-rule
// trace preserved for diagnostics.
type ScopeDecision struct {
	Allowed bool
	Reasons []string
	Rules   []RuleEvaluationResult
}
