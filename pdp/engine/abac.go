// pdp/engine/abac.go
package engine

import (
	"fmt"
	"strings"

	"github.com/Jusharra/identity-aware-healthcare-rag-mcp/model"
	pdp_model "github.com/Jusharra/identity-aware-healthcare-rag-mcp/pdp/model"
)

// ToolScopePrefix is the synthetic scope under which tool invocations are
// evaluated, so tool-level attribute rules reuse the scope machinery.
const ToolScopePrefix = "tool:"

// Evaluate runs every configured attribute rule, in order, against
// {claims, resource} for the given scope.
//
// Every applicable rule is evaluated; there is no short-circuit, so a
// denial carries the complete list of violated constraints. A rule whose
// condition fails to evaluate is a denial, never a pass-through.
func (e *Evaluator) Evaluate(claims model.Claims, resource map[string]interface{}, scope string) (bool, []string) {
	decision := e.EvaluateDetailed(claims, resource, scope)
	return decision.Allowed, decision.Reasons
}

// EvaluateDetailed is the full-fidelity ABAC pass: one result per
// configured rule, including skipped ones, plus the combined decision.
func (e *Evaluator) EvaluateDetailed(claims model.Claims, resource map[string]interface{}, scope string) pdp_model.ScopeDecision {
	decision := pdp_model.ScopeDecision{Allowed: true}

	for _, rule := range e.store.Rules() {
		result := pdp_model.RuleEvaluationResult{Rule: rule.Name}

		if !scopeApplies(rule.AppliesTo, scope) {
			result.Skipped = true
			decision.Rules = append(decision.Rules, result)
			continue
		}

		passed, err := evalCondition(rule.Condition, claims, resource)
		switch {
		case err != nil:
			result.Reason = fmt.Sprintf("Rule %s error: %v", rule.Name, err)
		case !passed:
			result.Reason = fmt.Sprintf("Rule %s failed; deny tags: %v", rule.Name, rule.DenyWhenFalse)
		default:
			result.Passed = true
		}

		if !result.Passed {
			decision.Allowed = false
			decision.Reasons = append(decision.Reasons, result.Reason)
		}
		decision.Rules = append(decision.Rules, result)
	}

	return decision
}

// EvaluateTool evaluates the attribute rules that apply to a tool
// invocation, using the tool arguments as the resource.
func (e *Evaluator) EvaluateTool(claims model.Claims, tool string, args map[string]interface{}) (bool, []string) {
	return e.Evaluate(claims, args, ToolScopePrefix+tool)
}

// scopeApplies reports whether a rule's applies_to set covers the current
// scope. An empty set applies to every scope; an entry ending in * is a
// prefix match (e.g. "tool:identity_*").
func scopeApplies(appliesTo []string, scope string) bool {
	if len(appliesTo) == 0 {
		return true
	}
	for _, entry := range appliesTo {
		if entry == scope {
			return true
		}
		if strings.HasSuffix(entry, model.Wildcard) &&
			strings.HasPrefix(scope, strings.TrimSuffix(entry, model.Wildcard)) {
			return true
		}
	}
	return false
}
