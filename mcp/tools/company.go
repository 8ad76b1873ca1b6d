// mcp/tools/company.go
package tools

import (
	"context"
	"fmt"

	"github.com/Jusharra/identity-aware-healthcare-rag-mcp/mcp"
)

// Company and GRC tools answer from the static dataset carried in each
// tool's config block, so the reference material ships with the policy
// document rather than being baked into code.

func configSection(tc mcp.ToolContext, key string) map[string]interface{} {
	section, _ := tc.Config[key].(map[string]interface{})
	return section
}

// CompanyLookupPolicy returns the text of a named company policy.
func CompanyLookupPolicy() mcp.HandlerFunc {
	return func(ctx context.Context, input map[string]interface{}, tc mcp.ToolContext) (map[string]interface{}, error) {
		name, err := stringArg(input, "policy_name")
		if err != nil {
			return nil, err
		}

		policies := configSection(tc, "policies")
		text, ok := policies[name].(string)
		if !ok {
			return map[string]interface{}{"policy_name": name, "found": false}, nil
		}
		return map[string]interface{}{"policy_name": name, "found": true, "text": text}, nil
	}
}

// CompanyGetClinicWorkflow returns the workflow for a clinic/department
// pair as a structured object.
func CompanyGetClinicWorkflow() mcp.HandlerFunc {
	return func(ctx context.Context, input map[string]interface{}, tc mcp.ToolContext) (map[string]interface{}, error) {
		clinicID, err := stringArg(input, "clinic_id")
		if err != nil {
			return nil, err
		}
		department, err := stringArg(input, "department")
		if err != nil {
			return nil, err
		}

		workflows := configSection(tc, "clinic_workflows")
		deptMap, _ := workflows[clinicID].(map[string]interface{})
		workflow, ok := deptMap[department].(string)
		if !ok {
			workflow = "No workflow found for this clinic/department."
		}

		return map[string]interface{}{
			"clinic_id":  clinicID,
			"department": department,
			"workflow":   workflow,
		}, nil
	}
}

// CompanyListAllowedActions returns the action catalog for a role.
func CompanyListAllowedActions() mcp.HandlerFunc {
	return func(ctx context.Context, input map[string]interface{}, tc mcp.ToolContext) (map[string]interface{}, error) {
		role, err := stringArg(input, "role")
		if err != nil {
			return nil, err
		}

		catalog := configSection(tc, "allowed_actions")
		actions, _ := catalog[role].([]interface{})
		if actions == nil {
			actions = []interface{}{}
		}
		return map[string]interface{}{"role": role, "allowed_actions": actions}, nil
	}
}

// GrcLookupControl looks up a control from the GRC catalog.
func GrcLookupControl() mcp.HandlerFunc {
	return func(ctx context.Context, input map[string]interface{}, tc mcp.ToolContext) (map[string]interface{}, error) {
		controlID, err := stringArg(input, "control_id")
		if err != nil {
			return nil, err
		}

		catalog := configSection(tc, "controls")
		control, ok := catalog[controlID].(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("control %s not found in GRC catalog", controlID)
		}

		result := map[string]interface{}{"control_id": controlID}
		for k, v := range control {
			result[k] = v
		}
		return result, nil
	}
}

// GrcMapPolicyToFramework maps an internal policy name onto compliance
// framework sections.
func GrcMapPolicyToFramework() mcp.HandlerFunc {
	return func(ctx context.Context, input map[string]interface{}, tc mcp.ToolContext) (map[string]interface{}, error) {
		policyName, err := stringArg(input, "policy_name")
		if err != nil {
			return nil, err
		}

		mappings := configSection(tc, "policy_framework_mappings")
		mapped, _ := mappings[policyName].([]interface{})
		if mapped == nil {
			mapped = []interface{}{}
		}
		return map[string]interface{}{
			"policy_name":       policyName,
			"mapped_frameworks": mapped,
		}, nil
	}
}

// RestrictBucketPolicy requests a storage bucket policy restriction. The
// request is recorded as evidence; actual remediation runs out of band.
func RestrictBucketPolicy() mcp.HandlerFunc {
	return func(ctx context.Context, input map[string]interface{}, tc mcp.ToolContext) (map[string]interface{}, error) {
		bucket, err := stringArg(input, "bucket_name")
		if err != nil {
			return nil, err
		}
		reason, err := stringArg(input, "reason")
		if err != nil {
			return nil, err
		}

		return map[string]interface{}{
			"bucket_name": bucket,
			"action":      "restrict_policy",
			"status":      "requested",
			"reason":      reason,
		}, nil
	}
}
