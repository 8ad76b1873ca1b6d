// mcp/tools/catalog.go
package tools

import (
	"fmt"

	"github.com/Jusharra/identity-aware-healthcare-rag-mcp/directory"
	"github.com/Jusharra/identity-aware-healthcare-rag-mcp/mcp"
	"github.com/Jusharra/identity-aware-healthcare-rag-mcp/model"
)

// Catalog maps tool names to their handler implementations. Only tools
// that also appear in the policy document get registered.
func Catalog(dir directory.Directory) map[string]mcp.ToolHandler {
	return map[string]mcp.ToolHandler{
		"echo":                           Echo(),
		"identity_check_user_role":       IdentityCheckUserRole(dir),
		"identity_check_mfa_config":      IdentityCheckMFAConfig(dir),
		"identity_create_demo_user":      IdentityCreateDemoUser(dir),
		"identity_list_user_permissions": IdentityListUserPermissions(dir),
		"identity_assign_role":           IdentityAssignRole(dir),
		"identity_disable_user":          IdentityDisableUser(dir),
		"identity_grant_temp_admin":      IdentityGrantTempAdmin(dir),
		"company_lookup_policy":          CompanyLookupPolicy(),
		"company_get_clinic_workflow":    CompanyGetClinicWorkflow(),
		"company_list_allowed_actions":   CompanyListAllowedActions(),
		"grc_lookup_control":             GrcLookupControl(),
		"grc_map_policy_to_framework":    GrcMapPolicyToFramework(),
		"restrict_bucket_policy":         RestrictBucketPolicy(),
	}
}

// BuildRegistry wires every tool named in the policy document to its
// handler. A configured tool with no implementation is a configuration
// error surfaced at startup, not at first invocation.
func BuildRegistry(policies map[string]model.ToolPolicy, dir directory.Directory) (*mcp.Registry, error) {
	catalog := Catalog(dir)
	registry := mcp.NewRegistry()

	for name, policy := range policies {
		handler, ok := catalog[name]
		if !ok {
			return nil, fmt.Errorf("no handler implemented for configured tool %q", name)
		}
		if err := registry.Register(mcp.Tool{
			Name:                  name,
			Handler:               handler,
			AllowedRequesterRoles: policy.AllowedRequesterRoles,
			Config:                policy.Config,
		}); err != nil {
			return nil, err
		}
	}
	return registry, nil
}
