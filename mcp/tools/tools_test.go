// mcp/tools/tools_test.go
package tools

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jusharra/identity-aware-healthcare-rag-mcp/directory"
	"github.com/Jusharra/identity-aware-healthcare-rag-mcp/mcp"
	"github.com/Jusharra/identity-aware-healthcare-rag-mcp/model"
)

func TestIdentityCreateAndCheckUser(t *testing.T) {
	dir := directory.NewMemoryDirectory()
	ctx := context.Background()
	tc := mcp.ToolContext{Caller: model.Claims{Sub: "admin-1", Role: "IT_Admin"}}

	out, err := IdentityCreateDemoUser(dir)(ctx, map[string]interface{}{
		"user_id": "u100", "role": "Nurse",
	}, tc)
	require.NoError(t, err)
	assert.Equal(t, true, out["created"])

	out, err = IdentityCheckUserRole(dir)(ctx, map[string]interface{}{"user_id": "u100"}, tc)
	require.NoError(t, err)
	assert.Equal(t, true, out["found"])
	assert.Equal(t, "Nurse", out["role"])

	out, err = IdentityCheckUserRole(dir)(ctx, map[string]interface{}{"user_id": "nobody"}, tc)
	require.NoError(t, err)
	assert.Equal(t, false, out["found"])
}

func TestIdentityCheckMFAConfig(t *testing.T) {
	dir := directory.NewMemoryDirectory()
	ctx := context.Background()
	tc := mcp.ToolContext{}

	require.NoError(t, dir.Put(ctx, "u1", &directory.UserRecord{Role: "Nurse", MFAEnabled: true}))
	require.NoError(t, dir.Put(ctx, "u2", &directory.UserRecord{Role: "Nurse"}))

	out, err := IdentityCheckMFAConfig(dir)(ctx, map[string]interface{}{"user_id": "u1"}, tc)
	require.NoError(t, err)
	assert.Equal(t, true, out["mfa_enabled"])

	out, err = IdentityCheckMFAConfig(dir)(ctx, map[string]interface{}{"user_id": "u2"}, tc)
	require.NoError(t, err)
	assert.Equal(t, false, out["mfa_enabled"])

	out, err = IdentityCheckMFAConfig(dir)(ctx, map[string]interface{}{"user_id": "ghost"}, tc)
	require.NoError(t, err)
	assert.Equal(t, false, out["mfa_enabled"], "unknown users report MFA disabled")
}

func TestIdentityAssignRoleUpserts(t *testing.T) {
	dir := directory.NewMemoryDirectory()
	ctx := context.Background()
	tc := mcp.ToolContext{}

	_, err := IdentityAssignRole(dir)(ctx, map[string]interface{}{
		"user_id":     "u1",
		"role":        "GRC_Analyst",
		"permissions": []interface{}{"read_grc_docs"},
	}, tc)
	require.NoError(t, err)

	record, found, err := dir.Get(ctx, "u1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "GRC_Analyst", record.Role)
	assert.Equal(t, []string{"read_grc_docs"}, record.Permissions)

	_, err = IdentityAssignRole(dir)(ctx, map[string]interface{}{
		"user_id":     "u1",
		"role":        "Nurse",
		"permissions": []interface{}{"read_grc_docs", 42},
	}, tc)
	require.Error(t, err, "non-string permissions are rejected")
}

func TestIdentityDisableUser(t *testing.T) {
	dir := directory.NewMemoryDirectory()
	ctx := context.Background()
	tc := mcp.ToolContext{}

	require.NoError(t, dir.Put(ctx, "u1", &directory.UserRecord{Role: "Employee"}))

	out, err := IdentityDisableUser(dir)(ctx, map[string]interface{}{"user_id": "u1"}, tc)
	require.NoError(t, err)
	assert.Equal(t, true, out["disabled"])

	record, _, err := dir.Get(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, record.Disabled)

	_, err = IdentityDisableUser(dir)(ctx, map[string]interface{}{"user_id": "ghost"}, tc)
	require.Error(t, err, "disabling an unknown user is an error, not a no-op")
}

func TestIdentityGrantTempAdmin(t *testing.T) {
	dir := directory.NewMemoryDirectory()
	ctx := context.Background()
	tc := mcp.ToolContext{}

	require.NoError(t, dir.Put(ctx, "u1", &directory.UserRecord{
		Role:        "Employee",
		Permissions: []string{"read_company_docs", "admin"},
	}))

	out, err := IdentityGrantTempAdmin(dir)(ctx, map[string]interface{}{
		"user_id": "u1", "until": "2026-09-01T00:00:00Z",
	}, tc)
	require.NoError(t, err)
	assert.Equal(t, "2026-09-01T00:00:00Z", out["temp_admin_until"])

	record, _, err := dir.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"admin", "read_company_docs"}, record.Permissions, "admin is deduplicated and the list sorted")
	assert.Equal(t, "2026-09-01T00:00:00Z", record.TempAdminUntil)
}

func TestIdentityToolsValidateArguments(t *testing.T) {
	dir := directory.NewMemoryDirectory()
	ctx := context.Background()
	tc := mcp.ToolContext{}

	_, err := IdentityCheckUserRole(dir)(ctx, nil, tc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "user_id")

	_, err = IdentityCreateDemoUser(dir)(ctx, map[string]interface{}{"user_id": "u1", "role": ""}, tc)
	require.Error(t, err)
}

func TestCompanyLookupPolicy(t *testing.T) {
	tc := mcp.ToolContext{Config: map[string]interface{}{
		"policies": map[string]interface{}{
			"remote_access": "MFA and a managed device are required.",
		},
	}}

	out, err := CompanyLookupPolicy()(context.Background(), map[string]interface{}{"policy_name": "remote_access"}, tc)
	require.NoError(t, err)
	assert.Equal(t, true, out["found"])
	assert.Contains(t, out["text"], "MFA")

	out, err = CompanyLookupPolicy()(context.Background(), map[string]interface{}{"policy_name": "missing"}, tc)
	require.NoError(t, err)
	assert.Equal(t, false, out["found"])
}

func TestCompanyGetClinicWorkflow(t *testing.T) {
	tc := mcp.ToolContext{Config: map[string]interface{}{
		"clinic_workflows": map[string]interface{}{
			"clinic-001": map[string]interface{}{
				"cardiology": "ECG within 15 minutes.",
			},
		},
	}}

	out, err := CompanyGetClinicWorkflow()(context.Background(), map[string]interface{}{
		"clinic_id": "clinic-001", "department": "cardiology",
	}, tc)
	require.NoError(t, err)
	assert.Equal(t, "ECG within 15 minutes.", out["workflow"])

	out, err = CompanyGetClinicWorkflow()(context.Background(), map[string]interface{}{
		"clinic_id": "clinic-001", "department": "oncology",
	}, tc)
	require.NoError(t, err)
	assert.Equal(t, "No workflow found for this clinic/department.", out["workflow"])
}

func TestGrcLookupControl(t *testing.T) {
	tc := mcp.ToolContext{Config: map[string]interface{}{
		"controls": map[string]interface{}{
			"AC-2": map[string]interface{}{"title": "Account Management", "status": "implemented"},
		},
	}}

	out, err := GrcLookupControl()(context.Background(), map[string]interface{}{"control_id": "AC-2"}, tc)
	require.NoError(t, err)
	assert.Equal(t, "AC-2", out["control_id"])
	assert.Equal(t, "Account Management", out["title"])

	_, err = GrcLookupControl()(context.Background(), map[string]interface{}{"control_id": "XX-9"}, tc)
	require.Error(t, err)
}

func TestBuildRegistry(t *testing.T) {
	dir := directory.NewMemoryDirectory()

	registry, err := BuildRegistry(map[string]model.ToolPolicy{
		"echo":                     {AllowedRequesterRoles: []string{"*"}},
		"identity_check_user_role": {AllowedRequesterRoles: []string{"IT_Admin"}},
	}, dir)
	require.NoError(t, err)

	tool, ok := registry.Get("echo")
	require.True(t, ok)
	assert.Equal(t, []string{"*"}, tool.AllowedRequesterRoles)

	_, ok = registry.Get("identity_disable_user")
	assert.False(t, ok, "only tools named in the policy document are registered")
}

func TestBuildRegistryRejectsUnimplementedTool(t *testing.T) {
	_, err := BuildRegistry(map[string]model.ToolPolicy{
		"quantum_flux": {AllowedRequesterRoles: []string{"*"}},
	}, directory.NewMemoryDirectory())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quantum_flux")
}
