// mcp/tools/iam.go
package tools

import (
	"context"
	"fmt"
	"sort"

	"github.com/Jusharra/identity-aware-healthcare-rag-mcp/directory"
	"github.com/Jusharra/identity-aware-healthcare-rag-mcp/mcp"
)

// Identity tools operate on the user directory. Each adapts one directory
// operation to the common handler interface; input validation failures
// are handler errors that the dispatcher converts to structured error
// results.

func stringArg(input map[string]interface{}, key string) (string, error) {
	raw, ok := input[key]
	if !ok {
		return "", fmt.Errorf("missing required argument %q", key)
	}
	value, ok := raw.(string)
	if !ok || value == "" {
		return "", fmt.Errorf("argument %q must be a non-empty string", key)
	}
	return value, nil
}

// IdentityCheckUserRole returns the directory role of a user, or found=false.
func IdentityCheckUserRole(dir directory.Directory) mcp.HandlerFunc {
	return func(ctx context.Context, input map[string]interface{}, tc mcp.ToolContext) (map[string]interface{}, error) {
		userID, err := stringArg(input, "user_id")
		if err != nil {
			return nil, err
		}

		record, found, err := dir.Get(ctx, userID)
		if err != nil {
			return nil, err
		}
		if !found {
			return map[string]interface{}{"user_id": userID, "found": false}, nil
		}
		return map[string]interface{}{"user_id": userID, "found": true, "role": record.Role}, nil
	}
}

// IdentityCheckMFAConfig reports whether a user has MFA enabled.
func IdentityCheckMFAConfig(dir directory.Directory) mcp.HandlerFunc {
	return func(ctx context.Context, input map[string]interface{}, tc mcp.ToolContext) (map[string]interface{}, error) {
		userID, err := stringArg(input, "user_id")
		if err != nil {
			return nil, err
		}

		record, found, err := dir.Get(ctx, userID)
		if err != nil {
			return nil, err
		}
		enabled := found && record.MFAEnabled
		return map[string]interface{}{"user_id": userID, "mfa_enabled": enabled}, nil
	}
}

// IdentityCreateDemoUser provisions a directory record with safe defaults.
func IdentityCreateDemoUser(dir directory.Directory) mcp.HandlerFunc {
	return func(ctx context.Context, input map[string]interface{}, tc mcp.ToolContext) (map[string]interface{}, error) {
		userID, err := stringArg(input, "user_id")
		if err != nil {
			return nil, err
		}
		role, err := stringArg(input, "role")
		if err != nil {
			return nil, err
		}

		mfaEnabled := true
		if raw, ok := input["mfa_enabled"].(bool); ok {
			mfaEnabled = raw
		}

		record := &directory.UserRecord{
			Role:        role,
			MFAEnabled:  mfaEnabled,
			Permissions: []string{},
		}
		if err := dir.Put(ctx, userID, record); err != nil {
			return nil, err
		}
		return map[string]interface{}{"user_id": userID, "role": role, "created": true}, nil
	}
}

// IdentityListUserPermissions returns the permissions array for a user.
func IdentityListUserPermissions(dir directory.Directory) mcp.HandlerFunc {
	return func(ctx context.Context, input map[string]interface{}, tc mcp.ToolContext) (map[string]interface{}, error) {
		userID, err := stringArg(input, "user_id")
		if err != nil {
			return nil, err
		}

		record, found, err := dir.Get(ctx, userID)
		if err != nil {
			return nil, err
		}
		permissions := []string{}
		if found {
			permissions = record.Permissions
		}
		return map[string]interface{}{"user_id": userID, "permissions": permissions}, nil
	}
}

// IdentityAssignRole updates a user's role and, optionally, its
// permissions list. A missing user is created, matching the directory's
// upsert semantics.
func IdentityAssignRole(dir directory.Directory) mcp.HandlerFunc {
	return func(ctx context.Context, input map[string]interface{}, tc mcp.ToolContext) (map[string]interface{}, error) {
		userID, err := stringArg(input, "user_id")
		if err != nil {
			return nil, err
		}
		role, err := stringArg(input, "role")
		if err != nil {
			return nil, err
		}

		record, found, err := dir.Get(ctx, userID)
		if err != nil {
			return nil, err
		}
		if !found {
			record = &directory.UserRecord{Permissions: []string{}}
		}
		record.Role = role

		if raw, ok := input["permissions"].([]interface{}); ok {
			permissions := make([]string, 0, len(raw))
			for _, p := range raw {
				s, ok := p.(string)
				if !ok {
					return nil, fmt.Errorf("permissions must be a list of strings")
				}
				permissions = append(permissions, s)
			}
			record.Permissions = permissions
		}

		if err := dir.Put(ctx, userID, record); err != nil {
			return nil, err
		}
		return map[string]interface{}{"user_id": userID, "role": role, "updated": true}, nil
	}
}

// IdentityDisableUser marks a user as disabled (account lock). Unknown
// users are a handler error, not a silent no-op.
func IdentityDisableUser(dir directory.Directory) mcp.HandlerFunc {
	return func(ctx context.Context, input map[string]interface{}, tc mcp.ToolContext) (map[string]interface{}, error) {
		userID, err := stringArg(input, "user_id")
		if err != nil {
			return nil, err
		}

		record, found, err := dir.Get(ctx, userID)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, fmt.Errorf("user %s not found", userID)
		}

		record.Disabled = true
		if err := dir.Put(ctx, userID, record); err != nil {
			return nil, err
		}
		return map[string]interface{}{"user_id": userID, "disabled": true}, nil
	}
}

// IdentityGrantTempAdmin adds the admin permission until the given
// ISO-8601 timestamp.
func IdentityGrantTempAdmin(dir directory.Directory) mcp.HandlerFunc {
	return func(ctx context.Context, input map[string]interface{}, tc mcp.ToolContext) (map[string]interface{}, error) {
		userID, err := stringArg(input, "user_id")
		if err != nil {
			return nil, err
		}
		until, err := stringArg(input, "until")
		if err != nil {
			return nil, err
		}

		record, found, err := dir.Get(ctx, userID)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, fmt.Errorf("user %s not found", userID)
		}

		perms := map[string]bool{"admin": true}
		for _, p := range record.Permissions {
			perms[p] = true
		}
		record.Permissions = record.Permissions[:0]
		for p := range perms {
			record.Permissions = append(record.Permissions, p)
		}
		sort.Strings(record.Permissions)
		record.TempAdminUntil = until

		if err := dir.Put(ctx, userID, record); err != nil {
			return nil, err
		}
		return map[string]interface{}{"user_id": userID, "temp_admin_until": until}, nil
	}
}
