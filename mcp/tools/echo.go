// mcp/tools/echo.go
package tools

import (
	"context"
	"time"

	"github.com/Jusharra/identity-aware-healthcare-rag-mcp/mcp"
)

// Echo returns its input untouched plus caller metadata. Used for smoke
// testing the MCP runtime.
func Echo() mcp.HandlerFunc {
	return func(ctx context.Context, input map[string]interface{}, tc mcp.ToolContext) (map[string]interface{}, error) {
		return map[string]interface{}{
			"echo": input,
			"metadata": map[string]interface{}{
				"received_at": time.Now().UTC().Format(time.RFC3339),
				"caller_id":   tc.Caller.Sub,
				"caller_role": tc.Caller.Role,
			},
		}, nil
	}
}
