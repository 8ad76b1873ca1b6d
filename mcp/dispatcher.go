// mcp/dispatcher.go
package mcp

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Jusharra/identity-aware-healthcare-rag-mcp/audit"
	logger "github.com/Jusharra/identity-aware-healthcare-rag-mcp/logging"
	"github.com/Jusharra/identity-aware-healthcare-rag-mcp/model"
)

// Dispatcher resolves tool names to handlers, enforces the per-tool
// requester gate, normalizes handler outputs and guarantees that no
// uncaught failure escapes to the caller. Every terminal path — unknown
// tool, denied requester, handler fault, success — appends exactly one
// decision record before returning.
type Dispatcher struct {
	registry *Registry
	recorder audit.Service
}

func NewDispatcher(registry *Registry, recorder audit.Service) *Dispatcher {
	return &Dispatcher{registry: registry, recorder: recorder}
}

// RunTool executes one tool invocation for the caller. The returned
// decision is DecisionAllow when the requester gate passed (even if the
// handler itself then failed) and DecisionDeny otherwise, mirroring what
// lands in the evidence log. The evidence record id is always returned.
func (d *Dispatcher) RunTool(ctx context.Context, name string, input map[string]interface{}, caller model.Claims, requestID string) (model.ToolResult, string, string) {
	tool, ok := d.registry.Get(name)
	if !ok {
		result := model.ToolResult{
			Success: false,
			Error:   fmt.Sprintf("Unknown tool: %s", name),
		}
		recordID := d.record(ctx, name, input, caller, requestID, model.DecisionDeny, []string{result.Error})
		return result, model.DecisionDeny, recordID
	}

	if !requesterAllowed(tool.AllowedRequesterRoles, caller.Role) {
		result := model.ToolResult{
			Success: false,
			Error:   fmt.Sprintf("Role %s not allowed to run %s", caller.Role, name),
		}
		recordID := d.record(ctx, name, input, caller, requestID, model.DecisionDeny, []string{result.Error})
		return result, model.DecisionDeny, recordID
	}

	output, err := d.execute(ctx, tool, input, caller)
	if err != nil {
		result := model.ToolResult{
			Success: false,
			Error:   err.Error(),
		}
		recordID := d.record(ctx, name, input, caller, requestID, model.DecisionAllow,
			[]string{fmt.Sprintf("Tool %s failed: %v", name, err)})
		return result, model.DecisionAllow, recordID
	}

	result := normalize(output)
	recordID := d.record(ctx, name, input, caller, requestID, model.DecisionAllow, nil)
	return result, model.DecisionAllow, recordID
}

// execute invokes the handler with panic containment: a panicking tool
// implementation becomes a structured error result, never a crash.
func (d *Dispatcher) execute(ctx context.Context, tool Tool, input map[string]interface{}, caller model.Claims) (output map[string]interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Tool handler panicked",
				zap.String("tool", tool.Name),
				zap.Any("panic", r))
			output = nil
			err = fmt.Errorf("tool %s panicked: %v", tool.Name, r)
		}
	}()

	return tool.Handler.Handle(ctx, input, ToolContext{Caller: caller, Config: tool.Config})
}

// normalize gives every successful handler output an explicit success
// flag: {success: true, ...output} when the handler omitted one.
func normalize(output map[string]interface{}) model.ToolResult {
	success := true
	if raw, ok := output["success"]; ok {
		if b, isBool := raw.(bool); isBool {
			success = b
		}
	} else {
		if output == nil {
			output = map[string]interface{}{}
		}
		output["success"] = true
	}
	return model.ToolResult{Success: success, Output: output}
}

// requesterAllowed applies the IAM-tool-list reading of the role gate:
// an empty list admits nobody, the wildcard token admits everyone.
func requesterAllowed(allowedRoles []string, role string) bool {
	for _, allowed := range allowedRoles {
		if allowed == model.Wildcard || (role != "" && allowed == role) {
			return true
		}
	}
	return false
}

func (d *Dispatcher) record(ctx context.Context, name string, input map[string]interface{}, caller model.Claims, requestID, decision string, reasons []string) string {
	eventType := model.EventMcpToolAllowed
	if decision == model.DecisionDeny {
		eventType = model.EventMcpToolDenied
	}

	recordID, err := d.recorder.RecordDecision(ctx, model.DecisionRecord{
		EventType: eventType,
		Decision:  decision,
		Actor:     caller,
		Target: model.Target{
			Type:     "tool",
			Tool:     name,
			ToolArgs: input,
		},
		Reasons:   reasons,
		RequestID: requestID,
	})
	if err != nil {
		// The decision stands; an audit-completeness gap must still be
		// visible to operators.
		logger.Error("Failed to persist tool decision record",
			zap.String("tool", name),
			zap.String("record_id", recordID),
			zap.Error(err))
	}
	return recordID
}
