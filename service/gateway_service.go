// service/gateway_service.go
package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Jusharra/identity-aware-healthcare-rag-mcp/audit"
	logger "github.com/Jusharra/identity-aware-healthcare-rag-mcp/logging"
	"github.com/Jusharra/identity-aware-healthcare-rag-mcp/mcp"
	"github.com/Jusharra/identity-aware-healthcare-rag-mcp/model"
	"github.com/Jusharra/identity-aware-healthcare-rag-mcp/pdp/engine"
	"github.com/Jusharra/identity-aware-healthcare-rag-mcp/rag"
)

// IGatewayService is the authorization entrypoint for both request kinds.
// Every call, allow or deny, produces exactly one decision record (tool
// executions are recorded by the dispatcher on its own terminal paths).
type IGatewayService interface {
	AuthorizeRag(ctx context.Context, req model.RagRequest, requestID string) *model.RagDecisionResponse
	ExecuteTool(ctx context.Context, req model.McpRequest, requestID string) *model.McpDecisionResponse
}

type GatewayService struct {
	evaluator    *engine.Evaluator
	orchestrator *rag.Orchestrator
	dispatcher   *mcp.Dispatcher
	recorder     audit.Service
}

func NewGatewayService(
	evaluator *engine.Evaluator,
	orchestrator *rag.Orchestrator,
	dispatcher *mcp.Dispatcher,
	recorder audit.Service,
) *GatewayService {
	return &GatewayService{
		evaluator:    evaluator,
		orchestrator: orchestrator,
		dispatcher:   dispatcher,
		recorder:     recorder,
	}
}

// AuthorizeRag runs the two-stage gate for a retrieval request: coarse
// RBAC scope check, then the full ABAC rule pass, then namespace routing
// and retrieval (with local fallback). Denials carry every failing reason.
func (s *GatewayService) AuthorizeRag(ctx context.Context, req model.RagRequest, requestID string) *model.RagDecisionResponse {
	claims := req.Claims
	scope := req.RequestedScope
	allowedScopes := s.evaluator.AllowedScopes(claims.Role)

	if claims.Role == "" {
		return s.denyRag(ctx, req, requestID, allowedScopes,
			[]string{"Missing role in claims (claims.role is required)"})
	}

	if !s.evaluator.ScopeAllowed(claims.Role, scope) {
		reason := fmt.Sprintf("Requested scope %s not in role %s RAG scopes %v",
			scope, claims.Role, allowedScopes)
		return s.denyRag(ctx, req, requestID, allowedScopes, []string{reason})
	}

	allowed, reasons := s.evaluator.Evaluate(claims, req.DocMetadata, scope)
	if !allowed {
		return s.denyRag(ctx, req, requestID, allowedScopes, reasons)
	}

	result, err := s.orchestrator.Query(ctx, req.QueryText, claims, scope, req.TopK)
	if err != nil {
		// Zero matching namespaces is a fail-safe deny, not a fault.
		return s.denyRag(ctx, req, requestID, allowedScopes, append(reasons, err.Error()))
	}

	recordID, evidenceErr := s.record(ctx, model.DecisionRecord{
		EventType: model.EventRagAccessAllowed,
		Decision:  model.DecisionAllow,
		Actor:     claims,
		Target: model.Target{
			Type:        "rag",
			Scope:       scope,
			Namespace:   result.Namespace,
			DocMetadata: req.DocMetadata,
		},
		Reasons:   reasons,
		RequestID: requestID,
	})

	return &model.RagDecisionResponse{
		Allowed:          true,
		RagScopes:        allowedScopes,
		Reasons:          reasons,
		EvidenceRecordID: recordID,
		Namespace:        result.Namespace,
		Matches:          result.Matches,
		Answer:           result.Answer,
		Provenance:       result.Reason,
		EvidenceError:    evidenceErr,
	}
}

func (s *GatewayService) denyRag(ctx context.Context, req model.RagRequest, requestID string, allowedScopes, reasons []string) *model.RagDecisionResponse {
	recordID, evidenceErr := s.record(ctx, model.DecisionRecord{
		EventType: model.EventRagAccessDenied,
		Decision:  model.DecisionDeny,
		Actor:     req.Claims,
		Target: model.Target{
			Type:        "rag",
			Scope:       req.RequestedScope,
			DocMetadata: req.DocMetadata,
		},
		Reasons:   reasons,
		RequestID: requestID,
	})

	return &model.RagDecisionResponse{
		Allowed:          false,
		RagScopes:        allowedScopes,
		Reasons:          reasons,
		EvidenceRecordID: recordID,
		EvidenceError:    evidenceErr,
	}
}

// ExecuteTool gates a tool invocation on the role's tool list and the
// tool-scoped attribute rules, then hands execution to the dispatcher,
// which enforces the per-tool requester gate and records its own outcome.
func (s *GatewayService) ExecuteTool(ctx context.Context, req model.McpRequest, requestID string) *model.McpDecisionResponse {
	claims := req.Claims

	if claims.Role == "" {
		return s.denyTool(ctx, req, requestID,
			[]string{"Missing role in claims (claims.role is required)"})
	}

	if !s.evaluator.IsToolAllowed(claims.Role, req.ToolName) {
		reason := fmt.Sprintf("Tool %s not allowed for role %s", req.ToolName, claims.Role)
		return s.denyTool(ctx, req, requestID, []string{reason})
	}

	allowed, reasons := s.evaluator.EvaluateTool(claims, req.ToolName, req.ToolArgs)
	if !allowed {
		return s.denyTool(ctx, req, requestID, reasons)
	}

	result, decision, recordID := s.dispatcher.RunTool(ctx, req.ToolName, req.ToolArgs, claims, requestID)

	resp := &model.McpDecisionResponse{
		Allowed:          decision == model.DecisionAllow,
		Reasons:          reasons,
		EvidenceRecordID: recordID,
		Result:           &result,
	}
	if !resp.Allowed && result.Error != "" {
		resp.Reasons = append(resp.Reasons, result.Error)
	}
	return resp
}

func (s *GatewayService) denyTool(ctx context.Context, req model.McpRequest, requestID string, reasons []string) *model.McpDecisionResponse {
	recordID, evidenceErr := s.record(ctx, model.DecisionRecord{
		EventType: model.EventMcpToolDenied,
		Decision:  model.DecisionDeny,
		Actor:     req.Claims,
		Target: model.Target{
			Type:     "tool",
			Tool:     req.ToolName,
			ToolArgs: req.ToolArgs,
		},
		Reasons:   reasons,
		RequestID: requestID,
	})

	return &model.McpDecisionResponse{
		Allowed:          false,
		Reasons:          reasons,
		EvidenceRecordID: recordID,
		EvidenceError:    evidenceErr,
	}
}

// record persists one decision. A persist failure is logged and surfaced
// as a warning string; it never changes the decision itself.
func (s *GatewayService) record(ctx context.Context, record model.DecisionRecord) (string, string) {
	recordID, err := s.recorder.RecordDecision(ctx, record)
	if err != nil {
		logger.Error("Failed to persist decision record",
			zap.String("record_id", recordID),
			zap.String("event_type", record.EventType),
			zap.Error(err))
		return recordID, err.Error()
	}
	return recordID, ""
}
