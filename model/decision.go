// model/decision.go
package model

import "time"

// Decision outcomes recorded in the evidence log.
const (
	DecisionAllow = "allow"
	DecisionDeny  = "deny"
)

// Event types recorded in the evidence log.
const (
	EventRagAccessAllowed = "rag_access_allowed"
	EventRagAccessDenied  = "rag_access_denied"
	EventMcpToolAllowed   = "mcp_tool_allowed"
	EventMcpToolDenied    = "mcp_tool_denied"
)

// Target identifies what a decision was about: a retrieval scope plus the
// document metadata, or a tool name plus its arguments.
type Target struct {
	Type        string                 `json:"type"` // "rag" or "tool"
	Scope       string                 `json:"scope,omitempty"`
	Namespace   string                 `json:"namespace,omitempty"`
	DocMetadata map[string]interface{} `json:"doc_metadata,omitempty"`
	Tool        string                 `json:"tool,omitempty"`
	ToolArgs    map[string]interface{} `json:"tool_args,omitempty"`
}

// DecisionRecord is one append-only evidence entry. Records are never
// mutated or deleted once written.
type DecisionRecord struct {
	RecordID  string    `json:"record_id"`
	Timestamp time.Time `json:"timestamp"`
	EventType string    `json:"event_type"`
	Decision  string    `json:"decision"`
	Actor     Claims    `json:"actor"`
	Target    Target    `json:"target"`
	Reasons   []string  `json:"reasons"`
	RequestID string    `json:"request_id,omitempty"`
}
