// model/requests.go
package model

// RagRequest is a retrieval-authorization request.
type RagRequest struct {
	Claims         Claims                 `json:"claims" binding:"required"`
	RequestedScope string                 `json:"requested_scope" binding:"required"`
	DocMetadata    map[string]interface{} `json:"doc_metadata"`
	QueryText      string                 `json:"query_text,omitempty"`
	TopK           int                    `json:"top_k,omitempty"`
}

// RagDecisionResponse is returned for every retrieval-authorization
// request, allow or deny. No denial is silent: Reasons and the evidence
// record id are always populated.
type RagDecisionResponse struct {
	Allowed          bool     `json:"allowed"`
	RagScopes        []string `json:"rag_scopes"`
	Reasons          []string `json:"reasons"`
	EvidenceRecordID string   `json:"evidence_record_id"`
	Namespace        string   `json:"namespace,omitempty"`
	Matches          []Match  `json:"matches,omitempty"`
	Answer           string   `json:"answer,omitempty"`
	Provenance       string   `json:"provenance,omitempty"`
	EvidenceError    string   `json:"evidence_error,omitempty"`
}

// McpRequest is a tool-authorization-and-execution request.
type McpRequest struct {
	Claims   Claims                 `json:"claims" binding:"required"`
	ToolName string                 `json:"tool_name" binding:"required"`
	ToolArgs map[string]interface{} `json:"tool_args"`
}

// McpDecisionResponse is returned for every tool request.
type McpDecisionResponse struct {
	Allowed          bool        `json:"allowed"`
	Reasons          []string    `json:"reasons"`
	EvidenceRecordID string      `json:"evidence_record_id"`
	Result           *ToolResult `json:"result,omitempty"`
	EvidenceError    string      `json:"evidence_error,omitempty"`
}

// ToolResult is the normalized envelope for heterogeneous tool handler
// outputs. Output always carries an explicit success flag.
type ToolResult struct {
	Success bool                   `json:"success"`
	Error   string                 `json:"error,omitempty"`
	Output  map[string]interface{} `json:"output,omitempty"`
}
