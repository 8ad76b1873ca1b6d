// model/retrieval.go
package model

// Match is one retrieval hit, identical in shape whether it came from the
// primary backend or the local fallback.
type Match struct {
	ID       string                 `json:"id"`
	Score    float64                `json:"score"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// RetrievalResult is the normalized output of a retrieval query.
type RetrievalResult struct {
	Namespace      string            `json:"namespace"`
	Matches        []Match           `json:"matches"`
	Answer         string            `json:"answer,omitempty"`
	Reason         string            `json:"reason,omitempty"` // provenance: primary vs local fallback
	MetadataFilter map[string]string `json:"metadata_filter,omitempty"`
}
