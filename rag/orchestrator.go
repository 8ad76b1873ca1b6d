// rag/orchestrator.go
package rag

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	gw_errors "github.com/Jusharra/identity-aware-healthcare-rag-mcp/errors"
	logger "github.com/Jusharra/identity-aware-healthcare-rag-mcp/logging"
	"github.com/Jusharra/identity-aware-healthcare-rag-mcp/model"
)

// Orchestrator is the identity-aware retrieval entrypoint: it routes an
// authorized request to its namespace, builds the claims filter, queries
// the primary backend and degrades to local knowledge when the backend is
// absent or failing.
type Orchestrator struct {
	router      *Router
	provider    Provider // nil means no primary backend configured
	local       *LocalKnowledge
	defaultTopK int
}

func NewOrchestrator(router *Router, provider Provider, local *LocalKnowledge, defaultTopK int) *Orchestrator {
	return &Orchestrator{
		router:      router,
		provider:    provider,
		local:       local,
		defaultTopK: defaultTopK,
	}
}

// Query serves one authorized retrieval request. The role and scope must
// already have passed RBAC/ABAC; the only denial left here is the absence
// of a namespace for the pair, returned as ErrUnknownNamespace.
func (o *Orchestrator) Query(ctx context.Context, queryText string, claims model.Claims, scope string, topK int) (*model.RetrievalResult, error) {
	namespace, ok := o.router.SelectNamespace(claims.Role, scope)
	if !ok {
		return nil, fmt.Errorf("%w: role=%s, scope=%s", gw_errors.ErrUnknownNamespace, claims.Role, scope)
	}

	filter := o.router.BuildFilter(claims)
	if topK <= 0 {
		topK = o.defaultTopK
	}

	if o.provider == nil {
		return o.fallback(namespace, queryText, claims, topK, filter,
			fmt.Sprintf("%v: no primary backend configured", gw_errors.ErrBackendUnavailable)), nil
	}

	hits, err := o.provider.Query(ctx, namespace, filter, queryText, topK)
	if err != nil {
		logger.Warn("Primary retrieval backend failed, serving local fallback",
			zap.String("namespace", namespace),
			zap.Error(err))
		return o.fallback(namespace, queryText, claims, topK, filter,
			fmt.Sprintf("%v: %v", gw_errors.ErrBackendUnavailable, err)), nil
	}

	matches := make([]model.Match, 0, len(hits))
	for _, h := range hits {
		matches = append(matches, model.Match{ID: h.ID, Score: h.Score, Metadata: h.Metadata})
	}

	return &model.RetrievalResult{
		Namespace:      namespace,
		Matches:        matches,
		Reason:         "primary retrieval backend",
		MetadataFilter: filter,
	}, nil
}

func (o *Orchestrator) fallback(namespace, queryText string, claims model.Claims, topK int, filter map[string]string, reason string) *model.RetrievalResult {
	docs, answer := o.local.Search(namespace, queryText, claims, topK)
	return &model.RetrievalResult{
		Namespace:      namespace,
		Matches:        docs,
		Answer:         answer,
		Reason:         reason,
		MetadataFilter: filter,
	}
}
