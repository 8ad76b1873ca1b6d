// pdp/engine/rbac.go
package engine

import (
	"github.com/Jusharra/identity-aware-healthcare-rag-mcp/model"
	"github.com/Jusharra/identity-aware-healthcare-rag-mcp/pdp/dao"
)

// Evaluator performs the RBAC and ABAC stages against an immutable policy
// store. It holds no mutable state and is safe for concurrent use without
// locking.
type Evaluator struct {
	store *dao.Store
}

func NewEvaluator(store *dao.Store) *Evaluator {
	return &Evaluator{store: store}
}

// AllowedScopes returns the retrieval scopes configured for a role.
// Unknown roles get an empty list, never an error.
func (e *Evaluator) AllowedScopes(role string) []string {
	rp, ok := e.store.RolePolicy(role)
	if !ok {
		return nil
	}
	return rp.RagAccess
}

// ScopeAllowed reports whether a role may request a retrieval scope. A
// wildcard entry in the role's scope list allows every scope.
func (e *Evaluator) ScopeAllowed(role, scope string) bool {
	rp, ok := e.store.RolePolicy(role)
	if !ok {
		return false
	}
	for _, s := range rp.RagAccess {
		if s == model.Wildcard || s == scope {
			return true
		}
	}
	return false
}

// IsToolAllowed reports whether a role may invoke a tool. A wildcard
// entry in the role's tool list allows every tool. Unknown role or an
// empty tool list denies.
func (e *Evaluator) IsToolAllowed(role, tool string) bool {
	rp, ok := e.store.RolePolicy(role)
	if !ok {
		return false
	}
	for _, t := range rp.MCPTools {
		if t == model.Wildcard || t == tool {
			return true
		}
	}
	return false
}
