// rag/router.go
package rag

import (
	"github.com/Jusharra/identity-aware-healthcare-rag-mcp/model"
	"github.com/Jusharra/identity-aware-healthcare-rag-mcp/pdp/dao"
)

// Router maps an authorized (role, scope) pair onto the single namespace
// partition it may touch and projects claims into a metadata filter for
// downstream filtering.
type Router struct {
	store *dao.Store
}

func NewRouter(store *dao.Store) *Router {
	return &Router{store: store}
}

// SelectNamespace returns the namespace serving the given role and scope.
// The policy store guarantees at load time that at most one namespace can
// match, so the scan order does not affect the outcome.
func (r *Router) SelectNamespace(role, scope string) (string, bool) {
	for _, ns := range r.store.Namespaces() {
		if containsString(ns.AllowedRoles, role) && containsString(ns.RagScopes, scope) {
			return ns.Name, true
		}
	}
	return "", false
}

// BuildFilter projects the present, non-empty claim attributes into a
// metadata filter. Absent attributes are omitted, never defaulted.
func (r *Router) BuildFilter(claims model.Claims) map[string]string {
	filter := map[string]string{}

	if claims.Department != "" {
		filter["department"] = claims.Department
	}
	if claims.ClinicID != "" {
		filter["clinic_id"] = claims.ClinicID
	}
	if claims.Clearance != "" {
		// Documents are tagged with clearance_level, not clearance.
		filter["clearance_level"] = claims.Clearance
	}
	if claims.Region != "" {
		filter["region"] = claims.Region
	}

	return filter
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
