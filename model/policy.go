// model/policy.go
package model

// Wildcard in a role's scope or tool list grants everything in that list's
// domain.
const Wildcard = "*"

// RolePolicy maps one role to its allowed retrieval scopes and tool names.
type RolePolicy struct {
	RagAccess []string `yaml:"rag_access" json:"rag_access"`
	MCPTools  []string `yaml:"mcp_tools" json:"mcp_tools"`
}

// AttributeRule is one named ABAC predicate. Rules are evaluated in
// configured order against {claims, resource}; AppliesTo limits the rule
// to specific scopes (empty = all scopes, trailing * matches a prefix).
type AttributeRule struct {
	Name          string     `yaml:"name" json:"name"`
	AppliesTo     []string   `yaml:"applies_to,omitempty" json:"applies_to,omitempty"`
	DenyWhenFalse []string   `yaml:"deny_when_false,omitempty" json:"deny_when_false,omitempty"`
	Condition     *Condition `yaml:"condition" json:"condition"`
}

// Condition is a tagged expression tree. Exactly one of the combinator
// fields (All/Any/Not) or a leaf comparison (Op + operands) is used. The
// interpreter has access to nothing beyond claims and resource.
type Condition struct {
	Op    string       `yaml:"op,omitempty" json:"op,omitempty"`
	Left  *Operand     `yaml:"left,omitempty" json:"left,omitempty"`
	Right *Operand     `yaml:"right,omitempty" json:"right,omitempty"`
	All   []*Condition `yaml:"all,omitempty" json:"all,omitempty"`
	Any   []*Condition `yaml:"any,omitempty" json:"any,omitempty"`
	Not   *Condition   `yaml:"not,omitempty" json:"not,omitempty"`
}

// Operand is either a field reference (claims.X or resource.X) or a
// literal value.
type Operand struct {
	Field string      `yaml:"field,omitempty" json:"field,omitempty"`
	Value interface{} `yaml:"value,omitempty" json:"value,omitempty"`
}

// NamespaceConfig is one partition of the resource space. A (role, scope)
// pair must resolve to at most one namespace; overlap is a configuration
// error caught at load time.
type NamespaceConfig struct {
	Name         string   `yaml:"name" json:"name"`
	AllowedRoles []string `yaml:"allowed_roles" json:"allowed_roles"`
	RagScopes    []string `yaml:"rag_scopes" json:"rag_scopes"`
}

// ToolPolicy is the per-tool requester gate: empty AllowedRequesterRoles
// means nobody may invoke the tool, the wildcard token means everyone.
type ToolPolicy struct {
	AllowedRequesterRoles []string               `yaml:"allowed_requester_roles" json:"allowed_requester_roles"`
	Config                map[string]interface{} `yaml:"config,omitempty" json:"config,omitempty"`
}
