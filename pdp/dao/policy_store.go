// pdp/dao/policy_store.go
package dao

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	gw_errors "github.com/Jusharra/identity-aware-healthcare-rag-mcp/errors"
	"github.com/Jusharra/identity-aware-healthcare-rag-mcp/model"
)

// Store holds the role policies, attribute rules, namespaces and tool
// definitions loaded from the policy document. It is read-only after
// Load; reloading means constructing a new Store and swapping it in at
// the wiring level.
type Store struct {
	roles      map[string]model.RolePolicy
	rules      []model.AttributeRule
	namespaces []model.NamespaceConfig
	tools      map[string]model.ToolPolicy
}

type policyDocument struct {
	Roles      map[string]model.RolePolicy `yaml:"roles"`
	AbacRules  []model.AttributeRule       `yaml:"abac_rules"`
	Namespaces []model.NamespaceConfig     `yaml:"namespaces"`
	Tools      map[string]model.ToolPolicy `yaml:"tools"`
}

var knownOps = map[string]bool{
	"eq": true, "ne": true, "in": true, "not_in": true,
	"gt": true, "gte": true, "lt": true, "lte": true,
	"present": true,
}

// Load reads and validates the policy document. Any failure here is a
// startup-fatal configuration error, never a per-request condition.
func Load(path string) (*Store, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", gw_errors.ErrInvalidPolicyConfig, path, err)
	}

	var doc policyDocument
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", gw_errors.ErrInvalidPolicyConfig, path, err)
	}

	s := &Store{
		roles:      doc.Roles,
		rules:      doc.AbacRules,
		namespaces: doc.Namespaces,
		tools:      doc.Tools,
	}
	if s.roles == nil {
		s.roles = map[string]model.RolePolicy{}
	}
	if s.tools == nil {
		s.tools = map[string]model.ToolPolicy{}
	}

	if err := s.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) validate() error {
	for i, rule := range s.rules {
		if rule.Name == "" {
			return fmt.Errorf("%w: abac rule %d has no name", gw_errors.ErrInvalidPolicyConfig, i)
		}
		if rule.Condition == nil {
			return fmt.Errorf("%w: abac rule %q has no condition", gw_errors.ErrInvalidPolicyConfig, rule.Name)
		}
		if err := validateCondition(rule.Condition); err != nil {
			return fmt.Errorf("%w: abac rule %q: %v", gw_errors.ErrInvalidPolicyConfig, rule.Name, err)
		}
	}

	seen := map[string]bool{}
	for _, ns := range s.namespaces {
		if ns.Name == "" {
			return fmt.Errorf("%w: namespace with empty name", gw_errors.ErrInvalidPolicyConfig)
		}
		if seen[ns.Name] {
			return fmt.Errorf("%w: duplicate namespace %q", gw_errors.ErrInvalidPolicyConfig, ns.Name)
		}
		seen[ns.Name] = true
	}

	// Namespace selection must be a function of (role, scope), not a
	// relation: two namespaces sharing any role AND any scope would make
	// authorization order-dependent.
	for i := 0; i < len(s.namespaces); i++ {
		for j := i + 1; j < len(s.namespaces); j++ {
			a, b := s.namespaces[i], s.namespaces[j]
			if overlaps(a.AllowedRoles, b.AllowedRoles) && overlaps(a.RagScopes, b.RagScopes) {
				return fmt.Errorf("%w: namespaces %q and %q overlap on role+scope",
					gw_errors.ErrInvalidPolicyConfig, a.Name, b.Name)
			}
		}
	}

	return nil
}

func validateCondition(c *model.Condition) error {
	switch {
	case len(c.All) > 0:
		for _, sub := range c.All {
			if err := validateCondition(sub); err != nil {
				return err
			}
		}
		return nil
	case len(c.Any) > 0:
		for _, sub := range c.Any {
			if err := validateCondition(sub); err != nil {
				return err
			}
		}
		return nil
	case c.Not != nil:
		return validateCondition(c.Not)
	}

	if !knownOps[c.Op] {
		return fmt.Errorf("unknown operator %q", c.Op)
	}
	if c.Left == nil {
		return fmt.Errorf("operator %q has no left operand", c.Op)
	}
	if c.Op != "present" && c.Right == nil {
		return fmt.Errorf("operator %q has no right operand", c.Op)
	}
	return nil
}

func overlaps(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}

// RolePolicy returns the policy for a role. Unknown roles report ok=false;
// callers fail-safe deny.
func (s *Store) RolePolicy(role string) (model.RolePolicy, bool) {
	rp, ok := s.roles[role]
	return rp, ok
}

// Rules returns the attribute rules in configured order.
func (s *Store) Rules() []model.AttributeRule {
	return s.rules
}

// Namespaces returns the configured namespaces.
func (s *Store) Namespaces() []model.NamespaceConfig {
	return s.namespaces
}

// Tool returns the policy for a tool name.
func (s *Store) Tool(name string) (model.ToolPolicy, bool) {
	tp, ok := s.tools[name]
	return tp, ok
}

// Tools returns all configured tool policies keyed by tool name.
func (s *Store) Tools() map[string]model.ToolPolicy {
	return s.tools
}
