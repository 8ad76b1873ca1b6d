// pdp/engine/condition.go
package engine

import (
	"fmt"
	"strings"

	"github.com/Jusharra/identity-aware-healthcare-rag-mcp/model"
)

// evalCondition interprets a condition tree against claims and resource.
// The interpreter is side-effect-free and can reach nothing beyond the
// two supplied structures; any ambiguity (unknown field root, unknown
// operator, un-comparable operands) is an evaluation fault the caller
// converts into a denial.
func evalCondition(c *model.Condition, claims model.Claims, resource map[string]interface{}) (bool, error) {
	if c == nil {
		return false, fmt.Errorf("nil condition")
	}

	switch {
	case len(c.All) > 0:
		for _, sub := range c.All {
			ok, err := evalCondition(sub, claims, resource)
			if err != nil {
				return false, err
			}
			if !ok {
				return false, nil
			}
		}
		return true, nil

	case len(c.Any) > 0:
		for _, sub := range c.Any {
			ok, err := evalCondition(sub, claims, resource)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}
		return false, nil

	case c.Not != nil:
		ok, err := evalCondition(c.Not, claims, resource)
		if err != nil {
			return false, err
		}
		return !ok, nil
	}

	left, err := resolveOperand(c.Left, claims, resource)
	if err != nil {
		return false, err
	}

	if c.Op == "present" {
		return left != nil && left != "", nil
	}

	right, err := resolveOperand(c.Right, claims, resource)
	if err != nil {
		return false, err
	}

	switch c.Op {
	case "eq":
		return equals(left, right)
	case "ne":
		eq, err := equals(left, right)
		return !eq, err
	case "in":
		return contains(right, left)
	case "not_in":
		ok, err := contains(right, left)
		return !ok, err
	case "gt", "gte", "lt", "lte":
		return compareNumeric(c.Op, left, right)
	default:
		return false, fmt.Errorf("unknown operator %q", c.Op)
	}
}

func resolveOperand(op *model.Operand, claims model.Claims, resource map[string]interface{}) (interface{}, error) {
	if op == nil {
		return nil, fmt.Errorf("missing operand")
	}
	if op.Field == "" {
		return op.Value, nil
	}

	root, attr, found := strings.Cut(op.Field, ".")
	if !found {
		return nil, fmt.Errorf("field %q is not rooted at claims or resource", op.Field)
	}

	switch root {
	case "claims":
		value, known := claims.Attribute(attr)
		if !known {
			return nil, fmt.Errorf("unknown claims attribute %q", attr)
		}
		return value, nil
	case "resource":
		// Absent resource keys resolve to nil; comparisons against nil
		// are well-defined (false), unlike an unknown claims attribute.
		return resource[attr], nil
	default:
		return nil, fmt.Errorf("field %q is not rooted at claims or resource", op.Field)
	}
}

func equals(a, b interface{}) (bool, error) {
	if a == nil || b == nil {
		return a == nil && b == nil, nil
	}

	af, aNum := toFloat(a)
	bf, bNum := toFloat(b)
	if aNum && bNum {
		return af == bf, nil
	}

	as, aStr := a.(string)
	bs, bStr := b.(string)
	if aStr && bStr {
		return as == bs, nil
	}

	ab, aBool := a.(bool)
	bb, bBool := b.(bool)
	if aBool && bBool {
		return ab == bb, nil
	}

	if isScalar(a) && isScalar(b) {
		// Mismatched scalar kinds compare unequal rather than faulting.
		return false, nil
	}
	return false, fmt.Errorf("cannot compare values of type %T and %T", a, b)
}

func contains(collection, needle interface{}) (bool, error) {
	switch items := collection.(type) {
	case []interface{}:
		for _, item := range items {
			eq, err := equals(item, needle)
			if err != nil {
				return false, err
			}
			if eq {
				return true, nil
			}
		}
		return false, nil
	case []string:
		for _, item := range items {
			eq, err := equals(item, needle)
			if err != nil {
				return false, err
			}
			if eq {
				return true, nil
			}
		}
		return false, nil
	default:
		return false, fmt.Errorf("right operand of in/not_in must be a list, got %T", collection)
	}
}

func compareNumeric(op string, a, b interface{}) (bool, error) {
	af, ok := toFloat(a)
	if !ok {
		return false, fmt.Errorf("operator %q needs numeric operands, got %T", op, a)
	}
	bf, ok := toFloat(b)
	if !ok {
		return false, fmt.Errorf("operator %q needs numeric operands, got %T", op, b)
	}

	switch op {
	case "gt":
		return af > bf, nil
	case "gte":
		return af >= bf, nil
	case "lt":
		return af < bf, nil
	case "lte":
		return af <= bf, nil
	}
	return false, fmt.Errorf("unknown operator %q", op)
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

func isScalar(v interface{}) bool {
	switch v.(type) {
	case string, bool:
		return true
	}
	_, ok := toFloat(v)
	return ok
}
